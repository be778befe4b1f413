package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MetricsSnapshot is a daily aggregation point for one submission.
// At most one snapshot exists per (submission, date) pair; writes upsert
// on that composite key. All counts are non-negative.
type MetricsSnapshot struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SubmissionID primitive.ObjectID `bson:"submissionId" json:"submissionId"`
	Date         string             `bson:"date" json:"date"` // Calendar date, "YYYY-MM-DD"
	Views        int64              `bson:"views" json:"views"`
	Likes        int64              `bson:"likes" json:"likes"`
	Comments     int64              `bson:"comments" json:"comments"`
	Shares       int64              `bson:"shares" json:"shares"`
}

// SubmissionTotals carries one approved submission together with the sum of
// each metrics field across all of its recorded snapshot dates. This is the
// row shape the leaderboard engine ranks on (cumulative totals, not deltas).
type SubmissionTotals struct {
	SubmissionID primitive.ObjectID `bson:"_id"`
	CreatorID    primitive.ObjectID `bson:"creatorId"`
	CreatedAt    primitive.DateTime `bson:"createdAt"` // Submission creation time, used as ranking tie-break
	SumViews     int64              `bson:"sumViews"`
	SumLikes     int64              `bson:"sumLikes"`
	SumComments  int64              `bson:"sumComments"`
	SumShares    int64              `bson:"sumShares"`
}
