package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PayoutTierSize is the number of ranks eligible for any prize share.
// The percentage schedule below has exactly this many slots.
const PayoutTierSize = 30

// LeaderboardEntry is one ranked, prize-allocated row for a submission within
// a contest. Entries for a contest are replaced wholesale on each recompute;
// they form a dense rank sequence starting at 1 with at most PayoutTierSize rows.
type LeaderboardEntry struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ContestID     primitive.ObjectID `bson:"contestId" json:"contestId"`
	Rank          int                `bson:"rank" json:"rank"` // 1-based, dense, unique per contest
	SubmissionID  primitive.ObjectID `bson:"submissionId" json:"submissionId"`
	CreatorID     primitive.ObjectID `bson:"creatorId" json:"creatorId"`
	ViewsWeighted int64              `bson:"viewsWeighted" json:"viewsWeighted"` // Ranking key; equals raw summed views
	PrizeCents    int64              `bson:"prizeCents" json:"prizeCents"`
	ComputedAt    time.Time          `bson:"computedAt" json:"computedAt"`
}
