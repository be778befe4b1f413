// internal/domain/contest.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContestStatus type for the contest lifecycle
type ContestStatus string

const (
	ContestDraft  ContestStatus = "draft"
	ContestActive ContestStatus = "active"
	ContestEnded  ContestStatus = "ended"
)

// Contest represents a brand-funded video contest with a fixed prize budget.
// All monetary amounts are stored in integer cents.
type Contest struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BrandID         primitive.ObjectID `bson:"brandId" json:"brandId"` // Link to the Brand who funds this contest
	Title           string             `bson:"title" json:"title"`
	Description     string             `bson:"description,omitempty" json:"description,omitempty"`
	Status          ContestStatus      `bson:"status" json:"status"`
	TotalPrizeCents int64              `bson:"totalPrizeCents" json:"totalPrizeCents"` // Invariant: >= 0
	BannerObjectKey string             `bson:"bannerObjectKey,omitempty" json:"-"`     // Key of the banner image in S3 - internal use
	EndsAt          *time.Time         `bson:"endsAt,omitempty" json:"endsAt,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
