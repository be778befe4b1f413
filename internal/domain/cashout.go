package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CashoutStatus type for the cashout lifecycle
type CashoutStatus string

const (
	CashoutPending  CashoutStatus = "pending"
	CashoutPaid     CashoutStatus = "paid"
	CashoutRejected CashoutStatus = "rejected"
)

// Cashout records a creator's request to withdraw winnings.
// The platform keeps a flat fee; net = max(gross - fee, 0). Amounts in cents.
type Cashout struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatorID        primitive.ObjectID `bson:"creatorId" json:"creatorId"`
	GrossCents       int64              `bson:"grossCents" json:"grossCents"`
	PlatformFeeCents int64              `bson:"platformFeeCents" json:"platformFeeCents"`
	NetCents         int64              `bson:"netCents" json:"netCents"`
	Status           CashoutStatus      `bson:"status" json:"status"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
}
