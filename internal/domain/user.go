package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role type to distinguish between user roles
type Role string

// Define constants for roles
const (
	RoleBrand   Role = "brand"
	RoleCreator Role = "creator"
	RoleAdmin   Role = "admin"
)

// User represents a user in the system (a Brand, a Creator, or an Admin).
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`    // Should be unique
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON
	Role         Role               `bson:"role" json:"role"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`

	// --- Brand-specific ---
	CompanyName string `bson:"companyName,omitempty" json:"companyName,omitempty"`
	Country     string `bson:"country,omitempty" json:"country,omitempty"`

	// --- Creator-specific ---
	// Public handle shown on leaderboards and creator profiles.
	Handle         string `bson:"handle,omitempty" json:"handle,omitempty"`
	FollowersTotal int64  `bson:"followersTotal,omitempty" json:"followersTotal,omitempty"`
	AvgViews30d    int64  `bson:"avgViews30d,omitempty" json:"avgViews30d,omitempty"`
}

// Helper methods (Optional but can be useful)
func (u *User) IsBrand() bool {
	return u.Role == RoleBrand
}

func (u *User) IsCreator() bool {
	return u.Role == RoleCreator
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
