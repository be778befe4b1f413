package domain

import (
	"net/url"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Network is the closed set of social networks a video can be posted on.
type Network string

const (
	NetworkTikTok    Network = "tiktok"
	NetworkInstagram Network = "instagram"
	NetworkYouTube   Network = "youtube"
)

// SubmissionStatus type for the submission lifecycle (pending -> approved | rejected)
type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "pending"
	SubmissionApproved SubmissionStatus = "approved" // Only approved submissions are eligible for ranking
	SubmissionRejected SubmissionStatus = "rejected"
)

// Submission is one creator's video-link entry into one contest.
type Submission struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ContestID primitive.ObjectID `bson:"contestId" json:"contestId"` // A submission belongs to exactly one contest
	CreatorID primitive.ObjectID `bson:"creatorId" json:"creatorId"` // ... and one creator
	Network   Network            `bson:"network" json:"network"`
	VideoURL  string             `bson:"videoUrl" json:"videoUrl"`
	Status    SubmissionStatus   `bson:"status" json:"status"`
	PostedAt  time.Time          `bson:"postedAt" json:"postedAt"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// DetectNetworkFromURL classifies a video URL by hostname.
// Returns the empty Network if the URL does not parse or the host
// belongs to none of the supported platforms.
func DetectNetworkFromURL(rawURL string) Network {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	host := u.Hostname()
	switch {
	case strings.Contains(host, "tiktok"):
		return NetworkTikTok
	case strings.Contains(host, "instagram"):
		return NetworkInstagram
	case strings.Contains(host, "youtube"), strings.Contains(host, "youtu.be"):
		return NetworkYouTube
	default:
		return ""
	}
}
