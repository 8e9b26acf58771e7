package model

import "time"

// Campaign types.
const (
	CampaignTypeFund    = "fund"
	CampaignTypePrivate = "private"
)

// Campaign statuses.
const (
	CampaignStatusActive    = "active"
	CampaignStatusCompleted = "completed"
	CampaignStatusCancelled = "cancelled"
)

// Moderation statuses.
const (
	ModerationPending  = "pending"
	ModerationApproved = "approved"
	ModerationRejected = "rejected"
)

type Campaign struct {
	ID               string     `json:"id" bson:"id"`
	Title            string     `json:"title" bson:"title"`
	Slug             string     `json:"slug" bson:"slug"`
	Description      string     `json:"description" bson:"description"`
	FullDescription  string     `json:"fullDescription,omitempty" bson:"fullDescription,omitempty"`
	Category         string     `json:"category" bson:"category"`
	Image            string     `json:"image,omitempty" bson:"image,omitempty"`
	Goal             int64      `json:"goal" bson:"goal"`
	Collected        int64      `json:"collected" bson:"collected"`
	Currency         string     `json:"currency" bson:"currency"`
	Type             string     `json:"type" bson:"type"`
	Status           string     `json:"status" bson:"status"`
	Urgent           bool       `json:"urgent" bson:"urgent"`
	Verified         bool       `json:"verified" bson:"verified"`
	ModerationStatus string     `json:"moderationStatus" bson:"moderationStatus"`
	ParticipantCount int64      `json:"participantCount" bson:"participantCount"`
	Deadline         *time.Time `json:"deadline,omitempty" bson:"deadline,omitempty"`
	PartnerID        string     `json:"partnerId,omitempty" bson:"partnerId,omitempty"`
	AuthorID         string     `json:"authorId,omitempty" bson:"authorId,omitempty"`
	CreatedAt        time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// CampaignPatch holds fields that can be updated on a campaign.
type CampaignPatch struct {
	Title            *string
	Description      *string
	FullDescription  *string
	Category         *string
	Image            *string
	Goal             *int64
	Status           *string
	Urgent           *bool
	Verified         *bool
	ModerationStatus *string
	Deadline         *time.Time
}

// CampaignFilter narrows campaign listings.
type CampaignFilter struct {
	Category  string
	Status    string
	Type      string
	PartnerID string
	AuthorID  string
	Urgent    *bool
	Verified  *bool
}
