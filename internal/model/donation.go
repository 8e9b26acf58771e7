package model

import "time"

// Donation statuses. Transitions are forward-only:
// pending -> completed | failed | cancelled.
const (
	DonationStatusPending   = "pending"
	DonationStatusCompleted = "completed"
	DonationStatusFailed    = "failed"
	DonationStatusCancelled = "cancelled"
)

// Donation represents a single donation to a campaign or directly to a partner.
// Exactly one of CampaignID / PartnerID is set.
type Donation struct {
	ID         string    `json:"id" bson:"id"`
	UserID     string    `json:"userId" bson:"userId"`
	CampaignID string    `json:"campaignId,omitempty" bson:"campaignId,omitempty"`
	PartnerID  string    `json:"partnerId,omitempty" bson:"partnerId,omitempty"`
	Amount     int64     `json:"amount" bson:"amount"`
	Currency   string    `json:"currency" bson:"currency"`
	Status     string    `json:"status" bson:"status"`
	Anonymous  bool      `json:"anonymous" bson:"anonymous"`
	Message    string    `json:"message,omitempty" bson:"message,omitempty"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt" bson:"updatedAt"`
}

// DonationTerminal reports whether a status admits no further transitions.
func DonationTerminal(status string) bool {
	return status == DonationStatusCompleted ||
		status == DonationStatusFailed ||
		status == DonationStatusCancelled
}

// DonationFilter narrows donation listings.
type DonationFilter struct {
	UserID     string
	CampaignID string
	PartnerID  string
	Status     string
}
