package model

import "time"

// Favorite marks a campaign saved by a user. (UserID, CampaignID) is unique.
type Favorite struct {
	ID         string    `json:"id" bson:"id"`
	UserID     string    `json:"userId" bson:"userId"`
	CampaignID string    `json:"campaignId" bson:"campaignId"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
}
