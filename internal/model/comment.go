package model

import "time"

type Comment struct {
	ID         string    `json:"id" bson:"id"`
	UserID     string    `json:"userId" bson:"userId"`
	CampaignID string    `json:"campaignId" bson:"campaignId"`
	Content    string    `json:"content" bson:"content"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
}
