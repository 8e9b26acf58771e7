package model

import "time"

// Partner represents a charity fund the platform cooperates with.
type Partner struct {
	ID             string    `json:"id" bson:"id"`
	Name           string    `json:"name" bson:"name"`
	Slug           string    `json:"slug" bson:"slug"`
	Type           string    `json:"type" bson:"type"`
	Description    string    `json:"description" bson:"description"`
	Verified       bool      `json:"verified" bson:"verified"`
	Country        string    `json:"country" bson:"country"`
	City           string    `json:"city,omitempty" bson:"city,omitempty"`
	Categories     []string  `json:"categories" bson:"categories"`
	TotalCollected int64     `json:"totalCollected" bson:"totalCollected"`
	TotalDonors    int64     `json:"totalDonors" bson:"totalDonors"`
	TotalHelped    int64     `json:"totalHelped" bson:"totalHelped"`
	ProjectCount   int64     `json:"projectCount" bson:"projectCount"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt" bson:"updatedAt"`
}

// PartnerPatch holds fields that can be updated on a partner.
type PartnerPatch struct {
	Name        *string
	Type        *string
	Description *string
	Verified    *bool
	Country     *string
	City        *string
	Categories  *[]string
}

// PartnerFilter narrows partner listings.
type PartnerFilter struct {
	Type     string
	Country  string
	Category string
	Verified *bool
}
