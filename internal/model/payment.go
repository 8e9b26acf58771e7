package model

import "time"

// Payment providers.
const (
	ProviderYooKassa      = "yookassa"
	ProviderCloudPayments = "cloudpayments"
)

// Payment statuses.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusSucceeded = "succeeded"
	PaymentStatusFailed    = "failed"
	PaymentStatusCancelled = "cancelled"
)

// Payment is the provider-side record for a donation, 1:1 via DonationID.
type Payment struct {
	ID         string    `json:"id" bson:"id"`
	DonationID string    `json:"donationId" bson:"donationId"`
	Provider   string    `json:"provider" bson:"provider"`
	Amount     int64     `json:"amount" bson:"amount"`
	Currency   string    `json:"currency" bson:"currency"`
	Status     string    `json:"status" bson:"status"`
	ProviderID string    `json:"providerId,omitempty" bson:"providerId,omitempty"`
	PaymentURL string    `json:"paymentUrl,omitempty" bson:"paymentUrl,omitempty"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt" bson:"updatedAt"`
}
