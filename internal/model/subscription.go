package model

import "time"

// Subscription statuses. cancelled and expired are terminal;
// active <-> paused may alternate.
const (
	SubscriptionStatusActive    = "active"
	SubscriptionStatusPaused    = "paused"
	SubscriptionStatusCancelled = "cancelled"
	SubscriptionStatusExpired   = "expired"
)

// Subscription drives recurring-charge eligibility for a user.
type Subscription struct {
	ID                string     `json:"id" bson:"id"`
	UserID            string     `json:"userId" bson:"userId"`
	Plan              string     `json:"plan" bson:"plan"`
	Period            string     `json:"period" bson:"period"`
	Status            string     `json:"status" bson:"status"`
	ProviderToken     string     `json:"-" bson:"providerToken,omitempty"`
	NextPayment       *time.Time `json:"nextPayment,omitempty" bson:"nextPayment,omitempty"`
	ChargeAttempts    int        `json:"chargeAttempts" bson:"chargeAttempts"`
	MaxChargeAttempts int        `json:"maxChargeAttempts" bson:"maxChargeAttempts"`
	CreatedAt         time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// SubscriptionTerminal reports whether a status admits no further transitions.
func SubscriptionTerminal(status string) bool {
	return status == SubscriptionStatusCancelled || status == SubscriptionStatusExpired
}
