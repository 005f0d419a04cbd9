package model

import "time"

// Plan identifies the user's subscription tier.
type Plan string

const (
	PlanFree    Plan = "free"
	PlanPremium Plan = "premium"
)

// User is the authenticated account for the current session.
type User struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Plan          Plan       `json:"plan"`
	LicenseKey    string     `json:"licenseKey,omitempty"`
	LicenseExpiry *time.Time `json:"licenseExpiry,omitempty"` // nil = no license
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// Profile holds billing-side account data served by the backend.
type Profile struct {
	Plan             Plan   `json:"plan"`
	StripeCustomerID string `json:"stripe_customer_id,omitempty"`
}

// Subscription is the active billing subscription, if any.
type Subscription struct {
	ID                string    `json:"id"`
	Status            string    `json:"status"`
	PeriodStart       time.Time `json:"period_start"`
	PeriodEnd         time.Time `json:"period_end"`
	CancelAtPeriodEnd bool      `json:"cancel_at_period_end"`
}
