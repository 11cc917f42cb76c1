package models

import "time"

// TalentProfile is provisioned from an approved application. Pricing and the
// acceptance toggle are owned by the talent; rating and booking counters are
// recomputed aggregates over completed bookings.
type TalentProfile struct {
	ID                string    `bson:"id" json:"id"`
	UserID            string    `bson:"user_id" json:"user_id"`
	StageName         string    `bson:"stage_name" json:"stage_name"`
	Category          string    `bson:"category" json:"category"`
	Price             Money     `bson:"price" json:"price"`
	Currency          Currency  `bson:"currency" json:"currency"`
	AcceptingBookings bool      `bson:"accepting_bookings" json:"accepting_bookings"`
	AverageRating     float64   `bson:"average_rating" json:"average_rating"`
	TotalBookings     int       `bson:"total_bookings" json:"total_bookings"`
	CompletedBookings int       `bson:"completed_bookings" json:"completed_bookings"`
	CreatedAt         time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time `bson:"updated_at" json:"updated_at"`
}

// TalentSettingsInput is the body for a talent updating its own profile.
type TalentSettingsInput struct {
	Price             *string   `json:"price,omitempty"`
	Currency          *Currency `json:"currency,omitempty"`
	AcceptingBookings *bool     `json:"accepting_bookings,omitempty"`
}
