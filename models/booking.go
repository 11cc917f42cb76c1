package models

import "time"

// Currency is an ISO-style currency code accepted by the marketplace.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyZIG Currency = "ZIG"
)

// IsValid reports whether c is a supported currency.
func (c Currency) IsValid() bool {
	return c == CurrencyUSD || c == CurrencyZIG
}

// Booking represents a single fan-to-talent paid video request and its
// lifecycle record. Bookings are never deleted; cancellation and refund are
// terminal statuses, not row removals.
type Booking struct {
	ID             string        `bson:"id" json:"id"`                                           // Unique booking identifier (UUID)
	Code           string        `bson:"code" json:"code"`                                       // Human-readable code, e.g. "TS-2026-0120"
	CustomerID     string        `bson:"customer_id" json:"customer_id"`                         // Fan who requested the video
	TalentID       string        `bson:"talent_id" json:"talent_id"`                             // Talent booked to record it
	RecipientName  string        `bson:"recipient_name" json:"recipient_name"`                   // Who the video is addressed to
	Occasion       string        `bson:"occasion" json:"occasion"`                               // e.g. "birthday", "graduation"
	Instructions   string        `bson:"instructions,omitempty" json:"instructions,omitempty"`   // Free-text brief for the talent
	Currency       Currency      `bson:"currency" json:"currency"`                               // "USD" or "ZIG"
	AmountPaid     Money         `bson:"amount_paid" json:"amount_paid"`                         // Gross amount charged
	PlatformFee    Money         `bson:"platform_fee" json:"platform_fee"`                       // Marketplace cut
	TalentEarnings Money         `bson:"talent_earnings" json:"talent_earnings"`                 // Talent payout
	FeeRate        string        `bson:"fee_rate" json:"fee_rate"`                               // Fee rate snapshot at creation time
	Status         BookingStatus `bson:"status" json:"status"`                                   //
	VideoURL       string        `bson:"video_url,omitempty" json:"video_url,omitempty"`         // Set on delivery
	DueDate        time.Time     `bson:"due_date" json:"due_date"`                               // Delivery deadline
	CompletedAt    *time.Time    `bson:"completed_at,omitempty" json:"completed_at,omitempty"`   // Set on delivery
	CustomerRating int           `bson:"customer_rating,omitempty" json:"customer_rating,omitempty"` // 1-5, zero means unrated
	Review         string        `bson:"review,omitempty" json:"review,omitempty"`               //
	CreatedAt      time.Time     `bson:"created_at" json:"created_at"`                           //
	UpdatedAt      time.Time     `bson:"updated_at" json:"updated_at"`                           //
	Version        int           `bson:"version" json:"-"`                                       // Optimistic concurrency counter
}

// BookingInput is the request body for creating a booking.
type BookingInput struct {
	TalentID      string `json:"talent_id" binding:"required"`
	RecipientName string `json:"recipient_name" binding:"required"`
	Occasion      string `json:"occasion" binding:"required"`
	Instructions  string `json:"instructions"`
}

// CustomerSummary is the nested customer view embedded in a booking detail.
type CustomerSummary struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// TalentSummary is the nested talent view embedded in a booking detail.
type TalentSummary struct {
	ID        string `json:"id"`
	StageName string `json:"stage_name"`
	Category  string `json:"category"`
}

// PaymentSummary is the nested payment view embedded in a booking detail.
type PaymentSummary struct {
	Gateway   string    `json:"gateway"`
	Reference string    `json:"reference"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// BookingDetail is the full booking view returned by GET /bookings/:id.
type BookingDetail struct {
	Booking  Booking          `json:"booking"`
	Customer *CustomerSummary `json:"customer,omitempty"`
	Talent   *TalentSummary   `json:"talent,omitempty"`
	Payment  *PaymentSummary  `json:"payment,omitempty"`
}

// BookingFilter narrows role-scoped booking listings.
type BookingFilter struct {
	Status   BookingStatus
	Page     int
	PageSize int
}
