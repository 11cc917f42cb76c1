package models

import "time"

// Gateway identifies a payment provider.
type Gateway string

const (
	GatewayPaynow   Gateway = "paynow"   // mobile money
	GatewayStripe   Gateway = "stripe"   // card
	GatewayInnbucks Gateway = "innbucks" // digital wallet
)

// PaymentStatus is the settlement state of a payment record.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// Payment is the one-to-one settlement record appended to a booking once a
// gateway accepts the charge. Immutable once written except for status.
type Payment struct {
	ID            string        `bson:"id" json:"id"`
	BookingID     string        `bson:"booking_id" json:"booking_id"`
	Gateway       Gateway       `bson:"gateway" json:"gateway"`
	Reference     string        `bson:"reference" json:"reference"`           // Opaque provider reference
	MaskedAccount string        `bson:"masked_account" json:"masked_account"` // e.g. "**** **** **** 4242" or "07** ***123"
	Status        PaymentStatus `bson:"status" json:"status"`
	CreatedAt     time.Time     `bson:"created_at" json:"created_at"`
}

// PaymentRequest carries everything a payment method needs to settle a charge.
// Provider-specific fields are validated by the method before any gateway call.
type PaymentRequest struct {
	BookingID   string   `json:"-"`
	Amount      Money    `json:"-"`
	Currency    Currency `json:"-"`
	Gateway     Gateway  `json:"gateway" binding:"required"`
	Idempotency string   `json:"-"`

	// Mobile money (paynow).
	Phone string `json:"phone,omitempty"`

	// Card (stripe).
	CardNumber string `json:"card_number,omitempty"`
	CardExpiry string `json:"card_expiry,omitempty"` // MM/YY
	CardCVV    string `json:"card_cvv,omitempty"`

	// Digital wallet (innbucks).
	Email string `json:"email,omitempty"`
}

// PaymentConfirmation is the definitive success result of a settlement.
type PaymentConfirmation struct {
	Gateway       Gateway   `json:"gateway"`
	Reference     string    `json:"reference"`
	MaskedAccount string    `json:"masked_account"`
	ConfirmedAt   time.Time `json:"confirmed_at"`
}
