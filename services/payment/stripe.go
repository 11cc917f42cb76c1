package payment

import (
	"context"
	"errors"
	"strings"
	"time"

	"talentshout/models"
	"talentshout/utils"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/charge"
	"github.com/stripe/stripe-go/v76/refund"
	"github.com/stripe/stripe-go/v76/token"
)

// StripeMethod settles card charges through Stripe.
type StripeMethod struct{}

// NewStripeMethod constructs a Stripe card method. The API key is set
// globally at startup.
func NewStripeMethod() *StripeMethod {
	return &StripeMethod{}
}

func (m *StripeMethod) Name() models.Gateway {
	return models.GatewayStripe
}

func (m *StripeMethod) Validate(req models.PaymentRequest) error {
	if !validCardNumber(req.CardNumber) {
		return utils.NewValidationError("card_number", "must be a valid card number")
	}
	if !validExpiry(req.CardExpiry, time.Now()) {
		return utils.NewValidationError("card_expiry", "must be a future MM/YY expiry")
	}
	if !validCVV(req.CardCVV) {
		return utils.NewValidationError("card_cvv", "must be 3 or 4 digits")
	}
	return nil
}

func (m *StripeMethod) Submit(ctx context.Context, req models.PaymentRequest) (*models.PaymentConfirmation, error) {
	expiry := strings.Split(req.CardExpiry, "/")

	tokenParams := &stripe.TokenParams{
		Card: &stripe.CardParams{
			Number:   stripe.String(strings.ReplaceAll(req.CardNumber, " ", "")),
			ExpMonth: stripe.String(expiry[0]),
			ExpYear:  stripe.String("20" + expiry[1]),
			CVC:      stripe.String(req.CardCVV),
		},
	}
	tokenParams.Context = ctx
	cardToken, err := token.New(tokenParams)
	if err != nil {
		return nil, m.classify(err)
	}

	// Amounts go to Stripe in minor units.
	amountCents := req.Amount.Mul(decimal.NewFromInt(100)).IntPart()

	chargeParams := &stripe.ChargeParams{
		Amount:      stripe.Int64(amountCents),
		Currency:    stripe.String(strings.ToLower(string(req.Currency))),
		Description: stripe.String("TalentShout booking " + req.BookingID),
	}
	chargeParams.Context = ctx
	chargeParams.SetIdempotencyKey(req.Idempotency)
	if err := chargeParams.SetSource(cardToken.ID); err != nil {
		return nil, err
	}

	ch, err := charge.New(chargeParams)
	if err != nil {
		return nil, m.classify(err)
	}

	return &models.PaymentConfirmation{
		Gateway:       m.Name(),
		Reference:     ch.ID,
		MaskedAccount: maskCard(req.CardNumber),
		ConfirmedAt:   time.Now().UTC(),
	}, nil
}

func (m *StripeMethod) Reverse(ctx context.Context, reference string, amount models.Money, currency models.Currency) error {
	params := &stripe.RefundParams{
		Charge: stripe.String(reference),
	}
	params.Context = ctx
	params.SetIdempotencyKey("rev-" + reference)

	if _, err := refund.New(params); err != nil {
		return m.classify(err)
	}
	return nil
}

// classify maps Stripe errors onto the error taxonomy; deadline errors pass
// through so the submitter can retry.
func (m *StripeMethod) classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		switch stripeErr.Code {
		case stripe.ErrorCodeCardDeclined:
			reason := "card declined"
			if stripeErr.DeclineCode == stripe.DeclineCodeInsufficientFunds {
				reason = "insufficient funds"
			}
			return &utils.PaymentDeclinedError{Gateway: string(m.Name()), Reason: reason}
		case stripe.ErrorCodeExpiredCard, stripe.ErrorCodeIncorrectCVC, stripe.ErrorCodeIncorrectNumber:
			return &utils.PaymentDeclinedError{Gateway: string(m.Name()), Reason: "invalid credentials"}
		}
	}
	return err
}
