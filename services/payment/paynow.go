package payment

import (
	"context"
	"net/http"
	"time"

	"talentshout/models"
	"talentshout/utils"
)

// PaynowMethod settles mobile-money charges through the Paynow gateway.
type PaynowMethod struct {
	endpoint string
	client   *http.Client
}

// NewPaynowMethod constructs a Paynow method against the given endpoint.
func NewPaynowMethod(endpoint string) *PaynowMethod {
	return &PaynowMethod{
		endpoint: endpoint,
		client:   &http.Client{},
	}
}

func (m *PaynowMethod) Name() models.Gateway {
	return models.GatewayPaynow
}

func (m *PaynowMethod) Validate(req models.PaymentRequest) error {
	if !validMobileNumber(req.Phone) {
		return utils.NewValidationError("phone", "must be a valid mobile number (07XXXXXXXX or +2637XXXXXXXX)")
	}
	return nil
}

func (m *PaynowMethod) Submit(ctx context.Context, req models.PaymentRequest) (*models.PaymentConfirmation, error) {
	payload := map[string]any{
		"amount":             req.Amount.String(),
		"currency":           req.Currency,
		"phone":              req.Phone,
		"merchant_reference": req.BookingID,
	}

	resp, err := postJSON(ctx, m.client, m.endpoint, req.Idempotency, payload)
	if err != nil {
		return nil, err
	}
	if err := classifyGatewayStatus(string(m.Name()), resp); err != nil {
		return nil, err
	}

	return &models.PaymentConfirmation{
		Gateway:       m.Name(),
		Reference:     resp.Reference,
		MaskedAccount: maskPhone(req.Phone),
		ConfirmedAt:   time.Now().UTC(),
	}, nil
}

func (m *PaynowMethod) Reverse(ctx context.Context, reference string, amount models.Money, currency models.Currency) error {
	payload := map[string]any{
		"action":    "reverse",
		"reference": reference,
		"amount":    amount.String(),
		"currency":  currency,
	}

	resp, err := postJSON(ctx, m.client, m.endpoint, "rev-"+reference, payload)
	if err != nil {
		return err
	}
	return classifyGatewayStatus(string(m.Name()), resp)
}
