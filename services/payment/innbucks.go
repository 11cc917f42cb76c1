package payment

import (
	"context"
	"net/http"
	"time"

	"talentshout/models"
	"talentshout/utils"
)

// InnbucksMethod settles digital-wallet charges through the InnBucks gateway.
type InnbucksMethod struct {
	endpoint string
	client   *http.Client
}

// NewInnbucksMethod constructs an InnBucks method against the given endpoint.
func NewInnbucksMethod(endpoint string) *InnbucksMethod {
	return &InnbucksMethod{
		endpoint: endpoint,
		client:   &http.Client{},
	}
}

func (m *InnbucksMethod) Name() models.Gateway {
	return models.GatewayInnbucks
}

func (m *InnbucksMethod) Validate(req models.PaymentRequest) error {
	if !validEmail(req.Email) {
		return utils.NewValidationError("email", "must be a valid email address")
	}
	if !validMobileNumber(req.Phone) {
		return utils.NewValidationError("phone", "must be a valid mobile number (07XXXXXXXX or +2637XXXXXXXX)")
	}
	return nil
}

func (m *InnbucksMethod) Submit(ctx context.Context, req models.PaymentRequest) (*models.PaymentConfirmation, error) {
	payload := map[string]any{
		"amount":             req.Amount.String(),
		"currency":           req.Currency,
		"email":              req.Email,
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
		MaskedAccount: maskEmail(req.Email),
		ConfirmedAt:   time.Now().UTC(),
	}, nil
}

func (m *InnbucksMethod) Reverse(ctx context.Context, reference string, amount models.Money, currency models.Currency) error {
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
