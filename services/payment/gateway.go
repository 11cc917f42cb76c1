package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"talentshout/utils"
)

// gatewayResponse is the common response shape of the HTTP-based gateways
// (Paynow, InnBucks).
type gatewayResponse struct {
	Status    string `json:"status"`
	Reference string `json:"reference"`
	Reason    string `json:"reason,omitempty"`
}

// postJSON submits a JSON payload to a gateway endpoint with the idempotency
// key header and decodes the common response shape. Context deadline errors
// propagate unchanged so the submitter can retry.
func postJSON(ctx context.Context, client *http.Client, endpoint, idempotencyKey string, payload any) (*gatewayResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode gateway payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", idempotencyKey)

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	var out gatewayResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode gateway response: %w", err)
	}
	return &out, nil
}

// classifyGatewayStatus maps the common response statuses onto the error
// taxonomy. Anything not definitively paid is a decline.
func classifyGatewayStatus(gateway string, resp *gatewayResponse) error {
	switch resp.Status {
	case "paid", "ok", "completed":
		return nil
	case "insufficient_funds":
		return &utils.PaymentDeclinedError{Gateway: gateway, Reason: "insufficient funds"}
	case "invalid_credentials":
		return &utils.PaymentDeclinedError{Gateway: gateway, Reason: "invalid credentials"}
	default:
		reason := resp.Reason
		if reason == "" {
			reason = "declined"
		}
		return &utils.PaymentDeclinedError{Gateway: gateway, Reason: reason}
	}
}
