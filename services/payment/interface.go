// Package payment provides a uniform interface over the marketplace's
// payment providers. Each method validates its own input shape before any
// settlement call is attempted.
package payment

import (
	"context"
	"fmt"

	"talentshout/models"
)

// Method is one payment provider variant (mobile money, card, digital
// wallet). Submit must only be called after Validate has passed.
type Method interface {
	Name() models.Gateway

	// Validate checks the provider-specific input shape and fails fast with a
	// field-level validation error. No network call is made here.
	Validate(req models.PaymentRequest) error

	// Submit settles the charge with the external provider. Implementations
	// must honour ctx cancellation and reuse the request's idempotency key so
	// a retried call cannot double-charge.
	Submit(ctx context.Context, req models.PaymentRequest) (*models.PaymentConfirmation, error)

	// Reverse compensates a settled charge, used for refunds. It must succeed
	// before a booking may be persisted as refunded.
	Reverse(ctx context.Context, reference string, amount models.Money, currency models.Currency) error
}

// Registry resolves a payment method by gateway name.
type Registry struct {
	methods map[models.Gateway]Method
}

// NewRegistry builds a registry from the given methods.
func NewRegistry(methods ...Method) *Registry {
	r := &Registry{methods: make(map[models.Gateway]Method, len(methods))}
	for _, m := range methods {
		r.methods[m.Name()] = m
	}
	return r
}

// Get returns the method for the gateway, or an error for unknown gateways.
func (r *Registry) Get(gateway models.Gateway) (Method, error) {
	m, ok := r.methods[gateway]
	if !ok {
		return nil, fmt.Errorf("unsupported payment gateway: %s", gateway)
	}
	return m, nil
}
