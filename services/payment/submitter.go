package payment

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"talentshout/models"
	"talentshout/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const idempotencyKeyPrefix = "payidem:"
const idempotencyTTL = 24 * time.Hour

// Submitter runs a payment method with validation, a bounded settlement
// timeout, and a single retry on timeout under the same idempotency key.
// Gateways may accept a charge but fail to return the response, so the
// retry must present the same key and a cached confirmation is returned
// as-is on duplicate submission.
type Submitter struct {
	logger  *zap.Logger
	cache   *redis.Client
	timeout time.Duration
}

// NewSubmitter constructs a Submitter. cache may be nil, in which case
// duplicate detection relies on the gateways' own idempotency handling.
func NewSubmitter(logger *zap.Logger, cache *redis.Client, timeout time.Duration) *Submitter {
	return &Submitter{
		logger:  logger,
		cache:   cache,
		timeout: timeout,
	}
}

// Process validates and settles a payment request. It returns a definitive
// confirmation, a definitive decline, or a PaymentTimeoutError when the
// gateway never answered; the caller must leave the booking in
// pending_payment for the timeout case.
func (s *Submitter) Process(ctx context.Context, m Method, req models.PaymentRequest) (*models.PaymentConfirmation, error) {
	if err := m.Validate(req); err != nil {
		return nil, err
	}
	if req.Idempotency == "" {
		return nil, utils.NewValidationError("idempotency", "missing idempotency key")
	}

	if cached := s.lookupPrior(ctx, req.Idempotency); cached != nil {
		s.logger.Info("returning prior payment confirmation",
			zap.String("gateway", string(m.Name())),
			zap.String("idempotencyKey", req.Idempotency))
		return cached, nil
	}

	conf, err := s.submitOnce(ctx, m, req)
	if isTimeout(err) {
		s.logger.Warn("payment settlement timed out, retrying once",
			zap.String("gateway", string(m.Name())),
			zap.String("bookingId", req.BookingID))
		conf, err = s.submitOnce(ctx, m, req)
	}
	if isTimeout(err) {
		return nil, &utils.PaymentTimeoutError{Gateway: string(m.Name())}
	}
	if err != nil {
		return nil, err
	}

	s.storePrior(ctx, req.Idempotency, conf)
	return conf, nil
}

func (s *Submitter) submitOnce(ctx context.Context, m Method, req models.PaymentRequest) (*models.PaymentConfirmation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return m.Submit(ctx, req)
}

func isTimeout(err error) bool {
	return err != nil && errors.Is(err, context.DeadlineExceeded)
}

func (s *Submitter) lookupPrior(ctx context.Context, key string) *models.PaymentConfirmation {
	if s.cache == nil {
		return nil
	}
	data, err := s.cache.Get(ctx, idempotencyKeyPrefix+key).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("idempotency cache lookup failed", zap.Error(err))
		}
		return nil
	}
	var conf models.PaymentConfirmation
	if err := json.Unmarshal([]byte(data), &conf); err != nil {
		s.logger.Warn("corrupt idempotency cache entry", zap.Error(err))
		return nil
	}
	return &conf
}

func (s *Submitter) storePrior(ctx context.Context, key string, conf *models.PaymentConfirmation) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(conf)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, idempotencyKeyPrefix+key, data, idempotencyTTL).Err(); err != nil {
		s.logger.Warn("failed to store idempotency cache entry", zap.Error(err))
	}
}
