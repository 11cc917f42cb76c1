// Package dashboard builds role-scoped read-only rollups. Every figure is
// recomputed from the booking collection on each request; nothing here is a
// stored counter that can drift.
package dashboard

import (
	"context"
	"time"

	applicationRepo "talentshout/database/repository/application"
	bookingRepo "talentshout/database/repository/booking"
	talentRepo "talentshout/database/repository/talent"
	"talentshout/models"
	"talentshout/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DashboardService serves the fan, talent and admin rollups.
type DashboardService interface {
	Fan(ctx context.Context, principal models.Principal) (*models.FanDashboard, error)
	Talent(ctx context.Context, principal models.Principal) (*models.TalentDashboard, error)
	Admin(ctx context.Context, principal models.Principal) (*models.AdminDashboard, error)
}

// DefaultDashboardService implements DashboardService.
type DefaultDashboardService struct {
	Bookings bookingRepo.Repository
	Talents  talentRepo.Repository
	Apps     applicationRepo.Repository
	Logger   *zap.Logger
}

var _ DashboardService = (*DefaultDashboardService)(nil)

// Fan returns the caller's booking counts and exact total spend over
// completed bookings.
func (s *DefaultDashboardService) Fan(ctx context.Context, principal models.Principal) (*models.FanDashboard, error) {
	scope := bookingRepo.Scope{CustomerID: principal.ID}

	counts, err := s.Bookings.CountByStatus(ctx, scope)
	if err != nil {
		return nil, err
	}
	totals, err := s.Bookings.SumAmounts(ctx, scope)
	if err != nil {
		return nil, err
	}

	return &models.FanDashboard{
		TotalBookings:     sumCounts(counts),
		CompletedBookings: counts[models.StatusCompleted],
		PendingBookings:   pendingCount(counts),
		TotalSpend:        totals.Gross.StringFixed(2),
	}, nil
}

// Talent returns the caller's booking counts, exact earnings, rating and
// month-over-month completed-volume growth.
func (s *DefaultDashboardService) Talent(ctx context.Context, principal models.Principal) (*models.TalentDashboard, error) {
	profile, err := s.Talents.GetByUserID(ctx, principal.ID)
	if err != nil {
		if err == talentRepo.ErrNotFound {
			return nil, &utils.PermissionError{Message: "caller has no talent profile"}
		}
		return nil, err
	}
	scope := bookingRepo.Scope{TalentID: profile.ID}

	counts, err := s.Bookings.CountByStatus(ctx, scope)
	if err != nil {
		return nil, err
	}
	totals, err := s.Bookings.SumAmounts(ctx, scope)
	if err != nil {
		return nil, err
	}
	rating, _, err := s.Bookings.AverageRating(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	growth, err := s.monthlyGrowth(ctx, scope)
	if err != nil {
		return nil, err
	}

	return &models.TalentDashboard{
		TotalBookings:     sumCounts(counts),
		CompletedBookings: counts[models.StatusCompleted],
		PendingBookings:   pendingCount(counts),
		TotalEarnings:     totals.Earnings.StringFixed(2),
		AverageRating:     rating,
		MonthlyGrowthPct:  growth,
	}, nil
}

// Admin returns the platform-wide rollup.
func (s *DefaultDashboardService) Admin(ctx context.Context, principal models.Principal) (*models.AdminDashboard, error) {
	if !principal.IsAdmin() {
		return nil, &utils.PermissionError{Message: "admin dashboard requires an admin"}
	}

	counts, err := s.Bookings.CountByStatus(ctx, bookingRepo.Scope{})
	if err != nil {
		return nil, err
	}
	totals, err := s.Bookings.SumAmounts(ctx, bookingRepo.Scope{})
	if err != nil {
		return nil, err
	}
	pendingApps, err := s.Apps.CountByStatus(ctx, models.ApplicationPending)
	if err != nil {
		return nil, err
	}
	growth, err := s.monthlyGrowth(ctx, bookingRepo.Scope{})
	if err != nil {
		return nil, err
	}

	byStatus := make(map[string]int, len(counts))
	for status, n := range counts {
		byStatus[string(status)] = n
	}

	return &models.AdminDashboard{
		TotalBookings:       sumCounts(counts),
		BookingsByStatus:    byStatus,
		GrossVolume:         totals.Gross.StringFixed(2),
		PlatformFeeRevenue:  totals.Fees.StringFixed(2),
		PendingApplications: pendingApps,
		MonthlyGrowthPct:    growth,
	}, nil
}

// monthlyGrowth compares the completed gross volume of the trailing 30 days
// against the 30 days before that. A zero previous window reads as 100%
// growth when the current window has any volume, 0% otherwise.
func (s *DefaultDashboardService) monthlyGrowth(ctx context.Context, scope bookingRepo.Scope) (float64, error) {
	now := time.Now().UTC()
	windowStart := now.AddDate(0, 0, -30)
	prevStart := windowStart.AddDate(0, 0, -30)

	current, err := s.Bookings.SumCompletedInWindow(ctx, scope, windowStart, now)
	if err != nil {
		return 0, err
	}
	previous, err := s.Bookings.SumCompletedInWindow(ctx, scope, prevStart, windowStart)
	if err != nil {
		return 0, err
	}
	return GrowthPct(current, previous), nil
}

// GrowthPct is the month-over-month growth of cur against prev, in percent.
func GrowthPct(cur, prev decimal.Decimal) float64 {
	if prev.IsZero() {
		if cur.IsPositive() {
			return 100
		}
		return 0
	}
	pct, _ := cur.Sub(prev).Div(prev).Mul(decimal.NewFromInt(100)).Round(2).Float64()
	return pct
}

func sumCounts(counts map[models.BookingStatus]int) int {
	total := 0
	for _, n := range counts {
		total += n
	}
	return total
}

// pendingCount is everything still awaiting delivery.
func pendingCount(counts map[models.BookingStatus]int) int {
	return counts[models.StatusPendingPayment] +
		counts[models.StatusPaymentConfirmed] +
		counts[models.StatusInProgress]
}
