package talent

import (
	"context"

	"talentshout/models"
)

// TalentService manages the application pipeline that gates who may act as
// talent, and the provisioned talent profiles themselves.
type TalentService interface {
	// Apply submits a new talent application for the caller. A user may hold
	// one active application at a time; a rejection frees them to resubmit.
	Apply(ctx context.Context, principal models.Principal, input models.ApplicationInput) (*models.TalentApplication, error)

	// GetApplication returns an application visible to its owner or an admin.
	GetApplication(ctx context.Context, principal models.Principal, id string) (*models.TalentApplication, error)

	// MyApplication returns the caller's active application, or nil.
	MyApplication(ctx context.Context, principal models.Principal) (*models.TalentApplication, error)

	// ReviewQueue returns applications awaiting review, oldest first.
	ReviewQueue(ctx context.Context, principal models.Principal, status models.ApplicationStatus, limit int64) ([]models.TalentApplication, error)

	// Review applies an admin decision. Approval provisions the talent profile
	// and upgrades the applicant's role before the application settles in
	// onboarding.
	Review(ctx context.Context, principal models.Principal, id string, input models.ApplicationReviewInput) (*models.TalentApplication, error)

	// GetProfile returns a talent profile by ID. Public.
	GetProfile(ctx context.Context, id string) (*models.TalentProfile, error)

	// UpdateSettings applies the talent's own pricing and availability changes.
	UpdateSettings(ctx context.Context, principal models.Principal, input models.TalentSettingsInput) (*models.TalentProfile, error)
}
