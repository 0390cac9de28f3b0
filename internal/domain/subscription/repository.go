package subscription

import (
	"context"
	"time"

	"github.com/tripdesk-hq/tripdesk/internal/domain/billing"
)

// Repository reads subscription snapshots from the store.
type Repository interface {
	// CurrentByOrganizationID returns the organization's newest
	// subscription with status active or trialing, or nil when the
	// organization has no such row.
	CurrentByOrganizationID(ctx context.Context, organizationID uint) (*Snapshot, error)
}

// OrganizationReader reads the coarse fallback tier of an organization.
// It exists because legacy and manually provisioned organizations carry
// only a tier label and no structured subscription row.
type OrganizationReader interface {
	FallbackTier(ctx context.Context, organizationID uint) (billing.Tier, error)
}

// UsageReader counts feature usage records for an organization. For
// monthly-window features the caller passes the window's inclusive lower
// bound as since; for all-time features since is nil.
type UsageReader interface {
	CountFeatureUsage(ctx context.Context, organizationID uint, feature billing.Feature, since *time.Time) (int64, error)
}
