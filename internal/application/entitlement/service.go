// Package entitlement evaluates feature limits for organizations: it
// resolves the effective plan from the current subscription state, reads
// usage counts for the relevant window, and reports whether one more unit
// of the feature may be consumed.
package entitlement

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tripdesk-hq/tripdesk/internal/domain/billing"
	"github.com/tripdesk-hq/tripdesk/internal/domain/entitlement"
	"github.com/tripdesk-hq/tripdesk/internal/domain/subscription"
	"github.com/tripdesk-hq/tripdesk/internal/shared/biztime"
	"github.com/tripdesk-hq/tripdesk/internal/shared/logger"
)

// ServiceImpl evaluates feature limit statuses against the plan catalog.
// Evaluations are read-only and side-effect free; the same inputs at the
// same instant always produce the same verdict.
type ServiceImpl struct {
	subscriptionRepo subscription.Repository
	organizationRepo subscription.OrganizationReader
	usageRepo        subscription.UsageReader
	catalog          *billing.Catalog
	logger           logger.Interface

	// now is swappable for tests; defaults to biztime.NowUTC.
	now func() time.Time
}

// NewService creates a new entitlement evaluation service.
func NewService(
	subscriptionRepo subscription.Repository,
	organizationRepo subscription.OrganizationReader,
	usageRepo subscription.UsageReader,
	catalog *billing.Catalog,
	logger logger.Interface,
) *ServiceImpl {
	return &ServiceImpl{
		subscriptionRepo: subscriptionRepo,
		organizationRepo: organizationRepo,
		usageRepo:        usageRepo,
		catalog:          catalog,
		logger:           logger,
		now:              biztime.NowUTC,
	}
}

// WithClock overrides the evaluation clock. Intended for tests.
func (s *ServiceImpl) WithClock(now func() time.Time) *ServiceImpl {
	s.now = now
	return s
}

// Evaluate computes the limit status for a single feature.
//
// The effective plan comes from the newest active or trialing subscription
// snapshot when one exists; otherwise the organization's stored tier is
// used as a fallback. A usage store failure is returned as a
// UsageUnavailableError, never as a zero count.
func (s *ServiceImpl) Evaluate(
	ctx context.Context,
	organizationID uint,
	feature billing.Feature,
) (*entitlement.FeatureLimitStatus, error) {
	if !feature.IsValid() {
		return nil, billing.ErrUnknownFeature
	}

	now := s.now()
	plan, err := s.effectivePlan(ctx, organizationID, now)
	if err != nil {
		return nil, err
	}

	return s.evaluateFeature(ctx, organizationID, plan, feature, now)
}

// EvaluateAll computes the limit status for every metered feature. Usage
// counts are fetched concurrently; the first failure cancels the rest.
// The result order follows billing.AllFeatures.
func (s *ServiceImpl) EvaluateAll(
	ctx context.Context,
	organizationID uint,
) ([]*entitlement.FeatureLimitStatus, error) {
	now := s.now()
	plan, err := s.effectivePlan(ctx, organizationID, now)
	if err != nil {
		return nil, err
	}

	features := billing.AllFeatures()
	statuses := make([]*entitlement.FeatureLimitStatus, len(features))

	g, gctx := errgroup.WithContext(ctx)
	for i, feature := range features {
		g.Go(func() error {
			status, err := s.evaluateFeature(gctx, organizationID, plan, feature, now)
			if err != nil {
				return err
			}
			statuses[i] = status
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return statuses, nil
}

// effectivePlan resolves the plan that governs the organization at now.
func (s *ServiceImpl) effectivePlan(
	ctx context.Context,
	organizationID uint,
	now time.Time,
) (billing.CanonicalPlan, error) {
	snapshot, err := s.subscriptionRepo.CurrentByOrganizationID(ctx, organizationID)
	if err != nil {
		s.logger.Errorw("failed to load subscription snapshot",
			"error", err,
			"organization_id", organizationID,
		)
		return billing.CanonicalPlan{}, err
	}

	if snapshot != nil {
		planID := subscription.ResolveEffectivePlan(*snapshot, now)
		if raw := snapshot.ActivePlanID(); raw != "" && billing.NormalizePlanID(raw) != billing.PlanID(raw) {
			s.logger.Warnw("normalized unrecognized plan id",
				"organization_id", organizationID,
				"stored_plan_id", raw,
				"resolved_plan_id", planID,
			)
		}
		return s.catalog.Lookup(planID), nil
	}

	tier, err := s.organizationRepo.FallbackTier(ctx, organizationID)
	if err != nil {
		s.logger.Errorw("failed to load organization fallback tier",
			"error", err,
			"organization_id", organizationID,
		)
		return billing.CanonicalPlan{}, err
	}

	planID := billing.PlanForTier(billing.NormalizeTier(string(tier)))
	return s.catalog.Lookup(planID), nil
}

func (s *ServiceImpl) evaluateFeature(
	ctx context.Context,
	organizationID uint,
	plan billing.CanonicalPlan,
	feature billing.Feature,
	now time.Time,
) (*entitlement.FeatureLimitStatus, error) {
	window := feature.Window()

	var since *time.Time
	var resetAt *time.Time
	if window == billing.WindowMonthly {
		start, reset := biztime.MonthlyWindow(now)
		since = &start
		resetAt = &reset
	}

	used, err := s.usageRepo.CountFeatureUsage(ctx, organizationID, feature, since)
	if err != nil {
		s.logger.Errorw("failed to count feature usage",
			"error", err,
			"organization_id", organizationID,
			"feature", feature,
		)
		return nil, entitlement.NewUsageUnavailableError(feature, err)
	}

	limit := plan.LimitFor(feature)
	allowed := limit.Allows(used)

	var remaining *int64
	if r, ok := limit.Remaining(used); ok {
		remaining = &r
	}

	// upgradePlan is advisory and present on every status below the top
	// tier, not only on denials, so clients can render the upsell path
	// without a second lookup.
	var upgradePlan *billing.PlanID
	if next, ok := s.catalog.NextTierPlan(plan.ID()); ok {
		upgradePlan = &next
	}

	return &entitlement.FeatureLimitStatus{
		Feature:     feature,
		Allowed:     allowed,
		PlanID:      plan.ID(),
		Tier:        plan.Tier(),
		Used:        used,
		Limit:       limit,
		Remaining:   remaining,
		Window:      window,
		ResetAt:     resetAt,
		UpgradePlan: upgradePlan,
	}, nil
}
