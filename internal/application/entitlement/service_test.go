package entitlement

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripdesk-hq/tripdesk/internal/domain/billing"
	domainentitlement "github.com/tripdesk-hq/tripdesk/internal/domain/entitlement"
	"github.com/tripdesk-hq/tripdesk/internal/domain/subscription"
	"github.com/tripdesk-hq/tripdesk/internal/shared/logger"
)

type fakeSubscriptionRepo struct {
	snapshot *subscription.Snapshot
	err      error
}

func (f *fakeSubscriptionRepo) CurrentByOrganizationID(_ context.Context, _ uint) (*subscription.Snapshot, error) {
	return f.snapshot, f.err
}

type fakeOrganizationRepo struct {
	tier billing.Tier
	err  error
}

func (f *fakeOrganizationRepo) FallbackTier(_ context.Context, _ uint) (billing.Tier, error) {
	return f.tier, f.err
}

type fakeUsageRepo struct {
	mu     sync.Mutex
	counts map[billing.Feature]int64
	errs   map[billing.Feature]error

	// lastSince records the window bound received per feature, so tests
	// can assert the monthly floor is passed through.
	lastSince map[billing.Feature]*time.Time
}

func (f *fakeUsageRepo) CountFeatureUsage(_ context.Context, _ uint, feature billing.Feature, since *time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lastSince == nil {
		f.lastSince = make(map[billing.Feature]*time.Time)
	}
	f.lastSince[feature] = since
	if err, ok := f.errs[feature]; ok {
		return 0, err
	}
	return f.counts[feature], nil
}

func newTestService(
	subs *fakeSubscriptionRepo,
	orgs *fakeOrganizationRepo,
	usage *fakeUsageRepo,
	now time.Time,
) *ServiceImpl {
	return NewService(subs, orgs, usage, billing.NewCatalog(), logger.NewLogger()).
		WithClock(func() time.Time { return now })
}

func activeSnapshot(planID string) *subscription.Snapshot {
	s := subscription.NewSnapshot(
		1, planID, subscription.StatusActive,
		nil, false, nil, nil,
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	)
	return &s
}

func TestEvaluate_FreePlanBoundaries(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		used          int64
		wantAllowed   bool
		wantRemaining int64
	}{
		{name: "well under limit", used: 0, wantAllowed: true, wantRemaining: 10},
		{name: "one below limit", used: 9, wantAllowed: true, wantRemaining: 1},
		{name: "at limit", used: 10, wantAllowed: false, wantRemaining: 0},
		{name: "over limit", used: 25, wantAllowed: false, wantRemaining: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usage := &fakeUsageRepo{counts: map[billing.Feature]int64{
				billing.FeatureClients: tt.used,
			}}
			svc := newTestService(
				&fakeSubscriptionRepo{snapshot: activeSnapshot("free")},
				&fakeOrganizationRepo{},
				usage,
				now,
			)

			status, err := svc.Evaluate(context.Background(), 1, billing.FeatureClients)
			require.NoError(t, err)

			assert.Equal(t, tt.wantAllowed, status.Allowed)
			assert.Equal(t, tt.used, status.Used)
			require.NotNil(t, status.Remaining)
			assert.Equal(t, tt.wantRemaining, *status.Remaining)
			assert.Equal(t, billing.PlanFree, status.PlanID)
			assert.Equal(t, billing.TierFree, status.Tier)
		})
	}
}

func TestEvaluate_UnlimitedFeature(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	usage := &fakeUsageRepo{counts: map[billing.Feature]int64{
		billing.FeatureClients: 1_000_000,
	}}
	svc := newTestService(
		&fakeSubscriptionRepo{snapshot: activeSnapshot("pro_monthly")},
		&fakeOrganizationRepo{},
		usage,
		now,
	)

	status, err := svc.Evaluate(context.Background(), 1, billing.FeatureClients)
	require.NoError(t, err)

	assert.True(t, status.Allowed)
	assert.True(t, status.Limit.IsUnlimited())
	assert.Nil(t, status.Remaining)
	require.NotNil(t, status.UpgradePlan)
	assert.Equal(t, billing.PlanEnterprise, *status.UpgradePlan)
	assert.Equal(t, int64(1_000_000), status.Used)
}

func TestEvaluate_MonthlyWindowAndResetAt(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
	usage := &fakeUsageRepo{counts: map[billing.Feature]int64{
		billing.FeatureTrips: 3,
	}}
	svc := newTestService(
		&fakeSubscriptionRepo{snapshot: activeSnapshot("free")},
		&fakeOrganizationRepo{},
		usage,
		now,
	)

	status, err := svc.Evaluate(context.Background(), 1, billing.FeatureTrips)
	require.NoError(t, err)

	assert.Equal(t, billing.WindowMonthly, status.Window)
	require.NotNil(t, status.ResetAt)
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), *status.ResetAt)

	since := usage.lastSince[billing.FeatureTrips]
	require.NotNil(t, since)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), *since)
}

func TestEvaluate_AllTimeWindowHasNoBound(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	usage := &fakeUsageRepo{counts: map[billing.Feature]int64{}}
	svc := newTestService(
		&fakeSubscriptionRepo{snapshot: activeSnapshot("free")},
		&fakeOrganizationRepo{},
		usage,
		now,
	)

	status, err := svc.Evaluate(context.Background(), 1, billing.FeatureTemplates)
	require.NoError(t, err)

	assert.Equal(t, billing.WindowAllTime, status.Window)
	assert.Nil(t, status.ResetAt)
	assert.Nil(t, usage.lastSince[billing.FeatureTemplates])
}

func TestEvaluate_UpgradePlanSuggestion(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		planID      string
		feature     billing.Feature
		used        int64
		wantAllowed bool
		wantNext    billing.PlanID
	}{
		{
			name:        "free at limit suggests pro",
			planID:      "free",
			feature:     billing.FeatureClients,
			used:        10,
			wantAllowed: false,
			wantNext:    billing.PlanProMonthly,
		},
		{
			name:        "free below limit still suggests pro",
			planID:      "free",
			feature:     billing.FeatureClients,
			used:        2,
			wantAllowed: true,
			wantNext:    billing.PlanProMonthly,
		},
		{
			name:        "pro at limit suggests enterprise",
			planID:      "pro_monthly",
			feature:     billing.FeatureTeamMembers,
			used:        5,
			wantAllowed: false,
			wantNext:    billing.PlanEnterprise,
		},
		{
			name:        "annual pro suggests enterprise",
			planID:      "pro_annual",
			feature:     billing.FeatureTemplates,
			used:        1,
			wantAllowed: true,
			wantNext:    billing.PlanEnterprise,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usage := &fakeUsageRepo{counts: map[billing.Feature]int64{
				tt.feature: tt.used,
			}}
			svc := newTestService(
				&fakeSubscriptionRepo{snapshot: activeSnapshot(tt.planID)},
				&fakeOrganizationRepo{},
				usage,
				now,
			)

			status, err := svc.Evaluate(context.Background(), 1, tt.feature)
			require.NoError(t, err)

			assert.Equal(t, tt.wantAllowed, status.Allowed)
			require.NotNil(t, status.UpgradePlan)
			assert.Equal(t, tt.wantNext, *status.UpgradePlan)
		})
	}
}

func TestEvaluate_TopTierHasNoUpgradePlan(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	usage := &fakeUsageRepo{counts: map[billing.Feature]int64{
		billing.FeatureClients: 42,
	}}
	svc := newTestService(
		&fakeSubscriptionRepo{snapshot: activeSnapshot("enterprise")},
		&fakeOrganizationRepo{},
		usage,
		now,
	)

	status, err := svc.Evaluate(context.Background(), 1, billing.FeatureClients)
	require.NoError(t, err)

	assert.True(t, status.Allowed)
	assert.Nil(t, status.UpgradePlan)
}

func TestEvaluate_FallbackTierWhenNoSnapshot(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		tier     billing.Tier
		wantPlan billing.PlanID
	}{
		{name: "pro tier maps to monthly plan", tier: billing.TierPro, wantPlan: billing.PlanProMonthly},
		{name: "enterprise tier", tier: billing.TierEnterprise, wantPlan: billing.PlanEnterprise},
		{name: "unknown tier falls back to free", tier: billing.Tier("legacy"), wantPlan: billing.PlanFree},
		{name: "empty tier falls back to free", tier: billing.Tier(""), wantPlan: billing.PlanFree},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usage := &fakeUsageRepo{counts: map[billing.Feature]int64{}}
			svc := newTestService(
				&fakeSubscriptionRepo{snapshot: nil},
				&fakeOrganizationRepo{tier: tt.tier},
				usage,
				now,
			)

			status, err := svc.Evaluate(context.Background(), 1, billing.FeatureClients)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPlan, status.PlanID)
		})
	}
}

func TestEvaluate_LapsedTrialUsesFreePlan(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	trialEnd := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	snap := subscription.NewSnapshot(
		1, "pro_monthly", subscription.StatusTrialing,
		&trialEnd, false, nil, nil,
		time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
	)
	usage := &fakeUsageRepo{counts: map[billing.Feature]int64{
		billing.FeatureTemplates: 3,
	}}
	svc := newTestService(
		&fakeSubscriptionRepo{snapshot: &snap},
		&fakeOrganizationRepo{},
		usage,
		now,
	)

	status, err := svc.Evaluate(context.Background(), 1, billing.FeatureTemplates)
	require.NoError(t, err)

	assert.Equal(t, billing.PlanFree, status.PlanID)
	assert.False(t, status.Allowed)
}

func TestEvaluate_UsageStoreFailure(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	storeErr := errors.New("connection refused")
	usage := &fakeUsageRepo{errs: map[billing.Feature]error{
		billing.FeatureClients: storeErr,
	}}
	svc := newTestService(
		&fakeSubscriptionRepo{snapshot: activeSnapshot("free")},
		&fakeOrganizationRepo{},
		usage,
		now,
	)

	status, err := svc.Evaluate(context.Background(), 1, billing.FeatureClients)
	require.Error(t, err)
	assert.Nil(t, status)
	assert.ErrorIs(t, err, domainentitlement.ErrUsageUnavailable)

	var unavailable *domainentitlement.UsageUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, billing.FeatureClients, unavailable.Feature)
}

func TestEvaluate_UnknownFeature(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	svc := newTestService(
		&fakeSubscriptionRepo{snapshot: activeSnapshot("free")},
		&fakeOrganizationRepo{},
		&fakeUsageRepo{},
		now,
	)

	status, err := svc.Evaluate(context.Background(), 1, billing.Feature("bookings"))
	assert.Nil(t, status)
	assert.ErrorIs(t, err, billing.ErrUnknownFeature)
}

func TestEvaluateAll(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	usage := &fakeUsageRepo{counts: map[billing.Feature]int64{
		billing.FeatureClients:     10,
		billing.FeatureTrips:       2,
		billing.FeatureProposals:   5,
		billing.FeatureTemplates:   1,
		billing.FeatureTeamMembers: 1,
		billing.FeatureAIRequests:  49,
	}}
	svc := newTestService(
		&fakeSubscriptionRepo{snapshot: activeSnapshot("free")},
		&fakeOrganizationRepo{},
		usage,
		now,
	)

	statuses, err := svc.EvaluateAll(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, statuses, len(billing.AllFeatures()))

	byFeature := make(map[billing.Feature]*domainentitlement.FeatureLimitStatus)
	for i, feature := range billing.AllFeatures() {
		require.NotNil(t, statuses[i])
		assert.Equal(t, feature, statuses[i].Feature)
		byFeature[feature] = statuses[i]
	}

	assert.False(t, byFeature[billing.FeatureClients].Allowed)
	assert.False(t, byFeature[billing.FeatureProposals].Allowed)
	assert.False(t, byFeature[billing.FeatureTeamMembers].Allowed)
	assert.True(t, byFeature[billing.FeatureTrips].Allowed)
	assert.True(t, byFeature[billing.FeatureTemplates].Allowed)
	assert.True(t, byFeature[billing.FeatureAIRequests].Allowed)
}

func TestEvaluateAll_PropagatesStoreFailure(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	usage := &fakeUsageRepo{
		counts: map[billing.Feature]int64{},
		errs: map[billing.Feature]error{
			billing.FeatureAIRequests: errors.New("timeout"),
		},
	}
	svc := newTestService(
		&fakeSubscriptionRepo{snapshot: activeSnapshot("free")},
		&fakeOrganizationRepo{},
		usage,
		now,
	)

	statuses, err := svc.EvaluateAll(context.Background(), 1)
	assert.Nil(t, statuses)
	assert.ErrorIs(t, err, domainentitlement.ErrUsageUnavailable)
}

func TestEvaluate_SnapshotRepoFailure(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	repoErr := errors.New("db gone")
	svc := newTestService(
		&fakeSubscriptionRepo{err: repoErr},
		&fakeOrganizationRepo{},
		&fakeUsageRepo{},
		now,
	)

	status, err := svc.Evaluate(context.Background(), 1, billing.FeatureClients)
	assert.Nil(t, status)
	assert.ErrorIs(t, err, repoErr)
}
