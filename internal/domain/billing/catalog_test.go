package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalog_ContainsAllCanonicalPlans(t *testing.T) {
	catalog := NewCatalog()

	plans := catalog.Plans()
	require.Len(t, plans, 4)

	ids := make([]PlanID, 0, len(plans))
	for _, p := range plans {
		ids = append(ids, p.ID())
	}
	assert.Equal(t, []PlanID{PlanFree, PlanProMonthly, PlanProAnnual, PlanEnterprise}, ids)
}

func TestCatalog_Lookup_UnknownNormalizesToFree(t *testing.T) {
	catalog := NewCatalog()

	tests := []struct {
		name string
		id   PlanID
	}{
		{"empty id", PlanID("")},
		{"stale id", PlanID("legacy_gold")},
		{"tier label stored as plan id", PlanID("pro")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			plan := catalog.Lookup(tc.id)
			assert.Equal(t, PlanFree, plan.ID())
		})
	}
}

func TestCatalog_Lookup_FreeLimits(t *testing.T) {
	catalog := NewCatalog()
	free := catalog.Lookup(PlanFree)

	limit, ok := free.LimitFor(FeatureClients).Value()
	require.True(t, ok)
	assert.Equal(t, int64(10), limit)

	limit, ok = free.LimitFor(FeatureTeamMembers).Value()
	require.True(t, ok)
	assert.Equal(t, int64(1), limit)
}

func TestCatalog_Lookup_EnterpriseIsUnlimited(t *testing.T) {
	catalog := NewCatalog()
	enterprise := catalog.Lookup(PlanEnterprise)

	for _, feature := range AllFeatures() {
		assert.True(t, enterprise.LimitFor(feature).IsUnlimited(), "feature %s", feature)
	}
}

func TestCatalog_Lookup_AbsentFeatureIsUnlimited(t *testing.T) {
	catalog := NewCatalog()
	free := catalog.Lookup(PlanFree)

	assert.True(t, free.LimitFor(Feature("whatsapp_blasts")).IsUnlimited())
}

func TestCatalog_TierOf(t *testing.T) {
	catalog := NewCatalog()

	assert.Equal(t, TierFree, catalog.TierOf(PlanFree))
	assert.Equal(t, TierPro, catalog.TierOf(PlanProMonthly))
	assert.Equal(t, TierPro, catalog.TierOf(PlanProAnnual))
	assert.Equal(t, TierEnterprise, catalog.TierOf(PlanEnterprise))
	assert.Equal(t, TierFree, catalog.TierOf(PlanID("bogus")))
}

func TestCatalog_NextTierPlan(t *testing.T) {
	catalog := NewCatalog()

	tests := []struct {
		name   string
		id     PlanID
		want   PlanID
		wantOK bool
	}{
		{"free upgrades to pro monthly", PlanFree, PlanProMonthly, true},
		{"pro monthly upgrades to enterprise", PlanProMonthly, PlanEnterprise, true},
		{"pro annual upgrades to enterprise", PlanProAnnual, PlanEnterprise, true},
		{"enterprise has no upgrade", PlanEnterprise, "", false},
		{"unknown treated as free", PlanID("bogus"), PlanProMonthly, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := catalog.NextTierPlan(tc.id)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCatalog_AnnualTotal(t *testing.T) {
	catalog := NewCatalog()

	total, ok := catalog.Lookup(PlanProAnnual).AnnualTotal()
	require.True(t, ok)
	assert.Equal(t, int64(49990), total)

	_, ok = catalog.Lookup(PlanProMonthly).AnnualTotal()
	assert.False(t, ok)
}

func TestCanonicalPlan_LimitsReturnsCopy(t *testing.T) {
	catalog := NewCatalog()

	limits := catalog.Lookup(PlanFree).Limits()
	limits[FeatureClients] = Unlimited()

	// The catalog itself must stay untouched.
	assert.False(t, catalog.Lookup(PlanFree).LimitFor(FeatureClients).IsUnlimited())
}

func TestNormalizePlanID(t *testing.T) {
	tests := []struct {
		raw  string
		want PlanID
	}{
		{"pro_monthly", PlanProMonthly},
		{"pro_annual", PlanProAnnual},
		{"enterprise", PlanEnterprise},
		{"pro", PlanProMonthly},
		{"free", PlanFree},
		{"", PlanFree},
		{"gold", PlanFree},
	}

	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizePlanID(tc.raw))
		})
	}
}

func TestNormalizeTier(t *testing.T) {
	tests := []struct {
		raw  string
		want Tier
	}{
		{"enterprise", TierEnterprise},
		{"pro", TierPro},
		{"pro_monthly", TierPro},
		{"pro_annual", TierPro},
		{"free", TierFree},
		{"", TierFree},
		{"vip", TierFree},
	}

	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeTier(tc.raw))
		})
	}
}

func TestPlanForTier(t *testing.T) {
	assert.Equal(t, PlanProMonthly, PlanForTier(TierPro))
	assert.Equal(t, PlanEnterprise, PlanForTier(TierEnterprise))
	assert.Equal(t, PlanFree, PlanForTier(TierFree))
	assert.Equal(t, PlanFree, PlanForTier(Tier("mystery")))
}
