package billing

// PlanID identifies a canonical commercial plan.
type PlanID string

const (
	PlanFree       PlanID = "free"
	PlanProMonthly PlanID = "pro_monthly"
	PlanProAnnual  PlanID = "pro_annual"
	PlanEnterprise PlanID = "enterprise"
)

// IsValid checks if the plan id belongs to the closed canonical set
func (p PlanID) IsValid() bool {
	switch p {
	case PlanFree, PlanProMonthly, PlanProAnnual, PlanEnterprise:
		return true
	default:
		return false
	}
}

// String returns the string representation of the plan id
func (p PlanID) String() string {
	return string(p)
}

// NormalizePlanID maps a raw persisted plan id to a canonical plan id.
// Plan ids arrive from external data that may be stale or coarse
// (tier labels stored where plan ids belong), so this is a total
// function: anything unrecognized falls back to the free plan.
func NormalizePlanID(raw string) PlanID {
	switch raw {
	case string(PlanProMonthly), string(PlanProAnnual), string(PlanEnterprise):
		return PlanID(raw)
	case string(TierPro):
		return PlanProMonthly
	default:
		return PlanFree
	}
}

// Tier is the coarse commercial grouping of plans. Organizations without a
// structured subscription row carry only a tier label; it maps onto the
// cheapest plan of the tier.
type Tier string

const (
	TierFree       Tier = "free"
	TierPro        Tier = "pro"
	TierEnterprise Tier = "enterprise"
)

// IsValid checks if the tier is valid
func (t Tier) IsValid() bool {
	switch t {
	case TierFree, TierPro, TierEnterprise:
		return true
	default:
		return false
	}
}

// String returns the string representation of the tier
func (t Tier) String() string {
	return string(t)
}

// NormalizeTier maps a raw tier label (or plan id) to a canonical tier,
// defaulting to free for anything unrecognized.
func NormalizeTier(raw string) Tier {
	switch raw {
	case string(TierEnterprise):
		return TierEnterprise
	case string(TierPro), string(PlanProMonthly), string(PlanProAnnual):
		return TierPro
	default:
		return TierFree
	}
}

// PlanForTier returns the plan an organization-level tier label grants:
// the tier's conventional entry plan.
func PlanForTier(t Tier) PlanID {
	switch t {
	case TierEnterprise:
		return PlanEnterprise
	case TierPro:
		return PlanProMonthly
	default:
		return PlanFree
	}
}

// CanonicalPlan is an immutable plan definition: identity, price, and the
// per-feature limits. Instances only exist inside a Catalog.
type CanonicalPlan struct {
	id           PlanID
	tier         Tier
	displayName  string
	monthlyPrice int64
	annualTotal  *int64
	limits       map[Feature]FeatureLimit
}

// ID returns the canonical plan id
func (p CanonicalPlan) ID() PlanID {
	return p.id
}

// Tier returns the plan's tier
func (p CanonicalPlan) Tier() Tier {
	return p.tier
}

// DisplayName returns the customer-facing plan name
func (p CanonicalPlan) DisplayName() string {
	return p.displayName
}

// MonthlyPrice returns the nominal monthly price in whole currency units
func (p CanonicalPlan) MonthlyPrice() int64 {
	return p.monthlyPrice
}

// AnnualTotal returns the billed-once annual total for annually billed
// plans, or 0 and false otherwise.
func (p CanonicalPlan) AnnualTotal() (int64, bool) {
	if p.annualTotal == nil {
		return 0, false
	}
	return *p.annualTotal, true
}

// LimitFor returns the plan's limit for a feature. A feature absent from
// the plan definition is unlimited; absence is never zero.
func (p CanonicalPlan) LimitFor(feature Feature) FeatureLimit {
	limit, ok := p.limits[feature]
	if !ok {
		return Unlimited()
	}
	return limit
}

// Limits returns a copy of the plan's limit table.
func (p CanonicalPlan) Limits() map[Feature]FeatureLimit {
	out := make(map[Feature]FeatureLimit, len(p.limits))
	for f, l := range p.limits {
		out[f] = l
	}
	return out
}
