package billing

// Catalog is the process-wide read-only table of canonical plans. It is a
// plain value built once at startup and passed to whatever resolves or
// evaluates plans; nothing mutates it after construction.
type Catalog struct {
	plans map[PlanID]CanonicalPlan
	order []PlanID
}

func annualTotal(n int64) *int64 {
	return &n
}

// NewCatalog builds the canonical plan catalog.
func NewCatalog() *Catalog {
	plans := []CanonicalPlan{
		{
			id:           PlanFree,
			tier:         TierFree,
			displayName:  "Starter",
			monthlyPrice: 0,
			limits: map[Feature]FeatureLimit{
				FeatureClients:     Limited(10),
				FeatureTrips:       Limited(5),
				FeatureProposals:   Limited(5),
				FeatureTemplates:   Limited(3),
				FeatureTeamMembers: Limited(1),
				FeatureAIRequests:  Limited(50),
			},
		},
		{
			id:           PlanProMonthly,
			tier:         TierPro,
			displayName:  "Pro",
			monthlyPrice: 4999,
			limits: map[Feature]FeatureLimit{
				FeatureClients:     Unlimited(),
				FeatureTrips:       Unlimited(),
				FeatureProposals:   Unlimited(),
				FeatureTemplates:   Limited(6),
				FeatureTeamMembers: Limited(5),
				FeatureAIRequests:  Limited(500),
			},
		},
		{
			id:           PlanProAnnual,
			tier:         TierPro,
			displayName:  "Pro (Annual)",
			monthlyPrice: 4166,
			annualTotal:  annualTotal(49990),
			limits: map[Feature]FeatureLimit{
				FeatureClients:     Unlimited(),
				FeatureTrips:       Unlimited(),
				FeatureProposals:   Unlimited(),
				FeatureTemplates:   Limited(6),
				FeatureTeamMembers: Limited(5),
				FeatureAIRequests:  Limited(500),
			},
		},
		{
			id:           PlanEnterprise,
			tier:         TierEnterprise,
			displayName:  "Enterprise",
			monthlyPrice: 15000,
			limits: map[Feature]FeatureLimit{
				FeatureClients:     Unlimited(),
				FeatureTrips:       Unlimited(),
				FeatureProposals:   Unlimited(),
				FeatureTemplates:   Unlimited(),
				FeatureTeamMembers: Unlimited(),
				FeatureAIRequests:  Unlimited(),
			},
		},
	}

	byID := make(map[PlanID]CanonicalPlan, len(plans))
	order := make([]PlanID, 0, len(plans))
	for _, p := range plans {
		byID[p.id] = p
		order = append(order, p.id)
	}

	return &Catalog{plans: byID, order: order}
}

// Lookup returns the canonical plan for an id. Total over all inputs:
// an unknown id resolves to the free plan's definition rather than
// erroring, because plan ids originate from persisted data that may be
// stale. Callers that care about the anomaly should compare the returned
// plan's id against the input and log the mismatch.
func (c *Catalog) Lookup(id PlanID) CanonicalPlan {
	if plan, ok := c.plans[id]; ok {
		return plan
	}
	return c.plans[PlanFree]
}

// TierOf returns the tier of a plan id, normalizing unknown ids to free.
func (c *Catalog) TierOf(id PlanID) Tier {
	return c.Lookup(id).Tier()
}

// NextTierPlan returns the conventional upgrade target one tier above the
// given plan, or false at the top tier. Free upgrades to the monthly pro
// plan; both pro plans upgrade to enterprise.
func (c *Catalog) NextTierPlan(id PlanID) (PlanID, bool) {
	switch c.TierOf(id) {
	case TierFree:
		return PlanProMonthly, true
	case TierPro:
		return PlanEnterprise, true
	default:
		return "", false
	}
}

// Plans returns every canonical plan in catalog order.
func (c *Catalog) Plans() []CanonicalPlan {
	out := make([]CanonicalPlan, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.plans[id])
	}
	return out
}
