// Package entitlement defines the result model for feature limit checks:
// whether an organization may consume one more unit of a metered feature
// under its effective plan.
package entitlement

import (
	"time"

	"github.com/tripdesk-hq/tripdesk/internal/domain/billing"
)

// FeatureLimitStatus is the computed, ephemeral verdict for one feature.
// It is never persisted; it reflects the usage counts as of the evaluation
// instant.
//
// Allowed is an advisory pre-check: it answers whether the next unit of
// usage is permitted at read time, it does not reserve capacity. Two
// concurrent check-then-act sequences can both pass and overshoot the
// limit; hard enforcement needs an atomic conditional increment at the
// store boundary.
type FeatureLimitStatus struct {
	Feature     billing.Feature      `json:"feature"`
	Allowed     bool                 `json:"allowed"`
	PlanID      billing.PlanID       `json:"plan_id"`
	Tier        billing.Tier         `json:"tier"`
	Used        int64                `json:"used"`
	Limit       billing.FeatureLimit `json:"limit"`
	Remaining   *int64               `json:"remaining"`
	Window      billing.Window       `json:"window"`
	ResetAt     *time.Time           `json:"reset_at,omitempty"`
	UpgradePlan *billing.PlanID      `json:"upgrade_plan,omitempty"`
}
