package subscription

import (
	"time"

	"github.com/tripdesk-hq/tripdesk/internal/domain/billing"
)

// ResolveEffectivePlan maps a subscription snapshot and an instant to the
// plan that governs the organization at that instant. Pure and
// deterministic: the caller supplies now explicitly, and the same inputs
// always produce the same plan id.
//
// Boundary comparisons are inclusive at the boundary instant: at exactly
// currentPeriodEnd (or trialEnd) the period has already ended, so a
// customer neither keeps paid access an instant too long nor loses it an
// instant early.
//
// Statuses other than trialing and active resolve to the free plan; the
// caller is expected to log that normalization rather than propagate a
// stale plan id.
func ResolveEffectivePlan(snapshot Snapshot, now time.Time) billing.PlanID {
	switch snapshot.Status() {
	case StatusTrialing:
		if trialEnded(snapshot.TrialEnd(), now) {
			return billing.PlanFree
		}
		return billing.NormalizePlanID(snapshot.ActivePlanID())

	case StatusActive:
		periodEnded := periodEnded(snapshot.CurrentPeriodEnd(), now)

		if snapshot.CancelAtPeriodEnd() && periodEnded {
			return billing.PlanFree
		}
		if downgrade := snapshot.DowngradePlanID(); downgrade != nil && periodEnded {
			return billing.NormalizePlanID(*downgrade)
		}
		return billing.NormalizePlanID(snapshot.ActivePlanID())

	default:
		return billing.PlanFree
	}
}

// trialEnded reports whether the trial has lapsed by now. A missing
// trialEnd means the trial has no recorded end and is treated as still
// running.
func trialEnded(trialEnd *time.Time, now time.Time) bool {
	if trialEnd == nil {
		return false
	}
	return !now.Before(*trialEnd)
}

// periodEnded reports whether the current billing period has ended by
// now. A missing currentPeriodEnd means scheduled changes have no
// effective instant yet, so the period is treated as still open.
func periodEnded(currentPeriodEnd *time.Time, now time.Time) bool {
	if currentPeriodEnd == nil {
		return false
	}
	return !now.Before(*currentPeriodEnd)
}
