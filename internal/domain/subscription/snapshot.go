package subscription

import (
	"time"
)

// Snapshot is the billing state of one organization at the moment it was
// read from the store. It is a read model: nothing here mutates it, and a
// fresh snapshot must be re-read after any external state change.
type Snapshot struct {
	organizationID    uint
	activePlanID      string
	status            Status
	trialEnd          *time.Time
	cancelAtPeriodEnd bool
	currentPeriodEnd  *time.Time
	downgradePlanID   *string
	createdAt         time.Time
}

// NewSnapshot reconstructs a subscription snapshot from persistence.
// The raw activePlanID and downgradePlanID are kept as stored; plan id
// normalization happens at resolution time so anomalies stay observable.
func NewSnapshot(
	organizationID uint,
	activePlanID string,
	status Status,
	trialEnd *time.Time,
	cancelAtPeriodEnd bool,
	currentPeriodEnd *time.Time,
	downgradePlanID *string,
	createdAt time.Time,
) Snapshot {
	return Snapshot{
		organizationID:    organizationID,
		activePlanID:      activePlanID,
		status:            status,
		trialEnd:          trialEnd,
		cancelAtPeriodEnd: cancelAtPeriodEnd,
		currentPeriodEnd:  currentPeriodEnd,
		downgradePlanID:   downgradePlanID,
		createdAt:         createdAt,
	}
}

// OrganizationID returns the owning organization's id
func (s Snapshot) OrganizationID() uint {
	return s.organizationID
}

// ActivePlanID returns the stored plan id, unnormalized
func (s Snapshot) ActivePlanID() string {
	return s.activePlanID
}

// Status returns the stored subscription status
func (s Snapshot) Status() Status {
	return s.status
}

// TrialEnd returns when the trial ends, if any
func (s Snapshot) TrialEnd() *time.Time {
	return s.trialEnd
}

// CancelAtPeriodEnd reports whether a cancellation is scheduled for the
// end of the current billing period
func (s Snapshot) CancelAtPeriodEnd() bool {
	return s.cancelAtPeriodEnd
}

// CurrentPeriodEnd returns the end of the current billing period, if known
func (s Snapshot) CurrentPeriodEnd() *time.Time {
	return s.currentPeriodEnd
}

// DowngradePlanID returns the plan id scheduled to take effect at period
// end, if any
func (s Snapshot) DowngradePlanID() *string {
	return s.downgradePlanID
}

// CreatedAt returns when the subscription row was created
func (s Snapshot) CreatedAt() time.Time {
	return s.createdAt
}
