// Package subscription interprets an organization's billing state. The
// stored state is written by the external payment layer; this package only
// reads point-in-time snapshots of it and resolves which canonical plan is
// effective at a given instant.
package subscription

// Status represents the lifecycle status of a subscription as reported by
// the payment provider.
type Status string

const (
	StatusTrialing   Status = "trialing"
	StatusActive     Status = "active"
	StatusCanceled   Status = "canceled"
	StatusPastDue    Status = "past_due"
	StatusIncomplete Status = "incomplete"
	StatusPaused     Status = "paused"
)

// ValidStatuses is the set of statuses the payment layer is known to write.
var ValidStatuses = map[Status]bool{
	StatusTrialing:   true,
	StatusActive:     true,
	StatusCanceled:   true,
	StatusPastDue:    true,
	StatusIncomplete: true,
	StatusPaused:     true,
}

// IsValid checks if the status is a known subscription status
func (s Status) IsValid() bool {
	return ValidStatuses[s]
}

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}

// GrantsAccess reports whether the status is one that can carry paid
// entitlements. Only trialing and active subscriptions do; every other
// status resolves to the free plan.
func (s Status) GrantsAccess() bool {
	return s == StatusTrialing || s == StatusActive
}
