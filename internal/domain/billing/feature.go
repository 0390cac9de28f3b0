// Package billing provides the canonical plan catalog for the product's
// commercial offerings. Plan definitions are immutable process-wide data:
// the catalog is built once at startup and injected into everything that
// needs to answer "what does this plan allow".
package billing

import "errors"

// ErrUnknownFeature is returned when a feature name does not match any
// known metered feature.
var ErrUnknownFeature = errors.New("unknown feature")

// Feature identifies a metered product capability whose usage is compared
// against the active plan's limit.
type Feature string

const (
	FeatureClients     Feature = "clients"
	FeatureTrips       Feature = "trips"
	FeatureProposals   Feature = "proposals"
	FeatureTemplates   Feature = "templates"
	FeatureTeamMembers Feature = "team_members"
	FeatureAIRequests  Feature = "ai_requests"
)

// AllFeatures returns every metered feature in a stable order.
func AllFeatures() []Feature {
	return []Feature{
		FeatureClients,
		FeatureTrips,
		FeatureProposals,
		FeatureTemplates,
		FeatureTeamMembers,
		FeatureAIRequests,
	}
}

// IsValid checks if the feature is a known metered feature
func (f Feature) IsValid() bool {
	switch f {
	case FeatureClients, FeatureTrips, FeatureProposals,
		FeatureTemplates, FeatureTeamMembers, FeatureAIRequests:
		return true
	default:
		return false
	}
}

// String returns the string representation of the feature
func (f Feature) String() string {
	return string(f)
}

// Window returns the counting window for the feature. Cumulative features
// (clients, templates, team members) count the current total regardless of
// creation time; recurring features (trips, proposals, AI requests) count
// only records created inside the current UTC calendar month.
func (f Feature) Window() Window {
	switch f {
	case FeatureTrips, FeatureProposals, FeatureAIRequests:
		return WindowMonthly
	default:
		return WindowAllTime
	}
}

// Window represents the time span over which a feature's usage is counted.
type Window string

const (
	WindowAllTime Window = "all_time"
	WindowMonthly Window = "monthly"
)

// IsValid checks if the window is valid
func (w Window) IsValid() bool {
	switch w {
	case WindowAllTime, WindowMonthly:
		return true
	default:
		return false
	}
}

// String returns the string representation of the window
func (w Window) String() string {
	return string(w)
}
