package entitlement

import (
	"errors"
	"fmt"

	"github.com/tripdesk-hq/tripdesk/internal/domain/billing"
)

// ErrUsageUnavailable marks evaluations that failed because the usage
// store could not be read. Callers must treat this differently from a
// successful evaluation with zero usage.
var ErrUsageUnavailable = errors.New("usage store unavailable")

// UsageUnavailableError carries the failing feature alongside the store
// error. It unwraps to ErrUsageUnavailable so callers can branch with
// errors.Is without inspecting the concrete type.
type UsageUnavailableError struct {
	Feature billing.Feature
	Err     error
}

func (e *UsageUnavailableError) Error() string {
	return fmt.Sprintf("usage unavailable for feature %s: %v", e.Feature, e.Err)
}

func (e *UsageUnavailableError) Unwrap() error {
	return ErrUsageUnavailable
}

// NewUsageUnavailableError wraps a usage store failure for the given feature.
func NewUsageUnavailableError(feature billing.Feature, err error) *UsageUnavailableError {
	return &UsageUnavailableError{Feature: feature, Err: err}
}
