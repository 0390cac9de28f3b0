package billing

import (
	"encoding/json"
	"strconv"
)

// FeatureLimit is a tagged variant: either a non-negative cap or
// unlimited. The persisted sources represent "no limit" inconsistently
// (null in some tables, a UI-facing -1 in others); inside the domain the
// distinction is explicit so zero is never confused with unlimited.
type FeatureLimit struct {
	limited bool
	value   int64
}

// Limited returns a finite limit of n units. Negative input is clamped
// to zero; a zero limit is a real limit that allows nothing, not
// unlimited.
func Limited(n int64) FeatureLimit {
	if n < 0 {
		n = 0
	}
	return FeatureLimit{limited: true, value: n}
}

// Unlimited returns the absent-limit variant.
func Unlimited() FeatureLimit {
	return FeatureLimit{}
}

// IsUnlimited reports whether no cap applies.
func (l FeatureLimit) IsUnlimited() bool {
	return !l.limited
}

// Value returns the cap and true, or 0 and false when unlimited.
func (l FeatureLimit) Value() (int64, bool) {
	if !l.limited {
		return 0, false
	}
	return l.value, true
}

// Allows reports whether one more unit of usage is permitted given the
// current used count.
func (l FeatureLimit) Allows(used int64) bool {
	if !l.limited {
		return true
	}
	return used < l.value
}

// Remaining returns the remaining capacity clamped at zero, or false
// when unlimited.
func (l FeatureLimit) Remaining(used int64) (int64, bool) {
	if !l.limited {
		return 0, false
	}
	remaining := l.value - used
	if remaining < 0 {
		remaining = 0
	}
	return remaining, true
}

// String returns the cap as a decimal string, or "unlimited".
func (l FeatureLimit) String() string {
	if !l.limited {
		return "unlimited"
	}
	return strconv.FormatInt(l.value, 10)
}

// MarshalJSON encodes a finite limit as its number and unlimited as null,
// matching the wire convention consumers already rely on.
func (l FeatureLimit) MarshalJSON() ([]byte, error) {
	if !l.limited {
		return []byte("null"), nil
	}
	return json.Marshal(l.value)
}

// UnmarshalJSON decodes null as unlimited and a number as a finite limit.
func (l *FeatureLimit) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*l = Unlimited()
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*l = Limited(n)
	return nil
}
