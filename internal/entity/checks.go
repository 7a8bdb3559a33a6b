package entity

import (
	"math"
	"slices"
	"strings"

	"github.com/chaoscampaign/tracker/pkg/core"
)

// floor truncates a number already bounded by finite to an int.
func floor(v float64) int {
	return int(math.Floor(v))
}

func finite(field string, v float64) *FieldError {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &FieldError{Field: field, Reason: "must be a finite number"}
	}
	if math.Abs(v) > core.MaxQuantity {
		return &FieldError{Field: field, Reason: "too large"}
	}
	return nil
}

func nonNegative(field string, v float64) *FieldError {
	if fe := finite(field, v); fe != nil {
		return fe
	}
	if v < 0 {
		return &FieldError{Field: field, Reason: "must not be negative"}
	}
	return nil
}

func between(field string, v, lo, hi float64) *FieldError {
	if fe := finite(field, v); fe != nil {
		return fe
	}
	if v < lo || v > hi {
		return &FieldError{Field: field, Reason: "out of range"}
	}
	return nil
}

// atLeast checks v against a floor taken from another field (max vs current).
func atLeast(field string, v, min float64, minField string) *FieldError {
	if fe := nonNegative(field, v); fe != nil {
		return fe
	}
	if v < min {
		return &FieldError{Field: field, Reason: "must not be below " + minField}
	}
	return nil
}

func notBlank(field, s string) *FieldError {
	if strings.TrimSpace(s) == "" {
		return &FieldError{Field: field, Reason: "must not be blank"}
	}
	return nil
}

func oneOf[T ~string](field string, v T, set []T) *FieldError {
	if !slices.Contains(set, v) {
		return &FieldError{Field: field, Reason: "unknown value " + string(v)}
	}
	return nil
}

func intOneOf(field string, v, lo, hi int) *FieldError {
	if v < lo || v > hi {
		return &FieldError{Field: field, Reason: "out of range"}
	}
	return nil
}

// firstFailure returns the first non-nil check result.
func firstFailure(checks ...*FieldError) *FieldError {
	for _, fe := range checks {
		if fe != nil {
			return fe
		}
	}
	return nil
}
