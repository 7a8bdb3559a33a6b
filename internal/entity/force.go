package entity

import (
	"strings"

	"github.com/chaoscampaign/tracker/pkg/core"
	"github.com/google/uuid"
)

// ForceInput is the raw input for a new force. Units and formations start
// empty and are added through the force store.
type ForceInput struct {
	Name     string
	Warchest float64
	Scale    int
}

// ForcePatch is a partial update of a force's own fields.
type ForcePatch struct {
	Name     *string
	Warchest *float64
	Scale    *int
}

func checkForceInput(in ForceInput) *FieldError {
	return firstFailure(
		notBlank("name", in.Name),
		nonNegative("warchest", in.Warchest),
		intOneOf("scale", in.Scale, core.MinForceScale, core.MaxForceScale),
	)
}

// ValidateForceInput reports whether in would produce a valid force.
func ValidateForceInput(in ForceInput) bool {
	return checkForceInput(in) == nil
}

// NewForce validates in and builds an empty force with a fresh id.
func NewForce(in ForceInput) (core.Force, error) {
	if fe := checkForceInput(in); fe != nil {
		return core.Force{}, inputError("force", fe)
	}
	return core.Force{
		ID:         uuid.NewString(),
		Name:       strings.TrimSpace(in.Name),
		Warchest:   floor(in.Warchest),
		Scale:      in.Scale,
		Units:      []core.Unit{},
		Formations: []core.Formation{},
	}, nil
}

// UpdateForce applies p to a copy of f.
func UpdateForce(f core.Force, p ForcePatch) (core.Force, error) {
	next := f.Clone()

	if p.Name != nil {
		if fe := notBlank("name", *p.Name); fe != nil {
			return f, fe
		}
		next.Name = strings.TrimSpace(*p.Name)
	}
	if p.Warchest != nil {
		if fe := nonNegative("warchest", *p.Warchest); fe != nil {
			return f, fe
		}
		next.Warchest = floor(*p.Warchest)
	}
	if p.Scale != nil {
		if fe := intOneOf("scale", *p.Scale, core.MinForceScale, core.MaxForceScale); fe != nil {
			return f, fe
		}
		next.Scale = *p.Scale
	}

	return next, nil
}
