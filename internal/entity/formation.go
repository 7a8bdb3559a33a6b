package entity

import (
	"github.com/chaoscampaign/tracker/pkg/core"
	"github.com/google/uuid"
)

// FormationInput is the raw input for a new formation.
type FormationInput struct {
	Name    string
	Type    core.FormationType
	UnitIDs []string
}

func checkFormationInput(in FormationInput) *FieldError {
	return firstFailure(
		notBlank("name", in.Name),
		oneOf("type", in.Type, core.FormationTypes),
	)
}

// ValidateFormationInput reports whether in would produce a valid formation.
// Unit ids are not checked against any force.
func ValidateFormationInput(in FormationInput) bool {
	return checkFormationInput(in) == nil
}

// NewFormation copies in verbatim under a fresh id. Name is not trimmed.
func NewFormation(in FormationInput) core.Formation {
	ids := make([]string, len(in.UnitIDs))
	copy(ids, in.UnitIDs)
	return core.Formation{
		ID:      uuid.NewString(),
		Name:    in.Name,
		Type:    in.Type,
		UnitIDs: ids,
	}
}

// BuildFormation validates in before calling NewFormation.
func BuildFormation(in FormationInput) (core.Formation, error) {
	if fe := checkFormationInput(in); fe != nil {
		return core.Formation{}, inputError("formation", fe)
	}
	return NewFormation(in), nil
}
