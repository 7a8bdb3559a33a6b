package entity

import (
	"strings"

	"github.com/chaoscampaign/tracker/pkg/core"
	"github.com/google/uuid"
)

// UnitInput is the raw input for a new unit. Numbers may be fractional and
// are floored on creation.
type UnitInput struct {
	Name             string
	Type             core.UnitType
	PointValue       float64
	IsSupport        bool
	SupportCost      float64
	CurrentArmor     float64
	MaxArmor         float64
	CurrentStructure float64
	MaxStructure     float64
	PilotSkill       float64
	RepairCost       float64
	Status           core.UnitStatus
	Tonnage          float64
}

// UnitPatch is a partial update. Nil fields are left untouched.
type UnitPatch struct {
	Name             *string
	Type             *core.UnitType
	PointValue       *float64
	IsSupport        *bool
	SupportCost      *float64
	CurrentArmor     *float64
	MaxArmor         *float64
	CurrentStructure *float64
	MaxStructure     *float64
	PilotSkill       *float64
	RepairCost       *float64
	Status           *core.UnitStatus
	Tonnage          *float64
}

// Pilot skill bounds (lower is better).
const (
	MinPilotSkill = 0
	MaxPilotSkill = 6
)

func checkUnitInput(in UnitInput) *FieldError {
	return firstFailure(
		notBlank("name", in.Name),
		oneOf("type", in.Type, core.UnitTypes),
		nonNegative("pointValue", in.PointValue),
		nonNegative("supportCost", in.SupportCost),
		nonNegative("currentArmor", in.CurrentArmor),
		atLeast("maxArmor", in.MaxArmor, in.CurrentArmor, "currentArmor"),
		nonNegative("currentStructure", in.CurrentStructure),
		atLeast("maxStructure", in.MaxStructure, in.CurrentStructure, "currentStructure"),
		between("pilotSkill", in.PilotSkill, MinPilotSkill, MaxPilotSkill),
		nonNegative("repairCost", in.RepairCost),
		oneOf("status", in.Status, core.UnitStatuses),
		nonNegative("tonnage", in.Tonnage),
	)
}

// ValidateUnitInput reports whether in would produce a valid unit.
func ValidateUnitInput(in UnitInput) bool {
	return checkUnitInput(in) == nil
}

// NewUnit validates in and builds a unit with a fresh id.
func NewUnit(in UnitInput) (core.Unit, error) {
	if fe := checkUnitInput(in); fe != nil {
		return core.Unit{}, inputError("unit", fe)
	}
	return core.Unit{
		ID:               uuid.NewString(),
		Name:             strings.TrimSpace(in.Name),
		Type:             in.Type,
		PointValue:       floor(in.PointValue),
		IsSupport:        in.IsSupport,
		SupportCost:      floor(in.SupportCost),
		CurrentArmor:     floor(in.CurrentArmor),
		MaxArmor:         floor(in.MaxArmor),
		CurrentStructure: floor(in.CurrentStructure),
		MaxStructure:     floor(in.MaxStructure),
		PilotSkill:       floor(in.PilotSkill),
		RepairCost:       floor(in.RepairCost),
		Status:           in.Status,
		Tonnage:          floor(in.Tonnage),
	}, nil
}

// UpdateUnit applies p to a copy of u. Fields are checked in declaration
// order; max armor and max structure are compared with the current value as
// already updated by the same patch. On error u is returned untouched.
func UpdateUnit(u core.Unit, p UnitPatch) (core.Unit, error) {
	next := u

	if p.Name != nil {
		if fe := notBlank("name", *p.Name); fe != nil {
			return u, fe
		}
		next.Name = strings.TrimSpace(*p.Name)
	}
	if p.Type != nil {
		if fe := oneOf("type", *p.Type, core.UnitTypes); fe != nil {
			return u, fe
		}
		next.Type = *p.Type
	}
	if p.PointValue != nil {
		if fe := nonNegative("pointValue", *p.PointValue); fe != nil {
			return u, fe
		}
		next.PointValue = floor(*p.PointValue)
	}
	if p.IsSupport != nil {
		next.IsSupport = *p.IsSupport
	}
	if p.SupportCost != nil {
		if fe := nonNegative("supportCost", *p.SupportCost); fe != nil {
			return u, fe
		}
		next.SupportCost = floor(*p.SupportCost)
	}
	if p.CurrentArmor != nil {
		if fe := nonNegative("currentArmor", *p.CurrentArmor); fe != nil {
			return u, fe
		}
		next.CurrentArmor = floor(*p.CurrentArmor)
	}
	if p.MaxArmor != nil {
		if fe := atLeast("maxArmor", *p.MaxArmor, float64(next.CurrentArmor), "currentArmor"); fe != nil {
			return u, fe
		}
		next.MaxArmor = floor(*p.MaxArmor)
	}
	if p.CurrentStructure != nil {
		if fe := nonNegative("currentStructure", *p.CurrentStructure); fe != nil {
			return u, fe
		}
		next.CurrentStructure = floor(*p.CurrentStructure)
	}
	if p.MaxStructure != nil {
		if fe := atLeast("maxStructure", *p.MaxStructure, float64(next.CurrentStructure), "currentStructure"); fe != nil {
			return u, fe
		}
		next.MaxStructure = floor(*p.MaxStructure)
	}
	if p.PilotSkill != nil {
		if fe := between("pilotSkill", *p.PilotSkill, MinPilotSkill, MaxPilotSkill); fe != nil {
			return u, fe
		}
		next.PilotSkill = floor(*p.PilotSkill)
	}
	if p.RepairCost != nil {
		if fe := nonNegative("repairCost", *p.RepairCost); fe != nil {
			return u, fe
		}
		next.RepairCost = floor(*p.RepairCost)
	}
	if p.Status != nil {
		if fe := oneOf("status", *p.Status, core.UnitStatuses); fe != nil {
			return u, fe
		}
		next.Status = *p.Status
	}
	if p.Tonnage != nil {
		if fe := nonNegative("tonnage", *p.Tonnage); fe != nil {
			return u, fe
		}
		next.Tonnage = floor(*p.Tonnage)
	}

	// A raised current value must still fit under the (possibly unchanged) max.
	if p.CurrentArmor != nil && next.CurrentArmor > next.MaxArmor {
		return u, &FieldError{Field: "currentArmor", Reason: "must not exceed maxArmor"}
	}
	if p.CurrentStructure != nil && next.CurrentStructure > next.MaxStructure {
		return u, &FieldError{Field: "currentStructure", Reason: "must not exceed maxStructure"}
	}

	return next, nil
}
