// Package repair computes C-Bill repair costs from a unit snapshot. Nothing
// here mutates its argument.
package repair

import (
	"fmt"
	"strings"

	"github.com/chaoscampaign/tracker/pkg/core"
)

// NoRepairsNeeded is returned by Description for an undamaged operational unit.
const NoRepairsNeeded = "No repairs needed"

// costPerPoint is charged per ton for every missing armor or structure point.
const costPerPoint = 2

// statusMultiplier is charged per ton on top of point damage.
var statusMultiplier = map[core.UnitStatus]int{
	core.StatusOperational: 0,
	core.StatusDamaged:     2,
	core.StatusCrippled:    3,
	core.StatusDestroyed:   5,
	core.StatusRepairing:   0,
}

func missing(current, max int) int {
	if current >= max {
		return 0
	}
	return max - current
}

// ArmorCost is tonnage * 2 per missing armor point.
func ArmorCost(u core.Unit) int {
	return u.Tonnage * costPerPoint * missing(u.CurrentArmor, u.MaxArmor)
}

// StructureCost is tonnage * 2 per missing structure point.
func StructureCost(u core.Unit) int {
	return u.Tonnage * costPerPoint * missing(u.CurrentStructure, u.MaxStructure)
}

// StatusCost is tonnage times the multiplier for the unit's status.
// Unknown statuses cost nothing.
func StatusCost(u core.Unit) int {
	return u.Tonnage * statusMultiplier[u.Status]
}

// TotalCost sums armor, structure and status cost. Operational units cost
// nothing even when they carry point damage.
func TotalCost(u core.Unit) int {
	if u.Status == core.StatusOperational {
		return 0
	}
	return ArmorCost(u) + StructureCost(u) + StatusCost(u)
}

// NeedsRepair reports whether the unit is damaged in any way.
func NeedsRepair(u core.Unit) bool {
	return u.Status != core.StatusOperational ||
		u.CurrentArmor < u.MaxArmor ||
		u.CurrentStructure < u.MaxStructure
}

// Description lists the outstanding damage as comma separated clauses.
func Description(u core.Unit) string {
	if !NeedsRepair(u) {
		return NoRepairsNeeded
	}

	var parts []string
	if n := missing(u.CurrentArmor, u.MaxArmor); n > 0 {
		parts = append(parts, fmt.Sprintf("%d points of armor damage", n))
	}
	if n := missing(u.CurrentStructure, u.MaxStructure); n > 0 {
		parts = append(parts, fmt.Sprintf("%d points of structure damage", n))
	}
	if u.Status != core.StatusOperational && u.Status != core.StatusRepairing {
		parts = append(parts, "Unit is "+string(u.Status))
	}
	return strings.Join(parts, ", ")
}

// ForceTotal sums TotalCost over every unit in the force.
func ForceTotal(f core.Force) int {
	total := 0
	for _, u := range f.Units {
		total += TotalCost(u)
	}
	return total
}

// Damaged returns the units that need repair, in order.
func Damaged(units []core.Unit) []core.Unit {
	out := make([]core.Unit, 0, len(units))
	for _, u := range units {
		if NeedsRepair(u) {
			out = append(out, u)
		}
	}
	return out
}

// Estimate is a repair summary for one unit.
type Estimate struct {
	UnitID      string `json:"unitId"`
	Name        string `json:"name"`
	Armor       int    `json:"armor"`
	Structure   int    `json:"structure"`
	Status      int    `json:"status"`
	Total       int    `json:"total"`
	NeedsRepair bool   `json:"needsRepair"`
	Description string `json:"description"`
}

// EstimateUnit builds the full summary for u.
func EstimateUnit(u core.Unit) Estimate {
	return Estimate{
		UnitID:      u.ID,
		Name:        u.Name,
		Armor:       ArmorCost(u),
		Structure:   StructureCost(u),
		Status:      StatusCost(u),
		Total:       TotalCost(u),
		NeedsRepair: NeedsRepair(u),
		Description: Description(u),
	}
}
