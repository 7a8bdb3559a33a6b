// pkg/core/force.go
package core

// FormationType is the organisational style of a formation.
type FormationType string

const (
	FormationLance   FormationType = "lance"
	FormationStar    FormationType = "star"
	FormationLevelII FormationType = "level-ii"
)

// FormationTypes lists every accepted formation type.
var FormationTypes = []FormationType{FormationLance, FormationStar, FormationLevelII}

// Formation groups a subset of a force's units by id.
// UnitIDs are not checked against the force's units.
type Formation struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	Type    FormationType `json:"type"`
	UnitIDs []string      `json:"unitIds"`
}

// Clone returns a copy that shares no slice memory with f.
func (f Formation) Clone() Formation {
	f.UnitIDs = append([]string{}, f.UnitIDs...)
	return f
}

// Force scale bounds.
const (
	MinForceScale = 1
	MaxForceScale = 4
)

// Force is a player's force: a warchest, a size band and the units and
// formations it owns.
type Force struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Warchest   int         `json:"warchest"`
	Scale      int         `json:"scale"`
	Units      []Unit      `json:"units"`
	Formations []Formation `json:"formations"`
}

// Clone returns a deep copy of f.
func (f Force) Clone() Force {
	f.Units = append([]Unit{}, f.Units...)
	formations := make([]Formation, len(f.Formations))
	for i, fm := range f.Formations {
		formations[i] = fm.Clone()
	}
	f.Formations = formations
	return f
}
