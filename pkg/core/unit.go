// pkg/core/unit.go
package core

// MaxQuantity bounds the magnitude of every numeric field. Repair costs
// multiply tonnage by damage points, so both stay well inside int64.
const MaxQuantity = 1_000_000_000

// UnitType classifies a unit's chassis.
type UnitType string

const (
	UnitTypeMech     UnitType = "mech"
	UnitTypeTank     UnitType = "tank"
	UnitTypeInfantry UnitType = "infantry"
)

// UnitTypes lists every accepted unit type.
var UnitTypes = []UnitType{UnitTypeMech, UnitTypeTank, UnitTypeInfantry}

// UnitStatus is the readiness state of a unit.
type UnitStatus string

const (
	StatusOperational UnitStatus = "operational"
	StatusDamaged     UnitStatus = "damaged"
	StatusCrippled    UnitStatus = "crippled"
	StatusDestroyed   UnitStatus = "destroyed"
	StatusRepairing   UnitStatus = "repairing"
)

// UnitStatuses lists every accepted unit status.
var UnitStatuses = []UnitStatus{
	StatusOperational,
	StatusDamaged,
	StatusCrippled,
	StatusDestroyed,
	StatusRepairing,
}

// Unit is a single combat asset's stat sheet.
// CurrentArmor <= MaxArmor and CurrentStructure <= MaxStructure hold for
// every unit produced by the entity package.
type Unit struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Type             UnitType   `json:"type"`
	PointValue       int        `json:"pointValue"`
	IsSupport        bool       `json:"isSupport"`
	SupportCost      int        `json:"supportCost"`
	CurrentArmor     int        `json:"currentArmor"`
	MaxArmor         int        `json:"maxArmor"`
	CurrentStructure int        `json:"currentStructure"`
	MaxStructure     int        `json:"maxStructure"`
	PilotSkill       int        `json:"pilotSkill"`
	RepairCost       int        `json:"repairCost"`
	Status           UnitStatus `json:"status"`
	Tonnage          int        `json:"tonnage"`
}
