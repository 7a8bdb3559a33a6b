// pkg/core/campaign.go
package core

// ContractType is the kind of contract a campaign is fought under.
type ContractType string

const (
	ContractRaid       ContractType = "Raid"
	ContractExpedition ContractType = "Expedition"
	ContractPirateHunt ContractType = "Pirate Hunt"
	ContractGarrison   ContractType = "Garrison"
	ContractInvasion   ContractType = "Invasion"
	ContractRetainer   ContractType = "Retainer"
)

// ContractTypes lists every accepted contract type.
var ContractTypes = []ContractType{
	ContractRaid,
	ContractExpedition,
	ContractPirateHunt,
	ContractGarrison,
	ContractInvasion,
	ContractRetainer,
}

// CommandType describes who commands the hired unit.
type CommandType string

const (
	CommandIndependent CommandType = "independent"
	CommandLiaison     CommandType = "liaison"
)

// CommandTypes lists every accepted command type.
var CommandTypes = []CommandType{CommandIndependent, CommandLiaison}

// commandLiaisonLegacy is the spelling older saves used.
const commandLiaisonLegacy CommandType = "liason"

// Normalize maps legacy spellings onto the current value.
func (c CommandType) Normalize() CommandType {
	if c == commandLiaisonLegacy {
		return CommandLiaison
	}
	return c
}

// Campaign scale bounds.
const (
	MinCampaignScale = 1
	MaxCampaignScale = 3
)

// TimestampLayout is the ISO-8601 layout used for CreatedAt and UpdatedAt.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Campaign is a contract and the battles fought under it.
// BattleIDs reference battles by id; nothing keeps them in sync with the
// battle collection.
type Campaign struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Description    string       `json:"description"`
	Employer       string       `json:"employer"`
	Unit           string       `json:"unit"`
	Planet         string       `json:"planet"`
	ContractType   ContractType `json:"contractType"`
	Scale          int          `json:"scale"`
	Length         int          `json:"length"`
	BasePay        int          `json:"basePay"`
	Transportation int          `json:"transportation"`
	Support        int          `json:"support"`
	Salvage        int          `json:"salvage"`
	CommandType    CommandType  `json:"commandType"`
	Warchest       int          `json:"warchest"`
	BattleIDs      []string     `json:"battleIds"`
	CreatedAt      string       `json:"createdAt"`
	UpdatedAt      string       `json:"updatedAt"`
}

// Clone returns a copy that shares no slice memory with c.
func (c Campaign) Clone() Campaign {
	c.BattleIDs = append([]string{}, c.BattleIDs...)
	return c
}
