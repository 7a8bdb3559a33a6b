// pkg/core/battle.go
package core

// BattleType is the scenario a battle was fought as.
type BattleType string

const (
	BattleAssault           BattleType = "assault"
	BattleDefend            BattleType = "defend"
	BattleFlank             BattleType = "flank"
	BattleMeetingEngagement BattleType = "meeting engagement"
	BattleObjectiveRaid     BattleType = "objective raid"
	BattlePursuit           BattleType = "pursuit"
	BattlePushback          BattleType = "pushback"
	BattleRecon             BattleType = "recon"
	BattleRetreat           BattleType = "retreat"
	BattleStrike            BattleType = "strike"
)

// BattleTypes lists every accepted battle type.
var BattleTypes = []BattleType{
	BattleAssault,
	BattleDefend,
	BattleFlank,
	BattleMeetingEngagement,
	BattleObjectiveRaid,
	BattlePursuit,
	BattlePushback,
	BattleRecon,
	BattleRetreat,
	BattleStrike,
}

// battleReconLegacy is the spelling older saves used.
const battleReconLegacy BattleType = "reçon"

// Normalize maps legacy spellings onto the current value.
func (t BattleType) Normalize() BattleType {
	if t == battleReconLegacy {
		return BattleRecon
	}
	return t
}

// BattleResult is the outcome of a battle.
type BattleResult string

const (
	ResultVictory   BattleResult = "victory"
	ResultDefeat    BattleResult = "defeat"
	ResultDraw      BattleResult = "draw"
	ResultPreBattle BattleResult = "pre-battle"
)

// BattleResults lists every accepted battle result.
var BattleResults = []BattleResult{ResultVictory, ResultDefeat, ResultDraw, ResultPreBattle}

// Battle is a single engagement recorded against a campaign.
type Battle struct {
	ID             string       `json:"id"`
	CampaignID     string       `json:"campaignId"`
	Name           string       `json:"name"`
	Type           BattleType   `json:"type"`
	Location       string       `json:"location"`
	Date           string       `json:"date"`
	Description    string       `json:"description"`
	Result         BattleResult `json:"result"`
	WarchestChange int          `json:"warchestChange"`
}
