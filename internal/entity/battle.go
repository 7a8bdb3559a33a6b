package entity

import (
	"strings"

	"github.com/chaoscampaign/tracker/pkg/core"
	"github.com/google/uuid"
)

// BattleInput is the raw input for a new battle.
type BattleInput struct {
	CampaignID     string
	Name           string
	Type           core.BattleType
	Location       string
	Date           string
	Description    string
	Result         core.BattleResult
	WarchestChange float64
}

// BattlePatch is a partial update. A battle cannot move to another campaign.
type BattlePatch struct {
	Name           *string
	Type           *core.BattleType
	Location       *string
	Date           *string
	Description    *string
	Result         *core.BattleResult
	WarchestChange *float64
}

func checkBattleInput(in BattleInput) *FieldError {
	return firstFailure(
		notBlank("campaignId", in.CampaignID),
		notBlank("name", in.Name),
		oneOf("type", in.Type.Normalize(), core.BattleTypes),
		oneOf("result", in.Result, core.BattleResults),
		finite("warchestChange", in.WarchestChange),
	)
}

// ValidateBattleInput reports whether in would produce a valid battle.
func ValidateBattleInput(in BattleInput) bool {
	return checkBattleInput(in) == nil
}

// NewBattle validates in and builds a battle with a fresh id.
func NewBattle(in BattleInput) (core.Battle, error) {
	if fe := checkBattleInput(in); fe != nil {
		return core.Battle{}, inputError("battle", fe)
	}
	return core.Battle{
		ID:             uuid.NewString(),
		CampaignID:     strings.TrimSpace(in.CampaignID),
		Name:           strings.TrimSpace(in.Name),
		Type:           in.Type.Normalize(),
		Location:       strings.TrimSpace(in.Location),
		Date:           strings.TrimSpace(in.Date),
		Description:    strings.TrimSpace(in.Description),
		Result:         in.Result,
		WarchestChange: floor(in.WarchestChange),
	}, nil
}

// UpdateBattle applies p to a copy of b.
func UpdateBattle(b core.Battle, p BattlePatch) (core.Battle, error) {
	next := b

	if p.Name != nil {
		if fe := notBlank("name", *p.Name); fe != nil {
			return b, fe
		}
		next.Name = strings.TrimSpace(*p.Name)
	}
	if p.Type != nil {
		bt := p.Type.Normalize()
		if fe := oneOf("type", bt, core.BattleTypes); fe != nil {
			return b, fe
		}
		next.Type = bt
	}
	if p.Location != nil {
		next.Location = strings.TrimSpace(*p.Location)
	}
	if p.Date != nil {
		next.Date = strings.TrimSpace(*p.Date)
	}
	if p.Description != nil {
		next.Description = strings.TrimSpace(*p.Description)
	}
	if p.Result != nil {
		if fe := oneOf("result", *p.Result, core.BattleResults); fe != nil {
			return b, fe
		}
		next.Result = *p.Result
	}
	if p.WarchestChange != nil {
		if fe := finite("warchestChange", *p.WarchestChange); fe != nil {
			return b, fe
		}
		next.WarchestChange = floor(*p.WarchestChange)
	}

	return next, nil
}
