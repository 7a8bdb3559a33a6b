package entity

import (
	"errors"
	"testing"

	"github.com/chaoscampaign/tracker/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBattleInput() BattleInput {
	return BattleInput{
		CampaignID:     "c1",
		Name:           " Battle of Luthien ",
		Type:           core.BattleAssault,
		Location:       "Imperial City",
		Date:           "3052-01-06",
		Result:         core.ResultVictory,
		WarchestChange: -350.5,
	}
}

func TestNewBattle(t *testing.T) {
	b, err := NewBattle(validBattleInput())
	require.NoError(t, err)

	assert.NotEmpty(t, b.ID)
	assert.Equal(t, "c1", b.CampaignID)
	assert.Equal(t, "Battle of Luthien", b.Name)
	assert.Equal(t, -351, b.WarchestChange)
}

func TestNewBattle_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BattleInput)
	}{
		{"no campaign", func(in *BattleInput) { in.CampaignID = "" }},
		{"blank name", func(in *BattleInput) { in.Name = " " }},
		{"unknown type", func(in *BattleInput) { in.Type = "ambush" }},
		{"unknown result", func(in *BattleInput) { in.Result = "rout" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validBattleInput()
			tt.mutate(&in)
			assert.False(t, ValidateBattleInput(in))
			_, err := NewBattle(in)
			assert.True(t, errors.Is(err, ErrInvalidInput))
		})
	}
}

func TestNewBattle_LegacyReconSpelling(t *testing.T) {
	in := validBattleInput()
	in.Type = "reçon"

	b, err := NewBattle(in)
	require.NoError(t, err)
	assert.Equal(t, core.BattleRecon, b.Type)
}

func TestUpdateBattle(t *testing.T) {
	b, err := NewBattle(validBattleInput())
	require.NoError(t, err)

	got, err := UpdateBattle(b, BattlePatch{Result: ptr(core.ResultDraw), WarchestChange: ptr(100.0)})
	require.NoError(t, err)
	assert.Equal(t, core.ResultDraw, got.Result)
	assert.Equal(t, 100, got.WarchestChange)
	assert.Equal(t, b.CampaignID, got.CampaignID)

	got, err = UpdateBattle(b, BattlePatch{Type: ptr(core.BattleType("ambush"))})
	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "type", fe.Field)
	assert.Equal(t, b, got)
}
