package codec

import (
	"errors"
	"strings"
	"testing"

	"github.com/chaoscampaign/tracker/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const unitJSON = `{"id":"u1","name":"Hunchback","type":"mech","pointValue":30,"isSupport":false,"supportCost":0,` +
	`"currentArmor":100,"maxArmor":160,"currentStructure":80,"maxStructure":80,"pilotSkill":4,"repairCost":0,` +
	`"status":"damaged","tonnage":50}`

func TestDecodeUnits(t *testing.T) {
	got, err := DecodeUnits([]byte(`[` + unitJSON + `]`))
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Empty(t, got.Dropped)

	u := got.Items[0]
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, core.UnitTypeMech, u.Type)
	assert.Equal(t, 160, u.MaxArmor)
	assert.Equal(t, core.StatusDamaged, u.Status)
}

func TestDecodeUnits_DropsMalformedEntries(t *testing.T) {
	payload := `[` + unitJSON + `,
		{"id":"u2","name":"No tonnage","type":"tank"},
		{"id":"u3","name":7},
		"not an object",
		`+strings.Replace(unitJSON, `"maxArmor":160`, `"maxArmor":1e30`, 1)+`
	]`

	got, err := DecodeUnits([]byte(payload))
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "u1", got.Items[0].ID)
	require.Len(t, got.Dropped, 4)
	assert.Equal(t, "[1]", got.Dropped[0].Path)
	assert.Equal(t, "pointValue", got.Dropped[0].Field)
	assert.Equal(t, "name", got.Dropped[1].Field)
	assert.Equal(t, "[3]", got.Dropped[2].Path)
	assert.Equal(t, "[4]", got.Dropped[3].Path)
	assert.Equal(t, "maxArmor", got.Dropped[3].Field)
	assert.Equal(t, "out of range", got.Dropped[3].Reason)
}

func TestDecode_MalformedPayload(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"invalid json", `[{"id":`},
		{"object", `{"id":"u1"}`},
		{"number", `42`},
		{"empty", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeBattles([]byte(tt.payload))
			assert.True(t, errors.Is(err, ErrMalformed))
			assert.NotNil(t, got.Items)
			assert.Empty(t, got.Items)
		})
	}
}

func TestDecodeForces_NestedAndLegacy(t *testing.T) {
	payload := `[
		{"id":"f1","name":"Gray Death Legion","warchest":5000,"scale":2,
		 "units":[` + unitJSON + `,{"id":"bad"}],
		 "formations":[{"id":"fm1","name":"Command","type":"lance","unitIds":["u1","gone"]}]},
		{"id":"f2","name":"No formations yet","warchest":0,"scale":1,"units":[]},
		` + unitJSON + `
	]`

	got, err := DecodeForces([]byte(payload))
	require.NoError(t, err)
	require.Len(t, got.Items, 2)

	f := got.Items[0]
	assert.Equal(t, 5000, f.Warchest)
	require.Len(t, f.Units, 1)
	assert.Equal(t, "u1", f.Units[0].ID)
	require.Len(t, f.Formations, 1)
	assert.Equal(t, []string{"u1", "gone"}, f.Formations[0].UnitIDs)

	assert.NotNil(t, got.Items[1].Formations)
	assert.Empty(t, got.Items[1].Formations)

	// one nested unit plus the flat legacy record
	require.Len(t, got.Dropped, 2)
	assert.Equal(t, "[0].units[1]", got.Dropped[0].Path)
	assert.Equal(t, "[2]", got.Dropped[1].Path)
	assert.Equal(t, "warchest", got.Dropped[1].Field)
}

func TestDecodeCampaigns_NormalisesLegacyCommandType(t *testing.T) {
	payload := `[{"id":"c1","name":"Bulldog","description":"","employer":"DCMS","unit":"ELH","planet":"Huntress",
		"contractType":"Invasion","scale":3,"length":6,"basePay":100,"transportation":0,"support":0,"salvage":25,
		"commandType":"liason","warchest":-50,"createdAt":"2024-01-01T00:00:00.000Z","updatedAt":"2024-01-01T00:00:00.000Z"}]`

	got, err := DecodeCampaigns([]byte(payload))
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, core.CommandLiaison, got.Items[0].CommandType)
	assert.Equal(t, -50, got.Items[0].Warchest)
	assert.Equal(t, []string{}, got.Items[0].BattleIDs)
}

func TestDecodeBattles(t *testing.T) {
	payload := `[{"id":"b1","campaignId":"c1","name":"Luthien","type":"reçon","location":"","date":"3052-01-06",
		"description":"","result":"victory","warchestChange":-250}]`

	got, err := DecodeBattles([]byte(payload))
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, core.BattleRecon, got.Items[0].Type)
	assert.Equal(t, -250, got.Items[0].WarchestChange)
}

func TestEncode_RoundTrip(t *testing.T) {
	in := []core.Force{{
		ID: "f1", Name: "Kell Hounds", Warchest: 10, Scale: 3,
		Units:      []core.Unit{{ID: "u1", Name: "Wolfhound", Type: core.UnitTypeMech, Status: core.StatusOperational, Tonnage: 35}},
		Formations: []core.Formation{{ID: "fm1", Name: "Recon", Type: core.FormationLance, UnitIDs: []string{"u1"}}},
	}}

	b, err := Encode(in)
	require.NoError(t, err)

	got, err := DecodeForces(b)
	require.NoError(t, err)
	assert.Empty(t, got.Dropped)
	assert.Equal(t, in, got.Items)
}

func TestEncode_Nil(t *testing.T) {
	b, err := Encode[core.Unit](nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))
}
