package codec

import (
	"fmt"

	"github.com/chaoscampaign/tracker/pkg/core"
	"github.com/tidwall/gjson"
)

// DecodeUnits decodes a units slot.
func DecodeUnits(payload []byte) (Decoded[core.Unit], error) {
	return decodeArray[core.Unit](payload, readUnit)
}

// DecodeForces decodes a forces slot. Flat stat-sheet records from older
// saves have no warchest or units and are dropped.
func DecodeForces(payload []byte) (Decoded[core.Force], error) {
	return decodeArray[core.Force](payload, readForce)
}

// DecodeCampaigns decodes a campaigns slot.
func DecodeCampaigns(payload []byte) (Decoded[core.Campaign], error) {
	return decodeArray[core.Campaign](payload, readCampaign)
}

// DecodeBattles decodes a battles slot.
func DecodeBattles(payload []byte) (Decoded[core.Battle], error) {
	return decodeArray[core.Battle](payload, readBattle)
}

func readUnit(r *reader) (core.Unit, []*EntryError) {
	return core.Unit{
		ID:               r.str("id"),
		Name:             r.str("name"),
		Type:             core.UnitType(r.str("type")),
		PointValue:       r.num("pointValue"),
		IsSupport:        r.boolean("isSupport"),
		SupportCost:      r.num("supportCost"),
		CurrentArmor:     r.num("currentArmor"),
		MaxArmor:         r.num("maxArmor"),
		CurrentStructure: r.num("currentStructure"),
		MaxStructure:     r.num("maxStructure"),
		PilotSkill:       r.num("pilotSkill"),
		RepairCost:       r.num("repairCost"),
		Status:           core.UnitStatus(r.str("status")),
		Tonnage:          r.num("tonnage"),
	}, nil
}

func readFormation(r *reader) (core.Formation, []*EntryError) {
	return core.Formation{
		ID:      r.str("id"),
		Name:    r.str("name"),
		Type:    core.FormationType(r.str("type")),
		UnitIDs: r.strings("unitIds", true),
	}, nil
}

func readForce(r *reader) (core.Force, []*EntryError) {
	f := core.Force{
		ID:       r.str("id"),
		Name:     r.str("name"),
		Warchest: r.num("warchest"),
		Scale:    r.num("scale"),
	}
	units := r.list("units", false)
	formations := r.list("formations", true)
	if r.err != nil {
		return f, nil
	}

	var dropped []*EntryError
	f.Units = readNested[core.Unit](r.path+".units", units, readUnit, &dropped)
	f.Formations = readNested[core.Formation](r.path+".formations", formations, readFormation, &dropped)
	return f, dropped
}

// readNested decodes an embedded collection, dropping malformed elements
// without dropping the owner.
func readNested[T any](path string, elems []gjson.Result, read entryFunc[T], dropped *[]*EntryError) []T {
	out := make([]T, 0, len(elems))
	for i, e := range elems {
		v, nested, err := decodeEntry(fmt.Sprintf("%s[%d]", path, i), e, read)
		*dropped = append(*dropped, nested...)
		if err != nil {
			*dropped = append(*dropped, err)
			continue
		}
		out = append(out, v)
	}
	return out
}

func readCampaign(r *reader) (core.Campaign, []*EntryError) {
	return core.Campaign{
		ID:             r.str("id"),
		Name:           r.str("name"),
		Description:    r.str("description"),
		Employer:       r.str("employer"),
		Unit:           r.str("unit"),
		Planet:         r.str("planet"),
		ContractType:   core.ContractType(r.str("contractType")),
		Scale:          r.num("scale"),
		Length:         r.num("length"),
		BasePay:        r.num("basePay"),
		Transportation: r.num("transportation"),
		Support:        r.num("support"),
		Salvage:        r.num("salvage"),
		CommandType:    core.CommandType(r.str("commandType")).Normalize(),
		Warchest:       r.num("warchest"),
		BattleIDs:      r.strings("battleIds", true),
		CreatedAt:      r.str("createdAt"),
		UpdatedAt:      r.str("updatedAt"),
	}, nil
}

func readBattle(r *reader) (core.Battle, []*EntryError) {
	return core.Battle{
		ID:             r.str("id"),
		CampaignID:     r.str("campaignId"),
		Name:           r.str("name"),
		Type:           core.BattleType(r.str("type")).Normalize(),
		Location:       r.str("location"),
		Date:           r.str("date"),
		Description:    r.str("description"),
		Result:         core.BattleResult(r.str("result")),
		WarchestChange: r.num("warchestChange"),
	}, nil
}
