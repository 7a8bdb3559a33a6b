package parser

import (
	"github.com/chaoscampaign/tracker/internal/entity"
	"github.com/chaoscampaign/tracker/pkg/core"
)

// ParseUnitInput parses unit fields. Missing keys are zero and left for the
// entity model to reject.
func (p *Parser) ParseUnitInput(args []string) (entity.UnitInput, error) {
	var in entity.UnitInput
	f, err := p.fields(args)
	if err != nil {
		return in, err
	}

	var typ, status string
	in.Name, _ = f.str("name")
	typ, _ = f.str("type")
	in.Type = core.UnitType(typ)
	in.PointValue, _ = f.float("pointValue")
	in.IsSupport, _ = f.boolean("isSupport")
	in.SupportCost, _ = f.float("supportCost")
	in.CurrentArmor, _ = f.float("currentArmor")
	in.MaxArmor, _ = f.float("maxArmor")
	in.CurrentStructure, _ = f.float("currentStructure")
	in.MaxStructure, _ = f.float("maxStructure")
	in.PilotSkill, _ = f.float("pilotSkill")
	in.RepairCost, _ = f.float("repairCost")
	status, _ = f.str("status")
	in.Status = core.UnitStatus(status)
	in.Tonnage, _ = f.float("tonnage")

	return in, f.done()
}

// ParseUnitPatch parses the fields present in args into a patch.
func (p *Parser) ParseUnitPatch(args []string) (entity.UnitPatch, error) {
	var patch entity.UnitPatch
	f, err := p.fields(args)
	if err != nil {
		return patch, err
	}

	patch.Name = opt(f.str("name"))
	if typ, ok := f.str("type"); ok {
		patch.Type = opt(core.UnitType(typ), true)
	}
	patch.PointValue = opt(f.float("pointValue"))
	patch.IsSupport = opt(f.boolean("isSupport"))
	patch.SupportCost = opt(f.float("supportCost"))
	patch.CurrentArmor = opt(f.float("currentArmor"))
	patch.MaxArmor = opt(f.float("maxArmor"))
	patch.CurrentStructure = opt(f.float("currentStructure"))
	patch.MaxStructure = opt(f.float("maxStructure"))
	patch.PilotSkill = opt(f.float("pilotSkill"))
	patch.RepairCost = opt(f.float("repairCost"))
	if status, ok := f.str("status"); ok {
		patch.Status = opt(core.UnitStatus(status), true)
	}
	patch.Tonnage = opt(f.float("tonnage"))

	return patch, f.done()
}

// ParseForceInput parses name, warchest and scale.
func (p *Parser) ParseForceInput(args []string) (entity.ForceInput, error) {
	var in entity.ForceInput
	f, err := p.fields(args)
	if err != nil {
		return in, err
	}
	in.Name, _ = f.str("name")
	in.Warchest, _ = f.float("warchest")
	in.Scale, _ = f.integer("scale")
	return in, f.done()
}

// ParseForcePatch parses the force fields present in args.
func (p *Parser) ParseForcePatch(args []string) (entity.ForcePatch, error) {
	var patch entity.ForcePatch
	f, err := p.fields(args)
	if err != nil {
		return patch, err
	}
	patch.Name = opt(f.str("name"))
	patch.Warchest = opt(f.float("warchest"))
	patch.Scale = opt(f.integer("scale"))
	return patch, f.done()
}

// ParseFormationInput parses name, type and a comma-separated unitIds list.
func (p *Parser) ParseFormationInput(args []string) (entity.FormationInput, error) {
	var in entity.FormationInput
	f, err := p.fields(args)
	if err != nil {
		return in, err
	}
	var typ string
	in.Name, _ = f.str("name")
	typ, _ = f.str("type")
	in.Type = core.FormationType(typ)
	in.UnitIDs, _ = f.list("unitIds")
	return in, f.done()
}

// ParseCampaignInput parses campaign fields.
func (p *Parser) ParseCampaignInput(args []string) (entity.CampaignInput, error) {
	var in entity.CampaignInput
	f, err := p.fields(args)
	if err != nil {
		return in, err
	}

	var contract, command string
	in.Name, _ = f.str("name")
	in.Description, _ = f.str("description")
	in.Employer, _ = f.str("employer")
	in.Unit, _ = f.str("unit")
	in.Planet, _ = f.str("planet")
	contract, _ = f.str("contractType")
	in.ContractType = core.ContractType(contract)
	in.Scale, _ = f.integer("scale")
	in.Length, _ = f.float("length")
	in.BasePay, _ = f.float("basePay")
	in.Transportation, _ = f.float("transportation")
	in.Support, _ = f.float("support")
	in.Salvage, _ = f.float("salvage")
	command, _ = f.str("commandType")
	in.CommandType = core.CommandType(command)
	in.Warchest, _ = f.float("warchest")

	return in, f.done()
}

// ParseCampaignPatch parses the campaign fields present in args.
func (p *Parser) ParseCampaignPatch(args []string) (entity.CampaignPatch, error) {
	var patch entity.CampaignPatch
	f, err := p.fields(args)
	if err != nil {
		return patch, err
	}

	patch.Name = opt(f.str("name"))
	patch.Description = opt(f.str("description"))
	patch.Employer = opt(f.str("employer"))
	patch.Unit = opt(f.str("unit"))
	patch.Planet = opt(f.str("planet"))
	if contract, ok := f.str("contractType"); ok {
		patch.ContractType = opt(core.ContractType(contract), true)
	}
	patch.Scale = opt(f.integer("scale"))
	patch.Length = opt(f.float("length"))
	patch.BasePay = opt(f.float("basePay"))
	patch.Transportation = opt(f.float("transportation"))
	patch.Support = opt(f.float("support"))
	patch.Salvage = opt(f.float("salvage"))
	if command, ok := f.str("commandType"); ok {
		patch.CommandType = opt(core.CommandType(command), true)
	}
	patch.Warchest = opt(f.float("warchest"))

	return patch, f.done()
}

// ParseBattleInput parses battle fields, including the owning campaignId.
func (p *Parser) ParseBattleInput(args []string) (entity.BattleInput, error) {
	var in entity.BattleInput
	f, err := p.fields(args)
	if err != nil {
		return in, err
	}

	var typ, result string
	in.CampaignID, _ = f.str("campaignId")
	in.Name, _ = f.str("name")
	typ, _ = f.str("type")
	in.Type = core.BattleType(typ)
	in.Location, _ = f.str("location")
	in.Date, _ = f.str("date")
	in.Description, _ = f.str("description")
	result, _ = f.str("result")
	in.Result = core.BattleResult(result)
	in.WarchestChange, _ = f.float("warchestChange")

	return in, f.done()
}

// ParseBattlePatch parses the battle fields present in args. campaignId is
// not accepted.
func (p *Parser) ParseBattlePatch(args []string) (entity.BattlePatch, error) {
	var patch entity.BattlePatch
	f, err := p.fields(args)
	if err != nil {
		return patch, err
	}

	patch.Name = opt(f.str("name"))
	if typ, ok := f.str("type"); ok {
		patch.Type = opt(core.BattleType(typ), true)
	}
	patch.Location = opt(f.str("location"))
	patch.Date = opt(f.str("date"))
	patch.Description = opt(f.str("description"))
	if result, ok := f.str("result"); ok {
		patch.Result = opt(core.BattleResult(result), true)
	}
	patch.WarchestChange = opt(f.float("warchestChange"))

	return patch, f.done()
}
