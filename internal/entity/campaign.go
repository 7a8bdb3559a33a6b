package entity

import (
	"strings"

	"github.com/chaoscampaign/tracker/pkg/core"
	"github.com/google/uuid"
)

// CampaignInput is the raw input for a new campaign.
type CampaignInput struct {
	Name           string
	Description    string
	Employer       string
	Unit           string
	Planet         string
	ContractType   core.ContractType
	Scale          int
	Length         float64
	BasePay        float64
	Transportation float64
	Support        float64
	Salvage        float64
	CommandType    core.CommandType
	Warchest       float64
}

// CampaignPatch is a partial update. Id, battle ids and timestamps are not
// patchable.
type CampaignPatch struct {
	Name           *string
	Description    *string
	Employer       *string
	Unit           *string
	Planet         *string
	ContractType   *core.ContractType
	Scale          *int
	Length         *float64
	BasePay        *float64
	Transportation *float64
	Support        *float64
	Salvage        *float64
	CommandType    *core.CommandType
	Warchest       *float64
}

func checkCampaignInput(in CampaignInput) *FieldError {
	return firstFailure(
		notBlank("name", in.Name),
		oneOf("contractType", in.ContractType, core.ContractTypes),
		intOneOf("scale", in.Scale, core.MinCampaignScale, core.MaxCampaignScale),
		nonNegative("length", in.Length),
		nonNegative("basePay", in.BasePay),
		nonNegative("transportation", in.Transportation),
		nonNegative("support", in.Support),
		nonNegative("salvage", in.Salvage),
		oneOf("commandType", in.CommandType.Normalize(), core.CommandTypes),
		finite("warchest", in.Warchest),
	)
}

// ValidateCampaignInput reports whether in would produce a valid campaign.
func ValidateCampaignInput(in CampaignInput) bool {
	return checkCampaignInput(in) == nil
}

// NewCampaign validates in and builds a campaign with a fresh id and no
// battles. Timestamps are left for the caller to stamp.
func NewCampaign(in CampaignInput) (core.Campaign, error) {
	if fe := checkCampaignInput(in); fe != nil {
		return core.Campaign{}, inputError("campaign", fe)
	}
	return core.Campaign{
		ID:             uuid.NewString(),
		Name:           strings.TrimSpace(in.Name),
		Description:    strings.TrimSpace(in.Description),
		Employer:       strings.TrimSpace(in.Employer),
		Unit:           strings.TrimSpace(in.Unit),
		Planet:         strings.TrimSpace(in.Planet),
		ContractType:   in.ContractType,
		Scale:          in.Scale,
		Length:         floor(in.Length),
		BasePay:        floor(in.BasePay),
		Transportation: floor(in.Transportation),
		Support:        floor(in.Support),
		Salvage:        floor(in.Salvage),
		CommandType:    in.CommandType.Normalize(),
		Warchest:       floor(in.Warchest),
		BattleIDs:      []string{},
	}, nil
}

// UpdateCampaign applies p to a copy of c.
func UpdateCampaign(c core.Campaign, p CampaignPatch) (core.Campaign, error) {
	next := c.Clone()

	text := []struct {
		val *string
		dst *string
	}{
		{p.Description, &next.Description},
		{p.Employer, &next.Employer},
		{p.Unit, &next.Unit},
		{p.Planet, &next.Planet},
	}

	if p.Name != nil {
		if fe := notBlank("name", *p.Name); fe != nil {
			return c, fe
		}
		next.Name = strings.TrimSpace(*p.Name)
	}
	for _, t := range text {
		if t.val != nil {
			*t.dst = strings.TrimSpace(*t.val)
		}
	}
	if p.ContractType != nil {
		if fe := oneOf("contractType", *p.ContractType, core.ContractTypes); fe != nil {
			return c, fe
		}
		next.ContractType = *p.ContractType
	}
	if p.Scale != nil {
		if fe := intOneOf("scale", *p.Scale, core.MinCampaignScale, core.MaxCampaignScale); fe != nil {
			return c, fe
		}
		next.Scale = *p.Scale
	}

	amounts := []struct {
		field string
		val   *float64
		dst   *int
	}{
		{"length", p.Length, &next.Length},
		{"basePay", p.BasePay, &next.BasePay},
		{"transportation", p.Transportation, &next.Transportation},
		{"support", p.Support, &next.Support},
		{"salvage", p.Salvage, &next.Salvage},
	}
	for _, a := range amounts {
		if a.val == nil {
			continue
		}
		if fe := nonNegative(a.field, *a.val); fe != nil {
			return c, fe
		}
		*a.dst = floor(*a.val)
	}

	if p.CommandType != nil {
		ct := p.CommandType.Normalize()
		if fe := oneOf("commandType", ct, core.CommandTypes); fe != nil {
			return c, fe
		}
		next.CommandType = ct
	}
	if p.Warchest != nil {
		if fe := finite("warchest", *p.Warchest); fe != nil {
			return c, fe
		}
		next.Warchest = floor(*p.Warchest)
	}

	return next, nil
}
