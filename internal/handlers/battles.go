package handlers

import (
	"fmt"

	"github.com/chaoscampaign/tracker/internal/dispatcher"
)

// AddBattle records a battle and attaches it to its campaign. A missing
// campaign is logged; the battle is kept.
func (s *Service) AddBattle(e dispatcher.Event) (any, error) {
	in, err := s.deps.Parser.ParseBattleInput(e.Args)
	if err != nil {
		return nil, err
	}
	b, err := s.deps.Battles.Add(in)
	if err != nil {
		return nil, err
	}
	if _, ok := s.deps.Campaigns.AttachBattle(b.CampaignID, b.ID); !ok {
		s.writeLog(":BATTLE:ADD:", fmt.Sprintf("Battle %s not attached to campaign %s", b.ID, b.CampaignID), "WARN")
	}
	return b, nil
}

// UpdateBattle patches a battle.
func (s *Service) UpdateBattle(e dispatcher.Event) (any, error) {
	ids, rest, err := positional(e, 1)
	if err != nil {
		return nil, err
	}
	patch, err := s.deps.Parser.ParseBattlePatch(rest)
	if err != nil {
		return nil, err
	}
	if _, ok := s.deps.Battles.GetByID(ids[0]); !ok {
		return nil, notFound("battle", ids[0])
	}
	b, ok := s.deps.Battles.UpdateByID(ids[0], patch)
	if !ok {
		return nil, ErrRejected
	}
	return b, nil
}

// RemoveBattle deletes a battle and detaches it from its campaign.
func (s *Service) RemoveBattle(e dispatcher.Event) (any, error) {
	args, err := exactly(e, 1)
	if err != nil {
		return nil, err
	}
	b, ok := s.deps.Battles.GetByID(args[0])
	if !ok {
		return nil, notFound("battle", args[0])
	}
	if _, err := s.deps.Battles.RemoveByID(b.ID); err != nil {
		return nil, err
	}
	if _, ok := s.deps.Campaigns.DetachBattle(b.CampaignID, b.ID); !ok {
		s.writeLog(":BATTLE:REMOVE:", fmt.Sprintf("Battle %s not detached from campaign %s", b.ID, b.CampaignID), "WARN")
	}
	return Removed{ID: b.ID, Removed: true}, nil
}

// GetBattle returns one battle.
func (s *Service) GetBattle(e dispatcher.Event) (any, error) {
	args, err := exactly(e, 1)
	if err != nil {
		return nil, err
	}
	b, ok := s.deps.Battles.GetByID(args[0])
	if !ok {
		return nil, notFound("battle", args[0])
	}
	return b, nil
}

// ListBattles returns every battle, or those of one campaign when
// campaign=<id> is given.
func (s *Service) ListBattles(e dispatcher.Event) (any, error) {
	campaignID, ok, err := s.deps.Parser.Lookup(e.Args, "campaign")
	if err != nil {
		return nil, err
	}
	if ok {
		return s.deps.Battles.AllForCampaign(campaignID), nil
	}
	return s.deps.Battles.All(), nil
}
