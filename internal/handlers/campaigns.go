package handlers

import (
	"github.com/chaoscampaign/tracker/internal/dispatcher"
)

// AddCampaign creates a campaign.
func (s *Service) AddCampaign(e dispatcher.Event) (any, error) {
	in, err := s.deps.Parser.ParseCampaignInput(e.Args)
	if err != nil {
		return nil, err
	}
	return s.deps.Campaigns.Add(in)
}

// UpdateCampaign patches a campaign.
func (s *Service) UpdateCampaign(e dispatcher.Event) (any, error) {
	ids, rest, err := positional(e, 1)
	if err != nil {
		return nil, err
	}
	patch, err := s.deps.Parser.ParseCampaignPatch(rest)
	if err != nil {
		return nil, err
	}
	if _, ok := s.deps.Campaigns.GetByID(ids[0]); !ok {
		return nil, notFound("campaign", ids[0])
	}
	c, ok := s.deps.Campaigns.UpdateByID(ids[0], patch)
	if !ok {
		return nil, ErrRejected
	}
	return c, nil
}

// RemoveCampaign deletes a campaign. Its battles stay in the battle store.
func (s *Service) RemoveCampaign(e dispatcher.Event) (any, error) {
	args, err := exactly(e, 1)
	if err != nil {
		return nil, err
	}
	removed, err := s.deps.Campaigns.RemoveByID(args[0])
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, notFound("campaign", args[0])
	}
	return Removed{ID: args[0], Removed: true}, nil
}

// GetCampaign returns one campaign.
func (s *Service) GetCampaign(e dispatcher.Event) (any, error) {
	args, err := exactly(e, 1)
	if err != nil {
		return nil, err
	}
	c, ok := s.deps.Campaigns.GetByID(args[0])
	if !ok {
		return nil, notFound("campaign", args[0])
	}
	return c, nil
}

// ListCampaigns returns every campaign.
func (s *Service) ListCampaigns(e dispatcher.Event) (any, error) {
	if _, err := exactly(e, 0); err != nil {
		return nil, err
	}
	return s.deps.Campaigns.All(), nil
}
