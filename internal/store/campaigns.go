package store

import (
	"slices"

	"github.com/chaoscampaign/tracker/internal/codec"
	"github.com/chaoscampaign/tracker/internal/entity"
	"github.com/chaoscampaign/tracker/pkg/core"
)

// CampaignStore owns the campaigns and stamps their timestamps.
type CampaignStore struct {
	c *collection[core.Campaign]
}

// NewCampaignStore loads the campaign slot.
func NewCampaignStore(deps Dependencies) (*CampaignStore, error) {
	c, err := newCollection("campaigns", DefaultCampaignsKey, deps,
		func(c core.Campaign) string { return c.ID },
		core.Campaign.Clone,
		codec.DecodeCampaigns,
	)
	if err != nil {
		return nil, err
	}
	return &CampaignStore{c: c}, nil
}

func (s *CampaignStore) stamp() string {
	return s.c.now().UTC().Format(core.TimestampLayout)
}

// Key returns the durable slot key.
func (s *CampaignStore) Key() string { return s.c.key }

// All returns every campaign in insertion order.
func (s *CampaignStore) All() []core.Campaign { return s.c.snapshot() }

// GetByID returns the campaign with the given id.
func (s *CampaignStore) GetByID(id string) (core.Campaign, bool) { return s.c.get(id) }

// Add creates a campaign with no battles and both timestamps set to now.
func (s *CampaignStore) Add(in entity.CampaignInput) (core.Campaign, error) {
	c, err := entity.NewCampaign(in)
	if err != nil {
		s.c.record("add", outcomeInvalid)
		return core.Campaign{}, err
	}
	c.CreatedAt = s.stamp()
	c.UpdatedAt = c.CreatedAt
	if err := s.c.append(c); err != nil {
		return core.Campaign{}, err
	}
	return c, nil
}

// UpdateByID patches the campaign with the given id and stamps UpdatedAt.
func (s *CampaignStore) UpdateByID(id string, p entity.CampaignPatch) (core.Campaign, bool) {
	return s.c.replace("update", id, func(c core.Campaign) (core.Campaign, error) {
		updated, err := entity.UpdateCampaign(c, p)
		if err != nil {
			return c, err
		}
		updated.UpdatedAt = s.stamp()
		return updated, nil
	})
}

// RemoveByID removes the campaign with the given id. Its battles are left
// in the battle store.
func (s *CampaignStore) RemoveByID(id string) (bool, error) { return s.c.remove(id) }

// AttachBattle appends battleID to the campaign's battle list unless it is
// already there.
func (s *CampaignStore) AttachBattle(campaignID, battleID string) (core.Campaign, bool) {
	return s.c.replace("attach_battle", campaignID, func(c core.Campaign) (core.Campaign, error) {
		if !slices.Contains(c.BattleIDs, battleID) {
			c.BattleIDs = append(c.BattleIDs, battleID)
		}
		c.UpdatedAt = s.stamp()
		return c, nil
	})
}

// DetachBattle removes every reference to battleID from the campaign.
func (s *CampaignStore) DetachBattle(campaignID, battleID string) (core.Campaign, bool) {
	return s.c.replace("detach_battle", campaignID, func(c core.Campaign) (core.Campaign, error) {
		c.BattleIDs = slices.DeleteFunc(c.BattleIDs, func(id string) bool { return id == battleID })
		c.UpdatedAt = s.stamp()
		return c, nil
	})
}
