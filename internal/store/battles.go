package store

import (
	"github.com/chaoscampaign/tracker/internal/codec"
	"github.com/chaoscampaign/tracker/internal/entity"
	"github.com/chaoscampaign/tracker/pkg/core"
)

// BattleStore owns the battles of every campaign.
type BattleStore struct {
	c *collection[core.Battle]
}

// NewBattleStore loads the battle slot.
func NewBattleStore(deps Dependencies) (*BattleStore, error) {
	c, err := newCollection("battles", DefaultBattlesKey, deps,
		func(b core.Battle) string { return b.ID },
		func(b core.Battle) core.Battle { return b },
		codec.DecodeBattles,
	)
	if err != nil {
		return nil, err
	}
	return &BattleStore{c: c}, nil
}

// Key returns the durable slot key.
func (s *BattleStore) Key() string { return s.c.key }

// All returns every battle in insertion order.
func (s *BattleStore) All() []core.Battle { return s.c.snapshot() }

// GetByID returns the battle with the given id.
func (s *BattleStore) GetByID(id string) (core.Battle, bool) { return s.c.get(id) }

// AllForCampaign returns the battles recorded against campaignID, in
// insertion order.
func (s *BattleStore) AllForCampaign(campaignID string) []core.Battle {
	return s.c.filter(func(b core.Battle) bool { return b.CampaignID == campaignID })
}

// Add creates a battle and appends it. The campaign reference is not checked.
func (s *BattleStore) Add(in entity.BattleInput) (core.Battle, error) {
	b, err := entity.NewBattle(in)
	if err != nil {
		s.c.record("add", outcomeInvalid)
		return core.Battle{}, err
	}
	if err := s.c.append(b); err != nil {
		return core.Battle{}, err
	}
	return b, nil
}

// UpdateByID patches the battle with the given id.
func (s *BattleStore) UpdateByID(id string, p entity.BattlePatch) (core.Battle, bool) {
	return s.c.replace("update", id, func(b core.Battle) (core.Battle, error) {
		return entity.UpdateBattle(b, p)
	})
}

// RemoveByID removes the battle with the given id.
func (s *BattleStore) RemoveByID(id string) (bool, error) { return s.c.remove(id) }
