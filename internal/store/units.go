package store

import (
	"github.com/chaoscampaign/tracker/internal/codec"
	"github.com/chaoscampaign/tracker/internal/entity"
	"github.com/chaoscampaign/tracker/pkg/core"
)

// UnitStore owns the standalone unit roster.
type UnitStore struct {
	c *collection[core.Unit]
}

// NewUnitStore loads the unit slot.
func NewUnitStore(deps Dependencies) (*UnitStore, error) {
	c, err := newCollection("units", DefaultUnitsKey, deps,
		func(u core.Unit) string { return u.ID },
		func(u core.Unit) core.Unit { return u },
		codec.DecodeUnits,
	)
	if err != nil {
		return nil, err
	}
	return &UnitStore{c: c}, nil
}

// Key returns the durable slot key.
func (s *UnitStore) Key() string { return s.c.key }

// All returns every unit in insertion order.
func (s *UnitStore) All() []core.Unit { return s.c.snapshot() }

// GetByID returns the unit with the given id.
func (s *UnitStore) GetByID(id string) (core.Unit, bool) { return s.c.get(id) }

// Add creates a unit and appends it. An invalid input is returned as an
// entity.ErrInvalidInput error and nothing is stored.
func (s *UnitStore) Add(in entity.UnitInput) (core.Unit, error) {
	u, err := entity.NewUnit(in)
	if err != nil {
		s.c.record("add", outcomeInvalid)
		return core.Unit{}, err
	}
	if err := s.c.append(u); err != nil {
		return core.Unit{}, err
	}
	return u, nil
}

// UpdateByID patches the unit with the given id. It reports false when the
// unit does not exist or the patch could not be applied.
func (s *UnitStore) UpdateByID(id string, p entity.UnitPatch) (core.Unit, bool) {
	return s.c.replace("update", id, func(u core.Unit) (core.Unit, error) {
		return entity.UpdateUnit(u, p)
	})
}

// RemoveByID removes the unit with the given id.
func (s *UnitStore) RemoveByID(id string) (bool, error) { return s.c.remove(id) }
