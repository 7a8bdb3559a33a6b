package store

import (
	"fmt"

	"github.com/chaoscampaign/tracker/internal/codec"
	"github.com/chaoscampaign/tracker/internal/entity"
	"github.com/chaoscampaign/tracker/pkg/core"
)

// ForceStore owns forces together with the units and formations embedded
// in them.
type ForceStore struct {
	c *collection[core.Force]
}

// NewForceStore loads the force slot. Entries in the old flat stat-sheet
// shape fail the shape check and are dropped.
func NewForceStore(deps Dependencies) (*ForceStore, error) {
	c, err := newCollection("forces", DefaultForcesKey, deps,
		func(f core.Force) string { return f.ID },
		core.Force.Clone,
		codec.DecodeForces,
	)
	if err != nil {
		return nil, err
	}
	return &ForceStore{c: c}, nil
}

// Key returns the durable slot key.
func (s *ForceStore) Key() string { return s.c.key }

// All returns every force in insertion order.
func (s *ForceStore) All() []core.Force { return s.c.snapshot() }

// GetByID returns the force with the given id.
func (s *ForceStore) GetByID(id string) (core.Force, bool) { return s.c.get(id) }

// Add creates an empty force and appends it.
func (s *ForceStore) Add(in entity.ForceInput) (core.Force, error) {
	f, err := entity.NewForce(in)
	if err != nil {
		s.c.record("add", outcomeInvalid)
		return core.Force{}, err
	}
	if err := s.c.append(f); err != nil {
		return core.Force{}, err
	}
	return f, nil
}

// UpdateByID patches the name, warchest or scale of a force.
func (s *ForceStore) UpdateByID(id string, p entity.ForcePatch) (core.Force, bool) {
	return s.c.replace("update", id, func(f core.Force) (core.Force, error) {
		return entity.UpdateForce(f, p)
	})
}

// RemoveByID removes a force with everything it owns.
func (s *ForceStore) RemoveByID(id string) (bool, error) { return s.c.remove(id) }

// AddUnit creates a unit inside the force. A missing force is ErrNotFound.
func (s *ForceStore) AddUnit(forceID string, in entity.UnitInput) (core.Unit, error) {
	i := s.c.index(forceID)
	if i < 0 {
		s.c.record("add_unit", outcomeNotFound)
		return core.Unit{}, fmt.Errorf("force %s: %w", forceID, ErrNotFound)
	}
	u, err := entity.NewUnit(in)
	if err != nil {
		s.c.record("add_unit", outcomeInvalid)
		return core.Unit{}, err
	}

	f := s.c.clone(s.c.items[i])
	f.Units = append(f.Units, u)
	if err := s.c.set("add_unit", i, f); err != nil {
		return core.Unit{}, err
	}
	return u, nil
}

// UpdateUnit patches the first unit with the given id across all forces.
func (s *ForceStore) UpdateUnit(unitID string, p entity.UnitPatch) (core.Unit, bool) {
	for i, f := range s.c.items {
		j := unitIndex(f, unitID)
		if j < 0 {
			continue
		}
		updated, ok := s.c.update("update_unit", i, func(f core.Force) (core.Force, error) {
			u, err := entity.UpdateUnit(f.Units[j], p)
			if err != nil {
				return f, err
			}
			f.Units[j] = u
			return f, nil
		})
		if !ok {
			return core.Unit{}, false
		}
		return updated.Units[j], true
	}
	s.c.record("update_unit", outcomeNotFound)
	return core.Unit{}, false
}

// RemoveUnit removes a unit from a force. Formations that reference the
// unit keep the reference.
func (s *ForceStore) RemoveUnit(forceID, unitID string) (bool, error) {
	i := s.c.index(forceID)
	if i < 0 {
		s.c.record("remove_unit", outcomeNotFound)
		return false, nil
	}
	f := s.c.clone(s.c.items[i])
	j := unitIndex(f, unitID)
	if j < 0 {
		s.c.record("remove_unit", outcomeNotFound)
		return false, nil
	}
	f.Units = append(f.Units[:j], f.Units[j+1:]...)
	if err := s.c.set("remove_unit", i, f); err != nil {
		return false, err
	}
	return true, nil
}

// AddFormation creates a formation inside the force. Unit ids are stored
// as given.
func (s *ForceStore) AddFormation(forceID string, in entity.FormationInput) (core.Formation, error) {
	i := s.c.index(forceID)
	if i < 0 {
		s.c.record("add_formation", outcomeNotFound)
		return core.Formation{}, fmt.Errorf("force %s: %w", forceID, ErrNotFound)
	}
	fm, err := entity.BuildFormation(in)
	if err != nil {
		s.c.record("add_formation", outcomeInvalid)
		return core.Formation{}, err
	}

	f := s.c.clone(s.c.items[i])
	f.Formations = append(f.Formations, fm)
	if err := s.c.set("add_formation", i, f); err != nil {
		return core.Formation{}, err
	}
	return fm.Clone(), nil
}

// RemoveFormation removes a formation from a force.
func (s *ForceStore) RemoveFormation(forceID, formationID string) (bool, error) {
	i := s.c.index(forceID)
	if i < 0 {
		s.c.record("remove_formation", outcomeNotFound)
		return false, nil
	}
	f := s.c.clone(s.c.items[i])
	j := -1
	for k, fm := range f.Formations {
		if fm.ID == formationID {
			j = k
			break
		}
	}
	if j < 0 {
		s.c.record("remove_formation", outcomeNotFound)
		return false, nil
	}
	f.Formations = append(f.Formations[:j], f.Formations[j+1:]...)
	if err := s.c.set("remove_formation", i, f); err != nil {
		return false, err
	}
	return true, nil
}

func unitIndex(f core.Force, unitID string) int {
	for j, u := range f.Units {
		if u.ID == unitID {
			return j
		}
	}
	return -1
}
