package handlers

import (
	"github.com/chaoscampaign/tracker/internal/dispatcher"
	"github.com/chaoscampaign/tracker/internal/repair"
)

// AddUnit creates a unit in the standalone roster.
func (s *Service) AddUnit(e dispatcher.Event) (any, error) {
	in, err := s.deps.Parser.ParseUnitInput(e.Args)
	if err != nil {
		return nil, err
	}
	return s.deps.Units.Add(in)
}

// UpdateUnit patches a roster unit.
func (s *Service) UpdateUnit(e dispatcher.Event) (any, error) {
	ids, rest, err := positional(e, 1)
	if err != nil {
		return nil, err
	}
	patch, err := s.deps.Parser.ParseUnitPatch(rest)
	if err != nil {
		return nil, err
	}
	if _, ok := s.deps.Units.GetByID(ids[0]); !ok {
		return nil, notFound("unit", ids[0])
	}
	u, ok := s.deps.Units.UpdateByID(ids[0], patch)
	if !ok {
		return nil, ErrRejected
	}
	return u, nil
}

// RemoveUnit deletes a roster unit.
func (s *Service) RemoveUnit(e dispatcher.Event) (any, error) {
	args, err := exactly(e, 1)
	if err != nil {
		return nil, err
	}
	removed, err := s.deps.Units.RemoveByID(args[0])
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, notFound("unit", args[0])
	}
	return Removed{ID: args[0], Removed: true}, nil
}

// GetUnit returns one roster unit.
func (s *Service) GetUnit(e dispatcher.Event) (any, error) {
	args, err := exactly(e, 1)
	if err != nil {
		return nil, err
	}
	u, ok := s.deps.Units.GetByID(args[0])
	if !ok {
		return nil, notFound("unit", args[0])
	}
	return u, nil
}

// ListUnits returns the roster in insertion order.
func (s *Service) ListUnits(e dispatcher.Event) (any, error) {
	if _, err := exactly(e, 0); err != nil {
		return nil, err
	}
	return s.deps.Units.All(), nil
}

// RepairUnit returns the repair estimate of a roster unit.
func (s *Service) RepairUnit(e dispatcher.Event) (any, error) {
	args, err := exactly(e, 1)
	if err != nil {
		return nil, err
	}
	u, ok := s.deps.Units.GetByID(args[0])
	if !ok {
		return nil, notFound("unit", args[0])
	}
	return repair.EstimateUnit(u), nil
}
