package handlers

import (
	"fmt"

	"github.com/chaoscampaign/tracker/internal/dispatcher"
	"github.com/chaoscampaign/tracker/internal/repair"
)

// ForceRepair is the repair bill of a whole force.
type ForceRepair struct {
	ForceID string            `json:"forceId"`
	Name    string            `json:"name"`
	Total   int               `json:"total"`
	Damaged []repair.Estimate `json:"damaged"`
}

// AddForce creates an empty force.
func (s *Service) AddForce(e dispatcher.Event) (any, error) {
	in, err := s.deps.Parser.ParseForceInput(e.Args)
	if err != nil {
		return nil, err
	}
	return s.deps.Forces.Add(in)
}

// UpdateForce patches a force's own fields.
func (s *Service) UpdateForce(e dispatcher.Event) (any, error) {
	ids, rest, err := positional(e, 1)
	if err != nil {
		return nil, err
	}
	patch, err := s.deps.Parser.ParseForcePatch(rest)
	if err != nil {
		return nil, err
	}
	if _, ok := s.deps.Forces.GetByID(ids[0]); !ok {
		return nil, notFound("force", ids[0])
	}
	f, ok := s.deps.Forces.UpdateByID(ids[0], patch)
	if !ok {
		return nil, ErrRejected
	}
	return f, nil
}

// RemoveForce deletes a force and everything in it.
func (s *Service) RemoveForce(e dispatcher.Event) (any, error) {
	args, err := exactly(e, 1)
	if err != nil {
		return nil, err
	}
	removed, err := s.deps.Forces.RemoveByID(args[0])
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, notFound("force", args[0])
	}
	return Removed{ID: args[0], Removed: true}, nil
}

// GetForce returns one force.
func (s *Service) GetForce(e dispatcher.Event) (any, error) {
	args, err := exactly(e, 1)
	if err != nil {
		return nil, err
	}
	f, ok := s.deps.Forces.GetByID(args[0])
	if !ok {
		return nil, notFound("force", args[0])
	}
	return f, nil
}

// ListForces returns every force.
func (s *Service) ListForces(e dispatcher.Event) (any, error) {
	if _, err := exactly(e, 0); err != nil {
		return nil, err
	}
	return s.deps.Forces.All(), nil
}

// RepairForce totals the repair bill of a force and lists its damaged units.
func (s *Service) RepairForce(e dispatcher.Event) (any, error) {
	args, err := exactly(e, 1)
	if err != nil {
		return nil, err
	}
	f, ok := s.deps.Forces.GetByID(args[0])
	if !ok {
		return nil, notFound("force", args[0])
	}

	out := ForceRepair{
		ForceID: f.ID,
		Name:    f.Name,
		Total:   repair.ForceTotal(f),
		Damaged: []repair.Estimate{},
	}
	for _, u := range repair.Damaged(f.Units) {
		out.Damaged = append(out.Damaged, repair.EstimateUnit(u))
	}
	if out.Total > f.Warchest {
		s.writeLog(":FORCE:REPAIR:", fmt.Sprintf("Repairs for %s cost %d, warchest holds %d", f.Name, out.Total, f.Warchest), "WARN")
	}
	return out, nil
}

// AddForceUnit creates a unit inside a force.
func (s *Service) AddForceUnit(e dispatcher.Event) (any, error) {
	ids, rest, err := positional(e, 1)
	if err != nil {
		return nil, err
	}
	in, err := s.deps.Parser.ParseUnitInput(rest)
	if err != nil {
		return nil, err
	}
	return s.deps.Forces.AddUnit(ids[0], in)
}

// UpdateForceUnit patches a unit in whichever force holds it.
func (s *Service) UpdateForceUnit(e dispatcher.Event) (any, error) {
	ids, rest, err := positional(e, 1)
	if err != nil {
		return nil, err
	}
	patch, err := s.deps.Parser.ParseUnitPatch(rest)
	if err != nil {
		return nil, err
	}
	u, ok := s.deps.Forces.UpdateUnit(ids[0], patch)
	if !ok {
		return nil, fmt.Errorf("unit %s: %w", ids[0], ErrRejected)
	}
	return u, nil
}

// RemoveForceUnit removes a unit from a force.
func (s *Service) RemoveForceUnit(e dispatcher.Event) (any, error) {
	args, err := exactly(e, 2)
	if err != nil {
		return nil, err
	}
	removed, err := s.deps.Forces.RemoveUnit(args[0], args[1])
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, notFound("unit", args[1])
	}
	return Removed{ID: args[1], Removed: true}, nil
}

// AddFormation creates a formation inside a force.
func (s *Service) AddFormation(e dispatcher.Event) (any, error) {
	ids, rest, err := positional(e, 1)
	if err != nil {
		return nil, err
	}
	in, err := s.deps.Parser.ParseFormationInput(rest)
	if err != nil {
		return nil, err
	}
	return s.deps.Forces.AddFormation(ids[0], in)
}

// RemoveFormation removes a formation from a force.
func (s *Service) RemoveFormation(e dispatcher.Event) (any, error) {
	args, err := exactly(e, 2)
	if err != nil {
		return nil, err
	}
	removed, err := s.deps.Forces.RemoveFormation(args[0], args[1])
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, notFound("formation", args[1])
	}
	return Removed{ID: args[1], Removed: true}, nil
}
