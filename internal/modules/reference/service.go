// Package reference serves the static UK self-build vocabulary through the
// dispatcher so it is reachable from both HTTP and the generic dispatch
// endpoint.
package reference

import (
	"context"

	"avenstudio/internal/contract"
	"avenstudio/internal/modules/shared"
	"avenstudio/internal/pkg/apperr"
	uk "avenstudio/internal/reference"
)

// tables maps each listing action to its data.
var tables = map[string]func() any{
	"phases":            func() any { return uk.Phases() },
	"budget_categories": func() any { return uk.BudgetCategories() },
	"building_regs":     func() any { return uk.BuildingRegs() },
	"contact_roles":     func() any { return uk.ContactRoles() },
	"document_types":    func() any { return uk.DocumentTypes() },
	"material_units":    func() any { return uk.MaterialUnits() },
	"estimate_duration": func() any { return Estimate() },
}

type Service struct{}

func NewService() *Service { return &Service{} }

func (s *Service) Name() string { return Name }

func (s *Service) Handle(_ context.Context, req contract.Request) contract.Response {
	switch r := req.(type) {
	case Request:
		table, ok := tables[r.Action]
		if !ok {
			return contract.Fail(shared.UnknownAction(r.Action))
		}
		return contract.OK(table())
	case PhaseRequest:
		return shared.Result(Phase(r.ID))
	}
	return contract.Fail(shared.Unsupported(req))
}

func (s *Service) Decode(raw contract.RawRequest) (contract.Request, error) {
	if raw.Action == "phase" {
		return PhaseRequest{ID: raw.ID}, nil
	}
	if _, ok := tables[raw.Action]; ok {
		return Request{Action: raw.Action}, nil
	}
	return nil, shared.UnknownAction(raw.Action)
}

// Phase looks up one build phase.
func Phase(id string) (uk.Phase, error) {
	if id == "" {
		return uk.Phase{}, apperr.Validation("Phase ID required")
	}
	p, ok := uk.PhaseByID(id)
	if !ok {
		return uk.Phase{}, apperr.NotFound("Phase not found")
	}
	return p, nil
}

// Estimate is the typical end-to-end duration of a self-build.
func Estimate() Duration {
	weeks := uk.EstimateDurationWeeks()
	return Duration{
		Weeks:  weeks,
		Months: (weeks + 3) / 4,
		Phases: len(uk.Phases()),
	}
}
