package projects

import (
	"context"
	"strings"

	"avenstudio/internal/contract"
	"avenstudio/internal/modules/shared"
	"avenstudio/internal/pkg/apperr"
	"avenstudio/internal/pkg/validator"
	"avenstudio/internal/store"
)

type Service struct {
	records shared.Records
	now     shared.Clock
}

func NewService(records shared.Records, now shared.Clock) *Service {
	return &Service{records: records, now: now}
}

func (s *Service) Name() string { return Name }

func (s *Service) Handle(ctx context.Context, req contract.Request) contract.Response {
	switch r := req.(type) {
	case ListRequest:
		return shared.Result(s.List(ctx, r))
	case GetRequest:
		return shared.Result(s.Get(ctx, r.ID))
	case CreateRequest:
		return shared.Result(s.Create(ctx, r))
	case UpdateRequest:
		return shared.Result(s.Update(ctx, r))
	case DeleteRequest:
		return shared.Result(s.Delete(ctx, r.ID))
	case StatsRequest:
		return shared.Result(s.Stats(ctx, r.ID))
	}
	return contract.Fail(shared.Unsupported(req))
}

func (s *Service) Decode(raw contract.RawRequest) (contract.Request, error) {
	switch raw.Action {
	case "list":
		var r ListRequest
		err := shared.BindFilters(raw, &r)
		return r, err
	case "get":
		return GetRequest{ID: raw.ID}, nil
	case "create":
		var r CreateRequest
		err := shared.Bind(raw, &r)
		return r, err
	case "update":
		r := UpdateRequest{}
		err := shared.Bind(raw, &r)
		r.ID = raw.ID
		return r, err
	case "delete":
		return DeleteRequest{ID: raw.ID}, nil
	case "get_stats":
		return StatsRequest{ID: raw.ID}, nil
	}
	return nil, shared.UnknownAction(raw.Action)
}

func (s *Service) List(ctx context.Context, r ListRequest) ([]store.Record, error) {
	return s.records.Query(ctx, store.Projects, shared.Filter(map[string]*string{
		"status":       r.Status,
		"project_type": r.ProjectType,
	}))
}

func (s *Service) Get(ctx context.Context, id string) (store.Record, error) {
	if id == "" {
		return nil, apperr.Validation("Project ID required")
	}
	return shared.Require(ctx, s.records, store.Projects, id, "Project not found")
}

func (s *Service) Create(ctx context.Context, r CreateRequest) (store.Record, error) {
	if strings.TrimSpace(r.Name) == "" {
		return nil, apperr.Validation("Project name required")
	}
	if err := validator.Check(r); err != nil {
		return nil, err
	}
	projectType := r.ProjectType
	if projectType == "" {
		projectType = "self-build"
	}
	budget := 0.0
	if r.BudgetTotal != nil {
		budget = *r.BudgetTotal
	}

	rec := shared.Stamp(store.Record{
		"name":              r.Name,
		"location":          r.Location,
		"project_type":      projectType,
		"start_date":        r.StartDate,
		"target_completion": r.TargetCompletion,
		"status":            "planning",
		"budget_total":      budget,
		"description":       r.Description,
	}, s.now())

	id, err := s.records.Insert(ctx, store.Projects, rec)
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, r UpdateRequest) (store.Record, error) {
	if _, err := s.Get(ctx, r.ID); err != nil {
		return nil, err
	}
	if err := validator.Check(r); err != nil {
		return nil, err
	}

	patch := store.Record{}
	shared.Set(patch, "name", r.Name)
	shared.Set(patch, "location", r.Location)
	shared.Set(patch, "project_type", r.ProjectType)
	shared.Set(patch, "start_date", r.StartDate)
	shared.Set(patch, "target_completion", r.TargetCompletion)
	shared.Set(patch, "status", r.Status)
	shared.Set(patch, "budget_total", r.BudgetTotal)
	shared.Set(patch, "description", r.Description)

	if _, err := s.records.Update(ctx, store.Projects, r.ID, patch); err != nil {
		return nil, err
	}
	return s.Get(ctx, r.ID)
}

// Delete removes a project and, through the engine, everything under it.
// The seeded default project cannot be deleted.
func (s *Service) Delete(ctx context.Context, id string) (shared.Deleted, error) {
	if id == "" {
		return shared.Deleted{}, apperr.Validation("Project ID required")
	}
	if id == store.DefaultProjectID {
		return shared.Deleted{}, apperr.Protected("Cannot delete default project")
	}
	ok, err := s.records.Delete(ctx, store.Projects, id)
	if err != nil {
		return shared.Deleted{}, err
	}
	if !ok {
		return shared.Deleted{}, apperr.NotFound("Project not found")
	}
	return shared.Deleted{Deleted: true, ID: id, ProjectID: id}, nil
}

func (s *Service) Stats(ctx context.Context, id string) (*Stats, error) {
	project, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	byProject := store.Record{"project_id": id}
	children := make(map[string][]store.Record)
	for _, table := range []string{store.Tasks, store.BudgetItems, store.Documents, store.Contacts, store.Milestones, store.Materials} {
		rows, err := s.records.Query(ctx, table, byProject)
		if err != nil {
			return nil, err
		}
		children[table] = rows
	}

	tasks := children[store.Tasks]
	ts := TaskStats{
		Total:    len(tasks),
		ByStatus: shared.Count(tasks, "status", "todo"),
		ByPhase:  shared.Count(tasks, "phase", "unassigned"),
	}
	if ts.Total > 0 {
		ts.CompletionRate = shared.Round1(shared.Percent(float64(ts.ByStatus["done"]), float64(ts.Total)))
	}

	items := children[store.BudgetItems]
	bs := BudgetStats{ItemsCount: len(items)}
	for _, item := range items {
		bs.TotalEstimated += item.Float("estimated_cost")
		bs.TotalActual += item.Float("actual_cost")
	}
	bs.Variance = bs.TotalActual - bs.TotalEstimated

	milestones := children[store.Milestones]
	return &Stats{
		Project: project,
		Tasks:   ts,
		Budget:  bs,
		Milestones: MilestoneStats{
			Total:    len(milestones),
			ByStatus: shared.Count(milestones, "status", "pending"),
		},
		DocumentsCount: len(children[store.Documents]),
		ContactsCount:  len(children[store.Contacts]),
		MaterialsCount: len(children[store.Materials]),
	}, nil
}
