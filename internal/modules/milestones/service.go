package milestones

import (
	"context"

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
	case ByPhaseRequest:
		return shared.Result(s.ByPhase(ctx, r))
	case ByStatusRequest:
		return shared.Result(s.ByStatus(ctx, r))
	case MarkCompleteRequest:
		return shared.Result(s.MarkComplete(ctx, r.ID))
	case TimelineRequest:
		return shared.Result(s.Timeline(ctx, r.ProjectID))
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
		var r UpdateRequest
		err := shared.Bind(raw, &r)
		r.ID = raw.ID
		return r, err
	case "delete":
		return DeleteRequest{ID: raw.ID}, nil
	case "get_by_phase":
		var r ByPhaseRequest
		err := shared.Bind(raw, &r)
		return r, err
	case "get_by_status":
		var r ByStatusRequest
		err := shared.Bind(raw, &r)
		return r, err
	case "mark_complete":
		return MarkCompleteRequest{ID: raw.ID}, nil
	case "get_timeline":
		var r TimelineRequest
		err := shared.Bind(raw, &r)
		return r, err
	}
	return nil, shared.UnknownAction(raw.Action)
}

func (s *Service) query(ctx context.Context, filters store.Record) ([]store.Record, error) {
	ms, err := s.records.Query(ctx, store.Milestones, filters)
	if err != nil {
		return nil, err
	}
	shared.SortByDate(ms, "target_date", false)
	return ms, nil
}

// List returns matching milestones by target date, undated last.
func (s *Service) List(ctx context.Context, r ListRequest) ([]store.Record, error) {
	return s.query(ctx, shared.Filter(map[string]*string{
		"project_id": r.ProjectID,
		"phase":      r.Phase,
		"status":     r.Status,
	}))
}

func (s *Service) Get(ctx context.Context, id string) (store.Record, error) {
	if id == "" {
		return nil, apperr.Validation("Milestone ID required")
	}
	return shared.Require(ctx, s.records, store.Milestones, id, "Milestone not found")
}

func (s *Service) Create(ctx context.Context, r CreateRequest) (store.Record, error) {
	if err := validator.Check(r); err != nil {
		return nil, err
	}
	deps := r.Dependencies
	if deps == nil {
		deps = []string{}
	}

	rec := shared.Stamp(store.Record{
		"project_id":   r.ProjectID,
		"name":         r.Name,
		"status":       "pending",
		"dependencies": deps,
		"notes":        r.Notes,
	}, s.now())
	if r.Phase != "" {
		rec["phase"] = r.Phase
	}
	if r.TargetDate != "" {
		rec["target_date"] = r.TargetDate
	}

	id, err := s.records.Insert(ctx, store.Milestones, rec)
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
	shared.Set(patch, "phase", r.Phase)
	shared.Set(patch, "target_date", r.TargetDate)
	shared.Set(patch, "actual_date", r.ActualDate)
	shared.Set(patch, "status", r.Status)
	shared.Set(patch, "dependencies", r.Dependencies)
	shared.Set(patch, "notes", r.Notes)

	if _, err := s.records.Update(ctx, store.Milestones, r.ID, patch); err != nil {
		return nil, err
	}
	return s.Get(ctx, r.ID)
}

func (s *Service) Delete(ctx context.Context, id string) (shared.Deleted, error) {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return shared.Deleted{}, err
	}
	ok, err := s.records.Delete(ctx, store.Milestones, id)
	if err != nil {
		return shared.Deleted{}, err
	}
	if !ok {
		return shared.Deleted{}, apperr.NotFound("Milestone not found")
	}
	return shared.Deleted{Deleted: true, ID: id, ProjectID: rec.String("project_id")}, nil
}

func (s *Service) ByPhase(ctx context.Context, r ByPhaseRequest) ([]store.Record, error) {
	if r.ProjectID == "" || r.Phase == "" {
		return nil, apperr.Validation("project_id and phase required")
	}
	return s.query(ctx, store.Record{"project_id": r.ProjectID, "phase": r.Phase})
}

func (s *Service) ByStatus(ctx context.Context, r ByStatusRequest) ([]store.Record, error) {
	if r.ProjectID == "" || r.Status == "" {
		return nil, apperr.Validation("project_id and status required")
	}
	return s.query(ctx, store.Record{"project_id": r.ProjectID, "status": r.Status})
}

// MarkComplete sets the milestone completed with today as its actual date.
func (s *Service) MarkComplete(ctx context.Context, id string) (store.Record, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	patch := store.Record{
		"status":      "completed",
		"actual_date": store.FormatTime(s.now()),
	}
	if _, err := s.records.Update(ctx, store.Milestones, id, patch); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func closed(status string) bool {
	return status == "completed" || status == "cancelled"
}

// Timeline builds the schedule of a project. A milestone is delayed when its
// target date has passed and it is neither completed nor cancelled; the
// earliest open milestones that are not yet due are listed as upcoming.
func (s *Service) Timeline(ctx context.Context, projectID string) (Timeline, error) {
	if projectID == "" {
		return Timeline{}, apperr.Validation("project_id required")
	}
	ms, err := s.query(ctx, store.Record{"project_id": projectID})
	if err != nil {
		return Timeline{}, err
	}

	now := s.now()
	out := Timeline{
		ProjectID:          projectID,
		Milestones:         ms,
		TotalCount:         len(ms),
		StatusBreakdown:    make(map[string]int, len(store.MilestoneStatus)),
		DelayedMilestones:  []store.Record{},
		UpcomingMilestones: []store.Record{},
	}
	for _, st := range store.MilestoneStatus {
		out.StatusBreakdown[st] = 0
	}

	for _, m := range ms {
		status := m.String("status")
		if status == "" {
			status = "pending"
		}
		if _, ok := out.StatusBreakdown[status]; ok {
			out.StatusBreakdown[status]++
		}

		target, ok := shared.DateOf(m, "target_date")
		if !ok || closed(status) {
			continue
		}
		if target.Before(now) {
			out.DelayedMilestones = append(out.DelayedMilestones, m)
		} else if len(out.UpcomingMilestones) < UpcomingLimit {
			out.UpcomingMilestones = append(out.UpcomingMilestones, m)
		}
	}
	out.DelayedCount = len(out.DelayedMilestones)
	return out, nil
}
