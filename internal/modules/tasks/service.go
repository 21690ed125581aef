package tasks

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
	}
	return nil, shared.UnknownAction(raw.Action)
}

func (s *Service) List(ctx context.Context, r ListRequest) ([]store.Record, error) {
	return s.records.Query(ctx, store.Tasks, shared.Filter(map[string]*string{
		"project_id":  r.ProjectID,
		"status":      r.Status,
		"priority":    r.Priority,
		"category":    r.Category,
		"phase":       r.Phase,
		"assigned_to": r.AssignedTo,
	}))
}

func (s *Service) Get(ctx context.Context, id string) (store.Record, error) {
	if id == "" {
		return nil, apperr.Validation("Task ID required")
	}
	return shared.Require(ctx, s.records, store.Tasks, id, "Task not found")
}

func (s *Service) Create(ctx context.Context, r CreateRequest) (store.Record, error) {
	if err := validator.Check(r); err != nil {
		return nil, err
	}
	projectID := r.ProjectID
	if projectID == "" {
		projectID = store.DefaultProjectID
	}
	priority := r.Priority
	if priority == "" {
		priority = "medium"
	}
	completion := 0
	if r.CompletionPercentage != nil {
		completion = *r.CompletionPercentage
	}

	rec := shared.Stamp(store.Record{
		"project_id":            projectID,
		"title":                 r.Title,
		"description":           r.Description,
		"status":                "todo",
		"priority":              priority,
		"category":              r.Category,
		"phase":                 r.Phase,
		"tags":                  orEmpty(r.Tags),
		"due_date":              r.DueDate,
		"start_date":            r.StartDate,
		"assigned_to":           r.AssignedTo,
		"created_by":            r.CreatedBy,
		"estimated_hours":       r.EstimatedHours,
		"completion_percentage": completion,
		"blocked_by":            orEmpty(r.BlockedBy),
		"comments":              []any{},
		"attachments":           []any{},
		"checklist":             []any{},
		"subtasks":              []any{},
		"custom_fields":         map[string]any{},
	}, s.now())

	id, err := s.records.Insert(ctx, store.Tasks, rec)
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
	shared.Set(patch, "title", r.Title)
	shared.Set(patch, "description", r.Description)
	shared.Set(patch, "status", r.Status)
	shared.Set(patch, "priority", r.Priority)
	shared.Set(patch, "category", r.Category)
	shared.Set(patch, "phase", r.Phase)
	shared.Set(patch, "tags", r.Tags)
	shared.Set(patch, "due_date", r.DueDate)
	shared.Set(patch, "start_date", r.StartDate)
	shared.Set(patch, "assigned_to", r.AssignedTo)
	shared.Set(patch, "estimated_hours", r.EstimatedHours)
	shared.Set(patch, "completion_percentage", r.CompletionPercentage)
	shared.Set(patch, "blocked_by", r.BlockedBy)
	shared.Set(patch, "comments", r.Comments)
	shared.Set(patch, "attachments", r.Attachments)
	shared.Set(patch, "checklist", r.Checklist)
	shared.Set(patch, "subtasks", r.Subtasks)
	shared.Set(patch, "custom_fields", r.CustomFields)

	if _, err := s.records.Update(ctx, store.Tasks, r.ID, patch); err != nil {
		return nil, err
	}
	return s.Get(ctx, r.ID)
}

func (s *Service) Delete(ctx context.Context, id string) (shared.Deleted, error) {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return shared.Deleted{}, err
	}
	ok, err := s.records.Delete(ctx, store.Tasks, id)
	if err != nil {
		return shared.Deleted{}, err
	}
	if !ok {
		return shared.Deleted{}, apperr.NotFound("Task not found")
	}
	return shared.Deleted{Deleted: true, ID: id, ProjectID: rec.String("project_id")}, nil
}

func orEmpty(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
