package stats

import (
	"context"
	"math"
	"time"

	"avenstudio/internal/contract"
	"avenstudio/internal/modules/shared"
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
	if r, ok := req.(DashboardRequest); ok {
		return shared.Result(s.Dashboard(ctx, r))
	}
	return contract.Fail(shared.Unsupported(req))
}

func (s *Service) Decode(raw contract.RawRequest) (contract.Request, error) {
	if raw.Action == "get_dashboard_stats" {
		var r DashboardRequest
		err := shared.BindFilters(raw, &r)
		if err == nil && r.ProjectID == nil {
			err = shared.Bind(raw, &r)
		}
		return r, err
	}
	return nil, shared.UnknownAction(raw.Action)
}

// Dashboard summarises tasks across all projects, or one project when
// ProjectID is set. Tasks that are done are never overdue or due soon.
func (s *Service) Dashboard(ctx context.Context, r DashboardRequest) (Dashboard, error) {
	tasks, err := s.records.Query(ctx, store.Tasks, shared.Filter(map[string]*string{
		"project_id": r.ProjectID,
	}))
	if err != nil {
		return Dashboard{}, err
	}

	out := Dashboard{
		TotalTasks: len(tasks),
		ByStatus:   shared.Count(tasks, "status", "todo"),
		ByPriority: shared.Count(tasks, "priority", "medium"),
		ByCategory: shared.Count(tasks, "category", store.FallbackCategory),
	}
	out.InProgress = out.ByStatus["in-progress"]
	out.Completed = out.ByStatus["done"]
	out.Blocked = out.ByStatus["blocked"]
	if out.TotalTasks > 0 {
		out.CompletionRate = int(math.RoundToEven(float64(out.Completed) / float64(out.TotalTasks) * 100))
	}

	now := s.now()
	soon := now.Add(DueSoonWindowDays * 24 * time.Hour)
	for _, t := range tasks {
		if t.String("status") == "done" {
			continue
		}
		due, ok := shared.DateOf(t, "due_date")
		if !ok {
			continue
		}
		switch {
		case due.Before(now):
			out.Overdue++
		case !due.After(soon):
			out.DueSoon++
		}
	}
	return out, nil
}
