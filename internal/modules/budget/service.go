package budget

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
	case SummaryRequest:
		return shared.Result(s.Summary(ctx, r.ProjectID))
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
	case "get_summary":
		var r SummaryRequest
		err := shared.Bind(raw, &r)
		if r.ProjectID == "" {
			r.ProjectID = raw.ID
		}
		return r, err
	}
	return nil, shared.UnknownAction(raw.Action)
}

// withVariance returns a copy of item carrying the derived variance.
func withVariance(item store.Record) store.Record {
	out := item.Clone()
	out["variance"] = item.Float("actual_cost") - item.Float("estimated_cost")
	return out
}

func (s *Service) List(ctx context.Context, r ListRequest) ([]store.Record, error) {
	items, err := s.records.Query(ctx, store.BudgetItems, shared.Filter(map[string]*string{
		"project_id": r.ProjectID,
		"category":   r.Category,
		"status":     r.Status,
	}))
	if err != nil {
		return nil, err
	}
	for i, item := range items {
		items[i] = withVariance(item)
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, id string) (store.Record, error) {
	if id == "" {
		return nil, apperr.Validation("Budget item ID required")
	}
	item, err := shared.Require(ctx, s.records, store.BudgetItems, id, "Budget item not found")
	if err != nil {
		return nil, err
	}
	return withVariance(item), nil
}

func (s *Service) Create(ctx context.Context, r CreateRequest) (store.Record, error) {
	if r.ProjectID == "" {
		return nil, apperr.Validation("Project ID required")
	}
	if strings.TrimSpace(r.ItemName) == "" {
		return nil, apperr.Validation("Item name required")
	}
	category := r.Category
	if category == "" {
		category = "other"
	}

	rec := shared.Stamp(store.Record{
		"project_id":     r.ProjectID,
		"category":       category,
		"item_name":      r.ItemName,
		"estimated_cost": valueOr(r.EstimatedCost),
		"actual_cost":    valueOr(r.ActualCost),
		"supplier":       r.Supplier,
		"quote_date":     r.QuoteDate,
		"status":         "estimated",
		"notes":          r.Notes,
	}, s.now())

	id, err := s.records.Insert(ctx, store.BudgetItems, rec)
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
	shared.Set(patch, "category", r.Category)
	shared.Set(patch, "item_name", r.ItemName)
	shared.Set(patch, "estimated_cost", r.EstimatedCost)
	shared.Set(patch, "actual_cost", r.ActualCost)
	shared.Set(patch, "supplier", r.Supplier)
	shared.Set(patch, "quote_date", r.QuoteDate)
	shared.Set(patch, "status", r.Status)
	shared.Set(patch, "notes", r.Notes)

	if _, err := s.records.Update(ctx, store.BudgetItems, r.ID, patch); err != nil {
		return nil, err
	}
	return s.Get(ctx, r.ID)
}

func (s *Service) Delete(ctx context.Context, id string) (shared.Deleted, error) {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return shared.Deleted{}, err
	}
	ok, err := s.records.Delete(ctx, store.BudgetItems, id)
	if err != nil {
		return shared.Deleted{}, err
	}
	if !ok {
		return shared.Deleted{}, apperr.NotFound("Budget item not found")
	}
	return shared.Deleted{Deleted: true, ID: id, ProjectID: rec.String("project_id")}, nil
}

// Summary totals a project's items overall, per category and per status.
// Percentages are relative to the estimated total and are 0 when there is
// no positive estimate.
func (s *Service) Summary(ctx context.Context, projectID string) (*Summary, error) {
	if projectID == "" {
		return nil, apperr.Validation("Project ID required")
	}
	items, err := s.records.Query(ctx, store.BudgetItems, store.Record{"project_id": projectID})
	if err != nil {
		return nil, err
	}

	sum := &Summary{
		ByCategory: make(map[string]*CategoryTotals),
		ByStatus:   make(map[string]int),
		ItemsCount: len(items),
	}
	for _, item := range items {
		estimated := item.Float("estimated_cost")
		actual := item.Float("actual_cost")
		category := item.String("category")
		if category == "" {
			category = "other"
		}
		status := item.String("status")
		if status == "" {
			status = "estimated"
		}

		sum.TotalEstimated += estimated
		sum.TotalActual += actual

		ct, ok := sum.ByCategory[category]
		if !ok {
			ct = &CategoryTotals{}
			sum.ByCategory[category] = ct
		}
		ct.Estimated += estimated
		ct.Actual += actual
		ct.Variance += actual - estimated
		ct.Count++

		sum.ByStatus[status]++
	}
	sum.TotalVariance = sum.TotalActual - sum.TotalEstimated

	if sum.TotalEstimated > 0 {
		sum.VariancePercentage = shared.Round1(sum.TotalVariance / sum.TotalEstimated * 100)
		sum.SpentPercentage = shared.Round1(sum.TotalActual / sum.TotalEstimated * 100)
	}
	return sum, nil
}

func valueOr(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
