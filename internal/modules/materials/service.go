package materials

import (
	"context"
	"time"

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
	case ByStatusRequest:
		return shared.Result(s.ByStatus(ctx, r))
	case BySupplierRequest:
		return shared.Result(s.BySupplier(ctx, r))
	case MarkDeliveredRequest:
		return shared.Result(s.MarkDelivered(ctx, r.ID))
	case OverdueRequest:
		return shared.Result(s.Overdue(ctx, r.ProjectID))
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
	case "get_by_status":
		var r ByStatusRequest
		err := shared.Bind(raw, &r)
		return r, err
	case "get_by_supplier":
		var r BySupplierRequest
		err := shared.Bind(raw, &r)
		return r, err
	case "mark_delivered":
		return MarkDeliveredRequest{ID: raw.ID}, nil
	case "get_overdue":
		var r OverdueRequest
		err := shared.Bind(raw, &r)
		return r, err
	case "get_summary":
		var r SummaryRequest
		err := shared.Bind(raw, &r)
		return r, err
	}
	return nil, shared.UnknownAction(raw.Action)
}

func (s *Service) query(ctx context.Context, filters store.Record) ([]store.Record, error) {
	ms, err := s.records.Query(ctx, store.Materials, filters)
	if err != nil {
		return nil, err
	}
	shared.SortByDate(ms, "delivery_date", false)
	return ms, nil
}

// List returns matching materials by delivery date, undated last.
func (s *Service) List(ctx context.Context, r ListRequest) ([]store.Record, error) {
	return s.query(ctx, shared.Filter(map[string]*string{
		"project_id":      r.ProjectID,
		"delivery_status": r.DeliveryStatus,
		"supplier_id":     r.SupplierID,
	}))
}

func (s *Service) Get(ctx context.Context, id string) (store.Record, error) {
	if id == "" {
		return nil, apperr.Validation("Material ID required")
	}
	return shared.Require(ctx, s.records, store.Materials, id, "Material not found")
}

func (s *Service) Create(ctx context.Context, r CreateRequest) (store.Record, error) {
	if err := validator.Check(r); err != nil {
		return nil, err
	}
	unit := r.Unit
	if unit == "" {
		unit = "units"
	}

	rec := shared.Stamp(store.Record{
		"project_id":      r.ProjectID,
		"item_name":       r.ItemName,
		"quantity":        r.Quantity,
		"unit":            unit,
		"cost":            r.Cost,
		"lead_time_days":  r.LeadTimeDays,
		"delivery_status": "not-ordered",
		"warranty_info":   r.WarrantyInfo,
		"notes":           r.Notes,
	}, s.now())
	if r.SupplierID != nil && *r.SupplierID != "" {
		rec["supplier_id"] = *r.SupplierID
	}
	if r.DeliveryDate != "" {
		rec["delivery_date"] = r.DeliveryDate
	}

	id, err := s.records.Insert(ctx, store.Materials, rec)
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
	shared.Set(patch, "item_name", r.ItemName)
	shared.Set(patch, "quantity", r.Quantity)
	shared.Set(patch, "unit", r.Unit)
	shared.Set(patch, "cost", r.Cost)
	shared.Set(patch, "lead_time_days", r.LeadTimeDays)
	shared.Set(patch, "delivery_date", r.DeliveryDate)
	shared.Set(patch, "delivery_status", r.DeliveryStatus)
	shared.Set(patch, "warranty_info", r.WarrantyInfo)
	shared.Set(patch, "notes", r.Notes)
	if r.SupplierID != nil {
		if *r.SupplierID == "" {
			patch["supplier_id"] = nil
		} else {
			patch["supplier_id"] = *r.SupplierID
		}
	}

	if _, err := s.records.Update(ctx, store.Materials, r.ID, patch); err != nil {
		return nil, err
	}
	return s.Get(ctx, r.ID)
}

func (s *Service) Delete(ctx context.Context, id string) (shared.Deleted, error) {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return shared.Deleted{}, err
	}
	ok, err := s.records.Delete(ctx, store.Materials, id)
	if err != nil {
		return shared.Deleted{}, err
	}
	if !ok {
		return shared.Deleted{}, apperr.NotFound("Material not found")
	}
	return shared.Deleted{Deleted: true, ID: id, ProjectID: rec.String("project_id")}, nil
}

func (s *Service) ByStatus(ctx context.Context, r ByStatusRequest) ([]store.Record, error) {
	if r.ProjectID == "" || r.DeliveryStatus == "" {
		return nil, apperr.Validation("project_id and delivery_status required")
	}
	return s.query(ctx, store.Record{"project_id": r.ProjectID, "delivery_status": r.DeliveryStatus})
}

func (s *Service) BySupplier(ctx context.Context, r BySupplierRequest) (SupplierMaterials, error) {
	if r.ProjectID == "" || r.SupplierID == "" {
		return SupplierMaterials{}, apperr.Validation("project_id and supplier_id required")
	}
	ms, err := s.query(ctx, store.Record{"project_id": r.ProjectID, "supplier_id": r.SupplierID})
	if err != nil {
		return SupplierMaterials{}, err
	}

	out := SupplierMaterials{SupplierID: r.SupplierID, Materials: ms, Count: len(ms)}
	for _, m := range ms {
		out.TotalCost += m.Float("cost")
	}
	return out, nil
}

func (s *Service) MarkDelivered(ctx context.Context, id string) (store.Record, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if _, err := s.records.Update(ctx, store.Materials, id, store.Record{"delivery_status": "delivered"}); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// overdue reports whether a material was due before now and has been
// ordered but not delivered.
func overdue(m store.Record, now time.Time) bool {
	due, ok := shared.DateOf(m, "delivery_date")
	if !ok || !due.Before(now) {
		return false
	}
	switch m.String("delivery_status") {
	case "delivered", "not-ordered", "":
		return false
	}
	return true
}

// Overdue returns a project's overdue materials, the longest overdue first.
func (s *Service) Overdue(ctx context.Context, projectID string) ([]store.Record, error) {
	if projectID == "" {
		return nil, apperr.Validation("project_id required")
	}
	ms, err := s.query(ctx, store.Record{"project_id": projectID})
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := []store.Record{}
	for _, m := range ms {
		if overdue(m, now) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *Service) Summary(ctx context.Context, projectID string) (Summary, error) {
	if projectID == "" {
		return Summary{}, apperr.Validation("project_id required")
	}
	ms, err := s.records.Query(ctx, store.Materials, store.Record{"project_id": projectID})
	if err != nil {
		return Summary{}, err
	}

	now := s.now()
	out := Summary{
		ProjectID:  projectID,
		TotalItems: len(ms),
		ByStatus:   make(map[string]int, len(store.DeliveryStatuses)),
		BySupplier: map[string]*SupplierTotals{},
	}
	for _, st := range store.DeliveryStatuses {
		out.ByStatus[st] = 0
	}

	for _, m := range ms {
		status := m.String("delivery_status")
		if status == "" {
			status = "not-ordered"
		}
		if _, ok := out.ByStatus[status]; ok {
			out.ByStatus[status]++
		}

		cost := m.Float("cost")
		out.TotalCost += cost

		if supplier := m.String("supplier_id"); supplier != "" {
			t, ok := out.BySupplier[supplier]
			if !ok {
				t = &SupplierTotals{}
				out.BySupplier[supplier] = t
			}
			t.Count++
			t.TotalCost += cost
		}

		if overdue(m, now) {
			out.OverdueCount++
		}
	}
	return out, nil
}
