package categories

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
		return shared.Result(s.List(ctx))
	case CreateRequest:
		return shared.Result(s.Create(ctx, r))
	case UpdateRequest:
		return shared.Result(s.Update(ctx, r))
	case DeleteRequest:
		return shared.Result(s.Delete(ctx, r.Name))
	}
	return contract.Fail(shared.Unsupported(req))
}

func (s *Service) Decode(raw contract.RawRequest) (contract.Request, error) {
	switch raw.Action {
	case "list":
		return ListRequest{}, nil
	case "create":
		var r CreateRequest
		err := shared.Bind(raw, &r)
		return r, err
	case "update":
		var r UpdateRequest
		err := shared.Bind(raw, &r)
		r.Current = raw.ID
		return r, err
	case "delete":
		return DeleteRequest{Name: raw.ID}, nil
	}
	return nil, shared.UnknownAction(raw.Action)
}

// List returns every category name in ascending order.
func (s *Service) List(ctx context.Context) ([]string, error) {
	recs, err := s.records.Query(ctx, store.Categories, nil)
	if err != nil {
		return nil, err
	}
	shared.SortByText(recs, "name")
	names := make([]string, len(recs))
	for i, r := range recs {
		names[i] = r.String("name")
	}
	return names, nil
}

func (s *Service) exists(ctx context.Context, name string) (bool, error) {
	rec, err := s.records.Get(ctx, store.Categories, name)
	return rec != nil, err
}

func (s *Service) Create(ctx context.Context, r CreateRequest) (Category, error) {
	r.Name = strings.TrimSpace(r.Name)
	if err := validator.Check(r); err != nil {
		return Category{}, err
	}
	found, err := s.exists(ctx, r.Name)
	if err != nil {
		return Category{}, err
	}
	if found {
		return Category{}, apperr.Conflict("Category already exists")
	}

	rec := store.Record{"name": r.Name, "created_at": store.FormatTime(s.now())}
	if _, err := s.records.Insert(ctx, store.Categories, rec); err != nil {
		return Category{}, err
	}
	return Category{Name: r.Name}, nil
}

// Update renames a category and moves its tasks to the new name. The
// fallback category cannot be renamed.
func (s *Service) Update(ctx context.Context, r UpdateRequest) (Category, error) {
	if r.Current == "" {
		return Category{}, apperr.Validation("Category name required")
	}
	r.Name = strings.TrimSpace(r.Name)
	if err := validator.Check(r); err != nil {
		return Category{}, err
	}
	if r.Current == store.FallbackCategory {
		return Category{}, apperr.Protected("Cannot rename default category")
	}
	if r.Current == r.Name {
		return Category{Name: r.Name}, nil
	}

	found, err := s.exists(ctx, r.Current)
	if err != nil {
		return Category{}, err
	}
	if !found {
		return Category{}, apperr.NotFound("Category not found")
	}
	taken, err := s.exists(ctx, r.Name)
	if err != nil {
		return Category{}, err
	}
	if taken {
		return Category{}, apperr.Conflict("Category already exists")
	}

	if _, err := s.records.Update(ctx, store.Categories, r.Current, store.Record{"name": r.Name}); err != nil {
		return Category{}, err
	}
	if _, err := s.records.UpdateWhere(ctx, store.Tasks,
		store.Record{"category": r.Current}, store.Record{"category": r.Name}); err != nil {
		return Category{}, err
	}
	return Category{Name: r.Name}, nil
}

// Delete removes a category after moving its tasks to the fallback
// category, which itself cannot be deleted.
func (s *Service) Delete(ctx context.Context, name string) (Removed, error) {
	if name == "" {
		return Removed{}, apperr.Validation("Category name required")
	}
	if name == store.FallbackCategory {
		return Removed{}, apperr.Protected("Cannot delete default category")
	}
	found, err := s.exists(ctx, name)
	if err != nil {
		return Removed{}, err
	}
	if !found {
		return Removed{}, apperr.NotFound("Category not found")
	}

	moved, err := s.records.UpdateWhere(ctx, store.Tasks,
		store.Record{"category": name}, store.Record{"category": store.FallbackCategory})
	if err != nil {
		return Removed{}, err
	}
	if _, err := s.records.Delete(ctx, store.Categories, name); err != nil {
		return Removed{}, err
	}
	return Removed{Deleted: true, Name: name, TasksMoved: moved, MovedTo: store.FallbackCategory}, nil
}
