package contacts

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

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
	case ByRoleRequest:
		return shared.Result(s.ByRole(ctx, r))
	case AddNoteRequest:
		return shared.Result(s.AddNote(ctx, r))
	case AddContractRequest:
		return shared.Result(s.AddContract(ctx, r))
	case RateRequest:
		return shared.Result(s.Rate(ctx, r))
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
	case "get_by_role":
		var r ByRoleRequest
		err := shared.Bind(raw, &r)
		return r, err
	case "add_note":
		r := AddNoteRequest{ContactID: raw.ID}
		err := shared.Bind(raw, &r)
		return r, err
	case "add_contract":
		r := AddContractRequest{ContactID: raw.ID}
		err := shared.Bind(raw, &r)
		return r, err
	case "rate_contact", "rate":
		r := RateRequest{ContactID: raw.ID}
		err := shared.Bind(raw, &r)
		return r, err
	}
	return nil, shared.UnknownAction(raw.Action)
}

func checkRating(field string, v *int) error {
	if v != nil && (*v < 1 || *v > 5) {
		return apperr.Validation("%s must be between 1 and 5", field)
	}
	return nil
}

// List returns matching contacts ordered by name.
func (s *Service) List(ctx context.Context, r ListRequest) ([]store.Record, error) {
	contacts, err := s.records.Query(ctx, store.Contacts, shared.Filter(map[string]*string{
		"project_id": r.ProjectID,
		"role":       r.Role,
		"company":    r.Company,
	}))
	if err != nil {
		return nil, err
	}
	shared.SortByText(contacts, "name")
	return contacts, nil
}

func (s *Service) Get(ctx context.Context, id string) (store.Record, error) {
	if id == "" {
		return nil, apperr.Validation("Contact ID required")
	}
	return shared.Require(ctx, s.records, store.Contacts, id, "Contact not found")
}

func (s *Service) Create(ctx context.Context, r CreateRequest) (store.Record, error) {
	if err := validator.Check(r); err != nil {
		return nil, err
	}
	if err := checkRating("performance_rating", r.PerformanceRating); err != nil {
		return nil, err
	}
	role := r.Role
	if role == "" {
		role = "other"
	}

	rec := shared.Stamp(store.Record{
		"project_id":         r.ProjectID,
		"name":               r.Name,
		"role":               role,
		"company":            r.Company,
		"email":              r.Email,
		"phone":              r.Phone,
		"address":            r.Address,
		"notes":              []any{},
		"contracts":          []any{},
		"performance_rating": r.PerformanceRating,
	}, s.now())

	id, err := s.records.Insert(ctx, store.Contacts, rec)
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
	if err := checkRating("performance_rating", r.PerformanceRating); err != nil {
		return nil, err
	}

	patch := store.Record{}
	shared.Set(patch, "name", r.Name)
	shared.Set(patch, "role", r.Role)
	shared.Set(patch, "company", r.Company)
	shared.Set(patch, "email", r.Email)
	shared.Set(patch, "phone", r.Phone)
	shared.Set(patch, "address", r.Address)
	shared.Set(patch, "performance_rating", r.PerformanceRating)

	if _, err := s.records.Update(ctx, store.Contacts, r.ID, patch); err != nil {
		return nil, err
	}
	return s.Get(ctx, r.ID)
}

func (s *Service) Delete(ctx context.Context, id string) (shared.Deleted, error) {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return shared.Deleted{}, err
	}
	ok, err := s.records.Delete(ctx, store.Contacts, id)
	if err != nil {
		return shared.Deleted{}, err
	}
	if !ok {
		return shared.Deleted{}, apperr.NotFound("Contact not found")
	}
	return shared.Deleted{Deleted: true, ID: id, ProjectID: rec.String("project_id")}, nil
}

// ByRole returns a project's contacts in one role, best rated first and then
// by name. Unrated contacts count as 0.
func (s *Service) ByRole(ctx context.Context, r ByRoleRequest) ([]store.Record, error) {
	if r.ProjectID == "" || r.Role == "" {
		return nil, apperr.Validation("project_id and role required")
	}
	contacts, err := s.records.Query(ctx, store.Contacts, store.Record{
		"project_id": r.ProjectID,
		"role":       r.Role,
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(contacts, func(i, j int) bool {
		a, _ := contacts[i].Int("performance_rating")
		b, _ := contacts[j].Int("performance_rating")
		if a != b {
			return a > b
		}
		return strings.ToLower(contacts[i].String("name")) < strings.ToLower(contacts[j].String("name"))
	})
	return contacts, nil
}

// AddNote appends a timestamped note. A notes value that could not be
// decoded is replaced rather than appended to.
func (s *Service) AddNote(ctx context.Context, r AddNoteRequest) (store.Record, error) {
	if r.ContactID == "" || strings.TrimSpace(r.Note) == "" {
		return nil, apperr.Validation("contact_id and note required")
	}
	contact, err := s.Get(ctx, r.ContactID)
	if err != nil {
		return nil, err
	}

	notes := append(contact.List("notes"), Note{Date: store.FormatTime(s.now()), Text: r.Note})
	if _, err := s.records.Update(ctx, store.Contacts, r.ContactID, store.Record{"notes": notes}); err != nil {
		return nil, err
	}
	return s.Get(ctx, r.ContactID)
}

// AddContract appends a contract sub-record, giving it an id and creation
// time when the caller did not.
func (s *Service) AddContract(ctx context.Context, r AddContractRequest) (store.Record, error) {
	if r.ContactID == "" || len(r.Contract) == 0 {
		return nil, apperr.Validation("contact_id and contract required")
	}
	contact, err := s.Get(ctx, r.ContactID)
	if err != nil {
		return nil, err
	}

	entry := make(map[string]any, len(r.Contract)+2)
	for k, v := range r.Contract {
		entry[k] = v
	}
	if _, ok := entry["id"]; !ok {
		entry["id"] = uuid.NewString()
	}
	if _, ok := entry["created_at"]; !ok {
		entry["created_at"] = store.FormatTime(s.now())
	}

	contracts := append(contact.List("contracts"), entry)
	if _, err := s.records.Update(ctx, store.Contacts, r.ContactID, store.Record{"contracts": contracts}); err != nil {
		return nil, err
	}
	return s.Get(ctx, r.ContactID)
}

func (s *Service) Rate(ctx context.Context, r RateRequest) (store.Record, error) {
	if r.ContactID == "" {
		return nil, apperr.Validation("contact_id required")
	}
	if err := checkRating("rating", &r.Rating); err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx, r.ContactID); err != nil {
		return nil, err
	}
	if _, err := s.records.Update(ctx, store.Contacts, r.ContactID, store.Record{"performance_rating": r.Rating}); err != nil {
		return nil, err
	}
	return s.Get(ctx, r.ContactID)
}
