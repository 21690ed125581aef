package documents

import (
	"context"
	"sort"

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
	case ByTypeRequest:
		return shared.Result(s.ByType(ctx, r))
	case ByPhaseRequest:
		return shared.Result(s.ByPhase(ctx, r))
	case IncrementVersionRequest:
		return shared.Result(s.IncrementVersion(ctx, r.ID))
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
	case "get_by_type":
		var r ByTypeRequest
		err := shared.Bind(raw, &r)
		return r, err
	case "get_by_phase":
		var r ByPhaseRequest
		err := shared.Bind(raw, &r)
		return r, err
	case "increment_version":
		return IncrementVersionRequest{ID: raw.ID}, nil
	}
	return nil, shared.UnknownAction(raw.Action)
}

// List returns matching documents, most recently uploaded first.
func (s *Service) List(ctx context.Context, r ListRequest) ([]store.Record, error) {
	docs, err := s.records.Query(ctx, store.Documents, shared.Filter(map[string]*string{
		"project_id":     r.ProjectID,
		"document_type":  r.DocumentType,
		"linked_task_id": r.LinkedTaskID,
		"linked_phase":   r.LinkedPhase,
	}))
	if err != nil {
		return nil, err
	}
	shared.SortByDate(docs, "upload_date", true)
	return docs, nil
}

func (s *Service) Get(ctx context.Context, id string) (store.Record, error) {
	if id == "" {
		return nil, apperr.Validation("Document ID required")
	}
	return shared.Require(ctx, s.records, store.Documents, id, "Document not found")
}

func (s *Service) Create(ctx context.Context, r CreateRequest) (store.Record, error) {
	if err := validator.Check(r); err != nil {
		return nil, err
	}
	docType := r.DocumentType
	if docType == "" {
		docType = "other"
	}
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}

	now := s.now()
	rec := shared.Stamp(store.Record{
		"project_id":    r.ProjectID,
		"filename":      r.Filename,
		"file_path":     r.FilePath,
		"document_type": docType,
		"version":       1,
		"linked_phase":  r.LinkedPhase,
		"tags":          tags,
		"notes":         r.Notes,
		"upload_date":   store.FormatTime(now),
	}, now)
	if r.LinkedTaskID != nil && *r.LinkedTaskID != "" {
		rec["linked_task_id"] = *r.LinkedTaskID
	}

	id, err := s.records.Insert(ctx, store.Documents, rec)
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Update changes descriptive fields. The version only moves through
// IncrementVersion.
func (s *Service) Update(ctx context.Context, r UpdateRequest) (store.Record, error) {
	if _, err := s.Get(ctx, r.ID); err != nil {
		return nil, err
	}
	if err := validator.Check(r); err != nil {
		return nil, err
	}

	patch := store.Record{}
	shared.Set(patch, "filename", r.Filename)
	shared.Set(patch, "file_path", r.FilePath)
	shared.Set(patch, "document_type", r.DocumentType)
	shared.Set(patch, "linked_phase", r.LinkedPhase)
	shared.Set(patch, "tags", r.Tags)
	shared.Set(patch, "notes", r.Notes)
	if r.LinkedTaskID != nil {
		if *r.LinkedTaskID == "" {
			patch["linked_task_id"] = nil
		} else {
			patch["linked_task_id"] = *r.LinkedTaskID
		}
	}

	if _, err := s.records.Update(ctx, store.Documents, r.ID, patch); err != nil {
		return nil, err
	}
	return s.Get(ctx, r.ID)
}

func (s *Service) Delete(ctx context.Context, id string) (Deleted, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return Deleted{}, err
	}
	ok, err := s.records.Delete(ctx, store.Documents, id)
	if err != nil {
		return Deleted{}, err
	}
	if !ok {
		return Deleted{}, apperr.NotFound("Document not found")
	}
	return Deleted{Deleted: true, ID: id, FilePath: doc.String("file_path"), ProjectID: doc.String("project_id")}, nil
}

// ByType returns a project's documents of one type, highest version first.
func (s *Service) ByType(ctx context.Context, r ByTypeRequest) ([]store.Record, error) {
	if r.ProjectID == "" || r.DocumentType == "" {
		return nil, apperr.Validation("project_id and document_type required")
	}
	docs, err := s.records.Query(ctx, store.Documents, store.Record{
		"project_id":    r.ProjectID,
		"document_type": r.DocumentType,
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(docs, func(i, j int) bool {
		a, _ := docs[i].Int("version")
		b, _ := docs[j].Int("version")
		return a > b
	})
	return docs, nil
}

func (s *Service) ByPhase(ctx context.Context, r ByPhaseRequest) ([]store.Record, error) {
	if r.ProjectID == "" || r.Phase == "" {
		return nil, apperr.Validation("project_id and phase required")
	}
	return s.records.Query(ctx, store.Documents, store.Record{
		"project_id":   r.ProjectID,
		"linked_phase": r.Phase,
	})
}

func (s *Service) IncrementVersion(ctx context.Context, id string) (store.Record, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	version, ok := doc.Int("version")
	if !ok {
		version = 1
	}
	if _, err := s.records.Update(ctx, store.Documents, id, store.Record{"version": version + 1}); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}
