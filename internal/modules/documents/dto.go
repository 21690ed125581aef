package documents

import (
	"avenstudio/internal/contract"
)

const Name = "documents"

func route(action string) contract.Route { return contract.Route{Module: Name, Action: action} }

type ListRequest struct {
	ProjectID    *string `json:"project_id,omitempty"`
	DocumentType *string `json:"document_type,omitempty"`
	LinkedTaskID *string `json:"linked_task_id,omitempty"`
	LinkedPhase  *string `json:"linked_phase,omitempty"`
}

type GetRequest struct {
	ID string `json:"id"`
}

type CreateRequest struct {
	contract.Write
	ProjectID    string   `json:"project_id" validate:"required"`
	Filename     string   `json:"filename" validate:"required"`
	FilePath     string   `json:"file_path" validate:"required"`
	DocumentType string   `json:"document_type" validate:"omitempty,oneof=planning building_regs certificate drawing contract invoice photo sap warranty insurance other"`
	LinkedTaskID *string  `json:"linked_task_id"`
	LinkedPhase  *string  `json:"linked_phase"`
	Tags         []string `json:"tags"`
	Notes        string   `json:"notes"`
}

type UpdateRequest struct {
	contract.Write
	ID           string    `json:"-"`
	Filename     *string   `json:"filename" validate:"omitempty,min=1"`
	FilePath     *string   `json:"file_path" validate:"omitempty,min=1"`
	DocumentType *string   `json:"document_type" validate:"omitempty,oneof=planning building_regs certificate drawing contract invoice photo sap warranty insurance other"`
	LinkedTaskID *string   `json:"linked_task_id"`
	LinkedPhase  *string   `json:"linked_phase"`
	Tags         *[]string `json:"tags"`
	Notes        *string   `json:"notes"`
}

type DeleteRequest struct {
	contract.Write
	ID string `json:"id"`
}

type ByTypeRequest struct {
	ProjectID    string `json:"project_id"`
	DocumentType string `json:"document_type"`
}

type ByPhaseRequest struct {
	ProjectID string `json:"project_id"`
	Phase     string `json:"phase"`
}

type IncrementVersionRequest struct {
	contract.Write
	ID string `json:"id"`
}

func (ListRequest) Route() contract.Route             { return route("list") }
func (GetRequest) Route() contract.Route              { return route("get") }
func (CreateRequest) Route() contract.Route           { return route("create") }
func (UpdateRequest) Route() contract.Route           { return route("update") }
func (DeleteRequest) Route() contract.Route           { return route("delete") }
func (ByTypeRequest) Route() contract.Route           { return route("get_by_type") }
func (ByPhaseRequest) Route() contract.Route          { return route("get_by_phase") }
func (IncrementVersionRequest) Route() contract.Route { return route("increment_version") }

// Deleted also reports the file path so the caller can remove the file,
// which this service does not manage.
type Deleted struct {
	Deleted   bool   `json:"deleted"`
	ID        string `json:"id"`
	FilePath  string `json:"file_path"`
	ProjectID string `json:"-"`
}

func (d Deleted) ProjectRef() string { return d.ProjectID }
