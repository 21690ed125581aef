package tasks

import (
	"avenstudio/internal/contract"
)

const Name = "tasks"

func route(action string) contract.Route { return contract.Route{Module: Name, Action: action} }

type ListRequest struct {
	ProjectID  *string `json:"project_id,omitempty"`
	Status     *string `json:"status,omitempty"`
	Priority   *string `json:"priority,omitempty"`
	Category   *string `json:"category,omitempty"`
	Phase      *string `json:"phase,omitempty"`
	AssignedTo *string `json:"assigned_to,omitempty"`
}

type GetRequest struct {
	ID string `json:"id"`
}

type CreateRequest struct {
	contract.Write
	ProjectID            string   `json:"project_id"`
	Title                string   `json:"title" validate:"required"`
	Description          string   `json:"description"`
	Priority             string   `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	Category             string   `json:"category" validate:"required"`
	Phase                *string  `json:"phase"`
	Tags                 []string `json:"tags"`
	DueDate              *string  `json:"due_date"`
	StartDate            *string  `json:"start_date"`
	AssignedTo           *string  `json:"assigned_to"`
	CreatedBy            *string  `json:"created_by"`
	EstimatedHours       *float64 `json:"estimated_hours" validate:"omitempty,min=0"`
	CompletionPercentage *int     `json:"completion_percentage" validate:"omitempty,min=0,max=100"`
	BlockedBy            []string `json:"blocked_by"`
}

type UpdateRequest struct {
	contract.Write
	ID                   string          `json:"-"`
	Title                *string         `json:"title" validate:"omitempty,min=1"`
	Description          *string         `json:"description"`
	Status               *string         `json:"status" validate:"omitempty,oneof=todo in-progress review blocked done"`
	Priority             *string         `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	Category             *string         `json:"category" validate:"omitempty,min=1"`
	Phase                *string         `json:"phase"`
	Tags                 *[]string       `json:"tags"`
	DueDate              *string         `json:"due_date"`
	StartDate            *string         `json:"start_date"`
	AssignedTo           *string         `json:"assigned_to"`
	EstimatedHours       *float64        `json:"estimated_hours" validate:"omitempty,min=0"`
	CompletionPercentage *int            `json:"completion_percentage" validate:"omitempty,min=0,max=100"`
	BlockedBy            *[]string       `json:"blocked_by"`
	Comments             *[]any          `json:"comments"`
	Attachments          *[]any          `json:"attachments"`
	Checklist            *[]any          `json:"checklist"`
	Subtasks             *[]any          `json:"subtasks"`
	CustomFields         *map[string]any `json:"custom_fields"`
}

type DeleteRequest struct {
	contract.Write
	ID string `json:"id"`
}

func (ListRequest) Route() contract.Route   { return route("list") }
func (GetRequest) Route() contract.Route    { return route("get") }
func (CreateRequest) Route() contract.Route { return route("create") }
func (UpdateRequest) Route() contract.Route { return route("update") }
func (DeleteRequest) Route() contract.Route { return route("delete") }
