package contacts

import (
	"avenstudio/internal/contract"
)

const Name = "contacts"

func route(action string) contract.Route { return contract.Route{Module: Name, Action: action} }

type ListRequest struct {
	ProjectID *string `json:"project_id,omitempty"`
	Role      *string `json:"role,omitempty"`
	Company   *string `json:"company,omitempty"`
}

type GetRequest struct {
	ID string `json:"id"`
}

type CreateRequest struct {
	contract.Write
	ProjectID         string `json:"project_id" validate:"required"`
	Name              string `json:"name" validate:"required"`
	Role              string `json:"role"`
	Company           string `json:"company"`
	Email             string `json:"email" validate:"omitempty,email"`
	Phone             string `json:"phone"`
	Address           string `json:"address"`
	PerformanceRating *int   `json:"performance_rating"`
}

type UpdateRequest struct {
	contract.Write
	ID                string  `json:"-"`
	Name              *string `json:"name" validate:"omitempty,min=1"`
	Role              *string `json:"role"`
	Company           *string `json:"company"`
	Email             *string `json:"email" validate:"omitempty,email"`
	Phone             *string `json:"phone"`
	Address           *string `json:"address"`
	PerformanceRating *int    `json:"performance_rating"`
}

type DeleteRequest struct {
	contract.Write
	ID string `json:"id"`
}

type ByRoleRequest struct {
	ProjectID string `json:"project_id"`
	Role      string `json:"role"`
}

type AddNoteRequest struct {
	contract.Write
	ContactID string `json:"contact_id"`
	Note      string `json:"note"`
}

type AddContractRequest struct {
	contract.Write
	ContactID string         `json:"contact_id"`
	Contract  map[string]any `json:"contract"`
}

type RateRequest struct {
	contract.Write
	ContactID string `json:"contact_id"`
	Rating    int    `json:"rating"`
}

func (ListRequest) Route() contract.Route        { return route("list") }
func (GetRequest) Route() contract.Route         { return route("get") }
func (CreateRequest) Route() contract.Route      { return route("create") }
func (UpdateRequest) Route() contract.Route      { return route("update") }
func (DeleteRequest) Route() contract.Route      { return route("delete") }
func (ByRoleRequest) Route() contract.Route      { return route("get_by_role") }
func (AddNoteRequest) Route() contract.Route     { return route("add_note") }
func (AddContractRequest) Route() contract.Route { return route("add_contract") }
func (RateRequest) Route() contract.Route        { return route("rate_contact") }

// Note is one entry of a contact's note history.
type Note struct {
	Date string `json:"date"`
	Text string `json:"text"`
}
