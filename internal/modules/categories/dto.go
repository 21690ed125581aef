package categories

import "avenstudio/internal/contract"

const Name = "categories"

func route(action string) contract.Route { return contract.Route{Module: Name, Action: action} }

type ListRequest struct{}

type CreateRequest struct {
	contract.Write
	Name string `json:"name" validate:"required"`
}

// UpdateRequest renames the category Current to Name.
type UpdateRequest struct {
	contract.Write
	Current string `json:"-"`
	Name    string `json:"name" validate:"required"`
}

type DeleteRequest struct {
	contract.Write
	Name string `json:"name"`
}

func (ListRequest) Route() contract.Route   { return route("list") }
func (CreateRequest) Route() contract.Route { return route("create") }
func (UpdateRequest) Route() contract.Route { return route("update") }
func (DeleteRequest) Route() contract.Route { return route("delete") }

type Category struct {
	Name string `json:"name"`
}

// Removed reports a deleted category and how many tasks moved to the
// fallback category.
type Removed struct {
	Deleted    bool   `json:"deleted"`
	Name       string `json:"name"`
	TasksMoved int64  `json:"tasks_moved"`
	MovedTo    string `json:"moved_to"`
}
