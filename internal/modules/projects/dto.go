package projects

import (
	"avenstudio/internal/contract"
	"avenstudio/internal/store"
)

const Name = "projects"

func route(action string) contract.Route { return contract.Route{Module: Name, Action: action} }

type ListRequest struct {
	Status      *string `json:"status,omitempty"`
	ProjectType *string `json:"project_type,omitempty"`
}

type GetRequest struct {
	ID string `json:"id"`
}

type CreateRequest struct {
	contract.Write
	Name             string   `json:"name"`
	Location         string   `json:"location"`
	ProjectType      string   `json:"project_type" validate:"omitempty,oneof=self-build custom-build renovation"`
	StartDate        *string  `json:"start_date"`
	TargetCompletion *string  `json:"target_completion"`
	BudgetTotal      *float64 `json:"budget_total" validate:"omitempty,min=0"`
	Description      string   `json:"description"`
}

type UpdateRequest struct {
	contract.Write
	ID               string   `json:"-"`
	Name             *string  `json:"name" validate:"omitempty,min=1"`
	Location         *string  `json:"location"`
	ProjectType      *string  `json:"project_type" validate:"omitempty,oneof=self-build custom-build renovation"`
	StartDate        *string  `json:"start_date"`
	TargetCompletion *string  `json:"target_completion"`
	Status           *string  `json:"status" validate:"omitempty,oneof=planning in-progress on-hold completed archived"`
	BudgetTotal      *float64 `json:"budget_total" validate:"omitempty,min=0"`
	Description      *string  `json:"description"`
}

type DeleteRequest struct {
	contract.Write
	ID string `json:"id"`
}

type StatsRequest struct {
	ID string `json:"id"`
}

func (ListRequest) Route() contract.Route   { return route("list") }
func (GetRequest) Route() contract.Route    { return route("get") }
func (CreateRequest) Route() contract.Route { return route("create") }
func (UpdateRequest) Route() contract.Route { return route("update") }
func (DeleteRequest) Route() contract.Route { return route("delete") }
func (StatsRequest) Route() contract.Route  { return route("get_stats") }

type TaskStats struct {
	Total          int            `json:"total"`
	ByStatus       map[string]int `json:"by_status"`
	ByPhase        map[string]int `json:"by_phase"`
	CompletionRate float64        `json:"completion_rate"`
}

type BudgetStats struct {
	TotalEstimated float64 `json:"total_estimated"`
	TotalActual    float64 `json:"total_actual"`
	Variance       float64 `json:"variance"`
	ItemsCount     int     `json:"items_count"`
}

type MilestoneStats struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`
}

// Stats is the project overview returned by get_stats.
type Stats struct {
	Project        store.Record   `json:"project"`
	Tasks          TaskStats      `json:"tasks"`
	Budget         BudgetStats    `json:"budget"`
	DocumentsCount int            `json:"documents_count"`
	ContactsCount  int            `json:"contacts_count"`
	Milestones     MilestoneStats `json:"milestones"`
	MaterialsCount int            `json:"materials_count"`
}

func (s Stats) ProjectRef() string { return s.Project.String("id") }
