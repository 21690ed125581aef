package milestones

import (
	"avenstudio/internal/contract"
	"avenstudio/internal/store"
)

const Name = "milestones"

func route(action string) contract.Route { return contract.Route{Module: Name, Action: action} }

type ListRequest struct {
	ProjectID *string `json:"project_id,omitempty"`
	Phase     *string `json:"phase,omitempty"`
	Status    *string `json:"status,omitempty"`
}

type GetRequest struct {
	ID string `json:"id"`
}

type CreateRequest struct {
	contract.Write
	ProjectID    string   `json:"project_id" validate:"required"`
	Name         string   `json:"name" validate:"required"`
	Phase        string   `json:"phase"`
	TargetDate   string   `json:"target_date"`
	Dependencies []string `json:"dependencies"`
	Notes        string   `json:"notes"`
}

type UpdateRequest struct {
	contract.Write
	ID           string    `json:"-"`
	Name         *string   `json:"name" validate:"omitempty,min=1"`
	Phase        *string   `json:"phase"`
	TargetDate   *string   `json:"target_date"`
	ActualDate   *string   `json:"actual_date"`
	Status       *string   `json:"status" validate:"omitempty,oneof=pending in-progress completed delayed cancelled"`
	Dependencies *[]string `json:"dependencies"`
	Notes        *string   `json:"notes"`
}

type DeleteRequest struct {
	contract.Write
	ID string `json:"id"`
}

type ByPhaseRequest struct {
	ProjectID string `json:"project_id"`
	Phase     string `json:"phase"`
}

type ByStatusRequest struct {
	ProjectID string `json:"project_id"`
	Status    string `json:"status"`
}

type MarkCompleteRequest struct {
	contract.Write
	ID string `json:"id"`
}

type TimelineRequest struct {
	ProjectID string `json:"project_id"`
}

func (ListRequest) Route() contract.Route         { return route("list") }
func (GetRequest) Route() contract.Route          { return route("get") }
func (CreateRequest) Route() contract.Route       { return route("create") }
func (UpdateRequest) Route() contract.Route       { return route("update") }
func (DeleteRequest) Route() contract.Route       { return route("delete") }
func (ByPhaseRequest) Route() contract.Route      { return route("get_by_phase") }
func (ByStatusRequest) Route() contract.Route     { return route("get_by_status") }
func (MarkCompleteRequest) Route() contract.Route { return route("mark_complete") }
func (TimelineRequest) Route() contract.Route     { return route("get_timeline") }

// UpcomingLimit caps the upcoming list of a timeline.
const UpcomingLimit = 5

// Timeline is a project's milestone schedule with delay analysis.
type Timeline struct {
	ProjectID          string         `json:"project_id"`
	Milestones         []store.Record `json:"milestones"`
	TotalCount         int            `json:"total_count"`
	StatusBreakdown    map[string]int `json:"status_breakdown"`
	DelayedCount       int            `json:"delayed_count"`
	DelayedMilestones  []store.Record `json:"delayed_milestones"`
	UpcomingMilestones []store.Record `json:"upcoming_milestones"`
}

func (t Timeline) ProjectRef() string { return t.ProjectID }
