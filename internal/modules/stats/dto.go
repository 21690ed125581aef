package stats

import "avenstudio/internal/contract"

const Name = "stats"

type DashboardRequest struct {
	ProjectID *string `json:"project_id,omitempty"`
}

func (DashboardRequest) Route() contract.Route {
	return contract.Route{Module: Name, Action: "get_dashboard_stats"}
}

// DueSoonWindowDays is how far ahead a due date counts as due soon.
const DueSoonWindowDays = 7

type Dashboard struct {
	TotalTasks     int            `json:"total_tasks"`
	InProgress     int            `json:"in_progress"`
	Completed      int            `json:"completed"`
	Blocked        int            `json:"blocked"`
	CompletionRate int            `json:"completion_rate"`
	ByStatus       map[string]int `json:"by_status"`
	ByPriority     map[string]int `json:"by_priority"`
	ByCategory     map[string]int `json:"by_category"`
	Overdue        int            `json:"overdue"`
	DueSoon        int            `json:"due_soon"`
}
