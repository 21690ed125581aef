package budget

import (
	"avenstudio/internal/contract"
)

const Name = "budget"

func route(action string) contract.Route { return contract.Route{Module: Name, Action: action} }

type ListRequest struct {
	ProjectID *string `json:"project_id,omitempty"`
	Category  *string `json:"category,omitempty"`
	Status    *string `json:"status,omitempty"`
}

type GetRequest struct {
	ID string `json:"id"`
}

type CreateRequest struct {
	contract.Write
	ProjectID     string   `json:"project_id"`
	Category      string   `json:"category"`
	ItemName      string   `json:"item_name"`
	EstimatedCost *float64 `json:"estimated_cost"`
	ActualCost    *float64 `json:"actual_cost"`
	Supplier      string   `json:"supplier"`
	QuoteDate     *string  `json:"quote_date"`
	Notes         string   `json:"notes"`
}

type UpdateRequest struct {
	contract.Write
	ID            string   `json:"-"`
	Category      *string  `json:"category" validate:"omitempty,min=1"`
	ItemName      *string  `json:"item_name" validate:"omitempty,min=1"`
	EstimatedCost *float64 `json:"estimated_cost"`
	ActualCost    *float64 `json:"actual_cost"`
	Supplier      *string  `json:"supplier"`
	QuoteDate     *string  `json:"quote_date"`
	Status        *string  `json:"status" validate:"omitempty,oneof=estimated quoted approved ordered paid"`
	Notes         *string  `json:"notes"`
}

type DeleteRequest struct {
	contract.Write
	ID string `json:"id"`
}

type SummaryRequest struct {
	ProjectID string `json:"project_id"`
}

func (ListRequest) Route() contract.Route    { return route("list") }
func (GetRequest) Route() contract.Route     { return route("get") }
func (CreateRequest) Route() contract.Route  { return route("create") }
func (UpdateRequest) Route() contract.Route  { return route("update") }
func (DeleteRequest) Route() contract.Route  { return route("delete") }
func (SummaryRequest) Route() contract.Route { return route("get_summary") }

type CategoryTotals struct {
	Estimated float64 `json:"estimated"`
	Actual    float64 `json:"actual"`
	Variance  float64 `json:"variance"`
	Count     int     `json:"count"`
}

// Summary aggregates a project's budget items.
type Summary struct {
	TotalEstimated     float64                    `json:"total_estimated"`
	TotalActual        float64                    `json:"total_actual"`
	TotalVariance      float64                    `json:"total_variance"`
	ByCategory         map[string]*CategoryTotals `json:"by_category"`
	ByStatus           map[string]int             `json:"by_status"`
	ItemsCount         int                        `json:"items_count"`
	VariancePercentage float64                    `json:"variance_percentage"`
	SpentPercentage    float64                    `json:"spent_percentage"`
}
