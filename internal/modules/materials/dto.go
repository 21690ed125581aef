package materials

import (
	"avenstudio/internal/contract"
	"avenstudio/internal/store"
)

const Name = "materials"

func route(action string) contract.Route { return contract.Route{Module: Name, Action: action} }

type ListRequest struct {
	ProjectID      *string `json:"project_id,omitempty"`
	DeliveryStatus *string `json:"delivery_status,omitempty"`
	SupplierID     *string `json:"supplier_id,omitempty"`
}

type GetRequest struct {
	ID string `json:"id"`
}

type CreateRequest struct {
	contract.Write
	ProjectID    string   `json:"project_id" validate:"required"`
	ItemName     string   `json:"item_name" validate:"required"`
	Quantity     *float64 `json:"quantity" validate:"omitempty,min=0"`
	Unit         string   `json:"unit"`
	SupplierID   *string  `json:"supplier_id"`
	Cost         float64  `json:"cost" validate:"min=0"`
	LeadTimeDays int      `json:"lead_time_days" validate:"min=0"`
	DeliveryDate string   `json:"delivery_date"`
	WarrantyInfo string   `json:"warranty_info"`
	Notes        string   `json:"notes"`
}

type UpdateRequest struct {
	contract.Write
	ID             string   `json:"-"`
	ItemName       *string  `json:"item_name" validate:"omitempty,min=1"`
	Quantity       *float64 `json:"quantity" validate:"omitempty,min=0"`
	Unit           *string  `json:"unit"`
	SupplierID     *string  `json:"supplier_id"`
	Cost           *float64 `json:"cost" validate:"omitempty,min=0"`
	LeadTimeDays   *int     `json:"lead_time_days" validate:"omitempty,min=0"`
	DeliveryDate   *string  `json:"delivery_date"`
	DeliveryStatus *string  `json:"delivery_status" validate:"omitempty,oneof=not-ordered ordered in-transit delivered overdue"`
	WarrantyInfo   *string  `json:"warranty_info"`
	Notes          *string  `json:"notes"`
}

type DeleteRequest struct {
	contract.Write
	ID string `json:"id"`
}

type ByStatusRequest struct {
	ProjectID      string `json:"project_id"`
	DeliveryStatus string `json:"delivery_status"`
}

type BySupplierRequest struct {
	ProjectID  string `json:"project_id"`
	SupplierID string `json:"supplier_id"`
}

type MarkDeliveredRequest struct {
	contract.Write
	ID string `json:"id"`
}

type OverdueRequest struct {
	ProjectID string `json:"project_id"`
}

type SummaryRequest struct {
	ProjectID string `json:"project_id"`
}

func (ListRequest) Route() contract.Route          { return route("list") }
func (GetRequest) Route() contract.Route           { return route("get") }
func (CreateRequest) Route() contract.Route        { return route("create") }
func (UpdateRequest) Route() contract.Route        { return route("update") }
func (DeleteRequest) Route() contract.Route        { return route("delete") }
func (ByStatusRequest) Route() contract.Route      { return route("get_by_status") }
func (BySupplierRequest) Route() contract.Route    { return route("get_by_supplier") }
func (MarkDeliveredRequest) Route() contract.Route { return route("mark_delivered") }
func (OverdueRequest) Route() contract.Route       { return route("get_overdue") }
func (SummaryRequest) Route() contract.Route       { return route("get_summary") }

// SupplierMaterials lists what one supplier provides to a project.
type SupplierMaterials struct {
	SupplierID string         `json:"supplier_id"`
	Materials  []store.Record `json:"materials"`
	Count      int            `json:"count"`
	TotalCost  float64        `json:"total_cost"`
}

type SupplierTotals struct {
	Count     int     `json:"count"`
	TotalCost float64 `json:"total_cost"`
}

type Summary struct {
	ProjectID    string                     `json:"project_id"`
	TotalItems   int                        `json:"total_items"`
	TotalCost    float64                    `json:"total_cost"`
	ByStatus     map[string]int             `json:"by_status"`
	BySupplier   map[string]*SupplierTotals `json:"by_supplier"`
	OverdueCount int                        `json:"overdue_count"`
}

func (s Summary) ProjectRef() string { return s.ProjectID }
