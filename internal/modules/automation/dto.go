package automation

import "avenstudio/internal/contract"

const Name = "automation"

func route(action string) contract.Route { return contract.Route{Module: Name, Action: action} }

type ListRulesRequest struct {
	Trigger *string `json:"trigger,omitempty"`
}

type GetRuleRequest struct {
	ID string `json:"id"`
}

type CreateRuleRequest struct {
	contract.Write
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Enabled     *bool  `json:"enabled"`
	Trigger     string `json:"trigger" validate:"required"`
	Conditions  []any  `json:"conditions"`
	Actions     []any  `json:"actions"`
}

type UpdateRuleRequest struct {
	contract.Write
	ID          string  `json:"-"`
	Name        *string `json:"name" validate:"omitempty,min=1"`
	Description *string `json:"description"`
	Enabled     *bool   `json:"enabled"`
	Trigger     *string `json:"trigger" validate:"omitempty,min=1"`
	Conditions  *[]any  `json:"conditions"`
	Actions     *[]any  `json:"actions"`
}

type DeleteRuleRequest struct {
	contract.Write
	ID string `json:"id"`
}

// ExecuteRequest fires every enabled rule listening for Trigger against a
// task.
type ExecuteRequest struct {
	contract.Write
	TaskID  string `json:"task_id"`
	Trigger string `json:"trigger"`
}

func (ListRulesRequest) Route() contract.Route  { return route("list_rules") }
func (GetRuleRequest) Route() contract.Route    { return route("get_rule") }
func (CreateRuleRequest) Route() contract.Route { return route("create_rule") }
func (UpdateRuleRequest) Route() contract.Route { return route("update_rule") }
func (DeleteRuleRequest) Route() contract.Route { return route("delete_rule") }
func (ExecuteRequest) Route() contract.Route    { return route("execute") }
