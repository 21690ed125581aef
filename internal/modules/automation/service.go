package automation

import (
	"context"

	"avenstudio/internal/contract"
	"avenstudio/internal/modules/shared"
	"avenstudio/internal/pkg/apperr"
	"avenstudio/internal/pkg/validator"
	"avenstudio/internal/store"
)

type Service struct {
	records shared.Records
	now     shared.Clock
}

func NewService(records shared.Records, now shared.Clock) *Service {
	return &Service{records: records, now: now}
}

func (s *Service) Name() string { return Name }

func (s *Service) Handle(ctx context.Context, req contract.Request) contract.Response {
	switch r := req.(type) {
	case ListRulesRequest:
		return shared.Result(s.ListRules(ctx, r))
	case GetRuleRequest:
		return shared.Result(s.GetRule(ctx, r.ID))
	case CreateRuleRequest:
		return shared.Result(s.CreateRule(ctx, r))
	case UpdateRuleRequest:
		return shared.Result(s.UpdateRule(ctx, r))
	case DeleteRuleRequest:
		return shared.Result(s.DeleteRule(ctx, r.ID))
	case ExecuteRequest:
		return shared.Result(s.Execute(ctx, r))
	}
	return contract.Fail(shared.Unsupported(req))
}

func (s *Service) Decode(raw contract.RawRequest) (contract.Request, error) {
	switch raw.Action {
	case "list_rules":
		var r ListRulesRequest
		err := shared.BindFilters(raw, &r)
		return r, err
	case "get_rule":
		return GetRuleRequest{ID: raw.ID}, nil
	case "create_rule":
		var r CreateRuleRequest
		err := shared.Bind(raw, &r)
		return r, err
	case "update_rule":
		var r UpdateRuleRequest
		err := shared.Bind(raw, &r)
		r.ID = raw.ID
		return r, err
	case "delete_rule":
		return DeleteRuleRequest{ID: raw.ID}, nil
	case "execute":
		var r ExecuteRequest
		err := shared.Bind(raw, &r)
		return r, err
	}
	return nil, shared.UnknownAction(raw.Action)
}

// ListRules returns rules in creation order.
func (s *Service) ListRules(ctx context.Context, r ListRulesRequest) ([]store.Record, error) {
	rules, err := s.records.Query(ctx, store.AutomationRules, shared.Filter(map[string]*string{
		"trigger": r.Trigger,
	}))
	if err != nil {
		return nil, err
	}
	shared.SortByDate(rules, "created_at", false)
	return rules, nil
}

func (s *Service) GetRule(ctx context.Context, id string) (store.Record, error) {
	if id == "" {
		return nil, apperr.Validation("Rule ID required")
	}
	return shared.Require(ctx, s.records, store.AutomationRules, id, "Rule not found")
}

func (s *Service) CreateRule(ctx context.Context, r CreateRuleRequest) (store.Record, error) {
	if err := validator.Check(r); err != nil {
		return nil, err
	}
	enabled := true
	if r.Enabled != nil {
		enabled = *r.Enabled
	}
	conditions, actions := r.Conditions, r.Actions
	if conditions == nil {
		conditions = []any{}
	}
	if actions == nil {
		actions = []any{}
	}

	rec := shared.Stamp(store.Record{
		"name":          r.Name,
		"description":   r.Description,
		"enabled":       enabled,
		"trigger":       r.Trigger,
		"conditions":    conditions,
		"actions":       actions,
		"trigger_count": 0,
	}, s.now())

	id, err := s.records.Insert(ctx, store.AutomationRules, rec)
	if err != nil {
		return nil, err
	}
	return s.GetRule(ctx, id)
}

func (s *Service) UpdateRule(ctx context.Context, r UpdateRuleRequest) (store.Record, error) {
	if _, err := s.GetRule(ctx, r.ID); err != nil {
		return nil, err
	}
	if err := validator.Check(r); err != nil {
		return nil, err
	}

	patch := store.Record{}
	shared.Set(patch, "name", r.Name)
	shared.Set(patch, "description", r.Description)
	shared.Set(patch, "enabled", r.Enabled)
	shared.Set(patch, "trigger", r.Trigger)
	shared.Set(patch, "conditions", r.Conditions)
	shared.Set(patch, "actions", r.Actions)

	if _, err := s.records.Update(ctx, store.AutomationRules, r.ID, patch); err != nil {
		return nil, err
	}
	return s.GetRule(ctx, r.ID)
}

func (s *Service) DeleteRule(ctx context.Context, id string) (shared.Deleted, error) {
	if _, err := s.GetRule(ctx, id); err != nil {
		return shared.Deleted{}, err
	}
	ok, err := s.records.Delete(ctx, store.AutomationRules, id)
	if err != nil {
		return shared.Deleted{}, err
	}
	if !ok {
		return shared.Deleted{}, apperr.NotFound("Rule not found")
	}
	return shared.Deleted{Deleted: true, ID: id}, nil
}

// Execute fires every enabled rule whose trigger matches and returns their
// ids. Each fired rule has its trigger count and last trigger time updated.
// Rule conditions are kept on the rule but not evaluated, so every matching
// rule fires.
func (s *Service) Execute(ctx context.Context, r ExecuteRequest) ([]string, error) {
	if r.TaskID == "" || r.Trigger == "" {
		return nil, apperr.Validation("task_id and trigger required")
	}
	if _, err := shared.Require(ctx, s.records, store.Tasks, r.TaskID, "Task not found"); err != nil {
		return nil, err
	}

	rules, err := s.records.Query(ctx, store.AutomationRules, store.Record{
		"enabled": true,
		"trigger": r.Trigger,
	})
	if err != nil {
		return nil, err
	}
	shared.SortByDate(rules, "created_at", false)

	now := s.now()
	fired := make([]string, 0, len(rules))
	for _, rule := range rules {
		count, _ := rule.Int("trigger_count")
		patch := store.Record{
			"trigger_count":  count + 1,
			"last_triggered": now,
		}
		if _, err := s.records.Update(ctx, store.AutomationRules, rule.String("id"), patch); err != nil {
			return nil, err
		}
		fired = append(fired, rule.String("id"))
	}
	return fired, nil
}
