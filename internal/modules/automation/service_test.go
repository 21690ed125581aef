package automation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"avenstudio/internal/pkg/apperr"
	"avenstudio/internal/store"
	"avenstudio/internal/testutil"
)

var testNow = time.Date(2026, 2, 2, 10, 0, 0, 0, time.UTC)

func setupTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	st := testutil.NewTestStore(t)
	return NewService(st, testutil.FixedClock(testNow)), st
}

func boolp(v bool) *bool { return &v }

func addTask(t *testing.T, st *store.Store) string {
	t.Helper()
	id, err := st.Insert(context.Background(), store.Tasks, store.Record{
		"project_id": store.DefaultProjectID,
		"title":      "Order windows",
		"category":   "structure",
	})
	require.NoError(t, err)
	return id
}

func TestCreateRule_Defaults(t *testing.T) {
	svc, _ := setupTestService(t)

	rule, err := svc.CreateRule(context.Background(), CreateRuleRequest{
		Name:    "Notify on done",
		Trigger: "status_change",
		Conditions: []any{
			map[string]any{"field": "status", "equals": "done"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, true, rule["enabled"])
	assert.Len(t, rule.List("conditions"), 1)
	assert.Equal(t, []any{}, rule["actions"])
	count, _ := rule.Int("trigger_count")
	assert.Zero(t, count)

	_, err = svc.CreateRule(context.Background(), CreateRuleRequest{Name: "no trigger"})
	assert.EqualError(t, err, "Missing required field: trigger")
}

func TestExecute_FiresEnabledMatchingRules(t *testing.T) {
	svc, st := setupTestService(t)
	ctx := context.Background()
	taskID := addTask(t, st)

	on, err := svc.CreateRule(ctx, CreateRuleRequest{
		Name:       "on",
		Trigger:    "status_change",
		Conditions: []any{map[string]any{"field": "priority", "equals": "urgent"}},
	})
	require.NoError(t, err)
	_, err = svc.CreateRule(ctx, CreateRuleRequest{Name: "off", Trigger: "status_change", Enabled: boolp(false)})
	require.NoError(t, err)
	_, err = svc.CreateRule(ctx, CreateRuleRequest{Name: "elsewhere", Trigger: "task_created"})
	require.NoError(t, err)

	fired, err := svc.Execute(ctx, ExecuteRequest{TaskID: taskID, Trigger: "status_change"})
	require.NoError(t, err)
	assert.Equal(t, []string{on.String("id")}, fired, "conditions are not evaluated")

	_, err = svc.Execute(ctx, ExecuteRequest{TaskID: taskID, Trigger: "status_change"})
	require.NoError(t, err)

	rule, err := svc.GetRule(ctx, on.String("id"))
	require.NoError(t, err)
	count, _ := rule.Int("trigger_count")
	assert.EqualValues(t, 2, count)
	assert.Equal(t, "2026-02-02T10:00:00Z", rule.String("last_triggered"))
}

func TestExecute_NoMatchingRules(t *testing.T) {
	svc, st := setupTestService(t)
	taskID := addTask(t, st)

	fired, err := svc.Execute(context.Background(), ExecuteRequest{TaskID: taskID, Trigger: "nothing"})
	require.NoError(t, err)
	assert.NotNil(t, fired)
	assert.Empty(t, fired)
}

func TestExecute_TaskMustExist(t *testing.T) {
	svc, _ := setupTestService(t)

	_, err := svc.Execute(context.Background(), ExecuteRequest{TaskID: "missing", Trigger: "status_change"})
	assert.EqualError(t, err, "Task not found")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = svc.Execute(context.Background(), ExecuteRequest{Trigger: "status_change"})
	assert.EqualError(t, err, "task_id and trigger required")
}

func TestUpdateAndDeleteRule(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()
	rule, err := svc.CreateRule(ctx, CreateRuleRequest{Name: "r", Trigger: "status_change"})
	require.NoError(t, err)
	id := rule.String("id")

	updated, err := svc.UpdateRule(ctx, UpdateRuleRequest{ID: id, Enabled: boolp(false)})
	require.NoError(t, err)
	assert.Equal(t, false, updated["enabled"])

	rules, err := svc.ListRules(ctx, ListRulesRequest{})
	require.NoError(t, err)
	assert.Len(t, rules, 1)

	res, err := svc.DeleteRule(ctx, id)
	require.NoError(t, err)
	assert.True(t, res.Deleted)

	_, err = svc.GetRule(ctx, id)
	assert.EqualError(t, err, "Rule not found")
}
