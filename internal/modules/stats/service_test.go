package stats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"avenstudio/internal/store"
	"avenstudio/internal/testutil"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func setupTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	st := testutil.NewTestStore(t)
	return NewService(st, testutil.FixedClock(testNow)), st
}

func addTask(t *testing.T, st *store.Store, rec store.Record) {
	t.Helper()
	if _, ok := rec["project_id"]; !ok {
		rec["project_id"] = store.DefaultProjectID
	}
	if _, ok := rec["category"]; !ok {
		rec["category"] = "structure"
	}
	rec["title"] = "task"
	_, err := st.Insert(context.Background(), store.Tasks, rec)
	require.NoError(t, err)
}

func TestDashboard_Empty(t *testing.T) {
	svc, _ := setupTestService(t)

	d, err := svc.Dashboard(context.Background(), DashboardRequest{})
	require.NoError(t, err)
	assert.Zero(t, d.TotalTasks)
	assert.Zero(t, d.CompletionRate)
	assert.Empty(t, d.ByPriority)
	assert.NotNil(t, d.ByCategory)
}

func TestDashboard(t *testing.T) {
	svc, st := setupTestService(t)
	addTask(t, st, store.Record{"status": "done", "priority": "high", "due_date": "2026-01-01"})
	addTask(t, st, store.Record{"status": "in-progress", "priority": "high", "due_date": "2026-03-01"})
	addTask(t, st, store.Record{"status": "blocked", "priority": "low", "due_date": "2026-03-15T09:00:00Z"})
	addTask(t, st, store.Record{"status": "todo", "priority": "urgent", "due_date": "2026-04-30", "category": "finishes"})
	addTask(t, st, store.Record{"status": "todo", "due_date": "not a date"})
	addTask(t, st, store.Record{"status": "todo"})

	d, err := svc.Dashboard(context.Background(), DashboardRequest{})
	require.NoError(t, err)

	assert.Equal(t, 6, d.TotalTasks)
	assert.Equal(t, 1, d.InProgress)
	assert.Equal(t, 1, d.Completed)
	assert.Equal(t, 1, d.Blocked)
	assert.Equal(t, 17, d.CompletionRate)
	assert.Equal(t, map[string]int{"done": 1, "in-progress": 1, "blocked": 1, "todo": 3}, d.ByStatus)
	assert.Equal(t, map[string]int{"high": 2, "low": 1, "urgent": 1, "medium": 2}, d.ByPriority)
	assert.Equal(t, map[string]int{"structure": 5, "finishes": 1}, d.ByCategory)
	assert.Equal(t, 1, d.Overdue)
	assert.Equal(t, 1, d.DueSoon)
}

func TestDashboard_ScopedToProject(t *testing.T) {
	svc, st := setupTestService(t)
	other, err := st.Insert(context.Background(), store.Projects, store.Record{"name": "Barn conversion"})
	require.NoError(t, err)

	addTask(t, st, store.Record{"status": "done"})
	addTask(t, st, store.Record{"status": "todo", "project_id": other})

	pid := other
	d, err := svc.Dashboard(context.Background(), DashboardRequest{ProjectID: &pid})
	require.NoError(t, err)
	assert.Equal(t, 1, d.TotalTasks)
	assert.Zero(t, d.CompletionRate)

	all, err := svc.Dashboard(context.Background(), DashboardRequest{})
	require.NoError(t, err)
	assert.Equal(t, 50, all.CompletionRate)
}

func TestDashboard_CompletionRateRoundsHalfToEven(t *testing.T) {
	svc, st := setupTestService(t)
	addTask(t, st, store.Record{"status": "done"})
	for i := 0; i < 7; i++ {
		addTask(t, st, store.Record{"status": "todo"})
	}

	d, err := svc.Dashboard(context.Background(), DashboardRequest{})
	require.NoError(t, err)
	assert.Equal(t, 12, d.CompletionRate, "12.5 rounds to the even neighbour")
}
