package projects

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

var now = time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC)

func setupTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	st := testutil.NewTestStore(t)
	return NewService(st, testutil.FixedClock(now)), st
}

func TestCreate_FillsServerFields(t *testing.T) {
	svc, _ := setupTestService(t)
	budget := 250000.0

	p, err := svc.Create(context.Background(), CreateRequest{Name: "Site A", Location: "Devon", BudgetTotal: &budget})
	require.NoError(t, err)

	assert.NotEmpty(t, p.String("id"))
	assert.Equal(t, "Site A", p.String("name"))
	assert.Equal(t, "self-build", p.String("project_type"))
	assert.Equal(t, "planning", p.String("status"))
	assert.Equal(t, 250000.0, p.Float("budget_total"))
	assert.Equal(t, "2026-05-04T09:30:00Z", p.String("created_at"))
}

func TestCreate_RequiresName(t *testing.T) {
	svc, _ := setupTestService(t)

	_, err := svc.Create(context.Background(), CreateRequest{Name: "  "})
	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.EqualError(t, err, "Project name required")
}

func TestCreate_RejectsUnknownType(t *testing.T) {
	svc, _ := setupTestService(t)

	_, err := svc.Create(context.Background(), CreateRequest{Name: "x", ProjectType: "castle"})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestUpdate_OnlyGivenFields(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, CreateRequest{Name: "Site A", Location: "Devon"})
	require.NoError(t, err)

	status := "in-progress"
	got, err := svc.Update(ctx, UpdateRequest{ID: p.String("id"), Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "in-progress", got.String("status"))
	assert.Equal(t, "Devon", got.String("location"))

	_, err = svc.Update(ctx, UpdateRequest{ID: "missing", Status: &status})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDelete(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	_, err := svc.Delete(ctx, store.DefaultProjectID)
	assert.ErrorIs(t, err, apperr.ErrProtected)
	assert.EqualError(t, err, "Cannot delete default project")

	_, err = svc.Delete(ctx, "missing")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	p, err := svc.Create(ctx, CreateRequest{Name: "Site A"})
	require.NoError(t, err)
	res, err := svc.Delete(ctx, p.String("id"))
	require.NoError(t, err)
	assert.True(t, res.Deleted)
}

func TestStats(t *testing.T) {
	svc, st := setupTestService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, CreateRequest{Name: "Site A"})
	require.NoError(t, err)
	pid := p.String("id")

	insert := func(table string, rec store.Record) {
		t.Helper()
		rec["project_id"] = pid
		_, err := st.Insert(ctx, table, rec)
		require.NoError(t, err)
	}
	insert(store.Tasks, store.Record{"title": "a", "category": "other", "status": "done", "phase": "groundworks"})
	insert(store.Tasks, store.Record{"title": "b", "category": "other", "status": "todo", "phase": "groundworks"})
	insert(store.Tasks, store.Record{"title": "c", "category": "other", "status": "todo"})
	insert(store.BudgetItems, store.Record{"category": "land", "item_name": "plot", "estimated_cost": 1000.0, "actual_cost": 1200.0})
	insert(store.BudgetItems, store.Record{"category": "mep", "item_name": "boiler", "estimated_cost": 500.0})
	insert(store.Milestones, store.Record{"name": "Planning granted"})
	insert(store.Documents, store.Record{"filename": "a.pdf", "file_path": "/a.pdf"})
	insert(store.Contacts, store.Record{"name": "Arch"})
	insert(store.Materials, store.Record{"item_name": "Bricks"})
	insert(store.Materials, store.Record{"item_name": "Blocks"})

	stats, err := svc.Stats(ctx, pid)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Tasks.Total)
	assert.Equal(t, map[string]int{"done": 1, "todo": 2}, stats.Tasks.ByStatus)
	assert.Equal(t, map[string]int{"groundworks": 2, "unassigned": 1}, stats.Tasks.ByPhase)
	assert.Equal(t, 33.3, stats.Tasks.CompletionRate)

	assert.Equal(t, 1500.0, stats.Budget.TotalEstimated)
	assert.Equal(t, 1200.0, stats.Budget.TotalActual)
	assert.Equal(t, -300.0, stats.Budget.Variance)
	assert.Equal(t, 2, stats.Budget.ItemsCount)

	assert.Equal(t, 1, stats.Milestones.Total)
	assert.Equal(t, map[string]int{"pending": 1}, stats.Milestones.ByStatus)
	assert.Equal(t, 1, stats.DocumentsCount)
	assert.Equal(t, 1, stats.ContactsCount)
	assert.Equal(t, 2, stats.MaterialsCount)
	assert.Equal(t, pid, stats.ProjectRef())
}

func TestStats_EmptyProject(t *testing.T) {
	svc, _ := setupTestService(t)

	stats, err := svc.Stats(context.Background(), store.DefaultProjectID)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Tasks.Total)
	assert.Equal(t, 0.0, stats.Tasks.CompletionRate)
	assert.Empty(t, stats.Tasks.ByStatus)
}
