package store_test

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

func insertProject(t *testing.T, s *store.Store, name string) string {
	t.Helper()
	id, err := s.Insert(context.Background(), store.Projects, store.Record{"name": name})
	require.NoError(t, err)
	return id
}

func TestMigrate_SeedsDefaults(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	p, err := s.Get(ctx, store.Projects, store.DefaultProjectID)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, store.DefaultProjectName, p.String("name"))
	assert.Equal(t, "planning", p.String("status"))

	cats, err := s.Query(ctx, store.Categories, nil)
	require.NoError(t, err)
	assert.Len(t, cats, len(store.DefaultCategories))

	// second run is a no-op
	require.NoError(t, store.Migrate(ctx, s.DB()))
	cats, err = s.Query(ctx, store.Categories, nil)
	require.NoError(t, err)
	assert.Len(t, cats, len(store.DefaultCategories))
}

func TestInsertGet_RoundTripsStructuredFields(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	tags := []any{"urgent", "site"}
	checklist := []any{map[string]any{"text": "order skip", "done": false}}
	custom := map[string]any{"permit": "A-12", "floors": float64(2)}

	id, err := s.Insert(ctx, store.Tasks, store.Record{
		"project_id":    store.DefaultProjectID,
		"title":         "Dig trenches",
		"category":      "groundworks",
		"tags":          tags,
		"checklist":     checklist,
		"custom_fields": custom,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	got, err := s.Get(ctx, store.Tasks, id)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, tags, got["tags"])
	assert.Equal(t, checklist, got["checklist"])
	assert.Equal(t, custom, got["custom_fields"])
	assert.Equal(t, []any{}, got["blocked_by"], "column default decodes to an empty list")
	assert.Equal(t, "todo", got.String("status"))
}

func TestInsert_KeepsSuppliedID(t *testing.T) {
	s := testutil.NewTestStore(t)

	id, err := s.Insert(context.Background(), store.Projects, store.Record{"id": "site-a", "name": "Site A"})
	require.NoError(t, err)
	assert.Equal(t, "site-a", id)
}

func TestGet_MissingReturnsNil(t *testing.T) {
	s := testutil.NewTestStore(t)

	got, err := s.Get(context.Background(), store.Tasks, "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGet_MalformedJSONRecoveredAsRawText(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	id, err := s.Insert(ctx, store.Tasks, store.Record{
		"project_id": store.DefaultProjectID,
		"title":      "Broken tags",
		"category":   "other",
		"tags":       store.RawText("[not json"),
	})
	require.NoError(t, err)

	got, err := s.Get(ctx, store.Tasks, id)
	require.NoError(t, err)
	assert.Equal(t, store.RawText("[not json"), got["tags"])
	assert.Nil(t, got.List("tags"))
}

func TestEnabledDecodesToBool(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	on, err := s.Insert(ctx, store.AutomationRules, store.Record{"name": "a", "trigger": "task_created"})
	require.NoError(t, err)
	off, err := s.Insert(ctx, store.AutomationRules, store.Record{"name": "b", "trigger": "task_created", "enabled": false})
	require.NoError(t, err)

	r, err := s.Get(ctx, store.AutomationRules, on)
	require.NoError(t, err)
	assert.Equal(t, true, r["enabled"])

	r, err = s.Get(ctx, store.AutomationRules, off)
	require.NoError(t, err)
	assert.Equal(t, false, r["enabled"])

	rows, err := s.Query(ctx, store.AutomationRules, store.Record{"enabled": true})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, on, rows[0].String("id"))
}

func TestQuery_IgnoresNilFilters(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	for _, status := range []string{"todo", "done"} {
		_, err := s.Insert(ctx, store.Tasks, store.Record{
			"project_id": store.DefaultProjectID,
			"title":      status,
			"category":   "other",
			"status":     status,
		})
		require.NoError(t, err)
	}

	rows, err := s.Query(ctx, store.Tasks, store.Record{"status": nil, "project_id": store.DefaultProjectID})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = s.Query(ctx, store.Tasks, store.Record{"status": "done"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "done", rows[0].String("title"))
}

func TestQuery_UnknownFilterIsValidationError(t *testing.T) {
	s := testutil.NewTestStore(t)

	_, err := s.Query(context.Background(), store.Tasks, store.Record{"colour": "red"})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestInsert_UnknownFieldIsValidationError(t *testing.T) {
	s := testutil.NewTestStore(t)

	_, err := s.Insert(context.Background(), store.Projects, store.Record{"name": "x", "colour": "red"})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestInsert_CheckConstraintIsConstraintError(t *testing.T) {
	s := testutil.NewTestStore(t)

	_, err := s.Insert(context.Background(), store.Tasks, store.Record{
		"project_id": store.DefaultProjectID,
		"title":      "bad",
		"category":   "other",
		"status":     "finished",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrConstraint)
	assert.Contains(t, err.Error(), "constraint")
}

func TestInsert_ForeignKeyIsConstraintError(t *testing.T) {
	s := testutil.NewTestStore(t)

	_, err := s.Insert(context.Background(), store.Tasks, store.Record{
		"project_id": "missing-project",
		"title":      "orphan",
		"category":   "other",
	})
	assert.ErrorIs(t, err, apperr.ErrConstraint)
}

func TestUpdate_MergesAndStamps(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := testutil.NewTestStore(t, store.WithClock(func() time.Time { return fixed }))
	ctx := context.Background()

	id := insertProject(t, s, "Site A")

	ok, err := s.Update(ctx, store.Projects, id, store.Record{"location": "Bristol"})
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := s.Get(ctx, store.Projects, id)
	require.NoError(t, err)
	assert.Equal(t, "Site A", got.String("name"))
	assert.Equal(t, "Bristol", got.String("location"))
	assert.Equal(t, "2026-03-01T12:00:00Z", got.String("updated_at"))

	ok, err = s.Update(ctx, store.Projects, "nope", store.Record{"location": "Leeds"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUpdateWhere_Reassigns(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := s.Insert(ctx, store.Tasks, store.Record{
			"project_id": store.DefaultProjectID,
			"title":      "t",
			"category":   "external",
		})
		require.NoError(t, err)
	}

	n, err := s.UpdateWhere(ctx, store.Tasks, store.Record{"category": "external"}, store.Record{"category": "other"})
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	_, err = s.UpdateWhere(ctx, store.Tasks, nil, store.Record{"category": "other"})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestDelete_CascadesToChildren(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	pid := insertProject(t, s, "Site A")
	children := map[string]store.Record{
		store.Tasks:       {"project_id": pid, "title": "t", "category": "other"},
		store.BudgetItems: {"project_id": pid, "category": "groundworks", "item_name": "concrete"},
		store.Documents:   {"project_id": pid, "filename": "plan.pdf", "file_path": "/docs/plan.pdf"},
		store.Contacts:    {"project_id": pid, "name": "Builder Bob"},
		store.Milestones:  {"project_id": pid, "name": "Foundations"},
		store.Materials:   {"project_id": pid, "item_name": "Bricks"},
	}
	for table, rec := range children {
		_, err := s.Insert(ctx, table, rec)
		require.NoError(t, err, table)
	}

	ok, err := s.Delete(ctx, store.Projects, pid)
	require.NoError(t, err)
	assert.True(t, ok)

	for table := range children {
		rows, err := s.Query(ctx, table, store.Record{"project_id": pid})
		require.NoError(t, err)
		assert.Empty(t, rows, table)
	}

	ok, err = s.Delete(ctx, store.Projects, pid)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDelete_ContactNullsMaterialSupplier(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	cid, err := s.Insert(ctx, store.Contacts, store.Record{"project_id": store.DefaultProjectID, "name": "Supplier"})
	require.NoError(t, err)
	mid, err := s.Insert(ctx, store.Materials, store.Record{"project_id": store.DefaultProjectID, "item_name": "Blocks", "supplier_id": cid})
	require.NoError(t, err)

	_, err = s.Delete(ctx, store.Contacts, cid)
	require.NoError(t, err)

	m, err := s.Get(ctx, store.Materials, mid)
	require.NoError(t, err)
	assert.Nil(t, m["supplier_id"])
}

func TestUnknownTable(t *testing.T) {
	s := testutil.NewTestStore(t)

	_, err := s.Get(context.Background(), "widgets", "1")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}
