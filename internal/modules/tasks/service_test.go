package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"avenstudio/internal/pkg/apperr"
	"avenstudio/internal/store"
	"avenstudio/internal/testutil"
)

var now = time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC)

func setupTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(testutil.NewTestStore(t), testutil.FixedClock(now))
}

type mockRecords struct {
	mock.Mock
}

func (m *mockRecords) Get(ctx context.Context, table, id string) (store.Record, error) {
	args := m.Called(ctx, table, id)
	rec, _ := args.Get(0).(store.Record)
	return rec, args.Error(1)
}

func (m *mockRecords) Query(ctx context.Context, table string, filters store.Record) ([]store.Record, error) {
	args := m.Called(ctx, table, filters)
	recs, _ := args.Get(0).([]store.Record)
	return recs, args.Error(1)
}

func (m *mockRecords) Insert(ctx context.Context, table string, rec store.Record) (string, error) {
	args := m.Called(ctx, table, rec)
	return args.String(0), args.Error(1)
}

func (m *mockRecords) Update(ctx context.Context, table, id string, rec store.Record) (bool, error) {
	args := m.Called(ctx, table, id, rec)
	return args.Bool(0), args.Error(1)
}

func (m *mockRecords) Delete(ctx context.Context, table, id string) (bool, error) {
	args := m.Called(ctx, table, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockRecords) UpdateWhere(ctx context.Context, table string, filters, rec store.Record) (int64, error) {
	args := m.Called(ctx, table, filters, rec)
	return args.Get(0).(int64), args.Error(1)
}

func TestCreate_ServerControlledFields(t *testing.T) {
	svc := setupTestService(t)

	task, err := svc.Create(context.Background(), CreateRequest{
		Title:    "Pour foundation",
		Category: "groundworks",
		Tags:     []string{"concrete"},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, task.String("id"))
	assert.Equal(t, store.DefaultProjectID, task.String("project_id"))
	assert.Equal(t, "todo", task.String("status"))
	assert.Equal(t, "medium", task.String("priority"))
	assert.Equal(t, []any{"concrete"}, task["tags"])
	assert.Equal(t, []any{}, task["comments"])
	assert.Equal(t, map[string]any{}, task["custom_fields"])
	assert.Equal(t, "2026-05-04T09:30:00Z", task.String("created_at"))
	n, _ := task.Int("completion_percentage")
	assert.EqualValues(t, 0, n)
}

func TestCreate_Validation(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()
	over := 101

	_, err := svc.Create(ctx, CreateRequest{Category: "groundworks"})
	assert.EqualError(t, err, "Missing required field: title")

	_, err = svc.Create(ctx, CreateRequest{Title: "x"})
	assert.EqualError(t, err, "Missing required field: category")

	_, err = svc.Create(ctx, CreateRequest{Title: "x", Category: "other", CompletionPercentage: &over})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.Create(ctx, CreateRequest{Title: "x", Category: "other", ProjectID: "no-such-project"})
	assert.ErrorIs(t, err, apperr.ErrConstraint)
}

func TestUpdate_PartialAndStructured(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, CreateRequest{Title: "Frame walls", Category: "structure", Description: "timber"})
	require.NoError(t, err)
	id := task.String("id")

	status := "done"
	checklist := []any{map[string]any{"text": "order studs", "done": true}}
	custom := map[string]any{"supplier": "Jewson"}
	got, err := svc.Update(ctx, UpdateRequest{ID: id, Status: &status, Checklist: &checklist, CustomFields: &custom})
	require.NoError(t, err)

	assert.Equal(t, "done", got.String("status"))
	assert.Equal(t, "timber", got.String("description"))
	assert.Equal(t, checklist, got["checklist"])
	assert.Equal(t, custom, got["custom_fields"])

	bad := "finished"
	_, err = svc.Update(ctx, UpdateRequest{ID: id, Status: &bad})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.Update(ctx, UpdateRequest{ID: "missing", Status: &status})
	assert.EqualError(t, err, "Task not found")
}

func TestList_Filters(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{Title: "a", Category: "groundworks", Priority: "high"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateRequest{Title: "b", Category: "finishes"})
	require.NoError(t, err)

	high := "high"
	got, err := svc.List(ctx, ListRequest{Priority: &high})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].String("title"))

	all, err := svc.List(ctx, ListRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestDelete(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, CreateRequest{Title: "a", Category: "other"})
	require.NoError(t, err)

	res, err := svc.Delete(ctx, task.String("id"))
	require.NoError(t, err)
	assert.True(t, res.Deleted)
	assert.Equal(t, store.DefaultProjectID, res.ProjectRef(), "delete events are routed to the task's project")

	_, err = svc.Delete(ctx, task.String("id"))
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestHandle_PropagatesStoreFailure(t *testing.T) {
	records := new(mockRecords)
	svc := NewService(records, testutil.FixedClock(now))
	ctx := context.Background()

	records.On("Get", ctx, store.Tasks, "t1").Return(nil, errors.New("disk I/O error"))

	resp := svc.Handle(ctx, GetRequest{ID: "t1"})
	assert.False(t, resp.Success)
	assert.Equal(t, "disk I/O error", resp.Error)
	assert.Equal(t, apperr.KindInternal, resp.Kind)
	records.AssertExpectations(t)
}

func TestHandle_CreateReadsBackInsertedRow(t *testing.T) {
	records := new(mockRecords)
	svc := NewService(records, testutil.FixedClock(now))
	ctx := context.Background()

	records.On("Insert", ctx, store.Tasks, mock.MatchedBy(func(rec store.Record) bool {
		return rec["status"] == "todo" && rec["title"] == "Roof"
	})).Return("t9", nil)
	records.On("Get", ctx, store.Tasks, "t9").Return(store.Record{"id": "t9", "title": "Roof"}, nil)

	resp := svc.Handle(ctx, CreateRequest{Title: "Roof", Category: "structure"})
	require.True(t, resp.Success, resp.Error)
	assert.Equal(t, store.Record{"id": "t9", "title": "Roof"}, resp.Data)
	records.AssertExpectations(t)
}
