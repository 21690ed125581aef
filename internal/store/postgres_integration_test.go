//go:build integration

package store_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"avenstudio/internal/database"
	"avenstudio/internal/pkg/apperr"
	"avenstudio/internal/store"
)

func startPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "aven",
				"POSTGRES_PASSWORD": "aven",
				"POSTGRES_DB":       "aven",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := c.Terminate(context.Background()); err != nil {
			t.Logf("terminate postgres: %v", err)
		}
	})

	host, err := c.Host(ctx)
	require.NoError(t, err)
	port, err := c.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)
	return fmt.Sprintf("postgres://aven:aven@%s:%s/aven?sslmode=disable", host, port.Port())
}

func TestPostgres_StoreContract(t *testing.T) {
	dsn := startPostgres(t)
	ctx := context.Background()

	db, err := database.Connect(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, store.Migrate(ctx, db))
	require.NoError(t, store.Migrate(ctx, db))

	s := store.New(db)

	def, err := s.Get(ctx, store.Projects, store.DefaultProjectID)
	require.NoError(t, err)
	require.NotNil(t, def)
	assert.Equal(t, store.DefaultProjectName, def.String("name"))

	id, err := s.Insert(ctx, store.Tasks, store.Record{
		"project_id": store.DefaultProjectID,
		"title":      "Pour slab",
		"category":   "structure",
		"tags":       []string{"concrete"},
		"custom_fields": map[string]any{
			"supplier": "Readymix",
		},
	})
	require.NoError(t, err)

	task, err := s.Get(ctx, store.Tasks, id)
	require.NoError(t, err)
	assert.Equal(t, []any{"concrete"}, task["tags"])
	assert.Equal(t, map[string]any{"supplier": "Readymix"}, task["custom_fields"])

	rule, err := s.Insert(ctx, store.AutomationRules, store.Record{
		"name": "r", "trigger": "status_change", "enabled": true,
	})
	require.NoError(t, err)
	rules, err := s.Query(ctx, store.AutomationRules, store.Record{"enabled": true})
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, rule, rules[0].String("id"))
	assert.Equal(t, true, rules[0]["enabled"])

	_, err = s.Insert(ctx, store.Tasks, store.Record{
		"project_id": "missing", "title": "x", "category": "other",
	})
	assert.ErrorIs(t, err, apperr.ErrConstraint)

	ok, err := s.Delete(ctx, store.Projects, store.DefaultProjectID)
	require.NoError(t, err)
	assert.True(t, ok)
	gone, err := s.Get(ctx, store.Tasks, id)
	require.NoError(t, err)
	assert.Nil(t, gone, "tasks cascade with their project")
}
