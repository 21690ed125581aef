package budget

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"avenstudio/internal/contract"
	"avenstudio/internal/router"
	"avenstudio/internal/store"
	"avenstudio/internal/testutil"
)

func TestBudgetEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(router.New([]contract.Module{setupTestService(t)})).RegisterRoutes(r.Group("/api"))

	rr := testutil.DoJSON(r, http.MethodPost, "/api/budget", map[string]any{
		"project_id": store.DefaultProjectID, "item_name": "Concrete", "estimated_cost": 1000, "actual_cost": 1200,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = testutil.DoJSON(r, http.MethodGet, "/api/budget/summary/"+store.DefaultProjectID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var sum Summary
	testutil.DecodeEnvelope(t, rr, &sum)
	assert.Equal(t, 200.0, sum.TotalVariance)
	assert.Equal(t, 120.0, sum.SpentPercentage)

	rr = testutil.DoJSON(r, http.MethodGet, "/api/budget/missing", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = testutil.DoJSON(r, http.MethodPost, "/api/budget", map[string]any{"item_name": "x"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
