package documents

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

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, _ := setupTestService(t)
	r := gin.New()
	NewHandler(router.New([]contract.Module{svc})).RegisterRoutes(r.Group("/api"))
	return r
}

func TestDocumentEndpoints(t *testing.T) {
	r := setupTestRouter(t)

	rr := testutil.DoJSON(r, http.MethodPost, "/api/documents", map[string]any{
		"project_id":    store.DefaultProjectID,
		"filename":      "floor-plan.pdf",
		"file_path":     "/uploads/floor-plan.pdf",
		"document_type": "drawing",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var created store.Record
	testutil.DecodeEnvelope(t, rr, &created)
	id := created.String("id")

	rr = testutil.DoJSON(r, http.MethodPost, "/api/documents/"+id+"/version", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var bumped store.Record
	testutil.DecodeEnvelope(t, rr, &bumped)
	assert.EqualValues(t, 2, bumped.Float("version"))

	rr = testutil.DoJSON(r, http.MethodGet, "/api/documents/by-type/"+store.DefaultProjectID+"/drawing", nil)
	var list []store.Record
	testutil.DecodeEnvelope(t, rr, &list)
	assert.Len(t, list, 1)

	rr = testutil.DoJSON(r, http.MethodDelete, "/api/documents/"+id, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var del Deleted
	testutil.DecodeEnvelope(t, rr, &del)
	assert.Equal(t, "/uploads/floor-plan.pdf", del.FilePath)
}

func TestDocumentEndpoints_Errors(t *testing.T) {
	r := setupTestRouter(t)

	rr := testutil.DoJSON(r, http.MethodPost, "/api/documents", map[string]any{"filename": "x.pdf"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	env := testutil.DecodeEnvelope(t, rr, nil)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	rr = testutil.DoJSON(r, http.MethodGet, "/api/documents/missing", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
