package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/docstore/document-service/internal/cache"
	"github.com/docstore/document-service/internal/document/service"
	"github.com/docstore/document-service/internal/storage"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	g := gin.New()
	svc := service.NewService(storage.NewMemoryBackend(), cache.NewDisabled(), false)
	RegisterDocumentRoutes(g, svc)
	return g
}

func doJSON(g *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	g.ServeHTTP(w, req)
	return w
}

func TestPutThenGetDocument(t *testing.T) {
	g := newTestRouter()

	w := doJSON(g, http.MethodPut, "/documents/doc1", `{"content":"hello"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var stored map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stored))
	require.Equal(t, "doc1", stored["id"])
	require.Equal(t, "stored", stored["status"])
	require.EqualValues(t, 5, stored["size"])

	w = doJSON(g, http.MethodGet, "/documents/doc1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Equal(t, "doc1", got["id"])
	require.Equal(t, "hello", got["content"])
	require.NotEmpty(t, got["created_at"])
}

func TestOverwriteNeverServesStale(t *testing.T) {
	g := newTestRouter()

	require.Equal(t, http.StatusOK, doJSON(g, http.MethodPut, "/documents/doc1", `{"content":"hello"}`).Code)
	require.Equal(t, http.StatusOK, doJSON(g, http.MethodGet, "/documents/doc1", "").Code)
	require.Equal(t, http.StatusOK, doJSON(g, http.MethodPut, "/documents/doc1", `{"content":"world"}`).Code)

	w := doJSON(g, http.MethodGet, "/documents/doc1", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "world")
	require.NotContains(t, w.Body.String(), "hello")
}

func TestPutValidation(t *testing.T) {
	g := newTestRouter()

	// empty content
	w := doJSON(g, http.MethodPut, "/documents/doc1", `{"content":""}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "validation_error")

	// oversized content
	big, _ := json.Marshal(map[string]string{"content": strings.Repeat("a", 102401)})
	w = doJSON(g, http.MethodPut, "/documents/doc1", string(big))
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "validation_error")

	// exactly at the limit is fine
	atLimit, _ := json.Marshal(map[string]string{"content": strings.Repeat("a", 102400)})
	w = doJSON(g, http.MethodPut, "/documents/doc1", string(atLimit))
	require.Equal(t, http.StatusOK, w.Code)

	// malformed body
	w = doJSON(g, http.MethodPut, "/documents/doc1", `{"content":`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetNotFound(t *testing.T) {
	g := newTestRouter()

	w := doJSON(g, http.MethodGet, "/documents/never-written", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "not_found")
}

func TestPutStorageFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	g := gin.New()
	svc := service.NewService(storage.NewUnsupportedBackend("rds"), cache.NewDisabled(), false)
	RegisterDocumentRoutes(g, svc)

	w := doJSON(g, http.MethodPut, "/documents/doc1", `{"content":"hello"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Contains(t, w.Body.String(), "storage_failure")

	w = doJSON(g, http.MethodGet, "/documents/doc1", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
}
