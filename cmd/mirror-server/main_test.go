package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveSnapshot(t *testing.T, content string) *httptest.ResponseRecorder {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bodies.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/allbodies", snapshotHandler(path))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/allbodies", nil))
	return rec
}

func TestSnapshotHandler(t *testing.T) {
	rec := serveSnapshot(t, `{"bodies":[{"id":"terre","isPlanet":true}]}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"terre"`)
}

func TestSnapshotHandlerRejectsBrokenFile(t *testing.T) {
	rec := serveSnapshot(t, `{"bodies":[`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Error fetching bodies"}`, rec.Body.String())
}
