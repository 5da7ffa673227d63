package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-log-viewer/internal/model"
	"go-log-viewer/internal/service"
	"go-log-viewer/internal/storage"
	"go-log-viewer/pkg/apierror"
)

func newTestHandler(t *testing.T) (*LogHandler, string) {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "app.log"), []byte("2024-01-01 ERROR: boom\n2024-01-01 INFO: ok\n2024-01-01 INFO: ok2\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "nested", "worker.log"), []byte("INFO started\n"), 0o644))

	store, err := storage.New(root)
	require.NoError(t, err)

	svc := service.NewLogService(store, nil, service.DefaultTailWindow(), nil)
	return NewLogHandler(svc, 500), root
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestLogHandler_Files(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t)
	rec := httptest.NewRecorder()
	h.Files(rec, httptest.NewRequest(http.MethodGet, "/logs/api/files", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decode[model.FilesResponse](t, rec)
	require.Len(t, body.Files, 2)
	assert.Equal(t, "app.log", body.Files[0].Name)
	assert.Equal(t, "nested/worker.log", body.Files[1].Name)
	assert.False(t, body.Files[0].Modified.IsZero())
}

func TestLogHandler_Content(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t)

	tests := []struct {
		name     string
		query    string
		expected model.ReadResult
	}{
		{
			name:     "default file and level filter",
			query:    "level=error",
			expected: model.ReadResult{Lines: []string{"2024-01-01 ERROR: boom"}, Total: 1, Page: 1, TotalPages: 1},
		},
		{
			name:     "newest page",
			query:    "file=app.log&lines=2",
			expected: model.ReadResult{Lines: []string{"2024-01-01 INFO: ok", "2024-01-01 INFO: ok2"}, Total: 3, Page: 1, TotalPages: 2},
		},
		{
			name:     "older page",
			query:    "file=app.log&lines=2&page=2",
			expected: model.ReadResult{Lines: []string{"2024-01-01 ERROR: boom"}, Total: 3, Page: 2, TotalPages: 2},
		},
		{
			name:     "malformed numbers fall back",
			query:    "file=app.log&lines=abc&page=xyz&search=OK2",
			expected: model.ReadResult{Lines: []string{"2024-01-01 INFO: ok2"}, Total: 1, Page: 1, TotalPages: 1},
		},
		{
			name:     "escape attempt",
			query:    "file=" + url.QueryEscape("../../etc/passwd"),
			expected: model.ReadResult{Lines: []string{}, Page: 1, TotalPages: 1, Error: model.InvalidFileMessage},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Content(rec, httptest.NewRequest(http.MethodGet, "/logs/api/content?"+tt.query, nil))

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.expected, decode[model.ReadResult](t, rec))
		})
	}
}

func TestLogHandler_ContentWireShape(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t)
	rec := httptest.NewRecorder()
	h.Content(rec, httptest.NewRequest(http.MethodGet, "/logs/api/content?file=missing.log", nil))

	assert.JSONEq(t, `{"lines":[],"total":0,"page":1,"total_pages":1,"error":"Invalid or missing file"}`, rec.Body.String())
}

func TestLogHandler_Mutations(t *testing.T) {
	t.Parallel()

	h, root := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.Clear(rec, httptest.NewRequest(http.MethodPost, "/logs/api/clear?file=nested/worker.log", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"worker.log cleared"}`, rec.Body.String())

	info, err := os.Stat(filepath.Join(root, "nested", "worker.log"))
	require.NoError(t, err)
	assert.Zero(t, info.Size())

	rec = httptest.NewRecorder()
	h.Delete(rec, httptest.NewRequest(http.MethodDelete, "/logs/api/file?file=app.log", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"app.log deleted"}`, rec.Body.String())

	_, err = os.Stat(filepath.Join(root, "app.log"))
	require.True(t, os.IsNotExist(err))

	for _, target := range []string{"app.log", "../outside.log", "", "nested"} {
		rec = httptest.NewRecorder()
		h.Delete(rec, httptest.NewRequest(http.MethodDelete, "/logs/api/file?file="+url.QueryEscape(target), nil))
		assert.Equal(t, http.StatusNotFound, rec.Code, target)
		assert.JSONEq(t, `{"success":false,"error":"Invalid or missing file"}`, rec.Body.String(), target)

		rec = httptest.NewRecorder()
		h.Clear(rec, httptest.NewRequest(http.MethodPost, "/logs/api/clear?file="+url.QueryEscape(target), nil))
		assert.Equal(t, http.StatusNotFound, rec.Code, target)
	}
}

func TestParseContentQuery(t *testing.T) {
	t.Parallel()

	query := ParseContentQuery(url.Values{}, 250)
	assert.Equal(t, model.ContentQuery{File: "app.log", Lines: 250, Page: 1}, query)

	query = ParseContentQuery(url.Values{"file": {""}, "lines": {"0"}, "level": {" warning "}, "search": {" timeout"}, "page": {"3"}}, 250)
	assert.Equal(t, model.ContentQuery{File: "", Lines: 0, Level: " warning ", Search: " timeout", Page: 3}, query)
}

func TestMutationSuccess(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "worker.log cleared", MutationSuccess("nested/worker.log", "cleared").Message)
	assert.Equal(t, "worker.log deleted", MutationSuccess(`nested\worker.log`, "deleted").Message)
	assert.True(t, MutationSuccess("app.log", "deleted").Success)
}

func TestErrorResponse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err     error
		status  int
		message string
	}{
		{err: apierror.Wrap(model.ErrPathEscape, "INVALID_FILE", model.InvalidFileMessage, "", http.StatusNotFound), status: http.StatusNotFound, message: model.InvalidFileMessage},
		{err: fmt.Errorf("resolve: %w", model.ErrFileNotFound), status: http.StatusNotFound, message: model.InvalidFileMessage},
		{err: model.ErrUnauthorized, status: http.StatusUnauthorized, message: "Authentication required"},
		{err: fmt.Errorf("%w: truncate", model.ErrMutationFailure), status: http.StatusInternalServerError, message: "Unable to modify log file"},
		{err: errors.New("surprise"), status: http.StatusInternalServerError, message: "Unexpected server error"},
	}

	for _, tt := range tests {
		status, body := ErrorResponse(tt.err)
		assert.Equal(t, tt.status, status, tt.err.Error())
		assert.False(t, body.Success)
		assert.Equal(t, tt.message, body.Error)
	}
}

func TestDocsHandler(t *testing.T) {
	t.Parallel()

	h := NewDocsHandler("/logs/openapi.yaml")

	rec := httptest.NewRecorder()
	h.OpenAPI(rec, httptest.NewRequest(http.MethodGet, "/logs/openapi.yaml", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "openapi: 3.0.3")

	rec = httptest.NewRecorder()
	h.SwaggerUI(rec, httptest.NewRequest(http.MethodGet, "/logs/swagger", nil))
	assert.Contains(t, rec.Body.String(), "url: '/logs/openapi.yaml'")
}
