package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"go-log-viewer/internal/logentry"
	"go-log-viewer/internal/model"
	"go-log-viewer/internal/storage"
	"go-log-viewer/pkg/apierror"
)

func newTestService(t *testing.T, files map[string]string) (*LogService, string) {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		target := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(target), 0o755))
		require.NoError(t, os.WriteFile(target, []byte(content), 0o644))
	}

	store, err := storage.New(root)
	require.NoError(t, err)

	return NewLogService(store, nil, DefaultTailWindow(), nil), root
}

func TestLogService_ReadEndToEnd(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, map[string]string{
		"app.log": "2024-01-01 ERROR: boom\n2024-01-01 INFO: ok\n2024-01-01 INFO: ok2\n",
	})
	ctx := context.Background()

	t.Run("level filter", func(t *testing.T) {
		result := svc.Read(ctx, model.ContentQuery{File: "app.log", Lines: 500, Level: "ERROR", Page: 1})
		assert.Equal(t, model.ReadResult{
			Lines:      []string{"2024-01-01 ERROR: boom"},
			Total:      1,
			Page:       1,
			TotalPages: 1,
		}, result)
	})

	t.Run("first page holds the newest entries", func(t *testing.T) {
		result := svc.Read(ctx, model.ContentQuery{File: "app.log", Lines: 2, Page: 1})
		assert.Equal(t, []string{"2024-01-01 INFO: ok", "2024-01-01 INFO: ok2"}, result.Lines)
		assert.Equal(t, 3, result.Total)
		assert.Equal(t, 2, result.TotalPages)
		assert.Empty(t, result.Error)
	})

	t.Run("second page holds the oldest entry", func(t *testing.T) {
		result := svc.Read(ctx, model.ContentQuery{File: "app.log", Lines: 2, Page: 2})
		assert.Equal(t, []string{"2024-01-01 ERROR: boom"}, result.Lines)
		assert.Equal(t, 2, result.Page)
		assert.Equal(t, 2, result.TotalPages)
	})

	t.Run("unlimited lines", func(t *testing.T) {
		result := svc.Read(ctx, model.ContentQuery{File: "app.log", Lines: 0, Page: 3})
		assert.Len(t, result.Lines, 3)
		assert.Equal(t, 1, result.Page)
		assert.Equal(t, 1, result.TotalPages)
	})

	t.Run("search without matches", func(t *testing.T) {
		result := svc.Read(ctx, model.ContentQuery{File: "app.log", Lines: 10, Search: "nothing here", Page: 1})
		assert.NotNil(t, result.Lines)
		assert.Empty(t, result.Lines)
		assert.Equal(t, 0, result.Total)
		assert.Equal(t, 1, result.TotalPages)
	})
}

func TestLogService_ReadGroupsMultilineEntries(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, map[string]string{
		"nested/worker.log": "2024-01-01 ERROR failed\nTraceback (most recent call last):\n  boom\n2024-01-01 INFO done\n",
	})

	result := svc.Read(context.Background(), model.ContentQuery{File: "nested/worker.log", Lines: 10, Search: "traceback", Page: 1})
	require.Equal(t, []string{"2024-01-01 ERROR failed\nTraceback (most recent call last):\n  boom"}, result.Lines)
}

func TestLogService_ReadInvalidFile(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, map[string]string{"app.log": "INFO ok\n"})

	for _, file := range []string{"missing.log", "../etc/passwd", "/etc/passwd", ""} {
		result := svc.Read(context.Background(), model.ContentQuery{File: file, Lines: 10, Page: 1})
		assert.Equal(t, model.ReadResult{
			Lines:      []string{},
			Total:      0,
			Page:       1,
			TotalPages: 1,
			Error:      model.InvalidFileMessage,
		}, result, file)
	}
}

func TestLogService_ReadFailure(t *testing.T) {
	t.Parallel()

	store := new(storage.MockStorage)
	store.On("Resolve", "app.log").Return("/logs/app.log", nil)
	store.On("ReadTail", "/logs/app.log", mock.AnythingOfType("int64")).
		Return(nil, fmt.Errorf("%w: decode line: invalid utf-8", model.ErrReadFailure))

	svc := NewLogService(store, nil, DefaultTailWindow(), nil)
	result := svc.Read(context.Background(), model.ContentQuery{File: "app.log", Lines: 10, Page: 4})

	require.Len(t, result.Lines, 1)
	assert.True(t, strings.HasPrefix(result.Lines[0], "Error reading log file: "))
	assert.Equal(t, result.Lines[0], result.Error)
	assert.Equal(t, 0, result.Total)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 1, result.TotalPages)
	store.AssertExpectations(t)
}

func TestLogService_ReadWindowGrowsWithPage(t *testing.T) {
	t.Parallel()

	store := new(storage.MockStorage)
	store.On("Resolve", "app.log").Return("/logs/app.log", nil)
	store.On("ReadTail", "/logs/app.log", int64(3*100*10)).Return([]string{"INFO a"}, nil).Once()
	store.On("ReadTail", "/logs/app.log", int64(0)).Return([]string{"INFO a"}, nil).Once()

	svc := NewLogService(store, nil, TailWindow{AverageLineBytes: 10, FloorBytes: 1}, nil)
	svc.Read(context.Background(), model.ContentQuery{File: "app.log", Lines: 100, Page: 3})
	svc.Read(context.Background(), model.ContentQuery{File: "app.log", Lines: 0, Page: 1})

	store.AssertExpectations(t)
}

func TestLogService_CustomMatcher(t *testing.T) {
	t.Parallel()

	store := new(storage.MockStorage)
	store.On("Resolve", "app.jsonl").Return("/logs/app.jsonl", nil)
	store.On("ReadTail", "/logs/app.jsonl", mock.AnythingOfType("int64")).Return([]string{
		`{"level":"ERROR","msg":"panic"}`,
		"goroutine 1 [running]:",
		`{"level":"INFO","msg":"ok"}`,
	}, nil)

	svc := NewLogService(store, logentry.JSONMatcher{}, DefaultTailWindow(), nil)
	result := svc.Read(context.Background(), model.ContentQuery{File: "app.jsonl", Lines: 10, Level: "error", Page: 1})

	require.Equal(t, []string{"{\"level\":\"ERROR\",\"msg\":\"panic\"}\ngoroutine 1 [running]:"}, result.Lines)
}

func TestLogService_ListFiles(t *testing.T) {
	t.Parallel()

	t.Run("never returns nil", func(t *testing.T) {
		store := new(storage.MockStorage)
		store.On("List").Return(nil, nil)

		files, err := NewLogService(store, nil, DefaultTailWindow(), nil).ListFiles(context.Background())
		require.NoError(t, err)
		require.NotNil(t, files)
		require.Empty(t, files)
	})

	t.Run("propagates errors", func(t *testing.T) {
		store := new(storage.MockStorage)
		store.On("List").Return(nil, errors.New("walk failed"))

		_, err := NewLogService(store, nil, DefaultTailWindow(), nil).ListFiles(context.Background())
		require.Error(t, err)
	})
}

func TestLogService_Mutations(t *testing.T) {
	t.Parallel()

	svc, root := newTestService(t, map[string]string{
		"app.log":   "INFO one\nINFO two\n",
		"other.log": "INFO keep\n",
	})
	ctx := context.Background()
	actor := model.AuditActor{Username: "admin", IP: "127.0.0.1"}

	require.NoError(t, svc.Clear(ctx, "app.log", actor))
	info, err := os.Stat(filepath.Join(root, "app.log"))
	require.NoError(t, err)
	assert.Equal(t, int64(0), info.Size())

	require.NoError(t, svc.Delete(ctx, "app.log", actor))
	files, err := svc.ListFiles(ctx)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "other.log", files[0].Name)

	for _, file := range []string{"app.log", "../other.log", "/etc/hosts"} {
		err := svc.Clear(ctx, file, actor)
		var apiErr *apierror.APIError
		require.ErrorAs(t, err, &apiErr, file)
		assert.Equal(t, 404, apiErr.HTTPStatus)

		require.Error(t, svc.Delete(ctx, file, actor))
	}

	_, err = os.Stat(filepath.Join(root, "other.log"))
	require.NoError(t, err)
}
