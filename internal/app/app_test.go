package app

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-log-viewer/internal/config"
)

func testConfig(t *testing.T, framework string) *config.Config {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "app.log"), []byte("INFO ready\n"), 0o644))

	return &config.Config{
		ServerPort:           "0",
		RequestTimeout:       5 * time.Second,
		LogDir:               root,
		URLPrefix:            "/logs",
		HTTPFramework:        framework,
		DefaultLines:         500,
		TailAverageLineBytes: 500,
		TailFloorBytes:       1024,
		EntryFormat:          "heuristic",
		MutationRateLimitRPM: 10,
		AuditLogFile:         filepath.Join(t.TempDir(), "audit.log"),
		UIRefreshTimer:       5000,
		LogFormat:            config.LogFormatPretty,
	}
}

func TestNewHandlerFrameworks(t *testing.T) {
	for _, framework := range []string{config.FrameworkChi, config.FrameworkGin} {
		t.Run(framework, func(t *testing.T) {
			cfg := testConfig(t, framework)
			h, err := NewHandler(cfg)
			require.NoError(t, err)

			for _, target := range []string{"/health", "/logs/", "/logs/api/files", "/logs/api/content?file=app.log"} {
				rec := httptest.NewRecorder()
				h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
				assert.Equal(t, http.StatusOK, rec.Code, target)
			}

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/logs/api/clear?file=app.log", nil))
			assert.Equal(t, http.StatusOK, rec.Code)

			audit, err := os.ReadFile(cfg.AuditLogFile)
			require.NoError(t, err)
			assert.Contains(t, string(audit), `"action":"log.clear"`)
		})
	}
}

func TestNewHandlerRejectsBadPattern(t *testing.T) {
	cfg := testConfig(t, config.FrameworkChi)
	cfg.EntryFormat = "pattern"
	cfg.EntryStartPattern = "(["

	_, err := NewHandler(cfg)
	require.Error(t, err)
}

func TestNewWithConfig(t *testing.T) {
	cfg := testConfig(t, config.FrameworkChi)
	cfg.ServerPort = "18080"

	application, err := NewWithConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, ":18080", application.server.Addr)
}

func TestNewHandlerRejectsAuditLogInsideLogDir(t *testing.T) {
	for _, framework := range []string{config.FrameworkChi, config.FrameworkGin} {
		t.Run(framework, func(t *testing.T) {
			cfg := testConfig(t, framework)
			cfg.AuditLogFile = filepath.Join(cfg.LogDir, "audit.log")

			h, err := NewHandler(cfg)
			require.Error(t, err)
			assert.Nil(t, h)
			assert.Contains(t, err.Error(), "inside LOG_DIR")
			assert.NoFileExists(t, cfg.AuditLogFile)
		})
	}
}
