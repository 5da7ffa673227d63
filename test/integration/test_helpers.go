//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"go-log-viewer/internal/app"
	"go-log-viewer/internal/config"
)

const (
	testUser     = "viewer"
	testPassword = "viewer-pass"
	testSecret   = "privileged-secret"
)

var frameworks = []string{config.FrameworkChi, config.FrameworkGin}

func newTestConfig(t *testing.T, framework string) *config.Config {
	t.Helper()

	logDir := filepath.Join(t.TempDir(), "logs")
	require.NoError(t, os.MkdirAll(logDir, 0o755))

	return &config.Config{
		ServerPort:           "0",
		RequestTimeout:       5 * time.Second,
		LogDir:               logDir,
		URLPrefix:            "/logs",
		HTTPFramework:        framework,
		Username:             testUser,
		Password:             testPassword,
		PrivilegedAccess:     true,
		PrivilegedJWTSecret:  testSecret,
		DefaultLines:         500,
		TailAverageLineBytes: 500,
		TailFloorBytes:       1024 * 1024,
		EntryFormat:          "heuristic",
		CORSOrigins:          []string{"*"},
		RateLimitRPM:         1000,
		MutationRateLimitRPM: 1000,
		AuditLogFile:         filepath.Join(t.TempDir(), "audit.log"),
		UIRefreshTimer:       5000,
		LogFormat:            config.LogFormatPretty,
	}
}

func newViewerServer(t *testing.T, cfg *config.Config) *httptest.Server {
	t.Helper()

	h, err := app.NewHandler(cfg)
	require.NoError(t, err)

	server := httptest.NewServer(h)
	t.Cleanup(server.Close)
	return server
}

func writeLog(t *testing.T, cfg *config.Config, name string, contents string) string {
	t.Helper()

	path := filepath.Join(cfg.LogDir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func mustNewRequest(t *testing.T, method string, url string, body []byte) *http.Request {
	t.Helper()

	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	require.NoError(t, err)
	return req
}

func newAuthRequest(t *testing.T, method string, url string) *http.Request {
	t.Helper()

	req := mustNewRequest(t, method, url, nil)
	req.SetBasicAuth(testUser, testPassword)
	return req
}

func doRequest(t *testing.T, req *http.Request) *http.Response {
	t.Helper()

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func doAuthRequest(t *testing.T, method string, url string) *http.Response {
	t.Helper()

	return doRequest(t, newAuthRequest(t, method, url))
}

func decodeJSON(t *testing.T, resp *http.Response, v any) {
	t.Helper()

	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}
