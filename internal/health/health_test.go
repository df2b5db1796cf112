// SPDX-License-Identifier: MIT

package health

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChecker struct {
	name   string
	result CheckResult
}

func (s stubChecker) Name() string                      { return s.name }
func (s stubChecker) Check(context.Context) CheckResult { return s.result }

func TestManager_Health(t *testing.T) {
	m := NewManager("v1.2.3")
	m.RegisterChecker(stubChecker{"catalog", CheckResult{Status: StatusUnhealthy}})

	resp := m.Health(context.Background(), false)
	assert.Equal(t, StatusHealthy, resp.Status, "liveness ignores components unless verbose")
	assert.Equal(t, "v1.2.3", resp.Version)
	assert.Nil(t, resp.Checks)

	resp = m.Health(context.Background(), true)
	assert.Equal(t, StatusUnhealthy, resp.Status)
	assert.Contains(t, resp.Checks, "catalog")
}

func TestManager_Ready(t *testing.T) {
	tests := []struct {
		name      string
		checkers  []Checker
		wantReady bool
		want      Status
	}{
		{"no checkers", nil, true, StatusHealthy},
		{"degraded is ready", []Checker{stubChecker{"a", CheckResult{Status: StatusDegraded}}}, true, StatusDegraded},
		{"unhealthy wins", []Checker{
			stubChecker{"a", CheckResult{Status: StatusDegraded}},
			stubChecker{"b", CheckResult{Status: StatusUnhealthy}},
			stubChecker{"c", CheckResult{Status: StatusHealthy}},
		}, false, StatusUnhealthy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager("")
			for _, c := range tt.checkers {
				m.RegisterChecker(c)
			}
			resp := m.Ready(context.Background())
			assert.Equal(t, tt.wantReady, resp.Ready)
			assert.Equal(t, tt.want, resp.Status)
		})
	}
}

func TestServeReady_StatusCodes(t *testing.T) {
	n := 0
	m := NewManager("")
	m.RegisterChecker(NewCountChecker("catalog", func() int { return n }))

	rec := httptest.NewRecorder()
	m.ServeReady(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	n = 4
	rec = httptest.NewRecorder()
	m.ServeReady(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ReadinessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "4 entries", resp.Checks["catalog"].Message)
}

func TestServeHealth_AlwaysOK(t *testing.T) {
	m := NewManager("dev")
	m.RegisterChecker(stubChecker{"x", CheckResult{Status: StatusUnhealthy}})

	rec := httptest.NewRecorder()
	m.ServeHealth(rec, httptest.NewRequest(http.MethodGet, "/healthz?verbose=true", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"unhealthy"`)
}

func TestFileChecker(t *testing.T) {
	dir := t.TempDir()
	full := filepath.Join(dir, "catalog.json")
	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(full, []byte("[]"), 0o600))
	require.NoError(t, os.WriteFile(empty, nil, 0o600))

	tests := []struct {
		path string
		want Status
	}{
		{"", StatusHealthy},
		{full, StatusHealthy},
		{empty, StatusDegraded},
		{dir, StatusUnhealthy},
		{filepath.Join(dir, "missing.json"), StatusUnhealthy},
	}
	for _, tt := range tests {
		got := NewFileChecker("catalog_file", tt.path).Check(context.Background())
		assert.Equal(t, tt.want, got.Status, "path %q", tt.path)
	}
}
