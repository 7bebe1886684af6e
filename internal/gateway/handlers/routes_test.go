package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"room-designer/internal/common/config"
	"room-designer/internal/gateway/proxy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type echoed struct {
	Method string `json:"method"`
	Path   string `json:"path"`
	Query  string `json:"query"`
	Auth   string `json:"auth"`
	Type   string `json:"type"`
	Body   string `json:"body"`
}

func newUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health/ready" {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"ready"}`))
			return
		}
		if r.URL.Path == "/cookies" {
			http.SetCookie(w, &http.Cookie{Name: "a", Value: "1"})
			http.SetCookie(w, &http.Cookie{Name: "b", Value: "2"})
			w.Header().Add("Vary", "Origin")
			w.Header().Add("Vary", "Accept-Encoding")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if r.URL.Path == "/rooms/missing" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"room not found"}`))
			return
		}
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Upstream", "designer")
		_ = json.NewEncoder(w).Encode(echoed{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Auth:   r.Header.Get("Authorization"),
			Type:   r.Header.Get("Content-Type"),
			Body:   string(body),
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig() *config.Config {
	return &config.Config{
		Environment:    "test",
		ReadTimeout:    5,
		WriteTimeout:   5,
		AllowedOrigins: []string{"*"},
	}
}

func TestGateway_ForwardsRequests(t *testing.T) {
	upstream := newUpstream(t)
	app := NewApp(testConfig(), proxy.New(upstream.URL, 2*time.Second, zap.NewNop()), zap.NewNop())

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/rooms/current?dry=1", strings.NewReader(`{"name":"Study"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer tok-1")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "designer", resp.Header.Get("X-Upstream"))

	var got echoed
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, echoed{
		Method: http.MethodPatch,
		Path:   "/rooms/current",
		Query:  "dry=1",
		Auth:   "Bearer tok-1",
		Type:   "application/json",
		Body:   `{"name":"Study"}`,
	}, got)
}

func TestGateway_KeepsUpstreamStatus(t *testing.T) {
	upstream := newUpstream(t)
	app := NewApp(testConfig(), proxy.New(upstream.URL, 2*time.Second, zap.NewNop()), zap.NewNop())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/rooms/missing", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"error":"room not found"}`, string(body))
}

func TestGateway_UpstreamDown(t *testing.T) {
	upstream := newUpstream(t)
	url := upstream.URL
	upstream.Close()

	app := NewApp(testConfig(), proxy.New(url, time.Second, zap.NewNop()), zap.NewNop())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/views/dashboard", nil))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/health/live", nil))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGateway_Readiness(t *testing.T) {
	upstream := newUpstream(t)
	app := NewApp(testConfig(), proxy.New(upstream.URL, 2*time.Second, zap.NewNop()), zap.NewNop())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"status":"ready"}`, string(body))
}

func TestGateway_KeepsRepeatedHeaders(t *testing.T) {
	upstream := newUpstream(t)
	app := NewApp(testConfig(), proxy.New(upstream.URL, 2*time.Second, zap.NewNop()), zap.NewNop())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/cookies", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	var names []string
	for _, cookie := range resp.Cookies() {
		names = append(names, cookie.Name)
	}
	assert.ElementsMatch(t, []string{"a", "b"}, names)
	vary := strings.Join(resp.Header.Values("Vary"), ", ")
	assert.Contains(t, vary, "Origin")
	assert.Contains(t, vary, "Accept-Encoding")
}

func TestGateway_Docs(t *testing.T) {
	upstream := newUpstream(t)
	app := NewApp(testConfig(), proxy.New(upstream.URL, 2*time.Second, zap.NewNop()), zap.NewNop())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/docs/openapi.yaml", nil))
	require.NoError(t, err)
	spec, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "yaml")
	for _, path := range []string{"/rooms/current/save", "/furniture/{id}/color", "/pointer/down", "/views/viewer"} {
		assert.Contains(t, string(spec), path+":")
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/docs", nil))
	require.NoError(t, err)
	page, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(page), "'/docs/openapi.yaml'")
}
