package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/strrl/claude-explorer/internal/claudedir"
	"github.com/strrl/claude-explorer/internal/config"
	"github.com/strrl/claude-explorer/internal/sessions"
)

const testHome = "/home/tester"

// newTestAPI builds the full route tree over a fixture data directory.
func newTestAPI(t *testing.T) (http.Handler, claudedir.Dir) {
	t.Helper()
	root := t.TempDir()
	dir := claudedir.New(filepath.Join(root, ".claude"))
	if err := os.MkdirAll(dir.Projects(), 0o755); err != nil {
		t.Fatal(err)
	}

	realPath := testHome + "/work/alpha"
	cfg := fmt.Sprintf(`{
		"oauthAccount": {"email": "user@example.com"},
		"projects": {%q: {"lastSessionId": "sess-1", "lastCost": 0.5}}
	}`, realPath)
	if err := os.WriteFile(dir.ConfigFile(), []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	encoded := claudedir.Encode(realPath)
	projectDir := dir.ProjectDir(encoded)
	if err := os.MkdirAll(projectDir, 0o755); err != nil {
		t.Fatal(err)
	}
	transcript := `{"type":"user","uuid":"u1","timestamp":"2026-08-20T10:00:00Z","message":{"role":"user","content":"hello"}}
{"type":"assistant","uuid":"a1","timestamp":"2026-08-20T10:01:00Z","message":{"role":"assistant","model":"claude-opus-4","content":[{"type":"text","text":"hi"}]}}
`
	path := filepath.Join(projectDir, "sess-1.jsonl")
	if err := os.WriteFile(path, []byte(transcript), 0o644); err != nil {
		t.Fatal(err)
	}
	mtime := time.Date(2026, 8, 20, 10, 1, 0, 0, time.UTC)
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}

	svc := sessions.New(dir, config.NewLoader(dir.ConfigFile()), testHome)
	return NewHandler(svc), dir
}

// get performs a request and decodes the JSON body into out.
func get(t *testing.T, handler http.Handler, url string, wantStatus int, out any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != wantStatus {
		t.Fatalf("GET %s: status = %d, want %d, body: %s", url, rec.Code, wantStatus, rec.Body.String())
	}
	if out != nil {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("GET %s: decode: %v", url, err)
		}
	}
}

func TestListProjectsEndpoint(t *testing.T) {
	handler, _ := newTestAPI(t)

	var body struct {
		Data []map[string]any `json:"data"`
		Meta map[string]any   `json:"meta"`
	}
	get(t, handler, "/api/v1/projects", http.StatusOK, &body)

	if len(body.Data) != 1 {
		t.Fatalf("projects = %d, want 1", len(body.Data))
	}
	project := body.Data[0]
	if project["path"] != testHome+"/work/alpha" {
		t.Errorf("path = %v", project["path"])
	}
	if project["isOrphan"] != false {
		t.Errorf("isOrphan = %v", project["isOrphan"])
	}
	if body.Meta["total"].(float64) != 1 {
		t.Errorf("meta.total = %v", body.Meta["total"])
	}
}

func TestSessionAndMessagesEndpoints(t *testing.T) {
	handler, _ := newTestAPI(t)
	encoded := claudedir.Encode(testHome + "/work/alpha")

	var detail struct {
		ID       string `json:"id"`
		Duration *int64 `json:"duration"`
		Metadata struct {
			Model string `json:"model"`
		} `json:"metadata"`
	}
	get(t, handler, "/api/v1/projects/"+encoded+"/sessions/sess-1", http.StatusOK, &detail)
	if detail.ID != "sess-1" || detail.Metadata.Model != "claude-opus-4" {
		t.Errorf("session detail wrong: %+v", detail)
	}
	if detail.Duration == nil || *detail.Duration != 60000 {
		t.Errorf("duration = %v, want 60000", detail.Duration)
	}

	var page struct {
		Data []map[string]any `json:"data"`
	}
	get(t, handler, "/api/v1/projects/"+encoded+"/sessions/sess-1/messages?type=assistant", http.StatusOK, &page)
	if len(page.Data) != 1 {
		t.Fatalf("assistant messages = %d, want 1", len(page.Data))
	}

	var msg map[string]any
	get(t, handler, "/api/v1/projects/"+encoded+"/sessions/sess-1/messages/u1", http.StatusOK, &msg)
	if msg["type"] != "user" {
		t.Errorf("message lookup wrong: %v", msg)
	}
}

func TestNotFoundEnvelope(t *testing.T) {
	handler, _ := newTestAPI(t)

	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	get(t, handler, "/api/v1/projects/-missing-project", http.StatusNotFound, &body)
	if body.Error.Code != "not_found" {
		t.Errorf("error code = %q, want not_found", body.Error.Code)
	}
	if body.Error.Message == "" {
		t.Error("error message should not be empty")
	}
}

func TestGlobalActivityValidation(t *testing.T) {
	handler, _ := newTestAPI(t)

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	get(t, handler, "/api/v1/activity", http.StatusBadRequest, &body)
	if body.Error.Code != "invalid_request" {
		t.Errorf("error code = %q, want invalid_request", body.Error.Code)
	}

	var report struct {
		Data    []map[string]any `json:"data"`
		Summary map[string]any   `json:"summary"`
	}
	get(t, handler, "/api/v1/activity?startDate=2026-08-19&endDate=2026-08-21", http.StatusOK, &report)
	if len(report.Data) != 1 {
		t.Fatalf("activity days = %d, want 1", len(report.Data))
	}
}

func TestConfigRedaction(t *testing.T) {
	handler, _ := newTestAPI(t)

	var cfg map[string]any
	get(t, handler, "/api/v1/config", http.StatusOK, &cfg)
	if cfg["oauthAccount"] != "[REDACTED]" {
		t.Errorf("oauthAccount should be redacted, got %v", cfg["oauthAccount"])
	}
	if _, ok := cfg["projects"]; !ok {
		t.Error("non-sensitive fields should survive redaction")
	}
}

func TestCorrelatedEndpointsDegrade(t *testing.T) {
	handler, _ := newTestAPI(t)

	// No sibling stores exist at all; every probe degrades to empty.
	var data struct {
		Todos        []any `json:"todos"`
		FilesChanged []any `json:"filesChanged"`
		DebugLogs    []any `json:"debugLogs"`
	}
	get(t, handler, "/api/v1/sessions/sess-1/correlated", http.StatusOK, &data)
	if data.Todos == nil || data.FilesChanged == nil || data.DebugLogs == nil {
		t.Errorf("probes should degrade to empty slices: %+v", data)
	}
}

func TestEncodedSlashLookupsRejected(t *testing.T) {
	handler, dir := newTestAPI(t)

	// A transcript outside the data tree that an id with encoded
	// slashes would otherwise reach through the path wildcards.
	outside := filepath.Join(filepath.Dir(dir.Root()), "secrets")
	if err := os.MkdirAll(outside, 0o755); err != nil {
		t.Fatal(err)
	}
	line := `{"type":"user","uuid":"u1","timestamp":"2026-08-20T10:00:00Z","message":{"role":"user","content":"the secret prompt"}}` + "\n"
	if err := os.WriteFile(filepath.Join(outside, "private.jsonl"), []byte(line), 0o644); err != nil {
		t.Fatal(err)
	}

	get(t, handler, "/api/v1/projects/..%2F..%2Fsecrets", http.StatusNotFound, nil)
	get(t, handler, "/api/v1/projects/..%2F..%2Fsecrets/sessions", http.StatusNotFound, nil)
	get(t, handler, "/api/v1/projects/..%2F..%2Fsecrets/sessions/private", http.StatusNotFound, nil)
	get(t, handler, "/api/v1/projects/..%2F..%2Fsecrets/sessions/private/messages", http.StatusNotFound, nil)
	get(t, handler, "/api/v1/projects/..%2F..%2Fsecrets/activity", http.StatusNotFound, nil)
}

func TestFilesEndpointGuards(t *testing.T) {
	handler, _ := newTestAPI(t)

	get(t, handler, "/api/v1/files?path=..%2F.claude.json", http.StatusBadRequest, nil)
	get(t, handler, "/api/v1/files?path=projects", http.StatusOK, nil)
	get(t, handler, "/api/v1/files?path=missing-thing", http.StatusNotFound, nil)
}

func TestHealthAndRequestID(t *testing.T) {
	handler, _ := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("health status = %d", rec.Code)
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Error("request id header missing")
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("CORS header missing")
	}
}

func TestStatsEndpointUsesCache(t *testing.T) {
	handler, dir := newTestAPI(t)

	cached := `{"version":9,"totalSessions":123}`
	if err := os.WriteFile(dir.StatsCacheFile(), []byte(cached), 0o644); err != nil {
		t.Fatal(err)
	}

	var stats map[string]any
	get(t, handler, "/api/v1/stats", http.StatusOK, &stats)
	if stats["totalSessions"].(float64) != 123 {
		t.Errorf("cached stats not served verbatim: %v", stats)
	}
}

func TestPluginsEndpoints(t *testing.T) {
	handler, dir := newTestAPI(t)
	registry := dir.PluginRegistryFile()
	if err := os.MkdirAll(filepath.Dir(registry), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(registry, []byte(`[{"name":"bare@market","version":"0.1.0"}]`), 0o644); err != nil {
		t.Fatal(err)
	}

	var list struct {
		Data []map[string]any `json:"data"`
	}
	get(t, handler, "/api/v1/plugins", http.StatusOK, &list)
	if len(list.Data) != 1 || list.Data[0]["name"] != "bare@market" {
		t.Errorf("plugins = %v", list.Data)
	}

	var plugin map[string]any
	get(t, handler, "/api/v1/plugins/bare@market", http.StatusOK, &plugin)
	if plugin["version"] != "0.1.0" {
		t.Errorf("plugin = %v", plugin)
	}

	get(t, handler, "/api/v1/plugins/absent@market", http.StatusNotFound, nil)
}

func TestSessionEnvironmentEndpoint(t *testing.T) {
	handler, dir := newTestAPI(t)
	envDir := filepath.Join(dir.SessionEnv(), "sess-1")
	if err := os.MkdirAll(envDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(envDir, "captured.env"), []byte("TERM=xterm\nLANG=C\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var body struct {
		Data map[string]string `json:"data"`
	}
	get(t, handler, "/api/v1/sessions/sess-1/environment", http.StatusOK, &body)
	if body.Data["TERM"] != "xterm" || body.Data["LANG"] != "C" {
		t.Errorf("environment = %v", body.Data)
	}

	var empty struct {
		Data map[string]string `json:"data"`
	}
	get(t, handler, "/api/v1/sessions/unknown/environment", http.StatusOK, &empty)
	if len(empty.Data) != 0 {
		t.Errorf("unknown session environment = %v", empty.Data)
	}
}

func TestPlansEndpoints(t *testing.T) {
	handler, dir := newTestAPI(t)
	if err := os.MkdirAll(dir.Plans(), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir.Plans(), "quiet-mapping-otter.md"), []byte("# plan"), 0o644); err != nil {
		t.Fatal(err)
	}

	var list struct {
		Data []string `json:"data"`
	}
	get(t, handler, "/api/v1/plans", http.StatusOK, &list)
	if len(list.Data) != 1 || list.Data[0] != "quiet-mapping-otter.md" {
		t.Errorf("plans = %v", list.Data)
	}

	var plan struct {
		Name    string `json:"name"`
		Content string `json:"content"`
	}
	get(t, handler, "/api/v1/plans/quiet-mapping-otter.md", http.StatusOK, &plan)
	if plan.Content != "# plan" {
		t.Errorf("plan content = %q", plan.Content)
	}

	get(t, handler, "/api/v1/plans/absent.md", http.StatusNotFound, nil)
}
