package sessions

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/strrl/claude-explorer/internal/claudedir"
)

func TestListSessionsTypeFilter(t *testing.T) {
	path := testHome + "/work/alpha"
	svc, dir := newTestService(t, map[string]map[string]any{path: {}})
	encoded := claudedir.Encode(path)

	base := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	writeSession(t, dir, encoded, "regular-1", 1, base)
	writeSession(t, dir, encoded, "regular-2", 1, base.Add(time.Hour))
	writeSession(t, dir, encoded, "agent-abc", 1, base.Add(2*time.Hour))

	cases := []struct {
		typ  string
		want int
	}{
		{TypeAll, 3},
		{"", 3},
		{TypeRegular, 2},
		{TypeAgent, 1},
	}
	for _, tc := range cases {
		page, err := svc.ListSessions(encoded, SessionListOptions{Type: tc.typ})
		if err != nil {
			t.Fatalf("type %q: %v", tc.typ, err)
		}
		if page.Meta.Total != tc.want {
			t.Errorf("type %q: total = %d, want %d", tc.typ, page.Meta.Total, tc.want)
		}
	}

	page, _ := svc.ListSessions(encoded, SessionListOptions{Type: TypeAgent})
	if !page.Data[0].IsAgent {
		t.Error("agent-filtered session should be marked isAgent")
	}
}

func TestListSessionsOrderAndPagination(t *testing.T) {
	path := testHome + "/work/alpha"
	svc, dir := newTestService(t, map[string]map[string]any{path: {}})
	encoded := claudedir.Encode(path)

	base := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	writeSession(t, dir, encoded, "old", 1, base)
	writeSession(t, dir, encoded, "new", 1, base.Add(time.Hour))

	page, err := svc.ListSessions(encoded, SessionListOptions{Limit: 1})
	if err != nil {
		t.Fatal(err)
	}
	if page.Data[0].ID != "new" {
		t.Errorf("expected most recent first, got %s", page.Data[0].ID)
	}
	if !page.Meta.HasMore {
		t.Error("hasMore should be true with one of two returned")
	}

	page, _ = svc.ListSessions(encoded, SessionListOptions{Limit: 1, Offset: 1})
	if page.Data[0].ID != "old" || page.Meta.HasMore {
		t.Errorf("second page wrong: %+v", page)
	}
}

func TestListSessionsProjectNotFound(t *testing.T) {
	svc, _ := newTestService(t, nil)
	if _, err := svc.ListSessions("-missing", SessionListOptions{}); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetSessionDetail(t *testing.T) {
	path := testHome + "/work/alpha"
	svc, dir := newTestService(t, map[string]map[string]any{path: {}})
	encoded := claudedir.Encode(path)

	projectDir := dir.ProjectDir(encoded)
	if err := os.MkdirAll(projectDir, 0o755); err != nil {
		t.Fatal(err)
	}
	content := `{"type":"user","uuid":"u1","timestamp":"2026-08-20T10:00:00Z","message":{"role":"user","content":"run the tests"}}
{"type":"assistant","uuid":"a1","timestamp":"2026-08-20T10:01:00Z","message":{"role":"assistant","model":"claude-opus-4","content":[{"type":"tool_use","id":"t1","name":"Bash","input":{"command":"go test"}}]}}
{"type":"assistant","uuid":"a2","timestamp":"2026-08-20T10:05:00Z","message":{"role":"assistant","model":"claude-opus-4","content":[{"type":"tool_use","id":"t2","name":"Read","input":{"path":"main.go"}},{"type":"text","text":"done"}]}}
`
	if err := os.WriteFile(filepath.Join(projectDir, "sess-1.jsonl"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	detail, err := svc.GetSession(encoded, "sess-1")
	if err != nil {
		t.Fatal(err)
	}
	if detail.MessageCount != 3 {
		t.Errorf("messageCount = %d, want 3", detail.MessageCount)
	}
	if detail.Metadata.Model != "claude-opus-4" {
		t.Errorf("model = %q", detail.Metadata.Model)
	}
	wantTools := []string{"Bash", "Read"}
	if len(detail.Metadata.ToolsUsed) != len(wantTools) {
		t.Fatalf("toolsUsed = %v", detail.Metadata.ToolsUsed)
	}
	for i, tool := range wantTools {
		if detail.Metadata.ToolsUsed[i] != tool {
			t.Errorf("toolsUsed[%d] = %q, want %q", i, detail.Metadata.ToolsUsed[i], tool)
		}
	}
	if detail.DurationMS == nil || *detail.DurationMS != (5*time.Minute).Milliseconds() {
		t.Errorf("duration = %v", detail.DurationMS)
	}
	if detail.CorrelatedData.Todos == nil {
		t.Error("correlated todos should be empty slice, not nil")
	}
}

func TestGetSessionNotFound(t *testing.T) {
	path := testHome + "/work/alpha"
	svc, dir := newTestService(t, map[string]map[string]any{path: {}})
	encoded := claudedir.Encode(path)
	writeSession(t, dir, encoded, "exists", 1, time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC))

	if _, err := svc.GetSession(encoded, "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLookupsRejectPathTraversal(t *testing.T) {
	path := testHome + "/work/alpha"
	svc, dir := newTestService(t, map[string]map[string]any{path: {}})
	encoded := claudedir.Encode(path)
	writeSession(t, dir, encoded, "sess-1", 1, time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC))

	// A transcript outside the data tree that a relative project id
	// would otherwise reach.
	outside := filepath.Join(filepath.Dir(dir.Root()), "secrets")
	if err := os.MkdirAll(outside, 0o755); err != nil {
		t.Fatal(err)
	}
	line := `{"type":"user","uuid":"u1","timestamp":"2026-08-20T10:00:00Z","message":{"role":"user","content":"the secret prompt"}}` + "\n"
	if err := os.WriteFile(filepath.Join(outside, "private.jsonl"), []byte(line), 0o644); err != nil {
		t.Fatal(err)
	}
	hostileProject := "../../secrets"

	if _, err := svc.ListMessages(hostileProject, "private", MessageListOptions{}); err != ErrNotFound {
		t.Errorf("ListMessages: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.GetSession(hostileProject, "private"); err != ErrNotFound {
		t.Errorf("GetSession: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.GetMessage(hostileProject, "private", "u1"); err != ErrNotFound {
		t.Errorf("GetMessage: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.ListSessions(hostileProject, SessionListOptions{}); err != ErrNotFound {
		t.Errorf("ListSessions: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.GetProject(hostileProject); err != ErrNotFound {
		t.Errorf("GetProject: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Activity(hostileProject, ActivityOptions{}); err != ErrNotFound {
		t.Errorf("Activity: expected ErrNotFound, got %v", err)
	}

	// A valid project with a hostile session id must not escape either.
	if _, err := svc.GetSession(encoded, "../../../secrets/private"); err != ErrNotFound {
		t.Errorf("GetSession hostile id: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.ListMessages(encoded, "../../../secrets/private", MessageListOptions{}); err != ErrNotFound {
		t.Errorf("ListMessages hostile id: expected ErrNotFound, got %v", err)
	}
}

func TestListMessagesTypeFilterAndLookup(t *testing.T) {
	path := testHome + "/work/alpha"
	svc, dir := newTestService(t, map[string]map[string]any{path: {}})
	encoded := claudedir.Encode(path)
	writeSession(t, dir, encoded, "sess-1", 3, time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC))

	page, err := svc.ListMessages(encoded, "sess-1", MessageListOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if page.Meta.Total != 6 {
		t.Fatalf("total = %d, want 6", page.Meta.Total)
	}
	// File order, oldest first.
	if page.Data[0].UUID != "u0" {
		t.Errorf("first message = %s", page.Data[0].UUID)
	}

	page, _ = svc.ListMessages(encoded, "sess-1", MessageListOptions{Type: RoleUser})
	if page.Meta.Total != 3 {
		t.Errorf("user filter total = %d, want 3", page.Meta.Total)
	}
	for _, msg := range page.Data {
		if msg.Type != "user" {
			t.Errorf("user filter leaked %s message", msg.Type)
		}
	}

	msg, err := svc.GetMessage(encoded, "sess-1", "a1")
	if err != nil {
		t.Fatal(err)
	}
	if msg.Type != "assistant" || msg.Model != "claude-opus-4" {
		t.Errorf("message lookup wrong: %+v", msg)
	}

	if _, err := svc.GetMessage(encoded, "sess-1", "nope"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for unknown uuid, got %v", err)
	}
}
