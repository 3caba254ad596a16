package transcript

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/strrl/claude-explorer/pkg/models"
)

func line(fields map[string]any) string {
	data, _ := json.Marshal(fields)
	return string(data)
}

func TestParseLinesTolerance(t *testing.T) {
	content := strings.Join([]string{
		line(map[string]any{"type": "user", "uuid": "u1", "timestamp": "2026-08-01T10:00:00Z"}),
		"{this is not json",
		"",
		line(map[string]any{"type": "assistant", "uuid": "u2", "timestamp": "2026-08-01T10:01:00Z"}),
		`"just a string"`,
	}, "\n")

	// Only the two object lines survive: the corrupt line and the bare
	// JSON string are both dropped.
	entries := ParseLines([]byte(content))
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2: %+v", len(entries), entries)
	}
	if entries[0].Type != "user" || entries[1].Type != "assistant" {
		t.Errorf("expected [user assistant], got [%s %s]", entries[0].Type, entries[1].Type)
	}
}

func TestSummarizeCountsAndBounds(t *testing.T) {
	content := strings.Join([]string{
		line(map[string]any{"type": SnapshotType, "timestamp": "2026-08-01T09:59:00Z"}),
		line(map[string]any{"type": "user", "uuid": "u1", "timestamp": "2026-08-01T10:00:00Z"}),
		line(map[string]any{"type": SnapshotType, "timestamp": "2026-08-01T10:00:30Z"}),
		line(map[string]any{"type": "assistant", "uuid": "u2", "timestamp": "2026-08-01T10:01:00Z",
			"message": map[string]any{"role": "assistant", "model": "claude-opus-4"}}),
		line(map[string]any{"type": "user", "uuid": "u3", "timestamp": "2026-08-01T10:02:00Z"}),
	}, "\n")

	s := Summarize(ParseLines([]byte(content)))

	if s.MessageCount != 3 {
		t.Errorf("MessageCount = %d, want 3 (snapshots excluded)", s.MessageCount)
	}
	if len(s.Messages) != 3 {
		t.Errorf("len(Messages) = %d, want 3", len(s.Messages))
	}
	wantStart := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2026, 8, 1, 10, 2, 0, 0, time.UTC)
	if s.StartTime == nil || !s.StartTime.Equal(wantStart) {
		t.Errorf("StartTime = %v, want %v", s.StartTime, wantStart)
	}
	if s.EndTime == nil || !s.EndTime.Equal(wantEnd) {
		t.Errorf("EndTime = %v, want %v", s.EndTime, wantEnd)
	}
	if s.Model != "claude-opus-4" {
		t.Errorf("Model = %q", s.Model)
	}
}

func TestSummarizeInvalidLinesDoNotAffectBounds(t *testing.T) {
	content := strings.Join([]string{
		"not json at all",
		line(map[string]any{"type": "user", "uuid": "u1"}), // no timestamp
		line(map[string]any{"type": "user", "uuid": "u2", "timestamp": "2026-08-02T12:00:00Z"}),
		line(map[string]any{"type": "user", "uuid": "u3", "timestamp": "garbage"}),
	}, "\n")

	s := Summarize(ParseLines([]byte(content)))

	// Timestampless records count but never enter the message sequence
	// or the bounds.
	if s.MessageCount != 3 {
		t.Errorf("MessageCount = %d, want 3", s.MessageCount)
	}
	if len(s.Messages) != 1 || s.Messages[0].UUID != "u2" {
		t.Errorf("Messages = %+v, want only u2", s.Messages)
	}
	want := time.Date(2026, 8, 2, 12, 0, 0, 0, time.UTC)
	if s.StartTime == nil || !s.StartTime.Equal(want) || !s.EndTime.Equal(want) {
		t.Errorf("bounds = (%v, %v), want both %v", s.StartTime, s.EndTime, want)
	}
}

func TestReadFileMissingDegrades(t *testing.T) {
	before := time.Now()
	s := ReadFile(filepath.Join(t.TempDir(), "missing.jsonl"))
	if s.MessageCount != 0 || len(s.Messages) != 0 {
		t.Errorf("missing file must yield empty summary, got %+v", s)
	}
	if s.StartTime == nil || s.StartTime.Before(before.Add(-time.Minute)) {
		t.Errorf("missing file must yield synthetic start of now, got %v", s.StartTime)
	}
}

func TestReadFileOrder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "s.jsonl")
	content := strings.Join([]string{
		line(map[string]any{"type": "user", "uuid": "a", "timestamp": "2026-08-01T10:00:00Z"}),
		line(map[string]any{"type": "assistant", "uuid": "b", "timestamp": "2026-08-01T10:01:00Z"}),
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s := ReadFile(path)
	if len(s.Messages) != 2 || s.Messages[0].UUID != "a" || s.Messages[1].UUID != "b" {
		t.Errorf("file order not preserved: %+v", s.Messages)
	}
}

func TestParseTimestampFormats(t *testing.T) {
	cases := []struct {
		raw  string
		ok   bool
		want time.Time
	}{
		{`"2026-08-01T10:00:00Z"`, true, time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)},
		{`1754042400`, true, time.Unix(1754042400, 0).UTC()},
		{`1754042400000`, true, time.Unix(1754042400, 0).UTC()},
		{`"1754042400"`, true, time.Unix(1754042400, 0).UTC()},
		{`"yesterday"`, false, time.Time{}},
		{`null`, false, time.Time{}},
		{``, false, time.Time{}},
	}
	for _, c := range cases {
		got, ok := ParseTimestamp(json.RawMessage(c.raw))
		if ok != c.ok {
			t.Errorf("ParseTimestamp(%s) ok = %v, want %v", c.raw, ok, c.ok)
			continue
		}
		if ok && !got.Equal(c.want) {
			t.Errorf("ParseTimestamp(%s) = %v, want %v", c.raw, got, c.want)
		}
	}
}

func TestDecodeContentPlainString(t *testing.T) {
	text, blocks := DecodeContent(json.RawMessage(`"hello there"`))
	if text != "hello there" || blocks != nil {
		t.Errorf("got (%q, %v)", text, blocks)
	}
}

func TestDecodeContentBlocks(t *testing.T) {
	raw := json.RawMessage(`[
		{"type":"text","text":"hi"},
		{"type":"thinking","thinking":"hmm"},
		{"type":"tool_use","name":"Bash","input":{"command":"ls"}},
		{"type":"tool_result","tool_use_id":"t1","content":"done"},
		{"type":"server_tool_use","something":"else"}
	]`)
	_, blocks := DecodeContent(raw)
	if len(blocks) != 5 {
		t.Fatalf("len(blocks) = %d", len(blocks))
	}
	if blocks[0].Type != models.BlockText || blocks[0].Text != "hi" {
		t.Errorf("text block: %+v", blocks[0])
	}
	if blocks[1].Type != models.BlockThinking || blocks[1].Thinking != "hmm" {
		t.Errorf("thinking block: %+v", blocks[1])
	}
	if blocks[2].Type != models.BlockToolUse || blocks[2].ToolName != "Bash" || !strings.Contains(blocks[2].ToolInput, "ls") {
		t.Errorf("tool_use block: %+v", blocks[2])
	}
	if blocks[3].Type != models.BlockToolResult || blocks[3].ResultContent != "done" {
		t.Errorf("tool_result block: %+v", blocks[3])
	}
	if blocks[4].Type != models.BlockUnknown || blocks[4].RawType != "server_tool_use" {
		t.Errorf("unknown block must fail closed: %+v", blocks[4])
	}
}

func TestDecodeContentNestedToolResult(t *testing.T) {
	raw := json.RawMessage(`[{"type":"tool_result","tool_use_id":"t1","content":[{"type":"text","text":"line1"},{"type":"text","text":"line2"}]}]`)
	_, blocks := DecodeContent(raw)
	if len(blocks) != 1 || blocks[0].ResultContent != "line1\nline2" {
		t.Errorf("nested result: %+v", blocks)
	}
}
