package sessions

import (
	"os"
	"testing"
)

func writeHistory(t *testing.T, path string) {
	t.Helper()
	content := `{"display":"fix the login bug","timestamp":1755600000000,"project":"/home/tester/work/alpha"}
{"display":"add dark mode","timestamp":1755700000000,"project":"/home/tester/work/beta"}
{"display":"refactor login flow","timestamp":1755800000000,"project":"/home/tester/work/alpha","pastedContents":{"1":{"content":"snippet"}}}
not json
{"display":"write release notes","timestamp":1755900000000,"project":"/srv/other"}
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestHistorySortAndPagination(t *testing.T) {
	svc, dir := newTestService(t, nil)
	writeHistory(t, dir.HistoryFile())

	page := svc.History(HistoryOptions{})
	if page.Meta.Total != 4 {
		t.Fatalf("total = %d, want 4 (corrupt line dropped)", page.Meta.Total)
	}
	if page.Data[0].Display != "write release notes" {
		t.Errorf("expected most recent first, got %q", page.Data[0].Display)
	}

	page = svc.History(HistoryOptions{Limit: 2, Offset: 2})
	if len(page.Data) != 2 || page.Data[0].Display != "add dark mode" {
		t.Errorf("second page wrong: %+v", page.Data)
	}
	if page.Meta.HasMore {
		t.Error("hasMore should be false on the last page")
	}
}

func TestHistoryFiltersCompose(t *testing.T) {
	svc, dir := newTestService(t, nil)
	writeHistory(t, dir.HistoryFile())

	page := svc.History(HistoryOptions{Project: "work/alpha"})
	if page.Meta.Total != 2 {
		t.Errorf("project filter total = %d, want 2", page.Meta.Total)
	}

	page = svc.History(HistoryOptions{Search: "LOGIN"})
	if page.Meta.Total != 2 {
		t.Errorf("case-insensitive search total = %d, want 2", page.Meta.Total)
	}

	page = svc.History(HistoryOptions{Project: "work/alpha", Search: "refactor"})
	if page.Meta.Total != 1 {
		t.Errorf("composed filters total = %d, want 1", page.Meta.Total)
	}
	if page.Data[0].ProjectID == "" {
		t.Error("projectId should be derived from the project path")
	}
	if page.Data[0].PastedContents == nil {
		t.Error("pastedContents should pass through")
	}
}

func TestHistoryDateRange(t *testing.T) {
	svc, dir := newTestService(t, nil)
	writeHistory(t, dir.HistoryFile())

	// 1755700000000 ms is 2025-08-20; earlier prompts are excluded.
	page := svc.History(HistoryOptions{StartDate: "2025-08-20"})
	if page.Meta.Total != 3 {
		t.Errorf("startDate filter total = %d, want 3", page.Meta.Total)
	}

	page = svc.History(HistoryOptions{StartDate: "2025-08-20", EndDate: "2025-08-21"})
	if page.Meta.Total != 2 {
		t.Errorf("date range total = %d, want 2", page.Meta.Total)
	}
}

func TestHistoryMissingFile(t *testing.T) {
	svc, _ := newTestService(t, nil)
	page := svc.History(HistoryOptions{})
	if page.Meta.Total != 0 || page.Data == nil {
		t.Errorf("missing history should list empty: %+v", page)
	}
}
