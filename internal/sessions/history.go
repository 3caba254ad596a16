package sessions

import (
	"bufio"
	"encoding/json"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/strrl/claude-explorer/internal/claudedir"
	"github.com/strrl/claude-explorer/pkg/models"
)

// HistoryOptions filter the prompt history. All filters compose before
// pagination; dates are inclusive YYYY-MM-DD bounds against the entry's
// millisecond timestamp.
type HistoryOptions struct {
	Project   string
	Search    string
	StartDate string
	EndDate   string
	Limit     int
	Offset    int
}

// historyLine is the wire shape of one history.jsonl record.
type historyLine struct {
	Display        string `json:"display"`
	Timestamp      int64  `json:"timestamp"`
	Project        string `json:"project"`
	PastedContents any    `json:"pastedContents"`
}

// History pages through the cross-project prompt log, most recent
// first. A missing log lists as empty.
func (s *Service) History(opts HistoryOptions) models.Paginated[models.HistoryEntry] {
	file, err := os.Open(s.dir.HistoryFile())
	if err != nil {
		return Paginate([]models.HistoryEntry{}, opts.Limit, opts.Offset)
	}
	defer file.Close()

	var startMS, endMS int64
	if t, err := time.ParseInLocation("2006-01-02", opts.StartDate, time.UTC); err == nil {
		startMS = t.UnixMilli()
	}
	if t, err := time.ParseInLocation("2006-01-02", opts.EndDate, time.UTC); err == nil {
		endMS = t.Add(24*time.Hour - time.Millisecond).UnixMilli()
	}
	search := strings.ToLower(opts.Search)

	var entries []models.HistoryEntry
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var line historyLine
		if err := json.Unmarshal(scanner.Bytes(), &line); err != nil {
			continue
		}
		if opts.Project != "" && !strings.Contains(line.Project, opts.Project) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(line.Display), search) {
			continue
		}
		if startMS > 0 && line.Timestamp < startMS {
			continue
		}
		if endMS > 0 && line.Timestamp > endMS {
			continue
		}
		entry := models.HistoryEntry{
			Display:        line.Display,
			Timestamp:      line.Timestamp,
			ProjectPath:    line.Project,
			PastedContents: line.PastedContents,
		}
		if line.Project != "" {
			entry.ProjectID = claudedir.Encode(line.Project)
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Timestamp > entries[j].Timestamp })
	return Paginate(entries, opts.Limit, opts.Offset)
}
