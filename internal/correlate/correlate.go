// Package correlate gathers the per-session artifacts scattered across
// the sibling stores (todos, file-history, debug logs, plans), matched
// by the session UUID embedded in file and directory names.
package correlate

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/strrl/claude-explorer/internal/claudedir"
	"github.com/strrl/claude-explorer/pkg/models"
)

const (
	// maxDebugLogs bounds how many log files one session may surface.
	maxDebugLogs = 5
	// maxDebugLogBytes truncates each log snippet.
	maxDebugLogBytes = 5000
)

// Correlator probes the stores under one data directory.
type Correlator struct {
	dir claudedir.Dir
}

// New returns a correlator over the given data directory.
func New(dir claudedir.Dir) *Correlator {
	return &Correlator{dir: dir}
}

// Collect runs the four store probes concurrently and assembles the
// merged record. Probes are independent: each degrades to an empty
// result on I/O failure without affecting the others, and assembly
// blocks until all four resolve.
func (c *Correlator) Collect(sessionID string) models.CorrelatedData {
	var data models.CorrelatedData

	var wg sync.WaitGroup
	wg.Add(4)
	go func() {
		defer wg.Done()
		data.Todos = c.Todos(sessionID)
	}()
	go func() {
		defer wg.Done()
		data.FilesChanged = c.FilesChanged(sessionID)
	}()
	go func() {
		defer wg.Done()
		data.DebugLogs = c.DebugLogs(sessionID)
	}()
	go func() {
		defer wg.Done()
		data.LinkedPlan = c.LinkedPlan(sessionID)
	}()
	wg.Wait()

	data.LinkedSkill = c.LinkedSkill(sessionID)
	return data
}

// todoDocument is one todos store file: either a wrapper holding a
// todos array or a single bare item.
type todoDocument struct {
	Todos   []models.TodoItem `json:"todos"`
	Content string            `json:"content"`
	Status  string            `json:"status"`
}

// Todos flattens every todo document whose name is prefixed by the
// session id. A matching entry may be a single JSON file or a directory
// of them; results concatenate in directory-listing order.
func (c *Correlator) Todos(sessionID string) []models.TodoItem {
	todos := []models.TodoItem{}

	entries, err := os.ReadDir(c.dir.Todos())
	if err != nil {
		return todos
	}
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), sessionID) {
			continue
		}
		full := filepath.Join(c.dir.Todos(), entry.Name())
		if entry.IsDir() {
			subEntries, err := os.ReadDir(full)
			if err != nil {
				continue
			}
			for _, sub := range subEntries {
				if filepath.Ext(sub.Name()) == ".json" {
					todos = append(todos, readTodoFile(filepath.Join(full, sub.Name()))...)
				}
			}
		} else if filepath.Ext(entry.Name()) == ".json" {
			todos = append(todos, readTodoFile(full)...)
		}
	}
	return todos
}

// readTodoFile parses one todo document; malformed files contribute
// nothing.
func readTodoFile(path string) []models.TodoItem {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var doc todoDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil
	}
	if len(doc.Todos) > 0 {
		return doc.Todos
	}
	if doc.Content != "" && doc.Status != "" {
		return []models.TodoItem{{Content: doc.Content, Status: doc.Status}}
	}
	return nil
}

// backupNamePattern matches backup artifacts named {contentHash}@v{version}.
var backupNamePattern = regexp.MustCompile(`^(.+)@v(\d+)$`)

// FilesChanged groups the session's backup artifacts by content hash;
// each group is one tracked file's backup chain, versions ascending.
// The backup name encodes only a hash, so the real file path is not
// recoverable here and is reported as an opaque placeholder.
func (c *Correlator) FilesChanged(sessionID string) []models.FileChange {
	changes := []models.FileChange{}
	if !claudedir.ValidName(sessionID) {
		return changes
	}

	entries, err := os.ReadDir(filepath.Join(c.dir.FileHistory(), sessionID))
	if err != nil {
		return changes
	}

	groups := map[string][]models.FileBackup{}
	for _, entry := range entries {
		m := backupNamePattern.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		version, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		groups[m[1]] = append(groups[m[1]], models.FileBackup{
			BackupFileName: entry.Name(),
			Version:        version,
		})
	}

	hashes := make([]string, 0, len(groups))
	for hash := range groups {
		hashes = append(hashes, hash)
	}
	sort.Strings(hashes)

	for _, hash := range hashes {
		backups := groups[hash]
		sort.Slice(backups, func(i, j int) bool { return backups[i].Version < backups[j].Version })
		changes = append(changes, models.FileChange{
			Hash:     hash,
			FilePath: fmt.Sprintf("(unknown - %s)", hash),
			Backups:  backups,
		})
	}
	return changes
}

// DebugLogs returns up to five log snippets whose filename contains the
// full session id or starts with its first eight characters. Some log
// files are named with truncated ids, hence the short-prefix fallback.
func (c *Correlator) DebugLogs(sessionID string) []string {
	logs := []string{}

	entries, err := os.ReadDir(c.dir.Debug())
	if err != nil {
		return logs
	}
	shortID := sessionID
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.Contains(name, sessionID) && !strings.HasPrefix(name, shortID) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(c.dir.Debug(), name))
		if err != nil {
			continue
		}
		if len(data) > maxDebugLogBytes {
			data = data[:maxDebugLogBytes]
		}
		logs = append(logs, string(data))
		if len(logs) >= maxDebugLogs {
			break
		}
	}
	return logs
}

// LinkedPlan returns the name of the first plan document whose raw text
// contains the session id, in directory order. A textual mention is a
// heuristic link, not a structural one.
func (c *Correlator) LinkedPlan(sessionID string) string {
	entries, err := os.ReadDir(c.dir.Plans())
	if err != nil {
		return ""
	}
	for _, entry := range entries {
		if filepath.Ext(entry.Name()) != ".md" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(c.dir.Plans(), entry.Name()))
		if err != nil {
			continue
		}
		if strings.Contains(string(data), sessionID) {
			return entry.Name()
		}
	}
	return ""
}

// Environment merges the KEY=value files captured under the session's
// environment directory. Later files win on duplicate keys; unreadable
// files contribute nothing.
func (c *Correlator) Environment(sessionID string) map[string]string {
	env := map[string]string{}
	if !claudedir.ValidName(sessionID) {
		return env
	}

	dir := filepath.Join(c.dir.SessionEnv(), sessionID)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return env
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		for _, line := range strings.Split(string(data), "\n") {
			key, value, ok := strings.Cut(line, "=")
			if !ok {
				continue
			}
			env[key] = value
		}
	}
	return env
}

// LinkedSkill is reserved. Detecting skill usage needs transcript
// content analysis that is not specified yet, so this always reports
// absent rather than guessing from filenames.
func (c *Correlator) LinkedSkill(string) string {
	return ""
}

// BackupContent reads one backup artifact from the session's file
// history. The name comes from a URL, so it is traversal-guarded.
func (c *Correlator) BackupContent(sessionID, backupFileName string) (models.FileBackupContent, error) {
	if !claudedir.ValidName(sessionID) || !claudedir.ValidName(backupFileName) {
		return models.FileBackupContent{}, ErrInvalidName
	}
	base := c.dir.FileHistory()
	path := filepath.Join(base, sessionID, backupFileName)
	if !claudedir.Within(base, path) {
		return models.FileBackupContent{}, ErrInvalidName
	}
	info, err := os.Stat(path)
	if err != nil {
		return models.FileBackupContent{}, ErrNotFound
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return models.FileBackupContent{}, err
	}
	return models.FileBackupContent{
		BackupFileName: backupFileName,
		Content:        string(data),
		Size:           info.Size(),
	}, nil
}
