// Package sessions composes the path codec, the transcript reader, and
// the correlator into project and session listings. Everything here is
// request-scoped: each call re-reads the filesystem, nothing is cached.
package sessions

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/strrl/claude-explorer/internal/claudedir"
	"github.com/strrl/claude-explorer/internal/config"
	"github.com/strrl/claude-explorer/internal/correlate"
	"github.com/strrl/claude-explorer/internal/transcript"
	"github.com/strrl/claude-explorer/pkg/models"
)

// ErrNotFound marks a missing project, session, or document.
var ErrNotFound = errors.New("not found")

// boundsWorkers caps the per-file summarization fan-out within one
// request.
const boundsWorkers = 8

// Service answers listing and detail queries over one data directory.
// The config loader is injected so fixtures can stand in for
// ~/.claude.json.
type Service struct {
	dir  claudedir.Dir
	cfg  *config.Loader
	home string

	correlator *correlate.Correlator
}

// New builds a service over a data directory. home is used for display
// paths and "~" expansion.
func New(dir claudedir.Dir, cfg *config.Loader, home string) *Service {
	return &Service{
		dir:        dir,
		cfg:        cfg,
		home:       home,
		correlator: correlate.New(dir),
	}
}

// Correlator exposes the service's correlator for the per-store
// endpoints.
func (s *Service) Correlator() *correlate.Correlator {
	return s.correlator
}

// Dir exposes the data directory root for the file-browse endpoint.
func (s *Service) Dir() claudedir.Dir {
	return s.dir
}

// RawConfig returns the full config document object. Callers redact
// before exposing it.
func (s *Service) RawConfig() map[string]any {
	return s.cfg.Load().Raw
}

// Settings returns the settings.json document as an opaque object.
func (s *Service) Settings() map[string]any {
	return config.LoadSettings(s.dir.SettingsFile())
}

// sessionFile is one transcript file with its modification time.
type sessionFile struct {
	name  string
	mtime time.Time
}

// listSessionFiles enumerates a project's transcript files, most
// recently modified first. A missing directory lists as empty.
func (s *Service) listSessionFiles(encodedPath string) []sessionFile {
	entries, err := os.ReadDir(s.dir.ProjectDir(encodedPath))
	if err != nil {
		return nil
	}
	files := make([]sessionFile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".jsonl") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, sessionFile{name: entry.Name(), mtime: info.ModTime()})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].mtime.After(files[j].mtime) })
	return files
}

// summarizeFiles derives transcript summaries for many files
// concurrently. Results keep the input order.
func (s *Service) summarizeFiles(encodedPath string, files []sessionFile) []transcript.Summary {
	summaries := make([]transcript.Summary, len(files))
	sem := make(chan struct{}, boundsWorkers)
	var wg sync.WaitGroup
	for i, file := range files {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			summaries[i] = transcript.ReadFile(filepath.Join(s.dir.ProjectDir(encodedPath), name))
		}(i, file.name)
	}
	wg.Wait()
	return summaries
}

// sessionFromSummary assembles the listing shape for one transcript.
func sessionFromSummary(id, projectPath string, summary transcript.Summary) models.Session {
	return models.Session{
		ID:           id,
		ProjectPath:  projectPath,
		StartTime:    summary.StartTime,
		EndTime:      summary.EndTime,
		MessageCount: summary.MessageCount,
		Model:        summary.Model,
		IsAgent:      IsAgentSession(id),
	}
}

// IsAgentSession classifies a session id: the "agent-" prefix marks a
// sub-agent session, everything else is a regular one.
func IsAgentSession(sessionID string) bool {
	return strings.HasPrefix(sessionID, "agent-")
}

// sessionIDFromFile strips the transcript extension.
func sessionIDFromFile(name string) string {
	return strings.TrimSuffix(name, ".jsonl")
}

// resolveProjectPath maps an encoded directory name to its real path
// using the current config document.
func (s *Service) resolveProjectPath(encodedPath string) (string, bool) {
	doc := s.cfg.Load()
	lookup := claudedir.BuildPathLookup(doc.RealPaths())
	return claudedir.Resolve(encodedPath, lookup, s.dir.ProjectDir(encodedPath))
}
