// Package claudedir locates the Claude Code data directory and decodes
// the lossy directory-name encoding used under projects/.
package claudedir

import (
	"os"
	"path/filepath"
	"strings"
)

// Dir is the root of a Claude Code data tree (normally ~/.claude).
// Everything in this repository reads from it; nothing writes to it.
type Dir struct {
	root string
}

// New returns a Dir rooted at the given path.
func New(root string) Dir {
	return Dir{root: root}
}

// Default resolves ~/.claude for the current user.
func Default() (Dir, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Dir{}, err
	}
	return Dir{root: filepath.Join(home, ".claude")}, nil
}

func (d Dir) Root() string            { return d.root }
func (d Dir) Projects() string        { return filepath.Join(d.root, "projects") }
func (d Dir) Todos() string           { return filepath.Join(d.root, "todos") }
func (d Dir) FileHistory() string     { return filepath.Join(d.root, "file-history") }
func (d Dir) Debug() string           { return filepath.Join(d.root, "debug") }
func (d Dir) Plans() string           { return filepath.Join(d.root, "plans") }
func (d Dir) Skills() string          { return filepath.Join(d.root, "skills") }
func (d Dir) Commands() string        { return filepath.Join(d.root, "commands") }
func (d Dir) SessionEnv() string      { return filepath.Join(d.root, "session-env") }
func (d Dir) HistoryFile() string     { return filepath.Join(d.root, "history.jsonl") }
func (d Dir) SettingsFile() string    { return filepath.Join(d.root, "settings.json") }
func (d Dir) StatsCacheFile() string  { return filepath.Join(d.root, "stats-cache.json") }

// PluginRegistryFile is the installed-plugin registry under the
// plugins store.
func (d Dir) PluginRegistryFile() string {
	return filepath.Join(d.root, "plugins", "installed_plugins.json")
}

// ConfigFile is the ~/.claude.json document that sits next to the data
// directory, not inside it.
func (d Dir) ConfigFile() string {
	return filepath.Join(filepath.Dir(d.root), ".claude.json")
}

// ProjectDir returns the directory holding one project's transcripts.
func (d Dir) ProjectDir(encodedPath string) string {
	return filepath.Join(d.Projects(), encodedPath)
}

// SessionFile returns the transcript path for a session within a project.
func (d Dir) SessionFile(encodedPath, sessionID string) string {
	name := sessionID
	if !strings.HasSuffix(name, ".jsonl") {
		name += ".jsonl"
	}
	return filepath.Join(d.ProjectDir(encodedPath), name)
}

// ValidName reports whether a URL-supplied name is usable as a single
// path element. Encoded project paths and session ids never contain
// separators or dot components, so anything that does is hostile input.
func ValidName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}

// Within reports whether target, after lexical cleaning, stays inside
// base. Every path assembled from URL input goes through this guard.
func Within(base, target string) bool {
	rel, err := filepath.Rel(base, filepath.Clean(target))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
