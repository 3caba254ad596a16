// Package config reads the ~/.claude.json document and settings.json.
// Both are external read-through dependencies: loaders are constructed
// with explicit paths and re-read on every call, so the core stays
// testable against fixture documents.
package config

import (
	"encoding/json"
	"os"
	"strings"
)

// ProjectEntry is the per-project metadata block of the config
// document. Only the fields this API surfaces are typed; the rest of
// the entry is preserved in Raw.
type ProjectEntry struct {
	LastSessionID         string                     `json:"lastSessionId"`
	LastCost              float64                    `json:"lastCost"`
	LastDuration          int64                      `json:"lastDuration"`
	LastTotalInputTokens  int64                      `json:"lastTotalInputTokens"`
	LastTotalOutputTokens int64                      `json:"lastTotalOutputTokens"`
	LastModelUsage        map[string]ModelUsageEntry `json:"lastModelUsage"`

	Raw map[string]any `json:"-"`
}

// ModelUsageEntry is the per-model token block inside lastModelUsage.
type ModelUsageEntry struct {
	InputTokens              int64 `json:"inputTokens"`
	OutputTokens             int64 `json:"outputTokens"`
	CacheReadInputTokens     int64 `json:"cacheReadInputTokens"`
	CacheCreationInputTokens int64 `json:"cacheCreationInputTokens"`
}

// Document is a parsed config file: the typed project table plus the
// full raw object for the config endpoint.
type Document struct {
	Projects map[string]ProjectEntry
	Raw      map[string]any
}

// RealPaths lists the config-listed project paths, the ground truth for
// the path codec's reverse lookup.
func (d Document) RealPaths() []string {
	paths := make([]string, 0, len(d.Projects))
	for p := range d.Projects {
		paths = append(paths, p)
	}
	return paths
}

// Loader reads config documents from a fixed path.
type Loader struct {
	path string
}

// NewLoader returns a loader bound to the given config file path.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load reads and parses the config document. A missing or malformed
// file degrades to an empty document instead of an error: projects
// whose directories exist simply become orphans.
func (l *Loader) Load() Document {
	doc := Document{Projects: map[string]ProjectEntry{}}

	data, err := os.ReadFile(l.path)
	if err != nil {
		return doc
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return doc
	}
	doc.Raw = raw

	projects, ok := raw["projects"].(map[string]any)
	if !ok {
		return doc
	}
	for path, v := range projects {
		entryRaw, ok := v.(map[string]any)
		if !ok {
			continue
		}
		entry := decodeProjectEntry(entryRaw)
		entry.Raw = entryRaw
		doc.Projects[path] = entry
	}
	return doc
}

// decodeProjectEntry round-trips one raw entry through JSON to pick out
// the typed fields; any field that fails to decode is simply absent.
func decodeProjectEntry(raw map[string]any) ProjectEntry {
	var entry ProjectEntry
	data, err := json.Marshal(raw)
	if err != nil {
		return entry
	}
	_ = json.Unmarshal(data, &entry)
	return entry
}

// LoadSettings reads a settings.json document as an opaque object.
// Missing or malformed settings degrade to an empty object.
func LoadSettings(path string) map[string]any {
	data, err := os.ReadFile(path)
	if err != nil {
		return map[string]any{}
	}
	var settings map[string]any
	if err := json.Unmarshal(data, &settings); err != nil {
		return map[string]any{}
	}
	return settings
}

// Key substrings whose values are never exposed over the API.
var sensitiveFields = []string{
	"oauthaccount",
	"accesstoken",
	"refreshtoken",
	"apikey",
	"credentials",
	"token",
	"secret",
}

// Redact deep-copies an object, replacing the value of every key that
// contains a sensitive substring with "[REDACTED]".
func Redact(obj map[string]any) map[string]any {
	out := make(map[string]any, len(obj))
	for key, value := range obj {
		lower := strings.ToLower(key)
		sensitive := false
		for _, field := range sensitiveFields {
			if strings.Contains(lower, field) {
				sensitive = true
				break
			}
		}
		switch {
		case sensitive:
			out[key] = "[REDACTED]"
		default:
			if nested, ok := value.(map[string]any); ok {
				out[key] = Redact(nested)
			} else {
				out[key] = value
			}
		}
	}
	return out
}
