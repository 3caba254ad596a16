package correlate

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/strrl/claude-explorer/internal/claudedir"
	"github.com/strrl/claude-explorer/internal/transcript"
	"github.com/strrl/claude-explorer/pkg/models"
)

// Sentinel errors surfaced by lookups that take names from URLs.
var (
	ErrNotFound    = errors.New("not found")
	ErrInvalidName = errors.New("invalid name")
)

// SubAgents resolves the parent/child session relationships for one
// session. Agent transcripts carry the parent's id in their sessionId
// field, so linkage comes from transcript content, not from filename
// pattern matching.
func (c *Correlator) SubAgents(sessionID string) models.SubAgentInfo {
	info := models.SubAgentInfo{SubAgents: []models.Session{}}
	if !claudedir.ValidName(sessionID) {
		return info
	}

	projectDir := c.findProjectDir(sessionID)
	if projectDir == "" {
		return info
	}
	decodedPath := claudedir.Decode(filepath.Base(projectDir))

	if strings.HasPrefix(sessionID, "agent-") {
		// For an agent session the first record points back at the
		// parent session.
		entries := readFirstEntries(filepath.Join(projectDir, sessionID+".jsonl"))
		if len(entries) > 0 && entries[0].SessionID != "" {
			info.ParentSessionID = entries[0].SessionID
		}
		return info
	}

	dirEntries, err := os.ReadDir(projectDir)
	if err != nil {
		return info
	}
	for _, entry := range dirEntries {
		name := entry.Name()
		if !strings.HasPrefix(name, "agent-") || !strings.HasSuffix(name, ".jsonl") {
			continue
		}
		agentPath := filepath.Join(projectDir, name)
		entries := readFirstEntries(agentPath)
		if len(entries) == 0 || entries[0].SessionID != sessionID {
			continue
		}

		summary := transcript.ReadFile(agentPath)
		agentID := strings.TrimSuffix(name, ".jsonl")
		info.SubAgents = append(info.SubAgents, models.Session{
			ID:              agentID,
			ProjectPath:     decodedPath,
			StartTime:       summary.StartTime,
			EndTime:         summary.EndTime,
			MessageCount:    summary.MessageCount,
			Model:           summary.Model,
			IsAgent:         true,
			ParentSessionID: sessionID,
		})
	}
	return info
}

// findProjectDir locates the project directory containing the session's
// transcript by scanning the projects store.
func (c *Correlator) findProjectDir(sessionID string) string {
	entries, err := os.ReadDir(c.dir.Projects())
	if err != nil {
		return ""
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(c.dir.Projects(), entry.Name())
		if _, err := os.Stat(filepath.Join(dir, sessionID+".jsonl")); err == nil {
			return dir
		}
	}
	return ""
}

// readFirstEntries parses a transcript and returns its entries, or nil
// when the file is unreadable.
func readFirstEntries(path string) []transcript.Entry {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	return transcript.ParseLines(data)
}
