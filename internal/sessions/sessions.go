package sessions

import (
	"os"
	"sort"

	"github.com/strrl/claude-explorer/internal/claudedir"
	"github.com/strrl/claude-explorer/internal/transcript"
	"github.com/strrl/claude-explorer/pkg/models"
)

// Session type filters accepted by ListSessions.
const (
	TypeAll     = "all"
	TypeRegular = "regular"
	TypeAgent   = "agent"
)

// SessionListOptions are the listing knobs of ListSessions.
type SessionListOptions struct {
	Type   string
	Limit  int
	Offset int
}

// ListSessions lists a project's sessions, most recently modified
// first. The type filter applies before pagination so totals reflect
// the filtered set.
func (s *Service) ListSessions(encodedPath string, opts SessionListOptions) (models.Paginated[models.Session], error) {
	if !claudedir.ValidName(encodedPath) {
		return models.Paginated[models.Session]{}, ErrNotFound
	}
	if _, err := os.Stat(s.dir.ProjectDir(encodedPath)); err != nil {
		return models.Paginated[models.Session]{}, ErrNotFound
	}
	path, _ := s.resolveProjectPath(encodedPath)

	files := s.listSessionFiles(encodedPath)
	filtered := files[:0]
	for _, file := range files {
		id := sessionIDFromFile(file.name)
		switch opts.Type {
		case TypeRegular:
			if IsAgentSession(id) {
				continue
			}
		case TypeAgent:
			if !IsAgentSession(id) {
				continue
			}
		}
		filtered = append(filtered, file)
	}

	summaries := s.summarizeFiles(encodedPath, filtered)
	sessions := make([]models.Session, len(filtered))
	for i, file := range filtered {
		sessions[i] = sessionFromSummary(sessionIDFromFile(file.name), path, summaries[i])
	}
	return Paginate(sessions, opts.Limit, opts.Offset), nil
}

// GetSession returns a session's detail view: bounds, duration, tools
// used, and everything the correlator linked to it.
func (s *Service) GetSession(encodedPath, sessionID string) (models.SessionDetail, error) {
	if !claudedir.ValidName(encodedPath) || !claudedir.ValidName(sessionID) {
		return models.SessionDetail{}, ErrNotFound
	}
	file := s.dir.SessionFile(encodedPath, sessionID)
	if _, err := os.Stat(file); err != nil {
		return models.SessionDetail{}, ErrNotFound
	}
	path, _ := s.resolveProjectPath(encodedPath)

	summary := transcript.ReadFile(file)
	detail := models.SessionDetail{
		Session: sessionFromSummary(sessionID, path, summary),
		Metadata: models.SessionMetadata{
			Model:     summary.Model,
			ToolsUsed: toolsUsed(summary.Messages),
		},
		CorrelatedData: s.correlator.Collect(sessionID),
	}
	if summary.StartTime != nil && summary.EndTime != nil {
		ms := summary.EndTime.Sub(*summary.StartTime).Milliseconds()
		detail.DurationMS = &ms
	}
	return detail, nil
}

// toolsUsed collects the distinct tool names invoked across a
// session's messages, sorted for a stable response.
func toolsUsed(messages []models.Message) []string {
	seen := map[string]bool{}
	for _, msg := range messages {
		for _, block := range msg.Content.Blocks {
			if block.Type == models.BlockToolUse && block.ToolName != "" {
				seen[block.ToolName] = true
			}
		}
	}
	tools := make([]string, 0, len(seen))
	for name := range seen {
		tools = append(tools, name)
	}
	sort.Strings(tools)
	return tools
}

// Message role filters accepted by ListMessages.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// MessageListOptions are the listing knobs of ListMessages.
type MessageListOptions struct {
	Type   string // "user", "assistant", or "all"
	Limit  int
	Offset int
}

// ListMessages pages through a session's messages in file order. The
// type filter matches the record type, not the content role.
func (s *Service) ListMessages(encodedPath, sessionID string, opts MessageListOptions) (models.Paginated[models.Message], error) {
	if !claudedir.ValidName(encodedPath) || !claudedir.ValidName(sessionID) {
		return models.Paginated[models.Message]{}, ErrNotFound
	}
	file := s.dir.SessionFile(encodedPath, sessionID)
	if _, err := os.Stat(file); err != nil {
		return models.Paginated[models.Message]{}, ErrNotFound
	}

	summary := transcript.ReadFile(file)
	messages := summary.Messages
	if opts.Type == RoleUser || opts.Type == RoleAssistant {
		filtered := make([]models.Message, 0, len(messages))
		for _, msg := range messages {
			if msg.Type == opts.Type {
				filtered = append(filtered, msg)
			}
		}
		messages = filtered
	}
	return Paginate(messages, opts.Limit, opts.Offset), nil
}

// GetMessage looks one message up by uuid within a session.
func (s *Service) GetMessage(encodedPath, sessionID, messageID string) (models.Message, error) {
	if !claudedir.ValidName(encodedPath) || !claudedir.ValidName(sessionID) {
		return models.Message{}, ErrNotFound
	}
	file := s.dir.SessionFile(encodedPath, sessionID)
	if _, err := os.Stat(file); err != nil {
		return models.Message{}, ErrNotFound
	}
	summary := transcript.ReadFile(file)
	for _, msg := range summary.Messages {
		if msg.UUID == messageID {
			return msg, nil
		}
	}
	return models.Message{}, ErrNotFound
}
