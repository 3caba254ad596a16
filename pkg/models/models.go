package models

import "time"

// Project represents one project directory under the projects store,
// resolved back to its real filesystem path where possible.
type Project struct {
	Path                  string     `json:"path"`
	EncodedPath           string     `json:"encodedPath"`
	DisplayPath           string     `json:"displayPath"`
	Name                  string     `json:"name"`
	SessionCount          int        `json:"sessionCount"`
	HasSessionData        bool       `json:"hasSessionData"`
	IsOrphan              bool       `json:"isOrphan"`
	LastSessionID         string     `json:"lastSessionId,omitempty"`
	LastActivity          *time.Time `json:"lastActivity,omitempty"`
	LastCost              float64    `json:"lastCost,omitempty"`
	LastDuration          int64      `json:"lastDuration,omitempty"`
	LastTotalInputTokens  int64      `json:"lastTotalInputTokens,omitempty"`
	LastTotalOutputTokens int64      `json:"lastTotalOutputTokens,omitempty"`
}

// ProjectDetail is a project plus its most recent sessions and an
// all-time activity summary.
type ProjectDetail struct {
	Project
	RecentSessions  []Session       `json:"recentSessions"`
	ActivitySummary ActivitySummary `json:"activitySummary"`
}

// ActivitySummary aggregates message and agent-session counts over the
// whole lifetime of a project.
type ActivitySummary struct {
	TotalMessages      int       `json:"totalMessages"`
	TotalAgentSessions int       `json:"totalAgentSessions"`
	DateRange          DateRange `json:"dateRange"`
}

// DateRange is an inclusive time span; either bound may be absent.
type DateRange struct {
	Start *time.Time `json:"start"`
	End   *time.Time `json:"end"`
}

// Session represents one transcript file. Sub-agent sessions carry an
// "agent-" id prefix and are spawned from a parent session.
type Session struct {
	ID           string     `json:"id"`
	ProjectPath  string     `json:"projectPath"`
	StartTime    *time.Time `json:"startTime"`
	EndTime      *time.Time `json:"endTime"`
	MessageCount int        `json:"messageCount"`
	Model        string     `json:"model,omitempty"`
	IsAgent      bool       `json:"isAgent"`

	// ParentSessionID is set on sub-agent sessions when the parent is
	// known from the agent transcript's sessionId field.
	ParentSessionID string `json:"parentSessionId,omitempty"`
}

// SessionDetail is a session plus derived metadata and everything the
// correlator could link to it.
type SessionDetail struct {
	Session
	// DurationMS is endTime - startTime in milliseconds, when both exist.
	DurationMS     *int64          `json:"duration"`
	Metadata       SessionMetadata `json:"metadata"`
	CorrelatedData CorrelatedData  `json:"correlatedData"`
}

// SessionMetadata holds per-session facts derived from transcript content.
type SessionMetadata struct {
	Model     string   `json:"model,omitempty"`
	ToolsUsed []string `json:"toolsUsed"`
}

// Message is one conversational transcript record. Content is either a
// plain string or a sequence of typed blocks; snapshot records never
// surface as messages.
type Message struct {
	UUID       string         `json:"uuid"`
	ParentUUID string         `json:"parentUuid,omitempty"`
	Type       string         `json:"type"`
	Timestamp  time.Time      `json:"timestamp"`
	SessionID  string         `json:"sessionId,omitempty"`
	Content    MessageContent `json:"content"`
	Model      string         `json:"model,omitempty"`
	CWD        string         `json:"cwd,omitempty"`
	GitBranch  string         `json:"gitBranch,omitempty"`
}

// MessageContent is the role-tagged content envelope of a message.
// Exactly one of Text or Blocks is populated.
type MessageContent struct {
	Role   string         `json:"role"`
	Text   string         `json:"text,omitempty"`
	Blocks []ContentBlock `json:"blocks,omitempty"`
}

// Block type discriminators. Anything else decodes as BlockUnknown so
// new transcript block types render as opaque instead of failing.
const (
	BlockText       = "text"
	BlockThinking   = "thinking"
	BlockToolUse    = "tool_use"
	BlockToolResult = "tool_result"
	BlockUnknown    = "unknown"
)

// ContentBlock is the closed tagged union over transcript content block
// types. The Type field selects which payload fields are meaningful.
type ContentBlock struct {
	Type string `json:"type"`

	// text
	Text string `json:"text,omitempty"`

	// thinking
	Thinking string `json:"thinking,omitempty"`

	// tool_use
	ToolName  string `json:"name,omitempty"`
	ToolInput string `json:"input,omitempty"`

	// tool_result
	ToolUseID     string `json:"tool_use_id,omitempty"`
	ResultContent string `json:"content,omitempty"`

	// unknown: the original type discriminator, kept for display
	RawType string `json:"rawType,omitempty"`
}

// TodoItem is one entry of a session's task list.
type TodoItem struct {
	Content string `json:"content"`
	Status  string `json:"status"`
}

// FileBackup is one backup artifact named {contentHash}@v{version}.
type FileBackup struct {
	BackupFileName string `json:"backupFileName"`
	Version        int    `json:"version"`
}

// FileChange groups the backup chain of one tracked file, keyed by
// content hash. The original path is not recoverable from the hash, so
// FilePath is an opaque placeholder.
type FileChange struct {
	Hash     string       `json:"hash"`
	FilePath string       `json:"filePath"`
	Backups  []FileBackup `json:"backups"`
}

// CorrelatedData is everything linked to one session id across the
// sibling stores. LinkedSkill is reserved: detection would require
// transcript content analysis and is intentionally unimplemented.
type CorrelatedData struct {
	Todos        []TodoItem   `json:"todos"`
	FilesChanged []FileChange `json:"filesChanged"`
	DebugLogs    []string     `json:"debugLogs"`
	LinkedPlan   string       `json:"linkedPlan,omitempty"`
	LinkedSkill  string       `json:"linkedSkill,omitempty"`
}

// SubAgentInfo links a session to its spawned sub-agent sessions, or a
// sub-agent back to its parent.
type SubAgentInfo struct {
	ParentSessionID string    `json:"parentSessionId,omitempty"`
	SubAgents       []Session `json:"subAgents"`
}

// FileBackupContent is the raw content of one backup artifact.
type FileBackupContent struct {
	BackupFileName string `json:"backupFileName"`
	Content        string `json:"content"`
	Size           int64  `json:"size"`
}

// DailyActivity is one calendar-day bucket of a project's sessions.
type DailyActivity struct {
	Date          string    `json:"date"`
	Sessions      []Session `json:"sessions"`
	TotalMessages int       `json:"totalMessages"`
	SessionCount  int       `json:"sessionCount"`
}

// GlobalSession is a session with project attribution, used by the
// cross-project activity timeline.
type GlobalSession struct {
	Session
	ProjectID   string `json:"projectId"`
	ProjectName string `json:"projectName"`
}

// GlobalDailyActivity is one calendar-day bucket across every project.
type GlobalDailyActivity struct {
	Date          string          `json:"date"`
	Sessions      []GlobalSession `json:"sessions"`
	TotalMessages int             `json:"totalMessages"`
	SessionCount  int             `json:"sessionCount"`
}

// ActivityReport pairs day buckets with their window summary.
type ActivityReport struct {
	Data    []DailyActivity `json:"data"`
	Summary ActivityStats   `json:"summary"`
}

// GlobalActivityReport is the cross-project variant of ActivityReport.
type GlobalActivityReport struct {
	Data    []GlobalDailyActivity `json:"data"`
	Summary ActivityStats         `json:"summary"`
}

// ActivityStats summarizes an activity window. MaxDailyMessages exists
// so a caller can scale a visualization without a second pass.
type ActivityStats struct {
	TotalSessions    int `json:"totalSessions"`
	TotalMessages    int `json:"totalMessages"`
	MaxDailyMessages int `json:"maxDailyMessages"`
}

// Plan is one markdown plan document.
type Plan struct {
	Name    string `json:"name"`
	Content string `json:"content,omitempty"`
}

// Skill is one skill directory containing a SKILL.md with YAML
// frontmatter. Skills may be symlinks to external directories.
type Skill struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	AllowedTools []string `json:"allowedTools,omitempty"`
	Content      string   `json:"content,omitempty"`
	IsSymlink    bool     `json:"isSymlink,omitempty"`
	RealPath     string   `json:"realPath,omitempty"`
}

// Command is one markdown slash-command document.
type Command struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Content     string `json:"content,omitempty"`
}

// Plugin is one installed extension from the plugin registry. Names
// take the form "plugin-name@marketplace". Skills lists the skill
// directories the plugin ships under its install path.
type Plugin struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	Scope        string   `json:"scope,omitempty"`
	InstallPath  string   `json:"installPath,omitempty"`
	InstalledAt  string   `json:"installedAt,omitempty"`
	GitCommitSha string   `json:"gitCommitSha,omitempty"`
	Skills       []string `json:"skills"`
}

// FileEntry is one directory listing item of the file browser.
type FileEntry struct {
	Name        string `json:"name"`
	IsDirectory bool   `json:"isDirectory"`
}

// FileContent is the file browser response: a directory listing or a
// file's content. Files over the size ceiling carry Error instead of
// Content.
type FileContent struct {
	Type    string      `json:"type"`
	Path    string      `json:"path"`
	Content *string     `json:"content,omitempty"`
	Entries []FileEntry `json:"entries,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// DailyStat is one day of the lightweight stats breakdown, bucketed by
// session file modification time.
type DailyStat struct {
	Date          string `json:"date"`
	MessageCount  int    `json:"messageCount"`
	SessionCount  int    `json:"sessionCount"`
	ToolCallCount int    `json:"toolCallCount"`
}

// HistoryEntry is one prompt from the cross-project prompt history log.
type HistoryEntry struct {
	Display        string `json:"display"`
	Timestamp      int64  `json:"timestamp"`
	ProjectPath    string `json:"projectPath,omitempty"`
	ProjectID      string `json:"projectId,omitempty"`
	PastedContents any    `json:"pastedContents,omitempty"`
}

// Stats aggregates usage across every session file.
type Stats struct {
	Version          int         `json:"version"`
	LastComputedDate string      `json:"lastComputedDate"`
	TotalSessions    int         `json:"totalSessions"`
	TotalMessages    int         `json:"totalMessages"`
	HourCounts       map[int]int `json:"hourCounts,omitempty"`
}

// ModelUsage is cumulative token consumption for one model.
type ModelUsage struct {
	InputTokens              int64 `json:"inputTokens"`
	OutputTokens             int64 `json:"outputTokens"`
	CacheReadInputTokens     int64 `json:"cacheReadInputTokens"`
	CacheCreationInputTokens int64 `json:"cacheCreationInputTokens"`
}

// PaginationMeta describes one page of a listing.
type PaginationMeta struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"hasMore"`
}

// Paginated wraps one page of items with its pagination metadata.
type Paginated[T any] struct {
	Data []T            `json:"data"`
	Meta PaginationMeta `json:"meta"`
}
