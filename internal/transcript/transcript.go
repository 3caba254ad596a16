// Package transcript streams Claude Code session transcripts: one JSON
// object per line, parsed tolerantly because interrupted writes leave
// partial trailing lines behind.
package transcript

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"strconv"
	"time"

	"github.com/strrl/claude-explorer/pkg/models"
)

// SnapshotType marks file-backup records. They live in the transcript
// but are not conversational turns, so they never count as messages.
const SnapshotType = "file-history-snapshot"

// maxLineSize bounds a single transcript line; tool results with large
// pasted content can run to megabytes.
const maxLineSize = 16 * 1024 * 1024

// Entry is one raw transcript line. Timestamp and message content keep
// their raw JSON because both fields appear in several shapes.
type Entry struct {
	Type       string          `json:"type"`
	UUID       string          `json:"uuid"`
	MessageID  string          `json:"messageId"`
	ParentUUID string          `json:"parentUuid"`
	Timestamp  json.RawMessage `json:"timestamp"`
	SessionID  string          `json:"sessionId"`
	CWD        string          `json:"cwd"`
	GitBranch  string          `json:"gitBranch"`
	Message    *MessageBody    `json:"message"`
}

// MessageBody is the message envelope of user/assistant records.
type MessageBody struct {
	Role    string          `json:"role"`
	Model   string          `json:"model"`
	Content json.RawMessage `json:"content"`
}

// ParseLines folds over the lines of a transcript, keeping every line
// that parses as a JSON object and silently dropping the rest. One
// corrupt line never poisons the batch.
func ParseLines(data []byte) []Entry {
	var entries []Entry
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

// Summary is everything a single forward pass over a transcript yields.
type Summary struct {
	// Messages are the conversational records in file order.
	Messages []models.Message
	// StartTime and EndTime come from the first and last line carrying
	// a valid timestamp, by line position. Transcripts are append-only
	// and roughly monotonic; non-monotonic timestamps are not corrected.
	StartTime *time.Time
	EndTime   *time.Time
	// MessageCount counts parsed records that are not snapshots, even
	// when they lack a timestamp and so are absent from Messages.
	MessageCount int
	// Model is the most recently seen model of any assistant record.
	Model string
}

// Summarize derives a Summary from parsed entries in one pass.
func Summarize(entries []Entry) Summary {
	var s Summary
	for _, e := range entries {
		if e.Type == SnapshotType {
			continue
		}
		s.MessageCount++

		if e.Type == "assistant" && e.Message != nil && e.Message.Model != "" {
			s.Model = e.Message.Model
		}

		ts, ok := ParseTimestamp(e.Timestamp)
		if !ok {
			continue
		}
		if s.StartTime == nil {
			start := ts
			s.StartTime = &start
		}
		end := ts
		s.EndTime = &end

		if msg, ok := toMessage(e, ts); ok {
			s.Messages = append(s.Messages, msg)
		}
	}
	return s
}

// ReadFile reads and summarizes a transcript. Read failures degrade to
// an empty summary with a synthetic start of now; the caller sees fewer
// sessions, never an error.
func ReadFile(path string) Summary {
	data, err := os.ReadFile(path)
	if err != nil {
		now := time.Now().UTC()
		return Summary{StartTime: &now}
	}
	return Summarize(ParseLines(data))
}

// toMessage converts an entry into the API message shape. Entries with
// no type are excluded here but were still counted by Summarize.
func toMessage(e Entry, ts time.Time) (models.Message, bool) {
	if e.Type == "" {
		return models.Message{}, false
	}
	uuid := e.UUID
	if uuid == "" {
		uuid = e.MessageID
	}
	msg := models.Message{
		UUID:       uuid,
		ParentUUID: e.ParentUUID,
		Type:       e.Type,
		Timestamp:  ts,
		SessionID:  e.SessionID,
		CWD:        e.CWD,
		GitBranch:  e.GitBranch,
	}
	if e.Message != nil {
		msg.Model = e.Message.Model
		msg.Content = models.MessageContent{Role: e.Message.Role}
		text, blocks := DecodeContent(e.Message.Content)
		msg.Content.Text = text
		msg.Content.Blocks = blocks
	} else {
		msg.Content = models.MessageContent{Role: e.Type}
	}
	return msg, true
}

// ParseTimestamp accepts the timestamp shapes seen in the wild: RFC3339
// strings, unix seconds or milliseconds as numbers, and numeric strings.
func ParseTimestamp(raw json.RawMessage) (time.Time, bool) {
	if len(raw) == 0 {
		return time.Time{}, false
	}

	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		if t, err := time.Parse(time.RFC3339, str); err == nil {
			return t, true
		}
		if f, err := strconv.ParseFloat(str, 64); err == nil {
			return fromUnix(f), true
		}
		return time.Time{}, false
	}

	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return fromUnix(num), true
	}
	return time.Time{}, false
}

// fromUnix treats values above 1e12 as milliseconds, otherwise seconds.
func fromUnix(v float64) time.Time {
	if v > 1e12 {
		v /= 1000
	}
	sec := int64(v)
	nsec := int64((v - float64(sec)) * 1e9)
	return time.Unix(sec, nsec).UTC()
}
