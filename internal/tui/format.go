package tui

import (
	"fmt"
	"strings"

	"github.com/strrl/claude-explorer/pkg/models"
)

// formatMessage renders one message as a single preview line: role
// prefix plus truncated content. Tool calls show the tool name and a
// short input summary instead of raw JSON.
func formatMessage(msg models.Message) string {
	rolePrefix := ""
	switch msg.Type {
	case "user":
		rolePrefix = "[User] "
	case "assistant":
		rolePrefix = "[Assistant] "
	default:
		rolePrefix = fmt.Sprintf("[%s] ", msg.Type)
	}

	if msg.Content.Text != "" {
		return rolePrefix + truncateString(msg.Content.Text, 50)
	}

	var parts []string
	for _, block := range msg.Content.Blocks {
		switch block.Type {
		case models.BlockText:
			// Skip system reminders
			if block.Text == "" || strings.Contains(block.Text, "system-reminder") {
				continue
			}
			parts = append(parts, truncateString(block.Text, 50))

		case models.BlockThinking:
			if block.Thinking != "" {
				parts = append(parts, "[Thinking] "+truncateString(block.Thinking, 40))
			}

		case models.BlockToolUse:
			name := block.ToolName
			if name == "" {
				name = "unknown"
			}
			summary := fmt.Sprintf("[Tool: %s]", name)
			if block.ToolInput != "" {
				summary += " " + truncateString(block.ToolInput, 30)
			}
			parts = append(parts, summary)

		case models.BlockToolResult:
			if block.ResultContent != "" {
				parts = append(parts, "[Result] "+truncateString(block.ResultContent, 40))
			}

		default:
			parts = append(parts, fmt.Sprintf("[%s]", block.RawType))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return rolePrefix + strings.Join(parts, " ")
}

// previewLines renders a session's messages into display lines,
// dropping messages that format to nothing.
func previewLines(messages []models.Message) []string {
	var lines []string
	for _, msg := range messages {
		if line := formatMessage(msg); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func truncateString(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
