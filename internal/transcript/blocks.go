package transcript

import (
	"encoding/json"

	"github.com/strrl/claude-explorer/pkg/models"
)

// rawBlock is the wire shape of one content block before it is narrowed
// into the tagged union.
type rawBlock struct {
	Type      string          `json:"type"`
	Text      string          `json:"text"`
	Thinking  string          `json:"thinking"`
	Name      string          `json:"name"`
	Input     json.RawMessage `json:"input"`
	ToolUseID string          `json:"tool_use_id"`
	Content   json.RawMessage `json:"content"`
}

// DecodeContent narrows a message content field into either a plain
// string or a sequence of typed blocks. Block types outside the known
// set decode as Unknown so new transcript formats render as opaque
// placeholders instead of breaking consumers.
func DecodeContent(raw json.RawMessage) (text string, blocks []models.ContentBlock) {
	if len(raw) == 0 {
		return "", nil
	}

	var plain string
	if err := json.Unmarshal(raw, &plain); err == nil {
		return plain, nil
	}

	var rawBlocks []rawBlock
	if err := json.Unmarshal(raw, &rawBlocks); err != nil {
		return "", nil
	}

	blocks = make([]models.ContentBlock, 0, len(rawBlocks))
	for _, rb := range rawBlocks {
		blocks = append(blocks, narrowBlock(rb))
	}
	return "", blocks
}

func narrowBlock(rb rawBlock) models.ContentBlock {
	switch rb.Type {
	case models.BlockText:
		return models.ContentBlock{Type: models.BlockText, Text: rb.Text}
	case models.BlockThinking:
		return models.ContentBlock{Type: models.BlockThinking, Thinking: rb.Thinking}
	case models.BlockToolUse:
		return models.ContentBlock{
			Type:      models.BlockToolUse,
			ToolName:  rb.Name,
			ToolInput: compactJSON(rb.Input),
		}
	case models.BlockToolResult:
		return models.ContentBlock{
			Type:          models.BlockToolResult,
			ToolUseID:     rb.ToolUseID,
			ResultContent: flattenResult(rb.Content),
		}
	default:
		return models.ContentBlock{Type: models.BlockUnknown, RawType: rb.Type}
	}
}

// flattenResult renders a tool_result content field as text. Results
// arrive either as a string or as a nested block list; nested blocks
// contribute their text parts only.
func flattenResult(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var plain string
	if err := json.Unmarshal(raw, &plain); err == nil {
		return plain
	}
	var nested []rawBlock
	if err := json.Unmarshal(raw, &nested); err != nil {
		return ""
	}
	out := ""
	for _, b := range nested {
		if b.Type == models.BlockText && b.Text != "" {
			if out != "" {
				out += "\n"
			}
			out += b.Text
		}
	}
	return out
}

func compactJSON(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return ""
	}
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}
