package agent

import (
	"strings"

	"github.com/telex-agents/fittip/a2a/schema"
	"github.com/telex-agents/fittip/shared"
)

// ExtractText reduces an inbound message to a single canonical utterance.
//
// Parts are scanned in reverse order, most-recent-wins: the first text part
// with non-empty trimmed text is the candidate. A data part contributes the
// last of its nested "text" items the same way. File parts are pass-through
// and never contribute. The candidate is sanitized, lower-cased and trimmed;
// absence of any extractable text yields "" and is a valid state, never an
// error.
func ExtractText(msg schema.Message) string {
	var candidate string
scan:
	for i := len(msg.Parts) - 1; i >= 0; i-- {
		part := msg.Parts[i]
		switch part.Kind {
		case schema.PartKindText:
			if part.Text == nil {
				continue
			}
			if text := strings.TrimSpace(part.Text.Text); text != "" {
				candidate = text
				break scan
			}
		case schema.PartKindData:
			if part.Data == nil {
				continue
			}
			for j := len(part.Data.Data) - 1; j >= 0; j-- {
				item := part.Data.Data[j]
				if item.Kind != schema.PartKindText {
					continue
				}
				if text := strings.TrimSpace(item.Text); text != "" {
					candidate = text
					break scan
				}
			}
		case schema.PartKindFile:
			// Not consumed.
		}
	}
	return strings.ToLower(strings.TrimSpace(shared.Sanitize(candidate)))
}

// SessionKey derives the opaque per-user session identifier from an inbound
// message: contextId when present, else taskId, else a shared anonymous key.
func SessionKey(msg schema.Message) string {
	if msg.ContextID != "" {
		return msg.ContextID
	}
	if msg.TaskID != "" {
		return msg.TaskID
	}
	return "anonymous"
}
