package schema

import (
	"encoding/json"
	"fmt"
)

// Part kinds recognized on the wire.
const (
	PartKindText = "text"
	PartKindData = "data"
	PartKindFile = "file"
)

// TextPart represents a textual part of a message or artifact.
type TextPart struct {
	// Kind identifier, always "text".
	Kind string `json:"kind"`
	// The actual text content.
	Text string `json:"text"`
}

// DataItem is one entry inside a DataPart. Items optionally carry their own
// text and kind discriminator; only "text" items are consumed by extraction.
type DataItem struct {
	Kind string `json:"kind,omitempty"`
	Text string `json:"text,omitempty"`
}

// DataPart represents a structured data part carrying an ordered sequence of
// nested items.
type DataPart struct {
	// Kind identifier, always "data".
	Kind string `json:"kind"`
	// The nested items, in platform order.
	Data []DataItem `json:"data"`
}

// FilePart represents a file reference. The agent passes these through
// without consuming them.
type FilePart struct {
	// Kind identifier, always "file".
	Kind string `json:"kind"`
	// URL of the referenced file.
	FileURL string `json:"file_url"`
}

// Part is a tagged union over {TextPart, DataPart, FilePart}. Exactly one of
// the variant pointers is non-nil, matching the Kind field. Unknown kinds are
// rejected at unmarshal time rather than silently coerced.
type Part struct {
	Kind string
	Text *TextPart
	Data *DataPart
	File *FilePart
}

// UnmarshalJSON decodes a part based on its "kind" discriminator.
func (p *Part) UnmarshalJSON(raw []byte) error {
	var kindFinder struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(raw, &kindFinder); err != nil {
		return fmt.Errorf("failed to determine part kind: %w", err)
	}
	switch kindFinder.Kind {
	case PartKindText:
		var tp TextPart
		if err := json.Unmarshal(raw, &tp); err != nil {
			return fmt.Errorf("failed to unmarshal as TextPart: %w", err)
		}
		p.Kind, p.Text = PartKindText, &tp
	case PartKindData:
		var dp DataPart
		if err := json.Unmarshal(raw, &dp); err != nil {
			return fmt.Errorf("failed to unmarshal as DataPart: %w", err)
		}
		p.Kind, p.Data = PartKindData, &dp
	case PartKindFile:
		var fp FilePart
		if err := json.Unmarshal(raw, &fp); err != nil {
			return fmt.Errorf("failed to unmarshal as FilePart: %w", err)
		}
		p.Kind, p.File = PartKindFile, &fp
	default:
		return fmt.Errorf("unsupported part kind %q", kindFinder.Kind)
	}
	return nil
}

// MarshalJSON encodes the active variant.
func (p Part) MarshalJSON() ([]byte, error) {
	switch p.Kind {
	case PartKindText:
		return json.Marshal(p.Text)
	case PartKindData:
		return json.Marshal(p.Data)
	case PartKindFile:
		return json.Marshal(p.File)
	}
	return nil, fmt.Errorf("part has no active variant (kind %q)", p.Kind)
}

// NewTextPart builds a text part.
func NewTextPart(text string) Part {
	return Part{Kind: PartKindText, Text: &TextPart{Kind: PartKindText, Text: text}}
}

// Message represents a unit of communication between a user/client and the
// agent.
type Message struct {
	// Object kind, "message" on the wire.
	Kind string `json:"kind,omitempty"`
	// Identifier of this message.
	MessageID string `json:"messageId,omitempty"`
	// Role of the sender ("user" or "agent").
	Role string `json:"role"`
	// The content parts of the message. May be empty; absence of extractable
	// text is a valid state handled upstream.
	Parts []Part `json:"parts"`
	// Task this message belongs to.
	TaskID string `json:"taskId,omitempty"`
	// Optional conversation context identifier.
	ContextID string `json:"contextId,omitempty"`
}

// AuthenticationInfo lists the schemes the agent may use when calling a push
// notification URL.
type AuthenticationInfo struct {
	Schemes []string `json:"schemes"`
}

// PushNotificationConfig defines where the agent could push task updates.
// This agent parses it for envelope validity but never calls the URL; the
// platform re-polls over the same POST endpoint.
type PushNotificationConfig struct {
	URL            string              `json:"url"`
	Token          string              `json:"token,omitempty"`
	Authentication *AuthenticationInfo `json:"authentication,omitempty"`
}

// SendConfiguration carries optional platform delivery preferences.
type SendConfiguration struct {
	AcceptedOutputModes    []string                `json:"acceptedOutputModes,omitempty"`
	HistoryLength          int                     `json:"historyLength,omitempty"`
	PushNotificationConfig *PushNotificationConfig `json:"pushNotificationConfig,omitempty"`
	Blocking               bool                    `json:"blocking,omitempty"`
}

// MessageSendParams are the params of a message/send request.
type MessageSendParams struct {
	// The message content being sent. (Required)
	Message Message `json:"message"`
	// Optional delivery configuration.
	Configuration *SendConfiguration `json:"configuration,omitempty"`
}
