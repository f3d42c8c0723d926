package schema

import (
	"encoding/json"
	"testing"
)

func TestPartUnmarshal(t *testing.T) {
	t.Run("text part", func(t *testing.T) {
		var p Part
		if err := json.Unmarshal([]byte(`{"kind":"text","text":"hello"}`), &p); err != nil {
			t.Fatalf("Failed to unmarshal text part: %v", err)
		}
		if p.Kind != PartKindText || p.Text == nil || p.Text.Text != "hello" {
			t.Errorf("Unexpected part: %+v", p)
		}
	})

	t.Run("data part with nested items", func(t *testing.T) {
		var p Part
		jsonData := `{"kind":"data","data":[{"kind":"text","text":"inner"},{"kind":"image"}]}`
		if err := json.Unmarshal([]byte(jsonData), &p); err != nil {
			t.Fatalf("Failed to unmarshal data part: %v", err)
		}
		if p.Kind != PartKindData || p.Data == nil || len(p.Data.Data) != 2 {
			t.Fatalf("Unexpected part: %+v", p)
		}
		if p.Data.Data[0].Text != "inner" {
			t.Errorf("Expected nested text 'inner', got %q", p.Data.Data[0].Text)
		}
	})

	t.Run("file part", func(t *testing.T) {
		var p Part
		if err := json.Unmarshal([]byte(`{"kind":"file","file_url":"https://x/y.png"}`), &p); err != nil {
			t.Fatalf("Failed to unmarshal file part: %v", err)
		}
		if p.Kind != PartKindFile || p.File == nil || p.File.FileURL != "https://x/y.png" {
			t.Errorf("Unexpected part: %+v", p)
		}
	})

	t.Run("unknown kind is rejected", func(t *testing.T) {
		var p Part
		if err := json.Unmarshal([]byte(`{"kind":"video","url":"x"}`), &p); err == nil {
			t.Error("Expected error for unknown part kind, got nil")
		}
	})
}

func TestMessageUnmarshal(t *testing.T) {
	jsonData := `{
		"kind": "message",
		"messageId": "m-1",
		"role": "user",
		"parts": [{"kind":"text","text":"daily tip please"}],
		"taskId": "t-1"
	}`

	var msg Message
	if err := json.Unmarshal([]byte(jsonData), &msg); err != nil {
		t.Fatalf("Failed to unmarshal Message JSON: %v", err)
	}
	if msg.Role != "user" {
		t.Errorf("Expected role 'user', got %q", msg.Role)
	}
	if len(msg.Parts) != 1 || msg.Parts[0].Kind != PartKindText {
		t.Errorf("Unexpected parts: %+v", msg.Parts)
	}
}

func TestMessageEmptyParts(t *testing.T) {
	var msg Message
	if err := json.Unmarshal([]byte(`{"role":"user","parts":[]}`), &msg); err != nil {
		t.Fatalf("Empty parts must unmarshal cleanly: %v", err)
	}
	if len(msg.Parts) != 0 {
		t.Errorf("Expected no parts, got %d", len(msg.Parts))
	}
}

func TestTextPartRoundTrip(t *testing.T) {
	p := NewTextPart("stretch every hour")
	raw, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var back Part
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if back.Text == nil || back.Text.Text != "stretch every hour" {
		t.Errorf("Round trip lost text: %+v", back)
	}
}
