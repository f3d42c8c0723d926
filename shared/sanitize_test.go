package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "drink more water", "drink more water"},
		{"html entities", "rest &amp; recover", "rest & recover"},
		{"html tags", "<b>stretch</b> daily", "stretch daily"},
		{"urls stripped", "see https://example.com/tips for more", "see for more"},
		{"non ascii dropped", "hydrate 💧 well", "hydrate well"},
		{"whitespace collapsed", "  take \n\t a   walk  ", "take a walk"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Sanitize(tc.in))
		})
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain text",
		"<p>tags &amp; entities</p>",
		"links http://x.io mixed 😀 with  spaces",
	}
	for _, in := range inputs {
		once := Sanitize(in)
		assert.Equal(t, once, Sanitize(once), "sanitize must be idempotent for %q", in)
	}
}

func TestTruncateAtWord(t *testing.T) {
	assert.Equal(t, "short", TruncateAtWord("short", 280))
	assert.Equal(t, "one two...", TruncateAtWord("one two three", 9))

	long := "Take a brisk ten minute walk after every meal to aid digestion"
	out := TruncateAtWord(long, 30)
	assert.LessOrEqual(t, len(out), 33)
	assert.True(t, len(out) > 3)
	assert.Contains(t, out, "...")
}
