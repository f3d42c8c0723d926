package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyIntent(t *testing.T) {
	cases := []struct {
		utterance string
		want      Intent
	}{
		{"", IntentEmpty},
		{"show my history", IntentHistory},
		{"tip log please", IntentHistory},
		{"refresh the tip", IntentRefresh},
		{"force a new one", IntentRefresh},
		{"give me a new tip", IntentRefresh},
		{"daily tip please", IntentDailyTip},
		{"got a tip for me?", IntentDailyTip},
		{"how much water should i drink", IntentChat},
		{"hello there", IntentChat},
	}
	for _, tc := range cases {
		t.Run(tc.utterance, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifyIntent(tc.utterance))
		})
	}
}

func TestClassifyIntentPriorityOrder(t *testing.T) {
	// History keywords outrank refresh, refresh outranks tip.
	assert.Equal(t, IntentHistory, ClassifyIntent("refresh my tip history"))
	assert.Equal(t, IntentRefresh, ClassifyIntent("force a fresh tip"))
}

func TestChatGates(t *testing.T) {
	assert.True(t, isGreeting("hello"))
	assert.True(t, isGreeting("hey, coach!"))
	assert.True(t, isGreeting("good morning"))
	assert.False(t, isGreeting("is this healthy"), "hi inside a word must not match")

	assert.True(t, isOnTopic("how do i build muscle"))
	assert.True(t, isOnTopic("what about hydration"))
	assert.False(t, isOnTopic("what is the capital of france"))
}
