package agent

import "strings"

// Intent is the classified purpose of a canonical utterance.
type Intent string

const (
	IntentEmpty    Intent = "empty"
	IntentHistory  Intent = "history"
	IntentRefresh  Intent = "refresh"
	IntentDailyTip Intent = "daily_tip"
	IntentChat     Intent = "chat"
)

// Keyword sets, tested in fixed priority order: history before refresh
// before tip before the chat default.
var (
	historyKeywords = []string{"history", "log"}
	refreshKeywords = []string{"refresh", "force", "new tip"}
	tipKeywords     = []string{"tip", "daily"}
)

// ClassifyIntent maps a canonical (already lower-cased) utterance to an
// intent via substring containment. Never fails.
func ClassifyIntent(utterance string) Intent {
	if utterance == "" {
		return IntentEmpty
	}
	switch {
	case containsAny(utterance, historyKeywords):
		return IntentHistory
	case containsAny(utterance, refreshKeywords):
		return IntentRefresh
	case containsAny(utterance, tipKeywords):
		return IntentDailyTip
	}
	return IntentChat
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
