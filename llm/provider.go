package llm

import "context"

// Turn roles within a conversation window.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one exchange half in a bounded conversation window.
type Turn struct {
	Role string
	Text string
}

// Request carries everything a provider needs for one generation call.
type Request struct {
	// System prompt framing the agent's persona and constraints.
	System string
	// Prior turns of the conversation window, oldest first. Empty for
	// stateless tip generation and for fresh-session retries.
	History []Turn
	// The current user utterance or tip instruction.
	UserText string
}

// Provider is the external generation transport: prompt in, text out, or an
// error. Implementations must honor ctx cancellation.
type Provider interface {
	Generate(ctx context.Context, req Request) (string, error)
}
