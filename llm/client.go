package llm

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/telex-agents/fittip/shared"
)

const tipSystemPrompt = "You are a concise, friendly daily health & fitness coach. " +
	"Produce one short actionable tip (1-2 sentences) aimed at general adults. " +
	"Keep it safe and non-medical."

const tipUserPrompt = "Give one short daily health and fitness tip for adults, under 200 characters."

const chatSystemPrompt = "You are a friendly, motivational AI health assistant scoped to " +
	"health, fitness, nutrition, sleep and mindfulness. Answer briefly and practically. " +
	"Avoid medical advice and emojis."

// fallbackTips are served when generation is unavailable.
var fallbackTips = []string{
	"Drink a glass of water first thing in the morning.",
	"Take a short walk to refresh your mind.",
	"Stretch your back and neck every hour while working.",
}

// ChatFallback is the fixed reply when a chat generation cannot complete.
const ChatFallback = "Sorry, I couldn't come up with an answer right now. Please try again in a moment."

// maxSessionTurns bounds the per-user conversation window.
const maxSessionTurns = 10

type session struct {
	turns []Turn
}

// Options configure a Client.
type Options struct {
	// MinCallInterval is the global minimum spacing between provider calls.
	MinCallInterval time.Duration
	// Timeout bounds each provider call.
	Timeout time.Duration
	// MaxLength caps output text; longer replies are cut at a word boundary.
	MaxLength int
}

// Client drives the external generation call under a global rate guard, a
// per-call timeout with one fresh-session retry, and a degrade-to-fallback
// policy: callers always receive text, never a generation error.
type Client struct {
	logger   *zap.Logger
	provider Provider
	limiter  *rate.Limiter
	timeout  time.Duration
	maxLen   int

	mu       sync.Mutex
	sessions map[string]*session
}

// NewClient creates a Client around the given provider.
func NewClient(logger *zap.Logger, provider Provider, opts Options) *Client {
	return &Client{
		logger:   logger.Named("llm"),
		provider: provider,
		limiter:  rate.NewLimiter(rate.Every(opts.MinCallInterval), 1),
		timeout:  opts.Timeout,
		maxLen:   opts.MaxLength,
		sessions: make(map[string]*session),
	}
}

// GenerateTip produces one sanitized daily tip. On any generation failure it
// degrades to a canned fallback tip.
func (c *Client) GenerateTip(ctx context.Context) string {
	out, err := c.generate(ctx, Request{System: tipSystemPrompt, UserText: tipUserPrompt}, "")
	if err != nil {
		c.logger.Warn("Tip generation failed, serving fallback", zap.Error(err))
		return fallbackTips[rand.Intn(len(fallbackTips))]
	}
	return out
}

// Chat answers a free-form utterance within the user's bounded conversation
// window. The window only grows on success; failures degrade to ChatFallback.
func (c *Client) Chat(ctx context.Context, userID, utterance string) string {
	req := Request{
		System:   chatSystemPrompt,
		History:  c.historyFor(userID),
		UserText: utterance,
	}
	out, err := c.generate(ctx, req, userID)
	if err != nil {
		c.logger.Warn("Chat generation failed, serving fallback",
			zap.String("userID", userID), zap.Error(err))
		return ChatFallback
	}
	c.remember(userID, utterance, out)
	return out
}

// generate performs one rate-guarded, timeout-bounded provider call. A first
// timeout discards the user's session and retries once with a fresh one; any
// other failure (second timeout, provider error, empty output) surfaces as an
// error for the caller's fallback policy.
func (c *Client) generate(ctx context.Context, req Request, userID string) (string, error) {
	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate guard wait: %w", err)
		}

		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		raw, err := c.provider.Generate(callCtx, req)
		cancel()

		if err == nil {
			out := shared.Sanitize(raw)
			if out == "" {
				return "", errors.New("provider returned no usable text")
			}
			return shared.TruncateAtWord(out, c.maxLen), nil
		}

		if errors.Is(err, context.DeadlineExceeded) && attempt == 0 {
			c.logger.Warn("Generation timed out, retrying with a fresh session",
				zap.String("userID", userID))
			if userID != "" {
				c.ResetSession(userID)
			}
			req.History = nil
			continue
		}
		return "", err
	}
}

// historyFor returns a copy of the user's conversation window.
func (c *Client) historyFor(userID string) []Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	sess, ok := c.sessions[userID]
	if !ok {
		return nil
	}
	out := make([]Turn, len(sess.turns))
	copy(out, sess.turns)
	return out
}

// remember appends the exchange to the user's window, evicting the oldest
// turns beyond the bound.
func (c *Client) remember(userID, userText, reply string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	sess, ok := c.sessions[userID]
	if !ok {
		sess = &session{}
		c.sessions[userID] = sess
	}
	sess.turns = append(sess.turns,
		Turn{Role: RoleUser, Text: userText},
		Turn{Role: RoleAssistant, Text: reply},
	)
	if len(sess.turns) > maxSessionTurns {
		sess.turns = sess.turns[len(sess.turns)-maxSessionTurns:]
	}
}

// ResetSession drops the user's conversation window.
func (c *Client) ResetSession(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sessions, userID)
}
