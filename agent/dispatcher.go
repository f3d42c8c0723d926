package agent

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/telex-agents/fittip/a2a/schema"
	"github.com/telex-agents/fittip/tips"
)

// noHistoryReply is returned when the tip history is empty.
const noHistoryReply = "No tips yet. Ask for a daily tip to get started."

// TipStore is the consumed cache gateway: day-scoped tip lookup plus a
// bounded, dated history.
type TipStore interface {
	TodayTip() string
	Append(tip string) error
	History() []tips.Entry
}

// Generator produces text via the external model under the client's rate,
// timeout and fallback policies. Both methods always return usable text.
type Generator interface {
	GenerateTip(ctx context.Context) string
	Chat(ctx context.Context, userID, utterance string) string
}

// Dispatcher orchestrates one inbound message/send call:
// extract -> classify -> (cache lookup | generate) -> assemble.
type Dispatcher struct {
	logger *zap.Logger
	store  TipStore
	gen    Generator
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(logger *zap.Logger, store TipStore, gen Generator) *Dispatcher {
	return &Dispatcher{
		logger: logger.Named("dispatcher"),
		store:  store,
		gen:    gen,
	}
}

// HandleMessage resolves validated message/send params into a result
// envelope. Only two outcomes are non-ok: an empty utterance (client error)
// and an unanticipated panic, which is caught here and mapped to a generic
// internal error so it can never crash the process or leak a stack trace.
func (d *Dispatcher) HandleMessage(ctx context.Context, params *schema.MessageSendParams) (task *schema.Task, rpcErr *schema.JSONRPCError) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("Recovered from panic while handling message", zap.Any("panic", r))
			task = nil
			rpcErr = schema.NewInternalError()
		}
	}()

	if cfg := params.Configuration; cfg != nil && cfg.PushNotificationConfig != nil {
		// Parsed for envelope validity only; the platform re-polls.
		d.logger.Debug("Ignoring push notification config",
			zap.String("url", cfg.PushNotificationConfig.URL))
	}

	utterance := ExtractText(params.Message)
	intent := ClassifyIntent(utterance)
	d.logger.Debug("Classified utterance",
		zap.String("intent", string(intent)), zap.String("utterance", utterance))

	var text string
	switch intent {
	case IntentEmpty:
		return nil, schema.NewInvalidParamsError("message contains no extractable text")
	case IntentHistory:
		text = d.renderHistory()
	case IntentRefresh:
		text = d.refreshTip(ctx)
	case IntentDailyTip:
		text = d.dailyTip(ctx)
	case IntentChat:
		text = d.chat(ctx, SessionKey(params.Message), utterance)
	}

	return d.assemble(params.Message, text), nil
}

// EnsureDailyTip produces and caches today's tip if absent. Invoked by the
// daily schedule; the check-then-generate sequence is intentionally not
// transactional (a concurrent request may race it, bounded eviction absorbs
// the duplicate).
func (d *Dispatcher) EnsureDailyTip(ctx context.Context) {
	if tip := d.store.TodayTip(); tip != "" {
		d.logger.Debug("Daily tip already cached")
		return
	}
	tip := d.refreshTip(ctx)
	d.logger.Info("Generated daily tip", zap.String("tip", tip))
}

// dailyTip serves today's cached tip, generating one only on a cache miss.
func (d *Dispatcher) dailyTip(ctx context.Context) string {
	if tip := d.store.TodayTip(); tip != "" {
		return tip
	}
	return d.refreshTip(ctx)
}

// refreshTip always generates, bypassing the cache, and appends to history.
func (d *Dispatcher) refreshTip(ctx context.Context) string {
	tip := d.gen.GenerateTip(ctx)
	if err := d.store.Append(tip); err != nil {
		// Reply with the tip anyway; the cache is non-critical.
		d.logger.Error("Failed to append tip to history", zap.Error(err))
	}
	return tip
}

// chat applies the generation-free gates before calling the model: greetings
// get a fixed reply, off-topic utterances a polite refusal.
func (d *Dispatcher) chat(ctx context.Context, userID, utterance string) string {
	if isGreeting(utterance) {
		return greetingReply
	}
	if !isOnTopic(utterance) {
		return offTopicReply
	}
	return d.gen.Chat(ctx, userID, utterance)
}

// renderHistory joins the stored entries, newest last, into one text block.
func (d *Dispatcher) renderHistory() string {
	entries := d.store.History()
	if len(entries) == 0 {
		return noHistoryReply
	}
	lines := make([]string, 0, len(entries)+1)
	lines = append(lines, "Your recent tips:")
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("%s: %s", e.Date, e.Tip))
	}
	return strings.Join(lines, "\n")
}
