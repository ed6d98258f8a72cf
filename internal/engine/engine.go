// Package engine is the message processor: it runs local detection
// (intent, entities, sentiment), composes a reply through a pluggable
// strategy and maintains per-session conversation state.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/DineshDhasara/supportbot/internal/analytics"
	"github.com/DineshDhasara/supportbot/internal/domain"
	"github.com/DineshDhasara/supportbot/internal/nlu"
	"github.com/DineshDhasara/supportbot/internal/orders"
	"github.com/DineshDhasara/supportbot/internal/session"
)

// ProcessingErrorCode marks results produced after an internal failure.
const ProcessingErrorCode = "PROCESSING_ERROR"

const historyForPrompt = 5

// Request is one inbound chat message. Field validation is the
// transport layer's responsibility.
type Request struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

// Engine composes the resolver, session store, order catalog and reply
// strategy into the single processing pipeline.
type Engine struct {
	resolver   *nlu.Resolver
	store      session.Store
	catalog    orders.Catalog
	tracker    *analytics.Tracker
	strategy   ReplyStrategy
	templates  map[string]string
	historyCap int
}

// New creates an Engine. historyCap bounds per-session turn history.
func New(resolver *nlu.Resolver, store session.Store, catalog orders.Catalog, tracker *analytics.Tracker, strategy ReplyStrategy, historyCap int) *Engine {
	return &Engine{
		resolver:   resolver,
		store:      store,
		catalog:    catalog,
		tracker:    tracker,
		strategy:   strategy,
		templates:  defaultTemplates,
		historyCap: historyCap,
	}
}

// Process runs one message through the pipeline:
// detect → resolve → compose → reply → commit session update.
// The session update is atomic; a failed or cancelled request leaves
// the session untouched.
func (e *Engine) Process(ctx context.Context, req Request) (*domain.Result, error) {
	start := time.Now()

	sentiment := nlu.AnalyzeSentiment(req.Message)
	emotion := nlu.AnalyzeEmotion(req.Message, nil)
	orderID := nlu.FindOrderID(req.Message)

	var result *domain.Result
	err := e.store.Do(ctx, req.SessionID, func(sess *domain.Session) error {
		returning := sess.Profile.MessageCount > 1
		res := e.resolver.Resolve(req.Message, sess)

		var order *domain.Order
		if res.Intent == "order_status" && orderID != "" {
			var lookupErr error
			order, lookupErr = e.catalog.GetOrder(ctx, orderID)
			if lookupErr != nil {
				return fmt.Errorf("order lookup %s: %w", orderID, lookupErr)
			}
		}

		comp := e.compose(res, orderID, order, sentiment, returning)

		out := e.strategy.Reply(ctx, ReplyInput{
			Message:    req.Message,
			Composed:   comp.reply,
			Confidence: comp.confidence,
			Intent:     res.Intent,
			Emotion:    emotion.Primary,
			Order:      order,
			History:    sess.RecentTurns(historyForPrompt),
		})

		sess.Observe(domain.Turn{
			Message:    req.Message,
			Intent:     res.Intent,
			Confidence: out.Confidence,
			Timestamp:  time.Now(),
		}, e.historyCap)

		result = &domain.Result{
			Reply:      out.Text,
			Intent:     res.Intent,
			Confidence: out.Confidence,
			Metadata: domain.Metadata{
				SessionID:       req.SessionID,
				Sentiment:       sentiment.Label,
				SentimentScore:  sentiment.Score,
				ProcessingTime:  time.Since(start).Milliseconds(),
				IsReturningUser: returning,
				Order:           order,
				TicketID:        comp.ticketID,
				Source:          out.Source,
			},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.tracker.Record(result.Intent, result.Confidence)
	slog.Info("Processed message",
		"session_id", req.SessionID,
		"intent", result.Intent,
		"confidence", result.Confidence,
		"sentiment", sentiment.Label,
		"duration_ms", result.Metadata.ProcessingTime)

	return result, nil
}

// ProcessBatch runs an ordered list of messages for one session
// sequentially so each message sees the context left by the previous
// one. A failed message yields a failure result and processing
// continues; the output always has one record per input in order.
func (e *Engine) ProcessBatch(ctx context.Context, sessionID string, messages []string) []*domain.Result {
	results := make([]*domain.Result, 0, len(messages))
	for _, msg := range messages {
		res, err := e.Process(ctx, Request{SessionID: sessionID, Message: msg})
		if err != nil {
			slog.Error("Batch message failed", "session_id", sessionID, "error", err)
			res = FailureResult(sessionID)
		}
		results = append(results, res)
	}
	return results
}

// Profile returns a snapshot of the session's derived profile.
func (e *Engine) Profile(sessionID string) (domain.UserProfile, bool) {
	sess, ok := e.store.Get(sessionID)
	if !ok {
		return domain.UserProfile{}, false
	}
	return sess.Profile, true
}

// Analytics returns the aggregate counters without mutating state.
func (e *Engine) Analytics() analytics.Snapshot {
	return e.tracker.Snapshot(e.store.Count())
}

// FailureResult is the caller-facing reply when processing fails
// internally. The user always gets an apologetic reply, never a raw
// error.
func FailureResult(sessionID string) *domain.Result {
	return &domain.Result{
		Reply:      "I'm experiencing technical difficulties right now. Please try again in a moment.",
		Intent:     domain.FallbackIntent,
		Confidence: 0.1,
		Metadata: domain.Metadata{
			SessionID: sessionID,
			Sentiment: domain.SentimentNeutral,
			ErrorCode: ProcessingErrorCode,
		},
	}
}
