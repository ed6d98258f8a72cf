package engine

import (
	"context"
	"log/slog"

	"github.com/DineshDhasara/supportbot/internal/domain"
	"github.com/DineshDhasara/supportbot/internal/genai"
)

const (
	// generativeFallbackReply is returned when the external generation
	// call fails in any way.
	generativeFallbackReply      = "I apologize, but I'm having trouble processing your request right now. Let me connect you with a human agent who can better assist you."
	generativeFallbackConfidence = 0.3

	sourceTemplate = "template"
	sourceGemini   = "gemini"
	sourceFallback = "fallback"
)

// ReplyInput is what a strategy sees after local detection has run.
type ReplyInput struct {
	Message    string
	Composed   string
	Confidence float64
	Intent     string
	Emotion    string
	Order      *domain.Order
	History    []domain.Turn
}

// ReplyOutput is the final reply text with its confidence and source.
type ReplyOutput struct {
	Text       string
	Confidence float64
	Source     string
}

// ReplyStrategy turns a composed reply into the final one. Strategies
// never return errors; failures are absorbed into fallback output.
type ReplyStrategy interface {
	Reply(ctx context.Context, in ReplyInput) ReplyOutput
}

// TemplateStrategy answers with the composed template reply as is.
type TemplateStrategy struct{}

// Reply implements ReplyStrategy.
func (TemplateStrategy) Reply(_ context.Context, in ReplyInput) ReplyOutput {
	return ReplyOutput{Text: in.Composed, Confidence: in.Confidence, Source: sourceTemplate}
}

// GenerativeStrategy delegates reply text to the external generation
// service. Intent, entity and sentiment detection stay local; only the
// wording is delegated.
type GenerativeStrategy struct {
	Client *genai.Client
}

// Reply implements ReplyStrategy. Any failure of the external call
// resolves to a predetermined fallback reply with a low fixed
// confidence; the failure is never user-visible as an error.
func (s GenerativeStrategy) Reply(ctx context.Context, in ReplyInput) ReplyOutput {
	prompt := genai.BuildPrompt(in.Message, in.History, genai.PromptContext{
		Intent:  in.Intent,
		Emotion: in.Emotion,
		Order:   in.Order,
	})

	text, err := s.Client.Generate(ctx, prompt)
	if err != nil {
		slog.Warn("Generation call failed, using fallback reply", "intent", in.Intent, "error", err)
		return ReplyOutput{
			Text:       generativeFallbackReply,
			Confidence: generativeFallbackConfidence,
			Source:     sourceFallback,
		}
	}
	return ReplyOutput{Text: text, Confidence: in.Confidence, Source: sourceGemini}
}
