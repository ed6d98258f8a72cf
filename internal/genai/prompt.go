package genai

import (
	"fmt"
	"strings"

	"github.com/DineshDhasara/supportbot/internal/domain"
)

const systemPrompt = `You are a customer service assistant for TechStore Pro, a technology retailer.

GUIDELINES:
- Be helpful, professional and empathetic
- Provide specific, actionable answers
- Escalate to a human agent for complex issues or when asked
- Keep responses concise (under 150 words)

POLICIES:
- Returns: 30-day return policy for items in original condition with receipt
- Shipping: free shipping on orders over $50, standard delivery 3-5 business days
- Refunds: processed within 5-7 business days to the original payment method
- Warranty: 1-year manufacturer warranty on all electronics`

// PromptContext carries the locally detected signals that steer the
// generated reply.
type PromptContext struct {
	Intent  string
	Emotion string
	Order   *domain.Order
}

// BuildPrompt assembles a single-turn prompt from the system prompt,
// recent conversation history and the detected context.
func BuildPrompt(message string, history []domain.Turn, pctx PromptContext) string {
	var sb strings.Builder
	sb.WriteString(systemPrompt)
	sb.WriteString("\n\n")

	if len(history) > 0 {
		sb.WriteString("CONVERSATION HISTORY:\n")
		for _, turn := range history {
			fmt.Fprintf(&sb, "User: %s (intent: %s)\n", turn.Message, turn.Intent)
		}
		sb.WriteString("\n")
	}

	if pctx.Intent != "" {
		fmt.Fprintf(&sb, "DETECTED INTENT: %s\n", pctx.Intent)
	}
	if pctx.Emotion != "" {
		fmt.Fprintf(&sb, "USER EMOTION: %s\n", pctx.Emotion)
	}
	if pctx.Order != nil {
		fmt.Fprintf(&sb, "ORDER CONTEXT: order %s is %s, expected delivery %s\n",
			pctx.Order.ID, pctx.Order.Status, pctx.Order.DeliveryDate)
	}

	fmt.Fprintf(&sb, "\nCURRENT USER MESSAGE: %s\n\nRespond helpfully based on the context above:", message)
	return sb.String()
}
