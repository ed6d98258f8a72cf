package engine

import (
	"fmt"
	"strings"

	"github.com/lithammer/shortuuid/v4"

	"github.com/DineshDhasara/supportbot/internal/domain"
)

// defaultTemplates maps intent names to reply templates. Slots use
// {name} placeholders; unmatched slots stay in the output verbatim.
var defaultTemplates = map[string]string{
	"greeting":          "Hello! How can I help you today?",
	"order_status":      "Order {orderId} is currently {status}. Expected delivery: {deliveryDate}.",
	"refund":            "I can help with a refund for {orderId}. Refunds are processed within 5-7 business days once approved.",
	"complaint":         "I'm sorry to hear that. Could you share more details so I can help resolve this?",
	"technical_support": "Let's get that sorted out. Could you describe exactly what happens when the problem occurs?",
	"human_escalation":  "I've created support ticket {ticketId}. A human agent will reach out to you shortly.",
	"thanks":            "You're welcome! Anything else I can help with?",
	domain.FallbackIntent: "I'm not sure how to help with that. You can ask me about orders, refunds, returns or technical issues.",
}

const (
	empathyPrefix     = "I understand you're frustrated. "
	welcomeBackPrefix = "Welcome back! "

	escalationFallbackReply = "I understand you're having an issue. Let me connect you with a human agent who can better assist you."

	escalationConfidence  = 0.95
	orderFoundConfidence  = 0.9
	orderMissConfidence   = 0.6
	fallbackConfidenceCap = 0.4

	ticketPrefix = "TCK-"
)

// FillTemplate substitutes {name} placeholders with slot values.
// Unmatched placeholders are left verbatim.
func FillTemplate(template string, slots map[string]string) string {
	out := template
	for k, v := range slots {
		out = strings.ReplaceAll(out, "{"+k+"}", v)
	}
	return out
}

// NewTicketID returns an opaque support-ticket identifier. Uniqueness
// across a run is best-effort.
func NewTicketID() string {
	suffix := strings.ToUpper(shortuuid.New())
	if len(suffix) > 6 {
		suffix = suffix[:6]
	}
	return ticketPrefix + suffix
}

// composition is the template-composed reply plus any confidence
// override and side metadata the composer produced.
type composition struct {
	reply      string
	confidence float64
	ticketID   string
}

// compose maps a resolution plus extracted entities and sentiment into
// a reply. order is non-nil only when the caller found the extracted
// order ID in the catalog.
func (e *Engine) compose(res domain.Resolution, orderID string, order *domain.Order, sent domain.Sentiment, returning bool) composition {
	c := composition{confidence: res.Confidence}
	negative := sent.Label == domain.SentimentNegative

	switch res.Intent {
	case "greeting":
		if returning {
			c.reply = "Welcome back! How can I help you today?"
		} else {
			c.reply = e.templates["greeting"]
		}

	case "order_status":
		switch {
		case order != nil:
			c.reply = decorate(FillTemplate(e.templates["order_status"], map[string]string{
				"orderId":      order.ID,
				"status":       order.Status,
				"deliveryDate": order.DeliveryDate,
			}), negative, returning)
			// Monotonic: never lowers an already higher confidence.
			if c.confidence < orderFoundConfidence {
				c.confidence = orderFoundConfidence
			}
		case orderID != "":
			c.reply = fmt.Sprintf("I couldn't find order %s. Please verify the order ID or try asking without it.", orderID)
			c.confidence = orderMissConfidence
		default:
			c.reply = "I'd be happy to check your order status! Please provide your order ID (e.g., ORD1001)."
		}

	case "refund":
		slot := orderID
		if slot == "" {
			slot = "your order"
		}
		c.reply = decorate(FillTemplate(e.templates["refund"], map[string]string{"orderId": slot}), negative, returning)

	case "complaint":
		c.reply = e.templates["complaint"]
		if negative {
			c.reply = "I sincerely apologize for the trouble you're experiencing. " + c.reply
		}

	case "human_escalation":
		c.ticketID = NewTicketID()
		c.reply = decorate(FillTemplate(e.templates["human_escalation"], map[string]string{"ticketId": c.ticketID}), negative, returning)
		c.confidence = escalationConfidence

	case "technical_support":
		c.reply = decorate(e.templates["technical_support"], negative, returning)

	case "thanks":
		c.reply = e.templates["thanks"]

	default:
		if negative {
			c.reply = escalationFallbackReply
		} else {
			c.reply = e.templates[domain.FallbackIntent]
		}
		if c.confidence > fallbackConfidenceCap {
			c.confidence = fallbackConfidenceCap
		}
	}

	return c
}

// decorate prepends the empathy and welcome-back phrases. Both are
// prefix compositions; the core answer is never replaced.
func decorate(reply string, negative, returning bool) string {
	if negative {
		reply = empathyPrefix + reply
	}
	if returning {
		reply = welcomeBackPrefix + reply
	}
	return reply
}
