// Package domain defines the core data model for the chatbot engine.
package domain

import "regexp"

// SentimentLabel classifies message polarity.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNegative SentimentLabel = "negative"
	SentimentNeutral  SentimentLabel = "neutral"
)

// FallbackIntent is the reserved intent name used when no catalog
// intent matches. It is always a valid resolution target.
const FallbackIntent = "fallback"

// IntentDefinition describes one named intent in the catalog.
// Definitions are immutable after load; the catalog order is the
// documented tie-break order for resolution.
type IntentDefinition struct {
	// Name is the unique intent key, e.g. "order_status".
	Name string
	// Keywords are matched as substrings of the normalized text.
	Keywords []string
	// Utterances are canned example phrases used for overlap scoring.
	Utterances []string
	// Patterns optionally match against the raw (un-normalized) message.
	Patterns []*regexp.Regexp
	// Weight multiplies the combined score. Zero means 1.0.
	Weight float64
	// Reinforce maps tokens to boosted weights applied to subsequent
	// resolutions when this intent appears in recent session history.
	Reinforce map[string]float64
}

// Resolution is the outcome of one intent-resolution pass.
// Transient: only Intent and Confidence are persisted into a Turn.
type Resolution struct {
	Intent     string
	Score      float64
	Confidence float64
}

// Sentiment is a lexicon-based polarity estimate. Confidence is a
// heuristic in [0,1], not a calibrated probability.
type Sentiment struct {
	Score      int            `json:"score"`
	Label      SentimentLabel `json:"label"`
	Confidence float64        `json:"confidence"`
}

// Emotion is a lexicon-based primary-emotion estimate over a small
// configurable taxonomy.
type Emotion struct {
	Primary     string             `json:"primary"`
	Intensities map[string]float64 `json:"intensities"`
	Sentiment   Sentiment          `json:"sentiment"`
}

// OrderItem is one line item of an order.
type OrderItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Order is a record from the injected order catalog.
type Order struct {
	ID           string      `json:"id"`
	Status       string      `json:"status"`
	DeliveryDate string      `json:"deliveryDate"`
	Items        []OrderItem `json:"items"`
	Total        float64     `json:"total"`
}

// Metadata carries per-message auxiliary output alongside the reply.
type Metadata struct {
	SessionID       string         `json:"sessionId"`
	Sentiment       SentimentLabel `json:"sentiment"`
	SentimentScore  int            `json:"sentimentScore"`
	ProcessingTime  int64          `json:"processingTime"`
	IsReturningUser bool           `json:"isReturningUser"`
	Order           *Order         `json:"order,omitempty"`
	TicketID        string         `json:"ticketId,omitempty"`
	ErrorCode       string         `json:"errorCode,omitempty"`
	Source          string         `json:"source,omitempty"`
}

// Result is the caller-facing output for one processed message.
type Result struct {
	Reply      string   `json:"reply"`
	Intent     string   `json:"intent"`
	Confidence float64  `json:"confidence"`
	Metadata   Metadata `json:"metadata"`
}
