package nlu

import (
	"fmt"
	"regexp"

	"github.com/DineshDhasara/supportbot/internal/domain"
)

// Catalog is an ordered, immutable table of intent definitions. The
// slice order is the resolution tie-break order: with strict
// greater-than comparison the earlier intent wins a tied score.
type Catalog struct {
	defs  []domain.IntentDefinition
	index map[string]int
}

// NewCatalog validates that intent names are unique and builds the
// lookup index. The reserved fallback name may not be redefined.
func NewCatalog(defs []domain.IntentDefinition) (*Catalog, error) {
	index := make(map[string]int, len(defs))
	for i, def := range defs {
		if def.Name == "" {
			return nil, fmt.Errorf("intent at position %d has no name", i)
		}
		if def.Name == domain.FallbackIntent {
			return nil, fmt.Errorf("intent name %q is reserved", domain.FallbackIntent)
		}
		if _, dup := index[def.Name]; dup {
			return nil, fmt.Errorf("duplicate intent name %q", def.Name)
		}
		index[def.Name] = i
	}
	return &Catalog{defs: defs, index: index}, nil
}

// Definitions returns the catalog in resolution order.
func (c *Catalog) Definitions() []domain.IntentDefinition {
	return c.defs
}

// Get looks up a definition by name.
func (c *Catalog) Get(name string) (domain.IntentDefinition, bool) {
	i, ok := c.index[name]
	if !ok {
		return domain.IntentDefinition{}, false
	}
	return c.defs[i], true
}

// DefaultCatalog returns the built-in customer-service intent table.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog([]domain.IntentDefinition{
		{
			Name:     "greeting",
			Keywords: []string{"hello", "hi", "hey", "good morning", "good evening", "greetings"},
			Utterances: []string{
				"hello there",
				"hi",
				"good morning",
				"hey how are you",
			},
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)^(hi|hello|hey)\b`),
				regexp.MustCompile(`(?i)good\s+(morning|afternoon|evening)`),
			},
		},
		{
			Name:     "order_status",
			Keywords: []string{"order", "track", "status", "delivery", "shipped"},
			Utterances: []string{
				"where is my order",
				"track my order",
				"order status",
				"has my order shipped",
				"when will my order arrive",
			},
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)order\s*#?\w+`),
				regexp.MustCompile(`(?i)track.*order`),
				regexp.MustCompile(`(?i)where.*order`),
			},
			Reinforce: map[string]float64{"order": 2, "status": 2, "track": 2},
		},
		{
			Name:     "complaint",
			Keywords: []string{"problem", "issue", "broken", "damaged", "defective", "complaint", "wrong"},
			Utterances: []string{
				"i have a problem",
				"my item arrived broken",
				"this product is damaged",
				"the item is not working",
			},
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)not\s+working`),
				regexp.MustCompile(`(?i)broken|damaged|defective`),
			},
		},
		{
			Name:     "refund",
			Keywords: []string{"refund", "return", "money back", "cancel", "reimburse"},
			Utterances: []string{
				"i want a refund",
				"return this item",
				"give me my money back",
				"cancel my order",
			},
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)want.*refund`),
				regexp.MustCompile(`(?i)money\s+back`),
			},
			Reinforce: map[string]float64{"refund": 2, "return": 2, "money": 2},
		},
		{
			Name:     "technical_support",
			Keywords: []string{"support", "how to", "tutorial", "guide", "instructions"},
			Utterances: []string{
				"i need help setting this up",
				"how do i install this",
				"can you help me with setup",
				"technical support please",
			},
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)how\s+do\s+i`),
				regexp.MustCompile(`(?i)need\s+help`),
			},
		},
		{
			Name:     "human_escalation",
			Keywords: []string{"human", "agent", "representative", "speak to someone"},
			Utterances: []string{
				"speak to a human",
				"talk to a person",
				"i want a human agent",
				"connect me to a representative",
			},
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)speak.*human`),
				regexp.MustCompile(`(?i)talk.*person`),
				regexp.MustCompile(`(?i)human\s+agent`),
			},
		},
		{
			Name:     "thanks",
			Keywords: []string{"thanks", "thank you", "appreciate"},
			Utterances: []string{
				"thank you",
				"thanks a lot",
				"appreciate it",
			},
		},
	})
	if err != nil {
		// The built-in table is static; a failure here is a programming error.
		panic(err)
	}
	return c
}
