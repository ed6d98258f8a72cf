package nlu

import (
	"strings"

	"github.com/DineshDhasara/supportbot/internal/domain"
)

// sentimentScale converts the lexicon hit ratio into a confidence
// figure. Heuristic, not a probability.
const sentimentScale = 5.0

var positiveWords = map[string]struct{}{
	"good": {}, "great": {}, "excellent": {}, "happy": {}, "satisfied": {},
	"love": {}, "amazing": {}, "perfect": {}, "thank": {}, "wonderful": {},
}

var negativeWords = map[string]struct{}{
	"bad": {}, "terrible": {}, "awful": {}, "hate": {}, "angry": {},
	"frustrated": {}, "disappointed": {}, "broken": {}, "damaged": {},
	"problem": {}, "wrong": {},
}

// AnalyzeSentiment sums +1 per positive-lexicon token and -1 per
// negative-lexicon token over the normalized text. The label is the
// sign of the sum (neutral on zero).
func AnalyzeSentiment(text string) domain.Sentiment {
	words := Tokens(text)
	if len(words) == 0 {
		return domain.Sentiment{Label: domain.SentimentNeutral}
	}

	score := 0
	for _, w := range words {
		if _, ok := positiveWords[w]; ok {
			score++
		}
		if _, ok := negativeWords[w]; ok {
			score--
		}
	}

	label := domain.SentimentNeutral
	switch {
	case score > 0:
		label = domain.SentimentPositive
	case score < 0:
		label = domain.SentimentNegative
	}

	abs := score
	if abs < 0 {
		abs = -abs
	}
	conf := float64(abs) / float64(len(words)) * sentimentScale
	if conf > 1 {
		conf = 1
	}
	return domain.Sentiment{Score: score, Label: label, Confidence: conf}
}

// EmotionClass pairs an emotion name with its trigger lexicon.
type EmotionClass struct {
	Name    string
	Lexicon []string
}

// DefaultEmotions is the built-in taxonomy. Order matters: the first
// entry is the default primary emotion when no lexicon entry matches.
func DefaultEmotions() []EmotionClass {
	return []EmotionClass{
		{Name: "angry", Lexicon: []string{"angry", "furious", "mad", "frustrated", "annoyed", "upset"}},
		{Name: "sad", Lexicon: []string{"sad", "disappointed", "unhappy", "depressed", "down"}},
		{Name: "happy", Lexicon: []string{"happy", "great", "awesome", "excellent", "wonderful", "amazing"}},
		{Name: "confused", Lexicon: []string{"confused", "lost", "unclear", "dont understand", "help"}},
		{Name: "urgent", Lexicon: []string{"urgent", "asap", "immediately", "emergency", "critical", "now"}},
	}
}

// AnalyzeEmotion counts lexicon hits per emotion class and normalizes
// by the total across all classes. When nothing matches, every
// intensity is zero and the primary defaults to the taxonomy's first
// entry, which avoids a divide-by-zero.
func AnalyzeEmotion(text string, taxonomy []EmotionClass) domain.Emotion {
	if len(taxonomy) == 0 {
		taxonomy = DefaultEmotions()
	}

	norm := Normalize(text)
	hits := make(map[string]int, len(taxonomy))
	total := 0
	for _, class := range taxonomy {
		n := 0
		for _, entry := range class.Lexicon {
			if strings.Contains(norm, entry) {
				n++
			}
		}
		hits[class.Name] = n
		total += n
	}

	intensities := make(map[string]float64, len(taxonomy))
	primary := taxonomy[0].Name
	best := 0.0
	for _, class := range taxonomy {
		v := 0.0
		if total > 0 {
			v = float64(hits[class.Name]) / float64(total)
		}
		intensities[class.Name] = v
		if v > best {
			best = v
			primary = class.Name
		}
	}

	return domain.Emotion{
		Primary:     primary,
		Intensities: intensities,
		Sentiment:   AnalyzeSentiment(text),
	}
}
