package nlu

import (
	"strings"

	"github.com/DineshDhasara/supportbot/internal/domain"
)

// Scoring constants. The combination shape (weighted keyword and
// utterance signals plus a low-weight character-similarity tie-break,
// then a positive confidence offset) is load-bearing: it guarantees a
// nonzero confidence even for a zero-score fallback resolution.
const (
	keywordWeight    = 0.4
	utteranceWeight  = 0.4
	semanticWeight   = 0.2
	confidenceDiv    = 3.0
	confidenceOffset = 0.2

	// defaultContextTurns is how many recent turns feed context
	// reinforcement.
	defaultContextTurns = 3

	// minSemanticTokenLen excludes short tokens from the character
	// similarity pass; two- and one-letter words are pure noise there.
	minSemanticTokenLen = 3
)

// Resolver maps normalized text plus session history onto a scored
// intent. Resolution is pure: it never mutates the session.
type Resolver struct {
	catalog      *Catalog
	contextTurns int
}

// NewResolver creates a resolver over the given catalog. contextTurns
// <= 0 selects the default window of 3.
func NewResolver(catalog *Catalog, contextTurns int) *Resolver {
	if contextTurns <= 0 {
		contextTurns = defaultContextTurns
	}
	return &Resolver{catalog: catalog, contextTurns: contextTurns}
}

// ContextWeights derives per-token weight boosts from the session's
// recent turns. A past turn whose intent carries a reinforcement set
// boosts those tokens for the current resolution pass only; nothing is
// persisted.
func (r *Resolver) ContextWeights(sess *domain.Session) map[string]float64 {
	if sess == nil || len(sess.Turns) == 0 {
		return nil
	}
	var weights map[string]float64
	for _, turn := range sess.RecentTurns(r.contextTurns) {
		def, ok := r.catalog.Get(turn.Intent)
		if !ok || def.Reinforce == nil {
			continue
		}
		if weights == nil {
			weights = make(map[string]float64)
		}
		for tok, w := range def.Reinforce {
			weights[tok] = w
		}
	}
	return weights
}

// Resolve scores every catalog intent against the message and returns
// the winner. Ties go to the earlier catalog entry (strict
// greater-than comparison). A zero best score triggers a second pass
// of raw token overlap against each intent's concatenated utterances,
// rescuing phrasings that share no literal keyword. Confidence is
// clamp(score/3 + 0.2, 0, 1); the composer caps fallback confidence
// at 0.4 downstream.
func (r *Resolver) Resolve(rawMessage string, sess *domain.Session) domain.Resolution {
	norm := Normalize(rawMessage)
	weights := r.ContextWeights(sess)

	best := domain.Resolution{Intent: domain.FallbackIntent}
	for _, def := range r.catalog.Definitions() {
		score := r.scoreIntent(rawMessage, norm, def, weights)
		if score > best.Score {
			best = domain.Resolution{Intent: def.Name, Score: score}
		}
	}

	if best.Score == 0 {
		for _, def := range r.catalog.Definitions() {
			overlap := TokenOverlap(norm, strings.Join(def.Utterances, " "), nil)
			if overlap > best.Score {
				best = domain.Resolution{Intent: def.Name, Score: overlap}
			}
		}
	}

	best.Confidence = clamp01(best.Score/confidenceDiv + confidenceOffset)
	return best
}

func (r *Resolver) scoreIntent(raw, norm string, def domain.IntentDefinition, weights map[string]float64) float64 {
	var kwScore float64
	for _, kw := range def.Keywords {
		if kw == "" || !strings.Contains(norm, kw) {
			continue
		}
		w := 1.0
		if weights != nil {
			if v, ok := weights[kw]; ok && v > 0 {
				w = v
			}
		}
		kwScore += w
	}

	var uttScore float64
	for _, u := range def.Utterances {
		if s := TokenOverlap(norm, u, weights); s > uttScore {
			uttScore = s
		}
	}

	// Regex hits count as a full-strength utterance signal; the combine
	// formula has exactly three terms, so patterns share the utterance
	// slot rather than getting a fourth weight.
	if uttScore < 1 {
		for _, p := range def.Patterns {
			if p.MatchString(raw) {
				uttScore = 1
				break
			}
		}
	}

	semScore := semanticSimilarity(norm, def)

	score := kwScore*keywordWeight + uttScore*utteranceWeight + semScore*semanticWeight
	if def.Weight > 0 {
		score *= def.Weight
	}
	return score
}

// semanticSimilarity averages pairwise character similarity between
// message tokens and utterance tokens. Deliberately low-weight: it
// only breaks ties between otherwise equal candidates.
func semanticSimilarity(norm string, def domain.IntentDefinition) float64 {
	textTokens := strings.Fields(norm)
	intentTokens := strings.Fields(strings.Join(def.Utterances, " "))
	if len(textTokens) == 0 || len(intentTokens) == 0 {
		return 0
	}

	var sum float64
	for _, tt := range textTokens {
		if len(tt) < minSemanticTokenLen {
			continue
		}
		for _, it := range intentTokens {
			if len(it) < minSemanticTokenLen {
				continue
			}
			sum += CharSimilarity(tt, it)
		}
	}
	return sum / float64(len(textTokens)*len(intentTokens))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
