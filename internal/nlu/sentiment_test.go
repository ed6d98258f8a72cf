package nlu

import (
	"testing"

	"github.com/DineshDhasara/supportbot/internal/domain"
)

func TestAnalyzeSentiment(t *testing.T) {
	tests := []struct {
		in    string
		label domain.SentimentLabel
	}{
		{"this is great, thank you", domain.SentimentPositive},
		{"my order arrived broken and damaged", domain.SentimentNegative},
		{"where is my order", domain.SentimentNeutral},
		{"", domain.SentimentNeutral},
		// One positive and one negative word cancel out.
		{"good but broken", domain.SentimentNeutral},
	}

	for _, tt := range tests {
		got := AnalyzeSentiment(tt.in)
		if got.Label != tt.label {
			t.Errorf("AnalyzeSentiment(%q).Label = %q, want %q", tt.in, got.Label, tt.label)
		}
		if got.Confidence < 0 || got.Confidence > 1 {
			t.Errorf("AnalyzeSentiment(%q).Confidence = %v out of range", tt.in, got.Confidence)
		}
	}
}

func TestAnalyzeSentiment_ConfidenceCapped(t *testing.T) {
	got := AnalyzeSentiment("great great amazing perfect love")
	if got.Confidence != 1 {
		t.Errorf("saturated text should cap confidence at 1, got %v", got.Confidence)
	}
}

func TestAnalyzeEmotion(t *testing.T) {
	got := AnalyzeEmotion("I am so angry and frustrated right now", nil)
	if got.Primary != "angry" {
		t.Errorf("Primary = %q, want angry", got.Primary)
	}
	if got.Intensities["angry"] <= 0 {
		t.Errorf("angry intensity should be positive, got %v", got.Intensities["angry"])
	}
	if got.Sentiment.Label != domain.SentimentNegative {
		t.Errorf("Sentiment.Label = %q, want negative", got.Sentiment.Label)
	}
}

func TestAnalyzeEmotion_NoHits(t *testing.T) {
	got := AnalyzeEmotion("the weather is mild today", nil)
	// Zero total hits: every intensity is zero and the primary defaults
	// to the first taxonomy entry rather than dividing by zero.
	if got.Primary != DefaultEmotions()[0].Name {
		t.Errorf("Primary = %q, want taxonomy default %q", got.Primary, DefaultEmotions()[0].Name)
	}
	for name, v := range got.Intensities {
		if v != 0 {
			t.Errorf("intensity %q = %v, want 0", name, v)
		}
	}
}

func TestAnalyzeEmotion_Urgent(t *testing.T) {
	got := AnalyzeEmotion("I need this fixed immediately, it is urgent", nil)
	if got.Primary != "urgent" {
		t.Errorf("Primary = %q, want urgent", got.Primary)
	}
}
