package genai

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DineshDhasara/supportbot/internal/domain"
)

func candidateJSON(text string) string {
	return `{"candidates":[{"content":{"parts":[{"text":"` + text + `"}]}}]}`
}

func TestClient_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if !strings.Contains(r.URL.Path, ":generateContent") {
			t.Errorf("path = %s, want generateContent suffix", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("missing api key in query")
		}
		w.Write([]byte(candidateJSON("Happy to help with that.")))
	}))
	defer srv.Close()

	c := NewClient("test-key", WithEndpoint(srv.URL))
	got, err := c.Generate(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "Happy to help with that." {
		t.Errorf("Generate = %q", got)
	}
}

func TestClient_NotConfigured(t *testing.T) {
	c := NewClient("")
	if c.Configured() {
		t.Error("Configured() = true with empty key")
	}
	if _, err := c.Generate(context.Background(), "hi"); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("err = %v, want ErrNotConfigured", err)
	}
}

func TestClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient("k", WithEndpoint(srv.URL))
	if _, err := c.Generate(context.Background(), "hi"); !errors.Is(err, ErrRequestFailed) {
		t.Errorf("err = %v, want ErrRequestFailed", err)
	}
}

func TestClient_EmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	c := NewClient("k", WithEndpoint(srv.URL))
	if _, err := c.Generate(context.Background(), "hi"); !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("err = %v, want ErrEmptyResponse", err)
	}
}

func TestClient_MalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	c := NewClient("k", WithEndpoint(srv.URL))
	if _, err := c.Generate(context.Background(), "hi"); err == nil {
		t.Error("expected decode error for malformed payload")
	}
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(candidateJSON("late")))
	}))
	defer srv.Close()

	c := NewClient("k", WithEndpoint(srv.URL), WithTimeout(20*time.Millisecond))
	if _, err := c.Generate(context.Background(), "hi"); err == nil {
		t.Error("expected timeout error")
	}
}

func TestBuildPrompt(t *testing.T) {
	history := []domain.Turn{
		{Message: "where is my order", Intent: "order_status"},
	}
	order := &domain.Order{ID: "ORD1001", Status: "Shipped", DeliveryDate: "2025-01-15"}

	prompt := BuildPrompt("is it late?", history, PromptContext{
		Intent:  "order_status",
		Emotion: "urgent",
		Order:   order,
	})

	for _, want := range []string{
		"where is my order",
		"DETECTED INTENT: order_status",
		"USER EMOTION: urgent",
		"ORD1001",
		"CURRENT USER MESSAGE: is it late?",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildPrompt_NoContext(t *testing.T) {
	prompt := BuildPrompt("hello", nil, PromptContext{})
	if strings.Contains(prompt, "CONVERSATION HISTORY") {
		t.Error("empty history should not emit a history section")
	}
	if !strings.Contains(prompt, "CURRENT USER MESSAGE: hello") {
		t.Error("prompt missing current message")
	}
}
