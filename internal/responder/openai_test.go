package responder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGenerateReturnsFirstChoice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q, want bearer test-key", got)
		}
		var req completionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if !strings.Contains(req.Prompt, "hello there") {
			t.Errorf("prompt missing last message: %q", req.Prompt)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]string{{"text": "  hi, how's it going?  "}},
		})
	}))
	defer srv.Close()

	c := New(Config{Endpoint: srv.URL, APIKey: "test-key", Model: "test-model"})
	got, err := c.Generate(context.Background(), "hello there", []string{"earlier reply"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got != "hi, how's it going?" {
		t.Fatalf("Generate() = %q", got)
	}
}

func TestGenerateErrorOnBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New(Config{Endpoint: srv.URL})
	if _, err := c.Generate(context.Background(), "hi", nil); err == nil {
		t.Fatal("Generate() expected error, got nil")
	}
}

func TestGenerateErrorOnEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := New(Config{Endpoint: srv.URL})
	if _, err := c.Generate(context.Background(), "hi", nil); err == nil {
		t.Fatal("Generate() expected error, got nil")
	}
}

func TestFallbackLineNeverEmpty(t *testing.T) {
	for i := 0; i < 20; i++ {
		if FallbackLine() == "" {
			t.Fatal("FallbackLine() returned empty string")
		}
	}
}
