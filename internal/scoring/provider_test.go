package scoring

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amberin/jobradar/internal/model"
)

func TestInvokeChatCompletionShape(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &gotBody)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices": [{"message": {"content": "{\"score\": 8, \"reason\": \"good\"}"}}]}`))
	}))
	defer srv.Close()

	client := NewClient(Options{
		Provider:    ProviderGroq,
		APIKey:      "test-key",
		BaseURL:     srv.URL,
		Model:       "llama-3.3-70b-versatile",
		Temperature: 0.2,
	}, srv.Client(), nil)

	content, err := client.Invoke(context.Background(), "score this", "you are a recruiter")
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if content != `{"score": 8, "reason": "good"}` {
		t.Errorf("unexpected content: %s", content)
	}

	if gotPath != "/chat/completions" {
		t.Errorf("expected /chat/completions, got %s", gotPath)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("expected bearer auth, got %q", gotAuth)
	}
	if gotBody["model"] != "llama-3.3-70b-versatile" {
		t.Errorf("unexpected model in body: %v", gotBody["model"])
	}

	msgs, ok := gotBody["messages"].([]any)
	if !ok || len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %v", gotBody["messages"])
	}
	first := msgs[0].(map[string]any)
	if first["role"] != "system" || first["content"] != "you are a recruiter" {
		t.Errorf("unexpected system message: %v", first)
	}
	second := msgs[1].(map[string]any)
	if second["role"] != "user" || second["content"] != "score this" {
		t.Errorf("unexpected user message: %v", second)
	}
}

func TestInvokeAnthropicShape(t *testing.T) {
	var gotPath, gotAPIKey, gotVersion string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAPIKey = r.Header.Get("x-api-key")
		gotVersion = r.Header.Get("anthropic-version")
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &gotBody)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"content": [{"type": "text", "text": "{\"score\": 6, \"reason\": \"partial\"}"}]}`))
	}))
	defer srv.Close()

	client := NewClient(Options{
		Provider: ProviderAnthropic,
		APIKey:   "anthro-key",
		BaseURL:  srv.URL,
		Model:    "claude-3-5-haiku-latest",
	}, srv.Client(), nil)

	content, err := client.Invoke(context.Background(), "score this", "you are a recruiter")
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if content != `{"score": 6, "reason": "partial"}` {
		t.Errorf("unexpected content: %s", content)
	}

	if gotPath != "/v1/messages" {
		t.Errorf("expected /v1/messages, got %s", gotPath)
	}
	if gotAPIKey != "anthro-key" {
		t.Errorf("expected x-api-key header, got %q", gotAPIKey)
	}
	if gotVersion != anthropicVersion {
		t.Errorf("expected anthropic-version %s, got %q", anthropicVersion, gotVersion)
	}

	// System prompt is a top-level field, not a message.
	if gotBody["system"] != "you are a recruiter" {
		t.Errorf("unexpected system field: %v", gotBody["system"])
	}
	if gotBody["max_tokens"] == nil {
		t.Error("expected max_tokens to be set")
	}
	msgs, ok := gotBody["messages"].([]any)
	if !ok || len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %v", gotBody["messages"])
	}
}

func TestInvokeNon200IsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": "rate limited"}`))
	}))
	defer srv.Close()

	client := NewClient(Options{
		Provider: ProviderOpenAI,
		APIKey:   "k",
		BaseURL:  srv.URL,
		Model:    "gpt-4o-mini",
	}, srv.Client(), nil)

	_, err := client.Invoke(context.Background(), "p", "s")
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var terr *model.TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("expected TransportError, got %T: %v", err, err)
	}
	if terr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("expected status 429, got %d", terr.StatusCode)
	}
}

func TestInvokeEmptyContentIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices": [{"message": {"content": ""}}]}`))
	}))
	defer srv.Close()

	client := NewClient(Options{
		Provider: ProviderOpenRouter,
		APIKey:   "k",
		BaseURL:  srv.URL,
		Model:    "openai/gpt-4o-mini",
	}, srv.Client(), nil)

	_, err := client.Invoke(context.Background(), "p", "s")
	if err == nil {
		t.Fatal("expected error for empty content, got nil")
	}
}

func TestInvokeUnknownProvider(t *testing.T) {
	client := NewClient(Options{Provider: "mystery"}, http.DefaultClient, nil)
	if _, err := client.Invoke(context.Background(), "p", "s"); err == nil {
		t.Fatal("expected error for unknown provider, got nil")
	}
}

func TestKnownProvider(t *testing.T) {
	for _, p := range []Provider{ProviderOpenAI, ProviderOpenRouter, ProviderGroq, ProviderAnthropic} {
		if !KnownProvider(p) {
			t.Errorf("expected %s to be known", p)
		}
	}
	if KnownProvider("mystery") {
		t.Error("expected mystery provider to be unknown")
	}
}
