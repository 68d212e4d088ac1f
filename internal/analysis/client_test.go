package analysis

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/noteninja/noteninja/internal/session"
)

func newTestClient(url string) *Client {
	return New("test-key", "test-model", url, zerolog.Nop())
}

func TestAnalyzeSuccess(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		json.Unmarshal(data, &gotBody)
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{
					{"text": "# Summary\n"},
					{"text": "All good"},
				}}},
			},
		})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	audio := []byte{0x1a, 0x45, 0xdf, 0xa3}

	got, err := c.Analyze(context.Background(), audio, "audio/webm", session.Verbatim)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if got != "# Summary\nAll good" {
		t.Errorf("markdown = %q", got)
	}

	// Request carries the inline audio and the verbatim mode label.
	raw, _ := json.Marshal(gotBody)
	if !strings.Contains(string(raw), base64.StdEncoding.EncodeToString(audio)) {
		t.Error("request should embed base64 audio payload")
	}
	if !strings.Contains(string(raw), "Full Verbatim") {
		t.Error("request should carry the verbatim prompt label")
	}
	if !strings.Contains(string(raw), "Zero-Loss") {
		t.Error("request should carry the system instruction")
	}
}

func TestAnalyzeRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Analyze(context.Background(), []byte("x"), "audio/webm", session.CleanRead)

	var ae *Error
	if !errors.As(err, &ae) {
		t.Fatalf("err = %v, want *Error", err)
	}
	if ae.Category != CategoryRateLimited {
		t.Errorf("category = %d, want rate limited", ae.Category)
	}
	if !strings.Contains(ae.Message, "Rate Limit") {
		t.Errorf("message = %q", ae.Message)
	}
}

func TestAnalyzeModelUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Analyze(context.Background(), []byte("x"), "audio/webm", session.CleanRead)

	var ae *Error
	if !errors.As(err, &ae) || ae.Category != CategoryModelUnavailable {
		t.Fatalf("err = %v, want model-unavailable", err)
	}
}

func TestAnalyzeContentRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "Blocked by SAFETY settings"}}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Analyze(context.Background(), []byte("x"), "audio/webm", session.CleanRead)

	var ae *Error
	if !errors.As(err, &ae) || ae.Category != CategoryContentRejected {
		t.Fatalf("err = %v, want content-rejected", err)
	}
}

func TestAnalyzeSafetyFinishReason(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"finishReason": "SAFETY", "content": map[string]any{}},
			},
		})
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Analyze(context.Background(), []byte("x"), "audio/webm", session.CleanRead)

	var ae *Error
	if !errors.As(err, &ae) || ae.Category != CategoryContentRejected {
		t.Fatalf("err = %v, want content-rejected", err)
	}
}

func TestAnalyzeEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Analyze(context.Background(), []byte("x"), "audio/webm", session.CleanRead)

	var ae *Error
	if !errors.As(err, &ae) || ae.Category != CategoryEmptyResponse {
		t.Fatalf("err = %v, want empty-response", err)
	}
}

func TestAnalyzeMissingKey(t *testing.T) {
	c := New("", "test-model", "http://unused", zerolog.Nop())

	_, err := c.Analyze(context.Background(), []byte("x"), "audio/webm", session.CleanRead)
	if err == nil || !strings.Contains(err.Error(), "API Key not initialized") {
		t.Fatalf("err = %v, want missing-key failure", err)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(newError(CategoryRateLimited, msgRateLimited, nil)); got != msgRateLimited {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(errors.New("socket closed")); !strings.Contains(got, "Engine Failure") {
		t.Errorf("UserMessage = %q", got)
	}
}
