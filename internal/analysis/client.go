// Package analysis wraps the hosted multimodal model behind a single Analyze
// call. The app treats this purely as an async boundary: one request, one
// markdown string back, transport failures mapped to user-facing categories.
package analysis

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/noteninja/noteninja/internal/session"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// Analyzer is what the session state machine depends on. Tests substitute
// fakes; Client is the production implementation.
type Analyzer interface {
	Analyze(ctx context.Context, audio []byte, mimeType string, mode session.Mode) (string, error)
}

// Client calls the Gemini generateContent endpoint with inline audio data.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

var _ Analyzer = (*Client)(nil)

// New builds a client. An empty baseURL selects the public endpoint.
func New(apiKey, model, baseURL string, log zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:     apiKey,
		model:      model,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 5 * time.Minute},
		log:        log,
	}
}

// Analyze submits one audio payload and returns the raw markdown report.
// Failures come back as *Error with the category the result view presents.
// There is no retry here: the caller owns recovery.
func (c *Client) Analyze(ctx context.Context, audio []byte, mimeType string, mode session.Mode) (string, error) {
	if c.apiKey == "" {
		return "", newError(CategoryUnknown, msgMissingKey, nil)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)

	reqData, err := json.Marshal(c.buildRequest(audio, mimeType, mode))
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(reqData))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.Debug().
		Str("model", c.model).
		Str("mime_type", mimeType).
		Int("audio_bytes", len(audio)).
		Str("mode", mode.String()).
		Msg("submitting audio for analysis")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", newError(CategoryUnknown, fmt.Sprintf("Engine Failure: %v", err), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", c.classifyHTTPError(resp)
	}

	return c.extractText(resp.Body)
}

// buildRequest assembles the generateContent body: inline audio plus the
// mode-dependent prompt under the fixed system instruction.
func (c *Client) buildRequest(audio []byte, mimeType string, mode session.Mode) map[string]any {
	return map[string]any{
		"contents": []map[string]any{
			{
				"role": "user",
				"parts": []map[string]any{
					{"inlineData": map[string]any{
						"mimeType": mimeType,
						"data":     base64.StdEncoding.EncodeToString(audio),
					}},
					{"text": buildPrompt(mode)},
				},
			},
		},
		"systemInstruction": map[string]any{
			"parts": []map[string]any{
				{"text": systemInstruction},
			},
		},
		"generationConfig": map[string]any{
			"temperature": 0.1,
		},
	}
}

func (c *Client) classifyHTTPError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	err := fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))

	c.log.Warn().Int("status", resp.StatusCode).Msg("analysis request failed")

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return newError(CategoryRateLimited, msgRateLimited, err)
	case resp.StatusCode == http.StatusNotFound:
		return newError(CategoryModelUnavailable, msgModelUnavailable, err)
	case strings.Contains(strings.ToLower(string(body)), "safety"):
		return newError(CategoryContentRejected, msgContentRejected, err)
	}
	return newError(CategoryUnknown, fmt.Sprintf("Engine Failure: API error (status %d)", resp.StatusCode), err)
}

func (c *Client) extractText(body io.Reader) (string, error) {
	var apiResp generateResponse
	if err := json.NewDecoder(body).Decode(&apiResp); err != nil {
		return "", newError(CategoryUnknown, fmt.Sprintf("Engine Failure: %v", err), err)
	}

	if len(apiResp.Candidates) == 0 {
		return "", newError(CategoryEmptyResponse, msgEmptyResponse, nil)
	}

	candidate := apiResp.Candidates[0]
	if strings.EqualFold(candidate.FinishReason, "SAFETY") {
		return "", newError(CategoryContentRejected, msgContentRejected, nil)
	}

	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		text.WriteString(part.Text)
	}
	if text.Len() == 0 {
		return "", newError(CategoryEmptyResponse, msgEmptyResponse, nil)
	}

	c.log.Debug().Int("markdown_bytes", text.Len()).Msg("analysis completed")
	return text.String(), nil
}

// generateContent response shape, reduced to the fields consumed here.
type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}
