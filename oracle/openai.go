// Package oracle wraps the OpenAI chat-completions API for the two text
// tasks the game needs: generating a hint for a solo and judging whether a
// free-text guess matches a title. Both degrade gracefully when the API is
// unconfigured or unreachable.
package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"shredle/metrics"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-3.5-turbo"

	// requestTimeout bounds every oracle call; a timeout degrades exactly
	// like a hard failure.
	requestTimeout = 10 * time.Second

	hintFallback = "This track features a memorable guitar part that has influenced many musicians."
)

// ErrNotConfigured is returned by JudgeGuess when no API key is set.
var ErrNotConfigured = errors.New("oracle: no API key configured")

// Client is an OpenAI chat-completions client.
type Client struct {
	APIKey  string
	Model   string
	BaseURL string

	httpc *http.Client
}

func New(apiKey, model string) *Client {
	if model == "" {
		model = defaultModel
	}
	return &Client{
		APIKey:  apiKey,
		Model:   model,
		BaseURL: defaultBaseURL,
		httpc:   &http.Client{Timeout: requestTimeout},
	}
}

// Configured reports whether the client can reach the API at all.
func (c *Client) Configured() bool {
	return c != nil && c.APIKey != ""
}

// GenerateHint produces a 2-3 sentence hint about the song without naming
// it. It never fails: on any oracle problem it returns a generic non-empty
// placeholder so the UI never shows a blank hint.
func (c *Client) GenerateHint(ctx context.Context, title, artist, guitarist string) string {
	if !c.Configured() {
		return hintFallback
	}

	system := "You are a music expert who creates clever hints about songs and their guitar solos without giving away the song title directly."
	prompt := fmt.Sprintf(
		"Generate a clever hint about the song '%s' by %s, featuring guitar work by %s. "+
			"The hint should be intriguing but not too obvious, focusing on interesting facts about the song, "+
			"its cultural impact, or distinctive elements of the guitar solo. Keep it to one short paragraph (2-3 sentences).",
		title, artist, guitarist)

	start := time.Now()
	text, err := c.complete(ctx, system, prompt, 100, 0.7)
	metrics.RecordOracleRequest("hint", start)
	if err != nil {
		log.Printf("Hint generation failed for '%s': %v", title, err)
		metrics.OracleFallbacks.WithLabelValues("hint").Inc()
		return hintFallback
	}
	if strings.TrimSpace(text) == "" {
		return hintFallback
	}
	return strings.TrimSpace(text)
}

// JudgeGuess asks the model whether guess names the same song as title. The
// model's reply is reduced to a boolean by looking for an affirmative token.
// Errors are returned so the caller can fall back to local matching.
func (c *Client) JudgeGuess(ctx context.Context, guess, title, artist string) (bool, error) {
	if !c.Configured() {
		return false, ErrNotConfigured
	}

	prompt := fmt.Sprintf(
		"Does the guess '%s' match the song '%s' by %s? "+
			"Accept translations of the title into other languages, common abbreviations and variants, "+
			"and minor misspellings, but reject different songs. Respond with only 'true' or 'false'.",
		guess, title, artist)

	start := time.Now()
	text, err := c.complete(ctx, "", prompt, 10, 0)
	metrics.RecordOracleRequest("judge", start)
	if err != nil {
		return false, err
	}
	return strings.Contains(strings.ToLower(text), "true"), nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// complete performs one chat-completions round trip and returns the first
// choice's content.
func (c *Client) complete(ctx context.Context, system, user string, maxTokens int, temperature float64) (string, error) {
	messages := make([]chatMessage, 0, 2)
	if system != "" {
		messages = append(messages, chatMessage{Role: "system", Content: system})
	}
	messages = append(messages, chatMessage{Role: "user", Content: user})

	payload, err := json.Marshal(chatRequest{
		Model:       c.Model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("openai %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("openai: bad JSON: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("openai: empty choices")
	}
	return parsed.Choices[0].Message.Content, nil
}
