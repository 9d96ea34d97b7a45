package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// requestTimeout bounds one status request. The console shows a
// spinner while waiting; a hung request must not hold the in-flight
// flag forever.
const requestTimeout = 15 * time.Second

// Gemini implements Client on the Google GenAI API.
type Gemini struct {
	client *genai.Client
	model  string
}

var _ Client = (*Gemini)(nil)

// NewGemini builds the client, failing fast with a *ConfigError when
// the credential is empty.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, &ConfigError{Reason: "no API key (set GEMINI_API_KEY or api_key in the config file)"}
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Gemini{client: client, model: model}, nil
}

// StatusLine sends one prompt and returns the trimmed response text.
// Every failure mode, including an empty response, comes back as a
// *RequestError.
func (g *Gemini) StatusLine(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", &RequestError{Cause: err}
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", &RequestError{Cause: errors.New("empty response")}
	}
	return text, nil
}
