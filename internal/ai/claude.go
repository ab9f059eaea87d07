package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// DefaultModel is used when no model is configured
const DefaultModel = string(anthropic.ModelClaudeSonnet4_5_20250929)

// Translator suggests the German translation of an English word
type Translator interface {
	SuggestTranslation(english string) (string, error)
}

// ClaudeClient implements Translator using Claude API
type ClaudeClient struct {
	client  *anthropic.Client
	model   anthropic.Model
	timeout time.Duration
}

// AIError represents an error from the AI API
type AIError struct {
	Message     string
	StatusCode  int
	RequestID   string
	RawResponse string
}

func (e *AIError) Error() string {
	msg := fmt.Sprintf("AI API error (%d): %s", e.StatusCode, e.Message)
	if e.RequestID != "" {
		msg += fmt.Sprintf("\n  request-id: %s", e.RequestID)
	}
	if e.RawResponse != "" {
		msg += fmt.Sprintf("\n  raw: %s", e.RawResponse)
	}
	return msg
}

// IsAIError checks if an error is an AIError
func IsAIError(err error) bool {
	var aiErr *AIError
	return errors.As(err, &aiErr)
}

// NewClaudeClient creates a new Claude API client. An empty model selects DefaultModel.
func NewClaudeClient(apiKey, model string, opts ...option.RequestOption) (*ClaudeClient, error) {
	if err := validateAPIKey(apiKey); err != nil {
		return nil, err
	}
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}

	client := anthropic.NewClient(
		append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...,
	)

	return &ClaudeClient{
		client:  &client,
		model:   anthropic.Model(model),
		timeout: 30 * time.Second,
	}, nil
}

// SuggestTranslation asks Claude for the German translation of an English word or phrase
func (c *ClaudeClient) SuggestTranslation(english string) (string, error) {
	english = strings.TrimSpace(english)
	if english == "" {
		return "", fmt.Errorf("word cannot be empty")
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: 200,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(buildPrompt(english))),
		},
	})

	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return "", &AIError{
				Message:     apiErr.Error(),
				StatusCode:  apiErr.StatusCode,
				RequestID:   apiErr.RequestID,
				RawResponse: apiErr.RawJSON(),
			}
		}
		return "", &AIError{
			Message:    fmt.Sprintf("failed to call Claude API: %v", err),
			StatusCode: 500,
		}
	}

	var b strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			b.WriteString(block.AsText().Text)
		}
	}

	translation, err := parseTranslationResponse(b.String())
	if err != nil {
		return "", fmt.Errorf("failed to parse translation response: %w", err)
	}

	return translation, nil
}

// buildPrompt constructs the prompt for Claude
func buildPrompt(english string) string {
	return fmt.Sprintf(`You are a German language tutor. Translate the following English word or phrase into German.

Use the most common everyday translation. Write nouns without an article. Use lowercase.

Return ONLY a JSON object of the form {"translation": "..."}.

English: %s`, english)
}

// parseTranslationResponse extracts the translation from Claude's JSON response,
// handling optional markdown code block wrappers.
func parseTranslationResponse(response string) (string, error) {
	response = strings.TrimSpace(response)

	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	response = strings.TrimSpace(response)

	var payload struct {
		Translation string `json:"translation"`
	}
	if err := json.Unmarshal([]byte(response), &payload); err != nil {
		return "", fmt.Errorf("invalid JSON response: %w", err)
	}

	translation := strings.ToLower(strings.TrimSpace(payload.Translation))
	if translation == "" {
		return "", fmt.Errorf("response contains no translation")
	}

	return translation, nil
}

// validateAPIKey checks if the API key is valid
func validateAPIKey(apiKey string) error {
	if strings.TrimSpace(apiKey) == "" {
		return fmt.Errorf("API key cannot be empty")
	}
	return nil
}
