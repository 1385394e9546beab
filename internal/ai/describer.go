// Package ai generates lead descriptions with an Anthropic model. The
// pipeline falls back to the derived description when generation fails,
// so this stays a best-effort enhancement.
package ai

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aktagon/llmkit/anthropic"
	"github.com/aktagon/llmkit/anthropic/types"
)

const (
	defaultModel       = "claude-sonnet-4-20250514"
	defaultMaxTokens   = 300
	defaultTemperature = 0.2

	systemPrompt = `あなたは採用ブログの編集者です。渡された記事本文を読み、` +
		`読者が記事を開きたくなるリード文を日本語で1文だけ書いてください。` +
		`120文字以内、記号や引用符は使わないこと。`
)

// Describer produces a one-sentence lead description for an article.
type Describer struct {
	apiKey      string
	model       string
	maxTokens   int
	temperature float64
}

// NewDescriber creates a Describer. The API key is a hard precondition:
// the --ai-description flag without a key must fail before any I/O.
func NewDescriber(apiKey string) (*Describer, error) {
	if apiKey == "" {
		return nil, errors.New("ANTHROPIC_API_KEY environment variable is required for AI descriptions")
	}
	return &Describer{
		apiKey:      apiKey,
		model:       defaultModel,
		maxTokens:   defaultMaxTokens,
		temperature: defaultTemperature,
	}, nil
}

// Describe asks the model for a lead description of the given article
// text.
func (d *Describer) Describe(text string) (string, error) {
	userPrompt := fmt.Sprintf("記事本文:\n%s", text)

	settings := types.RequestSettings{
		Model:       d.model,
		MaxTokens:   d.maxTokens,
		Temperature: d.temperature,
	}
	response, err := anthropic.PromptWithSettings(systemPrompt, userPrompt, "", d.apiKey, settings)
	if err != nil {
		return "", fmt.Errorf("describer prompt failed: %w", err)
	}
	if len(response.Content) == 0 {
		return "", errors.New("no content in describer response")
	}
	return strings.TrimSpace(response.Content[0].Text), nil
}
