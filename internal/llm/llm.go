// Package llm abstracts the chat models used to write the daily
// digest and to fill the news page templates.
package llm

import (
	"context"
	"fmt"
)

type Client interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// New selects a provider by name. The openai provider also serves
// OpenAI-compatible endpoints (DeepSeek and similar) via baseURL.
func New(provider, apiKey, model, baseURL string) (Client, error) {
	switch provider {
	case "groq":
		return NewGroqClient(apiKey, model)
	case "openai", "deepseek":
		return NewOpenAIClient(apiKey, model, baseURL), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", provider)
	}
}
