package llm

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// DefaultBaseURL — OpenAI-совместимый endpoint Groq.
const DefaultBaseURL = "https://api.groq.com/openai/v1"

// GroqClient реализует Completer поверх chat completions API Groq.
type GroqClient struct {
	model string
	opts  []option.RequestOption
}

func NewGroqClient(cfg *Settings) (*GroqClient, error) {
	if cfg == nil {
		return nil, errors.New("конфигурация клиента не задана")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("не задан API-ключ")
	}
	if cfg.Model == "" {
		return nil, errors.New("не задана модель")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(baseURL),
	}
	return &GroqClient{model: cfg.Model, opts: opts}, nil
}

func (c *GroqClient) Complete(ctx context.Context, prompt string) (string, error) {
	client := openai.NewClient(c.opts...)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("ошибка при обращении к API: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("пустой ответ от API")
	}
	return resp.Choices[0].Message.Content, nil
}
