package sentiment

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type chatClient interface {
	CreateChatCompletion(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error)
}

// OpenAIScorer asks an LLM for a news sentiment score per symbol. Scores
// are clamped into [-0.5, 0.5]; any failure falls back to the seeded
// placeholder so the lookup never fails the prediction pipeline.
type OpenAIScorer struct {
	client   chatClient
	model    string
	fallback *Seeded
}

// NewOpenAIScorer returns nil when no API key is configured, which makes
// callers fall through to the seeded source.
func NewOpenAIScorer(apiKey, model string) *OpenAIScorer {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil
	}
	if strings.TrimSpace(model) == "" {
		model = "gpt-4o-mini"
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIScorer{
		client:   &openAIClient{client: client},
		model:    model,
		fallback: NewSeeded(),
	}
}

func (s *OpenAIScorer) Score(ctx context.Context, symbol string) float64 {
	if s == nil || s.client == nil {
		return NewSeeded().Score(ctx, symbol)
	}

	systemPrompt := "You score recent news sentiment for a US stock ticker. " +
		"Return ONLY JSON: {\"score\": <float in [-0.5, 0.5]>}. No markdown."
	userPrompt := "Ticker: " + symbol

	completion, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionNewParams{
		Model: s.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
	})
	if err != nil || len(completion.Choices) == 0 {
		log.Printf("sentiment: llm scorer failed for %s, using seeded fallback: %v", symbol, err)
		return s.fallback.Score(ctx, symbol)
	}

	raw := trimCodeFence(completion.Choices[0].Message.Content)
	var parsed struct {
		Score float64 `json:"score"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		log.Printf("sentiment: parse llm score for %s: %v", symbol, err)
		return s.fallback.Score(ctx, symbol)
	}
	return clampScore(parsed.Score)
}

func clampScore(v float64) float64 {
	if v < -0.5 {
		return -0.5
	}
	if v > 0.5 {
		return 0.5
	}
	return v
}

func trimCodeFence(v string) string {
	v = strings.TrimSpace(v)
	if strings.HasPrefix(v, "```") {
		v = strings.TrimPrefix(v, "```")
		v = strings.TrimSpace(v)
		if strings.HasPrefix(strings.ToLower(v), "json") {
			v = strings.TrimSpace(v[4:])
		}
		v = strings.TrimSuffix(v, "```")
		v = strings.TrimSpace(v)
	}
	return v
}

type openAIClient struct {
	client openai.Client
}

func (c *openAIClient) CreateChatCompletion(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
	return c.client.Chat.Completions.New(ctx, params)
}
