package sentiment

import (
	"context"
	"errors"
	"testing"

	"github.com/openai/openai-go"
)

func TestSeededScoreIsDeterministicAndBounded(t *testing.T) {
	t.Parallel()

	s := NewSeeded()
	for _, symbol := range []string{"AAPL", "MSFT", "GOOGL", "F", "TSLA"} {
		a := s.Score(context.Background(), symbol)
		b := s.Score(context.Background(), symbol)
		if a != b {
			t.Fatalf("expected deterministic score for %s, got %f vs %f", symbol, a, b)
		}
		if a < -0.5 || a > 0.5 {
			t.Fatalf("score out of bounds for %s: %f", symbol, a)
		}
	}
}

func TestSeededScoreVariesAcrossSymbols(t *testing.T) {
	t.Parallel()

	s := NewSeeded()
	if s.Score(context.Background(), "AAPL") == s.Score(context.Background(), "XOM") {
		t.Fatal("expected different symbols to hash to different scores")
	}
}

type fakeChatClient struct {
	content string
	err     error
}

func (f *fakeChatClient) CreateChatCompletion(context.Context, openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &openai.ChatCompletion{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: f.content}},
		},
	}, nil
}

func TestOpenAIScorerParsesScore(t *testing.T) {
	t.Parallel()

	s := &OpenAIScorer{
		client:   &fakeChatClient{content: "```json\n{\"score\": 0.3}\n```"},
		model:    "gpt-4o-mini",
		fallback: NewSeeded(),
	}
	if got := s.Score(context.Background(), "AAPL"); got != 0.3 {
		t.Fatalf("expected 0.3, got %f", got)
	}
}

func TestOpenAIScorerClampsScore(t *testing.T) {
	t.Parallel()

	s := &OpenAIScorer{
		client:   &fakeChatClient{content: `{"score": 3.2}`},
		model:    "gpt-4o-mini",
		fallback: NewSeeded(),
	}
	if got := s.Score(context.Background(), "AAPL"); got != 0.5 {
		t.Fatalf("expected clamp to 0.5, got %f", got)
	}
}

func TestOpenAIScorerFallsBackOnError(t *testing.T) {
	t.Parallel()

	s := &OpenAIScorer{
		client:   &fakeChatClient{err: errors.New("rate limited")},
		model:    "gpt-4o-mini",
		fallback: NewSeeded(),
	}
	want := NewSeeded().Score(context.Background(), "AAPL")
	if got := s.Score(context.Background(), "AAPL"); got != want {
		t.Fatalf("expected seeded fallback %f, got %f", want, got)
	}
}

func TestNewOpenAIScorerRequiresKey(t *testing.T) {
	t.Parallel()

	if NewOpenAIScorer("", "gpt-4o-mini") != nil {
		t.Fatal("expected nil scorer without API key")
	}
	if NewOpenAIScorer("sk-test", "") == nil {
		t.Fatal("expected scorer with API key")
	}
}
