package compare

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/hyperifyio/gocompare/internal/budget"
	"github.com/hyperifyio/gocompare/internal/cache"
	"github.com/hyperifyio/gocompare/internal/llm"
)

// Defaults used when Input leaves a field unset.
const (
	DefaultModel       = "gpt-4o-mini"
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 1500
)

// Input names the two entities and the model settings for one request.
type Input struct {
	NameA        string
	NameB        string
	Model        string
	LanguageHint string
	// Structured asks the model for "Category: A: x; B: y" lines.
	Structured  bool
	Temperature float32
	MaxTokens   int
}

// Requester sends the comparison prompt and returns the model's document.
type Requester struct {
	Client llm.Client
	Cache  *cache.LLMCache
	// SystemPrompt, when non-empty, replaces the default system message.
	SystemPrompt string
	// CacheOnly answers from cache and fails fast on a miss.
	CacheOnly bool
	Verbose   bool
}

var (
	// ErrNoComparisonText means the model returned no usable content.
	ErrNoComparisonText = errors.New("no comparison text returned")
	// ErrCacheMiss is returned in CacheOnly mode when nothing is cached.
	ErrCacheMiss = errors.New("comparison not in cache")
)

// Request asks the model to compare in.NameA and in.NameB and returns the
// raw Markdown document.
func (r *Requester) Request(ctx context.Context, in Input) (string, error) {
	if r.Client == nil && !r.CacheOnly {
		return "", errors.New("requester not configured")
	}
	if strings.TrimSpace(in.NameA) == "" || strings.TrimSpace(in.NameB) == "" {
		return "", errors.New("both names are required")
	}
	req := buildRequest(in, r.systemMessage())
	key := cache.KeyFrom(req.Model, req.Messages[0].Content+"\n\n"+req.Messages[1].Content)
	promptTokens := budget.EstimatePromptTokens(req.Messages[0].Content, req.Messages[1].Content)
	if n := budget.OutputTokens(req.Model, promptTokens, req.MaxTokens); n != req.MaxTokens {
		log.Warn().Int("requested", req.MaxTokens).Int("capped", n).Str("model", req.Model).Msg("max tokens adjusted to fit context window")
		req.MaxTokens = n
	}

	if r.Cache != nil {
		if e, ok, _ := r.Cache.Get(ctx, key); ok {
			log.Debug().Str("key", key[:12]).Msg("comparison served from cache")
			return e.Document, nil
		}
	}
	if r.CacheOnly {
		return "", ErrCacheMiss
	}

	resp, err := r.Client.CreateChatCompletion(ctx, req)
	if err != nil {
		log.Warn().Err(err).Msg("comparison call failed; retrying once")
		sleep(ctx, retryDelay)
		resp, err = r.Client.CreateChatCompletion(ctx, req)
		if err != nil {
			return "", fmt.Errorf("comparison call (after retry): %w", err)
		}
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoComparisonText
	}
	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return "", ErrNoComparisonText
	}
	if r.Verbose {
		log.Debug().Int("chars", len(out)).Int("promptTokens", resp.Usage.PromptTokens).
			Int("completionTokens", resp.Usage.CompletionTokens).Msg("comparison received")
	}
	if r.Cache != nil {
		if err := r.Cache.Save(ctx, key, cache.Entry{Model: req.Model, Document: out}); err != nil {
			log.Warn().Err(err).Msg("cache save failed")
		}
	}
	return out, nil
}

func (r *Requester) systemMessage() string {
	if s := strings.TrimSpace(r.SystemPrompt); s != "" {
		return s
	}
	return defaultSystemPrompt
}

func buildRequest(in Input, system string) openai.ChatCompletionRequest {
	model := strings.TrimSpace(in.Model)
	if model == "" {
		model = DefaultModel
	}
	temp := in.Temperature
	if temp <= 0 {
		temp = DefaultTemperature
	}
	maxTokens := in.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: buildUserMessage(in)},
		},
		Temperature: temp,
		MaxTokens:   maxTokens,
		N:           1,
	}
}

// retryDelay is the fixed backoff before the single retry. Tests shorten it.
var retryDelay = 500 * time.Millisecond

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
