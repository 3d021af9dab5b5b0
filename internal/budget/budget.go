// Package budget estimates token usage so a completion request never asks
// for more output than the model's context window leaves room for.
package budget

import (
	"math"
	"strings"
)

// MinOutputTokens is the floor OutputTokens never goes below.
const MinOutputTokens = 256

// EstimateTokens estimates the token count of s at roughly four characters
// per token, rounding up.
func EstimateTokens(s string) int {
	if len(s) == 0 {
		return 0
	}
	return int(math.Ceil(float64(len(s)) / 4.0))
}

// EstimatePromptTokens sums the estimates of all prompt messages.
func EstimatePromptTokens(messages ...string) int {
	total := 0
	for _, m := range messages {
		total += EstimateTokens(m)
	}
	return total
}

// ModelContextTokens returns an approximate context window for a model name.
// Unknown models get a conservative 8192.
func ModelContextTokens(modelName string) int {
	name := strings.ToLower(strings.TrimSpace(modelName))
	if v, ok := knownModelMax[name]; ok {
		return v
	}
	for _, s := range suffixes {
		if strings.HasSuffix(name, s.suffix) {
			return s.tokens
		}
	}
	if strings.Contains(name, "-mini") {
		return 128_000
	}
	return 8192
}

// HeadroomTokens is the larger of 5% of the context window or 512 tokens,
// reserved for message framing and tokenizer drift.
func HeadroomTokens(modelName string) int {
	dyn := int(math.Ceil(float64(ModelContextTokens(modelName)) * 0.05))
	if dyn < 512 {
		return 512
	}
	return dyn
}

// OutputTokens returns want, reduced when the prompt plus headroom would not
// leave that much room in the context window. A reduced value is never below
// MinOutputTokens.
func OutputTokens(modelName string, promptTokens, want int) int {
	remaining := ModelContextTokens(modelName) - HeadroomTokens(modelName) - promptTokens
	if want <= remaining {
		return want
	}
	if remaining < MinOutputTokens {
		return MinOutputTokens
	}
	return remaining
}

var knownModelMax = map[string]int{
	"gpt-4o":             128_000,
	"gpt-4o-mini":        128_000,
	"gpt-4-turbo":        128_000,
	"gpt-3.5-turbo":      16_384,
	"llama-3":            8_192,
	"llama-3.1":          128_000,
	"openai/gpt-oss-20b": 4_096,
	"gpt-oss-20b":        4_096,
}

var suffixes = []struct {
	suffix string
	tokens int
}{
	{"1m", 1_000_000},
	{"200k", 200_000},
	{"128k", 128_000},
	{"32k", 32_768},
	{"16k", 16_384},
	{"8k", 8_192},
	{"4k", 4_096},
}
