package app

import "time"

// Config holds runtime configuration for the application.
type Config struct {
	// Entities being compared. Leaving either blank switches extraction to
	// section mode.
	NameA string
	NameB string

	// Document source. When InputPath is set the model is not called.
	InputPath     string
	RawOutputPath string

	// Output
	OutputPath string
	OutputDir  string
	Format     string
	TermWidth  int

	// LLM
	LLMBaseURL   string
	LLMModel     string
	LLMAPIKey    string
	LanguageHint string
	Structured   bool
	SystemPrompt string
	Temperature  float64
	MaxTokens    int
	Timeout      time.Duration

	// Cache
	CacheDir         string
	CacheMaxAge      time.Duration
	CacheClear       bool
	CacheStrictPerms bool
	LLMCacheOnly     bool

	Verbose bool
}

// Defaults used by DefaultConfig and by the CLI flag set.
const (
	DefaultFormat    = "markdown"
	DefaultOutputDir = "comparisons"
	DefaultCacheDir  = ".gocompare-cache"
	DefaultTimeout   = 2 * time.Minute
)

// DefaultConfig returns the configuration used before any file, env or flag
// layer is applied.
func DefaultConfig() Config {
	return Config{
		Format:    DefaultFormat,
		OutputDir: DefaultOutputDir,
		CacheDir:  DefaultCacheDir,
		Timeout:   DefaultTimeout,
	}
}
