package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/hyperifyio/gocompare/internal/render"
)

// FileConfig represents the single-file configuration schema.
// Nested sections map naturally to flags and env.
type FileConfig struct {
	Names struct {
		A string `yaml:"a" json:"a"`
		B string `yaml:"b" json:"b"`
	} `yaml:"names" json:"names"`

	Input     string `yaml:"input" json:"input"`
	RawOutput string `yaml:"rawOutput" json:"rawOutput"`
	Output    string `yaml:"output" json:"output"`
	OutputDir string `yaml:"outputDir" json:"outputDir"`
	Format    string `yaml:"format" json:"format"`
	TermWidth int    `yaml:"termWidth" json:"termWidth"`

	LLM struct {
		BaseURL     string        `yaml:"base" json:"base"`
		Model       string        `yaml:"model" json:"model"`
		APIKey      string        `yaml:"key" json:"key"`
		Temperature float64       `yaml:"temperature" json:"temperature"`
		MaxTokens   int           `yaml:"maxTokens" json:"maxTokens"`
		Timeout     time.Duration `yaml:"timeout" json:"timeout"`
	} `yaml:"llm" json:"llm"`

	Language   string `yaml:"language" json:"language"`
	Structured *bool  `yaml:"structured" json:"structured"`
	Verbose    bool   `yaml:"verbose" json:"verbose"`

	Prompts struct {
		SystemPrompt     string `yaml:"systemPrompt" json:"systemPrompt"`
		SystemPromptFile string `yaml:"systemPromptFile" json:"systemPromptFile"`
	} `yaml:"prompts" json:"prompts"`

	Cache struct {
		Dir         string        `yaml:"dir" json:"dir"`
		MaxAge      time.Duration `yaml:"maxAge" json:"maxAge"`
		Clear       bool          `yaml:"clear" json:"clear"`
		StrictPerms bool          `yaml:"strictPerms" json:"strictPerms"`
		Only        bool          `yaml:"only" json:"only"`
	} `yaml:"cache" json:"cache"`
}

// LoadConfigFile reads YAML or JSON into FileConfig. A prompts.systemPromptFile
// is resolved relative to the config file and read into prompts.systemPrompt
// unless an inline prompt is already present.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	if p := strings.TrimSpace(fc.Prompts.SystemPromptFile); p != "" && strings.TrimSpace(fc.Prompts.SystemPrompt) == "" {
		if !filepath.IsAbs(p) {
			p = filepath.Join(filepath.Dir(path), p)
		}
		pb, err := os.ReadFile(p)
		if err != nil {
			return fc, fmt.Errorf("read system prompt file: %w", err)
		}
		fc.Prompts.SystemPrompt = string(pb)
	}
	return fc, nil
}

// ApplyFileConfig overlays every value present in fc onto cfg. It runs before
// env overrides and explicit flags, so anything the file sets replaces only
// built-in defaults.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	setString := func(dst *string, v string) {
		if strings.TrimSpace(v) != "" {
			*dst = v
		}
	}
	setString(&cfg.NameA, fc.Names.A)
	setString(&cfg.NameB, fc.Names.B)
	setString(&cfg.InputPath, fc.Input)
	setString(&cfg.RawOutputPath, fc.RawOutput)
	setString(&cfg.OutputPath, fc.Output)
	setString(&cfg.OutputDir, fc.OutputDir)
	setString(&cfg.Format, fc.Format)
	if fc.TermWidth > 0 {
		cfg.TermWidth = fc.TermWidth
	}

	setString(&cfg.LLMBaseURL, fc.LLM.BaseURL)
	setString(&cfg.LLMModel, fc.LLM.Model)
	setString(&cfg.LLMAPIKey, fc.LLM.APIKey)
	if fc.LLM.Temperature > 0 {
		cfg.Temperature = fc.LLM.Temperature
	}
	if fc.LLM.MaxTokens > 0 {
		cfg.MaxTokens = fc.LLM.MaxTokens
	}
	if fc.LLM.Timeout > 0 {
		cfg.Timeout = fc.LLM.Timeout
	}

	setString(&cfg.LanguageHint, fc.Language)
	if fc.Structured != nil {
		cfg.Structured = *fc.Structured
	}
	if fc.Verbose {
		cfg.Verbose = true
	}
	setString(&cfg.SystemPrompt, fc.Prompts.SystemPrompt)

	setString(&cfg.CacheDir, fc.Cache.Dir)
	if fc.Cache.MaxAge > 0 {
		cfg.CacheMaxAge = fc.Cache.MaxAge
	}
	if fc.Cache.Clear {
		cfg.CacheClear = true
	}
	if fc.Cache.StrictPerms {
		cfg.CacheStrictPerms = true
	}
	if fc.Cache.Only {
		cfg.LLMCacheOnly = true
	}
}

// ValidateConfig performs minimal validation of the merged configuration.
// Entity names may both be blank (section mode) but not just one of them.
func ValidateConfig(cfg Config) error {
	a, b := strings.TrimSpace(cfg.NameA), strings.TrimSpace(cfg.NameB)
	if (a == "") != (b == "") {
		return fmt.Errorf("config: %w", ErrMissingNames)
	}
	if a == "" && strings.TrimSpace(cfg.InputPath) == "" {
		// Without names there is nothing to ask the model about.
		return fmt.Errorf("config: %w", ErrMissingNames)
	}
	if _, err := render.For(cfg.Format); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if strings.TrimSpace(cfg.InputPath) == "" && !cfg.LLMCacheOnly {
		if strings.TrimSpace(cfg.LLMBaseURL) == "" && strings.TrimSpace(cfg.LLMAPIKey) == "" {
			return errors.New("config: llm.key is required for the public endpoint (or set LLM_API_KEY, or LLM_BASE_URL for a local server)")
		}
	}
	if cfg.Temperature < 0 || cfg.Temperature > 2 {
		return errors.New("config: llm.temperature must be between 0 and 2")
	}
	if cfg.MaxTokens < 0 || cfg.TermWidth < 0 || cfg.Timeout < 0 || cfg.CacheMaxAge < 0 {
		return errors.New("config: negative limits are not allowed")
	}
	return nil
}
