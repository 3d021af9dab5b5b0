package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/gocompare/internal/app"
	"github.com/hyperifyio/gocompare/internal/render"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	os.Exit(realMain(os.Args[1:], os.Stdout))
}

// options are CLI-only switches that do not belong in app.Config.
type options struct {
	configPath       string
	envFiles         string
	systemPromptFile string
	version          bool
}

func realMain(args []string, stdout io.Writer) int {
	cfg, opts, err := parseConfig(args, stdout)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		log.Error().Err(err).Msg("configuration failed")
		return 1
	}
	if opts.version {
		fmt.Fprintln(stdout, app.VersionString())
		return 0
	}

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	err = run(cfg)
	if err != nil {
		log.Error().Err(err).Msg("run failed")
	}
	return exitCode(err)
}

// exitCode maps run errors to process status: 2 when the comparison document
// came back empty, 1 for every other failure.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, app.ErrEmptyDocument):
		return 2
	default:
		return 1
	}
}

// parseConfig layers configuration: built-in defaults, then the -config file,
// then environment variables (after loading -env files), then flags that were
// set explicitly on the command line.
func parseConfig(args []string, output io.Writer) (app.Config, options, error) {
	var (
		fl   = app.DefaultConfig()
		opts options
	)
	fs := flag.NewFlagSet("gocompare", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&fl.NameA, "a", "", "First entity to compare")
	fs.StringVar(&fl.NameB, "b", "", "Second entity to compare")
	fs.StringVar(&fl.InputPath, "input", "", "Read the comparison document from this Markdown file instead of the model ('-' for stdin)")
	fs.StringVar(&fl.RawOutputPath, "raw.output", "", "Also save the raw comparison document to this path")
	fs.StringVar(&fl.OutputPath, "output", "", "Output path ('-' for stdout); derived from the names when empty")
	fs.StringVar(&fl.OutputDir, "output.dir", fl.OutputDir, "Directory for derived output paths")
	fs.StringVar(&fl.Format, "format", fl.Format, "Output format: "+strings.Join(render.Formats, ", ")+" (env OUTPUT_FORMAT)")
	fs.IntVar(&fl.TermWidth, "term.width", 0, "Wrap the terminal table to this width (0 keeps natural width)")

	fs.StringVar(&fl.LLMBaseURL, "llm.base", "", "OpenAI-compatible base URL (env LLM_BASE_URL)")
	fs.StringVar(&fl.LLMModel, "llm.model", "", "Model name (env LLM_MODEL, default gpt-4o-mini)")
	fs.StringVar(&fl.LLMAPIKey, "llm.key", "", "API key (env LLM_API_KEY)")
	fs.Float64Var(&fl.Temperature, "llm.temperature", 0, "Sampling temperature (0 keeps the default 0.7)")
	fs.IntVar(&fl.MaxTokens, "llm.maxTokens", 0, "Completion token limit (0 keeps the default 1500)")
	fs.DurationVar(&fl.Timeout, "llm.timeout", fl.Timeout, "Overall timeout for the model call")
	fs.StringVar(&fl.LanguageHint, "lang", "", "Optional language hint, e.g. 'en' or 'fi' (env LANGUAGE)")
	fs.BoolVar(&fl.Structured, "structured", false, "Ask the model for 'Category: A: x; B: y' lines (env STRUCTURED_PROMPT)")
	fs.StringVar(&fl.SystemPrompt, "system.prompt", "", "Override the system prompt (inline string)")
	fs.StringVar(&opts.systemPromptFile, "system.promptFile", "", "Path to a file containing the system prompt")

	fs.StringVar(&fl.CacheDir, "cache.dir", fl.CacheDir, "Cache directory path (env CACHE_DIR, empty disables)")
	fs.DurationVar(&fl.CacheMaxAge, "cache.maxAge", 0, "Purge cache entries older than this (e.g. 24h); 0 disables")
	fs.BoolVar(&fl.CacheClear, "cache.clear", false, "Clear cache directory before run")
	fs.BoolVar(&fl.CacheStrictPerms, "cache.strictPerms", false, "Restrict cache permissions (0700 dirs, 0600 files)")
	fs.BoolVar(&fl.LLMCacheOnly, "cache.only", false, "Answer from cache only and fail on a miss (env LLM_CACHE_ONLY)")

	fs.StringVar(&opts.configPath, "config", "", "YAML or JSON config file")
	fs.StringVar(&opts.envFiles, "env", "", "Comma-separated dotenv files to load (later files win)")
	fs.BoolVar(&fl.Verbose, "v", false, "Verbose logging")
	fs.BoolVar(&opts.version, "version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		return app.Config{}, opts, err
	}
	if fs.NArg() > 0 {
		return app.Config{}, opts, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	if opts.version {
		return fl, opts, nil
	}

	if err := app.LoadEnvFiles(app.SplitEnvList(opts.envFiles)...); err != nil {
		return app.Config{}, opts, err
	}

	cfg := app.DefaultConfig()
	if opts.configPath != "" {
		fc, err := app.LoadConfigFile(opts.configPath)
		if err != nil {
			return app.Config{}, opts, fmt.Errorf("load config: %w", err)
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	app.ApplyEnvOverrides(&cfg)
	fs.Visit(func(f *flag.Flag) { applyFlag(&cfg, &fl, f.Name) })

	if p := strings.TrimSpace(opts.systemPromptFile); p != "" {
		b, err := os.ReadFile(p)
		if err != nil {
			return app.Config{}, opts, fmt.Errorf("read system prompt file: %w", err)
		}
		cfg.SystemPrompt = string(b)
	}
	return cfg, opts, nil
}

// applyFlag copies one explicitly set flag from fl into cfg.
func applyFlag(cfg, fl *app.Config, name string) {
	switch name {
	case "a":
		cfg.NameA = fl.NameA
	case "b":
		cfg.NameB = fl.NameB
	case "input":
		cfg.InputPath = fl.InputPath
	case "raw.output":
		cfg.RawOutputPath = fl.RawOutputPath
	case "output":
		cfg.OutputPath = fl.OutputPath
	case "output.dir":
		cfg.OutputDir = fl.OutputDir
	case "format":
		cfg.Format = fl.Format
	case "term.width":
		cfg.TermWidth = fl.TermWidth
	case "llm.base":
		cfg.LLMBaseURL = fl.LLMBaseURL
	case "llm.model":
		cfg.LLMModel = fl.LLMModel
	case "llm.key":
		cfg.LLMAPIKey = fl.LLMAPIKey
	case "llm.temperature":
		cfg.Temperature = fl.Temperature
	case "llm.maxTokens":
		cfg.MaxTokens = fl.MaxTokens
	case "llm.timeout":
		cfg.Timeout = fl.Timeout
	case "lang":
		cfg.LanguageHint = fl.LanguageHint
	case "structured":
		cfg.Structured = fl.Structured
	case "system.prompt":
		cfg.SystemPrompt = fl.SystemPrompt
	case "cache.dir":
		cfg.CacheDir = fl.CacheDir
	case "cache.maxAge":
		cfg.CacheMaxAge = fl.CacheMaxAge
	case "cache.clear":
		cfg.CacheClear = fl.CacheClear
	case "cache.strictPerms":
		cfg.CacheStrictPerms = fl.CacheStrictPerms
	case "cache.only":
		cfg.LLMCacheOnly = fl.LLMCacheOnly
	case "v":
		cfg.Verbose = fl.Verbose
	}
}

func run(cfg app.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout+30*time.Second)
	defer cancel()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	defer a.Close()

	return a.Run(ctx)
}
