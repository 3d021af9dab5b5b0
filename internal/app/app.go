package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/gocompare/internal/cache"
	"github.com/hyperifyio/gocompare/internal/compare"
	"github.com/hyperifyio/gocompare/internal/extract"
	"github.com/hyperifyio/gocompare/internal/llm"
	"github.com/hyperifyio/gocompare/internal/render"
)

type App struct {
	cfg    Config
	client llm.Client
	cache  *cache.LLMCache
	stdin  io.Reader
	stdout io.Writer
}

var (
	// ErrEmptyDocument is returned when the comparison document is blank.
	// The placeholder table is still written; the CLI exits with status 2.
	ErrEmptyDocument = errors.New("comparison document is empty")
	// ErrMissingNames is returned when only one entity name is given, or
	// none is given and there is no input document to read.
	ErrMissingNames = errors.New("both entity names are required")
)

// preflightTimeout bounds the best-effort model list call in New.
const preflightTimeout = 5 * time.Second

func New(ctx context.Context, cfg Config) (*App, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	a := &App{cfg: cfg, stdin: os.Stdin, stdout: os.Stdout}

	if cfg.CacheDir != "" {
		if cfg.CacheClear {
			if err := cache.ClearDir(cfg.CacheDir); err != nil {
				log.Warn().Err(err).Str("dir", cfg.CacheDir).Msg("cache clear failed")
			}
		}
		if cfg.CacheMaxAge > 0 {
			n, err := cache.PurgeByAge(cfg.CacheDir, cfg.CacheMaxAge)
			if err != nil {
				log.Warn().Err(err).Msg("cache purge failed")
			} else if n > 0 {
				log.Info().Int("removed", n).Dur("maxAge", cfg.CacheMaxAge).Msg("purged stale cache entries")
			}
		}
		a.cache = &cache.LLMCache{Dir: cfg.CacheDir, StrictPerms: cfg.CacheStrictPerms}
	}

	if strings.TrimSpace(cfg.InputPath) != "" || cfg.LLMCacheOnly {
		return a, nil
	}
	a.client = llm.NewOpenAIProvider(cfg.LLMAPIKey, cfg.LLMBaseURL, newLLMHTTPClient(cfg.Timeout))

	// Preflight is best-effort: an unreachable backend surfaces later as a
	// request error so the CLI can apply its exit code policy.
	pctx, cancel := context.WithTimeout(ctx, preflightTimeout)
	defer cancel()
	model := a.model()
	ok, err := llm.HasModel(pctx, a.client, model)
	switch {
	case err != nil:
		log.Warn().Err(err).Msg("LLM model list failed; continuing")
	case !ok:
		log.Warn().Str("model", model).Msg("model not listed by backend; continuing")
	default:
		log.Debug().Str("model", model).Msg("model available")
	}
	return a, nil
}

// SetIO replaces the standard streams used for "-" input and output paths.
func (a *App) SetIO(stdin io.Reader, stdout io.Writer) {
	if stdin != nil {
		a.stdin = stdin
	}
	if stdout != nil {
		a.stdout = stdout
	}
}

func (a *App) Close() {
	// nothing yet
}

// Compare obtains the document and extracts it into a table. A blank
// document still yields a table (with no rows) alongside ErrEmptyDocument.
func (a *App) Compare(ctx context.Context) (render.Table, error) {
	doc, err := a.document(ctx)
	if err != nil {
		return render.Table{}, err
	}

	strategy := extract.For(a.cfg.NameA, a.cfg.NameB)
	start := time.Now()
	res := strategy.Extract(doc)
	tbl := render.Table{
		NameA:  strings.TrimSpace(a.cfg.NameA),
		NameB:  strings.TrimSpace(a.cfg.NameB),
		Result: res,
	}
	log.Info().
		Str("strategy", strategy.Name()).
		Int("rows", len(res.Rows)).
		Int("sections", len(res.Sections)).
		Bool("fallback", res.Fallback).
		Dur("took", time.Since(start)).
		Msg("extracted comparison")
	if res.Empty() {
		log.Warn().Msg("no comparison data recovered; rendering placeholder")
	}
	if strings.TrimSpace(doc) == "" {
		return tbl, ErrEmptyDocument
	}
	return tbl, nil
}

// Run compares, renders and writes the output. ErrEmptyDocument is returned
// after the placeholder output has been written.
func (a *App) Run(ctx context.Context) error {
	tbl, err := a.Compare(ctx)
	if err != nil && !errors.Is(err, ErrEmptyDocument) {
		return err
	}
	if werr := a.write(tbl); werr != nil {
		return werr
	}
	return err
}

func (a *App) document(ctx context.Context) (string, error) {
	doc, err := a.fetchDocument(ctx)
	if err != nil {
		return "", err
	}
	if p := strings.TrimSpace(a.cfg.RawOutputPath); p != "" {
		if err := writeFile(p, []byte(doc)); err != nil {
			return "", fmt.Errorf("write raw document: %w", err)
		}
		log.Info().Str("out", p).Msg("wrote raw document")
	}
	ext := strings.ToLower(filepath.Ext(a.cfg.InputPath))
	if ext == ".html" || ext == ".htm" || extract.LooksLikeHTML(doc) {
		log.Debug().Msg("converting HTML document to text lines")
		doc = extract.FromHTML([]byte(doc))
	}
	return doc, nil
}

func (a *App) fetchDocument(ctx context.Context) (string, error) {
	if p := strings.TrimSpace(a.cfg.InputPath); p != "" {
		var (
			b   []byte
			err error
		)
		if p == "-" {
			b, err = io.ReadAll(a.stdin)
		} else {
			b, err = os.ReadFile(p)
		}
		if err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		log.Debug().Str("input", p).Int("bytes", len(b)).Msg("read comparison document")
		return string(b), nil
	}

	r := &compare.Requester{
		Client:       a.client,
		Cache:        a.cache,
		SystemPrompt: a.cfg.SystemPrompt,
		CacheOnly:    a.cfg.LLMCacheOnly,
		Verbose:      a.cfg.Verbose,
	}
	doc, err := r.Request(ctx, compare.Input{
		NameA:        a.cfg.NameA,
		NameB:        a.cfg.NameB,
		Model:        a.model(),
		LanguageHint: a.cfg.LanguageHint,
		Structured:   a.cfg.Structured,
		Temperature:  float32(a.cfg.Temperature),
		MaxTokens:    a.cfg.MaxTokens,
	})
	if errors.Is(err, compare.ErrNoComparisonText) {
		log.Warn().Err(err).Msg("model returned no comparison")
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("request comparison: %w", err)
	}
	return doc, nil
}

func (a *App) write(tbl render.Table) error {
	renderer, err := render.For(a.cfg.Format)
	if err != nil {
		return err
	}
	if _, ok := renderer.(render.Terminal); ok {
		renderer = render.Terminal{Width: a.cfg.TermWidth}
	}
	var buf bytes.Buffer
	if err := renderer.Render(&buf, tbl); err != nil {
		return fmt.Errorf("render %s: %w", a.cfg.Format, err)
	}

	out := a.outputPath()
	if out == "-" {
		_, err := a.stdout.Write(buf.Bytes())
		return err
	}
	if err := writeFile(out, buf.Bytes()); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	log.Info().Str("out", out).Str("format", a.cfg.Format).Msg("wrote comparison")
	return nil
}

// outputPath resolves the destination. "-" means stdout, which is also the
// default for the terminal format; otherwise a blank path is derived from
// the names.
func (a *App) outputPath() string {
	out := strings.TrimSpace(a.cfg.OutputPath)
	if out != "" {
		return out
	}
	if _, ok := mustRenderer(a.cfg.Format).(render.Terminal); ok {
		return "-"
	}
	return deriveOutputPath(a.cfg)
}

func (a *App) model() string {
	if m := strings.TrimSpace(a.cfg.LLMModel); m != "" {
		return m
	}
	return compare.DefaultModel
}

func mustRenderer(format string) render.Renderer {
	r, err := render.For(format)
	if err != nil {
		return render.Markdown{}
	}
	return r
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
