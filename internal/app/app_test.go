package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hyperifyio/gocompare/internal/extract"
	"github.com/hyperifyio/gocompare/internal/llmstub"
	"github.com/hyperifyio/gocompare/internal/render"
)

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "doc.md")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write doc: %v", err)
	}
	return p
}

func newApp(t *testing.T, cfg Config) *App {
	t.Helper()
	a, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	t.Cleanup(a.Close)
	return a
}

func stubConfig(t *testing.T, h *llmstub.Handler) Config {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	cfg := DefaultConfig()
	cfg.NameA = "Acme"
	cfg.NameB = "Globex"
	cfg.LLMBaseURL = srv.URL + "/v1"
	cfg.LLMModel = h.Model
	cfg.CacheDir = filepath.Join(t.TempDir(), "cache")
	cfg.OutputDir = filepath.Join(t.TempDir(), "out")
	return cfg
}

func TestRun_OfflineInputMarkdown(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NameA = "OpenAI"
	cfg.NameB = "Anthropic"
	cfg.InputPath = writeDoc(t, "# Comparison\n- Revenue: OpenAI: $3.4B; Anthropic: $1B\n")
	cfg.OutputPath = filepath.Join(t.TempDir(), "nested", "out.md")
	cfg.CacheDir = ""

	if err := newApp(t, cfg).Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	b, err := os.ReadFile(cfg.OutputPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	want := "| Category | OpenAI | Anthropic |\n| --- | --- | --- |\n| Revenue | $3.4B | $1B |\n"
	if string(b) != want {
		t.Fatalf("output:\n%s\nwant:\n%s", b, want)
	}
}

func TestRun_StubModelThenCacheOnly(t *testing.T) {
	cfg := stubConfig(t, llmstub.New("test-model"))
	cfg.Format = "json"
	cfg.RawOutputPath = filepath.Join(t.TempDir(), "raw.md")

	if err := newApp(t, cfg).Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	entries, err := os.ReadDir(cfg.OutputDir)
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected one output file, got %v (%v)", entries, err)
	}
	name := entries[0].Name()
	if !strings.HasPrefix(name, "acme-vs-globex-") || !strings.HasSuffix(name, ".json") {
		t.Fatalf("unexpected output name %q", name)
	}
	b, err := os.ReadFile(filepath.Join(cfg.OutputDir, name))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var got struct {
		Rows []extract.Row `json:"rows"`
	}
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(got.Rows) != len(llmstub.Topics) {
		t.Fatalf("rows = %d, want %d:\n%s", len(got.Rows), len(llmstub.Topics), b)
	}
	first := extract.Row{Category: "Highlights", ValueA: "Acme company overview", ValueB: "Globex company overview"}
	if got.Rows[0] != first {
		t.Fatalf("first row = %#v", got.Rows[0])
	}
	if raw, err := os.ReadFile(cfg.RawOutputPath); err != nil || !strings.Contains(string(raw), "## Company Overview") {
		t.Fatalf("raw document not saved: %v", err)
	}

	// Same prompt again without a backend: served from the cache.
	offline := cfg
	offline.LLMBaseURL = "http://127.0.0.1:1/v1"
	offline.LLMCacheOnly = true
	offline.OutputPath = "-"
	offline.Format = "markdown"
	a := newApp(t, offline)
	var out bytes.Buffer
	a.SetIO(nil, &out)
	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("cache-only run: %v", err)
	}
	if !strings.Contains(out.String(), "| Highlights | Acme future outlook | Globex future outlook |") {
		t.Fatalf("unexpected cached output:\n%s", out.String())
	}
}

func TestRun_StructuredPrompt(t *testing.T) {
	cfg := stubConfig(t, llmstub.New("test-model"))
	cfg.Structured = true
	cfg.OutputPath = "-"
	a := newApp(t, cfg)
	tbl, err := a.Compare(context.Background())
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if len(tbl.Result.Rows) != len(llmstub.Topics) || tbl.Result.Fallback {
		t.Fatalf("unexpected result: %#v", tbl.Result)
	}
	if tbl.Result.Rows[1].ValueB != "Globex market position" {
		t.Fatalf("row = %#v", tbl.Result.Rows[1])
	}
}

func TestRun_EmptyDocumentWritesPlaceholder(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NameA = "A"
	cfg.NameB = "B"
	cfg.InputPath = writeDoc(t, "  \n\n")
	cfg.OutputPath = "-"
	cfg.CacheDir = ""
	a := newApp(t, cfg)
	var out bytes.Buffer
	a.SetIO(nil, &out)

	err := a.Run(context.Background())
	if !errors.Is(err, ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument, got %v", err)
	}
	if !strings.Contains(out.String(), render.EmptyMessage) {
		t.Fatalf("expected placeholder output:\n%s", out.String())
	}
}

func TestRun_BlankModelAnswer(t *testing.T) {
	h := llmstub.New("test-model")
	h.Blank = true
	cfg := stubConfig(t, h)
	cfg.OutputPath = "-"
	a := newApp(t, cfg)
	var out bytes.Buffer
	a.SetIO(nil, &out)
	if err := a.Run(context.Background()); !errors.Is(err, ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument, got %v", err)
	}
	if !strings.Contains(out.String(), render.EmptyMessage) {
		t.Fatalf("expected placeholder output:\n%s", out.String())
	}
}

func TestRun_SectionModeFromStdin(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InputPath = "-"
	cfg.OutputPath = "-"
	cfg.CacheDir = ""
	a := newApp(t, cfg)
	var out bytes.Buffer
	a.SetIO(strings.NewReader("# Overview\nFounded: 2015\n"), &out)
	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, want := range []string{"## Overview", "| Founded | 2015 |"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("missing %q in:\n%s", want, out.String())
		}
	}
}

func TestRun_TerminalDefaultsToStdout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NameA = "A"
	cfg.NameB = "B"
	cfg.InputPath = writeDoc(t, "Size: Large; Small")
	cfg.Format = "term"
	cfg.OutputDir = t.TempDir()
	cfg.CacheDir = ""
	a := newApp(t, cfg)
	var out bytes.Buffer
	a.SetIO(nil, &out)
	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "Large") {
		t.Fatalf("expected table on stdout:\n%s", out.String())
	}
	if entries, _ := os.ReadDir(cfg.OutputDir); len(entries) != 0 {
		t.Fatalf("terminal format should not write files, got %v", entries)
	}
}

func TestNew_RejectsSingleName(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NameA = "OnlyOne"
	cfg.InputPath = "doc.md"
	if _, err := New(context.Background(), cfg); !errors.Is(err, ErrMissingNames) {
		t.Fatalf("expected ErrMissingNames, got %v", err)
	}
}

func TestRun_MissingInputFile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NameA = "A"
	cfg.NameB = "B"
	cfg.InputPath = filepath.Join(t.TempDir(), "missing.md")
	cfg.CacheDir = ""
	err := newApp(t, cfg).Run(context.Background())
	if err == nil || !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestDeriveOutputPath(t *testing.T) {
	cfg := Config{NameA: "OpenAI, Inc.", NameB: "Anthropic", OutputDir: "out", Format: "html"}
	p := deriveOutputPath(cfg)
	if filepath.Dir(p) != "out" || !strings.HasPrefix(filepath.Base(p), "openai-inc-vs-anthropic-") || filepath.Ext(p) != ".html" {
		t.Fatalf("unexpected path %q", p)
	}
	if p != deriveOutputPath(cfg) {
		t.Fatalf("path must be stable")
	}
	other := cfg
	other.NameA = "openai inc"
	if deriveOutputPath(other) == p {
		t.Fatalf("different names must not collide")
	}
	if got := deriveOutputPath(Config{InputPath: "/tmp/notes.md"}); !strings.HasPrefix(got, filepath.Join(DefaultOutputDir, "notes-")) || !strings.HasSuffix(got, ".md") {
		t.Fatalf("section-mode path %q", got)
	}
}

// HTML output can be fed back in as an offline input document.
func TestRun_HTMLRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.NameA = "OpenAI"
	cfg.NameB = "Anthropic"
	cfg.InputPath = writeDoc(t, "# Money\n- Revenue: OpenAI: $3.4B; Anthropic: $1B\n- Founded: 2015 vs 2021\n")
	cfg.OutputPath = filepath.Join(dir, "cmp.html")
	cfg.Format = "html"
	cfg.CacheDir = ""
	if err := newApp(t, cfg).Run(context.Background()); err != nil {
		t.Fatalf("html run: %v", err)
	}

	again := cfg
	again.InputPath = cfg.OutputPath
	again.OutputPath = "-"
	again.Format = "markdown"
	a := newApp(t, again)
	var out bytes.Buffer
	a.SetIO(nil, &out)
	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("markdown run: %v", err)
	}
	want := "| Category | OpenAI | Anthropic |\n| --- | --- | --- |\n| Revenue | $3.4B | $1B |\n| Founded | 2015 | 2021 |\n"
	if out.String() != want {
		t.Fatalf("round trip:\n%s\nwant:\n%s", out.String(), want)
	}
}
