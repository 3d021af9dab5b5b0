package extract

import (
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func extractRows(t *testing.T, doc string) Result {
	t.Helper()
	return NewComparison("OpenAI", "Anthropic").Extract(doc)
}

func TestComparison_Rows(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want []Row
	}{
		{
			name: "named values amid noise",
			doc:  "# Comparison\nSome intro noise.\n- Revenue: OpenAI: $3.4B; Anthropic: $1B\nClosing words.",
			want: []Row{{"Revenue", "$3.4B", "$1B"}},
		},
		{
			name: "swapped mentions keep sides",
			doc:  "Revenue: Anthropic: $1B; OpenAI: $3.4B",
			want: []Row{{"Revenue", "$3.4B", "$1B"}},
		},
		{
			name: "names match case-insensitively",
			doc:  "Focus: openai: consumer; ANTHROPIC: safety",
			want: []Row{{"Focus", "consumer", "safety"}},
		},
		{
			name: "last mention per side wins",
			doc:  "Revenue: OpenAI: x; OpenAI: z; Anthropic: y",
			want: []Row{{"Revenue", "z", "y"}},
		},
		{
			name: "one side only gets placeholder",
			doc:  "Revenue: OpenAI: x; OpenAI: z",
			want: []Row{{"Revenue", "z", Placeholder}},
		},
		{
			name: "single named mention is a shared value",
			doc:  "Revenue: OpenAI: x",
			want: []Row{{"Revenue", "OpenAI: x", "OpenAI: x"}},
		},
		{
			name: "semicolon split",
			doc:  "Size: Large; Small",
			want: []Row{{"Size", "Large", "Small"}},
		},
		{
			name: "pipe split ignores extra segments",
			doc:  "* Size: Large | Small | Tiny",
			want: []Row{{"Size", "Large", "Small"}},
		},
		{
			name: "versus split",
			doc:  "Pricing: $20/month vs $18/month",
			want: []Row{{"Pricing", "$20/month", "$18/month"}},
		},
		{
			name: "compared to split",
			doc:  "Headcount: 3000 Compared To 1000",
			want: []Row{{"Headcount", "3000", "1000"}},
		},
		{
			name: "single value repeated on both sides",
			doc:  "Founded: 2015",
			want: []Row{{"Founded", "2015", "2015"}},
		},
		{
			name: "empty label falls back to placeholder category",
			doc:  "** **: x; y",
			want: []Row{{Placeholder, "x", "y"}},
		},
		{
			name: "empty label falls back to heading",
			doc:  "## Growth\n** **: x; y",
			want: []Row{{"Growth", "x", "y"}},
		},
		{
			name: "payload of separators only is dropped",
			doc:  "## Growth\nNotes: ; |",
			want: []Row{},
		},
		{
			name: "context fallback with dash content",
			doc:  "## Overview\nSize - Large; Small",
			want: []Row{{"Overview", "Size - Large", "Small"}},
		},
		{
			name: "context fallback with versus",
			doc:  "1. Company Overview\n- Older lab versus newer lab",
			want: []Row{{"Company Overview", "Older lab", "newer lab"}},
		},
		{
			name: "prose without context yields nothing",
			doc:  "just some prose",
			want: []Row{},
		},
		{
			name: "unlabeled single segment under heading is dropped",
			doc:  "# Market\nBoth companies grow quickly.",
			want: []Row{},
		},
		{
			name: "long numbered prose is content",
			doc:  "# Notes\n2. This is a rather long list item that goes on and on; with a semicolon",
			want: []Row{{"Notes", "This is a rather long list item that goes on and on", "with a semicolon"}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := extractRows(t, tc.doc)
			if diff := cmp.Diff(tc.want, got.Rows); diff != "" {
				t.Fatalf("rows mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestComparison_QuotesNames(t *testing.T) {
	got := NewComparison("C++", "C#").Extract("Syntax: C#: tidy; C++: verbose")
	want := []Row{{"Syntax", "verbose", "tidy"}}
	if diff := cmp.Diff(want, got.Rows); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestComparison_OrderFollowsDocument(t *testing.T) {
	doc := strings.Join([]string{
		"# Company Overview",
		"- Founded: OpenAI: 2015; Anthropic: 2021",
		"- HQ: San Francisco | San Francisco",
		"# Business Model",
		"- Revenue: subscriptions vs API",
		"- Revenue: API; enterprise",
	}, "\n")
	got := extractRows(t, doc)
	want := []Row{
		{"Founded", "2015", "2021"},
		{"HQ", "San Francisco", "San Francisco"},
		{"Revenue", "subscriptions", "API"},
		{"Revenue", "API", "enterprise"},
	}
	if diff := cmp.Diff(want, got.Rows); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
	if got.Fallback {
		t.Fatalf("primary pass should have produced the rows")
	}
	if got.Mode != ModeComparison {
		t.Fatalf("mode = %q", got.Mode)
	}
}

func TestComparison_FallbackPass(t *testing.T) {
	// Short numbered lines are promoted to categories, so the primary pass
	// finds nothing and the heading-based re-scan recovers the rows.
	doc := "intro; ignored before any heading\n# Pricing\n1. $20; $18\n2. Free tier | No free tier"
	got := extractRows(t, doc)
	want := []Row{
		{"Pricing", "$20", "$18"},
		{"Pricing", "Free tier", "No free tier"},
	}
	if diff := cmp.Diff(want, got.Rows); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
	if !got.Fallback {
		t.Fatalf("expected Fallback to be set")
	}
}

func TestComparison_EmptyInput(t *testing.T) {
	for _, doc := range []string{"", "   \n\n\t"} {
		got := extractRows(t, doc)
		if got.Rows == nil || len(got.Rows) != 0 {
			t.Fatalf("expected empty non-nil rows for %q, got %#v", doc, got.Rows)
		}
		if !got.Ran() || !got.Empty() {
			t.Fatalf("expected ran and empty result for %q", doc)
		}
	}
	if (Result{}).Ran() {
		t.Fatalf("zero Result must read as not run")
	}
}

func TestComparison_Deterministic(t *testing.T) {
	doc := "# A\n- x: OpenAI: 1; Anthropic: 2\n- y - 3; 4\n## B\nz: 5 vs 6"
	c := NewComparison("OpenAI", "Anthropic")
	first := c.Extract(doc)
	second := c.Extract(doc)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("repeat extraction differs:\n%s", diff)
	}
}

func TestComparison_ZeroValueCompilesNames(t *testing.T) {
	c := Comparison{NameA: " OpenAI ", NameB: "Anthropic"}
	got := c.Extract("Revenue: Anthropic: b; OpenAI: a")
	want := []Row{{"Revenue", "a", "b"}}
	if diff := cmp.Diff(want, got.Rows); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestComparison_ConcurrentCalls(t *testing.T) {
	doc := "# A\n- x: OpenAI: 1; Anthropic: 2\n- y: 3 | 4"
	c := NewComparison("OpenAI", "Anthropic")
	want := c.Extract(doc)
	var wg sync.WaitGroup
	errs := make(chan string, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if diff := cmp.Diff(want, c.Extract(doc)); diff != "" {
				errs <- diff
			}
		}()
	}
	wg.Wait()
	close(errs)
	for d := range errs {
		t.Fatalf("concurrent extraction differs:\n%s", d)
	}
}

func TestRules_PriorityOrder(t *testing.T) {
	var names []string
	for _, r := range rules {
		names = append(names, r.name)
	}
	if diff := cmp.Diff([]string{"labeled", "context"}, names); diff != "" {
		t.Fatalf("rule order changed (-want +got):\n%s", diff)
	}
}

func TestFor_SelectsStrategy(t *testing.T) {
	if got := For(" OpenAI ", " Anthropic ").Name(); got != "comparison" {
		t.Fatalf("For with two names = %q", got)
	}
	if got := For("OpenAI", "  ").Name(); got != "sections" {
		t.Fatalf("For with one name = %q", got)
	}
	res := Extract("Size: Large; Small", "A", "B")
	if len(res.Rows) != 1 || res.Rows[0].ValueB != "Small" {
		t.Fatalf("Extract rows = %#v", res.Rows)
	}
}
