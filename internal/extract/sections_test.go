package extract

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSections_GroupsFieldsUnderHeadings(t *testing.T) {
	doc := `intro: preamble
# Overview
Founded: 2015
- Headquarters - San Francisco
A general remark
# Empty
## Products
* **ChatGPT**: assistant`

	got := Sections{}.Extract(doc)
	want := []Section{
		{Title: "", Fields: []Field{{Label: "intro", Value: "preamble"}}},
		{Title: "Overview", Fields: []Field{
			{Label: "Founded", Value: "2015"},
			{Label: "Headquarters", Value: "San Francisco"},
			{Value: "A general remark"},
		}},
		{Title: "Products", Fields: []Field{{Label: "ChatGPT", Value: "assistant"}}},
	}
	if diff := cmp.Diff(want, got.Sections); diff != "" {
		t.Fatalf("sections mismatch (-want +got):\n%s", diff)
	}
	if got.Mode != ModeSections || got.Rows == nil || len(got.Rows) != 0 {
		t.Fatalf("unexpected mode/rows: %q %#v", got.Mode, got.Rows)
	}
}

func TestSections_EmptyDocument(t *testing.T) {
	got := Extract("", "", "")
	if !got.Ran() || !got.Empty() {
		t.Fatalf("expected ran and empty result, got %#v", got)
	}
	if got.Mode != ModeSections {
		t.Fatalf("mode = %q", got.Mode)
	}
}

func TestParseField(t *testing.T) {
	cases := []struct {
		in   string
		want Field
		ok   bool
	}{
		{"Key: value: more", Field{Label: "Key", Value: "value: more"}, true},
		{"Key - value - more", Field{Label: "Key", Value: "value - more"}, true},
		{"well-known term", Field{Value: "well-known term"}, true},
		{"", Field{}, false},
	}
	for _, tc := range cases {
		got, ok := parseField(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("parseField(%q) = %#v,%v want %#v,%v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
