package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Kind classifies a single trimmed line of a document.
type Kind int

const (
	// Content is any line that is not a heading marker.
	Content Kind = iota
	// Heading is a Markdown ATX heading ("#", "##", ...).
	Heading
	// NumberedCandidate is a "N. text" line that may act as a category.
	NumberedCandidate
)

func (k Kind) String() string {
	switch k {
	case Heading:
		return "heading"
	case NumberedCandidate:
		return "numbered"
	default:
		return "content"
	}
}

// Line is a classified line. Text holds the heading or numbered text with its
// marker removed; for Content it is the line itself.
type Line struct {
	Kind Kind
	Text string
	Raw  string
}

// numberedCategoryMaxRunes is the length below which a numbered line is read
// as a category label rather than a prose list item.
const numberedCategoryMaxRunes = 50

var (
	headingRe      = regexp.MustCompile(`^#+\s`)
	numberedRe     = regexp.MustCompile(`^\d+\.\s`)
	numberedTextRe = regexp.MustCompile(`^\d+\.\s*(.+)$`)
	bulletRe       = regexp.MustCompile(`^[•\-*]\s`)
	trailingColon  = regexp.MustCompile(`:\s*$`)
)

// SplitLines breaks a document into trimmed, non-empty lines in order.
func SplitLines(doc string) []string {
	if strings.TrimSpace(doc) == "" {
		return nil
	}
	raw := strings.Split(strings.ReplaceAll(doc, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(raw))
	for _, l := range raw {
		if s := strings.TrimSpace(l); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Classify decides whether a trimmed line is a heading, a numbered heading
// candidate or plain content.
func Classify(line string) Line {
	switch {
	case headingRe.MatchString(line):
		return Line{Kind: Heading, Text: cleanLabel(headingRe.ReplaceAllString(line, "")), Raw: line}
	case numberedRe.MatchString(line):
		text := line
		if m := numberedTextRe.FindStringSubmatch(line); len(m) == 2 {
			text = strings.TrimSpace(m[1])
		}
		return Line{Kind: NumberedCandidate, Text: text, Raw: line}
	default:
		return Line{Kind: Content, Text: line, Raw: line}
	}
}

// Category reports whether a numbered candidate should be promoted to a
// category and returns the label to use.
func (l Line) Category() (string, bool) {
	if l.Kind != NumberedCandidate {
		return "", false
	}
	if !strings.Contains(l.Text, ":") && utf8.RuneCountInString(l.Text) >= numberedCategoryMaxRunes {
		return "", false
	}
	return cleanLabel(trailingColon.ReplaceAllString(l.Text, "")), true
}

// StripMarker removes one leading bullet ("•", "-", "*") and one leading
// "N." list marker from a line.
func StripMarker(line string) string {
	s := bulletRe.ReplaceAllString(line, "")
	s = numberedRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// cleanLabel trims whitespace and surrounding bold/underline emphasis that
// models like to wrap labels in.
func cleanLabel(s string) string {
	s = strings.TrimSpace(s)
	for _, mark := range []string{"**", "__"} {
		if len(s) > 2*len(mark) && strings.HasPrefix(s, mark) && strings.HasSuffix(s, mark) {
			s = strings.TrimSpace(s[len(mark) : len(s)-len(mark)])
		}
	}
	return s
}

// splitSegments splits on ';' or '|' and drops empty segments.
func splitSegments(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == '|' })
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
