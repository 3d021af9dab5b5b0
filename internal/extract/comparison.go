package extract

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
)

var (
	labeledRe = regexp.MustCompile(`^([^:]+):\s*(.+)$`)
	versusRe  = regexp.MustCompile(`(?i)^(.+?)\s+(?:vs\.?|versus|compared to)\s+(.+)$`)
)

// Comparison extracts two-entity rows. Use NewComparison to build one; the
// zero value of the compiled pattern is rebuilt on demand.
type Comparison struct {
	NameA string
	NameB string

	names *regexp.Regexp
}

// NewComparison returns a Comparison for the two trimmed display names.
func NewComparison(nameA, nameB string) Comparison {
	a, b := strings.TrimSpace(nameA), strings.TrimSpace(nameB)
	return Comparison{NameA: a, NameB: b, names: namesPattern(a, b)}
}

func (Comparison) Name() string { return string(ModeComparison) }

// Extract runs the primary pass and, when it yields nothing, the fallback
// pass. An empty document gives an empty, non-nil row slice.
func (c Comparison) Extract(doc string) Result {
	res := Result{Mode: ModeComparison, Rows: []Row{}, Sections: []Section{}}
	lines := SplitLines(doc)
	if len(lines) == 0 {
		return res
	}
	cm := c.comparer()
	res.Rows = cm.primary(lines)
	if len(res.Rows) == 0 {
		res.Rows = fallbackRows(lines)
		res.Fallback = len(res.Rows) > 0
	}
	return res
}

// namesPattern matches "<name>: value" up to the next ';'.
func namesPattern(a, b string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(` + regexp.QuoteMeta(a) + `|` + regexp.QuoteMeta(b) + `):\s*([^;]+)`)
}

// state is the accumulator folded over the lines of one pass.
type state struct {
	category string
}

// categoryFor prefers an explicit label, then the context, then Placeholder.
func (st state) categoryFor(label string) string {
	if label != "" {
		return label
	}
	if st.category != "" {
		return st.category
	}
	return Placeholder
}

// verdict tells the pass what a rule decided about a line.
type verdict int

const (
	// pass: rule does not apply, try the next one.
	pass verdict = iota
	// drop: rule applies but recovered nothing; the line is done.
	drop
	// emit: rule produced a row.
	emit
)

type rule struct {
	name string
	try  func(c comparer, line string, st state) (Row, verdict)
}

// rules run in priority order; the first non-pass verdict wins.
var rules = []rule{
	{name: "labeled", try: labeledSplit},
	{name: "context", try: contextSplit},
}

// comparer is the per-call view of a Comparison. It owns its case folder,
// which is not safe to share between goroutines.
type comparer struct {
	names        *regexp.Regexp
	fold         cases.Caser
	foldA, foldB string
}

func (c Comparison) comparer() comparer {
	re := c.names
	if re == nil {
		re = namesPattern(strings.TrimSpace(c.NameA), strings.TrimSpace(c.NameB))
	}
	fold := cases.Fold()
	return comparer{
		names: re,
		fold:  fold,
		foldA: fold.String(strings.TrimSpace(c.NameA)),
		foldB: fold.String(strings.TrimSpace(c.NameB)),
	}
}

func (c comparer) primary(lines []string) []Row {
	rows := make([]Row, 0, len(lines)/2)
	st := state{}
	for _, l := range lines {
		var (
			row Row
			ok  bool
		)
		st, row, ok = c.step(st, l)
		if ok {
			rows = append(rows, row)
		}
	}
	return rows
}

// step classifies one line, updates the category context and tries the
// rules on content lines.
func (c comparer) step(st state, raw string) (state, Row, bool) {
	line := Classify(raw)
	switch line.Kind {
	case Heading:
		st.category = line.Text
		return st, Row{}, false
	case NumberedCandidate:
		if cat, ok := line.Category(); ok {
			st.category = cat
			return st, Row{}, false
		}
	}
	clean := StripMarker(raw)
	if clean == "" {
		return st, Row{}, false
	}
	for _, r := range rules {
		switch row, v := r.try(c, clean, st); v {
		case emit:
			return st, row, true
		case drop:
			return st, Row{}, false
		}
	}
	return st, Row{}, false
}

// labeledSplit handles "Label: payload" lines.
func labeledSplit(c comparer, line string, st state) (Row, verdict) {
	m := labeledRe.FindStringSubmatch(line)
	if m == nil {
		return Row{}, pass
	}
	a, b := c.sides(strings.TrimSpace(m[2]))
	if a == "" && b == "" {
		return Row{}, drop
	}
	return Row{
		Category: st.categoryFor(cleanLabel(m[1])),
		ValueA:   orPlaceholder(a),
		ValueB:   orPlaceholder(b),
	}, emit
}

// contextSplit handles unlabeled lines under an active category.
func contextSplit(_ comparer, line string, st state) (Row, verdict) {
	if st.category == "" {
		return Row{}, drop
	}
	if a, b, ok := splitVersus(line); ok {
		return Row{Category: st.category, ValueA: a, ValueB: b}, emit
	}
	if parts := splitSegments(line); len(parts) >= 2 {
		return Row{Category: st.category, ValueA: parts[0], ValueB: parts[1]}, emit
	}
	return Row{}, drop
}

// sides assigns payload values to A and B. Named mentions win over position;
// a repeated name keeps its last value.
func (c comparer) sides(payload string) (a, b string) {
	if ms := c.names.FindAllStringSubmatch(payload, -1); len(ms) >= 2 {
		for _, m := range ms {
			v := strings.TrimSpace(m[2])
			switch c.fold.String(m[1]) {
			case c.foldA:
				a = v
			case c.foldB:
				b = v
			}
		}
		return a, b
	}
	parts := splitSegments(payload)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		if x, y, ok := splitVersus(parts[0]); ok {
			return x, y
		}
		return parts[0], parts[0]
	default:
		return parts[0], parts[1]
	}
}

func splitVersus(s string) (string, string, bool) {
	m := versusRe.FindStringSubmatch(s)
	if m == nil {
		return "", "", false
	}
	a, b := strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	if a == "" || b == "" {
		return "", "", false
	}
	return a, b, true
}

func orPlaceholder(s string) string {
	if s == "" {
		return Placeholder
	}
	return s
}
