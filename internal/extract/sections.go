package extract

import (
	"regexp"
	"strings"
)

var dashRe = regexp.MustCompile(`^([^-]+)\s+-\s+(.+)$`)

// Sections extracts label/value fields grouped under headings. It is used
// when no pair of entity names is available.
type Sections struct{}

func (Sections) Name() string { return string(ModeSections) }

func (Sections) Extract(doc string) Result {
	res := Result{Mode: ModeSections, Rows: []Row{}, Sections: []Section{}}
	var cur *Section
	flush := func() {
		if cur != nil && len(cur.Fields) > 0 {
			res.Sections = append(res.Sections, *cur)
		}
		cur = nil
	}
	for _, raw := range SplitLines(doc) {
		line := Classify(raw)
		if line.Kind == Heading {
			flush()
			cur = &Section{Title: line.Text}
			continue
		}
		f, ok := parseField(StripMarker(raw))
		if !ok {
			continue
		}
		if cur == nil {
			cur = &Section{}
		}
		cur.Fields = append(cur.Fields, f)
	}
	flush()
	return res
}

// parseField tries a colon split, then a spaced dash split, and otherwise
// keeps the whole line as a labelless value.
func parseField(line string) (Field, bool) {
	if line == "" {
		return Field{}, false
	}
	if m := labeledRe.FindStringSubmatch(line); m != nil {
		return Field{Label: cleanLabel(m[1]), Value: strings.TrimSpace(m[2])}, true
	}
	if m := dashRe.FindStringSubmatch(line); m != nil {
		return Field{Label: cleanLabel(m[1]), Value: strings.TrimSpace(m[2])}, true
	}
	return Field{Value: line}, true
}
