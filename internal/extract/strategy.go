package extract

import "strings"

// Strategy turns a free-form document into a Result. Implementations are
// deterministic, hold no state between calls and are safe for concurrent use.
type Strategy interface {
	Name() string
	Extract(doc string) Result
}

// For picks the comparison strategy when both names are present and the
// section strategy otherwise.
func For(nameA, nameB string) Strategy {
	a, b := strings.TrimSpace(nameA), strings.TrimSpace(nameB)
	if a != "" && b != "" {
		return NewComparison(a, b)
	}
	return Sections{}
}

// Extract runs the strategy selected by For over doc.
func Extract(doc, nameA, nameB string) Result {
	return For(nameA, nameB).Extract(doc)
}
