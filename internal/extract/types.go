package extract

// Placeholder fills a side or category that could not be recovered.
const Placeholder = "—"

// Mode identifies which extraction strategy produced a Result.
type Mode string

const (
	// ModeComparison yields two-entity rows.
	ModeComparison Mode = "comparison"
	// ModeSections yields label/value fields grouped under headings.
	ModeSections Mode = "sections"
)

// Row is one line of a side-by-side comparison.
type Row struct {
	Category string `json:"category" yaml:"category"`
	ValueA   string `json:"valueA" yaml:"valueA"`
	ValueB   string `json:"valueB" yaml:"valueB"`
}

// Field is a label/value pair inside a Section. Label may be empty.
type Field struct {
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
	Value string `json:"value" yaml:"value"`
}

// Section groups fields under a heading.
type Section struct {
	Title  string  `json:"title" yaml:"title"`
	Fields []Field `json:"fields" yaml:"fields"`
}

// Result is what a Strategy returns. After a run Rows and Sections are
// non-nil, so a zero Result means the extraction has not run yet.
type Result struct {
	Mode     Mode      `json:"mode" yaml:"mode"`
	Rows     []Row     `json:"rows" yaml:"rows"`
	Sections []Section `json:"sections" yaml:"sections"`
	// Fallback is set when rows came from the coarse fallback pass.
	Fallback bool `json:"fallback,omitempty" yaml:"fallback,omitempty"`
}

// Ran reports whether the result came out of an extraction run.
func (r Result) Ran() bool {
	return r.Rows != nil && r.Sections != nil
}

// Empty reports whether nothing was recovered.
func (r Result) Empty() bool {
	return len(r.Rows) == 0 && len(r.Sections) == 0
}
