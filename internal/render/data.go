package render

import (
	"encoding/json"
	"io"

	yaml "gopkg.in/yaml.v3"

	"github.com/hyperifyio/gocompare/internal/extract"
)

// document is the machine-readable shape shared by the JSON and YAML outputs.
type document struct {
	NameA    string            `json:"nameA" yaml:"nameA"`
	NameB    string            `json:"nameB" yaml:"nameB"`
	Mode     extract.Mode      `json:"mode" yaml:"mode"`
	Fallback bool              `json:"fallback,omitempty" yaml:"fallback,omitempty"`
	Rows     []extract.Row     `json:"rows" yaml:"rows"`
	Sections []extract.Section `json:"sections,omitempty" yaml:"sections,omitempty"`
	Message  string            `json:"message,omitempty" yaml:"message,omitempty"`
}

func newDocument(t Table) document {
	d := document{
		NameA:    nameOr(t.NameA, "Company A"),
		NameB:    nameOr(t.NameB, "Company B"),
		Mode:     t.Result.Mode,
		Fallback: t.Result.Fallback,
		Rows:     t.Result.Rows,
		Sections: t.Result.Sections,
	}
	if d.Rows == nil {
		d.Rows = []extract.Row{}
	}
	if t.Result.Empty() {
		d.Message = EmptyMessage
	}
	return d
}

// JSON writes the result as indented JSON.
type JSON struct{}

func (JSON) Render(w io.Writer, t Table) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(newDocument(t))
}

// YAML writes the result as a YAML document.
type YAML struct{}

func (YAML) Render(w io.Writer, t Table) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(newDocument(t)); err != nil {
		return err
	}
	return enc.Close()
}
