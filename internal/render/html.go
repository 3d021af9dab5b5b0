package render

import (
	"io"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTML renders an HTML fragment. Text is escaped by html.Render.
type HTML struct{}

func (HTML) Render(w io.Writer, t Table) error {
	root := element(atom.Div, "class", "comparison-result")
	if t.sectionMode() {
		if len(t.Result.Sections) == 0 {
			p := element(atom.P, "class", "empty")
			p.AppendChild(text(EmptyMessage))
			root.AppendChild(p)
		}
		for _, s := range t.Result.Sections {
			sec := element(atom.Section)
			if s.Title != "" {
				h := element(atom.H2)
				h.AppendChild(text(s.Title))
				sec.AppendChild(h)
			}
			sec.AppendChild(htmlTable(fieldHeaders, fieldCells(s)))
			root.AppendChild(sec)
		}
	} else {
		root.AppendChild(htmlTable(t.Headers(), t.Cells()))
	}
	if err := html.Render(w, root); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func htmlTable(headers []string, rows [][]string) *html.Node {
	table := element(atom.Table, "class", "comparison")
	thead := element(atom.Thead)
	tr := element(atom.Tr)
	for _, h := range headers {
		th := element(atom.Th, "scope", "col")
		th.AppendChild(text(h))
		tr.AppendChild(th)
	}
	thead.AppendChild(tr)
	table.AppendChild(thead)

	tbody := element(atom.Tbody)
	if len(rows) == 0 {
		tr := element(atom.Tr)
		td := element(atom.Td, "colspan", strconv.Itoa(len(headers)), "class", "empty")
		td.AppendChild(text(EmptyMessage))
		tr.AppendChild(td)
		tbody.AppendChild(tr)
	}
	for _, r := range rows {
		tr := element(atom.Tr)
		for i, c := range r {
			tag := atom.Td
			if i == 0 {
				tag = atom.Th
			}
			cell := element(tag)
			if tag == atom.Th {
				cell.Attr = append(cell.Attr, html.Attribute{Key: "scope", Val: "row"})
			}
			cell.AppendChild(text(c))
			tr.AppendChild(cell)
		}
		tbody.AppendChild(tr)
	}
	table.AppendChild(tbody)
	return table
}

// element builds an element node; attrs are key/value pairs.
func element(a atom.Atom, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
