package extract

import (
	"bytes"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var htmlStartRe = regexp.MustCompile(`(?i)^<(!doctype html|html|body|main|article|section|div|table|h[1-6]|ul|ol|p)[\s>]`)

// LooksLikeHTML reports whether doc starts with a block-level HTML tag.
func LooksLikeHTML(doc string) bool {
	return htmlStartRe.MatchString(strings.TrimSpace(doc))
}

// FromHTML converts an HTML comparison into the line-oriented Markdown the
// strategies read. Headings become "#" lines, list items "- " lines and table
// rows "- label: a | b". Header rows, navigation chrome and elements marked
// class="empty" are skipped. Content prefers <main> or <article> over <body>.
func FromHTML(input []byte) string {
	node, err := html.Parse(bytes.NewReader(input))
	if err != nil || node == nil {
		return ""
	}
	root := findFirst(node, atom.Main)
	if root == nil {
		root = findFirst(node, atom.Article)
	}
	if root == nil {
		root = findFirst(node, atom.Body)
	}
	if root == nil {
		root = node
	}
	var w htmlLines
	w.walk(root)
	w.flush()
	return strings.Join(w.lines, "\n")
}

// htmlLines accumulates output lines plus the inline text of the current
// paragraph.
type htmlLines struct {
	lines []string
	cur   strings.Builder
}

func (w *htmlLines) flush() {
	if s := collapseSpaces(w.cur.String()); s != "" {
		w.lines = append(w.lines, s)
	}
	w.cur.Reset()
}

func (w *htmlLines) add(line string) {
	w.flush()
	if line = strings.TrimSpace(line); line != "" {
		w.lines = append(w.lines, line)
	}
}

func (w *htmlLines) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		w.cur.WriteString(n.Data)
		w.cur.WriteByte(' ')
		return
	case html.ElementNode:
		if skipElement(n) {
			return
		}
		switch n.DataAtom {
		case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
			level := int(n.Data[1] - '0')
			if t := textOf(n); t != "" {
				w.add(strings.Repeat("#", level) + " " + t)
			}
			return
		case atom.Li:
			if t := textOf(n); t != "" {
				w.add("- " + t)
			}
			return
		case atom.Thead:
			return
		case atom.Tr:
			w.add(tableRow(n))
			return
		case atom.Pre:
			w.flush()
			for _, ln := range strings.Split(textRaw(n), "\n") {
				w.add(ln)
			}
			return
		case atom.Br:
			w.flush()
			return
		case atom.P, atom.Div, atom.Section, atom.Table, atom.Ul, atom.Ol, atom.Blockquote:
			w.flush()
			defer w.flush()
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}
}

// tableRow renders one <tr>. Rows made only of <th> cells are headers.
func tableRow(tr *html.Node) string {
	var cells []string
	allHeaders := true
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || (c.DataAtom != atom.Td && c.DataAtom != atom.Th) || skipElement(c) {
			continue
		}
		if c.DataAtom == atom.Td {
			allHeaders = false
		}
		cells = append(cells, textOf(c))
	}
	switch {
	case len(cells) == 0 || allHeaders:
		return ""
	case len(cells) == 1:
		return cells[0]
	case cells[0] == "":
		return strings.Join(cells[1:], " | ")
	default:
		return "- " + cells[0] + ": " + strings.Join(cells[1:], " | ")
	}
}

func skipElement(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Script, atom.Style, atom.Noscript, atom.Nav, atom.Footer, atom.Aside, atom.Iframe, atom.Head:
		return true
	}
	for _, a := range n.Attr {
		key := strings.ToLower(a.Key)
		if key != "id" && key != "class" {
			continue
		}
		for _, f := range strings.Fields(strings.ToLower(a.Val)) {
			if f == "empty" || strings.Contains(f, "cookie") || strings.Contains(f, "consent") {
				return true
			}
		}
	}
	return false
}

func findFirst(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if res := findFirst(c, a); res != nil {
			return res
		}
	}
	return nil
}

// textOf returns the collapsed text content of n.
func textOf(n *html.Node) string {
	return collapseSpaces(textRaw(n))
}

func textRaw(n *html.Node) string {
	var b strings.Builder
	var dfs func(*html.Node)
	dfs = func(cur *html.Node) {
		if cur.Type == html.TextNode {
			b.WriteString(cur.Data)
			return
		}
		if cur.Type == html.ElementNode {
			if skipElement(cur) {
				return
			}
			if cur.DataAtom == atom.Br {
				b.WriteByte('\n')
			}
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			dfs(c)
		}
	}
	dfs(n)
	return b.String()
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
