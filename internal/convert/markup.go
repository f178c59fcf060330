package convert

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/xonecas/tabulon/internal/doc"
	"github.com/xonecas/tabulon/internal/tablecol"
)

// Parse reads the persisted HTML form into a fresh document model.
// Only the subset the editor owns is interpreted: paragraphs and
// tables. A table's first colgroup becomes its width attribute; any
// further colgroups are duplicates from earlier independent
// conversions and are collapsed (dropped) here.
func Parse(r io.Reader) (*doc.Document, error) {
	tree, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse markup: %w", err)
	}
	body := findNode(tree, atom.Body)
	if body == nil {
		return nil, fmt.Errorf("parse markup: no body")
	}

	document := doc.New()
	root := doc.NewNode(doc.KindRoot)
	for n := body.FirstChild; n != nil; n = n.NextSibling {
		if n.Type != html.ElementNode {
			continue
		}
		switch n.DataAtom {
		case atom.P:
			p := doc.NewNode(doc.KindParagraph)
			p.Append(doc.NewText(flattenText(n)))
			root.Append(p)
		case atom.Table:
			root.Append(parseTable(n))
		}
	}
	document.AddRoot(root)
	return document, nil
}

// parseTable lifts a table element into the model, reading its width
// list from the first column-definition block.
func parseTable(n *html.Node) *doc.Node {
	table := doc.NewNode(doc.KindTable)

	var widths tablecol.WidthList
	walkElements(n, func(el *html.Node) {
		switch el.DataAtom {
		case atom.Colgroup:
			if widths != nil {
				return // duplicate block: collapse
			}
			widths = parseColgroup(el)
		case atom.Tr:
			row := doc.NewNode(doc.KindRow)
			for c := el.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && (c.DataAtom == atom.Td || c.DataAtom == atom.Th) {
					cell := doc.NewNode(doc.KindCell)
					cell.Append(doc.NewText(flattenText(c)))
					row.Append(cell)
				}
			}
			table.Append(row)
		}
	})

	if len(widths) > 0 {
		table.SetInitialAttr(tablecol.WidthsAttr, widths.String())
	}
	return table
}

// parseColgroup reads col widths from inline styles, falling back to
// the mirrored width attribute kept for simple consumers.
func parseColgroup(cg *html.Node) tablecol.WidthList {
	var widths tablecol.WidthList
	for c := cg.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.DataAtom != atom.Col {
			continue
		}
		raw := styleProperty(attrValue(c, "style"), "width")
		if raw == "" {
			raw = attrValue(c, "width")
		}
		w, err := tablecol.ParseWidths(raw)
		if err != nil || len(w) != 1 {
			return nil
		}
		widths = append(widths, w[0])
	}
	return widths
}

// Serialize emits the document's persisted HTML form: one block per
// line, each resized table carrying exactly one column-definition
// block regardless of how many the model accumulated upstream.
func Serialize(document *doc.Document) (string, error) {
	var b strings.Builder
	for _, root := range document.Roots() {
		for _, block := range root.Children() {
			var n *html.Node
			switch block.Kind() {
			case doc.KindParagraph:
				n = element(atom.P)
				n.AppendChild(textNode(textOf(block)))
			case doc.KindTable:
				n = serializeTable(block)
			default:
				continue
			}
			if err := html.Render(&b, n); err != nil {
				return "", fmt.Errorf("serialize markup: %w", err)
			}
			b.WriteByte('\n')
		}
	}
	return b.String(), nil
}

// serializeTable builds the table's markup. The width attribute, when
// present and matching the column count, is emitted as the single
// colgroup plus the marker class and fixed-layout hint; a stale width
// list is dropped from the serialized form rather than remapped.
func serializeTable(node *doc.Node) *html.Node {
	table := element(atom.Table)

	var widths tablecol.WidthList
	if raw, ok := node.Attr(tablecol.WidthsAttr); ok {
		if w, err := tablecol.ParseWidths(raw); err == nil && len(w) == modelColumnCount(node) {
			widths = w
		}
	}
	if widths != nil {
		setAttr(table, "class", tablecol.ResizedClass)
		setAttr(table, "style", "table-layout:fixed")
		cg := element(atom.Colgroup)
		for _, w := range widths {
			col := element(atom.Col)
			pct := fmt.Sprintf("%.2f%%", w)
			setAttr(col, "style", "width:"+pct)
			setAttr(col, "width", pct)
			cg.AppendChild(col)
		}
		table.AppendChild(cg)
	}

	tbody := element(atom.Tbody)
	for _, rowNode := range node.Children() {
		if rowNode.Kind() != doc.KindRow {
			continue
		}
		tr := element(atom.Tr)
		for _, cellNode := range rowNode.Children() {
			if cellNode.Kind() != doc.KindCell {
				continue
			}
			td := element(atom.Td)
			td.AppendChild(textNode(textOf(cellNode)))
			tr.AppendChild(td)
		}
		tbody.AppendChild(tr)
	}
	table.AppendChild(tbody)
	return table
}

// --- html.Node helpers ------------------------------------------------------

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func setAttr(n *html.Node, key, val string) {
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// styleProperty extracts one property value from an inline style string.
func styleProperty(style, name string) string {
	for _, decl := range strings.Split(style, ";") {
		k, v, ok := strings.Cut(decl, ":")
		if ok && strings.TrimSpace(k) == name {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// findNode locates the first element with the given atom, depth-first.
func findNode(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findNode(c, a); found != nil {
			return found
		}
	}
	return nil
}

// walkElements visits every element under n, excluding n itself.
func walkElements(n *html.Node, fn func(*html.Node)) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			fn(c)
			walkElements(c, fn)
		}
	}
}

// flattenText concatenates all text under n.
func flattenText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(flattenText(c))
	}
	return b.String()
}
