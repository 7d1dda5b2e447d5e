package normalise

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// elements whose content never reaches the reader
const droppedSelector = "script, style, head, title, noscript, template, [hidden], " +
	"[style*='display:none'], [style*='display: none']"

var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"caption": true, "center": true, "dd": true, "div": true, "dl": true,
	"dt": true, "fieldset": true, "figcaption": true, "figure": true,
	"footer": true, "form": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true, "header": true, "hr": true,
	"li": true, "main": true, "nav": true, "ol": true, "p": true,
	"pre": true, "section": true, "table": true, "tbody": true,
	"thead": true, "tfoot": true, "ul": true,
}

// HTMLToText renders an HTML exhibit as plain text. Table rows become
// lines with cells joined by " | ".
func HTMLToText(raw string) (text string) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("html walk failed, using fallback", "panic", r)
			text = fallbackText(raw)
		}
	}()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		logger.Warn("html parse failed, using fallback", "error", err)
		return fallbackText(raw)
	}
	doc.Find(droppedSelector).Remove()

	var b strings.Builder
	for _, n := range doc.Selection.Nodes {
		walk(&b, n)
	}
	return b.String()
}

func walk(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.CommentNode, html.DoctypeNode:
		return
	case html.ElementNode:
		name := strings.ToLower(n.Data)
		switch {
		case name == "br":
			b.WriteString("\n")
			return
		case name == "tr":
			if row := tableRow(n); row != "" {
				b.WriteString("\n" + row + "\n")
			}
			return
		case name == "td" || name == "th":
			// a cell outside a row still reads as inline text
			b.WriteString(" " + inlineText(n) + " ")
			return
		case blockElements[name]:
			b.WriteString("\n")
			walkChildren(b, n)
			b.WriteString("\n")
			return
		}
	}
	walkChildren(b, n)
}

func walkChildren(b *strings.Builder, n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(b, c)
	}
}

// tableRow joins the non-empty cells of a row. Currency and closing
// markers that filings put in their own cells are glued to the figure.
func tableRow(tr *html.Node) string {
	var cells []string
	glueNext := false
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		name := strings.ToLower(c.Data)
		if name != "td" && name != "th" {
			continue
		}
		cell := inlineText(c)
		switch {
		case cell == "":
			continue
		case glueNext && len(cells) > 0:
			cells[len(cells)-1] += cell
			glueNext = false
			continue
		case isClosingMarker(cell) && len(cells) > 0:
			cells[len(cells)-1] += cell
			continue
		}
		cells = append(cells, cell)
		glueNext = cell == "$" || cell == "(" || cell == "$("
	}
	return strings.Join(cells, " | ")
}

func isClosingMarker(cell string) bool {
	switch cell {
	case ")", "%", ")%", "%)":
		return true
	}
	return false
}

// inlineText flattens a node into a single whitespace-collapsed line.
func inlineText(n *html.Node) string {
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteString(" ")
			return
		}
		if n.Type == html.ElementNode && strings.ToLower(n.Data) == "br" {
			b.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

var (
	scriptBlocks = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleBlocks  = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	headBlock    = regexp.MustCompile(`(?is)<head(\s[^>]*)?>.*?</head>`)
	lineBreaks   = regexp.MustCompile(`(?i)<br\s*/?>|</(p|div|tr|li|h[1-6]|table)>`)
	cellBreaks   = regexp.MustCompile(`(?i)</t[dh]>`)
	anyTag       = regexp.MustCompile(`(?s)<[^>]*>`)
)

// fallbackText strips markup with regular expressions. It only runs when
// the DOM route fails.
func fallbackText(raw string) string {
	text := scriptBlocks.ReplaceAllString(raw, "")
	text = styleBlocks.ReplaceAllString(text, "")
	text = headBlock.ReplaceAllString(text, "")
	text = lineBreaks.ReplaceAllString(text, "\n")
	text = cellBreaks.ReplaceAllString(text, " | ")
	text = anyTag.ReplaceAllString(text, "")
	return html.UnescapeString(text)
}
