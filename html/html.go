package html

import (
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/paratext"
	"golang.org/x/net/html"
)

// Format references for inline markup recognized by FromHTML.
const (
	FormatBold paratext.FormatRef = iota + 1
	FormatItalic
	FormatCode
	FormatUnderline
)

// blockElements are the HTML elements that map to paragraphs.
var blockElements = map[string]bool{
	"p": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true,
	"li": true, "pre": true, "blockquote": true,
}

// inlineFormats maps inline element names to format references.
var inlineFormats = map[string]paratext.FormatRef{
	"b": FormatBold, "strong": FormatBold,
	"i": FormatItalic, "em": FormatItalic,
	"code": FormatCode, "tt": FormatCode,
	"u": FormatUnderline,
}

// FromHTML replaces the content of buf with the paragraphs of an HTML
// document read from r. Block-level elements (p, h1–h6, li, pre,
// blockquote) become paragraphs; recognized inline markup inside them
// becomes format runs. Returns the number of paragraphs created.
//
// All paragraphs are inserted inside one batch window, so loading a
// document of N paragraphs rebuilds the height index once.
func FromHTML(r io.Reader, buf *paratext.Buffer) (int, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return 0, err
	}
	var paras []extractedPara
	collectBlocks(doc, &paras)
	tracer().Debugf("html import: %d block elements", len(paras))

	buf.Clear()
	batch, err := buf.BeginBatch()
	if err != nil {
		return 0, err
	}
	for i, p := range paras {
		buf.InsertParagraph(i, p.text)
	}
	if err := batch.Commit(); err != nil {
		return 0, err
	}
	for i, p := range paras {
		if len(p.runs) > 0 {
			buf.SetFormatRuns(i, p.runs)
		}
	}
	return len(paras), nil
}

type extractedPara struct {
	text string
	runs []paratext.FormatRun
}

// collectBlocks walks the node tree and extracts one paragraph per
// block element. Nested block elements (an li inside a blockquote)
// yield the innermost blocks only.
func collectBlocks(n *html.Node, paras *[]extractedPara) {
	if n.Type == html.ElementNode && blockElements[n.Data] && !hasBlockChild(n) {
		var sb strings.Builder
		var runs []paratext.FormatRun
		collectInline(n, 0, &sb, &runs)
		text := strings.TrimRight(sb.String(), " ")
		for j := range runs {
			if runs[j].End > len(text) {
				runs[j].End = len(text)
			}
		}
		*paras = append(*paras, extractedPara{text: text, runs: runs})
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectBlocks(c, paras)
	}
}

func hasBlockChild(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && blockElements[c.Data] {
			return true
		}
		if hasBlockChild(c) {
			return true
		}
	}
	return false
}

// collectInline flattens the text content of n into sb, recording a
// format run for every recognized inline element.
func collectInline(n *html.Node, format paratext.FormatRef, sb *strings.Builder, runs *[]paratext.FormatRun) {
	if n.Type == html.TextNode {
		appendCollapsed(sb, n.Data)
		return
	}
	if n.Type != html.ElementNode && n.Type != html.DocumentNode {
		return
	}
	if f, ok := inlineFormats[n.Data]; ok && n.Type == html.ElementNode {
		format = f
		start := sb.Len()
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collectInline(c, format, sb, runs)
		}
		if end := sb.Len(); end > start {
			*runs = append(*runs, paratext.FormatRun{Start: start, End: end, Format: f})
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectInline(c, format, sb, runs)
	}
}

// appendCollapsed appends a text node's content with runs of whitespace
// folded into single blanks, the way browsers render text nodes.
// Boundary whitespace survives as one blank, so words separated by an
// element boundary stay separated.
func appendCollapsed(sb *strings.Builder, s string) {
	if s == "" {
		return
	}
	words := strings.Fields(s)
	leading := isSpace(s[0])
	trailing := isSpace(s[len(s)-1])
	if len(words) == 0 {
		if needsBlank(sb) {
			sb.WriteByte(' ')
		}
		return
	}
	if leading && needsBlank(sb) {
		sb.WriteByte(' ')
	}
	sb.WriteString(strings.Join(words, " "))
	if trailing {
		sb.WriteByte(' ')
	}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// needsBlank reports whether appending a blank would actually separate
// two words (no blank at the start of a paragraph or after another one).
func needsBlank(sb *strings.Builder) bool {
	s := sb.String()
	return len(s) > 0 && s[len(s)-1] != ' '
}

// Snapshot writes buf as a standalone HTML document to w. Every
// paragraph becomes a <p> element carrying its index, vertical position,
// height and height state as data attributes.
func Snapshot(buf *paratext.Buffer, w io.Writer) error {
	_, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>paragraph buffer snapshot</title></head>
<body>
<main data-paragraphs="%d" data-total-height="%.2f">
`, buf.ParagraphCount(), buf.TotalHeight())
	if err != nil {
		return err
	}
	for i := 0; i < buf.ParagraphCount(); i++ {
		_, err = fmt.Fprintf(w,
			"<p data-index=\"%d\" data-y=\"%.2f\" data-height=\"%.2f\" data-state=\"%s\">%s</p>\n",
			i, buf.ParagraphY(i), buf.ParagraphHeight(i), buf.HeightState(i),
			html.EscapeString(buf.ParagraphText(i)))
		if err != nil {
			return err
		}
	}
	_, err = fmt.Fprint(w, "</main>\n</body>\n</html>\n")
	return err
}
