package html

import (
	"bytes"
	"strings"
	"testing"

	"github.com/npillmayer/paratext"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"golang.org/x/net/html"
)

func testMetrics() paratext.Metrics {
	return paratext.Metrics{LineHeight: 10, CharsPerLine: 40}
}

func TestFromHTML(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paratext")
	defer teardown()
	//
	r := strings.NewReader(`
<!DOCTYPE html>
<html>
<body>
<h1>My First Heading</h1>
<p>My <b>first</b> paragraph.</p>
<p>Some <em>emphasized</em> and <code>literal</code> text.</p>
</body>
</html>
`)
	buf := paratext.NewBuffer(testMetrics())
	n, err := FromHTML(r, buf)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 || buf.ParagraphCount() != 3 {
		t.Fatalf("imported %d paragraphs, want 3", n)
	}
	if got := buf.ParagraphText(0); got != "My First Heading" {
		t.Errorf("paragraph 0 = %q", got)
	}
	if got := buf.ParagraphText(1); got != "My first paragraph." {
		t.Errorf("paragraph 1 = %q", got)
	}

	runs := buf.FormatRuns(1)
	if len(runs) != 1 {
		t.Fatalf("paragraph 1 has %d format runs, want 1", len(runs))
	}
	run := runs[0]
	if run.Format != FormatBold {
		t.Errorf("run format = %d, want bold", run.Format)
	}
	if got := buf.ParagraphText(1)[run.Start:run.End]; got != "first" {
		t.Errorf("bold run covers %q, want \"first\"", got)
	}

	runs = buf.FormatRuns(2)
	if len(runs) != 2 {
		t.Fatalf("paragraph 2 has %d format runs, want 2", len(runs))
	}
	if runs[0].Format != FormatItalic || runs[1].Format != FormatCode {
		t.Errorf("run formats = %d, %d", runs[0].Format, runs[1].Format)
	}
	text := buf.ParagraphText(2)
	if got := text[runs[1].Start:runs[1].End]; got != "literal" {
		t.Errorf("code run covers %q", got)
	}
}

func TestFromHTMLNestedBlocks(t *testing.T) {
	r := strings.NewReader(`<blockquote><p>inner one</p><p>inner two</p></blockquote>`)
	buf := paratext.NewBuffer(testMetrics())
	n, err := FromHTML(r, buf)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("imported %d paragraphs, want 2 (innermost blocks)", n)
	}
	if buf.ParagraphText(0) != "inner one" || buf.ParagraphText(1) != "inner two" {
		t.Errorf("paragraphs = %q, %q", buf.ParagraphText(0), buf.ParagraphText(1))
	}
}

func TestFromHTMLReplacesContent(t *testing.T) {
	buf := paratext.NewBuffer(testMetrics())
	buf.InsertParagraph(0, "old")
	buf.InsertParagraph(1, "stale")
	if _, err := FromHTML(strings.NewReader("<p>new</p>"), buf); err != nil {
		t.Fatal(err)
	}
	if buf.ParagraphCount() != 1 || buf.ParagraphText(0) != "new" {
		t.Errorf("buffer not replaced: %d paragraphs", buf.ParagraphCount())
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	buf := paratext.NewBuffer(testMetrics())
	buf.InsertParagraph(0, "first paragraph")
	buf.InsertParagraph(1, "second <escaped> & paragraph")
	buf.CommitMeasuredHeight(0, 24)

	var out bytes.Buffer
	if err := Snapshot(buf, &out); err != nil {
		t.Fatal(err)
	}
	doc, err := html.Parse(&out)
	if err != nil {
		t.Fatalf("snapshot is not parseable HTML: %v", err)
	}

	var ps []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "p" {
			ps = append(ps, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	if len(ps) != 2 {
		t.Fatalf("snapshot has %d <p> elements, want 2", len(ps))
	}

	attrs := map[string]string{}
	for _, a := range ps[0].Attr {
		attrs[a.Key] = a.Val
	}
	if attrs["data-index"] != "0" || attrs["data-height"] != "24.00" {
		t.Errorf("paragraph 0 attributes = %v", attrs)
	}
	if attrs["data-state"] != "Calculated" {
		t.Errorf("paragraph 0 state attribute = %q", attrs["data-state"])
	}
	if ps[1].FirstChild == nil || ps[1].FirstChild.Data != "second <escaped> & paragraph" {
		t.Errorf("escaped text did not survive the round trip")
	}
}
