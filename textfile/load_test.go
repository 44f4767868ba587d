package textfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/paratext"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func testMetrics() paratext.Metrics {
	return paratext.Metrics{LineHeight: 10, CharsPerLine: 40}
}

func TestLoadReaderMatchesIncrementalBuild(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "paratext")
	defer teardown()
	//
	var sb strings.Builder
	for i := 0; i < 700; i++ {
		fmt.Fprintf(&sb, "paragraph number %d with some filler text\n", i)
	}
	text := sb.String()

	loaded := paratext.NewBuffer(testMetrics())
	l := NewLoader()
	defer l.Close()
	stats, err := l.LoadReader(strings.NewReader(text), loaded)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Paragraphs != 700 {
		t.Fatalf("loaded %d paragraphs, want 700", stats.Paragraphs)
	}

	reference := paratext.NewBuffer(testMetrics())
	for i, line := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		reference.InsertParagraph(i, line)
	}
	if loaded.ParagraphCount() != reference.ParagraphCount() {
		t.Fatalf("paragraph counts differ: %d vs %d",
			loaded.ParagraphCount(), reference.ParagraphCount())
	}
	if loaded.TotalHeight() != reference.TotalHeight() {
		t.Errorf("total heights differ: %g vs %g",
			loaded.TotalHeight(), reference.TotalHeight())
	}
	for i := 0; i < loaded.ParagraphCount(); i++ {
		if loaded.ParagraphText(i) != reference.ParagraphText(i) {
			t.Fatalf("paragraph %d differs: %q vs %q",
				i, loaded.ParagraphText(i), reference.ParagraphText(i))
		}
		if loaded.ParagraphHeight(i) != reference.ParagraphHeight(i) {
			t.Fatalf("height %d differs: %g vs %g",
				i, loaded.ParagraphHeight(i), reference.ParagraphHeight(i))
		}
	}
}

func TestLoadReplacesContent(t *testing.T) {
	buf := paratext.NewBuffer(testMetrics())
	buf.InsertParagraph(0, "stale content")

	l := NewLoader()
	defer l.Close()
	if _, err := l.LoadReader(strings.NewReader("fresh\ncontent"), buf); err != nil {
		t.Fatal(err)
	}
	if buf.ParagraphCount() != 2 {
		t.Fatalf("paragraph count = %d, want 2", buf.ParagraphCount())
	}
	if buf.ParagraphText(0) != "fresh" {
		t.Errorf("paragraph 0 = %q", buf.ParagraphText(0))
	}
}

func TestLoadStripsCarriageReturns(t *testing.T) {
	buf := paratext.NewBuffer(testMetrics())
	l := NewLoader()
	defer l.Close()
	if _, err := l.LoadReader(strings.NewReader("one\r\ntwo\r\n"), buf); err != nil {
		t.Fatal(err)
	}
	if buf.ParagraphText(0) != "one" || buf.ParagraphText(1) != "two" {
		t.Errorf("CRLF not stripped: %q, %q", buf.ParagraphText(0), buf.ParagraphText(1))
	}
}

func TestLoadEmptyInput(t *testing.T) {
	buf := paratext.NewBuffer(testMetrics())
	l := NewLoader()
	defer l.Close()
	stats, err := l.LoadReader(strings.NewReader(""), buf)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Paragraphs != 0 || buf.ParagraphCount() != 0 {
		t.Errorf("empty input produced %d paragraphs", buf.ParagraphCount())
	}
}

func TestLoadFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "sample.txt")
	if err := os.WriteFile(name, []byte("alpha\nbeta\ngamma\n"), 0644); err != nil {
		t.Fatal(err)
	}

	buf := paratext.NewBuffer(testMetrics())
	l := NewLoader()
	defer l.Close()
	stats, err := l.Load(name, buf)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Paragraphs != 3 {
		t.Errorf("loaded %d paragraphs, want 3", stats.Paragraphs)
	}
	if buf.ParagraphText(2) != "gamma" {
		t.Errorf("paragraph 2 = %q", buf.ParagraphText(2))
	}

	if _, err := l.Load(t.TempDir(), buf); err == nil {
		t.Errorf("loading a directory should fail")
	}
}

func TestLoadProgressBroadcast(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 3*progressStride; i++ {
		sb.WriteString("some paragraph\n")
	}

	l := NewLoader()
	ch, ok := l.Subscribe(context.Background())
	if !ok {
		t.Fatal("subscribe failed")
	}

	buf := paratext.NewBuffer(testMetrics())
	if _, err := l.LoadReader(strings.NewReader(sb.String()), buf); err != nil {
		t.Fatal(err)
	}
	l.Close() // closes the subscriber channel

	var events []Progress
	for m := range ch {
		events = append(events, m.(Progress))
	}
	if len(events) == 0 {
		t.Fatal("no progress events received")
	}
	final := events[len(events)-1]
	if !final.Done {
		t.Errorf("final event not marked Done: %+v", final)
	}
	if final.Paragraphs != 3*progressStride {
		t.Errorf("final event reports %d paragraphs, want %d", final.Paragraphs, 3*progressStride)
	}
	for i := 1; i < len(events); i++ {
		if events[i].Paragraphs < events[i-1].Paragraphs {
			t.Errorf("progress went backwards: %d after %d",
				events[i].Paragraphs, events[i-1].Paragraphs)
		}
	}
}
