package textfile

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/guiguan/caster"
	"github.com/npillmayer/paratext"
)

// Scanner limits for pathological input; a single paragraph may be up to
// maxLineBytes long.
const (
	initialLineBytes = 64 * 1024
	maxLineBytes     = 4 * 1024 * 1024
)

// progressStride is the number of paragraphs between progress broadcasts.
const progressStride = 256

// Progress is broadcast to subscribers while a load is running.
type Progress struct {
	Paragraphs int   // paragraphs inserted so far
	Bytes      int64 // bytes consumed so far
	Done       bool  // true for the final event of a load
}

// Stats summarizes a completed load.
type Stats struct {
	Paragraphs int
	Bytes      int64
}

// Loader reads text into a paragraph buffer. A single loader may be
// reused for consecutive loads; its progress broadcast stays open until
// Close is called.
type Loader struct {
	cast *caster.Caster
}

// NewLoader creates a loader with an open progress broadcast.
func NewLoader() *Loader {
	return &Loader{
		cast: caster.New(nil),
	}
}

// Close shuts down the progress broadcast, releasing all subscribers.
func (l *Loader) Close() {
	l.cast.Close()
}

// Subscribe returns a channel of Progress events. The channel is closed
// when ctx is canceled or the loader is closed. Subscribers that fall
// behind miss events rather than stalling the load.
func (l *Loader) Subscribe(ctx context.Context) (<-chan interface{}, bool) {
	return l.cast.Sub(ctx, progressStride)
}

// Load reads the named file into buf, replacing its content. The file
// must be a regular file.
func (l *Loader) Load(name string, buf *paratext.Buffer) (Stats, error) {
	fi, err := os.Stat(name)
	if err != nil {
		return Stats{}, err
	}
	if !fi.Mode().IsRegular() {
		return Stats{}, fmt.Errorf("%s is not a regular file", name)
	}
	file, err := os.Open(name)
	if err != nil {
		return Stats{}, err
	}
	defer file.Close()
	tracer().Infof("loading %s (%d bytes)", name, fi.Size())
	return l.LoadReader(file, buf)
}

// LoadReader reads r line by line into buf, replacing its content. Lines
// become paragraphs; a trailing carriage return is stripped, so CRLF
// files load cleanly. All insertions happen inside one batch, deferring
// the height-index rebuild to the final commit.
func (l *Loader) LoadReader(r io.Reader, buf *paratext.Buffer) (Stats, error) {
	buf.Clear()
	batch, err := buf.BeginBatch()
	if err != nil {
		return Stats{}, err
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, initialLineBytes), maxLineBytes)

	var stats Stats
	for scanner.Scan() {
		line := scanner.Text()
		stats.Bytes += int64(len(line)) + 1
		line = strings.TrimSuffix(line, "\r")
		buf.InsertParagraph(stats.Paragraphs, line)
		stats.Paragraphs++
		if stats.Paragraphs%progressStride == 0 {
			l.cast.TryPub(Progress{Paragraphs: stats.Paragraphs, Bytes: stats.Bytes})
		}
	}
	if err := scanner.Err(); err != nil {
		batch.Discard()
		return Stats{}, err
	}
	if err := batch.Commit(); err != nil {
		return Stats{}, err
	}
	// the final event is delivered reliably; stride events may be dropped
	// for slow subscribers
	l.cast.Pub(Progress{Paragraphs: stats.Paragraphs, Bytes: stats.Bytes, Done: true})
	tracer().Infof("loaded %d paragraphs, %d bytes", stats.Paragraphs, stats.Bytes)
	return stats, nil
}
