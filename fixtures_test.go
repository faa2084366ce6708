package webform_test

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/tomasbasham/webform"
)

// mpBody assembles a wire-format body from lines, joining with CRLF. The
// trailing element should be "" when the body ends with a line break.
func mpBody(lines ...string) string {
	return strings.Join(lines, "\r\n")
}

// memoryStorage spools file parts into in-memory sinks so tests can inspect
// both the written content and the sink lifecycle.
type memoryStorage struct {
	sinks []*memorySink
}

func (s *memoryStorage) CreateSink() (webform.FileSink, error) {
	sink := &memorySink{ref: fmt.Sprintf("mem-%d", len(s.sinks))}
	s.sinks = append(s.sinks, sink)
	return sink, nil
}

type memorySink struct {
	buf    bytes.Buffer
	ref    string
	closed bool
}

func (s *memorySink) Write(p []byte) (int, error) { return s.buf.Write(p) }

func (s *memorySink) Close() error {
	s.closed = true
	return nil
}

func (s *memorySink) Ref() string { return s.ref }
