package webform

import (
	"fmt"
	"io"
	"os"
)

// FileSink receives the body of one file part. It is written sequentially,
// exactly once, and closed before the decoder moves on to the next part.
// Ref returns an opaque reference to the spooled content, recorded on the
// resulting [FilePart]; for file-backed sinks this is a filesystem path.
type FileSink interface {
	io.Writer
	Close() error
	Ref() string
}

// Storage produces one FileSink per file part. Ownership of every sink
// created during a decode transfers to the caller with the returned form;
// the decoder never deletes spooled content.
type Storage interface {
	CreateSink() (FileSink, error)
}

// TempFileStorage is the default Storage, spooling each file part to a
// temporary file created with [os.CreateTemp].
type TempFileStorage struct {
	// Dir is the directory to create files in. Empty means the system
	// temporary directory.
	Dir string

	// Pattern is the CreateTemp naming pattern. Empty means "webform-*".
	Pattern string
}

// CreateSink creates a new temporary file.
func (s TempFileStorage) CreateSink() (FileSink, error) {
	pattern := s.Pattern
	if pattern == "" {
		pattern = "webform-*"
	}
	f, err := os.CreateTemp(s.Dir, pattern)
	if err != nil {
		return nil, fmt.Errorf("webform: create temporary file: %w", err)
	}
	return &tempFileSink{f: f}, nil
}

type tempFileSink struct {
	f *os.File
}

func (s *tempFileSink) Write(p []byte) (int, error) { return s.f.Write(p) }

func (s *tempFileSink) Close() error { return s.f.Close() }

func (s *tempFileSink) Ref() string { return s.f.Name() }
