package webform

import (
	"io"
	"os"
	"strings"
)

// Field is a single decoded form entry.
type Field struct {
	Key   string
	Value string
}

// Fields is an ordered multimap of decoded form entries. Entries appear in
// the order they were encountered on the wire, and duplicate keys are kept
// as distinct entries rather than overwritten.
type Fields []Field

// Add appends an entry, preserving encounter order.
func (f *Fields) Add(key, value string) {
	*f = append(*f, Field{Key: key, Value: value})
}

// Get returns the first value recorded for key. The second return value
// reports whether the key is present at all, distinguishing a missing key
// from an empty value.
func (f Fields) Get(key string) (string, bool) {
	for _, e := range f {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

// Values returns every value recorded for key, in order.
func (f Fields) Values(key string) []string {
	var vals []string
	for _, e := range f {
		if e.Key == key {
			vals = append(vals, e.Value)
		}
	}
	return vals
}

// fields implements FieldSource, making an already-decoded field map
// directly re-encodable.
func (f Fields) fields(yield func(key, value string) bool) {
	for _, e := range f {
		if !yield(e.Key, e.Value) {
			return
		}
	}
}

// Header is an ordered multimap of the header lines of a single multipart
// part. Unlike Fields, lookups are case-insensitive, matching header field
// name semantics.
type Header []Field

// Add appends a header line, preserving wire order.
func (h *Header) Add(name, value string) {
	*h = append(*h, Field{Key: name, Value: value})
}

// Get returns the first value of the named header, or "" if absent.
func (h Header) Get(name string) string {
	for _, e := range h {
		if strings.EqualFold(e.Key, name) {
			return e.Value
		}
	}
	return ""
}

// Has reports whether the named header is present.
func (h Header) Has(name string) bool {
	for _, e := range h {
		if strings.EqualFold(e.Key, name) {
			return true
		}
	}
	return false
}

// FilePart describes one uploaded file: the part's own headers, the
// client-supplied filename (validated to be a plain path segment), and a
// reference to the spooled content. The backing storage is owned by the
// caller once decoding returns; the decoder never deletes it.
type FilePart struct {
	Headers  Header
	Filename string

	// TempPath is the opaque reference produced by the FileSink the part
	// body was written to. For the default temporary-file storage it is a
	// filesystem path.
	TempPath string

	// Size is the number of body bytes written to the sink.
	Size int64
}

// ContentType returns the part's declared Content-Type header, or "" if the
// part did not declare one.
func (p *FilePart) ContentType() string {
	return p.Headers.Get("Content-Type")
}

// Open opens the spooled content for reading. It is only meaningful for
// sinks whose reference is a filesystem path, such as those produced by
// TempFileStorage.
func (p *FilePart) Open() (io.ReadCloser, error) {
	return os.Open(p.TempPath)
}

// FileEntry associates a form field name with one uploaded file.
type FileEntry struct {
	Key  string
	Part *FilePart
}

// Files is an ordered multimap from form field name to uploaded file,
// following the same ordering and duplicate-key rules as Fields.
type Files []FileEntry

// Add appends an entry, preserving encounter order.
func (f *Files) Add(key string, part *FilePart) {
	*f = append(*f, FileEntry{Key: key, Part: part})
}

// Get returns the first file recorded for key, or nil if absent.
func (f Files) Get(key string) *FilePart {
	for _, e := range f {
		if e.Key == key {
			return e.Part
		}
	}
	return nil
}

// Form is the result of decoding a request body: simple fields and file
// uploads, each in wire order.
type Form struct {
	Fields Fields
	Files  Files
}

// RemoveFiles deletes the spooled content of every file part. The decoder
// never does this itself; cleanup is the caller's responsibility, and this
// is the explicit handle for it. The first removal error is returned but
// removal is attempted for every part regardless.
func (f *Form) RemoveFiles() error {
	var first error
	for _, e := range f.Files {
		if e.Part == nil || e.Part.TempPath == "" {
			continue
		}
		if err := os.Remove(e.Part.TempPath); err != nil && first == nil {
			first = err
		}
	}
	return first
}
