package webform

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
)

// DefaultMaxLineLength caps boundary and header lines when the caller does
// not supply a limit of their own.
const DefaultMaxLineLength = 4096

const bufSize = 4096

// Decoder binds a request body to its decode options.
type Decoder struct {
	r io.Reader

	// MaxLineLength caps any boundary or header line read from the body.
	// Zero means DefaultMaxLineLength.
	MaxLineLength int

	// Storage receives the bodies of multipart file parts. Nil means a
	// zero-value [TempFileStorage].
	Storage Storage
}

// NewDecoder creates a new [Decoder] that reads from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// Decode decodes the body according to contentType. It behaves exactly like
// [DecodeBody], using the decoder's options.
func (d *Decoder) Decode(contentType string) (*Form, bool, error) {
	return decodeBody(contentType, d.r, d.MaxLineLength, d.Storage)
}

// readLine reads one line, stripping the trailing CRLF or LF. A line longer
// than max fails with a LimitError before the excess is buffered.
func readLine(br *bufio.Reader, max int) (string, error) {
	var b strings.Builder
	for {
		c, err := br.ReadByte()
		if err == io.EOF {
			return "", formatErrf("unexpected end of body inside line")
		}
		if err != nil {
			return "", readErr(err)
		}
		if c == '\n' {
			break
		}
		if b.Len() >= max {
			return "", &LimitError{Limit: max}
		}
		b.WriteByte(c)
	}
	return strings.TrimSuffix(b.String(), "\r"), nil
}

// copyExactly copies exactly n bytes from br to w.
func copyExactly(br *bufio.Reader, w io.Writer, n int64) error {
	copied, err := io.CopyN(w, br, n)
	if err == io.EOF {
		return formatErrf("body ends after %d of %d declared bytes", copied, n)
	}
	if err != nil {
		return fmt.Errorf("webform: copy part body: %w", err)
	}
	return nil
}

// copyUntil copies from br to w until delim is found, consuming but not
// writing the delimiter. The search is a sliding window over the read
// buffer: at most len(delim)-1 bytes are held back between refills, so
// memory stays bounded no matter how large the body is. Returns the number
// of bytes written.
func copyUntil(br *bufio.Reader, w io.Writer, delim []byte) (int64, error) {
	var written int64
	for {
		peek, err := br.Peek(bufSize)
		if i := bytes.Index(peek, delim); i >= 0 {
			if _, werr := w.Write(peek[:i]); werr != nil {
				return written, fmt.Errorf("webform: copy part body: %w", werr)
			}
			written += int64(i)
			br.Discard(i + len(delim))
			return written, nil
		}
		if err == io.EOF {
			return written, formatErrf("body ends before boundary %q", delim)
		}
		if err != nil {
			return written, readErr(err)
		}

		// Not found: everything except a possible delimiter prefix at the
		// window's tail is safe to flush.
		n := len(peek) - len(delim) + 1
		if _, werr := w.Write(peek[:n]); werr != nil {
			return written, fmt.Errorf("webform: copy part body: %w", werr)
		}
		written += int64(n)
		br.Discard(n)
	}
}

// expectBytes consumes exactly len(want) bytes and requires them to equal
// want.
func expectBytes(br *bufio.Reader, want []byte) error {
	got := make([]byte, len(want))
	if _, err := io.ReadFull(br, got); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return formatErrf("body ends where boundary %q was expected", want)
		}
		return readErr(err)
	}
	if !bytes.Equal(got, want) {
		return formatErrf("expected boundary %q, got %q", want, got)
	}
	return nil
}
