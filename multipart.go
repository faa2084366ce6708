package webform

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// maxBoundaryLength is the RFC 2046 cap on boundary tokens.
const maxBoundaryLength = 70

// DecodeMultipart decodes a multipart/form-data body delimited by boundary.
// Parts carrying a filename in their Content-Disposition are streamed into
// sinks obtained from store and collected as file entries; all other parts
// become text fields. Parts are returned in wire order. maxLineLength caps
// boundary and header lines (zero means DefaultMaxLineLength); a nil store
// means a zero-value [TempFileStorage].
//
// Any error aborts the decode and the partial form must be discarded. The
// sink of a part whose copy fails is closed, but content spooled for
// already-completed parts is left in place either way: removing it is the
// caller's job, typically via [Form.RemoveFiles].
func DecodeMultipart(body io.Reader, boundary string, maxLineLength int, store Storage) (*Form, error) {
	if len(boundary) == 0 || len(boundary) > maxBoundaryLength {
		return nil, formatErrf("boundary must be 1 to %d bytes, got %d", maxBoundaryLength, len(boundary))
	}
	if maxLineLength <= 0 {
		maxLineLength = DefaultMaxLineLength
	}
	if store == nil {
		store = TempFileStorage{}
	}

	br := bufio.NewReaderSize(body, bufSize)
	delim := []byte("\r\n--" + boundary)

	// The first line opens the first part. No preamble is tolerated: it
	// must match the boundary byte for byte.
	line, err := readLine(br, maxLineLength)
	if err != nil {
		return nil, err
	}
	if line != "--"+boundary {
		return nil, formatErrf("first line %q does not match boundary %q", line, "--"+boundary)
	}

	form := &Form{}
	for {
		hdr, err := readHeaderBlock(br, maxLineLength)
		if err != nil {
			return nil, err
		}
		if !hdr.Has("Content-Disposition") {
			return nil, formatErrf("part has no Content-Disposition header")
		}
		name, filename, isFile, err := parseDisposition(hdr.Get("Content-Disposition"))
		if err != nil {
			return nil, err
		}

		if isFile {
			if err := validateFilename(filename); err != nil {
				return nil, err
			}
			part, err := decodeFilePart(br, hdr, filename, delim, store)
			if err != nil {
				return nil, err
			}
			form.Files.Add(name, part)
		} else {
			var buf bytes.Buffer
			if _, err := copyUntil(br, &buf, delim); err != nil {
				return nil, err
			}
			form.Fields.Add(name, buf.String())
		}

		// Two bytes follow every consumed delimiter: "--" closes the body,
		// CRLF opens the next part.
		var tail [2]byte
		if _, err := io.ReadFull(br, tail[:]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return nil, formatErrf("body ends directly after boundary")
			}
			return nil, readErr(err)
		}
		switch {
		case tail[0] == '-' && tail[1] == '-':
			if _, err := io.Copy(io.Discard, br); err != nil {
				return nil, readErr(err)
			}
			return form, nil
		case tail[0] == '\r' && tail[1] == '\n':
			// next part
		default:
			return nil, formatErrf("unexpected bytes %q after part body", tail)
		}
	}
}

// decodeFilePart copies one file part's body into a fresh sink. With a
// declared Content-Length the copy is exact and the following boundary is
// re-validated; otherwise the body runs to wherever the boundary is found.
func decodeFilePart(br *bufio.Reader, hdr Header, filename string, delim []byte, store Storage) (*FilePart, error) {
	var declared int64 = -1
	if cl := hdr.Get("Content-Length"); cl != "" {
		n, err := strconv.ParseInt(cl, 10, 64)
		if err != nil || n < 0 {
			return nil, formatErrf("malformed Content-Length %q", cl)
		}
		declared = n
	}

	sink, err := store.CreateSink()
	if err != nil {
		return nil, fmt.Errorf("webform: acquire sink: %w", err)
	}

	var size int64
	if declared >= 0 {
		err = copyExactly(br, sink, declared)
		if err == nil {
			err = expectBytes(br, delim)
		}
		size = declared
	} else {
		size, err = copyUntil(br, sink, delim)
	}
	if err != nil {
		sink.Close()
		return nil, err
	}
	if err := sink.Close(); err != nil {
		return nil, fmt.Errorf("webform: close sink: %w", err)
	}

	return &FilePart{
		Headers:  hdr,
		Filename: filename,
		TempPath: sink.Ref(),
		Size:     size,
	}, nil
}

// parseDisposition extracts the name and filename parameters from a
// Content-Disposition value. The value is scanned left to right: the
// filename parameter is only recognised after the name match, so a
// disposition placing filename before name yields the filename text as the
// field name. This positional behaviour is part of the wire contract.
func parseDisposition(cd string) (name, filename string, isFile bool, err error) {
	rest := cd
	if i := strings.Index(rest, "name="); i >= 0 {
		name, rest, err = parseParamValue(rest[i+len("name="):])
		if err != nil {
			return "", "", false, err
		}
	}
	if i := strings.Index(rest, "filename="); i >= 0 {
		filename, _, err = parseParamValue(rest[i+len("filename="):])
		if err != nil {
			return "", "", false, err
		}
		isFile = true
	}
	return name, filename, isFile, nil
}

// parseParamValue lexes one parameter value. A value opening with a quote
// runs to the next unescaped quote, with \" unescaped to "; a bare value
// runs verbatim to the next ';' or the end of the string.
func parseParamValue(s string) (val, rest string, err error) {
	if s == "" {
		return "", "", nil
	}
	if s[0] != '"' {
		if i := strings.IndexByte(s, ';'); i >= 0 {
			return s[:i], s[i:], nil
		}
		return s, "", nil
	}

	var b strings.Builder
	for i := 1; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) && s[i+1] == '"' {
			b.WriteByte('"')
			i++
			continue
		}
		if c == '"' {
			return b.String(), s[i+1:], nil
		}
		b.WriteByte(c)
	}
	return "", "", formatErrf("unterminated quoted value in Content-Disposition")
}

// validateFilename requires the client-supplied filename to be a plain path
// segment, rejecting anything that could traverse outside a target
// directory when the caller stores the upload under its original name.
func validateFilename(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, "/\\\x00") {
		return formatErrf("invalid filename %q", name)
	}
	return nil
}
