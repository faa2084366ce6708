package webform

import (
	"io"
	"strings"
)

// Media types routed by DecodeBody.
const (
	mimeURLEncoded = "application/x-www-form-urlencoded"
	mimeMultipart  = "multipart/form-data"
)

// DecodeBody decodes a request body according to its declared content type.
// The first ';'-separated token of contentType selects the decoder:
// urlencoded bodies are read in full and parsed as text, multipart bodies
// are streamed part by part with file content spooled to temporary files.
// maxLineLength caps any boundary or header line the multipart decoder
// reads; zero means DefaultMaxLineLength.
//
// For an unrecognised content type DecodeBody returns (nil, false, nil)
// without reading a single byte of body: the caller decides what to do with
// the untouched stream. That outcome is not an error.
func DecodeBody(contentType string, body io.Reader, maxLineLength int) (*Form, bool, error) {
	return decodeBody(contentType, body, maxLineLength, nil)
}

func decodeBody(contentType string, body io.Reader, maxLineLength int, store Storage) (*Form, bool, error) {
	token := contentType
	if i := strings.IndexByte(token, ';'); i >= 0 {
		token = token[:i]
	}

	switch strings.TrimSpace(token) {
	case mimeURLEncoded:
		data, err := io.ReadAll(body)
		if err != nil {
			return nil, false, readErr(err)
		}
		return &Form{Fields: DecodeURLEncoded(string(data))}, true, nil

	case mimeMultipart:
		boundary, err := boundaryParam(contentType)
		if err != nil {
			return nil, false, err
		}
		form, err := DecodeMultipart(body, boundary, maxLineLength, store)
		if err != nil {
			return nil, false, err
		}
		return form, true, nil

	default:
		return nil, false, nil
	}
}

// boundaryParam extracts the boundary parameter from a multipart content
// type. Surrounding quotes are stripped exactly once; the token is
// otherwise taken verbatim.
func boundaryParam(contentType string) (string, error) {
	params := strings.Split(contentType, ";")
	for _, p := range params[1:] {
		p = strings.TrimSpace(p)
		if !strings.HasPrefix(p, "boundary=") {
			continue
		}
		v := p[len("boundary="):]
		if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
			v = v[1 : len(v)-1]
		}
		return v, nil
	}
	return "", formatErrf("multipart content type %q has no boundary parameter", contentType)
}
