package webform

import "strings"

// DecodeURLEncoded parses an application/x-www-form-urlencoded body into an
// ordered field map. Both '&' and ';' are accepted as field separators,
// including mixed within one body. A segment without '=' becomes a key with
// an empty value, as does each empty segment produced by leading, trailing
// or adjacent separators. Keys and values are percent-decoded leniently via
// [Unescape], so malformed escapes never make decoding fail.
func DecodeURLEncoded(text string) Fields {
	var out Fields
	for text != "" {
		seg := text
		last := true
		if i := strings.IndexAny(text, "&;"); i >= 0 {
			seg, text = text[:i], text[i+1:]
			last = false
		}

		if eq := strings.IndexByte(seg, '='); eq >= 0 {
			out.Add(Unescape(seg[:eq]), Unescape(seg[eq+1:]))
		} else {
			out.Add(Unescape(seg), "")
		}

		if last {
			break
		}
		// A separator at the very end still delimits one final empty
		// segment.
		if text == "" {
			out.Add("", "")
		}
	}
	return out
}
