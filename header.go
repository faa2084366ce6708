package webform

import (
	"bufio"
	"strings"
)

// readHeaderBlock reads header lines up to and including the blank line
// terminating the block, returning them in wire order. Each line must be a
// "name: value" pair; max caps individual line length.
func readHeaderBlock(br *bufio.Reader, max int) (Header, error) {
	var h Header
	for {
		line, err := readLine(br, max)
		if err != nil {
			return nil, err
		}
		if line == "" {
			return h, nil
		}
		i := strings.IndexByte(line, ':')
		if i < 0 {
			return nil, formatErrf("header line %q has no colon", line)
		}
		h.Add(line[:i], strings.TrimSpace(line[i+1:]))
	}
}
