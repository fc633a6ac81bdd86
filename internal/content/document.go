package content

import (
	"bytes"
	"strings"
)

// Document is a page source split into its header block and body.
type Document struct {
	Headers Headers
	Body    []byte
}

// Parse splits raw page bytes into headers and body.
//
// The header block runs until the first blank line, which is consumed. Lines
// starting with a space or tab continue the previous header. If the very first
// line is not a header the document has no header block and the whole input is
// the body. A later line that is neither a header nor a continuation ends the
// block early and starts the body. CRLF line endings are accepted.
func Parse(raw []byte) Document {
	var headers Headers
	rest := raw

	for len(rest) > 0 {
		line, next := cutLine(rest)

		if len(line) == 0 {
			if len(headers) == 0 {
				break
			}
			return Document{Headers: headers, Body: next}
		}

		if line[0] == ' ' || line[0] == '\t' {
			if len(headers) == 0 {
				break
			}
			last := &headers[len(headers)-1]
			folded := strings.TrimSpace(string(line))
			if last.Value == "" {
				last.Value = folded
			} else if folded != "" {
				last.Value += " " + folded
			}
			rest = next
			continue
		}

		key, value, ok := splitHeader(line)
		if !ok {
			break
		}
		headers = append(headers, Header{Key: key, Value: value})
		rest = next
	}

	if len(headers) == 0 {
		return Document{Body: raw}
	}
	return Document{Headers: headers, Body: rest}
}

// Template returns the template header, treating a blank value as absent.
func (d Document) Template() (string, bool) {
	name, ok := d.Headers.Get("template")
	name = strings.TrimSpace(name)
	return name, ok && name != ""
}

// cutLine returns the first line of b without its terminator and the remainder
// after it.
func cutLine(b []byte) (line, rest []byte) {
	idx := bytes.IndexByte(b, '\n')
	if idx < 0 {
		return bytes.TrimSuffix(b, []byte("\r")), nil
	}
	return bytes.TrimSuffix(b[:idx], []byte("\r")), b[idx+1:]
}

func splitHeader(line []byte) (key, value string, ok bool) {
	idx := bytes.IndexByte(line, ':')
	if idx <= 0 {
		return "", "", false
	}
	for _, c := range line[:idx] {
		// field names are printable ASCII without spaces
		if c <= ' ' || c > '~' {
			return "", "", false
		}
	}
	return string(line[:idx]), strings.TrimSpace(string(line[idx+1:])), true
}
