// Package frontmatter separates YAML front matter from page Markdown.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document started with a YAML
// front matter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml front matter start delimiter found but closing delimiter is missing")

// Document is a page split into its parts.
type Document struct {
	// Raw is the YAML between the delimiters, without them.
	Raw  []byte
	Meta map[string]any
	Body []byte
	// Had reports whether the source carried a front matter block at all.
	Had bool
}

// Parse splits content and decodes the front matter. Meta is never nil.
func Parse(content []byte) (Document, error) {
	raw, body, had, err := Split(content)
	if err != nil {
		return Document{}, err
	}
	meta, err := ParseYAML(raw)
	if err != nil {
		return Document{}, fmt.Errorf("front matter: %w", err)
	}
	return Document{Raw: raw, Meta: meta, Body: body, Had: had}, nil
}

// Split separates YAML front matter from the Markdown body. The block opens
// with a "---" line and closes with a "---" or "..." line.
//
// If the document does not start with a delimiter, had is false and body is
// the full input.
func Split(content []byte) (frontmatter []byte, body []byte, had bool, err error) {
	nl := detectNewline(content)
	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	rest := content[len(open):]
	offset := 0
	for offset <= len(rest) {
		end := bytes.Index(rest[offset:], []byte(nl))
		var line []byte
		next := len(rest) + 1
		if end < 0 {
			line = rest[offset:]
		} else {
			line = rest[offset : offset+end]
			next = offset + end + len(nl)
		}
		if string(line) == "---" || string(line) == "..." {
			if next > len(rest) {
				next = len(rest)
			}
			return rest[:offset], rest[next:], true, nil
		}
		offset = next
	}

	return nil, nil, false, ErrMissingClosingDelimiter
}

// ParseYAML parses raw YAML front matter (without delimiters) into a map.
func ParseYAML(frontmatter []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(frontmatter)) == 0 {
		return map[string]any{}, nil
	}

	var fields map[string]any
	if err := yaml.Unmarshal(frontmatter, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

func detectNewline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
