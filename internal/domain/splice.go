package domain

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// SpliceMount returns doc with the inner content of the element whose id is
// mountID replaced by fragment. Existing mount content is discarded, so
// splicing an already generated document again is safe. A self-closing mount
// such as <div id="root"/> is expanded into an open and a close tag.
func SpliceMount(doc []byte, mountID, fragment string) (string, error) {
	span, err := locateMount(doc, mountID)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer

	buf.Grow(len(doc) - (span.end - span.start) + len(span.open) + len(fragment) + len(span.close))
	buf.Write(doc[:span.start])
	buf.WriteString(span.open)
	buf.WriteString(fragment)
	buf.WriteString(span.close)
	buf.Write(doc[span.end:])

	return buf.String(), nil
}

// mountSpan is the byte range of doc replaced by a splice. open and close
// wrap the fragment when the mount has no inner content to replace.
type mountSpan struct {
	start, end  int
	open, close string
}

// locateMount returns the span of the mount element's inner content, or of
// the whole tag when the mount is self-closing. Token lengths are summed
// because the tokenizer partitions its input.
func locateMount(doc []byte, mountID string) (mountSpan, error) {
	z := html.NewTokenizer(bytes.NewReader(doc))

	var (
		offset int
		inner  = -1
		tag    string
		depth  int
	)

	for {
		tt := z.Next()
		pos := offset
		offset += len(z.Raw())

		switch tt {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				if inner >= 0 {
					return mountSpan{}, fmt.Errorf("%w: #%s is not closed", ErrMountNotFound, mountID)
				}

				return mountSpan{}, fmt.Errorf("%w: #%s", ErrMountNotFound, mountID)
			}

			return mountSpan{}, fmt.Errorf("tokenize template: %w", z.Err())

		case html.StartTagToken:
			name, hasAttr := z.TagName()
			if inner < 0 {
				if hasAttr && hasID(z, mountID) {
					tag, inner, depth = string(name), offset, 1
				}

				continue
			}

			if string(name) == tag {
				depth++
			}

		case html.EndTagToken:
			if inner < 0 {
				continue
			}

			name, _ := z.TagName()
			if string(name) == tag {
				depth--
				if depth == 0 {
					return mountSpan{start: inner, end: pos}, nil
				}
			}

		case html.SelfClosingTagToken:
			if inner >= 0 {
				continue
			}

			name, hasAttr := z.TagName()
			closeTag := "</" + string(name) + ">"
			if hasAttr && hasID(z, mountID) {
				raw := string(doc[pos:offset])
				open := strings.TrimRight(strings.TrimSuffix(raw, "/>"), " \t\r\n") + ">"

				return mountSpan{start: pos, end: offset, open: open, close: closeTag}, nil
			}

		case html.TextToken, html.CommentToken, html.DoctypeToken:
		}
	}
}

func hasID(z *html.Tokenizer, id string) bool {
	for {
		key, val, more := z.TagAttr()
		if string(key) == "id" && string(val) == id {
			return true
		}

		if !more {
			return false
		}
	}
}
