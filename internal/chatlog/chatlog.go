// Package chatlog segments an exported Space Station 13 chat transcript into
// a preamble, a sequence of message fragments, and a fixed trailer, and
// reassembles the fragments that pass a matcher.
//
// The exported transcripts are semi-structured HTML with fixed markers, so
// this package scans for those markers directly instead of parsing the
// markup. Surviving bytes are reproduced exactly as they appeared in the
// input.
package chatlog

import (
	"fmt"
	"strings"
)

// Fixed markers of the export format. These are emitted by the game client
// and are not configurable.
const (
	chatOpen    = `<div class="Chat">`
	messageOpen = `<div class="ChatMessage"`
	trailer     = "</div>\n</body>\n</html>"
)

// Matcher decides whether a message fragment survives filtering.
type Matcher interface {
	Matches(text string) (bool, error)
}

// Document is a segmented transcript. Preamble ends with the chat container
// marker; Fragments hold the message slices in input order, trailer excluded.
type Document struct {
	Preamble  string
	Fragments []string
}

// Split segments a transcript. The document must contain the chat container
// marker exactly once; any other count is a structural error reporting the
// count found.
//
// Each fragment begins at a message marker and runs to just before the next
// one, or to the end of the document. Text between the container marker and
// the first message marker, if any, is kept as a fragment of its own so that
// reassembly stays byte-exact.
func Split(document string) (*Document, error) {
	if n := strings.Count(document, chatOpen); n != 1 {
		return nil, fmt.Errorf("expected exactly 1 %q marker, found %d", chatOpen, n)
	}

	idx := strings.Index(document, chatOpen)
	cut := idx + len(chatOpen)
	doc := &Document{Preamble: document[:cut]}

	body := strings.ReplaceAll(document[cut:], trailer, "")
	doc.Fragments = splitBefore(body, messageOpen)
	return doc, nil
}

// splitBefore splits s at every occurrence of sep, keeping sep attached to
// the start of the piece that follows it. A non-empty prefix before the first
// occurrence becomes the first piece.
func splitBefore(s, sep string) []string {
	if s == "" {
		return nil
	}

	var starts []int
	for i := 0; ; {
		j := strings.Index(s[i:], sep)
		if j < 0 {
			break
		}
		starts = append(starts, i+j)
		i += j + len(sep)
	}
	if len(starts) == 0 || starts[0] != 0 {
		starts = append([]int{0}, starts...)
	}

	pieces := make([]string, 0, len(starts))
	for k, start := range starts {
		end := len(s)
		if k+1 < len(starts) {
			end = starts[k+1]
		}
		pieces = append(pieces, s[start:end])
	}
	return pieces
}

// Filter drops the fragments of document that m rejects and reassembles the
// rest. The preamble and the trailer are always kept; surviving fragments are
// emitted in input order, byte for byte. An error from m aborts the whole
// document and no partial output is returned.
func Filter(document string, m Matcher) (string, error) {
	doc, err := Split(document)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	out.Grow(len(document))
	out.WriteString(doc.Preamble)

	for _, fragment := range doc.Fragments {
		ok, err := m.Matches(fragment)
		if err != nil {
			return "", err
		}
		if ok {
			out.WriteString(fragment)
		}
	}

	out.WriteString(trailer)
	return out.String(), nil
}
