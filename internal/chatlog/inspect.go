package chatlog

import "regexp"

// dataTypeRe pulls the data-type attribute off a message opening tag, e.g.
// <div class="ChatMessage" data-type="ooc">.
var dataTypeRe = regexp.MustCompile(`^<div class="ChatMessage"[^>]*\bdata-type="([^"]*)"`)

// Report summarizes the structure of a transcript without modifying it.
type Report struct {
	Bytes         int            `json:"bytes"`
	PreambleBytes int            `json:"preamble_bytes"`
	Messages      int            `json:"messages"`
	MessageBytes  int            `json:"message_bytes"`
	Types         map[string]int `json:"types,omitempty"`
}

// Inspect segments document and tallies its message fragments by their
// data-type attribute. Fragments without the attribute (including a leading
// slice that carries no message marker) are counted under "untyped".
func Inspect(document string) (*Report, error) {
	doc, err := Split(document)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Bytes:         len(document),
		PreambleBytes: len(doc.Preamble),
		Messages:      len(doc.Fragments),
		Types:         make(map[string]int),
	}

	for _, fragment := range doc.Fragments {
		report.MessageBytes += len(fragment)
		if m := dataTypeRe.FindStringSubmatch(fragment); m != nil {
			report.Types[m[1]]++
		} else {
			report.Types["untyped"]++
		}
	}

	return report, nil
}
