// Package output provides formatted rendering for transcript reports and
// filter run summaries. It supports text, JSON, and table formats.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/ss13tools/chatfilter/internal/chatlog"
)

// Format represents an output format type.
type Format string

const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatTable Format = "table"
)

// ParseFormat converts a string to a Format, defaulting to text.
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON
	case "table":
		return FormatTable
	default:
		return FormatText
	}
}

// Writer handles writing formatted output.
type Writer struct {
	w      io.Writer
	format Format
}

// New creates a new output Writer.
func New(w io.Writer, format Format) *Writer {
	return &Writer{w: w, format: format}
}

// WriteReport outputs a transcript structure report in the configured format.
func (wr *Writer) WriteReport(name string, report *chatlog.Report) error {
	switch wr.format {
	case FormatJSON:
		return wr.WriteJSON(map[string]*chatlog.Report{name: report})
	case FormatTable:
		return wr.writeReportTable(name, report)
	default:
		return wr.writeReportText(name, report)
	}
}

// WriteJSON outputs any value as indented JSON.
func (wr *Writer) WriteJSON(v interface{}) error {
	enc := json.NewEncoder(wr.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (wr *Writer) writeReportText(name string, report *chatlog.Report) error {
	fmt.Fprintf(wr.w, "%s: %d messages, %d bytes (%d preamble, %d messages)\n",
		name, report.Messages, report.Bytes, report.PreambleBytes, report.MessageBytes)
	for _, t := range sortedTypes(report.Types) {
		fmt.Fprintf(wr.w, "  %s: %d\n", t, report.Types[t])
	}
	return nil
}

func (wr *Writer) writeReportTable(name string, report *chatlog.Report) error {
	tw := tabwriter.NewWriter(wr.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tTYPE\tMESSAGES")
	fmt.Fprintln(tw, "----\t----\t--------")

	for _, t := range sortedTypes(report.Types) {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", name, t, report.Types[t])
	}
	fmt.Fprintf(tw, "%s\ttotal\t%d\n", name, report.Messages)
	return tw.Flush()
}

// sortedTypes returns the tally keys in a stable order for rendering.
func sortedTypes(types map[string]int) []string {
	keys := make([]string, 0, len(types))
	for k := range types {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
