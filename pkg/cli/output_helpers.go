package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

func validateOutputFormat(format string) error {
	switch format {
	case outputTable, outputJSON:
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (expected %s or %s)", format, outputTable, outputJSON)
	}
}

// outputValue is a pflag.Value that rejects unknown formats at parse
// time.
type outputValue struct {
	s *string
}

func newOutputValue(s *string) pflag.Value {
	*s = outputTable
	return outputValue{s: s}
}

func (v outputValue) String() string {
	if v.s == nil {
		return ""
	}
	return *v.s
}

func (v outputValue) Set(format string) error {
	if err := validateOutputFormat(format); err != nil {
		return err
	}
	*v.s = format
	return nil
}

func (v outputValue) Type() string { return "string" }

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printTable renders rows under a header line using aligned columns.
func printTable(w io.Writer, header []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// printList writes one value per line, the table rendering for a single
// column of identifiers.
func printList(w io.Writer, format string, items []string) error {
	if format == outputJSON {
		return printJSON(w, items)
	}
	for _, item := range items {
		fmt.Fprintln(w, item)
	}
	return nil
}
