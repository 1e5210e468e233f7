// Package render writes Tables as aligned ASCII text. It consumes only the
// read-only writer contract: row count, column labels and slot access.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/zenframe/zenframe"
)

func formatValue(v interface{}) string {
	if zenframe.IsNA(v) {
		return "NA"
	}
	switch x := v.(type) {
	case string:
		return x
	case time.Time:
		return x.Format(time.RFC3339)
	}
	return fmt.Sprintf("%v", v)
}

// Write renders tr as an aligned ASCII table
func Write(w io.Writer, tr zenframe.TableReader) error {
	labels := tr.ColumnLabels()
	widths := make([]int, len(labels))
	cells := make([][]string, tr.NumRows())
	for i, label := range labels {
		widths[i] = len(label)
	}
	for row := 0; row < tr.NumRows(); row++ {
		cells[row] = make([]string, len(labels))
		for i, label := range labels {
			v, err := tr.Get(label, row)
			if err != nil {
				return err
			}
			cell := formatValue(v)
			cells[row][i] = cell
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	writeRow := func(fields []string) error {
		var line strings.Builder
		for i, field := range fields {
			if i > 0 {
				line.WriteString(" | ")
			}
			line.WriteString(field)
			line.WriteString(strings.Repeat(" ", widths[i]-len(field)))
		}
		_, err := fmt.Fprintln(w, strings.TrimRight(line.String(), " "))
		return err
	}

	if err := writeRow(labels); err != nil {
		return err
	}
	rule := make([]string, len(labels))
	for i := range rule {
		rule[i] = strings.Repeat("-", widths[i])
	}
	if err := writeRow(rule); err != nil {
		return err
	}
	for _, row := range cells {
		if err := writeRow(row); err != nil {
			return err
		}
	}
	return nil
}
