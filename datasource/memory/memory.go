// Package memory loads Tables from in-memory Go values: column arrays or
// row-shaped records.
package memory

import (
	"fmt"

	"github.com/zenframe/zenframe"
	"github.com/zenframe/zenframe/column"
	"github.com/zenframe/zenframe/datasource"
	"github.com/zenframe/zenframe/errors"
	"github.com/zenframe/zenframe/logging"
	"github.com/zenframe/zenframe/table"
)

// FromArrays builds a Table from one value slice per column, in spec order.
// nil and NA entries mark absent slots. A nil rowIndex yields the default
// 0..n-1 range Index.
func FromArrays(arrays map[string][]interface{}, specs []datasource.ColumnSpec, rowIndex zenframe.Index) (zenframe.Table, error) {
	cols := make(map[string]zenframe.Column, len(specs))
	order := make([]string, len(specs))
	for i, spec := range specs {
		values, ok := arrays[spec.Name]
		if !ok {
			return nil, errors.MalformedInputError{Cause: fmt.Errorf("no array supplied for column %q", spec.Name)}
		}
		col, err := column.New(spec.Type, values)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", spec.Name, err)
		}
		cols[spec.Name] = col
		order[i] = spec.Name
	}
	for name := range arrays {
		if _, ok := cols[name]; !ok {
			return nil, errors.MalformedInputError{Cause: fmt.Errorf("array %q has no column spec", name)}
		}
	}
	t, err := table.FromParts(rowIndex, cols, order)
	if err != nil {
		return nil, err
	}
	logging.L().Debug("loaded table from arrays", "rows", t.NumRows(), "columns", t.NumColumns())
	return t, nil
}

// FromRecords builds a Table from row-shaped records. Keys missing from a
// record mark that slot absent.
func FromRecords(records []map[string]interface{}, specs []datasource.ColumnSpec, rowIndex zenframe.Index) (zenframe.Table, error) {
	arrays := make(map[string][]interface{}, len(specs))
	for _, spec := range specs {
		values := make([]interface{}, len(records))
		for i, record := range records {
			if v, ok := record[spec.Name]; ok {
				values[i] = v
			} else {
				values[i] = zenframe.NA
			}
		}
		arrays[spec.Name] = values
	}
	return FromArrays(arrays, specs, rowIndex)
}
