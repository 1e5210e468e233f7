package table

import (
	"fmt"

	"github.com/zenframe/zenframe"
	"github.com/zenframe/zenframe/column"
	"github.com/zenframe/zenframe/errors"
)

// Reindex aligns every column to newIndex. Positions with no counterpart in
// the current row Index are populated per the FillPolicy: left absent,
// filled with a constant, or forward/backward-filled along newIndex order.
func (t *table) Reindex(newIndex zenframe.Index, fill zenframe.FillPolicy) (zenframe.Table, error) {
	if newIndex == nil {
		return nil, errors.MalformedInputError{Cause: fmt.Errorf("new index is required")}
	}
	// map output ordinal to source ordinal, NoSource for unmatched labels
	source := make([]int, newIndex.Len())
	for i := 0; i < newIndex.Len(); i++ {
		if ord, err := t.rowIndex.PositionOf(newIndex.Label(i)); err == nil {
			source[i] = ord
		} else {
			source[i] = zenframe.NoSource
		}
	}
	cols := make([]zenframe.Column, len(t.cols))
	for ci, col := range t.cols {
		values := make([]interface{}, newIndex.Len())
		for i, src := range source {
			if src == zenframe.NoSource {
				values[i] = zenframe.NA
				continue
			}
			v, err := col.Get(src)
			if err != nil {
				return nil, err
			}
			values[i] = v
		}
		if err := applyFill(values, source, fill); err != nil {
			return nil, err
		}
		filled, err := column.New(col.Type(), values)
		if err != nil {
			return nil, err
		}
		cols[ci] = filled
	}
	return New(newIndex, t.colIndex, cols)
}

// applyFill populates unmatched positions in place. Only positions with no
// source are filled: genuine NA values carried over from the source column
// stay absent.
func applyFill(values []interface{}, source []int, fill zenframe.FillPolicy) error {
	switch fill.Kind {
	case zenframe.FillNone:
		return nil
	case zenframe.FillConstant:
		for i, src := range source {
			if src == zenframe.NoSource {
				values[i] = fill.Value
			}
		}
	case zenframe.FillForward:
		last := interface{}(zenframe.NA)
		for i, src := range source {
			if src != zenframe.NoSource {
				last = values[i]
			} else {
				values[i] = last
			}
		}
	case zenframe.FillBackward:
		next := interface{}(zenframe.NA)
		for i := len(source) - 1; i >= 0; i-- {
			if source[i] != zenframe.NoSource {
				next = values[i]
			} else {
				values[i] = next
			}
		}
	default:
		return errors.MalformedInputError{Cause: fmt.Errorf("unknown fill policy %d", fill.Kind)}
	}
	return nil
}
