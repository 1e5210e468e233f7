// Package table implements zenframe's Table: one row Index, one column
// Index and a Column per column label, with the functional transforms
// defined over them (select, filter, reindex, join, group-aggregate).
package table

import (
	"fmt"
	"strings"

	uuid "github.com/gofrs/uuid"
	multierror "github.com/hashicorp/go-multierror"

	"github.com/zenframe/zenframe"
	"github.com/zenframe/zenframe/columntype"
	"github.com/zenframe/zenframe/errors"
	"github.com/zenframe/zenframe/index"
	iutil "github.com/zenframe/zenframe/internal/util"
	"github.com/zenframe/zenframe/logging"
)

type table struct {
	id       string
	rowIndex zenframe.Index
	colIndex zenframe.Index
	cols     []zenframe.Column
}

func newID() string {
	id, err := uuid.NewV4()
	if err != nil {
		return ""
	}
	return id.String()
}

// New assembles a Table from a row Index, a column Index and one Column per
// column-Index label, in column-ordinal order. It performs the single
// validation pass of the loader contract, collecting every violation before
// failing with MalformedInputError.
func New(rowIndex zenframe.Index, colIndex zenframe.Index, cols []zenframe.Column) (zenframe.Table, error) {
	var errs *multierror.Error
	if rowIndex == nil {
		errs = multierror.Append(errs, fmt.Errorf("row index is required"))
	}
	if colIndex == nil {
		errs = multierror.Append(errs, fmt.Errorf("column index is required"))
	}
	if errs != nil {
		return nil, errors.MalformedInputError{Cause: errs.ErrorOrNil()}
	}
	if colIndex.Len() != len(cols) {
		errs = multierror.Append(errs, fmt.Errorf("column index has %d labels but %d columns were supplied", colIndex.Len(), len(cols)))
	}
	for i, col := range cols {
		if col == nil {
			errs = multierror.Append(errs, fmt.Errorf("column at ordinal %d is nil", i))
			continue
		}
		if col.Len() != rowIndex.Len() {
			errs = multierror.Append(errs, fmt.Errorf("column at ordinal %d has length %d, want %d", i, col.Len(), rowIndex.Len()))
		}
	}
	if err := errs.ErrorOrNil(); err != nil {
		logging.L().Error("rejected malformed table input", "errors", iutil.FormatMultiError(errs.Errors))
		return nil, errors.MalformedInputError{Cause: err}
	}
	t := &table{
		id:       newID(),
		rowIndex: rowIndex,
		colIndex: colIndex,
		cols:     append([]zenframe.Column(nil), cols...),
	}
	logging.L().Debug("assembled table", "table", t.id, "rows", rowIndex.Len(), "columns", len(cols))
	return t, nil
}

// FromParts implements the loader contract: a row Index (nil for the
// default 0..n-1 range), a mapping from column label to Column, and the
// column order. The label set of order must equal the mapping's key set
// exactly.
func FromParts(rowIndex zenframe.Index, cols map[string]zenframe.Column, order []string) (zenframe.Table, error) {
	var errs *multierror.Error
	ordered := make([]zenframe.Column, 0, len(order))
	seen := make(map[string]bool, len(order))
	for _, label := range order {
		if seen[label] {
			errs = multierror.Append(errs, fmt.Errorf("duplicate column label %q", label))
			continue
		}
		seen[label] = true
		col, ok := cols[label]
		if !ok {
			errs = multierror.Append(errs, fmt.Errorf("order names column %q which is not in the mapping", label))
			continue
		}
		ordered = append(ordered, col)
	}
	for label := range cols {
		if !seen[label] {
			errs = multierror.Append(errs, fmt.Errorf("mapping contains column %q which is not in the order", label))
		}
	}
	if err := errs.ErrorOrNil(); err != nil {
		logging.L().Error("rejected malformed loader output", "errors", iutil.FormatMultiError(errs.Errors))
		return nil, errors.MalformedInputError{Cause: err}
	}
	if rowIndex == nil {
		n := 0
		if len(ordered) > 0 {
			n = ordered[0].Len()
		}
		rowIndex = index.Range(n)
	}
	labels := make([]interface{}, len(order))
	for i, label := range order {
		labels[i] = label
	}
	colIndex, err := index.NewFlat(labels)
	if err != nil {
		return nil, err
	}
	return New(rowIndex, colIndex, ordered)
}

// ID returns an opaque identity for this Table, used in logs and snapshots
func (t *table) ID() string {
	return t.id
}

// RowIndex returns the row Index
func (t *table) RowIndex() zenframe.Index {
	return t.rowIndex
}

// ColumnIndex returns the Index labelling the columns
func (t *table) ColumnIndex() zenframe.Index {
	return t.colIndex
}

// NumRows returns the number of rows
func (t *table) NumRows() int {
	return t.rowIndex.Len()
}

// NumColumns returns the number of columns
func (t *table) NumColumns() int {
	return len(t.cols)
}

// ColumnLabels returns the column labels in ordinal order
func (t *table) ColumnLabels() []string {
	labels := make([]string, t.colIndex.Len())
	for i := 0; i < t.colIndex.Len(); i++ {
		if s, ok := t.colIndex.Label(i).(string); ok {
			labels[i] = s
		} else {
			labels[i] = index.FormatLabel(t.colIndex.Label(i))
		}
	}
	return labels
}

// columnOrdinal resolves a column label to its ordinal. Columns of a
// hierarchical (or otherwise non-string-labelled) column Index are
// addressed by their formatted labels, the same form ColumnLabels reports.
func (t *table) columnOrdinal(label string) (int, error) {
	if i, err := t.colIndex.PositionOf(label); err == nil {
		return i, nil
	}
	for i := 0; i < t.colIndex.Len(); i++ {
		l := t.colIndex.Label(i)
		if _, ok := l.(string); ok {
			continue
		}
		if index.FormatLabel(l) == label {
			return i, nil
		}
	}
	return 0, errors.KeyNotFoundError{Key: label}
}

// Column resolves a label to its Column
func (t *table) Column(label string) (zenframe.Column, error) {
	i, err := t.columnOrdinal(label)
	if err != nil {
		return nil, err
	}
	return t.cols[i], nil
}

// ColumnAt returns the Column at the given column ordinal
func (t *table) ColumnAt(ordinal int) zenframe.Column {
	return t.cols[ordinal]
}

// Get returns the value at (column, row), or NA if absent. This is the
// writer contract's accessor.
func (t *table) Get(label string, ordinal int) (interface{}, error) {
	col, err := t.Column(label)
	if err != nil {
		return nil, err
	}
	return col.Get(ordinal)
}

// Select projects a subset or reordering of columns, preserving the row
// Index. Projected Columns share storage with this Table's; both remain
// immutable, so the sharing is never observable. Selecting from a
// hierarchical column Index yields a flat column Index carrying the
// original tuple labels.
func (t *table) Select(labels ...string) (zenframe.Table, error) {
	cols := make([]zenframe.Column, len(labels))
	idxLabels := make([]interface{}, len(labels))
	for i, label := range labels {
		ord, err := t.columnOrdinal(label)
		if err != nil {
			return nil, err
		}
		cols[i] = t.cols[ord]
		idxLabels[i] = t.colIndex.Label(ord)
	}
	colIndex, err := index.NewFlat(idxLabels)
	if err != nil {
		return nil, err
	}
	return New(t.rowIndex, colIndex, cols)
}

// Filter keeps the rows selected by the predicate, preserving their order.
// Predicate slots of NA exclude their rows.
func (t *table) Filter(predicate zenframe.FilterOperation) (zenframe.Table, error) {
	pred, err := iutil.SafeFilterOperation(predicate)(t)
	if err != nil {
		return nil, err
	}
	if _, ok := pred.Type().(*columntype.BoolColumnType); !ok {
		return nil, errors.MalformedInputError{Cause: fmt.Errorf("filter predicate must be a bool column, got %s", pred.Type().Name())}
	}
	if pred.Len() != t.NumRows() {
		return nil, errors.MalformedInputError{Cause: fmt.Errorf("predicate column has length %d, want %d", pred.Len(), t.NumRows())}
	}
	mask, err := zenframe.Mask(pred)
	if err != nil {
		return nil, err
	}
	return t.takeRows(mask)
}

// takeRows applies one row-selection mask to the row Index and every Column
func (t *table) takeRows(ordinals []int) (zenframe.Table, error) {
	rowIndex, err := t.rowIndex.Take(ordinals)
	if err != nil {
		return nil, err
	}
	cols := make([]zenframe.Column, len(t.cols))
	for i, col := range t.cols {
		cols[i], err = col.Take(ordinals)
		if err != nil {
			return nil, err
		}
	}
	return New(rowIndex, t.colIndex, cols)
}

// Equals returns true iff both Tables have equal row Indexes, column
// Indexes and Columns. IDs do not participate.
func (t *table) Equals(other zenframe.Table) bool {
	if other == nil || !t.rowIndex.Equals(other.RowIndex()) || !t.colIndex.Equals(other.ColumnIndex()) {
		return false
	}
	for i, col := range t.cols {
		if !col.Equals(other.ColumnAt(i)) {
			return false
		}
	}
	return true
}

// ToString returns a string representation of this Table
func (t *table) ToString() string {
	var res strings.Builder
	fmt.Fprint(&res, "{")
	for i := 0; i < t.rowIndex.Len(); i++ {
		if i > 0 {
			fmt.Fprint(&res, ", ")
		}
		fmt.Fprintf(&res, "%s: {", index.FormatLabel(t.rowIndex.Label(i)))
		for j, col := range t.cols {
			if j > 0 {
				fmt.Fprint(&res, ", ")
			}
			v, err := col.Get(i)
			if err != nil || zenframe.IsNA(v) {
				fmt.Fprintf(&res, "%s: NA", index.FormatLabel(t.colIndex.Label(j)))
			} else {
				fmt.Fprintf(&res, "%s: %s", index.FormatLabel(t.colIndex.Label(j)), col.Type().ToString(v))
			}
		}
		fmt.Fprint(&res, "}")
	}
	fmt.Fprint(&res, "}")
	return res.String()
}
