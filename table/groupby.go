package table

import (
	"fmt"

	"github.com/zenframe/zenframe"
	"github.com/zenframe/zenframe/column"
	"github.com/zenframe/zenframe/errors"
	"github.com/zenframe/zenframe/index"
	"github.com/zenframe/zenframe/internal/keyenc"
	iutil "github.com/zenframe/zenframe/internal/util"
)

// groupedView is the intermediate, non-persisted partitioning of row
// ordinals by distinct key values, in first-seen order
type groupedView struct {
	src      *table
	keyNames []string
	keyTypes []zenframe.ColumnType
	keys     []zenframe.Tuple
	groups   [][]int
}

// GroupBy partitions row ordinals by the distinct values of the named
// columns or row-index levels, preserving first-seen group order. Rows with
// an absent key component belong to no group: NA is never equal to
// anything, so it cannot identify one.
func (t *table) GroupBy(keys ...string) (zenframe.GroupedView, error) {
	if len(keys) == 0 {
		return nil, errors.MalformedInputError{Cause: fmt.Errorf("at least one grouping key is required")}
	}
	extractors := make([]func(row int) (interface{}, error), len(keys))
	keyTypes := make([]zenframe.ColumnType, len(keys))
	for i, key := range keys {
		if col, err := t.Column(key); err == nil {
			keyTypes[i] = col.Type()
			extractors[i] = col.Get
			continue
		}
		levelOrdinal := -1
		levels := t.rowIndex.Levels()
		for j, lvl := range levels {
			if lvl.Name == key {
				levelOrdinal = j
				break
			}
		}
		if levelOrdinal < 0 {
			return nil, errors.KeyNotFoundError{Key: key}
		}
		keyTypes[i] = levels[levelOrdinal].Type
		ord := levelOrdinal
		flat := len(levels) == 1
		extractors[i] = func(row int) (interface{}, error) {
			label := t.rowIndex.Label(row)
			if flat {
				return label, nil
			}
			return label.(zenframe.Tuple)[ord], nil
		}
	}

	view := &groupedView{src: t, keyNames: keys, keyTypes: keyTypes}
	groupOf := make(map[uint64][]int) // key hash -> candidate group ordinals
	for row := 0; row < t.NumRows(); row++ {
		tuple := make(zenframe.Tuple, len(keys))
		skip := false
		for i, extract := range extractors {
			v, err := extract(row)
			if err != nil {
				return nil, err
			}
			if zenframe.IsNA(v) {
				skip = true
				break
			}
			tuple[i] = v
		}
		if skip {
			continue
		}
		h := keyenc.HashTuple(tuple)
		found := -1
		for _, g := range groupOf[h] {
			if index.LabelsEqual(view.keys[g], tuple) {
				found = g
				break
			}
		}
		if found < 0 {
			found = len(view.keys)
			view.keys = append(view.keys, tuple)
			view.groups = append(view.groups, nil)
			groupOf[h] = append(groupOf[h], found)
		}
		view.groups[found] = append(view.groups[found], row)
	}
	return view, nil
}

// NumGroups returns the number of distinct key values
func (g *groupedView) NumGroups() int {
	return len(g.keys)
}

// Keys returns the distinct group keys in first-seen order
func (g *groupedView) Keys() []zenframe.Tuple {
	out := make([]zenframe.Tuple, len(g.keys))
	copy(out, g.keys)
	return out
}

// Aggregate applies each Aggregation's Reducer per group and returns a new
// Table whose row Index holds the distinct group keys: flat for a single
// grouping key, hierarchical for several.
func (g *groupedView) Aggregate(aggs ...zenframe.Aggregation) (zenframe.Table, error) {
	if len(aggs) == 0 {
		return nil, errors.MalformedInputError{Cause: fmt.Errorf("at least one aggregation is required")}
	}
	rowIndex, err := g.keyIndex()
	if err != nil {
		return nil, err
	}
	labels := make([]interface{}, len(aggs))
	cols := make([]zenframe.Column, len(aggs))
	seen := make(map[string]bool, len(aggs))
	for ai, agg := range aggs {
		if agg.Reducer == nil {
			return nil, errors.MalformedInputError{Cause: fmt.Errorf("aggregation %d has no reducer", ai)}
		}
		label := agg.As
		if label == "" {
			label = agg.Column
		}
		if seen[label] {
			return nil, errors.MalformedInputError{Cause: fmt.Errorf("duplicate aggregate output label %q", label)}
		}
		seen[label] = true
		srcCol, err := g.src.Column(agg.Column)
		if err != nil {
			return nil, err
		}
		outType, err := agg.Reducer.OutputType(srcCol.Type())
		if err != nil {
			return nil, err
		}
		fold := iutil.SafeReduceOperation(agg.Reducer.Name(), agg.Reducer.Reduce)
		values := make([]interface{}, len(g.groups))
		for gi, rows := range g.groups {
			present := make([]interface{}, 0, len(rows))
			anyAbsent := false
			for _, row := range rows {
				v, err := srcCol.Get(row)
				if err != nil {
					return nil, err
				}
				if zenframe.IsNA(v) {
					anyAbsent = true
					continue
				}
				present = append(present, v)
			}
			if agg.Strict && anyAbsent && !strictExempt(agg.Reducer) {
				values[gi] = zenframe.NA
				continue
			}
			result, err := fold(present)
			if err != nil {
				return nil, err
			}
			values[gi] = result
		}
		col, err := column.New(outType, values)
		if err != nil {
			return nil, err
		}
		labels[ai] = label
		cols[ai] = col
	}
	colIndex, err := index.NewFlat(labels)
	if err != nil {
		return nil, err
	}
	return New(rowIndex, colIndex, cols)
}

// keyIndex builds the result row Index from the distinct group keys
func (g *groupedView) keyIndex() (zenframe.Index, error) {
	if len(g.keyNames) == 1 {
		labels := make([]interface{}, len(g.keys))
		for i, key := range g.keys {
			labels[i] = key[0]
		}
		return index.NewNamedFlat(g.keyNames[0], labels)
	}
	levels := make([]zenframe.Level, len(g.keyNames))
	for i, name := range g.keyNames {
		levels[i] = zenframe.Level{Name: name, Type: g.keyTypes[i]}
	}
	return index.NewHierarchical(levels, g.keys)
}
