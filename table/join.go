package table

import (
	"fmt"

	"github.com/zenframe/zenframe"
	"github.com/zenframe/zenframe/column"
	"github.com/zenframe/zenframe/errors"
	"github.com/zenframe/zenframe/index"
)

// Join combines this Table with another over the configured keys. Key
// reconciliation delegates to Index alignment: with an empty On, the two
// row Indexes align directly; otherwise On names row-index levels, and the
// projections of both indexes onto those levels (which must remain unique)
// are aligned instead. Unmatched rows are filled with NA per the join mode,
// and colliding non-key column labels require disambiguation suffixes.
func (t *table) Join(other zenframe.Table, conf zenframe.JoinConf) (zenframe.Table, error) {
	leftKeys, rightKeys := t.rowIndex, other.RowIndex()
	if len(conf.On) > 0 {
		var err error
		leftKeys, err = projectLevels(t.rowIndex, conf.On)
		if err != nil {
			return nil, err
		}
		rightKeys, err = projectLevels(other.RowIndex(), conf.On)
		if err != nil {
			return nil, err
		}
	}
	out, leftMap, rightMap, err := alignFor(conf.How, leftKeys, rightKeys)
	if err != nil {
		return nil, err
	}

	leftLabels := t.ColumnLabels()
	rightLabels := other.ColumnLabels()
	inLeft := make(map[string]bool, len(leftLabels))
	for _, l := range leftLabels {
		inLeft[l] = true
	}
	rename := func(label string, side int) (string, error) {
		collides := false
		if side == 0 {
			for _, r := range rightLabels {
				if r == label {
					collides = true
					break
				}
			}
		} else {
			collides = inLeft[label]
		}
		if !collides {
			return label, nil
		}
		if conf.Suffixes[0] == "" && conf.Suffixes[1] == "" {
			return "", errors.AmbiguousColumnError{Label: label}
		}
		return label + conf.Suffixes[side], nil
	}

	var labels []interface{}
	var cols []zenframe.Column
	appendSide := func(src zenframe.Table, mapping []int, side int) error {
		for _, label := range src.ColumnLabels() {
			renamed, err := rename(label, side)
			if err != nil {
				return err
			}
			srcCol, err := src.Column(label)
			if err != nil {
				return err
			}
			gathered, err := gather(srcCol, mapping)
			if err != nil {
				return err
			}
			labels = append(labels, renamed)
			cols = append(cols, gathered)
		}
		return nil
	}
	if err := appendSide(t, leftMap, 0); err != nil {
		return nil, err
	}
	if err := appendSide(other, rightMap, 1); err != nil {
		return nil, err
	}

	colIndex, err := index.NewFlat(labels)
	if err != nil {
		return nil, err
	}
	return New(out, colIndex, cols)
}

// alignFor aligns two key Indexes per the join mode. Left and right joins
// keep one side's keys verbatim rather than forming a union or
// intersection.
func alignFor(how zenframe.JoinMode, left, right zenframe.Index) (zenframe.Index, []int, []int, error) {
	switch how {
	case zenframe.JoinOuter:
		return left.Align(right, zenframe.AlignOuter)
	case zenframe.JoinLeft:
		return oneSided(left, right)
	case zenframe.JoinRight:
		out, rightMap, leftMap, err := oneSided(right, left)
		return out, leftMap, rightMap, err
	default:
		return left.Align(right, zenframe.AlignInner)
	}
}

func oneSided(keep, lookup zenframe.Index) (zenframe.Index, []int, []int, error) {
	keepMap := make([]int, keep.Len())
	lookupMap := make([]int, keep.Len())
	for i := 0; i < keep.Len(); i++ {
		keepMap[i] = i
		if ord, err := lookup.PositionOf(keep.Label(i)); err == nil {
			lookupMap[i] = ord
		} else {
			lookupMap[i] = zenframe.NoSource
		}
	}
	return keep, keepMap, lookupMap, nil
}

// projectLevels restricts an Index to the named levels, in the given order.
// The projected labels must remain unique for alignment to be well-defined.
func projectLevels(idx zenframe.Index, names []string) (zenframe.Index, error) {
	levels := idx.Levels()
	ordinalOf := make(map[string]int, len(levels))
	for i, lvl := range levels {
		ordinalOf[lvl.Name] = i
	}
	selected := make([]int, len(names))
	for i, name := range names {
		ord, ok := ordinalOf[name]
		if !ok {
			return nil, errors.KeyNotFoundError{Key: name}
		}
		selected[i] = ord
	}
	if len(levels) == 1 {
		// projecting a flat index onto its single level is the identity
		return idx, nil
	}
	if len(selected) == 1 {
		labels := make([]interface{}, idx.Len())
		for i := 0; i < idx.Len(); i++ {
			labels[i] = idx.Label(i).(zenframe.Tuple)[selected[0]]
		}
		out, err := index.NewNamedFlat(names[0], labels)
		if err != nil {
			return nil, errors.MalformedInputError{Cause: fmt.Errorf("join keys on level %s are not unique: %w", names[0], err)}
		}
		return out, nil
	}
	outLevels := make([]zenframe.Level, len(selected))
	for i, ord := range selected {
		outLevels[i] = levels[ord]
	}
	tuples := make([]zenframe.Tuple, idx.Len())
	for i := 0; i < idx.Len(); i++ {
		src := idx.Label(i).(zenframe.Tuple)
		tuple := make(zenframe.Tuple, len(selected))
		for j, ord := range selected {
			tuple[j] = src[ord]
		}
		tuples[i] = tuple
	}
	out, err := index.NewHierarchical(outLevels, tuples)
	if err != nil {
		return nil, errors.MalformedInputError{Cause: fmt.Errorf("join keys on levels %v are not unique: %w", names, err)}
	}
	return out, nil
}

// gather builds a Column from source slots per an alignment mapping, with
// NA at NoSource positions
func gather(col zenframe.Column, mapping []int) (zenframe.Column, error) {
	values := make([]interface{}, len(mapping))
	for i, src := range mapping {
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
	return column.New(col.Type(), values)
}
