package index

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/zenframe/zenframe"
	"github.com/zenframe/zenframe/columntype"
	"github.com/zenframe/zenframe/errors"
)

// flatIndex is an ordered sequence of unique scalar labels
type flatIndex struct {
	level  zenframe.Level
	labels []interface{}
	lookup map[uint64][]int
	sorted bool
}

// NewFlat builds a flat Index from the given labels, canonicalizing them
// and failing with MalformedInputError if any label repeats
func NewFlat(labels []interface{}) (zenframe.Index, error) {
	return NewNamedFlat("", labels)
}

// NewNamedFlat builds a flat Index whose single level carries the given name
func NewNamedFlat(name string, labels []interface{}) (zenframe.Index, error) {
	canonical := make([]interface{}, len(labels))
	for i, l := range labels {
		c, err := CanonicalLabel(l)
		if err != nil {
			return nil, errors.MalformedInputError{Cause: err}
		}
		canonical[i] = c
	}
	idx := &flatIndex{
		level:  zenframe.Level{Name: name, Type: inferLabelType(canonical)},
		labels: canonical,
		lookup: make(map[uint64][]int, len(canonical)),
	}
	for i, l := range canonical {
		h := hashLabel(l)
		for _, prev := range idx.lookup[h] {
			if LabelsEqual(canonical[prev], l) {
				return nil, errors.MalformedInputError{Cause: fmt.Errorf("duplicate index label %s at ordinals %d and %d", FormatLabel(l), prev, i)}
			}
		}
		idx.lookup[h] = append(idx.lookup[h], i)
	}
	idx.sorted = labelsAreSorted(canonical)
	return idx, nil
}

// Range builds a flat Index labelled 0..n-1, the default row Index when a
// loader supplies none
func Range(n int) zenframe.Index {
	labels := make([]interface{}, n)
	for i := range labels {
		labels[i] = int64(i)
	}
	idx, err := NewFlat(labels)
	if err != nil {
		// sequential ints cannot repeat
		panic(err)
	}
	return idx
}

// inferLabelType reports the scalar type shared by every label, or nil when
// labels mix types or are tuples (from Flatten)
func inferLabelType(labels []interface{}) zenframe.ColumnType {
	var typ zenframe.ColumnType
	for _, l := range labels {
		var lt zenframe.ColumnType
		switch l.(type) {
		case int64:
			lt = &columntype.IntColumnType{}
		case float64:
			lt = &columntype.FloatColumnType{}
		case string:
			lt = &columntype.StringColumnType{}
		case bool:
			lt = &columntype.BoolColumnType{}
		case time.Time:
			lt = &columntype.TimeColumnType{}
		default:
			return nil
		}
		if typ == nil {
			typ = lt
		} else if typ.Name() != lt.Name() {
			return nil
		}
	}
	return typ
}

func labelsAreSorted(labels []interface{}) bool {
	for i := 1; i < len(labels); i++ {
		if Compare(labels[i-1], labels[i]) > 0 {
			return false
		}
	}
	return true
}

// Len returns the number of labels in this Index
func (f *flatIndex) Len() int {
	return len(f.labels)
}

// Label returns the label at the given ordinal
func (f *flatIndex) Label(ordinal int) interface{} {
	return f.labels[ordinal]
}

// Labels returns a copy of all labels in ordinal order
func (f *flatIndex) Labels() []interface{} {
	out := make([]interface{}, len(f.labels))
	copy(out, f.labels)
	return out
}

// Contains returns true iff the given label is present
func (f *flatIndex) Contains(label interface{}) bool {
	_, err := f.PositionOf(label)
	return err == nil
}

// PositionOf resolves a label to its ordinal
func (f *flatIndex) PositionOf(label interface{}) (int, error) {
	c, err := CanonicalLabel(label)
	if err != nil {
		return 0, errors.KeyNotFoundError{Key: label}
	}
	for _, i := range f.lookup[hashLabel(c)] {
		if LabelsEqual(f.labels[i], c) {
			return i, nil
		}
	}
	return 0, errors.KeyNotFoundError{Key: label}
}

// Levels describes this Index's single level
func (f *flatIndex) Levels() []zenframe.Level {
	return []zenframe.Level{f.level}
}

// IsSorted returns true iff labels are in ascending order
func (f *flatIndex) IsSorted() bool {
	return f.sorted
}

// Equals returns true iff both Indexes carry identical labels in identical
// order
func (f *flatIndex) Equals(other zenframe.Index) bool {
	if other == nil || f.Len() != other.Len() {
		return false
	}
	for i, l := range f.labels {
		if !LabelsEqual(l, other.Label(i)) {
			return false
		}
	}
	return true
}

// PrefixRange resolves a single-component prefix to the matching label's
// ordinal range [i, i+1). Flat labels have no deeper structure to match.
func (f *flatIndex) PrefixRange(prefix zenframe.Tuple) (int, int, error) {
	if len(prefix) != 1 {
		return 0, 0, errors.KeyNotFoundError{Key: prefix}
	}
	i, err := f.PositionOf(prefix[0])
	if err != nil {
		return 0, 0, err
	}
	return i, i + 1, nil
}

// PositionsOf resolves a single-component prefix to its ordinal set
func (f *flatIndex) PositionsOf(prefix zenframe.Tuple) ([]int, error) {
	start, _, err := f.PrefixRange(prefix)
	if err != nil {
		return nil, err
	}
	return []int{start}, nil
}

// ReorderBy stably sorts the labels with the supplied comparator
func (f *flatIndex) ReorderBy(less func(a, b interface{}) bool) zenframe.Index {
	if less == nil {
		less = func(a, b interface{}) bool { return Compare(a, b) < 0 }
	}
	ordinals := make([]int, len(f.labels))
	for i := range ordinals {
		ordinals[i] = i
	}
	sort.SliceStable(ordinals, func(i, j int) bool {
		return less(f.labels[ordinals[i]], f.labels[ordinals[j]])
	})
	out, err := f.Take(ordinals)
	if err != nil {
		// a permutation of valid ordinals cannot fail
		panic(err)
	}
	return out
}

// Take builds a new Index from the labels at the given ordinals
func (f *flatIndex) Take(ordinals []int) (zenframe.Index, error) {
	labels := make([]interface{}, len(ordinals))
	for i, o := range ordinals {
		if o < 0 || o >= len(f.labels) {
			return nil, errors.IndexOutOfRangeError{Ordinal: o, Length: len(f.labels)}
		}
		labels[i] = f.labels[o]
	}
	return NewNamedFlat(f.level.Name, labels)
}

// DropLevel fails: flat Indexes have exactly one level
func (f *flatIndex) DropLevel(levelName string) (zenframe.Index, error) {
	return nil, errors.InvalidLevelOperationError{Reason: "a flat index has no levels to drop"}
}

// Flatten returns this Index unchanged
func (f *flatIndex) Flatten() zenframe.Index {
	return f
}

// Align reconciles this Index with another
func (f *flatIndex) Align(other zenframe.Index, mode zenframe.AlignMode) (zenframe.Index, []int, []int, error) {
	return align(f, other, mode)
}

// ToString returns a string representation of this Index
func (f *flatIndex) ToString() string {
	var res strings.Builder
	fmt.Fprint(&res, "[")
	for i, l := range f.labels {
		if i > 0 {
			fmt.Fprint(&res, ", ")
		}
		fmt.Fprint(&res, FormatLabel(l))
	}
	fmt.Fprint(&res, "]")
	return res.String()
}
