package index

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zenframe/zenframe"
	"github.com/zenframe/zenframe/errors"
)

// hierIndex is an ordered sequence of unique label tuples over a fixed
// level schema
type hierIndex struct {
	levels []zenframe.Level
	tuples []zenframe.Tuple
	lookup map[uint64][]int
	sorted bool
}

// NewHierarchical builds a hierarchical Index over the given level schema.
// Every tuple's arity must equal the level count, tuples must be unique,
// and each component must validate against its level's type (levels with a
// nil Type accept any label scalar).
func NewHierarchical(levels []zenframe.Level, tuples []zenframe.Tuple) (zenframe.Index, error) {
	if len(levels) == 0 {
		return nil, errors.MalformedInputError{Cause: fmt.Errorf("a hierarchical index requires at least one level")}
	}
	canonical := make([]zenframe.Tuple, len(tuples))
	for i, t := range tuples {
		if len(t) != len(levels) {
			return nil, errors.MalformedInputError{Cause: fmt.Errorf("tuple at ordinal %d has arity %d, want %d", i, len(t), len(levels))}
		}
		c, err := canonicalTuple(t)
		if err != nil {
			return nil, errors.MalformedInputError{Cause: err}
		}
		for j, lvl := range levels {
			if lvl.Type == nil {
				continue
			}
			if err := lvl.Type.Validate(c[j]); err != nil {
				return nil, errors.MalformedInputError{Cause: fmt.Errorf("tuple at ordinal %d, level %s: %w", i, lvl.Name, err)}
			}
		}
		canonical[i] = c
	}
	idx := &hierIndex{
		levels: append([]zenframe.Level(nil), levels...),
		tuples: canonical,
		lookup: make(map[uint64][]int, len(canonical)),
	}
	for i, t := range canonical {
		h := hashLabel(t)
		for _, prev := range idx.lookup[h] {
			if LabelsEqual(canonical[prev], t) {
				return nil, errors.MalformedInputError{Cause: fmt.Errorf("duplicate index tuple %s at ordinals %d and %d", FormatLabel(t), prev, i)}
			}
		}
		idx.lookup[h] = append(idx.lookup[h], i)
	}
	idx.sorted = tuplesAreSorted(canonical)
	return idx, nil
}

func tuplesAreSorted(tuples []zenframe.Tuple) bool {
	for i := 1; i < len(tuples); i++ {
		if CompareTuples(tuples[i-1], tuples[i]) > 0 {
			return false
		}
	}
	return true
}

// Len returns the number of tuples in this Index
func (h *hierIndex) Len() int {
	return len(h.tuples)
}

// Label returns the tuple at the given ordinal
func (h *hierIndex) Label(ordinal int) interface{} {
	return h.tuples[ordinal]
}

// Labels returns a copy of all tuples in ordinal order
func (h *hierIndex) Labels() []interface{} {
	out := make([]interface{}, len(h.tuples))
	for i, t := range h.tuples {
		out[i] = t
	}
	return out
}

// Contains returns true iff the given tuple is present
func (h *hierIndex) Contains(label interface{}) bool {
	_, err := h.PositionOf(label)
	return err == nil
}

// PositionOf resolves a full tuple to its ordinal. Partial prefixes resolve
// through PrefixRange or PositionsOf instead.
func (h *hierIndex) PositionOf(label interface{}) (int, error) {
	c, err := CanonicalLabel(label)
	if err != nil {
		return 0, errors.KeyNotFoundError{Key: label}
	}
	t, ok := c.(zenframe.Tuple)
	if !ok || len(t) != len(h.levels) {
		return 0, errors.KeyNotFoundError{Key: label}
	}
	for _, i := range h.lookup[hashLabel(t)] {
		if LabelsEqual(h.tuples[i], t) {
			return i, nil
		}
	}
	return 0, errors.KeyNotFoundError{Key: label}
}

// Levels describes this Index's level schema
func (h *hierIndex) Levels() []zenframe.Level {
	return append([]zenframe.Level(nil), h.levels...)
}

// IsSorted returns true iff tuples are in lexicographic order
func (h *hierIndex) IsSorted() bool {
	return h.sorted
}

// Equals returns true iff both Indexes carry identical labels in identical
// order
func (h *hierIndex) Equals(other zenframe.Index) bool {
	if other == nil || h.Len() != other.Len() {
		return false
	}
	for i, t := range h.tuples {
		if !LabelsEqual(t, other.Label(i)) {
			return false
		}
	}
	return true
}

func (h *hierIndex) matchesPrefix(ordinal int, prefix zenframe.Tuple) bool {
	t := h.tuples[ordinal]
	for i, p := range prefix {
		if !LabelsEqual(t[i], p) {
			return false
		}
	}
	return true
}

// PrefixRange resolves a partial tuple prefix to the contiguous ordinal
// range [start, end) matching it. The Index must be lexicographically
// sorted for the matches to be contiguous; unsorted Indexes fail with
// UnsortedPartialLookupError (use PositionsOf for unordered results).
func (h *hierIndex) PrefixRange(prefix zenframe.Tuple) (int, int, error) {
	if len(prefix) == 0 || len(prefix) > len(h.levels) {
		return 0, 0, errors.KeyNotFoundError{Key: prefix}
	}
	c, err := canonicalTuple(prefix)
	if err != nil {
		return 0, 0, errors.KeyNotFoundError{Key: prefix}
	}
	if !h.sorted {
		return 0, 0, errors.UnsortedPartialLookupError{}
	}
	// lower bound: first tuple >= prefix; upper bound: first tuple whose
	// own prefix exceeds it
	start := sort.Search(len(h.tuples), func(i int) bool {
		return CompareTuples(h.tuples[i][:len(c)], c) >= 0
	})
	end := sort.Search(len(h.tuples), func(i int) bool {
		return CompareTuples(h.tuples[i][:len(c)], c) > 0
	})
	if start == end {
		return 0, 0, errors.KeyNotFoundError{Key: prefix}
	}
	return start, end, nil
}

// PositionsOf resolves a partial tuple prefix to the set of matching
// ordinals, in ordinal order, regardless of sortedness
func (h *hierIndex) PositionsOf(prefix zenframe.Tuple) ([]int, error) {
	if len(prefix) == 0 || len(prefix) > len(h.levels) {
		return nil, errors.KeyNotFoundError{Key: prefix}
	}
	c, err := canonicalTuple(prefix)
	if err != nil {
		return nil, errors.KeyNotFoundError{Key: prefix}
	}
	var ordinals []int
	for i := range h.tuples {
		if h.matchesPrefix(i, c) {
			ordinals = append(ordinals, i)
		}
	}
	if len(ordinals) == 0 {
		return nil, errors.KeyNotFoundError{Key: prefix}
	}
	return ordinals, nil
}

// ReorderBy stably sorts the tuples with the supplied comparator, which
// receives whole tuples. A nil comparator sorts lexicographically level by
// level.
func (h *hierIndex) ReorderBy(less func(a, b interface{}) bool) zenframe.Index {
	if less == nil {
		less = func(a, b interface{}) bool {
			return CompareTuples(a.(zenframe.Tuple), b.(zenframe.Tuple)) < 0
		}
	}
	ordinals := make([]int, len(h.tuples))
	for i := range ordinals {
		ordinals[i] = i
	}
	sort.SliceStable(ordinals, func(i, j int) bool {
		return less(h.tuples[ordinals[i]], h.tuples[ordinals[j]])
	})
	out, err := h.Take(ordinals)
	if err != nil {
		// a permutation of valid ordinals cannot fail
		panic(err)
	}
	return out
}

// Take builds a new Index from the tuples at the given ordinals
func (h *hierIndex) Take(ordinals []int) (zenframe.Index, error) {
	tuples := make([]zenframe.Tuple, len(ordinals))
	for i, o := range ordinals {
		if o < 0 || o >= len(h.tuples) {
			return nil, errors.IndexOutOfRangeError{Ordinal: o, Length: len(h.tuples)}
		}
		tuples[i] = h.tuples[o]
	}
	return NewHierarchical(h.levels, tuples)
}

// DropLevel removes the named level, failing if it is the last one or if
// removal would leave duplicate tuples
func (h *hierIndex) DropLevel(levelName string) (zenframe.Index, error) {
	if len(h.levels) <= 1 {
		return nil, errors.InvalidLevelOperationError{Reason: "cannot drop the last level (flatten the index instead)"}
	}
	drop := -1
	for i, lvl := range h.levels {
		if lvl.Name == levelName {
			drop = i
			break
		}
	}
	if drop < 0 {
		return nil, errors.InvalidLevelOperationError{Reason: fmt.Sprintf("no level named %s", levelName)}
	}
	levels := make([]zenframe.Level, 0, len(h.levels)-1)
	levels = append(levels, h.levels[:drop]...)
	levels = append(levels, h.levels[drop+1:]...)
	tuples := make([]zenframe.Tuple, len(h.tuples))
	for i, t := range h.tuples {
		nt := make(zenframe.Tuple, 0, len(t)-1)
		nt = append(nt, t[:drop]...)
		nt = append(nt, t[drop+1:]...)
		tuples[i] = nt
	}
	out, err := NewHierarchical(levels, tuples)
	if err != nil {
		return nil, errors.InvalidLevelOperationError{Reason: fmt.Sprintf("dropping level %s would leave non-unique tuples", levelName)}
	}
	return out, nil
}

// Flatten converts this Index to a flat Index whose labels are the original
// tuples
func (h *hierIndex) Flatten() zenframe.Index {
	labels := make([]interface{}, len(h.tuples))
	for i, t := range h.tuples {
		labels[i] = t
	}
	out, err := NewFlat(labels)
	if err != nil {
		// tuples were unique, so their flat labels are too
		panic(err)
	}
	return out
}

// Align reconciles this Index with another
func (h *hierIndex) Align(other zenframe.Index, mode zenframe.AlignMode) (zenframe.Index, []int, []int, error) {
	return align(h, other, mode)
}

// ToString returns a string representation of this Index
func (h *hierIndex) ToString() string {
	var res strings.Builder
	fmt.Fprint(&res, "[")
	for i, lvl := range h.levels {
		if i > 0 {
			fmt.Fprint(&res, "/")
		}
		fmt.Fprint(&res, lvl.Name)
	}
	fmt.Fprint(&res, "]")
	for _, t := range h.tuples {
		fmt.Fprintf(&res, " %s", FormatLabel(t))
	}
	return res.String()
}
