package zenframe

// Tuple is a hierarchical index label: one component per level, in level
// order. Components are tagged scalars (int64, string or time.Time).
type Tuple []interface{}

// Level describes one level of a hierarchical Index: a name and the type
// shared by every tuple component at that level.
type Level struct {
	Name string
	Type ColumnType
}

// AlignMode selects how Index.Align reconciles two label sets
type AlignMode int

const (
	// AlignOuter keeps the union of both label sets; no label is dropped
	AlignOuter AlignMode = iota
	// AlignInner keeps only labels present in both Indexes
	AlignInner
)

// NoSource marks an alignment output position with no corresponding source
// position; the aligned value at such a position is NA.
const NoSource = -1

// An Index represents row (or column) labels, flat or hierarchical. Labels
// within one Index are unique, and position in the sequence is the canonical
// ordinal. Indexes are immutable: every structural change produces a new
// Index value, so they may be shared freely across Tables and goroutines.
type Index interface {
	Len() int                             // Len returns the number of labels in this Index
	Label(ordinal int) interface{}        // Label returns the label at the given ordinal, panicking for out-of-range ordinals (use Len to bound iteration)
	Labels() []interface{}                // Labels returns a copy of all labels in ordinal order
	Contains(label interface{}) bool      // Contains returns true iff the given label is present
	PositionOf(label interface{}) (int, error) // PositionOf resolves a label to its ordinal, failing with KeyNotFoundError if absent
	Levels() []Level                      // Levels describes this Index's level schema; flat Indexes have exactly one Level
	IsSorted() bool                       // IsSorted returns true iff labels are in ascending (lexicographic, for tuples) order
	Equals(other Index) bool              // Equals returns true iff both Indexes carry identical labels in identical order

	// PrefixRange resolves a partial label-tuple prefix to the contiguous
	// ordinal range [start, end) matching that prefix. It requires the Index
	// to be lexicographically sorted, failing with UnsortedPartialLookupError
	// otherwise, and with KeyNotFoundError if no label matches the prefix.
	PrefixRange(prefix Tuple) (start int, end int, err error)
	// PositionsOf resolves a partial label-tuple prefix to the (possibly
	// non-contiguous) set of matching ordinals, in ordinal order. Unlike
	// PrefixRange it works on unsorted Indexes.
	PositionsOf(prefix Tuple) ([]int, error)

	// Align reconciles this Index with another, producing the output Index
	// plus one mapping per side from output ordinal to source ordinal, with
	// NoSource marking positions absent from that side. Outer alignment
	// never drops a label from either side.
	Align(other Index, mode AlignMode) (out Index, left []int, right []int, err error)
	// ReorderBy stably sorts the labels with the supplied comparator and
	// returns the reordered Index. A nil comparator sorts ascending,
	// level-by-level for hierarchical Indexes.
	ReorderBy(less func(a, b interface{}) bool) Index
	// Take builds a new Index from the labels at the given ordinals, in the
	// given order. Ordinals must be in range and free of duplicates.
	Take(ordinals []int) (Index, error)

	// DropLevel removes the named level from a hierarchical Index. It fails
	// with InvalidLevelOperationError on flat Indexes, when the level does
	// not exist, when removal would leave no levels (flatten explicitly
	// instead), or when removal would make the remaining tuples non-unique.
	DropLevel(levelName string) (Index, error)
	// Flatten converts a hierarchical Index to a flat Index whose labels are
	// the original tuples. Flat Indexes return themselves.
	Flatten() Index

	ToString() string // ToString returns a string representation of this Index
}
