package zenframe

// FilterOperation is a user-supplied row predicate for Table.Filter. It
// receives the Table and returns a boolean Column aligned to its row Index;
// rows whose predicate value is NA are excluded (NA is not truthy).
type FilterOperation func(t Table) (Column, error)

// JoinMode selects which side's keys survive a Table join
type JoinMode int

const (
	// JoinInner keeps keys present in both Tables
	JoinInner JoinMode = iota
	// JoinOuter keeps keys present in either Table
	JoinOuter
	// JoinLeft keeps exactly the left Table's keys
	JoinLeft
	// JoinRight keeps exactly the right Table's keys
	JoinRight
)

// JoinConf configures a Table join
type JoinConf struct {
	// On names the join-key columns (or row-index levels). When empty, the
	// two row Indexes are aligned directly.
	On []string
	// How selects the join mode. Defaults to JoinInner.
	How JoinMode
	// Suffixes disambiguate non-key column labels which collide between the
	// two sides. A collision with empty Suffixes fails with
	// AmbiguousColumnError.
	Suffixes [2]string
}

// FillKind enumerates the strategies for populating positions with no
// source value during Reindex
type FillKind int

const (
	// FillNone leaves unmatched positions absent
	FillNone FillKind = iota
	// FillConstant fills unmatched positions with a fixed value
	FillConstant
	// FillForward propagates the previous present value forward
	FillForward
	// FillBackward propagates the next present value backward
	FillBackward
)

// FillPolicy describes how Reindex populates positions with no source value
type FillPolicy struct {
	Kind  FillKind
	Value interface{} // used by FillConstant only
}

// NoFill leaves unmatched positions absent
func NoFill() FillPolicy { return FillPolicy{Kind: FillNone} }

// FillWith fills unmatched positions with the given value
func FillWith(v interface{}) FillPolicy { return FillPolicy{Kind: FillConstant, Value: v} }

// ForwardFill propagates the previous present value into unmatched positions
func ForwardFill() FillPolicy { return FillPolicy{Kind: FillForward} }

// BackwardFill propagates the next present value into unmatched positions
func BackwardFill() FillPolicy { return FillPolicy{Kind: FillBackward} }

// A Reducer folds the present values of one group of one column into a
// single value. Built-in reducers live in the table package; the interface
// is public so callers and extensions can supply their own.
type Reducer interface {
	Name() string                                    // Name returns the canonical name of this reducer, e.g. "sum"
	OutputType(in ColumnType) (ColumnType, error)    // OutputType returns the element type this reducer produces for the given input type
	Reduce(present []interface{}) (interface{}, error) // Reduce folds the present values of one group; absent values are withheld by the engine
}

// An Aggregation pairs a source column with a Reducer for
// GroupedView.Aggregate
type Aggregation struct {
	Column  string  // the source column label
	As      string  // the output column label; defaults to Column
	Reducer Reducer // the fold to apply per group
	// Strict makes the whole aggregate NA if any input in the group is
	// absent, instead of skipping absent values. Reducers which only count
	// presence (Count) are exempt and unaffected.
	Strict bool
}

// A GroupedView is an intermediate partitioning of row ordinals by distinct
// key values, in first-seen order, awaiting an aggregation step. It is not a
// Table and is not intended to be persisted.
type GroupedView interface {
	NumGroups() int // NumGroups returns the number of distinct key values
	Keys() []Tuple  // Keys returns the distinct group keys in first-seen order
	// Aggregate applies each Aggregation's Reducer per group and returns a
	// new Table whose row Index holds the distinct group keys: flat for a
	// single grouping key, hierarchical for several.
	Aggregate(aggs ...Aggregation) (Table, error)
}

// TableReader is the narrow read-only surface consumed by external writers:
// row count, column labels, and slot access. It never exposes mutation.
type TableReader interface {
	NumRows() int                                         // NumRows returns the number of rows
	ColumnLabels() []string                               // ColumnLabels returns the column labels in ordinal order
	Get(label string, ordinal int) (interface{}, error)   // Get returns the value at (column, row), or NA if absent
}

// A Table composes one row Index, one column Index and a Column per column
// label. Every Column's length equals the row Index's length and column
// labels are unique. Tables are immutable: every transform returns a new
// Table, so concurrent reads are safe without locking.
type Table interface {
	TableReader

	ID() string                             // ID returns an opaque identity for this Table, used in logs and snapshots; it does not participate in equality
	RowIndex() Index                        // RowIndex returns the row Index
	ColumnIndex() Index                     // ColumnIndex returns the Index labelling the columns
	NumColumns() int                        // NumColumns returns the number of columns
	Column(label string) (Column, error)    // Column resolves a label to its Column, failing with KeyNotFoundError if absent
	ColumnAt(ordinal int) Column            // ColumnAt returns the Column at the given column ordinal, panicking for out-of-range ordinals

	// Select projects a subset or reordering of columns, preserving the row
	// Index. It fails with KeyNotFoundError if a requested label is absent.
	Select(labels ...string) (Table, error)
	// Filter keeps the rows selected by the predicate, preserving their
	// order. The result's row Index is the sub-sequence of retained labels.
	Filter(predicate FilterOperation) (Table, error)
	// Reindex aligns every column to newIndex. Positions absent from the
	// current row Index are populated per the FillPolicy.
	Reindex(newIndex Index, fill FillPolicy) (Table, error)
	// Join combines this Table with another over the configured keys,
	// delegating key reconciliation to Index.Align semantics and filling
	// unmatched rows with NA per the join mode.
	Join(other Table, conf JoinConf) (Table, error)
	// GroupBy partitions row ordinals by the distinct values of the named
	// columns or row-index levels, preserving first-seen group order.
	GroupBy(keys ...string) (GroupedView, error)

	Equals(other Table) bool // Equals returns true iff both Tables have equal row Indexes, column labels and Columns
	ToString() string        // ToString returns a string representation of this Table
}
