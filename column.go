package zenframe

// MapOperation is a user-supplied element transform for Column.Map. It is
// invoked for present values only; absence is handled by the engine and is
// never observable to the operation.
type MapOperation func(v interface{}) (interface{}, error)

// A Column is a typed, nullable, fixed-length sequence of values. It owns
// its storage independently of any Table and is immutable after
// construction: every transform returns a new Column.
type Column interface {
	Type() ColumnType // Type returns the element type of this Column
	Len() int         // Len returns the number of slots in this Column

	// Get returns the value at the given ordinal, or NA if the slot is
	// absent. It fails with IndexOutOfRangeError for invalid ordinals and
	// never otherwise.
	Get(ordinal int) (interface{}, error)
	IsNA(ordinal int) bool // IsNA returns true iff the slot at the given ordinal is absent
	NumPresent() int       // NumPresent returns the number of present (non-NA) slots

	// Map applies fn element-wise to present values, producing a Column of
	// the given output type. Absent slots remain absent without invoking fn.
	// Panics inside fn are recovered and reported as errors.
	Map(out ColumnType, fn MapOperation) (Column, error)
	// Filter keeps the slots selected by the given boolean Column, which
	// must have the same length. NA predicate slots select nothing.
	Filter(predicate Column) (Column, error)
	// Take builds a new Column from the slots at the given ordinals, in the
	// given order. Shared with Index.Take so that Table-level filtering
	// applies one selection mask to the Index and every Column.
	Take(ordinals []int) (Column, error)
	// CastTo converts this Column to another type per the defined cast
	// matrix, failing with UnsupportedCastError if no conversion exists.
	// Absence is preserved across casts.
	CastTo(t ColumnType) (Column, error)

	Equals(other Column) bool // Equals returns true iff both Columns have the same type name, length, validity and present values
	ToString() string         // ToString returns a string representation of this Column
}

// Mask converts a boolean predicate Column into the ordered list of selected
// ordinals. NA slots are not truthy and select nothing. Table-level
// filtering computes one mask and applies it to the row Index and every
// Column.
func Mask(predicate Column) ([]int, error) {
	ordinals := make([]int, 0, predicate.Len())
	for i := 0; i < predicate.Len(); i++ {
		v, err := predicate.Get(i)
		if err != nil {
			return nil, err
		}
		if Truthy(v) {
			ordinals = append(ordinals, i)
		}
	}
	return ordinals, nil
}
