package errors

import (
	"fmt"
)

// KeyNotFoundError occurs when a label (or label-tuple prefix) is absent
// from an Index or a Table's column set
type KeyNotFoundError struct{ Key interface{} }

// Error returns a textual representation of this KeyNotFoundError
func (e KeyNotFoundError) Error() string {
	return fmt.Sprintf("Key %v does not exist", e.Key)
}

// IndexOutOfRangeError occurs when an ordinal falls outside [0, length)
type IndexOutOfRangeError struct {
	Ordinal int
	Length  int
}

// Error returns a textual representation of this IndexOutOfRangeError
func (e IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("Ordinal %d is out of range for length %d", e.Ordinal, e.Length)
}

// UnsupportedCastError occurs when no conversion is defined between two
// column types, or a defined conversion fails for a particular value
type UnsupportedCastError struct {
	From string
	To   string
	Why  string
}

// Error returns a textual representation of this UnsupportedCastError
func (e UnsupportedCastError) Error() string {
	if e.Why != "" {
		return fmt.Sprintf("Cannot cast %s to %s: %s", e.From, e.To, e.Why)
	}
	return fmt.Sprintf("Cannot cast %s to %s", e.From, e.To)
}

// MalformedInputError occurs when loader-supplied parts violate Table
// invariants (length mismatches, duplicate labels, missing columns)
type MalformedInputError struct{ Cause error }

// Error returns a textual representation of this MalformedInputError
func (e MalformedInputError) Error() string {
	return fmt.Sprintf("Malformed input: %v", e.Cause)
}

// Unwrap returns the underlying validation failure(s)
func (e MalformedInputError) Unwrap() error {
	return e.Cause
}

// AmbiguousColumnError occurs when a join would produce colliding non-key
// column labels and no disambiguation suffixes were supplied
type AmbiguousColumnError struct{ Label string }

// Error returns a textual representation of this AmbiguousColumnError
func (e AmbiguousColumnError) Error() string {
	return fmt.Sprintf("Column %s exists on both sides of the join and no suffixes were supplied", e.Label)
}

// UnsortedPartialLookupError occurs when a contiguous-range partial lookup
// is requested of a hierarchical Index which is not lexicographically sorted
type UnsortedPartialLookupError struct{}

// Error returns a textual representation of this UnsortedPartialLookupError
func (e UnsortedPartialLookupError) Error() string {
	return "Index is not sorted; a partial lookup cannot yield a contiguous range (use PositionsOf for unordered results)"
}

// InvalidLevelOperationError occurs when a level operation is applied to an
// Index which cannot support it, e.g. dropping the last remaining level
type InvalidLevelOperationError struct{ Reason string }

// Error returns a textual representation of this InvalidLevelOperationError
func (e InvalidLevelOperationError) Error() string {
	return fmt.Sprintf("Invalid level operation: %s", e.Reason)
}

// DuplicateExtensionError occurs when an extension operation is registered
// under a name which is already taken
type DuplicateExtensionError struct{ Name string }

// Error returns a textual representation of this DuplicateExtensionError
func (e DuplicateExtensionError) Error() string {
	return fmt.Sprintf("An extension operation named %s is already registered", e.Name)
}
