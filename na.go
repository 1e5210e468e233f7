package zenframe

// naMarker is the concrete type of the NA sentinel. It carries no data; all
// absent slots, regardless of column type, surface as the same NA value.
type naMarker struct{}

// NA is the uniform absence marker shared by all element types. A Column
// read of an absent slot returns NA rather than a type-specific zero value.
var NA = naMarker{}

// String returns a textual representation of the absence marker
func (naMarker) String() string {
	return "NA"
}

// IsNA returns true iff v is the absence marker (or an untyped nil, which
// loaders treat as absent)
func IsNA(v interface{}) bool {
	if v == nil {
		return true
	}
	_, ok := v.(naMarker)
	return ok
}

// And computes three-valued logical AND over bool-or-NA operands.
// NA AND false is false (the false branch determines the result), while
// NA AND true is NA.
func And(a interface{}, b interface{}) interface{} {
	if ab, ok := a.(bool); ok && !ab {
		return false
	}
	if bb, ok := b.(bool); ok && !bb {
		return false
	}
	if IsNA(a) || IsNA(b) {
		return NA
	}
	return a.(bool) && b.(bool)
}

// Or computes three-valued logical OR over bool-or-NA operands.
// NA OR true is true (the true branch determines the result), while
// NA OR false is NA.
func Or(a interface{}, b interface{}) interface{} {
	if ab, ok := a.(bool); ok && ab {
		return true
	}
	if bb, ok := b.(bool); ok && bb {
		return true
	}
	if IsNA(a) || IsNA(b) {
		return NA
	}
	return a.(bool) || b.(bool)
}

// Not computes three-valued logical NOT. NOT NA is NA.
func Not(a interface{}) interface{} {
	if IsNA(a) {
		return NA
	}
	return !a.(bool)
}

// Equal compares two values under the null model. If either operand is
// absent the result is NA — NA is never equal to anything, including itself.
// This diverges from ordinary equality on purpose: absence means "unknown",
// and two unknowns cannot be known to be equal.
func Equal(a interface{}, b interface{}) interface{} {
	if IsNA(a) || IsNA(b) {
		return NA
	}
	return a == b
}

// Truthy reports whether a bool-or-NA value selects a row during filtering.
// NA is not truthy.
func Truthy(v interface{}) bool {
	b, ok := v.(bool)
	return ok && b
}
