package zenframe

// ColumnType is an interface which is implemented to define a supported
// column element type. Zenframe provides built-in types in the columntype
// package; the built-in set is closed with respect to casting (see
// columntype.Cast) but new ColumnTypes may be defined for use with custom
// Reducers and extensions.
type ColumnType interface {
	Name() string                  // returns the canonical name of this type, e.g. "int"
	Validate(v interface{}) error  // returns an error iff v is not a legal present value of this type
	ToString(v interface{}) string // produces a string representation of a value of this type
}

// CastableColumnType is implemented by ColumnTypes which define conversions
// from other types. CastFrom must preserve absence: it is never invoked for
// absent slots.
type CastableColumnType interface {
	ColumnType
	CastFrom(from ColumnType, v interface{}) (interface{}, error) // converts v (a valid value of from) to this type
}
