// Package columntype defines the built-in zenframe column element types
// (bool, int, float, string, time, categorical) and the closed cast matrix
// between them.
package columntype

import (
	"fmt"
	"strconv"
	"time"

	"github.com/zenframe/zenframe"
	"github.com/zenframe/zenframe/errors"
)

// BoolColumnType is a column type which stores a boolean value
type BoolColumnType struct{}

// Name returns the canonical name of a BoolColumnType
func (b *BoolColumnType) Name() string {
	return "bool"
}

// Validate returns an error iff v is not a bool
func (b *BoolColumnType) Validate(v interface{}) error {
	if _, ok := v.(bool); !ok {
		return fmt.Errorf("value %#v is not a bool", v)
	}
	return nil
}

// ToString produces a string representation of a BoolColumnType value
func (b *BoolColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%t", v.(bool))
}

// CastFrom converts a value of another built-in type to bool. Ints cast to
// false iff zero; strings parse via strconv.ParseBool.
func (b *BoolColumnType) CastFrom(from zenframe.ColumnType, v interface{}) (interface{}, error) {
	switch from.(type) {
	case *BoolColumnType:
		return v, nil
	case *IntColumnType:
		return v.(int64) != 0, nil
	case *StringColumnType:
		parsed, err := strconv.ParseBool(v.(string))
		if err != nil {
			return nil, errors.UnsupportedCastError{From: from.Name(), To: b.Name(), Why: fmt.Sprintf("%q is not a boolean", v)}
		}
		return parsed, nil
	}
	return nil, errors.UnsupportedCastError{From: from.Name(), To: b.Name()}
}

// IntColumnType is a column type which stores an int64 value
type IntColumnType struct{}

// Name returns the canonical name of an IntColumnType
func (i *IntColumnType) Name() string {
	return "int"
}

// Validate returns an error iff v is not an int64
func (i *IntColumnType) Validate(v interface{}) error {
	if _, ok := v.(int64); !ok {
		return fmt.Errorf("value %#v is not an int64", v)
	}
	return nil
}

// ToString produces a string representation of an IntColumnType value
func (i *IntColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%d", v.(int64))
}

// CastFrom converts a value of another built-in type to int64. Floats
// truncate toward zero; bools cast to 0 or 1; strings parse base-10.
func (i *IntColumnType) CastFrom(from zenframe.ColumnType, v interface{}) (interface{}, error) {
	switch from.(type) {
	case *IntColumnType:
		return v, nil
	case *FloatColumnType:
		return int64(v.(float64)), nil
	case *BoolColumnType:
		if v.(bool) {
			return int64(1), nil
		}
		return int64(0), nil
	case *StringColumnType:
		parsed, err := strconv.ParseInt(v.(string), 10, 64)
		if err != nil {
			return nil, errors.UnsupportedCastError{From: from.Name(), To: i.Name(), Why: fmt.Sprintf("%q is not an integer", v)}
		}
		return parsed, nil
	}
	return nil, errors.UnsupportedCastError{From: from.Name(), To: i.Name()}
}

// FloatColumnType is a column type which stores a float64 value
type FloatColumnType struct{}

// Name returns the canonical name of a FloatColumnType
func (f *FloatColumnType) Name() string {
	return "float"
}

// Validate returns an error iff v is not a float64
func (f *FloatColumnType) Validate(v interface{}) error {
	if _, ok := v.(float64); !ok {
		return fmt.Errorf("value %#v is not a float64", v)
	}
	return nil
}

// ToString produces a string representation of a FloatColumnType value
func (f *FloatColumnType) ToString(v interface{}) string {
	return strconv.FormatFloat(v.(float64), 'g', -1, 64)
}

// CastFrom converts a value of another built-in type to float64
func (f *FloatColumnType) CastFrom(from zenframe.ColumnType, v interface{}) (interface{}, error) {
	switch from.(type) {
	case *FloatColumnType:
		return v, nil
	case *IntColumnType:
		return float64(v.(int64)), nil
	case *BoolColumnType:
		if v.(bool) {
			return float64(1), nil
		}
		return float64(0), nil
	case *StringColumnType:
		parsed, err := strconv.ParseFloat(v.(string), 64)
		if err != nil {
			return nil, errors.UnsupportedCastError{From: from.Name(), To: f.Name(), Why: fmt.Sprintf("%q is not a number", v)}
		}
		return parsed, nil
	}
	return nil, errors.UnsupportedCastError{From: from.Name(), To: f.Name()}
}

// StringColumnType is a column type which stores a string value
type StringColumnType struct{}

// Name returns the canonical name of a StringColumnType
func (s *StringColumnType) Name() string {
	return "string"
}

// Validate returns an error iff v is not a string
func (s *StringColumnType) Validate(v interface{}) error {
	if _, ok := v.(string); !ok {
		return fmt.Errorf("value %#v is not a string", v)
	}
	return nil
}

// ToString produces a string representation of a StringColumnType value
func (s *StringColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("\"%s\"", v.(string))
}

// CastFrom converts a value of any built-in type to its string form. Times
// format per the source TimeColumnType's Format.
func (s *StringColumnType) CastFrom(from zenframe.ColumnType, v interface{}) (interface{}, error) {
	switch src := from.(type) {
	case *StringColumnType:
		return v, nil
	case *IntColumnType:
		return strconv.FormatInt(v.(int64), 10), nil
	case *FloatColumnType:
		return strconv.FormatFloat(v.(float64), 'g', -1, 64), nil
	case *BoolColumnType:
		return strconv.FormatBool(v.(bool)), nil
	case *TimeColumnType:
		return v.(time.Time).Format(src.format()), nil
	case *CategoricalColumnType:
		return v, nil
	}
	return nil, errors.UnsupportedCastError{From: from.Name(), To: s.Name()}
}

// TimeColumnType is a column type which stores a time.Time value. Format is
// the reference layout used when parsing from or formatting to strings,
// defaulting to RFC 3339.
type TimeColumnType struct {
	Format string
}

func (t *TimeColumnType) format() string {
	if t.Format == "" {
		return time.RFC3339
	}
	return t.Format
}

// Name returns the canonical name of a TimeColumnType
func (t *TimeColumnType) Name() string {
	return "time"
}

// Validate returns an error iff v is not a time.Time
func (t *TimeColumnType) Validate(v interface{}) error {
	if _, ok := v.(time.Time); !ok {
		return fmt.Errorf("value %#v is not a time.Time", v)
	}
	return nil
}

// ToString produces a string representation of a TimeColumnType value
func (t *TimeColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("\"%s\"", v.(time.Time).Format(t.format()))
}

// CastFrom converts a value of another built-in type to time.Time. Strings
// must match this type's Format; there is no numeric conversion.
func (t *TimeColumnType) CastFrom(from zenframe.ColumnType, v interface{}) (interface{}, error) {
	switch from.(type) {
	case *TimeColumnType:
		return v, nil
	case *StringColumnType:
		parsed, err := time.Parse(t.format(), v.(string))
		if err != nil {
			return nil, errors.UnsupportedCastError{From: from.Name(), To: t.Name(), Why: fmt.Sprintf("%q does not match format %s", v, t.format())}
		}
		return parsed, nil
	}
	return nil, errors.UnsupportedCastError{From: from.Name(), To: t.Name()}
}

// CategoricalColumnType is a column type which stores one of a fixed set of
// string categories
type CategoricalColumnType struct {
	Categories []string
}

// Name returns the canonical name of a CategoricalColumnType
func (c *CategoricalColumnType) Name() string {
	return "categorical"
}

// Validate returns an error iff v is not a member of this type's categories
func (c *CategoricalColumnType) Validate(v interface{}) error {
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("value %#v is not a string", v)
	}
	for _, cat := range c.Categories {
		if cat == s {
			return nil
		}
	}
	return fmt.Errorf("value %q is not one of the declared categories", s)
}

// ToString produces a string representation of a CategoricalColumnType value
func (c *CategoricalColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("\"%s\"", v.(string))
}

// CastFrom converts strings (and other categoricals) to this categorical
// type, requiring category membership
func (c *CategoricalColumnType) CastFrom(from zenframe.ColumnType, v interface{}) (interface{}, error) {
	switch from.(type) {
	case *CategoricalColumnType, *StringColumnType:
		if err := c.Validate(v); err != nil {
			return nil, errors.UnsupportedCastError{From: from.Name(), To: c.Name(), Why: err.Error()}
		}
		return v, nil
	}
	return nil, errors.UnsupportedCastError{From: from.Name(), To: c.Name()}
}
