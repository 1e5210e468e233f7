package column

import (
	"fmt"

	"github.com/zenframe/zenframe"
	"github.com/zenframe/zenframe/columntype"
	"github.com/zenframe/zenframe/errors"
	"github.com/zenframe/zenframe/internal/bitmap"
)

// ZipMap applies fn pairwise to two Columns of equal length, producing a
// Column of the given output type. Arithmetic and comparison follow the
// null model: if either operand is absent the result slot is absent, and fn
// is not invoked.
func ZipMap(a, b zenframe.Column, out zenframe.ColumnType, fn func(x, y interface{}) (interface{}, error)) (zenframe.Column, error) {
	if a.Len() != b.Len() {
		return nil, errors.MalformedInputError{Cause: fmt.Errorf("column lengths %d and %d do not match", a.Len(), b.Len())}
	}
	values := make([]interface{}, a.Len())
	valid := bitmap.New(a.Len())
	for i := 0; i < a.Len(); i++ {
		if a.IsNA(i) || b.IsNA(i) {
			continue
		}
		x, err := a.Get(i)
		if err != nil {
			return nil, err
		}
		y, err := b.Get(i)
		if err != nil {
			return nil, err
		}
		result, err := fn(x, y)
		if err != nil {
			return nil, fmt.Errorf("slot %d: %w", i, err)
		}
		if zenframe.IsNA(result) {
			continue
		}
		canonical, err := columntype.Normalize(out, result)
		if err != nil {
			return nil, fmt.Errorf("slot %d: %w", i, err)
		}
		values[i] = canonical
		valid.Set(i)
	}
	return &column{typ: out, values: values, valid: valid}, nil
}

// ZipLogical applies three-valued boolean logic pairwise to two bool
// Columns. Unlike ZipMap, the operation sees absence: NA operands reach op
// as the NA marker, so the determining branch of AND/OR can still decide
// the result (see zenframe.And and zenframe.Or).
func ZipLogical(a, b zenframe.Column, op func(x, y interface{}) interface{}) (zenframe.Column, error) {
	if a.Len() != b.Len() {
		return nil, errors.MalformedInputError{Cause: fmt.Errorf("column lengths %d and %d do not match", a.Len(), b.Len())}
	}
	boolType := &columntype.BoolColumnType{}
	for _, c := range []zenframe.Column{a, b} {
		if _, ok := c.Type().(*columntype.BoolColumnType); !ok {
			return nil, errors.MalformedInputError{Cause: fmt.Errorf("logical operations require bool columns, got %s", c.Type().Name())}
		}
	}
	values := make([]interface{}, a.Len())
	valid := bitmap.New(a.Len())
	for i := 0; i < a.Len(); i++ {
		x, err := a.Get(i)
		if err != nil {
			return nil, err
		}
		y, err := b.Get(i)
		if err != nil {
			return nil, err
		}
		result := op(x, y)
		if zenframe.IsNA(result) {
			continue
		}
		values[i] = result.(bool)
		valid.Set(i)
	}
	return &column{typ: boolType, values: values, valid: valid}, nil
}
