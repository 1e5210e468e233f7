// Package column implements zenframe's nullable Column: a typed value
// buffer with a parallel validity bitmap of equal length.
package column

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zenframe/zenframe"
	"github.com/zenframe/zenframe/columntype"
	"github.com/zenframe/zenframe/errors"
	"github.com/zenframe/zenframe/internal/bitmap"
	iutil "github.com/zenframe/zenframe/internal/util"
)

// columns longer than this fan Map out across worker goroutines; each
// worker owns a disjoint output slice, so results are identical to a
// sequential run
const parallelMapThreshold = 8192

type column struct {
	typ    zenframe.ColumnType
	values []interface{}
	valid  *bitmap.Bitmap
}

// New builds a Column of the given type from raw values. nil and NA mark
// absent slots; present values are widened to their canonical storage
// representation and validated, failing with MalformedInputError otherwise.
func New(typ zenframe.ColumnType, values []interface{}) (zenframe.Column, error) {
	buf := make([]interface{}, len(values))
	valid := bitmap.New(len(values))
	for i, v := range values {
		if zenframe.IsNA(v) {
			continue
		}
		c, err := columntype.Normalize(typ, v)
		if err != nil {
			return nil, errors.MalformedInputError{Cause: fmt.Errorf("slot %d: %w", i, err)}
		}
		buf[i] = c
		valid.Set(i)
	}
	return &column{typ: typ, values: buf, valid: valid}, nil
}

// FromParts assembles a Column from an already-canonical value buffer and
// validity bitmap of equal length. Present values are still validated, so
// deserialized input cannot smuggle ill-typed values past the type tag.
func FromParts(typ zenframe.ColumnType, values []interface{}, valid *bitmap.Bitmap) (zenframe.Column, error) {
	if len(values) != valid.Len() {
		return nil, errors.MalformedInputError{Cause: fmt.Errorf("value buffer length %d does not match validity length %d", len(values), valid.Len())}
	}
	for i, v := range values {
		if !valid.Get(i) {
			continue
		}
		if err := typ.Validate(v); err != nil {
			return nil, errors.MalformedInputError{Cause: fmt.Errorf("slot %d: %w", i, err)}
		}
	}
	return &column{typ: typ, values: values, valid: valid}, nil
}

// Type returns the element type of this Column
func (c *column) Type() zenframe.ColumnType {
	return c.typ
}

// Len returns the number of slots in this Column
func (c *column) Len() int {
	return len(c.values)
}

// Get returns the value at the given ordinal, or NA if the slot is absent
func (c *column) Get(ordinal int) (interface{}, error) {
	if ordinal < 0 || ordinal >= len(c.values) {
		return nil, errors.IndexOutOfRangeError{Ordinal: ordinal, Length: len(c.values)}
	}
	if !c.valid.Get(ordinal) {
		return zenframe.NA, nil
	}
	return c.values[ordinal], nil
}

// IsNA returns true iff the slot at the given ordinal is absent
func (c *column) IsNA(ordinal int) bool {
	return ordinal >= 0 && ordinal < len(c.values) && !c.valid.Get(ordinal)
}

// NumPresent returns the number of present slots
func (c *column) NumPresent() int {
	return c.valid.Count()
}

// Map applies fn element-wise to present values, producing a Column of the
// given output type. Absent slots remain absent without invoking fn; an fn
// result of NA marks the output slot absent.
func (c *column) Map(out zenframe.ColumnType, fn zenframe.MapOperation) (zenframe.Column, error) {
	safeFn := iutil.SafeMapOperation(fn)
	values := make([]interface{}, len(c.values))
	valid := bitmap.New(len(c.values))
	mapSlot := func(i int) error {
		if !c.valid.Get(i) {
			return nil
		}
		result, err := safeFn(c.values[i])
		if err != nil {
			return err
		}
		if zenframe.IsNA(result) {
			return nil
		}
		canonical, err := columntype.Normalize(out, result)
		if err != nil {
			return fmt.Errorf("slot %d: %w", i, err)
		}
		values[i] = canonical
		valid.Set(i)
		return nil
	}
	if len(c.values) >= parallelMapThreshold {
		var g errgroup.Group
		workers := runtime.GOMAXPROCS(0)
		chunk := (len(c.values) + workers - 1) / workers
		// chunk boundaries must land on 64-bit words of the validity
		// bitmap, or two workers would read-modify-write the same word
		chunk = (chunk + 63) &^ 63
		for start := 0; start < len(c.values); start += chunk {
			end := start + chunk
			if end > len(c.values) {
				end = len(c.values)
			}
			g.Go(func() error {
				for i := start; i < end; i++ {
					if err := mapSlot(i); err != nil {
						return err
					}
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i := range c.values {
			if err := mapSlot(i); err != nil {
				return nil, err
			}
		}
	}
	return &column{typ: out, values: values, valid: valid}, nil
}

// Filter keeps the slots selected by the given boolean Column. NA predicate
// slots select nothing.
func (c *column) Filter(predicate zenframe.Column) (zenframe.Column, error) {
	if _, ok := predicate.Type().(*columntype.BoolColumnType); !ok {
		return nil, errors.MalformedInputError{Cause: fmt.Errorf("filter predicate must be a bool column, got %s", predicate.Type().Name())}
	}
	if predicate.Len() != len(c.values) {
		return nil, errors.MalformedInputError{Cause: fmt.Errorf("filter predicate length %d does not match column length %d", predicate.Len(), len(c.values))}
	}
	ordinals, err := zenframe.Mask(predicate)
	if err != nil {
		return nil, err
	}
	return c.Take(ordinals)
}

// Take builds a new Column from the slots at the given ordinals, in the
// given order
func (c *column) Take(ordinals []int) (zenframe.Column, error) {
	values := make([]interface{}, len(ordinals))
	valid := bitmap.New(len(ordinals))
	for i, o := range ordinals {
		if o < 0 || o >= len(c.values) {
			return nil, errors.IndexOutOfRangeError{Ordinal: o, Length: len(c.values)}
		}
		if c.valid.Get(o) {
			values[i] = c.values[o]
			valid.Set(i)
		}
	}
	return &column{typ: c.typ, values: values, valid: valid}, nil
}

// CastTo converts this Column to another type per the defined cast matrix.
// Absence is preserved; casting to the Column's own type shares storage.
func (c *column) CastTo(t zenframe.ColumnType) (zenframe.Column, error) {
	if t.Name() == c.typ.Name() {
		return c, nil
	}
	castable, ok := t.(zenframe.CastableColumnType)
	if !ok {
		return nil, errors.UnsupportedCastError{From: c.typ.Name(), To: t.Name()}
	}
	values := make([]interface{}, len(c.values))
	valid := bitmap.New(len(c.values))
	for i, v := range c.values {
		if !c.valid.Get(i) {
			continue
		}
		converted, err := castable.CastFrom(c.typ, v)
		if err != nil {
			return nil, err
		}
		values[i] = converted
		valid.Set(i)
	}
	return &column{typ: t, values: values, valid: valid}, nil
}

func valuesEqual(a, b interface{}) bool {
	if at, ok := a.(time.Time); ok {
		bt, ok := b.(time.Time)
		return ok && at.Equal(bt)
	}
	return a == b
}

// Equals returns true iff both Columns have the same type name, length,
// validity and present values. Note this is structural equality: two absent
// slots compare equal here, unlike value-level comparison where NA never
// equals anything.
func (c *column) Equals(other zenframe.Column) bool {
	if other == nil || c.typ.Name() != other.Type().Name() || c.Len() != other.Len() {
		return false
	}
	for i := range c.values {
		if c.valid.Get(i) != !other.IsNA(i) {
			return false
		}
		if !c.valid.Get(i) {
			continue
		}
		v, err := other.Get(i)
		if err != nil || !valuesEqual(c.values[i], v) {
			return false
		}
	}
	return true
}

// ToString returns a string representation of this Column
func (c *column) ToString() string {
	var res strings.Builder
	fmt.Fprintf(&res, "%s[", c.typ.Name())
	for i, v := range c.values {
		if i > 0 {
			fmt.Fprint(&res, ", ")
		}
		if !c.valid.Get(i) {
			fmt.Fprint(&res, "NA")
		} else {
			fmt.Fprint(&res, c.typ.ToString(v))
		}
	}
	fmt.Fprint(&res, "]")
	return res.String()
}
