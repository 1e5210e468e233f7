// Package index implements zenframe's flat and hierarchical Indexes: label
// to ordinal resolution, alignment, reordering and level operations.
package index

import (
	"fmt"
	"time"

	"github.com/zenframe/zenframe"
	"github.com/zenframe/zenframe/internal/keyenc"
)

// CanonicalLabel widens a raw label scalar to its canonical storage
// representation: integer kinds become int64, float kinds float64, times are
// stripped of their monotonic clock reading so equal instants compare equal.
// Tuples are canonicalized component-wise.
func CanonicalLabel(v interface{}) (interface{}, error) {
	switch x := v.(type) {
	case int64, string, bool, float64:
		return x, nil
	case int:
		return int64(x), nil
	case int8:
		return int64(x), nil
	case int16:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case uint8:
		return int64(x), nil
	case uint16:
		return int64(x), nil
	case uint32:
		return int64(x), nil
	case float32:
		return float64(x), nil
	case time.Time:
		return x.Round(0), nil
	case zenframe.Tuple:
		return canonicalTuple(x)
	case []interface{}:
		return canonicalTuple(zenframe.Tuple(x))
	}
	return nil, fmt.Errorf("value %#v is not a legal index label", v)
}

func canonicalTuple(t zenframe.Tuple) (zenframe.Tuple, error) {
	out := make(zenframe.Tuple, len(t))
	for i, c := range t {
		cc, err := CanonicalLabel(c)
		if err != nil {
			return nil, err
		}
		if _, isTuple := cc.(zenframe.Tuple); isTuple {
			return nil, fmt.Errorf("tuple labels cannot nest")
		}
		out[i] = cc
	}
	return out, nil
}

// type ranks impose a total order across mixed-type labels so that sorting
// is always well-defined
func typeRank(v interface{}) int {
	switch v.(type) {
	case bool:
		return 0
	case int64:
		return 1
	case float64:
		return 2
	case string:
		return 3
	case time.Time:
		return 4
	case zenframe.Tuple:
		return 5
	}
	return 6
}

// Compare imposes a total order on canonical labels: by value within a
// type, by type rank across types. Numeric labels of different kinds
// (int64 vs float64) compare numerically.
func Compare(a, b interface{}) int {
	ai, aIsInt := a.(int64)
	bi, bIsInt := b.(int64)
	af, aIsFloat := a.(float64)
	bf, bIsFloat := b.(float64)
	if (aIsInt || aIsFloat) && (bIsInt || bIsFloat) {
		var x, y float64
		if aIsInt {
			x = float64(ai)
		} else {
			x = af
		}
		if bIsInt {
			y = float64(bi)
		} else {
			y = bf
		}
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	}
	ra, rb := typeRank(a), typeRank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	switch x := a.(type) {
	case bool:
		y := b.(bool)
		switch {
		case !x && y:
			return -1
		case x && !y:
			return 1
		}
		return 0
	case string:
		y := b.(string)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	case time.Time:
		y := b.(time.Time)
		switch {
		case x.Before(y):
			return -1
		case x.After(y):
			return 1
		}
		return 0
	case zenframe.Tuple:
		return CompareTuples(x, b.(zenframe.Tuple))
	}
	return 0
}

// CompareTuples orders label tuples lexicographically, level by level.
// Shorter tuples sort before longer ones sharing the same prefix, which is
// what makes prefix ranges contiguous on sorted hierarchical Indexes.
func CompareTuples(a, b zenframe.Tuple) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

// LabelsEqual compares two canonical labels for exact equality, including
// tuple labels component-wise
func LabelsEqual(a, b interface{}) bool {
	at, aIsTuple := a.(zenframe.Tuple)
	bt, bIsTuple := b.(zenframe.Tuple)
	if aIsTuple != bIsTuple {
		return false
	}
	if aIsTuple {
		if len(at) != len(bt) {
			return false
		}
		for i := range at {
			if !LabelsEqual(at[i], bt[i]) {
				return false
			}
		}
		return true
	}
	if atime, ok := a.(time.Time); ok {
		btime, ok := b.(time.Time)
		return ok && atime.Equal(btime)
	}
	return a == b
}

// hashLabel produces the lookup-map key for a canonical label
func hashLabel(v interface{}) uint64 {
	if t, ok := v.(zenframe.Tuple); ok {
		return keyenc.HashTuple(t)
	}
	return keyenc.HashLabel(v)
}

// FormatLabel renders a label for display output
func FormatLabel(v interface{}) string {
	switch x := v.(type) {
	case string:
		return fmt.Sprintf("%q", x)
	case time.Time:
		return x.Format(time.RFC3339)
	case zenframe.Tuple:
		s := "("
		for i, c := range x {
			if i > 0 {
				s += ", "
			}
			s += FormatLabel(c)
		}
		return s + ")"
	}
	return fmt.Sprintf("%v", v)
}
