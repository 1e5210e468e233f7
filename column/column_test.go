package column

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"github.com/zenframe/zenframe"
	"github.com/zenframe/zenframe/columntype"
	"github.com/zenframe/zenframe/errors"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func createIntColumn(t *testing.T, values ...interface{}) zenframe.Column {
	col, err := New(&columntype.IntColumnType{}, values)
	require.Nil(t, err)
	return col
}

func TestNew(t *testing.T) {
	col := createIntColumn(t, 1, zenframe.NA, 3)
	require.Equal(t, 3, col.Len())
	require.Equal(t, 2, col.NumPresent())
	v, err := col.Get(0)
	require.Nil(t, err)
	require.Equal(t, int64(1), v)
	require.True(t, col.IsNA(1))
	v, err = col.Get(1)
	require.Nil(t, err)
	require.True(t, zenframe.IsNA(v))
}

func TestNewNilMarksAbsent(t *testing.T) {
	col, err := New(&columntype.StringColumnType{}, []interface{}{"a", nil, "c"})
	require.Nil(t, err)
	require.True(t, col.IsNA(1))
	require.Equal(t, 2, col.NumPresent())
}

func TestNewRejectsIllTypedValues(t *testing.T) {
	_, err := New(&columntype.IntColumnType{}, []interface{}{1, "two"})
	require.NotNil(t, err)
	require.IsType(t, errors.MalformedInputError{}, err)
}

func TestNewRejectsOutOfCategoryValues(t *testing.T) {
	cat := &columntype.CategoricalColumnType{Categories: []string{"red", "green"}}
	_, err := New(cat, []interface{}{"red", "purple"})
	require.NotNil(t, err)
	require.IsType(t, errors.MalformedInputError{}, err)
}

func TestGetOutOfRange(t *testing.T) {
	col := createIntColumn(t, 1)
	_, err := col.Get(5)
	require.NotNil(t, err)
	require.IsType(t, errors.IndexOutOfRangeError{}, err)
	_, err = col.Get(-1)
	require.NotNil(t, err)
	require.IsType(t, errors.IndexOutOfRangeError{}, err)
}

func TestMap(t *testing.T) {
	col := createIntColumn(t, 1, zenframe.NA, 3)
	calls := 0
	doubled, err := col.Map(&columntype.IntColumnType{}, func(v interface{}) (interface{}, error) {
		calls++
		return v.(int64) * 2, nil
	})
	require.Nil(t, err)
	// absent slots stay absent and never reach the operation
	require.Equal(t, 2, calls)
	require.True(t, doubled.IsNA(1))
	v, err := doubled.Get(2)
	require.Nil(t, err)
	require.Equal(t, int64(6), v)
	// the source column is untouched
	v, err = col.Get(2)
	require.Nil(t, err)
	require.Equal(t, int64(3), v)
}

func TestMapResultNAMarksAbsent(t *testing.T) {
	col := createIntColumn(t, 1, 2, 3)
	out, err := col.Map(&columntype.IntColumnType{}, func(v interface{}) (interface{}, error) {
		if v.(int64) == 2 {
			return zenframe.NA, nil
		}
		return v, nil
	})
	require.Nil(t, err)
	require.True(t, out.IsNA(1))
	require.Equal(t, 2, out.NumPresent())
}

func TestMapRecoversPanics(t *testing.T) {
	col := createIntColumn(t, 1)
	_, err := col.Map(&columntype.IntColumnType{}, func(v interface{}) (interface{}, error) {
		panic("boom")
	})
	require.NotNil(t, err)
}

func TestMapParallelMatchesSequential(t *testing.T) {
	n := parallelMapThreshold * 2
	big := make([]interface{}, n)
	small := make([]interface{}, parallelMapThreshold/2)
	for i := 0; i < n; i++ {
		if i%7 == 0 {
			big[i] = zenframe.NA
		} else {
			big[i] = int64(i)
		}
	}
	copy(small, big)
	bigCol, err := New(&columntype.IntColumnType{}, big)
	require.Nil(t, err)
	smallCol, err := New(&columntype.IntColumnType{}, small)
	require.Nil(t, err)
	square := func(v interface{}) (interface{}, error) {
		x := v.(int64)
		return x * x, nil
	}
	bigOut, err := bigCol.Map(&columntype.IntColumnType{}, square)
	require.Nil(t, err)
	smallOut, err := smallCol.Map(&columntype.IntColumnType{}, square)
	require.Nil(t, err)
	// the parallel path must be bit-identical to the sequential one
	for i := 0; i < smallOut.Len(); i++ {
		require.Equal(t, smallOut.IsNA(i), bigOut.IsNA(i))
		if smallOut.IsNA(i) {
			continue
		}
		sv, err := smallOut.Get(i)
		require.Nil(t, err)
		bv, err := bigOut.Get(i)
		require.Nil(t, err)
		require.Equal(t, sv, bv)
	}
}

func TestMapParallelUnevenLength(t *testing.T) {
	// a length that does not divide evenly across workers must not lose
	// validity bits where worker ranges meet
	n := parallelMapThreshold + 1
	values := make([]interface{}, n)
	for i := range values {
		values[i] = int64(i)
	}
	col, err := New(&columntype.IntColumnType{}, values)
	require.Nil(t, err)
	out, err := col.Map(&columntype.IntColumnType{}, func(v interface{}) (interface{}, error) {
		return v.(int64) + 1, nil
	})
	require.Nil(t, err)
	require.Equal(t, n, out.NumPresent())
	for i := 0; i < n; i++ {
		v, err := out.Get(i)
		require.Nil(t, err)
		require.Equal(t, int64(i+1), v)
	}
}

func TestMapParallelPropagatesErrors(t *testing.T) {
	n := parallelMapThreshold
	values := make([]interface{}, n)
	for i := range values {
		values[i] = int64(i)
	}
	col, err := New(&columntype.IntColumnType{}, values)
	require.Nil(t, err)
	_, err = col.Map(&columntype.IntColumnType{}, func(v interface{}) (interface{}, error) {
		if v.(int64) == int64(n/2) {
			return nil, fmt.Errorf("slot rejected")
		}
		return v, nil
	})
	require.NotNil(t, err)
}

func TestFilter(t *testing.T) {
	col := createIntColumn(t, 10, 20, 30, 40)
	pred, err := New(&columntype.BoolColumnType{}, []interface{}{true, false, zenframe.NA, true})
	require.Nil(t, err)
	out, err := col.Filter(pred)
	require.Nil(t, err)
	// NA predicate slots select nothing
	require.Equal(t, 2, out.Len())
	v, err := out.Get(0)
	require.Nil(t, err)
	require.Equal(t, int64(10), v)
	v, err = out.Get(1)
	require.Nil(t, err)
	require.Equal(t, int64(40), v)
}

func TestFilterRequiresBoolPredicate(t *testing.T) {
	col := createIntColumn(t, 1, 2)
	notBool := createIntColumn(t, 1, 0)
	_, err := col.Filter(notBool)
	require.NotNil(t, err)
	require.IsType(t, errors.MalformedInputError{}, err)
}

func TestFilterRequiresMatchingLength(t *testing.T) {
	col := createIntColumn(t, 1, 2, 3)
	pred, err := New(&columntype.BoolColumnType{}, []interface{}{true})
	require.Nil(t, err)
	_, err = col.Filter(pred)
	require.NotNil(t, err)
	require.IsType(t, errors.MalformedInputError{}, err)
}

func TestTake(t *testing.T) {
	col := createIntColumn(t, 10, zenframe.NA, 30)
	out, err := col.Take([]int{2, 1, 1, 0})
	require.Nil(t, err)
	require.Equal(t, 4, out.Len())
	require.True(t, out.IsNA(1))
	require.True(t, out.IsNA(2))
	v, err := out.Get(3)
	require.Nil(t, err)
	require.Equal(t, int64(10), v)
	_, err = col.Take([]int{9})
	require.NotNil(t, err)
	require.IsType(t, errors.IndexOutOfRangeError{}, err)
}

func TestCastTo(t *testing.T) {
	col := createIntColumn(t, 1, zenframe.NA, 3)
	asFloat, err := col.CastTo(&columntype.FloatColumnType{})
	require.Nil(t, err)
	v, err := asFloat.Get(0)
	require.Nil(t, err)
	require.Equal(t, float64(1), v)
	require.True(t, asFloat.IsNA(1))
	asString, err := col.CastTo(&columntype.StringColumnType{})
	require.Nil(t, err)
	v, err = asString.Get(2)
	require.Nil(t, err)
	require.Equal(t, "3", v)
}

func TestCastToSameTypeSharesStorage(t *testing.T) {
	col := createIntColumn(t, 1, 2)
	same, err := col.CastTo(&columntype.IntColumnType{})
	require.Nil(t, err)
	require.Equal(t, col, same)
}

func TestCastToUnsupported(t *testing.T) {
	col, err := New(&columntype.BoolColumnType{}, []interface{}{true})
	require.Nil(t, err)
	_, err = col.CastTo(&columntype.TimeColumnType{})
	require.NotNil(t, err)
	require.IsType(t, errors.UnsupportedCastError{}, err)
}

func TestEquals(t *testing.T) {
	a := createIntColumn(t, 1, zenframe.NA, 3)
	b := createIntColumn(t, 1, zenframe.NA, 3)
	c := createIntColumn(t, 1, 2, 3)
	require.True(t, a.Equals(b))
	require.False(t, a.Equals(c))
	require.False(t, a.Equals(nil))
	asFloat, err := a.CastTo(&columntype.FloatColumnType{})
	require.Nil(t, err)
	require.False(t, a.Equals(asFloat))
}
