package column

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zenframe/zenframe"
	"github.com/zenframe/zenframe/columntype"
	"github.com/zenframe/zenframe/errors"
)

func TestZipMap(t *testing.T) {
	a := createIntColumn(t, 1, zenframe.NA, 3)
	b := createIntColumn(t, 10, 20, zenframe.NA)
	calls := 0
	sum, err := ZipMap(a, b, &columntype.IntColumnType{}, func(x, y interface{}) (interface{}, error) {
		calls++
		return x.(int64) + y.(int64), nil
	})
	require.Nil(t, err)
	// either operand absent means the slot is absent and fn never runs
	require.Equal(t, 1, calls)
	v, err := sum.Get(0)
	require.Nil(t, err)
	require.Equal(t, int64(11), v)
	require.True(t, sum.IsNA(1))
	require.True(t, sum.IsNA(2))
}

func TestZipMapLengthMismatch(t *testing.T) {
	a := createIntColumn(t, 1)
	b := createIntColumn(t, 1, 2)
	_, err := ZipMap(a, b, &columntype.IntColumnType{}, func(x, y interface{}) (interface{}, error) {
		return x, nil
	})
	require.NotNil(t, err)
	require.IsType(t, errors.MalformedInputError{}, err)
}

func createBoolColumn(t *testing.T, values ...interface{}) zenframe.Column {
	col, err := New(&columntype.BoolColumnType{}, values)
	require.Nil(t, err)
	return col
}

func TestZipLogicalAnd(t *testing.T) {
	a := createBoolColumn(t, true, false, zenframe.NA, zenframe.NA)
	b := createBoolColumn(t, zenframe.NA, zenframe.NA, false, true)
	out, err := ZipLogical(a, b, zenframe.And)
	require.Nil(t, err)
	// false AND NA is false: the determining branch decides
	require.True(t, out.IsNA(0))
	v, err := out.Get(1)
	require.Nil(t, err)
	require.Equal(t, false, v)
	v, err = out.Get(2)
	require.Nil(t, err)
	require.Equal(t, false, v)
	require.True(t, out.IsNA(3))
}

func TestZipLogicalOr(t *testing.T) {
	a := createBoolColumn(t, true, false, zenframe.NA)
	b := createBoolColumn(t, zenframe.NA, zenframe.NA, true)
	out, err := ZipLogical(a, b, zenframe.Or)
	require.Nil(t, err)
	v, err := out.Get(0)
	require.Nil(t, err)
	require.Equal(t, true, v)
	require.True(t, out.IsNA(1))
	v, err = out.Get(2)
	require.Nil(t, err)
	require.Equal(t, true, v)
}

func TestZipLogicalRequiresBoolColumns(t *testing.T) {
	a := createBoolColumn(t, true)
	b := createIntColumn(t, 1)
	_, err := ZipLogical(a, b, zenframe.And)
	require.NotNil(t, err)
	require.IsType(t, errors.MalformedInputError{}, err)
}
