package columntype

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/zenframe/zenframe"
	"github.com/zenframe/zenframe/errors"
)

func TestBoolCastFrom(t *testing.T) {
	b := &BoolColumnType{}
	v, err := b.CastFrom(&IntColumnType{}, int64(0))
	require.Nil(t, err)
	require.Equal(t, false, v)
	v, err = b.CastFrom(&IntColumnType{}, int64(-3))
	require.Nil(t, err)
	require.Equal(t, true, v)
	v, err = b.CastFrom(&StringColumnType{}, "true")
	require.Nil(t, err)
	require.Equal(t, true, v)
	_, err = b.CastFrom(&StringColumnType{}, "maybe")
	require.NotNil(t, err)
	require.IsType(t, errors.UnsupportedCastError{}, err)
	_, err = b.CastFrom(&FloatColumnType{}, float64(1))
	require.NotNil(t, err)
	require.IsType(t, errors.UnsupportedCastError{}, err)
}

func TestIntCastFrom(t *testing.T) {
	i := &IntColumnType{}
	// floats truncate toward zero
	v, err := i.CastFrom(&FloatColumnType{}, float64(2.9))
	require.Nil(t, err)
	require.Equal(t, int64(2), v)
	v, err = i.CastFrom(&FloatColumnType{}, float64(-2.9))
	require.Nil(t, err)
	require.Equal(t, int64(-2), v)
	v, err = i.CastFrom(&BoolColumnType{}, true)
	require.Nil(t, err)
	require.Equal(t, int64(1), v)
	v, err = i.CastFrom(&StringColumnType{}, "42")
	require.Nil(t, err)
	require.Equal(t, int64(42), v)
	_, err = i.CastFrom(&StringColumnType{}, "4.2")
	require.NotNil(t, err)
	require.IsType(t, errors.UnsupportedCastError{}, err)
}

func TestFloatCastFrom(t *testing.T) {
	f := &FloatColumnType{}
	v, err := f.CastFrom(&IntColumnType{}, int64(3))
	require.Nil(t, err)
	require.Equal(t, float64(3), v)
	v, err = f.CastFrom(&StringColumnType{}, "2.5")
	require.Nil(t, err)
	require.Equal(t, 2.5, v)
	_, err = f.CastFrom(&TimeColumnType{}, time.Now())
	require.NotNil(t, err)
	require.IsType(t, errors.UnsupportedCastError{}, err)
}

func TestStringCastFrom(t *testing.T) {
	s := &StringColumnType{}
	v, err := s.CastFrom(&IntColumnType{}, int64(7))
	require.Nil(t, err)
	require.Equal(t, "7", v)
	v, err = s.CastFrom(&FloatColumnType{}, 2.5)
	require.Nil(t, err)
	require.Equal(t, "2.5", v)
	when := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	v, err = s.CastFrom(&TimeColumnType{}, when)
	require.Nil(t, err)
	require.Equal(t, "2021-06-01T00:00:00Z", v)
	v, err = s.CastFrom(&TimeColumnType{Format: "2006-01-02"}, when)
	require.Nil(t, err)
	require.Equal(t, "2021-06-01", v)
}

func TestTimeCastFrom(t *testing.T) {
	tt := &TimeColumnType{Format: "2006-01-02"}
	v, err := tt.CastFrom(&StringColumnType{}, "2021-06-01")
	require.Nil(t, err)
	require.Equal(t, time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC), v)
	_, err = tt.CastFrom(&StringColumnType{}, "June 1st")
	require.NotNil(t, err)
	require.IsType(t, errors.UnsupportedCastError{}, err)
	_, err = tt.CastFrom(&IntColumnType{}, int64(0))
	require.NotNil(t, err)
	require.IsType(t, errors.UnsupportedCastError{}, err)
}

func TestCategoricalValidate(t *testing.T) {
	c := &CategoricalColumnType{Categories: []string{"red", "green"}}
	require.Nil(t, c.Validate("red"))
	require.NotNil(t, c.Validate("blue"))
	require.NotNil(t, c.Validate(int64(1)))
}

func TestCategoricalCastFrom(t *testing.T) {
	c := &CategoricalColumnType{Categories: []string{"red", "green"}}
	v, err := c.CastFrom(&StringColumnType{}, "green")
	require.Nil(t, err)
	require.Equal(t, "green", v)
	_, err = c.CastFrom(&StringColumnType{}, "blue")
	require.NotNil(t, err)
	require.IsType(t, errors.UnsupportedCastError{}, err)
}

func TestNormalizeWidensNumericKinds(t *testing.T) {
	v, err := Normalize(&IntColumnType{}, int8(3))
	require.Nil(t, err)
	require.Equal(t, int64(3), v)
	v, err = Normalize(&FloatColumnType{}, float32(1.5))
	require.Nil(t, err)
	require.Equal(t, float64(1.5), v)
	_, err = Normalize(&IntColumnType{}, "3")
	require.NotNil(t, err)
}

func TestNormalizeChecksCategoryMembership(t *testing.T) {
	c := &CategoricalColumnType{Categories: []string{"red", "green"}}
	v, err := Normalize(c, "red")
	require.Nil(t, err)
	require.Equal(t, "red", v)
	_, err = Normalize(c, "purple")
	require.NotNil(t, err)
}

func TestNormalizePassesNA(t *testing.T) {
	v, err := Normalize(&IntColumnType{}, zenframe.NA)
	require.Nil(t, err)
	require.True(t, zenframe.IsNA(v))
}
