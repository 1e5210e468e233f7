package zenframe

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsNA(t *testing.T) {
	require.True(t, IsNA(NA))
	require.True(t, IsNA(nil))
	require.False(t, IsNA(0))
	require.False(t, IsNA(""))
	require.False(t, IsNA(false))
}

func TestNAIsNotEqualToItself(t *testing.T) {
	require.Equal(t, NA, Equal(NA, NA))
	require.Equal(t, NA, Equal(NA, int64(1)))
	require.Equal(t, NA, Equal(int64(1), NA))
	require.Equal(t, true, Equal(int64(1), int64(1)))
	require.Equal(t, false, Equal(int64(1), int64(2)))
}

func TestThreeValuedAnd(t *testing.T) {
	require.Equal(t, false, And(false, NA))
	require.Equal(t, false, And(NA, false))
	require.Equal(t, NA, And(true, NA))
	require.Equal(t, NA, And(NA, true))
	require.Equal(t, NA, And(NA, NA))
	require.Equal(t, true, And(true, true))
	require.Equal(t, false, And(true, false))
}

func TestThreeValuedOr(t *testing.T) {
	require.Equal(t, true, Or(true, NA))
	require.Equal(t, true, Or(NA, true))
	require.Equal(t, NA, Or(false, NA))
	require.Equal(t, NA, Or(NA, false))
	require.Equal(t, NA, Or(NA, NA))
	require.Equal(t, false, Or(false, false))
}

func TestThreeValuedNot(t *testing.T) {
	require.Equal(t, NA, Not(NA))
	require.Equal(t, false, Not(true))
	require.Equal(t, true, Not(false))
}

func TestNAIsNotTruthy(t *testing.T) {
	require.False(t, Truthy(NA))
	require.False(t, Truthy(false))
	require.True(t, Truthy(true))
}
