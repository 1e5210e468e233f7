package bitmap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetGetClear(t *testing.T) {
	b := New(130)
	require.Equal(t, 130, b.Len())
	require.Equal(t, 0, b.Count())
	b.Set(0)
	b.Set(64)
	b.Set(129)
	require.True(t, b.Get(0))
	require.True(t, b.Get(64))
	require.True(t, b.Get(129))
	require.False(t, b.Get(1))
	require.Equal(t, 3, b.Count())
	b.Clear(64)
	require.False(t, b.Get(64))
	require.Equal(t, 2, b.Count())
}

func TestClone(t *testing.T) {
	b := New(10)
	b.Set(3)
	c := b.Clone()
	c.Set(7)
	require.True(t, c.Get(3))
	require.False(t, b.Get(7))
}

func TestEquals(t *testing.T) {
	a := New(70)
	b := New(70)
	a.Set(69)
	require.False(t, a.Equals(b))
	b.Set(69)
	require.True(t, a.Equals(b))
	require.False(t, a.Equals(New(71)))
	require.False(t, a.Equals(nil))
}

func TestBytesRoundTrip(t *testing.T) {
	b := New(100)
	for _, i := range []int{0, 13, 63, 64, 99} {
		b.Set(i)
	}
	restored := FromBytes(b.Bytes(), 100)
	require.True(t, b.Equals(restored))
}
