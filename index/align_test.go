package index

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zenframe/zenframe"
)

func TestAlignOuter(t *testing.T) {
	left, err := NewFlat([]interface{}{"a", "b", "c"})
	require.Nil(t, err)
	right, err := NewFlat([]interface{}{"b", "d"})
	require.Nil(t, err)
	out, lm, rm, err := left.Align(right, zenframe.AlignOuter)
	require.Nil(t, err)
	// left order first, right-only labels appended
	require.Equal(t, []interface{}{"a", "b", "c", "d"}, out.Labels())
	require.Equal(t, []int{0, 1, 2, zenframe.NoSource}, lm)
	require.Equal(t, []int{zenframe.NoSource, 0, zenframe.NoSource, 1}, rm)
}

func TestAlignInner(t *testing.T) {
	left, err := NewFlat([]interface{}{"a", "b", "c"})
	require.Nil(t, err)
	right, err := NewFlat([]interface{}{"c", "b", "x"})
	require.Nil(t, err)
	out, lm, rm, err := left.Align(right, zenframe.AlignInner)
	require.Nil(t, err)
	require.Equal(t, []interface{}{"b", "c"}, out.Labels())
	require.Equal(t, []int{1, 2}, lm)
	require.Equal(t, []int{1, 0}, rm)
}

func TestAlignDisjoint(t *testing.T) {
	left, err := NewFlat([]interface{}{"a"})
	require.Nil(t, err)
	right, err := NewFlat([]interface{}{"b"})
	require.Nil(t, err)
	out, lm, rm, err := left.Align(right, zenframe.AlignInner)
	require.Nil(t, err)
	require.Equal(t, 0, out.Len())
	require.Empty(t, lm)
	require.Empty(t, rm)
	out, _, _, err = left.Align(right, zenframe.AlignOuter)
	require.Nil(t, err)
	require.Equal(t, 2, out.Len())
}

func TestAlignPreservesHierarchicalSchema(t *testing.T) {
	left, err := NewHierarchical(
		[]zenframe.Level{{Name: "region"}, {Name: "city"}},
		[]zenframe.Tuple{{"east", "nyc"}, {"west", "la"}},
	)
	require.Nil(t, err)
	right, err := NewHierarchical(
		[]zenframe.Level{{Name: "region"}, {Name: "city"}},
		[]zenframe.Tuple{{"west", "la"}, {"west", "sf"}},
	)
	require.Nil(t, err)
	out, lm, rm, err := left.Align(right, zenframe.AlignOuter)
	require.Nil(t, err)
	require.Len(t, out.Levels(), 2)
	require.Equal(t, "city", out.Levels()[1].Name)
	require.Equal(t, 3, out.Len())
	require.Equal(t, []int{0, 1, zenframe.NoSource}, lm)
	require.Equal(t, []int{zenframe.NoSource, 0, 1}, rm)
}

func TestAlignMixedNumericLabels(t *testing.T) {
	// int and float labels of equal value are distinct labels but compare
	// numerically; alignment matches on equality only
	left, err := NewFlat([]interface{}{int64(1), int64(2)})
	require.Nil(t, err)
	right, err := NewFlat([]interface{}{float64(1), int64(2)})
	require.Nil(t, err)
	out, _, _, err := left.Align(right, zenframe.AlignInner)
	require.Nil(t, err)
	require.Equal(t, []interface{}{int64(2)}, out.Labels())
}
