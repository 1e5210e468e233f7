package index

import (
	"github.com/zenframe/zenframe"
)

// align reconciles two Indexes into one output Index plus per-side position
// mappings. Outer alignment keeps the left labels in order and appends the
// right-only labels in right order; inner alignment keeps the left labels
// present on the right. Labels are unique within each Index, so alignment
// is always well-defined.
func align(left, right zenframe.Index, mode zenframe.AlignMode) (zenframe.Index, []int, []int, error) {
	var labels []interface{}
	var leftMap, rightMap []int
	switch mode {
	case zenframe.AlignInner:
		for i := 0; i < left.Len(); i++ {
			l := left.Label(i)
			if r, err := right.PositionOf(l); err == nil {
				labels = append(labels, l)
				leftMap = append(leftMap, i)
				rightMap = append(rightMap, r)
			}
		}
	default: // AlignOuter
		for i := 0; i < left.Len(); i++ {
			l := left.Label(i)
			labels = append(labels, l)
			leftMap = append(leftMap, i)
			if r, err := right.PositionOf(l); err == nil {
				rightMap = append(rightMap, r)
			} else {
				rightMap = append(rightMap, zenframe.NoSource)
			}
		}
		for i := 0; i < right.Len(); i++ {
			l := right.Label(i)
			if !left.Contains(l) {
				labels = append(labels, l)
				leftMap = append(leftMap, zenframe.NoSource)
				rightMap = append(rightMap, i)
			}
		}
	}
	out, err := buildLike(left, right, labels)
	if err != nil {
		return nil, nil, nil, err
	}
	return out, leftMap, rightMap, nil
}

// buildLike constructs an output Index for aligned labels, preserving the
// hierarchical level schema when both sides share one
func buildLike(left, right zenframe.Index, labels []interface{}) (zenframe.Index, error) {
	llevels, rlevels := left.Levels(), right.Levels()
	if len(llevels) > 1 && len(llevels) == len(rlevels) {
		compatible := true
		for i := range llevels {
			if llevels[i].Name != rlevels[i].Name {
				compatible = false
				break
			}
		}
		if compatible {
			tuples := make([]zenframe.Tuple, 0, len(labels))
			for _, l := range labels {
				t, ok := l.(zenframe.Tuple)
				if !ok {
					compatible = false
					break
				}
				tuples = append(tuples, t)
			}
			if compatible {
				return NewHierarchical(llevels, tuples)
			}
		}
	}
	name := ""
	if len(llevels) == 1 {
		name = llevels[0].Name
	}
	return NewNamedFlat(name, labels)
}
