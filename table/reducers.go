package table

import (
	"github.com/zenframe/zenframe"
	"github.com/zenframe/zenframe/columntype"
	"github.com/zenframe/zenframe/errors"
	"github.com/zenframe/zenframe/index"
)

// The built-in reducer set is a baseline, not a closed list: anything
// implementing zenframe.Reducer can be used in an Aggregation.

// strictExempt reports whether a reducer only counts presence, making
// strict-mode poisoning meaningless for it
func strictExempt(r zenframe.Reducer) bool {
	e, ok := r.(interface{ StrictExempt() bool })
	return ok && e.StrictExempt()
}

func numericOutput(name string, in zenframe.ColumnType) (zenframe.ColumnType, error) {
	switch in.(type) {
	case *columntype.IntColumnType, *columntype.FloatColumnType:
		return in, nil
	}
	return nil, errors.UnsupportedCastError{From: in.Name(), To: name, Why: "reducer requires a numeric column"}
}

type sumReducer struct{}

// Sum adds the present values of each group. An all-absent group sums to
// zero under the default skip mode.
func Sum() zenframe.Reducer { return sumReducer{} }

func (sumReducer) Name() string { return "sum" }

func (sumReducer) OutputType(in zenframe.ColumnType) (zenframe.ColumnType, error) {
	return numericOutput("sum", in)
}

func (sumReducer) Reduce(present []interface{}) (interface{}, error) {
	var isum int64
	var fsum float64
	isInt := true
	for _, v := range present {
		if x, ok := v.(int64); ok {
			isum += x
			fsum += float64(x)
		} else {
			isInt = false
			fsum += v.(float64)
		}
	}
	if isInt {
		return isum, nil
	}
	return fsum, nil
}

type meanReducer struct{}

// Mean averages the present values of each group; an all-absent group's
// mean is NA
func Mean() zenframe.Reducer { return meanReducer{} }

func (meanReducer) Name() string { return "mean" }

func (meanReducer) OutputType(in zenframe.ColumnType) (zenframe.ColumnType, error) {
	if _, err := numericOutput("mean", in); err != nil {
		return nil, err
	}
	return &columntype.FloatColumnType{}, nil
}

func (meanReducer) Reduce(present []interface{}) (interface{}, error) {
	if len(present) == 0 {
		return zenframe.NA, nil
	}
	var sum float64
	for _, v := range present {
		if x, ok := v.(int64); ok {
			sum += float64(x)
		} else {
			sum += v.(float64)
		}
	}
	return sum / float64(len(present)), nil
}

type minReducer struct{}

// Min selects the smallest present value of each group; an all-absent
// group's min is NA
func Min() zenframe.Reducer { return minReducer{} }

func (minReducer) Name() string { return "min" }

func (minReducer) OutputType(in zenframe.ColumnType) (zenframe.ColumnType, error) {
	return in, nil
}

func (minReducer) Reduce(present []interface{}) (interface{}, error) {
	if len(present) == 0 {
		return zenframe.NA, nil
	}
	best := present[0]
	for _, v := range present[1:] {
		if index.Compare(v, best) < 0 {
			best = v
		}
	}
	return best, nil
}

type maxReducer struct{}

// Max selects the largest present value of each group; an all-absent
// group's max is NA
func Max() zenframe.Reducer { return maxReducer{} }

func (maxReducer) Name() string { return "max" }

func (maxReducer) OutputType(in zenframe.ColumnType) (zenframe.ColumnType, error) {
	return in, nil
}

func (maxReducer) Reduce(present []interface{}) (interface{}, error) {
	if len(present) == 0 {
		return zenframe.NA, nil
	}
	best := present[0]
	for _, v := range present[1:] {
		if index.Compare(v, best) > 0 {
			best = v
		}
	}
	return best, nil
}

type countReducer struct{}

// Count counts the present values of each group. It always counts present
// values only, regardless of strict mode.
func Count() zenframe.Reducer { return countReducer{} }

func (countReducer) Name() string { return "count" }

func (countReducer) StrictExempt() bool { return true }

func (countReducer) OutputType(in zenframe.ColumnType) (zenframe.ColumnType, error) {
	return &columntype.IntColumnType{}, nil
}

func (countReducer) Reduce(present []interface{}) (interface{}, error) {
	return int64(len(present)), nil
}
