package util

import (
	"fmt"

	"github.com/zenframe/zenframe"
)

// SafeMapOperation wraps a MapOperation such that panics are recovered and
// nice error messages are constructed
func SafeMapOperation(mapOp zenframe.MapOperation) (safeMapOp zenframe.MapOperation) {
	return func(v interface{}) (result interface{}, err error) {
		defer func() {
			if r := recover(); r != nil {
				if anErr, ok := r.(error); ok {
					err = fmt.Errorf("Map Panic: %w\nValue: %v\n%s", anErr, v, GetTrace())
				} else {
					err = fmt.Errorf("Map Panic: %v\nValue: %v\n%s", r, v, GetTrace())
				}
			} else if err != nil {
				err = fmt.Errorf("Map Error: %w\nValue: %v", err, v)
			}
		}()
		result, err = mapOp(v)
		return
	}
}

// SafeFilterOperation wraps a FilterOperation such that panics are recovered
// and nice error messages are constructed
func SafeFilterOperation(filterOp zenframe.FilterOperation) (safeFilterOp zenframe.FilterOperation) {
	return func(t zenframe.Table) (predicate zenframe.Column, err error) {
		defer func() {
			if r := recover(); r != nil {
				if anErr, ok := r.(error); ok {
					err = fmt.Errorf("Filter Panic: %w\n%s", anErr, GetTrace())
				} else {
					err = fmt.Errorf("Filter Panic: %v\n%s", r, GetTrace())
				}
			} else if err != nil {
				err = fmt.Errorf("Filter Error: %w", err)
			}
		}()
		predicate, err = filterOp(t)
		return
	}
}

// SafeReduceOperation wraps a Reducer's fold such that panics are recovered
// and nice error messages are constructed
func SafeReduceOperation(name string, fold func(present []interface{}) (interface{}, error)) func(present []interface{}) (interface{}, error) {
	return func(present []interface{}) (result interface{}, err error) {
		defer func() {
			if r := recover(); r != nil {
				if anErr, ok := r.(error); ok {
					err = fmt.Errorf("Reduction Panic in %s: %w\n%s", name, anErr, GetTrace())
				} else {
					err = fmt.Errorf("Reduction Panic in %s: %v\n%s", name, r, GetTrace())
				}
			} else if err != nil {
				err = fmt.Errorf("Reduction Error in %s: %w", name, err)
			}
		}()
		result, err = fold(present)
		return
	}
}
