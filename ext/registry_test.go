package ext

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zenframe/zenframe"
	"github.com/zenframe/zenframe/column"
	"github.com/zenframe/zenframe/columntype"
	"github.com/zenframe/zenframe/errors"
	"github.com/zenframe/zenframe/table"
)

func createTestTable(t *testing.T) zenframe.Table {
	col, err := column.New(&columntype.IntColumnType{}, []interface{}{1, 2, 3})
	require.Nil(t, err)
	tbl, err := table.FromParts(nil, map[string]zenframe.Column{"x": col}, []string{"x"})
	require.Nil(t, err)
	return tbl
}

func TestRegisterAndApply(t *testing.T) {
	reg := NewRegistry()
	err := reg.Register("keep-x", func(tbl zenframe.Table, args ...interface{}) (zenframe.Table, error) {
		return tbl.Select("x")
	})
	require.Nil(t, err)
	out, err := reg.Apply("keep-x", createTestTable(t))
	require.Nil(t, err)
	require.Equal(t, []string{"x"}, out.ColumnLabels())
}

func TestRegisterDuplicate(t *testing.T) {
	reg := NewRegistry()
	noop := func(tbl zenframe.Table, args ...interface{}) (zenframe.Table, error) {
		return tbl, nil
	}
	require.Nil(t, reg.Register("noop", noop))
	err := reg.Register("noop", noop)
	require.NotNil(t, err)
	require.IsType(t, errors.DuplicateExtensionError{}, err)
}

func TestLookupUnknown(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Lookup("ghost")
	require.NotNil(t, err)
	require.IsType(t, errors.KeyNotFoundError{}, err)
	_, err = reg.Apply("ghost", createTestTable(t))
	require.NotNil(t, err)
	require.IsType(t, errors.KeyNotFoundError{}, err)
}

func TestNamesSorted(t *testing.T) {
	reg := NewRegistry()
	noop := func(tbl zenframe.Table, args ...interface{}) (zenframe.Table, error) {
		return tbl, nil
	}
	require.Nil(t, reg.Register("zeta", noop))
	require.Nil(t, reg.Register("alpha", noop))
	require.Equal(t, []string{"alpha", "zeta"}, reg.Names())
}

func TestConcurrentRegistration(t *testing.T) {
	reg := NewRegistry()
	noop := func(tbl zenframe.Table, args ...interface{}) (zenframe.Table, error) {
		return tbl, nil
	}
	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = reg.Register("contested", noop)
		}(i)
	}
	wg.Wait()
	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		}
	}
	// exactly one registration wins
	require.Equal(t, 1, succeeded)
	require.Equal(t, []string{"contested"}, reg.Names())
}
