package snapshot

import (
	"bytes"
	"testing"
	"time"

	"github.com/pierrec/lz4"
	"github.com/stretchr/testify/require"
	"github.com/zenframe/zenframe"
	"github.com/zenframe/zenframe/column"
	"github.com/zenframe/zenframe/columntype"
	"github.com/zenframe/zenframe/errors"
	"github.com/zenframe/zenframe/index"
	"github.com/zenframe/zenframe/table"
)

func createSnapshotTable(t *testing.T) zenframe.Table {
	rowIndex, err := index.NewNamedFlat("day", []interface{}{"mon", "tue", "wed"})
	require.Nil(t, err)
	count, err := column.New(&columntype.IntColumnType{}, []interface{}{1, zenframe.NA, 3})
	require.Nil(t, err)
	ratio, err := column.New(&columntype.FloatColumnType{}, []interface{}{0.5, 1.5, zenframe.NA})
	require.Nil(t, err)
	open, err := column.New(&columntype.BoolColumnType{}, []interface{}{true, false, true})
	require.Nil(t, err)
	when, err := column.New(&columntype.TimeColumnType{}, []interface{}{
		time.Date(2021, 6, 1, 9, 0, 0, 0, time.UTC),
		zenframe.NA,
		time.Date(2021, 6, 3, 9, 0, 0, 0, time.UTC),
	})
	require.Nil(t, err)
	size, err := column.New(&columntype.CategoricalColumnType{Categories: []string{"s", "m", "l"}}, []interface{}{"s", "m", "l"})
	require.Nil(t, err)
	tbl, err := table.FromParts(rowIndex, map[string]zenframe.Column{
		"count": count,
		"ratio": ratio,
		"open":  open,
		"when":  when,
		"size":  size,
	}, []string{"count", "ratio", "open", "when", "size"})
	require.Nil(t, err)
	return tbl
}

func TestRoundTrip(t *testing.T) {
	src := createSnapshotTable(t)
	var buf bytes.Buffer
	require.Nil(t, Write(&buf, src))
	loaded, err := Read(&buf)
	require.Nil(t, err)
	require.True(t, src.Equals(loaded))
	// loaded tables get a fresh identity
	require.NotEqual(t, src.ID(), loaded.ID())
	// type parameters survive
	col, err := loaded.Column("size")
	require.Nil(t, err)
	cat, ok := col.Type().(*columntype.CategoricalColumnType)
	require.True(t, ok)
	require.Equal(t, []string{"s", "m", "l"}, cat.Categories)
}

func TestRoundTripHierarchicalIndex(t *testing.T) {
	rowIndex, err := index.NewHierarchical(
		[]zenframe.Level{
			{Name: "region", Type: &columntype.StringColumnType{}},
			{Name: "rank", Type: &columntype.IntColumnType{}},
		},
		[]zenframe.Tuple{{"east", int64(1)}, {"east", int64(2)}, {"west", int64(1)}},
	)
	require.Nil(t, err)
	pop, err := column.New(&columntype.IntColumnType{}, []interface{}{8, 1, 4})
	require.Nil(t, err)
	src, err := table.FromParts(rowIndex, map[string]zenframe.Column{"pop": pop}, []string{"pop"})
	require.Nil(t, err)
	var buf bytes.Buffer
	require.Nil(t, Write(&buf, src))
	loaded, err := Read(&buf)
	require.Nil(t, err)
	require.True(t, src.Equals(loaded))
	require.Len(t, loaded.RowIndex().Levels(), 2)
	require.Equal(t, "rank", loaded.RowIndex().Levels()[1].Name)
}

func TestRoundTripEmptyTable(t *testing.T) {
	empty, err := column.New(&columntype.IntColumnType{}, nil)
	require.Nil(t, err)
	src, err := table.FromParts(nil, map[string]zenframe.Column{"x": empty}, []string{"x"})
	require.Nil(t, err)
	var buf bytes.Buffer
	require.Nil(t, Write(&buf, src))
	loaded, err := Read(&buf)
	require.Nil(t, err)
	require.True(t, src.Equals(loaded))
}

func TestReadRejectsWrongMagic(t *testing.T) {
	_, err := Read(bytes.NewReader([]byte("nope nope nope")))
	require.NotNil(t, err)
	require.IsType(t, errors.MalformedInputError{}, err)
}

func TestReadRejectsShortValidityBlock(t *testing.T) {
	// a column declaring more slots than its validity block covers must
	// fail cleanly rather than run off the end of the block
	var buf bytes.Buffer
	buf.Write(magic[:])
	zw := lz4.NewWriter(&buf)
	enc := &encoder{w: zw}
	enc.writeString("snap")
	enc.writeIndex(index.Range(1))
	enc.writeUint(1)
	enc.writeString("v")
	enc.writeByte(typeInt)
	enc.writeUint(1)
	enc.writeBytes(nil)
	require.Nil(t, enc.err)
	require.Nil(t, zw.Close())
	_, err := Read(&buf)
	require.NotNil(t, err)
	require.IsType(t, errors.MalformedInputError{}, err)
}

func TestReadRejectsTruncatedStream(t *testing.T) {
	src := createSnapshotTable(t)
	var buf bytes.Buffer
	require.Nil(t, Write(&buf, src))
	data := buf.Bytes()
	_, err := Read(bytes.NewReader(data[:len(data)/2]))
	require.NotNil(t, err)
}
