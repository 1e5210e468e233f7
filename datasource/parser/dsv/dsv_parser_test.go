package dsv

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/zenframe/zenframe"
	"github.com/zenframe/zenframe/columntype"
	"github.com/zenframe/zenframe/datasource"
)

func createSpecs() []datasource.ColumnSpec {
	return []datasource.ColumnSpec{
		{Name: "name", Type: &columntype.StringColumnType{}},
		{Name: "score", Type: &columntype.IntColumnType{}},
	}
}

func TestParse(t *testing.T) {
	data := "ada,90\neva,85\n"
	parser := CreateParser(&ParserConf{})
	tbl, err := parser.Parse(strings.NewReader(data), createSpecs())
	require.Nil(t, err)
	require.Equal(t, 2, tbl.NumRows())
	require.Equal(t, []string{"name", "score"}, tbl.ColumnLabels())
	v, err := tbl.Get("score", 1)
	require.Nil(t, err)
	require.Equal(t, int64(85), v)
}

func TestParseHeaderLines(t *testing.T) {
	data := "name,score\nada,90\n"
	parser := CreateParser(&ParserConf{HeaderLines: 1})
	tbl, err := parser.Parse(strings.NewReader(data), createSpecs())
	require.Nil(t, err)
	require.Equal(t, 1, tbl.NumRows())
}

func TestParseCustomDelimiterAndComment(t *testing.T) {
	data := "# leaderboard\nada\t90\neva\t85\n"
	parser := CreateParser(&ParserConf{Delimiter: '\t', Comment: '#'})
	tbl, err := parser.Parse(strings.NewReader(data), createSpecs())
	require.Nil(t, err)
	require.Equal(t, 2, tbl.NumRows())
}

func TestParseNilValue(t *testing.T) {
	data := "ada,NULL\neva,85\n"
	parser := CreateParser(&ParserConf{NilValue: "NULL"})
	tbl, err := parser.Parse(strings.NewReader(data), createSpecs())
	require.Nil(t, err)
	v, err := tbl.Get("score", 0)
	require.Nil(t, err)
	require.True(t, zenframe.IsNA(v))
	v, err = tbl.Get("score", 1)
	require.Nil(t, err)
	require.Equal(t, int64(85), v)
}

func TestParseEmptyCellDefaultsToAbsent(t *testing.T) {
	data := "ada,\n"
	parser := CreateParser(&ParserConf{})
	tbl, err := parser.Parse(strings.NewReader(data), createSpecs())
	require.Nil(t, err)
	v, err := tbl.Get("score", 0)
	require.Nil(t, err)
	require.True(t, zenframe.IsNA(v))
}

func TestParseRejectsMistypedCells(t *testing.T) {
	data := "ada,ninety\n"
	parser := CreateParser(&ParserConf{})
	_, err := parser.Parse(strings.NewReader(data), createSpecs())
	require.NotNil(t, err)
}

func TestParseTimeColumns(t *testing.T) {
	data := "ada,2021-06-01\n"
	specs := []datasource.ColumnSpec{
		{Name: "name", Type: &columntype.StringColumnType{}},
		{Name: "joined", Type: &columntype.TimeColumnType{Format: "2006-01-02"}},
	}
	parser := CreateParser(&ParserConf{})
	tbl, err := parser.Parse(strings.NewReader(data), specs)
	require.Nil(t, err)
	v, err := tbl.Get("joined", 0)
	require.Nil(t, err)
	require.Equal(t, time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC), v)
}

func TestParseRejectsRaggedRecords(t *testing.T) {
	data := "ada,90,extra\n"
	parser := CreateParser(&ParserConf{})
	_, err := parser.Parse(strings.NewReader(data), createSpecs())
	require.NotNil(t, err)
}
