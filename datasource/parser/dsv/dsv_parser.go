// Package dsv parses delimiter-separated values into Tables
package dsv

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/zenframe/zenframe"
	"github.com/zenframe/zenframe/column"
	"github.com/zenframe/zenframe/columntype"
	"github.com/zenframe/zenframe/datasource"
	"github.com/zenframe/zenframe/logging"
	"github.com/zenframe/zenframe/table"
)

// ParserConf configures a DSV Parser
type ParserConf struct {
	HeaderLines int    // The number of lines to ignore from the beginning of the input. Defaults to 0.
	Delimiter   rune   // The delimiter separating columns. Defaults to ,
	Comment     rune   // Lines beginning with the comment character are ignored. Cannot be equal to the Delimiter. Defaults to no comment character.
	NilValue    string // A special string which represents absent values in the dataset. Defaults to "" (the empty string).
}

// Parser produces Tables from DSV data
type Parser struct {
	conf *ParserConf
}

// CreateParser returns a new DSV Parser
func CreateParser(conf *ParserConf) *Parser {
	if conf.Delimiter == 0 {
		conf.Delimiter = ','
	}
	return &Parser{conf: conf}
}

// Parse parses DSV data to produce a Table, one column per spec in field
// order. Cells equal to the configured NilValue load as absent.
func (p *Parser) Parse(r io.Reader, specs []datasource.ColumnSpec) (zenframe.Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = p.conf.Delimiter
	reader.Comment = p.conf.Comment
	reader.FieldsPerRecord = len(specs)
	reader.ReuseRecord = true

	// ignore header lines, if configured to do so
	for i := 0; i < p.conf.HeaderLines; i++ {
		if _, err := reader.Read(); err != nil {
			return nil, err
		}
	}

	stringType := &columntype.StringColumnType{}
	arrays := make([][]interface{}, len(specs))
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		for i, cell := range record {
			if cell == p.conf.NilValue {
				arrays[i] = append(arrays[i], zenframe.NA)
				continue
			}
			value, err := parseCell(cell, specs[i], stringType)
			if err != nil {
				return nil, err
			}
			arrays[i] = append(arrays[i], value)
		}
	}

	cols := make(map[string]zenframe.Column, len(specs))
	order := make([]string, len(specs))
	for i, spec := range specs {
		col, err := column.New(spec.Type, arrays[i])
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", spec.Name, err)
		}
		cols[spec.Name] = col
		order[i] = spec.Name
	}
	t, err := table.FromParts(nil, cols, order)
	if err != nil {
		return nil, err
	}
	logging.L().Debug("parsed dsv table", "rows", t.NumRows(), "columns", t.NumColumns())
	return t, nil
}

// parseCell converts one text cell to its declared type via the string
// cast matrix
func parseCell(cell string, spec datasource.ColumnSpec, stringType zenframe.ColumnType) (interface{}, error) {
	if _, ok := spec.Type.(*columntype.StringColumnType); ok {
		return cell, nil
	}
	castable, ok := spec.Type.(zenframe.CastableColumnType)
	if !ok {
		return nil, fmt.Errorf("column %q has a type with no conversion from text", spec.Name)
	}
	value, err := castable.CastFrom(stringType, cell)
	if err != nil {
		return nil, fmt.Errorf("column %q: %w", spec.Name, err)
	}
	return value, nil
}
