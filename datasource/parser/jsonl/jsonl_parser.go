// Package jsonl parses JSON Lines data into Tables. This parser uses
// https://github.com/tidwall/gjson to process data, and supports column
// names formatted as gjson paths. Values within the JSON which do not
// correspond to a declared column are ignored.
package jsonl

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/zenframe/zenframe"
	"github.com/zenframe/zenframe/column"
	"github.com/zenframe/zenframe/columntype"
	"github.com/zenframe/zenframe/datasource"
	"github.com/zenframe/zenframe/logging"
	"github.com/zenframe/zenframe/table"
)

// Parser produces Tables from JSON Lines data
type Parser struct{}

// CreateParser returns a new JSONL Parser. Columns are parsed from each row
// of JSON using their column name, which should be a gjson path. Paths
// which are missing or null in a row load as absent.
func CreateParser() *Parser {
	return &Parser{}
}

// Parse parses JSON Lines data to produce a Table, one column per spec
func (p *Parser) Parse(r io.Reader, specs []datasource.ColumnSpec) (zenframe.Table, error) {
	scanner := bufio.NewScanner(r)
	arrays := make([][]interface{}, len(specs))
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		parsed := gjson.Parse(text)
		for i, spec := range specs {
			value, err := parseValue(parsed.Get(spec.Name), spec)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			arrays[i] = append(arrays[i], value)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
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
	logging.L().Debug("parsed jsonl table", "rows", t.NumRows(), "columns", t.NumColumns())
	return t, nil
}

// parseValue converts one gjson result to its declared column type
func parseValue(res gjson.Result, spec datasource.ColumnSpec) (interface{}, error) {
	if !res.Exists() || res.Type == gjson.Null {
		return zenframe.NA, nil
	}
	switch colType := spec.Type.(type) {
	case *columntype.BoolColumnType:
		if res.Type != gjson.True && res.Type != gjson.False {
			return nil, fmt.Errorf("column %s was not a boolean. Was: %s", spec.Name, res.Raw)
		}
		return res.Bool(), nil
	case *columntype.IntColumnType:
		if res.Type != gjson.Number {
			return nil, fmt.Errorf("column %s was not a number. Was: %s", spec.Name, res.Raw)
		}
		return res.Int(), nil
	case *columntype.FloatColumnType:
		if res.Type != gjson.Number {
			return nil, fmt.Errorf("column %s was not a number. Was: %s", spec.Name, res.Raw)
		}
		return res.Float(), nil
	case *columntype.StringColumnType, *columntype.CategoricalColumnType:
		if res.Type != gjson.String {
			return nil, fmt.Errorf("column %s was not a string. Was: %s", spec.Name, res.Raw)
		}
		return res.String(), nil
	case *columntype.TimeColumnType:
		if res.Type != gjson.String {
			return nil, fmt.Errorf("column %s was not a string. Was: %s", spec.Name, res.Raw)
		}
		format := colType.Format
		if format == "" {
			format = time.RFC3339
		}
		parsed, err := time.Parse(format, res.String())
		if err != nil {
			return nil, fmt.Errorf("column %s could not be parsed as datetime with format %s. Was: %s", spec.Name, format, res.Raw)
		}
		return parsed, nil
	}
	return nil, fmt.Errorf("column %s has an unsupported type %s", spec.Name, spec.Type.Name())
}
