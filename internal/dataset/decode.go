// Praedictus - Employee Attrition Prediction and Retention Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/praedictus

package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// boolWords maps textual booleans to their numeric encoding. CSV exports of
// HR systems commonly serialize the resigned flag as True/False or Yes/No.
var boolWords = map[string]float64{
	"true":  1,
	"yes":   1,
	"false": 0,
	"no":    0,
}

// ParseCell converts a raw CSV field to a Value. Empty fields and common
// NA spellings become Missing; numeric fields become numbers; textual
// booleans become 0/1; everything else stays a string.
func ParseCell(raw string) Value {
	s := strings.TrimSpace(raw)
	switch strings.ToLower(s) {
	case "", "na", "n/a", "nan", "null", "none":
		return Missing
	}
	if b, ok := boolWords[strings.ToLower(s)]; ok {
		return Number(b)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Number(f)
	}
	return String(s)
}

// ReadCSV decodes a CSV stream into a Table. The first record is the
// header; its order defines the table's column order.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("dataset: read csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	tbl, err := New(header)
	if err != nil {
		return nil, err
	}

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: read csv row %d: %w", tbl.NumRows()+1, err)
		}
		row := make([]Value, len(record))
		for i, field := range record {
			row[i] = ParseCell(field)
		}
		if err := tbl.AppendRow(row); err != nil {
			return nil, err
		}
	}

	return tbl, nil
}

// FromRows builds a Table from an explicit column list and rows of decoded
// JSON values. JSON numbers arrive as float64, booleans as bool, absent
// values as nil. Strings are kept as strings without numeric sniffing; the
// caller's serializer already typed them.
func FromRows(columns []string, rows [][]any) (*Table, error) {
	tbl, err := New(columns)
	if err != nil {
		return nil, err
	}

	for ri, raw := range rows {
		if len(raw) != len(columns) {
			return nil, fmt.Errorf("dataset: row %d has %d cells, expected %d", ri, len(raw), len(columns))
		}
		row := make([]Value, len(raw))
		for ci, cell := range raw {
			v, err := fromJSONValue(cell)
			if err != nil {
				return nil, fmt.Errorf("dataset: row %d column %q: %w", ri, columns[ci], err)
			}
			row[ci] = v
		}
		if err := tbl.AppendRow(row); err != nil {
			return nil, err
		}
	}

	return tbl, nil
}

func fromJSONValue(cell any) (Value, error) {
	switch c := cell.(type) {
	case nil:
		return Missing, nil
	case float64:
		return Number(c), nil
	case int:
		return Number(float64(c)), nil
	case int64:
		return Number(float64(c)), nil
	case bool:
		return Bool(c), nil
	case string:
		return String(c), nil
	default:
		return Missing, fmt.Errorf("unsupported cell type %T", cell)
	}
}
