// Package tabular loads delimited and spreadsheet files into raw string rows.
//
// Parsing is left to callers: every cell is returned exactly as read so that
// a blank cell stays distinct from "0".
package tabular

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	// ErrSourceUnavailable means the backing file could not be opened or read.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrMalformedRow means a row could not be split into the header's columns.
	ErrMalformedRow = errors.New("malformed row")
)

// RowError locates a malformed row inside a source.
type RowError struct {
	Source string
	Line   int
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s line %d: %v: %v", e.Source, e.Line, ErrMalformedRow, e.Err)
}

// Unwrap exposes both ErrMalformedRow and the underlying parser error.
func (e *RowError) Unwrap() []error { return []error{ErrMalformedRow, e.Err} }

// Row maps a column name to its raw cell value.
type Row map[string]string

// Table is a loaded source: the header in file order plus one Row per line.
type Table struct {
	Columns []string
	Rows    []Row
}

// Source loads a named table. Implementations do not retry.
type Source interface {
	Load(ctx context.Context, name string) (*Table, error)
}

// FileSource reads tables from files under Dir. Names ending in .xlsx are
// read as spreadsheets (first sheet); everything else as comma-separated text.
type FileSource struct {
	Dir string
}

// NewFileSource returns a FileSource rooted at dir.
func NewFileSource(dir string) *FileSource {
	return &FileSource{Dir: dir}
}

// Load implements Source.
func (s *FileSource) Load(ctx context.Context, name string) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := filepath.Join(s.Dir, filepath.Clean(name))

	if strings.EqualFold(filepath.Ext(name), ".xlsx") {
		return loadXLSX(path, name)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, name, err)
	}
	defer f.Close()
	return ReadCSV(f, name)
}

// ReadCSV parses comma-separated text with a header row. Every data row must
// carry exactly as many fields as the header.
func ReadCSV(r io.Reader, name string) (*Table, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = false

	header, err := reader.Read()
	if err == io.EOF {
		return &Table{}, nil
	}
	if err != nil {
		return nil, asRowError(name, err)
	}
	columns := normalizeHeader(header)
	reader.FieldsPerRecord = len(columns)

	table := &Table{Columns: columns}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, asRowError(name, err)
		}
		table.Rows = append(table.Rows, toRow(columns, record))
	}
	return table, nil
}

func loadXLSX(path, name string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, name, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &Table{}, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %s: read sheet %q: %w", ErrSourceUnavailable, name, sheets[0], err)
	}
	if len(rows) == 0 {
		return &Table{}, nil
	}

	columns := normalizeHeader(rows[0])
	table := &Table{Columns: columns}
	for i, cells := range rows[1:] {
		// excelize drops trailing empty cells, so short rows are padded.
		if len(cells) > len(columns) {
			return nil, &RowError{
				Source: name,
				Line:   i + 2,
				Err:    fmt.Errorf("got %d cells, header has %d", len(cells), len(columns)),
			}
		}
		table.Rows = append(table.Rows, toRow(columns, cells))
	}
	return table, nil
}

func asRowError(name string, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &RowError{Source: name, Line: pe.StartLine, Err: pe.Err}
	}
	return fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, name, err)
}

func normalizeHeader(header []string) []string {
	columns := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		columns[i] = strings.TrimSpace(h)
	}
	return columns
}

func toRow(columns, cells []string) Row {
	row := make(Row, len(columns))
	for i, col := range columns {
		if i < len(cells) {
			row[col] = cells[i]
		} else {
			row[col] = ""
		}
	}
	return row
}
