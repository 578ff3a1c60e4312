// Package spreadsheet reads uploaded CSV and Excel files into raw tables.
package spreadsheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/sales-dashboard/backend/internal/domain/ingestion"
)

const (
	extCSV  = ".csv"
	extXLSX = ".xlsx"
)

// ErrEmptyFile is returned when a file has no header row.
var ErrEmptyFile = errors.New("file has no header row")

// Reader implements adapter.TableReader for a set of allowed extensions.
type Reader struct {
	extensions []string
}

// NewReader creates a reader that accepts the given extensions.
// Extensions the reader cannot parse are ignored.
func NewReader(extensions []string) *Reader {
	var allowed []string
	for _, ext := range extensions {
		ext = strings.ToLower(ext)
		if ext == extCSV || ext == extXLSX {
			allowed = append(allowed, ext)
		}
	}
	return &Reader{extensions: allowed}
}

// Supports reports whether the file extension is allowed.
func (r *Reader) Supports(filename string) bool {
	return SupportedExtension(filename, r.extensions)
}

// Read parses the file content into a table.
func (r *Reader) Read(filename string, content io.Reader) (*ingestion.Table, error) {
	if !r.Supports(filename) {
		return nil, fmt.Errorf("unsupported file type %q", filepath.Ext(filename))
	}
	return Read(filename, content)
}

// SupportedExtension reports whether filename ends with one of the allowed extensions.
func SupportedExtension(filename string, allowed []string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return false
	}
	for _, a := range allowed {
		if ext == a {
			return true
		}
	}
	return false
}

// Read parses a CSV or XLSX file. The first row holds the headers; fully
// blank rows are dropped and short rows are padded to the header width.
func Read(filename string, content io.Reader) (*ingestion.Table, error) {
	var (
		rows [][]string
		err  error
	)

	switch strings.ToLower(filepath.Ext(filename)) {
	case extCSV:
		rows, err = readCSV(content)
	case extXLSX:
		rows, err = readXLSX(content)
	default:
		return nil, fmt.Errorf("unsupported file type %q", filepath.Ext(filename))
	}
	if err != nil {
		return nil, err
	}

	return toTable(rows)
}

func readCSV(content io.Reader) ([][]string, error) {
	reader := csv.NewReader(content)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return rows, nil
}

// readXLSX reads the stored cell values of the first sheet. Cells styled
// with a date or time number format hold Excel serial numbers and are
// rendered as ISO dates; every other cell keeps its raw value.
func readXLSX(content io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(content)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	props, err := f.GetWorkbookProps()
	date1904 := err == nil && props.Date1904 != nil && *props.Date1904
	styles := dateStyles{file: f, known: make(map[int]bool)}

	for r, row := range rows {
		for c, value := range row {
			serial, err := strconv.ParseFloat(value, 64)
			if err != nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, err
			}
			if !styles.isDate(sheet, cell) {
				continue
			}
			t, err := excelize.ExcelDateToTime(serial, date1904)
			if err != nil {
				continue
			}
			row[c] = formatCellTime(t)
		}
	}
	return rows, nil
}

// dateStyles remembers which style indexes carry a date number format.
type dateStyles struct {
	file  *excelize.File
	known map[int]bool
}

func (d dateStyles) isDate(sheet, cell string) bool {
	idx, err := d.file.GetCellStyle(sheet, cell)
	if err != nil || idx == 0 {
		return false
	}
	if isDate, ok := d.known[idx]; ok {
		return isDate
	}

	isDate := false
	if style, err := d.file.GetStyle(idx); err == nil && style != nil {
		isDate = isDateNumFmt(style.NumFmt)
		if style.CustomNumFmt != nil {
			isDate = isDateFormatCode(*style.CustomNumFmt)
		}
	}
	d.known[idx] = isDate
	return isDate
}

// isDateNumFmt reports whether a built-in number format id is a date or time format.
func isDateNumFmt(id int) bool {
	switch {
	case id >= 14 && id <= 22,
		id >= 27 && id <= 36,
		id >= 45 && id <= 47,
		id >= 50 && id <= 58:
		return true
	}
	return false
}

// isDateFormatCode reports whether a custom format code has date or time
// tokens once literals, escapes and bracketed sections are removed.
func isDateFormatCode(code string) bool {
	var (
		inQuotes  bool
		inBracket bool
		escaped   bool
	)
	for _, r := range strings.ToLower(code) {
		switch {
		case escaped:
			escaped = false
		case inQuotes:
			inQuotes = r != '"'
		case inBracket:
			inBracket = r != ']'
		case r == '\\':
			escaped = true
		case r == '"':
			inQuotes = true
		case r == '[':
			inBracket = true
		case r == 'y', r == 'm', r == 'd', r == 'h', r == 's':
			return true
		}
	}
	return false
}

func formatCellTime(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format("2006-01-02 15:04:05")
}

func toTable(rows [][]string) (*ingestion.Table, error) {
	var kept [][]string
	for _, row := range rows {
		if !isBlank(row) {
			kept = append(kept, row)
		}
	}
	if len(kept) == 0 {
		return nil, ErrEmptyFile
	}

	headers := kept[0]
	table := &ingestion.Table{
		Headers: headers,
		Rows:    make([][]string, 0, len(kept)-1),
	}
	for _, row := range kept[1:] {
		if len(row) < len(headers) {
			padded := make([]string, len(headers))
			copy(padded, row)
			row = padded
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
