package xlsx

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Reader yields the active sheet of an .xlsx export as header plus data
// rows. The header is the first row with at least two non-empty cells;
// title rows above it are skipped.
type Reader struct {
	path string
}

func NewReader(path string) *Reader {
	return &Reader{path: path}
}

func (r *Reader) Read(ctx context.Context) ([]string, [][]string, error) {
	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open spreadsheet: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, nil, fmt.Errorf("spreadsheet has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot read sheet %q: %w", sheet, err)
	}

	headerIdx := -1
	for i, row := range rows {
		nonEmpty := 0
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				nonEmpty++
			}
		}
		if nonEmpty >= 2 {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil, nil, fmt.Errorf("header row not found")
	}

	headers := make([]string, len(rows[headerIdx]))
	for i, h := range rows[headerIdx] {
		headers[i] = strings.TrimSpace(h)
	}
	return headers, rows[headerIdx+1:], nil
}
