package driven

import "context"

// ITabularSource yields a spreadsheet export as a header row plus data rows
// of already-stringified cells.
type ITabularSource interface {
	Read(ctx context.Context) (headers []string, rows [][]string, err error)
}
