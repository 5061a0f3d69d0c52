package store

import (
	"context"
	"fmt"

	"google.golang.org/api/sheets/v4"
)

// SheetSource implements RowSource on top of one tab of a Google
// spreadsheet. The tab's first row is a header; WriteRow/ClearRow indexes
// are 0-based over the data rows below it.
type SheetSource struct {
	svc           *sheets.Service
	spreadsheetID string
	tab           string
	lastCol       string
}

func NewSheetSource(svc *sheets.Service, spreadsheetID, tab, lastCol string) *SheetSource {
	return &SheetSource{svc: svc, spreadsheetID: spreadsheetID, tab: tab, lastCol: lastCol}
}

func (s *SheetSource) fullRange() string {
	return fmt.Sprintf("%s!A:%s", s.tab, s.lastCol)
}

func (s *SheetSource) rowRange(rowIndex int) string {
	// +2: 1-based sheet rows plus the header row.
	n := rowIndex + 2
	return fmt.Sprintf("%s!A%d:%s%d", s.tab, n, s.lastCol, n)
}

func (s *SheetSource) ReadAll(ctx context.Context) ([][]string, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.fullRange()).Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, len(raw))
		for i, cell := range raw {
			row[i] = fmt.Sprint(cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *SheetSource) Append(ctx context.Context, row []string) error {
	_, err := s.svc.Spreadsheets.Values.
		Append(s.spreadsheetID, s.fullRange(), &sheets.ValueRange{Values: [][]interface{}{toCells(row)}}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	return err
}

func (s *SheetSource) WriteRow(ctx context.Context, rowIndex int, row []string) error {
	_, err := s.svc.Spreadsheets.Values.
		Update(s.spreadsheetID, s.rowRange(rowIndex), &sheets.ValueRange{Values: [][]interface{}{toCells(row)}}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	return err
}

func (s *SheetSource) ClearRow(ctx context.Context, rowIndex int) error {
	_, err := s.svc.Spreadsheets.Values.
		Clear(s.spreadsheetID, s.rowRange(rowIndex), &sheets.ClearValuesRequest{}).
		Context(ctx).Do()
	return err
}

func toCells(row []string) []interface{} {
	cells := make([]interface{}, len(row))
	for i, v := range row {
		cells[i] = v
	}
	return cells
}
