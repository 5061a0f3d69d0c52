package store

import (
	"context"
	"strconv"
	"time"

	"thrifttu_back_end/internal/models"
)

// SheetLogs appends analytics and audit rows to dedicated tabs of the same
// spreadsheet: "Queries" (what shoppers searched), "CartAdds" (what they
// put in the cart) and "StockAudit" (admin stock changes). Appends are
// best-effort: a lost log line must never fail a shopper request, so
// callers fire them in a goroutine and only log errors.
type SheetLogs struct {
	queries  RowSource
	cartAdds RowSource
	audits   RowSource
	now      func() time.Time
}

func NewSheetLogs(queries, cartAdds, audits RowSource) *SheetLogs {
	return &SheetLogs{queries: queries, cartAdds: cartAdds, audits: audits, now: time.Now}
}

func (l *SheetLogs) timestamp() string {
	return l.now().UTC().Format(time.RFC3339)
}

func (l *SheetLogs) AppendQuery(ctx context.Context, q models.QueryLog) error {
	if q.Timestamp == "" {
		q.Timestamp = l.timestamp()
	}
	return l.queries.Append(ctx, []string{q.Timestamp, q.Text, q.Referer, q.UserAgent})
}

// ListQueries returns the most recent entries, newest first.
func (l *SheetLogs) ListQueries(ctx context.Context, limit int) ([]models.QueryLog, error) {
	rows, err := readLogRows(ctx, l.queries, limit)
	if err != nil {
		return nil, err
	}
	logs := make([]models.QueryLog, 0, len(rows))
	for _, row := range rows {
		logs = append(logs, models.QueryLog{
			Timestamp: cellAt(row, 0),
			Text:      cellAt(row, 1),
			Referer:   cellAt(row, 2),
			UserAgent: cellAt(row, 3),
		})
	}
	return logs, nil
}

func (l *SheetLogs) AppendCartAdd(ctx context.Context, c models.CartAddLog) error {
	if c.Timestamp == "" {
		c.Timestamp = l.timestamp()
	}
	return l.cartAdds.Append(ctx, []string{
		c.Timestamp, c.ProductID, c.Name, c.Size, strconv.Itoa(c.Price), c.UserAgent,
	})
}

func (l *SheetLogs) ListCartAdds(ctx context.Context, limit int) ([]models.CartAddLog, error) {
	rows, err := readLogRows(ctx, l.cartAdds, limit)
	if err != nil {
		return nil, err
	}
	logs := make([]models.CartAddLog, 0, len(rows))
	for _, row := range rows {
		logs = append(logs, models.CartAddLog{
			Timestamp: cellAt(row, 0),
			ProductID: cellAt(row, 1),
			Name:      cellAt(row, 2),
			Size:      cellAt(row, 3),
			Price:     parsePrice(cellAt(row, 4)),
			UserAgent: cellAt(row, 5),
		})
	}
	return logs, nil
}

func (l *SheetLogs) AppendStockAudit(ctx context.Context, a models.StockAudit) error {
	if a.Timestamp == "" {
		a.Timestamp = l.timestamp()
	}
	return l.audits.Append(ctx, []string{
		a.Timestamp, a.ProductID,
		strconv.Itoa(a.OldStock), strconv.Itoa(a.NewStock), strconv.Itoa(a.Delta),
	})
}

// readLogRows reads a log tab and returns up to limit data rows in reverse
// order (most recent append last in the sheet, first in the result).
func readLogRows(ctx context.Context, src RowSource, limit int) ([][]string, error) {
	rows, err := src.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 {
		rows = rows[1:] // header
	}
	if limit > 0 && len(rows) > limit {
		rows = rows[len(rows)-limit:]
	}
	out := make([][]string, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		if !emptyRow(rows[i]) {
			out = append(out, rows[i])
		}
	}
	return out, nil
}

func cellAt(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
