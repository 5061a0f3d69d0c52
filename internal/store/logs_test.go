package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thrifttu_back_end/internal/models"
)

func newFakeLogTab(header ...string) *fakeSource {
	return &fakeSource{rows: [][]string{header}}
}

func testLogs() (*SheetLogs, *fakeSource, *fakeSource, *fakeSource) {
	queries := newFakeLogTab("Timestamp", "Text", "Referer", "UserAgent")
	carts := newFakeLogTab("Timestamp", "ProductID", "Name", "Size", "Price", "UserAgent")
	audits := newFakeLogTab("Timestamp", "ProductID", "OldStock", "NewStock", "Delta")
	l := NewSheetLogs(queries, carts, audits)
	l.now = func() time.Time { return time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC) }
	return l, queries, carts, audits
}

func TestAppendQueryStampsMissingTimestamp(t *testing.T) {
	l, queries, _, _ := testLogs()

	require.NoError(t, l.AppendQuery(context.Background(), models.QueryLog{Text: "nike 42"}))
	require.Len(t, queries.rows, 2)
	assert.Equal(t, "2026-03-14T09:00:00Z", queries.rows[1][0])
	assert.Equal(t, "nike 42", queries.rows[1][1])
}

func TestListQueriesNewestFirstWithLimit(t *testing.T) {
	l, _, _, _ := testLogs()
	ctx := context.Background()

	for _, text := range []string{"first", "second", "third"} {
		require.NoError(t, l.AppendQuery(ctx, models.QueryLog{Text: text}))
	}

	logs, err := l.ListQueries(ctx, 2)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "third", logs[0].Text)
	assert.Equal(t, "second", logs[1].Text)
}

func TestCartAddRoundTrip(t *testing.T) {
	l, _, _, _ := testLogs()
	ctx := context.Background()

	require.NoError(t, l.AppendCartAdd(ctx, models.CartAddLog{
		ProductID: "P-1", Name: "Nike Air Max 90", Size: "42", Price: 450000,
	}))

	logs, err := l.ListCartAdds(ctx, 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "P-1", logs[0].ProductID)
	assert.Equal(t, 450000, logs[0].Price)
}

func TestAppendStockAudit(t *testing.T) {
	l, _, _, audits := testLogs()

	require.NoError(t, l.AppendStockAudit(context.Background(), models.StockAudit{
		ProductID: "P-1", OldStock: 1, NewStock: 0, Delta: -1,
	}))
	require.Len(t, audits.rows, 2)
	assert.Equal(t, []string{"2026-03-14T09:00:00Z", "P-1", "1", "0", "-1"}, audits.rows[1])
}
