package export_test

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"shopbot/internal/domain"
	"shopbot/internal/export"
	"shopbot/internal/repos"
	"shopbot/internal/services"
)

func record(total string) services.ArchiveRecord {
	return services.ArchiveRecord{
		CreatedAt:  time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC),
		TelegramID: 111,
		Address: domain.ShippingAddress{
			CountryCode: "DE", City: "Berlin", StreetLine1: "Torstr. 1", PostCode: "10119",
		},
		Items: []repos.OrderItemRow{
			{ProductID: sql.NullInt64{Int64: 1, Valid: true}, Name: "Black T-Shirt", Quantity: 2, Price: decimal.RequireFromString("10.00")},
		},
		Total: decimal.RequireFromString(total),
	}
}

func TestAppendCreatesWorkbookAndAccumulates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.xlsx")
	a := export.NewXLSXArchiver(path)

	require.NoError(t, a.Append(record("20.00")))
	require.NoError(t, a.Append(record("20.00")))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus two orders")
	assert.Equal(t, "Date", rows[0][0])
	assert.Equal(t, "111", rows[1][1])
	assert.Equal(t, "DE", rows[1][2])
	assert.Contains(t, rows[1][6], "Black T-Shirt (×2)")
	assert.Equal(t, "20.00", rows[2][7])
}
