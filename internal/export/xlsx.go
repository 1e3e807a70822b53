// Package export appends completed orders to an xlsx workbook for the shop
// owner. Failures here are surfaced to the caller but must never undo an
// already-committed order.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"

	"shopbot/internal/services"
)

var header = []any{
	"Date", "User ID", "Country", "City", "Street", "Post code", "Items", "Total",
}

type XLSXArchiver struct {
	mu   sync.Mutex
	path string
}

func NewXLSXArchiver(path string) *XLSXArchiver {
	return &XLSXArchiver{path: path}
}

// Append adds one row for the order, creating the workbook with a header
// row on first use.
func (a *XLSXArchiver) Append(rec services.ArchiveRecord) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	var (
		f   *excelize.File
		err error
	)
	if _, statErr := os.Stat(a.path); statErr == nil {
		f, err = excelize.OpenFile(a.path)
		if err != nil {
			return fmt.Errorf("open orders workbook: %w", err)
		}
	} else {
		f = excelize.NewFile()
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("read orders sheet: %w", err)
	}
	next := len(rows) + 1
	if next == 1 {
		if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
			return err
		}
		next = 2
	}

	lines := make([]string, 0, len(rec.Items))
	for _, it := range rec.Items {
		lines = append(lines, fmt.Sprintf("%s (×%d) — %s", it.Name, it.Quantity, it.Price.StringFixed(2)))
	}

	row := []any{
		rec.CreatedAt.Format("2006-01-02 15:04:05"),
		rec.TelegramID,
		rec.Address.CountryCode,
		rec.Address.City,
		rec.Address.StreetLine1,
		rec.Address.PostCode,
		strings.Join(lines, "\n"),
		rec.Total.StringFixed(2),
	}
	if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", next), &row); err != nil {
		return err
	}

	if dir := filepath.Dir(a.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := f.SaveAs(a.path); err != nil {
		return fmt.Errorf("save orders workbook: %w", err)
	}
	return nil
}
