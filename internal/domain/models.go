package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID       int64  `db:"id"`
	Name     string `db:"name"`
	ParentID *int64 `db:"parent_id"`
}

// IsSub reports whether the category sits under a root category.
func (c Category) IsSub() bool { return c.ParentID != nil }

type Product struct {
	ID          int64           `db:"id"`
	Name        string          `db:"name"`
	Description string          `db:"description"`
	Price       decimal.Decimal `db:"price"`
	CategoryID  *int64          `db:"category_id"`
	Photo       string          `db:"photo"`
}

type Client struct {
	ID         int64  `db:"id"`
	TelegramID int64  `db:"telegram_id"`
	Username   string `db:"username"`
	CreatedAt  string `db:"created_at"`
}

// ShippingAddress mirrors the address block the payment platform delivers
// with a confirmed payment.
type ShippingAddress struct {
	CountryCode string `json:"country_code"`
	State       string `json:"state"`
	City        string `json:"city"`
	StreetLine1 string `json:"street_line1"`
	StreetLine2 string `json:"street_line2"`
	PostCode    string `json:"post_code"`
}

// Flatten joins the non-blank address fields in declaration order into the
// single display string stored on an order.
func (a ShippingAddress) Flatten() string {
	parts := make([]string, 0, 6)
	for _, f := range []string{a.CountryCode, a.State, a.City, a.StreetLine1, a.StreetLine2, a.PostCode} {
		if f != "" {
			parts = append(parts, f)
		}
	}
	return strings.Join(parts, ", ")
}
