package services

import (
	"github.com/shopspring/decimal"

	applog "shopbot/internal/log"
	"shopbot/internal/repos"
	"shopbot/internal/validate"
)

type CartService struct {
	Carts *repos.CartRepo
}

func NewCartService(carts *repos.CartRepo) *CartService {
	return &CartService{Carts: carts}
}

// AddItem puts quantity of a product into the client's cart, creating the
// cart lazily and adding to the existing line when the product is already
// there. Returns the resulting line with its post-update quantity.
func (s *CartService) AddItem(telegramID, productID int64, quantity int) (repos.CartItemRow, error) {
	quantity = validate.Qty(quantity)
	row, err := s.Carts.AddItem(telegramID, productID, quantity)
	if err != nil {
		return repos.CartItemRow{}, err
	}
	applog.Info(nil, "cart.add", map[string]any{
		"telegram_id": telegramID, "product_id": productID, "quantity": row.Quantity,
	})
	return row, nil
}

// ListItems returns the cart lines with products attached; an absent cart
// yields an empty list, never an error.
func (s *CartService) ListItems(telegramID int64) ([]repos.CartItemRow, error) {
	return s.Carts.Items(telegramID)
}

// Clear drops the cart and reports whether there was one to drop.
func (s *CartService) Clear(telegramID int64) (bool, error) {
	existed, err := s.Carts.Clear(telegramID)
	if err != nil {
		return false, err
	}
	applog.Info(nil, "cart.clear", map[string]any{"telegram_id": telegramID, "existed": existed})
	return existed, nil
}

// CartTotal sums quantity x price over the lines in exact decimal.
func CartTotal(items []repos.CartItemRow) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return total
}
