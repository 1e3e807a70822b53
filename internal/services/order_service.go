package services

import (
	"errors"

	"shopbot/internal/domain"
	applog "shopbot/internal/log"
	"shopbot/internal/repos"
)

type OrderService struct {
	Orders *repos.OrderRepo
}

func NewOrderService(orders *repos.OrderRepo) *OrderService {
	return &OrderService{Orders: orders}
}

// CreateOrderFromCart materializes the client's cart into an immutable
// order: one transaction covering the empty-cart check, the order and item
// inserts with price-at-purchase captured, and the cart deletion. A lost
// lock race (ErrConflict) is retried once before being surfaced.
func (s *OrderService) CreateOrderFromCart(telegramID int64, addr domain.ShippingAddress) (repos.OrderRow, []repos.OrderItemRow, error) {
	address := addr.Flatten()

	order, items, err := s.Orders.CreateFromCart(telegramID, address)
	if errors.Is(err, repos.ErrConflict) {
		applog.Warn(nil, "order.create.retry", map[string]any{"telegram_id": telegramID})
		order, items, err = s.Orders.CreateFromCart(telegramID, address)
	}
	if err != nil {
		return repos.OrderRow{}, nil, err
	}

	applog.Info(nil, "order.create", map[string]any{
		"telegram_id": telegramID,
		"order_id":    order.ID,
		"items":       len(items),
		"total":       order.TotalPrice.String(),
	})
	return order, items, nil
}
