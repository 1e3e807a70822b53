package services

import (
	"context"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"shopbot/internal/domain"
	applog "shopbot/internal/log"
	"shopbot/internal/repos"
)

// PaymentLinkProvider turns (amount, payload) into an opaque payment URL.
// The payload comes back verbatim with the confirmed-payment signal.
type PaymentLinkProvider interface {
	CreateLink(ctx context.Context, amount decimal.Decimal, payload string) (string, error)
}

// ArchiveRecord is one completed order as exported for external archival.
type ArchiveRecord struct {
	CreatedAt  time.Time
	TelegramID int64
	Address    domain.ShippingAddress
	Items      []repos.OrderItemRow
	Total      decimal.Decimal
}

type OrderArchiver interface {
	Append(rec ArchiveRecord) error
}

// CheckoutService bridges the cart to the payment platform: it issues the
// payment link and, on a confirmed payment, materializes the order and hands
// it to the archiver.
type CheckoutService struct {
	Cart    *CartService
	Orders  *OrderService
	Links   PaymentLinkProvider
	Archive OrderArchiver
}

func NewCheckoutService(cart *CartService, orders *OrderService, links PaymentLinkProvider, archive OrderArchiver) *CheckoutService {
	return &CheckoutService{Cart: cart, Orders: orders, Links: links, Archive: archive}
}

// StartCheckout computes the cart total and obtains a payment link for it.
// The client's telegram id rides along as the invoice payload.
func (s *CheckoutService) StartCheckout(ctx context.Context, telegramID int64) (string, decimal.Decimal, error) {
	items, err := s.Cart.ListItems(telegramID)
	if err != nil {
		return "", decimal.Zero, err
	}
	if len(items) == 0 {
		return "", decimal.Zero, repos.ErrEmptyCart
	}

	total := CartTotal(items)
	link, err := s.Links.CreateLink(ctx, total, strconv.FormatInt(telegramID, 10))
	if err != nil {
		return "", decimal.Zero, err
	}
	applog.Info(nil, "checkout.start", map[string]any{
		"telegram_id": telegramID, "total": total.String(),
	})
	return link, total, nil
}

type Confirmation struct {
	Order repos.OrderRow
	Items []repos.OrderItemRow
}

// ConfirmPayment handles the platform's confirmed-payment signal. The paid
// amount is trusted as confirmed upstream (it was fixed at link creation);
// it is logged here for audit but not compared against the cart total.
// Archival failure is logged and never undoes the committed order.
func (s *CheckoutService) ConfirmPayment(telegramID int64, addr domain.ShippingAddress, paidAmount decimal.Decimal) (Confirmation, error) {
	applog.Info(nil, "payment.confirmed", map[string]any{
		"telegram_id": telegramID, "paid": paidAmount.String(),
	})

	order, items, err := s.Orders.CreateOrderFromCart(telegramID, addr)
	if err != nil {
		return Confirmation{}, err
	}

	if s.Archive != nil {
		rec := ArchiveRecord{
			CreatedAt:  time.Now().UTC(),
			TelegramID: telegramID,
			Address:    addr,
			Items:      items,
			Total:      order.TotalPrice,
		}
		if aerr := s.Archive.Append(rec); aerr != nil {
			applog.Error(nil, "order.archive", aerr, map[string]any{
				"telegram_id": telegramID, "order_id": order.ID,
			})
		}
	}

	return Confirmation{Order: order, Items: items}, nil
}
