package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopbot/internal/repos"
	"shopbot/internal/services"
)

type stubLinks struct {
	amount  decimal.Decimal
	payload string
	err     error
}

func (s *stubLinks) CreateLink(_ context.Context, amount decimal.Decimal, payload string) (string, error) {
	s.amount = amount
	s.payload = payload
	if s.err != nil {
		return "", s.err
	}
	return "https://pay.example/invoice-1", nil
}

type stubArchive struct {
	recs []services.ArchiveRecord
	err  error
}

func (s *stubArchive) Append(rec services.ArchiveRecord) error {
	s.recs = append(s.recs, rec)
	return s.err
}

func newCheckout(t *testing.T, links services.PaymentLinkProvider, archive services.OrderArchiver) (*services.CheckoutService, *services.CartService) {
	t.Helper()
	db := memdb(t)
	cartSvc := services.NewCartService(repos.NewCartRepo(db))
	orderSvc := services.NewOrderService(repos.NewOrderRepo(db))
	return services.NewCheckoutService(cartSvc, orderSvc, links, archive), cartSvc
}

func TestStartCheckout(t *testing.T) {
	links := &stubLinks{}
	checkout, cartSvc := newCheckout(t, links, &stubArchive{})

	_, err := cartSvc.AddItem(testTelegramID, 1, 2)
	require.NoError(t, err)
	_, err = cartSvc.AddItem(testTelegramID, 2, 1)
	require.NoError(t, err)

	link, total, err := checkout.StartCheckout(context.Background(), testTelegramID)
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/invoice-1", link)
	assert.True(t, total.Equal(decimal.RequireFromString("25.50")))
	assert.True(t, links.amount.Equal(total), "provider sees the cart total")
	assert.Equal(t, "111", links.payload)
}

func TestStartCheckoutEmptyCart(t *testing.T) {
	checkout, _ := newCheckout(t, &stubLinks{}, &stubArchive{})

	_, _, err := checkout.StartCheckout(context.Background(), testTelegramID)
	assert.ErrorIs(t, err, repos.ErrEmptyCart)
}

func TestConfirmPayment(t *testing.T) {
	archive := &stubArchive{}
	checkout, cartSvc := newCheckout(t, &stubLinks{}, archive)

	_, err := cartSvc.AddItem(testTelegramID, 1, 2)
	require.NoError(t, err)

	conf, err := checkout.ConfirmPayment(testTelegramID, testAddress, decimal.RequireFromString("20.00"))
	require.NoError(t, err)
	assert.True(t, conf.Order.TotalPrice.Equal(decimal.RequireFromString("20.00")))
	require.Len(t, conf.Items, 1)

	require.Len(t, archive.recs, 1)
	assert.Equal(t, testTelegramID, archive.recs[0].TelegramID)
	assert.Len(t, archive.recs[0].Items, 1)
	assert.True(t, archive.recs[0].Total.Equal(conf.Order.TotalPrice))

	// the cart is gone, a retried signal is a no-op failure
	_, err = checkout.ConfirmPayment(testTelegramID, testAddress, decimal.RequireFromString("20.00"))
	assert.ErrorIs(t, err, repos.ErrEmptyCart)
}

func TestConfirmPaymentArchivalFailureIsNonFatal(t *testing.T) {
	archive := &stubArchive{err: errors.New("disk full")}
	checkout, cartSvc := newCheckout(t, &stubLinks{}, archive)

	_, err := cartSvc.AddItem(testTelegramID, 2, 1)
	require.NoError(t, err)

	conf, err := checkout.ConfirmPayment(testTelegramID, testAddress, decimal.RequireFromString("5.50"))
	require.NoError(t, err, "archival failure must never fail a paid order")
	assert.NotZero(t, conf.Order.ID)
}

func TestConfirmPaymentUnknownClientLeavesNothing(t *testing.T) {
	checkout, _ := newCheckout(t, &stubLinks{}, &stubArchive{})

	_, err := checkout.ConfirmPayment(999, testAddress, decimal.Zero)
	assert.ErrorIs(t, err, repos.ErrClientNotFound)
}
