package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"shopbot/internal/domain"
	applog "shopbot/internal/log"
	"shopbot/internal/nav"
	"shopbot/internal/repos"
	"shopbot/internal/services"
	"shopbot/internal/validate"
)

// SubscriptionChecker gates the shop behind the platform community
// membership. The real check lives on the platform side; this is the seam.
type SubscriptionChecker interface {
	IsSubscribed(ctx context.Context, userID int64) (bool, error)
}

// AllowAll disables the subscription gate.
type AllowAll struct{}

func (AllowAll) IsSubscribed(context.Context, int64) (bool, error) { return true, nil }

type Handlers struct {
	Catalog  *services.CatalogService
	Cart     *services.CartService
	Checkout *services.CheckoutService
	Clients  *repos.ClientRepo
	Subs     SubscriptionChecker
	Send     Sender

	ChannelURL string
	GroupURL   string
}

// Register builds the routing table. This is the single place where token
// kinds map to behavior.
func (h *Handlers) Register(r *Router) {
	r.OnStart(h.Start)
	r.OnPayment(h.PaymentConfirmed)

	r.Handle(nav.KindMainMenu, h.MainMenu)
	r.Handle(nav.KindCategory, h.Categories)
	r.Handle(nav.KindSubcategory, h.Subcategories)
	r.Handle(nav.KindProduct, h.Products)
	r.Handle(nav.KindAddToCart, h.AddToCart)
	r.Handle(nav.KindSetQuantity, h.SetQuantity)
	r.Handle(nav.KindConfirmAdd, h.ConfirmAdd)
	r.Handle(nav.KindCart, h.ShowCart)
	r.Handle(nav.KindClearCart, h.ClearCart)
	r.Handle(nav.KindOrder, h.StartOrder)
	r.Handle(nav.KindFAQ, h.FAQ)
	r.Handle(nav.KindCheckSub, h.CheckSubscription)
	r.Handle(nav.KindNoop, h.Noop)
}

// editOrSend prefers editing the message the keyboard hangs off; when there
// is nothing to edit it sends a fresh message instead.
func (h *Handlers) editOrSend(ctx context.Context, req *Request, text string, kb *InlineKeyboardMarkup) error {
	if req.MessageID != 0 {
		if err := h.Send.EditMessage(ctx, req.ChatID, req.MessageID, text, kb); err == nil {
			return nil
		}
	}
	return h.Send.SendMessage(ctx, req.ChatID, text, kb)
}

func (h *Handlers) ack(ctx context.Context, req *Request) {
	if req.CallbackID != "" {
		_ = h.Send.AnswerCallback(ctx, req.CallbackID, "")
	}
}

func (h *Handlers) Start(ctx context.Context, req *Request) error {
	client, err := h.Clients.GetOrCreate(req.UserID, validate.Username(req.Username))
	if err != nil {
		return err
	}
	applog.Info(nil, "bot.start", map[string]any{"telegram_id": client.TelegramID})

	ok, err := h.Subs.IsSubscribed(ctx, req.UserID)
	if err != nil {
		return err
	}
	if !ok {
		return h.Send.SendMessage(ctx, req.ChatID,
			"Subscribe to our channel and group to use the shop:",
			subscriptionKeyboard(h.ChannelURL, h.GroupURL))
	}
	return h.Send.SendMessage(ctx, req.ChatID, "Main menu", mainMenuKeyboard())
}

func (h *Handlers) MainMenu(ctx context.Context, req *Request) error {
	defer h.ack(ctx, req)
	return h.editOrSend(ctx, req, "Main menu", mainMenuKeyboard())
}

// Categories serves two views: the root category list (no target id) and,
// when a category is chosen, its subcategory list.
func (h *Handlers) Categories(ctx context.Context, req *Request) error {
	defer h.ack(ctx, req)
	tok := req.Token

	if tok.ID == 0 {
		cats, err := h.Catalog.RootCategories()
		if err != nil {
			return err
		}
		if len(cats) == 0 {
			return h.editOrSend(ctx, req, "No categories yet.", mainMenuReturnKeyboard())
		}
		kb := catalogKeyboard(nav.KindCategory, categoryEntries(cats), tok.Page, 0, nav.Action(nav.KindMainMenu))
		return h.editOrSend(ctx, req, "Choose a category:", kb)
	}

	subs, err := h.Catalog.Subcategories(tok.ID)
	if err != nil {
		return err
	}
	kb := catalogKeyboard(nav.KindSubcategory, categoryEntries(subs), 1, tok.ID, nav.Action(nav.KindCategory))
	return h.editOrSend(ctx, req, "Choose a subcategory:", kb)
}

// Subcategories pages through a category's subcategories and, when one is
// chosen, shows its product list.
func (h *Handlers) Subcategories(ctx context.Context, req *Request) error {
	defer h.ack(ctx, req)
	tok := req.Token

	switch {
	case tok.ID == 0 && tok.ParentID != 0:
		subs, err := h.Catalog.Subcategories(tok.ParentID)
		if err != nil {
			return err
		}
		kb := catalogKeyboard(nav.KindSubcategory, categoryEntries(subs), tok.Page, tok.ParentID, nav.Action(nav.KindCategory))
		return h.editOrSend(ctx, req, "Choose a subcategory:", kb)

	case tok.ID == 0:
		// back to the catalog root
		return h.Categories(ctx, &Request{
			Update: req.Update, ChatID: req.ChatID, MessageID: req.MessageID,
			UserID: req.UserID, Token: nav.Token{Kind: nav.KindCategory, Page: 1},
		})

	default:
		prods, err := h.Catalog.ProductsByCategory(tok.ID)
		if err != nil {
			return err
		}
		back := nav.Encode(nav.Token{Kind: nav.KindSubcategory, Page: 1, ParentID: tok.ParentID})
		kb := catalogKeyboard(nav.KindProduct, productEntries(prods), 1, tok.ID, back)
		return h.editOrSend(ctx, req, "Choose a product:", kb)
	}
}

// Products pages through a subcategory's products and shows a product card
// when one is chosen.
func (h *Handlers) Products(ctx context.Context, req *Request) error {
	defer h.ack(ctx, req)
	tok := req.Token

	if tok.ID == 0 {
		if tok.ParentID == 0 {
			return h.Categories(ctx, &Request{
				Update: req.Update, ChatID: req.ChatID, MessageID: req.MessageID,
				UserID: req.UserID, Token: nav.Token{Kind: nav.KindCategory, Page: 1},
			})
		}
		prods, err := h.Catalog.ProductsByCategory(tok.ParentID)
		if err != nil {
			return err
		}
		back := nav.Encode(nav.Token{Kind: nav.KindSubcategory, Page: 1})
		kb := catalogKeyboard(nav.KindProduct, productEntries(prods), tok.Page, tok.ParentID, back)
		return h.editOrSend(ctx, req, "Choose a product:", kb)
	}

	p, err := h.Catalog.Product(tok.ID)
	if err != nil {
		if errors.Is(err, repos.ErrProductNotFound) {
			return h.editOrSend(ctx, req, "This product is no longer available.", mainMenuReturnKeyboard())
		}
		return err
	}
	card := fmt.Sprintf("%s\n\n%s\n\nPrice: %s", p.Name, p.Description, p.Price.StringFixed(2))
	return h.editOrSend(ctx, req, card, addToCartKeyboard(p.ID, tok))
}

func (h *Handlers) AddToCart(ctx context.Context, req *Request) error {
	defer h.ack(ctx, req)
	return h.editOrSend(ctx, req, "Choose a quantity 👇", quantityKeyboard(req.Token.ID, 1))
}

func (h *Handlers) SetQuantity(ctx context.Context, req *Request) error {
	defer h.ack(ctx, req)
	qty := validate.Qty(req.Token.Quantity)
	return h.editOrSend(ctx, req, "Choose a quantity 👇", quantityKeyboard(req.Token.ID, qty))
}

func (h *Handlers) ConfirmAdd(ctx context.Context, req *Request) error {
	_, err := h.Cart.AddItem(req.UserID, req.Token.ID, req.Token.Quantity)
	switch {
	case errors.Is(err, repos.ErrProductNotFound):
		return h.Send.AnswerCallback(ctx, req.CallbackID, "This product is no longer available.")
	case errors.Is(err, repos.ErrClientNotFound):
		return h.Send.AnswerCallback(ctx, req.CallbackID, "Press /start first.")
	case err != nil:
		return err
	}
	h.ack(ctx, req)
	return h.editOrSend(ctx, req, "✅ Added to cart!", mainMenuKeyboard())
}

func (h *Handlers) ShowCart(ctx context.Context, req *Request) error {
	items, err := h.Cart.ListItems(req.UserID)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return h.Send.AnswerCallback(ctx, req.CallbackID, "Your cart is empty.")
	}
	h.ack(ctx, req)

	text := "Items in your cart:\n"
	for _, it := range items {
		text += fmt.Sprintf("\n✅ %s x %d = %s\n", it.Name, it.Quantity, it.Subtotal().StringFixed(2))
	}
	text += fmt.Sprintf("\nTotal: %s", services.CartTotal(items).StringFixed(2))
	return h.editOrSend(ctx, req, text, cartKeyboard(req.UserID))
}

func (h *Handlers) ClearCart(ctx context.Context, req *Request) error {
	existed, err := h.Cart.Clear(req.UserID)
	if err != nil {
		return err
	}
	h.ack(ctx, req)
	if !existed {
		return h.editOrSend(ctx, req, "Your cart is already empty.", mainMenuKeyboard())
	}
	return h.editOrSend(ctx, req, "Your cart is now empty.", mainMenuKeyboard())
}

func (h *Handlers) StartOrder(ctx context.Context, req *Request) error {
	link, total, err := h.Checkout.StartCheckout(ctx, req.UserID)
	if errors.Is(err, repos.ErrEmptyCart) {
		return h.Send.AnswerCallback(ctx, req.CallbackID, "Your cart is empty.")
	}
	if err != nil {
		return err
	}
	h.ack(ctx, req)
	text := fmt.Sprintf("Your total is %s. Pay to complete the order:", total.StringFixed(2))
	return h.editOrSend(ctx, req, text, payKeyboard(link))
}

// PaymentConfirmed handles the platform's successful-payment message: the
// invoice payload carries the client's platform id, the order info carries
// the shipping address. A failed materialization leaves the cart intact.
func (h *Handlers) PaymentConfirmed(ctx context.Context, req *Request) error {
	sp := req.Update.Message.SuccessfulPayment

	userID, err := strconv.ParseInt(sp.InvoicePayload, 10, 64)
	if err != nil {
		applog.Warn(nil, "payment.payload.invalid", map[string]any{"trace_id": req.TraceID, "payload": sp.InvoicePayload})
		return h.Send.SendMessage(ctx, req.ChatID, "Something went wrong with your order.", mainMenuReturnKeyboard())
	}

	var addr domain.ShippingAddress
	if sp.OrderInfo != nil && sp.OrderInfo.ShippingAddress != nil {
		addr = *sp.OrderInfo.ShippingAddress
	}
	paid := decimal.New(sp.TotalAmount, -2)

	_, err = h.Checkout.ConfirmPayment(userID, addr, paid)
	switch {
	case errors.Is(err, repos.ErrEmptyCart):
		// already converted (re-delivered signal) or nothing to order
		return h.Send.SendMessage(ctx, req.ChatID, "There is nothing to order.", mainMenuReturnKeyboard())
	case errors.Is(err, repos.ErrConflict):
		return h.Send.SendMessage(ctx, req.ChatID, "Please try again.", mainMenuReturnKeyboard())
	case err != nil:
		applog.Error(nil, "payment.confirm", err, map[string]any{"trace_id": req.TraceID, "telegram_id": userID})
		return h.Send.SendMessage(ctx, req.ChatID, "An error occurred while placing your order.", mainMenuReturnKeyboard())
	}
	return h.Send.SendMessage(ctx, req.ChatID, "✅ Thank you! Your order has been placed.", mainMenuReturnKeyboard())
}

func (h *Handlers) FAQ(ctx context.Context, req *Request) error {
	defer h.ack(ctx, req)
	return h.editOrSend(ctx, req,
		"Browse the catalog, add items to your cart and pay by card. Questions? Write to the channel.",
		mainMenuReturnKeyboard())
}

func (h *Handlers) CheckSubscription(ctx context.Context, req *Request) error {
	ok, err := h.Subs.IsSubscribed(ctx, req.UserID)
	if err != nil {
		return err
	}
	if !ok {
		return h.Send.AnswerCallback(ctx, req.CallbackID, "You are not subscribed yet.")
	}
	h.ack(ctx, req)
	return h.editOrSend(ctx, req, "Main menu", mainMenuKeyboard())
}

func (h *Handlers) Noop(ctx context.Context, req *Request) error {
	return h.Send.AnswerCallback(ctx, req.CallbackID, "")
}

func categoryEntries(cats []domain.Category) []listEntry {
	out := make([]listEntry, len(cats))
	for i, c := range cats {
		out[i] = listEntry{ID: c.ID, Name: c.Name}
	}
	return out
}

func productEntries(prods []domain.Product) []listEntry {
	out := make([]listEntry, len(prods))
	for i, p := range prods {
		out[i] = listEntry{ID: p.ID, Name: p.Name}
	}
	return out
}
