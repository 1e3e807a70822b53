package bot

import (
	"github.com/jmoiron/sqlx"

	"shopbot/internal/config"
	"shopbot/internal/repos"
	"shopbot/internal/services"
)

// NewHandlers wires repositories and services into the handler set. Each
// handler gets its collaborators explicitly; nothing reaches into globals.
func NewHandlers(db *sqlx.DB, cfg config.Config, send Sender,
	links services.PaymentLinkProvider, archive services.OrderArchiver,
	subs SubscriptionChecker) *Handlers {

	cartSvc := services.NewCartService(repos.NewCartRepo(db))
	orderSvc := services.NewOrderService(repos.NewOrderRepo(db))

	return &Handlers{
		Catalog:    services.NewCatalogService(repos.NewCatalogRepo(db)),
		Cart:       cartSvc,
		Checkout:   services.NewCheckoutService(cartSvc, orderSvc, links, archive),
		Clients:    repos.NewClientRepo(db),
		Subs:       subs,
		Send:       send,
		ChannelURL: cfg.ChannelURL,
		GroupURL:   cfg.GroupURL,
	}
}
