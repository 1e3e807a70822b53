package bot

import (
	"github.com/gofiber/fiber/v2"

	applog "shopbot/internal/log"
)

const secretHeader = "X-Telegram-Bot-Api-Secret-Token"

// Webhook is the inbound HTTP edge: it authenticates the platform's secret
// header, parses the update and hands it to the router. It always answers
// 200 for well-formed requests so the platform does not re-deliver updates
// we already handled; handler errors are logged, not surfaced.
type Webhook struct {
	Router *Router
	Secret string
}

func (w *Webhook) Handle(c *fiber.Ctx) error {
	if w.Secret != "" && c.Get(secretHeader) != w.Secret {
		applog.Warn(c, "webhook.secret.mismatch", nil)
		return c.SendStatus(fiber.StatusForbidden)
	}

	var upd Update
	if err := c.BodyParser(&upd); err != nil {
		applog.Warn(c, "webhook.body.invalid", map[string]any{"err": err.Error()})
		return c.SendStatus(fiber.StatusOK)
	}

	if err := w.Router.Dispatch(c.Context(), upd); err != nil {
		applog.Error(c, "webhook.dispatch", err, map[string]any{"update_id": upd.UpdateID})
	}
	return c.SendStatus(fiber.StatusOK)
}
