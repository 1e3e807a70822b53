package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"shopbot/internal/bot"
	"shopbot/internal/config"
	"shopbot/internal/export"
	applog "shopbot/internal/log"
	"shopbot/internal/payments"
	"shopbot/internal/repos"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	// Platform wiring
	sender := bot.NewAPISender(cfg.PaymentAPIURL, cfg.BotToken)
	links := payments.NewInvoiceClient(cfg.PaymentAPIURL, cfg.BotToken, cfg.PaymentToken, "RUB")
	archive := export.NewXLSXArchiver(cfg.OrdersXLSX)

	handlers := bot.NewHandlers(db, cfg, sender, links, archive, bot.AllowAll{})
	router := bot.NewRouter(sender)
	handlers.Register(router)

	webhook := &bot.Webhook{Router: router, Secret: cfg.WebhookSecret}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.SendStatus(fiber.StatusInternalServerError)
		},
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))

	// ---------- Routes ----------
	app.Post("/webhook", webhook.Handle)
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	log.Fatal(app.Listen(":" + cfg.Port))
}
