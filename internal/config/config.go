package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DBDSN         string
	LogFile       string
	BotToken      string
	WebhookSecret string
	PaymentAPIURL string
	PaymentToken  string
	OrdersXLSX    string
	ChannelURL    string
	GroupURL      string
}

func Load() Config {
	// .env is optional; deployments may set the environment directly
	_ = godotenv.Load()

	get := func(key, def string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		Port:          get("PORT", "8080"),
		DBDSN:         get("DB_DSN", "shopbot.db"),
		LogFile:       get("LOG_FILE", "./shopbot.log"),
		BotToken:      os.Getenv("BOT_TOKEN"),
		WebhookSecret: os.Getenv("WEBHOOK_SECRET"),
		PaymentAPIURL: get("PAYMENT_API_URL", "https://api.telegram.org"),
		PaymentToken:  os.Getenv("PAYMENT_PROVIDER_TOKEN"),
		OrdersXLSX:    get("ORDERS_XLSX", "orders_data/orders.xlsx"),
		ChannelURL:    os.Getenv("CHANNEL_URL"),
		GroupURL:      os.Getenv("GROUP_URL"),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s ORDERS_XLSX=%s", cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.OrdersXLSX)
	return cfg
}
