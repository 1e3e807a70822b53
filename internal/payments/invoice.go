// Package payments obtains opaque payment links from the messaging
// platform's invoice API. The link amount is fixed at creation time.
package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

type labeledPrice struct {
	Label  string `json:"label"`
	Amount int64  `json:"amount"` // minor currency units
}

type invoiceRequest struct {
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Payload       string         `json:"payload"`
	ProviderToken string         `json:"provider_token"`
	Currency      string         `json:"currency"`
	Prices        []labeledPrice `json:"prices"`
	NeedShipping  bool           `json:"need_shipping_address"`
}

type invoiceResponse struct {
	OK          bool   `json:"ok"`
	Result      string `json:"result"`
	Description string `json:"description"`
}

// InvoiceClient implements services.PaymentLinkProvider against the bot
// platform's createInvoiceLink endpoint.
type InvoiceClient struct {
	apiURL        string
	botToken      string
	providerToken string
	currency      string
	httpc         *http.Client
}

func NewInvoiceClient(apiURL, botToken, providerToken, currency string) *InvoiceClient {
	return &InvoiceClient{
		apiURL:        apiURL,
		botToken:      botToken,
		providerToken: providerToken,
		currency:      currency,
		httpc:         &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *InvoiceClient) CreateLink(ctx context.Context, amount decimal.Decimal, payload string) (string, error) {
	req := invoiceRequest{
		Title:         "Payment",
		Description:   "Payment for the items in your cart",
		Payload:       payload,
		ProviderToken: c.providerToken,
		Currency:      c.currency,
		Prices: []labeledPrice{{
			Label:  "Cart total",
			Amount: amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart(),
		}},
		NeedShipping: true, // physical goods
	}
	body, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/bot%s/createInvoiceLink", c.apiURL, c.botToken)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("create invoice link: %w", err)
	}
	defer resp.Body.Close()

	var out invoiceResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode invoice response: %w", err)
	}
	if !out.OK {
		return "", fmt.Errorf("create invoice link: %s", out.Description)
	}
	return out.Result, nil
}
