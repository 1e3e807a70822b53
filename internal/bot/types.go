// Package bot is the chat front-end: it receives platform updates over a
// webhook, dispatches them through an explicit routing table keyed by the
// decoded navigation token, and replies with paginated inline keyboards.
package bot

import "shopbot/internal/domain"

type Update struct {
	UpdateID      int64          `json:"update_id"`
	Message       *Message       `json:"message,omitempty"`
	CallbackQuery *CallbackQuery `json:"callback_query,omitempty"`
}

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type Chat struct {
	ID int64 `json:"id"`
}

type Message struct {
	MessageID         int64              `json:"message_id"`
	From              *User              `json:"from,omitempty"`
	Chat              Chat               `json:"chat"`
	Text              string             `json:"text,omitempty"`
	SuccessfulPayment *SuccessfulPayment `json:"successful_payment,omitempty"`
}

type CallbackQuery struct {
	ID      string   `json:"id"`
	From    User     `json:"from"`
	Message *Message `json:"message,omitempty"`
	Data    string   `json:"data"`
}

type SuccessfulPayment struct {
	Currency       string     `json:"currency"`
	TotalAmount    int64      `json:"total_amount"` // minor currency units
	InvoicePayload string     `json:"invoice_payload"`
	OrderInfo      *OrderInfo `json:"order_info,omitempty"`
}

type OrderInfo struct {
	ShippingAddress *domain.ShippingAddress `json:"shipping_address,omitempty"`
}

type InlineKeyboardButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data,omitempty"`
	URL          string `json:"url,omitempty"`
}

type InlineKeyboardMarkup struct {
	InlineKeyboard [][]InlineKeyboardButton `json:"inline_keyboard"`
}
