package bot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Sender is the outbound half of the platform API. Handlers depend on this
// interface so they can be exercised without the platform.
type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string, kb *InlineKeyboardMarkup) error
	EditMessage(ctx context.Context, chatID, messageID int64, text string, kb *InlineKeyboardMarkup) error
	AnswerCallback(ctx context.Context, callbackID, text string) error
}

// APISender talks to the bot platform's HTTP API.
type APISender struct {
	apiURL   string
	botToken string
	httpc    *http.Client
}

func NewAPISender(apiURL, botToken string) *APISender {
	return &APISender{
		apiURL:   apiURL,
		botToken: botToken,
		httpc:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *APISender) call(ctx context.Context, method string, payload map[string]any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	url := fmt.Sprintf("%s/bot%s/%s", s.apiURL, s.botToken, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	defer resp.Body.Close()

	var out struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("%s: decode response: %w", method, err)
	}
	if !out.OK {
		return fmt.Errorf("%s: %s", method, out.Description)
	}
	return nil
}

func (s *APISender) SendMessage(ctx context.Context, chatID int64, text string, kb *InlineKeyboardMarkup) error {
	payload := map[string]any{"chat_id": chatID, "text": text}
	if kb != nil {
		payload["reply_markup"] = kb
	}
	return s.call(ctx, "sendMessage", payload)
}

func (s *APISender) EditMessage(ctx context.Context, chatID, messageID int64, text string, kb *InlineKeyboardMarkup) error {
	payload := map[string]any{"chat_id": chatID, "message_id": messageID, "text": text}
	if kb != nil {
		payload["reply_markup"] = kb
	}
	return s.call(ctx, "editMessageText", payload)
}

func (s *APISender) AnswerCallback(ctx context.Context, callbackID, text string) error {
	payload := map[string]any{"callback_query_id": callbackID}
	if text != "" {
		payload["text"] = text
	}
	return s.call(ctx, "answerCallbackQuery", payload)
}
