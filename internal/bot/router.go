package bot

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	applog "shopbot/internal/log"
	"shopbot/internal/nav"
)

// Request is one decoded inbound interaction handed to a handler.
type Request struct {
	Update     Update
	Token      nav.Token
	TraceID    string
	CallbackID string
	ChatID     int64
	MessageID  int64
	UserID     int64
	Username   string
}

type HandlerFunc func(ctx context.Context, req *Request) error

// Router is the explicit routing table: one handler per token kind, built
// once at startup, plus the two message-level events (/start and the
// successful-payment signal). No handler registers itself.
type Router struct {
	routes    map[nav.Kind]HandlerFunc
	onStart   HandlerFunc
	onPayment HandlerFunc
	send      Sender
}

func NewRouter(send Sender) *Router {
	return &Router{routes: make(map[nav.Kind]HandlerFunc), send: send}
}

func (r *Router) Handle(kind nav.Kind, fn HandlerFunc) { r.routes[kind] = fn }
func (r *Router) OnStart(fn HandlerFunc)               { r.onStart = fn }
func (r *Router) OnPayment(fn HandlerFunc)             { r.onPayment = fn }

// Dispatch routes a single update. A callback token that does not decode is
// acknowledged and otherwise ignored; the user keeps a working keyboard.
func (r *Router) Dispatch(ctx context.Context, upd Update) error {
	switch {
	case upd.CallbackQuery != nil:
		return r.dispatchCallback(ctx, upd)
	case upd.Message != nil:
		return r.dispatchMessage(ctx, upd)
	default:
		return nil
	}
}

func (r *Router) dispatchCallback(ctx context.Context, upd Update) error {
	cb := upd.CallbackQuery
	req := &Request{
		Update:     upd,
		TraceID:    uuid.NewString(),
		CallbackID: cb.ID,
		UserID:     cb.From.ID,
		Username:   cb.From.Username,
	}
	if cb.Message != nil {
		req.ChatID = cb.Message.Chat.ID
		req.MessageID = cb.Message.MessageID
	}

	tok, err := nav.Decode(cb.Data)
	if err != nil {
		if errors.Is(err, nav.ErrInvalidToken) {
			applog.Warn(nil, "router.token.invalid", map[string]any{
				"trace_id": req.TraceID, "user_id": req.UserID, "data": cb.Data,
			})
			return r.send.AnswerCallback(ctx, cb.ID, "")
		}
		return err
	}
	req.Token = tok

	fn, ok := r.routes[tok.Kind]
	if !ok {
		return r.send.AnswerCallback(ctx, cb.ID, "")
	}
	return fn(ctx, req)
}

func (r *Router) dispatchMessage(ctx context.Context, upd Update) error {
	msg := upd.Message
	req := &Request{Update: upd, TraceID: uuid.NewString(), ChatID: msg.Chat.ID, MessageID: msg.MessageID}
	if msg.From != nil {
		req.UserID = msg.From.ID
		req.Username = msg.From.Username
	}

	switch {
	case msg.SuccessfulPayment != nil && r.onPayment != nil:
		return r.onPayment(ctx, req)
	case strings.HasPrefix(msg.Text, "/start") && r.onStart != nil:
		return r.onStart(ctx, req)
	default:
		return nil
	}
}
