package bot

import (
	"fmt"

	"shopbot/internal/nav"
	"shopbot/internal/pagination"
)

// buttonsPerPage is the page size for catalog keyboards.
const buttonsPerPage = 8

const backText = "⬅ Back"

type listEntry struct {
	ID   int64
	Name string
}

func btn(text, token string) InlineKeyboardButton {
	return InlineKeyboardButton{Text: text, CallbackData: token}
}

// catalogKeyboard renders one catalog level: a button per entry carrying a
// drill-down token of the same kind, a prev/counter/next row when the list
// spans pages, and a return button. Every position the user can reach is
// addressed entirely by the tokens; no state is kept server-side.
func catalogKeyboard(kind nav.Kind, entries []listEntry, page int, parentID int64, returnToken string) *InlineKeyboardMarkup {
	pg := pagination.Paginate(entries, page, buttonsPerPage)

	rows := make([][]InlineKeyboardButton, 0, len(pg.Items)+2)
	for _, e := range pg.Items {
		tok := nav.Encode(nav.Token{Kind: kind, ID: e.ID, Page: 1, ParentID: parentID})
		rows = append(rows, []InlineKeyboardButton{btn(e.Name, tok)})
	}

	if pg.Pages > 1 {
		prev := nav.Action(nav.KindNoop)
		if pg.HasPrev() {
			prev = nav.Encode(nav.Token{Kind: kind, Page: pg.PrevPage(), ParentID: parentID})
		}
		next := nav.Action(nav.KindNoop)
		if pg.HasNext() {
			next = nav.Encode(nav.Token{Kind: kind, Page: pg.NextPage(), ParentID: parentID})
		}
		rows = append(rows, []InlineKeyboardButton{
			btn("⬅️", prev),
			btn(fmt.Sprintf("%d/%d", pg.Page, pg.Pages), nav.Action(nav.KindNoop)),
			btn("➡️", next),
		})
	}

	if returnToken != "" {
		rows = append(rows, []InlineKeyboardButton{btn(backText, returnToken)})
	}
	return &InlineKeyboardMarkup{InlineKeyboard: rows}
}

func mainMenuKeyboard() *InlineKeyboardMarkup {
	return &InlineKeyboardMarkup{InlineKeyboard: [][]InlineKeyboardButton{
		{btn("Catalog", nav.Action(nav.KindCategory))},
		{btn("Cart", nav.Action(nav.KindCart))},
		{btn("FAQ", nav.Action(nav.KindFAQ))},
	}}
}

func addToCartKeyboard(productID int64, tok nav.Token) *InlineKeyboardMarkup {
	back := nav.Encode(nav.Token{Kind: nav.KindSubcategory, ID: tok.ParentID, Page: tok.Page, ParentID: tok.ParentID})
	return &InlineKeyboardMarkup{InlineKeyboard: [][]InlineKeyboardButton{
		{btn("Add to cart", nav.Encode(nav.Token{Kind: nav.KindAddToCart, ID: productID, Page: 1}))},
		{btn(backText, back)},
	}}
}

// quantityKeyboard is the -/count/+ stepper shown before confirming an add.
func quantityKeyboard(productID int64, quantity int) *InlineKeyboardMarkup {
	dec := quantity - 1
	if dec < 1 {
		dec = 1
	}
	return &InlineKeyboardMarkup{InlineKeyboard: [][]InlineKeyboardButton{
		{
			btn("-", nav.Encode(nav.Token{Kind: nav.KindSetQuantity, ID: productID, Page: 1, Quantity: dec})),
			btn(fmt.Sprintf("%d", quantity), nav.Action(nav.KindNoop)),
			btn("+", nav.Encode(nav.Token{Kind: nav.KindSetQuantity, ID: productID, Page: 1, Quantity: quantity + 1})),
		},
		{btn("Confirm", nav.Encode(nav.Token{Kind: nav.KindConfirmAdd, ID: productID, Page: 1, Quantity: quantity}))},
		{btn(backText, nav.Encode(nav.Token{Kind: nav.KindProduct, ID: productID, Page: 1}))},
	}}
}

func cartKeyboard(userID int64) *InlineKeyboardMarkup {
	return &InlineKeyboardMarkup{InlineKeyboard: [][]InlineKeyboardButton{
		{btn("✅ Checkout", nav.Action(nav.KindOrder))},
		{btn("❌ Clear cart", nav.Encode(nav.Token{Kind: nav.KindClearCart, ID: userID, Page: 1}))},
		{btn(backText, nav.Action(nav.KindMainMenu))},
	}}
}

func payKeyboard(invoiceLink string) *InlineKeyboardMarkup {
	return &InlineKeyboardMarkup{InlineKeyboard: [][]InlineKeyboardButton{
		{{Text: "Pay 💳", URL: invoiceLink}},
		{btn(backText, nav.Action(nav.KindMainMenu))},
	}}
}

func mainMenuReturnKeyboard() *InlineKeyboardMarkup {
	return &InlineKeyboardMarkup{InlineKeyboard: [][]InlineKeyboardButton{
		{btn(backText, nav.Action(nav.KindMainMenu))},
	}}
}

func subscriptionKeyboard(channelURL, groupURL string) *InlineKeyboardMarkup {
	return &InlineKeyboardMarkup{InlineKeyboard: [][]InlineKeyboardButton{
		{{Text: "Our channel", URL: channelURL}},
		{{Text: "Our group", URL: groupURL}},
		{btn("I subscribed ✔", nav.Action(nav.KindCheckSub))},
	}}
}
