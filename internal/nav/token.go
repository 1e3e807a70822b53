// Package nav encodes "where in the catalog the user currently is" as an
// opaque callback token, so the bot keeps no server-side session state.
package nav

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type Kind string

const (
	// catalog navigation levels
	KindCategory    Kind = "category"
	KindSubcategory Kind = "subcategory"
	KindProduct     Kind = "product"

	// cart actions
	KindAddToCart   Kind = "add_to_cart"
	KindSetQuantity Kind = "set_quantity"
	KindConfirmAdd  Kind = "confirm_add_to_cart"
	KindClearCart   Kind = "remove_from_cart"

	// fixed menu actions
	KindMainMenu Kind = "main_menu"
	KindCart     Kind = "cart"
	KindOrder    Kind = "order"
	KindFAQ      Kind = "faq"
	KindCheckSub Kind = "check_subscription"
	KindNoop     Kind = "noop"
)

var kinds = map[Kind]bool{
	KindCategory: true, KindSubcategory: true, KindProduct: true,
	KindAddToCart: true, KindSetQuantity: true, KindConfirmAdd: true,
	KindClearCart: true, KindMainMenu: true, KindCart: true,
	KindOrder: true, KindFAQ: true, KindCheckSub: true, KindNoop: true,
}

var ErrInvalidToken = errors.New("invalid navigation token")

const version = "v1"

// Token is the decoded form of a callback token. ID and ParentID are 0 when
// absent; Page is 1-based. Quantity is only meaningful for the quantity
// actions and stays 0 everywhere else.
type Token struct {
	Kind     Kind
	ID       int64
	Page     int
	ParentID int64
	Quantity int
}

// Encode renders the token as a stable, versioned, colon-delimited string.
// Encoding is deterministic: Decode(Encode(t)) == t for every valid t.
func Encode(t Token) string {
	page := t.Page
	if page < 1 {
		page = 1
	}
	return fmt.Sprintf("%s:%s:%d:%d:%d:%d", version, t.Kind, t.ID, page, t.ParentID, t.Quantity)
}

// Decode parses a callback token. Anything that is not a well-formed token
// of a known kind yields ErrInvalidToken; callers treat that as a no-op.
func Decode(s string) (Token, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 6 || parts[0] != version {
		return Token{}, ErrInvalidToken
	}
	k := Kind(parts[1])
	if !kinds[k] {
		return Token{}, ErrInvalidToken
	}

	nums := make([]int64, 4)
	for i, p := range parts[2:] {
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil || n < 0 {
			return Token{}, ErrInvalidToken
		}
		nums[i] = n
	}
	if nums[1] < 1 {
		return Token{}, ErrInvalidToken
	}
	return Token{
		Kind:     k,
		ID:       nums[0],
		Page:     int(nums[1]),
		ParentID: nums[2],
		Quantity: int(nums[3]),
	}, nil
}

// Action is shorthand for a fixed menu token with no payload.
func Action(k Kind) string { return Encode(Token{Kind: k, Page: 1}) }
