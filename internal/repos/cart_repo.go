package repos

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

// CartItemRow is a cart line with its product snapshot joined in, so callers
// never need a follow-up product read.
type CartItemRow struct {
	ID        int64           `db:"id"`
	ProductID int64           `db:"product_id"`
	Name      string          `db:"name"`
	Price     decimal.Decimal `db:"price"`
	Quantity  int             `db:"quantity"`
}

func (it CartItemRow) Subtotal() decimal.Decimal {
	return it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// AddItem upserts a (cart, product) line for the client, creating the cart
// lazily. Adding a product already in the cart adds quantities instead of
// inserting a second row. The whole lookup+upsert runs in one transaction.
func (r *CartRepo) AddItem(telegramID, productID int64, quantity int) (CartItemRow, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return CartItemRow{}, asConflict(err)
	}
	defer func() { _ = tx.Rollback() }()

	var clientID int64
	if err := tx.Get(&clientID, `SELECT id FROM clients WHERE telegram_id = ?`, telegramID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CartItemRow{}, ErrClientNotFound
		}
		return CartItemRow{}, asConflict(err)
	}

	var cartID int64
	err = tx.Get(&cartID, `SELECT id FROM carts WHERE client_id = ?`, clientID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		res, err := tx.Exec(`INSERT INTO carts(client_id, created_at) VALUES(?,?)`,
			clientID, time.Now().UTC().Format(time.RFC3339))
		if err != nil {
			return CartItemRow{}, asConflict(err)
		}
		if cartID, err = res.LastInsertId(); err != nil {
			return CartItemRow{}, err
		}
	case err != nil:
		return CartItemRow{}, asConflict(err)
	}

	var exists int
	if err := tx.Get(&exists, `SELECT COUNT(*) FROM products WHERE id = ?`, productID); err != nil {
		return CartItemRow{}, asConflict(err)
	}
	if exists == 0 {
		return CartItemRow{}, ErrProductNotFound
	}

	if _, err := tx.Exec(`
	  INSERT INTO cart_items(cart_id, product_id, quantity)
	  VALUES(?,?,?)
	  ON CONFLICT(cart_id, product_id) DO UPDATE
	  SET quantity = quantity + excluded.quantity
	`, cartID, productID, quantity); err != nil {
		return CartItemRow{}, asConflict(err)
	}

	var row CartItemRow
	if err := tx.Get(&row, `
	  SELECT ci.id, ci.product_id, p.name, p.price, ci.quantity
	  FROM cart_items ci JOIN products p ON p.id = ci.product_id
	  WHERE ci.cart_id = ? AND ci.product_id = ?
	`, cartID, productID); err != nil {
		return CartItemRow{}, asConflict(err)
	}

	if err := tx.Commit(); err != nil {
		return CartItemRow{}, asConflict(err)
	}
	return row, nil
}

// Items returns the client's cart lines in insertion order. A missing client
// or cart yields an empty slice, not an error.
func (r *CartRepo) Items(telegramID int64) ([]CartItemRow, error) {
	out := []CartItemRow{}
	err := r.db.Select(&out, `
	  SELECT ci.id, ci.product_id, p.name, p.price, ci.quantity
	  FROM clients cl
	  JOIN carts c ON c.client_id = cl.id
	  JOIN cart_items ci ON ci.cart_id = c.id
	  JOIN products p ON p.id = ci.product_id
	  WHERE cl.telegram_id = ?
	  ORDER BY ci.id
	`, telegramID)
	return out, err
}

// Clear drops the client's cart row and all of its items atomically and
// reports whether there was a cart to clear. Clearing twice is not an error.
func (r *CartRepo) Clear(telegramID int64) (bool, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return false, asConflict(err)
	}
	defer func() { _ = tx.Rollback() }()

	var cartID int64
	err = tx.Get(&cartID, `
	  SELECT c.id FROM carts c JOIN clients cl ON cl.id = c.client_id
	  WHERE cl.telegram_id = ?
	`, telegramID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, asConflict(err)
	}

	if _, err := tx.Exec(`DELETE FROM cart_items WHERE cart_id = ?`, cartID); err != nil {
		return false, asConflict(err)
	}
	if _, err := tx.Exec(`DELETE FROM carts WHERE id = ?`, cartID); err != nil {
		return false, asConflict(err)
	}
	if err := tx.Commit(); err != nil {
		return false, asConflict(err)
	}
	return true, nil
}
