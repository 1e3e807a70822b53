package repos

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

type OrderRow struct {
	ID         int64           `db:"id"`
	ClientID   int64           `db:"client_id"`
	Address    string          `db:"address"`
	Status     string          `db:"status"`
	TotalPrice decimal.Decimal `db:"total_price"`
	CreatedAt  string          `db:"created_at"`
}

// OrderItemRow carries the product snapshot captured at conversion time.
// ProductID is nullable: deleting a product later must not erase history.
type OrderItemRow struct {
	ID        int64           `db:"id"`
	ProductID sql.NullInt64   `db:"product_id"`
	Name      string          `db:"name"`
	Quantity  int             `db:"quantity"`
	Price     decimal.Decimal `db:"price"`
}

// CreateFromCart converts the client's cart into an immutable order in a
// single transaction: read the cart snapshot, insert the order and its
// items copying price-at-purchase from the joined products, then delete the
// cart and its items. Either all of it commits or none of it does. A retry
// after a successful conversion finds no cart and returns ErrEmptyCart.
func (r *OrderRepo) CreateFromCart(telegramID int64, address string) (OrderRow, []OrderItemRow, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return OrderRow{}, nil, asConflict(err)
	}
	defer func() { _ = tx.Rollback() }()

	var clientID int64
	if err := tx.Get(&clientID, `SELECT id FROM clients WHERE telegram_id = ?`, telegramID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return OrderRow{}, nil, ErrClientNotFound
		}
		return OrderRow{}, nil, asConflict(err)
	}

	type snapshot struct {
		ProductID int64           `db:"product_id"`
		Name      string          `db:"name"`
		Price     decimal.Decimal `db:"price"`
		Quantity  int             `db:"quantity"`
	}
	items := []snapshot{}
	if err := tx.Select(&items, `
	  SELECT ci.product_id, p.name, p.price, ci.quantity
	  FROM carts c
	  JOIN cart_items ci ON ci.cart_id = c.id
	  JOIN products p ON p.id = ci.product_id
	  WHERE c.client_id = ?
	  ORDER BY ci.id
	`, clientID); err != nil {
		return OrderRow{}, nil, asConflict(err)
	}
	// checked before any write: a second delivery of the same payment
	// signal lands here and never creates a duplicate order
	if len(items) == 0 {
		return OrderRow{}, nil, ErrEmptyCart
	}

	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	now := time.Now().UTC().Format(time.RFC3339)
	res, err := tx.Exec(`
	  INSERT INTO orders(client_id, address, status, total_price, created_at)
	  VALUES(?,?,?,?,?)
	`, clientID, address, "paid", total.String(), now)
	if err != nil {
		return OrderRow{}, nil, asConflict(err)
	}
	orderID, err := res.LastInsertId()
	if err != nil {
		return OrderRow{}, nil, err
	}

	out := make([]OrderItemRow, 0, len(items))
	for _, it := range items {
		res, err := tx.Exec(`
		  INSERT INTO order_items(order_id, product_id, quantity, price)
		  VALUES(?,?,?,?)
		`, orderID, it.ProductID, it.Quantity, it.Price.String())
		if err != nil {
			return OrderRow{}, nil, asConflict(err)
		}
		itemID, err := res.LastInsertId()
		if err != nil {
			return OrderRow{}, nil, err
		}
		out = append(out, OrderItemRow{
			ID:        itemID,
			ProductID: sql.NullInt64{Int64: it.ProductID, Valid: true},
			Name:      it.Name,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}

	if _, err := tx.Exec(`
	  DELETE FROM cart_items WHERE cart_id = (SELECT id FROM carts WHERE client_id = ?)
	`, clientID); err != nil {
		return OrderRow{}, nil, asConflict(err)
	}
	if _, err := tx.Exec(`DELETE FROM carts WHERE client_id = ?`, clientID); err != nil {
		return OrderRow{}, nil, asConflict(err)
	}

	if err := tx.Commit(); err != nil {
		return OrderRow{}, nil, asConflict(err)
	}

	order := OrderRow{
		ID: orderID, ClientID: clientID, Address: address,
		Status: "paid", TotalPrice: total, CreatedAt: now,
	}
	return order, out, nil
}

func (r *OrderRepo) ByClient(clientID int64) ([]OrderRow, error) {
	out := []OrderRow{}
	err := r.db.Select(&out, `
	  SELECT id, client_id, address, status, total_price, created_at
	  FROM orders
	  WHERE client_id = ?
	  ORDER BY datetime(created_at) DESC, id DESC
	`, clientID)
	return out, err
}

func (r *OrderRepo) Items(orderID int64) ([]OrderItemRow, error) {
	out := []OrderItemRow{}
	err := r.db.Select(&out, `
	  SELECT oi.id, oi.product_id, COALESCE(p.name,'') AS name, oi.quantity, oi.price
	  FROM order_items oi
	  LEFT JOIN products p ON p.id = oi.product_id
	  WHERE oi.order_id = ?
	  ORDER BY oi.id
	`, orderID)
	return out, err
}
