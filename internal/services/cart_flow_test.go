package services_test

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"shopbot/internal/repos"
	"shopbot/internal/services"
)

const testTelegramID = int64(111)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	schema := `
	CREATE TABLE clients(id INTEGER PRIMARY KEY AUTOINCREMENT, telegram_id INTEGER NOT NULL UNIQUE,
	  username TEXT NOT NULL DEFAULT '', created_at TEXT DEFAULT CURRENT_TIMESTAMP);
	CREATE TABLE categories(id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT NOT NULL,
	  parent_id INTEGER NULL REFERENCES categories(id));
	CREATE TABLE products(id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT NOT NULL,
	  description TEXT NOT NULL DEFAULT '', price TEXT NOT NULL,
	  category_id INTEGER NULL REFERENCES categories(id), photo TEXT NOT NULL DEFAULT '');
	CREATE TABLE carts(id INTEGER PRIMARY KEY AUTOINCREMENT,
	  client_id INTEGER NOT NULL UNIQUE REFERENCES clients(id), created_at TEXT);
	CREATE TABLE cart_items(id INTEGER PRIMARY KEY AUTOINCREMENT,
	  cart_id INTEGER NOT NULL REFERENCES carts(id), product_id INTEGER NOT NULL REFERENCES products(id),
	  quantity INTEGER NOT NULL CHECK (quantity >= 1), UNIQUE(cart_id, product_id));
	CREATE TABLE orders(id INTEGER PRIMARY KEY AUTOINCREMENT, client_id INTEGER NOT NULL,
	  address TEXT NOT NULL, status TEXT NOT NULL DEFAULT 'paid', total_price TEXT NOT NULL,
	  created_at TEXT DEFAULT CURRENT_TIMESTAMP);
	CREATE TABLE order_items(id INTEGER PRIMARY KEY AUTOINCREMENT, order_id INTEGER NOT NULL,
	  product_id INTEGER NULL, quantity INTEGER NOT NULL, price TEXT NOT NULL);

	INSERT INTO clients(id, telegram_id, username) VALUES (1, 111, 'alice');
	INSERT INTO categories(id, name, parent_id) VALUES (1, 'Clothing', NULL), (2, 'T-Shirts', 1);
	INSERT INTO products(id, name, description, price, category_id) VALUES
	  (1, 'Black T-Shirt', 'Plain tee', '10.00', 2),
	  (2, 'White T-Shirt', 'Plain tee', '5.50', 2);
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatal(err)
	}
	return db
}

func TestAddItemTwiceMergesLine(t *testing.T) {
	db := memdb(t)
	cartSvc := services.NewCartService(repos.NewCartRepo(db))

	first, err := cartSvc.AddItem(testTelegramID, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Quantity)
	assert.Equal(t, "Black T-Shirt", first.Name)

	second, err := cartSvc.AddItem(testTelegramID, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, second.Quantity)

	items, err := cartSvc.ListItems(testTelegramID)
	require.NoError(t, err)
	require.Len(t, items, 1, "same product must merge into one line")
	assert.Equal(t, 5, items[0].Quantity)

	var rows int
	require.NoError(t, db.Get(&rows, `SELECT COUNT(*) FROM cart_items`))
	assert.Equal(t, 1, rows)
}

func TestAddItemLookupFailures(t *testing.T) {
	db := memdb(t)
	cartSvc := services.NewCartService(repos.NewCartRepo(db))

	_, err := cartSvc.AddItem(999, 1, 1)
	assert.ErrorIs(t, err, repos.ErrClientNotFound)

	_, err = cartSvc.AddItem(testTelegramID, 404, 1)
	assert.ErrorIs(t, err, repos.ErrProductNotFound)

	// a failed add must not leave a dangling cart line
	items, err := cartSvc.ListItems(testTelegramID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestAddItemClampsQuantity(t *testing.T) {
	db := memdb(t)
	cartSvc := services.NewCartService(repos.NewCartRepo(db))

	row, err := cartSvc.AddItem(testTelegramID, 2, -4)
	require.NoError(t, err)
	assert.Equal(t, 1, row.Quantity)
}

func TestListItemsWithoutCart(t *testing.T) {
	db := memdb(t)
	cartSvc := services.NewCartService(repos.NewCartRepo(db))

	items, err := cartSvc.ListItems(testTelegramID)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestClearIsIdempotent(t *testing.T) {
	db := memdb(t)
	cartSvc := services.NewCartService(repos.NewCartRepo(db))

	_, err := cartSvc.AddItem(testTelegramID, 1, 2)
	require.NoError(t, err)

	existed, err := cartSvc.Clear(testTelegramID)
	require.NoError(t, err)
	assert.True(t, existed)

	items, err := cartSvc.ListItems(testTelegramID)
	require.NoError(t, err)
	assert.Empty(t, items)

	existed, err = cartSvc.Clear(testTelegramID)
	require.NoError(t, err)
	assert.False(t, existed, "second clear reports nothing to clear")

	var carts int
	require.NoError(t, db.Get(&carts, `SELECT COUNT(*) FROM carts`))
	assert.Equal(t, 0, carts)
}

func TestCartTotal(t *testing.T) {
	items := []repos.CartItemRow{
		{Price: decimal.RequireFromString("10.00"), Quantity: 2},
		{Price: decimal.RequireFromString("5.50"), Quantity: 1},
	}
	assert.True(t, services.CartTotal(items).Equal(decimal.RequireFromString("25.50")))
	assert.True(t, services.CartTotal(nil).Equal(decimal.Zero))
}
