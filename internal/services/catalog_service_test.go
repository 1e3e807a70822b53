package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopbot/internal/repos"
	"shopbot/internal/services"
)

func TestCatalogReads(t *testing.T) {
	db := memdb(t)
	catalog := services.NewCatalogService(repos.NewCatalogRepo(db))

	roots, err := catalog.RootCategories()
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, "Clothing", roots[0].Name)
	assert.False(t, roots[0].IsSub())

	subs, err := catalog.Subcategories(roots[0].ID)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "T-Shirts", subs[0].Name)
	assert.True(t, subs[0].IsSub())

	prods, err := catalog.ProductsByCategory(subs[0].ID)
	require.NoError(t, err)
	require.Len(t, prods, 2)
	// ordered by name
	assert.Equal(t, "Black T-Shirt", prods[0].Name)
	assert.Equal(t, "White T-Shirt", prods[1].Name)

	p, err := catalog.Product(1)
	require.NoError(t, err)
	assert.Equal(t, "Black T-Shirt", p.Name)

	_, err = catalog.Product(404)
	assert.ErrorIs(t, err, repos.ErrProductNotFound)
}

func TestCatalogServesFromCacheWithinWindow(t *testing.T) {
	db := memdb(t)
	catalog := services.NewCatalogService(repos.NewCatalogRepo(db))

	prods, err := catalog.ProductsByCategory(2)
	require.NoError(t, err)
	require.Len(t, prods, 2)

	// a row added behind the cache's back stays invisible until expiry
	_, err = db.Exec(`INSERT INTO products(id, name, price, category_id) VALUES (3, 'Grey T-Shirt', '12.00', 2)`)
	require.NoError(t, err)

	again, err := catalog.ProductsByCategory(2)
	require.NoError(t, err)
	assert.Len(t, again, 2, "browsing reads are served from the TTL cache")
}

func TestCatalogEmptyListsAreNonNil(t *testing.T) {
	db := memdb(t)
	catalog := services.NewCatalogService(repos.NewCatalogRepo(db))

	subs, err := catalog.Subcategories(9999)
	require.NoError(t, err)
	assert.NotNil(t, subs)
	assert.Empty(t, subs)

	prods, err := catalog.ProductsByCategory(9999)
	require.NoError(t, err)
	assert.NotNil(t, prods)
	assert.Empty(t, prods)
}
