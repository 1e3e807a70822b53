package nav_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopbot/internal/nav"
)

func TestRoundTrip(t *testing.T) {
	cases := []nav.Token{
		{Kind: nav.KindCategory, Page: 1},
		{Kind: nav.KindCategory, ID: 12, Page: 3},
		{Kind: nav.KindSubcategory, ID: 7, Page: 1, ParentID: 2},
		{Kind: nav.KindSubcategory, Page: 4, ParentID: 2},
		{Kind: nav.KindProduct, ID: 99, Page: 2, ParentID: 7},
		{Kind: nav.KindAddToCart, ID: 99, Page: 1},
		{Kind: nav.KindSetQuantity, ID: 99, Page: 1, Quantity: 5},
		{Kind: nav.KindConfirmAdd, ID: 99, Page: 1, Quantity: 3},
		{Kind: nav.KindClearCart, ID: 42, Page: 1},
		{Kind: nav.KindMainMenu, Page: 1},
		{Kind: nav.KindNoop, Page: 1},
	}
	for _, want := range cases {
		t.Run(string(want.Kind), func(t *testing.T) {
			got, err := nav.Decode(nav.Encode(want))
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestEncodeClampsPage(t *testing.T) {
	got, err := nav.Decode(nav.Encode(nav.Token{Kind: nav.KindCategory, Page: 0}))
	require.NoError(t, err)
	assert.Equal(t, 1, got.Page)

	got, err = nav.Decode(nav.Encode(nav.Token{Kind: nav.KindCategory, Page: -3}))
	require.NoError(t, err)
	assert.Equal(t, 1, got.Page)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	bad := []string{
		"",
		"none",
		"v1",
		"v1:category",
		"v1:category:1:1:0",            // too few fields
		"v1:category:1:1:0:0:0",        // too many fields
		"v2:category:1:1:0:0",          // unknown version
		"v1:warehouse:1:1:0:0",         // unknown kind
		"v1:category:x:1:0:0",          // non-numeric id
		"v1:category:1:0:0:0",          // page below 1
		"v1:category:-1:1:0:0",         // negative id
		"v1:product:1:1:0:0:extra:bit", // trailing junk
	}
	for _, s := range bad {
		_, err := nav.Decode(s)
		assert.ErrorIs(t, err, nav.ErrInvalidToken, "token %q", s)
	}
}

func TestActionIsDecodable(t *testing.T) {
	tok, err := nav.Decode(nav.Action(nav.KindCart))
	require.NoError(t, err)
	assert.Equal(t, nav.KindCart, tok.Kind)
	assert.Equal(t, 1, tok.Page)
}
