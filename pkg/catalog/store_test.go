package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(context.Background(), Config{DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	seed := []string{
		`INSERT INTO products (id, slug, name, gw_item_number, gw_rrp_usd, is_active) VALUES
			('p1', 'combat-patrol-necrons', 'Combat Patrol: Necrons', '49-05', 160.00, TRUE),
			('p2', 'intercessors', 'Intercessors', '48-75', 60.00, TRUE),
			('p3', 'heavy-intercessors', 'Heavy Intercessors', '48-90', 65.00, TRUE),
			('p4', 'leviathan', 'Leviathan', '40-01', 250.00, TRUE),
			('p5', 'retired-necron-box', 'Retired Necron Box', '49-99', 100.00, FALSE)`,
		`INSERT INTO stores (id, slug, name, is_active) VALUES
			('s1', 'miniature-market', 'Miniature Market', TRUE),
			('s2', 'game-nerdz', 'Game Nerdz', TRUE)`,
		`INSERT INTO listings (id, product_id, store_id, store_product_url, current_price, discount_pct, in_stock, affiliate_url) VALUES
			('l1', 'p1', 's1', 'https://mm.example/necrons', 136.00, 15.0, TRUE, 'https://aff.example/necrons'),
			('l2', 'p1', 's2', 'https://gn.example/necrons', 128.00, 20.0, TRUE, ''),
			('l3', 'p2', 's1', 'https://mm.example/intercessors', 51.00, 15.0, FALSE, ''),
			('l4', 'p4', 's2', 'https://gn.example/leviathan', 200.00, 0, TRUE, '')`,
	}
	for _, stmt := range seed {
		_, err := store.db.Exec(stmt)
		require.NoError(t, err)
	}
	return store
}

func TestStore_SearchByName(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	products, err := store.SearchByName(ctx, "necrons")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Combat Patrol: Necrons", products[0].Name)
	assert.Equal(t, "combat-patrol-necrons", products[0].Slug)
	assert.InDelta(t, 160.00, products[0].RRPUSD, 0.001)

	// case insensitive
	products, err = store.SearchByName(ctx, "NECRONS")
	require.NoError(t, err)
	assert.Len(t, products, 1)

	// inactive products are never returned
	products, err = store.SearchByName(ctx, "retired")
	require.NoError(t, err)
	assert.Empty(t, products)

	// no match
	products, err = store.SearchByName(ctx, "xyz-nonexistent-999")
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestStore_SearchByName_LikeMetacharsAreLiteral(t *testing.T) {
	store := setupTestStore(t)

	products, err := store.SearchByName(context.Background(), "100%")
	require.NoError(t, err)
	assert.Empty(t, products, "percent must not act as a wildcard")
}

func TestStore_SearchByTokens(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	// all tokens must match, order-independent
	products, err := store.SearchByTokens(ctx, []string{"necrons", "combat", "patrol"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Combat Patrol: Necrons", products[0].Name)

	// one failing token kills the match
	products, err = store.SearchByTokens(ctx, []string{"necrons", "spacewolves"})
	require.NoError(t, err)
	assert.Empty(t, products)

	// common substring returns multiple candidates
	products, err = store.SearchByTokens(ctx, []string{"intercessors"})
	require.NoError(t, err)
	assert.Len(t, products, 2)

	// empty token set is no candidates, not an error
	products, err = store.SearchByTokens(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestStore_BestListing(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	// lowest-price in-stock listing wins
	listing, err := store.BestListing(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, listing)
	assert.InDelta(t, 128.00, listing.Price, 0.001)
	assert.Equal(t, "Game Nerdz", listing.StoreName)
	assert.Equal(t, "https://gn.example/necrons", listing.URL, "falls back to store url when no affiliate url")
	assert.InDelta(t, 20.0, listing.DiscountPct, 0.001)

	// affiliate url preferred when present
	_, err = store.db.Exec(`UPDATE listings SET in_stock = FALSE WHERE id = 'l2'`)
	require.NoError(t, err)
	listing, err = store.BestListing(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, listing)
	assert.Equal(t, "https://aff.example/necrons", listing.URL)

	// out-of-stock only product has no best listing
	listing, err = store.BestListing(ctx, "p2")
	require.NoError(t, err)
	assert.Nil(t, listing)

	// unknown product has no best listing
	listing, err = store.BestListing(ctx, "p-unknown")
	require.NoError(t, err)
	assert.Nil(t, listing)
}

func TestNewStore_InvalidDSN(t *testing.T) {
	_, err := NewStore(context.Background(), Config{DSN: "file:/no/such/dir/catalog.db?mode=rw"})
	require.Error(t, err)
}
