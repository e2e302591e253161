package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grimdealz/dealscout/pkg/catalog/mocks"
	"github.com/grimdealz/dealscout/pkg/domain"
)

func TestMatcher_FindMatch_Staged(t *testing.T) {
	store := setupTestStore(t)
	matcher := NewMatcher(store)
	ctx := context.Background()

	t.Run("token stage resolves reordered query", func(t *testing.T) {
		match, err := matcher.FindMatch(ctx, "necrons combat patrol")
		require.NoError(t, err)
		require.NotNil(t, match)
		assert.Equal(t, "Combat Patrol: Necrons", match.Name)
		assert.Equal(t, "combat-patrol-necrons", match.Slug)
		require.NotNil(t, match.BestPrice)
		assert.InDelta(t, 128.00, *match.BestPrice, 0.001)
		assert.Equal(t, "Game Nerdz", match.BestStore)
		require.NotNil(t, match.DiscountPct)
		assert.InDelta(t, 20.0, *match.DiscountPct, 0.001)
	})

	t.Run("substring stage fires first", func(t *testing.T) {
		match, err := matcher.FindMatch(ctx, "leviathan")
		require.NoError(t, err)
		require.NotNil(t, match)
		assert.Equal(t, "Leviathan", match.Name)
	})

	t.Run("no match is nil not error", func(t *testing.T) {
		match, err := matcher.FindMatch(ctx, "xyz-nonexistent-999")
		require.NoError(t, err)
		assert.Nil(t, match)
	})

	t.Run("shortest name wins the tie-break", func(t *testing.T) {
		match, err := matcher.FindMatch(ctx, "intercessors")
		require.NoError(t, err)
		require.NotNil(t, match)
		assert.Equal(t, "Intercessors", match.Name, "shorter name is the more specific product")
	})

	t.Run("match without in-stock listing has nil price fields", func(t *testing.T) {
		match, err := matcher.FindMatch(ctx, "intercessors")
		require.NoError(t, err)
		require.NotNil(t, match)
		assert.Nil(t, match.BestPrice)
		assert.Nil(t, match.DiscountPct)
		assert.Empty(t, match.BestStore)
	})

	t.Run("too-short query returns nil", func(t *testing.T) {
		match, err := matcher.FindMatch(ctx, "x")
		require.NoError(t, err)
		assert.Nil(t, match)

		match, err = matcher.FindMatch(ctx, "  ")
		require.NoError(t, err)
		assert.Nil(t, match)
	})
}

func TestMatcher_FindMatch_DerivesDiscountFromRRP(t *testing.T) {
	store := setupTestStore(t)
	matcher := NewMatcher(store)

	// Leviathan listing carries no discount_pct, RRP is 250, price 200
	match, err := matcher.FindMatch(context.Background(), "leviathan")
	require.NoError(t, err)
	require.NotNil(t, match)
	require.NotNil(t, match.DiscountPct)
	assert.InDelta(t, 20.0, *match.DiscountPct, 0.001)
}

func TestMatcher_FindMatch_SkipsTokenStageWithoutSignificantTokens(t *testing.T) {
	store := &mocks.ProductStoreMock{
		SearchByNameFunc: func(_ context.Context, _ string) ([]domain.Product, error) {
			return nil, nil
		},
	}
	matcher := NewMatcher(store)

	// every token shorter than three chars, stage two never runs
	match, err := matcher.FindMatch(context.Background(), "ab cd")
	require.NoError(t, err)
	assert.Nil(t, match)
	assert.Len(t, store.SearchByNameCalls(), 1)
	assert.Empty(t, store.SearchByTokensCalls())
}

func TestMatcher_FindMatch_StoreErrors(t *testing.T) {
	boom := errors.New("catalog unreachable")

	t.Run("stage one error propagates", func(t *testing.T) {
		store := &mocks.ProductStoreMock{
			SearchByNameFunc: func(_ context.Context, _ string) ([]domain.Product, error) {
				return nil, boom
			},
		}
		_, err := NewMatcher(store).FindMatch(context.Background(), "necrons")
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("listing error propagates", func(t *testing.T) {
		store := &mocks.ProductStoreMock{
			SearchByNameFunc: func(_ context.Context, _ string) ([]domain.Product, error) {
				return []domain.Product{{ID: "p1", Name: "Leviathan"}}, nil
			},
			BestListingFunc: func(_ context.Context, _ string) (*domain.Listing, error) {
				return nil, boom
			},
		}
		_, err := NewMatcher(store).FindMatch(context.Background(), "leviathan")
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
	})
}

func TestSignificantTokens(t *testing.T) {
	assert.Equal(t, []string{"necrons", "combat", "patrol"}, significantTokens("Necrons Combat Patrol"))
	assert.Equal(t, []string{"combat", "patrol", "necrons"}, significantTokens("combat patrol: necrons!"))
	assert.Empty(t, significantTokens("ab cd"))
	assert.Empty(t, significantTokens(""))
}
