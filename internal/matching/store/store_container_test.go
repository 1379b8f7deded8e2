//go:build container

package store_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/category"
	categoryStore "github.com/MrJamesThe3rd/tally/internal/category/store"
	"github.com/MrJamesThe3rd/tally/internal/matching"
	"github.com/MrJamesThe3rd/tally/internal/matching/store"
	"github.com/MrJamesThe3rd/tally/internal/testhelpers"
)

func TestStore_Rules(t *testing.T) {
	ctx := context.Background()
	db := testhelpers.NewPostgres(t)
	s := store.New(db)
	categories := categoryStore.New(db)

	groceries := &category.Category{Description: "Groceries", Purpose: category.PurposeExpense}
	fuel := &category.Category{Description: "Fuel", Purpose: category.PurposeExpense}
	require.NoError(t, categories.CreateCategory(ctx, groceries))
	require.NoError(t, categories.CreateCategory(ctx, fuel))

	require.NoError(t, s.SaveRule(ctx, &matching.Rule{Pattern: "continente", CategoryID: groceries.ID}))
	require.NoError(t, s.SaveRule(ctx, &matching.Rule{Pattern: "continente galp", CategoryID: fuel.ID}))

	got, err := s.FindMatch(ctx, "COMPRA CONTINENTE GALP 1234")
	require.NoError(t, err)
	assert.Equal(t, fuel.ID, got, "longest pattern wins")

	got, err = s.FindMatch(ctx, "compra continente lisboa")
	require.NoError(t, err)
	assert.Equal(t, groceries.ID, got)

	got, err = s.FindMatch(ctx, "TRF MBWAY")
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, got)

	// Relearning a pattern moves it to the new category.
	require.NoError(t, s.SaveRule(ctx, &matching.Rule{Pattern: "continente", CategoryID: fuel.ID}))

	rules, err := s.ListRules(ctx)
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, fuel.ID, rules[0].CategoryID)

	err = s.SaveRule(ctx, &matching.Rule{Pattern: "pingo doce", CategoryID: uuid.New()})
	assert.ErrorIs(t, err, matching.ErrCategoryNotFound)
}
