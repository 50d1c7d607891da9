package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"kiosk/internal/domain"
)

func TestCatalogList_EmptyCatalog(t *testing.T) {
	ctx := context.Background()
	cs, _ := setup(t)

	_, err := cs.List(ctx, "")
	require.ErrorIs(t, err, ErrEmptyCatalog)
	_, err = cs.List(ctx, "grains")
	require.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestCatalogList_Filters(t *testing.T) {
	ctx := context.Background()
	cs, _ := setup(t)

	_, err := cs.Create(ctx, domain.Product{Name: "Rice", Category: "Grains", Price: 50, Stock: 5})
	require.NoError(t, err)
	_, err = cs.Create(ctx, domain.Product{Name: "Milk", Category: "Dairy", Price: 55, Stock: 3})
	require.NoError(t, err)

	// "all" regardless of case returns everything
	for _, f := range []string{"", "all", "ALL", "aLl"} {
		list, err := cs.List(ctx, f)
		require.NoError(t, err, f)
		require.Len(t, list, 2, f)
	}

	// case-insensitive category match
	list, err := cs.List(ctx, "GRAINS")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "Rice", list[0].Name)

	// no match on a non-empty catalog: empty slice, no error
	list, err = cs.List(ctx, "Fruits")
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestCatalogCreate_Validation(t *testing.T) {
	ctx := context.Background()
	cs, _ := setup(t)

	_, err := cs.Create(ctx, domain.Product{Name: "", Price: 10})
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = cs.Create(ctx, domain.Product{Name: "Rice", Price: -1})
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = cs.Create(ctx, domain.Product{Name: "Rice", Price: 10, Stock: -1})
	require.ErrorIs(t, err, ErrInvalidInput)

	// missing category defaults
	p, err := cs.Create(ctx, domain.Product{Name: "Rice", Price: 10, Stock: 1})
	require.NoError(t, err)
	require.Equal(t, "Uncategorized", p.Category)
}
