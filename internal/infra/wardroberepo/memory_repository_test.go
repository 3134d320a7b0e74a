package wardroberepo

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/yanqian/ai-wardrobe/internal/domain/wardrobe"
)

func TestMemoryRepositoryKeepsInsertionOrder(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	names := []string{"shirt.jpg", "jeans.png", "boots.gif"}
	for _, name := range names {
		require.NoError(t, repo.Create(ctx, wardrobe.Item{ID: uuid.New(), Filename: name, Category: wardrobe.CategoryTop}))
	}

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	for i, item := range items {
		require.Equal(t, names[i], item.Filename)
	}
}

func TestMemoryRepositoryFindByFilename(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	item := wardrobe.Item{ID: uuid.New(), Filename: "coat.jpg", Category: wardrobe.CategoryOuterwear, Colors: []string{"#112233"}}
	require.NoError(t, repo.Create(ctx, item))

	got, found, err := repo.FindByFilename(ctx, "coat.jpg")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, item.ID, got.ID)

	_, found, err = repo.FindByFilename(ctx, "missing.jpg")
	require.NoError(t, err)
	require.False(t, found)
}

func TestMemoryRepositoryRejectsDuplicates(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, wardrobe.Item{ID: uuid.New(), Filename: "a.png"}))
	require.ErrorIs(t, repo.Create(ctx, wardrobe.Item{ID: uuid.New(), Filename: "a.png"}), ErrDuplicateFilename)
}

func TestMemoryRepositoryListIsCopy(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, wardrobe.Item{ID: uuid.New(), Filename: "a.png", Colors: []string{"#000000"}}))

	items, err := repo.List(ctx)
	require.NoError(t, err)
	items[0].Filename = "changed"

	again, err := repo.List(ctx)
	require.NoError(t, err)
	require.Equal(t, "a.png", again[0].Filename)
}
