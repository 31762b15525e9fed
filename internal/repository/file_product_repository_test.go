package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storehub/commerce-service/internal/domain"
	pkgdto "github.com/storehub/commerce-service/pkg/dto"
	"github.com/storehub/commerce-service/pkg/errs"
)

func productFixture(code string) domain.Product {
	return domain.Product{
		Title:       "Keyboard " + code,
		Description: "Mechanical keyboard",
		Code:        code,
		Price:       79.9,
		Status:      true,
		Stock:       10,
		Category:    "peripherals",
	}
}

func TestFileProductRepositoryRoundTrip(t *testing.T) {
	repo := CreateNewFileProductRepository(t.TempDir())
	ctx := context.Background()

	created, err := repo.AddProduct(ctx, productFixture("KB-001"))
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, []string{}, created.Thumbnails)

	fetched, err := repo.GetProductByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, fetched)
}

func TestFileProductRepositoryCodeUniqueness(t *testing.T) {
	repo := CreateNewFileProductRepository(t.TempDir())
	ctx := context.Background()

	_, err := repo.AddProduct(ctx, productFixture("KB-001"))
	require.NoError(t, err)

	_, err = repo.AddProduct(ctx, productFixture("KB-001"))
	assert.ErrorIs(t, err, errs.ErrConflict)

	// A rejected create leaves the collection unchanged.
	products, err := repo.GetAllProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestFileProductRepositoryUpdate(t *testing.T) {
	repo := CreateNewFileProductRepository(t.TempDir())
	ctx := context.Background()

	first, err := repo.AddProduct(ctx, productFixture("KB-001"))
	require.NoError(t, err)
	_, err = repo.AddProduct(ctx, productFixture("KB-002"))
	require.NoError(t, err)

	newTitle := "Renamed keyboard"
	updated, err := repo.UpdateProduct(ctx, first.ID, domain.ProductPatch{Title: &newTitle})
	require.NoError(t, err)

	// Unspecified fields keep their prior values.
	assert.Equal(t, newTitle, updated.Title)
	assert.Equal(t, first.Code, updated.Code)
	assert.Equal(t, first.Price, updated.Price)
	assert.Equal(t, first.ID, updated.ID)

	collidingCode := "KB-002"
	_, err = repo.UpdateProduct(ctx, first.ID, domain.ProductPatch{Code: &collidingCode})
	assert.ErrorIs(t, err, errs.ErrConflict)

	sameCode := "KB-001"
	_, err = repo.UpdateProduct(ctx, first.ID, domain.ProductPatch{Code: &sameCode})
	assert.NoError(t, err)

	_, err = repo.UpdateProduct(ctx, "missing", domain.ProductPatch{Title: &newTitle})
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestFileProductRepositoryDelete(t *testing.T) {
	repo := CreateNewFileProductRepository(t.TempDir())
	ctx := context.Background()

	created, err := repo.AddProduct(ctx, productFixture("KB-001"))
	require.NoError(t, err)

	require.NoError(t, repo.DeleteProduct(ctx, created.ID))

	_, err = repo.GetProductByID(ctx, created.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	assert.ErrorIs(t, repo.DeleteProduct(ctx, created.ID), errs.ErrNotFound)
}

func TestFileProductRepositoryCorruptFileDegradesToEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "products.json"), []byte("{not json"), 0o644))

	repo := CreateNewFileProductRepository(dir)
	ctx := context.Background()

	products, err := repo.GetAllProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)

	// The store recovers: writes start from an empty collection.
	_, err = repo.AddProduct(ctx, productFixture("KB-001"))
	assert.NoError(t, err)
}

func TestFileProductRepositoryListing(t *testing.T) {
	repo := CreateNewFileProductRepository(t.TempDir())
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		p := productFixture(fmt.Sprintf("KB-%03d", i))
		p.Price = float64(i % 5)
		if i%2 == 0 {
			p.Category = "audio"
		}
		if i >= 20 {
			p.Status = false
		}
		_, err := repo.AddProduct(ctx, p)
		require.NoError(t, err)
	}

	page, err := repo.GetProducts(ctx, pkgdto.ProductFilter{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page.Docs, 10)
	assert.Equal(t, 25, page.TotalDocs)
	assert.Equal(t, 3, page.TotalPages)
	assert.True(t, page.HasNextPage)
	assert.Equal(t, 2, *page.NextPage)

	page, err = repo.GetProducts(ctx, pkgdto.ProductFilter{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page.Docs, 5)
	assert.False(t, page.HasNextPage)
	assert.Nil(t, page.NextPage)

	page, err = repo.GetProducts(ctx, pkgdto.ProductFilter{Page: 4, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, page.Docs)
	assert.False(t, page.HasNextPage)

	page, err = repo.GetProducts(ctx, pkgdto.ProductFilter{Category: "audio", Limit: 100})
	require.NoError(t, err)
	assert.Equal(t, 13, page.TotalDocs)

	inactive := false
	page, err = repo.GetProducts(ctx, pkgdto.ProductFilter{Status: &inactive, Limit: 100})
	require.NoError(t, err)
	assert.Equal(t, 5, page.TotalDocs)
}

func TestFileProductRepositorySortIsStable(t *testing.T) {
	repo := CreateNewFileProductRepository(t.TempDir())
	ctx := context.Background()

	// Same price throughout: sorting must preserve insertion order.
	for i := 0; i < 5; i++ {
		p := productFixture(fmt.Sprintf("KB-%03d", i))
		p.Price = 10
		_, err := repo.AddProduct(ctx, p)
		require.NoError(t, err)
	}

	page, err := repo.GetProducts(ctx, pkgdto.ProductFilter{Sort: "asc", Limit: 10})
	require.NoError(t, err)

	for i, p := range page.Docs {
		assert.Equal(t, fmt.Sprintf("KB-%03d", i), p.Code)
	}
}

func TestFileProductRepositorySortByPrice(t *testing.T) {
	repo := CreateNewFileProductRepository(t.TempDir())
	ctx := context.Background()

	prices := []float64{30, 10, 20}
	for i, price := range prices {
		p := productFixture(fmt.Sprintf("KB-%03d", i))
		p.Price = price
		_, err := repo.AddProduct(ctx, p)
		require.NoError(t, err)
	}

	page, err := repo.GetProducts(ctx, pkgdto.ProductFilter{Sort: "asc", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 20, 30}, []float64{page.Docs[0].Price, page.Docs[1].Price, page.Docs[2].Price})

	page, err = repo.GetProducts(ctx, pkgdto.ProductFilter{Sort: "desc", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []float64{30, 20, 10}, []float64{page.Docs[0].Price, page.Docs[1].Price, page.Docs[2].Price})
}
