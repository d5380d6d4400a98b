package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopapi/internal/transport"
)

func TestCatalogService_Create_NormalizesPrice(t *testing.T) {
	t.Parallel()

	svc := newTestCatalogService(t)
	ctx := context.Background()

	product, err := svc.Create(ctx, "  Elma ", "10")
	require.NoError(t, err)
	assert.Equal(t, "Elma", product.Name)
	assert.Equal(t, "10.00", product.Price)

	fetched, err := svc.FindByName(ctx, "Elma")
	require.NoError(t, err)
	assert.Equal(t, "10.00", fetched.Price)
}

func TestCatalogService_Create_RejectsInvalidPrice(t *testing.T) {
	t.Parallel()

	svc := newTestCatalogService(t)
	ctx := context.Background()

	for _, price := range []string{"-1", "abc", ""} {
		_, err := svc.Create(ctx, "Armut", price)
		assert.ErrorIs(t, err, ErrInvalidPrice, "price %q", price)
	}
}

func TestCatalogService_Create_Duplicate(t *testing.T) {
	t.Parallel()

	svc := newTestCatalogService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "Elma", "1")
	require.NoError(t, err)

	_, err = svc.Create(ctx, "Elma", "2")
	assert.ErrorIs(t, err, ErrProductExists)
}

func TestCatalogService_Update(t *testing.T) {
	t.Parallel()

	svc := newTestCatalogService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "Elma", "1")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "Armut", "2")
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "Elma", transport.UpdateProductRequest{
		Price: strPtr("3.5"),
	})
	require.NoError(t, err)
	assert.Equal(t, "3.50", updated.Price)

	_, err = svc.Update(ctx, "Elma", transport.UpdateProductRequest{Price: strPtr("-3")})
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = svc.Update(ctx, "Elma", transport.UpdateProductRequest{Name: strPtr("Armut")})
	assert.ErrorIs(t, err, ErrProductExists)

	_, err = svc.Update(ctx, "Kiraz", transport.UpdateProductRequest{})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCatalogService_SetImage(t *testing.T) {
	t.Parallel()

	svc := newTestCatalogService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "Elma", "1")
	require.NoError(t, err)

	product, err := svc.SetImage(ctx, "Elma", "/uploads/Elma.png")
	require.NoError(t, err)
	require.NotNil(t, product.ImageURL)
	assert.Equal(t, "/uploads/Elma.png", *product.ImageURL)

	_, err = svc.SetImage(ctx, "Kiraz", "/uploads/Kiraz.png")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCatalogService_Delete_CascadesPurchases(t *testing.T) {
	t.Parallel()

	rp := newTestRepo(t)
	users := &UserService{Repo: rp}
	catalog := &CatalogService{Repo: rp, Index: "products"}
	purchases := &PurchaseService{Repo: rp}
	ctx := context.Background()

	_, err := users.Create(ctx, "a", "buyer@example.com", "Secret123")
	require.NoError(t, err)
	_, err = catalog.Create(ctx, "Elma", "3.50")
	require.NoError(t, err)
	_, err = purchases.Create(ctx, "buyer@example.com", "Elma", 1)
	require.NoError(t, err)

	summary, err := catalog.Delete(ctx, "Elma")
	require.NoError(t, err)
	assert.Equal(t, "Elma", summary.Name)

	list, err := purchases.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = catalog.Delete(ctx, "Elma")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCatalogService_ListAll_NewestFirst(t *testing.T) {
	t.Parallel()

	svc := newTestCatalogService(t)
	ctx := context.Background()

	for _, name := range []string{"Elma", "Armut", "Kiraz"} {
		_, err := svc.Create(ctx, name, "1")
		require.NoError(t, err)
	}

	list, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Kiraz", list[0].Name)
	assert.Equal(t, "Elma", list[2].Name)
}
