package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopapi/internal/transport"
)

type purchaseEnv struct {
	users     *UserService
	catalog   *CatalogService
	purchases *PurchaseService
}

func newPurchaseEnv(t *testing.T) *purchaseEnv {
	t.Helper()
	rp := newTestRepo(t)
	return &purchaseEnv{
		users:     &UserService{Repo: rp},
		catalog:   &CatalogService{Repo: rp, Index: "products"},
		purchases: &PurchaseService{Repo: rp},
	}
}

func (env *purchaseEnv) seed(t *testing.T, ctx context.Context) {
	t.Helper()
	_, err := env.users.Create(ctx, "Buyer", "buyer@example.com", "Secret123")
	require.NoError(t, err)
	_, err = env.catalog.Create(ctx, "Elma", "3.50")
	require.NoError(t, err)
}

func TestPurchaseService_Create_ComputesSnapshotTotal(t *testing.T) {
	t.Parallel()

	env := newPurchaseEnv(t)
	ctx := context.Background()
	env.seed(t, ctx)

	purchase, err := env.purchases.Create(ctx, "buyer@example.com", "Elma", 3)
	require.NoError(t, err)
	assert.Equal(t, "10.50", purchase.TotalPrice)
	assert.Equal(t, 3, purchase.Quantity)
	assert.Equal(t, "buyer@example.com", purchase.User.Email)
	assert.Equal(t, "Elma", purchase.Product.Name)
	assert.NotZero(t, purchase.ID)
}

func TestPurchaseService_Create_TotalSurvivesPriceChange(t *testing.T) {
	t.Parallel()

	env := newPurchaseEnv(t)
	ctx := context.Background()
	env.seed(t, ctx)

	purchase, err := env.purchases.Create(ctx, "buyer@example.com", "Elma", 2)
	require.NoError(t, err)
	require.Equal(t, "7.00", purchase.TotalPrice)

	_, err = env.catalog.Update(ctx, "Elma", transport.UpdateProductRequest{Price: strPtr("99.99")})
	require.NoError(t, err)

	list, err := env.purchases.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "7.00", list[0].TotalPrice)
}

func TestPurchaseService_Create_InvalidQuantity(t *testing.T) {
	t.Parallel()

	env := newPurchaseEnv(t)
	ctx := context.Background()
	env.seed(t, ctx)

	for _, qty := range []int{0, -1} {
		_, err := env.purchases.Create(ctx, "buyer@example.com", "Elma", qty)
		assert.ErrorIs(t, err, ErrInvalidQuantity, "quantity %d", qty)
	}
}

func TestPurchaseService_Create_UserNotFound_NoRow(t *testing.T) {
	t.Parallel()

	env := newPurchaseEnv(t)
	ctx := context.Background()
	env.seed(t, ctx)

	_, err := env.purchases.Create(ctx, "ghost@example.com", "Elma", 1)
	assert.ErrorIs(t, err, ErrUserNotFound)

	list, err := env.purchases.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPurchaseService_Create_ProductNotFound_NoRow(t *testing.T) {
	t.Parallel()

	env := newPurchaseEnv(t)
	ctx := context.Background()
	env.seed(t, ctx)

	_, err := env.purchases.Create(ctx, "buyer@example.com", "Kiraz", 1)
	assert.ErrorIs(t, err, ErrProductNotFound)

	list, err := env.purchases.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPurchaseService_Create_CorruptPriceRejected(t *testing.T) {
	t.Parallel()

	env := newPurchaseEnv(t)
	ctx := context.Background()
	env.seed(t, ctx)

	// Simulate corrupted storage: the catalog API can never write this.
	require.NoError(t, env.catalog.Repo.DB.Exec(
		"UPDATE products SET price = 'broken' WHERE name = 'Elma'").Error)

	_, err := env.purchases.Create(ctx, "buyer@example.com", "Elma", 1)
	assert.ErrorIs(t, err, ErrPriceComputation)
}

func TestPurchaseService_ListByUserEmail(t *testing.T) {
	t.Parallel()

	env := newPurchaseEnv(t)
	ctx := context.Background()
	env.seed(t, ctx)

	_, err := env.users.Create(ctx, "Other", "other@example.com", "Secret123")
	require.NoError(t, err)

	first, err := env.purchases.Create(ctx, "buyer@example.com", "Elma", 1)
	require.NoError(t, err)
	second, err := env.purchases.Create(ctx, "buyer@example.com", "Elma", 2)
	require.NoError(t, err)

	list, err := env.purchases.ListByUserEmail(ctx, " BUYER@example.com ")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
	assert.Equal(t, "Elma", list[0].Product.Name)

	empty, err := env.purchases.ListByUserEmail(ctx, "other@example.com")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	ghost, err := env.purchases.ListByUserEmail(ctx, "ghost@example.com")
	require.NoError(t, err)
	assert.Empty(t, ghost)
}
