package cart

import (
	"context"
	"testing"

	"tamaq_back_end/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pizza() models.CartLineItem {
	return models.CartLineItem{FoodID: "f1", Name: "Pizza Margherita", Price: 10.0, Image: "pizza.png"}
}

func burger() models.CartLineItem {
	return models.CartLineItem{FoodID: "f2", Name: "Burger", Price: 7.5}
}

func TestGetUnknownUserReturnsEmptyCart(t *testing.T) {
	store := NewStore(NewMemoryStorage())

	items, err := store.Get(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestAddNewItemStartsAtQuantityOne(t *testing.T) {
	store := NewStore(NewMemoryStorage())
	ctx := context.Background()

	items, err := store.Add(ctx, "a@b.kz", pizza())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, "Pizza Margherita", items[0].Name)
}

func TestAddExistingItemIncrementsQuantityOnly(t *testing.T) {
	store := NewStore(NewMemoryStorage())
	ctx := context.Background()

	_, err := store.Add(ctx, "a@b.kz", pizza())
	require.NoError(t, err)

	// deuxième ajout avec un prix différent : la ligne existante prime
	altered := pizza()
	altered.Price = 99.0
	altered.Name = "autre nom"
	items, err := store.Add(ctx, "a@b.kz", altered)
	require.NoError(t, err)

	require.Len(t, items, 1, "pas de ligne dupliquée pour un même plat")
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 10.0, items[0].Price, "le prix de la ligne existante est conservé")
	assert.Equal(t, "Pizza Margherita", items[0].Name)
}

func TestAddSeparateItemsKeepSeparateLines(t *testing.T) {
	store := NewStore(NewMemoryStorage())
	ctx := context.Background()

	_, err := store.Add(ctx, "a@b.kz", pizza())
	require.NoError(t, err)
	items, err := store.Add(ctx, "a@b.kz", burger())
	require.NoError(t, err)

	assert.Len(t, items, 2)
}

func TestUpdateQuantitySetsExactValue(t *testing.T) {
	store := NewStore(NewMemoryStorage())
	ctx := context.Background()

	_, err := store.Add(ctx, "a@b.kz", pizza())
	require.NoError(t, err)

	items, err := store.UpdateQuantity(ctx, "a@b.kz", "f1", 5)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	store := NewStore(NewMemoryStorage())
	ctx := context.Background()

	_, err := store.Add(ctx, "a@b.kz", pizza())
	require.NoError(t, err)
	_, err = store.Add(ctx, "a@b.kz", burger())
	require.NoError(t, err)

	items, err := store.UpdateQuantity(ctx, "a@b.kz", "f1", 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "f2", items[0].FoodID)

	items, err = store.UpdateQuantity(ctx, "a@b.kz", "f2", -3)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestRemoveAbsentItemIsNoop(t *testing.T) {
	store := NewStore(NewMemoryStorage())
	ctx := context.Background()

	_, err := store.Add(ctx, "a@b.kz", pizza())
	require.NoError(t, err)

	items, err := store.Remove(ctx, "a@b.kz", "inconnu")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestItemCountSumsQuantities(t *testing.T) {
	store := NewStore(NewMemoryStorage())
	ctx := context.Background()

	_, err := store.Add(ctx, "a@b.kz", pizza())
	require.NoError(t, err)
	_, err = store.Add(ctx, "a@b.kz", pizza())
	require.NoError(t, err)
	_, err = store.Add(ctx, "a@b.kz", burger())
	require.NoError(t, err)

	count, err := store.ItemCount(ctx, "a@b.kz")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestClearEmptiesCart(t *testing.T) {
	store := NewStore(NewMemoryStorage())
	ctx := context.Background()

	_, err := store.Add(ctx, "a@b.kz", pizza())
	require.NoError(t, err)

	require.NoError(t, store.Clear(ctx, "a@b.kz"))

	items, err := store.Get(ctx, "a@b.kz")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	store := NewStore(NewMemoryStorage())
	ctx := context.Background()

	_, err := store.Add(ctx, "a@b.kz", pizza())
	require.NoError(t, err)

	items, err := store.Get(ctx, "c@d.kz")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestListenersAreNotifiedOnEveryMutation(t *testing.T) {
	store := NewStore(NewMemoryStorage())
	ctx := context.Background()

	var events [][]models.CartLineItem
	id := store.Subscribe(func(userEmail string, items []models.CartLineItem) {
		assert.Equal(t, "a@b.kz", userEmail)
		events = append(events, items)
	})

	_, err := store.Add(ctx, "a@b.kz", pizza())
	require.NoError(t, err)
	_, err = store.UpdateQuantity(ctx, "a@b.kz", "f1", 4)
	require.NoError(t, err)
	require.NoError(t, store.Clear(ctx, "a@b.kz"))

	require.Len(t, events, 3)
	assert.Equal(t, 1, events[0][0].Quantity)
	assert.Equal(t, 4, events[1][0].Quantity)
	assert.Empty(t, events[2])

	// après désinscription, plus aucune notification
	store.Unsubscribe(id)
	_, err = store.Add(ctx, "a@b.kz", burger())
	require.NoError(t, err)
	assert.Len(t, events, 3)
}
