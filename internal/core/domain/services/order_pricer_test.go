package services_test

import (
	"testing"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/model/menu"
	"cafeteria/internal/core/domain/services"
	"cafeteria/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalog(t *testing.T) []*menu.Item {
	t.Helper()
	var items []*menu.Item
	for name, amount := range map[string]float64{"Tea": 20, "Veg Pizza": 199, "Sandwich": 69} {
		price, err := kernel.MoneyFromFloat(amount)
		require.NoError(t, err)
		item, err := menu.NewItem(kernel.NewUUID(), name, price)
		require.NoError(t, err)
		items = append(items, item)
	}
	return items
}

func TestOrderPricer_Price(t *testing.T) {
	pricer := services.NewOrderPricer()

	t.Run("should price lines from the menu in cart order", func(t *testing.T) {
		lines := []services.CartLine{{Name: "tea", Quantity: 2}, {Name: "Veg Pizza", Quantity: 1}}

		items, err := pricer.Price(lines, catalog(t))

		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "Tea", items[0].Name())
		assert.Equal(t, "20.00", items[0].UnitPrice().String())
		assert.Equal(t, "40.00", items[0].Subtotal().String())
		assert.Equal(t, "Veg Pizza", items[1].Name())
		assert.Equal(t, "199.00", items[1].Subtotal().String())
	})

	t.Run("should report dishes missing from the menu", func(t *testing.T) {
		_, err := pricer.Price([]services.CartLine{{Name: "Caviar", Quantity: 1}}, catalog(t))

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		assert.Contains(t, err.Error(), "Caviar")
	})

	t.Run("should reject an empty cart", func(t *testing.T) {
		_, err := pricer.Price(nil, catalog(t))

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject non-positive quantities", func(t *testing.T) {
		_, err := pricer.Price([]services.CartLine{{Name: "Tea", Quantity: 0}}, catalog(t))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "item 0")
	})
}
