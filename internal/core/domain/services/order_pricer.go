package services

import (
	"fmt"

	"cafeteria/internal/core/domain/model/menu"
	"cafeteria/internal/core/domain/model/order"
	"cafeteria/internal/pkg/errs"
)

// CartLine is what a customer asks for: a dish name and a quantity.
// Any price the client shows is deliberately absent.
type CartLine struct {
	Name     string
	Quantity int
}

// OrderPricer is a domain service that turns cart lines into priced order items
// using the menu catalog.
//
// Business rules:
//   - Every line must name an item that is on the menu (case-insensitive)
//   - The unit price always comes from the menu
//   - Line order is preserved; repeated names stay separate lines
//
// Example usage:
//
//	pricer := services.NewOrderPricer()
//	items, err := pricer.Price(lines, catalog)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // a dish is not on the menu
//	}
type OrderPricer struct{}

// NewOrderPricer creates a new OrderPricer instance.
func NewOrderPricer() OrderPricer {
	return OrderPricer{}
}

// Price resolves each line against catalog.
//
// Returns:
//   - []order.Item: priced lines, one per cart line
//   - error: ValueIsRequiredError for an empty cart, ObjectNotFoundError for an
//     unknown dish, or the item validation error for a bad quantity
func (p OrderPricer) Price(lines []CartLine, catalog []*menu.Item) ([]order.Item, error) {
	if len(lines) == 0 {
		return nil, errs.NewValueIsRequiredError("items")
	}

	byName := make(map[string]*menu.Item, len(catalog))
	for _, item := range catalog {
		if err := item.Validate(); err != nil {
			return nil, err
		}
		byName[item.NameKey()] = item
	}

	items := make([]order.Item, 0, len(lines))
	for idx, line := range lines {
		dish, ok := byName[menu.NameKey(line.Name)]
		if !ok {
			return nil, errs.NewObjectNotFoundError("menu item", line.Name)
		}

		item, err := order.NewItem(dish.Name(), dish.Price(), line.Quantity)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", idx, err)
		}
		items = append(items, item)
	}

	return items, nil
}
