package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/pkg/errs"
	"cafeteria/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root of the cafeteria order lifecycle.
//
// Order follows these invariants:
//   - Token is assigned exactly once, at placement, and never changes
//   - Customer email is normalized (see kernel.Email)
//   - At least one line item; total always equals the sum of item subtotals
//   - Status only moves along the graph documented on Status
//   - Orders are never deleted; status history is kept through StatusChanged events
//
// All state changes go through methods, which record StatusChanged events
// for the unit of work to persist.
type Order struct {
	// id is the technical identifier used in URLs
	id kernel.UUID

	// token is the customer-facing order number, e.g. "CAF-1001"
	token Token

	// customer is the normalized email the order is filed under
	customer kernel.Email

	// items are the order lines in the sequence the customer submitted them
	items []Item

	// total is computed from items, never accepted from outside
	total kernel.Money

	// paymentMethod is a free-form label such as "Cash" or "UPI"
	paymentMethod string

	// status represents the current state in the order lifecycle
	status Status

	// createdAt is the placement time, used for newest-first ordering
	createdAt time.Time

	// events holds StatusChanged records not yet persisted
	events []kernel.DomainEvent

	guard guard.ConstructorGuard
}

// NewOrder places a new order in Pending status and records the placement event.
//
// Parameters:
//   - id: technical identifier
//   - token: the order number issued by the sequencer
//   - customer: normalized customer email
//   - items: non-empty list of order lines priced from the menu
//   - paymentMethod: free-form label, may be empty
//   - placedAt: creation timestamp
//
// Example:
//
//	tea, _ := order.NewItem("Tea", price, 2)
//	o, err := order.NewOrder(kernel.NewUUID(), token, email, []order.Item{tea}, "Cash", time.Now())
func NewOrder(
	id kernel.UUID,
	token Token,
	customer kernel.Email,
	items []Item,
	paymentMethod string,
	placedAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		paymentMethod: strings.TrimSpace(paymentMethod),
		createdAt:     placedAt.UTC(),
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setToken(token),
		o.setCustomer(customer),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	o.total = sumItems(o.items)
	o.events = append(o.events, newStatusChanged(o, Unknown, Pending, customer.String(), o.createdAt))

	return o, nil
}

// RestoreOrder rebuilds an order from storage without recording events.
// The stored total must match the items, which catches corrupted rows early.
func RestoreOrder(
	id kernel.UUID,
	token Token,
	customer kernel.Email,
	items []Item,
	total kernel.Money,
	paymentMethod string,
	status Status,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		paymentMethod: paymentMethod,
		createdAt:     createdAt.UTC(),
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setToken(token),
		o.setCustomer(customer),
		o.setItems(items),
		o.setStatus(status),
	); err != nil {
		return nil, err
	}

	o.total = sumItems(o.items)
	if !o.total.IsEqual(total) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"total",
			fmt.Errorf("stored total %s does not match items total %s", total, o.total),
		)
	}

	return o, nil
}

// Validate ensures the Order instance was created through NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the technical identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Token returns the customer-facing order number.
func (o *Order) Token() Token {
	return o.token
}

// Customer returns the normalized customer email.
func (o *Order) Customer() kernel.Email {
	return o.customer
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// Total returns the sum of item subtotals.
func (o *Order) Total() kernel.Money {
	return o.total
}

// PaymentMethod returns the label supplied at placement.
func (o *Order) PaymentMethod() string {
	return o.paymentMethod
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns the placement time in UTC.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// TransitionTo moves the order to next on behalf of actor.
//
// Returns:
//   - (true, nil) when the status changed; a StatusChanged event is recorded
//   - (false, nil) when next equals the current status
//   - (false, InvalidTransitionError) when next is not reachable
//
// Example:
//
//	changed, err := o.TransitionTo(order.Ready, principal.Subject, time.Now())
func (o *Order) TransitionTo(next Status, actor string, at time.Time) (bool, error) {
	if err := o.Validate(); err != nil {
		return false, err
	}

	newStatus, changed, err := o.status.TransitionTo(next)
	if err != nil {
		return false, err
	}
	if !changed {
		return false, nil
	}

	previous := o.status
	o.status = newStatus
	o.events = append(o.events, newStatusChanged(o, previous, newStatus, actor, at.UTC()))
	return true, nil
}

// DomainEvents returns the events recorded since the last ClearDomainEvents.
func (o *Order) DomainEvents() []kernel.DomainEvent {
	events := make([]kernel.DomainEvent, len(o.events))
	copy(events, o.events)
	return events
}

// ClearDomainEvents drops recorded events once they are persisted.
func (o *Order) ClearDomainEvents() {
	o.events = nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setToken(token Token) error {
	if err := token.Validate(); err != nil {
		return err
	}
	o.token = token
	return nil
}

func (o *Order) setCustomer(customer kernel.Email) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	o.customer = customer
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for idx, item := range items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("item %d: %w", idx, err)
		}
	}
	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func sumItems(items []Item) kernel.Money {
	total := kernel.ZeroMoney()
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}
