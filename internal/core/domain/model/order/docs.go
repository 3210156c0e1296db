// Package order provides the Order aggregate of the cafeteria: placement,
// the status state machine and the events every status change produces.
//
// The package includes:
//   - Order: The aggregate root holding the token, customer, lines, total and status
//   - Item: An order line priced at placement time
//   - Status: The state machine Pending -> Ready -> Delivered, Pending -> Cancelled
//   - Token: The customer-facing order number, prefix + (sequence + 1000)
//   - StatusChanged: The domain event recorded on placement and on each applied transition
//
// Key business rules:
//   - The total is always computed from the lines, never taken from the caller
//   - Terminal statuses (Delivered, Cancelled) accept no transitions
//   - Requesting the current status again is a successful no-op
package order
