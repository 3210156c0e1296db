// Package kernel provides the value objects shared by every cafeteria aggregate.
//
// The package includes:
//   - UUID: identifier for orders, menu items and users
//   - Email: normalized (trimmed, lower-cased) address used as customer and account key
//   - Money: exact, non-negative amount backed by shopspring/decimal
//   - DomainEvent and EventSource: the contract between aggregates and the outbox
//
// Every value object has an invalid zero value and a Validate method, so
// aggregates can reject values that did not pass through a constructor.
package kernel
