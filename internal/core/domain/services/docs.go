// Package services provides domain services that work across more than one
// aggregate of the cafeteria domain.
//
// The package includes:
//   - OrderPricer: prices cart lines against the menu catalog, so an order never
//     carries a price the customer supplied
//
// Domain services hold no state and never touch storage; the command handlers
// load the aggregates and pass them in.
package services
