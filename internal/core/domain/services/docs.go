// Package services provides domain services that work across the order and
// split config aggregates.
//
// The package includes:
//   - SettlementEngine: computes the admin/restaurant/delivery split of an
//     order total from the active split config
//   - OrderDispatcher: plans and range-checks drone flights before a mission
//     is requested
//
// Both services are stateless values and never touch storage.
package services
