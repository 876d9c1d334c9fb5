// Package order implements the Order aggregate root of the order ledger.
//
// The package includes:
//   - Order: identity, priced items, totals, lifecycle and soft delete
//   - Status: the state machine pending -> accepted -> in-transit -> delivered,
//     with cancellation from pending or accepted
//   - Assignment: the one-time binding to a human driver or a drone mission
//   - Split: the settlement shares stamped on delivery
//   - DomainEvent: transition snapshots drained into the notification outbox
//
// Key business rules:
//   - total is items total plus shipping fee and never changes
//   - a second assignment fails with ErrAlreadyAssigned
//   - a second settlement fails with ErrAlreadySettled
//   - delivered and cancelled are terminal; only terminal orders can be deleted
//
// Transition methods take the current time from the caller so handlers and
// tests control timestamps.
package order
