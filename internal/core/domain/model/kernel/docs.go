// Package kernel provides the shared value objects of the order domain.
//
// The package includes:
//   - UUID: identifiers for orders, parties and split configurations
//   - Money: non-negative amounts in minor currency units
//   - Coordinates and Location: delivery destinations, with Haversine distance
//   - Role and Actor: the authenticated party behind a command
//
// All value objects embed a guard.ConstructorGuard, so a zero value fails
// Validate and cannot be slipped past the constructors.
package kernel
