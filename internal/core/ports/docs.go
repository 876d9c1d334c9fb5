// Package ports defines the contracts between the application core and its
// adapters: repositories and the unit of work on the driven side, and the
// external collaborators (party registry, drone service, notifier,
// idempotency store).
package ports
