// Package outbox models notification outbox messages.
//
// A message is written in the same transaction as the order change that
// raised it and is later picked up by the relay job. Delivery is
// at-least-once: a message stays pending until every notification it plans
// went out, and moves to failed after the configured number of attempts.
package outbox
