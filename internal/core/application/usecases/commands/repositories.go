// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"fooddelivery/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler asks only for the repositories it writes through.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	SplitConfigRepoFactory interface {
		SplitConfigRepository() ports.SplitConfigRepository
	}

	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// SettlementUoW reads split configs and writes the settled order in one
	// transaction.
	SettlementUoW interface {
		TxManager
		OrderRepoFactory
		SplitConfigRepoFactory
	}

	SettlementUoWFactory interface {
		Create() SettlementUoW
	}

	SplitConfigUoW interface {
		TxManager
		SplitConfigRepoFactory
	}

	SplitConfigUoWFactory interface {
		Create() SplitConfigUoW
	}

	// OutboxUoW is used by the relay. Its repository runs in autocommit
	// mode when Begin is not called.
	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)
