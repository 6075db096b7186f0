package domain

import (
	"context"
	"time"
)

// ConfigRepository defines the interface for reading the creditor configuration
type ConfigRepository interface {
	// GetConfig retrieves the single configuration row
	// A row count other than exactly one is a validation error
	GetConfig(ctx context.Context) (*CreditorConfig, error)
}

// DebtorRepository defines the interface for reading the roommate list
type DebtorRepository interface {
	// ListDebtors retrieves all debtors in stable list order
	// The order determines transaction numbering within a batch
	ListDebtors(ctx context.Context) ([]Debtor, error)
}

// HistoryRepository defines the interface for collection history persistence
type HistoryRepository interface {
	// ListForMonth retrieves the records whose date falls in the same
	// calendar month as t
	ListForMonth(ctx context.Context, t time.Time) ([]HistoryRecord, error)

	// Append persists a chunk of history records
	// Records are append-only; nothing updates or deletes them
	Append(ctx context.Context, records []HistoryRecord) error
}
