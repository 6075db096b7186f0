package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/coloctools/sepacollect/internal/domain"
)

// historyRepository implements domain.HistoryRepository
type historyRepository struct {
	db *DB
}

// NewHistoryRepository creates a new history repository
func NewHistoryRepository(db *DB) domain.HistoryRepository {
	return &historyRepository{db: db}
}

// ListForMonth retrieves the history records whose date falls in the same
// calendar month as t
func (r *historyRepository) ListForMonth(ctx context.Context, t time.Time) ([]domain.HistoryRecord, error) {
	query := `
		SELECT date, rum, number, transaction_id, amount, debtor_name, debtor_iban, label
		FROM transaction_history
		WHERE date_trunc('month', date) = date_trunc('month', $1::timestamptz)
		ORDER BY number
	`

	rows, err := r.db.QueryContext(ctx, query, t)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction history: %w", err)
	}
	defer rows.Close()

	records := make([]domain.HistoryRecord, 0)
	for rows.Next() {
		var record domain.HistoryRecord
		var amountStr string
		if err := rows.Scan(
			&record.Date,
			&record.RUM,
			&record.Number,
			&record.TransactionID,
			&amountStr,
			&record.DebtorName,
			&record.DebtorIBAN,
			&record.Label,
		); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}

		// Parse amount (DECIMAL stored as text)
		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse history amount: %w", err)
		}
		record.Amount = amount

		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history rows: %w", err)
	}

	return records, nil
}

// Append inserts a chunk of history records in a database transaction.
// Records are append-only: there is no update or delete path.
func (r *historyRepository) Append(ctx context.Context, records []domain.HistoryRecord) error {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	insertQuery := `
		INSERT INTO transaction_history (date, rum, number, transaction_id, amount, debtor_name, debtor_iban, label)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	for _, record := range records {
		_, err = dbTx.ExecContext(ctx, insertQuery,
			record.Date,
			record.RUM,
			record.Number,
			record.TransactionID,
			record.Amount.String(),
			record.DebtorName,
			record.DebtorIBAN,
			record.Label,
		)
		if err != nil {
			return fmt.Errorf("failed to insert history record: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
