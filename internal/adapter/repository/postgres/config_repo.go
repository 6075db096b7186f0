package postgres

import (
	"context"
	"fmt"

	"github.com/coloctools/sepacollect/internal/domain"
)

// configRepository implements domain.ConfigRepository
type configRepository struct {
	db *DB
}

// NewConfigRepository creates a new configuration repository
func NewConfigRepository(db *DB) domain.ConfigRepository {
	return &configRepository{db: db}
}

// GetConfig retrieves the single creditor configuration row. A row count
// other than exactly one is reported as a validation error, since it is a
// data-entry problem the user can fix.
func (r *configRepository) GetConfig(ctx context.Context) (*domain.CreditorConfig, error) {
	query := `
		SELECT creditor_name, ics, creditor_iban, creditor_bic, creditor_prefix,
		       rent_label, rental_expenses_label, current_expenses_label
		FROM configurations
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query configurations: %w", err)
	}
	defer rows.Close()

	configs := make([]domain.CreditorConfig, 0, 1)
	for rows.Next() {
		var cfg domain.CreditorConfig
		if err := rows.Scan(
			&cfg.CreditorName,
			&cfg.ICS,
			&cfg.CreditorIBAN,
			&cfg.CreditorBIC,
			&cfg.CreditorPrefix,
			&cfg.RentLabel,
			&cfg.RentalExpensesLabel,
			&cfg.CurrentExpensesLabel,
		); err != nil {
			return nil, fmt.Errorf("failed to scan configuration row: %w", err)
		}
		configs = append(configs, cfg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read configuration rows: %w", err)
	}

	if len(configs) != 1 {
		return nil, domain.NewValidationError(
			"Erreur dans la table CONFIGURATIONS: cette table doit contenir une et une seule ligne.",
		)
	}

	return &configs[0], nil
}
