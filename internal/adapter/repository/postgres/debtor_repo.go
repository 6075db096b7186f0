package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/coloctools/sepacollect/internal/domain"
)

// debtorRepository implements domain.DebtorRepository
type debtorRepository struct {
	db *DB
}

// NewDebtorRepository creates a new debtor repository
func NewDebtorRepository(db *DB) domain.DebtorRepository {
	return &debtorRepository{db: db}
}

// ListDebtors retrieves all roommates ordered by insertion id, so the list
// order (and with it transaction numbering) is stable across runs
func (r *debtorRepository) ListDebtors(ctx context.Context) ([]domain.Debtor, error) {
	query := `
		SELECT debitor_name, debitor_iban, debitor_bic, debitor_rum, mandate_signature_date
		FROM roommates
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query roommates: %w", err)
	}
	defer rows.Close()

	debtors := make([]domain.Debtor, 0)
	for rows.Next() {
		var (
			debtor        domain.Debtor
			name, iban    sql.NullString
			bic, rum      sql.NullString
			signatureDate sql.NullTime
		)
		if err := rows.Scan(&name, &iban, &bic, &rum, &signatureDate); err != nil {
			return nil, fmt.Errorf("failed to scan roommate row: %w", err)
		}

		// NULL columns become empty fields so empty rows are detected by
		// validation instead of failing the scan
		debtor.DebitorName = name.String
		debtor.DebitorIBAN = iban.String
		debtor.DebitorBIC = bic.String
		debtor.DebitorRUM = rum.String
		if signatureDate.Valid {
			t := signatureDate.Time
			debtor.MandateSignatureDate = &t
		}

		debtors = append(debtors, debtor)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read roommate rows: %w", err)
	}

	return debtors, nil
}
