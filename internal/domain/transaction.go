package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseNature identifies one of the three recurring charges collected
// from the roommates each month
type ExpenseNature string

const (
	NatureRent            ExpenseNature = "RENT"
	NatureRentalExpenses  ExpenseNature = "RENTAL_EXPENSES"
	NatureCurrentExpenses ExpenseNature = "CURRENT_EXPENSES"
)

// NatureOrder is the fixed order in which batches appear in the document
// and in which transaction numbers are consumed
var NatureOrder = []ExpenseNature{NatureRent, NatureRentalExpenses, NatureCurrentExpenses}

// Suffix returns the short code appended to payment info ids so each batch
// id is distinguishable by nature
func (n ExpenseNature) Suffix() string {
	switch n {
	case NatureRent:
		return "RENT"
	case NatureRentalExpenses:
		return "RENTAL"
	case NatureCurrentExpenses:
		return "CURRENT"
	}
	return "OTHER"
}

// RequestedAmounts holds the per-head amount collected for each expense
// nature. All three must be strictly positive before a run is permitted.
type RequestedAmounts struct {
	Rent            decimal.Decimal
	RentalExpenses  decimal.Decimal
	CurrentExpenses decimal.Decimal
}

// ForNature returns the amount requested for the given nature
func (a RequestedAmounts) ForNature(nature ExpenseNature) decimal.Decimal {
	switch nature {
	case NatureRent:
		return a.Rent
	case NatureRentalExpenses:
		return a.RentalExpenses
	case NatureCurrentExpenses:
		return a.CurrentExpenses
	}
	return decimal.Zero
}

// Validate ensures every requested amount is strictly positive
// Returns a ValidationError listing each offending amount
func (a RequestedAmounts) Validate() error {
	violations := []string{}
	if a.Rent.LessThanOrEqual(decimal.Zero) {
		violations = append(violations, "le montant du loyer doit être strictement positif,")
	}
	if a.RentalExpenses.LessThanOrEqual(decimal.Zero) {
		violations = append(violations, "le montant des charges locatives doit être strictement positif,")
	}
	if a.CurrentExpenses.LessThanOrEqual(decimal.Zero) {
		violations = append(violations, "le montant des frais courants doit être strictement positif,")
	}
	if len(violations) > 0 {
		return NewValidationError(append([]string{"Erreur(s) dans les montants:"}, violations...)...)
	}
	return nil
}

// Transaction is a single direct debit instruction against one debtor.
// Identity fields are carried as entered; trimming and space stripping
// happen at the document boundary so history keeps the raw values.
type Transaction struct {
	ID                   string // 24-hex token, fits ISO 20022 Max35Text
	Number               string // formatted reference, e.g. REG-001012600001
	Amount               decimal.Decimal
	ExpenseLabel         string
	DebtorName           string
	DebtorIBAN           string
	DebtorBIC            string
	DebtorRUM            string
	MandateSignatureDate *time.Time
}

const (
	// CollectionMethod is the ISO 20022 payment method for direct debits
	CollectionMethod = "DD"
	// SequenceTypeRecurring marks every collection as a recurring one
	SequenceTypeRecurring = "RCUR"
)

// PaymentBatch groups the transactions of one expense nature into a single
// PmtInf block. A nature with no debtors produces no batch at all.
type PaymentBatch struct {
	ID             string
	Nature         ExpenseNature
	Method         string
	SequenceType   string
	CollectionDate time.Time
	ControlSum     decimal.Decimal
	Transactions   []Transaction
}

// HistoryRecord is the persisted projection of an emitted transaction.
// Records are append-only and are read back only to compute the next
// sequence base for the calendar month.
type HistoryRecord struct {
	Date          time.Time
	RUM           string
	Number        string
	TransactionID string
	Amount        decimal.Decimal
	DebtorName    string
	DebtorIBAN    string
	Label         string
}

// StripSpaces removes every space from an identifier so IBAN/BIC values can
// be entered with grouping spaces but emitted without them
func StripSpaces(s string) string {
	return strings.ReplaceAll(s, " ", "")
}
