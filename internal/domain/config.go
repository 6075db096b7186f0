package domain

// CreditorConfig is the single creditor configuration row. Exactly one row
// must exist in the configuration table; any other count is rejected before
// a batch is built.
type CreditorConfig struct {
	CreditorName         string // ≤ 70 characters
	ICS                  string // SEPA creditor identifier
	CreditorIBAN         string
	CreditorBIC          string
	CreditorPrefix       string // exactly 3 digits, part of every transaction number
	RentLabel            string // ≤ 140 characters
	RentalExpensesLabel  string
	CurrentExpensesLabel string
}

// LabelFor returns the configured remittance label for the given nature
func (c *CreditorConfig) LabelFor(nature ExpenseNature) string {
	switch nature {
	case NatureRent:
		return c.RentLabel
	case NatureRentalExpenses:
		return c.RentalExpensesLabel
	case NatureCurrentExpenses:
		return c.CurrentExpensesLabel
	}
	return ""
}
