package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coloctools/sepacollect/internal/domain"
)

func validConfig() *domain.CreditorConfig {
	return &domain.CreditorConfig{
		CreditorName:         "SCI Biens Communs",
		ICS:                  "FR72ZZZ123456",
		CreditorIBAN:         "FR76 3000 6000 0112 3456 7890 189",
		CreditorBIC:          "AGRIFRPP",
		CreditorPrefix:       "001",
		RentLabel:            "Loyer",
		RentalExpensesLabel:  "Charges locatives",
		CurrentExpensesLabel: "Frais courants",
	}
}

func TestIsValidIBAN(t *testing.T) {
	assert.True(t, IsValidIBAN("FR7630006000011234567890189"))
	// Grouping spaces are stripped before the checksum
	assert.True(t, IsValidIBAN("FR76 3000 6000 0112 3456 7890 189"))
	assert.False(t, IsValidIBAN("INVALID"))
	assert.False(t, IsValidIBAN(""))
	// Wrong checksum
	assert.False(t, IsValidIBAN("FR7630006000011234567890188"))
}

func TestIsValidIBAN_ChecksumAcrossCountries(t *testing.T) {
	// The custom mod-97 rule must evaluate, never abort the run
	assert.NotPanics(t, func() {
		assert.True(t, IsValidIBAN("DE89370400440532013000"))
		assert.True(t, IsValidIBAN("GB82WEST12345698765432"))
		assert.True(t, IsValidIBAN("BE68539007547034"))

		// Single-digit corruption flips the remainder
		assert.False(t, IsValidIBAN("DE89370400440532013001"))
		assert.False(t, IsValidIBAN("GB82WEST12345698765431"))

		// Structure violations: too short, lowercase, bad characters
		assert.False(t, IsValidIBAN("FR7630006"))
		assert.False(t, IsValidIBAN("fr7630006000011234567890189"))
		assert.False(t, IsValidIBAN("FR76-3000-6000-0112-3456-7890-189"))
	})
}

func TestIsValidBIC(t *testing.T) {
	assert.True(t, IsValidBIC("AGRIFRPP"))
	assert.True(t, IsValidBIC("BNPAFRPPXXX"))
	assert.False(t, IsValidBIC("X"))
	assert.False(t, IsValidBIC(""))
}

func TestIsValidICS(t *testing.T) {
	assert.True(t, IsValidICS("FR72ZZZ123456"))
	assert.False(t, IsValidICS("fr72zzz123456"))
	assert.False(t, IsValidICS("FR72ZZ"))
	assert.False(t, IsValidICS(""))
}

func TestIsValidPrefix(t *testing.T) {
	assert.True(t, IsValidPrefix("001"))
	assert.False(t, IsValidPrefix("42"))
	assert.False(t, IsValidPrefix("1234"))
	assert.False(t, IsValidPrefix("ABC"))
}

func TestIsValidName(t *testing.T) {
	assert.True(t, IsValidName("Dupont"))
	assert.False(t, IsValidName(""))
	assert.False(t, IsValidName(strings.Repeat("a", 71)))
	assert.True(t, IsValidName(strings.Repeat("é", 70)))
}

func TestIsValidLabel(t *testing.T) {
	assert.True(t, IsValidLabel("Loyer"))
	assert.False(t, IsValidLabel(""))
	assert.False(t, IsValidLabel(strings.Repeat("a", 141)))
}

func TestIsValidRUM(t *testing.T) {
	assert.True(t, IsValidRUM("RUM001"))
	assert.False(t, IsValidRUM(""))
	assert.False(t, IsValidRUM(strings.Repeat("R", 36)))
	assert.False(t, IsValidRUM("RUM 001"))
}

func TestCheckConfig_Valid(t *testing.T) {
	assert.NoError(t, CheckConfig(validConfig()))
}

func TestCheckConfig_AggregatesAllViolations(t *testing.T) {
	cfg := validConfig()
	cfg.ICS = "bad"
	cfg.CreditorPrefix = "12"
	cfg.RentLabel = ""

	err := CheckConfig(cfg)
	assert.Error(t, err)

	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
	// Header plus one message per failed rule; validation never stops at
	// the first failure
	assert.Len(t, verr.Violations, 4)
	assert.Contains(t, verr.Error(), "CONFIGURATIONS")
	assert.Contains(t, verr.Error(), "l'ICS est invalide,")
	assert.Contains(t, verr.Error(), "trois chiffres")
	assert.Contains(t, verr.Error(), "libellés")
}

func TestCheckDebtors_Valid(t *testing.T) {
	debtors := []domain.Debtor{
		{
			DebitorName: "Dupont",
			DebitorIBAN: "FR7630006000011234567890189",
			DebitorBIC:  "AGRIFRPP",
			DebitorRUM:  "RUM001",
		},
	}

	assert.NoError(t, CheckDebtors(debtors))
}

func TestCheckDebtors_EmptyRowRejected(t *testing.T) {
	debtors := []domain.Debtor{
		{
			DebitorName: "Dupont",
			DebitorIBAN: "FR7630006000011234567890189",
			DebitorBIC:  "AGRIFRPP",
			DebitorRUM:  "RUM001",
		},
		{},
	}

	err := CheckDebtors(debtors)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ligne 2: la ligne est vide,")
}

func TestCheckDebtors_ReportsRowPositions(t *testing.T) {
	debtors := []domain.Debtor{
		{
			DebitorName: "Dupont",
			DebitorIBAN: "INVALID",
			DebitorBIC:  "AGRIFRPP",
			DebitorRUM:  "RUM001",
		},
		{
			DebitorName: "Martin",
			DebitorIBAN: "FR7630006000011234567890189",
			DebitorBIC:  "AGRIFRPP",
			DebitorRUM:  strings.Repeat("R", 36),
		},
	}

	err := CheckDebtors(debtors)
	assert.Error(t, err)

	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Error(), "ligne 1: l'IBAN est invalide,")
	assert.Contains(t, verr.Error(), "ligne 2: le RUM est invalide,")
}
