// Package validation holds the stateless format checks applied to the
// configuration and roommate tables before any batch is built. Checks are
// aggregated: every violation of a table is collected, then reported once.
package validation

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/coloctools/sepacollect/internal/domain"
)

const (
	maxNameLength  = 70
	maxLabelLength = 140
	maxRUMLength   = 35
)

var (
	icsPattern    = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[0-9A-Z]{3}[0-9A-Z]+$`)
	prefixPattern = regexp.MustCompile(`^[0-9]{3}$`)
	rumPattern    = regexp.MustCompile(`^[0-9A-Za-z]+$`)

	// country code, check digits, then 11 to 30 alphanumerics (15-34 total)
	ibanPattern = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[0-9A-Z]{11,30}$`)

	// validate provides the bic (ISO 9362) built-in rule; the iban rule is
	// registered below since validator ships none
	validate = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("iban", func(fl validator.FieldLevel) bool {
		return ibanChecksum(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// ibanChecksum applies the ISO 13616 structure and mod-97 check: move the
// first four characters to the end, substitute letters with 10..35, and the
// resulting number must leave remainder 1 modulo 97
func ibanChecksum(v string) bool {
	if !ibanPattern.MatchString(v) {
		return false
	}

	rearranged := v[4:] + v[:4]
	remainder := 0
	for _, r := range rearranged {
		if r >= '0' && r <= '9' {
			remainder = (remainder*10 + int(r-'0')) % 97
		} else {
			remainder = (remainder*100 + int(r-'A') + 10) % 97
		}
	}
	return remainder == 1
}

// IsValidName reports whether a creditor or debtor name is non-empty and at
// most 70 characters
func IsValidName(v string) bool {
	return v != "" && utf8.RuneCountInString(v) <= maxNameLength
}

// IsValidIBAN checks the IBAN structure and checksum after stripping all
// spaces, so values may be entered with grouping spaces
func IsValidIBAN(v string) bool {
	return validate.Var(domain.StripSpaces(v), "required,iban") == nil
}

// IsValidBIC checks the BIC structure
func IsValidBIC(v string) bool {
	return validate.Var(v, "required,bic") == nil
}

// IsValidICS checks the SEPA creditor identifier format
func IsValidICS(v string) bool {
	return icsPattern.MatchString(v)
}

// IsValidPrefix reports whether the creditor prefix is exactly three digits
func IsValidPrefix(v string) bool {
	return prefixPattern.MatchString(v)
}

// IsValidLabel reports whether a remittance label is non-empty and at most
// 140 characters
func IsValidLabel(v string) bool {
	return v != "" && utf8.RuneCountInString(v) <= maxLabelLength
}

// IsValidRUM reports whether a mandate reference is alphanumeric and at most
// 35 characters
func IsValidRUM(v string) bool {
	return utf8.RuneCountInString(v) <= maxRUMLength && rumPattern.MatchString(v)
}

// CheckConfig validates the creditor configuration and returns a
// ValidationError aggregating every violation found
func CheckConfig(cfg *domain.CreditorConfig) error {
	violations := []string{}
	if !IsValidName(cfg.CreditorName) {
		violations = append(violations, "le nom du créancier doit contenir au maximum 70 caractères,")
	}
	if !IsValidICS(cfg.ICS) {
		violations = append(violations, "l'ICS est invalide,")
	}
	if !IsValidIBAN(cfg.CreditorIBAN) {
		violations = append(violations, "l'IBAN est invalide,")
	}
	if !IsValidBIC(cfg.CreditorBIC) {
		violations = append(violations, "le BIC est invalide,")
	}
	if !IsValidPrefix(cfg.CreditorPrefix) {
		violations = append(violations, "le préfixe doit contenir exactement trois chiffres,")
	}
	if !IsValidLabel(cfg.RentLabel) ||
		!IsValidLabel(cfg.RentalExpensesLabel) ||
		!IsValidLabel(cfg.CurrentExpensesLabel) {
		violations = append(violations, "les libellés doivent contenir au maximum 140 caractères,")
	}

	if len(violations) > 0 {
		return domain.NewValidationError(append([]string{"Erreur(s) dans la table CONFIGURATIONS:"}, violations...)...)
	}
	return nil
}

// CheckDebtors validates the whole roommate list, carrying the row position
// in every message so the user can locate the offending line
func CheckDebtors(debtors []domain.Debtor) error {
	violations := []string{}
	for i := range debtors {
		d := &debtors[i]
		if d.IsEmpty() {
			violations = append(violations, fmt.Sprintf("ligne %d: la ligne est vide,", i+1))
			continue
		}
		if !IsValidName(d.DebitorName) {
			violations = append(violations, fmt.Sprintf("ligne %d: le nom du débiteur doit contenir au maximum 70 caractères,", i+1))
		}
		if !IsValidIBAN(d.DebitorIBAN) {
			violations = append(violations, fmt.Sprintf("ligne %d: l'IBAN est invalide,", i+1))
		}
		if !IsValidBIC(d.DebitorBIC) {
			violations = append(violations, fmt.Sprintf("ligne %d: le BIC est invalide,", i+1))
		}
		if !IsValidRUM(d.DebitorRUM) {
			violations = append(violations, fmt.Sprintf("ligne %d: le RUM est invalide,", i+1))
		}
		if d.MandateSignatureDate != nil && d.MandateSignatureDate.IsZero() {
			violations = append(violations, fmt.Sprintf("ligne %d: la date de signature de mandat est invalide,", i+1))
		}
	}

	if len(violations) > 0 {
		return domain.NewValidationError(append([]string{"Erreur(s) dans la table COLOCATAIRES:"}, violations...)...)
	}
	return nil
}
