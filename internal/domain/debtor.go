package domain

import (
	"strings"
	"time"
)

// Debtor is one roommate charged on every run. The mandate signature date is
// optional; when present it is emitted in the mandate related information.
type Debtor struct {
	DebitorName          string // ≤ 70 characters, non-empty
	DebitorIBAN          string
	DebitorBIC           string
	DebitorRUM           string // unique mandate reference, ≤ 35 characters
	MandateSignatureDate *time.Time
}

// IsEmpty reports whether the row carries no data at all (blank name and no
// financial fields). Such rows are rejected, never silently skipped.
func (d *Debtor) IsEmpty() bool {
	return strings.TrimSpace(d.DebitorName) == "" &&
		d.DebitorIBAN == "" &&
		d.DebitorBIC == "" &&
		d.DebitorRUM == "" &&
		d.MandateSignatureDate == nil
}
