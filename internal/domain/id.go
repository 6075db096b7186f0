package domain

import (
	"strings"

	"github.com/google/uuid"
)

// tokenLength keeps generated ids within the 35-character Max35Text fields
// of pain.008 (EndToEndId, MsgId, PmtInfId with its nature suffix)
const tokenLength = 24

// NewToken returns a process-unique 24-hex-character id derived from a UUID
func NewToken() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:tokenLength]
}
