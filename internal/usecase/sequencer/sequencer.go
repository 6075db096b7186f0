// Package sequencer produces the strictly increasing transaction reference
// series for a single run. The series is scoped to the calendar month and
// continues across all batches of the run; it never resets between natures.
package sequencer

import (
	"fmt"
	"time"

	"github.com/coloctools/sepacollect/internal/domain"
)

// State is the sequence position of one run. It is a plain value threaded
// through batch construction, never a shared mutable field, so concurrent
// runs cannot observe each other's offsets in-process. True cross-run
// safety still requires a uniqueness constraint on the number column in the
// history store, since the starting offset is read once per run.
type State struct {
	prefix string // 3-digit creditor prefix
	month  string // MMYY of the run's timestamp
	offset int
}

// NewState derives the starting offset for a run: the count of history
// records whose date falls in the same calendar month as now (calendar-month
// equality, not a rolling window).
func NewState(prefix string, now time.Time, history []domain.HistoryRecord) State {
	count := 0
	for _, record := range history {
		if sameMonth(record.Date, now) {
			count++
		}
	}
	return State{
		prefix: prefix,
		month:  now.Format("0106"),
		offset: count,
	}
}

// Next consumes the following offset and formats it as a transaction number,
// REG-{prefix}{MMYY}{offset padded to 5 digits}. Offsets beyond 99999 are
// formatted as-is and simply widen the number.
func (s *State) Next() string {
	s.offset++
	return fmt.Sprintf("REG-%s%s%05d", s.prefix, s.month, s.offset)
}

// Offset returns the last consumed offset
func (s *State) Offset() int {
	return s.offset
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
