// Package lifecycle defines the intern lifecycle state machine and the
// capacity arithmetic derived from it.
//
// Status graph (driven by the calendar, re-evaluated on every refresh):
//
//	not_yet ──► aktif ──► almost ──► selesai
//	    │         │          │
//	    └─────────┴──────────┴─────► missing (manual override, sticky)
//
// selesai is terminal for the automatic refresher; missing is never produced
// automatically and never cleared automatically.
package lifecycle

import (
	"fmt"
	"time"
)

// Status values mirror the intern_status enum in PostgreSQL.
type Status string

const (
	StatusNotYet  Status = "not_yet"
	StatusAktif   Status = "aktif"
	StatusAlmost  Status = "almost"
	StatusSelesai Status = "selesai"
	StatusMissing Status = "missing"
)

// AlmostWindowDays is the number of days before the end date during which an
// intern counts as "almost" finished. The same window feeds the
// soon-to-be-freed slot lookahead.
const AlmostWindowDays = 7

// ParseStatus converts a raw string to a Status, returning an error for
// unknown values.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusNotYet, StatusAktif, StatusAlmost, StatusSelesai, StatusMissing:
		return st, nil
	}
	return "", fmt.Errorf("unknown intern status %q", s)
}

// Resolve computes the date-derived status for the interval [start, end] as
// seen on asOf. It is a pure function over calendar dates; times of day are
// ignored. It never returns StatusMissing, and it does not check that start
// precedes end.
//
// For intervals shorter than the almost window the status can jump straight
// from not_yet to almost without ever being aktif.
func Resolve(start, end, asOf time.Time) Status {
	start = toDate(start)
	end = toDate(end)
	asOf = toDate(asOf)

	switch {
	case asOf.Before(start):
		return StatusNotYet
	case asOf.After(end):
		return StatusSelesai
	case !asOf.Before(end.AddDate(0, 0, -AlmostWindowDays)):
		// Inclusive window [end-7d, end].
		return StatusAlmost
	default:
		return StatusAktif
	}
}

// AutoRefreshable reports whether the bulk refresher is allowed to overwrite
// the stored status. selesai is terminal and missing is a sticky manual
// override; both are excluded from recomputation.
func AutoRefreshable(s Status) bool {
	return s != StatusSelesai && s != StatusMissing
}

// toDate strips the time-of-day component so comparisons work on whole
// calendar days regardless of how the timestamp was produced.
func toDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
