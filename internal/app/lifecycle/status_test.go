package lifecycle_test

import (
	"testing"
	"time"

	"github.com/pandu-magang/pandu-backend/internal/app/lifecycle"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// ── ParseStatus ────────────────────────────────────────────────────────────

func TestParseStatus_ValidValues(t *testing.T) {
	valid := []string{"not_yet", "aktif", "almost", "selesai", "missing"}
	for _, s := range valid {
		got, err := lifecycle.ParseStatus(s)
		if err != nil {
			t.Errorf("ParseStatus(%q) returned unexpected error: %v", s, err)
		}
		if string(got) != s {
			t.Errorf("ParseStatus(%q) = %q, want %q", s, got, s)
		}
	}
}

func TestParseStatus_InvalidValue(t *testing.T) {
	for _, s := range []string{"ACTIVE", "done", ""} {
		if _, err := lifecycle.ParseStatus(s); err == nil {
			t.Errorf("ParseStatus(%q) expected error, got nil", s)
		}
	}
}

// ── Resolve — month-long interval ──────────────────────────────────────────

func TestResolve_MonthInterval(t *testing.T) {
	start, end := date("2024-01-01"), date("2024-01-31")

	cases := []struct {
		asOf string
		want lifecycle.Status
	}{
		{"2023-12-31", lifecycle.StatusNotYet},
		{"2024-01-01", lifecycle.StatusAktif},
		{"2024-01-10", lifecycle.StatusAktif},
		{"2024-01-20", lifecycle.StatusAktif},  // 11 days out, window not yet open
		{"2024-01-23", lifecycle.StatusAktif},  // day before the window opens
		{"2024-01-24", lifecycle.StatusAlmost}, // end - 7d, inclusive
		{"2024-01-31", lifecycle.StatusAlmost}, // end date itself is almost, never selesai
		{"2024-02-01", lifecycle.StatusSelesai},
	}
	for _, c := range cases {
		if got := lifecycle.Resolve(start, end, date(c.asOf)); got != c.want {
			t.Errorf("Resolve(%s..%s, %s) = %s, want %s", "2024-01-01", "2024-01-31", c.asOf, got, c.want)
		}
	}
}

// ── Resolve — boundary dates of the almost window ──────────────────────────

func TestResolve_AlmostWindowBoundaries(t *testing.T) {
	start, end := date("2024-03-01"), date("2024-03-20")

	if got := lifecycle.Resolve(start, end, end); got != lifecycle.StatusAlmost {
		t.Errorf("Resolve at end date = %s, want almost", got)
	}
	windowOpen := end.AddDate(0, 0, -lifecycle.AlmostWindowDays)
	if got := lifecycle.Resolve(start, end, windowOpen); got != lifecycle.StatusAlmost {
		t.Errorf("Resolve at end-7d = %s, want almost", got)
	}
	if got := lifecycle.Resolve(start, end, windowOpen.AddDate(0, 0, -1)); got != lifecycle.StatusAktif {
		t.Errorf("Resolve one day before window = %s, want aktif", got)
	}
	if got := lifecycle.Resolve(start, end, end.AddDate(0, 0, 1)); got != lifecycle.StatusSelesai {
		t.Errorf("Resolve one day after end = %s, want selesai", got)
	}
}

// ── Resolve — intervals shorter than the window skip aktif ─────────────────

func TestResolve_ShortIntervalSkipsAktif(t *testing.T) {
	start, end := date("2024-05-06"), date("2024-05-10") // 5 days

	if got := lifecycle.Resolve(start, end, date("2024-05-05")); got != lifecycle.StatusNotYet {
		t.Errorf("Resolve before short interval = %s, want not_yet", got)
	}
	// The whole interval sits inside [end-7d, end]: aktif never occurs.
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if got := lifecycle.Resolve(start, end, d); got != lifecycle.StatusAlmost {
			t.Errorf("Resolve(short interval, %s) = %s, want almost", d.Format("2006-01-02"), got)
		}
	}
}

func TestResolve_StartOfLongInterval(t *testing.T) {
	start, end := date("2024-01-01"), date("2024-02-15")
	if got := lifecycle.Resolve(start, end, start); got != lifecycle.StatusAktif {
		t.Errorf("Resolve at start = %s, want aktif", got)
	}
}

// ── Resolve — monotonic along asOf, no regression ──────────────────────────

func TestResolve_MonotonicOverTime(t *testing.T) {
	rank := map[lifecycle.Status]int{
		lifecycle.StatusNotYet:  0,
		lifecycle.StatusAktif:   1,
		lifecycle.StatusAlmost:  2,
		lifecycle.StatusSelesai: 3,
	}

	intervals := []struct{ start, end string }{
		{"2024-01-01", "2024-01-31"},
		{"2024-01-01", "2024-01-05"}, // shorter than window
		{"2024-01-01", "2024-01-01"}, // single day
	}
	for _, iv := range intervals {
		start, end := date(iv.start), date(iv.end)
		prev := -1
		for d := start.AddDate(0, 0, -3); !d.After(end.AddDate(0, 0, 3)); d = d.AddDate(0, 0, 1) {
			got := lifecycle.Resolve(start, end, d)
			r, ok := rank[got]
			if !ok {
				t.Fatalf("Resolve produced unexpected status %s", got)
			}
			if r < prev {
				t.Errorf("interval %s..%s: status went backwards at %s (%s)", iv.start, iv.end, d.Format("2006-01-02"), got)
			}
			prev = r
		}
	}
}

// ── Resolve ignores the time-of-day component ──────────────────────────────

func TestResolve_IgnoresTimeOfDay(t *testing.T) {
	start, end := date("2024-01-01"), date("2024-01-31")
	lateOnEndDate := time.Date(2024, 1, 31, 23, 59, 0, 0, time.UTC)
	if got := lifecycle.Resolve(start, end, lateOnEndDate); got != lifecycle.StatusAlmost {
		t.Errorf("Resolve(23:59 on end date) = %s, want almost", got)
	}
}

// ── AutoRefreshable ────────────────────────────────────────────────────────

func TestAutoRefreshable(t *testing.T) {
	refreshable := []lifecycle.Status{lifecycle.StatusNotYet, lifecycle.StatusAktif, lifecycle.StatusAlmost}
	for _, s := range refreshable {
		if !lifecycle.AutoRefreshable(s) {
			t.Errorf("AutoRefreshable(%s) should be true", s)
		}
	}
	for _, s := range []lifecycle.Status{lifecycle.StatusSelesai, lifecycle.StatusMissing} {
		if lifecycle.AutoRefreshable(s) {
			t.Errorf("AutoRefreshable(%s) should be false (terminal or sticky)", s)
		}
	}
}
