package lifecycle

import (
	"fmt"
	"time"
)

// DefaultSlotLimit is the number of concurrent placement slots the
// organization can host. A single global pool, not per department.
const DefaultSlotLimit = 50

// LeavingIntern is an almost-status intern whose end date falls inside the
// lookahead window, freeing a slot soon.
type LeavingIntern struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	DepartmentName string    `json:"departmentName"`
	EndDate        time.Time `json:"endDate"`
}

// Snapshot is the capacity picture for a single query date. RawAvailable and
// TotalAvailableSlots carry the signed planning values; AvailableSlots and
// ClampedTotal are the zero-floored copies shown to callers.
type Snapshot struct {
	TotalOccupied       int             `json:"totalOccupied"`
	AvailableSlots      int             `json:"availableSlots"`
	RawAvailable        int             `json:"rawAvailable"`
	SoonAvailableSlots  int             `json:"soonAvailableSlots"`
	TotalAvailableSlots int             `json:"totalAvailableSlots"`
	ClampedTotal        int             `json:"clampedTotal"`
	IsAvailable         bool            `json:"isAvailable"`
	LeavingInterns      []LeavingIntern `json:"leavingInterns"`
	Message             string          `json:"message"`
}

// Evaluate combines the persisted counts into a capacity snapshot.
//
// active is the number of aktif interns whose interval covers the query date,
// upcoming the number of not_yet interns whose start date has already been
// reached, and leaving the almost interns ending within the lookahead window.
// Clamping only applies to the reported copies; every intermediate value stays
// signed.
func Evaluate(active, upcoming int, leaving []LeavingIntern, limit int) Snapshot {
	if limit <= 0 {
		limit = DefaultSlotLimit
	}

	totalOccupied := active + upcoming
	rawAvailable := limit - totalOccupied
	soon := len(leaving)
	totalAvailable := rawAvailable - soon

	return Snapshot{
		TotalOccupied:       totalOccupied,
		AvailableSlots:      clampZero(rawAvailable),
		RawAvailable:        rawAvailable,
		SoonAvailableSlots:  soon,
		TotalAvailableSlots: totalAvailable,
		ClampedTotal:        clampZero(totalAvailable),
		IsAvailable:         totalAvailable > 0,
		LeavingInterns:      leaving,
		Message:             availabilityMessage(totalAvailable, soon),
	}
}

// availabilityMessage picks the human-readable summary. "Direct" availability
// is judged on the net signal, after slots already promised to the lookahead
// window are subtracted.
func availabilityMessage(totalAvailable, soon int) string {
	switch {
	case totalAvailable <= 0 && soon == 0:
		return "Tidak ada slot tersedia dan tidak ada yang akan kosong dalam waktu dekat"
	case totalAvailable > 0 && soon == 0:
		return fmt.Sprintf("%d slot langsung tersedia", totalAvailable)
	case totalAvailable <= 0 && soon > 0:
		return fmt.Sprintf("Tidak ada slot langsung tersedia, %d slot akan kosong dalam %d hari", soon, AlmostWindowDays)
	default:
		return fmt.Sprintf("%d slot langsung tersedia dan %d slot akan kosong, total %d slot", totalAvailable, soon, totalAvailable+soon)
	}
}

func clampZero(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
