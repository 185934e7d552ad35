package dto

import (
	"time"

	"github.com/pandu-magang/pandu-backend/internal/app/lifecycle"
)

// CountByLabel is a generic labeled counter used by the stats breakdowns
type CountByLabel struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// EndingSoonEntry feeds the "completing soon" dashboard table
type EndingSoonEntry struct {
	ID             int64     `json:"id"`
	FullName       string    `json:"fullName"`
	DepartmentName string    `json:"departmentName"`
	EndDate        time.Time `json:"endDate"`
}

// DashboardStats is the StatsAggregator result. Aktif and almost are folded
// into the single Active bucket.
type DashboardStats struct {
	Total        int               `json:"total"`
	Active       int               `json:"active"`
	Completed    int               `json:"completed"`
	Missing      int               `json:"missing"`
	ActiveByType []CountByLabel    `json:"activeByType"`
	ActiveByDept []CountByLabel    `json:"activeByDepartment"`
	EndingSoon   []EndingSoonEntry `json:"endingSoon"`
}

// AvailabilityResponse is the CapacityEvaluator result for a query date
type AvailabilityResponse struct {
	Date     string             `json:"date"`
	Snapshot lifecycle.Snapshot `json:"availability"`
}
