package models

import "time"

// Evaluation is a performance assessment for an intern. Recording one always
// completes the internship: the intern's status is forced to selesai in the
// same transaction, regardless of the dates.
type Evaluation struct {
	ID             int64     `json:"id" db:"id"`
	InternID       int64     `json:"internId" db:"intern_id"`
	Discipline     int       `json:"discipline" db:"discipline"`         // 0-100
	Responsibility int       `json:"responsibility" db:"responsibility"` // 0-100
	Teamwork       int       `json:"teamwork" db:"teamwork"`             // 0-100
	Initiative     int       `json:"initiative" db:"initiative"`         // 0-100
	Notes          string    `json:"notes,omitempty" db:"notes"`
	EvaluatorID    int64     `json:"evaluatorId" db:"evaluator_id"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}
