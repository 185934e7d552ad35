package models

import (
	"time"

	"github.com/pandu-magang/pandu-backend/internal/app/lifecycle"
)

// Intern defines the placement record based on the 'interns' table. Start and
// end dates are inclusive calendar dates fixed at creation/edit time; the
// status column is the persisted lifecycle state (see the lifecycle package
// for the transition rules).
type Intern struct {
	ID              int64            `json:"id" db:"id" example:"1"`
	FullName        string           `json:"fullName" db:"full_name" example:"Budi Santoso"`
	ParticipantType ParticipantType  `json:"participantType" db:"participant_type" example:"mahasiswa"`
	InstitutionName string           `json:"institutionName" db:"institution_name" example:"Universitas Indonesia"`
	InstitutionType InstitutionType  `json:"institutionType" db:"institution_type" example:"universitas"`
	DepartmentID    int64            `json:"departmentId" db:"department_id" example:"3"`
	MentorID        *int64           `json:"mentorId,omitempty" db:"mentor_id"` // nulled out when the mentor record is deleted
	StartDate       time.Time        `json:"startDate" db:"start_date"`
	EndDate         time.Time        `json:"endDate" db:"end_date"`
	Status          lifecycle.Status `json:"status" db:"status" example:"aktif"`
	CreatedBy       int64            `json:"createdBy" db:"created_by"`
	UpdatedBy       int64            `json:"updatedBy" db:"updated_by"`
	CreatedAt       time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time        `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Department *Department       `json:"department,omitempty"`
	Student    *StudentDetail    `json:"student,omitempty"`
	University *UniversityDetail `json:"university,omitempty"`
}

// StudentDetail holds siswa-specific attributes from 'intern_students',
// cascade-deleted with the intern row
type StudentDetail struct {
	InternID   int64  `json:"-" db:"intern_id"`
	NIS        string `json:"nis" db:"nis"` // school student number
	SchoolName string `json:"schoolName" db:"school_name"`
	Class      string `json:"class" db:"class"`
}

// UniversityDetail holds mahasiswa-specific attributes from
// 'intern_universities', cascade-deleted with the intern row
type UniversityDetail struct {
	InternID int64  `json:"-" db:"intern_id"`
	NIM      string `json:"nim" db:"nim"` // university student number
	Major    string `json:"major" db:"major"`
	Semester int    `json:"semester" db:"semester"`
}
