package dto

import (
	"github.com/pandu-magang/pandu-backend/internal/app/lifecycle"
)

// StudentDetailRequest carries siswa-specific fields
type StudentDetailRequest struct {
	NIS        string `json:"nis" binding:"required"`
	SchoolName string `json:"schoolName" binding:"required"`
	Class      string `json:"class"`
}

// UniversityDetailRequest carries mahasiswa-specific fields
type UniversityDetailRequest struct {
	NIM      string `json:"nim" binding:"required"`
	Major    string `json:"major" binding:"required"`
	Semester int    `json:"semester"`
}

// CreateInternRequest registers a new intern. The dates are calendar dates in
// YYYY-MM-DD; the server computes the initial status from them.
type CreateInternRequest struct {
	FullName        string `json:"fullName" binding:"required"`
	ParticipantType string `json:"participantType" binding:"required,oneof=mahasiswa siswa"`
	InstitutionName string `json:"institutionName" binding:"required"`
	InstitutionType string `json:"institutionType" binding:"required,oneof=universitas sekolah"`
	DepartmentID    int64  `json:"departmentId" binding:"required"`
	MentorID        *int64 `json:"mentorId"`
	TanggalMasuk    string `json:"tanggal_masuk" binding:"required"`  // start date, YYYY-MM-DD
	TanggalKeluar   string `json:"tanggal_keluar" binding:"required"` // end date, YYYY-MM-DD

	Student    *StudentDetailRequest    `json:"student,omitempty"`
	University *UniversityDetailRequest `json:"university,omitempty"`
}

// UpdateInternRequest edits an intern. When Status is empty the server
// recomputes it from the dates; a non-empty Status is applied verbatim
// (administrative edits may override any state, including selesai).
type UpdateInternRequest struct {
	FullName        string `json:"fullName" binding:"required"`
	ParticipantType string `json:"participantType" binding:"required,oneof=mahasiswa siswa"`
	InstitutionName string `json:"institutionName" binding:"required"`
	InstitutionType string `json:"institutionType" binding:"required,oneof=universitas sekolah"`
	DepartmentID    int64  `json:"departmentId" binding:"required"`
	MentorID        *int64 `json:"mentorId"`
	TanggalMasuk    string `json:"tanggal_masuk" binding:"required"`
	TanggalKeluar   string `json:"tanggal_keluar" binding:"required"`
	Status          string `json:"status,omitempty" binding:"omitempty,oneof=not_yet aktif almost selesai missing"`

	Student    *StudentDetailRequest    `json:"student,omitempty"`
	University *UniversityDetailRequest `json:"university,omitempty"`
}

// InternListFilter narrows the intern listing
type InternListFilter struct {
	Status          lifecycle.Status
	DepartmentID    int64
	ParticipantType string
	Search          string
}
