package models

// RoleType defines the staff role type
type RoleType string

const (
	RoleAdmin      RoleType = "admin"
	RoleSuperadmin RoleType = "superadmin"
)

// ParticipantType distinguishes university students from secondary-school
// students
type ParticipantType string

const (
	ParticipantMahasiswa ParticipantType = "mahasiswa" // university student
	ParticipantSiswa     ParticipantType = "siswa"     // secondary-school student
)

// InstitutionType mirrors ParticipantType on the institution side
type InstitutionType string

const (
	InstitutionUniversitas InstitutionType = "universitas"
	InstitutionSekolah     InstitutionType = "sekolah"
)

// CertificateKind distinguishes completion certificates from receipts
type CertificateKind string

const (
	CertificateKindCertificate CertificateKind = "certificate"
	CertificateKindReceipt     CertificateKind = "receipt"
)
