package models

import "time"

// Certificate is a numbered completion document record. Only interns in
// selesai status can be issued one.
type Certificate struct {
	ID       int64           `json:"id" db:"id"`
	InternID int64           `json:"internId" db:"intern_id"`
	Serial   string          `json:"serial" db:"serial"`
	Kind     CertificateKind `json:"kind" db:"kind"`
	IssuedBy int64           `json:"issuedBy" db:"issued_by"`
	IssuedAt time.Time       `json:"issuedAt" db:"issued_at"`
}
