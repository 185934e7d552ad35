package models

import "time"

// Institution is an entry in the external source-institution directory
type Institution struct {
	ID        int64           `json:"id" db:"id"`
	Name      string          `json:"name" db:"name"`
	Type      InstitutionType `json:"type" db:"type"`
	Address   string          `json:"address,omitempty" db:"address"`
	Contact   string          `json:"contact,omitempty" db:"contact"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time       `json:"updatedAt" db:"updated_at"`
}
