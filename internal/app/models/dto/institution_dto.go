package dto

// InstitutionRequest creates or updates a directory entry
type InstitutionRequest struct {
	Name    string `json:"name" binding:"required"`
	Type    string `json:"type" binding:"required,oneof=universitas sekolah"`
	Address string `json:"address"`
	Contact string `json:"contact"`
}
