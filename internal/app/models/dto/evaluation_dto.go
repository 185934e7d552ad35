package dto

// CreateEvaluationRequest records a performance assessment. Submitting one
// always forces the intern to selesai.
type CreateEvaluationRequest struct {
	Discipline     int    `json:"discipline" binding:"min=0,max=100"`
	Responsibility int    `json:"responsibility" binding:"min=0,max=100"`
	Teamwork       int    `json:"teamwork" binding:"min=0,max=100"`
	Initiative     int    `json:"initiative" binding:"min=0,max=100"`
	Notes          string `json:"notes"`
}

// CreateCertificateRequest issues a completion document record
type CreateCertificateRequest struct {
	Kind string `json:"kind" binding:"required,oneof=certificate receipt"`
}
