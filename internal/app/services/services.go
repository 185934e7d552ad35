package services

// Services defined in this package:
// - AuthService: login, token refresh and admin account management
// - InternService: intern records, bulk status refresh, capacity and stats
// - DepartmentService: hosting department CRUD
// - InstitutionService: source institution directory with Redis caching
// - EvaluationService: evaluations and completion documents
// - NotificationService: per-user notifications and the ending-soon scan

// Services holds all the service instances
type Services struct {
	AuthService         *AuthService
	InternService       *InternService
	DepartmentService   *DepartmentService
	InstitutionService  *InstitutionService
	EvaluationService   *EvaluationService
	NotificationService *NotificationService
}
