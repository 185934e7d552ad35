package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	TokenRepository        *TokenRepository
	DepartmentRepository   *DepartmentRepository
	InternRepository       *InternRepository
	InstitutionRepository  *InstitutionRepository
	EvaluationRepository   *EvaluationRepository
	CertificateRepository  *CertificateRepository
	NotificationRepository *NotificationRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db),
		TokenRepository:        NewTokenRepository(db),
		DepartmentRepository:   NewDepartmentRepository(db),
		InternRepository:       NewInternRepository(db),
		InstitutionRepository:  NewInstitutionRepository(db),
		EvaluationRepository:   NewEvaluationRepository(db),
		CertificateRepository:  NewCertificateRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
