package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/pandu-magang/pandu-backend/internal/app/models"
	"github.com/pandu-magang/pandu-backend/internal/app/models/dto"
)

const (
	institutionCacheKey = "institutions:all"
	institutionCacheTTL = time.Hour
)

// InstitutionStore persists directory entries
type InstitutionStore interface {
	Create(ctx context.Context, inst *models.Institution) error
	GetByID(ctx context.Context, id int64) (*models.Institution, error)
	List(ctx context.Context, instType, search string) ([]*models.Institution, error)
	Update(ctx context.Context, inst *models.Institution) error
	Delete(ctx context.Context, id int64) error
}

// InstitutionService handles the source institution directory. The full
// unfiltered listing is cached in Redis for an hour; any write drops the
// cache. A nil redis client disables caching.
type InstitutionService struct {
	institutionRepo InstitutionStore
	cache           *redis.Client
	logger          zerolog.Logger
}

// NewInstitutionService creates a new InstitutionService
func NewInstitutionService(institutionRepo InstitutionStore, cache *redis.Client, logger zerolog.Logger) *InstitutionService {
	return &InstitutionService{
		institutionRepo: institutionRepo,
		cache:           cache,
		logger:          logger,
	}
}

// Create adds a directory entry
func (s *InstitutionService) Create(ctx context.Context, req *dto.InstitutionRequest) (*models.Institution, error) {
	inst := &models.Institution{
		Name:    req.Name,
		Type:    models.InstitutionType(req.Type),
		Address: req.Address,
		Contact: req.Contact,
	}
	if err := s.institutionRepo.Create(ctx, inst); err != nil {
		return nil, err
	}
	s.dropCache(ctx)
	return inst, nil
}

// GetByID retrieves a directory entry
func (s *InstitutionService) GetByID(ctx context.Context, id int64) (*models.Institution, error) {
	return s.institutionRepo.GetByID(ctx, id)
}

// List retrieves directory entries. The unfiltered listing is served from
// cache when possible; filtered queries always hit the database.
func (s *InstitutionService) List(ctx context.Context, instType, search string) ([]*models.Institution, error) {
	cacheable := instType == "" && search == ""
	if cacheable && s.cache != nil {
		if data, err := s.cache.Get(ctx, institutionCacheKey).Bytes(); err == nil {
			var cached []*models.Institution
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
			// Corrupt cache entry, fall through to the database.
			s.cache.Del(ctx, institutionCacheKey)
		}
	}

	institutions, err := s.institutionRepo.List(ctx, instType, search)
	if err != nil {
		return nil, err
	}

	if cacheable && s.cache != nil {
		if data, err := json.Marshal(institutions); err == nil {
			if err := s.cache.Set(ctx, institutionCacheKey, data, institutionCacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("Could not cache institution listing")
			}
		}
	}
	return institutions, nil
}

// Update edits a directory entry
func (s *InstitutionService) Update(ctx context.Context, id int64, req *dto.InstitutionRequest) (*models.Institution, error) {
	inst := &models.Institution{
		ID:      id,
		Name:    req.Name,
		Type:    models.InstitutionType(req.Type),
		Address: req.Address,
		Contact: req.Contact,
	}
	if err := s.institutionRepo.Update(ctx, inst); err != nil {
		return nil, err
	}
	s.dropCache(ctx)
	return s.institutionRepo.GetByID(ctx, id)
}

// Delete removes a directory entry
func (s *InstitutionService) Delete(ctx context.Context, id int64) error {
	if err := s.institutionRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.dropCache(ctx)
	return nil
}

func (s *InstitutionService) dropCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, institutionCacheKey).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("Could not invalidate institution cache")
	}
}
