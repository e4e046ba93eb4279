package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/beehayv/beehayv-api/internal/models"
	"github.com/beehayv/beehayv-api/internal/repository"
	appErrors "github.com/beehayv/beehayv-api/pkg/errors"
)

type definitionRepository interface {
	List(ctx context.Context, filter models.DefinitionFilter) ([]models.BehaviorDefinition, error)
	FindByID(ctx context.Context, id int) (*models.BehaviorDefinition, error)
	Create(ctx context.Context, def *models.BehaviorDefinition) error
}

// CreateDefinitionRequest captures fields for defining a tracked behavior.
type CreateDefinitionRequest struct {
	SubjectID   int    `json:"subject_id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// DefinitionService handles behavior-definition workflows.
type DefinitionService struct {
	repo      definitionRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewDefinitionService creates a new definition service.
func NewDefinitionService(repo definitionRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *DefinitionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefinitionService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// List returns behavior definitions, optionally filtered by subject.
func (s *DefinitionService) List(ctx context.Context, subjectID int) ([]models.BehaviorDefinition, error) {
	defs, err := s.repo.List(ctx, models.DefinitionFilter{SubjectID: subjectID})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list definitions")
	}
	return defs, nil
}

// Get returns a definition by identifier.
func (s *DefinitionService) Get(ctx context.Context, id int) (*models.BehaviorDefinition, error) {
	def, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrDefinitionNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "definition not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load definition")
	}
	return def, nil
}

// Create attaches a new behavior definition to an existing subject.
func (s *DefinitionService) Create(ctx context.Context, req CreateDefinitionRequest) (*models.BehaviorDefinition, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid definition payload")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "behavior name must not be blank")
	}

	def := &models.BehaviorDefinition{
		SubjectID:    req.SubjectID,
		BehaviorName: name,
		Description:  strings.TrimSpace(req.Description),
	}
	if err := s.repo.Create(ctx, def); err != nil {
		if errors.Is(err, repository.ErrSubjectNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create definition")
	}

	if err := s.cache.Invalidate(ctx, "dashboard*"); err != nil {
		s.logger.Warn("dashboard cache invalidation failed", zap.Error(err))
	}
	return def, nil
}
