package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/beehayv/beehayv-api/internal/models"
	"github.com/beehayv/beehayv-api/internal/repository"
	appErrors "github.com/beehayv/beehayv-api/pkg/errors"
)

type scoreRepository interface {
	List(ctx context.Context, filter models.ScoreFilter) ([]models.DailyScore, int, error)
	Create(ctx context.Context, score *models.DailyScore) error
}

// LogScoreRequest captures one daily observation for a behavior definition.
type LogScoreRequest struct {
	DefinitionID int    `json:"definition_id" validate:"required"`
	Date         string `json:"date" validate:"required"`
	Score        int    `json:"score"`
	Notes        string `json:"notes"`
}

// ListScoresRequest filters the score log.
type ListScoresRequest struct {
	DefinitionID int
	DateFrom     string
	DateTo       string
	Page         int
	PageSize     int
}

// ScoreService handles the daily score log.
type ScoreService struct {
	repo      scoreRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewScoreService creates a new score service.
func NewScoreService(repo scoreRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *ScoreService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScoreService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// List returns paginated score entries, newest first.
func (s *ScoreService) List(ctx context.Context, req ListScoresRequest) ([]models.DailyScore, *models.Pagination, error) {
	filter := models.ScoreFilter{
		DefinitionID: req.DefinitionID,
		Page:         req.Page,
		PageSize:     req.PageSize,
	}
	if req.DateFrom != "" {
		from, err := parseDate(req.DateFrom)
		if err != nil {
			return nil, nil, appErrors.Clone(appErrors.ErrValidation, "date_from must be formatted YYYY-MM-DD")
		}
		filter.DateFrom = &from
	}
	if req.DateTo != "" {
		to, err := parseDate(req.DateTo)
		if err != nil {
			return nil, nil, appErrors.Clone(appErrors.ErrValidation, "date_to must be formatted YYYY-MM-DD")
		}
		filter.DateTo = &to
	}

	scores, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list scores")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 50
	}
	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: total}
	return scores, pagination, nil
}

// Log appends one score entry. Scores outside the 1..10 scale and dates that
// do not parse are rejected before anything touches disk.
func (s *ScoreService) Log(ctx context.Context, req LogScoreRequest) (*models.DailyScore, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid score payload")
	}

	if req.Score < models.ScoreMin || req.Score > models.ScoreMax {
		return nil, appErrors.Clone(appErrors.ErrScoreOutOfRange, "")
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date must be formatted YYYY-MM-DD")
	}

	score := &models.DailyScore{
		DefinitionID: req.DefinitionID,
		Date:         date,
		Score:        req.Score,
		Notes:        strings.TrimSpace(req.Notes),
	}
	if err := s.repo.Create(ctx, score); err != nil {
		if errors.Is(err, repository.ErrDefinitionNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "definition not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to log score")
	}

	// Average tables stay as-is until the next recalculation; only overview
	// caches go stale here.
	if err := s.cache.Invalidate(ctx, "dashboard*"); err != nil {
		s.logger.Warn("dashboard cache invalidation failed", zap.Error(err))
	}
	return score, nil
}

func parseDate(raw string) (time.Time, error) {
	return time.Parse(models.DateFormat, strings.TrimSpace(raw))
}
