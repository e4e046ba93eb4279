package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/beehayv/beehayv-api/internal/dto"
	"github.com/beehayv/beehayv-api/internal/models"
	appErrors "github.com/beehayv/beehayv-api/pkg/errors"
)

type dashboardSubjectSource interface {
	List(ctx context.Context) ([]models.Subject, error)
}

type dashboardDefinitionSource interface {
	List(ctx context.Context, filter models.DefinitionFilter) ([]models.BehaviorDefinition, error)
}

// DashboardService assembles the landing-page overview: entity counts,
// per-subject activity and current average-table sizes.
type DashboardService struct {
	subjects    dashboardSubjectSource
	definitions dashboardDefinitionSource
	scores      scoreSource
	averages    averageStore
	cache       *CacheService
	metrics     *MetricsService
	logger      *zap.Logger
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(subjects dashboardSubjectSource, definitions dashboardDefinitionSource, scores scoreSource, averages averageStore, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		subjects:    subjects,
		definitions: definitions,
		scores:      scores,
		averages:    averages,
		cache:       cache,
		metrics:     metrics,
		logger:      logger,
	}
}

// Overview returns the dashboard payload and whether the cache answered.
// Everything except the system metrics snapshot is cached; the snapshot is
// stamped per request.
func (s *DashboardService) Overview(ctx context.Context) (*dto.DashboardResponse, bool, error) {
	var cached dto.DashboardResponse
	if hit, err := s.cache.Get(ctx, "dashboard", &cached); err == nil && hit {
		cached.System = s.metrics.Snapshot()
		return &cached, true, nil
	}

	overview, err := s.build(ctx)
	if err != nil {
		return nil, false, err
	}
	if err := s.cache.Set(ctx, "dashboard", overview, 0); err != nil {
		s.logger.Warn("dashboard cache set failed", zap.Error(err))
	}
	overview.System = s.metrics.Snapshot()
	return overview, false, nil
}

func (s *DashboardService) build(ctx context.Context) (*dto.DashboardResponse, error) {
	subjects, err := s.subjects.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subjects")
	}
	definitions, err := s.definitions.List(ctx, models.DefinitionFilter{})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load definitions")
	}
	scores, err := s.scores.All(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load score log")
	}
	weekly, err := s.averages.Weekly(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load weekly averages")
	}
	monthly, err := s.averages.Monthly(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load monthly averages")
	}
	semiAnnual, err := s.averages.SemiAnnual(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load semi-annual averages")
	}

	defSubject := make(map[int]int, len(definitions))
	defCount := make(map[int]int, len(subjects))
	for _, def := range definitions {
		defSubject[def.DefinitionID] = def.SubjectID
		defCount[def.SubjectID]++
	}

	scoreCount := make(map[int]int, len(subjects))
	lastScore := make(map[int]string, len(subjects))
	for _, score := range scores {
		subjectID, ok := defSubject[score.DefinitionID]
		if !ok {
			continue
		}
		scoreCount[subjectID]++
		date := score.Date.Format(models.DateFormat)
		if date > lastScore[subjectID] {
			lastScore[subjectID] = date
		}
	}

	overviews := make([]dto.SubjectOverview, 0, len(subjects))
	for _, subject := range subjects {
		overviews = append(overviews, dto.SubjectOverview{
			SubjectID:       subject.SubjectID,
			SubjectLabel:    subject.SubjectLabel,
			DefinitionCount: defCount[subject.SubjectID],
			ScoreCount:      scoreCount[subject.SubjectID],
			LastScoreDate:   lastScore[subject.SubjectID],
		})
	}

	return &dto.DashboardResponse{
		SubjectCount:       len(subjects),
		DefinitionCount:    len(definitions),
		ScoreCount:         len(scores),
		WeeklyAverageRows:  len(weekly),
		MonthlyAverageRows: len(monthly),
		SemiAnnualRows:     len(semiAnnual),
		Subjects:           overviews,
	}, nil
}
