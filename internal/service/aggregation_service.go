package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/beehayv/beehayv-api/internal/dto"
	"github.com/beehayv/beehayv-api/internal/models"
	appErrors "github.com/beehayv/beehayv-api/pkg/errors"
)

type scoreSource interface {
	All(ctx context.Context) ([]models.DailyScore, error)
}

type averageStore interface {
	Weekly(ctx context.Context) ([]models.WeeklyAverage, error)
	Monthly(ctx context.Context) ([]models.MonthlyAverage, error)
	SemiAnnual(ctx context.Context) ([]models.SemiAnnualAverage, error)
	ReplaceWeekly(ctx context.Context, averages []models.WeeklyAverage) error
	ReplaceMonthly(ctx context.Context, averages []models.MonthlyAverage) error
	ReplaceSemiAnnual(ctx context.Context, averages []models.SemiAnnualAverage) error
}

// RecalculationResult reports the outcome of one full aggregation run.
type RecalculationResult struct {
	ScoresProcessed int       `json:"scores_processed"`
	WeeklyRows      int       `json:"weekly_rows"`
	MonthlyRows     int       `json:"monthly_rows"`
	SemiAnnualRows  int       `json:"semi_annual_rows"`
	Skipped         bool      `json:"skipped"`
	GeneratedAt     time.Time `json:"generated_at"`
}

// AggregationService recomputes and serves the weekly, monthly and
// semi-annual average tables. Recalculation is always a full rebuild from the
// score log; the persisted tables are a cache of that computation, never an
// incrementally-maintained structure.
type AggregationService struct {
	scores   scoreSource
	averages averageStore
	cache    *CacheService
	metrics  *MetricsService
	logger   *zap.Logger
}

// NewAggregationService creates a new aggregation service.
func NewAggregationService(scores scoreSource, averages averageStore, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *AggregationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AggregationService{scores: scores, averages: averages, cache: cache, metrics: metrics, logger: logger}
}

// bucketKey identifies one (definition, period) cell. Index is the ISO week,
// the calendar month or the half-year depending on the granularity.
type bucketKey struct {
	DefinitionID int
	Year         int
	Index        int
}

type bucketAccum struct {
	sum   float64
	count int
}

// RecalculateAll rebuilds all three average tables from the full score log.
// An empty log leaves the persisted tables untouched and reports Skipped.
func (s *AggregationService) RecalculateAll(ctx context.Context) (*RecalculationResult, error) {
	start := time.Now()

	scores, err := s.scores.All(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load score log")
	}
	if len(scores) == 0 {
		s.logger.Info("recalculation skipped, score log empty")
		return &RecalculationResult{Skipped: true, GeneratedAt: time.Now().UTC()}, nil
	}

	weekly := buildWeekly(scores)
	monthly := buildMonthly(scores)
	semiAnnual := buildSemiAnnual(scores)

	if err := s.averages.ReplaceWeekly(ctx, weekly); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist weekly averages")
	}
	if err := s.averages.ReplaceMonthly(ctx, monthly); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist monthly averages")
	}
	if err := s.averages.ReplaceSemiAnnual(ctx, semiAnnual); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist semi-annual averages")
	}

	if err := s.cache.Invalidate(ctx, "averages:*"); err != nil {
		s.logger.Warn("averages cache invalidation failed", zap.Error(err))
	}
	if err := s.cache.Invalidate(ctx, "dashboard*"); err != nil {
		s.logger.Warn("dashboard cache invalidation failed", zap.Error(err))
	}

	duration := time.Since(start)
	if s.metrics != nil {
		s.metrics.ObserveAggregation("all", duration)
		s.metrics.SetAverageRows(models.TableWeeklyAverages, len(weekly))
		s.metrics.SetAverageRows(models.TableMonthlyAverages, len(monthly))
		s.metrics.SetAverageRows(models.TableSemiAnnualAverages, len(semiAnnual))
	}
	s.logger.Info("averages recalculated",
		zap.Int("scores", len(scores)),
		zap.Int("weekly_rows", len(weekly)),
		zap.Int("monthly_rows", len(monthly)),
		zap.Int("semi_annual_rows", len(semiAnnual)),
		zap.Duration("duration", duration))

	return &RecalculationResult{
		ScoresProcessed: len(scores),
		WeeklyRows:      len(weekly),
		MonthlyRows:     len(monthly),
		SemiAnnualRows:  len(semiAnnual),
		GeneratedAt:     time.Now().UTC(),
	}, nil
}

// Weekly returns the persisted weekly averages, optionally filtered to one
// definition. Zero definitionID means no filter. The bool reports whether the
// response came from the cache, so handlers can surface it as response meta.
func (s *AggregationService) Weekly(ctx context.Context, definitionID int) ([]models.WeeklyAverage, bool, error) {
	key := fmt.Sprintf("averages:weekly:%d", definitionID)
	var cached []models.WeeklyAverage
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return cached, true, nil
	}

	rows, err := s.averages.Weekly(ctx)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load weekly averages")
	}
	if definitionID > 0 {
		rows = filterWeekly(rows, definitionID)
	}
	if err := s.cache.Set(ctx, key, rows, 0); err != nil {
		s.logger.Warn("weekly averages cache set failed", zap.Error(err))
	}
	return rows, false, nil
}

// Monthly returns the persisted monthly averages, optionally filtered to one
// definition, plus whether the cache answered.
func (s *AggregationService) Monthly(ctx context.Context, definitionID int) ([]models.MonthlyAverage, bool, error) {
	key := fmt.Sprintf("averages:monthly:%d", definitionID)
	var cached []models.MonthlyAverage
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return cached, true, nil
	}

	rows, err := s.averages.Monthly(ctx)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load monthly averages")
	}
	if definitionID > 0 {
		rows = filterMonthly(rows, definitionID)
	}
	if err := s.cache.Set(ctx, key, rows, 0); err != nil {
		s.logger.Warn("monthly averages cache set failed", zap.Error(err))
	}
	return rows, false, nil
}

// SemiAnnual returns the persisted semi-annual averages, optionally filtered
// to one definition, plus whether the cache answered.
func (s *AggregationService) SemiAnnual(ctx context.Context, definitionID int) ([]models.SemiAnnualAverage, bool, error) {
	key := fmt.Sprintf("averages:semiannual:%d", definitionID)
	var cached []models.SemiAnnualAverage
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return cached, true, nil
	}

	rows, err := s.averages.SemiAnnual(ctx)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load semi-annual averages")
	}
	if definitionID > 0 {
		rows = filterSemiAnnual(rows, definitionID)
	}
	if err := s.cache.Set(ctx, key, rows, 0); err != nil {
		s.logger.Warn("semi-annual averages cache set failed", zap.Error(err))
	}
	return rows, false, nil
}

// Series projects one definition's persisted averages into chart-ready points
// in chronological order. The bool carries the underlying read's cache-hit
// status through to the handler.
func (s *AggregationService) Series(ctx context.Context, period models.AveragePeriod, definitionID int) (*dto.SeriesResponse, bool, error) {
	if !period.Valid() {
		return nil, false, appErrors.Clone(appErrors.ErrValidation, "period must be weekly, monthly or semi-annual")
	}
	if definitionID <= 0 {
		return nil, false, appErrors.Clone(appErrors.ErrValidation, "definition_id is required")
	}

	points := make([]dto.SeriesPoint, 0)
	var cacheHit bool
	switch period {
	case models.PeriodWeekly:
		rows, hit, err := s.Weekly(ctx, definitionID)
		if err != nil {
			return nil, false, err
		}
		cacheHit = hit
		for _, row := range rows {
			points = append(points, dto.SeriesPoint{
				PeriodLabel:  fmt.Sprintf("%d-W%02d", row.Year, row.WeekOfYear),
				AverageScore: row.AverageScore,
				DataPoints:   row.DataPointsCount,
			})
		}
	case models.PeriodMonthly:
		rows, hit, err := s.Monthly(ctx, definitionID)
		if err != nil {
			return nil, false, err
		}
		cacheHit = hit
		for _, row := range rows {
			label := time.Date(row.Year, time.Month(row.Month), 1, 0, 0, 0, 0, time.UTC).Format("2006-Jan")
			points = append(points, dto.SeriesPoint{
				PeriodLabel:  label,
				AverageScore: row.AverageScore,
				DataPoints:   row.DataPointsCount,
			})
		}
	case models.PeriodSemiAnnual:
		rows, hit, err := s.SemiAnnual(ctx, definitionID)
		if err != nil {
			return nil, false, err
		}
		cacheHit = hit
		for _, row := range rows {
			points = append(points, dto.SeriesPoint{
				PeriodLabel:  fmt.Sprintf("%d-H%d", row.Year, row.Half),
				AverageScore: row.AverageScore,
				DataPoints:   row.DataPointsCount,
			})
		}
	}

	return &dto.SeriesResponse{DefinitionID: definitionID, Period: string(period), Points: points}, cacheHit, nil
}

func buildWeekly(scores []models.DailyScore) []models.WeeklyAverage {
	buckets := accumulate(scores, func(t time.Time) (int, int) {
		return t.ISOWeek()
	})
	keys := sortedKeys(buckets)

	rows := make([]models.WeeklyAverage, 0, len(keys))
	for i, key := range keys {
		acc := buckets[key]
		rows = append(rows, models.WeeklyAverage{
			AverageID:       i + 1,
			DefinitionID:    key.DefinitionID,
			Year:            key.Year,
			WeekOfYear:      key.Index,
			AverageScore:    acc.sum / float64(acc.count),
			DataPointsCount: acc.count,
		})
	}
	return rows
}

func buildMonthly(scores []models.DailyScore) []models.MonthlyAverage {
	buckets := accumulate(scores, func(t time.Time) (int, int) {
		return t.Year(), int(t.Month())
	})
	keys := sortedKeys(buckets)

	rows := make([]models.MonthlyAverage, 0, len(keys))
	for i, key := range keys {
		acc := buckets[key]
		rows = append(rows, models.MonthlyAverage{
			AverageID:       i + 1,
			DefinitionID:    key.DefinitionID,
			Year:            key.Year,
			Month:           key.Index,
			AverageScore:    acc.sum / float64(acc.count),
			DataPointsCount: acc.count,
		})
	}
	return rows
}

func buildSemiAnnual(scores []models.DailyScore) []models.SemiAnnualAverage {
	buckets := accumulate(scores, func(t time.Time) (int, int) {
		return t.Year(), (int(t.Month())-1)/6 + 1
	})
	keys := sortedKeys(buckets)

	rows := make([]models.SemiAnnualAverage, 0, len(keys))
	for i, key := range keys {
		acc := buckets[key]
		rows = append(rows, models.SemiAnnualAverage{
			AverageID:       i + 1,
			DefinitionID:    key.DefinitionID,
			Year:            key.Year,
			Half:            key.Index,
			AverageScore:    acc.sum / float64(acc.count),
			DataPointsCount: acc.count,
		})
	}
	return rows
}

func accumulate(scores []models.DailyScore, bucket func(time.Time) (int, int)) map[bucketKey]*bucketAccum {
	buckets := make(map[bucketKey]*bucketAccum)
	for _, score := range scores {
		year, index := bucket(score.Date)
		key := bucketKey{DefinitionID: score.DefinitionID, Year: year, Index: index}
		acc, ok := buckets[key]
		if !ok {
			acc = &bucketAccum{}
			buckets[key] = acc
		}
		acc.sum += float64(score.Score)
		acc.count++
	}
	return buckets
}

// sortedKeys orders buckets by definition, then chronologically, which fixes
// the dense identifier each row receives.
func sortedKeys(buckets map[bucketKey]*bucketAccum) []bucketKey {
	keys := make([]bucketKey, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].DefinitionID != keys[j].DefinitionID {
			return keys[i].DefinitionID < keys[j].DefinitionID
		}
		if keys[i].Year != keys[j].Year {
			return keys[i].Year < keys[j].Year
		}
		return keys[i].Index < keys[j].Index
	})
	return keys
}

func filterWeekly(rows []models.WeeklyAverage, definitionID int) []models.WeeklyAverage {
	out := make([]models.WeeklyAverage, 0, len(rows))
	for _, row := range rows {
		if row.DefinitionID == definitionID {
			out = append(out, row)
		}
	}
	return out
}

func filterMonthly(rows []models.MonthlyAverage, definitionID int) []models.MonthlyAverage {
	out := make([]models.MonthlyAverage, 0, len(rows))
	for _, row := range rows {
		if row.DefinitionID == definitionID {
			out = append(out, row)
		}
	}
	return out
}

func filterSemiAnnual(rows []models.SemiAnnualAverage, definitionID int) []models.SemiAnnualAverage {
	out := make([]models.SemiAnnualAverage, 0, len(rows))
	for _, row := range rows {
		if row.DefinitionID == definitionID {
			out = append(out, row)
		}
	}
	return out
}
