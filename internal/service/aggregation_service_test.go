package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/beehayv/beehayv-api/internal/models"
	"github.com/beehayv/beehayv-api/internal/repository"
)

type fakeScoreSource struct {
	scores []models.DailyScore
	err    error
}

func (f *fakeScoreSource) All(context.Context) ([]models.DailyScore, error) {
	return f.scores, f.err
}

type fakeAverageStore struct {
	weekly     []models.WeeklyAverage
	monthly    []models.MonthlyAverage
	semiAnnual []models.SemiAnnualAverage
	replaces   int
}

func (f *fakeAverageStore) Weekly(context.Context) ([]models.WeeklyAverage, error) {
	return f.weekly, nil
}

func (f *fakeAverageStore) Monthly(context.Context) ([]models.MonthlyAverage, error) {
	return f.monthly, nil
}

func (f *fakeAverageStore) SemiAnnual(context.Context) ([]models.SemiAnnualAverage, error) {
	return f.semiAnnual, nil
}

func (f *fakeAverageStore) ReplaceWeekly(_ context.Context, averages []models.WeeklyAverage) error {
	f.weekly = averages
	f.replaces++
	return nil
}

func (f *fakeAverageStore) ReplaceMonthly(_ context.Context, averages []models.MonthlyAverage) error {
	f.monthly = averages
	f.replaces++
	return nil
}

func (f *fakeAverageStore) ReplaceSemiAnnual(_ context.Context, averages []models.SemiAnnualAverage) error {
	f.semiAnnual = averages
	f.replaces++
	return nil
}

func disabledCache() *CacheService {
	return NewCacheService(nil, nil, 0, zap.NewNop(), false)
}

func day(t *testing.T, raw string) time.Time {
	t.Helper()
	d, err := time.Parse(models.DateFormat, raw)
	require.NoError(t, err)
	return d
}

func newAggregation(scores *fakeScoreSource, averages *fakeAverageStore) *AggregationService {
	return NewAggregationService(scores, averages, disabledCache(), nil, zap.NewNop())
}

func TestRecalculateSkipsWhenLogEmpty(t *testing.T) {
	averages := &fakeAverageStore{
		weekly: []models.WeeklyAverage{{AverageID: 1, DefinitionID: 1, Year: 2026, WeekOfYear: 1, AverageScore: 5, DataPointsCount: 1}},
	}
	svc := newAggregation(&fakeScoreSource{}, averages)

	result, err := svc.RecalculateAll(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Skipped)
	assert.Zero(t, averages.replaces)
	// Existing tables stay as they were.
	assert.Len(t, averages.weekly, 1)
}

func TestRecalculateMonthlyBuckets(t *testing.T) {
	scores := &fakeScoreSource{scores: []models.DailyScore{
		{LogID: 1, DefinitionID: 1, Date: day(t, "2024-01-10"), Score: 4},
		{LogID: 2, DefinitionID: 1, Date: day(t, "2024-01-20"), Score: 6},
		{LogID: 3, DefinitionID: 1, Date: day(t, "2024-02-05"), Score: 10},
	}}
	averages := &fakeAverageStore{}
	svc := newAggregation(scores, averages)

	result, err := svc.RecalculateAll(context.Background())
	require.NoError(t, err)
	assert.False(t, result.Skipped)
	assert.Equal(t, 3, result.ScoresProcessed)
	assert.Equal(t, 2, result.MonthlyRows)

	require.Len(t, averages.monthly, 2)
	assert.Equal(t, models.MonthlyAverage{
		AverageID: 1, DefinitionID: 1, Year: 2024, Month: 1, AverageScore: 5, DataPointsCount: 2,
	}, averages.monthly[0])
	assert.Equal(t, models.MonthlyAverage{
		AverageID: 2, DefinitionID: 1, Year: 2024, Month: 2, AverageScore: 10, DataPointsCount: 1,
	}, averages.monthly[1])
}

func TestRecalculateWeeklyUsesISOWeeks(t *testing.T) {
	// 2023-01-01 is a Sunday and belongs to ISO week 52 of 2022.
	scores := &fakeScoreSource{scores: []models.DailyScore{
		{LogID: 1, DefinitionID: 1, Date: day(t, "2023-01-01"), Score: 8},
		{LogID: 2, DefinitionID: 1, Date: day(t, "2023-01-02"), Score: 6},
	}}
	averages := &fakeAverageStore{}
	svc := newAggregation(scores, averages)

	_, err := svc.RecalculateAll(context.Background())
	require.NoError(t, err)

	require.Len(t, averages.weekly, 2)
	assert.Equal(t, 2022, averages.weekly[0].Year)
	assert.Equal(t, 52, averages.weekly[0].WeekOfYear)
	assert.Equal(t, 2023, averages.weekly[1].Year)
	assert.Equal(t, 1, averages.weekly[1].WeekOfYear)
}

func TestRecalculateSemiAnnualBucketsUseCalendarYear(t *testing.T) {
	scores := &fakeScoreSource{scores: []models.DailyScore{
		{LogID: 1, DefinitionID: 1, Date: day(t, "2024-03-15"), Score: 4},
		{LogID: 2, DefinitionID: 1, Date: day(t, "2024-06-30"), Score: 6},
		{LogID: 3, DefinitionID: 1, Date: day(t, "2024-07-01"), Score: 9},
	}}
	averages := &fakeAverageStore{}
	svc := newAggregation(scores, averages)

	_, err := svc.RecalculateAll(context.Background())
	require.NoError(t, err)

	require.Len(t, averages.semiAnnual, 2)
	assert.Equal(t, 1, averages.semiAnnual[0].Half)
	assert.Equal(t, 5.0, averages.semiAnnual[0].AverageScore)
	assert.Equal(t, 2, averages.semiAnnual[0].DataPointsCount)
	assert.Equal(t, 2, averages.semiAnnual[1].Half)
	assert.Equal(t, 9.0, averages.semiAnnual[1].AverageScore)
}

func TestRecalculateOrdersByDefinitionThenTime(t *testing.T) {
	scores := &fakeScoreSource{scores: []models.DailyScore{
		{LogID: 1, DefinitionID: 2, Date: day(t, "2024-01-10"), Score: 5},
		{LogID: 2, DefinitionID: 1, Date: day(t, "2024-03-10"), Score: 5},
		{LogID: 3, DefinitionID: 1, Date: day(t, "2024-01-10"), Score: 5},
	}}
	averages := &fakeAverageStore{}
	svc := newAggregation(scores, averages)

	_, err := svc.RecalculateAll(context.Background())
	require.NoError(t, err)

	require.Len(t, averages.monthly, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{averages.monthly[0].AverageID, averages.monthly[1].AverageID, averages.monthly[2].AverageID})
	assert.Equal(t, 1, averages.monthly[0].DefinitionID)
	assert.Equal(t, 1, averages.monthly[0].Month)
	assert.Equal(t, 1, averages.monthly[1].DefinitionID)
	assert.Equal(t, 3, averages.monthly[1].Month)
	assert.Equal(t, 2, averages.monthly[2].DefinitionID)
}

func TestRecalculateIsIdempotent(t *testing.T) {
	scores := &fakeScoreSource{scores: []models.DailyScore{
		{LogID: 1, DefinitionID: 1, Date: day(t, "2024-01-10"), Score: 4},
		{LogID: 2, DefinitionID: 2, Date: day(t, "2024-02-20"), Score: 6},
		{LogID: 3, DefinitionID: 1, Date: day(t, "2024-01-12"), Score: 8},
	}}
	averages := &fakeAverageStore{}
	svc := newAggregation(scores, averages)

	_, err := svc.RecalculateAll(context.Background())
	require.NoError(t, err)
	firstWeekly := append([]models.WeeklyAverage(nil), averages.weekly...)
	firstMonthly := append([]models.MonthlyAverage(nil), averages.monthly...)

	_, err = svc.RecalculateAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, firstWeekly, averages.weekly)
	assert.Equal(t, firstMonthly, averages.monthly)
}

func TestWeeklyFiltersByDefinition(t *testing.T) {
	averages := &fakeAverageStore{weekly: []models.WeeklyAverage{
		{AverageID: 1, DefinitionID: 1, Year: 2026, WeekOfYear: 31, AverageScore: 6, DataPointsCount: 1},
		{AverageID: 2, DefinitionID: 2, Year: 2026, WeekOfYear: 31, AverageScore: 8, DataPointsCount: 1},
	}}
	svc := newAggregation(&fakeScoreSource{}, averages)

	rows, cacheHit, err := svc.Weekly(context.Background(), 2)
	require.NoError(t, err)
	assert.False(t, cacheHit)
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].DefinitionID)
}

func TestCachedReadsMatchRecomputation(t *testing.T) {
	scores := &fakeScoreSource{scores: []models.DailyScore{
		{LogID: 1, DefinitionID: 1, Date: day(t, "2026-08-03"), Score: 6},
		{LogID: 2, DefinitionID: 1, Date: day(t, "2026-08-04"), Score: 8},
	}}
	averages := &fakeAverageStore{}
	cache := NewCacheService(repository.NewCacheRepository(zap.NewNop()), nil, time.Minute, zap.NewNop(), true)
	svc := NewAggregationService(scores, averages, cache, nil, zap.NewNop())
	ctx := context.Background()

	_, err := svc.RecalculateAll(ctx)
	require.NoError(t, err)

	cold, coldHit, err := svc.Weekly(ctx, 0)
	require.NoError(t, err)
	assert.False(t, coldHit)
	warm, warmHit, err := svc.Weekly(ctx, 0)
	require.NoError(t, err)
	assert.True(t, warmHit)
	assert.Equal(t, cold, warm)

	// New data plus recalculation invalidates the cached copy.
	scores.scores = append(scores.scores, models.DailyScore{LogID: 3, DefinitionID: 1, Date: day(t, "2026-08-10"), Score: 10})
	_, err = svc.RecalculateAll(ctx)
	require.NoError(t, err)

	refreshed, refreshedHit, err := svc.Weekly(ctx, 0)
	require.NoError(t, err)
	assert.False(t, refreshedHit)
	assert.Len(t, refreshed, 2)
	assert.NotEqual(t, warm, refreshed)
}

func TestSeriesLabels(t *testing.T) {
	averages := &fakeAverageStore{
		weekly: []models.WeeklyAverage{
			{AverageID: 1, DefinitionID: 1, Year: 2026, WeekOfYear: 3, AverageScore: 6, DataPointsCount: 2},
		},
		monthly: []models.MonthlyAverage{
			{AverageID: 1, DefinitionID: 1, Year: 2024, Month: 1, AverageScore: 5, DataPointsCount: 2},
		},
		semiAnnual: []models.SemiAnnualAverage{
			{AverageID: 1, DefinitionID: 1, Year: 2024, Half: 2, AverageScore: 7, DataPointsCount: 4},
		},
	}
	svc := newAggregation(&fakeScoreSource{}, averages)
	ctx := context.Background()

	weekly, _, err := svc.Series(ctx, models.PeriodWeekly, 1)
	require.NoError(t, err)
	require.Len(t, weekly.Points, 1)
	assert.Equal(t, "2026-W03", weekly.Points[0].PeriodLabel)

	monthly, _, err := svc.Series(ctx, models.PeriodMonthly, 1)
	require.NoError(t, err)
	require.Len(t, monthly.Points, 1)
	assert.Equal(t, "2024-Jan", monthly.Points[0].PeriodLabel)

	semi, _, err := svc.Series(ctx, models.PeriodSemiAnnual, 1)
	require.NoError(t, err)
	require.Len(t, semi.Points, 1)
	assert.Equal(t, "2024-H2", semi.Points[0].PeriodLabel)
}

func TestSeriesRejectsBadInput(t *testing.T) {
	svc := newAggregation(&fakeScoreSource{}, &fakeAverageStore{})
	ctx := context.Background()

	_, _, err := svc.Series(ctx, "yearly", 1)
	require.Error(t, err)

	_, _, err = svc.Series(ctx, models.PeriodWeekly, 0)
	require.Error(t, err)
}
