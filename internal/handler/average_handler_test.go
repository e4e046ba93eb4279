package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/beehayv/beehayv-api/internal/repository"
	"github.com/beehayv/beehayv-api/internal/service"
)

func seedScores(t *testing.T, env *testEnv) int {
	t.Helper()

	w := performJSON(t, env.subjects.Create, http.MethodPost, "/subjects", map[string]string{"label": "Rex"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = performJSON(t, env.definitions.Create, http.MethodPost, "/definitions", map[string]interface{}{
		"subject_id": 1,
		"name":       "Recall",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	envelope := decodeEnvelope(t, w)
	data := envelope.Data.(map[string]interface{})
	definitionID := int(data["definition_id"].(float64))

	for _, entry := range []struct {
		date  string
		score int
	}{
		{"2024-01-10", 4},
		{"2024-01-20", 6},
		{"2024-02-05", 10},
	} {
		w = performJSON(t, env.scores.Log, http.MethodPost, "/scores", map[string]interface{}{
			"definition_id": definitionID,
			"date":          entry.date,
			"score":         entry.score,
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}
	return definitionID
}

func TestRecalculateAndReadMonthly(t *testing.T) {
	env := newTestEnv(t)
	seedScores(t, env)

	w := performJSON(t, env.averages.Recalculate, http.MethodPost, "/averages/recalculate", nil)
	require.Equal(t, http.StatusOK, w.Code)

	envelope := decodeEnvelope(t, w)
	result := envelope.Data.(map[string]interface{})
	assert.Equal(t, float64(3), result["scores_processed"])
	assert.Equal(t, float64(2), result["monthly_rows"])
	assert.Equal(t, false, result["skipped"])

	w = performJSON(t, env.averages.Monthly, http.MethodGet, "/averages/monthly", nil)
	require.Equal(t, http.StatusOK, w.Code)

	envelope = decodeEnvelope(t, w)
	rows := envelope.Data.([]interface{})
	require.Len(t, rows, 2)
	first := rows[0].(map[string]interface{})
	assert.Equal(t, float64(5), first["average_score"])
	assert.Equal(t, float64(2), first["data_points_count"])
}

func TestRecalculateEmptyLogSkips(t *testing.T) {
	env := newTestEnv(t)

	w := performJSON(t, env.averages.Recalculate, http.MethodPost, "/averages/recalculate", nil)
	require.Equal(t, http.StatusOK, w.Code)

	envelope := decodeEnvelope(t, w)
	result := envelope.Data.(map[string]interface{})
	assert.Equal(t, true, result["skipped"])
}

func TestAveragesStaleUntilRecalculated(t *testing.T) {
	env := newTestEnv(t)
	seedScores(t, env)

	// Scores are logged but no recalculation has run yet.
	w := performJSON(t, env.averages.Weekly, http.MethodGet, "/averages/weekly", nil)
	require.Equal(t, http.StatusOK, w.Code)
	envelope := decodeEnvelope(t, w)
	assert.Empty(t, envelope.Data)
}

func TestAverageReadsReportCacheMeta(t *testing.T) {
	env := newTestEnv(t)
	seedScores(t, env)

	// Same store, but with the read cache switched on.
	cache := service.NewCacheService(repository.NewCacheRepository(zap.NewNop()), nil, time.Minute, zap.NewNop(), true)
	scoreRepo := repository.NewScoreRepository(env.store)
	averageRepo := repository.NewAverageRepository(env.store)
	averages := NewAverageHandler(service.NewAggregationService(scoreRepo, averageRepo, cache, nil, zap.NewNop()))

	w := performJSON(t, averages.Recalculate, http.MethodPost, "/averages/recalculate", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = performJSON(t, averages.Monthly, http.MethodGet, "/averages/monthly", nil)
	require.Equal(t, http.StatusOK, w.Code)
	envelope := decodeEnvelope(t, w)
	require.NotNil(t, envelope.Meta)
	assert.Equal(t, false, envelope.Meta["cache_hit"])

	w = performJSON(t, averages.Monthly, http.MethodGet, "/averages/monthly", nil)
	require.Equal(t, http.StatusOK, w.Code)
	envelope = decodeEnvelope(t, w)
	require.NotNil(t, envelope.Meta)
	assert.Equal(t, true, envelope.Meta["cache_hit"])
}

func TestSeriesReturnsChronologicalPoints(t *testing.T) {
	env := newTestEnv(t)
	definitionID := seedScores(t, env)

	w := performJSON(t, env.averages.Recalculate, http.MethodPost, "/averages/recalculate", nil)
	require.Equal(t, http.StatusOK, w.Code)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	req, _ := http.NewRequest(http.MethodGet, "/averages/monthly/series?definition_id=1", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "period", Value: "monthly"}}

	env.averages.Series(c)
	require.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeEnvelope(t, rec)
	data := envelope.Data.(map[string]interface{})
	assert.Equal(t, float64(definitionID), data["definition_id"])
	points := data["points"].([]interface{})
	require.Len(t, points, 2)
	firstPoint := points[0].(map[string]interface{})
	assert.Equal(t, "2024-Jan", firstPoint["period_label"])
}

func TestSeriesRejectsUnknownPeriod(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	req, _ := http.NewRequest(http.MethodGet, "/averages/yearly/series?definition_id=1", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "period", Value: "yearly"}}

	env.averages.Series(c)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScoreLogRejectsOutOfRange(t *testing.T) {
	env := newTestEnv(t)
	seedScores(t, env)

	w := performJSON(t, env.scores.Log, http.MethodPost, "/scores", map[string]interface{}{
		"definition_id": 1,
		"date":          "2024-03-01",
		"score":         11,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	envelope := decodeEnvelope(t, w)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "SCORE_OUT_OF_RANGE", envelope.Error.Code)
}

func TestTableViewEndpoint(t *testing.T) {
	env := newTestEnv(t)
	seedScores(t, env)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	req, _ := http.NewRequest(http.MethodGet, "/tables/daily_scores", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "name", Value: "daily_scores"}}

	env.tables.View(c)
	require.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeEnvelope(t, rec)
	data := envelope.Data.(map[string]interface{})
	assert.Equal(t, "daily_scores", data["name"])
	rows := data["rows"].([]interface{})
	assert.Len(t, rows, 3)
}

func TestTableViewUnknownName(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	req, _ := http.NewRequest(http.MethodGet, "/tables/bogus", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "name", Value: "bogus"}}

	env.tables.View(c)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	envelope := decodeEnvelope(t, rec)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "UNKNOWN_TABLE", envelope.Error.Code)
}
