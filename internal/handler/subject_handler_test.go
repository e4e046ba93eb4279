package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/beehayv/beehayv-api/internal/repository"
	"github.com/beehayv/beehayv-api/internal/service"
	"github.com/beehayv/beehayv-api/pkg/response"
)

type testEnv struct {
	store       *repository.Store
	subjects    *SubjectHandler
	definitions *DefinitionHandler
	scores      *ScoreHandler
	averages    *AverageHandler
	tables      *TableHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := repository.Open(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	cache := service.NewCacheService(nil, nil, 0, zap.NewNop(), false)
	subjectRepo := repository.NewSubjectRepository(store)
	definitionRepo := repository.NewDefinitionRepository(store)
	scoreRepo := repository.NewScoreRepository(store)
	averageRepo := repository.NewAverageRepository(store)
	tableRepo := repository.NewTableRepository(store)

	return &testEnv{
		store:       store,
		subjects:    NewSubjectHandler(service.NewSubjectService(subjectRepo, cache, nil, zap.NewNop())),
		definitions: NewDefinitionHandler(service.NewDefinitionService(definitionRepo, cache, nil, zap.NewNop())),
		scores:      NewScoreHandler(service.NewScoreService(scoreRepo, cache, nil, zap.NewNop())),
		averages:    NewAverageHandler(service.NewAggregationService(scoreRepo, averageRepo, cache, nil, zap.NewNop())),
		tables:      NewTableHandler(service.NewTableService(tableRepo, zap.NewNop())),
	}
}

func performJSON(t *testing.T, handle gin.HandlerFunc, method, target string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		encoded, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(encoded)
	} else {
		body = bytes.NewBuffer(nil)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(method, target, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	handle(c)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}

func TestSubjectCreateReturnsCreated(t *testing.T) {
	env := newTestEnv(t)

	w := performJSON(t, env.subjects.Create, http.MethodPost, "/subjects", map[string]string{"label": "Rex"})
	require.Equal(t, http.StatusCreated, w.Code)

	envelope := decodeEnvelope(t, w)
	data, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), data["subject_id"])
	assert.Equal(t, "Rex", data["subject_label"])
}

func TestSubjectCreateDuplicateReturnsConflict(t *testing.T) {
	env := newTestEnv(t)

	w := performJSON(t, env.subjects.Create, http.MethodPost, "/subjects", map[string]string{"label": "Rex"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = performJSON(t, env.subjects.Create, http.MethodPost, "/subjects", map[string]string{"label": "rex"})
	require.Equal(t, http.StatusConflict, w.Code)

	envelope := decodeEnvelope(t, w)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "CONFLICT", envelope.Error.Code)
}

func TestSubjectCreateInvalidBody(t *testing.T) {
	env := newTestEnv(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/subjects", bytes.NewBufferString(`{"label":`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	env.subjects.Create(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubjectGetNotFound(t *testing.T) {
	env := newTestEnv(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/subjects/7", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "7"}}

	env.subjects.Get(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubjectList(t *testing.T) {
	env := newTestEnv(t)

	w := performJSON(t, env.subjects.Create, http.MethodPost, "/subjects", map[string]string{"label": "Rex"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = performJSON(t, env.subjects.List, http.MethodGet, "/subjects", nil)
	require.Equal(t, http.StatusOK, w.Code)

	envelope := decodeEnvelope(t, w)
	data, ok := envelope.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, data, 1)
}
