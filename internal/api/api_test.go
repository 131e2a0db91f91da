package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/adaptlearn/internal/catalog"
	"github.com/abhisek/adaptlearn/internal/content"
	"github.com/abhisek/adaptlearn/internal/progress"
	"github.com/abhisek/adaptlearn/internal/recommend"
	"github.com/abhisek/adaptlearn/internal/store"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cat, err := catalog.Default()
	require.NoError(t, err)
	gen, err := content.Default(content.Options{})
	require.NoError(t, err)
	repo := store.NewCSVProgressRepo(filepath.Join(t.TempDir(), "progress.csv"), store.DefaultCatalogSize)
	prog := progress.NewService(repo, nil)
	rec := recommend.NewService(cat, gen, prog, nil)

	return NewRouter(NewHandler(nil, rec, gen, prog), nil)
}

func do(t *testing.T, r http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func TestHealthz(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestRequestIDPropagated(t *testing.T) {
	r := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "8f14e45f-ceea-467f-a0e6-6fd5fd0e3b2a")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "8f14e45f-ceea-467f-a0e6-6fd5fd0e3b2a", w.Header().Get(RequestIDHeader))
}

func TestSubjects(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodGet, "/subjects", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got struct {
		Subjects []string `json:"subjects"`
	}
	decode(t, w, &got)
	assert.Equal(t, []string{"English", "Mathematics", "Science"}, got.Subjects)
}

func TestRecommend(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodGet, "/recommend?subject=mathematics&learning_speed=fast", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got recommend.Result
	decode(t, w, &got)
	assert.Equal(t, "Mathematics", got.Subject)
	assert.Equal(t, "fast", got.LearningSpeed)
	assert.Equal(t, "advanced", got.StudentLevel)
	assert.Len(t, got.RecommendedMaterials, 2)
	assert.Equal(t, "advanced", got.AdaptiveContent.ComplexityLevel)
}

func TestRecommendErrors(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/recommend", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodGet, "/recommend?subject=Alchemy", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	var env ErrorEnvelope
	decode(t, w, &env)
	assert.Equal(t, CodeSubjectNotFound, env.Error.Code)
	assert.Equal(t, []string{"English", "Mathematics", "Science"}, env.Error.Available)
	assert.NotEmpty(t, env.Error.RequestID)
}

func TestBatchRecommend(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/recommend/batch", map[string]any{
		"subjects":   []string{"Mathematics", "Science"},
		"learner_id": "S1",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var got struct {
		Recommendations map[string]recommend.Result `json:"recommendations"`
	}
	decode(t, w, &got)
	assert.Len(t, got.Recommendations, 2)
	assert.Equal(t, "medium", got.Recommendations["Science"].LearningSpeed)

	w = do(t, r, http.MethodPost, "/recommend/batch", map[string]any{"subjects": []string{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestContent(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodGet, "/content?subject=science&learning_speed=slow", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got content.Adaptive
	decode(t, w, &got)
	assert.Equal(t, "Science", got.Subject)
	assert.Equal(t, "basic", got.ComplexityLevel)
	assert.NotEmpty(t, got.Content)
}

func TestProgressRoundTrip(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/progress/S1/Mathematics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var before map[string]any
	decode(t, w, &before)
	assert.Equal(t, "medium", before["learning_speed"])

	w = do(t, r, http.MethodPost, "/progress/S1/Mathematics", map[string]any{
		"score":       92,
		"material_id": "https://example.com/algebra",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var updated store.ProgressRecord
	decode(t, w, &updated)
	assert.Equal(t, 92.0, updated.AverageScore)
	assert.InDelta(t, 0.1, updated.CompletionRate, 1e-9)
	assert.Equal(t, []string{"https://example.com/algebra"}, updated.CompletedMaterials)

	w = do(t, r, http.MethodGet, "/recommend?subject=Mathematics&learner_id=S1&learning_speed=medium", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var res recommend.Result
	decode(t, w, &res)
	require.Len(t, res.RecommendedMaterials, 1)
	assert.Equal(t, "Geometry Basics", res.RecommendedMaterials[0].Title)

	w = do(t, r, http.MethodGet, "/progress/S1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Progress []map[string]any `json:"progress"`
	}
	decode(t, w, &list)
	require.Len(t, list.Progress, 1)
	assert.Equal(t, "slow", list.Progress[0]["learning_speed"])
}

func TestUpdateProgressValidation(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/progress/S1/Mathematics", map[string]any{"material_id": "m"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/progress/S1/Mathematics", map[string]any{"score": 120})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddContentSubject(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/content/subjects", map[string]any{
		"name":         "botany",
		"basic":        "Photosynthesis uses chlorophyll.",
		"intermediate": "Plants grow.",
		"advanced":     "Green plants need sunlight.",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, r, http.MethodGet, "/content?subject=Botany&learning_speed=slow", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got content.Adaptive
	decode(t, w, &got)
	assert.Equal(t, "Plant food-making process uses green part.", got.Content)

	w = do(t, r, http.MethodPost, "/content/subjects", map[string]any{"name": "music"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
