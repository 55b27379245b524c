package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-recommender/internal/catalog"
	"github.com/jonathan/job-recommender/internal/embedding"
	"github.com/jonathan/job-recommender/internal/recommend"
	"github.com/jonathan/job-recommender/internal/skills"
	"github.com/jonathan/job-recommender/internal/store"
)

func testCatalog() catalog.Catalog {
	return catalog.Catalog{
		Jobs: []catalog.Job{
			{JobID: "data-1", Title: "Data Scientist", Description: "python and sql models", CleanSkills: "python;sql"},
			{JobID: "web-1", Title: "Frontend Engineer", Description: "javascript interfaces", CleanSkills: "javascript;css"},
		},
		Resumes: []catalog.Resume{
			{ResumeID: "r1", Summary: "python data engineer", CleanSkills: "python;sql"},
		},
	}
}

func newTestServer(t *testing.T) (*Server, *store.SQLite) {
	t.Helper()
	db, err := store.OpenSQLite(filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	eng := recommend.New(recommend.Config{
		Source:         catalog.Static{Catalog: testCatalog()},
		Cache:          embedding.NewCache(db, embedding.NewHashingEmbedder(64), nil),
		Profiles:       db,
		DefaultPersona: "fresh graduate",
	})
	require.NoError(t, eng.Rebuild(context.Background()))

	return New(Config{Engine: eng, Profiles: db, Extractor: skills.Extractor{}}), db
}

func doRequest(t *testing.T, s *Server, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doRequest(t, s, http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "ok", body["status"])
	assert.EqualValues(t, 2, body["jobs"])
	assert.EqualValues(t, 1, body["resumes"])
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestJobSchema(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doRequest(t, s, http.MethodGet, "/schema/jobs", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Job catalog record", body["title"])
}

func TestReload(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doRequest(t, s, http.MethodPost, "/ingest/reload", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, true, body["reloaded"])
	assert.EqualValues(t, 2, body["jobs"])
}

func TestCandidates(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doRequest(t, s, http.MethodGet, "/candidates?limit=10", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.EqualValues(t, 1, body["count"])
}

func TestAnalyzeProfile_ThenRecommendAndGaps(t *testing.T) {
	s, _ := newTestServer(t)

	payload, _ := json.Marshal(analyzeRequest{
		Text:    "Python developer with strong sql skills",
		Persona: "fresh graduate",
	})
	rec := doRequest(t, s, http.MethodPost, "/profile/analyze", payload)
	require.Equal(t, http.StatusOK, rec.Code)

	var analyzed analyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &analyzed))
	assert.Len(t, analyzed.ProfileID, 64)
	assert.Contains(t, analyzed.Skills, "python")
	assert.Contains(t, analyzed.Skills, "sql")

	rec = doRequest(t, s, http.MethodGet, "/recommend/by_profile?profile_id="+analyzed.ProfileID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.EqualValues(t, 2, body["count"])
	results := body["results"].([]any)
	first := results[0].(map[string]any)
	assert.Equal(t, "data-1", first["job_id"])

	rec = doRequest(t, s, http.MethodGet, "/gaps?profile_id="+analyzed.ProfileID+"&job_id=data-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	gapsBody := decode(t, rec)
	assert.Contains(t, gapsBody, "present")
	assert.Contains(t, gapsBody, "roadmap_3mo")
}

func TestAnalyzeProfile_MissingText(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doRequest(t, s, http.MethodPost, "/profile/analyze", []byte(`{"persona":"fresh"}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeProfile_HTMLInput(t *testing.T) {
	s, _ := newTestServer(t)
	payload, _ := json.Marshal(analyzeRequest{
		Text:        "<html><body><p>Python developer</p><script>x()</script></body></html>",
		ContentType: "text/html",
	})
	rec := doRequest(t, s, http.MethodPost, "/profile/analyze", payload)
	require.Equal(t, http.StatusOK, rec.Code)

	var analyzed analyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &analyzed))
	assert.Contains(t, analyzed.Skills, "python")
	assert.NotContains(t, analyzed.Summary, "script")
}

func TestRecommendByProfile_MissingParam(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doRequest(t, s, http.MethodGet, "/recommend/by_profile", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecommendByProfile_UnknownIDReturnsEmpty(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doRequest(t, s, http.MethodGet, "/recommend/by_profile?profile_id=missing", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.EqualValues(t, 0, body["count"])
}

func TestRecommendByResume(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doRequest(t, s, http.MethodGet, "/recommend/by_resume_id?resume_id=r1&mode=baseline&k=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "baseline", body["mode"])
	assert.EqualValues(t, 1, body["count"])
}

func TestGaps_ParameterValidation(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/gaps?profile_id=p&resume_id=r&job_id=data-1", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, s, http.MethodGet, "/gaps?profile_id=p", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, s, http.MethodGet, "/gaps?resume_id=r1&job_id=zzz", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGaps_ByResume(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doRequest(t, s, http.MethodGet, "/gaps?resume_id=r1&job_id=web-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	missing := body["missing"].([]any)
	assert.Contains(t, missing, "javascript")
}

func TestEvalOffline(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doRequest(t, s, http.MethodGet, "/eval/offline?mode=hybrid&k=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.EqualValues(t, 1, body["resumes"])
	assert.EqualValues(t, 2, body["k"])
}

func TestUnknownRouteAndMethod(t *testing.T) {
	s, _ := newTestServer(t)
	assert.Equal(t, http.StatusNotFound, doRequest(t, s, http.MethodGet, "/nope", nil).Code)
	assert.Equal(t, http.StatusMethodNotAllowed, doRequest(t, s, http.MethodDelete, "/health", nil).Code)
}
