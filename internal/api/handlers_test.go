package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeonsu/vocaflash/internal/api"
	"github.com/yeonsu/vocaflash/internal/repository/sqlite"
	"github.com/yeonsu/vocaflash/internal/services"
	"github.com/yeonsu/vocaflash/internal/testutil"
	"github.com/yeonsu/vocaflash/internal/worker"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	database := testutil.NewTestDB(t)
	wordRepo := sqlite.NewWordRepository(database.DB)
	lessonRepo := sqlite.NewLessonRepository(database.DB)
	sessionRepo := sqlite.NewSessionRepository(database.DB)
	settingsRepo := sqlite.NewSettingsRepository(database.DB)

	pool := worker.NewPool(1, 4)
	wordSvc := services.NewWordService(wordRepo)

	srv := &api.Server{
		Lessons: services.NewLessonService(lessonRepo),
		Words:   wordSvc,
		Practice: services.NewPracticeService(
			sessionRepo, wordRepo, settingsRepo, wordSvc,
			rand.New(rand.NewSource(42)), time.Now,
		),
		Settings: services.NewSettingsService(settingsRepo),
		Stats:    services.NewStatsService(wordRepo, lessonRepo, sessionRepo),
		Imports:  services.NewImportService(lessonRepo, wordRepo, pool),
	}

	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, ts.URL+"/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestLessonAndWordLifecycle(t *testing.T) {
	ts := newTestServer(t)

	resp, lesson := doJSON(t, http.MethodPost, ts.URL+"/lessons", map[string]any{"name": "Food"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	lessonID := int64(lesson["id"].(float64))

	resp, word := doJSON(t, http.MethodPost, fmt.Sprintf("%s/lessons/%d/words", ts.URL, lessonID), map[string]any{
		"term": "사과", "translation": "apple",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "사과", word["term"])
	wordID := int64(word["id"].(float64))

	resp, listing := doJSON(t, http.MethodGet, fmt.Sprintf("%s/lessons/%d/words", ts.URL, lessonID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, listing["words"], 1)

	// A fresh word is due immediately.
	resp, due := doJSON(t, http.MethodGet, ts.URL+"/words/due", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, due["words"], 1)

	resp, _ = doJSON(t, http.MethodPost, fmt.Sprintf("%s/words/%d/update", ts.URL, wordID), map[string]any{
		"term": "사과", "translation": "apple (fruit)",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, fmt.Sprintf("%s/words/%d/delete", ts.URL, wordID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, errBody := doJSON(t, http.MethodPost, fmt.Sprintf("%s/words/%d/delete", ts.URL, wordID), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	errObj := errBody["error"].(map[string]any)
	assert.Equal(t, "NOT_FOUND", errObj["code"])
}

func TestPracticeFlowOverHTTP(t *testing.T) {
	ts := newTestServer(t)

	_, lesson := doJSON(t, http.MethodPost, ts.URL+"/lessons", map[string]any{"name": "Basics"})
	lessonID := int64(lesson["id"].(float64))

	for term, translation := range map[string]string{"사과": "apple", "우유": "milk", "학교": "school", "친구": "friend"} {
		resp, _ := doJSON(t, http.MethodPost, fmt.Sprintf("%s/lessons/%d/words", ts.URL, lessonID), map[string]any{
			"term": term, "translation": translation,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, session := doJSON(t, http.MethodPost, ts.URL+"/practice/start", map[string]any{
		"lesson_id": lessonID, "shape": "choice", "count": 2,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	publicID := session["id"].(string)
	assert.Equal(t, "in-progress", session["status"])
	assert.EqualValues(t, 2, session["total_rounds"])

	round := session["round"].(map[string]any)
	options := round["options"].([]any)
	require.NotEmpty(t, options)
	// The round view never exposes the expected answer.
	_, leaked := round["expected"]
	assert.False(t, leaked)

	// Answer both rounds with the first option; correctness is not the point,
	// lifecycle is.
	var final map[string]any
	for i := 0; i < 2; i++ {
		resp, state := doJSON(t, http.MethodGet, ts.URL+"/practice/"+publicID, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		opts := state["round"].(map[string]any)["options"].([]any)

		resp, final = doJSON(t, http.MethodPost, ts.URL+"/practice/"+publicID+"/answer", map[string]any{
			"text": opts[0].(string), "elapsed_ms": 2000,
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	require.Equal(t, true, final["completed"])
	require.Contains(t, final, "stats")

	// Completed sessions are gone from the live registry.
	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/practice/"+publicID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// The completed run shows up in the aggregates.
	resp, stats := doJSON(t, http.MethodGet, ts.URL+"/stats", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, stats["total_sessions"])
}

func TestPracticeStartEmptyLessonOverHTTP(t *testing.T) {
	ts := newTestServer(t)

	_, lesson := doJSON(t, http.MethodPost, ts.URL+"/lessons", map[string]any{"name": "Empty"})
	lessonID := int64(lesson["id"].(float64))

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/practice/start", map[string]any{
		"lesson_id": lessonID, "shape": "choice",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	errObj := body["error"].(map[string]any)
	assert.Equal(t, "EMPTY_POOL", errObj["code"])
}

func TestSettingsRoundTrip(t *testing.T) {
	ts := newTestServer(t)

	resp, settings := doJSON(t, http.MethodGet, ts.URL+"/settings", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 10, settings["questions_per_session"])

	resp, updated := doJSON(t, http.MethodPost, ts.URL+"/settings", map[string]any{
		"questions_per_session": 20,
		"time_limit_seconds":    30,
		"direction":             "translation-to-term",
		"fuzzy_match_enabled":   false,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 20, updated["questions_per_session"])
	assert.Equal(t, "translation-to-term", updated["direction"])
	assert.Equal(t, false, updated["fuzzy_match_enabled"])

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/settings", map[string]any{
		"questions_per_session": 0,
		"direction":             "term-to-translation",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errObj := body["error"].(map[string]any)
	assert.Equal(t, "VALIDATION_ERROR", errObj["code"])
}

func TestImportQueuedOverHTTP(t *testing.T) {
	ts := newTestServer(t)

	_, lesson := doJSON(t, http.MethodPost, ts.URL+"/lessons", map[string]any{"name": "Imported"})
	lessonID := int64(lesson["id"].(float64))

	resp, body := doJSON(t, http.MethodPost, fmt.Sprintf("%s/lessons/%d/import", ts.URL, lessonID), map[string]any{
		"words": []map[string]string{
			{"term": "사과", "translation": "apple"},
			{"term": "우유", "translation": "milk"},
		},
	})
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.EqualValues(t, 2, body["queued"])
}
