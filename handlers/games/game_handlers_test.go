package games

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"shredle/game"
	"shredle/models"
	"shredle/realtime"
	"shredle/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory store.Store seeded per test.
type fakeStore struct {
	solos []models.Solo
	games []models.DailyGame
}

func (f *fakeStore) GetSolos(ctx context.Context) ([]models.Solo, error) {
	return f.solos, nil
}

func (f *fakeStore) GetSoloByID(ctx context.Context, id int) (*models.Solo, error) {
	for _, s := range f.solos {
		if s.ID == id {
			solo := s
			return &solo, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) CreateSolo(ctx context.Context, solo *models.Solo) (*models.Solo, error) {
	f.solos = append(f.solos, *solo)
	return solo, nil
}

func (f *fakeStore) UpdateSolo(ctx context.Context, solo *models.Solo) error { return nil }

func (f *fakeStore) DeleteSolo(ctx context.Context, id int) error { return nil }

func (f *fakeStore) GetDailyGames(ctx context.Context) ([]models.DailyGame, error) {
	return f.games, nil
}

func (f *fakeStore) GetDailyGameByDate(ctx context.Context, date time.Time) (*models.DailyGame, error) {
	for _, g := range f.games {
		if g.Date.Equal(date) {
			game := g
			return &game, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) GetRecentDailyGames(ctx context.Context, days int) ([]models.DailyGame, error) {
	return f.games, nil
}

func (f *fakeStore) CreateDailyGame(ctx context.Context, g *models.DailyGame) (*models.DailyGame, error) {
	g.ID = len(f.games) + 1
	f.games = append(f.games, *g)
	return g, nil
}

func (f *fakeStore) UpdateDailyGame(ctx context.Context, g *models.DailyGame) error { return nil }

func (f *fakeStore) DeleteDailyGame(ctx context.Context, id int) error { return nil }

func testSolo() models.Solo {
	return models.Solo{
		ID:          1,
		Title:       "Stairway to Heaven",
		Artist:      "Led Zeppelin",
		Guitarist:   "Jimmy Page",
		SpotifyID:   "5CQ30WqJwcep0pYcV4AMNc",
		SoloStartMs: 30000,
		SoloEndMs:   90000,
		Hint:        "Features one of rock's most celebrated solos.",
	}
}

// newTestRouter wires the gameplay routes against the fake store with the
// local (no-oracle) judge.
func newTestRouter(fs *fakeStore) *gin.Engine {
	gin.SetMode(gin.TestMode)

	policy := game.NewDailyPolicy(fs)
	judge := game.NewJudge(nil)
	h := NewHandler(policy, judge, realtime.NewHub())

	r := gin.New()
	v1 := r.Group("/api/v1")
	RegisterRoutes(v1, h)
	return r
}

func seededStore() *fakeStore {
	solo := testSolo()
	return &fakeStore{
		solos: []models.Solo{solo},
		games: []models.DailyGame{{
			ID:     1,
			Date:   time.Now().UTC().Truncate(24 * time.Hour),
			SoloID: solo.ID,
		}},
	}
}

func decodeReveal(t *testing.T, w *httptest.ResponseRecorder) game.RevealState {
	t.Helper()
	var state game.RevealState
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	return state
}

func TestGetDailyGameInitialState(t *testing.T) {
	r := newTestRouter(seededStore())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/game/daily", nil))

	require.Equal(t, http.StatusOK, w.Code)
	state := decodeReveal(t, w)
	assert.Equal(t, 30000, state.ClipStartMs)
	assert.Equal(t, 3000, state.ClipDurationMs)
	assert.Empty(t, state.Title)
	assert.Empty(t, state.Guitarist)
	assert.False(t, state.IsComplete)
	assert.Equal(t, game.MaxGuesses, state.AttemptsRemaining)
}

func TestGetDailyGameRevealsGuitaristAtTwoGuesses(t *testing.T) {
	r := newTestRouter(seededStore())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/game/daily?guessCount=2", nil))

	require.Equal(t, http.StatusOK, w.Code)
	state := decodeReveal(t, w)
	assert.True(t, state.RevealGuitarist)
	assert.Equal(t, "Jimmy Page", state.Guitarist)
	assert.Empty(t, state.Title)
	assert.Equal(t, 60000*66/100, state.ClipDurationMs)
}

func TestGetDailyGameCreatesGameOnFirstRequest(t *testing.T) {
	fs := &fakeStore{solos: []models.Solo{testSolo()}}
	r := newTestRouter(fs)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/game/daily", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, fs.games, 1)
}

func TestGetDailyGameNoSolos(t *testing.T) {
	r := newTestRouter(&fakeStore{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/game/daily", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), ErrNoGameToday)
}

func TestGetDailyGameRejectsMalformedCount(t *testing.T) {
	r := newTestRouter(seededStore())

	for _, raw := range []string{"abc", "-1", "1.5"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/game/daily?guessCount="+raw, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, "guessCount=%s", raw)
	}
}

func TestSubmitGuessCorrect(t *testing.T) {
	r := newTestRouter(seededStore())

	body := strings.NewReader(`{"songGuess": "stairway to heaven"}`)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/game/guess", body))

	require.Equal(t, http.StatusOK, w.Code)
	state := decodeReveal(t, w)
	assert.True(t, state.IsCorrect)
	assert.True(t, state.IsComplete)
	assert.Equal(t, "Stairway to Heaven", state.Title)
	assert.Equal(t, "Led Zeppelin", state.Artist)
	assert.Equal(t, 60000, state.ClipDurationMs)
	assert.Equal(t, 1, state.AttemptCount)
}

func TestSubmitGuessWrongOnLastAttempt(t *testing.T) {
	r := newTestRouter(seededStore())

	body := strings.NewReader(`{"songGuess": "Highway to Hell"}`)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/game/guess?previousGuessCount=3", body))

	require.Equal(t, http.StatusOK, w.Code)
	state := decodeReveal(t, w)
	assert.False(t, state.IsCorrect)
	assert.True(t, state.IsComplete)
	assert.Equal(t, "Stairway to Heaven", state.Title)
	assert.Equal(t, 0, state.AttemptsRemaining)
}

func TestSubmitGuessWrongMidGame(t *testing.T) {
	r := newTestRouter(seededStore())

	body := strings.NewReader(`{"songGuess": "Highway to Hell"}`)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/game/guess?previousGuessCount=1", body))

	require.Equal(t, http.StatusOK, w.Code)
	state := decodeReveal(t, w)
	assert.False(t, state.IsCorrect)
	assert.False(t, state.IsComplete)
	assert.Empty(t, state.Title)
	assert.True(t, state.RevealGuitarist)
	assert.Equal(t, 2, state.AttemptCount)
}

func TestSubmitGuessBlank(t *testing.T) {
	r := newTestRouter(seededStore())

	for _, body := range []string{`{}`, `{"songGuess": "   "}`, `not json`} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/game/guess", strings.NewReader(body)))
		assert.Equal(t, http.StatusBadRequest, w.Code, "body=%s", body)
	}
}
