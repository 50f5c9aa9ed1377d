package game

import (
	"context"
	"testing"
	"time"

	"shredle/models"
	"shredle/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory store.Store for policy tests.
type fakeStore struct {
	solos      []models.Solo
	games      []models.DailyGame
	nextGameID int
	// winnerOnConflict simulates a racing replica: the next create loses,
	// and this row appears as the winner's.
	winnerOnConflict *models.DailyGame
	createCalls      int
}

func newFakeStore(solos []models.Solo, games []models.DailyGame) *fakeStore {
	return &fakeStore{solos: solos, games: games, nextGameID: 1000}
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

func (f *fakeStore) UpdateSolo(ctx context.Context, solo *models.Solo) error {
	for i := range f.solos {
		if f.solos[i].ID == solo.ID {
			f.solos[i] = *solo
			return nil
		}
	}
	return store.ErrNotFound
}

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

func (f *fakeStore) CreateDailyGame(ctx context.Context, game *models.DailyGame) (*models.DailyGame, error) {
	f.createCalls++
	if f.winnerOnConflict != nil {
		f.games = append(f.games, *f.winnerOnConflict)
		f.winnerOnConflict = nil
		return nil, store.ErrConflict
	}
	for _, g := range f.games {
		if g.Date.Equal(game.Date) {
			return nil, store.ErrConflict
		}
	}
	game.ID = f.nextGameID
	f.nextGameID++
	f.games = append(f.games, *game)
	return game, nil
}

func (f *fakeStore) UpdateDailyGame(ctx context.Context, game *models.DailyGame) error {
	for i := range f.games {
		if f.games[i].ID == game.ID {
			f.games[i] = *game
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeStore) DeleteDailyGame(ctx context.Context, id int) error { return nil }

func fixedDate() time.Time {
	return time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
}

func newTestPolicy(s store.Store) *DailyPolicy {
	p := NewDailyPolicy(s)
	p.now = func() time.Time { return time.Date(2025, 6, 15, 13, 37, 0, 0, time.UTC) }
	return p
}

func makeSolos(n int) []models.Solo {
	solos := make([]models.Solo, n)
	for i := range solos {
		solos[i] = models.Solo{ID: i + 1, Title: "Song", Artist: "Band", SpotifyID: "x", SoloEndMs: 60000}
	}
	return solos
}

func TestEnsureTodaysGameReturnsExisting(t *testing.T) {
	fs := newFakeStore(makeSolos(3), []models.DailyGame{{ID: 1, Date: fixedDate(), SoloID: 2}})
	policy := newTestPolicy(fs)

	game, solo, err := policy.EnsureTodaysGame(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, game.SoloID)
	assert.Equal(t, 2, solo.ID)
	assert.Equal(t, 0, fs.createCalls)
}

func TestEnsureTodaysGameCreatesWhenMissing(t *testing.T) {
	fs := newFakeStore(makeSolos(3), nil)
	policy := newTestPolicy(fs)

	game, solo, err := policy.EnsureTodaysGame(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fixedDate(), game.Date)
	assert.Equal(t, game.SoloID, solo.ID)
	require.Len(t, fs.games, 1)
}

func TestEnsureTodaysGameIsStableAcrossCalls(t *testing.T) {
	fs := newFakeStore(makeSolos(5), nil)
	policy := newTestPolicy(fs)

	first, _, err := policy.EnsureTodaysGame(context.Background())
	require.NoError(t, err)
	second, _, err := policy.EnsureTodaysGame(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.SoloID, second.SoloID)
	assert.Equal(t, 1, fs.createCalls)
}

func TestEnsureTodaysGameNoSolos(t *testing.T) {
	policy := newTestPolicy(newFakeStore(nil, nil))

	_, _, err := policy.EnsureTodaysGame(context.Background())
	assert.ErrorIs(t, err, ErrNoSolos)
}

func TestEnsureTodaysGameAvoidsRecentSolos(t *testing.T) {
	// 35 solos, 30 of them used recently: the pool is exactly the other 5.
	solos := makeSolos(35)
	var recent []models.DailyGame
	for i := 0; i < 30; i++ {
		recent = append(recent, models.DailyGame{
			ID:     i + 1,
			Date:   fixedDate().AddDate(0, 0, -(i + 1)),
			SoloID: i + 1,
		})
	}
	allowed := map[int]bool{31: true, 32: true, 33: true, 34: true, 35: true}

	// Every candidate index must land on an unused solo.
	for pick := 0; pick < 5; pick++ {
		fs := newFakeStore(solos, append([]models.DailyGame(nil), recent...))
		policy := newTestPolicy(fs)
		policy.pick = func(n int) int {
			require.Equal(t, 5, n, "candidate pool size")
			return pick
		}

		game, _, err := policy.EnsureTodaysGame(context.Background())
		require.NoError(t, err)
		assert.True(t, allowed[game.SoloID], "selected solo %d was used recently", game.SoloID)
	}
}

func TestEnsureTodaysGameFallsBackWhenAllRecent(t *testing.T) {
	solos := makeSolos(2)
	recent := []models.DailyGame{
		{ID: 1, Date: fixedDate().AddDate(0, 0, -1), SoloID: 1},
		{ID: 2, Date: fixedDate().AddDate(0, 0, -2), SoloID: 2},
	}
	fs := newFakeStore(solos, recent)
	policy := newTestPolicy(fs)
	policy.pick = func(n int) int {
		// Repeats are better than failure: the pool reopens to everything
		require.Equal(t, 2, n)
		return 0
	}

	game, _, err := policy.EnsureTodaysGame(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, game.SoloID)
}

func TestEnsureTodaysGameAdoptsRaceWinner(t *testing.T) {
	fs := newFakeStore(makeSolos(3), nil)
	policy := newTestPolicy(fs)

	// Simulate another replica winning the create race: the conflicting
	// create happens after our candidate fetch.
	fs.winnerOnConflict = &models.DailyGame{ID: 99, Date: fixedDate(), SoloID: 3}

	game, solo, err := policy.EnsureTodaysGame(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 99, game.ID)
	assert.Equal(t, 3, solo.ID)
}

func TestEnsureTodaysGameDanglingSoloIsNotFound(t *testing.T) {
	fs := newFakeStore(makeSolos(1), []models.DailyGame{{ID: 1, Date: fixedDate(), SoloID: 42}})
	policy := newTestPolicy(fs)

	_, _, err := policy.EnsureTodaysGame(context.Background())
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSetTodayUpdatesExistingAssignment(t *testing.T) {
	fs := newFakeStore(makeSolos(3), []models.DailyGame{{ID: 1, Date: fixedDate(), SoloID: 1}})
	policy := newTestPolicy(fs)

	game, solo, err := policy.SetToday(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 1, game.ID)
	assert.Equal(t, 3, game.SoloID)
	assert.Equal(t, 3, solo.ID)
	assert.Equal(t, 3, fs.games[0].SoloID)
}

func TestSetTodayUnknownSolo(t *testing.T) {
	policy := newTestPolicy(newFakeStore(makeSolos(2), nil))

	_, _, err := policy.SetToday(context.Background(), 42)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRotateTodayCreatesWhenMissing(t *testing.T) {
	fs := newFakeStore(makeSolos(4), nil)
	policy := newTestPolicy(fs)
	policy.pick = func(n int) int { return n - 1 }

	game, solo, err := policy.RotateToday(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, game.SoloID)
	assert.Equal(t, 4, solo.ID)
	require.Len(t, fs.games, 1)
}
