package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"shredle/metrics"
	"shredle/models"
	"shredle/store"
)

// RecentWindowDays is the trailing window within which a solo is not served
// again, unless every solo has been used inside it.
const RecentWindowDays = 30

// ErrNoSolos is returned when the store holds no solos at all, so no daily
// game can be assembled.
var ErrNoSolos = errors.New("no solos available")

// DailyPolicy guarantees that today's DailyGame exists before any state is
// rendered, selecting uniformly at random among solos not used recently.
type DailyPolicy struct {
	store store.Store
	now   func() time.Time
	pick  func(n int) int
}

func NewDailyPolicy(s store.Store) *DailyPolicy {
	return &DailyPolicy{
		store: s,
		now:   time.Now,
		pick:  rand.Intn,
	}
}

// Today returns the current UTC date truncated to day granularity.
func (p *DailyPolicy) Today() time.Time {
	return p.now().UTC().Truncate(24 * time.Hour)
}

// EnsureTodaysGame returns today's game and its solo, creating the
// assignment first if none exists. A racing create on a day boundary loses
// to the store's date uniqueness and adopts the winner's row.
func (p *DailyPolicy) EnsureTodaysGame(ctx context.Context) (*models.DailyGame, *models.Solo, error) {
	today := p.Today()

	game, err := p.store.GetDailyGameByDate(ctx, today)
	if err == nil {
		return p.resolve(ctx, game)
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, nil, err
	}

	selected, err := p.selectSolo(ctx)
	if err != nil {
		return nil, nil, err
	}

	created, err := p.store.CreateDailyGame(ctx, &models.DailyGame{Date: today, SoloID: selected.ID})
	if errors.Is(err, store.ErrConflict) {
		// Another replica assigned today's game first; serve its choice.
		game, err := p.store.GetDailyGameByDate(ctx, today)
		if err != nil {
			return nil, nil, err
		}
		return p.resolve(ctx, game)
	}
	if err != nil {
		return nil, nil, err
	}

	metrics.DailyGamesCreated.Inc()
	return created, selected, nil
}

// SetToday assigns the given solo as today's game, updating the existing
// assignment when one exists. The solo must exist.
func (p *DailyPolicy) SetToday(ctx context.Context, soloID int) (*models.DailyGame, *models.Solo, error) {
	solo, err := p.store.GetSoloByID(ctx, soloID)
	if err != nil {
		return nil, nil, err
	}
	game, err := p.assignToday(ctx, soloID)
	if err != nil {
		return nil, nil, err
	}
	return game, solo, nil
}

// RotateToday reruns the random selection for today, replacing any existing
// assignment.
func (p *DailyPolicy) RotateToday(ctx context.Context) (*models.DailyGame, *models.Solo, error) {
	selected, err := p.selectSolo(ctx)
	if err != nil {
		return nil, nil, err
	}
	game, err := p.assignToday(ctx, selected.ID)
	if err != nil {
		return nil, nil, err
	}
	return game, selected, nil
}

// selectSolo picks uniformly at random among solos not served within the
// recent window, falling back to the full catalog when everything is recent.
// Repeats are better than failure.
func (p *DailyPolicy) selectSolo(ctx context.Context) (*models.Solo, error) {
	solos, err := p.store.GetSolos(ctx)
	if err != nil {
		return nil, err
	}
	if len(solos) == 0 {
		return nil, ErrNoSolos
	}

	recent, err := p.store.GetRecentDailyGames(ctx, RecentWindowDays)
	if err != nil {
		return nil, err
	}
	excluded := make(map[int]bool, len(recent))
	for _, g := range recent {
		excluded[g.SoloID] = true
	}

	candidates := make([]models.Solo, 0, len(solos))
	for _, s := range solos {
		if !excluded[s.ID] {
			candidates = append(candidates, s)
		}
	}
	if len(candidates) == 0 {
		candidates = solos
	}

	selected := candidates[p.pick(len(candidates))]
	return &selected, nil
}

func (p *DailyPolicy) assignToday(ctx context.Context, soloID int) (*models.DailyGame, error) {
	today := p.Today()

	existing, err := p.store.GetDailyGameByDate(ctx, today)
	if err == nil {
		existing.SoloID = soloID
		if err := p.store.UpdateDailyGame(ctx, existing); err != nil {
			return nil, fmt.Errorf("update daily game: %w", err)
		}
		return existing, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	created, err := p.store.CreateDailyGame(ctx, &models.DailyGame{Date: today, SoloID: soloID})
	if errors.Is(err, store.ErrConflict) {
		// Lost a race with the lazy first-of-day creation; overwrite the row
		// it made, this is an explicit admin action.
		existing, err := p.store.GetDailyGameByDate(ctx, today)
		if err != nil {
			return nil, err
		}
		existing.SoloID = soloID
		if err := p.store.UpdateDailyGame(ctx, existing); err != nil {
			return nil, fmt.Errorf("update daily game: %w", err)
		}
		return existing, nil
	}
	if err != nil {
		return nil, err
	}

	metrics.DailyGamesCreated.Inc()
	return created, nil
}

// resolve fetches the solo a daily game points at. A dangling SoloID is a
// NotFound for the request, not a crash.
func (p *DailyPolicy) resolve(ctx context.Context, game *models.DailyGame) (*models.DailyGame, *models.Solo, error) {
	solo, err := p.store.GetSoloByID(ctx, game.SoloID)
	if err != nil {
		return nil, nil, err
	}
	return game, solo, nil
}
