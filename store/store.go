package store

import (
	"context"
	"errors"
	"time"

	"shredle/models"
)

var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("store: not found")
	// ErrConflict is returned when a write violates a uniqueness constraint,
	// e.g. two racing creates for the same daily-game date.
	ErrConflict = errors.New("store: conflict")
)

// Store is the persistence boundary for solos and daily games. It is the
// sole owner of durable state; the API process keeps none of its own.
type Store interface {
	GetSolos(ctx context.Context) ([]models.Solo, error)
	GetSoloByID(ctx context.Context, id int) (*models.Solo, error)
	CreateSolo(ctx context.Context, solo *models.Solo) (*models.Solo, error)
	UpdateSolo(ctx context.Context, solo *models.Solo) error
	DeleteSolo(ctx context.Context, id int) error

	GetDailyGames(ctx context.Context) ([]models.DailyGame, error)
	GetDailyGameByDate(ctx context.Context, date time.Time) (*models.DailyGame, error)
	GetRecentDailyGames(ctx context.Context, days int) ([]models.DailyGame, error)
	CreateDailyGame(ctx context.Context, game *models.DailyGame) (*models.DailyGame, error)
	UpdateDailyGame(ctx context.Context, game *models.DailyGame) error
	DeleteDailyGame(ctx context.Context, id int) error
}
