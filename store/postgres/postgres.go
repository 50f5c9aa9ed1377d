// Package postgres implements the solo store directly against Postgres via
// gorm, for deployments that skip the Supabase REST layer.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shredle/metrics"
	"shredle/models"
	"shredle/store"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is a gorm-backed implementation of store.Store.
type Store struct {
	db *gorm.DB
}

// New connects, migrates the schema, and returns the store. The unique index
// on daily_games.date is what makes racing first-of-day creates safe.
func New(host, port, user, password, dbname string) (*Store, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s dbname=%s password=%s sslmode=disable TimeZone=UTC",
		host, port, user, dbname, password)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := db.AutoMigrate(&models.Solo{}, &models.DailyGame{}); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) GetSolos(ctx context.Context) ([]models.Solo, error) {
	defer metrics.RecordStoreOperation("select", "solos", time.Now())

	var solos []models.Solo
	if err := s.db.WithContext(ctx).Find(&solos).Error; err != nil {
		return nil, err
	}
	return solos, nil
}

func (s *Store) GetSoloByID(ctx context.Context, id int) (*models.Solo, error) {
	defer metrics.RecordStoreOperation("select", "solos", time.Now())

	var solo models.Solo
	if err := s.db.WithContext(ctx).First(&solo, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &solo, nil
}

func (s *Store) CreateSolo(ctx context.Context, solo *models.Solo) (*models.Solo, error) {
	defer metrics.RecordStoreOperation("insert", "solos", time.Now())

	if err := s.db.WithContext(ctx).Create(solo).Error; err != nil {
		return nil, err
	}
	return solo, nil
}

func (s *Store) UpdateSolo(ctx context.Context, solo *models.Solo) error {
	defer metrics.RecordStoreOperation("update", "solos", time.Now())

	res := s.db.WithContext(ctx).Model(&models.Solo{}).Where("id = ?", solo.ID).Updates(map[string]interface{}{
		"title":         solo.Title,
		"artist":        solo.Artist,
		"guitarist":     solo.Guitarist,
		"spotify_id":    solo.SpotifyID,
		"solo_start_ms": solo.SoloStartMs,
		"solo_end_ms":   solo.SoloEndMs,
		"hint":          solo.Hint,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteSolo(ctx context.Context, id int) error {
	defer metrics.RecordStoreOperation("delete", "solos", time.Now())

	res := s.db.WithContext(ctx).Delete(&models.Solo{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) GetDailyGames(ctx context.Context) ([]models.DailyGame, error) {
	defer metrics.RecordStoreOperation("select", "daily_games", time.Now())

	var games []models.DailyGame
	if err := s.db.WithContext(ctx).Order("date desc").Find(&games).Error; err != nil {
		return nil, err
	}
	return games, nil
}

func (s *Store) GetDailyGameByDate(ctx context.Context, date time.Time) (*models.DailyGame, error) {
	defer metrics.RecordStoreOperation("select", "daily_games", time.Now())

	var game models.DailyGame
	if err := s.db.WithContext(ctx).First(&game, "date = ?", date.Format("2006-01-02")).Error; err != nil {
		return nil, notFound(err)
	}
	return &game, nil
}

func (s *Store) GetRecentDailyGames(ctx context.Context, days int) ([]models.DailyGame, error) {
	defer metrics.RecordStoreOperation("select", "daily_games", time.Now())

	cutoff := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -days)
	var games []models.DailyGame
	if err := s.db.WithContext(ctx).
		Where("date >= ?", cutoff.Format("2006-01-02")).
		Order("date desc").
		Find(&games).Error; err != nil {
		return nil, err
	}
	return games, nil
}

func (s *Store) CreateDailyGame(ctx context.Context, game *models.DailyGame) (*models.DailyGame, error) {
	defer metrics.RecordStoreOperation("insert", "daily_games", time.Now())

	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "date"}}, DoNothing: true}).
		Create(game)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Someone else created today's row first
		return nil, store.ErrConflict
	}
	return game, nil
}

func (s *Store) UpdateDailyGame(ctx context.Context, game *models.DailyGame) error {
	defer metrics.RecordStoreOperation("update", "daily_games", time.Now())

	res := s.db.WithContext(ctx).Model(&models.DailyGame{}).Where("id = ?", game.ID).
		Update("solo_id", game.SoloID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteDailyGame(ctx context.Context, id int) error {
	defer metrics.RecordStoreOperation("delete", "daily_games", time.Now())

	res := s.db.WithContext(ctx).Delete(&models.DailyGame{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store.ErrNotFound
	}
	return err
}
