// Package supabase implements the solo store over the PostgREST row-filter
// protocol exposed by Supabase. Field names and the date wire format are
// fixed here once, as the single serialization contract with the schema.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"shredle/metrics"
	"shredle/models"
	"shredle/store"
)

const dateLayout = "2006-01-02"

// Client talks to the Supabase REST endpoint for the solos and daily_games
// tables.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: 15 * time.Second},
	}
}

// soloRow is the canonical column mapping for the solos table.
type soloRow struct {
	ID          int    `json:"id,omitempty"`
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	Guitarist   string `json:"guitarist"`
	SpotifyID   string `json:"spotify_id"`
	SoloStartMs int    `json:"solo_start_ms"`
	SoloEndMs   int    `json:"solo_end_ms"`
	Hint        string `json:"hint"`
}

// dailyGameRow is the canonical column mapping for the daily_games table.
// Dates cross the wire as YYYY-MM-DD.
type dailyGameRow struct {
	ID     int    `json:"id,omitempty"`
	Date   string `json:"date"`
	SoloID int    `json:"solo_id"`
}

func toSolo(r soloRow) models.Solo {
	return models.Solo{
		ID:          r.ID,
		Title:       r.Title,
		Artist:      r.Artist,
		Guitarist:   r.Guitarist,
		SpotifyID:   r.SpotifyID,
		SoloStartMs: r.SoloStartMs,
		SoloEndMs:   r.SoloEndMs,
		Hint:        r.Hint,
	}
}

func fromSolo(s *models.Solo) soloRow {
	return soloRow{
		ID:          s.ID,
		Title:       s.Title,
		Artist:      s.Artist,
		Guitarist:   s.Guitarist,
		SpotifyID:   s.SpotifyID,
		SoloStartMs: s.SoloStartMs,
		SoloEndMs:   s.SoloEndMs,
		Hint:        s.Hint,
	}
}

func toDailyGame(r dailyGameRow) (models.DailyGame, error) {
	date, err := parseDate(r.Date)
	if err != nil {
		return models.DailyGame{}, err
	}
	return models.DailyGame{ID: r.ID, Date: date, SoloID: r.SoloID}, nil
}

// parseDate accepts the bare date PostgREST sends for date columns and the
// timestamp form some schemas use.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02T15:04:05", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("supabase: bad date %q: %w", s, err)
	}
	return t.Truncate(24 * time.Hour), nil
}

func (c *Client) GetSolos(ctx context.Context) ([]models.Solo, error) {
	defer metrics.RecordStoreOperation("select", "solos", time.Now())

	var rows []soloRow
	if err := c.getJSON(ctx, "/rest/v1/solos?select=*", &rows); err != nil {
		return nil, err
	}
	solos := make([]models.Solo, len(rows))
	for i, r := range rows {
		solos[i] = toSolo(r)
	}
	return solos, nil
}

func (c *Client) GetSoloByID(ctx context.Context, id int) (*models.Solo, error) {
	defer metrics.RecordStoreOperation("select", "solos", time.Now())

	var rows []soloRow
	if err := c.getJSON(ctx, fmt.Sprintf("/rest/v1/solos?id=eq.%d", id), &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, store.ErrNotFound
	}
	solo := toSolo(rows[0])
	return &solo, nil
}

func (c *Client) CreateSolo(ctx context.Context, solo *models.Solo) (*models.Solo, error) {
	defer metrics.RecordStoreOperation("insert", "solos", time.Now())

	row := fromSolo(solo)
	row.ID = 0 // let the store assign it
	var created []soloRow
	if err := c.writeJSON(ctx, http.MethodPost, "/rest/v1/solos", row, &created); err != nil {
		return nil, err
	}
	if len(created) == 0 {
		return nil, fmt.Errorf("supabase: create solo returned no row")
	}
	out := toSolo(created[0])
	return &out, nil
}

func (c *Client) UpdateSolo(ctx context.Context, solo *models.Solo) error {
	defer metrics.RecordStoreOperation("update", "solos", time.Now())

	path := fmt.Sprintf("/rest/v1/solos?id=eq.%d", solo.ID)
	var updated []soloRow
	if err := c.writeJSON(ctx, http.MethodPatch, path, fromSolo(solo), &updated); err != nil {
		return err
	}
	if len(updated) == 0 {
		// The row filter matched nothing
		return store.ErrNotFound
	}
	return nil
}

func (c *Client) DeleteSolo(ctx context.Context, id int) error {
	defer metrics.RecordStoreOperation("delete", "solos", time.Now())

	var deleted []soloRow
	if err := c.writeJSON(ctx, http.MethodDelete, fmt.Sprintf("/rest/v1/solos?id=eq.%d", id), nil, &deleted); err != nil {
		return err
	}
	if len(deleted) == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (c *Client) GetDailyGames(ctx context.Context) ([]models.DailyGame, error) {
	defer metrics.RecordStoreOperation("select", "daily_games", time.Now())

	var rows []dailyGameRow
	if err := c.getJSON(ctx, "/rest/v1/daily_games?select=*&order=date.desc", &rows); err != nil {
		return nil, err
	}
	return convertDailyGames(rows)
}

func (c *Client) GetDailyGameByDate(ctx context.Context, date time.Time) (*models.DailyGame, error) {
	defer metrics.RecordStoreOperation("select", "daily_games", time.Now())

	path := "/rest/v1/daily_games?date=eq." + url.QueryEscape(date.Format(dateLayout))
	var rows []dailyGameRow
	if err := c.getJSON(ctx, path, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, store.ErrNotFound
	}
	game, err := toDailyGame(rows[0])
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (c *Client) GetRecentDailyGames(ctx context.Context, days int) ([]models.DailyGame, error) {
	defer metrics.RecordStoreOperation("select", "daily_games", time.Now())

	cutoff := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -days)
	path := fmt.Sprintf("/rest/v1/daily_games?date=gte.%s&order=date.desc", cutoff.Format(dateLayout))
	var rows []dailyGameRow
	if err := c.getJSON(ctx, path, &rows); err != nil {
		return nil, err
	}
	return convertDailyGames(rows)
}

func (c *Client) CreateDailyGame(ctx context.Context, game *models.DailyGame) (*models.DailyGame, error) {
	defer metrics.RecordStoreOperation("insert", "daily_games", time.Now())

	row := dailyGameRow{Date: game.Date.Format(dateLayout), SoloID: game.SoloID}
	var created []dailyGameRow
	if err := c.writeJSON(ctx, http.MethodPost, "/rest/v1/daily_games", row, &created); err != nil {
		return nil, err
	}
	if len(created) == 0 {
		return nil, fmt.Errorf("supabase: create daily game returned no row")
	}
	out, err := toDailyGame(created[0])
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateDailyGame(ctx context.Context, game *models.DailyGame) error {
	defer metrics.RecordStoreOperation("update", "daily_games", time.Now())

	row := dailyGameRow{Date: game.Date.Format(dateLayout), SoloID: game.SoloID}
	path := fmt.Sprintf("/rest/v1/daily_games?id=eq.%d", game.ID)
	var updated []dailyGameRow
	if err := c.writeJSON(ctx, http.MethodPatch, path, row, &updated); err != nil {
		return err
	}
	if len(updated) == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (c *Client) DeleteDailyGame(ctx context.Context, id int) error {
	defer metrics.RecordStoreOperation("delete", "daily_games", time.Now())

	var deleted []dailyGameRow
	if err := c.writeJSON(ctx, http.MethodDelete, fmt.Sprintf("/rest/v1/daily_games?id=eq.%d", id), nil, &deleted); err != nil {
		return err
	}
	if len(deleted) == 0 {
		return store.ErrNotFound
	}
	return nil
}

func convertDailyGames(rows []dailyGameRow) ([]models.DailyGame, error) {
	games := make([]models.DailyGame, len(rows))
	for i, r := range rows {
		g, err := toDailyGame(r)
		if err != nil {
			return nil, err
		}
		games[i] = g
	}
	return games, nil
}

// getJSON performs a GET and decodes the response body into out.
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("supabase: decode %s: %w", path, err)
	}
	return nil
}

// writeJSON performs a write (POST/PATCH/DELETE). When out is non-nil the
// representation returned by the store is decoded into it.
func (c *Client) writeJSON(ctx context.Context, method, path string, body, out interface{}) error {
	resp, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusConflict:
		io.Copy(io.Discard, resp.Body)
		return store.ErrConflict
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return statusError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("supabase: decode %s: %w", path, err)
		}
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method == http.MethodPost || method == http.MethodPatch || method == http.MethodDelete {
		// Ask PostgREST to echo the affected rows back
		req.Header.Set("Prefer", "return=representation")
	}

	return c.httpc.Do(req)
}

func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("supabase: %s %s: %d %s", resp.Request.Method, resp.Request.URL.Path, resp.StatusCode, strings.TrimSpace(string(body)))
}
