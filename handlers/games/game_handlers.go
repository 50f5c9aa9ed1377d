package games

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"shredle/game"
	"shredle/metrics"
	"shredle/realtime"
	"shredle/store"
	"shredle/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	ErrNoGameToday     = "No game available for today"
	ErrFetchGameFailed = "Failed to load today's game"
)

// Handler serves the public gameplay endpoints.
type Handler struct {
	policy *game.DailyPolicy
	judge  *game.Judge
	hub    *realtime.Hub
}

func NewHandler(policy *game.DailyPolicy, judge *game.Judge, hub *realtime.Hub) *Handler {
	return &Handler{policy: policy, judge: judge, hub: hub}
}

// GetDailyGame Get the reveal state for today's game
// @Summary Get today's game state
// @Description Returns the reveal state for today's solo at the given guess count, creating today's game if none exists yet
// @Tags Game
// @Produce json
// @Param guessCount query int false "Number of guesses made so far" default(0)
// @Success 200 {object} game.RevealState
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /game/daily [get]
func (h *Handler) GetDailyGame(c *gin.Context) {
	guessCount, ok := parseCount(c, "guessCount")
	if !ok {
		return
	}

	_, solo, err := h.policy.EnsureTodaysGame(c.Request.Context())
	if err != nil {
		h.gameError(c, err)
		return
	}

	c.JSON(http.StatusOK, game.ComputeReveal(*solo, guessCount, false))
}

// SubmitGuess Submit a guess for today's game
// @Summary Submit a guess
// @Description Judges the guess against today's solo and returns the reveal state for the next attempt count
// @Tags Game
// @Accept json
// @Produce json
// @Param previousGuessCount query int false "Number of prior guesses" default(0)
// @Param request body GuessRequest true "The guessed song title"
// @Success 200 {object} game.RevealState
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /game/guess [post]
func (h *Handler) SubmitGuess(c *gin.Context) {
	var req GuessRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.SongGuess) == "" {
		response.Error(c, http.StatusBadRequest, "songGuess is required")
		return
	}

	previous, ok := parseCount(c, "previousGuessCount")
	if !ok {
		return
	}

	_, solo, err := h.policy.EnsureTodaysGame(c.Request.Context())
	if err != nil {
		h.gameError(c, err)
		return
	}

	correct := h.judge.Judge(c.Request.Context(), req.SongGuess, solo.Title, solo.Artist)

	outcome := "incorrect"
	if correct {
		outcome = "correct"
	}
	metrics.GuessesJudged.WithLabelValues(outcome).Inc()

	c.JSON(http.StatusOK, game.ComputeReveal(*solo, previous+1, correct))
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// LiveUpdates upgrades to a WebSocket that receives daily-game rotation
// events, so open clients learn about a new puzzle without polling.
// @Summary Subscribe to daily-game updates
// @Description Upgrades the connection to a WebSocket pushing daily rotation events
// @Tags Game
// @Router /game/live [get]
func (h *Handler) LiveUpdates(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	h.hub.Register(conn)
	defer func() {
		h.hub.Unregister(conn)
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// parseCount reads a non-negative integer query parameter, writing a 400 and
// returning ok=false when it is malformed.
func parseCount(c *gin.Context, name string) (int, bool) {
	raw := c.DefaultQuery(name, "0")
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		response.Error(c, http.StatusBadRequest, name+" must be a non-negative integer")
		return 0, false
	}
	return n, true
}

func (h *Handler) gameError(c *gin.Context, err error) {
	if errors.Is(err, game.ErrNoSolos) || errors.Is(err, store.ErrNotFound) {
		response.Error(c, http.StatusNotFound, ErrNoGameToday)
		return
	}
	log.Printf("Error loading today's game: %v", err)
	response.Error(c, http.StatusInternalServerError, ErrFetchGameFailed)
}
