package admin

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"shredle/game"
	"shredle/oracle"
	"shredle/realtime"
	"shredle/store"
	"shredle/utils/response"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// Handler serves the admin endpoints for daily-game curation and hint
// generation.
type Handler struct {
	store  store.Store
	oracle *oracle.Client
	policy *game.DailyPolicy
	hub    *realtime.Hub
}

func NewHandler(s store.Store, o *oracle.Client, p *game.DailyPolicy, hub *realtime.Hub) *Handler {
	return &Handler{store: s, oracle: o, policy: p, hub: hub}
}

// SetDailySolo Force-set today's solo
// @Summary Set today's daily solo
// @Description Assigns the given solo as today's game, replacing any existing assignment
// @Tags Admin
// @Accept json
// @Produce json
// @Param adminKey query string true "Admin key"
// @Param request body SetDailySoloRequest true "Solo to assign"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/daily [post]
func (h *Handler) SetDailySolo(c *gin.Context) {
	var req SetDailySoloRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.SoloID <= 0 {
		response.Error(c, http.StatusBadRequest, "Valid soloId is required")
		return
	}

	dg, solo, err := h.policy.SetToday(c.Request.Context(), req.SoloID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			response.Error(c, http.StatusNotFound, fmt.Sprintf("Solo with ID %d not found", req.SoloID))
			return
		}
		log.Printf("Error setting daily solo %d: %v", req.SoloID, err)
		response.Error(c, http.StatusInternalServerError, "Failed to set daily solo")
		return
	}

	h.hub.BroadcastDailyUpdate(realtime.DailyGameUpdate{
		Date:       dg.Date.Format(dateLayout),
		SoloID:     dg.SoloID,
		UpdateType: "assigned",
	})

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Successfully set daily solo for %s to '%s' by %s",
			dg.Date.Format(dateLayout), solo.Title, solo.Artist),
	})
}

// RotateDailySolo Re-roll today's solo
// @Summary Rotate today's daily solo
// @Description Reruns the random selection for today, avoiding recently used solos
// @Tags Admin
// @Produce json
// @Param adminKey query string true "Admin key"
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/daily/rotate [post]
func (h *Handler) RotateDailySolo(c *gin.Context) {
	dg, solo, err := h.policy.RotateToday(c.Request.Context())
	if err != nil {
		if errors.Is(err, game.ErrNoSolos) {
			response.Error(c, http.StatusNotFound, "No solos available to rotate to")
			return
		}
		log.Printf("Error rotating daily solo: %v", err)
		response.Error(c, http.StatusInternalServerError, "Failed to rotate daily solo")
		return
	}

	h.hub.BroadcastDailyUpdate(realtime.DailyGameUpdate{
		Date:       dg.Date.Format(dateLayout),
		SoloID:     dg.SoloID,
		UpdateType: "rotated",
	})

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Rotated daily solo for %s to '%s' by %s",
			dg.Date.Format(dateLayout), solo.Title, solo.Artist),
	})
}

// ListDailyGames List daily games
// @Summary List daily games
// @Description Get all daily-game assignments, newest first
// @Tags Admin
// @Produce json
// @Param adminKey query string true "Admin key"
// @Success 200 {array} models.DailyGame
// @Failure 401 {object} map[string]string
// @Router /admin/daily-games [get]
func (h *Handler) ListDailyGames(c *gin.Context) {
	games, err := h.store.GetDailyGames(c.Request.Context())
	if err != nil {
		log.Printf("Error fetching daily games: %v", err)
		response.Error(c, http.StatusInternalServerError, "Failed to fetch daily games")
		return
	}
	c.JSON(http.StatusOK, games)
}

// DeleteDailyGame Delete a daily game
// @Summary Delete a daily game
// @Description Delete a daily-game assignment by id
// @Tags Admin
// @Produce json
// @Param id path int true "Daily game ID"
// @Param adminKey query string true "Admin key"
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/daily-games/{id} [delete]
func (h *Handler) DeleteDailyGame(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "Valid daily game id is required")
		return
	}

	if err := h.store.DeleteDailyGame(c.Request.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			response.Error(c, http.StatusNotFound, fmt.Sprintf("Daily game with ID %d not found", id))
			return
		}
		log.Printf("Error deleting daily game %d: %v", id, err)
		response.Error(c, http.StatusInternalServerError, "Failed to delete daily game")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Daily game %d deleted", id)})
}
