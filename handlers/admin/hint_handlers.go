package admin

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"shredle/store"
	"shredle/utils/response"

	"github.com/gin-gonic/gin"
)

// GenerateHint Generate a hint for one solo
// @Summary Generate a hint
// @Description Generates a hint for the solo via the oracle (or the local placeholder when unconfigured) and stores it
// @Tags Admin
// @Produce json
// @Param id path int true "Solo ID"
// @Param adminKey query string true "Admin key"
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/solos/{id}/hint [post]
func (h *Handler) GenerateHint(c *gin.Context) {
	id, ok := soloParam(c)
	if !ok {
		return
	}

	solo, err := h.store.GetSoloByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			response.Error(c, http.StatusNotFound, fmt.Sprintf("Solo with ID %d not found", id))
			return
		}
		log.Printf("Error fetching solo %d: %v", id, err)
		response.Error(c, http.StatusInternalServerError, "Solo store request failed")
		return
	}

	solo.Hint = h.oracle.GenerateHint(c.Request.Context(), solo.Title, solo.Artist, solo.Guitarist)
	if err := h.store.UpdateSolo(c.Request.Context(), solo); err != nil {
		log.Printf("Error saving hint for solo %d: %v", id, err)
		response.Error(c, http.StatusInternalServerError, "Failed to save hint")
		return
	}

	c.JSON(http.StatusOK, gin.H{"hint": solo.Hint})
}

// BackfillHints Generate hints for all solos missing one
// @Summary Backfill hints
// @Description Generates and stores a hint for every solo whose hint is empty
// @Tags Admin
// @Produce json
// @Param adminKey query string true "Admin key"
// @Success 200 {object} map[string]int
// @Failure 401 {object} map[string]string
// @Router /admin/hints/backfill [post]
func (h *Handler) BackfillHints(c *gin.Context) {
	solos, err := h.store.GetSolos(c.Request.Context())
	if err != nil {
		log.Printf("Error fetching solos for hint backfill: %v", err)
		response.Error(c, http.StatusInternalServerError, "Failed to fetch solos")
		return
	}

	generated := 0
	for i := range solos {
		if solos[i].Hint != "" {
			continue
		}
		solos[i].Hint = h.oracle.GenerateHint(c.Request.Context(), solos[i].Title, solos[i].Artist, solos[i].Guitarist)
		if err := h.store.UpdateSolo(c.Request.Context(), &solos[i]); err != nil {
			log.Printf("Error saving hint for solo %d: %v", solos[i].ID, err)
			continue
		}
		generated++
	}

	c.JSON(http.StatusOK, gin.H{"generated": generated})
}

func soloParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "Valid solo id is required")
		return 0, false
	}
	return id, true
}
