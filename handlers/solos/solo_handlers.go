package solos

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"shredle/models"
	"shredle/store"
	"shredle/utils/response"

	"github.com/gin-gonic/gin"
)

const (
	ErrInvalidSoloID    = "Valid solo id is required"
	ErrInvalidClipRange = "soloEndMs must be greater than soloStartMs, and soloStartMs must be non-negative"
	ErrFetchSolosFailed = "Failed to fetch solos"
)

// Handler serves the admin solo CRUD surface.
type Handler struct {
	store store.Store
}

func NewHandler(s store.Store) *Handler {
	return &Handler{store: s}
}

// ListSolos Get all solos
// @Summary List solos
// @Description Get all solos, including answers; admin only
// @Tags Solos
// @Produce json
// @Param adminKey query string true "Admin key"
// @Success 200 {array} models.Solo
// @Failure 401 {object} map[string]string
// @Router /solos [get]
func (h *Handler) ListSolos(c *gin.Context) {
	solos, err := h.store.GetSolos(c.Request.Context())
	if err != nil {
		log.Printf("Error fetching solos: %v", err)
		response.Error(c, http.StatusInternalServerError, ErrFetchSolosFailed)
		return
	}
	c.JSON(http.StatusOK, solos)
}

// GetSolo Get one solo
// @Summary Get a solo
// @Description Get a solo by id, including the answer; admin only
// @Tags Solos
// @Produce json
// @Param id path int true "Solo ID"
// @Param adminKey query string true "Admin key"
// @Success 200 {object} models.Solo
// @Failure 404 {object} map[string]string
// @Router /solos/{id} [get]
func (h *Handler) GetSolo(c *gin.Context) {
	id, ok := soloID(c)
	if !ok {
		return
	}

	solo, err := h.store.GetSoloByID(c.Request.Context(), id)
	if err != nil {
		h.storeError(c, err, fmt.Sprintf("Solo with ID %d not found", id))
		return
	}
	c.JSON(http.StatusOK, solo)
}

// CreateSolo Create a solo
// @Summary Create a solo
// @Description Create a new solo; admin only
// @Tags Solos
// @Accept json
// @Produce json
// @Param adminKey query string true "Admin key"
// @Param request body SoloRequest true "Solo fields"
// @Success 201 {object} models.Solo
// @Failure 400 {object} map[string]string
// @Router /solos [post]
func (h *Handler) CreateSolo(c *gin.Context) {
	req, ok := bindSolo(c)
	if !ok {
		return
	}

	created, err := h.store.CreateSolo(c.Request.Context(), &models.Solo{
		Title:       req.Title,
		Artist:      req.Artist,
		Guitarist:   req.Guitarist,
		SpotifyID:   req.SpotifyID,
		SoloStartMs: req.SoloStartMs,
		SoloEndMs:   req.SoloEndMs,
		Hint:        req.Hint,
	})
	if err != nil {
		log.Printf("Error creating solo: %v", err)
		response.Error(c, http.StatusInternalServerError, "Failed to create solo")
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateSolo Update a solo
// @Summary Update a solo
// @Description Replace a solo's fields; admin only
// @Tags Solos
// @Accept json
// @Produce json
// @Param id path int true "Solo ID"
// @Param adminKey query string true "Admin key"
// @Param request body SoloRequest true "Solo fields"
// @Success 200 {object} models.Solo
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /solos/{id} [put]
func (h *Handler) UpdateSolo(c *gin.Context) {
	id, ok := soloID(c)
	if !ok {
		return
	}
	req, ok := bindSolo(c)
	if !ok {
		return
	}

	solo := &models.Solo{
		ID:          id,
		Title:       req.Title,
		Artist:      req.Artist,
		Guitarist:   req.Guitarist,
		SpotifyID:   req.SpotifyID,
		SoloStartMs: req.SoloStartMs,
		SoloEndMs:   req.SoloEndMs,
		Hint:        req.Hint,
	}
	if err := h.store.UpdateSolo(c.Request.Context(), solo); err != nil {
		h.storeError(c, err, fmt.Sprintf("Solo with ID %d not found", id))
		return
	}
	c.JSON(http.StatusOK, solo)
}

// DeleteSolo Delete a solo
// @Summary Delete a solo
// @Description Delete a solo by id; admin only
// @Tags Solos
// @Produce json
// @Param id path int true "Solo ID"
// @Param adminKey query string true "Admin key"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /solos/{id} [delete]
func (h *Handler) DeleteSolo(c *gin.Context) {
	id, ok := soloID(c)
	if !ok {
		return
	}

	if err := h.store.DeleteSolo(c.Request.Context(), id); err != nil {
		h.storeError(c, err, fmt.Sprintf("Solo with ID %d not found", id))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Solo %d deleted", id)})
}

func soloID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, ErrInvalidSoloID)
		return 0, false
	}
	return id, true
}

func bindSolo(c *gin.Context) (*SoloRequest, bool) {
	var req SoloRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return nil, false
	}
	if req.SoloStartMs < 0 || req.SoloEndMs <= req.SoloStartMs {
		response.Error(c, http.StatusBadRequest, ErrInvalidClipRange)
		return nil, false
	}
	return &req, true
}

func (h *Handler) storeError(c *gin.Context, err error, notFoundMsg string) {
	if errors.Is(err, store.ErrNotFound) {
		response.Error(c, http.StatusNotFound, notFoundMsg)
		return
	}
	log.Printf("Solo store error: %v", err)
	response.Error(c, http.StatusInternalServerError, "Solo store request failed")
}
