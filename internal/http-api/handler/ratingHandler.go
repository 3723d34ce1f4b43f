package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"bookhub/internal/http-api/dto"
	"bookhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type RatingHandler struct {
	svc        service.RatingService
	pagination Pagination
}

func NewRatingHandler(svc service.RatingService, pagination Pagination) *RatingHandler {
	return &RatingHandler{
		svc:        svc,
		pagination: pagination,
	}
}

// RegisterRoutes registers rating routes. Reads are public; mutations go
// through the auth middleware.
func (h *RatingHandler) RegisterRoutes(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	rg.GET("", h.List)
	rg.GET("/:rating_id", h.Get)
	rg.POST("", requireAuth, h.Create)
	rg.PUT("/:rating_id", requireAuth, h.Update)
	rg.DELETE("/:rating_id", requireAuth, h.Delete)
}

// List retrieves ratings with pagination, optionally filtered to one book by
// natural key. The filter only applies when both parameters are supplied; a
// complete filter naming a nonexistent book is a validation error.
// GET /api/ratings?book_title=...&book_authors=...&page=1&page_size=20
func (h *RatingHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	page, pageSize := h.pagination.parse(c)
	filter := service.RatingFilter{
		BookTitle:   strings.TrimSpace(c.Query("book_title")),
		BookAuthors: strings.TrimSpace(c.Query("book_authors")),
	}

	resp, err := h.svc.List(ctx, filter, page, pageSize)
	if err != nil {
		if errors.Is(err, service.ErrBookNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no book matches the given title and authors"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Get retrieves a single rating by id
// GET /api/ratings/:rating_id
func (h *RatingHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("rating_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	resp, err := h.svc.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrRatingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Create records a rating against a book resolved by title + authors
// POST /api/ratings
func (h *RatingHandler) Create(c *gin.Context) {
	var in dto.CreateRatingDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	resp, err := h.svc.Create(ctx, in)
	if err != nil {
		// a missing book is a payload problem, not a missing resource
		if errors.Is(err, service.ErrBookNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no book matches the given title and authors"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Update replaces a rating's book reference, score and comment
// PUT /api/ratings/:rating_id
func (h *RatingHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("rating_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var in dto.UpdateRatingDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	resp, err := h.svc.Update(ctx, id, in)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRatingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrBookNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "no book matches the given title and authors"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Delete removes a rating
// DELETE /api/ratings/:rating_id
func (h *RatingHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("rating_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Delete(ctx, id); err != nil {
		if errors.Is(err, service.ErrRatingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
