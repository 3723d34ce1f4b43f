package handler

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"bookhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type ExportHandler struct {
	svc service.ExportService
}

func NewExportHandler(svc service.ExportService) *ExportHandler {
	return &ExportHandler{svc: svc}
}

// RegisterRoutes registers CSV export routes. Exports are reads: public.
func (h *ExportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/books", h.ExportBooks)
	rg.GET("/ratings", h.ExportRatings)
}

// ExportBooks streams the whole books table as a CSV attachment
// GET /api/export/books
func (h *ExportHandler) ExportBooks(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	var buf bytes.Buffer
	if err := h.svc.WriteBooksCSV(ctx, &buf); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="books.csv"`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// ExportRatings streams the whole ratings table as a CSV attachment
// GET /api/export/ratings
func (h *ExportHandler) ExportRatings(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	var buf bytes.Buffer
	if err := h.svc.WriteRatingsCSV(ctx, &buf); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="ratings.csv"`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}
