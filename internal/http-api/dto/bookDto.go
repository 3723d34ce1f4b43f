package dto

import (
	"time"

	"bookhub/internal/http-api/models"
)

// CreateBookDTO used for POST /api/books
type CreateBookDTO struct {
	Title       string `json:"title" binding:"required,max=100"`
	Authors     string `json:"authors" binding:"required,max=150"`
	Description string `json:"description" binding:"max=5000"`
	SourceLink  string `json:"source_link" binding:"max=255"`
}

// UpdateBookDTO used for PUT /api/books/:book_id (full replace)
type UpdateBookDTO struct {
	Title       string `json:"title" binding:"required,max=100"`
	Authors     string `json:"authors" binding:"required,max=150"`
	Description string `json:"description" binding:"max=5000"`
	SourceLink  string `json:"source_link" binding:"max=255"`
}

// BookResponse DTO for responses. AverageRating and RatingCount are computed
// from the ratings table at serialization time, never read from a stored column.
type BookResponse struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Authors       string    `json:"authors"`
	Description   string    `json:"description"`
	SourceLink    string    `json:"source_link"`
	AverageRating float64   `json:"average_rating"`
	RatingCount   int64     `json:"rating_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// PaginatedBookResponse for returning paginated books
type PaginatedBookResponse struct {
	Data       []BookResponse `json:"data"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	Total      int64          `json:"total"`
	TotalPages int64          `json:"total_pages"`
}

// Converters
func (d CreateBookDTO) ToModel() models.Book {
	return models.Book{
		Title:       d.Title,
		Authors:     d.Authors,
		Description: d.Description,
		SourceLink:  d.SourceLink,
	}
}

func (d UpdateBookDTO) ToModel() models.Book {
	return models.Book{
		Title:       d.Title,
		Authors:     d.Authors,
		Description: d.Description,
		SourceLink:  d.SourceLink,
	}
}

func FromModelToBookResponse(b models.Book, average float64, count int64) BookResponse {
	return BookResponse{
		ID:            b.ID,
		Title:         b.Title,
		Authors:       b.Authors,
		Description:   b.Description,
		SourceLink:    b.SourceLink,
		AverageRating: average,
		RatingCount:   count,
		CreatedAt:     b.CreatedAt,
	}
}

// NewPaginatedBookResponse creates a paginated book response
func NewPaginatedBookResponse(data []BookResponse, total int64, page, pageSize int) *PaginatedBookResponse {
	totalPages := total / int64(pageSize)
	if total%int64(pageSize) != 0 {
		totalPages++
	}

	return &PaginatedBookResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
