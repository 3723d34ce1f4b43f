package dto

import (
	"time"

	"bookhub/internal/http-api/models"
)

// CreateRatingDTO for creating a rating. The target book is resolved by its
// natural key (title + authors), not by surrogate id. Score is a pointer so
// that the boundary value 0 survives the required check.
type CreateRatingDTO struct {
	BookTitle   string `json:"book_title" binding:"required,max=100"`
	BookAuthors string `json:"book_authors" binding:"required,max=150"`
	Score       *int   `json:"score" binding:"required,gte=0,lte=5"`
	Comment     string `json:"comment"`
}

// UpdateRatingDTO for PUT /api/ratings/:rating_id (full replace)
type UpdateRatingDTO struct {
	BookTitle   string `json:"book_title" binding:"required,max=100"`
	BookAuthors string `json:"book_authors" binding:"required,max=150"`
	Score       *int   `json:"score" binding:"required,gte=0,lte=5"`
	Comment     string `json:"comment"`
}

// RatingResponse for returning rating information
type RatingResponse struct {
	ID          int64     `json:"id"`
	BookID      int64     `json:"book_id"`
	BookTitle   string    `json:"book_title"`
	BookAuthors string    `json:"book_authors"`
	Score       int       `json:"score"`
	Comment     string    `json:"comment"`
	CreatedAt   time.Time `json:"created_at"`
}

// FromModelToRatingResponse converts a Rating model to RatingResponse DTO
func FromModelToRatingResponse(rating *models.Rating) *RatingResponse {
	return &RatingResponse{
		ID:          rating.ID,
		BookID:      rating.BookID,
		BookTitle:   rating.Book.Title,
		BookAuthors: rating.Book.Authors,
		Score:       rating.Score,
		Comment:     rating.Comment,
		CreatedAt:   rating.CreatedAt,
	}
}

// PaginatedRatingResponse for returning paginated ratings
type PaginatedRatingResponse struct {
	Data       []RatingResponse `json:"data"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	Total      int64            `json:"total"`
	TotalPages int64            `json:"total_pages"`
}

// NewPaginatedRatingResponse creates a paginated rating response
func NewPaginatedRatingResponse(data []RatingResponse, total int64, page, pageSize int) *PaginatedRatingResponse {
	totalPages := total / int64(pageSize)
	if total%int64(pageSize) != 0 {
		totalPages++
	}

	return &PaginatedRatingResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
