package service_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"bookhub/internal/http-api/models"
	"bookhub/internal/http-api/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestExportService_WriteBooksCSV(t *testing.T) {
	bookRepo := new(MockBookRepository)
	ratingRepo := new(MockRatingRepository)
	svc := service.NewExportService(bookRepo, ratingRepo)

	books := []models.Book{
		{ID: 1, Title: "Dune", Authors: "Frank Herbert", Description: "Spice", SourceLink: "https://example.com/dune"},
		{ID: 2, Title: "Emma", Authors: "Jane Austen"},
	}
	bookRepo.On("ListAll", mock.Anything).Return(books, nil).Once()
	ratingRepo.On("Aggregate", mock.Anything, int64(1)).Return(4.5, int64(2), nil).Once()
	ratingRepo.On("Aggregate", mock.Anything, int64(2)).Return(0.0, int64(0), nil).Once()

	var buf bytes.Buffer
	err := svc.WriteBooksCSV(context.Background(), &buf)
	assert.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, records, 3)
	assert.Equal(t, []string{"ID", "Title", "Authors", "Description", "Link", "Average Rating", "Rating Count"}, records[0])
	assert.Equal(t, []string{"1", "Dune", "Frank Herbert", "Spice", "https://example.com/dune", "4.5", "2"}, records[1])
	assert.Equal(t, []string{"2", "Emma", "Jane Austen", "", "", "0", "0"}, records[2])
}

func TestExportService_WriteRatingsCSV(t *testing.T) {
	bookRepo := new(MockBookRepository)
	ratingRepo := new(MockRatingRepository)
	svc := service.NewExportService(bookRepo, ratingRepo)

	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ratings := []models.Rating{
		{
			ID:        1,
			BookID:    7,
			Score:     5,
			Comment:   "A classic",
			CreatedAt: createdAt,
			Book:      models.Book{ID: 7, Title: "Dune"},
		},
	}
	ratingRepo.On("ListAll", mock.Anything).Return(ratings, nil).Once()

	var buf bytes.Buffer
	err := svc.WriteRatingsCSV(context.Background(), &buf)
	assert.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, []string{"ID", "Book", "Score", "Comment", "Created At"}, records[0])
	assert.Equal(t, []string{"1", "Dune", "5", "A classic", "2025-06-01T12:00:00Z"}, records[1])
}

func TestExportService_EmptyTables(t *testing.T) {
	bookRepo := new(MockBookRepository)
	ratingRepo := new(MockRatingRepository)
	svc := service.NewExportService(bookRepo, ratingRepo)

	bookRepo.On("ListAll", mock.Anything).Return([]models.Book{}, nil).Once()
	ratingRepo.On("ListAll", mock.Anything).Return([]models.Rating{}, nil).Once()

	var books, ratings bytes.Buffer
	assert.NoError(t, svc.WriteBooksCSV(context.Background(), &books))
	assert.NoError(t, svc.WriteRatingsCSV(context.Background(), &ratings))

	// header-only files
	assert.Equal(t, "ID,Title,Authors,Description,Link,Average Rating,Rating Count\n", books.String())
	assert.Equal(t, "ID,Book,Score,Comment,Created At\n", ratings.String())
}
