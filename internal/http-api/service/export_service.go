package service

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"bookhub/internal/http-api/repository"
)

// ExportService streams full-table CSV dumps. No pagination or filtering:
// table sizes are expected to stay small.
type ExportService interface {
	WriteBooksCSV(ctx context.Context, w io.Writer) error
	WriteRatingsCSV(ctx context.Context, w io.Writer) error
}

type exportService struct {
	bookRepo   repository.BookRepository
	ratingRepo repository.RatingRepository
}

func NewExportService(bookRepo repository.BookRepository, ratingRepo repository.RatingRepository) ExportService {
	return &exportService{
		bookRepo:   bookRepo,
		ratingRepo: ratingRepo,
	}
}

// WriteBooksCSV writes one row per book. The rating aggregate columns are
// recomputed from the ratings table at export time.
func (s *exportService) WriteBooksCSV(ctx context.Context, w io.Writer) error {
	books, err := s.bookRepo.ListAll(ctx)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"ID", "Title", "Authors", "Description", "Link", "Average Rating", "Rating Count"}); err != nil {
		return err
	}

	for _, b := range books {
		avg, count, err := s.ratingRepo.Aggregate(ctx, b.ID)
		if err != nil {
			return err
		}
		record := []string{
			strconv.FormatInt(b.ID, 10),
			b.Title,
			b.Authors,
			b.Description,
			b.SourceLink,
			strconv.FormatFloat(avg, 'f', -1, 64),
			strconv.FormatInt(count, 10),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteRatingsCSV writes one row per rating with the owning book's title.
func (s *exportService) WriteRatingsCSV(ctx context.Context, w io.Writer) error {
	ratings, err := s.ratingRepo.ListAll(ctx)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"ID", "Book", "Score", "Comment", "Created At"}); err != nil {
		return err
	}

	for _, r := range ratings {
		record := []string{
			strconv.FormatInt(r.ID, 10),
			r.Book.Title,
			strconv.Itoa(r.Score),
			r.Comment,
			r.CreatedAt.Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
