package service

import (
	"context"
	"errors"

	"bookhub/internal/http-api/dto"
	"bookhub/internal/http-api/models"
	"bookhub/internal/http-api/repository"

	"gorm.io/gorm"
)

// RatingFilter narrows a rating list to one book, resolved by natural key.
// The filter applies only when both fields are present; a partial filter is
// permissive, not restrictive.
type RatingFilter struct {
	BookTitle   string
	BookAuthors string
}

func (f RatingFilter) complete() bool {
	return f.BookTitle != "" && f.BookAuthors != ""
}

type RatingService interface {
	Create(ctx context.Context, in dto.CreateRatingDTO) (*dto.RatingResponse, error)
	Update(ctx context.Context, id int64, in dto.UpdateRatingDTO) (*dto.RatingResponse, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*dto.RatingResponse, error)
	List(ctx context.Context, filter RatingFilter, page, pageSize int) (*dto.PaginatedRatingResponse, error)
}

type ratingService struct {
	ratingRepo repository.RatingRepository
	bookRepo   repository.BookRepository
}

func NewRatingService(ratingRepo repository.RatingRepository, bookRepo repository.BookRepository) RatingService {
	return &ratingService{
		ratingRepo: ratingRepo,
		bookRepo:   bookRepo,
	}
}

// Create resolves the target book by its natural key and persists the rating.
// A missing book is ErrBookNotFound, which the API reports as a validation
// error rather than a 404: the client named a book that does not exist.
func (s *ratingService) Create(ctx context.Context, in dto.CreateRatingDTO) (*dto.RatingResponse, error) {
	book, err := s.bookRepo.GetByNaturalKey(ctx, in.BookTitle, in.BookAuthors)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	rating := &models.Rating{
		BookID:  book.ID,
		Score:   *in.Score,
		Comment: in.Comment,
	}
	if err := s.ratingRepo.Create(ctx, rating); err != nil {
		return nil, err
	}

	rating.Book = *book
	return dto.FromModelToRatingResponse(rating), nil
}

// Update replaces the rating's book reference, score and comment. The
// creation timestamp is immutable.
func (s *ratingService) Update(ctx context.Context, id int64, in dto.UpdateRatingDTO) (*dto.RatingResponse, error) {
	rating, err := s.ratingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRatingNotFound
		}
		return nil, err
	}

	book, err := s.bookRepo.GetByNaturalKey(ctx, in.BookTitle, in.BookAuthors)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	rating.BookID = book.ID
	rating.Score = *in.Score
	rating.Comment = in.Comment
	rating.Book = models.Book{}
	if err := s.ratingRepo.Update(ctx, rating); err != nil {
		return nil, err
	}

	rating.Book = *book
	return dto.FromModelToRatingResponse(rating), nil
}

func (s *ratingService) Delete(ctx context.Context, id int64) error {
	if err := s.ratingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRatingNotFound
		}
		return err
	}
	return nil
}

func (s *ratingService) GetByID(ctx context.Context, id int64) (*dto.RatingResponse, error) {
	rating, err := s.ratingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRatingNotFound
		}
		return nil, err
	}
	return dto.FromModelToRatingResponse(rating), nil
}

// List returns ratings with pagination. When the filter names a book that
// does not exist the caller gets ErrBookNotFound, not an empty page.
func (s *ratingService) List(ctx context.Context, filter RatingFilter, page, pageSize int) (*dto.PaginatedRatingResponse, error) {
	var (
		ratings []models.Rating
		total   int64
		err     error
	)

	if filter.complete() {
		book, berr := s.bookRepo.GetByNaturalKey(ctx, filter.BookTitle, filter.BookAuthors)
		if berr != nil {
			if errors.Is(berr, gorm.ErrRecordNotFound) {
				return nil, ErrBookNotFound
			}
			return nil, berr
		}
		ratings, total, err = s.ratingRepo.GetByBook(ctx, book.ID, page, pageSize)
	} else {
		ratings, total, err = s.ratingRepo.GetAll(ctx, page, pageSize)
	}
	if err != nil {
		return nil, err
	}

	responses := make([]dto.RatingResponse, 0, len(ratings))
	for i := range ratings {
		responses = append(responses, *dto.FromModelToRatingResponse(&ratings[i]))
	}

	return dto.NewPaginatedRatingResponse(responses, total, page, pageSize), nil
}
