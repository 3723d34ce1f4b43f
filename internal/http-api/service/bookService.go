package service

import (
	"context"
	"errors"

	"bookhub/internal/http-api/dto"
	"bookhub/internal/http-api/repository"

	"gorm.io/gorm"
)

type BookService interface {
	GetAll(ctx context.Context, page, pageSize int) (*dto.PaginatedBookResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.BookResponse, error)
	Create(ctx context.Context, in dto.CreateBookDTO) (*dto.BookResponse, error)
	Update(ctx context.Context, id int64, in dto.UpdateBookDTO) (*dto.BookResponse, error)
	Delete(ctx context.Context, id int64) error
}

type bookService struct {
	bookRepo   repository.BookRepository
	ratingRepo repository.RatingRepository
}

func NewBookService(bookRepo repository.BookRepository, ratingRepo repository.RatingRepository) BookService {
	return &bookService{
		bookRepo:   bookRepo,
		ratingRepo: ratingRepo,
	}
}

// GetAll retrieves books with pagination. Every response carries the rating
// aggregate recomputed from the ratings table, never a stored value.
func (s *bookService) GetAll(ctx context.Context, page, pageSize int) (*dto.PaginatedBookResponse, error) {
	books, total, err := s.bookRepo.GetAll(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.BookResponse, 0, len(books))
	for _, b := range books {
		avg, count, err := s.ratingRepo.Aggregate(ctx, b.ID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, dto.FromModelToBookResponse(b, avg, count))
	}

	return dto.NewPaginatedBookResponse(responses, total, page, pageSize), nil
}

func (s *bookService) GetByID(ctx context.Context, id int64) (*dto.BookResponse, error) {
	b, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	avg, count, err := s.ratingRepo.Aggregate(ctx, b.ID)
	if err != nil {
		return nil, err
	}

	resp := dto.FromModelToBookResponse(*b, avg, count)
	return &resp, nil
}

// Create persists a new book. A (title, authors) pair colliding with an
// existing book surfaces as ErrDuplicateBook via the unique index.
func (s *bookService) Create(ctx context.Context, in dto.CreateBookDTO) (*dto.BookResponse, error) {
	b := in.ToModel()
	if err := s.bookRepo.Create(ctx, &b); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrDuplicateBook
		}
		return nil, err
	}

	resp := dto.FromModelToBookResponse(b, 0, 0)
	return &resp, nil
}

// Update replaces every mutable field of the book (full replace semantics).
func (s *bookService) Update(ctx context.Context, id int64, in dto.UpdateBookDTO) (*dto.BookResponse, error) {
	existing, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	b := in.ToModel()
	b.CreatedAt = existing.CreatedAt
	if err := s.bookRepo.Update(ctx, id, &b); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrDuplicateBook
		}
		return nil, err
	}

	avg, count, err := s.ratingRepo.Aggregate(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := dto.FromModelToBookResponse(b, avg, count)
	return &resp, nil
}

// Delete removes the book; the OnDelete:CASCADE constraint removes its ratings.
func (s *bookService) Delete(ctx context.Context, id int64) error {
	if err := s.bookRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookNotFound
		}
		return err
	}
	return nil
}
