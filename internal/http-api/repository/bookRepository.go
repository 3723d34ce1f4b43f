package repository

import (
	"context"
	"fmt"

	"bookhub/internal/http-api/models"

	"gorm.io/gorm"
)

type BookRepository interface {
	GetAll(ctx context.Context, page, pageSize int) ([]models.Book, int64, error)
	ListAll(ctx context.Context) ([]models.Book, error)
	GetByID(ctx context.Context, id int64) (*models.Book, error)
	GetByNaturalKey(ctx context.Context, title, authors string) (*models.Book, error)
	ExistsBySourceLink(ctx context.Context, sourceLink string) (bool, error)
	Create(ctx context.Context, b *models.Book) error
	Update(ctx context.Context, id int64, b *models.Book) error
	Delete(ctx context.Context, id int64) error
}

type bookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) GetAll(ctx context.Context, page, pageSize int) ([]models.Book, int64, error) {
	var list []models.Book
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Book{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := r.db.WithContext(ctx).
		Order("id asc").
		Limit(pageSize).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

// ListAll returns every book without pagination, for CSV export.
func (r *bookRepository) ListAll(ctx context.Context) ([]models.Book, error) {
	var list []models.Book
	if err := r.db.WithContext(ctx).Order("id asc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return list, nil
}

func (r *bookRepository) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	var b models.Book
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// GetByNaturalKey resolves a book by exact title + authors equality. No fuzzy
// matching: the pair is the de facto foreign key used by rating creation.
func (r *bookRepository) GetByNaturalKey(ctx context.Context, title, authors string) (*models.Book, error) {
	var b models.Book
	if err := r.db.WithContext(ctx).
		Where("title = ? AND authors = ?", title, authors).
		First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// ExistsBySourceLink reports whether a book with the given external link is
// already stored. Ingestion dedup key.
func (r *bookRepository) ExistsBySourceLink(ctx context.Context, sourceLink string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Book{}).
		Where("source_link = ?", sourceLink).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *bookRepository) Create(ctx context.Context, b *models.Book) error {
	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		return translateError(err)
	}
	return nil
}

func (r *bookRepository) Update(ctx context.Context, id int64, b *models.Book) error {
	// full replace: Save writes every column
	b.ID = id
	if err := r.db.WithContext(ctx).Save(b).Error; err != nil {
		return translateError(err)
	}
	return nil
}

func (r *bookRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Book{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete book: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
