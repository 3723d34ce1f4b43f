package googlebooks

import (
	"context"
	"errors"
	"log"
	"strings"

	"bookhub/internal/http-api/models"
	"bookhub/internal/http-api/repository"
)

// maxResults caps how many volumes a single ingestion call consumes.
const maxResults = 5

// SearchClient is the outbound dependency of the ingestion service.
type SearchClient interface {
	Search(ctx context.Context, query string, limit int) ([]Volume, error)
}

// Service pulls volumes from the external search API and persists the ones
// that qualify as new catalog entries.
type Service struct {
	client   SearchClient
	bookRepo repository.BookRepository
}

func NewService(client SearchClient, bookRepo repository.BookRepository) *Service {
	return &Service{
		client:   client,
		bookRepo: bookRepo,
	}
}

// Ingest searches the external source and saves new books, returning them in
// source order. Records missing a selfLink, failing validation, or whose link
// is already stored are skipped; only an upstream failure aborts the call.
// Repeating the same query against an unchanged corpus is a no-op.
func (s *Service) Ingest(ctx context.Context, query string) ([]models.Book, error) {
	volumes, err := s.client.Search(ctx, query, maxResults)
	if err != nil {
		return nil, err
	}

	created := make([]models.Book, 0, len(volumes))
	for _, v := range volumes {
		// selfLink is the dedup key; a volume without one is unusable
		if v.SelfLink == "" {
			continue
		}

		title := strings.TrimSpace(v.VolumeInfo.Title)
		authors := strings.TrimSpace(strings.Join(v.VolumeInfo.Authors, ", "))
		if title == "" || authors == "" {
			continue
		}

		exists, err := s.bookRepo.ExistsBySourceLink(ctx, v.SelfLink)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}

		book := models.Book{
			Title:       title,
			Authors:     authors,
			Description: v.VolumeInfo.Description,
			SourceLink:  v.SelfLink,
		}
		if err := s.bookRepo.Create(ctx, &book); err != nil {
			// a concurrent ingest of the same corpus can race on the natural key
			if errors.Is(err, repository.ErrDuplicateKey) {
				log.Printf("[googlebooks] skipping duplicate volume %q by %q", title, authors)
				continue
			}
			return nil, err
		}

		created = append(created, book)
	}

	return created, nil
}
