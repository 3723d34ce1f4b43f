package googlebooks_test

import (
	"context"
	"testing"

	"bookhub/internal/http-api/models"
	"bookhub/internal/http-api/repository"
	"bookhub/internal/ingestion/googlebooks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockSearchClient struct {
	mock.Mock
}

func (m *MockSearchClient) Search(ctx context.Context, query string, limit int) ([]googlebooks.Volume, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]googlebooks.Volume), args.Error(1)
}

type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) GetAll(ctx context.Context, page, pageSize int) ([]models.Book, int64, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Book), args.Get(1).(int64), args.Error(2)
}

func (m *MockBookRepository) ListAll(ctx context.Context) ([]models.Book, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Book), args.Error(1)
}

func (m *MockBookRepository) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *MockBookRepository) GetByNaturalKey(ctx context.Context, title, authors string) (*models.Book, error) {
	args := m.Called(ctx, title, authors)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *MockBookRepository) ExistsBySourceLink(ctx context.Context, sourceLink string) (bool, error) {
	args := m.Called(ctx, sourceLink)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookRepository) Create(ctx context.Context, b *models.Book) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookRepository) Update(ctx context.Context, id int64, b *models.Book) error {
	args := m.Called(ctx, id, b)
	return args.Error(0)
}

func (m *MockBookRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func volume(id, title string, authors ...string) googlebooks.Volume {
	return googlebooks.Volume{
		ID:       id,
		SelfLink: "https://books.example.com/volumes/" + id,
		VolumeInfo: googlebooks.VolumeInfo{
			Title:       title,
			Authors:     authors,
			Description: "about " + title,
		},
	}
}

func TestService_Ingest(t *testing.T) {
	t.Run("SavesNewVolumesInSourceOrder", func(t *testing.T) {
		client := new(MockSearchClient)
		bookRepo := new(MockBookRepository)
		svc := googlebooks.NewService(client, bookRepo)

		volumes := []googlebooks.Volume{
			volume("v1", "Dune", "Frank Herbert"),
			volume("v2", "Emma", "Jane Austen"),
		}
		client.On("Search", mock.Anything, "classics", 5).Return(volumes, nil).Once()
		bookRepo.On("ExistsBySourceLink", mock.Anything, mock.Anything).Return(false, nil).Twice()
		bookRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Book")).Return(nil).Twice()

		created, err := svc.Ingest(context.Background(), "classics")

		assert.NoError(t, err)
		assert.Len(t, created, 2)
		assert.Equal(t, "Dune", created[0].Title)
		assert.Equal(t, "Emma", created[1].Title)
		bookRepo.AssertExpectations(t)
	})

	t.Run("JoinsMultipleAuthors", func(t *testing.T) {
		client := new(MockSearchClient)
		bookRepo := new(MockBookRepository)
		svc := googlebooks.NewService(client, bookRepo)

		volumes := []googlebooks.Volume{
			volume("v1", "Good Omens", "Terry Pratchett", "Neil Gaiman"),
		}
		client.On("Search", mock.Anything, "omens", 5).Return(volumes, nil).Once()
		bookRepo.On("ExistsBySourceLink", mock.Anything, mock.Anything).Return(false, nil).Once()
		bookRepo.On("Create", mock.Anything, mock.MatchedBy(func(b *models.Book) bool {
			return b.Authors == "Terry Pratchett, Neil Gaiman"
		})).Return(nil).Once()

		created, err := svc.Ingest(context.Background(), "omens")

		assert.NoError(t, err)
		assert.Len(t, created, 1)
	})

	t.Run("SkipsInvalidAndExisting", func(t *testing.T) {
		client := new(MockSearchClient)
		bookRepo := new(MockBookRepository)
		svc := googlebooks.NewService(client, bookRepo)

		noLink := volume("v2", "No Link", "Somebody")
		noLink.SelfLink = ""

		volumes := []googlebooks.Volume{
			volume("v1", "Dune", "Frank Herbert"), // new
			noLink,                       // no dedup key
			volume("v3", "", "Somebody"), // no title
			volume("v4", "No Authors"),   // no authors
			volume("v5", "Emma", "Jane Austen"), // already stored
		}
		client.On("Search", mock.Anything, "mixed", 5).Return(volumes, nil).Once()
		bookRepo.On("ExistsBySourceLink", mock.Anything, "https://books.example.com/volumes/v1").Return(false, nil).Once()
		bookRepo.On("ExistsBySourceLink", mock.Anything, "https://books.example.com/volumes/v5").Return(true, nil).Once()
		bookRepo.On("Create", mock.Anything, mock.MatchedBy(func(b *models.Book) bool {
			return b.Title == "Dune"
		})).Return(nil).Once()

		created, err := svc.Ingest(context.Background(), "mixed")

		assert.NoError(t, err)
		assert.Len(t, created, 1)
		bookRepo.AssertExpectations(t)
	})

	t.Run("RepeatedIngestIsNoOp", func(t *testing.T) {
		client := new(MockSearchClient)
		bookRepo := new(MockBookRepository)
		svc := googlebooks.NewService(client, bookRepo)

		volumes := []googlebooks.Volume{
			volume("v1", "Dune", "Frank Herbert"),
		}
		client.On("Search", mock.Anything, "dune", 5).Return(volumes, nil).Once()
		bookRepo.On("ExistsBySourceLink", mock.Anything, mock.Anything).Return(true, nil).Once()

		created, err := svc.Ingest(context.Background(), "dune")

		assert.NoError(t, err)
		assert.Empty(t, created)
		bookRepo.AssertNotCalled(t, "Create")
	})

	t.Run("DuplicateNaturalKeyRaceIsSkipped", func(t *testing.T) {
		client := new(MockSearchClient)
		bookRepo := new(MockBookRepository)
		svc := googlebooks.NewService(client, bookRepo)

		volumes := []googlebooks.Volume{
			volume("v1", "Dune", "Frank Herbert"),
			volume("v2", "Emma", "Jane Austen"),
		}
		client.On("Search", mock.Anything, "race", 5).Return(volumes, nil).Once()
		bookRepo.On("ExistsBySourceLink", mock.Anything, mock.Anything).Return(false, nil).Twice()
		bookRepo.On("Create", mock.Anything, mock.MatchedBy(func(b *models.Book) bool {
			return b.Title == "Dune"
		})).Return(repository.ErrDuplicateKey).Once()
		bookRepo.On("Create", mock.Anything, mock.MatchedBy(func(b *models.Book) bool {
			return b.Title == "Emma"
		})).Return(nil).Once()

		created, err := svc.Ingest(context.Background(), "race")

		assert.NoError(t, err)
		assert.Len(t, created, 1)
		assert.Equal(t, "Emma", created[0].Title)
	})

	t.Run("UpstreamFailureAborts", func(t *testing.T) {
		client := new(MockSearchClient)
		bookRepo := new(MockBookRepository)
		svc := googlebooks.NewService(client, bookRepo)

		client.On("Search", mock.Anything, "down", 5).Return(nil, googlebooks.ErrUpstream).Once()

		_, err := svc.Ingest(context.Background(), "down")

		assert.ErrorIs(t, err, googlebooks.ErrUpstream)
		bookRepo.AssertNotCalled(t, "ExistsBySourceLink")
		bookRepo.AssertNotCalled(t, "Create")
	})
}
