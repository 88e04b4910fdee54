package services

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/libcatalog/internal/database"
	"github.com/mrlokans/libcatalog/internal/database/catalog"
	"github.com/mrlokans/libcatalog/internal/entities"
)

// setupStoreService runs a Service over a real catalog database.
func setupStoreService(t *testing.T) *Service {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "catalog.db"), database.WithLogLevel(logger.Silent))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewService(catalog.NewRepository(db.DB))
}

func TestService_AddRatingValidates(t *testing.T) {
	svc := setupStoreService(t)
	book := mustBook(t, "Dune")
	require.NoError(t, svc.Add(book))

	for _, score := range []int{-1, 11, 42} {
		err := svc.AddRating(book.ID, entities.Rating{Score: score})
		assert.True(t, entities.IsValidationError(err), "score %d", score)
	}
	require.NoError(t, svc.AddRating(book.ID, entities.Rating{Score: 10, UserID: "ana"}))

	ratings, err := svc.Ratings(book.ID)
	require.NoError(t, err)
	require.Len(t, ratings, 1)
	assert.Equal(t, 10, ratings[0].Score)

	items, err := svc.List()
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestService_UpdateValidates(t *testing.T) {
	svc := setupStoreService(t)
	book := mustBook(t, "Dune")
	require.NoError(t, svc.Add(book))
	audio := mustAudiobook(t, "Sapiens")
	require.NoError(t, svc.Add(audio))

	tests := []struct {
		name  string
		id    uint
		item  func() entities.Item
		field string
	}{
		{"bad isbn", book.ID, func() entities.Item {
			b := *book
			b.ISBN10 = "1234567890"
			return &b
		}, "ISBN10"},
		{"year before 1500", book.ID, func() entities.Item {
			b := *book
			b.Year = 1200
			return &b
		}, "Year"},
		{"audiobook year in the future", audio.ID, func() entities.Item {
			a := *audio
			a.Year = 3000
			return &a
		}, "Year"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Update(tt.id, tt.item())
			var ve *entities.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}

	t.Run("add rejects the same input", func(t *testing.T) {
		b := *book
		b.ID = 0
		b.ISBN10 = "0307474721"
		assert.True(t, entities.IsValidationError(svc.Add(&b)))
	})

	items, err := svc.List()
	require.NoError(t, err)
	require.Len(t, items, 2)

	stored, err := svc.Get(book.ID)
	require.NoError(t, err)
	assert.Equal(t, "0307474720", stored.(*entities.Book).ISBN10)
	assert.Equal(t, 2000, stored.Common().Year)
}
