package postgres_test

import (
	"context"
	"snapbox/internal/adapters/repository/postgres"
	"snapbox/internal/core/domain"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newImage(status domain.ImageStatus, size int64) domain.ImageMetadata {
	id := uuid.New()
	return domain.ImageMetadata{
		ID:           id,
		Filename:     id.String() + ".jpg",
		OriginalName: "beach.jpg",
		MimeType:     "image/jpeg",
		SizeBytes:    size,
		Source:       domain.SourceCamera,
		StorageKey:   "images/" + id.String() + ".jpg",
		Status:       status,
		CapturedAt:   time.Now().UTC().Truncate(time.Millisecond),
	}
}

func TestSqlImageRepository(t *testing.T) {
	dbConnection, cleanup, truncate := postgres.NewTestDB(t)
	defer cleanup()
	ctx := context.Background()
	repo := postgres.NewSqlImageRepository(dbConnection)

	t.Run("Create - Success", func(t *testing.T) {
		// Arrange
		truncate()
		image := newImage(domain.ImageStatusUploading, 2097152)
		image.ClientID = "photo_1"

		// Act
		err := repo.Create(ctx, image)

		// Assert
		require.NoError(t, err)
		found, err := repo.FindByID(ctx, image.ID)
		require.NoError(t, err)
		assert.Equal(t, "photo_1", found.ClientID)
		assert.Equal(t, "beach.jpg", found.OriginalName)
		assert.Equal(t, int64(2097152), found.SizeBytes)
		assert.Equal(t, domain.SourceCamera, found.Source)
		assert.True(t, image.CapturedAt.Equal(found.CapturedAt))
	})

	t.Run("Create - Duplicate client id", func(t *testing.T) {
		// Arrange
		truncate()
		first := newImage(domain.ImageStatusCompleted, 10)
		first.ClientID = "photo_dup"
		second := newImage(domain.ImageStatusCompleted, 10)
		second.ClientID = "photo_dup"
		require.NoError(t, repo.Create(ctx, first))

		// Act
		err := repo.Create(ctx, second)

		// Assert
		require.ErrorIs(t, err, domain.ErrAlreadyExists)
	})

	t.Run("Create - Without client id twice", func(t *testing.T) {
		// Arrange
		truncate()

		// Act
		errA := repo.Create(ctx, newImage(domain.ImageStatusCompleted, 10))
		errB := repo.Create(ctx, newImage(domain.ImageStatusCompleted, 10))

		// Assert
		require.NoError(t, errA)
		require.NoError(t, errB)
	})

	t.Run("Finders - Lookup by key, filename and client id", func(t *testing.T) {
		// Arrange
		truncate()
		image := newImage(domain.ImageStatusCompleted, 10)
		image.ClientID = "photo_find"
		require.NoError(t, repo.Create(ctx, image))

		// Act
		byKey, errKey := repo.FindByStorageKey(ctx, image.StorageKey)
		byName, errName := repo.FindByFilename(ctx, image.Filename)
		byClient, errClient := repo.FindByClientID(ctx, "photo_find")

		// Assert
		require.NoError(t, errKey)
		require.NoError(t, errName)
		require.NoError(t, errClient)
		assert.Equal(t, image.ID, byKey.ID)
		assert.Equal(t, image.ID, byName.ID)
		assert.Equal(t, image.ID, byClient.ID)
	})

	t.Run("FindByID - Not Found", func(t *testing.T) {
		// Arrange
		truncate()

		// Act
		_, err := repo.FindByID(ctx, uuid.New())

		// Assert
		require.ErrorIs(t, err, domain.ErrImageNotFound)
	})

	t.Run("UpdateStatus - Success", func(t *testing.T) {
		// Arrange
		truncate()
		image := newImage(domain.ImageStatusUploading, 10)
		require.NoError(t, repo.Create(ctx, image))

		// Act
		err := repo.UpdateStatus(ctx, image.ID, domain.ImageStatusCompleted)

		// Assert
		require.NoError(t, err)
		found, _ := repo.FindByID(ctx, image.ID)
		assert.Equal(t, domain.ImageStatusCompleted, found.Status)
	})

	t.Run("UpdateStatus - Not Found", func(t *testing.T) {
		// Arrange
		truncate()

		// Act
		err := repo.UpdateStatus(ctx, uuid.New(), domain.ImageStatusCompleted)

		// Assert
		require.ErrorIs(t, err, domain.ErrImageNotFound)
	})

	t.Run("ListCompleted - Only completed, newest first", func(t *testing.T) {
		// Arrange
		truncate()
		older := newImage(domain.ImageStatusCompleted, 10)
		pending := newImage(domain.ImageStatusUploading, 10)
		newer := newImage(domain.ImageStatusCompleted, 10)
		require.NoError(t, repo.Create(ctx, older))
		require.NoError(t, repo.Create(ctx, pending))
		time.Sleep(10 * time.Millisecond)
		require.NoError(t, repo.Create(ctx, newer))

		// Act
		images, err := repo.ListCompleted(ctx)

		// Assert
		require.NoError(t, err)
		require.Len(t, images, 2)
		assert.Equal(t, newer.ID, images[0].ID)
		assert.Equal(t, older.ID, images[1].ID)
	})

	t.Run("ListCompleted - Empty", func(t *testing.T) {
		// Arrange
		truncate()

		// Act
		images, err := repo.ListCompleted(ctx)

		// Assert
		require.NoError(t, err)
		assert.NotNil(t, images)
		assert.Empty(t, images)
	})

	t.Run("Delete - Success", func(t *testing.T) {
		// Arrange
		truncate()
		image := newImage(domain.ImageStatusCompleted, 10)
		require.NoError(t, repo.Create(ctx, image))

		// Act
		err := repo.Delete(ctx, image.ID)

		// Assert
		require.NoError(t, err)
		_, err = repo.FindByID(ctx, image.ID)
		require.ErrorIs(t, err, domain.ErrImageNotFound)
	})

	t.Run("Delete - Not Found", func(t *testing.T) {
		// Arrange
		truncate()

		// Act
		err := repo.Delete(ctx, uuid.New())

		// Assert
		require.ErrorIs(t, err, domain.ErrImageNotFound)
	})

	t.Run("DeleteAll - Returns deleted rows", func(t *testing.T) {
		// Arrange
		truncate()
		require.NoError(t, repo.Create(ctx, newImage(domain.ImageStatusCompleted, 10)))
		require.NoError(t, repo.Create(ctx, newImage(domain.ImageStatusUploading, 20)))

		// Act
		deleted, err := repo.DeleteAll(ctx)

		// Assert
		require.NoError(t, err)
		assert.Len(t, deleted, 2)
		remaining, _ := repo.ListCompleted(ctx)
		assert.Empty(t, remaining)
	})

	t.Run("SumSize - Ignores failed images", func(t *testing.T) {
		// Arrange
		truncate()
		require.NoError(t, repo.Create(ctx, newImage(domain.ImageStatusCompleted, 100)))
		require.NoError(t, repo.Create(ctx, newImage(domain.ImageStatusUploading, 50)))
		require.NoError(t, repo.Create(ctx, newImage(domain.ImageStatusFailed, 1000)))

		// Act
		total, err := repo.SumSize(ctx)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(150), total)
	})

	t.Run("FindStale - Only old uploading rows", func(t *testing.T) {
		// Arrange
		truncate()
		stale := newImage(domain.ImageStatusUploading, 10)
		done := newImage(domain.ImageStatusCompleted, 10)
		require.NoError(t, repo.Create(ctx, stale))
		require.NoError(t, repo.Create(ctx, done))

		// Act
		images, err := repo.FindStale(ctx, time.Now().Add(time.Minute))

		// Assert
		require.NoError(t, err)
		require.Len(t, images, 1)
		assert.Equal(t, stale.ID, images[0].ID)

		none, err := repo.FindStale(ctx, time.Now().Add(-time.Hour))
		require.NoError(t, err)
		assert.Empty(t, none)
	})
}
