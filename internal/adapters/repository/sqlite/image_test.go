package sqlite_test

import (
	"context"
	"snapbox/internal/adapters/repository/sqlite"
	"snapbox/internal/core/domain"
	"snapbox/internal/core/port"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) (port.ImageRepository, port.UnitOfWork) {
	t.Helper()
	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return sqlite.NewGormImageRepository(db), sqlite.NewUnitOfWork(db)
}

func newImage(status domain.ImageStatus, size int64, createdAt time.Time) domain.ImageMetadata {
	id := uuid.New()
	return domain.ImageMetadata{
		ID:           id,
		Filename:     id.String() + ".jpg",
		OriginalName: "beach.jpg",
		MimeType:     "image/jpeg",
		SizeBytes:    size,
		Source:       domain.SourceGallery,
		StorageKey:   "images/" + id.String() + ".jpg",
		Status:       status,
		CapturedAt:   createdAt,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
}

func TestGormImageRepository_CreateAndFind(t *testing.T) {
	// Arrange
	ctx := context.Background()
	repo, _ := newRepo(t)
	image := newImage(domain.ImageStatusCompleted, 2097152, time.Now().UTC())
	image.ClientID = "photo_1"

	// Act
	err := repo.Create(ctx, image)

	// Assert
	require.NoError(t, err)

	byID, err := repo.FindByID(ctx, image.ID)
	require.NoError(t, err)
	assert.Equal(t, image.ID, byID.ID)
	assert.Equal(t, "photo_1", byID.ClientID)
	assert.Equal(t, domain.SourceGallery, byID.Source)
	assert.Equal(t, int64(2097152), byID.SizeBytes)

	byClient, err := repo.FindByClientID(ctx, "photo_1")
	require.NoError(t, err)
	assert.Equal(t, image.ID, byClient.ID)

	byKey, err := repo.FindByStorageKey(ctx, image.StorageKey)
	require.NoError(t, err)
	assert.Equal(t, image.ID, byKey.ID)

	byName, err := repo.FindByFilename(ctx, image.Filename)
	require.NoError(t, err)
	assert.Equal(t, image.ID, byName.ID)
}

func TestGormImageRepository_NotFound(t *testing.T) {
	// Arrange
	ctx := context.Background()
	repo, _ := newRepo(t)

	// Act
	_, errFind := repo.FindByID(ctx, uuid.New())
	errUpdate := repo.UpdateStatus(ctx, uuid.New(), domain.ImageStatusCompleted)
	errDelete := repo.Delete(ctx, uuid.New())

	// Assert
	assert.ErrorIs(t, errFind, domain.ErrImageNotFound)
	assert.ErrorIs(t, errUpdate, domain.ErrImageNotFound)
	assert.ErrorIs(t, errDelete, domain.ErrImageNotFound)
}

func TestGormImageRepository_DuplicateClientID(t *testing.T) {
	// Arrange
	ctx := context.Background()
	repo, _ := newRepo(t)
	first := newImage(domain.ImageStatusCompleted, 10, time.Now().UTC())
	first.ClientID = "photo_dup"
	second := newImage(domain.ImageStatusCompleted, 10, time.Now().UTC())
	second.ClientID = "photo_dup"
	require.NoError(t, repo.Create(ctx, first))

	// Act
	err := repo.Create(ctx, second)

	// Assert
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	require.NoError(t, repo.Create(ctx, newImage(domain.ImageStatusCompleted, 10, time.Now().UTC())))
	require.NoError(t, repo.Create(ctx, newImage(domain.ImageStatusCompleted, 10, time.Now().UTC())))
}

func TestGormImageRepository_ListCompleted(t *testing.T) {
	// Arrange
	ctx := context.Background()
	repo, _ := newRepo(t)
	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	older := newImage(domain.ImageStatusCompleted, 10, base)
	newer := newImage(domain.ImageStatusCompleted, 10, base.Add(time.Minute))
	pending := newImage(domain.ImageStatusUploading, 10, base.Add(2*time.Minute))
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))
	require.NoError(t, repo.Create(ctx, pending))

	// Act
	images, err := repo.ListCompleted(ctx)

	// Assert
	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.Equal(t, newer.ID, images[0].ID)
	assert.Equal(t, older.ID, images[1].ID)
}

func TestGormImageRepository_UpdateStatusAndStale(t *testing.T) {
	// Arrange
	ctx := context.Background()
	repo, _ := newRepo(t)
	old := time.Now().UTC().Add(-time.Hour)
	stale := newImage(domain.ImageStatusUploading, 10, old)
	finished := newImage(domain.ImageStatusUploading, 10, old)
	require.NoError(t, repo.Create(ctx, stale))
	require.NoError(t, repo.Create(ctx, finished))

	// Act
	err := repo.UpdateStatus(ctx, finished.ID, domain.ImageStatusCompleted)

	// Assert
	require.NoError(t, err)
	images, err := repo.FindStale(ctx, time.Now().Add(-30*time.Minute))
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, stale.ID, images[0].ID)
}

func TestGormImageRepository_SumSizeAndDeleteAll(t *testing.T) {
	// Arrange
	ctx := context.Background()
	repo, _ := newRepo(t)
	now := time.Now().UTC()
	require.NoError(t, repo.Create(ctx, newImage(domain.ImageStatusCompleted, 100, now)))
	require.NoError(t, repo.Create(ctx, newImage(domain.ImageStatusUploading, 50, now)))
	require.NoError(t, repo.Create(ctx, newImage(domain.ImageStatusFailed, 1000, now)))

	// Act
	total, errSum := repo.SumSize(ctx)
	deleted, errDelete := repo.DeleteAll(ctx)

	// Assert
	require.NoError(t, errSum)
	assert.Equal(t, int64(150), total)
	require.NoError(t, errDelete)
	assert.Len(t, deleted, 3)
	after, err := repo.SumSize(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), after)
}

func TestGormUnitOfWork_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("Should commit when no error", func(t *testing.T) {
		// Arrange
		repo, uow := newRepo(t)
		image := newImage(domain.ImageStatusUploading, 10, time.Now().UTC())

		// Act
		err := uow.Execute(ctx, func(u port.UnitOfWork) error {
			if err := u.ImageRepo().Create(ctx, image); err != nil {
				return err
			}
			return u.ImageRepo().UpdateStatus(ctx, image.ID, domain.ImageStatusCompleted)
		})

		// Assert
		require.NoError(t, err)
		found, err := repo.FindByID(ctx, image.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.ImageStatusCompleted, found.Status)
	})

	t.Run("Should rollback when error occurs", func(t *testing.T) {
		// Arrange
		repo, uow := newRepo(t)
		image := newImage(domain.ImageStatusUploading, 10, time.Now().UTC())

		// Act
		err := uow.Execute(ctx, func(u port.UnitOfWork) error {
			_ = u.ImageRepo().Create(ctx, image)
			return assert.AnError
		})

		// Assert
		require.ErrorIs(t, err, assert.AnError)
		_, err = repo.FindByID(ctx, image.ID)
		assert.ErrorIs(t, err, domain.ErrImageNotFound)
	})
}
