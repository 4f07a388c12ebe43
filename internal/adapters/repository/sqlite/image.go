package sqlite

import (
	"context"
	"errors"
	"fmt"
	"snapbox/internal/core/domain"
	"snapbox/internal/core/port"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// imageRecord is the gorm model of an image row
type imageRecord struct {
	ID           string  `gorm:"primaryKey;type:text"`
	ClientID     *string `gorm:"uniqueIndex"`
	Filename     string  `gorm:"uniqueIndex;not null"`
	OriginalName string  `gorm:"not null"`
	MimeType     string  `gorm:"not null"`
	SizeBytes    int64   `gorm:"not null"`
	Source       string  `gorm:"not null"`
	StorageKey   string  `gorm:"uniqueIndex;not null"`
	Status       string  `gorm:"index;not null"`
	CapturedAt   time.Time
	CreatedAt    time.Time `gorm:"index"`
	UpdatedAt    time.Time
}

func (imageRecord) TableName() string {
	return "images"
}

func fromDomain(image domain.ImageMetadata) imageRecord {
	r := imageRecord{
		ID:           image.ID.String(),
		Filename:     image.Filename,
		OriginalName: image.OriginalName,
		MimeType:     image.MimeType,
		SizeBytes:    image.SizeBytes,
		Source:       string(image.Source),
		StorageKey:   image.StorageKey,
		Status:       string(image.Status),
		CapturedAt:   image.CapturedAt.UTC(),
		CreatedAt:    image.CreatedAt.UTC(),
		UpdatedAt:    image.UpdatedAt.UTC(),
	}
	if image.ClientID != "" {
		clientID := image.ClientID
		r.ClientID = &clientID
	}
	return r
}

func (r imageRecord) toDomain() (domain.ImageMetadata, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return domain.ImageMetadata{}, fmt.Errorf("invalid image id %q: %w", r.ID, err)
	}
	image := domain.ImageMetadata{
		ID:           id,
		Filename:     r.Filename,
		OriginalName: r.OriginalName,
		MimeType:     r.MimeType,
		SizeBytes:    r.SizeBytes,
		Source:       domain.Source(r.Source),
		StorageKey:   r.StorageKey,
		Status:       domain.ImageStatus(r.Status),
		CapturedAt:   r.CapturedAt,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	if r.ClientID != nil {
		image.ClientID = *r.ClientID
	}
	return image, nil
}

type gormImageRepository struct {
	db *gorm.DB
}

// NewGormImageRepository creates a port.ImageRepository backed by gorm
func NewGormImageRepository(db *gorm.DB) port.ImageRepository {
	return &gormImageRepository{db: db}
}

func (g *gormImageRepository) Create(ctx context.Context, image domain.ImageMetadata) error {
	record := fromDomain(image)
	if err := g.db.WithContext(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: image %s", domain.ErrAlreadyExists, image.ID)
		}
		return fmt.Errorf("error inserting image: %w", err)
	}
	return nil
}

func (g *gormImageRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.ImageMetadata, error) {
	return g.first(ctx, "id = ?", id.String())
}

func (g *gormImageRepository) FindByClientID(ctx context.Context, clientID string) (*domain.ImageMetadata, error) {
	return g.first(ctx, "client_id = ?", clientID)
}

func (g *gormImageRepository) FindByStorageKey(ctx context.Context, storageKey string) (*domain.ImageMetadata, error) {
	return g.first(ctx, "storage_key = ?", storageKey)
}

func (g *gormImageRepository) FindByFilename(ctx context.Context, filename string) (*domain.ImageMetadata, error) {
	return g.first(ctx, "filename = ?", filename)
}

func (g *gormImageRepository) first(ctx context.Context, query string, arg any) (*domain.ImageMetadata, error) {
	var record imageRecord
	if err := g.db.WithContext(ctx).Where(query, arg).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrImageNotFound
		}
		return nil, err
	}
	image, err := record.toDomain()
	if err != nil {
		return nil, err
	}
	return &image, nil
}

func (g *gormImageRepository) ListCompleted(ctx context.Context) ([]domain.ImageMetadata, error) {
	var records []imageRecord
	err := g.db.WithContext(ctx).
		Where("status = ?", domain.ImageStatusCompleted).
		Order("created_at DESC").
		Order("id").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("error querying images: %w", err)
	}
	return toDomainList(records)
}

func (g *gormImageRepository) FindStale(ctx context.Context, olderThan time.Time) ([]domain.ImageMetadata, error) {
	var records []imageRecord
	err := g.db.WithContext(ctx).
		Where("status = ? AND updated_at < ?", domain.ImageStatusUploading, olderThan.UTC()).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("error querying stale images: %w", err)
	}
	return toDomainList(records)
}

func (g *gormImageRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ImageStatus) error {
	result := g.db.WithContext(ctx).
		Model(&imageRecord{}).
		Where("id = ?", id.String()).
		Updates(map[string]any{"status": string(status), "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return fmt.Errorf("error updating image: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrImageNotFound
	}
	return nil
}

func (g *gormImageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := g.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&imageRecord{})
	if result.Error != nil {
		return fmt.Errorf("error deleting image: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrImageNotFound
	}
	return nil
}

func (g *gormImageRepository) DeleteAll(ctx context.Context) ([]domain.ImageMetadata, error) {
	var records []imageRecord
	if err := g.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("error querying images: %w", err)
	}

	err := g.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&imageRecord{}).Error
	if err != nil {
		return nil, fmt.Errorf("error deleting images: %w", err)
	}
	return toDomainList(records)
}

func (g *gormImageRepository) SumSize(ctx context.Context) (int64, error) {
	var total int64
	err := g.db.WithContext(ctx).
		Model(&imageRecord{}).
		Where("status <> ?", domain.ImageStatusFailed).
		Select("COALESCE(SUM(size_bytes), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("error summing image sizes: %w", err)
	}
	return total, nil
}

func toDomainList(records []imageRecord) ([]domain.ImageMetadata, error) {
	images := make([]domain.ImageMetadata, 0, len(records))
	for _, r := range records {
		image, err := r.toDomain()
		if err != nil {
			return nil, err
		}
		images = append(images, image)
	}
	return images, nil
}
