package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"snapbox/internal/core/domain"
	"snapbox/internal/core/port"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

const imageColumns = `id, client_id, filename, original_name, mime_type, size_bytes, source,
       storage_key, status, captured_at, created_at, updated_at`

type sqlImageRepository struct {
	db SQLQuerier
}

// NewSqlImageRepository creates sqlImageRepository that implements port.ImageRepository
func NewSqlImageRepository(db SQLQuerier) port.ImageRepository {
	return &sqlImageRepository{
		db: db,
	}
}

// Create creates new image entry
func (s *sqlImageRepository) Create(ctx context.Context, image domain.ImageMetadata) error {
	query := `INSERT INTO images (id, client_id, filename, original_name, mime_type, size_bytes, source,
                                  storage_key, status, captured_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	clientID := sql.NullString{String: image.ClientID, Valid: image.ClientID != ""}
	_, err := s.db.ExecContext(ctx, query, image.ID, clientID, image.Filename, image.OriginalName, image.MimeType,
		image.SizeBytes, image.Source, image.StorageKey, image.Status, image.CapturedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("%w: %s", domain.ErrAlreadyExists, pqErr.Constraint)
		}
		return fmt.Errorf("error inserting image: %w", err)
	}
	return nil
}

// FindByID finds by id
func (s *sqlImageRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.ImageMetadata, error) {
	return s.findOne(ctx, `SELECT `+imageColumns+` FROM images WHERE id = $1`, id)
}

// FindByClientID finds by the identifier the client assigned
func (s *sqlImageRepository) FindByClientID(ctx context.Context, clientID string) (*domain.ImageMetadata, error) {
	return s.findOne(ctx, `SELECT `+imageColumns+` FROM images WHERE client_id = $1`, clientID)
}

// FindByStorageKey finds by object key
func (s *sqlImageRepository) FindByStorageKey(ctx context.Context, storageKey string) (*domain.ImageMetadata, error) {
	return s.findOne(ctx, `SELECT `+imageColumns+` FROM images WHERE storage_key = $1`, storageKey)
}

// FindByFilename finds by public filename
func (s *sqlImageRepository) FindByFilename(ctx context.Context, filename string) (*domain.ImageMetadata, error) {
	return s.findOne(ctx, `SELECT `+imageColumns+` FROM images WHERE filename = $1`, filename)
}

func (s *sqlImageRepository) findOne(ctx context.Context, query string, arg any) (*domain.ImageMetadata, error) {
	var dbImage dbImageMetadata
	err := dbImage.scan(s.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrImageNotFound
		}
		return nil, err
	}
	return dbImage.ToDomain(), nil
}

// ListCompleted lists stored images, newest first
func (s *sqlImageRepository) ListCompleted(ctx context.Context) ([]domain.ImageMetadata, error) {
	query := `SELECT ` + imageColumns + `
              FROM images
              WHERE status = 'completed'
              ORDER BY created_at DESC, id`

	return s.list(ctx, query)
}

// FindStale finds uploads stuck in uploading since before olderThan
func (s *sqlImageRepository) FindStale(ctx context.Context, olderThan time.Time) ([]domain.ImageMetadata, error) {
	query := `SELECT ` + imageColumns + `
              FROM images
              WHERE status = 'uploading'
                AND updated_at < $1`

	return s.list(ctx, query, olderThan)
}

// DeleteAll deletes every image and returns the deleted rows
func (s *sqlImageRepository) DeleteAll(ctx context.Context) ([]domain.ImageMetadata, error) {
	return s.list(ctx, `DELETE FROM images RETURNING `+imageColumns)
}

func (s *sqlImageRepository) list(ctx context.Context, query string, args ...any) ([]domain.ImageMetadata, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying images: %w", err)
	}
	defer rows.Close()

	images := []domain.ImageMetadata{}
	for rows.Next() {
		var dbImage dbImageMetadata
		if err := dbImage.scan(rows); err != nil {
			return nil, fmt.Errorf("error scanning image: %w", err)
		}
		images = append(images, *dbImage.ToDomain())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating images: %w", err)
	}

	return images, nil
}

// UpdateStatus updates status
func (s *sqlImageRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ImageStatus) error {
	query := `UPDATE images
              SET status = $1, updated_at = now()
              WHERE id = $2`

	result, err := s.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("error updating image: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return domain.ErrImageNotFound
	}

	return nil
}

// Delete deletes an image row
func (s *sqlImageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM images WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting image: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrImageNotFound
	}
	return nil
}

// SumSize returns the bytes held by images that are not failed
func (s *sqlImageRepository) SumSize(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(size_bytes), 0) FROM images WHERE status <> 'failed'`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("error summing image sizes: %w", err)
	}
	return total, nil
}

type scanner interface {
	Scan(dest ...any) error
}

// dbImageMetadata represents an image row
type dbImageMetadata struct {
	ID           uuid.UUID      `db:"id"`
	ClientID     sql.NullString `db:"client_id"`
	Filename     string         `db:"filename"`
	OriginalName string         `db:"original_name"`
	MimeType     string         `db:"mime_type"`
	Size         int64          `db:"size_bytes"`
	Source       string         `db:"source"`
	StorageKey   string         `db:"storage_key"`
	Status       string         `db:"status"`
	CapturedAt   time.Time      `db:"captured_at"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

func (i *dbImageMetadata) scan(row scanner) error {
	return row.Scan(
		&i.ID,
		&i.ClientID,
		&i.Filename,
		&i.OriginalName,
		&i.MimeType,
		&i.Size,
		&i.Source,
		&i.StorageKey,
		&i.Status,
		&i.CapturedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
}

// ToDomain converts to domain.ImageMetadata
func (i *dbImageMetadata) ToDomain() *domain.ImageMetadata {
	return &domain.ImageMetadata{
		ID:           i.ID,
		ClientID:     i.ClientID.String,
		Filename:     i.Filename,
		OriginalName: i.OriginalName,
		MimeType:     i.MimeType,
		SizeBytes:    i.Size,
		Source:       domain.Source(i.Source),
		StorageKey:   i.StorageKey,
		Status:       domain.ImageStatus(i.Status),
		CapturedAt:   i.CapturedAt,
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}
