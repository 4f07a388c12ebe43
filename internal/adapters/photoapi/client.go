package photoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"snapbox/internal/config"
	"snapbox/internal/core/domain"
	"snapbox/internal/core/port"
	"strings"
	"time"
)

type client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a photo store talking to the storage service REST API
func NewClient(cfg config.ClientConfig, logger *slog.Logger) port.PhotoStore {
	return &client{
		baseURL:    strings.TrimRight(cfg.APIURL, "/"),
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
		logger:     logger,
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type imageDTO struct {
	ID           string     `json:"id"`
	ClientID     string     `json:"client_id"`
	Filename     string     `json:"filename"`
	OriginalName string     `json:"originalname"`
	Size         int64      `json:"size"`
	URL          string     `json:"url"`
	MimeType     string     `json:"mimetype"`
	Source       string     `json:"source"`
	CreatedAt    time.Time  `json:"created_at"`
	CapturedAt   *time.Time `json:"captured_at"`
}

type storageDTO struct {
	Used      int64 `json:"used"`
	Available int64 `json:"available"`
}

func (d imageDTO) toPhoto() domain.Photo {
	source, err := domain.ParseSource(d.Source)
	if err != nil {
		source = domain.SourceGallery
	}
	capturedAt := d.CreatedAt
	if d.CapturedAt != nil {
		capturedAt = *d.CapturedAt
	}
	name := d.OriginalName
	if name == "" {
		name = d.Filename
	}
	return domain.Photo{
		ID:         d.ID,
		Name:       name,
		URL:        d.URL,
		MimeType:   d.MimeType,
		Size:       d.Size,
		Source:     source,
		CapturedAt: capturedAt,
	}
}

func imagePartHeader(photo domain.Photo) textproto.MIMEHeader {
	mimeType := photo.MimeType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, photo.Name))
	h.Set("Content-Type", mimeType)
	return h
}

// Upload sends the photo as multipart form data under the image field
func (c *client) Upload(ctx context.Context, photo domain.Photo) (*domain.Photo, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreatePart(imagePartHeader(photo))
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(photo.Content); err != nil {
		return nil, err
	}
	fields := map[string]string{
		"id":     photo.ID,
		"source": string(photo.Source),
	}
	if !photo.CapturedAt.IsZero() {
		fields["captured_at"] = photo.CapturedAt.UTC().Format(time.RFC3339Nano)
	}
	for k, v := range fields {
		if v == "" {
			continue
		}
		if err := writer.WriteField(k, v); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	var dto imageDTO
	if err := c.do(ctx, http.MethodPost, "/api/upload-image", body, writer.FormDataContentType(), &dto); err != nil {
		return nil, err
	}
	saved := dto.toPhoto()
	return &saved, nil
}

func (c *client) List(ctx context.Context) ([]domain.Photo, error) {
	var dtos []imageDTO
	if err := c.do(ctx, http.MethodGet, "/api/images", nil, "", &dtos); err != nil {
		return nil, err
	}
	photos := make([]domain.Photo, 0, len(dtos))
	for _, d := range dtos {
		photos = append(photos, d.toPhoto())
	}
	return photos, nil
}

func (c *client) Get(ctx context.Context, id string) (*domain.Photo, error) {
	var dto imageDTO
	if err := c.do(ctx, http.MethodGet, "/api/images/"+url.PathEscape(id), nil, "", &dto); err != nil {
		return nil, err
	}
	photo := dto.toPhoto()
	return &photo, nil
}

func (c *client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/images/"+url.PathEscape(id), nil, "", nil)
}

func (c *client) DeleteAll(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/images", nil, "", nil)
}

func (c *client) StorageInfo(ctx context.Context) (domain.StorageInfo, error) {
	var dto storageDTO
	if err := c.do(ctx, http.MethodGet, "/api/storage", nil, "", &dto); err != nil {
		return domain.StorageInfo{}, err
	}
	return domain.StorageInfo{Used: dto.Used, Available: dto.Available}, nil
}

// do performs one request and decodes the envelope data into out.
// Transport failures wrap domain.ErrNetwork, refused requests are *domain.RejectedError.
func (c *client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("storage service call", "method", method, "path", path, "status", resp.StatusCode, "duration", time.Since(start))

	var env envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &domain.RejectedError{Status: resp.StatusCode, Message: env.Message}
	}
	if decodeErr != nil {
		return &domain.RejectedError{Status: resp.StatusCode, Message: "invalid response body"}
	}
	if !env.Success {
		return &domain.RejectedError{Status: resp.StatusCode, Message: env.Message}
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &domain.RejectedError{Status: resp.StatusCode, Message: "invalid response data"}
	}
	return nil
}
