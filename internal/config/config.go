package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Env      Env
	Minio    MinioConfig
	Upload   UploadConfig
	NATS     NATSConfig
	Database DatabaseConfig
	Server   ServerConfig
}

type Env struct {
	Env string `envconfig:"ENV" default:"DEV"`
}

type ServerConfig struct {
	Host          string `envconfig:"SERVER_HOST" default:"localhost"`
	Port          string `envconfig:"SERVER_PORT" default:"5000"`
	PublicBaseURL string `envconfig:"PUBLIC_BASE_URL" default:"http://localhost:5000"`
}

type MinioConfig struct {
	Endpoint   string `envconfig:"MINIO_ENDPOINT" required:"true"`
	BucketName string `envconfig:"MINIO_BUCKET_NAME" default:"uploads"`
	AccessKey  string `envconfig:"MINIO_ACCESS_KEY" required:"true"`
	SecretKey  string `envconfig:"MINIO_SECRET_KEY" required:"true"`
	UseSSL     bool   `envconfig:"MINIO_USE_SSL" default:"false"`
}

type UploadConfig struct {
	MaxSize      int64         `envconfig:"UPLOAD_MAX_SIZE" default:"10485760"`         // 10MB
	StorageQuota int64         `envconfig:"UPLOAD_STORAGE_QUOTA" default:"1073741824"` // 1GB
	StaleAfter   time.Duration `envconfig:"UPLOAD_STALE_AFTER" default:"30m"`
	CleanupEvery time.Duration `envconfig:"UPLOAD_CLEANUP_EVERY" default:"15m"`
}

type NATSConfig struct {
	URL          string `envconfig:"NATS_URL" default:"nats://localhost:4222"`
	StreamName   string `envconfig:"NATS_STREAM_NAME" default:"BUCKET_EVENTS"`
	ConsumerName string `envconfig:"NATS_CONSUMER_NAME" default:"snapbox-reconciler"`
	Subject      string `envconfig:"NATS_SUBJECT" default:"minio.uploads"`
	DeliverGroup string `envconfig:"NATS_DELIVER_GROUP"`
}

type DatabaseConfig struct {
	Driver         string        `envconfig:"DB_DRIVER" default:"postgres"`
	SQLitePath     string        `envconfig:"DB_SQLITE_PATH" default:"snapbox.db"`
	Host           string        `envconfig:"DB_HOST" default:"localhost"`
	Port           int           `envconfig:"DB_PORT" default:"5432"`
	User           string        `envconfig:"DB_USER"`
	Password       string        `envconfig:"DB_PASSWORD"`
	Name           string        `envconfig:"DB_NAME" default:"snapbox"`
	SSLMode        string        `envconfig:"DB_SSLMODE" default:"disable"`
	MaxOpenCons    int           `envconfig:"DB_MAX_OPEN_CONS" default:"25"`
	MaxIdleCons    int           `envconfig:"DB_MAX_IDLE_CONS" default:"5"`
	ConMaxLifeTime time.Duration `envconfig:"DB_CONMAX_LIFE_TIME" default:"5m"`
}

// URL is the postgres connection url for the configured database
func (c DatabaseConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     c.Name,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}
	return u.String()
}

// ClientConfig configures snapctl and the client side core
type ClientConfig struct {
	APIURL         string        `envconfig:"SNAPBOX_API_URL" default:"http://localhost:5000"`
	HTTPTimeout    time.Duration `envconfig:"SNAPBOX_HTTP_TIMEOUT" default:"30s"`
	JPEGQuality    int           `envconfig:"SNAPBOX_JPEG_QUALITY" default:"80"`
	Facing         string        `envconfig:"SNAPBOX_FACING" default:"rear"`
	Width          int           `envconfig:"SNAPBOX_WIDTH" default:"1280"`
	Height         int           `envconfig:"SNAPBOX_HEIGHT" default:"720"`
	GalleryMaxSize int64         `envconfig:"SNAPBOX_GALLERY_MAX_SIZE" default:"5242880"` // 5MB
}

// Load loads the storage service config
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadDatabase loads only the database config, for tools that do not touch storage
func LoadDatabase() (*DatabaseConfig, error) {
	var cfg DatabaseConfig

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadClient loads the client config
func LoadClient() (*ClientConfig, error) {
	var cfg ClientConfig

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
