package nats_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	natsconsumer "snapbox/internal/adapters/eventbroker/nats"
	"snapbox/internal/config"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const bucketEvent = `{"EventName":"s3:ObjectCreated:Put","Key":"uploads/images/a.jpg","Records":[{"eventName":"s3:ObjectCreated:Put","s3":{"bucket":{"name":"uploads"},"object":{"key":"images%2Fa.jpg","size":2048}}}]}`

type mockHandler struct {
	messages [][]byte
	received chan struct{}
	err      error
	mu       sync.Mutex
}

func (m *mockHandler) HandleMessage(ctx context.Context, data []byte) error {
	m.mu.Lock()
	m.messages = append(m.messages, data)
	m.mu.Unlock()

	if m.received != nil {
		select {
		case m.received <- struct{}{}:
		default:
		}
	}
	return m.err
}

func (m *mockHandler) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.messages)
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func setupNATSContainer(t *testing.T) (string, func()) {
	t.Helper()
	if testing.Short() {
		t.Skip("nats container tests skipped in short mode")
	}
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "nats:2.10-alpine",
		ExposedPorts: []string{"4222/tcp"},
		Cmd:          []string{"-js"},
		WaitingFor:   wait.ForLog("Server is ready"),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "4222")
	require.NoError(t, err)

	cleanup := func() {
		_ = container.Terminate(ctx)
	}

	return "nats://" + host + ":" + port.Port(), cleanup
}

// newPublisher connects a plain client and creates the stream through the consumer under test
func newPublisher(t *testing.T, natsURL string, consumer *natsconsumer.Consumer) jetstream.JetStream {
	t.Helper()
	nc, err := nats.Connect(natsURL)
	require.NoError(t, err)
	t.Cleanup(nc.Close)

	js, err := jetstream.New(nc)
	require.NoError(t, err)

	require.NoError(t, consumer.EnsureStream(context.Background()))
	return js
}

func TestConsumer_EnsureStream_Idempotent(t *testing.T) {
	// Arrange
	natsURL, cleanup := setupNATSContainer(t)
	defer cleanup()
	cfg := config.NATSConfig{URL: natsURL, StreamName: "BUCKET_EVENTS", Subject: "minio.uploads", ConsumerName: "ensure"}
	consumer, err := natsconsumer.NewNATSConsumer(cfg, discardLogger)
	require.NoError(t, err)
	defer consumer.Close()
	ctx := context.Background()

	// Act
	errFirst := consumer.EnsureStream(ctx)
	errSecond := consumer.EnsureStream(ctx)

	// Assert
	require.NoError(t, errFirst)
	require.NoError(t, errSecond)
}

func TestConsumer_Subscribe(t *testing.T) {
	// Arrange
	natsURL, cleanup := setupNATSContainer(t)
	defer cleanup()

	cfg := config.NATSConfig{
		URL:          natsURL,
		StreamName:   "BUCKET_EVENTS",
		Subject:      "minio.uploads",
		ConsumerName: "snapbox-reconciler",
	}
	consumer, err := natsconsumer.NewNATSConsumer(cfg, discardLogger)
	require.NoError(t, err)
	defer consumer.Close()
	js := newPublisher(t, natsURL, consumer)

	handler := &mockHandler{received: make(chan struct{}, 1)}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Act
	err = consumer.Subscribe(ctx, handler)
	require.NoError(t, err)

	_, err = js.Publish(ctx, cfg.Subject, []byte(bucketEvent))
	require.NoError(t, err)

	select {
	case <-handler.received:
	case <-time.After(3 * time.Second):
		t.Fatal("message not received")
	}

	// Assert
	require.Equal(t, 1, handler.count())
	handler.mu.Lock()
	assert.JSONEq(t, bucketEvent, string(handler.messages[0]))
	handler.mu.Unlock()
}

func TestConsumer_Subscribe_HandlerErrorRedelivers(t *testing.T) {
	// Arrange
	natsURL, cleanup := setupNATSContainer(t)
	defer cleanup()

	cfg := config.NATSConfig{URL: natsURL, StreamName: "RETRY_EVENTS", Subject: "retry.uploads", ConsumerName: "retry-worker"}
	consumer, err := natsconsumer.NewNATSConsumer(cfg, discardLogger)
	require.NoError(t, err)
	defer consumer.Close()
	js := newPublisher(t, natsURL, consumer)

	handler := &mockHandler{
		received: make(chan struct{}, 3),
		err:      assert.AnError,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Act
	require.NoError(t, consumer.Subscribe(ctx, handler))
	_, err = js.Publish(ctx, cfg.Subject, []byte(bucketEvent))
	require.NoError(t, err)

	// Assert
	for i := 0; i < 3; i++ {
		select {
		case <-handler.received:
		case <-time.After(4 * time.Second):
			t.Fatalf("delivery %d not received", i+1)
		}
	}
	assert.GreaterOrEqual(t, handler.count(), 3)
}

func TestConsumer_GracefulShutdown(t *testing.T) {
	// Arrange
	natsURL, cleanup := setupNATSContainer(t)
	defer cleanup()

	cfg := config.NATSConfig{URL: natsURL, StreamName: "SHUTDOWN_EVENTS", Subject: "shutdown.uploads", ConsumerName: "shutdown-worker"}
	consumer, err := natsconsumer.NewNATSConsumer(cfg, discardLogger)
	require.NoError(t, err)
	js := newPublisher(t, natsURL, consumer)

	handler := &mockHandler{received: make(chan struct{}, 1)}

	// Act
	require.NoError(t, consumer.Subscribe(context.Background(), handler))
	require.NoError(t, consumer.Close())
	require.NoError(t, consumer.Close())
	_, err = js.Publish(context.Background(), cfg.Subject, []byte("late-data"))
	require.NoError(t, err)

	// Assert
	select {
	case <-handler.received:
		t.Fatal("message should not have been processed after Close")
	case <-time.After(500 * time.Millisecond):
	}
}
