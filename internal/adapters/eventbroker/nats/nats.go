package nats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"snapbox/internal/config"
	"snapbox/internal/core/port"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const (
	maxDeliver = 5
	ackWait    = 10 * time.Second
)

// redeliveryDelays is how long a refused bucket event waits before its next attempt
var redeliveryDelays = []time.Duration{100 * time.Millisecond, 500 * time.Millisecond, 2 * time.Second, 5 * time.Second}

var _ port.EventConsumer = (*Consumer)(nil)

// Consumer reads bucket notifications from a JetStream stream
type Consumer struct {
	logger *slog.Logger
	conn   *nats.Conn
	js     jetstream.JetStream
	config config.NATSConfig
	iter   jetstream.MessagesContext
	done   chan struct{}
	wg     sync.WaitGroup
	once   sync.Once
}

// NewNATSConsumer connects to NATS and JetStream
func NewNATSConsumer(cfg config.NATSConfig, logger *slog.Logger) (*Consumer, error) {

	opts := []nats.Option{
		nats.Name(cfg.ConsumerName),
		nats.ReconnectWait(2 * time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			logger.Warn("NATS disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
	}
	conn, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to connect to JetStream: %w", err)
	}

	return &Consumer{
		conn:   conn,
		js:     js,
		config: cfg,
		logger: logger,
		done:   make(chan struct{}),
	}, nil
}

// EnsureStream creates the stream MinIO publishes to when it does not exist yet
func (n *Consumer) EnsureStream(ctx context.Context) error {
	_, err := n.js.Stream(ctx, n.config.StreamName)
	if err == nil {
		return nil
	}
	if !errors.Is(err, jetstream.ErrStreamNotFound) {
		return fmt.Errorf("failed to look up stream %s: %w", n.config.StreamName, err)
	}

	_, err = n.js.CreateStream(ctx, jetstream.StreamConfig{
		Name:      n.config.StreamName,
		Subjects:  []string{n.config.Subject},
		Retention: jetstream.WorkQueuePolicy,
		MaxAge:    24 * time.Hour,
	})
	if err != nil {
		return fmt.Errorf("failed to create stream %s: %w", n.config.StreamName, err)
	}
	n.logger.Info("NATS stream created", "stream", n.config.StreamName, "subject", n.config.Subject)
	return nil
}

// Subscribe consumes the stream in the background until ctx is done or Close is called.
// A message is acked when the handler succeeds and nacked with a growing delay otherwise.
func (n *Consumer) Subscribe(ctx context.Context, handler port.MessageService) error {
	consumerCfg := jetstream.ConsumerConfig{
		Durable:       n.config.ConsumerName,
		AckPolicy:     jetstream.AckExplicitPolicy,
		FilterSubject: n.config.Subject,
		AckWait:       ackWait,
		DeliverGroup:  n.config.DeliverGroup,
		MaxDeliver:    maxDeliver,
	}

	cons, err := n.js.CreateOrUpdateConsumer(ctx, n.config.StreamName, consumerCfg)
	if err != nil {
		return err
	}

	iter, err := cons.Messages()
	if err != nil {
		return err
	}
	n.iter = iter

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		n.logger.Info("NATS subscription started", "stream", n.config.StreamName, "consumer", n.config.ConsumerName)
		for {
			msg, err := iter.Next()
			if err != nil {
				if ctx.Err() != nil || errors.Is(err, jetstream.ErrMsgIteratorClosed) {
					n.logger.Info("NATS subscription stopped")
					return
				}
				n.logger.Error("failed to receive message", "error", err)
				return
			}

			n.handle(ctx, handler, msg)
		}
	}()

	go func() {
		select {
		case <-ctx.Done():
			iter.Stop()
		case <-n.done:
		}
	}()
	return nil
}

func (n *Consumer) handle(ctx context.Context, handler port.MessageService, msg jetstream.Msg) {
	handleErr := handler.HandleMessage(ctx, msg.Data())
	if handleErr == nil {
		if err := msg.Ack(); err != nil {
			n.logger.Error("failed to ack message", "error", err)
		}
		return
	}

	attempt := uint64(1)
	if meta, err := msg.Metadata(); err == nil {
		attempt = meta.NumDelivered
	}
	n.logger.Warn("failed to handle message", "error", handleErr, "attempt", attempt)

	if err := msg.NakWithDelay(redeliveryDelay(attempt)); err != nil {
		n.logger.Error("failed to nak message", "error", err)
	}
}

func redeliveryDelay(attempt uint64) time.Duration {
	if attempt == 0 {
		attempt = 1
	}
	i := int(attempt) - 1
	if i >= len(redeliveryDelays) {
		i = len(redeliveryDelays) - 1
	}
	return redeliveryDelays[i]
}

// Close stops the subscription, waits for the in-flight message and closes the connection
func (n *Consumer) Close() error {
	n.once.Do(func() {
		close(n.done)
		if n.iter != nil {
			n.iter.Stop()
		}

		n.wg.Wait()

		if n.conn != nil {
			n.conn.Close()
		}
	})
	return nil
}
