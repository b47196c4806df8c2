package kafka

import (
	"context"
	"errors"
	"strconv"
	"time"

	kafka "github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"supplychain-admin/internal/metrics"
	"supplychain-admin/internal/service"
)

type Config struct {
	Brokers     []string
	GroupID     string
	Topic       string
	DLQ         string
	MaxRetries  int
	BaseBackoff time.Duration
}

// reader is the part of *kafka.Reader the consumer uses.
type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer applies delivery-status messages. Messages that can never succeed go to
// the DLQ topic at once; the rest are retried with backoff first.
type Consumer struct {
	reader reader
	dlq    writer
	svc    service.StatusHandler
	cfg    Config
	sleep  func(ctx context.Context, d time.Duration)
}

func NewConsumer(cfg Config, svc service.StatusHandler) *Consumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.Brokers,
		GroupID:        cfg.GroupID,
		Topic:          cfg.Topic,
		MinBytes:       1,
		MaxBytes:       10e6,
		MaxWait:        100 * time.Millisecond,
		CommitInterval: 0,
	})
	var w writer
	if cfg.DLQ != "" {
		w = &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Brokers...),
			Topic:                  cfg.DLQ,
			RequiredAcks:           kafka.RequireAll,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
			BatchTimeout:           10 * time.Millisecond,
		}
	}
	return newConsumer(cfg, r, w, svc)
}

func newConsumer(cfg Config, r reader, w writer, svc service.StatusHandler) *Consumer {
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.BaseBackoff <= 0 {
		cfg.BaseBackoff = 200 * time.Millisecond
	}
	return &Consumer{reader: r, dlq: w, svc: svc, cfg: cfg, sleep: sleepCtx}
}

func (c *Consumer) Subscribe(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			logrus.WithError(err).Error("kafka fetch")
			c.sleep(ctx, 300*time.Millisecond)
			continue
		}

		log := logrus.WithFields(logrus.Fields{
			"topic": m.Topic, "partition": m.Partition, "offset": m.Offset, "key": string(m.Key),
		})
		log.Debug("fetched")

		attempts, last := c.handle(ctx, m)
		if last == nil {
			metrics.StatusMessage("ok")
			if err := c.reader.CommitMessages(ctx, m); err != nil {
				log.WithError(err).Error("commit failed")
			}
			continue
		}
		if ctx.Err() != nil {
			return nil
		}

		if c.dlq != nil {
			if err := c.dlq.WriteMessages(ctx, c.dlqMessage(m, last, attempts)); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				// not committed, so the message is fetched again
				log.WithError(err).Error("write to DLQ failed")
				c.sleep(ctx, 500*time.Millisecond)
				continue
			}
			metrics.StatusMessage("dlq")
			log.WithError(last).WithField("attempts", attempts).Warn("message sent to DLQ")
		} else {
			log.WithError(last).Warn("DLQ disabled, drop message")
		}

		if err := c.reader.CommitMessages(ctx, m); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			log.WithError(err).Error("commit after DLQ failed")
		}
	}
}

// handle runs the message through the service, retrying transient failures.
func (c *Consumer) handle(ctx context.Context, m kafka.Message) (int, error) {
	var last error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			metrics.StatusMessage("retry")
			c.sleep(ctx, backoff(attempt, c.cfg.BaseBackoff))
			if ctx.Err() != nil {
				return attempt, ctx.Err()
			}
		}
		last = c.svc.HandleStatusMessage(ctx, m.Value)
		if last == nil || isNonRetryable(last) {
			return attempt + 1, last
		}
	}
	return c.cfg.MaxRetries + 1, last
}

func (c *Consumer) dlqMessage(m kafka.Message, reason error, attempts int) kafka.Message {
	headers := append([]kafka.Header{}, m.Headers...)
	headers = append(headers,
		kafka.Header{Key: "x-dlq-reason", Value: []byte(trimErr(reason))},
		kafka.Header{Key: "x-dlq-attempts", Value: []byte(strconv.Itoa(attempts))},
		kafka.Header{Key: "x-dlq-ts", Value: []byte(time.Now().UTC().Format(time.RFC3339))},
		kafka.Header{Key: "x-dlq-source-topic", Value: []byte(c.cfg.Topic)},
		kafka.Header{Key: "x-dlq-group", Value: []byte(c.cfg.GroupID)},
	)
	return kafka.Message{Key: m.Key, Value: m.Value, Headers: headers}
}

func (c *Consumer) Close() error {
	var first error
	if c.reader != nil {
		if err := c.reader.Close(); err != nil {
			first = err
		}
	}
	if c.dlq != nil {
		if err := c.dlq.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

const maxBackoff = 5 * time.Second

func backoff(n int, base time.Duration) time.Duration {
	if n <= 0 {
		return 0
	}
	d := base
	for i := 1; i < n && d < maxBackoff; i++ {
		d *= 2
	}
	return min(d, maxBackoff)
}

func trimErr(err error) string {
	if err == nil {
		return ""
	}
	s := err.Error()
	if len(s) > 1000 {
		return s[:1000]
	}
	return s
}

// Replaying these cannot change the outcome.
func isNonRetryable(err error) bool {
	return errors.Is(err, service.ErrDecode) ||
		errors.Is(err, service.ErrValidation) ||
		errors.Is(err, service.ErrNotFound) ||
		errors.Is(err, service.ErrConflict)
}
