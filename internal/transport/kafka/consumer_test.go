package kafka

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	kafka "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"

	"supplychain-admin/internal/service"
)

type fakeReader struct {
	mu        sync.Mutex
	msgs      []kafka.Message
	committed []int64
	done      chan struct{}
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	if len(r.msgs) > 0 {
		m := r.msgs[0]
		r.msgs = r.msgs[1:]
		r.mu.Unlock()
		return m, nil
	}
	r.mu.Unlock()
	close(r.done)
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func (r *fakeReader) Close() error { return nil }

type fakeWriter struct {
	mu   sync.Mutex
	msgs []kafka.Message
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

type scriptedHandler struct {
	mu    sync.Mutex
	calls map[string]int
	errs  map[string][]error
}

func (h *scriptedHandler) HandleStatusMessage(_ context.Context, payload []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	k := string(payload)
	n := h.calls[k]
	h.calls[k]++
	if n < len(h.errs[k]) {
		return h.errs[k][n]
	}
	return nil
}

func header(m kafka.Message, key string) string {
	for _, h := range m.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestConsumer_RetryThenDLQ(t *testing.T) {
	transient := errors.New("connection refused")
	h := &scriptedHandler{
		calls: map[string]int{},
		errs: map[string][]error{
			"ok":     nil,
			"flaky":  {transient, transient},
			"broken": {fmt.Errorf("%w: bad json", service.ErrDecode)},
			"down":   {transient, transient, transient, transient},
		},
	}
	r := &fakeReader{done: make(chan struct{}), msgs: []kafka.Message{
		{Offset: 1, Value: []byte("ok")},
		{Offset: 2, Value: []byte("flaky")},
		{Offset: 3, Value: []byte("broken")},
		{Offset: 4, Value: []byte("down")},
	}}
	w := &fakeWriter{}
	c := newConsumer(Config{Topic: "delivery-status", GroupID: "g", MaxRetries: 2}, r, w, h)
	c.sleep = func(context.Context, time.Duration) {}

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- c.Subscribe(ctx) }()
	<-r.done
	cancel()
	require.NoError(t, <-errc)

	require.Equal(t, []int64{1, 2, 3, 4}, r.committed)
	require.Equal(t, 3, h.calls["flaky"])
	require.Equal(t, 1, h.calls["broken"], "decode failures are not retried")
	require.Equal(t, 3, h.calls["down"])

	require.Len(t, w.msgs, 2)
	require.Equal(t, "broken", string(w.msgs[0].Value))
	require.Equal(t, "1", header(w.msgs[0], "x-dlq-attempts"))
	require.Equal(t, "down", string(w.msgs[1].Value))
	require.Equal(t, "3", header(w.msgs[1], "x-dlq-attempts"))
	require.Equal(t, "delivery-status", header(w.msgs[1], "x-dlq-source-topic"))
	require.Contains(t, header(w.msgs[1], "x-dlq-reason"), "connection refused")
}

func TestBackoff(t *testing.T) {
	base := 200 * time.Millisecond
	require.Equal(t, time.Duration(0), backoff(0, base))
	require.Equal(t, base, backoff(1, base))
	require.Equal(t, 800*time.Millisecond, backoff(3, base))
	require.Equal(t, 5*time.Second, backoff(10, base))
	require.Equal(t, 5*time.Second, backoff(40, base))
	require.Equal(t, 5*time.Second, backoff(1000, base))
}

func TestIsNonRetryable(t *testing.T) {
	for _, err := range []error{service.ErrDecode, service.ErrValidation, service.ErrNotFound, service.ErrConflict} {
		require.True(t, isNonRetryable(fmt.Errorf("wrapped: %w", err)))
	}
	require.False(t, isNonRetryable(service.ErrStore))
	require.False(t, isNonRetryable(service.ErrTimeout))
}

func TestTrimErr(t *testing.T) {
	require.Equal(t, "", trimErr(nil))
	require.Len(t, trimErr(errors.New(strings.Repeat("x", 5000))), 1000)
}
