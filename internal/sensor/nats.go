package sensor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/garrettladley/pulse/internal/xslog"
)

// Connect dials a NATS server with reconnects enabled for long sessions.
func Connect(url string) (*nats.Conn, error) {
	return nats.Connect(
		url,
		nats.Name("pulse"),
		nats.Timeout(3*time.Second),
		nats.ReconnectWait(500*time.Millisecond),
		nats.MaxReconnects(-1),
	)
}

func natsSubject(device string) string {
	return "sensor." + device + ".packets"
}

type NATSSource struct {
	conn   *nats.Conn
	device string
}

var _ Source = (*NATSSource)(nil)

func NewNATSSource(conn *nats.Conn, device string) *NATSSource {
	return &NATSSource{conn: conn, device: device}
}

func (s *NATSSource) Subscribe(ctx context.Context) (<-chan Event, func(), error) {
	msgs := make(chan *nats.Msg, 64)
	sub, err := s.conn.ChanSubscribe(natsSubject(s.device), msgs)
	if err != nil {
		return nil, nil, fmt.Errorf("subscribe: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	ch := make(chan Event)

	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-msgs:
				e, err := decodeEvent(msg.Data)
				if err != nil {
					xslog.FromContext(ctx).DebugContext(ctx, "dropped malformed sensor message", xslog.Error(err))
					continue
				}
				if !send(ctx, ch, e) {
					return
				}
			}
		}
	}()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			cancel()
			_ = sub.Unsubscribe()
		})
	}

	return ch, unsubscribe, nil
}

type NATSPublisher struct {
	conn   *nats.Conn
	device string
}

func NewNATSPublisher(conn *nats.Conn, device string) *NATSPublisher {
	return &NATSPublisher{conn: conn, device: device}
}

func (p *NATSPublisher) Publish(_ context.Context, e Event) error {
	data, err := encodeEvent(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := p.conn.Publish(natsSubject(p.device), data); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}
	return nil
}
