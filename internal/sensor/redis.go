package sensor

import (
	"context"
	"fmt"
	"sync"

	go_json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/garrettladley/pulse/internal/xslog"
)

const redisChannelPrefix = "sensor:"

// wireEvent is the payload shared by the redis, nats and kafka relays.
type wireEvent struct {
	State       State     `json:"state,omitempty"`
	HeartRate   float64   `json:"heart_rate,omitempty"`
	RRIntervals []float64 `json:"rr_intervals,omitempty"`
	Error       string    `json:"error,omitempty"`
}

func encodeEvent(e Event) ([]byte, error) {
	w := wireEvent{State: e.State}
	if e.Packet != nil {
		w.HeartRate = e.Packet.HeartRate
		w.RRIntervals = e.Packet.RRIntervals
	}
	if e.Err != nil {
		w.Error = e.Err.Error()
	}
	return go_json.Marshal(w)
}

func decodeEvent(data []byte) (Event, error) {
	var w wireEvent
	if err := go_json.Unmarshal(data, &w); err != nil {
		return Event{}, err
	}
	if w.State != "" {
		e := StateEvent(w.State)
		if w.Error != "" {
			e.Err = fmt.Errorf("remote sensor: %s", w.Error)
		}
		return e, nil
	}
	return PacketEvent(Packet{HeartRate: w.HeartRate, RRIntervals: w.RRIntervals}), nil
}

func redisChannel(device string) string {
	return redisChannelPrefix + device
}

// RedisSource reads a sensor feed relayed over redis pub/sub, e.g. by a
// bridge process that owns the bluetooth connection.
type RedisSource struct {
	client *redis.Client
	device string
}

var _ Source = (*RedisSource)(nil)

func NewRedisSource(client *redis.Client, device string) *RedisSource {
	return &RedisSource{client: client, device: device}
}

func (s *RedisSource) Subscribe(ctx context.Context) (<-chan Event, func(), error) {
	pubsub := s.client.Subscribe(ctx, redisChannel(s.device))

	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, nil, fmt.Errorf("subscribe: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	ch := make(chan Event)

	go func() {
		defer close(ch)
		msgs := pubsub.Channel()

		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				e, err := decodeEvent([]byte(msg.Payload))
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
			_ = pubsub.Close()
		})
	}

	return ch, unsubscribe, nil
}

type RedisPublisher struct {
	client *redis.Client
	device string
}

func NewRedisPublisher(client *redis.Client, device string) *RedisPublisher {
	return &RedisPublisher{client: client, device: device}
}

func (p *RedisPublisher) Publish(ctx context.Context, e Event) error {
	data, err := encodeEvent(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := p.client.Publish(ctx, redisChannel(p.device), string(data)).Err(); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}
	return nil
}
