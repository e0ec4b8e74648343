package sensor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/garrettladley/pulse/internal/xslog"
)

const kafkaDialTimeout = 3 * time.Second

// kafkaTopic holds one device's feed; the device id is also the message key.
func kafkaTopic(device string) string {
	return "pulse.sensor." + device
}

// KafkaSource tails a device topic from its newest offset. It reads without
// a consumer group so every live session sees the whole feed.
type KafkaSource struct {
	brokers []string
	device  string
}

var _ Source = (*KafkaSource)(nil)

func NewKafkaSource(brokers []string, device string) *KafkaSource {
	return &KafkaSource{brokers: brokers, device: device}
}

func (s *KafkaSource) Subscribe(ctx context.Context) (<-chan Event, func(), error) {
	if len(s.brokers) == 0 {
		return nil, nil, errors.New("subscribe: no kafka brokers configured")
	}

	dialCtx, cancelDial := context.WithTimeout(ctx, kafkaDialTimeout)
	conn, err := kafka.DialContext(dialCtx, "tcp", s.brokers[0])
	cancelDial()
	if err != nil {
		return nil, nil, fmt.Errorf("subscribe: %w", err)
	}
	_ = conn.Close()

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     s.brokers,
		Topic:       kafkaTopic(s.device),
		MinBytes:    1,
		MaxBytes:    1 << 20,
		MaxWait:     250 * time.Millisecond,
		StartOffset: kafka.LastOffset,
	})

	ctx, cancel := context.WithCancel(ctx)
	ch := make(chan Event)

	go func() {
		defer close(ch)
		defer func() { _ = reader.Close() }()
		for {
			msg, err := reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() == nil {
					send(ctx, ch, ErrorEvent(fmt.Errorf("read kafka message: %w", err)))
				}
				return
			}
			e, err := decodeEvent(msg.Value)
			if err != nil {
				xslog.FromContext(ctx).DebugContext(ctx, "dropped malformed sensor message", xslog.Error(err))
				continue
			}
			if !send(ctx, ch, e) {
				return
			}
		}
	}()

	var once sync.Once
	return ch, func() { once.Do(cancel) }, nil
}

type KafkaPublisher struct {
	writer *kafka.Writer
	device string
}

func NewKafkaPublisher(brokers []string, device string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  kafkaTopic(device),
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			BatchTimeout:           10 * time.Millisecond,
			AllowAutoTopicCreation: true,
		},
		device: device,
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, e Event) error {
	data, err := encodeEvent(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := kafka.Message{Key: []byte(p.device), Value: data}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
