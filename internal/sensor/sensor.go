package sensor

import (
	"context"
	"fmt"
	"strings"
)

type State string

const (
	StateConnecting State = "connecting"
	StateStreaming  State = "streaming"
	StateStopped    State = "stopped"
	StateError      State = "error"
)

// IsTerminal reports whether no further packets follow this state.
func (s State) IsTerminal() bool {
	return s == StateStopped || s == StateError
}

func ParseState(s string) (State, error) {
	switch State(strings.ToLower(s)) {
	case StateConnecting:
		return StateConnecting, nil
	case StateStreaming:
		return StateStreaming, nil
	case StateStopped:
		return StateStopped, nil
	case StateError:
		return StateError, nil
	default:
		return "", fmt.Errorf("invalid sensor state: %q", s)
	}
}

// Packet is one heart rate measurement as delivered by the strap. RR intervals
// are in milliseconds and already filtered upstream.
type Packet struct {
	HeartRate   float64   `json:"heart_rate"`
	RRIntervals []float64 `json:"rr_intervals,omitempty"`
}

// Event carries either a data packet or a connection state change.
type Event struct {
	Packet *Packet `json:"packet,omitempty"`
	State  State   `json:"state,omitempty"`
	Err    error   `json:"-"`
}

func PacketEvent(p Packet) Event { return Event{Packet: &p} }

func StateEvent(s State) Event { return Event{State: s} }

func ErrorEvent(err error) Event { return Event{State: StateError, Err: err} }

type Source interface {
	// Subscribe starts streaming and returns a channel of events. The channel
	// is closed when the stream ends. The returned function releases the
	// underlying connection and may be called more than once.
	Subscribe(ctx context.Context) (<-chan Event, func(), error)
}

// Publisher relays events to remote subscribers.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

var (
	_ Publisher = (*RedisPublisher)(nil)
	_ Publisher = (*NATSPublisher)(nil)
	_ Publisher = (*KafkaPublisher)(nil)
)

// send delivers e unless ctx is done first.
func send(ctx context.Context, ch chan<- Event, e Event) bool {
	select {
	case ch <- e:
		return true
	case <-ctx.Done():
		return false
	}
}
