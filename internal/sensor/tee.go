package sensor

import "context"

type teeSource struct {
	src Source
	fn  func(Event)
}

// Tee returns a Source that passes every event of src to fn before
// forwarding it. fn runs on the forwarding goroutine.
func Tee(src Source, fn func(Event)) Source {
	return &teeSource{src: src, fn: fn}
}

func (t *teeSource) Subscribe(ctx context.Context) (<-chan Event, func(), error) {
	in, unsubscribe, err := t.src.Subscribe(ctx)
	if err != nil {
		return nil, nil, err
	}

	out := make(chan Event)
	go func() {
		defer close(out)
		for e := range in {
			t.fn(e)
			if !send(ctx, out, e) {
				return
			}
		}
	}()
	return out, unsubscribe, nil
}
