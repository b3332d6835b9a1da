package event

import (
	"context"
	"sync"
)

// Handler consumes one event. Handlers run synchronously on the publisher's
// goroutine, in subscription order.
type Handler func(ctx context.Context, ev Event)

type subscriber struct {
	id int
	fn Handler
}

// Bus is a synchronous in-process event bus. Publish dispatches each event to
// every subscriber of its kind before returning, so event N is fully handled
// before event N+1 is considered.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[Kind][]subscriber
}

func NewBus() *Bus {
	return &Bus{subs: make(map[Kind][]subscriber)}
}

// Subscribe registers fn for every listed kind and returns a handle that
// removes all of those registrations when closed.
func (b *Bus) Subscribe(fn Handler, kinds ...Kind) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	for _, k := range kinds {
		b.subs[k] = append(b.subs[k], subscriber{id: id, fn: fn})
	}
	return &Subscription{bus: b, id: id, kinds: kinds}
}

// Publish dispatches ev to all subscribers of its kind, in order.
func (b *Bus) Publish(ctx context.Context, ev Event) {
	b.mu.Lock()
	list := make([]subscriber, len(b.subs[ev.Kind]))
	copy(list, b.subs[ev.Kind])
	b.mu.Unlock()

	for _, s := range list {
		s.fn(ctx, ev)
	}
}

func (b *Bus) remove(id int, kinds []Kind) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, k := range kinds {
		list := b.subs[k]
		kept := list[:0]
		for _, s := range list {
			if s.id != id {
				kept = append(kept, s)
			}
		}
		if len(kept) == 0 {
			delete(b.subs, k)
			continue
		}
		b.subs[k] = kept
	}
}

// Subscription is a disposable handle over a set of bus registrations.
// Closing it guarantees every listener it covers is removed; closing twice
// is a no-op.
type Subscription struct {
	once  sync.Once
	bus   *Bus
	id    int
	kinds []Kind
}

func (s *Subscription) Close() {
	s.once.Do(func() {
		s.bus.remove(s.id, s.kinds)
	})
}
