package eventbus

import "sync"

// subscriberCapacity is the minimum per-subscriber queue depth (SPEC_FULL.md §4.3).
const subscriberCapacity = 256

// Bus is a process-wide, multi-subscriber broadcast of domain events. Each
// subscriber owns a bounded channel; a full subscriber queue never blocks
// emission for other subscribers — the oldest pending event for that
// subscriber is dropped to make room for the new one.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[int64]chan Event
	nextID      int64
}

func New() *Bus {
	return &Bus{subscribers: make(map[int64]chan Event)}
}

// Subscription is a live receiver plus its cancel function.
type Subscription struct {
	C      <-chan Event
	cancel func()
}

func (s *Subscription) Close() { s.cancel() }

// Subscribe returns a fresh receiver. The caller must call Close when done.
func (b *Bus) Subscribe() *Subscription {
	ch := make(chan Event, subscriberCapacity)

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subscribers[id] = ch
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if existing, ok := b.subscribers[id]; ok {
			delete(b.subscribers, id)
			close(existing)
		}
		b.mu.Unlock()
	}

	return &Subscription{C: ch, cancel: cancel}
}

// Emit delivers an event to every current subscriber. Never blocks.
func (b *Bus) Emit(e Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subscribers {
		b.sendOrDropOldest(ch, e)
	}
}

func (b *Bus) sendOrDropOldest(ch chan Event, e Event) {
	select {
	case ch <- e:
		return
	default:
	}
	// Queue is full: drop the oldest pending event, then enqueue the new one.
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- e:
	default:
		// Another goroutine drained/filled concurrently; give up silently.
	}
}

func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

func (b *Bus) EmitTimer(e TimerEvent)     { b.Emit(e) }
func (b *Bus) EmitTask(e TaskEvent)       { b.Emit(e) }
func (b *Bus) EmitEntry(e EntryEvent)     { b.Emit(e) }
func (b *Bus) EmitProfile(e ProfileEvent) { b.Emit(e) }
