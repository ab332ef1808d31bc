package eventbus

import (
	"fmt"
	"testing"
	"time"
)

func TestMultipleSubscribersReceiveSameEvent(t *testing.T) {
	bus := New()
	sub1 := bus.Subscribe()
	sub2 := bus.Subscribe()
	defer sub1.Close()
	defer sub2.Close()

	bus.EmitTask(TaskCreatedEvent("p1", nil))

	select {
	case e := <-sub1.C:
		if e.(TaskEvent).ProfileID != "p1" {
			t.Fatalf("sub1 got unexpected event %+v", e)
		}
	case <-time.After(time.Second):
		t.Fatal("sub1 did not receive event")
	}

	select {
	case e := <-sub2.C:
		if e.(TaskEvent).ProfileID != "p1" {
			t.Fatalf("sub2 got unexpected event %+v", e)
		}
	case <-time.After(time.Second):
		t.Fatal("sub2 did not receive event")
	}
}

func TestLateSubscriberMissesPastEvents(t *testing.T) {
	bus := New()
	bus.EmitTask(TaskCreatedEvent("p1", nil))

	sub := bus.Subscribe()
	defer sub.Close()

	select {
	case e := <-sub.C:
		t.Fatalf("late subscriber should not see past events, got %+v", e)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestFullQueueDropsOldestNotNewest(t *testing.T) {
	bus := New()
	sub := bus.Subscribe()
	defer sub.Close()

	total := subscriberCapacity + 10
	for i := 0; i < total; i++ {
		bus.EmitTask(TaskCreatedEvent(fmt.Sprintf("p%d", i), nil))
	}

	// Draining should succeed without the emitter ever having blocked; the
	// oldest 10 events were dropped to make room, so the queue holds the
	// newest subscriberCapacity events in emission order.
	count := 0
	var first, last string
	for {
		select {
		case e := <-sub.C:
			if count == 0 {
				first = e.(TaskEvent).ProfileID
			}
			last = e.(TaskEvent).ProfileID
			count++
		default:
			if count == 0 {
				t.Fatal("expected at least one buffered event")
			}
			if count > subscriberCapacity {
				t.Fatalf("queue held %d events, want <= %d", count, subscriberCapacity)
			}
			if want := fmt.Sprintf("p%d", total-subscriberCapacity); first != want {
				t.Fatalf("oldest kept event = %s, want %s", first, want)
			}
			if want := fmt.Sprintf("p%d", total-1); last != want {
				t.Fatalf("newest kept event = %s, want %s", last, want)
			}
			return
		}
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := New()
	sub := bus.Subscribe()
	sub.Close()

	if bus.SubscriberCount() != 0 {
		t.Fatalf("subscriber count = %d, want 0 after close", bus.SubscriberCount())
	}
	// Emitting after everyone unsubscribed must not panic.
	bus.EmitTask(TaskCreatedEvent("p1", nil))
}
