package notify

import "testing"

func TestPublishReachesSubscribers(t *testing.T) {
	hub := NewHub()

	var got []Event
	hub.Subscribe(func(e Event) {
		got = append(got, e)
	})

	hub.Publish(Event{Collection: CollectionGoals, Op: OpInsert, ID: "g1"})
	hub.Publish(Event{Collection: CollectionTodos, Op: OpDelete, ID: "t1"})

	if len(got) != 2 {
		t.Fatalf("received %d events, want 2", len(got))
	}
	if got[0].ID != "g1" || got[1].ID != "t1" {
		t.Errorf("events delivered out of order: %+v", got)
	}
}

func TestSubscribeFiltersByCollection(t *testing.T) {
	hub := NewHub()

	var got []Event
	hub.Subscribe(func(e Event) {
		got = append(got, e)
	}, CollectionTodos)

	hub.Publish(Event{Collection: CollectionGoals, Op: OpUpdate, ID: "g1"})
	hub.Publish(Event{Collection: CollectionTodos, Op: OpUpdate, ID: "t1"})
	hub.Publish(Event{Collection: CollectionCategories, Op: OpInsert, ID: "c1"})

	if len(got) != 1 {
		t.Fatalf("received %d events, want 1", len(got))
	}
	if got[0].Collection != CollectionTodos {
		t.Errorf("collection = %q, want todos", got[0].Collection)
	}
}

func TestCancelStopsDelivery(t *testing.T) {
	hub := NewHub()

	calls := 0
	cancel := hub.Subscribe(func(Event) { calls++ })

	hub.Publish(Event{Collection: CollectionGoals, Op: OpInsert, ID: "g1"})
	cancel()
	hub.Publish(Event{Collection: CollectionGoals, Op: OpInsert, ID: "g2"})

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestIndependentSubscribers(t *testing.T) {
	hub := NewHub()

	a, b := 0, 0
	cancelA := hub.Subscribe(func(Event) { a++ })
	hub.Subscribe(func(Event) { b++ })

	hub.Publish(Event{Collection: CollectionCategories, Op: OpDelete, ID: "c1"})
	cancelA()
	hub.Publish(Event{Collection: CollectionCategories, Op: OpDelete, ID: "c2"})

	if a != 1 || b != 2 {
		t.Errorf("a = %d, b = %d; want 1, 2", a, b)
	}
}
