// Package notify is the in-process change-notification hub. Services publish
// an event after every successful mutation; subscribers (sessions, the SSE
// feed) react by re-fetching. The hub carries no record data, only which
// collection changed, so delivery order never matters.
package notify

import (
	"sync"
)

type Collection string

const (
	CollectionGoals      Collection = "goals"
	CollectionTodos      Collection = "todos"
	CollectionCategories Collection = "categories"
)

type Op string

const (
	OpInsert Op = "insert"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

type Event struct {
	Collection Collection `json:"collection"`
	Op         Op         `json:"op"`
	ID         string     `json:"id"`
}

type subscriber struct {
	collections map[Collection]bool
	fn          func(Event)
}

type Hub struct {
	mu   sync.RWMutex
	subs map[int]*subscriber
	next int
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[int]*subscriber),
	}
}

// Subscribe registers fn for events on the given collections (all collections
// when none are given). The returned func cancels the subscription.
func (h *Hub) Subscribe(fn func(Event), collections ...Collection) func() {
	set := make(map[Collection]bool, len(collections))
	for _, c := range collections {
		set[c] = true
	}

	h.mu.Lock()
	id := h.next
	h.next++
	h.subs[id] = &subscriber{collections: set, fn: fn}
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
	}
}

// Publish delivers e to every matching subscriber. Delivery is synchronous;
// callbacks must not block.
func (h *Hub) Publish(e Event) {
	h.mu.RLock()
	fns := make([]func(Event), 0, len(h.subs))
	for _, sub := range h.subs {
		if len(sub.collections) == 0 || sub.collections[e.Collection] {
			fns = append(fns, sub.fn)
		}
	}
	h.mu.RUnlock()

	for _, fn := range fns {
		fn(e)
	}
}
