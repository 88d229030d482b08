package events

import "sync"

// Event describes a change to a spot's bookable state: a booking written
// or cancelled, a request approved, availability toggled.
type Event struct {
	SpotID  string `json:"spot_id"`
	Kind    string `json:"kind"` // e.g. "booking_created", "spot_updated"
	Payload any    `json:"payload,omitempty"`
}

// Unsubscribe detaches a previously registered callback.
type Unsubscribe func()

// Hub is an in-process change feed keyed by spot id. Callbacks run on the
// publisher's goroutine; subscribers must not block.
type Hub struct {
	mu     sync.Mutex
	nextID int
	subs   map[string]map[int]func(Event)
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[int]func(Event))}
}

// OnChange registers fn for events on the given spot and returns the
// detach function. Detaching twice is a no-op.
func (h *Hub) OnChange(spotID string, fn func(Event)) Unsubscribe {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subs[spotID] == nil {
		h.subs[spotID] = make(map[int]func(Event))
	}
	id := h.nextID
	h.nextID++
	h.subs[spotID][id] = fn

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if m, ok := h.subs[spotID]; ok {
			delete(m, id)
			if len(m) == 0 {
				delete(h.subs, spotID)
			}
		}
	}
}

// Publish delivers ev to every subscriber of its spot.
func (h *Hub) Publish(ev Event) {
	h.mu.Lock()
	fns := make([]func(Event), 0, len(h.subs[ev.SpotID]))
	for _, fn := range h.subs[ev.SpotID] {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}
