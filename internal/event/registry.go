package event

import (
	"sort"
	"sync"

	"github.com/dshills/listkit/internal/event/topic"
)

// registry keeps subscriptions in priority order. Subscriptions with equal
// priority keep their registration order.
type registry struct {
	mu   sync.RWMutex
	subs []*subscription
}

func (r *registry) add(sub *subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.subs = append(r.subs, sub)
	sort.SliceStable(r.subs, func(i, j int) bool {
		return r.subs[i].config.Priority < r.subs[j].config.Priority
	})
}

func (r *registry) remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, s := range r.subs {
		if s.id == id {
			r.subs = append(r.subs[:i], r.subs[i+1:]...)
			return true
		}
	}
	return false
}

// match returns the active subscriptions whose pattern matches t.
func (r *registry) match(t topic.Topic) []*subscription {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*subscription
	for _, s := range r.subs {
		if s.IsActive() && t.Matches(s.topic) {
			out = append(out, s)
		}
	}
	return out
}

func (r *registry) countActive() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, s := range r.subs {
		if s.IsActive() {
			n++
		}
	}
	return n
}
