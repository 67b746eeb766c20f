// Package notifier fans out table definition reload events to subscribers.
package notifier

import "sync"

// Event reports the outcome of a table definition reload.
type Event struct {
	Tables int    `json:"tables"`
	Error  string `json:"error,omitempty"`
}

// Notifier broadcasts events to all subscribed listeners. Each listener keeps
// only the most recent undelivered event.
type Notifier struct {
	mu        sync.RWMutex
	listeners map[chan Event]struct{}
}

// New creates a new Notifier instance.
func New() *Notifier {
	return &Notifier{listeners: make(map[chan Event]struct{})}
}

// Subscribe returns a channel receiving events. Call Unsubscribe when done.
func (n *Notifier) Subscribe() chan Event {
	ch := make(chan Event, 1)
	n.mu.Lock()
	n.listeners[ch] = struct{}{}
	n.mu.Unlock()
	return ch
}

// Unsubscribe removes a listener channel and closes it.
func (n *Notifier) Unsubscribe(ch chan Event) {
	n.mu.Lock()
	delete(n.listeners, ch)
	n.mu.Unlock()
	close(ch)
}

// Len returns the number of subscribers.
func (n *Notifier) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.listeners)
}

// Broadcast delivers ev without blocking. A listener with a pending event
// has it replaced by ev.
func (n *Notifier) Broadcast(ev Event) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	for ch := range n.listeners {
		select {
		case ch <- ev:
			continue
		default:
		}
		// drop the stale event, then retry once
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- ev:
		default:
		}
	}
}
