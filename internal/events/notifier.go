// Package events broadcasts workspace changes to the UI layers that render
// them.
package events

import (
	"sync"
	"time"
)

// Topic is a category of change.
type Topic string

const (
	TargetsChanged   Topic = "targets-changed"
	ProfileChanged   Topic = "profile-changed"
	SelectionChanged Topic = "selection-changed"
	PackageChanged   Topic = "package-changed"
)

// Topics lists every topic.
var Topics = []Topic{TargetsChanged, ProfileChanged, SelectionChanged, PackageChanged}

// DebounceWindow is how long PublishDebounced waits for more events of the
// same topic before delivering one notification.
const DebounceWindow = 50 * time.Millisecond

// Handler receives the topic that fired.
type Handler func(Topic)

type subscription struct {
	id      uint64
	handler Handler
}

// Notifier is an observer registry keyed by topic. Publish delivers
// synchronously in subscription order. Debounced deliveries run on a timer
// goroutine, so handlers must not assume they run on the publisher's
// goroutine.
type Notifier struct {
	mu      sync.Mutex
	nextID  uint64
	subs    map[Topic][]subscription
	pending map[Topic]*time.Timer
}

// NewNotifier creates an empty Notifier.
func NewNotifier() *Notifier {
	return &Notifier{
		subs:    make(map[Topic][]subscription),
		pending: make(map[Topic]*time.Timer),
	}
}

// Subscribe registers handler for topic and returns a function that removes
// it again.
func (n *Notifier) Subscribe(topic Topic, handler Handler) (unsubscribe func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.nextID++
	id := n.nextID
	n.subs[topic] = append(n.subs[topic], subscription{id: id, handler: handler})

	var once sync.Once
	return func() {
		once.Do(func() {
			n.mu.Lock()
			defer n.mu.Unlock()

			subs := n.subs[topic]
			for i, s := range subs {
				if s.id == id {
					n.subs[topic] = append(subs[:i:i], subs[i+1:]...)
					break
				}
			}
		})
	}
}

// Publish delivers topic to every subscriber before returning.
func (n *Notifier) Publish(topic Topic) {
	n.mu.Lock()
	subs := make([]subscription, len(n.subs[topic]))
	copy(subs, n.subs[topic])
	n.mu.Unlock()

	for _, s := range subs {
		s.handler(topic)
	}
}

// PublishDebounced schedules one delivery of topic after DebounceWindow.
// Further calls within the window restart it, so a burst collapses into a
// single notification.
func (n *Notifier) PublishDebounced(topic Topic) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if t, ok := n.pending[topic]; ok {
		t.Stop()
	}

	var timer *time.Timer
	timer = time.AfterFunc(DebounceWindow, func() {
		n.mu.Lock()
		if n.pending[topic] != timer {
			n.mu.Unlock()
			return
		}
		delete(n.pending, topic)
		n.mu.Unlock()

		n.Publish(topic)
	})
	n.pending[topic] = timer
}

// Pending reports whether topic has a debounced delivery outstanding.
func (n *Notifier) Pending(topic Topic) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	_, ok := n.pending[topic]
	return ok
}

// Flush delivers every outstanding debounced topic now, in Topics order.
func (n *Notifier) Flush() {
	n.mu.Lock()
	var due []Topic
	for _, topic := range Topics {
		if t, ok := n.pending[topic]; ok {
			t.Stop()
			delete(n.pending, topic)
			due = append(due, topic)
		}
	}
	n.mu.Unlock()

	for _, topic := range due {
		n.Publish(topic)
	}
}

// Close drops outstanding debounced deliveries and every subscription.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()

	for topic, t := range n.pending {
		t.Stop()
		delete(n.pending, topic)
	}
	n.subs = make(map[Topic][]subscription)
}
