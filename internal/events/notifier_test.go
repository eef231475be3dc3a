package events

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) handler(name string) Handler {
	return func(topic Topic) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.events = append(r.events, name+":"+string(topic))
	}
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func TestNotifier_PublishIsSynchronousAndOrdered(t *testing.T) {
	n := NewNotifier()
	rec := &recorder{}

	n.Subscribe(ProfileChanged, rec.handler("first"))
	n.Subscribe(ProfileChanged, rec.handler("second"))
	n.Subscribe(SelectionChanged, rec.handler("other"))

	n.Publish(ProfileChanged)

	assert.Equal(t, []string{"first:profile-changed", "second:profile-changed"}, rec.snapshot())
}

func TestNotifier_Unsubscribe(t *testing.T) {
	n := NewNotifier()
	rec := &recorder{}

	unsubscribe := n.Subscribe(PackageChanged, rec.handler("a"))
	n.Subscribe(PackageChanged, rec.handler("b"))

	unsubscribe()
	unsubscribe()
	n.Publish(PackageChanged)

	assert.Equal(t, []string{"b:package-changed"}, rec.snapshot())
}

func TestNotifier_DebounceCollapsesBurst(t *testing.T) {
	n := NewNotifier()
	rec := &recorder{}
	n.Subscribe(TargetsChanged, rec.handler("tree"))

	for i := 0; i < 25; i++ {
		n.PublishDebounced(TargetsChanged)
	}
	assert.Empty(t, rec.snapshot())
	assert.True(t, n.Pending(TargetsChanged))

	require.Eventually(t, func() bool {
		return len(rec.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)

	time.Sleep(2 * DebounceWindow)
	assert.Equal(t, []string{"tree:targets-changed"}, rec.snapshot())
	assert.False(t, n.Pending(TargetsChanged))
}

func TestNotifier_Flush(t *testing.T) {
	n := NewNotifier()
	rec := &recorder{}
	n.Subscribe(TargetsChanged, rec.handler("tree"))
	n.Subscribe(SelectionChanged, rec.handler("status"))

	n.PublishDebounced(SelectionChanged)
	n.PublishDebounced(TargetsChanged)
	n.PublishDebounced(TargetsChanged)
	n.Flush()

	assert.Equal(t, []string{"tree:targets-changed", "status:selection-changed"}, rec.snapshot())

	time.Sleep(2 * DebounceWindow)
	assert.Len(t, rec.snapshot(), 2)
}

func TestNotifier_CloseDropsPending(t *testing.T) {
	n := NewNotifier()
	rec := &recorder{}
	n.Subscribe(TargetsChanged, rec.handler("tree"))

	n.PublishDebounced(TargetsChanged)
	n.Close()

	time.Sleep(2 * DebounceWindow)
	assert.Empty(t, rec.snapshot())
}
