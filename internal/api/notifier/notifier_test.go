package notifier

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_SubscribeUnsubscribe(t *testing.T) {
	n := New()

	ch := n.Subscribe()
	require.NotNil(t, ch)
	assert.Equal(t, 1, n.Len())

	n.Unsubscribe(ch)
	assert.Equal(t, 0, n.Len())

	_, open := <-ch
	assert.False(t, open)
}

func TestNotifier_Broadcast(t *testing.T) {
	n := New()
	ch1 := n.Subscribe()
	ch2 := n.Subscribe()
	defer n.Unsubscribe(ch1)
	defer n.Unsubscribe(ch2)

	n.Broadcast(Event{Tables: 3})

	for _, ch := range []chan Event{ch1, ch2} {
		select {
		case ev := <-ch:
			assert.Equal(t, 3, ev.Tables)
		case <-time.After(100 * time.Millisecond):
			t.Fatal("subscriber did not receive broadcast")
		}
	}
}

func TestNotifier_Broadcast_KeepsLatest(t *testing.T) {
	n := New()
	ch := n.Subscribe()
	defer n.Unsubscribe(ch)

	n.Broadcast(Event{Tables: 1})
	n.Broadcast(Event{Error: "bad yaml"})

	ev := <-ch
	assert.Equal(t, "bad yaml", ev.Error)

	select {
	case <-ch:
		t.Fatal("stale event was not dropped")
	default:
	}
}

func TestNotifier_ConcurrentAccess(t *testing.T) {
	n := New()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ch := n.Subscribe()
			n.Broadcast(Event{Tables: 1})
			n.Unsubscribe(ch)
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, n.Len())
}
