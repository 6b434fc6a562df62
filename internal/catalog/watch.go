package catalog

import (
	"context"
	"sync"

	"github.com/desertthunder/discover/internal/models"
)

// Watch delivers the orchestrator's snapshots on a channel until ctx is done, then closes it.
//
// The channel holds at most one snapshot; a slow reader only ever sees the latest one.
// The current snapshot is sent immediately.
func Watch(ctx context.Context, o *Orchestrator) <-chan models.Snapshot {
	ch := make(chan models.Snapshot, 1)

	var (
		mu      sync.Mutex
		closed  bool
		version uint64
		sent    bool
	)
	send := func(snap models.Snapshot) {
		mu.Lock()
		defer mu.Unlock()
		if closed || (sent && snap.Version <= version) {
			return
		}
		select {
		case <-ch:
		default:
		}
		ch <- snap
		version, sent = snap.Version, true
	}

	unsubscribe := o.Subscribe(send)
	send(o.Snapshot())

	go func() {
		<-ctx.Done()
		unsubscribe()

		mu.Lock()
		defer mu.Unlock()
		closed = true
		close(ch)
	}()
	return ch
}
