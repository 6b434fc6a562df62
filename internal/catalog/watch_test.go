package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/desertthunder/discover/internal/models"
)

func TestWatch(t *testing.T) {
	t.Run("sends current snapshot immediately", func(t *testing.T) {
		h := newHarness(t)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		ch := Watch(ctx, h.o)
		select {
		case snap := <-ch:
			if snap.NewReleases.Status != models.NotRequested {
				t.Errorf("unexpected initial status %s", snap.NewReleases.Status)
			}
		case <-time.After(time.Second):
			t.Fatal("expected initial snapshot")
		}
	})

	t.Run("slow reader sees the latest snapshot", func(t *testing.T) {
		h := newHarness(t)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		ch := Watch(ctx, h.o)
		h.o.Start(context.Background())
		h.creds.ready("tok")
		if _, err := h.o.Wait(timeout(t)); err != nil {
			t.Fatalf("wait failed: %v", err)
		}
		h.o.wg.Wait()

		want := h.o.Snapshot().Version
		select {
		case snap := <-ch:
			if snap.Version != want {
				t.Errorf("expected latest version %d, got %d", want, snap.Version)
			}
		case <-time.After(time.Second):
			t.Fatal("expected a snapshot")
		}
	})

	t.Run("closes when context is done", func(t *testing.T) {
		h := newHarness(t)
		ctx, cancel := context.WithCancel(context.Background())

		ch := Watch(ctx, h.o)
		<-ch
		cancel()

		select {
		case _, ok := <-ch:
			if ok {
				// a snapshot raced the cancel; the next receive must see the close
				if _, ok := <-ch; ok {
					t.Error("expected channel to be closed")
				}
			}
		case <-time.After(time.Second):
			t.Fatal("channel was not closed")
		}
	})
}
