package search

import (
	"sync"
	"testing"
)

func TestState(t *testing.T) {
	t.Run("starts empty", func(t *testing.T) {
		if got := NewState().Term(); got != "" {
			t.Errorf("expected empty term, got %q", got)
		}
	})

	t.Run("SetTerm stores value unmodified", func(t *testing.T) {
		tc := []string{"abba", "  padded  ", "", "Ünïcode & symbols?"}

		s := NewState()
		for _, term := range tc {
			s.SetTerm(term)
			if got := s.Term(); got != term {
				t.Errorf("Term() = %q, want %q", got, term)
			}
		}
	})

	t.Run("subscribers are notified synchronously in order", func(t *testing.T) {
		s := NewState()

		var calls []string
		s.Subscribe(func(term string) { calls = append(calls, "first:"+term) })
		s.Subscribe(func(term string) { calls = append(calls, "second:"+term) })

		s.SetTerm("queen")

		want := []string{"first:queen", "second:queen"}
		if len(calls) != len(want) {
			t.Fatalf("expected %d calls, got %v", len(want), calls)
		}
		for i := range want {
			if calls[i] != want[i] {
				t.Errorf("call %d = %s, want %s", i, calls[i], want[i])
			}
		}
	})

	t.Run("repeated term still notifies", func(t *testing.T) {
		s := NewState()

		count := 0
		s.Subscribe(func(string) { count++ })

		s.SetTerm("abba")
		s.SetTerm("abba")

		if count != 2 {
			t.Errorf("expected 2 notifications, got %d", count)
		}
	})

	t.Run("subscriber sees the stored value", func(t *testing.T) {
		s := NewState()

		var seen string
		s.Subscribe(func(string) { seen = s.Term() })
		s.SetTerm("bowie")

		if seen != "bowie" {
			t.Errorf("expected bowie during notification, got %q", seen)
		}
	})

	t.Run("unsubscribe stops notifications", func(t *testing.T) {
		s := NewState()

		var kept, dropped int
		unsubscribe := s.Subscribe(func(string) { dropped++ })
		s.Subscribe(func(string) { kept++ })

		s.SetTerm("a")
		unsubscribe()
		unsubscribe()
		s.SetTerm("b")

		if dropped != 1 {
			t.Errorf("expected 1 notification before unsubscribe, got %d", dropped)
		}
		if kept != 2 {
			t.Errorf("expected remaining subscriber to see 2 notifications, got %d", kept)
		}
	})

	t.Run("concurrent writers", func(t *testing.T) {
		s := NewState()

		var mu sync.Mutex
		seen := 0
		s.Subscribe(func(string) {
			mu.Lock()
			seen++
			mu.Unlock()
		})

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				s.SetTerm("x")
				_ = s.Term()
			}()
		}
		wg.Wait()

		if seen != 20 {
			t.Errorf("expected 20 notifications, got %d", seen)
		}
	})
}
