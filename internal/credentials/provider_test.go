package credentials

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/desertthunder/discover/internal/models"
	"github.com/desertthunder/discover/internal/shared"
)

// stubAuthenticator implements [Authenticator] for testing
type stubAuthenticator struct {
	token string
	err   error
	calls atomic.Int32
	gate  chan struct{}
}

func (s *stubAuthenticator) Authenticate(ctx context.Context) (string, error) {
	s.calls.Add(1)
	if s.gate != nil {
		<-s.gate
	}
	return s.token, s.err
}

func quietLogger() *bytes.Buffer { return &bytes.Buffer{} }

func TestProvider(t *testing.T) {
	t.Run("starts pending", func(t *testing.T) {
		p := NewProvider(&stubAuthenticator{}, shared.NewLogger(quietLogger()))
		if p.Status() != models.CredentialPending {
			t.Errorf("expected pending, got %s", p.Status())
		}
		if _, ok := p.Token(); ok {
			t.Error("expected token to be unavailable")
		}
	})

	t.Run("Acquire success", func(t *testing.T) {
		auth := &stubAuthenticator{token: "tok"}
		p := NewProvider(auth, shared.NewLogger(quietLogger()))

		var got []models.CredentialStatus
		p.Subscribe(func(s models.CredentialStatus) { got = append(got, s) })

		if err := p.Acquire(context.Background()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		token, ok := p.Token()
		if !ok || token != "tok" {
			t.Errorf("expected ready token tok, got %q (%v)", token, ok)
		}
		if len(got) != 1 || got[0] != models.CredentialReady {
			t.Errorf("expected one ready notification, got %v", got)
		}
	})

	t.Run("Acquire failure", func(t *testing.T) {
		cause := errors.New("401 unauthorized")
		p := NewProvider(&stubAuthenticator{err: cause}, shared.NewLogger(quietLogger()))

		var got []models.CredentialStatus
		p.Subscribe(func(s models.CredentialStatus) { got = append(got, s) })

		err := p.Acquire(context.Background())
		if !errors.Is(err, shared.ErrCredentialAcquisition) {
			t.Fatalf("expected credential acquisition error, got %v", err)
		}
		if !errors.Is(err, cause) {
			t.Errorf("expected cause to be wrapped, got %v", err)
		}
		if p.Status() != models.CredentialFailed {
			t.Errorf("expected failed, got %s", p.Status())
		}
		if !errors.Is(p.Err(), cause) {
			t.Errorf("expected recorded error, got %v", p.Err())
		}
		if len(got) != 1 || got[0] != models.CredentialFailed {
			t.Errorf("expected one failed notification, got %v", got)
		}
	})

	t.Run("Acquire is a no-op after the first call", func(t *testing.T) {
		auth := &stubAuthenticator{token: "tok"}
		p := NewProvider(auth, shared.NewLogger(quietLogger()))

		var notifications atomic.Int32
		p.Subscribe(func(models.CredentialStatus) { notifications.Add(1) })

		p.Acquire(context.Background())
		p.Acquire(context.Background())
		p.Acquire(context.Background())

		if auth.calls.Load() != 1 {
			t.Errorf("expected one authentication, got %d", auth.calls.Load())
		}
		if notifications.Load() != 1 {
			t.Errorf("expected one notification, got %d", notifications.Load())
		}
	})

	t.Run("Acquire while pending is a no-op", func(t *testing.T) {
		auth := &stubAuthenticator{token: "tok", gate: make(chan struct{})}
		p := NewProvider(auth, shared.NewLogger(quietLogger()))

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Acquire(context.Background())
		}()

		for auth.calls.Load() == 0 {
			// wait for the first call to reach the authenticator
		}

		if err := p.Acquire(context.Background()); err != nil {
			t.Errorf("expected nil from pending re-invocation, got %v", err)
		}
		if p.Status() != models.CredentialPending {
			t.Errorf("expected pending, got %s", p.Status())
		}

		close(auth.gate)
		wg.Wait()

		if auth.calls.Load() != 1 {
			t.Errorf("expected one authentication, got %d", auth.calls.Load())
		}
	})

	t.Run("Failed acquire is not retried", func(t *testing.T) {
		auth := &stubAuthenticator{err: errors.New("down")}
		p := NewProvider(auth, shared.NewLogger(quietLogger()))

		first := p.Acquire(context.Background())
		second := p.Acquire(context.Background())

		if first == nil || second == nil {
			t.Fatal("expected both calls to report the failure")
		}
		if auth.calls.Load() != 1 {
			t.Errorf("expected no retry, got %d calls", auth.calls.Load())
		}
	})

	t.Run("Unsubscribe", func(t *testing.T) {
		p := NewProvider(&stubAuthenticator{token: "tok"}, shared.NewLogger(quietLogger()))

		var called atomic.Bool
		unsubscribe := p.Subscribe(func(models.CredentialStatus) { called.Store(true) })
		unsubscribe()
		unsubscribe()

		p.Acquire(context.Background())
		if called.Load() {
			t.Error("expected unsubscribed callback not to run")
		}
	})
}
