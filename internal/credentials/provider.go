package credentials

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/discover/internal/models"
	"github.com/desertthunder/discover/internal/shared"
)

type statusSubscriber struct {
	id int
	fn func(models.CredentialStatus)
}

// Provider owns the credential for one orchestrator lifetime.
type Provider struct {
	auth   Authenticator
	logger *log.Logger

	mu      sync.RWMutex
	started bool
	status  models.CredentialStatus
	token   string
	err     error
	subs    []statusSubscriber
	nextID  int
}

// NewProvider creates a Pending provider backed by auth.
func NewProvider(auth Authenticator, logger *log.Logger) *Provider {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Provider{
		auth:   auth,
		logger: shared.WithLogger(logger, "component", "credentials"),
		status: models.CredentialPending,
	}
}

// Acquire performs the single authentication round trip and records the outcome.
//
// Only the first call does any work. Later calls return the recorded error, if any,
// without touching the network. Failures are returned as [*models.CredentialAcquisitionError].
func (p *Provider) Acquire(ctx context.Context) error {
	p.mu.Lock()
	if p.started {
		err := p.err
		p.mu.Unlock()
		p.logger.Debug("acquire called again, ignoring", "status", p.Status())
		return err
	}
	p.started = true
	p.mu.Unlock()

	p.logger.Info("acquiring credential")
	token, err := p.auth.Authenticate(ctx)

	p.mu.Lock()
	if err != nil {
		p.status = models.CredentialFailed
		p.err = &models.CredentialAcquisitionError{Err: err}
	} else {
		p.status = models.CredentialReady
		p.token = token
	}
	status, recorded := p.status, p.err
	subs := make([]statusSubscriber, len(p.subs))
	copy(subs, p.subs)
	p.mu.Unlock()

	if recorded != nil {
		p.logger.Warn("credential acquisition failed", "error", recorded)
	} else {
		p.logger.Info("credential ready")
	}

	for _, sub := range subs {
		sub.fn(status)
	}
	return recorded
}

// Status returns the current acquisition status.
func (p *Provider) Status() models.CredentialStatus {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status
}

// Token returns the bearer token and whether the credential is Ready.
func (p *Provider) Token() (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.token, p.status == models.CredentialReady
}

// Err returns the acquisition error once the credential has Failed.
func (p *Provider) Err() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.err
}

// Subscribe registers fn for the Pending→Ready or Pending→Failed transition.
//
// fn runs on the goroutine that called [Provider.Acquire]. The returned function removes the subscription.
func (p *Provider) Subscribe(fn func(models.CredentialStatus)) func() {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.subs = append(p.subs, statusSubscriber{id: id, fn: fn})
	p.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			for i, sub := range p.subs {
				if sub.id == id {
					p.subs = append(p.subs[:i], p.subs[i+1:]...)
					return
				}
			}
		})
	}
}
