package catalog

import (
	"context"
	"errors"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/discover/internal/models"
	"github.com/desertthunder/discover/internal/services"
	"github.com/desertthunder/discover/internal/shared"
)

// CredentialSource is the credential provider as seen by the orchestrator.
type CredentialSource interface {
	Status() models.CredentialStatus
	Token() (string, bool)
	Err() error
	Subscribe(fn func(models.CredentialStatus)) func()
}

// TermSource is the shared search term as seen by the orchestrator.
type TermSource interface {
	Term() string
	Subscribe(fn func(string)) func()
}

// Opts contains the orchestrator's collaborators.
type Opts struct {
	Credentials CredentialSource
	Search      TermSource
	Catalog     services.Fetcher
	Logger      *log.Logger
}

type snapshotSubscriber struct {
	id int
	fn func(models.Snapshot)
}

// Orchestrator gates catalog fetches on the credential and reacts to search term changes.
type Orchestrator struct {
	creds   CredentialSource
	search  TermSource
	catalog services.Fetcher
	logger  *log.Logger

	startOnce sync.Once
	closeOnce sync.Once
	wg        sync.WaitGroup

	mu         sync.Mutex
	ctx        context.Context
	cancel     context.CancelFunc
	unsubs     []func()
	credential models.CredentialStatus
	token      string
	fannedOut  bool
	closed     bool
	base       map[models.SectionKind]models.Section
	results    models.Section
	term       string
	searchKey  string
	searchSeq  uint64
	version    uint64
	changed    chan struct{}

	// notifyMu keeps subscriber delivery in version order.
	notifyMu    sync.Mutex
	lastEmitted uint64

	subsMu sync.Mutex
	subs   []snapshotSubscriber
	nextID int
}

// New creates an orchestrator with every section NotRequested. Nothing happens until [Orchestrator.Start].
func New(opts Opts) *Orchestrator {
	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	base := make(map[models.SectionKind]models.Section, len(models.BaseSections))
	for _, kind := range models.BaseSections {
		base[kind] = models.Section{Kind: kind, Status: models.NotRequested}
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Orchestrator{
		creds:      opts.Credentials,
		search:     opts.Search,
		catalog:    opts.Catalog,
		logger:     shared.WithLogger(logger, "component", "catalog"),
		ctx:        ctx,
		cancel:     cancel,
		credential: models.CredentialPending,
		base:       base,
		results:    models.Section{Kind: models.SearchResults, Status: models.NotRequested},
		changed:    make(chan struct{}),
	}
}

// Start subscribes to the credential and the search term. Only the first call has any effect.
//
// Fetches run under ctx until it is canceled or [Orchestrator.Close] is called.
func (o *Orchestrator) Start(ctx context.Context) {
	o.startOnce.Do(func() {
		o.mu.Lock()
		if o.closed {
			o.mu.Unlock()
			return
		}
		o.cancel()
		o.ctx, o.cancel = context.WithCancel(ctx)
		o.mu.Unlock()

		unsubs := []func(){
			o.creds.Subscribe(o.onCredential),
			o.search.Subscribe(func(string) { o.onTermChange() }),
		}

		o.mu.Lock()
		if o.closed {
			o.mu.Unlock()
			for _, unsubscribe := range unsubs {
				unsubscribe()
			}
			return
		}
		o.unsubs = unsubs
		o.mu.Unlock()

		// The credential may have settled before we subscribed.
		if status := o.creds.Status(); status != models.CredentialPending {
			o.onCredential(status)
		}
		o.logger.Debug("orchestrator started")
	})
}

func (o *Orchestrator) onCredential(status models.CredentialStatus) {
	switch status {
	case models.CredentialReady:
		o.fanOut()
	case models.CredentialFailed:
		o.failBase()
	}
}

func (o *Orchestrator) fanOut() {
	o.mu.Lock()
	if o.closed || o.fannedOut || o.credential == models.CredentialFailed {
		o.mu.Unlock()
		o.logger.Debug("ignoring ready notification")
		return
	}
	token, ok := o.creds.Token()
	if !ok {
		o.mu.Unlock()
		return
	}

	o.fannedOut = true
	o.credential = models.CredentialReady
	o.token = token
	for _, kind := range models.BaseSections {
		o.base[kind] = models.Section{Kind: kind, Status: models.Loading}
	}
	o.bumpLocked()
	ctx := o.ctx
	o.wg.Add(len(models.BaseSections))
	o.mu.Unlock()

	o.logger.Info("credential ready, fetching base sections", "sections", len(models.BaseSections))
	for _, kind := range models.BaseSections {
		go o.fetchBase(ctx, kind, token)
	}
	o.emit()

	// A term set while the credential was pending is searched now.
	o.onTermChange()
}

func (o *Orchestrator) failBase() {
	o.mu.Lock()
	if o.closed || o.credential != models.CredentialPending {
		o.mu.Unlock()
		return
	}

	err := o.creds.Err()
	if !errors.Is(err, shared.ErrCredentialAcquisition) {
		err = &models.CredentialAcquisitionError{Err: err}
	}

	o.credential = models.CredentialFailed
	for _, kind := range models.BaseSections {
		o.base[kind] = models.Section{Kind: kind, Status: models.Failed, Err: err}
	}
	o.bumpLocked()
	o.mu.Unlock()

	o.logger.Warn("credential failed, catalog unavailable", "error", err)
	o.emit()
}

func (o *Orchestrator) fetchBase(ctx context.Context, kind models.SectionKind, token string) {
	defer o.wg.Done()

	items, err := o.catalog.Fetch(ctx, kind, token, "")

	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.base[kind] = settle(kind, items, err)
	o.bumpLocked()
	o.mu.Unlock()

	if err != nil {
		o.logger.Warn("section failed", "section", kind, "error", err)
	} else {
		o.logger.Info("section loaded", "section", kind, "items", len(items))
	}
	o.emit()
}

// onTermChange reads the current term and issues a search if the guard holds.
//
// The term is read from the source under o.mu rather than taken from the notification,
// so a late handler can never act on an older value.
func (o *Orchestrator) onTermChange() {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}

	term := o.search.Term()
	exposedBefore := o.exposedLocked()
	o.term = term

	if o.credential != models.CredentialReady || term == "" || term == o.searchKey {
		credential := o.credential
		changed := exposedBefore != o.exposedLocked()
		if changed {
			o.bumpLocked()
		}
		o.mu.Unlock()

		o.logger.Debug("search skipped", "term", term, "credential", credential, "exposure_changed", changed)
		if changed {
			o.emit()
		}
		return
	}

	o.searchKey = term
	o.searchSeq++
	seq, token, ctx := o.searchSeq, o.token, o.ctx
	o.results = models.Section{Kind: models.SearchResults, Status: models.Loading, QueryKey: term}
	o.bumpLocked()
	o.wg.Add(1)
	o.mu.Unlock()

	o.logger.Info("searching", "term", term, "seq", seq)
	go o.fetchSearch(ctx, seq, term, token)
	o.emit()
}

func (o *Orchestrator) fetchSearch(ctx context.Context, seq uint64, term, token string) {
	defer o.wg.Done()

	items, err := o.catalog.Fetch(ctx, models.SearchResults, token, term)

	o.mu.Lock()
	if o.closed || seq != o.searchSeq {
		current := o.searchKey
		o.mu.Unlock()
		o.logger.Debug("discarding stale search response", "term", term, "current", current)
		return
	}
	section := settle(models.SearchResults, items, err)
	section.QueryKey = term
	o.results = section
	o.bumpLocked()
	o.mu.Unlock()

	if err != nil {
		o.logger.Warn("search failed", "term", term, "error", err)
	} else {
		o.logger.Info("search loaded", "term", term, "items", len(items))
	}
	o.emit()
}

// settle turns a fetch outcome into a terminal section. A Failed section never carries items.
func settle(kind models.SectionKind, items []models.CatalogItem, err error) models.Section {
	if err != nil {
		return models.Section{
			Kind:   kind,
			Status: models.Failed,
			Items:  []models.CatalogItem{},
			Err:    &models.SectionFetchError{Section: kind, Err: err},
		}
	}
	if items == nil {
		items = []models.CatalogItem{}
	}
	return models.Section{Kind: kind, Status: models.Loaded, Items: items}
}

func (o *Orchestrator) exposedLocked() bool {
	return o.credential == models.CredentialReady && o.searchKey != "" && o.term != ""
}

func (o *Orchestrator) bumpLocked() {
	o.version++
	close(o.changed)
	o.changed = make(chan struct{})
}

func (o *Orchestrator) snapshotLocked() models.Snapshot {
	snap := models.Snapshot{
		Version:           o.version,
		Credential:        o.credential,
		NewReleases:       o.base[models.NewReleases],
		FeaturedPlaylists: o.base[models.FeaturedPlaylists],
		Categories:        o.base[models.Categories],
	}
	if o.exposedLocked() {
		results := o.results
		snap.SearchResults = &results
	}
	return snap
}

// Snapshot returns the current read-only view of all sections.
func (o *Orchestrator) Snapshot() models.Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snapshotLocked()
}

func (o *Orchestrator) emit() {
	o.notifyMu.Lock()
	defer o.notifyMu.Unlock()

	snap := o.Snapshot()
	if snap.Version <= o.lastEmitted {
		return
	}
	o.lastEmitted = snap.Version

	o.subsMu.Lock()
	subs := make([]snapshotSubscriber, len(o.subs))
	copy(subs, o.subs)
	o.subsMu.Unlock()

	for _, sub := range subs {
		sub.fn(snap)
	}
}

// Subscribe registers fn for every snapshot emitted after the call.
//
// Snapshots arrive in increasing version order, though intermediate versions may be skipped.
// fn must not block and must not set the search term.
func (o *Orchestrator) Subscribe(fn func(models.Snapshot)) func() {
	o.subsMu.Lock()
	id := o.nextID
	o.nextID++
	o.subs = append(o.subs, snapshotSubscriber{id: id, fn: fn})
	o.subsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			o.subsMu.Lock()
			defer o.subsMu.Unlock()
			for i, sub := range o.subs {
				if sub.id == id {
					o.subs = append(o.subs[:i], o.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Wait blocks until all three base sections are Loaded or Failed.
func (o *Orchestrator) Wait(ctx context.Context) (models.Snapshot, error) {
	for {
		o.mu.Lock()
		snap := o.snapshotLocked()
		closed, ch := o.closed, o.changed
		o.mu.Unlock()

		if baseSettled(snap) {
			return snap, nil
		}
		if closed {
			return snap, shared.ErrClosed
		}

		select {
		case <-ctx.Done():
			return snap, ctx.Err()
		case <-ch:
		}
	}
}

func baseSettled(snap models.Snapshot) bool {
	return snap.NewReleases.Status.Terminal() &&
		snap.FeaturedPlaylists.Status.Terminal() &&
		snap.Categories.Status.Terminal()
}

// WaitSearch blocks until the search for term is Loaded or Failed.
//
// It returns the credential error if the credential fails, and [shared.ErrSearchSuperseded] once a
// newer term has been searched after term.
func (o *Orchestrator) WaitSearch(ctx context.Context, term string) (models.Section, error) {
	if term == "" {
		return models.Section{}, shared.ErrInvalidArgument
	}

	var issued uint64
	for {
		o.mu.Lock()
		results, key, seq := o.results, o.searchKey, o.searchSeq
		credential, closed, ch := o.credential, o.closed, o.changed
		o.mu.Unlock()

		if key == term {
			if results.Status.Terminal() {
				return results, nil
			}
			issued = seq
		} else if issued != 0 && seq > issued {
			return models.Section{}, shared.ErrSearchSuperseded
		}

		switch {
		case credential == models.CredentialFailed:
			return models.Section{}, o.creds.Err()
		case closed:
			return models.Section{}, shared.ErrClosed
		}

		select {
		case <-ctx.Done():
			return models.Section{}, ctx.Err()
		case <-ch:
		}
	}
}

// Close unsubscribes from both sources, cancels in-flight fetches and waits for them to return.
//
// Responses arriving after Close are dropped.
func (o *Orchestrator) Close() {
	o.closeOnce.Do(func() {
		o.mu.Lock()
		o.closed = true
		o.bumpLocked()
		cancel, unsubs := o.cancel, o.unsubs
		o.mu.Unlock()

		for _, unsubscribe := range unsubs {
			unsubscribe()
		}
		cancel()
		o.wg.Wait()
		o.logger.Debug("orchestrator closed")
	})
}
