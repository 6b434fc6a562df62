package search

import "sync"

type termSubscriber struct {
	id int
	fn func(string)
}

// State stores the current search term and notifies subscribers on every write.
type State struct {
	// writeMu serializes SetTerm so notifications are delivered in call order.
	writeMu sync.Mutex

	mu     sync.RWMutex
	term   string
	subs   []termSubscriber
	nextID int
}

// NewState creates a State holding the empty term.
func NewState() *State {
	return &State{}
}

// SetTerm overwrites the term and synchronously notifies subscribers in subscription order.
//
// The value is stored as given, without trimming, and subscribers are notified even if it is unchanged.
// Subscribers must not call SetTerm.
func (s *State) SetTerm(term string) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.term = term
	subs := make([]termSubscriber, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(term)
	}
}

// Term returns the current term.
func (s *State) Term() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.term
}

// Subscribe registers fn to receive every term written after the call.
//
// The returned function removes the subscription and is safe to call more than once.
func (s *State) Subscribe(fn func(string)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, termSubscriber{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}
