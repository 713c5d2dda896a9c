package resolver

import (
	"context"
	"sync"

	"github.com/dmitrymomot/folio/pkg/lang"
)

// Phase is the lifecycle position of a Session.
type Phase int

const (
	// Unresolved is the phase before the first resolution completes.
	// Nothing language-dependent may be rendered in it.
	Unresolved Phase = iota
	// Resolved is the steady state.
	Resolved
)

func (p Phase) String() string {
	if p == Resolved {
		return "resolved"
	}
	return "unresolved"
}

// Result is the outcome of a resolution or navigation step.
type Result struct {
	Preference lang.Preference
	// Path is the URL path that carries Preference.Code.
	Path string
	// Redirect is true when Path differs from the path that was asked about.
	Redirect bool
}

// State is the immutable language state handed to rendering code.
type State struct {
	Preference lang.Preference
	Route      lang.RouteState
	Path       string
}

// Code is a shortcut for State.Preference.Code.
func (s State) Code() lang.Code {
	return s.Preference.Code
}

// Link localizes a logical path for the active language.
func (s State) Link(target string) string {
	return lang.Localize(target, s.Preference.Code)
}

// Session binds a Resolver to one visitor's signals and tracks the
// Unresolved → Resolved transition. The transition happens once; later
// location changes go through Navigate. Methods serialize on a mutex so at
// most one pass is in flight.
type Session struct {
	resolver *Resolver
	store    Store
	addr     string
	locales  []string

	current Result
	phase   Phase
	mu      sync.Mutex
}

// NewSession starts an Unresolved session. store may be nil.
func (r *Resolver) NewSession(store Store, locales []string, addr string) *Session {
	return &Session{
		resolver: r,
		store:    store,
		locales:  locales,
		addr:     addr,
	}
}

// Phase reports the current lifecycle phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Start performs the first resolution for path. Calling it again returns the
// first result without resolving twice.
func (s *Session) Start(ctx context.Context, path string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == Resolved {
		return s.current
	}

	pref := s.resolver.Resolve(ctx, Request{
		Store:   s.store,
		Path:    path,
		Addr:    s.addr,
		Locales: s.locales,
	})
	s.settle(pref, path)
	return s.current
}

// Navigate handles a location change. A path whose segment names another
// supported language switches to it and persists the choice; a path without
// a segment is synced to the active language. Before Start it behaves like
// Start.
//
// Navigate serves sessions that outlive one request and see several paths,
// such as a client-side router. The HTTP middleware starts a fresh Session
// per request and never calls it.
func (s *Session) Navigate(ctx context.Context, path string) Result {
	s.mu.Lock()
	if s.phase == Unresolved {
		s.mu.Unlock()
		return s.Start(ctx, path)
	}
	defer s.mu.Unlock()

	seg := lang.Segment(path)
	switch {
	case seg == "":
		s.settle(s.current.Preference, path)
	case seg != s.current.Preference.Code:
		s.resolver.persist(ctx, s.store, seg)
		s.settle(lang.Preference{Code: seg, Source: lang.SourceURL}, path)
	default:
		s.settle(s.current.Preference, path)
	}
	return s.current
}

// Switch is the single setter for an explicit language change. It persists
// code and returns the path to show for it.
func (s *Session) Switch(ctx context.Context, code lang.Code, path string) (Result, error) {
	if !code.IsSupported() {
		return Result{}, ErrUnsupported
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.resolver.persist(ctx, s.store, code)
	s.settle(lang.Preference{Code: code, Source: lang.SourceURL}, path)
	return s.current, nil
}

// State returns the immutable language state, and false while Unresolved.
func (s *Session) State() (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == Unresolved {
		return State{}, false
	}
	return State{
		Preference: s.current.Preference,
		Route:      lang.Split(s.current.Path),
		Path:       s.current.Path,
	}, true
}

// settle must be called with mu held.
func (s *Session) settle(pref lang.Preference, path string) {
	synced := lang.Sync(pref.Code, path)
	s.current = Result{
		Preference: pref,
		Path:       synced,
		Redirect:   synced != path,
	}
	s.phase = Resolved
}
