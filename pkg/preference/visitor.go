package preference

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/folio/pkg/cookie"
	"github.com/dmitrymomot/folio/pkg/resolver"
)

// VisitorCookie names the cookie holding the visitor ID.
const VisitorCookie = "visitor"

// Backend hands out stores scoped to one visitor.
type Backend interface {
	For(visitorID string) resolver.Store
}

// Visitor returns the visitor ID from the request, issuing a new UUIDv7
// cookie when it is missing, forged, or not a UUID.
func Visitor(m *cookie.Manager, w http.ResponseWriter, r *http.Request) (string, error) {
	if v, err := m.Read(r, VisitorCookie); err == nil {
		if id, err := uuid.Parse(v); err == nil {
			return id.String(), nil
		}
	}

	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	if err := m.Write(w, VisitorCookie, id.String(), cookie.OneYear); err != nil {
		return "", err
	}
	return id.String(), nil
}

// Server adapts a Backend to a per-request resolver.Store. The visitor is
// looked up lazily so requests that never touch the store get no cookie.
type Server struct {
	backend Backend
	manager *cookie.Manager
	w       http.ResponseWriter
	r       *http.Request
	store   resolver.Store
}

// NewServer binds a server-side backend to one request.
func NewServer(b Backend, m *cookie.Manager, w http.ResponseWriter, r *http.Request) *Server {
	return &Server{backend: b, manager: m, w: w, r: r}
}

func (s *Server) Get(ctx context.Context, key string) (string, error) {
	store, err := s.scoped()
	if err != nil {
		return "", err
	}
	return store.Get(ctx, key)
}

func (s *Server) Set(ctx context.Context, key, value string) error {
	store, err := s.scoped()
	if err != nil {
		return err
	}
	return store.Set(ctx, key, value)
}

func (s *Server) scoped() (resolver.Store, error) {
	if s.store != nil {
		return s.store, nil
	}
	id, err := Visitor(s.manager, s.w, s.r)
	if err != nil {
		return nil, err
	}
	s.store = s.backend.For(id)
	return s.store, nil
}
