// Package httpapi exposes the FocusKeeper REST API: account registration and
// login, and read/create access to the caller's focus tree.
package httpapi

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/focuskeeper/internal/logging"
	"github.com/dmitrijs2005/focuskeeper/internal/server/models"
	"github.com/dmitrijs2005/focuskeeper/internal/server/services"
)

// UserService is the account side of the API.
type UserService interface {
	Register(ctx context.Context, username, password string) (*services.Session, error)
	Login(ctx context.Context, username, password string) (*services.Session, error)
}

// FocusService is the focus tree side of the API.
type FocusService interface {
	GetRoot(ctx context.Context, userID string) (*models.Focus, error)
	Get(ctx context.Context, focusID, userID string) (*models.Focus, error)
	Create(ctx context.Context, name, parentFocusID, userID string) (*models.Focus, error)
	Update(ctx context.Context, focusID, name, userID string) (*models.Focus, error)
	Delete(ctx context.Context, focusID, userID string) error
}

// Deps groups the collaborators of a Server.
type Deps struct {
	Users     UserService
	Focuses   FocusService
	SecretKey []byte
	Logger    logging.Logger
	Metrics   *Metrics

	// Ping reports storage readiness for /healthz. Nil means always ready.
	Ping func(ctx context.Context) error
}

type Server struct {
	users   UserService
	focuses FocusService
	secret  []byte
	logger  logging.Logger
	metrics *Metrics
	ping    func(ctx context.Context) error
	handler http.Handler
}

// New builds the API server and its router.
func New(d Deps) *Server {
	s := &Server{
		users:   d.Users,
		focuses: d.Focuses,
		secret:  d.SecretKey,
		logger:  d.Logger,
		metrics: d.Metrics,
		ping:    d.Ping,
	}
	if s.logger == nil {
		s.logger = logging.Discard()
	}
	if s.metrics == nil {
		s.metrics = NewMetrics()
	}
	s.handler = s.buildRouter()
	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}
