package session

import (
	"sync"

	"github.com/fekuna/omnipos-backoffice/internal/logger"
	"github.com/fekuna/omnipos-backoffice/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Session holds the identity established by the last successful login.
type Session struct {
	mu       sync.Mutex
	identity *model.Identity
	id       string
	onEnd    []func()
	logger   logger.ZapLogger
}

func New(log logger.ZapLogger) *Session {
	return &Session{logger: log}
}

// OnEnd registers a teardown hook run by End, in registration order.
func (s *Session) OnEnd(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onEnd = append(s.onEnd, fn)
}

// Start replaces any active identity and returns the new session id.
func (s *Session) Start(identity *model.Identity) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *identity
	s.identity = &copied
	s.id = uuid.NewString()
	s.logger.Info("session started",
		zap.String("session_id", s.id),
		zap.Int64("user_id", identity.ID),
		zap.String("role", identity.Role))
	return s.id
}

// End clears the identity and runs the teardown hooks. Ending an inactive
// session is a no-op.
func (s *Session) End() {
	s.mu.Lock()
	if s.identity == nil {
		s.mu.Unlock()
		return
	}
	id := s.id
	hooks := append([]func(){}, s.onEnd...)
	s.identity = nil
	s.id = ""
	s.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
	s.logger.Info("session ended", zap.String("session_id", id))
}

// Current returns a copy of the active identity.
func (s *Session) Current() (model.Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return model.Identity{}, false
	}
	return *s.identity, true
}

func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

func (s *Session) Active() bool {
	_, ok := s.Current()
	return ok
}

// HasRole reports whether the active identity carries role.
func (s *Session) HasRole(role string) bool {
	identity, ok := s.Current()
	return ok && identity.Role == role
}
