package dialogue

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/medibook-ai/booking-assistant/pkg/logging"
)

// Service ties the controller to a session store and serializes turns per
// session. Turns for different sessions proceed concurrently; two turns for
// the same session never interleave.
type Service struct {
	controller *Controller
	store      SessionStore
	logger     *logging.Logger

	locks sync.Map // sessionID -> *sync.Mutex
}

// NewService builds a dialogue service. Controller and store are required.
func NewService(controller *Controller, store SessionStore, logger *logging.Logger) *Service {
	if controller == nil {
		panic("dialogue: controller cannot be nil")
	}
	if store == nil {
		panic("dialogue: session store cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		controller: controller,
		store:      store,
		logger:     logger,
	}
}

// StartSession creates a fresh idle session and returns its ID.
func (s *Service) StartSession(ctx context.Context) (string, error) {
	sessionID := uuid.NewString()
	if err := s.store.Save(ctx, sessionID, NewContext()); err != nil {
		return "", fmt.Errorf("dialogue: failed to start session: %w", err)
	}
	s.logger.Info("session started", "session_id", sessionID)
	return sessionID, nil
}

// ProcessUserInput runs one turn for the given session and returns the
// assistant's reply. Unknown sessions are created on first use.
func (s *Service) ProcessUserInput(ctx context.Context, sessionID, text string) (string, error) {
	if sessionID == "" {
		return "", errors.New("dialogue: session ID is required")
	}

	mu := s.sessionLock(sessionID)
	mu.Lock()
	defer mu.Unlock()

	sess, err := s.store.Load(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, ErrSessionNotFound) {
			return "", err
		}
		sess = NewContext()
	}

	reply := s.controller.ProcessUserInput(ctx, sess, text)

	if err := s.store.Save(ctx, sessionID, sess); err != nil {
		return "", err
	}
	return reply, nil
}

// Reset discards a session's context; the next turn starts from idle.
func (s *Service) Reset(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return errors.New("dialogue: session ID is required")
	}

	mu := s.sessionLock(sessionID)
	mu.Lock()
	defer mu.Unlock()

	if err := s.store.Save(ctx, sessionID, NewContext()); err != nil {
		return err
	}
	s.logger.Info("session reset", "session_id", sessionID)
	return nil
}

func (s *Service) sessionLock(sessionID string) *sync.Mutex {
	v, _ := s.locks.LoadOrStore(sessionID, &sync.Mutex{})
	return v.(*sync.Mutex)
}
