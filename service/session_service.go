package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"board-customizer/customizer"
	"board-customizer/models"
)

var (
	// ErrSessionNotFound is returned for unknown or expired session ids
	ErrSessionNotFound = errors.New("session not found")
	// ErrUnknownCategory is returned for a category outside wheel, deck, truck and bolt
	ErrUnknownCategory = errors.New("unknown category")
	// ErrOptionNotFound is returned when a uid is not offered for a category
	ErrOptionNotFound = errors.New("option not found")
)

// Session is the customizer state of one page load
type Session struct {
	ID       string
	Doc      *models.BoardCustomizer
	Store    *customizer.Store
	Preview  *customizer.Preview
	Controls *customizer.Controls

	lastActivity time.Time
	sockets      int
}

func (s *Session) close() {
	s.Preview.Close()
	s.Controls.Close()
}

// SessionService keeps customizer sessions in memory and expires idle ones
// Implements SessionServiceInterface
type SessionService struct {
	ttl      time.Duration
	basePath string
	textures customizer.TextureResolver

	mu       sync.Mutex
	sessions map[string]*Session

	now func() time.Time
}

// NewSessionService creates a new SessionService
func NewSessionService(ttl time.Duration, basePath string, textures customizer.TextureResolver) *SessionService {
	return &SessionService{
		ttl:      ttl,
		basePath: basePath,
		textures: textures,
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// Ensure SessionService implements SessionServiceInterface
var _ SessionServiceInterface = (*SessionService)(nil)

// Create opens a session seeded from the wheel, deck, truck and bolt query parameters
func (s *SessionService) Create(doc *models.BoardCustomizer, query url.Values) *Session {
	store := customizer.NewStore(doc, customizer.DefaultsFromQuery(doc, query))

	// controls subscribe first so scene listeners observe up to date swatches
	controls := customizer.NewControls(store, doc, s.basePath, s.textures)
	preview := customizer.NewPreview(store, doc, s.textures)

	sess := &Session{
		ID:           uuid.NewString(),
		Doc:          doc,
		Store:        store,
		Preview:      preview,
		Controls:     controls,
		lastActivity: s.now(),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	count := len(s.sessions)
	s.mu.Unlock()

	log.Debug().Msgf("🆕 Session %s opened (%d active)", sess.ID, count)
	return sess
}

// Get returns a live session and refreshes its activity time
func (s *SessionService) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	sess.lastActivity = s.now()
	return sess, nil
}

// Attach marks a session as held by a live socket until release is called
// Attached sessions never expire; release restarts the idle clock
func (s *SessionService) Attach(id string) (*Session, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	sess.sockets++
	sess.lastActivity = s.now()

	var once sync.Once
	release := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			sess.sockets--
			sess.lastActivity = s.now()
		})
	}
	return sess, release, nil
}

// Select sets the option uid for category on the session's store
// The uid must be one of the options the category offers
func (s *SessionService) Select(id string, category string, uid string) (*Session, error) {
	cat, ok := models.ParseCategory(category)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}

	sess, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	opt, ok := sess.Doc.FindOption(cat, uid)
	if !ok {
		return nil, fmt.Errorf("%w: %s %s", ErrOptionNotFound, category, uid)
	}

	if sess.Store.Set(cat, opt) {
		log.Debug().Msgf("🛹 Session %s: %s -> %s", id, cat, uid)
	}
	return sess, nil
}

// StartCamera forwards the first camera drag to the session's preview
// The boolean reports whether the floor collider was registered by this call
func (s *SessionService) StartCamera(id string) (*Session, bool, error) {
	sess, err := s.Get(id)
	if err != nil {
		return nil, false, err
	}
	return sess, sess.Preview.OnCameraStart(), nil
}

// Response builds the JSON view of a session
func (s *SessionService) Response(sess *Session) models.SessionResponse {
	return models.SessionResponse{
		ID:        sess.ID,
		Selection: sess.Store.Selection(),
		Scene:     sess.Preview.Scene(),
		Controls:  sess.Controls.Groups(),
	}
}

// Len returns the number of live sessions
func (s *SessionService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep closes and removes sessions idle for longer than the TTL
// Sessions with an attached socket are kept
func (s *SessionService) Sweep() int {
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	var expired []*Session
	for id, sess := range s.sessions {
		if sess.sockets == 0 && sess.lastActivity.Before(cutoff) {
			expired = append(expired, sess)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, sess := range expired {
		sess.close()
	}
	if len(expired) > 0 {
		log.Info().Msgf("🧹 Expired %d idle sessions", len(expired))
	}
	return len(expired)
}

// Run sweeps expired sessions until ctx is cancelled
func (s *SessionService) Run(ctx context.Context) {
	interval := s.ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
