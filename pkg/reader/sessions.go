package reader

import (
	"context"
	"sync"

	"github.com/blendbooks/blend/pkg/errcodes"
	"github.com/blendbooks/blend/pkg/preferences"
	"github.com/blendbooks/blend/pkg/progress"
	"github.com/blendbooks/blend/pkg/resolver"
	"github.com/blendbooks/blend/pkg/settings"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Sessions is the registry of open reading sessions.
type Sessions struct {
	resolverService   *resolver.Service
	preferenceService *preferences.Service
	progressService   *progress.Service
	settingsService   *settings.Service
	scroller          Scroller

	mu   sync.Mutex
	byID map[string]*Session
}

func NewSessions(db *bun.DB, resolverService *resolver.Service, settingsService *settings.Service) *Sessions {
	return &Sessions{
		resolverService:   resolverService,
		preferenceService: preferences.NewService(db),
		progressService:   progress.NewService(db),
		settingsService:   settingsService,
		scroller:          noopScroller{},
		byID:              map[string]*Session{},
	}
}

// SetScroller replaces the scroller handed to sessions opened after this
// call.
func (r *Sessions) SetScroller(scroller Scroller) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scroller = scroller
}

// Open resolves the document and registers a new session for it.
func (r *Sessions) Open(ctx context.Context, documentID string) (*Session, error) {
	r.mu.Lock()
	scroller := r.scroller
	r.mu.Unlock()

	s := &Session{
		id:                uuid.NewString(),
		resolverService:   r.resolverService,
		preferenceService: r.preferenceService,
		progressService:   r.progressService,
		settingsService:   r.settingsService,
		scroller:          scroller,
	}

	if err := s.Load(ctx, documentID); err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.byID[s.id] = s
	r.mu.Unlock()

	return s, nil
}

// Get returns the session with the given id.
func (r *Sessions) Get(id string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.byID[id]
	if !ok {
		return nil, errcodes.NotFound("Session")
	}
	return s, nil
}

// Close removes a session from the registry.
func (r *Sessions) Close(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
}
