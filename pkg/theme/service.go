package theme

import (
	"context"
	"sync"

	"github.com/blendbooks/blend/pkg/keyval"
	"github.com/blendbooks/blend/pkg/models"
	"github.com/uptrace/bun"
)

const themeKey = "theme"

// Service persists the light/dark theme choice and broadcasts changes to
// subscribers.
type Service struct {
	kv *keyval.Service

	mu        sync.Mutex
	listeners map[int]func(string)
	nextID    int
}

func NewService(db *bun.DB) *Service {
	return &Service{
		kv:        keyval.NewService(db),
		listeners: map[int]func(string){},
	}
}

// Theme returns the stored theme, defaulting to light. Unrecognized stored
// values also fall back to light.
func (svc *Service) Theme(ctx context.Context) (string, error) {
	stored, err := svc.kv.Get(ctx, themeKey)
	if err != nil {
		return "", err
	}
	if stored != nil && *stored == models.ThemeDark {
		return models.ThemeDark, nil
	}
	return models.ThemeLight, nil
}

// Toggle flips between light and dark, persists the result, and returns the
// new theme.
func (svc *Service) Toggle(ctx context.Context) (string, error) {
	current, err := svc.Theme(ctx)
	if err != nil {
		return "", err
	}

	next := models.ThemeDark
	if current == models.ThemeDark {
		next = models.ThemeLight
	}

	if err := svc.kv.Set(ctx, themeKey, next); err != nil {
		return "", err
	}

	svc.mu.Lock()
	listeners := make([]func(string), 0, len(svc.listeners))
	for _, fn := range svc.listeners {
		listeners = append(listeners, fn)
	}
	svc.mu.Unlock()

	for _, fn := range listeners {
		fn(next)
	}

	return next, nil
}

// Subscribe registers a listener called with the new theme after every
// toggle. The returned function unsubscribes it.
func (svc *Service) Subscribe(fn func(string)) func() {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	id := svc.nextID
	svc.nextID++
	svc.listeners[id] = fn

	return func() {
		svc.mu.Lock()
		defer svc.mu.Unlock()
		delete(svc.listeners, id)
	}
}
