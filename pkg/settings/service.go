package settings

import (
	"context"
	"sync"

	"github.com/blendbooks/blend/pkg/keyval"
	"github.com/blendbooks/blend/pkg/models"
	"github.com/uptrace/bun"
)

const settingsKey = "book-reader-settings"

// Service owns the process-wide reader settings. It is constructed once and
// injected into everything that needs settings; components that must react to
// changes register a listener with Subscribe.
type Service struct {
	kv *keyval.Service

	mu        sync.RWMutex
	current   *models.UserSettings
	listeners map[int]func(models.UserSettings)
	nextID    int
}

func NewService(db *bun.DB) *Service {
	return &Service{
		kv:        keyval.NewService(db),
		listeners: map[int]func(models.UserSettings){},
	}
}

// Settings returns the current settings, lazily loading them from the store
// on first access. Stored settings are merged over the defaults so fields
// added after the settings were last saved keep their default values.
func (svc *Service) Settings(ctx context.Context) (models.UserSettings, error) {
	svc.mu.RLock()
	if svc.current != nil {
		current := *svc.current
		svc.mu.RUnlock()
		return current, nil
	}
	svc.mu.RUnlock()

	svc.mu.Lock()
	defer svc.mu.Unlock()

	if svc.current != nil {
		return *svc.current, nil
	}

	loaded := models.DefaultUserSettings()
	if _, err := svc.kv.GetJSON(ctx, settingsKey, &loaded); err != nil {
		return models.UserSettings{}, err
	}

	svc.current = &loaded
	return loaded, nil
}

// UpdateSettingsOptions carries the fields to change; nil fields are left
// untouched.
type UpdateSettingsOptions struct {
	ShowProgressIndicator *bool
	ShowTranslationSlider *bool
	DarkMode              *bool
	ShowTranslation       *bool
	SentencesPerPage      *int
	NativeLanguage        *string
}

// Update applies the given changes, persists the result, and notifies
// subscribers.
func (svc *Service) Update(ctx context.Context, opts UpdateSettingsOptions) (models.UserSettings, error) {
	current, err := svc.Settings(ctx)
	if err != nil {
		return models.UserSettings{}, err
	}

	if opts.ShowProgressIndicator != nil {
		current.ShowProgressIndicator = *opts.ShowProgressIndicator
	}
	if opts.ShowTranslationSlider != nil {
		current.ShowTranslationSlider = *opts.ShowTranslationSlider
	}
	if opts.DarkMode != nil {
		current.DarkMode = *opts.DarkMode
	}
	if opts.ShowTranslation != nil {
		current.ShowTranslation = *opts.ShowTranslation
	}
	if opts.SentencesPerPage != nil {
		current.SentencesPerPage = *opts.SentencesPerPage
	}
	if opts.NativeLanguage != nil {
		current.NativeLanguage = *opts.NativeLanguage
	}

	return svc.save(ctx, current)
}

// ToggleShowTranslation flips whether native text is ever shown.
func (svc *Service) ToggleShowTranslation(ctx context.Context) (models.UserSettings, error) {
	current, err := svc.Settings(ctx)
	if err != nil {
		return models.UserSettings{}, err
	}
	next := !current.ShowTranslation
	return svc.Update(ctx, UpdateSettingsOptions{ShowTranslation: &next})
}

// ToggleProgressIndicator flips the progress indicator visibility.
func (svc *Service) ToggleProgressIndicator(ctx context.Context) (models.UserSettings, error) {
	current, err := svc.Settings(ctx)
	if err != nil {
		return models.UserSettings{}, err
	}
	next := !current.ShowProgressIndicator
	return svc.Update(ctx, UpdateSettingsOptions{ShowProgressIndicator: &next})
}

// ToggleTranslationSlider flips the slider visibility.
func (svc *Service) ToggleTranslationSlider(ctx context.Context) (models.UserSettings, error) {
	current, err := svc.Settings(ctx)
	if err != nil {
		return models.UserSettings{}, err
	}
	next := !current.ShowTranslationSlider
	return svc.Update(ctx, UpdateSettingsOptions{ShowTranslationSlider: &next})
}

// ToggleDarkMode flips dark mode.
func (svc *Service) ToggleDarkMode(ctx context.Context) (models.UserSettings, error) {
	current, err := svc.Settings(ctx)
	if err != nil {
		return models.UserSettings{}, err
	}
	next := !current.DarkMode
	return svc.Update(ctx, UpdateSettingsOptions{DarkMode: &next})
}

// Reset restores the defaults, persists them, and notifies subscribers.
func (svc *Service) Reset(ctx context.Context) (models.UserSettings, error) {
	return svc.save(ctx, models.DefaultUserSettings())
}

// Subscribe registers a listener called with a snapshot after every settings
// change. The returned function unsubscribes it.
func (svc *Service) Subscribe(fn func(models.UserSettings)) func() {
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

func (svc *Service) save(ctx context.Context, next models.UserSettings) (models.UserSettings, error) {
	if err := svc.kv.SetJSON(ctx, settingsKey, next); err != nil {
		return models.UserSettings{}, err
	}

	svc.mu.Lock()
	svc.current = &next
	listeners := make([]func(models.UserSettings), 0, len(svc.listeners))
	for _, fn := range svc.listeners {
		listeners = append(listeners, fn)
	}
	svc.mu.Unlock()

	for _, fn := range listeners {
		fn(next)
	}

	return next, nil
}
