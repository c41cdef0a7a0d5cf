package preferences

import (
	"context"
	"strconv"

	"github.com/blendbooks/blend/pkg/keyval"
	"github.com/blendbooks/blend/pkg/reveal"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/uptrace/bun"
)

const (
	sliderKeyPrefix   = "slider-"
	maintainKeyPrefix = "maintain-translation-"
)

// Service persists the per-document reveal value and maintain-level flag.
type Service struct {
	kv  *keyval.Service
	log logger.Logger
}

func NewService(db *bun.DB) *Service {
	return &Service{kv: keyval.NewService(db), log: logger.New()}
}

// SliderValue returns the stored reveal value for a document, or the default
// (fully revealed) when none has been saved. Unparseable stored values fall
// back to the default.
func (svc *Service) SliderValue(ctx context.Context, documentID string) (int, error) {
	stored, err := svc.kv.Get(ctx, sliderKeyPrefix+documentID)
	if err != nil {
		return 0, err
	}
	if stored == nil {
		return reveal.DefaultValue, nil
	}

	value, err := strconv.Atoi(*stored)
	if err != nil {
		svc.log.Err(err).Warn("discarding malformed slider value", logger.Data{"document_id": documentID})
		return reveal.DefaultValue, nil
	}

	return reveal.Clamp(value), nil
}

// SaveSliderValue stores the reveal value for a document, clamped to [0,100].
func (svc *Service) SaveSliderValue(ctx context.Context, documentID string, value int) error {
	return errors.WithStack(svc.kv.Set(ctx, sliderKeyPrefix+documentID, strconv.Itoa(reveal.Clamp(value))))
}

// MaintainLevel returns whether the reveal value should be kept across page
// turns for a document. Defaults to false.
func (svc *Service) MaintainLevel(ctx context.Context, documentID string) (bool, error) {
	stored, err := svc.kv.Get(ctx, maintainKeyPrefix+documentID)
	if err != nil {
		return false, err
	}
	return stored != nil && *stored == "true", nil
}

// SaveMaintainLevel stores the maintain-level flag for a document.
func (svc *Service) SaveMaintainLevel(ctx context.Context, documentID string, value bool) error {
	return errors.WithStack(svc.kv.Set(ctx, maintainKeyPrefix+documentID, strconv.FormatBool(value)))
}

// ToggleMaintainLevel flips the maintain-level flag and returns the new value.
func (svc *Service) ToggleMaintainLevel(ctx context.Context, documentID string) (bool, error) {
	current, err := svc.MaintainLevel(ctx, documentID)
	if err != nil {
		return false, err
	}

	next := !current
	if err := svc.SaveMaintainLevel(ctx, documentID, next); err != nil {
		return false, err
	}

	return next, nil
}
