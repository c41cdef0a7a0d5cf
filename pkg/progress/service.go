package progress

import (
	"context"
	"math"
	"time"

	"github.com/blendbooks/blend/pkg/keyval"
	"github.com/blendbooks/blend/pkg/models"
	"github.com/uptrace/bun"
)

const progressKeyPrefix = "book-progress-"

// Service tracks per-document reading progress and aggregates chapter
// progress into book-level completion.
type Service struct {
	kv *keyval.Service
}

func NewService(db *bun.DB) *Service {
	return &Service{kv: keyval.NewService(db)}
}

// Retrieve returns the stored progress for a document, or nil when none has
// been recorded. Corrupt stored progress is treated as absent.
func (svc *Service) Retrieve(ctx context.Context, documentID string) (*models.ReadingProgress, error) {
	stored := &models.ReadingProgress{}
	found, err := svc.kv.GetJSON(ctx, progressKeyPrefix+documentID, stored)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return stored, nil
}

// SetProgressPoint records currentPage as the furthest page reached. The
// tracker enforces monotonicity: an update that would move the furthest page
// backwards is ignored. Use ForceProgressPoint for the explicit
// reset-progress flow.
func (svc *Service) SetProgressPoint(ctx context.Context, documentID string, currentPage, totalPages int) error {
	existing, err := svc.Retrieve(ctx, documentID)
	if err != nil {
		return err
	}
	if existing != nil && currentPage <= existing.CurrentPage {
		return nil
	}

	return svc.ForceProgressPoint(ctx, documentID, currentPage, totalPages)
}

// ForceProgressPoint unconditionally overwrites stored progress, allowing the
// reader to wind progress backwards.
func (svc *Service) ForceProgressPoint(ctx context.Context, documentID string, currentPage, totalPages int) error {
	return svc.kv.SetJSON(ctx, progressKeyPrefix+documentID, models.ReadingProgress{
		CurrentPage: currentPage,
		TotalPages:  totalPages,
		Percentage:  PagePercentage(currentPage, totalPages),
		LastRead:    time.Now(),
	})
}

// CompleteChapter marks a document as fully read.
func (svc *Service) CompleteChapter(ctx context.Context, documentID string, totalPages int) error {
	return svc.ForceProgressPoint(ctx, documentID, totalPages-1, totalPages)
}

// FurthestPage returns the furthest page recorded for a document, or 0.
func (svc *Service) FurthestPage(ctx context.Context, documentID string) (int, error) {
	stored, err := svc.Retrieve(ctx, documentID)
	if err != nil || stored == nil {
		return 0, err
	}
	return stored.CurrentPage, nil
}

// Percentage returns the stored completion percentage for a document, or 0.
func (svc *Service) Percentage(ctx context.Context, documentID string) (int, error) {
	stored, err := svc.Retrieve(ctx, documentID)
	if err != nil || stored == nil {
		return 0, err
	}
	return stored.Percentage, nil
}

// IsBookComplete reports whether a document's stored progress is at 100%.
func (svc *Service) IsBookComplete(ctx context.Context, documentID string) (bool, error) {
	pct, err := svc.Percentage(ctx, documentID)
	return pct == 100, err
}

// BookProgress aggregates stored chapter progress for a book. The book is
// complete iff every chapter has stored progress at 100% and the chapter list
// is non-empty.
func (svc *Service) BookProgress(ctx context.Context, chapterIDs []string) (*models.BookProgress, error) {
	chapters := map[string]models.ReadingProgress{}
	completed := 0

	for _, chapterID := range chapterIDs {
		stored, err := svc.Retrieve(ctx, chapterID)
		if err != nil {
			return nil, err
		}
		if stored == nil {
			continue
		}
		chapters[chapterID] = *stored
		if stored.Percentage == 100 {
			completed++
		}
	}

	return &models.BookProgress{
		Chapters:   chapters,
		IsComplete: completed == len(chapterIDs) && len(chapterIDs) > 0,
	}, nil
}

// PagePercentage converts a 0-based page position into a completion
// percentage, rounded to the nearest integer and clamped to [0,100].
func PagePercentage(currentPage, totalPages int) int {
	if totalPages <= 0 {
		return 0
	}
	pct := int(math.Round(float64(currentPage+1) / float64(totalPages) * 100))
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return pct
}
