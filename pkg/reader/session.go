package reader

import (
	"context"
	"sync"

	"github.com/blendbooks/blend/pkg/errcodes"
	"github.com/blendbooks/blend/pkg/models"
	"github.com/blendbooks/blend/pkg/preferences"
	"github.com/blendbooks/blend/pkg/progress"
	"github.com/blendbooks/blend/pkg/resolver"
	"github.com/blendbooks/blend/pkg/reveal"
	"github.com/blendbooks/blend/pkg/settings"
)

// Scroller receives the scroll-to-top side effect after a page turn. The
// default implementation does nothing; rendering clients register their own.
type Scroller interface {
	ScrollToTop()
}

type noopScroller struct{}

func (noopScroller) ScrollToTop() {}

// Session is one open reading view of a document. It holds the current page,
// the reveal value, and the maintain-level flag, and pushes every change
// through the persistence services so a later session resumes where this one
// left off.
type Session struct {
	id string

	resolverService   *resolver.Service
	preferenceService *preferences.Service
	progressService   *progress.Service
	settingsService   *settings.Service
	scroller          Scroller

	mu            sync.Mutex
	generation    int
	documentID    string
	book          *models.Book
	chapterCtx    *models.ChapterContext
	pageIndex     int
	revealValue   int
	maintainLevel bool
	furthestPage  int
}

// ID returns the session's identifier.
func (s *Session) ID() string {
	return s.id
}

// Load resolves a document and replaces the session's state with it. Each
// load bumps a generation counter; a load that finishes after a newer one has
// started is discarded so a slow fetch can't clobber the document the reader
// actually navigated to.
func (s *Session) Load(ctx context.Context, documentID string) error {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	book, chapterCtx, err := s.resolverService.Resolve(ctx, documentID)
	if err != nil {
		return err
	}

	value, err := s.preferenceService.SliderValue(ctx, documentID)
	if err != nil {
		return err
	}

	maintain, err := s.preferenceService.MaintainLevel(ctx, documentID)
	if err != nil {
		return err
	}

	furthest, err := s.progressService.FurthestPage(ctx, documentID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation != gen {
		return nil
	}

	s.documentID = documentID
	s.book = book
	s.chapterCtx = chapterCtx
	s.revealValue = value
	s.maintainLevel = maintain
	s.furthestPage = furthest

	// Resume at the furthest page reached, clamped to the book.
	s.pageIndex = furthest
	if s.pageIndex >= book.TotalPages() {
		s.pageIndex = book.TotalPages() - 1
	}
	if s.pageIndex < 0 {
		s.pageIndex = 0
	}

	return nil
}

// NextPage advances one page. On the last page it does nothing. Unless the
// maintain-level flag is set, the reveal value resets on the turn; progress
// only ever moves forward.
func (s *Session) NextPage(ctx context.Context) error {
	s.mu.Lock()
	if s.book == nil || s.pageIndex >= s.book.TotalPages()-1 {
		s.mu.Unlock()
		return nil
	}

	s.pageIndex++
	if !s.maintainLevel {
		s.revealValue = reveal.PageTurnValue
	}
	if s.pageIndex > s.furthestPage {
		s.furthestPage = s.pageIndex
	}

	documentID := s.documentID
	pageIndex := s.pageIndex
	totalPages := s.book.TotalPages()
	maintain := s.maintainLevel
	s.mu.Unlock()

	if !maintain {
		if err := s.preferenceService.SaveSliderValue(ctx, documentID, reveal.PageTurnValue); err != nil {
			return err
		}
	}

	if err := s.progressService.SetProgressPoint(ctx, documentID, pageIndex, totalPages); err != nil {
		return err
	}

	s.scroller.ScrollToTop()
	return nil
}

// PreviousPage goes back one page. On the first page it does nothing. The
// reveal value follows the same reset-or-maintain policy as NextPage, but
// stored progress is untouched.
func (s *Session) PreviousPage(ctx context.Context) error {
	s.mu.Lock()
	if s.book == nil || s.pageIndex <= 0 {
		s.mu.Unlock()
		return nil
	}

	s.pageIndex--
	if !s.maintainLevel {
		s.revealValue = reveal.PageTurnValue
	}

	documentID := s.documentID
	maintain := s.maintainLevel
	s.mu.Unlock()

	if !maintain {
		if err := s.preferenceService.SaveSliderValue(ctx, documentID, reveal.PageTurnValue); err != nil {
			return err
		}
	}

	s.scroller.ScrollToTop()
	return nil
}

// SetRevealValue sets and persists the reveal value, clamped to [0,100].
func (s *Session) SetRevealValue(ctx context.Context, value int) (int, error) {
	value = reveal.Clamp(value)

	s.mu.Lock()
	s.revealValue = value
	documentID := s.documentID
	s.mu.Unlock()

	return value, s.preferenceService.SaveSliderValue(ctx, documentID, value)
}

// IncreaseReveal steps the reveal value up.
func (s *Session) IncreaseReveal(ctx context.Context) (int, error) {
	s.mu.Lock()
	next := reveal.Increase(s.revealValue)
	s.mu.Unlock()

	return s.SetRevealValue(ctx, next)
}

// DecreaseReveal steps the reveal value down.
func (s *Session) DecreaseReveal(ctx context.Context) (int, error) {
	s.mu.Lock()
	next := reveal.Decrease(s.revealValue)
	s.mu.Unlock()

	return s.SetRevealValue(ctx, next)
}

// ToggleMaintainLevel flips whether the reveal value survives page turns.
func (s *Session) ToggleMaintainLevel(ctx context.Context) (bool, error) {
	s.mu.Lock()
	documentID := s.documentID
	s.mu.Unlock()

	next, err := s.preferenceService.ToggleMaintainLevel(ctx, documentID)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	s.maintainLevel = next
	s.mu.Unlock()

	return next, nil
}

// ConfirmSetProgress pins stored progress to the current page, even when that
// moves it backwards. This is the explicit reset flow behind the progress
// indicator.
func (s *Session) ConfirmSetProgress(ctx context.Context) error {
	s.mu.Lock()
	if s.book == nil {
		s.mu.Unlock()
		return nil
	}
	documentID := s.documentID
	pageIndex := s.pageIndex
	totalPages := s.book.TotalPages()
	s.furthestPage = pageIndex
	s.mu.Unlock()

	return s.progressService.ForceProgressPoint(ctx, documentID, pageIndex, totalPages)
}

// GoToNextChapter marks the current chapter complete and loads the next one.
func (s *Session) GoToNextChapter(ctx context.Context) error {
	s.mu.Lock()
	if s.book == nil || s.chapterCtx == nil || s.chapterCtx.NextChapterID == "" {
		s.mu.Unlock()
		return errcodes.NotFound("Next chapter")
	}
	documentID := s.documentID
	totalPages := s.book.TotalPages()
	nextID := s.chapterCtx.NextChapterID
	s.mu.Unlock()

	if err := s.progressService.CompleteChapter(ctx, documentID, totalPages); err != nil {
		return err
	}

	return s.Load(ctx, nextID)
}

// IsLastPage reports whether the session is on the final page.
func (s *Session) IsLastPage() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book != nil && s.pageIndex == s.book.TotalPages()-1
}

const (
	keyArrowLeft  = "ArrowLeft"
	keyArrowRight = "ArrowRight"
	keyArrowUp    = "ArrowUp"
	keyArrowDown  = "ArrowDown"
)

// HandleKey applies a keyboard shortcut: left/right turn pages, up/down step
// the reveal value.
func (s *Session) HandleKey(ctx context.Context, key string) error {
	switch key {
	case keyArrowRight:
		return s.NextPage(ctx)
	case keyArrowLeft:
		return s.PreviousPage(ctx)
	case keyArrowUp:
		_, err := s.IncreaseReveal(ctx)
		return err
	case keyArrowDown:
		_, err := s.DecreaseReveal(ctx)
		return err
	}
	return nil
}

// SentenceView is one sentence of the current page with its per-sentence
// reveal decision applied.
type SentenceView struct {
	Target     string `json:"target"`
	Native     string `json:"native"`
	ShowNative bool   `json:"show_native"`
}

// View is a snapshot of the session for rendering.
type View struct {
	ID             string                 `json:"id"`
	DocumentID     string                 `json:"document_id"`
	Title          string                 `json:"title"`
	TargetLanguage string                 `json:"target_language"`
	NativeLanguage string                 `json:"native_language"`
	PageIndex      int                    `json:"page_index"`
	TotalPages     int                    `json:"total_pages"`
	Percentage     int                    `json:"percentage"`
	RevealValue    int                    `json:"reveal_value"`
	MaintainLevel  bool                   `json:"maintain_level"`
	IsLastPage     bool                   `json:"is_last_page"`
	ChapterContext *models.ChapterContext `json:"chapter_context"`
	Sentences      []SentenceView         `json:"sentences"`
}

// View renders the current page. Whether a sentence shows its native text is
// decided by the reveal threshold, gated by the global show-translation
// setting.
func (s *Session) View(ctx context.Context) (*View, error) {
	userSettings, err := s.settingsService.Settings(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.book == nil {
		return nil, errcodes.NotFound("Document")
	}

	sentences := []SentenceView{}
	if page := s.book.PageAt(s.pageIndex); page != nil {
		sentences = make([]SentenceView, len(page.Sentences))
		for i, sentence := range page.Sentences {
			sentences[i] = SentenceView{
				Target:     sentence.Target,
				Native:     sentence.Native,
				ShowNative: userSettings.ShowTranslation && reveal.ShowNative(s.revealValue, len(page.Sentences), i),
			}
		}
	}

	return &View{
		ID:             s.id,
		DocumentID:     s.documentID,
		Title:          s.book.Title,
		TargetLanguage: s.book.TargetLanguage,
		NativeLanguage: s.book.NativeLanguage,
		PageIndex:      s.pageIndex,
		TotalPages:     s.book.TotalPages(),
		Percentage:     progress.PagePercentage(s.pageIndex, s.book.TotalPages()),
		RevealValue:    s.revealValue,
		MaintainLevel:  s.maintainLevel,
		IsLastPage:     s.pageIndex == s.book.TotalPages()-1,
		ChapterContext: s.chapterCtx,
		Sentences:      sentences,
	}, nil
}
