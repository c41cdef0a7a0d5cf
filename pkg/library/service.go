package library

import (
	"context"

	"github.com/blendbooks/blend/pkg/catalog"
	"github.com/blendbooks/blend/pkg/errcodes"
	"github.com/blendbooks/blend/pkg/models"
	"github.com/blendbooks/blend/pkg/progress"
	"github.com/blendbooks/blend/pkg/settings"
	"github.com/uptrace/bun"
)

// Service builds the library views: the book listing, per-book chapter lists
// annotated with reading progress, and the language choices for
// multi-language books.
type Service struct {
	client          *catalog.Client
	cache           *catalog.Cache
	progressService *progress.Service
	settingsService *settings.Service
}

func NewService(db *bun.DB, client *catalog.Client, cache *catalog.Cache, settingsService *settings.Service) *Service {
	return &Service{
		client:          client,
		cache:           cache,
		progressService: progress.NewService(db),
		settingsService: settingsService,
	}
}

// BookListItem is one row of the library listing.
type BookListItem struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Description    string   `json:"description,omitempty"`
	CoverURL       string   `json:"cover_url,omitempty"`
	TargetLanguage string   `json:"target_language,omitempty"`
	NativeLanguage string   `json:"native_language,omitempty"`
	HasChapters    bool     `json:"has_chapters"`
	Languages      []string `json:"languages,omitempty"`
	Percentage     int      `json:"percentage"`
	IsComplete     bool     `json:"is_complete"`
}

// Books returns the library listing. Progress is attached for books that are
// read as a single document; chapter-based books report progress through
// Progress, which needs a language.
func (svc *Service) Books(ctx context.Context) ([]BookListItem, error) {
	books, err := svc.cache.Books(ctx)
	if err != nil {
		return nil, errcodes.FetchFailed("catalog")
	}

	items := make([]BookListItem, 0, len(books))
	for i := range books {
		meta := &books[i]

		item := BookListItem{
			ID:             meta.ID,
			Title:          meta.Title,
			Description:    meta.Description,
			TargetLanguage: meta.TargetLanguage,
			NativeLanguage: meta.NativeLanguage,
			HasChapters:    meta.HasChapters || len(meta.Translations) > 0,
		}
		if meta.CoverImage != "" {
			item.CoverURL = "/covers/" + meta.CoverImage
		}
		for _, translation := range meta.Translations {
			item.Languages = append(item.Languages, translation.Code)
		}

		if meta.Path != "" {
			pct, err := svc.progressService.Percentage(ctx, meta.ID)
			if err != nil {
				return nil, err
			}
			item.Percentage = pct
			item.IsComplete = pct == 100
		}

		items = append(items, item)
	}

	return items, nil
}

// ChapterListItem is one chapter row with its reading progress.
type ChapterListItem struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Percentage int    `json:"percentage"`
	IsComplete bool   `json:"is_complete"`
}

// Chapters returns the chapter list for a book in the given language,
// annotated with per-chapter progress. An empty language falls back to the
// book's own chapter list, or its first translation.
func (svc *Service) Chapters(ctx context.Context, bookID, language string) ([]ChapterListItem, error) {
	meta, err := svc.findBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	chapters, err := svc.chapterList(ctx, meta, language)
	if err != nil {
		return nil, err
	}

	items := make([]ChapterListItem, 0, len(chapters))
	for _, chapter := range chapters {
		pct, err := svc.progressService.Percentage(ctx, chapter.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, ChapterListItem{
			ID:         chapter.ID,
			Title:      chapter.Title,
			Percentage: pct,
			IsComplete: pct == 100,
		})
	}

	return items, nil
}

// LanguageOption is one selectable learning language for a book.
type LanguageOption struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Title string `json:"title"`
}

// LanguagesView lists the learning languages a book offers. The reader's
// native language is excluded from the options since reading a book in the
// language it is translated into defeats the purpose.
type LanguagesView struct {
	NativeLanguage     string           `json:"native_language"`
	NativeLanguageName string           `json:"native_language_name,omitempty"`
	Options            []LanguageOption `json:"options"`
}

// Languages returns the language choices for a multi-language book.
func (svc *Service) Languages(ctx context.Context, bookID string) (*LanguagesView, error) {
	meta, err := svc.findBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	userSettings, err := svc.settingsService.Settings(ctx)
	if err != nil {
		return nil, err
	}

	view := &LanguagesView{
		NativeLanguage: userSettings.NativeLanguage,
		Options:        []LanguageOption{},
	}

	for _, translation := range meta.Translations {
		if translation.Code == userSettings.NativeLanguage {
			view.NativeLanguageName = translation.Name
			continue
		}
		view.Options = append(view.Options, LanguageOption{
			Code:  translation.Code,
			Name:  translation.Name,
			Title: translation.Title,
		})
	}

	return view, nil
}

// Progress rolls up per-chapter progress for a book in the given language.
func (svc *Service) Progress(ctx context.Context, bookID, language string) (*models.BookProgress, error) {
	meta, err := svc.findBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	chapters, err := svc.chapterList(ctx, meta, language)
	if err != nil {
		return nil, err
	}

	chapterIDs := make([]string, 0, len(chapters))
	for _, chapter := range chapters {
		chapterIDs = append(chapterIDs, chapter.ID)
	}

	return svc.progressService.BookProgress(ctx, chapterIDs)
}

func (svc *Service) findBook(ctx context.Context, bookID string) (*models.BookMetadata, error) {
	books, err := svc.cache.Books(ctx)
	if err != nil {
		return nil, errcodes.FetchFailed("catalog")
	}

	for i := range books {
		if books[i].ID == bookID {
			return &books[i], nil
		}
	}

	return nil, errcodes.NotFound("Book")
}

func (svc *Service) chapterList(ctx context.Context, meta *models.BookMetadata, language string) ([]models.ChapterMetadata, error) {
	path := ""
	switch {
	case language != "":
		translation := meta.Translation(language)
		if translation == nil || translation.ChaptersPath == "" {
			return nil, errcodes.TranslationMissing(language)
		}
		path = translation.ChaptersPath
	case meta.HasChapters && meta.ChaptersPath != "":
		path = meta.ChaptersPath
	case len(meta.Translations) > 0 && meta.Translations[0].ChaptersPath != "":
		path = meta.Translations[0].ChaptersPath
	default:
		return nil, errcodes.NotFound("Chapter list")
	}

	chapters, err := svc.client.ChapterList(ctx, path)
	if err != nil {
		return nil, errcodes.FetchFailed("chapter list")
	}
	return chapters, nil
}
