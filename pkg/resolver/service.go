package resolver

import (
	"context"
	"fmt"
	"regexp"

	"github.com/blendbooks/blend/pkg/catalog"
	"github.com/blendbooks/blend/pkg/errcodes"
	"github.com/blendbooks/blend/pkg/models"
	"github.com/blendbooks/blend/pkg/settings"
	"github.com/robinjoseph08/golib/logger"
	"golang.org/x/sync/errgroup"
)

// compositeIDPattern matches chapter ids of the form <prefix>-<ll>-<number>,
// e.g. sherlock-es-3. The two-letter code is the chapter's learning language.
var compositeIDPattern = regexp.MustCompile(`^(.+)-([a-z]{2})-(\d+)$`)

// Service resolves a document id to a readable Book. Resolution tries, in
// order: a top-level catalog book, a composite chapter id synthesized from two
// language editions, then a legacy flat chapter list. Fetch failures during
// the candidate search are logged and skipped so one broken book can't hide
// the rest of the catalog.
type Service struct {
	client   *catalog.Client
	cache    *catalog.Cache
	settings *settings.Service
}

func NewService(client *catalog.Client, cache *catalog.Cache, settingsService *settings.Service) *Service {
	return &Service{
		client:   client,
		cache:    cache,
		settings: settingsService,
	}
}

// ResolveDocument loads the book for the given document id.
func (svc *Service) ResolveDocument(ctx context.Context, id string) (*models.Book, error) {
	book, _, err := svc.Resolve(ctx, id)
	return book, err
}

// Resolve loads the book for the given document id together with its chapter
// context. Resolution and context come out of one pass over the catalog, so
// the chapter lists the search already fetched aren't fetched twice.
func (svc *Service) Resolve(ctx context.Context, id string) (*models.Book, *models.ChapterContext, error) {
	books, err := svc.cache.Books(ctx)
	if err != nil {
		return nil, nil, errcodes.FetchFailed("catalog")
	}

	for i := range books {
		meta := &books[i]
		if meta.ID == id && meta.Path != "" {
			book, err := svc.client.Book(ctx, meta.Path)
			if err != nil {
				return nil, nil, errcodes.FetchFailed("book")
			}
			return book, &models.ChapterContext{}, nil
		}
	}

	if m := compositeIDPattern.FindStringSubmatch(id); m != nil {
		if match := svc.findComposite(ctx, books, id, m[2]); match != nil {
			book, err := svc.synthesizeChapter(ctx, match.meta, match.translation, match.chapters[match.idx], match.idx, m[1], m[2], m[3])
			if err != nil {
				return nil, nil, err
			}
			return book, chapterContextAt(match.chapters, match.idx, match.meta.ID, m[2]), nil
		}
	}

	if match := svc.findFlatChapter(ctx, books, id); match != nil {
		book, err := svc.client.Book(ctx, match.chapters[match.idx].Path)
		if err != nil {
			return nil, nil, errcodes.FetchFailed("chapter")
		}
		return book, chapterContextAt(match.chapters, match.idx, match.meta.ID, ""), nil
	}

	return nil, nil, errcodes.NotFound("Document")
}

// ChapterContext reports whether the given document id is a chapter within a
// book, and if so which chapter comes next. The search mirrors Resolve:
// composite two-language chapters first, then legacy flat-chapter books.
func (svc *Service) ChapterContext(ctx context.Context, id string) (*models.ChapterContext, error) {
	books, err := svc.cache.Books(ctx)
	if err != nil {
		return nil, errcodes.FetchFailed("catalog")
	}

	// A top-level book whose id happens to match a chapter shape is still a
	// book, not a chapter.
	for i := range books {
		if books[i].ID == id && books[i].Path != "" {
			return &models.ChapterContext{}, nil
		}
	}

	if m := compositeIDPattern.FindStringSubmatch(id); m != nil {
		if match := svc.findComposite(ctx, books, id, m[2]); match != nil {
			return chapterContextAt(match.chapters, match.idx, match.meta.ID, m[2]), nil
		}
	}

	if match := svc.findFlatChapter(ctx, books, id); match != nil {
		return chapterContextAt(match.chapters, match.idx, match.meta.ID, ""), nil
	}

	return &models.ChapterContext{}, nil
}

// chapterMatch locates one chapter inside a parent book's chapter list. The
// translation is set only for composite matches.
type chapterMatch struct {
	meta        *models.BookMetadata
	translation *models.LanguageTranslation
	chapters    []models.ChapterMetadata
	idx         int
}

// findComposite searches multi-language books for a chapter with the given id
// in their langCode edition.
func (svc *Service) findComposite(ctx context.Context, books []models.BookMetadata, id, langCode string) *chapterMatch {
	log := logger.FromContext(ctx)

	for i := range books {
		meta := &books[i]
		translation := meta.Translation(langCode)
		if translation == nil || translation.ChaptersPath == "" {
			continue
		}

		chapters, err := svc.client.ChapterList(ctx, translation.ChaptersPath)
		if err != nil {
			log.Err(err).Warn("chapter list fetch failed", logger.Data{"book_id": meta.ID})
			continue
		}

		if idx := chapterIndex(chapters, id); idx != -1 {
			return &chapterMatch{meta: meta, translation: translation, chapters: chapters, idx: idx}
		}
	}

	return nil
}

// findFlatChapter searches legacy books whose chapters are full ready-made
// books.
func (svc *Service) findFlatChapter(ctx context.Context, books []models.BookMetadata, id string) *chapterMatch {
	log := logger.FromContext(ctx)

	for i := range books {
		meta := &books[i]
		if !meta.HasChapters || meta.ChaptersPath == "" {
			continue
		}

		chapters, err := svc.client.ChapterList(ctx, meta.ChaptersPath)
		if err != nil {
			log.Err(err).Warn("chapter list fetch failed", logger.Data{"book_id": meta.ID})
			continue
		}

		if idx := chapterIndex(chapters, id); idx != -1 {
			return &chapterMatch{meta: meta, chapters: chapters, idx: idx}
		}
	}

	return nil
}

func chapterContextAt(chapters []models.ChapterMetadata, idx int, parentID, language string) *models.ChapterContext {
	chapterCtx := &models.ChapterContext{
		IsChapterContext: true,
		ParentBookID:     parentID,
		ParentLanguage:   language,
	}
	if idx+1 < len(chapters) {
		chapterCtx.NextChapterID = chapters[idx+1].ID
	}
	return chapterCtx
}

// synthesizeChapter loads the target and native editions of one chapter and
// pairs them sentence by sentence into a readable Book.
func (svc *Service) synthesizeChapter(ctx context.Context, meta *models.BookMetadata, target *models.LanguageTranslation, targetChapter models.ChapterMetadata, chapterIdx int, prefix, langCode, number string) (*models.Book, error) {
	userSettings, err := svc.settings.Settings(ctx)
	if err != nil {
		return nil, err
	}

	nativeLang := userSettings.NativeLanguage
	native := meta.Translation(nativeLang)
	if native == nil || native.ChaptersPath == "" {
		return nil, errcodes.TranslationMissing(nativeLang)
	}

	nativeChapters, err := svc.client.ChapterList(ctx, native.ChaptersPath)
	if err != nil {
		return nil, errcodes.FetchFailed("chapter list")
	}

	nativeChapter := matchNativeChapter(nativeChapters, prefix, nativeLang, number, chapterIdx)
	if nativeChapter == nil {
		return nil, errcodes.TranslationMissing(nativeLang)
	}

	var targetContent, nativeContent *models.ChapterContent

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		targetContent, err = svc.client.ChapterContent(gctx, targetChapter.Path)
		return err
	})
	g.Go(func() error {
		var err error
		nativeContent, err = svc.client.ChapterContent(gctx, nativeChapter.Path)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, errcodes.FetchFailed("chapter content")
	}

	return &models.Book{
		ID:             targetChapter.ID,
		Title:          fmt.Sprintf("%s - Chapter %s", target.Title, number),
		TargetLanguage: langCode,
		NativeLanguage: nativeLang,
		Pages:          buildPages(targetContent.Sentences, nativeContent.Sentences, userSettings.SentencesPerPage),
	}, nil
}

func chapterIndex(chapters []models.ChapterMetadata, id string) int {
	for i := range chapters {
		if chapters[i].ID == id {
			return i
		}
	}
	return -1
}

// matchNativeChapter finds the native edition of a chapter, preferring an
// exact id match and falling back to the same position in the list.
func matchNativeChapter(chapters []models.ChapterMetadata, prefix, nativeLang, number string, fallbackIdx int) *models.ChapterMetadata {
	want := fmt.Sprintf("%s-%s-%s", prefix, nativeLang, number)
	for i := range chapters {
		if chapters[i].ID == want {
			return &chapters[i]
		}
	}
	if fallbackIdx >= 0 && fallbackIdx < len(chapters) {
		return &chapters[fallbackIdx]
	}
	return nil
}

// buildPages pairs the two editions positionally, padding the shorter one
// with empty strings, and groups the result into fixed-size pages.
func buildPages(target, native []models.ChapterSentence, sentencesPerPage int) []models.Page {
	if sentencesPerPage <= 0 {
		sentencesPerPage = models.DefaultSentencesPerPage
	}

	count := len(target)
	if len(native) > count {
		count = len(native)
	}

	sentences := make([]models.Sentence, count)
	for i := 0; i < count; i++ {
		if i < len(target) {
			sentences[i].Target = target[i].Sentence
		}
		if i < len(native) {
			sentences[i].Native = native[i].Sentence
		}
	}

	pages := []models.Page{}
	for start := 0; start < len(sentences); start += sentencesPerPage {
		end := start + sentencesPerPage
		if end > len(sentences) {
			end = len(sentences)
		}
		pages = append(pages, models.Page{
			PageNumber: len(pages) + 1,
			Sentences:  sentences[start:end],
		})
	}
	return pages
}
