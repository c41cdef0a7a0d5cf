package models

// LanguageTranslation is one available language edition of a multi-language
// book.
type LanguageTranslation struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	Title        string `json:"title"`
	ChaptersPath string `json:"chaptersPath,omitempty"`
}

// BookMetadata is a catalog row, distinct from the full Book content.
type BookMetadata struct {
	ID             string                `json:"id"`
	Title          string                `json:"title"`
	TargetLanguage string                `json:"targetLanguage"`
	NativeLanguage string                `json:"nativeLanguage"`
	Path           string                `json:"path"`
	CoverImage     string                `json:"coverImage"`
	Description    string                `json:"description"`
	HasChapters    bool                  `json:"hasChapters,omitempty"`
	ChaptersPath   string                `json:"chaptersPath,omitempty"`
	Translations   []LanguageTranslation `json:"translations,omitempty"`
	BaseTitle      string                `json:"baseTitle,omitempty"`
}

// Translation returns the language edition with the given code, or nil.
func (m *BookMetadata) Translation(code string) *LanguageTranslation {
	for i := range m.Translations {
		if m.Translations[i].Code == code {
			return &m.Translations[i]
		}
	}
	return nil
}

// ChapterMetadata is a catalog entry for one chapter within a book's chapter
// list.
type ChapterMetadata struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Path  string `json:"path"`
}

// ChapterSentence is one sentence of raw per-language chapter content.
type ChapterSentence struct {
	Index    int    `json:"index"`
	Sentence string `json:"sentence"`
}

// ChapterContent is the raw sentence-level content of one language edition of
// a chapter.
type ChapterContent struct {
	Sentences []ChapterSentence `json:"sentences"`
}
