package models

// ChapterContext describes whether a loaded document is a chapter inside a
// larger book, enabling "next chapter" navigation.
type ChapterContext struct {
	IsChapterContext bool   `json:"is_chapter_context"`
	ParentBookID     string `json:"parent_book_id,omitempty"`
	ParentLanguage   string `json:"parent_language,omitempty"`
	NextChapterID    string `json:"next_chapter_id,omitempty"`
}
