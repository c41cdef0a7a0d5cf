package models

// Sentence is the same clause in the learning language and the reader's
// native language. Immutable once loaded.
type Sentence struct {
	Target string `json:"target"`
	Native string `json:"native"`
}

// Page is a fixed-size grouping of sentences. PageNumber is 1-based and page
// order defines reading order.
type Page struct {
	PageNumber int        `json:"pageNumber"`
	Sentences  []Sentence `json:"sentences"`
}

// Book is a readable document: either fetched whole from the catalog or
// synthesized from per-language chapter content by the resolver.
//
// Field names follow the pre-authored content assets, which use camelCase.
type Book struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	TargetLanguage string `json:"targetLanguage"`
	NativeLanguage string `json:"nativeLanguage"`
	Pages          []Page `json:"pages"`
}

// TotalPages returns the number of pages in the book.
func (b *Book) TotalPages() int {
	return len(b.Pages)
}

// PageAt returns the page at the given 0-based index, or nil when the index
// is out of range.
func (b *Book) PageAt(index int) *Page {
	if index < 0 || index >= len(b.Pages) {
		return nil
	}
	return &b.Pages[index]
}
