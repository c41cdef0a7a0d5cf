package models

import "time"

// ReadingProgress records the furthest point a reader has reached in one
// document (book or chapter).
//
// Field names match the persisted JSON layout used by earlier versions of the
// reader so existing stored progress keeps round-tripping.
type ReadingProgress struct {
	CurrentPage int       `json:"currentPage"` // 0-based
	TotalPages  int       `json:"totalPages"`
	Percentage  int       `json:"percentage"` // 0-100
	LastRead    time.Time `json:"lastRead"`
}

// BookProgress aggregates chapter-level progress into a book-level view.
type BookProgress struct {
	Chapters   map[string]ReadingProgress `json:"chapters"`
	IsComplete bool                       `json:"is_complete"`
}
