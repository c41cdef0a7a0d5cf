package progress

// SetProgressPayload is the request body for recording a progress point.
// Force bypasses the furthest-page monotonicity check (used by the explicit
// set-progress-here flow).
type SetProgressPayload struct {
	CurrentPage int  `json:"current_page" validate:"gte=0"`
	TotalPages  int  `json:"total_pages" validate:"gte=1"`
	Force       bool `json:"force"`
}

// CompleteChapterPayload is the request body for marking a chapter complete.
type CompleteChapterPayload struct {
	TotalPages int `json:"total_pages" validate:"gte=1"`
}

// BookProgressQuery lists the chapter ids whose progress should be rolled up.
type BookProgressQuery struct {
	ChapterIDs []string `query:"chapter_ids"`
}
