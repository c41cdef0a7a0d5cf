package library

// ChaptersQuery selects which language edition's chapter list to return.
type ChaptersQuery struct {
	Language string `query:"language" validate:"omitempty,langcode"`
}
