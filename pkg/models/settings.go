package models

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

const DefaultSentencesPerPage = 8

// UserSettings are the process-wide reader preferences. They are persisted
// as a single JSON blob under the book-reader-settings key.
type UserSettings struct {
	ShowProgressIndicator bool   `json:"showProgressIndicator"`
	ShowTranslationSlider bool   `json:"showTranslationSlider"`
	DarkMode              bool   `json:"darkMode"`
	ShowTranslation       bool   `json:"showTranslation"`
	SentencesPerPage      int    `json:"sentencesPerPage"`
	NativeLanguage        string `json:"nativeLanguage"`
}

// DefaultUserSettings returns the settings used before the reader has saved
// any.
func DefaultUserSettings() UserSettings {
	return UserSettings{
		ShowProgressIndicator: true,
		ShowTranslationSlider: true,
		DarkMode:              false,
		ShowTranslation:       true,
		SentencesPerPage:      DefaultSentencesPerPage,
		NativeLanguage:        "en",
	}
}
