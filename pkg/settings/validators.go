package settings

// UpdateSettingsPayload is the request body for updating reader settings.
// All fields are optional; absent fields are left unchanged.
type UpdateSettingsPayload struct {
	ShowProgressIndicator *bool   `json:"show_progress_indicator"`
	ShowTranslationSlider *bool   `json:"show_translation_slider"`
	DarkMode              *bool   `json:"dark_mode"`
	ShowTranslation       *bool   `json:"show_translation"`
	SentencesPerPage      *int    `json:"sentences_per_page" validate:"omitempty,gte=1,lte=50"`
	NativeLanguage        *string `json:"native_language" validate:"omitempty,langcode"`
}
