package preferences

// UpdatePreferencesPayload is the request body for updating document
// preferences. Both fields are optional so either can be set independently.
type UpdatePreferencesPayload struct {
	RevealValue   *int  `json:"reveal_value" validate:"omitempty,gte=0,lte=100"`
	MaintainLevel *bool `json:"maintain_level"`
}

// PreferencesResponse is the response for document preferences.
type PreferencesResponse struct {
	DocumentID    string `json:"document_id"`
	RevealValue   int    `json:"reveal_value"`
	MaintainLevel bool   `json:"maintain_level"`
}
