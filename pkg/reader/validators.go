package reader

type CreateSessionPayload struct {
	DocumentID string `json:"document_id" validate:"required"`
}

type LoadDocumentPayload struct {
	DocumentID string `json:"document_id" validate:"required"`
}

type SetRevealPayload struct {
	Value int `json:"value" validate:"gte=0,lte=100"`
}

type KeyPayload struct {
	Key string `json:"key" validate:"required,oneof=ArrowLeft ArrowRight ArrowUp ArrowDown"`
}
