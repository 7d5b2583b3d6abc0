package dto

// Document mirrors the backend's document listing entries. The upper-case
// JSON keys are the backend's wire format, not a style choice here.
type Document struct {
	Id        string `json:"DOC_ID"`
	Title     string `json:"TITLE"`
	ImageLink string `json:"IMAGELINK"`
	PdfLink   string `json:"PDFLINK"`
}

type SummaryRequest struct {
	DocumentId string `json:"document_id"`
}

type SummaryResponse struct {
	Summary string `json:"summary"`
}

type InitializeEmbeddingsRequest struct {
	DocumentId string `json:"document_id"`
}

// SelectDocumentForm is bound from the library grid's select button.
type SelectDocumentForm struct {
	DocumentId string `form:"doc_id" validate:"required"`
}
