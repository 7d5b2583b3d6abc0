package dto

// ChatMessage is one entry of the per-session conversation history. The
// same shape is posted verbatim to the backend's /save_session_history.
type ChatMessage struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Satisfied *bool  `json:"satisfied,omitempty"`
	IsReport  bool   `json:"is_report,omitempty"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type QueryRequest struct {
	Query      string `json:"query"`
	DocumentId string `json:"document_id"`
}

type QueryResponse struct {
	Response string `json:"response"`
}

type ReportResponse struct {
	Report string `json:"report"`
}

type SaveHistoryRequest struct {
	DocumentId     string        `json:"document_id"`
	SessionHistory []ChatMessage `json:"session_history"`
}

type SaveNoteRequest struct {
	DocumentId   string `json:"document_id"`
	ResearchNote string `json:"research_note"`
}

type ResearchNotesResponse struct {
	ResearchNotes []string `json:"research_notes"`
}

// AskForm is bound from the Q&A submission form.
type AskForm struct {
	Question string `form:"question" validate:"required"`
	Report   bool   `form:"report"`
}

// SatisfactionForm is bound from the yes/no prompt under the newest answer.
type SatisfactionForm struct {
	Satisfied string `form:"satisfied" validate:"required,oneof=yes no"`
}
