package events

import "time"

// TopicDocumentSelected carries DocumentSelected payloads from the
// library to the embeddings consumer on the in-process bus.
const TopicDocumentSelected = "DOCUMENT_SELECTED"

// DocumentSelected is published when a session picks a document. The
// consumer initializes embeddings for it and flips the session's
// readiness flag, but only while the selection still matches.
type DocumentSelected struct {
	SessionId  string    `json:"session_id"`
	DocumentId string    `json:"document_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
