// internal/model/history_entry.go
package model

import "time"

// History statuses.
const (
	StatusSent  = "sent"
	StatusError = "error"
)

// AttachmentMeta is the lightweight record stored with a history entry,
// distinct from the full GeneratedDocument row.
type AttachmentMeta struct {
	Filename string `json:"filename"`
	Type     string `json:"type"`
}

type HistoryEntry struct {
	ID           int        `db:"id" json:"id"`
	ClientID     int        `db:"client_id" json:"client_id"`
	TemplateKey  string     `db:"template_key" json:"template_key"`
	Recipient    string     `db:"recipient" json:"recipient"`
	Subject      string     `db:"subject" json:"subject"`
	Body         string     `db:"body" json:"body"`
	Attachments  string     `db:"attachments" json:"attachments"` // serialized []AttachmentMeta
	Status       string     `db:"status" json:"status"`           // sent, error
	ErrorMessage string     `db:"error_message" json:"error_message,omitempty"`
	RetryCount   int        `db:"retry_count" json:"retry_count"`
	SentAt       time.Time  `db:"sent_at" json:"sent_at"`
	LastRetryAt  *time.Time `db:"last_retry_at" json:"last_retry_at,omitempty"`
}
