// internal/model/generated_document.go
package model

import "time"

// GeneratedDocument is the archival record of one produced PDF.
// Rows are append-only: created by the assembler, never updated.
type GeneratedDocument struct {
	ID          int       `db:"id" json:"id"`
	ClientID    int       `db:"client_id" json:"client_id"`
	Kind        string    `db:"kind" json:"kind"`
	Title       string    `db:"title" json:"title"`
	StoragePath string    `db:"storage_path" json:"storage_path"`
	PublicURL   string    `db:"public_url" json:"public_url"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
