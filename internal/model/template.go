// internal/model/template.go
package model

import "time"

type MessageTemplate struct {
	ID        int       `db:"id" json:"id"`
	Key       string    `db:"key" json:"key"`
	Subject   string    `db:"subject" json:"subject"`
	Body      string    `db:"body" json:"body"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Signature struct {
	ID      int    `db:"id" json:"id"`
	Content string `db:"content" json:"content"`
	Active  bool   `db:"active" json:"active"`
}

// PDF template sources.
const (
	PDFSourceStatic  = "static"
	PDFSourceDynamic = "dynamic"
)

// Dynamic document kinds.
const (
	KindFacture     = "facture"
	KindAttestation = "attestation"
	KindModalites   = "modalites_paiement"
)

type PDFTemplate struct {
	ID       int    `db:"id" json:"id"`
	Title    string `db:"title" json:"title"`
	Source   string `db:"source" json:"source"` // static | dynamic
	Kind     string `db:"kind" json:"kind"`     // facture, attestation, modalites_paiement
	FilePath string `db:"file_path" json:"file_path,omitempty"`
}

// TemplatePDFLink orders PDF templates under a message template.
type TemplatePDFLink struct {
	ID            int `db:"id" json:"id"`
	TemplateID    int `db:"template_id" json:"template_id"`
	PDFTemplateID int `db:"pdf_template_id" json:"pdf_template_id"`
	SortOrder     int `db:"sort_order" json:"sort_order"`
}
