package repository

import (
	"database/sql"

	appErrors "github.com/previsoft/duerp-backend/internal/errors"
	"github.com/previsoft/duerp-backend/internal/model"
)

// TemplateRepositoryInterface defines template lookups used by the pipeline
type TemplateRepositoryInterface interface {
	GetByKey(key string) (*model.MessageTemplate, error)
	GetPDFTemplates(templateID int) ([]model.PDFTemplate, error)
	GetActiveSignature() (*model.Signature, error)
}

type TemplateRepository struct {
	DB *sql.DB
}

// GetByKey fetches an active message template by its stable key
func (r *TemplateRepository) GetByKey(key string) (*model.MessageTemplate, error) {
	query := `
		SELECT id, key, subject, body, active, created_at
		FROM message_templates
		WHERE key = $1 AND active = TRUE
	`
	var t model.MessageTemplate
	err := r.DB.QueryRow(query, key).Scan(&t.ID, &t.Key, &t.Subject, &t.Body, &t.Active, &t.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewTemplateNotFound(key)
		}
		return nil, err
	}
	return &t, nil
}

// GetPDFTemplates returns the PDF templates linked to a message template,
// in attachment order.
func (r *TemplateRepository) GetPDFTemplates(templateID int) ([]model.PDFTemplate, error) {
	query := `
		SELECT p.id, p.title, p.source, p.kind, COALESCE(p.file_path, '')
		FROM template_pdf_links l
		JOIN pdf_templates p ON p.id = l.pdf_template_id
		WHERE l.template_id = $1
		ORDER BY l.sort_order ASC, l.id ASC
	`
	rows, err := r.DB.Query(query, templateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := []model.PDFTemplate{}
	for rows.Next() {
		var p model.PDFTemplate
		if err := rows.Scan(&p.ID, &p.Title, &p.Source, &p.Kind, &p.FilePath); err != nil {
			return nil, err
		}
		templates = append(templates, p)
	}
	return templates, rows.Err()
}

// GetActiveSignature returns the active signature block, or nil when none
// is configured.
func (r *TemplateRepository) GetActiveSignature() (*model.Signature, error) {
	query := `SELECT id, content, active FROM signatures WHERE active = TRUE LIMIT 1`
	var s model.Signature
	err := r.DB.QueryRow(query).Scan(&s.ID, &s.Content, &s.Active)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

var _ TemplateRepositoryInterface = (*TemplateRepository)(nil)
