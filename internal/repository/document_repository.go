package repository

import (
	"database/sql"
	"time"

	"github.com/previsoft/duerp-backend/internal/model"
)

// DocumentRepositoryInterface defines generated-document persistence
type DocumentRepositoryInterface interface {
	Create(doc *model.GeneratedDocument) error
	ListRecentByClient(clientID, limit int) ([]model.GeneratedDocument, error)
}

type DocumentRepository struct {
	DB *sql.DB
}

// Create inserts a new generated document row. Rows are append-only.
func (r *DocumentRepository) Create(doc *model.GeneratedDocument) error {
	doc.CreatedAt = time.Now()
	query := `
		INSERT INTO generated_documents (client_id, kind, title, storage_path, public_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.DB.QueryRow(
		query,
		doc.ClientID, doc.Kind, doc.Title, doc.StoragePath, doc.PublicURL, doc.CreatedAt,
	).Scan(&doc.ID)
}

// ListRecentByClient returns the most recently created documents for a
// client, newest first. Preview mode uses this limit-based lookup to
// surface public URLs.
func (r *DocumentRepository) ListRecentByClient(clientID, limit int) ([]model.GeneratedDocument, error) {
	query := `
		SELECT id, client_id, kind, title, storage_path, public_url, created_at
		FROM generated_documents
		WHERE client_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`
	rows, err := r.DB.Query(query, clientID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := []model.GeneratedDocument{}
	for rows.Next() {
		var d model.GeneratedDocument
		if err := rows.Scan(&d.ID, &d.ClientID, &d.Kind, &d.Title, &d.StoragePath, &d.PublicURL, &d.CreatedAt); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

var _ DocumentRepositoryInterface = (*DocumentRepository)(nil)
