package repository

import (
	"database/sql"
	"fmt"
	"time"

	appErrors "github.com/previsoft/duerp-backend/internal/errors"
	"github.com/previsoft/duerp-backend/internal/model"
)

// HistoryRepositoryInterface defines the send-audit ledger
type HistoryRepositoryInterface interface {
	Create(entry *model.HistoryEntry) error
	GetByID(id int) (*model.HistoryEntry, error)
	MarkRetry(id int) error
	List(offset, limit int, status string) ([]model.HistoryEntry, int, error)
}

type HistoryRepository struct {
	DB *sql.DB
}

// Create inserts a new send-attempt row
func (r *HistoryRepository) Create(entry *model.HistoryEntry) error {
	if entry.SentAt.IsZero() {
		entry.SentAt = time.Now()
	}
	query := `
		INSERT INTO history_entries
		(client_id, template_key, recipient, subject, body, attachments, status, error_message, retry_count, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	return r.DB.QueryRow(
		query,
		entry.ClientID, entry.TemplateKey, entry.Recipient, entry.Subject, entry.Body,
		entry.Attachments, entry.Status, entry.ErrorMessage, entry.RetryCount, entry.SentAt,
	).Scan(&entry.ID)
}

// GetByID fetches a history entry by its ID
func (r *HistoryRepository) GetByID(id int) (*model.HistoryEntry, error) {
	query := `
		SELECT id, client_id, template_key, recipient, subject, body, attachments,
			   status, error_message, retry_count, sent_at, last_retry_at
		FROM history_entries
		WHERE id = $1
	`
	var e model.HistoryEntry
	err := r.DB.QueryRow(query, id).Scan(
		&e.ID, &e.ClientID, &e.TemplateKey, &e.Recipient, &e.Subject, &e.Body,
		&e.Attachments, &e.Status, &e.ErrorMessage, &e.RetryCount, &e.SentAt, &e.LastRetryAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewHistoryNotFound(id)
		}
		return nil, err
	}
	return &e, nil
}

// MarkRetry bumps the retry counter and stamps the retry time on an
// existing entry. retry_count only ever increases.
func (r *HistoryRepository) MarkRetry(id int) error {
	query := `
		UPDATE history_entries
		SET retry_count = retry_count + 1, last_retry_at = NOW()
		WHERE id = $1
	`
	res, err := r.DB.Exec(query, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return appErrors.NewHistoryNotFound(id)
	}
	return nil
}

// List returns history entries with pagination and an optional status filter
func (r *HistoryRepository) List(offset, limit int, status string) ([]model.HistoryEntry, int, error) {
	entries := []model.HistoryEntry{}
	query := `
		SELECT id, client_id, template_key, recipient, subject, body, attachments,
			   status, error_message, retry_count, sent_at, last_retry_at
		FROM history_entries WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if status != "" {
		query += fmt.Sprintf(" AND status=$%d", argPos)
		args = append(args, status)
		argPos++
	}

	query += fmt.Sprintf(" ORDER BY id DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		var e model.HistoryEntry
		if err := rows.Scan(
			&e.ID, &e.ClientID, &e.TemplateKey, &e.Recipient, &e.Subject, &e.Body,
			&e.Attachments, &e.Status, &e.ErrorMessage, &e.RetryCount, &e.SentAt, &e.LastRetryAt,
		); err != nil {
			return nil, 0, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery := `SELECT COUNT(*) FROM history_entries WHERE 1=1`
	argsCount := []interface{}{}
	if status != "" {
		countQuery += " AND status=$1"
		argsCount = append(argsCount, status)
	}

	var total int
	if err := r.DB.QueryRow(countQuery, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

var _ HistoryRepositoryInterface = (*HistoryRepository)(nil)
