package repository

import (
	"database/sql"

	appErrors "github.com/previsoft/duerp-backend/internal/errors"
	"github.com/previsoft/duerp-backend/internal/model"
)

// ClientRepositoryInterface defines methods used by the pipeline
type ClientRepositoryInterface interface {
	GetByID(id int) (*model.Client, error)
}

// ClientRepository is the concrete implementation
type ClientRepository struct {
	DB *sql.DB
}

// GetByID fetches a client by ID
func (r *ClientRepository) GetByID(id int) (*model.Client, error) {
	query := `
		SELECT id, first_name, last_name, company, siret, address, postal_code, city,
			   email, password, dossier_number, product_id, created_at
		FROM clients
		WHERE id = $1
	`
	row := r.DB.QueryRow(query, id)

	var c model.Client
	err := row.Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Company, &c.SIRET,
		&c.Address, &c.PostalCode, &c.City,
		&c.Email, &c.Password, &c.DossierNumber, &c.ProductID, &c.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewClientNotFound(id)
		}
		return nil, err
	}
	return &c, nil
}

var _ ClientRepositoryInterface = (*ClientRepository)(nil)
