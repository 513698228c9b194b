package repository

import (
	"database/sql"

	"github.com/previsoft/duerp-backend/internal/model"
)

// ProductRepositoryInterface defines methods used by the assembler
type ProductRepositoryInterface interface {
	GetByID(id int) (*model.Product, error)
}

type ProductRepository struct {
	DB *sql.DB
}

// GetByID fetches a product by ID. Returns nil, nil when the product
// does not exist; the invoice renderer treats a missing product as a
// hard error at its own level.
func (r *ProductRepository) GetByID(id int) (*model.Product, error) {
	query := `
		SELECT id, name, description, details, price, vat_rate, installments
		FROM products
		WHERE id = $1
	`
	var p model.Product
	err := r.DB.QueryRow(query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.Details, &p.Price, &p.VATRate, &p.Installments,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

var _ ProductRepositoryInterface = (*ProductRepository)(nil)
