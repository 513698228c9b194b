// internal/model/client.go
package model

import "time"

type Client struct {
	ID            int       `db:"id" json:"id"`
	FirstName     string    `db:"first_name" json:"first_name"`
	LastName      string    `db:"last_name" json:"last_name"`
	Company       string    `db:"company" json:"company"`
	SIRET         string    `db:"siret" json:"siret"`
	Address       string    `db:"address" json:"address"`
	PostalCode    string    `db:"postal_code" json:"postal_code"`
	City          string    `db:"city" json:"city"`
	Email         string    `db:"email" json:"email"`
	Password      string    `db:"password" json:"-"`
	DossierNumber string    `db:"dossier_number" json:"dossier_number"`
	ProductID     *int      `db:"product_id" json:"product_id,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// FullName is "FirstName LastName" trimmed of extra spaces.
func (c *Client) FullName() string {
	if c.FirstName == "" {
		return c.LastName
	}
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// DisplayName prefers the company name over the person's full name.
func (c *Client) DisplayName() string {
	if c.Company != "" {
		return c.Company
	}
	return c.FullName()
}

// FullAddress joins the postal address on one line.
func (c *Client) FullAddress() string {
	addr := c.Address
	if c.PostalCode != "" || c.City != "" {
		if addr != "" {
			addr += ", "
		}
		addr += c.PostalCode
		if c.PostalCode != "" && c.City != "" {
			addr += " "
		}
		addr += c.City
	}
	return addr
}
