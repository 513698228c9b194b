// internal/model/product.go
package model

import "strings"

type Product struct {
	ID           int     `db:"id" json:"id"`
	Name         string  `db:"name" json:"name"`
	Description  string  `db:"description" json:"description"`
	Details      string  `db:"details" json:"details"` // newline-separated bullet lines
	Price        float64 `db:"price" json:"price"`
	VATRate      float64 `db:"vat_rate" json:"vat_rate"`
	Installments bool    `db:"installments" json:"installments"`
}

// DetailLines splits the stored detail block into bullet lines.
func (p *Product) DetailLines() []string {
	if strings.TrimSpace(p.Details) == "" {
		return nil
	}
	raw := strings.Split(p.Details, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
