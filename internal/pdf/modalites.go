// internal/pdf/modalites.go
package pdf

import (
	"github.com/previsoft/duerp-backend/internal/model"
)

// Static settlement coordinates printed on the payment sheet.
const (
	bankIBAN = "FR76 3000 4000 0312 3456 7890 143"
	bankBIC  = "BNPAFRPP"
)

func renderModalites(g *Generator, client *model.Client, product *model.Product) ([]byte, error) {
	c := newCanvas(g.now())

	cur := g.drawHeader(c, "MODALITÉS DE PAIEMENT")

	// Client and dossier summary line.
	c.font("", 9)
	c.textColor(60, 60, 60)
	c.text(cur, "Client : "+client.DisplayName())
	cur = cur.Down(lineHeight)
	c.text(cur, "Dossier n° "+client.DossierNumber)
	cur = cur.Down(lineHeight)
	if product != nil {
		total := TotalWithVAT(product.Price, product.VATRate)
		c.text(cur, "Montant à régler : "+FormatEuro(total)+" TTC")
		cur = cur.Down(lineHeight)
	}
	cur = cur.Down(6)

	cur = drawPaymentPanel(c, cur, "1. Virement bancaire", []string{
		"Titulaire : " + g.Company,
		"IBAN : " + bankIBAN,
		"BIC : " + bankBIC,
		"Merci d'indiquer votre numéro de dossier en référence du virement.",
	})

	cur = drawPaymentPanel(c, cur, "2. Chèque", []string{
		"À l'ordre de : " + g.Company,
		"À adresser au service comptabilité, accompagné du numéro de dossier.",
	})

	cur = drawPaymentPanel(c, cur, "3. Carte bancaire en 3 fois sans frais", []string{
		"Règlement en trois mensualités égales, prélevées à date anniversaire.",
		"Le lien de paiement sécurisé vous est transmis par votre conseiller.",
	})

	cur = cur.Down(4)
	c.font("I", 8.5)
	c.textColor(120, 120, 120)
	c.wrapText(cur, "Pour toute question concernant votre règlement, votre conseiller "+
		"reste joignable par retour de ce courriel ou au numéro indiqué dans votre "+
		"espace client.", pageWidth-2*marginX)

	g.drawSignedBadge(c)
	return c.output()
}

// drawPaymentPanel renders one rounded payment-method box. The box height
// follows the wrapped content, measured before drawing.
func drawPaymentPanel(c *canvas, cur Cursor, title string, lines []string) Cursor {
	const panelWidth = pageWidth - 2*marginX

	c.font("", 9)
	contentLines := 0
	for _, l := range lines {
		contentLines += c.lineCount(l, panelWidth-12)
	}
	height := RowHeight(20, contentLines+1, 9)

	c.roundedRect(marginX, cur.Y, panelWidth, height, 2, 243, 246, 250, "F")

	c.font("B", 10)
	c.textColor(31, 58, 95)
	c.text(cur.Down(7).Right(6), title)

	c.font("", 9)
	c.textColor(60, 60, 60)
	body := cur.Down(13).Right(6)
	for _, l := range lines {
		body, _ = c.wrapText(body, l, panelWidth-12)
	}

	return Cursor{marginX, cur.Y + height + 6}
}
