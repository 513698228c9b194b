// internal/pdf/facture.go
package pdf

import (
	"fmt"
	"time"

	"github.com/previsoft/duerp-backend/internal/model"
)

// Invoice table column layout (absolute X offsets).
const (
	colDescX  = marginX
	colDescW  = 95.0
	colPriceX = 115.0
	colQtyX   = 148.0
	colTotalX = pageWidth - marginX
)

func renderFacture(g *Generator, client *model.Client, product *model.Product) ([]byte, error) {
	if product == nil {
		return nil, fmt.Errorf("facture requires a product for client %d", client.ID)
	}

	issueDate := g.now()
	c := newCanvas(issueDate)

	cur := g.drawHeader(c, "FACTURE")

	// Invoice reference block under the band, left side.
	c.font("", 9)
	c.textColor(60, 60, 60)
	c.text(cur, "Facture n° FAC-"+client.DossierNumber)
	cur = cur.Down(lineHeight)
	c.text(cur, "Date d'émission : "+issueDate.Format("02/01/2006"))
	cur = cur.Down(10)

	cur = g.drawClientPanel(c, cur, client)

	// Table header row.
	const headerH = 8.0
	c.fillRect(marginX, cur.Y, pageWidth-2*marginX, headerH, 31, 58, 95)
	c.font("B", 9)
	c.textColor(255, 255, 255)
	headerBase := cur.Down(5.5)
	c.text(headerBase.Right(2), "Description")
	c.text(headerBase.At(colPriceX), "Prix unitaire")
	c.text(headerBase.At(colQtyX), "Qté")
	c.textRight(headerBase.At(colTotalX-2), "Total")
	cur = cur.Down(headerH)

	// Single item row: name, wrapped description, bulleted detail lines.
	// Height is computed before drawing so the border matches the content.
	details := product.DetailLines()
	c.font("", 9)
	descLines := c.lineCount(product.Description, colDescW-6)
	rowLines := 1 + descLines + len(details)
	rowH := RowHeight(14, rowLines, 6)

	quantity := 1
	lineTotal := product.Price * float64(quantity)

	rowTop := cur.Y
	c.strokeRect(marginX, rowTop, pageWidth-2*marginX, rowH, 180, 190, 200)

	body := cur.Down(6).Right(3)
	c.font("B", 9)
	c.textColor(40, 40, 40)
	c.text(body, product.Name)
	body = body.Down(lineHeight)

	c.font("", 9)
	c.textColor(90, 90, 90)
	body, _ = c.wrapText(body, product.Description, colDescW-6)

	c.font("", 8.5)
	for _, d := range details {
		c.bullet(body, 31, 58, 95)
		c.text(body.Right(3), d)
		body = body.Down(lineHeight)
	}

	amountBase := Cursor{colPriceX, rowTop + 6}
	c.font("", 9)
	c.textColor(40, 40, 40)
	c.text(amountBase, FormatEuro(product.Price))
	c.text(amountBase.At(colQtyX), fmt.Sprintf("%d", quantity))
	c.textRight(amountBase.At(colTotalX-2), FormatEuro(lineTotal))

	cur = Cursor{marginX, rowTop + rowH + 10}

	// Summary panel, right-aligned. No intermediate rounding: raw values
	// are carried and rounded once at formatting.
	subtotal := lineTotal
	vat := VATAmount(subtotal, product.VATRate)
	total := TotalWithVAT(subtotal, product.VATRate)

	const sumW = 70.0
	sumX := pageWidth - marginX - sumW
	c.roundedRect(sumX, cur.Y, sumW, 26, 2, 243, 246, 250, "F")

	sumLine := Cursor{sumX + 5, cur.Y + 7}
	c.font("", 9)
	c.textColor(60, 60, 60)
	c.text(sumLine, "Total HT")
	c.textRight(sumLine.At(sumX+sumW-5), FormatEuro(subtotal))
	sumLine = sumLine.Down(6)
	c.text(sumLine, fmt.Sprintf("TVA (%s %%)", FormatAmount(product.VATRate)))
	c.textRight(sumLine.At(sumX+sumW-5), FormatEuro(vat))
	sumLine = sumLine.Down(7)
	c.line(sumX+5, sumLine.Y-4.5, sumX+sumW-5, sumLine.Y-4.5, 180, 190, 200)
	c.font("B", 10)
	c.textColor(31, 58, 95)
	c.text(sumLine, "Total TTC")
	c.textRight(sumLine.At(sumX+sumW-5), FormatEuro(total))

	cur = cur.Down(36)

	if product.Installments {
		cur = drawInstallments(c, cur, total, issueDate)
	}

	g.drawSignedBadge(c)
	return c.output()
}

// drawInstallments renders the three equal payments (total / 3), dated in
// whole-month steps from the issue date.
func drawInstallments(c *canvas, cur Cursor, total float64, issueDate time.Time) Cursor {
	installment := total / 3

	c.font("B", 10)
	c.textColor(31, 58, 95)
	c.text(cur, "Échéancier de paiement en 3 fois")
	cur = cur.Down(7)

	c.font("", 9)
	c.textColor(60, 60, 60)
	for i := 0; i < 3; i++ {
		due := issueDate.AddDate(0, i, 0)
		c.bullet(cur, 31, 58, 95)
		c.text(cur.Right(3), fmt.Sprintf("Échéance %d : le %s", i+1, due.Format("02/01/2006")))
		c.textRight(cur.At(pageWidth-marginX), FormatEuro(installment))
		cur = cur.Down(6)
	}
	return cur.Down(4)
}
