// internal/pdf/attestation.go
package pdf

import (
	"github.com/previsoft/duerp-backend/internal/model"
)

const attestationText = "La présente attestation certifie que le Document Unique " +
	"d'Évaluation des Risques Professionnels (DUERP) de l'entreprise désignée " +
	"ci-dessus a été établi conformément aux articles R4121-1 et suivants du " +
	"Code du travail. L'évaluation couvre l'ensemble des unités de travail de " +
	"l'entreprise et recense les risques identifiés ainsi que les mesures de " +
	"prévention associées. Ce document est tenu à la disposition des autorités " +
	"et instances habilitées à le consulter :"

var reviewingAuthorities = []string{
	"L'inspection du travail",
	"Les agents des services de prévention des organismes de sécurité sociale (CARSAT)",
	"Le médecin du travail et les services de prévention et de santé au travail",
	"Les membres du CSE et les délégués du personnel",
}

func renderAttestation(g *Generator, client *model.Client, _ *model.Product) ([]byte, error) {
	c := newCanvas(g.now())

	cur := g.drawHeader(c, "ATTESTATION DE CONFORMITÉ")

	c.font("", 9)
	c.textColor(60, 60, 60)
	c.text(cur, "Dossier n° "+client.DossierNumber)
	cur = cur.Down(lineHeight)
	c.text(cur, "Établie le "+g.now().Format("02/01/2006"))
	cur = cur.Down(10)

	cur = g.drawClientPanel(c, cur, client)

	// Legal attestation block.
	c.checkmark(marginX+4, cur.Y+2, 3.5)
	c.font("B", 12)
	c.textColor(31, 58, 95)
	c.text(cur.Right(11).Down(3.5), "Attestation")
	cur = cur.Down(12)

	c.font("", 9.5)
	c.textColor(60, 60, 60)
	cur, _ = c.wrapText(cur, attestationText, pageWidth-2*marginX)
	cur = cur.Down(4)

	c.font("", 9.5)
	for _, authority := range reviewingAuthorities {
		c.bullet(cur.Right(3), 31, 58, 95)
		var lines int
		cur, lines = c.wrapText(cur.Right(7), authority, pageWidth-2*marginX-10)
		cur = cur.At(marginX)
		if lines > 1 {
			cur = cur.Down(1)
		}
	}
	cur = cur.Down(6)

	c.font("I", 8.5)
	c.textColor(120, 120, 120)
	cur, _ = c.wrapText(cur, "Cette attestation est délivrée pour servir et valoir "+
		"ce que de droit. Elle ne se substitue pas au document unique lui-même, "+
		"qui reste consultable au sein de l'entreprise.", pageWidth-2*marginX)

	g.drawSignedBadge(c)
	return c.output()
}
