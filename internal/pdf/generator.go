// internal/pdf/generator.go
package pdf

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/previsoft/duerp-backend/internal/model"
)

// Generator renders the dynamic DUERP documents. It has no storage or
// database side effects: output depends only on its inputs, the injected
// clock and the best-effort logo fetch.
type Generator struct {
	LogoURL string
	Company string
	HTTP    *http.Client
	Now     func() time.Time
}

func NewGenerator(logoURL, company string) *Generator {
	return &Generator{LogoURL: logoURL, Company: company}
}

func (g *Generator) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

type renderFunc func(g *Generator, client *model.Client, product *model.Product) ([]byte, error)

// Closed set of document kinds; one renderer per kind.
var renderers = map[string]renderFunc{
	model.KindFacture:     renderFacture,
	model.KindAttestation: renderAttestation,
	model.KindModalites:   renderModalites,
}

// Generate renders one document of the given kind as raw PDF bytes.
func (g *Generator) Generate(kind string, client *model.Client, product *model.Product) ([]byte, error) {
	render, ok := renderers[kind]
	if !ok {
		return nil, fmt.Errorf("unknown document kind %q", kind)
	}
	return render(g, client, product)
}

// Filename returns the deterministic attachment filename for a kind.
func Filename(kind string) string {
	switch kind {
	case model.KindFacture:
		return "facture_duerp.pdf"
	case model.KindAttestation:
		return "attestation_conformite.pdf"
	case model.KindModalites:
		return "modalites_paiement.pdf"
	}
	return kind + ".pdf"
}

// Title returns the human title recorded with a generated document.
func Title(kind string) string {
	switch kind {
	case model.KindFacture:
		return "Facture DUERP"
	case model.KindAttestation:
		return "Attestation de conformité"
	case model.KindModalites:
		return "Modalités de paiement"
	}
	return kind
}

// drawHeader paints the top band with logo or text branding and the
// document title, and returns the cursor below the band.
func (g *Generator) drawHeader(c *canvas, title string) Cursor {
	c.fillRect(0, 0, pageWidth, 40, 31, 58, 95)

	logo, imgType, err := g.fetchLogo()
	if err != nil {
		// Soft fail: text branding instead of the logo, never abort.
		if g.LogoURL != "" {
			log.Println("⚠️ logo unavailable, falling back to text branding:", err)
		}
		c.font("B", 20)
		c.textColor(255, 255, 255)
		c.text(Cursor{marginX, 20}, g.Company)
	} else {
		c.image("logo", logo, imgType, marginX, 8, 24, 24, 3)
	}

	c.font("B", 16)
	c.textColor(255, 255, 255)
	c.textRight(Cursor{pageWidth - marginX, 22}, title)

	return Cursor{marginX, 52}
}

// drawClientPanel renders the boxed client identity block and returns the
// cursor just below it.
func (g *Generator) drawClientPanel(c *canvas, cur Cursor, client *model.Client) Cursor {
	const panelWidth = pageWidth - 2*marginX
	top := cur.Y

	c.font("B", 10)
	c.textColor(31, 58, 95)
	c.text(cur.Down(7).Right(5), "CLIENT")

	c.font("", 9)
	c.textColor(60, 60, 60)
	line := cur.Down(13).Right(5)
	c.text(line, client.DisplayName())
	line = line.Down(lineHeight)
	if client.Company != "" {
		c.text(line, client.FullName())
		line = line.Down(lineHeight)
	}
	if client.SIRET != "" {
		c.text(line, "SIRET : "+client.SIRET)
		line = line.Down(lineHeight)
	}
	line, _ = c.wrapText(line, client.FullAddress(), panelWidth-10)
	c.text(line, client.Email)
	line = line.Down(lineHeight)

	height := line.Y - top + 2
	c.strokeRect(cur.X, top, panelWidth, height, 180, 190, 200)
	return Cursor{marginX, top + height + 8}
}

// drawSignedBadge stamps the wall-clock signature badge near the page
// bottom. The timestamp is intentionally not deterministic in production;
// tests inject a fixed clock.
func (g *Generator) drawSignedBadge(c *canvas) {
	stamp := g.now()
	const w, h = 78.0, 12.0
	x := pageWidth - marginX - w
	y := pageHeight - 24

	c.roundedRect(x, y, w, h, 2, 232, 240, 254, "F")
	c.checkmark(x+7, y+h/2, 3)
	c.font("", 7.5)
	c.textColor(31, 58, 95)
	c.text(Cursor{x + 13, y + 5.5}, "Document signé électroniquement")
	c.text(Cursor{x + 13, y + 9.5}, "le "+stamp.Format("02/01/2006 à 15:04"))
}
