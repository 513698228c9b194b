package pdf

import (
	"bytes"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/previsoft/duerp-backend/internal/model"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
}

func testGenerator() *Generator {
	g := NewGenerator("", "Previsoft")
	g.Now = fixedClock
	return g
}

func generatorClient() *model.Client {
	return &model.Client{
		ID:            1,
		FirstName:     "Jean",
		LastName:      "Dupont",
		Company:       "Dupont SARL",
		SIRET:         "123 456 789 00012",
		Address:       "12 rue de la République",
		PostalCode:    "69002",
		City:          "Lyon",
		Email:         "jean.dupont@example.fr",
		DossierNumber: "D-2024-0117",
	}
}

func generatorProduct() *model.Product {
	return &model.Product{
		ID:          1,
		Name:        "Accompagnement DUERP",
		Description: "Réalisation complète du document unique d'évaluation des risques professionnels.",
		Details:     "Visite des unités de travail\nRédaction du document unique\nMise à jour annuelle incluse",
		Price:       830.00,
		VATRate:     20,
	}
}

func TestGenerateAllKinds(t *testing.T) {
	g := testGenerator()
	client := generatorClient()
	product := generatorProduct()

	for _, kind := range []string{model.KindFacture, model.KindAttestation, model.KindModalites} {
		data, err := g.Generate(kind, client, product)
		require.NoError(t, err, kind)
		require.NotEmpty(t, data, kind)
		assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "missing PDF header for %s", kind)
	}
}

func TestGenerateUnknownKind(t *testing.T) {
	g := testGenerator()
	_, err := g.Generate("bulletin_paie", generatorClient(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown document kind")
}

func TestFactureRequiresProduct(t *testing.T) {
	g := testGenerator()
	_, err := g.Generate(model.KindFacture, generatorClient(), nil)
	require.Error(t, err)
}

func TestAttestationAndModalitesWorkWithoutProduct(t *testing.T) {
	g := testGenerator()
	client := generatorClient()

	for _, kind := range []string{model.KindAttestation, model.KindModalites} {
		data, err := g.Generate(kind, client, nil)
		require.NoError(t, err, kind)
		assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	}
}

func TestGenerateIsDeterministicUnderFixedClock(t *testing.T) {
	client := generatorClient()
	product := generatorProduct()

	for _, kind := range []string{model.KindFacture, model.KindAttestation, model.KindModalites} {
		first, err := testGenerator().Generate(kind, client, product)
		require.NoError(t, err)
		second, err := testGenerator().Generate(kind, client, product)
		require.NoError(t, err)
		assert.True(t, bytes.Equal(first, second), "two renders of %s differ", kind)
	}
}

func TestInstallmentScheduleChangesOutput(t *testing.T) {
	client := generatorClient()

	plain := generatorProduct()
	withSchedule := generatorProduct()
	withSchedule.Installments = true

	first, err := testGenerator().Generate(model.KindFacture, client, plain)
	require.NoError(t, err)
	second, err := testGenerator().Generate(model.KindFacture, client, withSchedule)
	require.NoError(t, err)

	assert.False(t, bytes.Equal(first, second))
	assert.Greater(t, len(second), len(first))
}

func TestUnreachableLogoFallsBackToTextBranding(t *testing.T) {
	g := NewGenerator("http://127.0.0.1:1/logo.png", "Previsoft")
	g.Now = fixedClock
	g.HTTP = &http.Client{Timeout: 500 * time.Millisecond}

	data, err := g.Generate(model.KindAttestation, generatorClient(), nil)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestFilenamesAndTitles(t *testing.T) {
	assert.Equal(t, "facture_duerp.pdf", Filename(model.KindFacture))
	assert.Equal(t, "attestation_conformite.pdf", Filename(model.KindAttestation))
	assert.Equal(t, "modalites_paiement.pdf", Filename(model.KindModalites))

	assert.Equal(t, "Facture DUERP", Title(model.KindFacture))
	assert.Equal(t, "Attestation de conformité", Title(model.KindAttestation))
	assert.Equal(t, "Modalités de paiement", Title(model.KindModalites))
}
