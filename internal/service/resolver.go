// internal/service/resolver.go
package service

import (
	"strings"

	"github.com/previsoft/duerp-backend/internal/model"
	"github.com/previsoft/duerp-backend/internal/repository"
)

// ResolvedMessage is the output of template resolution: the template and
// client records plus the fully substituted subject and body.
type ResolvedMessage struct {
	Template *model.MessageTemplate
	Client   *model.Client
	Subject  string
	Body     string
}

type TemplateResolver struct {
	TemplateRepo repository.TemplateRepositoryInterface
	ClientRepo   repository.ClientRepositoryInterface
}

// Resolve loads the template and client, substitutes every placeholder and
// appends the active signature once. Both lookups are terminal on failure:
// no partial substitution is attempted.
func (r *TemplateResolver) Resolve(clientID int, templateKey string) (*ResolvedMessage, error) {
	template, err := r.TemplateRepo.GetByKey(templateKey)
	if err != nil {
		return nil, err
	}

	client, err := r.ClientRepo.GetByID(clientID)
	if err != nil {
		return nil, err
	}

	subject := Substitute(template.Subject, client)
	body := Substitute(template.Body, client)

	signature, err := r.TemplateRepo.GetActiveSignature()
	if err != nil {
		return nil, err
	}
	if signature != nil {
		body += "<br><br>" + signature.Content
	}

	return &ResolvedMessage{
		Template: template,
		Client:   client,
		Subject:  subject,
		Body:     body,
	}, nil
}

// Substitute replaces the fixed placeholder tokens with client values.
// Tokens are disjoint literals, so replacement order does not matter.
// Unmatched placeholders are left verbatim.
func Substitute(text string, client *model.Client) string {
	replacements := map[string]string{
		"{prenom}":         client.FirstName,
		"{nom}":            client.LastName,
		"{email}":          client.Email,
		"{mot_de_passe}":   client.Password,
		"{societe}":        client.DisplayName(),
		"{siret}":          client.SIRET,
		"{adresse}":        client.FullAddress(),
		"{nom_complet}":    client.FullName(),
		"{numero_dossier}": client.DossierNumber,
	}
	for k, v := range replacements {
		text = strings.ReplaceAll(text, k, v)
	}
	return text
}
