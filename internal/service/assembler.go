// internal/service/assembler.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/previsoft/duerp-backend/internal/mailer"
	"github.com/previsoft/duerp-backend/internal/model"
	"github.com/previsoft/duerp-backend/internal/pdf"
	"github.com/previsoft/duerp-backend/internal/repository"
	"github.com/previsoft/duerp-backend/internal/storage"
)

// DocumentGenerator renders one dynamic document kind to PDF bytes.
type DocumentGenerator interface {
	Generate(kind string, client *model.Client, product *model.Product) ([]byte, error)
}

// AssembleResult carries the outgoing attachments plus the lightweight
// metadata recorded with the history entry.
type AssembleResult struct {
	Attachments []mailer.Attachment
	Meta        []model.AttachmentMeta
}

type AttachmentAssembler struct {
	TemplateRepo repository.TemplateRepositoryInterface
	ProductRepo  repository.ProductRepositoryInterface
	DocumentRepo repository.DocumentRepositoryInterface
	Storage      storage.Uploader
	Generator    DocumentGenerator
}

// Assemble generates, stores and collects one attachment per active dynamic
// PDF link of the template, in link order. Static links are logged and
// skipped: attaching externally authored files is a known gap.
func (a *AttachmentAssembler) Assemble(ctx context.Context, client *model.Client, template *model.MessageTemplate) (*AssembleResult, error) {
	links, err := a.TemplateRepo.GetPDFTemplates(template.ID)
	if err != nil {
		return nil, err
	}

	var product *model.Product
	if client.ProductID != nil {
		product, err = a.ProductRepo.GetByID(*client.ProductID)
		if err != nil {
			return nil, err
		}
	}

	result := &AssembleResult{
		Attachments: []mailer.Attachment{},
		Meta:        []model.AttachmentMeta{},
	}

	for _, tpl := range links {
		if tpl.Source != model.PDFSourceDynamic {
			log.Printf("⚠️ static PDF %q linked to template %q but not attached", tpl.Title, template.Key)
			continue
		}

		data, err := a.Generator.Generate(tpl.Kind, client, product)
		if err != nil {
			return nil, fmt.Errorf("generate %s: %w", tpl.Kind, err)
		}

		filename := pdf.Filename(tpl.Kind)
		key := fmt.Sprintf("documents/%d/%s", client.ID, filename)

		publicURL, err := a.Storage.Upload(ctx, key, data, "application/pdf")
		if err != nil {
			if !errors.Is(err, storage.ErrObjectExists) {
				return nil, err
			}
			// Collision: the fresh bytes still go out with the email, but no
			// new archival row is written.
			log.Printf("⚠️ %s already stored for client %d, metadata row skipped", filename, client.ID)
		} else {
			doc := &model.GeneratedDocument{
				ClientID:    client.ID,
				Kind:        tpl.Kind,
				Title:       pdf.Title(tpl.Kind),
				StoragePath: key,
				PublicURL:   publicURL,
			}
			if err := a.DocumentRepo.Create(doc); err != nil {
				return nil, fmt.Errorf("record document %s: %w", key, err)
			}
		}

		result.Attachments = append(result.Attachments, mailer.Attachment{
			Filename: filename,
			MIMEType: "application/pdf",
			Content:  data,
		})
		result.Meta = append(result.Meta, model.AttachmentMeta{
			Filename: filename,
			Type:     tpl.Kind,
		})
	}

	return result, nil
}
