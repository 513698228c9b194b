package service_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/previsoft/duerp-backend/internal/errors"
	"github.com/previsoft/duerp-backend/internal/events"
	"github.com/previsoft/duerp-backend/internal/mailer"
	"github.com/previsoft/duerp-backend/internal/model"
	"github.com/previsoft/duerp-backend/internal/service"
)

type mockHistoryRepo struct {
	entries map[int]*model.HistoryEntry
	created []*model.HistoryEntry
	retries []int
	nextID  int
}

func newMockHistoryRepo() *mockHistoryRepo {
	return &mockHistoryRepo{entries: map[int]*model.HistoryEntry{}, nextID: 1}
}

func (m *mockHistoryRepo) Create(entry *model.HistoryEntry) error {
	entry.ID = m.nextID
	m.nextID++
	m.entries[entry.ID] = entry
	m.created = append(m.created, entry)
	return nil
}

func (m *mockHistoryRepo) GetByID(id int) (*model.HistoryEntry, error) {
	e, ok := m.entries[id]
	if !ok {
		return nil, appErrors.NewHistoryNotFound(id)
	}
	return e, nil
}

func (m *mockHistoryRepo) MarkRetry(id int) error {
	e, ok := m.entries[id]
	if !ok {
		return appErrors.NewHistoryNotFound(id)
	}
	e.RetryCount++
	m.retries = append(m.retries, id)
	return nil
}

func (m *mockHistoryRepo) List(offset, limit int, status string) ([]model.HistoryEntry, int, error) {
	out := []model.HistoryEntry{}
	for _, e := range m.created {
		if status == "" || e.Status == status {
			out = append(out, *e)
		}
	}
	return out, len(out), nil
}

type mockMailer struct {
	sent    []string
	failing bool
}

func (m *mockMailer) Send(to, subject, htmlBody string, attachments []mailer.Attachment) error {
	if m.failing {
		return fmt.Errorf("smtp: connection refused")
	}
	m.sent = append(m.sent, to)
	return nil
}

type mockEvents struct {
	published []events.SendEvent
}

func (m *mockEvents) Publish(ev events.SendEvent) {
	m.published = append(m.published, ev)
}

func newSendService(history *mockHistoryRepo, m *mockMailer, docs *mockDocumentRepo, ev *mockEvents) *service.SendService {
	resolver := &service.TemplateResolver{
		TemplateRepo: &mockTemplateRepo{
			templates: map[string]*model.MessageTemplate{
				"envoi_documents": {ID: 1, Key: "envoi_documents", Subject: "Dossier {numero_dossier}", Body: "Bonjour {prenom}"},
				"identifiants":    {ID: 2, Key: "identifiants", Subject: "Identifiants", Body: "Bonjour {prenom}"},
			},
			pdfs: map[int][]model.PDFTemplate{1: dynamicLinks()},
		},
		ClientRepo: &mockClientRepo{clients: map[int]*model.Client{1: clientWithProduct()}},
	}

	assembler := &service.AttachmentAssembler{
		TemplateRepo: resolver.TemplateRepo.(*mockTemplateRepo),
		ProductRepo: &mockProductRepo{products: map[int]*model.Product{
			1: {ID: 1, Name: "Accompagnement DUERP", Price: 830, VATRate: 20},
		}},
		DocumentRepo: docs,
		Storage:      &mockUploader{},
		Generator:    &mockGenerator{},
	}

	return &service.SendService{
		Resolver:     resolver,
		Assembler:    assembler,
		Mailer:       m,
		HistoryRepo:  history,
		DocumentRepo: docs,
		Events:       ev,
	}
}

func TestSendSuccessRecordsSentEntry(t *testing.T) {
	history := newMockHistoryRepo()
	mail := &mockMailer{}
	ev := &mockEvents{}
	svc := newSendService(history, mail, &mockDocumentRepo{}, ev)

	result, err := svc.Send(context.Background(), 1, "envoi_documents", "")
	require.NoError(t, err)

	assert.Equal(t, "jean.dupont@example.fr", result.Recipient)
	assert.Equal(t, 3, result.AttachmentsCount)
	assert.Equal(t, []string{"jean.dupont@example.fr"}, mail.sent)

	require.Len(t, history.created, 1)
	entry := history.created[0]
	assert.Equal(t, model.StatusSent, entry.Status)
	assert.Equal(t, 0, entry.RetryCount)
	assert.Equal(t, "Dossier D-2024-0117", entry.Subject)

	var meta []model.AttachmentMeta
	require.NoError(t, json.Unmarshal([]byte(entry.Attachments), &meta))
	assert.Len(t, meta, 3)
	assert.Equal(t, "facture_duerp.pdf", meta[0].Filename)

	require.Len(t, ev.published, 1)
	assert.Equal(t, model.StatusSent, ev.published[0].Status)
}

func TestSendUsesEmailOverride(t *testing.T) {
	history := newMockHistoryRepo()
	mail := &mockMailer{}
	svc := newSendService(history, mail, &mockDocumentRepo{}, &mockEvents{})

	result, err := svc.Send(context.Background(), 1, "envoi_documents", "compta@example.fr")
	require.NoError(t, err)
	assert.Equal(t, "compta@example.fr", result.Recipient)
	assert.Equal(t, "compta@example.fr", history.created[0].Recipient)
}

func TestSendTemplateWithoutLinksSucceedsWithZeroAttachments(t *testing.T) {
	history := newMockHistoryRepo()
	svc := newSendService(history, &mockMailer{}, &mockDocumentRepo{}, &mockEvents{})

	result, err := svc.Send(context.Background(), 1, "identifiants", "")
	require.NoError(t, err)
	assert.Equal(t, 0, result.AttachmentsCount)
	assert.Equal(t, "[]", history.created[0].Attachments)
}

func TestSendSMTPFailureRecordsErrorEntry(t *testing.T) {
	history := newMockHistoryRepo()
	mail := &mockMailer{failing: true}
	ev := &mockEvents{}
	svc := newSendService(history, mail, &mockDocumentRepo{}, ev)

	_, err := svc.Send(context.Background(), 1, "envoi_documents", "")
	require.Error(t, err)

	require.Len(t, history.created, 1)
	entry := history.created[0]
	assert.Equal(t, model.StatusError, entry.Status)
	assert.Contains(t, entry.ErrorMessage, "smtp")
	// Attachment metadata was assembled before the failure and is kept.
	var meta []model.AttachmentMeta
	require.NoError(t, json.Unmarshal([]byte(entry.Attachments), &meta))
	assert.Len(t, meta, 3)

	require.Len(t, ev.published, 1)
	assert.Equal(t, model.StatusError, ev.published[0].Status)
}

func TestSendNotFoundWritesNoHistory(t *testing.T) {
	history := newMockHistoryRepo()
	svc := newSendService(history, &mockMailer{}, &mockDocumentRepo{}, &mockEvents{})

	_, err := svc.Send(context.Background(), 99, "envoi_documents", "")
	require.Error(t, err)
	assert.True(t, appErrors.IsNotFound(err))
	assert.Empty(t, history.created)

	_, err = svc.Send(context.Background(), 1, "inexistant", "")
	require.Error(t, err)
	assert.Empty(t, history.created)
}

func TestPreviewNeverTouchesHistory(t *testing.T) {
	history := newMockHistoryRepo()
	mail := &mockMailer{}
	docs := &mockDocumentRepo{recent: []model.GeneratedDocument{
		{PublicURL: "https://cdn.example.fr/documents/1/modalites_paiement.pdf"},
		{PublicURL: "https://cdn.example.fr/documents/1/attestation_conformite.pdf"},
		{PublicURL: "https://cdn.example.fr/documents/1/facture_duerp.pdf"},
	}}
	svc := newSendService(history, mail, docs, &mockEvents{})

	result, err := svc.Preview(context.Background(), 1, "envoi_documents")
	require.NoError(t, err)

	assert.Equal(t, 3, result.AttachmentsCount)
	assert.Len(t, result.PDFURLs, 3)
	assert.Empty(t, mail.sent)
	assert.Empty(t, history.created)
	assert.Empty(t, history.retries)
}

func TestRetryRunsFreshSendAndBumpsOriginal(t *testing.T) {
	history := newMockHistoryRepo()
	original := &model.HistoryEntry{
		ClientID:     1,
		TemplateKey:  "envoi_documents",
		Recipient:    "ancienne@example.fr",
		Status:       model.StatusError,
		ErrorMessage: "smtp: connection refused",
	}
	require.NoError(t, history.Create(original))

	svc := newSendService(history, &mockMailer{}, &mockDocumentRepo{}, &mockEvents{})

	result, err := svc.Retry(context.Background(), original.ID)
	require.NoError(t, err)

	// Fresh send goes to the recipient recorded on the failed attempt.
	assert.Equal(t, "ancienne@example.fr", result.Recipient)

	// The fresh attempt has its own independent row.
	require.Len(t, history.created, 2)
	fresh := history.created[1]
	assert.Equal(t, model.StatusSent, fresh.Status)
	assert.Equal(t, 0, fresh.RetryCount)

	// The original row is bumped exactly once and keeps its status.
	assert.Equal(t, 1, original.RetryCount)
	assert.Equal(t, model.StatusError, original.Status)
	assert.Equal(t, []int{original.ID}, history.retries)
}

func TestRetryOfFailingSendStillBumpsOriginal(t *testing.T) {
	history := newMockHistoryRepo()
	original := &model.HistoryEntry{
		ClientID:    1,
		TemplateKey: "envoi_documents",
		Recipient:   "jean.dupont@example.fr",
		Status:      model.StatusError,
	}
	require.NoError(t, history.Create(original))

	svc := newSendService(history, &mockMailer{failing: true}, &mockDocumentRepo{}, &mockEvents{})

	_, err := svc.Retry(context.Background(), original.ID)
	require.Error(t, err)

	// New error row plus the retry bump on the original.
	require.Len(t, history.created, 2)
	assert.Equal(t, model.StatusError, history.created[1].Status)
	assert.Equal(t, 1, original.RetryCount)
}

func TestRetryUnknownEntry(t *testing.T) {
	history := newMockHistoryRepo()
	svc := newSendService(history, &mockMailer{}, &mockDocumentRepo{}, &mockEvents{})

	_, err := svc.Retry(context.Background(), 404)
	require.Error(t, err)
	assert.IsType(t, &appErrors.ErrHistoryNotFound{}, err)
	assert.Empty(t, history.retries)
}
