// internal/service/sender.go
package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/previsoft/duerp-backend/internal/events"
	"github.com/previsoft/duerp-backend/internal/mailer"
	"github.com/previsoft/duerp-backend/internal/model"
	"github.com/previsoft/duerp-backend/internal/repository"
)

// Resolver and Assembler are the pipeline stages the sender composes.
type Resolver interface {
	Resolve(clientID int, templateKey string) (*ResolvedMessage, error)
}

type Assembler interface {
	Assemble(ctx context.Context, client *model.Client, template *model.MessageTemplate) (*AssembleResult, error)
}

// EventPublisher emits best-effort audit events after each send attempt.
type EventPublisher interface {
	Publish(ev events.SendEvent)
}

type SendService struct {
	Resolver     Resolver
	Assembler    Assembler
	Mailer       mailer.Mailer
	HistoryRepo  repository.HistoryRepositoryInterface
	DocumentRepo repository.DocumentRepositoryInterface
	Events       EventPublisher
}

// SendResult is returned for a real (non-preview) send.
type SendResult struct {
	Recipient        string
	AttachmentsCount int
}

// PreviewResult is returned for a dry run: documents were generated and
// stored, nothing was delivered or recorded.
type PreviewResult struct {
	PDFURLs          []string
	AttachmentsCount int
}

// Send runs the full pipeline: resolve, assemble, deliver, record.
// A not-found on resolution is terminal and leaves no trace; any failure
// after that point is recorded as an error history entry.
func (s *SendService) Send(ctx context.Context, clientID int, templateKey, emailOverride string) (*SendResult, error) {
	resolved, err := s.Resolver.Resolve(clientID, templateKey)
	if err != nil {
		return nil, err
	}

	recipient := resolved.Client.Email
	if emailOverride != "" {
		recipient = emailOverride
	}

	assembled, err := s.Assembler.Assemble(ctx, resolved.Client, resolved.Template)
	if err != nil {
		s.recordFailure(resolved, recipient, nil, err)
		return nil, err
	}

	if err := s.Mailer.Send(recipient, resolved.Subject, resolved.Body, assembled.Attachments); err != nil {
		s.recordFailure(resolved, recipient, assembled.Meta, err)
		return nil, err
	}

	entry := &model.HistoryEntry{
		ClientID:    resolved.Client.ID,
		TemplateKey: resolved.Template.Key,
		Recipient:   recipient,
		Subject:     resolved.Subject,
		Body:        resolved.Body,
		Attachments: marshalMeta(assembled.Meta),
		Status:      model.StatusSent,
		RetryCount:  0,
		SentAt:      time.Now(),
	}
	if err := s.HistoryRepo.Create(entry); err != nil {
		// The email already went out; losing the audit row is logged, not
		// surfaced as a send failure.
		log.Println("⚠️ failed to record history entry:", err)
	}

	s.publish(resolved, recipient, model.StatusSent, "", len(assembled.Meta))

	return &SendResult{
		Recipient:        recipient,
		AttachmentsCount: len(assembled.Attachments),
	}, nil
}

// Preview runs resolution and assembly exactly as a real send would, so
// documents are genuinely generated and uploaded, then stops: no delivery,
// no history. URLs come from the most recent generated documents for the
// client, limited to the attachment count.
func (s *SendService) Preview(ctx context.Context, clientID int, templateKey string) (*PreviewResult, error) {
	resolved, err := s.Resolver.Resolve(clientID, templateKey)
	if err != nil {
		return nil, err
	}

	assembled, err := s.Assembler.Assemble(ctx, resolved.Client, resolved.Template)
	if err != nil {
		return nil, err
	}

	urls := []string{}
	if n := len(assembled.Attachments); n > 0 {
		docs, err := s.DocumentRepo.ListRecentByClient(resolved.Client.ID, n)
		if err != nil {
			return nil, err
		}
		for _, d := range docs {
			urls = append(urls, d.PublicURL)
		}
	}

	return &PreviewResult{
		PDFURLs:          urls,
		AttachmentsCount: len(assembled.Attachments),
	}, nil
}

// Retry re-runs the whole pipeline as a fresh send for an existing entry,
// then bumps the retry bookkeeping on the original row. The fresh send
// writes its own independent sent/error entry; the two writes are not one
// transaction.
func (s *SendService) Retry(ctx context.Context, historyID int) (*SendResult, error) {
	entry, err := s.HistoryRepo.GetByID(historyID)
	if err != nil {
		return nil, err
	}

	result, sendErr := s.Send(ctx, entry.ClientID, entry.TemplateKey, entry.Recipient)

	if err := s.HistoryRepo.MarkRetry(historyID); err != nil {
		log.Println("⚠️ failed to mark retry on history entry", historyID, ":", err)
	}

	if sendErr != nil {
		return nil, sendErr
	}
	return result, nil
}

func (s *SendService) recordFailure(resolved *ResolvedMessage, recipient string, meta []model.AttachmentMeta, cause error) {
	entry := &model.HistoryEntry{
		ClientID:     resolved.Client.ID,
		TemplateKey:  resolved.Template.Key,
		Recipient:    recipient,
		Subject:      resolved.Subject,
		Body:         resolved.Body,
		Attachments:  marshalMeta(meta),
		Status:       model.StatusError,
		ErrorMessage: cause.Error(),
		RetryCount:   0,
		SentAt:       time.Now(),
	}
	if err := s.HistoryRepo.Create(entry); err != nil {
		log.Println("⚠️ failed to record error history entry:", err)
	}

	s.publish(resolved, recipient, model.StatusError, cause.Error(), len(meta))
}

func (s *SendService) publish(resolved *ResolvedMessage, recipient, status, errMsg string, attachments int) {
	if s.Events == nil {
		return
	}
	s.Events.Publish(events.SendEvent{
		ClientID:    resolved.Client.ID,
		TemplateKey: resolved.Template.Key,
		Recipient:   recipient,
		Status:      status,
		Error:       errMsg,
		Attachments: attachments,
		SentAt:      time.Now(),
	})
}

func marshalMeta(meta []model.AttachmentMeta) string {
	if meta == nil {
		meta = []model.AttachmentMeta{}
	}
	b, err := json.Marshal(meta)
	if err != nil {
		return "[]"
	}
	return string(b)
}
