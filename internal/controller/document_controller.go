// internal/controller/document_controller.go
package controller

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	appErrors "github.com/previsoft/duerp-backend/internal/errors"
	"github.com/previsoft/duerp-backend/internal/service"
)

// SendPipeline is the RPC surface the administrative UI calls.
type SendPipeline interface {
	Send(ctx context.Context, clientID int, templateKey, emailOverride string) (*service.SendResult, error)
	Preview(ctx context.Context, clientID int, templateKey string) (*service.PreviewResult, error)
	Retry(ctx context.Context, historyID int) (*service.SendResult, error)
}

type DocumentController struct {
	Pipeline SendPipeline
}

type sendRequest struct {
	ClientID      int    `json:"clientId"`
	TemplateKey   string `json:"templateKey"`
	EmailOverride string `json:"emailOverride,omitempty"`
	PreviewOnly   bool   `json:"previewOnly,omitempty"`
}

// SendDocuments handles the synchronous send/preview RPC call.
func (c *DocumentController) SendDocuments(w http.ResponseWriter, r *http.Request) {
	var body sendRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if body.ClientID <= 0 || body.TemplateKey == "" {
		writeError(w, http.StatusBadRequest, "clientId and templateKey are required")
		return
	}

	if body.PreviewOnly {
		result, err := c.Pipeline.Preview(r.Context(), body.ClientID, body.TemplateKey)
		if err != nil {
			writePipelineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success":          true,
			"pdfUrls":          result.PDFURLs,
			"attachmentsCount": result.AttachmentsCount,
		})
		return
	}

	result, err := c.Pipeline.Send(r.Context(), body.ClientID, body.TemplateKey, body.EmailOverride)
	if err != nil {
		writePipelineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"recipient":        result.Recipient,
		"attachmentsCount": result.AttachmentsCount,
	})
}

// RetrySend re-runs the pipeline for a recorded failed attempt.
func (c *DocumentController) RetrySend(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid history id")
		return
	}

	result, err := c.Pipeline.Retry(r.Context(), id)
	if err != nil {
		writePipelineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"recipient":        result.Recipient,
		"attachmentsCount": result.AttachmentsCount,
	})
}

func writePipelineError(w http.ResponseWriter, err error) {
	log.Println("❌ pipeline error:", err)
	status := http.StatusInternalServerError
	if appErrors.IsNotFound(err) {
		status = http.StatusNotFound
	}
	writeError(w, status, err.Error())
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"error":   msg,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
