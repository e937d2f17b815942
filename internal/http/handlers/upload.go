package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fotoflesz/printshop-backend/internal/http/response"
	"github.com/fotoflesz/printshop-backend/internal/ingest"
	"github.com/fotoflesz/printshop-backend/internal/order"
	"github.com/fotoflesz/printshop-backend/internal/platform/apierr"
	"github.com/fotoflesz/printshop-backend/internal/platform/logger"
)

// DefaultMaxUploadBytes caps the in-memory portion of a parsed batch.
const DefaultMaxUploadBytes = 32 << 20

type UploadHandler struct {
	log       *logger.Logger
	ingest    *ingest.Service
	maxMemory int64
}

func NewUploadHandler(log *logger.Logger, ingestService *ingest.Service, maxMemory int64) *UploadHandler {
	if maxMemory <= 0 {
		maxMemory = DefaultMaxUploadBytes
	}
	return &UploadHandler{
		log:       log.With("handler", "UploadHandler"),
		ingest:    ingestService,
		maxMemory: maxMemory,
	}
}

// Upload accepts one order batch: flat identity fields plus bracketed-index
// order metadata and image parts.
func (h *UploadHandler) Upload(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(h.maxMemory); err != nil {
		h.respondError(c, apierr.BadRequest(apierr.CodeInvalidMultipart, err))
		return
	}
	form := c.Request.MultipartForm
	defer form.RemoveAll()

	customer := order.Customer{
		Name:    formValue(c, "name"),
		Surname: formValue(c, "surname"),
		Address: formValue(c, "address"),
		Phone:   formValue(c, "phone"),
	}

	res, err := h.ingest.IngestBatch(c.Request.Context(), form, customer)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.RespondOK(c, fmt.Sprintf("Zapisano %d plików", res.Saved))
}

func (h *UploadHandler) respondError(c *gin.Context, err error) {
	var ae *apierr.Error
	if !errors.As(err, &ae) {
		if errors.Is(err, order.ErrMissingIdentity) {
			ae = apierr.BadRequest(apierr.CodeMissingIdentity, err)
		} else {
			ae = apierr.Internal(apierr.CodeIngestFailed, err)
		}
	}
	if ae.Status >= 500 {
		h.log.Error("batch ingestion failed", "code", ae.Code, "error", err)
	}
	response.RespondError(c, ae.Status, ae)
}

func formValue(c *gin.Context, key string) string {
	return strings.TrimSpace(c.Request.FormValue(key))
}
