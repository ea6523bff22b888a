// Package bot provides the conversational intake bounded context module:
// the inbound webhook endpoint and the wiring of the dialogue engine.
package bot

import (
	"fmt"
	"net/http"
	"strconv"

	"leadbot_backend/internal/bot/dialogue"
	"leadbot_backend/internal/bot/domain"
	"leadbot_backend/platform/apperr"
	"leadbot_backend/platform/httpkit"
	"leadbot_backend/platform/logger"
	"leadbot_backend/platform/phone"
	"leadbot_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// maxAttachments bounds how many media entries one webhook delivery may carry.
const maxAttachments = 10

// inboundForm is the provider's webhook delivery shape
// (application/x-www-form-urlencoded).
type inboundForm struct {
	From     string `form:"From" validate:"required"`
	Body     string `form:"Body"`
	NumMedia string `form:"NumMedia"`
}

// Handler handles inbound webhook HTTP requests.
type Handler struct {
	engine *dialogue.Engine
	val    *validator.Validator
	log    *logger.Logger
}

// NewHandler creates a new webhook handler.
func NewHandler(engine *dialogue.Engine, val *validator.Validator, log *logger.Logger) *Handler {
	return &Handler{engine: engine, val: val, log: log}
}

// HandleInbound processes one inbound message event.
// POST /webhook/whatsapp
func (h *Handler) HandleInbound(c *gin.Context) {
	var form inboundForm
	if err := c.ShouldBind(&form); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid webhook payload")
		return
	}
	if err := h.val.Struct(form); err != nil {
		httpkit.HandleError(c, apperr.Validation("missing sender"))
		return
	}

	in := domain.Inbound{
		Identity:    phone.NormalizeSender(form.From),
		Text:        form.Body,
		Attachments: extractAttachments(c, form.NumMedia),
	}

	h.log.Debug("inbound message", "sender", in.Identity, "attachments", len(in.Attachments))

	replies := h.engine.Handle(c.Request.Context(), in)

	messages := make([]httpkit.TwiMLMessage, 0, len(replies))
	for _, r := range replies {
		messages = append(messages, httpkit.TwiMLMessage{Body: r.Text, Media: r.MediaURL})
	}
	httpkit.TwiML(c, messages)
}

// extractAttachments reads the provider's indexed media fields
// (MediaUrl0/MediaContentType0, MediaUrl1/...).
func extractAttachments(c *gin.Context, numMedia string) []domain.Attachment {
	count, err := strconv.Atoi(numMedia)
	if err != nil || count <= 0 {
		return nil
	}
	if count > maxAttachments {
		count = maxAttachments
	}

	attachments := make([]domain.Attachment, 0, count)
	for i := 0; i < count; i++ {
		url := c.PostForm(fmt.Sprintf("MediaUrl%d", i))
		if url == "" {
			continue
		}
		attachments = append(attachments, domain.Attachment{
			URL:         url,
			ContentType: c.PostForm(fmt.Sprintf("MediaContentType%d", i)),
		})
	}
	return attachments
}
