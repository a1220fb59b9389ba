package contact

import (
	"context"
	"net/http"
	"time"

	"agency-site/internal/api/respond"
	"agency-site/internal/domain/contact"
	"agency-site/internal/notify"
	"agency-site/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const notifyTimeout = 15 * time.Second

type Handler struct {
	store    store.ContactStore
	notifier notify.Notifier
}

func New(st store.ContactStore, n notify.Notifier) *Handler {
	if n == nil {
		n = notify.LogNotifier{}
	}
	return &Handler{store: st, notifier: n}
}

// ------------------------------
// POST /api/contact
// ------------------------------
func (h *Handler) Create(c *gin.Context) {
	var in contact.MessageInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.MalformedJSON(c)
		return
	}
	if err := in.Validate(); err != nil {
		respond.Error(c, err, "Failed to send message")
		return
	}

	m, err := h.store.CreateContactMessage(c.Request.Context(), in)
	if err != nil {
		respond.Error(c, err, "Failed to send message")
		return
	}

	// The message is stored; a failed notification only gets logged.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), notifyTimeout)
	defer cancel()
	if err := h.notifier.NotifyContact(ctx, *m); err != nil {
		log.Error().
			Err(err).
			Uint("contact_id", m.ID).
			Str("request_id", c.GetString("requestID")).
			Msg("Contact notification failed")
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
