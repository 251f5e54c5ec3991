package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	json "github.com/goccy/go-json"

	"github.com/amaumene/jellygram/internal/domain"
)

// EventProcessor decides and dispatches the notification for one event.
type EventProcessor interface {
	Process(ctx context.Context, event *domain.WebhookEvent) (*domain.Result, error)
}

type HTTPHandler struct {
	engine EventProcessor
}

func NewHTTPHandler(engine EventProcessor) *HTTPHandler {
	return &HTTPHandler{engine: engine}
}

// NewRouter builds the service router.
func NewRouter(engine EventProcessor) *chi.Mux {
	h := NewHTTPHandler(engine)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	r.Post("/webhook", h.handleWebhook)
	r.Get("/health", h.handleHealth)
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	return r
}

// handleWebhook godoc
//
//	@Summary		Process a media-library webhook event
//	@Description	Receives a Jellyfin "item added" payload, decides whether a Telegram notification is due, and sends it. The response body is a short human-readable outcome; suppressions and errors are reported with status 200 so the webhook sender never retries.
//	@Tags			webhook
//	@Accept			json
//	@Produce		plain
//	@Param			payload	body		domain.WebhookEvent	true	"Jellyfin webhook payload"
//	@Success		200		{string}	string				"Outcome text (delivered, suppressed with reason, or error)"
//	@Router			/webhook [post]
func (h *HTTPHandler) handleWebhook(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.respondText(w, "Error: "+err.Error())
		return
	}

	var event domain.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		log.WithField("error", err).Warn("received unparseable webhook payload")
		h.respondText(w, "Error: "+err.Error())
		return
	}

	result, err := h.engine.Process(r.Context(), &event)
	if err != nil {
		log.WithFields(log.Fields{
			"itemType": event.ItemType,
			"name":     event.Name,
			"error":    err,
		}).Error("failed to process webhook event")
		h.respondText(w, err.Error())
		return
	}

	log.WithFields(log.Fields{
		"itemType":  event.ItemType,
		"name":      event.Name,
		"delivered": result.Delivered,
	}).Info("webhook event processed")
	h.respondText(w, result.Message)
}

// handleHealth godoc
//
//	@Summary	Health check
//	@Tags		health
//	@Success	200
//	@Router		/health [get]
func (h *HTTPHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (h *HTTPHandler) respondText(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(message)); err != nil {
		log.WithField("error", err).Error("failed to write webhook response")
	}
}
