package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/eventhub/internal/api/shared"
	"github.com/phrazzld/eventhub/internal/platform/logger"
)

// ChannelRegistry is the subset of the event registry used by ChannelHandler.
type ChannelRegistry interface {
	Emit(ctx context.Context, channel string, args ...any) (bool, error)
	ListenerCount(channel string) int
	ChannelNames() []string
}

// EmitRequest is the request body for emitting on a channel. At most 32
// arguments are accepted.
type EmitRequest struct {
	Args []any `json:"args" validate:"max=32"`
}

// EmitResponse reports the outcome of an emit.
type EmitResponse struct {
	Name    string `json:"name"`
	Invoked bool   `json:"invoked"`
}

// ChannelResponse describes a single channel.
type ChannelResponse struct {
	Name          string `json:"name"`
	ListenerCount int    `json:"listener_count"`
}

// ChannelListResponse lists every channel with listeners.
type ChannelListResponse struct {
	Channels []ChannelResponse `json:"channels"`
}

// ChannelHandler handles channel-related HTTP requests.
type ChannelHandler struct {
	registry  ChannelRegistry
	validator *validator.Validate
	logger    *slog.Logger
}

// NewChannelHandler creates a new ChannelHandler.
func NewChannelHandler(registry ChannelRegistry, logger *slog.Logger) *ChannelHandler {
	return &ChannelHandler{
		registry:  registry,
		validator: validator.New(),
		logger:    logger.With("component", "channel_handler"),
	}
}

// ListChannels handles GET /api/channels requests.
func (h *ChannelHandler) ListChannels(w http.ResponseWriter, r *http.Request) {
	names := h.registry.ChannelNames()
	resp := ChannelListResponse{Channels: make([]ChannelResponse, 0, len(names))}
	for _, name := range names {
		resp.Channels = append(resp.Channels, ChannelResponse{
			Name:          name,
			ListenerCount: h.registry.ListenerCount(name),
		})
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// GetListenerCount handles GET /api/channels/{name}/listeners requests.
func (h *ChannelHandler) GetListenerCount(w http.ResponseWriter, r *http.Request) {
	name, ok := h.channelName(w, r)
	if !ok {
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ChannelResponse{
		Name:          name,
		ListenerCount: h.registry.ListenerCount(name),
	})
}

// Emit handles POST /api/channels/{name}/emit requests.
func (h *ChannelHandler) Emit(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	name, ok := h.channelName(w, r)
	if !ok {
		return
	}

	var req EmitRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	invoked, err := h.registry.Emit(r.Context(), name, req.Args...)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("event emitted over http", "channel", name, "invoked", invoked, "arg_count", len(req.Args))
	shared.RespondWithJSON(w, r, http.StatusOK, EmitResponse{Name: name, Invoked: invoked})
}

// channelName extracts and validates the {name} path parameter, writing a
// 400 response when it is invalid.
func (h *ChannelHandler) channelName(w http.ResponseWriter, r *http.Request) (string, bool) {
	name := chi.URLParam(r, "name")
	if err := h.validator.Var(name, "required,max=256"); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid channel name")
		return "", false
	}
	return name, true
}

// Routes registers the channel endpoints on r.
func (h *ChannelHandler) Routes(r chi.Router) {
	r.Get("/channels", h.ListChannels)
	r.Get("/channels/{name}/listeners", h.GetListenerCount)
	r.Post("/channels/{name}/emit", h.Emit)
}
