// AngelaMos | 2026
// handler.go

package confirmation

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/yembez/quittancesimple/internal/core"
	"github.com/yembez/quittancesimple/internal/notify"
)

type ResendRequest struct {
	SessionID string `json:"session_id" validate:"required,max=255"`
	Email     string `json:"email"      validate:"omitempty,email"`
}

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/checkout", func(r chi.Router) {
		r.Get("/confirmation", h.Confirm)
		r.Post("/resend", h.Resend)
	})
	r.Get("/session-markers/{sessionID}", h.GetSessionMarker)
}

// Confirm handles the success-return redirect from checkout. The state in
// the response is always terminal; there is no retry of resolution here.
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	viaSuccessReturn := r.URL.Query().Get("success") == "true"

	result, err := h.service.Confirm(r.Context(), sessionID, viaSuccessReturn)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, result)
}

func (h *Handler) Resend(w http.ResponseWriter, r *http.Request) {
	var req ResendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	err := h.service.ResendAccessLink(r.Context(), req.SessionID, req.Email)
	if err != nil {
		if errors.Is(err, notify.ErrResendBusy) {
			core.TooManyRequests(w, "access link already on its way")
			return
		}
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "session")
			return
		}
		if errors.Is(err, notify.ErrSendFailed) {
			core.JSONError(w, core.NewAppError(
				err,
				"could not send the access link, try again shortly",
				http.StatusBadGateway,
				"SEND_FAILED",
			))
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Accepted(w, map[string]string{"status": "sent"})
}

// GetSessionMarker serves the session-continuity hint. It is a cache
// read, never an authorization check.
func (h *Handler) GetSessionMarker(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	marker, err := h.service.SessionMarker(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "session marker")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, marker)
}
