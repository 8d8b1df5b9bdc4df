package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"resbook/internal/bookings/service"
	"resbook/pkg/config"
	apperrors "resbook/pkg/errors"
	resphttp "resbook/pkg/http"
	"resbook/pkg/middleware"
	"resbook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type BookingHandler struct {
	cfg     *config.Config
	service service.BookingService
}

func NewBookingHandler(cfg *config.Config, svc service.BookingService) *BookingHandler {
	return &BookingHandler{cfg: cfg, service: svc}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.HandlerFunc(http.MethodPost, "/api/v1/bookings", h.Create)
	router.HandlerFunc(http.MethodGet, "/api/v1/bookings", h.List)
	router.Handle(http.MethodGet, "/api/v1/bookings/id/:id", h.GetByID)
	router.Handle(http.MethodPost, "/api/v1/bookings/id/:id/cancel", h.Cancel)
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		resphttp.WriteError(w, apperrors.Unauthorized("Missing principal"))
		return
	}

	var req model.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		resphttp.WriteError(w, apperrors.InvalidInput("Invalid request body"))
		return
	}

	booking, err := h.service.Create(r.Context(), &req, principal)
	if err != nil {
		resphttp.WriteError(w, err)
		return
	}

	resphttp.WriteCreated(w, booking)
}

func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		resphttp.WriteError(w, apperrors.Unauthorized("Missing principal"))
		return
	}

	booking, err := h.service.GetByID(r.Context(), params.ByName("id"), principal)
	if err != nil {
		resphttp.WriteError(w, err)
		return
	}

	resphttp.WriteSuccess(w, booking)
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		resphttp.WriteError(w, apperrors.Unauthorized("Missing principal"))
		return
	}

	booking, err := h.service.Cancel(r.Context(), params.ByName("id"), principal)
	if err != nil {
		resphttp.WriteError(w, err)
		return
	}

	resphttp.WriteSuccess(w, booking)
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		resphttp.WriteError(w, apperrors.Unauthorized("Missing principal"))
		return
	}

	filter, err := parseFilter(r)
	if err != nil {
		resphttp.WriteError(w, err)
		return
	}

	limit, offset, err := resphttp.ExtractLimitOffset(r)
	if err != nil {
		resphttp.WriteError(w, err)
		return
	}

	bookings, total, err := h.service.List(r.Context(), filter, limit, offset, principal)
	if err != nil {
		resphttp.WriteError(w, err)
		return
	}

	if bookings == nil {
		bookings = []*model.Booking{}
	}
	resphttp.WritePaginated(w, bookings, total, limit, offset)
}

// parseFilter reads the optional listing filters from the query string.
// Absent parameters impose no constraint.
func parseFilter(r *http.Request) (model.BookingFilter, error) {
	query := r.URL.Query()

	filter := model.BookingFilter{
		ResourceID: query.Get("resource_id"),
		OwnerID:    query.Get("owner_id"),
	}

	if s := query.Get("status"); s != "" {
		status := model.BookingStatus(s)
		if status != model.StatusActive && status != model.StatusCanceled {
			return model.BookingFilter{}, apperrors.InvalidInput("invalid status parameter: " + s)
		}
		filter.Status = status
	}

	if s := query.Get("date_from"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return model.BookingFilter{}, apperrors.InvalidInput("invalid date_from parameter, expected RFC3339: " + s)
		}
		filter.StartFrom = &t
	}

	if s := query.Get("date_to"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return model.BookingFilter{}, apperrors.InvalidInput("invalid date_to parameter, expected RFC3339: " + s)
		}
		filter.EndUntil = &t
	}

	if filter.StartFrom != nil && filter.EndUntil != nil && filter.EndUntil.Before(*filter.StartFrom) {
		return model.BookingFilter{}, apperrors.InvalidInput("date_to must not be before date_from")
	}

	return filter, nil
}
