// Package handler is the thin HTTP layer over the identifier service.
// It parses requests, delegates, and translates domain errors into the
// JSON envelope; no business logic lives here.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"clinid/internal/identifier/models"
	"clinid/internal/identifier/service"
	"clinid/internal/message"
	id "clinid/pkg/domain"
	dErrors "clinid/pkg/domain-errors"
)

// Handler serves the identifier endpoints.
type Handler struct {
	svc      *service.IdentifierService
	renderer *message.Renderer
	logger   *slog.Logger
}

// New constructs the handler.
func New(svc *service.IdentifierService, renderer *message.Renderer, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, renderer: renderer, logger: logger}
}

// Register wires the public endpoints onto r.
func (h *Handler) Register(r chi.Router) {
	r.Post("/identifiers/validate", h.handleValidate)
	r.Post("/identifiers/check-format", h.handleCheckFormat)
	r.Post("/identifiers", h.handleSave)
	r.Get("/identifier-types", h.handleListTypes)
	r.Get("/identifier-types/{typeID}", h.handleGetType)
}

// RegisterAdmin wires the catalog-management endpoints onto r; callers
// attach the admin middleware.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Post("/admin/identifier-types", h.handleCreateType)
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	pi, err := h.buildIdentifier(r, &req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.svc.ValidateIdentifier(r.Context(), pi); err != nil {
		h.writeError(w, r, err)
		return
	}
	// Return the possibly-normalized identifier so callers can persist
	// the canonical form.
	writeJSON(w, http.StatusOK, identifierResponse{Identifier: pi.Identifier})
}

func (h *Handler) handleCheckFormat(w http.ResponseWriter, r *http.Request) {
	var req checkFormatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	typeID, err := id.ParseIdentifierTypeID(req.IdentifierTypeID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.svc.ValidateIdentifierString(r.Context(), req.Identifier, typeID); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if req.PatientID == "" {
		h.writeError(w, r, dErrors.New(dErrors.CodeBadRequest, "patient_id is required"))
		return
	}

	pi, err := h.buildIdentifier(r, &req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.svc.SaveIdentifier(r.Context(), pi); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, identifierResponse{Identifier: pi.Identifier})
}

func (h *Handler) handleListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.svc.ListIdentifierTypes(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	out := make([]typeResponse, 0, len(types))
	for _, typ := range types {
		out = append(out, toTypeResponse(typ))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleGetType(w http.ResponseWriter, r *http.Request) {
	typeID, err := id.ParseIdentifierTypeID(chi.URLParam(r, "typeID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	typ, err := h.svc.GetIdentifierType(r.Context(), typeID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTypeResponse(typ))
}

func (h *Handler) handleCreateType(w http.ResponseWriter, r *http.Request) {
	var req createTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	typ, err := req.toType()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	typ.ID = id.IdentifierTypeID(uuid.New())

	created, err := h.svc.CreateIdentifierType(r.Context(), typ)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTypeResponse(created))
}

// buildIdentifier resolves the identifier type and assembles the
// aggregate from the request.
func (h *Handler) buildIdentifier(r *http.Request, req *validateRequest) (*models.PatientIdentifier, error) {
	typeID, err := id.ParseIdentifierTypeID(req.IdentifierTypeID)
	if err != nil {
		return nil, err
	}
	typ, err := h.svc.GetIdentifierType(r.Context(), typeID)
	if err != nil {
		return nil, err
	}
	return req.toIdentifier(typ)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := dErrors.CodeOf(err)
	status := statusOf(code)

	if status == http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	}

	resp := errorResponse{Code: string(code), Message: err.Error()}
	if key := dErrors.KeyOf(err); key != "" {
		resp.MessageKey = key
		resp.Args = dErrors.ArgsOf(err)
		resp.Message = h.renderer.Render(r.Header.Get("Accept-Language"), key, resp.Args...)
	}
	writeJSON(w, status, resp)
}
