package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"clinid/internal/identifier/models"
	dErrors "clinid/pkg/domain-errors"
)

// errorResponse is the JSON error envelope. Message is localized from
// the failure's message key when one exists.
type errorResponse struct {
	Code       string   `json:"code"`
	Message    string   `json:"message"`
	MessageKey string   `json:"message_key,omitempty"`
	Args       []string `json:"args,omitempty"`
}

type identifierResponse struct {
	Identifier string `json:"identifier"`
}

type typeResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description,omitempty"`
	Format            string    `json:"format,omitempty"`
	FormatDescription string    `json:"format_description,omitempty"`
	Validator         string    `json:"validator,omitempty"`
	LocationBehavior  string    `json:"location_behavior,omitempty"`
	Uniqueness        string    `json:"uniqueness,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

func toTypeResponse(typ *models.IdentifierType) typeResponse {
	return typeResponse{
		ID:                typ.ID.String(),
		Name:              typ.Name,
		Description:       typ.Description,
		Format:            typ.Format,
		FormatDescription: typ.FormatDescription,
		Validator:         typ.Validator,
		LocationBehavior:  string(typ.LocationBehavior),
		Uniqueness:        string(typ.Uniqueness),
		CreatedAt:         typ.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// statusOf maps domain error codes to HTTP statuses.
func statusOf(code dErrors.Code) int {
	switch code {
	case dErrors.CodeValidation:
		return http.StatusUnprocessableEntity
	case dErrors.CodeBadRequest, dErrors.CodeInvalidInput:
		return http.StatusBadRequest
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeConflict:
		return http.StatusConflict
	case dErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
