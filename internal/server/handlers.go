package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/rfp-shredder/internal/shred"
	"github.com/jonathan/rfp-shredder/internal/types"
)

// ShredFileRequest identifies one document in a shred request.
type ShredFileRequest struct {
	FileID   string `json:"fileId" validate:"required"`
	Filename string `json:"filename" validate:"required"`
	Locator  string `json:"locator" validate:"required"`
}

// ShredRequest represents the request body for /shred
type ShredRequest struct {
	Files         []ShredFileRequest `json:"files" validate:"required,min=1,dive"`
	OrgID         string             `json:"orgId" validate:"required"`
	SchemaVersion string             `json:"schemaVersion,omitempty" validate:"omitempty,oneof=basic extended"`
}

// ShredResponse represents the response for /shred
type ShredResponse struct {
	Success bool `json:"success"`
	types.ExtractionResult
}

// ErrorResponse represents an error response body
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// handleShred runs one shredding batch synchronously
func (s *Server) handleShred(w http.ResponseWriter, r *http.Request) {
	var req ShredRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error(), "")
		return
	}

	if err := s.validate.Struct(req); err != nil {
		ve := toValidationError(err)
		s.errorResponse(w, HTTPStatus(ve), ve.Message, "")
		return
	}

	schema, err := types.ParseSchemaVersion(req.SchemaVersion, s.defaultSchema)
	if err != nil {
		ve := &ErrValidation{Field: "schemaVersion", Message: err.Error()}
		s.errorResponse(w, HTTPStatus(ve), ve.Message, "")
		return
	}

	files := make([]shred.FileDescriptor, len(req.Files))
	for i, f := range req.Files {
		files[i] = shred.FileDescriptor{
			FileID:   f.FileID,
			Filename: f.Filename,
			Locator:  f.Locator,
		}
	}

	result, err := s.runner.Run(r.Context(), shred.BatchRequest{
		Files:  files,
		OrgID:  req.OrgID,
		Schema: schema,
	})
	if err != nil {
		log.Printf("Shredding batch failed for org %s: %v", req.OrgID, err)
		s.errorResponse(w, HTTPStatus(err), "An internal error occurred during document shredding.", err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, ShredResponse{
		Success:          true,
		ExtractionResult: *result,
	})
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message, details string) {
	s.jsonResponse(w, status, ErrorResponse{
		Success: false,
		Error:   message,
		Details: details,
	})
}

// toValidationError flattens a validator error into a single client-facing
// error naming the first failing field.
func toValidationError(err error) *ErrValidation {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ErrValidation{Field: "request", Message: "Invalid request: " + err.Error()}
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return &ErrValidation{Field: fe.Field(), Message: fmt.Sprintf("%s is required", fe.Field())}
	case "min":
		return &ErrValidation{Field: fe.Field(), Message: fmt.Sprintf("%s must contain at least %s entries", fe.Field(), fe.Param())}
	case "oneof":
		return &ErrValidation{Field: fe.Field(), Message: fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())}
	default:
		return &ErrValidation{Field: fe.Field(), Message: fmt.Sprintf("%s is invalid", fe.Field())}
	}
}
