package rest

import (
	"errors"
	"log/slog"
	"net/http"

	catalogerrors "github.com/abgdnv/gocommerce-catalog/internal/errors"
	"github.com/abgdnv/gocommerce-catalog/internal/service"
	"github.com/abgdnv/gocommerce-catalog/pkg/web"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// newValidator returns a validator that also knows the notblank rule.
func newValidator() *validator.Validate {
	validate := validator.New()
	if err := validate.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return validate
}

// respondServiceError maps NotFound to 404 and InvalidInput to 400. Anything else is a 500.
func respondServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, fallback string) {
	var notFound *catalogerrors.NotFoundError
	if errors.As(err, &notFound) {
		logger.WarnContext(r.Context(), "Entity not found", "entity", notFound.Entity, "ID", notFound.ID)
		web.RespondError(w, logger, http.StatusNotFound, notFound.Error())
		return
	}
	var invalid *catalogerrors.InvalidInputError
	if errors.As(err, &invalid) {
		logger.WarnContext(r.Context(), "Invalid input", "error", invalid)
		if len(invalid.Fields) > 0 {
			web.RespondValidationErrors(w, logger, invalid.Fields)
			return
		}
		web.RespondError(w, logger, http.StatusBadRequest, invalid.Error())
		return
	}
	logger.ErrorContext(r.Context(), fallback, "error", err)
	web.RespondError(w, logger, http.StatusInternalServerError, fallback)
}

// decodeAndValidate reads the JSON body into dst and validates it.
// On failure the response has been written and false is returned.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, logger *slog.Logger, validate *validator.Validate, dst any) bool {
	if err := web.DecodeJSON(r, dst); err != nil {
		logger.WarnContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, logger, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		if fields, ok := web.FieldErrors(err); ok {
			logger.WarnContext(r.Context(), "Validation errors occurred", "errors", fields)
			web.RespondValidationErrors(w, logger, fields)
			return false
		}
		logger.ErrorContext(r.Context(), "Error validating request body", "error", err)
		web.RespondError(w, logger, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// parsePageRequest reads page, size and sort from the query string.
// Absent parameters keep the values of service.DefaultPageRequest.
func parsePageRequest(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (service.PageRequest, bool) {
	req := service.DefaultPageRequest()
	page, ok := web.ParseValidateGte(r, w, logger, "page", 0, req.Page)
	if !ok {
		return service.PageRequest{}, false
	}
	size, ok := web.ParseValidateRange(r, w, logger, "size", 1, service.MaxPageSize, req.Size)
	if !ok {
		return service.PageRequest{}, false
	}
	req.Page, req.Size = page, size
	if sort := r.URL.Query().Get("sort"); sort != "" {
		field, direction, err := service.ParseSort(sort)
		if err != nil {
			web.RespondError(w, logger, http.StatusBadRequest, err.Error())
			return service.PageRequest{}, false
		}
		req.SortField, req.SortDirection = field, direction
	}
	return req, true
}
