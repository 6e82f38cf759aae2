package rest

import (
	"log/slog"
	"net/http"

	"github.com/abgdnv/gocommerce-catalog/internal/service"
	"github.com/abgdnv/gocommerce-catalog/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type CategoryHandler struct {
	service  service.CategoryService
	validate *validator.Validate
	logger   *slog.Logger
}

func NewCategoryHandler(service service.CategoryService, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{
		service:  service,
		validate: newValidator(),
		logger:   logger.With("component", "rest"),
	}
}

func (h *CategoryHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/categories", func(r chi.Router) {
		r.Get("/", h.FindAll)
		r.Post("/", h.Create)
		r.Get("/{id}", h.FindByID)
	})
}

func (h *CategoryHandler) FindAll(w http.ResponseWriter, r *http.Request) {
	page, ok := parsePageRequest(w, r, h.logger)
	if !ok {
		return
	}
	list, err := h.service.FindAll(r.Context(), page)
	if err != nil {
		respondServiceError(w, r, h.logger, err, "Failed to fetch categories")
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, list)
}

func (h *CategoryHandler) FindByID(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger)
	if !ok {
		return
	}
	found, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, h.logger, err, "Failed to retrieve category")
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, found)
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var dto service.CategoryCreateDto
	if !decodeAndValidate(w, r, h.logger, h.validate, &dto) {
		return
	}
	created, err := h.service.Create(r.Context(), dto)
	if err != nil {
		respondServiceError(w, r, h.logger, err, "Failed to create category")
		return
	}
	h.logger.InfoContext(r.Context(), "Category created successfully", "ID", created.ID, "Name", created.Name)
	web.RespondJSON(w, h.logger, http.StatusCreated, created)
}
