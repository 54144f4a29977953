package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/shopcart/shopcart/internal/handler/dto"
	"github.com/shopcart/shopcart/internal/service"
)

// ProductHandler handles HTTP requests for product operations.
type ProductHandler struct {
	svc      *service.ProductService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(svc *service.ProductService, validate *validator.Validate, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		svc:      svc,
		validate: validate,
		logger:   logger,
	}
}

// Create handles POST /products.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", dto.ValidationMessage(err))
		return
	}

	product, err := h.svc.Create(r.Context(), service.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		OwnerID:     req.UserID,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	h.logger.Info("product_created",
		"product_id", product.ID,
		"user_id", product.OwnerID,
	)

	writeJSON(w, http.StatusCreated, dto.ToProductResponse(product))
}

// List handles GET /products.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	products, err := h.svc.List(r.Context(), service.ListProductsInput{
		SortOrder: query.Get("order"),
		Limit:     query.Get("limit"),
		Offset:    query.Get("offset"),
		OwnerID:   query.Get("user_id"),
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToProductListResponse(products))
}

// Get handles GET /products/{productID}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productID")

	product, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToProductResponse(product))
}

// Update handles PATCH /products/{productID}. The user_id in the body
// identifies the requester; ownership is never reassigned.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productID")

	var req dto.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", dto.ValidationMessage(err))
		return
	}

	product, err := h.svc.Update(r.Context(), id, service.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	}, req.UserID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	h.logger.Info("product_updated", "product_id", product.ID)

	writeJSON(w, http.StatusOK, dto.ToProductResponse(product))
}

// Delete handles DELETE /products/{productID}/{userID}.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productID")
	userID := chi.URLParam(r, "userID")

	if _, err := h.svc.Remove(r.Context(), id, userID); err != nil {
		respondError(w, h.logger, err)
		return
	}

	h.logger.Info("product_deleted", "product_id", id)

	w.WriteHeader(http.StatusNoContent)
}
