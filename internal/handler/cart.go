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

// CartHandler handles HTTP requests for cart operations. All routes
// are nested under the owning user.
type CartHandler struct {
	svc      *service.CartService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(svc *service.CartService, validate *validator.Validate, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		svc:      svc,
		validate: validate,
		logger:   logger,
	}
}

// Create handles POST /users/{userID}/carts.
func (h *CartHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req dto.CreateCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", dto.ValidationMessage(err))
		return
	}

	cart, err := h.svc.Create(r.Context(), req.Products, userID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	h.logger.Info("cart_created",
		"cart_id", cart.ID,
		"user_id", cart.UserID,
	)

	writeJSON(w, http.StatusCreated, dto.ToCartResponse(cart))
}

// Get handles GET /users/{userID}/carts/{cartID}.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	cartID := chi.URLParam(r, "cartID")

	cart, err := h.svc.Get(r.Context(), cartID, userID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToCartResponse(cart))
}

// Update handles PATCH /users/{userID}/carts/{cartID}.
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	cartID := chi.URLParam(r, "cartID")

	var req dto.UpdateCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", dto.ValidationMessage(err))
		return
	}

	cart, err := h.svc.Update(r.Context(), cartID, service.UpdateCartInput{
		ProductIDs: req.Products,
		IsActive:   req.IsActive,
	}, userID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	h.logger.Info("cart_updated", "cart_id", cart.ID)

	writeJSON(w, http.StatusOK, dto.ToCartResponse(cart))
}

// Delete handles DELETE /users/{userID}/carts/{cartID}.
func (h *CartHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	cartID := chi.URLParam(r, "cartID")

	if _, err := h.svc.Remove(r.Context(), cartID, userID); err != nil {
		respondError(w, h.logger, err)
		return
	}

	h.logger.Info("cart_deleted", "cart_id", cartID)

	w.WriteHeader(http.StatusNoContent)
}
