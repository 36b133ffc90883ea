package paymentmethod

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/frahmantamala/payment-service/internal/transport"
	"github.com/go-chi/chi"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(nil),
		Service:     service,
	}
}

// AddPaymentMethod handles POST /payment-method
func (h *Handler) AddPaymentMethod(w http.ResponseWriter, r *http.Request) {
	var dto PaymentMethodDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("AddPaymentMethod: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	pm, err := h.Service.Add(&dto)
	if err != nil {
		h.Logger.Error("AddPaymentMethod: service error", "error", err, "customer_id", dto.CustomerID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("AddPaymentMethod: payment method created", "payment_method_id", pm.ID, "customer_id", pm.CustomerID)
	h.WriteContent(w, http.StatusCreated, pm)
}

// UpdatePaymentMethod handles PUT /payment-method/{id}
func (h *Handler) UpdatePaymentMethod(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.WriteError(w, http.StatusBadRequest, "id is required")
		return
	}

	var dto PaymentMethodDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdatePaymentMethod: invalid request body", "error", err, "payment_method_id", id)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	pm, err := h.Service.Update(id, &dto)
	if err != nil {
		h.Logger.Error("UpdatePaymentMethod: service error", "error", err, "payment_method_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteContent(w, http.StatusOK, pm)
}

// GetPaymentMethod handles GET /payment-method/{id}
func (h *Handler) GetPaymentMethod(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.WriteError(w, http.StatusBadRequest, "id is required")
		return
	}

	pm, err := h.Service.Get(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteContent(w, http.StatusOK, pm)
}

// DeletePaymentMethod handles DELETE /payment-method/{id}
func (h *Handler) DeletePaymentMethod(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.WriteError(w, http.StatusBadRequest, "id is required")
		return
	}

	if err := h.Service.Delete(id); err != nil {
		h.Logger.Error("DeletePaymentMethod: service error", "error", err, "payment_method_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteContent(w, http.StatusOK, map[string]string{"id": id})
}

// SearchPaymentMethods handles GET /payment-method/search/{customerId}?page&size
func (h *Handler) SearchPaymentMethods(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerId")
	if customerID == "" {
		h.WriteError(w, http.StatusBadRequest, "customerId is required")
		return
	}

	page, size := pageParams(r)

	result, err := h.Service.Search(customerID, page, size)
	if err != nil {
		h.Logger.Error("SearchPaymentMethods: service error", "error", err, "customer_id", customerID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

func pageParams(r *http.Request) (page, size int) {
	size = defaultPageSize

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p >= 0 {
			page = p
		}
	}
	if sizeStr := r.URL.Query().Get("size"); sizeStr != "" {
		if s, err := strconv.Atoi(sizeStr); err == nil && s > 0 && s <= maxPageSize {
			size = s
		}
	}
	return page, size
}
