package payment

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

// AddPayment handles POST /payment
func (h *Handler) AddPayment(w http.ResponseWriter, r *http.Request) {
	var dto PaymentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("AddPayment: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.Logger.Warn("AddPayment: payload validation failed", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	p, err := h.Service.Pay(&dto)
	if err != nil {
		h.Logger.Error("AddPayment: service error", "error", err, "customer_id", dto.CustomerID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("AddPayment: payment created", "payment_id", p.ID, "customer_id", p.CustomerID)
	h.WriteContent(w, http.StatusCreated, p)
}

// UpdatePayment handles PUT /payment/{id}
func (h *Handler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.WriteError(w, http.StatusBadRequest, "id is required")
		return
	}

	var dto PaymentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdatePayment: invalid request body", "error", err, "payment_id", id)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.Logger.Warn("UpdatePayment: payload validation failed", "error", err, "payment_id", id)
		h.HandleServiceError(w, err)
		return
	}

	p, err := h.Service.Update(id, &dto)
	if err != nil {
		h.Logger.Error("UpdatePayment: service error", "error", err, "payment_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("UpdatePayment: payment updated", "payment_id", p.ID, "version", p.Version)
	h.WriteContent(w, http.StatusOK, p)
}

// CancelPayment handles GET /payment/cancel/{id}. A side-effecting GET is an
// API smell inherited from the original surface; kept for wire
// compatibility.
func (h *Handler) CancelPayment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.WriteError(w, http.StatusBadRequest, "id is required")
		return
	}

	p, err := h.Service.Cancel(id)
	if err != nil {
		h.Logger.Error("CancelPayment: service error", "error", err, "payment_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CancelPayment: payment cancelled", "payment_id", p.ID)
	h.WriteContent(w, http.StatusOK, p)
}

// GetPayment handles GET /payment/{id}
func (h *Handler) GetPayment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.WriteError(w, http.StatusBadRequest, "id is required")
		return
	}

	p, err := h.Service.Get(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteContent(w, http.StatusOK, p)
}

// SearchPayments handles GET /payment/search/{customerId}?page&size
func (h *Handler) SearchPayments(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerId")
	if customerID == "" {
		h.WriteError(w, http.StatusBadRequest, "customerId is required")
		return
	}

	page, size := pageParams(r)

	result, err := h.Service.Search(customerID, page, size)
	if err != nil {
		h.Logger.Error("SearchPayments: service error", "error", err, "customer_id", customerID)
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
