package customer

import (
	"encoding/json"
	"net/http"

	"github.com/frahmantamala/payment-service/internal/transport"
	"github.com/go-chi/chi"
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

// RegisterCustomer handles POST /customer
func (h *Handler) RegisterCustomer(w http.ResponseWriter, r *http.Request) {
	var dto CustomerDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("RegisterCustomer: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.Service.Register(&dto)
	if err != nil {
		h.Logger.Error("RegisterCustomer: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("RegisterCustomer: customer created", "customer_id", c.ID)
	h.WriteContent(w, http.StatusCreated, c)
}

// UpdateCustomer handles PUT /customer/{id}
func (h *Handler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.WriteError(w, http.StatusBadRequest, "id is required")
		return
	}

	var dto CustomerDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateCustomer: invalid request body", "error", err, "customer_id", id)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.Service.Update(id, &dto)
	if err != nil {
		h.Logger.Error("UpdateCustomer: service error", "error", err, "customer_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteContent(w, http.StatusOK, c)
}

// DeleteCustomer handles DELETE /customer/{id}
func (h *Handler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.WriteError(w, http.StatusBadRequest, "id is required")
		return
	}

	if err := h.Service.Delete(id); err != nil {
		h.Logger.Error("DeleteCustomer: service error", "error", err, "customer_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteContent(w, http.StatusOK, map[string]string{"id": id})
}

// GetCustomer handles GET /customer/{id}
func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.WriteError(w, http.StatusBadRequest, "id is required")
		return
	}

	c, err := h.Service.Get(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteContent(w, http.StatusOK, c)
}
