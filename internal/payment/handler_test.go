package payment_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/go-chi/chi"

	apperrors "github.com/frahmantamala/payment-service/internal"
	paymentmodel "github.com/frahmantamala/payment-service/internal/core/datamodel/payment"
	"github.com/frahmantamala/payment-service/internal/payment"
)

// Mock service for handler testing
type mockPaymentService struct {
	payResult    *paymentmodel.Payment
	payError     error
	updateResult *paymentmodel.Payment
	updateError  error
	cancelResult *paymentmodel.Payment
	cancelError  error
	getResult    *paymentmodel.Payment
	getError     error
	searchResult *payment.Page
	searchError  error

	lastPage int
	lastSize int
}

func (m *mockPaymentService) Pay(dto *payment.PaymentDTO) (*paymentmodel.Payment, error) {
	return m.payResult, m.payError
}

func (m *mockPaymentService) Update(id string, dto *payment.PaymentDTO) (*paymentmodel.Payment, error) {
	return m.updateResult, m.updateError
}

func (m *mockPaymentService) Cancel(id string) (*paymentmodel.Payment, error) {
	return m.cancelResult, m.cancelError
}

func (m *mockPaymentService) Get(id string) (*paymentmodel.Payment, error) {
	return m.getResult, m.getError
}

func (m *mockPaymentService) Search(customerID string, page, size int) (*payment.Page, error) {
	m.lastPage = page
	m.lastSize = size
	return m.searchResult, m.searchError
}

var _ = Describe("PaymentHandler", func() {
	var (
		handler *payment.Handler
		mockSvc *mockPaymentService
		router  *chi.Mux
	)

	BeforeEach(func() {
		mockSvc = &mockPaymentService{}
		handler = payment.NewHandler(mockSvc)

		router = chi.NewRouter()
		router.Post("/payment", handler.AddPayment)
		router.Put("/payment/{id}", handler.UpdatePayment)
		router.Get("/payment/cancel/{id}", handler.CancelPayment)
		router.Get("/payment/search/{customerId}", handler.SearchPayments)
		router.Get("/payment/{id}", handler.GetPayment)
	})

	Describe("AddPayment", func() {
		It("should return 201 with the envelope on success", func() {
			mockSvc.payResult = &paymentmodel.Payment{
				ID:         "pay-1",
				CustomerID: "cust-1",
				Amount:     320.0,
				Status:     paymentmodel.StatusPending,
			}

			body := bytes.NewBufferString(`{"customerId":"cust-1","amount":320.0,"paymentMethodId":"pm-1"}`)
			req := httptest.NewRequest(http.MethodPost, "/payment", body)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusCreated))

			var resp struct {
				Content    paymentmodel.Payment `json:"content"`
				StatusCode int                  `json:"statusCode"`
			}
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.StatusCode).To(Equal(http.StatusCreated))
			Expect(resp.Content.ID).To(Equal("pay-1"))
			Expect(resp.Content.Status).To(Equal(paymentmodel.StatusPending))
		})

		It("should return 400 for a payload missing required fields", func() {
			body := bytes.NewBufferString(`{"amount":320.0}`)
			req := httptest.NewRequest(http.MethodPost, "/payment", body)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))

			var resp struct {
				ErrorCode   int    `json:"errorCode"`
				Description string `json:"description"`
			}
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.ErrorCode).To(Equal(http.StatusBadRequest))
			Expect(resp.Description).To(ContainSubstring("Payload misses information"))
		})

		It("should return 400 for malformed JSON", func() {
			req := httptest.NewRequest(http.MethodPost, "/payment", bytes.NewBufferString(`{not-json`))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("should map a validation failure onto the error envelope", func() {
			mockSvc.payError = apperrors.NewValidationError("Minimum amount 0.5 is required", apperrors.ErrCodeInvalidAmount)

			body := bytes.NewBufferString(`{"customerId":"cust-1","amount":0.2,"paymentMethodId":"pm-1"}`)
			req := httptest.NewRequest(http.MethodPost, "/payment", body)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))

			var resp struct {
				ErrorCode   int    `json:"errorCode"`
				Description string `json:"description"`
			}
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.ErrorCode).To(Equal(http.StatusBadRequest))
			Expect(resp.Description).To(Equal("Minimum amount 0.5 is required"))
		})
	})

	Describe("UpdatePayment", func() {
		It("should return 409 on a concurrent modification", func() {
			mockSvc.updateError = apperrors.ErrConcurrencyConflict

			body := bytes.NewBufferString(`{"customerId":"cust-1","amount":250.0,"paymentMethodId":"pm-1"}`)
			req := httptest.NewRequest(http.MethodPut, "/payment/pay-1", body)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusConflict))
		})

		It("should return 404 for a missing payment", func() {
			mockSvc.updateError = apperrors.ErrPaymentNotFound

			body := bytes.NewBufferString(`{"customerId":"cust-1","amount":250.0,"paymentMethodId":"pm-1"}`)
			req := httptest.NewRequest(http.MethodPut, "/payment/missing", body)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusNotFound))

			var resp struct {
				Description string `json:"description"`
			}
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Description).To(Equal("Payment not found"))
		})
	})

	Describe("CancelPayment", func() {
		It("should cancel via GET and return the envelope", func() {
			mockSvc.cancelResult = &paymentmodel.Payment{
				ID:     "pay-1",
				Status: paymentmodel.StatusCancelled,
			}

			req := httptest.NewRequest(http.MethodGet, "/payment/cancel/pay-1", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))

			var resp struct {
				Content paymentmodel.Payment `json:"content"`
			}
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Content.Status).To(Equal(paymentmodel.StatusCancelled))
		})

		It("should return 400 when the payment is no longer pending", func() {
			mockSvc.cancelError = apperrors.NewValidationError("Payment cannot be updated", apperrors.ErrCodeInvalidState)

			req := httptest.NewRequest(http.MethodGet, "/payment/cancel/pay-1", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("SearchPayments", func() {
		It("should return the pager shape without an envelope", func() {
			mockSvc.searchResult = &payment.Page{
				Content:      []*paymentmodel.Payment{{ID: "pay-1"}},
				CurrentPage:  0,
				TotalRecords: 1,
				TotalPages:   1,
			}

			req := httptest.NewRequest(http.MethodGet, "/payment/search/cust-1", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))

			var resp map[string]json.RawMessage
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp).To(HaveKey("content"))
			Expect(resp).To(HaveKey("currentPage"))
			Expect(resp).To(HaveKey("totalRecords"))
			Expect(resp).To(HaveKey("totalPages"))
			Expect(resp).NotTo(HaveKey("statusCode"))
		})

		It("should default and cap paging parameters", func() {
			mockSvc.searchResult = &payment.Page{Content: []*paymentmodel.Payment{}}

			req := httptest.NewRequest(http.MethodGet, "/payment/search/cust-1?page=-2&size=500", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(mockSvc.lastPage).To(Equal(0))
			Expect(mockSvc.lastSize).To(Equal(10))
		})
	})

	Describe("GetPayment", func() {
		It("should return the payment in the envelope", func() {
			mockSvc.getResult = &paymentmodel.Payment{ID: "pay-1", Version: 2}

			req := httptest.NewRequest(http.MethodGet, "/payment/pay-1", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))

			var resp struct {
				Content paymentmodel.Payment `json:"content"`
			}
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Content.Version).To(Equal(2))
		})
	})
})
