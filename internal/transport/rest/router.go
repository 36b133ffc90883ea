package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/payment-service/internal/customer"
	"github.com/frahmantamala/payment-service/internal/payment"
	"github.com/frahmantamala/payment-service/internal/paymentmethod"
	"github.com/frahmantamala/payment-service/internal/transport/middleware"
	"github.com/frahmantamala/payment-service/internal/transport/swagger"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, redis RedisPinger, paymentHandler *payment.Handler, paymentMethodHandler *paymentmethod.Handler, customerHandler *customer.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db, redis)

	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Payment routes sit behind a breaker so a struggling database sheds
		// load instead of piling up connections.
		if paymentHandler != nil {
			r.Group(func(pr chi.Router) {
				pr.Use(middleware.CircuitBreaker("payment", logger))

				pr.Route("/payment", func(sr chi.Router) {
					sr.Post("/", paymentHandler.AddPayment)
					sr.Put("/{id}", paymentHandler.UpdatePayment)
					// Cancellation rides a GET to stay compatible with the
					// clients already calling this surface.
					sr.Get("/cancel/{id}", paymentHandler.CancelPayment)
					sr.Get("/search/{customerId}", paymentHandler.SearchPayments)
					sr.Get("/{id}", paymentHandler.GetPayment)
				})
			})
		}

		if paymentMethodHandler != nil {
			r.Route("/payment-method", func(sr chi.Router) {
				sr.Post("/", paymentMethodHandler.AddPaymentMethod)
				sr.Put("/{id}", paymentMethodHandler.UpdatePaymentMethod)
				sr.Delete("/{id}", paymentMethodHandler.DeletePaymentMethod)
				sr.Get("/search/{customerId}", paymentMethodHandler.SearchPaymentMethods)
				sr.Get("/{id}", paymentMethodHandler.GetPaymentMethod)
			})
		}

		if customerHandler != nil {
			r.Route("/customer", func(sr chi.Router) {
				sr.Post("/", customerHandler.RegisterCustomer)
				sr.Put("/{id}", customerHandler.UpdateCustomer)
				sr.Delete("/{id}", customerHandler.DeleteCustomer)
				sr.Get("/{id}", customerHandler.GetCustomer)
			})
		}
	})
}
