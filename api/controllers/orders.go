package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/vuminhngo/techstore-backend/api/middleware"
	"github.com/vuminhngo/techstore-backend/api/responses"
	"github.com/vuminhngo/techstore-backend/api/validators"
	"github.com/vuminhngo/techstore-backend/internal/orders"
	pkgerrors "github.com/vuminhngo/techstore-backend/pkg/errors"
	"github.com/vuminhngo/techstore-backend/pkg/logger"
)

// OrderCreate places a new order for the authenticated user.
func OrderCreate(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input orders.CreateOrderInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input.UserID = middleware.UserIDFromContext(r.Context())

		result, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// OrderListMine returns the authenticated user's order history, newest first.
func OrderListMine(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.ListMine(r.Context(), middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// OrderConfirmReceipt lets the owner confirm delivery of a shipping order.
func OrderConfirmReceipt(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID := strings.TrimSpace(chi.URLParam(r, "orderId"))
		if orderID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "order id is required"))
			return
		}

		order, err := svc.ConfirmReceipt(r.Context(), orderID, middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"order_id": order.ID,
			"status":   order.Status,
		})
	}
}
