package payments

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"tavolo/feed"
	"tavolo/mq"
	"tavolo/utils"

	"github.com/julienschmidt/httprouter"
)

type Handlers struct {
	Service *Service
}

func NewHandlers(service *Service) *Handlers {
	return &Handlers{Service: service}
}

// POST /api/orders/:orderid/payment-session
// Returns the provider redirect URL for a pending iDEAL order. The guest
// blocks on this before being sent away to the bank.
func (h *Handlers) CreateSession(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	sess, err := h.Service.CreateSession(ctx, ps.ByName("orderid"))
	if err != nil {
		switch {
		case errors.Is(err, ErrOrderNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		case errors.Is(err, ErrNotPayable):
			utils.RespondWithError(w, http.StatusConflict, "Order is not awaiting online payment")
		default:
			log.Println("CreateSession error:", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create payment session")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"paymentUrl": sess.RedirectURL,
		"sessionId":  sess.SessionID,
		"orderId":    sess.OrderID,
	})
}

// POST /api/orders/:orderid/verify-payment
// Called when the guest lands back on the return page. A failure here is
// terminal and user-visible: the guest is told to contact the restaurant, and
// nothing is retried automatically.
func (h *Handlers) VerifyPayment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	var body struct {
		SessionID string `json:"sessionId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.SessionID == "" {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	order, err := h.Service.Verify(ctx, ps.ByName("orderid"), body.SessionID)
	if err != nil {
		switch {
		case errors.Is(err, ErrOrderNotFound), errors.Is(err, ErrSessionNotFound), errors.Is(err, ErrMismatch):
			utils.RespondWithJSON(w, http.StatusNotFound, utils.M{
				"verified": false,
				"error":    "We could not verify your payment. Please contact the restaurant.",
			})
		case errors.Is(err, ErrNotPaid):
			utils.RespondWithJSON(w, http.StatusConflict, utils.M{
				"verified": false,
				"error":    "Your payment has not been completed.",
			})
		default:
			log.Println("VerifyPayment error:", err)
			utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{
				"verified": false,
				"error":    "We could not verify your payment. Please contact the restaurant.",
			})
		}
		return
	}

	mq.Emit(ctx, feed.Updated(order))

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"verified": true,
		"order":    order,
	})
}
