package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"tavolo/cart"
	"tavolo/feed"
	"tavolo/mq"
	"tavolo/utils"

	"github.com/julienschmidt/httprouter"
)

type Handlers struct {
	Service *Service
	Carts   *cart.SessionStore
}

func NewHandlers(service *Service, carts *cart.SessionStore) *Handlers {
	return &Handlers{Service: service, Carts: carts}
}

// POST /api/restaurants/:restaurantid/checkout
// The guest's cart is read from their session token; on success the cart is
// cleared and the created order (with its number) is returned so the client
// can branch into the cash/card confirmation or the iDEAL redirect.
func (h *Handlers) Submit(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	token := r.Header.Get("X-Guest-Token")
	if token == "" {
		http.Error(w, "Missing guest token", http.StatusBadRequest)
		return
	}

	var sub Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		log.Println("Submit decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	sub.RestaurantID = ps.ByName("restaurantid")

	guestCart := h.Carts.Get(token)
	sub.Lines = guestCart.Lines()

	order, err := h.Service.Submit(ctx, sub)
	if err != nil {
		var ve *ValidationError
		var bm *BelowMinimumError
		switch {
		case errors.As(err, &ve):
			utils.RespondWithJSON(w, http.StatusUnprocessableEntity, utils.M{
				"error": ve.Msg,
				"field": ve.Field,
			})
		case errors.As(err, &bm):
			utils.RespondWithJSON(w, http.StatusUnprocessableEntity, utils.M{
				"error":     bm.Error(),
				"minimum":   bm.Minimum,
				"shortfall": bm.Shortfall,
			})
		case errors.Is(err, ErrOrderingDisabled):
			utils.RespondWithError(w, http.StatusForbidden, "Ordering is currently not available")
		default:
			log.Println("Submit error:", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Something went wrong, try again")
		}
		return
	}

	guestCart.Clear()
	mq.Emit(ctx, feed.Created(order))

	utils.RespondWithJSON(w, http.StatusCreated, order)
}
