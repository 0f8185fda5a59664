package orders

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"tavolo/billing"
	"tavolo/feed"
	"tavolo/models"
	"tavolo/mq"
	"tavolo/utils"

	"github.com/julienschmidt/httprouter"
)

// Handlers is the staff-side dashboard surface. Every route is scoped to the
// authenticated principal's restaurant and gated by the billing resolver.
type Handlers struct {
	Service *Service
	Billing billing.CapabilityResolver
}

func NewHandlers(service *Service, resolver billing.CapabilityResolver) *Handlers {
	return &Handlers{Service: service, Billing: resolver}
}

// scope returns the restaurant id when the caller is authorized for it, or ""
// after writing the error response.
func (h *Handlers) scope(ctx context.Context, w http.ResponseWriter, r *http.Request, ps httprouter.Params) string {
	restaurantID := ps.ByName("restaurantid")
	if utils.GetRestaurantIDFromRequest(r) != restaurantID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return ""
	}

	included, err := h.Billing.OrderingIncluded(ctx, restaurantID)
	if err != nil {
		log.Println("orders billing error:", err)
		http.Error(w, "Could not check plan", http.StatusInternalServerError)
		return ""
	}
	if !included {
		http.Error(w, "Ordering is not part of your plan", http.StatusPaymentRequired)
		return ""
	}
	return restaurantID
}

// GET /api/restaurants/:restaurantid/orders?status=&limit=&skip=
func (h *Handlers) ListOrders(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	restaurantID := h.scope(ctx, w, r, ps)
	if restaurantID == "" {
		return
	}

	status := models.OrderStatus(r.URL.Query().Get("status"))
	if status != "" && !ValidStatus(status) {
		http.Error(w, "Invalid status filter", http.StatusBadRequest)
		return
	}

	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	skip, _ := strconv.ParseInt(r.URL.Query().Get("skip"), 10, 64)
	if skip < 0 {
		skip = 0
	}

	list, err := h.Service.List(ctx, restaurantID, status, limit, skip)
	if err != nil {
		log.Println("ListOrders error:", err)
		http.Error(w, "Could not load orders", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"orders": list})
}

// GET /api/restaurants/:restaurantid/orders/:orderid
func (h *Handlers) GetOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	restaurantID := h.scope(ctx, w, r, ps)
	if restaurantID == "" {
		return
	}

	order, items, err := h.Service.Get(ctx, restaurantID, ps.ByName("orderid"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "Order not found", http.StatusNotFound)
			return
		}
		log.Println("GetOrder error:", err)
		http.Error(w, "Could not load order", http.StatusInternalServerError)
		return
	}

	next, hasNext := NextStatus(order.Status)
	resp := utils.M{
		"order": order,
		"items": items,
	}
	if hasNext {
		// The dashboard renders exactly one "next status" button from this.
		resp["nextStatus"] = next
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// POST /api/restaurants/:restaurantid/orders/:orderid/advance
func (h *Handlers) AdvanceOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	restaurantID := h.scope(ctx, w, r, ps)
	if restaurantID == "" {
		return
	}

	order, err := h.Service.Advance(ctx, restaurantID, ps.ByName("orderid"))
	if err != nil {
		h.respondTransitionError(w, err, "AdvanceOrder")
		return
	}

	mq.Emit(ctx, feed.Updated(order))
	utils.RespondWithJSON(w, http.StatusOK, order)
}

// POST /api/restaurants/:restaurantid/orders/:orderid/cancel
func (h *Handlers) CancelOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	restaurantID := h.scope(ctx, w, r, ps)
	if restaurantID == "" {
		return
	}

	order, err := h.Service.Cancel(ctx, restaurantID, ps.ByName("orderid"))
	if err != nil {
		h.respondTransitionError(w, err, "CancelOrder")
		return
	}

	mq.Emit(ctx, feed.Updated(order))
	utils.RespondWithJSON(w, http.StatusOK, order)
}

func (h *Handlers) respondTransitionError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, "Order not found", http.StatusNotFound)
	case errors.Is(err, ErrTerminal):
		http.Error(w, "Order is already in a terminal status", http.StatusConflict)
	default:
		log.Printf("%s error: %v", op, err)
		http.Error(w, "Could not update order", http.StatusInternalServerError)
	}
}
