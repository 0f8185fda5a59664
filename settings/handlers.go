package settings

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"tavolo/billing"
	"tavolo/models"
	"tavolo/utils"

	"github.com/julienschmidt/httprouter"
)

type Handlers struct {
	Store   *MongoStore
	Billing billing.CapabilityResolver
}

func NewHandlers(store *MongoStore, resolver billing.CapabilityResolver) *Handlers {
	return &Handlers{Store: store, Billing: resolver}
}

// GET /api/restaurants/:restaurantid/ordering-settings
func (h *Handlers) GetSettings(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	restaurantID := ps.ByName("restaurantid")
	if utils.GetRestaurantIDFromRequest(r) != restaurantID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	st, err := h.Store.OrderingSettings(ctx, restaurantID)
	if err != nil {
		log.Println("GetSettings error:", err)
		http.Error(w, "Could not load settings", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, st)
}

// PUT /api/restaurants/:restaurantid/ordering-settings
// The settings screen is gated by the same billing resolver as checkout and
// the dashboard: a plan without ordering cannot enable it here.
func (h *Handlers) UpdateSettings(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	restaurantID := ps.ByName("restaurantid")
	if utils.GetRestaurantIDFromRequest(r) != restaurantID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	included, err := h.Billing.OrderingIncluded(ctx, restaurantID)
	if err != nil {
		log.Println("UpdateSettings billing error:", err)
		http.Error(w, "Could not check plan", http.StatusInternalServerError)
		return
	}
	if !included {
		http.Error(w, "Ordering is not part of your plan", http.StatusPaymentRequired)
		return
	}

	var st models.OrderingSettings
	if err := json.NewDecoder(r.Body).Decode(&st); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	st.RestaurantID = restaurantID

	for _, hr := range st.Hours {
		if hr.Day < 0 || hr.Day > 6 {
			http.Error(w, "Invalid hours table", http.StatusBadRequest)
			return
		}
	}

	if err := h.Store.SaveOrderingSettings(ctx, &st); err != nil {
		log.Println("UpdateSettings save error:", err)
		http.Error(w, "Failed to save settings", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, st)
}
