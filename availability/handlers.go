package availability

import (
	"context"
	"log"
	"net/http"
	"time"

	"tavolo/models"
	"tavolo/utils"

	"github.com/julienschmidt/httprouter"
)

// SettingsSource supplies a restaurant's ordering configuration.
type SettingsSource interface {
	OrderingSettings(ctx context.Context, restaurantID string) (*models.OrderingSettings, error)
}

type Handlers struct {
	Settings SettingsSource
	Now      func() time.Time
}

func NewHandlers(settings SettingsSource) *Handlers {
	return &Handlers{Settings: settings, Now: time.Now}
}

// GET /api/restaurants/:restaurantid/availability
// Public; the guest menu page polls this to gate its checkout button.
func (h *Handlers) GetAvailability(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	restaurantID := ps.ByName("restaurantid")
	st, err := h.Settings.OrderingSettings(ctx, restaurantID)
	if err != nil {
		log.Println("GetAvailability settings error:", err)
		http.Error(w, "Could not load availability", http.StatusInternalServerError)
		return
	}

	canOrder, res := CanOrder(st, h.Now())
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"canOrder":         canOrder,
		"open":             res.Open,
		"message":          res.Message,
		"fulfillmentTypes": st.FulfillmentTypes,
		"paymentMethods":   st.PaymentMethods,
		"minimumOrder":     st.MinimumOrder,
		"deliveryFee":      st.DeliveryFee,
	})
}
