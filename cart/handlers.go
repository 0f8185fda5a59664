package cart

import (
	"encoding/json"
	"log"
	"net/http"

	"tavolo/utils"

	"github.com/julienschmidt/httprouter"
)

// Handlers exposes the guest cart over HTTP. The guest is identified by an
// X-Guest-Token header; a token is minted on first use and echoed back so the
// client can keep it for the session.
type Handlers struct {
	Store *SessionStore
}

func NewHandlers(store *SessionStore) *Handlers {
	return &Handlers{Store: store}
}

func (h *Handlers) guestToken(w http.ResponseWriter, r *http.Request) string {
	token := r.Header.Get("X-Guest-Token")
	if token == "" {
		token = utils.GenerateRandomString(24)
	}
	w.Header().Set("X-Guest-Token", token)
	return token
}

type cartView struct {
	Lines     interface{} `json:"lines"`
	Subtotal  int64       `json:"subtotal"`
	ItemCount int         `json:"itemCount"`
}

func (h *Handlers) respondCart(w http.ResponseWriter, c *Cart) {
	utils.RespondWithJSON(w, http.StatusOK, cartView{
		Lines:     c.Lines(),
		Subtotal:  c.Subtotal(),
		ItemCount: c.ItemCount(),
	})
}

// POST /api/cart/items
func (h *Handlers) AddItem(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		MenuItemID string `json:"menuItemId"`
		Name       string `json:"name"`
		UnitPrice  int64  `json:"unitPrice"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Println("AddItem decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if body.MenuItemID == "" || body.Name == "" || body.UnitPrice < 0 {
		http.Error(w, "Missing or invalid fields", http.StatusBadRequest)
		return
	}

	c := h.Store.Get(h.guestToken(w, r))
	c.AddItem(body.MenuItemID, body.Name, body.UnitPrice)
	h.respondCart(w, c)
}

// GET /api/cart
func (h *Handlers) GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	c := h.Store.Get(h.guestToken(w, r))
	h.respondCart(w, c)
}

// PUT /api/cart/items/:lineid/quantity
func (h *Handlers) SetQuantity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	c := h.Store.Get(h.guestToken(w, r))
	c.SetQuantity(ps.ByName("lineid"), body.Quantity)
	h.respondCart(w, c)
}

// PUT /api/cart/items/:lineid/notes
func (h *Handlers) SetNotes(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var body struct {
		Notes string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	c := h.Store.Get(h.guestToken(w, r))
	c.SetNotes(ps.ByName("lineid"), body.Notes)
	h.respondCart(w, c)
}

// DELETE /api/cart/items/:lineid
func (h *Handlers) RemoveItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	c := h.Store.Get(h.guestToken(w, r))
	c.RemoveItem(ps.ByName("lineid"))
	h.respondCart(w, c)
}

// DELETE /api/cart
func (h *Handlers) ClearCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	c := h.Store.Get(h.guestToken(w, r))
	c.Clear()
	h.respondCart(w, c)
}
