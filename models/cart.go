package models

// CartLine is one distinct menu item in a guest's cart. Price is captured at
// add-time and never re-read from the catalog.
type CartLine struct {
	LineID     string `json:"lineId"`
	MenuItemID string `json:"menuItemId"`
	Name       string `json:"name"`
	UnitPrice  int64  `json:"unitPrice"` // euro cents
	Quantity   int    `json:"quantity"`
	Notes      string `json:"notes,omitempty"`
}
