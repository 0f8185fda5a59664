package payments

import (
	"context"
	"fmt"
	"os"

	"tavolo/utils"

	"github.com/go-resty/resty/v2"
)

// SessionRequest is what the provider needs to open a redirect checkout.
type SessionRequest struct {
	OrderID     string
	Amount      int64 // euro cents
	Description string
	Email       string
	ReturnURL   string
}

// Session is the provider's handle plus the URL the guest is sent to.
type Session struct {
	ID          string
	RedirectURL string
}

// Provider is the external payment service: create a redirect session, and
// report whether a session has actually been paid. Verification asks the
// provider directly instead of trusting whatever ids the returning guest
// carries.
type Provider interface {
	CreateSession(ctx context.Context, req SessionRequest) (*Session, error)
	SessionPaid(ctx context.Context, sessionID string) (bool, error)
}

// MollieProvider talks to the Mollie payments API (iDEAL redirect flow).
type MollieProvider struct {
	http *resty.Client
}

func NewMollieProvider() *MollieProvider {
	client := resty.New().
		SetBaseURL("https://api.mollie.com/v2").
		SetAuthToken(os.Getenv("MOLLIE_API_KEY"))
	return &MollieProvider{http: client}
}

type molliePayment struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Links  struct {
		Checkout struct {
			Href string `json:"href"`
		} `json:"checkout"`
	} `json:"_links"`
}

func (m *MollieProvider) CreateSession(ctx context.Context, req SessionRequest) (*Session, error) {
	body := map[string]any{
		"amount": map[string]string{
			"currency": "EUR",
			"value":    utils.FormatEuros(req.Amount),
		},
		"description": req.Description,
		"redirectUrl": req.ReturnURL,
		"method":      "ideal",
		"metadata":    map[string]string{"order_id": req.OrderID},
	}
	if req.Email != "" {
		body["billingEmail"] = req.Email
	}

	var payment molliePayment
	resp, err := m.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&payment).
		Post("/payments")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("mollie create payment: %s", resp.Status())
	}

	return &Session{ID: payment.ID, RedirectURL: payment.Links.Checkout.Href}, nil
}

func (m *MollieProvider) SessionPaid(ctx context.Context, sessionID string) (bool, error) {
	var payment molliePayment
	resp, err := m.http.R().
		SetContext(ctx).
		SetResult(&payment).
		Get("/payments/" + sessionID)
	if err != nil {
		return false, err
	}
	if resp.StatusCode() == 404 {
		return false, ErrSessionNotFound
	}
	if resp.IsError() {
		return false, fmt.Errorf("mollie get payment: %s", resp.Status())
	}

	return payment.Status == "paid", nil
}
