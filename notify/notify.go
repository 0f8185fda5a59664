package notify

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
	"time"

	"tavolo/db"
	"tavolo/models"
	"tavolo/utils"

	"go.mongodb.org/mongo-driver/bson"
)

// Mailer sends order mails over SMTP. Config comes from the environment; an
// empty host disables sending, which keeps local development quiet.
type Mailer struct {
	host string
	port string
	from string
	pass string
}

func NewMailer() *Mailer {
	return &Mailer{
		host: os.Getenv("SMTP_HOST"),
		port: os.Getenv("SMTP_PORT"),
		from: os.Getenv("SMTP_FROM"),
		pass: os.Getenv("SMTP_PASS"),
	}
}

func (m *Mailer) send(to, subject, body string) error {
	if m.host == "" {
		log.Printf("[notify] SMTP disabled, skipping mail to %s (%s)", to, subject)
		return nil
	}
	msg := []byte("To: " + to + "\r\nSubject: " + subject + "\r\n\r\n" + body)
	auth := smtp.PlainAuth("", m.from, m.pass, m.host)
	return smtp.SendMail(m.host+":"+m.port, auth, m.from, []string{to}, msg)
}

// OrderPaid looks up the order, its items and the restaurant owner, then
// sends the customer confirmation and the owner alert. Called from a
// goroutine after payment confirmation; every failure is logged and none is
// surfaced to the guest.
func (m *Mailer) OrderPaid(orderID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var order models.Order
	if err := db.OrdersCollection.FindOne(ctx, bson.M{"orderid": orderID}).Decode(&order); err != nil {
		log.Println("[notify] order lookup:", err)
		return
	}

	cursor, err := db.OrderItemsCollection.Find(ctx, bson.M{"orderid": orderID})
	if err != nil {
		log.Println("[notify] items lookup:", err)
		return
	}
	var items []models.OrderItem
	if err := cursor.All(ctx, &items); err != nil {
		log.Println("[notify] items decode:", err)
		return
	}

	var rest models.Restaurant
	if err := db.RestaurantsCollection.FindOne(ctx, bson.M{"restaurantid": order.RestaurantID}).Decode(&rest); err != nil {
		log.Println("[notify] restaurant lookup:", err)
		return
	}

	summary := itemSummary(items)

	if order.Email != "" {
		body := fmt.Sprintf(
			"Thank you %s!\n\nYour order #%d at %s is confirmed.\n\n%s\nTotal: EUR %s\nEstimated time: %d minutes\n",
			order.Name, order.Number, rest.Name, summary,
			utils.FormatEuros(order.Total), order.EstMinutes)
		if err := m.send(order.Email, fmt.Sprintf("Order #%d confirmed", order.Number), body); err != nil {
			log.Println("[notify] customer mail:", err)
		}
	}

	if rest.OwnerEmail != "" {
		body := fmt.Sprintf(
			"New paid order #%d (%s).\n\nCustomer: %s (%s)\n%s\nTotal: EUR %s\n",
			order.Number, order.Fulfillment, order.Name, order.Phone,
			summary, utils.FormatEuros(order.Total))
		if err := m.send(rest.OwnerEmail, fmt.Sprintf("New order #%d", order.Number), body); err != nil {
			log.Println("[notify] owner mail:", err)
		}
	}
}

func itemSummary(items []models.OrderItem) string {
	var b strings.Builder
	for _, it := range items {
		fmt.Fprintf(&b, "%dx %s (EUR %s)\n", it.Quantity, it.Name, utils.FormatEuros(it.UnitPrice))
		if it.Notes != "" {
			fmt.Fprintf(&b, "   note: %s\n", it.Notes)
		}
	}
	return b.String()
}
