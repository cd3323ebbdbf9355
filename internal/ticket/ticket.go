package ticket

import (
	"time"

	"github.com/jofrance/billeterie/internal/store"
)

// Ticket is the e-ticket issued for a paid order.
type Ticket struct {
	Reference   string    `json:"reference"`
	OrderID     int64     `json:"orderId"`
	Email       string    `json:"email"`
	Offer       string    `json:"offer"`
	Quantity    int64     `json:"quantity"`
	Persons     int64     `json:"persons"`
	AmountCents int64     `json:"amountCents"`
	FinalKey    string    `json:"finalKey"`
	IssuedAt    time.Time `json:"issuedAt"`
}

func New(payment *store.Payment) Ticket {
	order := payment.Order

	return Ticket{
		Reference:   payment.Reference,
		OrderID:     order.ID,
		Email:       order.UserEmail,
		Offer:       order.Offer.Name,
		Quantity:    order.Quantity,
		Persons:     order.Quantity * order.Offer.Seats,
		AmountCents: payment.AmountCents,
		FinalKey:    payment.FinalKey,
		IssuedAt:    payment.CreatedAt,
	}
}
