package store

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

var paymentMigrations = []string{
	`CREATE TABLE IF NOT EXISTS payments (
		id INTEGER PRIMARY KEY,
		order_id INTEGER NOT NULL,
		amount_cents INTEGER NOT NULL,
		status TEXT NOT NULL,
		reference TEXT NOT NULL,
		key2 TEXT NOT NULL,
		final_key TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		FOREIGN KEY(order_id) REFERENCES orders(id) ON DELETE CASCADE,
		UNIQUE (reference)
	);`,
	`CREATE INDEX IF NOT EXISTS idx_payments_order ON payments(order_id);`,
}

const PaymentStatusSuccess = "success"

type Payment struct {
	ID int64

	Order *Order

	AmountCents int64
	Status      string
	Reference   string

	Key2     string
	FinalKey string

	CreatedAt time.Time
}

// ConfirmPayment marks the user's draft order as paid and records the payment.
// The e-ticket final key is the concatenation of the user's key1 and key2.
func (s *Store) ConfirmPayment(ctx context.Context, userID int64, orderID int64, key2 string, reference string) (*Payment, error) {
	var payment *Payment

	err := s.Tx(ctx, func(conn *sqlite.Conn) error {
		var (
			order *Order
			key1  string
		)

		query := selectOrders + `
			WHERE o.id = ? AND o.user_id = ? AND o.status = 'draft'`

		err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{orderID, userID},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				order = &Order{}
				return errors.WithStack(bindOrder(stmt, order))
			},
		})
		if err != nil {
			return errors.WithStack(err)
		}

		if order == nil {
			return errors.WithStack(ErrNotFound)
		}

		err = sqlitex.Execute(conn, `SELECT key1 FROM users WHERE id = ?`, &sqlitex.ExecOptions{
			Args: []any{userID},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				key1 = stmt.ColumnText(0)
				return nil
			},
		})
		if err != nil {
			return errors.WithStack(err)
		}

		err = sqlitex.Execute(conn, `UPDATE orders SET status = 'paid' WHERE id = ?`, &sqlitex.ExecOptions{
			Args: []any{order.ID},
		})
		if err != nil {
			return errors.WithStack(err)
		}

		order.Status = OrderStatusPaid
		order.FinalKey = key1 + key2

		payment = &Payment{
			Order:       order,
			AmountCents: order.TotalCents(),
			Status:      PaymentStatusSuccess,
			Reference:   reference,
			Key2:        key2,
			FinalKey:    order.FinalKey,
			CreatedAt:   time.Unix(time.Now().UTC().Unix(), 0),
		}

		err = sqlitex.Execute(conn, `
			INSERT INTO payments
				(order_id, amount_cents, status, reference, key2, final_key, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`,
			&sqlitex.ExecOptions{
				Args: []any{
					order.ID, payment.AmountCents, payment.Status, payment.Reference,
					payment.Key2, payment.FinalKey, payment.CreatedAt.Unix(),
				},
				ResultFunc: func(stmt *sqlite.Stmt) error {
					payment.ID = stmt.ColumnInt64(0)
					return nil
				},
			},
		)
		if err != nil {
			return errors.WithStack(err)
		}

		return nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return payment, nil
}
