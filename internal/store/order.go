package store

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

var orderMigrations = []string{
	`CREATE TABLE IF NOT EXISTS orders (
		id INTEGER PRIMARY KEY,
		user_id INTEGER NOT NULL,
		offer_id INTEGER NOT NULL,
		quantity INTEGER NOT NULL CHECK (quantity > 0),
		status TEXT NOT NULL CHECK (status IN ('draft', 'paid', 'canceled')),
		created_at INTEGER NOT NULL,
		FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE,
		FOREIGN KEY(offer_id) REFERENCES offers(id) ON DELETE RESTRICT
	);`,
	`CREATE INDEX IF NOT EXISTS idx_orders_user_status ON orders(user_id, status);`,
	`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status);`,
}

type OrderStatus string

const (
	OrderStatusDraft    OrderStatus = "draft"
	OrderStatusPaid     OrderStatus = "paid"
	OrderStatusCanceled OrderStatus = "canceled"
)

var OrderStatuses = []OrderStatus{OrderStatusPaid, OrderStatusDraft, OrderStatusCanceled}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusDraft, OrderStatusPaid, OrderStatusCanceled:
		return true
	default:
		return false
	}
}

type Order struct {
	ID int64

	UserID    int64
	UserEmail string

	Offer *Offer

	Quantity int64
	Status   OrderStatus

	CreatedAt time.Time

	// FinalKey is the e-ticket key, empty until the order is paid
	FinalKey string
}

func (o *Order) TotalCents() int64 {
	return o.Offer.PriceCents * o.Quantity
}

// AddToCart creates a draft order of quantity packs of the given offer.
func (s *Store) AddToCart(ctx context.Context, userID int64, offerID int64, quantity int64) (*Order, error) {
	if quantity < 1 {
		quantity = 1
	}

	var order *Order

	err := s.Tx(ctx, func(conn *sqlite.Conn) error {
		offer, err := getOffer(conn, offerID)
		if err != nil {
			return errors.WithStack(err)
		}

		order, err = insertDraft(conn, userID, offer, quantity)
		if err != nil {
			return errors.WithStack(err)
		}

		return nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return order, nil
}

// SelectOffer replaces the user's cart with a single draft order of the given
// offer, one pack per admitted person.
func (s *Store) SelectOffer(ctx context.Context, userID int64, offerID int64) (*Order, error) {
	var order *Order

	err := s.Tx(ctx, func(conn *sqlite.Conn) error {
		offer, err := getOffer(conn, offerID)
		if err != nil {
			return errors.WithStack(err)
		}

		err = sqlitex.Execute(conn, `UPDATE orders SET status = 'canceled' WHERE user_id = ? AND status = 'draft'`, &sqlitex.ExecOptions{
			Args: []any{userID},
		})
		if err != nil {
			return errors.WithStack(err)
		}

		order, err = insertDraft(conn, userID, offer, offer.Seats)
		if err != nil {
			return errors.WithStack(err)
		}

		return nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return order, nil
}

// CancelOrder cancels a draft order of the user.
func (s *Store) CancelOrder(ctx context.Context, userID int64, orderID int64) error {
	return s.Tx(ctx, func(conn *sqlite.Conn) error {
		err := sqlitex.Execute(conn, `UPDATE orders SET status = 'canceled' WHERE id = ? AND user_id = ? AND status = 'draft'`, &sqlitex.ExecOptions{
			Args: []any{orderID, userID},
		})
		if err != nil {
			return errors.WithStack(err)
		}

		if conn.Changes() == 0 {
			return errors.WithStack(ErrNotFound)
		}

		return nil
	})
}

func (s *Store) GetUserOrder(ctx context.Context, userID int64, orderID int64) (*Order, error) {
	var order *Order

	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		query := fmt.Sprintf(`%s WHERE o.id = ? AND o.user_id = ?`, selectOrders)

		return errors.WithStack(sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{orderID, userID},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				order = &Order{}
				return errors.WithStack(bindOrder(stmt, order))
			},
		}))
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if order == nil {
		return nil, errors.WithStack(ErrNotFound)
	}

	return order, nil
}

func (s *Store) ListUserOrders(ctx context.Context, userID int64, status OrderStatus) ([]*Order, error) {
	orders := make([]*Order, 0)

	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		query := fmt.Sprintf(`%s WHERE o.user_id = ? AND o.status = ? ORDER BY o.id ASC`, selectOrders)

		return errors.WithStack(sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{userID, string(status)},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				order := &Order{}
				if err := bindOrder(stmt, order); err != nil {
					return errors.WithStack(err)
				}

				orders = append(orders, order)
				return nil
			},
		}))
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return orders, nil
}

// ListOrders returns a page of the orders of all users with the given status.
func (s *Store) ListOrders(ctx context.Context, status OrderStatus, page int) (Page[*Order], error) {
	page = normalizePage(page)
	limit, offset := pageBounds(page)

	orders := make([]*Order, 0, limit)

	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		query := fmt.Sprintf(`%s WHERE o.status = ? ORDER BY o.id ASC LIMIT ? OFFSET ?`, selectOrders)

		return errors.WithStack(sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{string(status), limit, offset},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				order := &Order{}
				if err := bindOrder(stmt, order); err != nil {
					return errors.WithStack(err)
				}

				orders = append(orders, order)
				return nil
			},
		}))
	})
	if err != nil {
		return Page[*Order]{}, errors.WithStack(err)
	}

	return newPage(page, orders), nil
}

func insertDraft(conn *sqlite.Conn, userID int64, offer *Offer, quantity int64) (*Order, error) {
	order := &Order{
		UserID:    userID,
		Offer:     offer,
		Quantity:  quantity,
		Status:    OrderStatusDraft,
		CreatedAt: time.Unix(time.Now().UTC().Unix(), 0),
	}

	err := sqlitex.Execute(conn, `INSERT INTO orders (user_id, offer_id, quantity, status, created_at) VALUES (?, ?, ?, ?, ?) RETURNING id`, &sqlitex.ExecOptions{
		Args: []any{userID, offer.ID, quantity, string(OrderStatusDraft), order.CreatedAt.Unix()},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			order.ID = stmt.ColumnInt64(0)
			return nil
		},
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return order, nil
}

var selectOrders = `
	SELECT
		o.id, o.user_id, u.email, o.quantity, o.status, o.created_at,
		COALESCE(p.final_key, ''),
		f.id, f.name, f.seats, f.price_cents, f.created_at
	FROM orders o
	JOIN users u ON u.id = o.user_id
	JOIN offers f ON f.id = o.offer_id
	LEFT JOIN payments p ON p.order_id = o.id AND p.status = 'success'`

func bindOrder(stmt *sqlite.Stmt, order *Order) error {
	order.ID = stmt.ColumnInt64(0)
	order.UserID = stmt.ColumnInt64(1)
	order.UserEmail = stmt.ColumnText(2)
	order.Quantity = stmt.ColumnInt64(3)
	order.Status = OrderStatus(stmt.ColumnText(4))
	order.CreatedAt = time.Unix(stmt.ColumnInt64(5), 0)
	order.FinalKey = stmt.ColumnText(6)

	order.Offer = &Offer{}

	return errors.WithStack(bindOffer(stmt, 7, order.Offer))
}
