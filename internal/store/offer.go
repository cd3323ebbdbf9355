package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

var now = time.Now().UTC().Unix()

var offerMigrations = []string{
	`CREATE TABLE IF NOT EXISTS offers (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		-- Number of persons admitted with one pack of this offer
		seats INTEGER NOT NULL CHECK (seats > 0),
		price_cents INTEGER NOT NULL CHECK (price_cents >= 0),
		created_at INTEGER NOT NULL
	);`,
	fmt.Sprintf(`INSERT INTO offers (name, seats, price_cents, created_at) VALUES
		('Solo', 1, 5000, %[1]d),
		('Duo', 2, 9000, %[1]d),
		('Familiale', 4, 16000, %[1]d);`, now),
}

type Offer struct {
	ID int64

	Name       string
	Seats      int64
	PriceCents int64

	CreatedAt time.Time
}

type OfferStats struct {
	Offer *Offer

	// Packs is the number of paid packs of the offer
	Packs         int64
	Persons       int64
	TurnoverCents int64
}

func (s *Store) CreateOffer(ctx context.Context, name string, seats int64, priceCents int64) (*Offer, error) {
	name = strings.TrimSpace(name)

	if name == "" {
		return nil, errors.New("offer name must not be empty")
	}

	if seats < 1 {
		return nil, errors.Errorf("offer seats must be positive, got %d", seats)
	}

	if priceCents < 0 {
		return nil, errors.Errorf("offer price must not be negative, got %d", priceCents)
	}

	var offer *Offer

	err := s.Tx(ctx, func(conn *sqlite.Conn) error {
		query := fmt.Sprintf(`
			INSERT INTO offers (name, seats, price_cents, created_at)
			VALUES (?, ?, ?, ?) RETURNING %s;`,
			offerAttributes,
		)

		return errors.WithStack(sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{name, seats, priceCents, time.Now().UTC().Unix()},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				offer = &Offer{}
				return errors.WithStack(bindOffer(stmt, 0, offer))
			},
		}))
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return offer, nil
}

func (s *Store) DeleteOffer(ctx context.Context, offerID int64) error {
	return s.Tx(ctx, func(conn *sqlite.Conn) error {
		var references int64

		err := sqlitex.Execute(conn, `SELECT COUNT(*) FROM orders WHERE offer_id = ?`, &sqlitex.ExecOptions{
			Args: []any{offerID},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				references = stmt.ColumnInt64(0)
				return nil
			},
		})
		if err != nil {
			return errors.WithStack(err)
		}

		if references > 0 {
			return errors.WithStack(ErrOfferInUse)
		}

		err = sqlitex.Execute(conn, `DELETE FROM offers WHERE id = ?`, &sqlitex.ExecOptions{
			Args: []any{offerID},
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

func (s *Store) GetOffer(ctx context.Context, offerID int64) (*Offer, error) {
	var offer *Offer

	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		var err error
		offer, err = getOffer(conn, offerID)
		return errors.WithStack(err)
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return offer, nil
}

func (s *Store) ListOffers(ctx context.Context) ([]*Offer, error) {
	offers := make([]*Offer, 0)

	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		query := fmt.Sprintf(`SELECT %s FROM offers ORDER BY id ASC`, offerAttributes)

		return errors.WithStack(sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				offer := &Offer{}
				if err := bindOffer(stmt, 0, offer); err != nil {
					return errors.WithStack(err)
				}

				offers = append(offers, offer)
				return nil
			},
		}))
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return offers, nil
}

// OfferStats returns the sales of every offer, paid orders only.
func (s *Store) OfferStats(ctx context.Context) ([]*OfferStats, error) {
	stats := make([]*OfferStats, 0)

	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		query := `
			SELECT
				f.id, f.name, f.seats, f.price_cents, f.created_at,
				COALESCE(SUM(o.quantity), 0) AS packs,
				COALESCE(SUM(o.quantity), 0) * f.seats AS persons,
				COALESCE(SUM(o.quantity), 0) * f.price_cents AS turnover
			FROM offers f
			LEFT JOIN orders o
				ON o.offer_id = f.id
				AND o.status = 'paid'
			GROUP BY f.id
			ORDER BY f.id ASC
		`

		return errors.WithStack(sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				offer := &Offer{}
				if err := bindOffer(stmt, 0, offer); err != nil {
					return errors.WithStack(err)
				}

				stats = append(stats, &OfferStats{
					Offer:         offer,
					Packs:         stmt.ColumnInt64(5),
					Persons:       stmt.ColumnInt64(6),
					TurnoverCents: stmt.ColumnInt64(7),
				})

				return nil
			},
		}))
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return stats, nil
}

func getOffer(conn *sqlite.Conn, offerID int64) (*Offer, error) {
	var offer *Offer

	query := fmt.Sprintf(`SELECT %s FROM offers WHERE id = ?`, offerAttributes)

	err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
		Args: []any{offerID},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			offer = &Offer{}
			return errors.WithStack(bindOffer(stmt, 0, offer))
		},
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if offer == nil {
		return nil, errors.WithStack(ErrNotFound)
	}

	return offer, nil
}

var offerAttributes = `id, name, seats, price_cents, created_at`

// bindOffer reads the offer attributes starting at column col.
func bindOffer(stmt *sqlite.Stmt, col int, offer *Offer) error {
	offer.ID = stmt.ColumnInt64(col)
	offer.Name = stmt.ColumnText(col + 1)
	offer.Seats = stmt.ColumnInt64(col + 2)
	offer.PriceCents = stmt.ColumnInt64(col + 3)
	offer.CreatedAt = time.Unix(stmt.ColumnInt64(col+4), 0)

	return nil
}
