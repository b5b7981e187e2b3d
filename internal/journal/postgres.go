package journal

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS storefront_events (
  id         UUID PRIMARY KEY,
  kind       TEXT NOT NULL,
  order_id   BIGINT,
  user_id    BIGINT,
  product_id BIGINT,
  quantity   INT,
  attempts   INT,
  detail     TEXT,
  at         TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS storefront_events_order_idx ON storefront_events (order_id, at);
`

type PGSink struct{ db *pgxpool.Pool }

func NewPGSink(db *pgxpool.Pool) *PGSink { return &PGSink{db: db} }

// Connect opens a pool for dsn and makes sure the events table exists.
func Connect(ctx context.Context, dsn string) (*PGSink, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	s := NewPGSink(pool)
	if err := s.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (r *PGSink) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, schema)
	return err
}

func (r *PGSink) Record(ctx context.Context, e Event) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	e.Stamp()
	_, err := r.db.Exec(ctx, `
		INSERT INTO storefront_events (id, kind, order_id, user_id, product_id, quantity, attempts, detail, at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (id) DO NOTHING
	`, e.ID, string(e.Kind), e.OrderID, e.UserID, e.ProductID, e.Quantity, e.Attempts, e.Detail, e.At)
	return err
}

func (r *PGSink) ListByOrder(ctx context.Context, orderID int64, limit int) ([]Event, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := r.db.Query(ctx, `
		SELECT id, kind, order_id, user_id, product_id, quantity, attempts, detail, at
		FROM storefront_events WHERE order_id=$1
		ORDER BY at DESC LIMIT $2
	`, orderID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		var kind string
		if err := rows.Scan(&e.ID, &kind, &e.OrderID, &e.UserID, &e.ProductID, &e.Quantity, &e.Attempts, &e.Detail, &e.At); err != nil {
			return nil, err
		}
		e.Kind = Kind(kind)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *PGSink) Close() { r.db.Close() }
