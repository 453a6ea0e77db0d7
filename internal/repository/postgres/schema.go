package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schema is the marketplace DDL: users hold wallet and points balances,
// auctions carry the lifecycle and settlement flags, bids are append-only.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id          TEXT PRIMARY KEY,
	role        TEXT NOT NULL,
	is_approved BOOLEAN NOT NULL DEFAULT FALSE,
	amount      NUMERIC(20, 4) NOT NULL DEFAULT 0 CHECK (amount >= 0),
	points      BIGINT NOT NULL DEFAULT 0 CHECK (points >= 0)
);

CREATE TABLE IF NOT EXISTS auctions (
	id             TEXT PRIMARY KEY,
	title          TEXT NOT NULL,
	description    TEXT NOT NULL DEFAULT '',
	images         TEXT[] NOT NULL DEFAULT '{}',
	item_type      TEXT NOT NULL,
	seller_id      TEXT NOT NULL REFERENCES users (id),
	start_price    NUMERIC(20, 4) NOT NULL,
	current_price  NUMERIC(20, 4) NOT NULL,
	status         TEXT NOT NULL,
	is_approved    BOOLEAN NOT NULL DEFAULT FALSE,
	end_time       TIMESTAMPTZ NOT NULL,
	points_awarded BOOLEAN NOT NULL DEFAULT FALSE,
	created_at     TIMESTAMPTZ NOT NULL,
	CHECK (current_price >= start_price)
);

CREATE TABLE IF NOT EXISTS bids (
	id         TEXT PRIMARY KEY,
	auction_id TEXT NOT NULL REFERENCES auctions (id),
	bidder_id  TEXT NOT NULL REFERENCES users (id),
	amount     NUMERIC(20, 4) NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_auctions_settlement ON auctions (end_time) WHERE status IN ('ACTIVE', 'ENDED');
CREATE INDEX IF NOT EXISTS idx_auctions_seller ON auctions (seller_id, status);
CREATE INDEX IF NOT EXISTS idx_bids_auction ON bids (auction_id, amount DESC);
`

// EnsureSchema creates the marketplace tables if they do not exist.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
