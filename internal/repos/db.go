package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed baseline data if DB is empty (clients/categories/products/prices/rounds)
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	// Ensure users exist (idempotent; safe to run every start)
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Clients
CREATE TABLE IF NOT EXISTS clients(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  address TEXT NOT NULL DEFAULT '',
  phone TEXT NOT NULL DEFAULT '',
  email TEXT,
  zone TEXT NOT NULL,
  tier TEXT NOT NULL CHECK (tier IN ('FACTORY','WHOLESALE','RETAIL')),
  active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_clients_zone ON clients(zone);

-- Categories
CREATE TABLE IF NOT EXISTS categories(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name_nocase ON categories(LOWER(name));

-- Products
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  category_id TEXT NOT NULL REFERENCES categories(id) ON DELETE RESTRICT,
  name TEXT NOT NULL,
  description TEXT,
  image TEXT,
  active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id);
CREATE INDEX IF NOT EXISTS idx_products_name     ON products(LOWER(name));

-- Prices
CREATE TABLE IF NOT EXISTS prices(
  id TEXT PRIMARY KEY,
  category_id TEXT NOT NULL REFERENCES categories(id) ON DELETE RESTRICT,
  tier TEXT NOT NULL CHECK (tier IN ('FACTORY','WHOLESALE','RETAIL')),
  value NUMERIC NOT NULL CHECK (value > 0),
  starts_at TEXT NOT NULL,
  ends_at TEXT,
  active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
-- At most one active price per (category, tier)
CREATE UNIQUE INDEX IF NOT EXISTS idx_prices_one_active
  ON prices(category_id, tier) WHERE active = 1;

-- Delivery rounds
CREATE TABLE IF NOT EXISTS delivery_rounds(
  id TEXT PRIMARY KEY,
  zone TEXT NOT NULL,
  round_date TEXT NOT NULL,
  active INTEGER NOT NULL DEFAULT 1,
  note TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_rounds_zone_date ON delivery_rounds(zone, round_date);

-- Orders
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  client_id TEXT NOT NULL REFERENCES clients(id) ON DELETE RESTRICT,
  round_id TEXT REFERENCES delivery_rounds(id) ON DELETE SET NULL,
  status TEXT NOT NULL DEFAULT 'PENDING' CHECK (status IN ('PENDING','DELIVERED','CANCELLED')),
  paid INTEGER NOT NULL DEFAULT 0,
  note TEXT,
  total NUMERIC NOT NULL,
  placed_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_orders_client ON orders(client_id);
CREATE INDEX IF NOT EXISTS idx_orders_round  ON orders(round_id);
CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status);

CREATE TABLE IF NOT EXISTS order_items(
  order_id   TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE RESTRICT,
  price_id   TEXT NOT NULL REFERENCES prices(id) ON DELETE RESTRICT,
  qty INTEGER NOT NULL CHECK (qty >= 1),
  unit_price NUMERIC NOT NULL,
  subtotal NUMERIC NOT NULL,
  PRIMARY KEY (order_id, product_id)
);
CREATE INDEX IF NOT EXISTS idx_order_items_product ON order_items(product_id);
CREATE INDEX IF NOT EXISTS idx_order_items_price   ON order_items(price_id);

-- Users & Sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('USER','ADMIN')),
  client_id TEXT REFERENCES clients(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM clients`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo clients/categories/products/prices/rounds")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO clients(id,name,address,phone,email,zone,tier) VALUES
	  ('c-acme','Acme Sweets','12 North Rd','555-0101','orders@acme.test','NORTH','RETAIL'),
	  ('c-borealis','Borealis Foods','3 South Ave','555-0102','buy@borealis.test','SOUTH','WHOLESALE')`)

	tx.MustExec(`INSERT INTO categories(id,name,description) VALUES
	  ('cat-vanilla','Vanilla','Vanilla line'),
	  ('cat-chocolate','Chocolate','Chocolate line')`)

	tx.MustExec(`INSERT INTO products(id,category_id,name,description) VALUES
	  ('prod-van-500','cat-vanilla','Vanilla 500g','Half-kilo vanilla tub'),
	  ('prod-van-1k','cat-vanilla','Vanilla 1kg','Kilo vanilla tub'),
	  ('prod-choc-500','cat-chocolate','Chocolate 500g','Half-kilo chocolate tub')`)

	tx.MustExec(`INSERT INTO prices(id,category_id,tier,value,starts_at) VALUES
	  ('pr-van-retail','cat-vanilla','RETAIL',100.0,date('now')),
	  ('pr-van-whole','cat-vanilla','WHOLESALE',80.0,date('now')),
	  ('pr-choc-retail','cat-chocolate','RETAIL',120.0,date('now')),
	  ('pr-choc-whole','cat-chocolate','WHOLESALE',95.0,date('now'))`)

	tx.MustExec(`INSERT INTO delivery_rounds(id,zone,round_date,note) VALUES
	  ('rnd-north-1','NORTH',date('now','+1 day'),'weekly north run')`)

	return tx.Commit()
}

// seedUsers ensures one ADMIN and one client-bound USER exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID, Email, Name, Role, ClientID, Hash string
	}
	mk := func(id, email, name, role, clientID, raw string) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return u{ID: id, Email: email, Name: name, Role: role, ClientID: clientID, Hash: string(h)}
	}

	users := []u{
		mk("u-admin", "admin@milkrun.test", "Admin", "ADMIN", "", "Passw0rd!"),
		mk("u-ana", "ana@acme.test", "Ana", "USER", "c-acme", "Passw0rd!"),
		mk("u-boris", "boris@borealis.test", "Boris", "USER", "c-borealis", "Passw0rd!"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(id,email,name,password_hash,role,client_id)
			VALUES(?,?,?,?,?,NULLIF(?,''))
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Email, x.Name, x.Hash, x.Role, x.ClientID); err != nil {
			return err
		}
	}

	return tx.Commit()
}
