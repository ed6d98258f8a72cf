package orders

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/DineshDhasara/supportbot/internal/domain"
	_ "modernc.org/sqlite"
)

// SQLiteCatalog implements Catalog using SQLite.
type SQLiteCatalog struct {
	db *sql.DB
}

// NewSQLite opens (creating if needed) a SQLite-backed order catalog.
// A fresh database is seeded with the demo orders.
func NewSQLite(dbPath string) (*SQLiteCatalog, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// Open database with WAL mode for better concurrency.
	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	cat := &SQLiteCatalog{db: db}
	if err := cat.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	if err := cat.seedIfEmpty(); err != nil {
		return nil, fmt.Errorf("seed demo orders: %w", err)
	}

	return cat, nil
}

func (c *SQLiteCatalog) initSchema() error {
	query := `
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS orders (
		order_id TEXT PRIMARY KEY,
		status TEXT NOT NULL,
		delivery_date TEXT NOT NULL,
		items_json TEXT NOT NULL,
		total REAL NOT NULL
	);
	`
	if _, err := c.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

func (c *SQLiteCatalog) seedIfEmpty() error {
	var n int
	if err := c.db.QueryRow(`SELECT COUNT(*) FROM orders`).Scan(&n); err != nil {
		return fmt.Errorf("count orders: %w", err)
	}
	if n > 0 {
		return nil
	}

	for _, o := range DemoOrders() {
		if err := c.insert(o); err != nil {
			return err
		}
	}
	return nil
}

func (c *SQLiteCatalog) insert(o *domain.Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("marshal items for %s: %w", o.ID, err)
	}

	query := `
	INSERT INTO orders (order_id, status, delivery_date, items_json, total)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(order_id) DO UPDATE SET
		status = excluded.status,
		delivery_date = excluded.delivery_date,
		items_json = excluded.items_json,
		total = excluded.total`

	if _, err := c.db.Exec(query, strings.ToUpper(o.ID), o.Status, o.DeliveryDate, string(items), o.Total); err != nil {
		return fmt.Errorf("insert order %s: %w", o.ID, err)
	}
	return nil
}

// GetOrder retrieves an order by ID. IDs are stored uppercased, so the
// lookup is case-insensitive.
func (c *SQLiteCatalog) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	query := `SELECT order_id, status, delivery_date, items_json, total FROM orders WHERE order_id = ?`
	row := c.db.QueryRowContext(ctx, query, strings.ToUpper(orderID))

	var order domain.Order
	var itemsJSON string

	err := row.Scan(&order.ID, &order.Status, &order.DeliveryDate, &itemsJSON, &order.Total)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan order row: %w", err)
	}

	if err := json.Unmarshal([]byte(itemsJSON), &order.Items); err != nil {
		return nil, fmt.Errorf("decode items for %s: %w", order.ID, err)
	}

	return &order, nil
}

// Ping verifies database connectivity.
func (c *SQLiteCatalog) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// Close closes the database connection.
func (c *SQLiteCatalog) Close() error {
	if err := c.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}

var _ Catalog = (*SQLiteCatalog)(nil)
