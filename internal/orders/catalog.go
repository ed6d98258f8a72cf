// Package orders provides the order catalog the chat engine queries
// when a message carries an order identifier. The catalog is an
// injected dependency; the engine never owns order data.
package orders

import (
	"context"
	"strings"
	"sync"

	"github.com/DineshDhasara/supportbot/internal/domain"
)

// Catalog is the order lookup boundary. GetOrder returns nil, nil when
// the ID is unknown; an error means the lookup itself failed.
type Catalog interface {
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	Ping(ctx context.Context) error
	Close() error
}

// MemoryCatalog is a map-backed Catalog used in tests and as a seed
// source. Lookups are case-insensitive on the order ID.
type MemoryCatalog struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
}

// NewMemoryCatalog creates a catalog over the given orders.
func NewMemoryCatalog(orders []*domain.Order) *MemoryCatalog {
	m := &MemoryCatalog{orders: make(map[string]*domain.Order, len(orders))}
	for _, o := range orders {
		m.orders[strings.ToUpper(o.ID)] = o
	}
	return m
}

// GetOrder implements Catalog.
func (m *MemoryCatalog) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.orders[strings.ToUpper(orderID)]
	if !ok {
		return nil, nil
	}
	cp := *o
	cp.Items = append([]domain.OrderItem(nil), o.Items...)
	return &cp, nil
}

// Ping implements Catalog.
func (m *MemoryCatalog) Ping(ctx context.Context) error { return ctx.Err() }

// Close implements Catalog.
func (m *MemoryCatalog) Close() error { return nil }

// DemoOrders returns the built-in demo records used to seed fresh
// catalogs.
func DemoOrders() []*domain.Order {
	return []*domain.Order{
		{
			ID:           "ORD1001",
			Status:       "Shipped",
			DeliveryDate: "2025-01-15",
			Items: []domain.OrderItem{
				{Name: "Wireless Headphones", Price: 79.99, Quantity: 1},
				{Name: "USB-C Cable", Price: 12.99, Quantity: 2},
			},
			Total: 105.97,
		},
		{
			ID:           "ORD1002",
			Status:       "Processing",
			DeliveryDate: "2025-01-20",
			Items: []domain.OrderItem{
				{Name: "Smart Watch", Price: 199.99, Quantity: 1},
			},
			Total: 199.99,
		},
		{
			ID:           "ORD1003",
			Status:       "Delivered",
			DeliveryDate: "2025-01-08",
			Items: []domain.OrderItem{
				{Name: "Phone Case", Price: 24.99, Quantity: 1},
				{Name: "Screen Protector", Price: 9.99, Quantity: 1},
			},
			Total: 34.98,
		},
		{
			ID:           "12345678",
			Status:       "In Transit",
			DeliveryDate: "2025-01-18",
			Items: []domain.OrderItem{
				{Name: "Bluetooth Speaker", Price: 59.99, Quantity: 1},
			},
			Total: 59.99,
		},
	}
}

var _ Catalog = (*MemoryCatalog)(nil)
