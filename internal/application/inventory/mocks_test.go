package inventory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/nexa-erp/backend/internal/domain/catalog"
	"github.com/nexa-erp/backend/internal/domain/inventory"
	"github.com/nexa-erp/backend/internal/domain/shared"
)

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByRef(ctx context.Context, tenantID uuid.UUID, ref string) (*catalog.Product, error) {
	args := m.Called(ctx, tenantID, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) UpdateStock(ctx context.Context, productID uuid.UUID, newQuantity decimal.Decimal) error {
	args := m.Called(ctx, productID, newQuantity)
	return args.Error(0)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

// MockStockMovementRepository is a mock implementation of StockMovementRepository
type MockStockMovementRepository struct {
	mock.Mock
}

func (m *MockStockMovementRepository) Save(ctx context.Context, movement *inventory.StockMovement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockStockMovementRepository) FindByProduct(ctx context.Context, tenantID, productID uuid.UUID, limit int) ([]inventory.StockMovement, error) {
	args := m.Called(ctx, tenantID, productID, limit)
	return args.Get(0).([]inventory.StockMovement), args.Error(1)
}

func (m *MockStockMovementRepository) FindBySaleRef(ctx context.Context, tenantID uuid.UUID, saleRef string) ([]inventory.StockMovement, error) {
	args := m.Called(ctx, tenantID, saleRef)
	return args.Get(0).([]inventory.StockMovement), args.Error(1)
}

// capturingPublisher records published events
type capturingPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func (p *capturingPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) shared.Emission {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return noopEmission{}
}

func (p *capturingPublisher) published() []shared.DomainEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]shared.DomainEvent(nil), p.events...)
}

type noopEmission struct{}

func (noopEmission) Wait(ctx context.Context) error { return nil }
func (noopEmission) HandlerCount() int              { return 0 }
