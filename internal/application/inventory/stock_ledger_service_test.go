package inventory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nexa-erp/backend/internal/domain/catalog"
	"github.com/nexa-erp/backend/internal/domain/inventory"
	"github.com/nexa-erp/backend/internal/domain/shared"
)

func testProduct(tenantID uuid.UUID, stock int64) *catalog.Product {
	product, _ := catalog.NewProduct(tenantID, "SKU-1", "Widget", decimal.NewFromInt(100))
	product.UnitCost = decimal.NewFromInt(60)
	product.StockQuantity = decimal.NewFromInt(stock)
	return product
}

func TestStockLedgerService_Apply(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("exit updates stock, saves and re-emits", func(t *testing.T) {
		products := new(MockProductRepository)
		movements := new(MockStockMovementRepository)
		publisher := &capturingPublisher{}
		service := NewStockLedgerService(products, movements, publisher, zap.NewNop())

		product := testProduct(tenantID, 10)
		products.On("FindByRef", ctx, tenantID, "SKU-1").Return(product, nil)
		products.On("UpdateStock", ctx, product.ID, decimal.NewFromInt(7)).Return(nil)
		movements.On("Save", ctx, mock.Anything).Return(nil)

		movement, err := service.Apply(ctx, tenantID, MovementRequest{
			ProductRef: "SKU-1",
			Kind:       inventory.MovementKindExit,
			Quantity:   decimal.NewFromInt(3),
			Reason:     "Sale SALE-001",
			Value:      decimal.NewFromInt(300),
			SaleRef:    "SALE-001",
		})
		require.NoError(t, err)

		assert.True(t, movement.NewQty.Equal(decimal.NewFromInt(7)))
		assert.Equal(t, "SALE-001", movement.SaleRef)
		products.AssertExpectations(t)
		movements.AssertExpectations(t)

		events := publisher.published()
		require.Len(t, events, 1)
		applied, ok := events[0].(*inventory.StockMovementAppliedEvent)
		require.True(t, ok)
		assert.Equal(t, movement.ID, applied.MovementID)
		assert.Equal(t, inventory.MovementKindExit, applied.Kind)
	})

	t.Run("oversell is accepted with a warning", func(t *testing.T) {
		products := new(MockProductRepository)
		movements := new(MockStockMovementRepository)
		publisher := &capturingPublisher{}
		service := NewStockLedgerService(products, movements, publisher, zap.NewNop())

		product := testProduct(tenantID, 1)
		products.On("FindByRef", ctx, tenantID, "SKU-1").Return(product, nil)
		products.On("UpdateStock", ctx, product.ID, decimal.NewFromInt(-2)).Return(nil)
		movements.On("Save", ctx, mock.Anything).Return(nil)

		movement, err := service.Apply(ctx, tenantID, MovementRequest{
			ProductRef: "SKU-1",
			Kind:       inventory.MovementKindExit,
			Quantity:   decimal.NewFromInt(3),
			Value:      decimal.NewFromInt(300),
		})
		require.NoError(t, err)
		assert.True(t, movement.IsOversold())
		assert.True(t, movement.NewQty.Equal(decimal.NewFromInt(-2)))
	})

	t.Run("unresolved product aborts the movement", func(t *testing.T) {
		products := new(MockProductRepository)
		movements := new(MockStockMovementRepository)
		publisher := &capturingPublisher{}
		service := NewStockLedgerService(products, movements, publisher, zap.NewNop())

		products.On("FindByRef", ctx, tenantID, "ghost").Return(nil, shared.ErrProductNotResolved)

		_, err := service.Apply(ctx, tenantID, MovementRequest{
			ProductRef: "ghost",
			Kind:       inventory.MovementKindExit,
			Quantity:   decimal.NewFromInt(1),
		})
		assert.ErrorIs(t, err, shared.ErrProductNotResolved)
		assert.Empty(t, publisher.published())
		movements.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("save failure emits nothing", func(t *testing.T) {
		products := new(MockProductRepository)
		movements := new(MockStockMovementRepository)
		publisher := &capturingPublisher{}
		service := NewStockLedgerService(products, movements, publisher, zap.NewNop())

		product := testProduct(tenantID, 5)
		products.On("FindByRef", ctx, tenantID, "SKU-1").Return(product, nil)
		products.On("UpdateStock", ctx, product.ID, mock.Anything).Return(nil)
		movements.On("Save", ctx, mock.Anything).Return(assert.AnError)

		_, err := service.Apply(ctx, tenantID, MovementRequest{
			ProductRef: "SKU-1",
			Kind:       inventory.MovementKindEntry,
			Quantity:   decimal.NewFromInt(1),
			Value:      decimal.NewFromInt(10),
		})
		assert.Error(t, err)
		assert.Empty(t, publisher.published())
	})
}

func TestStockLedgerService_ApplyAdjustment(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("values the correction at unit cost", func(t *testing.T) {
		products := new(MockProductRepository)
		movements := new(MockStockMovementRepository)
		publisher := &capturingPublisher{}
		service := NewStockLedgerService(products, movements, publisher, zap.NewNop())

		product := testProduct(tenantID, 5)
		products.On("FindByRef", ctx, tenantID, "SKU-1").Return(product, nil).Once()
		products.On("UpdateStock", ctx, product.ID, decimal.NewFromInt(2)).Return(nil)
		movements.On("Save", ctx, mock.Anything).Return(nil)

		movement, err := service.ApplyAdjustment(ctx, tenantID, "SKU-1", decimal.NewFromInt(-3), "stocktake shrinkage")
		require.NoError(t, err)

		assert.Equal(t, inventory.MovementKindAdjust, movement.Kind)
		assert.True(t, movement.NewQty.Equal(decimal.NewFromInt(2)))
		// 3 × 60 = 180, sign carried by the quantity
		assert.True(t, movement.Value.Equal(decimal.NewFromInt(180)))
		// single lookup: the quantity read and the update share it
		products.AssertNumberOfCalls(t, "FindByRef", 1)
	})
}
