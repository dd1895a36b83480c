package service

import (
	"context"
	"testing"

	"go-logistics-ws/internal/model"
	"go-logistics-ws/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDashboardService(db *gorm.DB) DashboardService {
	return NewDashboardService(
		repository.NewOrderRepo(db),
		repository.NewInventoryRepo(db),
		repository.NewDeliveryRepo(db),
		repository.NewUserRepo(db),
		repository.NewProductRepo(db),
		nil, // caching disabled in tests
	)
}

func TestDashboardService_Stats(t *testing.T) {
	db := setupTestDB(t)
	orderSvc := newTestOrderService(db)
	invSvc := newTestInventoryService(db)
	deliverySvc := newTestDeliveryService(db)
	dashSvc := newTestDashboardService(db)

	client := createTestUser(t, db, "client@example.com", model.RoleClient)
	createTestUser(t, db, "admin@example.com", model.RoleAdmin)
	product := createTestProduct(t, db, "SKU-001", 25.00)

	_, err := invSvc.Create(&CreateInventoryRequest{
		ClientID:  client.ID,
		ProductID: product.ID,
		Quantity:  5, // below the default threshold
	}, "tester")
	require.NoError(t, err)

	pendingOrder, err := orderSvc.Create(&CreateOrderRequest{
		ClientID:        client.ID,
		ShippingAddress: "1 Warehouse Way",
	}, "tester")
	require.NoError(t, err)

	deliveredOrder, err := orderSvc.Create(&CreateOrderRequest{
		ClientID:        client.ID,
		ShippingAddress: "1 Warehouse Way",
	}, "tester")
	require.NoError(t, err)
	_, err = orderSvc.AddItem(deliveredOrder.ID, &AddOrderItemRequest{
		ProductID: product.ID,
		Quantity:  4,
		UnitPrice: 25.00,
	}, "tester")
	require.NoError(t, err)
	delivered := model.OrderDelivered
	_, err = orderSvc.Update(deliveredOrder.ID, &UpdateOrderRequest{Status: &delivered}, "tester")
	require.NoError(t, err)

	delivery, err := deliverySvc.Create(&CreateDeliveryRequest{OrderID: pendingOrder.ID}, "tester")
	require.NoError(t, err)
	inTransit := model.DeliveryInTransit
	_, err = deliverySvc.Update(delivery.ID, &UpdateDeliveryRequest{Status: &inTransit}, "tester")
	require.NoError(t, err)

	t.Run("client stats", func(t *testing.T) {
		stats, err := dashSvc.GetClientStats(context.Background(), client.ID)
		require.NoError(t, err)

		assert.Equal(t, int64(1), stats.PendingOrders)
		assert.Equal(t, int64(1), stats.DeliveredOrders)
		assert.Equal(t, int64(1), stats.LowStockCount)
		assert.Equal(t, int64(1), stats.DeliveriesInTransit)
	})

	t.Run("admin stats", func(t *testing.T) {
		stats, err := dashSvc.GetAdminStats(context.Background())
		require.NoError(t, err)

		assert.Equal(t, int64(1), stats.TotalClients)
		assert.Equal(t, int64(1), stats.TotalProducts)
		assert.Equal(t, int64(1), stats.PendingOrders)
		assert.InDelta(t, 100.00, stats.DeliveredRevenue, 0.001)
	})
}
