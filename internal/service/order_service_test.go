package service

import (
	"regexp"
	"testing"

	"go-logistics-ws/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderNumberPattern = regexp.MustCompile(`^ORD-\d+-[0-9A-Z]{9}$`)

func TestOrderService_Create(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestOrderService(db)

	client := createTestUser(t, db, "client@example.com", model.RoleClient)

	t.Run("fresh order", func(t *testing.T) {
		order, err := svc.Create(&CreateOrderRequest{
			ClientID:        client.ID,
			ShippingAddress: "1 Warehouse Way",
		}, "tester")
		require.NoError(t, err)

		assert.Regexp(t, orderNumberPattern, order.OrderNumber)
		assert.Equal(t, model.OrderPending, order.Status)
		assert.Zero(t, order.TotalAmount)
	})

	t.Run("unknown client", func(t *testing.T) {
		_, err := svc.Create(&CreateOrderRequest{
			ClientID:        uuid.New(),
			ShippingAddress: "1 Warehouse Way",
		}, "tester")
		assert.ErrorIs(t, err, ErrClientNotFound)
	})

	t.Run("order numbers are unique", func(t *testing.T) {
		seen := map[string]bool{}
		for i := 0; i < 20; i++ {
			order, err := svc.Create(&CreateOrderRequest{
				ClientID:        client.ID,
				ShippingAddress: "1 Warehouse Way",
			}, "tester")
			require.NoError(t, err)
			assert.False(t, seen[order.OrderNumber])
			seen[order.OrderNumber] = true
		}
	})
}

func TestOrderService_AddItem(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestOrderService(db)

	client := createTestUser(t, db, "client@example.com", model.RoleClient)
	product := createTestProduct(t, db, "SKU-001", 42.00)

	order, err := svc.Create(&CreateOrderRequest{
		ClientID:        client.ID,
		ShippingAddress: "1 Warehouse Way",
	}, "tester")
	require.NoError(t, err)

	t.Run("item total and order total", func(t *testing.T) {
		item, err := svc.AddItem(order.ID, &AddOrderItemRequest{
			ProductID: product.ID,
			Quantity:  2,
			UnitPrice: 99.99, // caller-supplied price, not the catalog's 42.00
		}, "tester")
		require.NoError(t, err)

		assert.InDelta(t, 199.98, item.TotalPrice, 0.001)

		got, err := svc.GetByID(order.ID)
		require.NoError(t, err)
		assert.InDelta(t, 199.98, got.TotalAmount, 0.001)
	})

	t.Run("second item accumulates", func(t *testing.T) {
		_, err := svc.AddItem(order.ID, &AddOrderItemRequest{
			ProductID: product.ID,
			Quantity:  1,
			UnitPrice: 149.99,
		}, "tester")
		require.NoError(t, err)

		got, err := svc.GetByID(order.ID)
		require.NoError(t, err)
		assert.InDelta(t, 349.97, got.TotalAmount, 0.001)
	})

	t.Run("unknown order", func(t *testing.T) {
		_, err := svc.AddItem(uuid.New(), &AddOrderItemRequest{
			ProductID: product.ID,
			Quantity:  1,
			UnitPrice: 1.00,
		}, "tester")
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := svc.AddItem(order.ID, &AddOrderItemRequest{
			ProductID: uuid.New(),
			Quantity:  1,
			UnitPrice: 1.00,
		}, "tester")
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		_, err := svc.AddItem(order.ID, &AddOrderItemRequest{
			ProductID: product.ID,
			Quantity:  0,
			UnitPrice: 1.00,
		}, "tester")
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestOrderService_RemoveItem(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestOrderService(db)

	client := createTestUser(t, db, "client@example.com", model.RoleClient)
	product := createTestProduct(t, db, "SKU-001", 1.00)

	order, err := svc.Create(&CreateOrderRequest{
		ClientID:        client.ID,
		ShippingAddress: "1 Warehouse Way",
	}, "tester")
	require.NoError(t, err)

	first, err := svc.AddItem(order.ID, &AddOrderItemRequest{
		ProductID: product.ID,
		Quantity:  2,
		UnitPrice: 99.99,
	}, "tester")
	require.NoError(t, err)
	_, err = svc.AddItem(order.ID, &AddOrderItemRequest{
		ProductID: product.ID,
		Quantity:  1,
		UnitPrice: 149.99,
	}, "tester")
	require.NoError(t, err)

	// Removing the 199.98 item leaves the remaining item's total.
	require.NoError(t, svc.RemoveItem(first.ID, "tester"))

	got, err := svc.GetByID(order.ID)
	require.NoError(t, err)
	assert.InDelta(t, 149.99, got.TotalAmount, 0.001)

	items, err := svc.GetItems(order.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	t.Run("unknown item", func(t *testing.T) {
		assert.ErrorIs(t, svc.RemoveItem(uuid.New(), "tester"), ErrOrderItemNotFound)
	})
}

func TestOrderService_RecalculateTotal(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestOrderService(db)

	client := createTestUser(t, db, "client@example.com", model.RoleClient)
	product := createTestProduct(t, db, "SKU-001", 1.00)

	order, err := svc.Create(&CreateOrderRequest{
		ClientID:        client.ID,
		ShippingAddress: "1 Warehouse Way",
	}, "tester")
	require.NoError(t, err)

	t.Run("empty order totals zero", func(t *testing.T) {
		total, err := svc.RecalculateTotal(order.ID)
		require.NoError(t, err)
		assert.Zero(t, total)
	})

	t.Run("idempotent", func(t *testing.T) {
		_, err := svc.AddItem(order.ID, &AddOrderItemRequest{
			ProductID: product.ID,
			Quantity:  3,
			UnitPrice: 10.50,
		}, "tester")
		require.NoError(t, err)

		first, err := svc.RecalculateTotal(order.ID)
		require.NoError(t, err)
		second, err := svc.RecalculateTotal(order.ID)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.InDelta(t, 31.50, second, 0.001)
	})

	t.Run("unknown order", func(t *testing.T) {
		_, err := svc.RecalculateTotal(uuid.New())
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestOrderService_Update(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestOrderService(db)

	client := createTestUser(t, db, "client@example.com", model.RoleClient)

	order, err := svc.Create(&CreateOrderRequest{
		ClientID:        client.ID,
		ShippingAddress: "1 Warehouse Way",
	}, "tester")
	require.NoError(t, err)

	t.Run("any status reachable from any other", func(t *testing.T) {
		// No transition graph: walk an arbitrary path including backwards.
		for _, status := range []model.OrderStatus{
			model.OrderDelivered, model.OrderPending, model.OrderCancelled, model.OrderShipped,
		} {
			s := status
			updated, err := svc.Update(order.ID, &UpdateOrderRequest{Status: &s}, "tester")
			require.NoError(t, err)
			assert.Equal(t, s, updated.Status)
		}
	})

	t.Run("partial update leaves other fields", func(t *testing.T) {
		notes := "leave at dock 4"
		updated, err := svc.Update(order.ID, &UpdateOrderRequest{Notes: &notes}, "tester")
		require.NoError(t, err)
		assert.Equal(t, "leave at dock 4", updated.Notes)
		assert.Equal(t, "1 Warehouse Way", updated.ShippingAddress)
	})

	t.Run("unknown order", func(t *testing.T) {
		notes := "x"
		_, err := svc.Update(uuid.New(), &UpdateOrderRequest{Notes: &notes}, "tester")
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestOrderService_Delete(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestOrderService(db)

	client := createTestUser(t, db, "client@example.com", model.RoleClient)
	product := createTestProduct(t, db, "SKU-001", 1.00)

	order, err := svc.Create(&CreateOrderRequest{
		ClientID:        client.ID,
		ShippingAddress: "1 Warehouse Way",
	}, "tester")
	require.NoError(t, err)

	_, err = svc.AddItem(order.ID, &AddOrderItemRequest{
		ProductID: product.ID,
		Quantity:  1,
		UnitPrice: 5.00,
	}, "tester")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(order.ID))

	// Order and its items are both gone.
	_, err = svc.GetByID(order.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	items, err := svc.GetItems(order.ID)
	require.NoError(t, err)
	assert.Empty(t, items)

	t.Run("unknown order", func(t *testing.T) {
		assert.ErrorIs(t, svc.Delete(uuid.New()), ErrOrderNotFound)
	})
}

func TestOrderService_TotalAlwaysMatchesItems(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestOrderService(db)

	client := createTestUser(t, db, "client@example.com", model.RoleClient)
	product := createTestProduct(t, db, "SKU-001", 1.00)

	order, err := svc.Create(&CreateOrderRequest{
		ClientID:        client.ID,
		ShippingAddress: "1 Warehouse Way",
	}, "tester")
	require.NoError(t, err)

	checkInvariant := func() {
		items, err := svc.GetItems(order.ID)
		require.NoError(t, err)
		var sum float64
		for _, it := range items {
			sum += it.TotalPrice
		}
		got, err := svc.GetByID(order.ID)
		require.NoError(t, err)
		assert.InDelta(t, sum, got.TotalAmount, 0.001)
	}

	var itemIDs []uuid.UUID
	for _, price := range []float64{19.99, 5.25, 120.00} {
		item, err := svc.AddItem(order.ID, &AddOrderItemRequest{
			ProductID: product.ID,
			Quantity:  2,
			UnitPrice: price,
		}, "tester")
		require.NoError(t, err)
		itemIDs = append(itemIDs, item.ID)
		checkInvariant()
	}

	for _, id := range itemIDs {
		require.NoError(t, svc.RemoveItem(id, "tester"))
		checkInvariant()
	}

	got, err := svc.GetByID(order.ID)
	require.NoError(t, err)
	assert.Zero(t, got.TotalAmount)
}
