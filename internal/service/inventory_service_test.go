package service

import (
	"testing"

	"go-logistics-ws/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventoryService_Create(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestInventoryService(db)

	client := createTestUser(t, db, "client@example.com", model.RoleClient)
	admin := createTestUser(t, db, "admin@example.com", model.RoleAdmin)
	product := createTestProduct(t, db, "SKU-001", 9.99)

	t.Run("creates with zero reserved", func(t *testing.T) {
		inv, err := svc.Create(&CreateInventoryRequest{
			ClientID:          client.ID,
			ProductID:         product.ID,
			Quantity:          50,
			WarehouseLocation: "A-12",
		}, "tester")
		require.NoError(t, err)
		assert.Equal(t, 50, inv.Quantity)
		assert.Equal(t, 0, inv.ReservedQuantity)
		assert.Equal(t, "A-12", inv.WarehouseLocation)
	})

	t.Run("rejects unknown client", func(t *testing.T) {
		_, err := svc.Create(&CreateInventoryRequest{
			ClientID:  uuid.New(),
			ProductID: product.ID,
			Quantity:  10,
		}, "tester")
		assert.ErrorIs(t, err, ErrClientNotFound)
	})

	t.Run("rejects non-client role", func(t *testing.T) {
		_, err := svc.Create(&CreateInventoryRequest{
			ClientID:  admin.ID,
			ProductID: product.ID,
			Quantity:  10,
		}, "tester")
		assert.ErrorIs(t, err, ErrClientNotFound)
	})

	t.Run("rejects unknown product", func(t *testing.T) {
		_, err := svc.Create(&CreateInventoryRequest{
			ClientID:  client.ID,
			ProductID: uuid.New(),
			Quantity:  10,
		}, "tester")
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("permits duplicate client-product pairs", func(t *testing.T) {
		_, err := svc.Create(&CreateInventoryRequest{
			ClientID:  client.ID,
			ProductID: product.ID,
			Quantity:  5,
		}, "tester")
		require.NoError(t, err)
	})
}

func TestInventoryService_ReserveRelease(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestInventoryService(db)

	client := createTestUser(t, db, "client@example.com", model.RoleClient)
	product := createTestProduct(t, db, "SKU-001", 9.99)

	inv, err := svc.Create(&CreateInventoryRequest{
		ClientID:  client.ID,
		ProductID: product.ID,
		Quantity:  100,
	}, "tester")
	require.NoError(t, err)

	// Reserve is a soft hold: quantity untouched, reserved grows.
	require.NoError(t, svc.Reserve(product.ID, client.ID, 20, "tester"))

	got, err := svc.GetByID(inv.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, got.Quantity)
	assert.Equal(t, 20, got.ReservedQuantity)
	assert.Equal(t, 80, got.Available())

	// Release consumes stock: both counters shrink.
	require.NoError(t, svc.Release(product.ID, client.ID, 10, "tester"))

	got, err = svc.GetByID(inv.ID)
	require.NoError(t, err)
	assert.Equal(t, 90, got.Quantity)
	assert.Equal(t, 10, got.ReservedQuantity)

	// Invariant held throughout.
	assert.GreaterOrEqual(t, got.ReservedQuantity, 0)
	assert.LessOrEqual(t, got.ReservedQuantity, got.Quantity)
}

func TestInventoryService_ReserveErrors(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestInventoryService(db)

	client := createTestUser(t, db, "client@example.com", model.RoleClient)
	product := createTestProduct(t, db, "SKU-001", 9.99)

	_, err := svc.Create(&CreateInventoryRequest{
		ClientID:  client.ID,
		ProductID: product.ID,
		Quantity:  10,
	}, "tester")
	require.NoError(t, err)

	t.Run("insufficient available stock", func(t *testing.T) {
		err := svc.Reserve(product.ID, client.ID, 15, "tester")
		assert.ErrorIs(t, err, ErrInsufficientInventory)
	})

	t.Run("reservations count against availability", func(t *testing.T) {
		require.NoError(t, svc.Reserve(product.ID, client.ID, 8, "tester"))
		// available = 10 - 8 = 2
		err := svc.Reserve(product.ID, client.ID, 3, "tester")
		assert.ErrorIs(t, err, ErrInsufficientInventory)
	})

	t.Run("missing ledger row", func(t *testing.T) {
		err := svc.Reserve(uuid.New(), client.ID, 1, "tester")
		assert.ErrorIs(t, err, ErrInventoryNotFound)
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		err := svc.Reserve(product.ID, client.ID, 0, "tester")
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})
}

func TestInventoryService_ReleaseErrors(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestInventoryService(db)

	client := createTestUser(t, db, "client@example.com", model.RoleClient)
	product := createTestProduct(t, db, "SKU-001", 9.99)

	_, err := svc.Create(&CreateInventoryRequest{
		ClientID:  client.ID,
		ProductID: product.ID,
		Quantity:  100,
	}, "tester")
	require.NoError(t, err)
	require.NoError(t, svc.Reserve(product.ID, client.ID, 10, "tester"))

	t.Run("release beyond reserved", func(t *testing.T) {
		err := svc.Release(product.ID, client.ID, 15, "tester")
		assert.ErrorIs(t, err, ErrCannotReleaseMoreThanReserved)
	})

	t.Run("missing ledger row", func(t *testing.T) {
		err := svc.Release(uuid.New(), client.ID, 1, "tester")
		assert.ErrorIs(t, err, ErrInventoryNotFound)
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		err := svc.Release(product.ID, client.ID, -1, "tester")
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})
}

func TestInventoryService_DuplicatePairUsesOldestRow(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestInventoryService(db)

	client := createTestUser(t, db, "client@example.com", model.RoleClient)
	product := createTestProduct(t, db, "SKU-001", 9.99)

	first, err := svc.Create(&CreateInventoryRequest{
		ClientID:  client.ID,
		ProductID: product.ID,
		Quantity:  30,
	}, "tester")
	require.NoError(t, err)

	second, err := svc.Create(&CreateInventoryRequest{
		ClientID:  client.ID,
		ProductID: product.ID,
		Quantity:  70,
	}, "tester")
	require.NoError(t, err)

	require.NoError(t, svc.Reserve(product.ID, client.ID, 5, "tester"))

	gotFirst, err := svc.GetByID(first.ID)
	require.NoError(t, err)
	gotSecond, err := svc.GetByID(second.ID)
	require.NoError(t, err)

	assert.Equal(t, 5, gotFirst.ReservedQuantity)
	assert.Equal(t, 0, gotSecond.ReservedQuantity)
}

func TestInventoryService_LowStock(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestInventoryService(db)

	client := createTestUser(t, db, "client@example.com", model.RoleClient)
	other := createTestUser(t, db, "other@example.com", model.RoleClient)
	pLow := createTestProduct(t, db, "SKU-LOW", 1.00)
	pEdge := createTestProduct(t, db, "SKU-EDGE", 1.00)
	pHigh := createTestProduct(t, db, "SKU-HIGH", 1.00)

	_, err := svc.Create(&CreateInventoryRequest{ClientID: client.ID, ProductID: pLow.ID, Quantity: 3}, "t")
	require.NoError(t, err)
	_, err = svc.Create(&CreateInventoryRequest{ClientID: client.ID, ProductID: pEdge.ID, Quantity: 10}, "t")
	require.NoError(t, err)
	_, err = svc.Create(&CreateInventoryRequest{ClientID: client.ID, ProductID: pHigh.ID, Quantity: 50}, "t")
	require.NoError(t, err)
	// Another client's stock must not leak into the result.
	_, err = svc.Create(&CreateInventoryRequest{ClientID: other.ID, ProductID: pLow.ID, Quantity: 1}, "t")
	require.NoError(t, err)

	rows, err := svc.GetLowStock(client.ID, 10)
	require.NoError(t, err)

	// Threshold is inclusive: available == 10 counts.
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, client.ID, row.ClientID)
		assert.LessOrEqual(t, row.Available(), 10)
	}

	t.Run("reservations reduce availability", func(t *testing.T) {
		require.NoError(t, svc.Reserve(pHigh.ID, client.ID, 45, "t"))
		rows, err := svc.GetLowStock(client.ID, 10)
		require.NoError(t, err)
		assert.Len(t, rows, 3)
	})
}

func TestInventoryService_UpdateAndDelete(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestInventoryService(db)

	client := createTestUser(t, db, "client@example.com", model.RoleClient)
	product := createTestProduct(t, db, "SKU-001", 9.99)

	inv, err := svc.Create(&CreateInventoryRequest{
		ClientID:  client.ID,
		ProductID: product.ID,
		Quantity:  10,
	}, "tester")
	require.NoError(t, err)

	t.Run("partial update", func(t *testing.T) {
		loc := "B-07"
		qty := 25
		updated, err := svc.Update(inv.ID, &UpdateInventoryRequest{
			Quantity:          &qty,
			WarehouseLocation: &loc,
		}, "tester")
		require.NoError(t, err)
		assert.Equal(t, 25, updated.Quantity)
		assert.Equal(t, 0, updated.ReservedQuantity) // untouched
		assert.Equal(t, "B-07", updated.WarehouseLocation)
	})

	t.Run("update missing row", func(t *testing.T) {
		qty := 1
		_, err := svc.Update(uuid.New(), &UpdateInventoryRequest{Quantity: &qty}, "tester")
		assert.ErrorIs(t, err, ErrInventoryNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, svc.Delete(inv.ID))
		_, err := svc.GetByID(inv.ID)
		assert.ErrorIs(t, err, ErrInventoryNotFound)
	})

	t.Run("delete missing row", func(t *testing.T) {
		assert.ErrorIs(t, svc.Delete(uuid.New()), ErrInventoryNotFound)
	})
}
