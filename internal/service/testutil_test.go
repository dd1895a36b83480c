package service

import (
	"testing"

	"go-logistics-ws/internal/model"
	"go-logistics-ws/internal/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Inventory{},
		&model.Order{},
		&model.OrderItem{},
		&model.Delivery{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email, role string) *model.User {
	t.Helper()

	user := &model.User{
		Email:     email,
		FirstName: "Test",
		LastName:  "User",
		Role:      role,
		IsActive:  true,
	}
	if err := user.SetPassword("secret123"); err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func createTestProduct(t *testing.T, db *gorm.DB, sku string, price float64) *model.Product {
	t.Helper()

	product := &model.Product{
		SKU:       sku,
		Name:      "Product " + sku,
		UnitPrice: price,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("failed to create test product: %v", err)
	}
	return product
}

func newTestInventoryService(db *gorm.DB) InventoryService {
	return NewInventoryService(
		repository.NewInventoryRepo(db),
		repository.NewUserRepo(db),
		repository.NewProductRepo(db),
		db,
		nil, // no WS hub in tests
	)
}

func newTestOrderService(db *gorm.DB) OrderService {
	return NewOrderService(
		repository.NewOrderRepo(db),
		repository.NewUserRepo(db),
		repository.NewProductRepo(db),
		db,
		nil,
	)
}

func newTestDeliveryService(db *gorm.DB) DeliveryService {
	return NewDeliveryService(
		repository.NewDeliveryRepo(db),
		repository.NewOrderRepo(db),
		nil,
	)
}
