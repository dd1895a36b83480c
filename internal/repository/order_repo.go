package repository

import (
	"go-logistics-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository interface {
	Create(order *model.Order) error
	FindAll() ([]model.Order, error)
	FindByClient(clientID uuid.UUID) ([]model.Order, error)
	FindByID(id uuid.UUID) (*model.Order, error)
	// FindForUpdate locks the order row inside tx.
	FindForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Order, error)
	UpdateFields(tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error
	Delete(tx *gorm.DB, id uuid.UUID) error

	CreateItem(tx *gorm.DB, item *model.OrderItem) error
	FindItems(orderID uuid.UUID) ([]model.OrderItem, error)
	FindItemByID(id uuid.UUID) (*model.OrderItem, error)
	DeleteItem(tx *gorm.DB, id uuid.UUID) error
	DeleteItemsByOrder(tx *gorm.DB, orderID uuid.UUID) error
	// SumItemTotals returns COALESCE(SUM(total_price), 0) over the order's items.
	SumItemTotals(tx *gorm.DB, orderID uuid.UUID) (float64, error)

	CountByStatus(clientID *uuid.UUID, status model.OrderStatus) (int64, error)
	SumDeliveredRevenue() (float64, error)
}

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) OrderRepository {
	return &orderRepo{db}
}

func (r *orderRepo) Create(order *model.Order) error {
	return r.db.Create(order).Error
}

func (r *orderRepo) FindAll() ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Preload("Items").Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepo) FindByClient(clientID uuid.UUID) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Preload("Items").Where("client_id = ?", clientID).Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepo) FindByID(id uuid.UUID) (*model.Order, error) {
	var order model.Order
	if err := r.db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) FindForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Order, error) {
	var order model.Order
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) UpdateFields(tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Model(&model.Order{}).Where("id = ?", id).Updates(fields).Error
}

func (r *orderRepo) Delete(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.Order{}, "id = ?", id).Error
}

func (r *orderRepo) CreateItem(tx *gorm.DB, item *model.OrderItem) error {
	return tx.Create(item).Error
}

func (r *orderRepo) FindItems(orderID uuid.UUID) ([]model.OrderItem, error) {
	var items []model.OrderItem
	err := r.db.Preload("Product").Where("order_id = ?", orderID).Order("created_at ASC").Find(&items).Error
	return items, err
}

func (r *orderRepo) FindItemByID(id uuid.UUID) (*model.OrderItem, error) {
	var item model.OrderItem
	if err := r.db.First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *orderRepo) DeleteItem(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.OrderItem{}, "id = ?", id).Error
}

func (r *orderRepo) DeleteItemsByOrder(tx *gorm.DB, orderID uuid.UUID) error {
	return tx.Delete(&model.OrderItem{}, "order_id = ?", orderID).Error
}

func (r *orderRepo) SumItemTotals(tx *gorm.DB, orderID uuid.UUID) (float64, error) {
	var total float64
	err := tx.Model(&model.OrderItem{}).
		Where("order_id = ?", orderID).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&total).Error
	return total, err
}

func (r *orderRepo) CountByStatus(clientID *uuid.UUID, status model.OrderStatus) (int64, error) {
	q := r.db.Model(&model.Order{}).Where("status = ?", status)
	if clientID != nil {
		q = q.Where("client_id = ?", *clientID)
	}
	var count int64
	err := q.Count(&count).Error
	return count, err
}

func (r *orderRepo) SumDeliveredRevenue() (float64, error) {
	var revenue float64
	err := r.db.Model(&model.Order{}).
		Where("status = ?", model.OrderDelivered).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&revenue).Error
	return revenue, err
}
