package repository

import (
	"go-logistics-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DeliveryRepository interface {
	Create(delivery *model.Delivery) error
	FindAll() ([]model.Delivery, error)
	FindByID(id uuid.UUID) (*model.Delivery, error)
	FindByOrder(orderID uuid.UUID) ([]model.Delivery, error)
	FindByClient(clientID uuid.UUID) ([]model.Delivery, error)
	Update(delivery *model.Delivery) error
	Delete(id uuid.UUID) error
	CountByStatus(clientID *uuid.UUID, status model.DeliveryStatus) (int64, error)
}

type deliveryRepo struct {
	db *gorm.DB
}

func NewDeliveryRepo(db *gorm.DB) DeliveryRepository {
	return &deliveryRepo{db}
}

func (r *deliveryRepo) Create(delivery *model.Delivery) error {
	return r.db.Create(delivery).Error
}

func (r *deliveryRepo) FindAll() ([]model.Delivery, error) {
	var deliveries []model.Delivery
	err := r.db.Preload("Order").Order("created_at DESC").Find(&deliveries).Error
	return deliveries, err
}

func (r *deliveryRepo) FindByID(id uuid.UUID) (*model.Delivery, error) {
	var delivery model.Delivery
	if err := r.db.Preload("Order").First(&delivery, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &delivery, nil
}

func (r *deliveryRepo) FindByOrder(orderID uuid.UUID) ([]model.Delivery, error) {
	var deliveries []model.Delivery
	err := r.db.Where("order_id = ?", orderID).Order("created_at DESC").Find(&deliveries).Error
	return deliveries, err
}

func (r *deliveryRepo) FindByClient(clientID uuid.UUID) ([]model.Delivery, error) {
	var deliveries []model.Delivery
	err := r.db.Preload("Order").
		Joins("JOIN orders ON orders.id = deliveries.order_id").
		Where("orders.client_id = ?", clientID).
		Order("deliveries.created_at DESC").
		Find(&deliveries).Error
	return deliveries, err
}

// Update writes the delivery row only. The preloaded Order must not be
// upserted along with it, or order_id gets re-pointed at a fresh row.
func (r *deliveryRepo) Update(delivery *model.Delivery) error {
	return r.db.Omit(clause.Associations).Save(delivery).Error
}

func (r *deliveryRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Delivery{}, "id = ?", id).Error
}

func (r *deliveryRepo) CountByStatus(clientID *uuid.UUID, status model.DeliveryStatus) (int64, error) {
	q := r.db.Model(&model.Delivery{}).Where("deliveries.status = ?", status)
	if clientID != nil {
		q = q.Joins("JOIN orders ON orders.id = deliveries.order_id").
			Where("orders.client_id = ?", *clientID)
	}
	var count int64
	err := q.Count(&count).Error
	return count, err
}
