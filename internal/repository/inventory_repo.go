package repository

import (
	"go-logistics-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InventoryRepository interface {
	Create(inv *model.Inventory) error
	FindAll() ([]model.Inventory, error)
	FindByClient(clientID uuid.UUID) ([]model.Inventory, error)
	FindByID(id uuid.UUID) (*model.Inventory, error)
	// FindByPairForUpdate locks the oldest ledger row for the pair inside tx.
	FindByPairForUpdate(tx *gorm.DB, productID, clientID uuid.UUID) (*model.Inventory, error)
	// UpdateQuantities writes both stock counters in one statement (runs in tx).
	UpdateQuantities(tx *gorm.DB, id uuid.UUID, quantity, reserved int, updatedBy string) error
	UpdateFields(id uuid.UUID, fields map[string]interface{}) error
	Delete(id uuid.UUID) error
	FindLowStock(clientID uuid.UUID, threshold int) ([]model.Inventory, error)
	CountLowStock(clientID uuid.UUID, threshold int) (int64, error)
}

type inventoryRepo struct {
	db *gorm.DB
}

func NewInventoryRepo(db *gorm.DB) InventoryRepository {
	return &inventoryRepo{db}
}

func (r *inventoryRepo) Create(inv *model.Inventory) error {
	return r.db.Create(inv).Error
}

func (r *inventoryRepo) FindAll() ([]model.Inventory, error) {
	var rows []model.Inventory
	err := r.db.Preload("Product").Order("created_at ASC").Find(&rows).Error
	return rows, err
}

func (r *inventoryRepo) FindByClient(clientID uuid.UUID) ([]model.Inventory, error) {
	var rows []model.Inventory
	err := r.db.Preload("Product").Where("client_id = ?", clientID).Order("created_at ASC").Find(&rows).Error
	return rows, err
}

func (r *inventoryRepo) FindByID(id uuid.UUID) (*model.Inventory, error) {
	var inv model.Inventory
	if err := r.db.Preload("Product").First(&inv, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

// Duplicate (client, product) rows are permitted; resolve to the oldest row
// so repeated reserve/release calls hit the same ledger entry.
func (r *inventoryRepo) FindByPairForUpdate(tx *gorm.DB, productID, clientID uuid.UUID) (*model.Inventory, error) {
	var inv model.Inventory
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_id = ? AND client_id = ?", productID, clientID).
		Order("created_at ASC").
		First(&inv).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *inventoryRepo) UpdateQuantities(tx *gorm.DB, id uuid.UUID, quantity, reserved int, updatedBy string) error {
	return tx.Model(&model.Inventory{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"quantity":          quantity,
			"reserved_quantity": reserved,
			"updated_by":        updatedBy,
		}).Error
}

func (r *inventoryRepo) UpdateFields(id uuid.UUID, fields map[string]interface{}) error {
	return r.db.Model(&model.Inventory{}).Where("id = ?", id).Updates(fields).Error
}

func (r *inventoryRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Inventory{}, "id = ?", id).Error
}

// Threshold is inclusive: available <= threshold counts as low stock.
// A zero clientID means no client filter.
func (r *inventoryRepo) FindLowStock(clientID uuid.UUID, threshold int) ([]model.Inventory, error) {
	var rows []model.Inventory
	query := r.db.Preload("Product").Where("quantity - reserved_quantity <= ?", threshold)
	if clientID != uuid.Nil {
		query = query.Where("client_id = ?", clientID)
	}
	err := query.Order("quantity - reserved_quantity ASC").Find(&rows).Error
	return rows, err
}

func (r *inventoryRepo) CountLowStock(clientID uuid.UUID, threshold int) (int64, error) {
	var count int64
	err := r.db.Model(&model.Inventory{}).
		Where("client_id = ? AND quantity - reserved_quantity <= ?", clientID, threshold).
		Count(&count).Error
	return count, err
}
