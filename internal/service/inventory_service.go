package service

import (
	"encoding/json"
	"errors"

	"go-logistics-ws/internal/model"
	"go-logistics-ws/internal/repository"
	"go-logistics-ws/internal/ws"
	"go-logistics-ws/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrClientNotFound                = errors.New("client not found")
	ErrProductNotFound               = errors.New("product not found")
	ErrInventoryNotFound             = errors.New("inventory not found")
	ErrInsufficientInventory         = errors.New("insufficient inventory available")
	ErrCannotReleaseMoreThanReserved = errors.New("cannot release more than reserved quantity")
	ErrInvalidQuantity               = errors.New("quantity must be greater than zero")
)

// DefaultLowStockThreshold marks rows with available stock at or below this
// value as low stock.
const DefaultLowStockThreshold = 10

type CreateInventoryRequest struct {
	ClientID          uuid.UUID `json:"client_id" validate:"uuid_required"`
	ProductID         uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity          int       `json:"quantity" validate:"gte=0"`
	WarehouseLocation string    `json:"warehouse_location"`
}

type UpdateInventoryRequest struct {
	Quantity          *int    `json:"quantity" validate:"omitempty,gte=0"`
	ReservedQuantity  *int    `json:"reserved_quantity" validate:"omitempty,gte=0"`
	WarehouseLocation *string `json:"warehouse_location"`
}

type InventoryService interface {
	Create(req *CreateInventoryRequest, userID string) (*model.Inventory, error)
	Reserve(productID, clientID uuid.UUID, quantity int, userID string) error
	Release(productID, clientID uuid.UUID, quantity int, userID string) error
	Update(id uuid.UUID, req *UpdateInventoryRequest, userID string) (*model.Inventory, error)
	Delete(id uuid.UUID) error
	GetLowStock(clientID uuid.UUID, threshold int) ([]model.Inventory, error)
	GetAll() ([]model.Inventory, error)
	GetByClient(clientID uuid.UUID) ([]model.Inventory, error)
	GetByID(id uuid.UUID) (*model.Inventory, error)
}

type inventoryService struct {
	inventoryRepo repository.InventoryRepository
	userRepo      repository.UserRepository
	productRepo   repository.ProductRepository
	db            *gorm.DB
	wsHub         *ws.Hub
}

func NewInventoryService(
	invRepo repository.InventoryRepository,
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	db *gorm.DB,
	hub *ws.Hub,
) InventoryService {
	return &inventoryService{
		inventoryRepo: invRepo,
		userRepo:      userRepo,
		productRepo:   productRepo,
		db:            db,
		wsHub:         hub,
	}
}

func (s *inventoryService) Create(req *CreateInventoryRequest, userID string) (*model.Inventory, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	// Ledger rows may only be created for users with the client role.
	client, err := s.userRepo.FindByID(req.ClientID)
	if err != nil || !client.IsClient() {
		return nil, ErrClientNotFound
	}

	if _, err := s.productRepo.FindByID(req.ProductID); err != nil {
		return nil, ErrProductNotFound
	}

	inv := &model.Inventory{
		ClientID:          req.ClientID,
		ProductID:         req.ProductID,
		Quantity:          req.Quantity,
		ReservedQuantity:  0,
		WarehouseLocation: req.WarehouseLocation,
	}
	inv.CreatedBy = userID
	inv.UpdatedBy = userID

	if err := s.inventoryRepo.Create(inv); err != nil {
		return nil, err
	}

	s.broadcastStock("inventory_created", inv)
	return inv, nil
}

// Reserve places a soft hold: reserved_quantity grows, quantity is untouched.
func (s *inventoryService) Reserve(productID, clientID uuid.UUID, quantity int, userID string) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	var reserved *model.Inventory
	err := s.db.Transaction(func(tx *gorm.DB) error {
		inv, err := s.inventoryRepo.FindByPairForUpdate(tx, productID, clientID)
		if err != nil {
			return ErrInventoryNotFound
		}

		if inv.Available() < quantity {
			return ErrInsufficientInventory
		}

		if err := s.inventoryRepo.UpdateQuantities(tx, inv.ID, inv.Quantity, inv.ReservedQuantity+quantity, userID); err != nil {
			return err
		}

		inv.ReservedQuantity += quantity
		reserved = inv
		return nil
	})
	if err != nil {
		return err
	}

	s.broadcastStock("inventory_reserved", reserved)
	return nil
}

// Release fulfils a reservation: both quantity and reserved_quantity shrink.
// This is consumption of reserved stock, not a soft un-reserve.
func (s *inventoryService) Release(productID, clientID uuid.UUID, quantity int, userID string) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	var released *model.Inventory
	err := s.db.Transaction(func(tx *gorm.DB) error {
		inv, err := s.inventoryRepo.FindByPairForUpdate(tx, productID, clientID)
		if err != nil {
			return ErrInventoryNotFound
		}

		if quantity > inv.ReservedQuantity {
			return ErrCannotReleaseMoreThanReserved
		}

		if err := s.inventoryRepo.UpdateQuantities(tx, inv.ID, inv.Quantity-quantity, inv.ReservedQuantity-quantity, userID); err != nil {
			return err
		}

		inv.Quantity -= quantity
		inv.ReservedQuantity -= quantity
		released = inv
		return nil
	})
	if err != nil {
		return err
	}

	s.broadcastStock("inventory_released", released)
	return nil
}

func (s *inventoryService) Update(id uuid.UUID, req *UpdateInventoryRequest, userID string) (*model.Inventory, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	if _, err := s.inventoryRepo.FindByID(id); err != nil {
		return nil, ErrInventoryNotFound
	}

	fields := map[string]interface{}{"updated_by": userID}
	if req.Quantity != nil {
		fields["quantity"] = *req.Quantity
	}
	if req.ReservedQuantity != nil {
		fields["reserved_quantity"] = *req.ReservedQuantity
	}
	if req.WarehouseLocation != nil {
		fields["warehouse_location"] = *req.WarehouseLocation
	}

	if err := s.inventoryRepo.UpdateFields(id, fields); err != nil {
		return nil, err
	}

	return s.inventoryRepo.FindByID(id)
}

func (s *inventoryService) Delete(id uuid.UUID) error {
	if _, err := s.inventoryRepo.FindByID(id); err != nil {
		return ErrInventoryNotFound
	}
	return s.inventoryRepo.Delete(id)
}

func (s *inventoryService) GetLowStock(clientID uuid.UUID, threshold int) ([]model.Inventory, error) {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	return s.inventoryRepo.FindLowStock(clientID, threshold)
}

func (s *inventoryService) GetAll() ([]model.Inventory, error) {
	return s.inventoryRepo.FindAll()
}

func (s *inventoryService) GetByClient(clientID uuid.UUID) ([]model.Inventory, error) {
	return s.inventoryRepo.FindByClient(clientID)
}

func (s *inventoryService) GetByID(id uuid.UUID) (*model.Inventory, error) {
	inv, err := s.inventoryRepo.FindByID(id)
	if err != nil {
		return nil, ErrInventoryNotFound
	}
	return inv, nil
}

func (s *inventoryService) broadcastStock(action string, inv *model.Inventory) {
	if s.wsHub == nil || inv == nil {
		return
	}
	go func() {
		payload := map[string]interface{}{
			"type":   "stock_update",
			"action": action,
			"inventory": map[string]interface{}{
				"id":                inv.ID,
				"client_id":         inv.ClientID,
				"product_id":        inv.ProductID,
				"quantity":          inv.Quantity,
				"reserved_quantity": inv.ReservedQuantity,
				"available":         inv.Available(),
			},
		}
		msg, _ := json.Marshal(payload)
		s.wsHub.Broadcast <- msg
	}()
}
