package service

import (
	"encoding/json"
	"errors"
	"math"

	"go-logistics-ws/internal/model"
	"go-logistics-ws/internal/repository"
	"go-logistics-ws/internal/ws"
	"go-logistics-ws/pkg/ordernum"
	"go-logistics-ws/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderItemNotFound = errors.New("order item not found")
)

// orderNumberRetries bounds the regenerate loop when an order number collides
// with the unique index.
const orderNumberRetries = 3

type CreateOrderRequest struct {
	ClientID        uuid.UUID `json:"client_id" validate:"uuid_required"`
	ShippingAddress string    `json:"shipping_address" validate:"required"`
	BillingAddress  string    `json:"billing_address"`
	Notes           string    `json:"notes"`
}

type AddOrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
	UnitPrice float64   `json:"unit_price" validate:"required,gt=0"`
}

type UpdateOrderRequest struct {
	Status          *model.OrderStatus `json:"status" validate:"omitempty,oneof=pending confirmed processing shipped delivered cancelled"`
	ShippingAddress *string            `json:"shipping_address"`
	BillingAddress  *string            `json:"billing_address"`
	Notes           *string            `json:"notes"`
}

type OrderService interface {
	Create(req *CreateOrderRequest, userID string) (*model.Order, error)
	AddItem(orderID uuid.UUID, req *AddOrderItemRequest, userID string) (*model.OrderItem, error)
	RemoveItem(itemID uuid.UUID, userID string) error
	RecalculateTotal(orderID uuid.UUID) (float64, error)
	Update(id uuid.UUID, req *UpdateOrderRequest, userID string) (*model.Order, error)
	Delete(id uuid.UUID) error
	GetAll() ([]model.Order, error)
	GetByClient(clientID uuid.UUID) ([]model.Order, error)
	GetByID(id uuid.UUID) (*model.Order, error)
	GetItems(orderID uuid.UUID) ([]model.OrderItem, error)
}

type orderService struct {
	orderRepo   repository.OrderRepository
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	db          *gorm.DB
	wsHub       *ws.Hub
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	db *gorm.DB,
	hub *ws.Hub,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		userRepo:    userRepo,
		productRepo: productRepo,
		db:          db,
		wsHub:       hub,
	}
}

// round2 keeps monetary values at two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (s *orderService) Create(req *CreateOrderRequest, userID string) (*model.Order, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	// Any existing user may own an order; no role check here.
	if _, err := s.userRepo.FindByID(req.ClientID); err != nil {
		return nil, ErrClientNotFound
	}

	order := &model.Order{
		ClientID:        req.ClientID,
		Status:          model.OrderPending,
		TotalAmount:     0,
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  req.BillingAddress,
		Notes:           req.Notes,
	}
	order.CreatedBy = userID
	order.UpdatedBy = userID

	// The random suffix makes collisions astronomically unlikely, but the
	// unique index is the actual guarantee; regenerate on conflict.
	var err error
	for attempt := 0; attempt < orderNumberRetries; attempt++ {
		order.OrderNumber = ordernum.Order()
		err = s.orderRepo.Create(order)
		if err == nil || !errors.Is(err, gorm.ErrDuplicatedKey) {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	s.broadcastOrder("order_created", order.ID, map[string]interface{}{
		"order_number": order.OrderNumber,
		"client_id":    order.ClientID,
		"status":       order.Status,
	})
	return order, nil
}

func (s *orderService) AddItem(orderID uuid.UUID, req *AddOrderItemRequest, userID string) (*model.OrderItem, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	if _, err := s.productRepo.FindByID(req.ProductID); err != nil {
		return nil, ErrProductNotFound
	}

	var item *model.OrderItem
	var total float64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.FindForUpdate(tx, orderID)
		if err != nil {
			return ErrOrderNotFound
		}

		item = &model.OrderItem{
			OrderID:   order.ID,
			ProductID: req.ProductID,
			Quantity:  req.Quantity,
			UnitPrice: req.UnitPrice,
			// Unit price comes from the caller, not the catalog: the order
			// keeps the price at the time of sale.
			TotalPrice: round2(float64(req.Quantity) * req.UnitPrice),
		}
		item.CreatedBy = userID
		item.UpdatedBy = userID

		if err := s.orderRepo.CreateItem(tx, item); err != nil {
			return err
		}

		t, err := s.recalculateInTx(tx, order.ID)
		if err != nil {
			return err
		}
		total = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcastOrder("order_item_added", orderID, map[string]interface{}{
		"item_id":      item.ID,
		"product_id":   item.ProductID,
		"quantity":     item.Quantity,
		"total_price":  item.TotalPrice,
		"total_amount": total,
	})
	return item, nil
}

func (s *orderService) RemoveItem(itemID uuid.UUID, userID string) error {
	item, err := s.orderRepo.FindItemByID(itemID)
	if err != nil {
		return ErrOrderItemNotFound
	}

	var total float64
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.orderRepo.FindForUpdate(tx, item.OrderID); err != nil {
			return ErrOrderNotFound
		}

		if err := s.orderRepo.DeleteItem(tx, itemID); err != nil {
			return err
		}

		t, err := s.recalculateInTx(tx, item.OrderID)
		if err != nil {
			return err
		}
		total = t
		return nil
	})
	if err != nil {
		return err
	}

	s.broadcastOrder("order_item_removed", item.OrderID, map[string]interface{}{
		"item_id":      itemID,
		"total_amount": total,
	})
	return nil
}

// RecalculateTotal re-derives total_amount from the order's items. An order
// with no items totals 0. Idempotent; safe to call for reconciliation.
func (s *orderService) RecalculateTotal(orderID uuid.UUID) (float64, error) {
	var total float64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.orderRepo.FindForUpdate(tx, orderID); err != nil {
			return ErrOrderNotFound
		}
		t, err := s.recalculateInTx(tx, orderID)
		if err != nil {
			return err
		}
		total = t
		return nil
	})
	return total, err
}

// recalculateInTx is the only writer of total_amount. Callers must hold the
// order row lock in tx.
func (s *orderService) recalculateInTx(tx *gorm.DB, orderID uuid.UUID) (float64, error) {
	sum, err := s.orderRepo.SumItemTotals(tx, orderID)
	if err != nil {
		return 0, err
	}
	total := round2(sum)
	if err := s.orderRepo.UpdateFields(tx, orderID, map[string]interface{}{"total_amount": total}); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *orderService) Update(id uuid.UUID, req *UpdateOrderRequest, userID string) (*model.Order, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		return nil, ErrOrderNotFound
	}

	fields := map[string]interface{}{"updated_by": userID}
	if req.Status != nil {
		// No transition graph: any status may follow any other.
		fields["status"] = *req.Status
	}
	if req.ShippingAddress != nil {
		fields["shipping_address"] = *req.ShippingAddress
	}
	if req.BillingAddress != nil {
		fields["billing_address"] = *req.BillingAddress
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}

	if err := s.orderRepo.UpdateFields(nil, id, fields); err != nil {
		return nil, err
	}

	if req.Status != nil && *req.Status != order.Status {
		s.broadcastOrder("order_status_changed", id, map[string]interface{}{
			"order_number": order.OrderNumber,
			"old_status":   order.Status,
			"new_status":   *req.Status,
		})
	}

	return s.orderRepo.FindByID(id)
}

// Delete removes the order's items first, then the order itself, so the
// item rows never dangle.
func (s *orderService) Delete(id uuid.UUID) error {
	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		return ErrOrderNotFound
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.DeleteItemsByOrder(tx, id); err != nil {
			return err
		}
		return s.orderRepo.Delete(tx, id)
	})
	if err != nil {
		return err
	}

	s.broadcastOrder("order_deleted", id, map[string]interface{}{
		"order_number": order.OrderNumber,
	})
	return nil
}

func (s *orderService) GetAll() ([]model.Order, error) {
	return s.orderRepo.FindAll()
}

func (s *orderService) GetByClient(clientID uuid.UUID) ([]model.Order, error) {
	return s.orderRepo.FindByClient(clientID)
}

func (s *orderService) GetByID(id uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *orderService) GetItems(orderID uuid.UUID) ([]model.OrderItem, error) {
	return s.orderRepo.FindItems(orderID)
}

func (s *orderService) broadcastOrder(action string, orderID uuid.UUID, detail map[string]interface{}) {
	if s.wsHub == nil {
		return
	}
	go func() {
		payload := map[string]interface{}{
			"type":     "order_update",
			"action":   action,
			"order_id": orderID,
		}
		for k, v := range detail {
			payload[k] = v
		}
		msg, _ := json.Marshal(payload)
		s.wsHub.Broadcast <- msg
	}()
}
