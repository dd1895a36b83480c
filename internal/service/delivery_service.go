package service

import (
	"encoding/json"
	"errors"
	"time"

	"go-logistics-ws/internal/model"
	"go-logistics-ws/internal/repository"
	"go-logistics-ws/internal/ws"
	"go-logistics-ws/pkg/ordernum"
	"go-logistics-ws/pkg/validator"

	"github.com/google/uuid"
)

var ErrDeliveryNotFound = errors.New("delivery not found")

type CreateDeliveryRequest struct {
	OrderID               uuid.UUID  `json:"order_id" validate:"uuid_required"`
	Carrier               string     `json:"carrier"`
	EstimatedDeliveryDate *time.Time `json:"estimated_delivery_date"`
	Notes                 string     `json:"notes"`
}

type UpdateDeliveryRequest struct {
	Status                *model.DeliveryStatus `json:"status" validate:"omitempty,oneof=pending in_transit out_for_delivery delivered failed"`
	Carrier               *string               `json:"carrier"`
	EstimatedDeliveryDate *time.Time            `json:"estimated_delivery_date"`
	ActualDeliveryDate    *time.Time            `json:"actual_delivery_date"`
	Notes                 *string               `json:"notes"`
}

type DeliveryService interface {
	Create(req *CreateDeliveryRequest, userID string) (*model.Delivery, error)
	Update(id uuid.UUID, req *UpdateDeliveryRequest, userID string) (*model.Delivery, error)
	Delete(id uuid.UUID) error
	GetAll() ([]model.Delivery, error)
	GetByID(id uuid.UUID) (*model.Delivery, error)
	GetByOrder(orderID uuid.UUID) ([]model.Delivery, error)
	GetByClient(clientID uuid.UUID) ([]model.Delivery, error)
}

type deliveryService struct {
	deliveryRepo repository.DeliveryRepository
	orderRepo    repository.OrderRepository
	wsHub        *ws.Hub
}

func NewDeliveryService(deliveryRepo repository.DeliveryRepository, orderRepo repository.OrderRepository, hub *ws.Hub) DeliveryService {
	return &deliveryService{
		deliveryRepo: deliveryRepo,
		orderRepo:    orderRepo,
		wsHub:        hub,
	}
}

func (s *deliveryService) Create(req *CreateDeliveryRequest, userID string) (*model.Delivery, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	if _, err := s.orderRepo.FindByID(req.OrderID); err != nil {
		return nil, ErrOrderNotFound
	}

	delivery := &model.Delivery{
		OrderID:               req.OrderID,
		TrackingNumber:        ordernum.Tracking(),
		Status:                model.DeliveryPending,
		Carrier:               req.Carrier,
		EstimatedDeliveryDate: req.EstimatedDeliveryDate,
		Notes:                 req.Notes,
	}
	delivery.CreatedBy = userID
	delivery.UpdatedBy = userID

	if err := s.deliveryRepo.Create(delivery); err != nil {
		return nil, err
	}

	s.broadcastDelivery("delivery_created", delivery)
	return delivery, nil
}

func (s *deliveryService) Update(id uuid.UUID, req *UpdateDeliveryRequest, userID string) (*model.Delivery, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	delivery, err := s.deliveryRepo.FindByID(id)
	if err != nil {
		return nil, ErrDeliveryNotFound
	}

	statusChanged := false
	if req.Status != nil && *req.Status != delivery.Status {
		// Free-form status updates; no transition graph is enforced.
		delivery.Status = *req.Status
		statusChanged = true
	}
	if req.Carrier != nil {
		delivery.Carrier = *req.Carrier
	}
	if req.EstimatedDeliveryDate != nil {
		delivery.EstimatedDeliveryDate = req.EstimatedDeliveryDate
	}
	if req.ActualDeliveryDate != nil {
		delivery.ActualDeliveryDate = req.ActualDeliveryDate
	}
	if req.Notes != nil {
		delivery.Notes = *req.Notes
	}
	delivery.UpdatedBy = userID

	if err := s.deliveryRepo.Update(delivery); err != nil {
		return nil, err
	}

	if statusChanged {
		s.broadcastDelivery("delivery_status_changed", delivery)
	}
	return delivery, nil
}

func (s *deliveryService) Delete(id uuid.UUID) error {
	if _, err := s.deliveryRepo.FindByID(id); err != nil {
		return ErrDeliveryNotFound
	}
	return s.deliveryRepo.Delete(id)
}

func (s *deliveryService) GetAll() ([]model.Delivery, error) {
	return s.deliveryRepo.FindAll()
}

func (s *deliveryService) GetByID(id uuid.UUID) (*model.Delivery, error) {
	delivery, err := s.deliveryRepo.FindByID(id)
	if err != nil {
		return nil, ErrDeliveryNotFound
	}
	return delivery, nil
}

func (s *deliveryService) GetByOrder(orderID uuid.UUID) ([]model.Delivery, error) {
	return s.deliveryRepo.FindByOrder(orderID)
}

func (s *deliveryService) GetByClient(clientID uuid.UUID) ([]model.Delivery, error) {
	return s.deliveryRepo.FindByClient(clientID)
}

func (s *deliveryService) broadcastDelivery(action string, delivery *model.Delivery) {
	if s.wsHub == nil {
		return
	}
	go func() {
		payload := map[string]interface{}{
			"type":   "delivery_update",
			"action": action,
			"delivery": map[string]interface{}{
				"id":              delivery.ID,
				"order_id":        delivery.OrderID,
				"tracking_number": delivery.TrackingNumber,
				"status":          delivery.Status,
			},
		}
		msg, _ := json.Marshal(payload)
		s.wsHub.Broadcast <- msg
	}()
}
