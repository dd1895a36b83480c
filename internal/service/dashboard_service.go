package service

import (
	"context"
	"fmt"

	"go-logistics-ws/internal/model"
	"go-logistics-ws/internal/repository"
	"go-logistics-ws/pkg/cache"

	"github.com/google/uuid"
)

// ClientStats is the per-client dashboard overview.
type ClientStats struct {
	PendingOrders       int64 `json:"pending_orders"`
	ProcessingOrders    int64 `json:"processing_orders"`
	DeliveredOrders     int64 `json:"delivered_orders"`
	LowStockCount       int64 `json:"low_stock_count"`
	DeliveriesInTransit int64 `json:"deliveries_in_transit"`
}

// AdminStats is the system-wide dashboard overview.
type AdminStats struct {
	TotalClients        int64   `json:"total_clients"`
	TotalProducts       int64   `json:"total_products"`
	PendingOrders       int64   `json:"pending_orders"`
	DeliveredOrders     int64   `json:"delivered_orders"`
	DeliveredRevenue    float64 `json:"delivered_revenue"`
	DeliveriesInTransit int64   `json:"deliveries_in_transit"`
}

type DashboardService interface {
	GetClientStats(ctx context.Context, clientID uuid.UUID) (*ClientStats, error)
	GetAdminStats(ctx context.Context) (*AdminStats, error)
}

type dashboardService struct {
	orderRepo     repository.OrderRepository
	inventoryRepo repository.InventoryRepository
	deliveryRepo  repository.DeliveryRepository
	userRepo      repository.UserRepository
	productRepo   repository.ProductRepository
	cache         *cache.Cache
}

func NewDashboardService(
	orderRepo repository.OrderRepository,
	inventoryRepo repository.InventoryRepository,
	deliveryRepo repository.DeliveryRepository,
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	c *cache.Cache,
) DashboardService {
	return &dashboardService{
		orderRepo:     orderRepo,
		inventoryRepo: inventoryRepo,
		deliveryRepo:  deliveryRepo,
		userRepo:      userRepo,
		productRepo:   productRepo,
		cache:         c,
	}
}

func (s *dashboardService) GetClientStats(ctx context.Context, clientID uuid.UUID) (*ClientStats, error) {
	key := fmt.Sprintf("dashboard:client:%s", clientID)

	var stats ClientStats
	if hit, _ := s.cache.Get(ctx, key, &stats); hit {
		return &stats, nil
	}

	var err error
	if stats.PendingOrders, err = s.orderRepo.CountByStatus(&clientID, model.OrderPending); err != nil {
		return nil, err
	}
	if stats.ProcessingOrders, err = s.orderRepo.CountByStatus(&clientID, model.OrderProcessing); err != nil {
		return nil, err
	}
	if stats.DeliveredOrders, err = s.orderRepo.CountByStatus(&clientID, model.OrderDelivered); err != nil {
		return nil, err
	}
	if stats.LowStockCount, err = s.inventoryRepo.CountLowStock(clientID, DefaultLowStockThreshold); err != nil {
		return nil, err
	}
	if stats.DeliveriesInTransit, err = s.deliveryRepo.CountByStatus(&clientID, model.DeliveryInTransit); err != nil {
		return nil, err
	}

	_ = s.cache.Set(ctx, key, &stats)
	return &stats, nil
}

func (s *dashboardService) GetAdminStats(ctx context.Context) (*AdminStats, error) {
	const key = "dashboard:admin"

	var stats AdminStats
	if hit, _ := s.cache.Get(ctx, key, &stats); hit {
		return &stats, nil
	}

	var err error
	if stats.TotalClients, err = s.userRepo.CountByRole(model.RoleClient); err != nil {
		return nil, err
	}
	if stats.TotalProducts, err = s.productRepo.Count(); err != nil {
		return nil, err
	}
	if stats.PendingOrders, err = s.orderRepo.CountByStatus(nil, model.OrderPending); err != nil {
		return nil, err
	}
	if stats.DeliveredOrders, err = s.orderRepo.CountByStatus(nil, model.OrderDelivered); err != nil {
		return nil, err
	}
	if stats.DeliveredRevenue, err = s.orderRepo.SumDeliveredRevenue(); err != nil {
		return nil, err
	}
	if stats.DeliveriesInTransit, err = s.deliveryRepo.CountByStatus(nil, model.DeliveryInTransit); err != nil {
		return nil, err
	}

	_ = s.cache.Set(ctx, key, &stats)
	return &stats, nil
}
