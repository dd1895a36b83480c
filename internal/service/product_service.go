package service

import (
	"errors"

	"go-logistics-ws/internal/model"
	"go-logistics-ws/internal/repository"
	"go-logistics-ws/pkg/validator"

	"github.com/google/uuid"
)

var ErrSKUExists = errors.New("SKU already exists")

type ProductService interface {
	Create(req *model.Product, userID string) error
	Update(id uuid.UUID, req *model.Product, userID string) (*model.Product, error)
	Delete(id uuid.UUID) error
	GetAll() ([]model.Product, error)
	GetByID(id uuid.UUID) (*model.Product, error)
}

type productService struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

func (s *productService) Create(req *model.Product, userID string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return validationError(errs)
	}

	existing, _ := s.productRepo.FindBySKU(req.SKU)
	if existing != nil && existing.ID != uuid.Nil {
		return ErrSKUExists
	}

	req.CreatedBy = userID
	req.UpdatedBy = userID
	return s.productRepo.Create(req)
}

func (s *productService) Update(id uuid.UUID, req *model.Product, userID string) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	existing, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	if req.SKU != existing.SKU {
		dup, _ := s.productRepo.FindBySKU(req.SKU)
		if dup != nil && dup.ID != uuid.Nil {
			return nil, ErrSKUExists
		}
	}

	existing.SKU = req.SKU
	existing.Name = req.Name
	existing.Description = req.Description
	existing.UnitPrice = req.UnitPrice
	existing.Weight = req.Weight
	existing.Dimensions = req.Dimensions
	existing.UpdatedBy = userID

	if err := s.productRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *productService) Delete(id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		return ErrProductNotFound
	}
	return s.productRepo.Delete(id)
}

func (s *productService) GetAll() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *productService) GetByID(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}
