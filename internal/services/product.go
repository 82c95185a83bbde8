package services

import (
	"errors"
	"strings"

	"github.com/diewo77/invoicegen/internal/models"
	"github.com/diewo77/invoicegen/validation"
	"gorm.io/gorm"
)

// ProductService owns the per-user product ledger.
type ProductService struct {
	DB *gorm.DB
}

func NewProductService(db *gorm.DB) *ProductService { return &ProductService{DB: db} }

func validateProduct(name string, quantity, rate float64) error {
	v := validation.Violations{}
	validation.Required("name", name, v)
	validation.PositiveFloat("quantity", quantity, v)
	validation.PositiveFloat("rate", rate, v)
	if !v.Empty() {
		return invalid(v)
	}
	return nil
}

// Add validates input, derives the total and appends a row owned by userID.
func (s *ProductService) Add(userID uint, name string, quantity, rate float64) (models.Product, error) {
	if userID == 0 {
		return models.Product{}, ErrUnauthenticated
	}
	if err := validateProduct(name, quantity, rate); err != nil {
		return models.Product{}, err
	}
	p := models.Product{
		UserID:   userID,
		Name:     strings.TrimSpace(name),
		Quantity: quantity,
		Rate:     rate,
		Total:    quantity * rate,
	}
	if err := s.DB.Create(&p).Error; err != nil {
		return models.Product{}, err
	}
	return p, nil
}

// List returns the caller's products newest first. Anonymous callers get an
// empty slice, not an error.
func (s *ProductService) List(userID uint) ([]models.Product, error) {
	products := []models.Product{}
	if userID == 0 {
		return products, nil
	}
	err := s.DB.Where("user_id = ?", userID).Order("id desc").Find(&products).Error
	return products, err
}

// Update fully replaces the mutable fields and recomputes the total.
// Records owned by someone else look absent.
func (s *ProductService) Update(userID, id uint, name string, quantity, rate float64) (models.Product, error) {
	if userID == 0 {
		return models.Product{}, ErrUnauthenticated
	}
	if err := validateProduct(name, quantity, rate); err != nil {
		return models.Product{}, err
	}
	var p models.Product
	if err := s.DB.Where("id = ? AND user_id = ?", id, userID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, ErrNotFound
		}
		return models.Product{}, err
	}
	p.Name = strings.TrimSpace(name)
	p.Quantity = quantity
	p.Rate = rate
	p.Total = quantity * rate
	if err := s.DB.Save(&p).Error; err != nil {
		return models.Product{}, err
	}
	return p, nil
}

// Delete removes the row. No cascade: invoices keep their own snapshots.
func (s *ProductService) Delete(userID, id uint) error {
	if userID == 0 {
		return ErrUnauthenticated
	}
	res := s.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
