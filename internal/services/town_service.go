package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/maeul-dev/maeul-backend/internal/models"
	"gorm.io/gorm"
)

var ErrTownNotFound = errors.New("town not found")

// TownService manages the immutable town reference data.
type TownService struct {
	db *gorm.DB
}

func NewTownService(db *gorm.DB) *TownService {
	return &TownService{db: db}
}

// FindOrCreateByAddress resolves a town by its unique address, creating it
// on first use. Concurrent creators race on the unique index; the loser
// re-reads the winner's row.
func (s *TownService) FindOrCreateByAddress(address string) (*models.Town, error) {
	var town models.Town
	err := s.db.Where("address = ?", address).First(&town).Error
	if err == nil {
		return &town, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up town: %w", err)
	}

	town = models.Town{ID: uuid.New(), Address: address}
	if createErr := s.db.Create(&town).Error; createErr != nil {
		if readErr := s.db.Where("address = ?", address).First(&town).Error; readErr != nil {
			return nil, fmt.Errorf("failed to create town: %w", createErr)
		}
	}
	return &town, nil
}

func (s *TownService) GetByID(id uuid.UUID) (*models.Town, error) {
	var town models.Town
	if err := s.db.First(&town, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTownNotFound
		}
		return nil, err
	}
	return &town, nil
}

// List returns all towns, newest first. Admin surface only.
func (s *TownService) List(limit, offset int) ([]models.Town, int64, error) {
	var towns []models.Town
	var total int64

	s.db.Model(&models.Town{}).Count(&total)

	if err := s.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&towns).Error; err != nil {
		return nil, 0, err
	}
	return towns, total, nil
}
