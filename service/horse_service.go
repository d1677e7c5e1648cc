package service

import (
	"errors"
	"fmt"

	"umastagram/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HorseService 原型马图鉴（只读）
type HorseService struct {
	db *gorm.DB
}

func NewHorseService(db *gorm.DB) *HorseService {
	return &HorseService{db: db}
}

// GetAllHorses 获取全部原型马
func (s *HorseService) GetAllHorses() ([]model.Horse, error) {
	var horses []model.Horse
	err := s.db.Order("name ASC").Find(&horses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query horses: %w", err)
	}
	return horses, nil
}

// GetHorseByID 按 ID 查原型马
func (s *HorseService) GetHorseByID(horseID uuid.UUID) (*model.Horse, error) {
	var horse model.Horse
	err := s.db.Where("id = ?", horseID).First(&horse).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to query horse: %w", err)
	}
	return &horse, nil
}
