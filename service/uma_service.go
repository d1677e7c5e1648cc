package service

import (
	"errors"
	"fmt"

	"umastagram/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UmaService 赛马娘图鉴（只读）
type UmaService struct {
	db *gorm.DB
}

func NewUmaService(db *gorm.DB) *UmaService {
	return &UmaService{db: db}
}

// GetAllUmas 获取全部赛马娘
func (s *UmaService) GetAllUmas() ([]model.Uma, error) {
	var umas []model.Uma
	err := s.db.Order("name ASC").Find(&umas).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query umas: %w", err)
	}
	return umas, nil
}

// GetUmaByID 按 ID 查赛马娘
func (s *UmaService) GetUmaByID(umaID uuid.UUID) (*model.Uma, error) {
	var uma model.Uma
	err := s.db.Where("id = ?", umaID).First(&uma).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to query uma: %w", err)
	}
	return &uma, nil
}
