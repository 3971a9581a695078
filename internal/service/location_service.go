package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/cmms-platform/cmms-service/internal/errs"
	"github.com/cmms-platform/cmms-service/internal/model"
)

type LocationService struct {
	db *gorm.DB
}

func NewLocationService(db *gorm.DB) *LocationService {
	return &LocationService{db: db}
}

func (s *LocationService) Create(ctx context.Context, l *model.Location) error {
	return s.db.WithContext(ctx).Create(l).Error
}

func (s *LocationService) GetByID(ctx context.Context, id uint64) (*model.Location, error) {
	var l model.Location
	if err := s.db.WithContext(ctx).First(&l, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrLocationNotFound
		}
		return nil, err
	}
	return &l, nil
}

func (s *LocationService) List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]model.Location, int64, error) {
	var items []model.Location
	var total int64
	tx := s.db.WithContext(ctx).Model(&model.Location{})
	for k, v := range filter {
		tx = tx.Where(k, v)
	}
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	if offset > 0 {
		tx = tx.Offset(offset)
	}
	if err := tx.Order("name ASC").Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *LocationService) Update(ctx context.Context, id uint64, changes map[string]interface{}) (*model.Location, error) {
	var l model.Location
	if err := s.db.WithContext(ctx).First(&l, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrLocationNotFound
		}
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&l).Updates(changes).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *LocationService) Delete(ctx context.Context, id uint64) error {
	res := s.db.WithContext(ctx).Delete(&model.Location{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.ErrLocationNotFound
	}
	return nil
}
