package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/cmms-platform/cmms-service/internal/errs"
	"github.com/cmms-platform/cmms-service/internal/model"
)

type AssetService struct {
	db *gorm.DB
}

func NewAssetService(db *gorm.DB) *AssetService {
	return &AssetService{db: db}
}

func (s *AssetService) Create(ctx context.Context, a *model.Asset) error {
	return s.db.WithContext(ctx).Create(a).Error
}

func (s *AssetService) GetByID(ctx context.Context, id uint64) (*model.Asset, error) {
	var a model.Asset
	if err := s.db.WithContext(ctx).First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrAssetNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (s *AssetService) List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]model.Asset, int64, error) {
	var items []model.Asset
	var total int64
	tx := s.db.WithContext(ctx).Model(&model.Asset{})
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
	if err := tx.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *AssetService) Update(ctx context.Context, id uint64, changes map[string]interface{}) (*model.Asset, error) {
	var a model.Asset
	if err := s.db.WithContext(ctx).First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrAssetNotFound
		}
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&a).Updates(changes).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *AssetService) Delete(ctx context.Context, id uint64) error {
	res := s.db.WithContext(ctx).Delete(&model.Asset{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.ErrAssetNotFound
	}
	return nil
}

// CreateBulk inserts imported assets in one statement. Used by the xlsx
// importer.
func (s *AssetService) CreateBulk(ctx context.Context, assets []model.Asset) error {
	if len(assets) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Create(&assets).Error
}
