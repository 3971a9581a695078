package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/cmms-platform/cmms-service/internal/errs"
	"github.com/cmms-platform/cmms-service/internal/model"
)

type PartService struct {
	db *gorm.DB
}

func NewPartService(db *gorm.DB) *PartService {
	return &PartService{db: db}
}

func (s *PartService) Create(ctx context.Context, p *model.Part) error {
	return s.db.WithContext(ctx).Create(p).Error
}

func (s *PartService) GetByID(ctx context.Context, id uint64) (*model.Part, error) {
	var p model.Part
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrPartNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *PartService) List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]model.Part, int64, error) {
	var items []model.Part
	var total int64
	tx := s.db.WithContext(ctx).Model(&model.Part{})
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

func (s *PartService) Update(ctx context.Context, id uint64, changes map[string]interface{}) (*model.Part, error) {
	var p model.Part
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrPartNotFound
		}
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&p).Updates(changes).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PartService) Delete(ctx context.Context, id uint64) error {
	res := s.db.WithContext(ctx).Delete(&model.Part{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.ErrPartNotFound
	}
	return nil
}

// AdjustStock changes the on-hand quantity by delta (negative for issue).
func (s *PartService) AdjustStock(ctx context.Context, id uint64, delta int) (*model.Part, error) {
	var p model.Part
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&p, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrPartNotFound
			}
			return err
		}
		q := p.Quantity + delta
		if q < 0 {
			q = 0
		}
		p.Quantity = q
		return tx.Model(&p).Update("quantity", q).Error
	})
	if err != nil {
		return nil, err
	}
	if p.BelowMinStock() {
		logrus.WithFields(logrus.Fields{
			"part_id":      p.ID,
			"quantity":     p.Quantity,
			"min_quantity": p.MinQuantity,
		}).Warn("part below minimum stock")
	}
	return &p, nil
}

// LowStock lists parts at or below their reorder threshold.
func (s *PartService) LowStock(ctx context.Context) ([]model.Part, error) {
	var items []model.Part
	err := s.db.WithContext(ctx).
		Where("min_quantity > 0 AND quantity < min_quantity").
		Order("name ASC").
		Find(&items).Error
	return items, err
}

// CreateBulk inserts imported parts in one statement.
func (s *PartService) CreateBulk(ctx context.Context, parts []model.Part) error {
	if len(parts) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Create(&parts).Error
}
