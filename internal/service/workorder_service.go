package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/cmms-platform/cmms-service/internal/errs"
	"github.com/cmms-platform/cmms-service/internal/model"
)

type WorkOrderService struct {
	db *gorm.DB
}

func NewWorkOrderService(db *gorm.DB) *WorkOrderService {
	return &WorkOrderService{db: db}
}

func (s *WorkOrderService) Create(ctx context.Context, w *model.WorkOrder) error {
	if w.Status == "" {
		w.Status = model.WorkOrderStatusOpen
	}
	if w.Priority == "" {
		w.Priority = model.PriorityMedium
	}
	return s.db.WithContext(ctx).Create(w).Error
}

func (s *WorkOrderService) GetByID(ctx context.Context, id uint64) (*model.WorkOrder, error) {
	var w model.WorkOrder
	if err := s.db.WithContext(ctx).First(&w, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrWorkOrderNotFound
		}
		return nil, err
	}
	return &w, nil
}

func (s *WorkOrderService) List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]model.WorkOrder, int64, error) {
	var items []model.WorkOrder
	var total int64
	tx := s.db.WithContext(ctx).Model(&model.WorkOrder{})
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

func (s *WorkOrderService) Update(ctx context.Context, id uint64, changes map[string]interface{}) (*model.WorkOrder, error) {
	var w model.WorkOrder
	if err := s.db.WithContext(ctx).First(&w, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrWorkOrderNotFound
		}
		return nil, err
	}
	// completed_at follows the status change
	if st, ok := changes["status"]; ok {
		if model.WorkOrderStatus(toString(st)) == model.WorkOrderStatusCompleted && w.CompletedAt == nil {
			now := time.Now()
			changes["completed_at"] = &now
		}
	}
	if err := s.db.WithContext(ctx).Model(&w).Updates(changes).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *WorkOrderService) Delete(ctx context.Context, id uint64) error {
	res := s.db.WithContext(ctx).Delete(&model.WorkOrder{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.ErrWorkOrderNotFound
	}
	return nil
}

func toString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	if st, ok := v.(model.WorkOrderStatus); ok {
		return string(st)
	}
	return ""
}
