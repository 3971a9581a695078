package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/cmms-platform/cmms-service/internal/errs"
	"github.com/cmms-platform/cmms-service/internal/model"
)

type PMScheduleService struct {
	db *gorm.DB
}

func NewPMScheduleService(db *gorm.DB) *PMScheduleService {
	return &PMScheduleService{db: db}
}

func (s *PMScheduleService) Create(ctx context.Context, p *model.PMSchedule) error {
	if p.IntervalCount < 1 {
		p.IntervalCount = 1
	}
	return s.db.WithContext(ctx).Create(p).Error
}

func (s *PMScheduleService) GetByID(ctx context.Context, id uint64) (*model.PMSchedule, error) {
	var p model.PMSchedule
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrPMScheduleNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *PMScheduleService) List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]model.PMSchedule, int64, error) {
	var items []model.PMSchedule
	var total int64
	tx := s.db.WithContext(ctx).Model(&model.PMSchedule{})
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
	if err := tx.Order("next_due_at ASC").Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *PMScheduleService) Update(ctx context.Context, id uint64, changes map[string]interface{}) (*model.PMSchedule, error) {
	var p model.PMSchedule
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrPMScheduleNotFound
		}
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&p).Updates(changes).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PMScheduleService) Delete(ctx context.Context, id uint64) error {
	res := s.db.WithContext(ctx).Delete(&model.PMSchedule{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.ErrPMScheduleNotFound
	}
	return nil
}

// MarkDone records a completed PM pass and advances the next due date past
// doneAt.
func (s *PMScheduleService) MarkDone(ctx context.Context, id uint64, doneAt time.Time) (*model.PMSchedule, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	next := p.NextAfter(doneAt)
	changes := map[string]interface{}{
		"last_done_at": &doneAt,
		"next_due_at":  next,
	}
	if err := s.db.WithContext(ctx).Model(p).Updates(changes).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// CalendarEntry is one computed PM occurrence for the calendar view.
type CalendarEntry struct {
	ScheduleID uint64         `json:"schedule_id"`
	AssetID    uint64         `json:"asset_id"`
	Title      string         `json:"title"`
	Priority   model.Priority `json:"priority"`
	DueAt      time.Time      `json:"due_at"`
}

// Calendar expands the active schedules into occurrences within [from, to).
func (s *PMScheduleService) Calendar(ctx context.Context, from, to time.Time) ([]CalendarEntry, error) {
	var schedules []model.PMSchedule
	if err := s.db.WithContext(ctx).Where("active").Find(&schedules).Error; err != nil {
		return nil, err
	}
	var out []CalendarEntry
	for i := range schedules {
		p := &schedules[i]
		for _, due := range p.OccurrencesWithin(from, to) {
			out = append(out, CalendarEntry{
				ScheduleID: p.ID,
				AssetID:    p.AssetID,
				Title:      p.Title,
				Priority:   p.DefaultPriority,
				DueAt:      due,
			})
		}
	}
	return out, nil
}
