package service

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/cmms-platform/cmms-service/internal/errs"
	"github.com/cmms-platform/cmms-service/internal/model"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type PortalService struct {
	db *gorm.DB
}

func NewPortalService(db *gorm.DB) *PortalService {
	return &PortalService{db: db}
}

func (s *PortalService) Create(ctx context.Context, p *model.Portal) error {
	if !slugPattern.MatchString(p.Slug) {
		return errors.New("portal slug must be lowercase kebab-case")
	}
	err := s.db.WithContext(ctx).Create(p).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.ErrSlugTaken
	}
	return err
}

func (s *PortalService) GetByID(ctx context.Context, id uint64) (*model.Portal, error) {
	var p model.Portal
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrPortalNotFound
		}
		return nil, err
	}
	return &p, nil
}

// GetBySlug resolves a portal for the public endpoint.
func (s *PortalService) GetBySlug(ctx context.Context, slug string) (*model.Portal, error) {
	var p model.Portal
	if err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrPortalNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *PortalService) List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]model.Portal, int64, error) {
	var items []model.Portal
	var total int64
	tx := s.db.WithContext(ctx).Model(&model.Portal{})
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

func (s *PortalService) Update(ctx context.Context, id uint64, changes map[string]interface{}) (*model.Portal, error) {
	var p model.Portal
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrPortalNotFound
		}
		return nil, err
	}
	if slug, ok := changes["slug"].(string); ok && !slugPattern.MatchString(slug) {
		return nil, errors.New("portal slug must be lowercase kebab-case")
	}
	err := s.db.WithContext(ctx).Model(&p).Updates(changes).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, errs.ErrSlugTaken
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Deactivate takes the portal offline. Portals are never hard-deleted.
func (s *PortalService) Deactivate(ctx context.Context, id uint64) error {
	res := s.db.WithContext(ctx).Model(&model.Portal{}).Where("id = ?", id).Update("active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.ErrPortalNotFound
	}
	return nil
}

// RecordQRScan bumps the portal's QR counter fire-and-forget: the public page
// load never waits on analytics.
func (s *PortalService) RecordQRScan(portalID uint64) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := s.db.WithContext(ctx).Model(&model.Portal{}).
			Where("id = ?", portalID).
			UpdateColumn("qr_scan_count", gorm.Expr("qr_scan_count + 1")).Error
		if err != nil {
			logrus.WithError(err).WithField("portal", portalID).Warn("portal: qr scan count")
		}
	}()
}
