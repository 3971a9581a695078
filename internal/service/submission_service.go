package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cmms-platform/cmms-service/internal/errs"
	"github.com/cmms-platform/cmms-service/internal/kafka"
	"github.com/cmms-platform/cmms-service/internal/model"
	"github.com/cmms-platform/cmms-service/internal/notify"
)

// SubmissionServicer — интерфейс менеджера жизненного цикла заявок
// (Dependency Inversion: хендлеры зависят от абстракции).
type SubmissionServicer interface {
	Submit(ctx context.Context, portal *model.Portal, in SubmitInput) (*model.PortalSubmission, error)
	GetByID(ctx context.Context, id uint64) (*model.PortalSubmission, error)
	GetByCode(ctx context.Context, code string) (*model.PortalSubmission, error)
	List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]model.PortalSubmission, int64, error)
	UpdateStatus(ctx context.Context, id uint64, newStatus model.SubmissionStatus, notes string, reviewerID uint64) (*model.PortalSubmission, error)
	CreateWorkOrder(ctx context.Context, id uint64, requestedBy uint64) (*model.WorkOrder, error)
	AddCommunication(ctx context.Context, id uint64, sender model.SenderType, message string, internal bool) (*model.PortalCommunication, error)
}

// SubmitInput carries one public portal submission.
type SubmitInput struct {
	SubmitterName  string
	SubmitterEmail string
	SubmitterPhone string
	SubmitterIP    string
	Data           map[string]interface{}
	Files          []model.PortalSubmissionFile
}

type SubmissionService struct {
	db       *gorm.DB
	producer kafka.SubmissionEventProducer
	notifier *notify.Client
}

func NewSubmissionService(db *gorm.DB, producer kafka.SubmissionEventProducer, notifier *notify.Client) *SubmissionService {
	return &SubmissionService{db: db, producer: producer, notifier: notifier}
}

// ValidateSubmissionData checks data against the portal's field
// configuration: required non-file fields must be present and non-empty,
// select values must match an option.
func ValidateSubmissionData(fields []model.PortalField, data map[string]interface{}) error {
	for _, f := range fields {
		if f.Type == "file" {
			continue
		}
		val, ok := data[f.Name]
		str, isStr := val.(string)
		if f.Required {
			if !ok || val == nil || (isStr && strings.TrimSpace(str) == "") {
				return fmt.Errorf("%w: required field missing: %s", errs.ErrValidation, f.Label)
			}
		}
		if f.Type == "select" && ok && str != "" {
			found := false
			for _, opt := range f.Options {
				if opt == str {
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("%w: field %s: %q is not a valid option", errs.ErrValidation, f.Label, str)
			}
		}
	}
	return nil
}

// newSubmissionCode returns the human-readable tracking id, e.g. PS-4F21A09C.
func newSubmissionCode() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "PS-" + raw[:8]
}

// Submit validates and persists a public submission, then fires events and,
// when the portal asks for it, creates the linked work order.
func (s *SubmissionService) Submit(ctx context.Context, portal *model.Portal, in SubmitInput) (*model.PortalSubmission, error) {
	if !portal.Active {
		return nil, errs.ErrPortalInactive
	}
	if !portal.AllowAnonymous && in.SubmitterName == "" && in.SubmitterEmail == "" {
		return nil, fmt.Errorf("%w: submitter name or email is required on this portal", errs.ErrValidation)
	}
	if err := ValidateSubmissionData(portal.Fields.Data(), in.Data); err != nil {
		return nil, err
	}
	sub := &model.PortalSubmission{
		PortalID:       portal.ID,
		Code:           newSubmissionCode(),
		SubmitterName:  in.SubmitterName,
		SubmitterEmail: in.SubmitterEmail,
		SubmitterPhone: in.SubmitterPhone,
		SubmitterIP:    in.SubmitterIP,
		Data:           in.Data,
		Priority:       portal.DefaultPriority,
		Status:         model.SubmissionStatusSubmitted,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(sub).Error; err != nil {
			return err
		}
		for i := range in.Files {
			in.Files[i].SubmissionID = sub.ID
		}
		if len(in.Files) > 0 {
			if err := tx.Create(&in.Files).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sub.Files = in.Files
	s.emit(ctx, "submission.created", sub)
	if s.notifier != nil {
		s.notifier.NotifySubmissionAsync("submission.created", "", sub)
	}

	if portal.AutoCreateWorkOrder {
		if _, err := s.CreateWorkOrder(ctx, sub.ID, 0); err != nil {
			// Не валим приём заявки: наряд можно создать вручную позже.
			logrus.WithError(err).WithField("submission", sub.ID).Error("submission: auto work order")
		} else if fresh, err := s.GetByID(ctx, sub.ID); err == nil {
			sub = fresh
		}
	}
	return sub, nil
}

func (s *SubmissionService) GetByID(ctx context.Context, id uint64) (*model.PortalSubmission, error) {
	var sub model.PortalSubmission
	err := s.db.WithContext(ctx).
		Preload("Files").
		Preload("Communications", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		First(&sub, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrSubmissionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

// GetByCode serves the public status lookup. Internal communications are
// stripped: the submitter never sees them.
func (s *SubmissionService) GetByCode(ctx context.Context, code string) (*model.PortalSubmission, error) {
	var sub model.PortalSubmission
	err := s.db.WithContext(ctx).
		Preload("Files").
		Preload("Communications", func(db *gorm.DB) *gorm.DB {
			return db.Where("NOT internal").Order("created_at ASC")
		}).
		Where("code = ?", code).First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrSubmissionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (s *SubmissionService) List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]model.PortalSubmission, int64, error) {
	var items []model.PortalSubmission
	var total int64
	tx := s.db.WithContext(ctx).Model(&model.PortalSubmission{})
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

// UpdateStatus transitions a submission along the lifecycle graph. Terminal
// submissions are immutable; ASSIGNED cannot be set directly.
func (s *SubmissionService) UpdateStatus(ctx context.Context, id uint64, newStatus model.SubmissionStatus, notes string, reviewerID uint64) (*model.PortalSubmission, error) {
	if !model.ValidSubmissionStatus(newStatus) || newStatus == model.SubmissionStatusAssigned {
		return nil, errs.ErrInvalidTransition
	}
	var sub model.PortalSubmission
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&sub, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrSubmissionNotFound
			}
			return err
		}
		if sub.Status.IsTerminal() {
			return errs.ErrTerminalStatus
		}
		if !model.CanTransition(sub.Status, newStatus) {
			return errs.ErrInvalidTransition
		}
		now := time.Now()
		changes := map[string]interface{}{"status": newStatus}
		if notes != "" {
			changes["review_notes"] = notes
		}
		if sub.ReviewedAt == nil {
			changes["reviewed_at"] = &now
			if reviewerID != 0 {
				changes["reviewed_by_id"] = reviewerID
			}
		}
		if newStatus == model.SubmissionStatusCompleted {
			changes["completed_at"] = &now
		}
		if err := tx.Model(&sub).Updates(changes).Error; err != nil {
			return err
		}
		trail := &model.PortalCommunication{
			SubmissionID: sub.ID,
			Sender:       model.SenderSystem,
			Message:      fmt.Sprintf("status changed to %s", newStatus),
			Internal:     true,
		}
		return tx.Create(trail).Error
	})
	if err != nil {
		return nil, err
	}
	s.emit(ctx, "submission.updated", &sub)
	if s.notifier != nil {
		s.notifier.NotifySubmissionAsync("submission.updated", notes, &sub)
	}
	return &sub, nil
}

// CreateWorkOrder creates the linked work order, or returns the existing one:
// the operation is idempotent at the data layer, a double-submit from a stale
// client cannot produce two work orders. Rejected submissions refuse creation.
func (s *SubmissionService) CreateWorkOrder(ctx context.Context, id uint64, requestedBy uint64) (*model.WorkOrder, error) {
	var wo model.WorkOrder
	var sub model.PortalSubmission
	created := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&sub, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrSubmissionNotFound
			}
			return err
		}
		if sub.WorkOrderID != nil {
			return tx.First(&wo, *sub.WorkOrderID).Error
		}
		if sub.Status == model.SubmissionStatusRejected {
			return errs.ErrWorkOrderRefused
		}
		var portal model.Portal
		if err := tx.First(&portal, sub.PortalID).Error; err != nil {
			return err
		}
		wo = model.WorkOrder{
			Title:       workOrderTitle(&portal, &sub),
			Description: flattenData(sub.Data),
			Status:      model.WorkOrderStatusOpen,
			Priority:    sub.Priority,
		}
		if requestedBy != 0 {
			wo.RequestedByID = &requestedBy
		}
		if err := tx.Create(&wo).Error; err != nil {
			return err
		}
		changes := map[string]interface{}{"work_order_id": wo.ID}
		// ASSIGNED marks the hand-off; in-flight submissions keep their status.
		if !sub.Status.IsTerminal() && sub.Status != model.SubmissionStatusInProgress {
			changes["status"] = model.SubmissionStatusAssigned
		}
		if err := tx.Model(&sub).Updates(changes).Error; err != nil {
			return err
		}
		trail := &model.PortalCommunication{
			SubmissionID: sub.ID,
			Sender:       model.SenderSystem,
			Message:      fmt.Sprintf("work order #%d created", wo.ID),
			Internal:     true,
		}
		if err := tx.Create(trail).Error; err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	if created {
		s.emit(ctx, "workorder.created", &sub)
	}
	return &wo, nil
}

// AddCommunication appends a message to the thread. External messages target
// the submitter's email; the actual dispatch is the notifier's concern.
func (s *SubmissionService) AddCommunication(ctx context.Context, id uint64, sender model.SenderType, message string, internal bool) (*model.PortalCommunication, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, errs.ErrEmptyMessage
	}
	sub, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	comm := &model.PortalCommunication{
		SubmissionID: sub.ID,
		Sender:       sender,
		Message:      message,
		Internal:     internal,
	}
	if err := s.db.WithContext(ctx).Create(comm).Error; err != nil {
		return nil, err
	}
	if !internal && sub.SubmitterEmail != "" && s.notifier != nil {
		s.notifier.NotifySubmissionAsync("communication", message, sub)
	}
	return comm, nil
}

// emit отправляет событие в Kafka best-effort: событие должно уйти даже при
// отмене запроса, но с таймаутом.
func (s *SubmissionService) emit(_ context.Context, event string, sub *model.PortalSubmission) {
	if s.producer == nil {
		return
	}
	payload := map[string]interface{}{
		"submission_id": int64(sub.ID),
		"code":          sub.Code,
		"portal_id":     int64(sub.PortalID),
		"status":        string(sub.Status),
		"priority":      string(sub.Priority),
	}
	if sub.WorkOrderID != nil {
		payload["work_order_id"] = int64(*sub.WorkOrderID)
	}
	eventCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	go func() {
		defer cancel()
		s.producer.ProduceSubmissionEvent(eventCtx, event, payload)
	}()
}

func workOrderTitle(portal *model.Portal, sub *model.PortalSubmission) string {
	if t, ok := sub.Data["title"].(string); ok && strings.TrimSpace(t) != "" {
		return strings.TrimSpace(t)
	}
	return fmt.Sprintf("%s (%s)", portal.Name, sub.Code)
}

// flattenData renders the free-form submission data as "field: value" lines
// in stable order for the work order description.
func flattenData(data map[string]interface{}) string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %v\n", k, data[k])
	}
	return strings.TrimRight(b.String(), "\n")
}
