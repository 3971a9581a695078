package model

import (
	"time"

	"gorm.io/datatypes"
)

type PortalType string

const (
	PortalTypeMaintenanceRequest PortalType = "maintenance-request"
	PortalTypeAssetRegistration  PortalType = "asset-registration"
	PortalTypeEquipmentInfo      PortalType = "equipment-info"
	PortalTypeGeneralInquiry     PortalType = "general-inquiry"
	PortalTypeInspectionReport   PortalType = "inspection-report"
	PortalTypeSafetyIncident     PortalType = "safety-incident"
)

func ValidPortalType(t PortalType) bool {
	switch t {
	case PortalTypeMaintenanceRequest, PortalTypeAssetRegistration, PortalTypeEquipmentInfo,
		PortalTypeGeneralInquiry, PortalTypeInspectionReport, PortalTypeSafetyIncident:
		return true
	}
	return false
}

// PortalField describes one input of a portal's public form.
type PortalField struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Type     string   `json:"type"` // text, textarea, select, date, email, phone, number, file
	Required bool     `json:"required"`
	Options  []string `json:"options,omitempty"`
}

// FilePolicy is the per-portal upload policy applied on top of the gateway's
// global limits.
type FilePolicy struct {
	MaxSizeBytes int64    `json:"max_size_bytes"`
	AllowedTypes []string `json:"allowed_types,omitempty"`
	MaxFiles     int      `json:"max_files"`
}

// Portal is a configurable public form endpoint. Portals are deactivated,
// never hard-deleted: submissions keep pointing at them.
type Portal struct {
	ID                  uint64     `gorm:"primaryKey" json:"id"`
	Name                string     `gorm:"type:varchar(255);not null" json:"name"`
	Slug                string     `gorm:"type:varchar(128);uniqueIndex;not null" json:"slug"`
	Type                PortalType `gorm:"type:varchar(32);not null" json:"type"`
	Description         string     `gorm:"type:text" json:"description,omitempty"`
	Active              bool       `gorm:"not null;default:true" json:"active"`
	AllowAnonymous      bool       `gorm:"not null;default:false" json:"allow_anonymous"`
	RateLimitPerHour    int        `gorm:"not null;default:10" json:"rate_limit_per_hour"`
	RateLimitPerDay     int        `gorm:"not null;default:50" json:"rate_limit_per_day"`
	AutoCreateWorkOrder bool       `gorm:"not null;default:false" json:"auto_create_work_order"`
	DefaultPriority     Priority   `gorm:"type:varchar(32);not null;default:'medium'" json:"default_priority"`

	Fields     datatypes.JSONType[[]PortalField] `json:"fields"`
	FilePolicy datatypes.JSONType[FilePolicy]    `json:"file_policy"`

	QRScanCount int64 `gorm:"not null;default:0" json:"qr_scan_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PublicURL builds the public form address: {origin}/p/{slug}.
func (p *Portal) PublicURL(origin string) string {
	return origin + "/p/" + p.Slug
}

type SubmissionStatus string

const (
	SubmissionStatusSubmitted  SubmissionStatus = "SUBMITTED"
	SubmissionStatusReviewed   SubmissionStatus = "REVIEWED"
	SubmissionStatusAssigned   SubmissionStatus = "ASSIGNED"
	SubmissionStatusInProgress SubmissionStatus = "IN_PROGRESS"
	SubmissionStatusCompleted  SubmissionStatus = "COMPLETED"
	SubmissionStatusRejected   SubmissionStatus = "REJECTED"
)

type PortalSubmission struct {
	ID       uint64 `gorm:"primaryKey" json:"id"`
	PortalID uint64 `gorm:"index;not null" json:"portal_id"`
	// Code is the human-readable tracking id handed to the submitter.
	Code string `gorm:"type:varchar(32);uniqueIndex;not null" json:"code"`

	SubmitterName  string `gorm:"type:varchar(255)" json:"submitter_name,omitempty"`
	SubmitterEmail string `gorm:"type:varchar(255);index" json:"submitter_email,omitempty"`
	SubmitterPhone string `gorm:"type:varchar(32)" json:"submitter_phone,omitempty"`
	SubmitterIP    string `gorm:"type:varchar(64)" json:"submitter_ip,omitempty"`

	Data     datatypes.JSONMap `json:"data"`
	Priority Priority          `gorm:"type:varchar(32);not null;default:'medium'" json:"priority"`
	Status   SubmissionStatus  `gorm:"type:varchar(32);index;not null" json:"status"`

	WorkOrderID  *uint64    `gorm:"index" json:"work_order_id,omitempty"`
	ReviewedByID *uint64    `json:"reviewed_by_id,omitempty"`
	ReviewedAt   *time.Time `json:"reviewed_at,omitempty"`
	ReviewNotes  string     `gorm:"type:text" json:"review_notes,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	Files          []PortalSubmissionFile `gorm:"foreignKey:SubmissionID;constraint:OnDelete:CASCADE" json:"files,omitempty"`
	Communications []PortalCommunication  `gorm:"foreignKey:SubmissionID;constraint:OnDelete:CASCADE" json:"communications,omitempty"`
}

// PortalSubmissionFile is file metadata attached to a submission. Rows are
// created once and never mutated.
type PortalSubmissionFile struct {
	ID           uint64 `gorm:"primaryKey" json:"id"`
	SubmissionID uint64 `gorm:"index;not null" json:"submission_id"`
	FieldName    string `gorm:"type:varchar(128)" json:"field_name,omitempty"`
	Filename     string `gorm:"type:varchar(255);not null" json:"filename"`
	OriginalName string `gorm:"type:varchar(255)" json:"original_name,omitempty"`
	URL          string `gorm:"type:text;not null" json:"url"`
	StoragePath  string `gorm:"type:text" json:"storage_path,omitempty"`
	Size         int64  `gorm:"not null" json:"size"`
	MimeType     string `gorm:"type:varchar(128)" json:"mime_type"`

	CreatedAt time.Time `json:"created_at"`
}

type SenderType string

const (
	SenderAdmin     SenderType = "ADMIN"
	SenderSubmitter SenderType = "SUBMITTER"
	SenderSystem    SenderType = "SYSTEM"
)

// PortalCommunication is one entry of a submission's append-only message
// thread. Internal entries are never shown to the submitter.
type PortalCommunication struct {
	ID           uint64     `gorm:"primaryKey" json:"id"`
	SubmissionID uint64     `gorm:"index;not null" json:"submission_id"`
	Sender       SenderType `gorm:"type:varchar(16);not null" json:"sender"`
	Message      string     `gorm:"type:text;not null" json:"message"`
	Internal     bool       `gorm:"not null;default:false" json:"internal"`

	CreatedAt time.Time `json:"created_at"`
}
