package model

import "time"

type AssetStatus string

const (
	AssetStatusOperational AssetStatus = "operational"
	AssetStatusDown        AssetStatus = "down"
	AssetStatusMaintenance AssetStatus = "maintenance"
	AssetStatusRetired     AssetStatus = "retired"
)

type Asset struct {
	ID             uint64      `gorm:"primaryKey" json:"id"`
	Name           string      `gorm:"type:varchar(255);not null" json:"name"`
	Tag            string      `gorm:"type:varchar(64);index" json:"tag,omitempty"`
	SerialNumber   string      `gorm:"type:varchar(128)" json:"serial_number,omitempty"`
	Model          string      `gorm:"type:varchar(128)" json:"model,omitempty"`
	Manufacturer   string      `gorm:"type:varchar(128)" json:"manufacturer,omitempty"`
	Status         AssetStatus `gorm:"type:varchar(32);index;not null" json:"status"`
	LocationID     *uint64     `gorm:"index" json:"location_id,omitempty"`
	PurchaseDate   *time.Time  `json:"purchase_date,omitempty"`
	WarrantyExpiry *time.Time  `json:"warranty_expiry,omitempty"`
	Notes          string      `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type WorkOrderStatus string

const (
	WorkOrderStatusOpen       WorkOrderStatus = "open"
	WorkOrderStatusInProgress WorkOrderStatus = "in_progress"
	WorkOrderStatusOnHold     WorkOrderStatus = "on_hold"
	WorkOrderStatusCompleted  WorkOrderStatus = "completed"
	WorkOrderStatusCancelled  WorkOrderStatus = "cancelled"
)

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// ValidPriority reports whether p is one of the known priority levels.
func ValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

type WorkOrder struct {
	ID            uint64          `gorm:"primaryKey" json:"id"`
	Title         string          `gorm:"type:varchar(255);not null" json:"title"`
	Description   string          `gorm:"type:text" json:"description,omitempty"`
	Status        WorkOrderStatus `gorm:"type:varchar(32);index;not null" json:"status"`
	Priority      Priority        `gorm:"type:varchar(32);index;not null" json:"priority"`
	AssetID       *uint64         `gorm:"index" json:"asset_id,omitempty"`
	LocationID    *uint64         `gorm:"index" json:"location_id,omitempty"`
	AssignedToID  *uint64         `gorm:"index" json:"assigned_to_id,omitempty"`
	RequestedByID *uint64         `gorm:"index" json:"requested_by_id,omitempty"`
	DueDate       *time.Time      `json:"due_date,omitempty"`
	CompletedAt   *time.Time      `json:"completed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Part struct {
	ID          uint64  `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"type:varchar(255);not null" json:"name"`
	PartNumber  string  `gorm:"type:varchar(64);index" json:"part_number,omitempty"`
	Description string  `gorm:"type:text" json:"description,omitempty"`
	Quantity    int     `gorm:"not null;default:0" json:"quantity"`
	MinQuantity int     `gorm:"not null;default:0" json:"min_quantity"`
	UnitCost    float64 `json:"unit_cost,omitempty"`
	LocationID  *uint64 `gorm:"index" json:"location_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BelowMinStock reports whether the part needs reordering.
func (p *Part) BelowMinStock() bool {
	return p.MinQuantity > 0 && p.Quantity < p.MinQuantity
}

type Location struct {
	ID          uint64  `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"type:varchar(255);not null" json:"name"`
	Address     string  `gorm:"type:varchar(255)" json:"address,omitempty"`
	ParentID    *uint64 `gorm:"index" json:"parent_id,omitempty"`
	Description string  `gorm:"type:text" json:"description,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleManager    UserRole = "manager"
	RoleTechnician UserRole = "technician"
	RoleRequester  UserRole = "requester"
)

type User struct {
	ID           uint64   `gorm:"primaryKey" json:"id"`
	Email        string   `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Name         string   `gorm:"type:varchar(255);not null" json:"name"`
	Phone        string   `gorm:"type:varchar(32)" json:"phone,omitempty"`
	Role         UserRole `gorm:"type:varchar(32);index;not null" json:"role"`
	PasswordHash string   `gorm:"type:varchar(255);not null" json:"-"`
	Active       bool     `gorm:"not null;default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type IntervalUnit string

const (
	IntervalDay   IntervalUnit = "day"
	IntervalWeek  IntervalUnit = "week"
	IntervalMonth IntervalUnit = "month"
	IntervalYear  IntervalUnit = "year"
)

// PMSchedule is a preventive-maintenance recurrence definition tied to an asset.
// There is no background scheduler: due dates are computed on demand.
type PMSchedule struct {
	ID              uint64       `gorm:"primaryKey" json:"id"`
	AssetID         uint64       `gorm:"index;not null" json:"asset_id"`
	Title           string       `gorm:"type:varchar(255);not null" json:"title"`
	Description     string       `gorm:"type:text" json:"description,omitempty"`
	IntervalUnit    IntervalUnit `gorm:"type:varchar(16);not null" json:"interval_unit"`
	IntervalCount   int          `gorm:"not null;default:1" json:"interval_count"`
	NextDueAt       time.Time    `gorm:"index;not null" json:"next_due_at"`
	LastDoneAt      *time.Time   `json:"last_done_at,omitempty"`
	DefaultPriority Priority     `gorm:"type:varchar(32);not null;default:'medium'" json:"default_priority"`
	Active          bool         `gorm:"not null;default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NextAfter returns the first occurrence strictly after t.
func (p *PMSchedule) NextAfter(t time.Time) time.Time {
	due := p.NextDueAt
	for !due.After(t) {
		due = p.advance(due)
	}
	return due
}

// OccurrencesWithin returns all due dates in [from, to), capped to avoid
// runaway expansion on malformed intervals.
func (p *PMSchedule) OccurrencesWithin(from, to time.Time) []time.Time {
	const maxOccurrences = 366
	var out []time.Time
	due := p.NextDueAt
	for due.Before(to) && len(out) < maxOccurrences {
		if !due.Before(from) {
			out = append(out, due)
		}
		due = p.advance(due)
	}
	return out
}

func (p *PMSchedule) advance(t time.Time) time.Time {
	n := p.IntervalCount
	if n < 1 {
		n = 1
	}
	switch p.IntervalUnit {
	case IntervalWeek:
		return t.AddDate(0, 0, 7*n)
	case IntervalMonth:
		return t.AddDate(0, n, 0)
	case IntervalYear:
		return t.AddDate(n, 0, 0)
	default:
		return t.AddDate(0, 0, n)
	}
}
