package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Complaint status values. There is no enforced transition graph: an admin
// may set any valid status at any time.
const (
	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusResolved   = "Resolved"
	StatusRejected   = "Rejected"
)

// Complaint priority values.
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

// Categories is the closed set of complaint categories.
var Categories = []string{
	"Maintenance",
	"Security",
	"Noise Complaints",
	"Parking Issues",
	"Cleanliness",
	"Water Supply",
	"Electricity",
	"Lift/Elevator",
	"Common Areas",
	"Others",
}

// MaxTitleLength bounds the complaint title.
const MaxTitleLength = 200

var (
	ErrTitleRequired       = errors.New("title is required")
	ErrTitleTooLong        = errors.New("title cannot exceed 200 characters")
	ErrDescriptionRequired = errors.New("description is required")
	ErrInvalidCategory     = errors.New("invalid category")
	ErrInvalidPriority     = errors.New("invalid priority")
	ErrInvalidStatus       = errors.New("invalid status")
)

// Complaint is the central entity: one owning resident, embedded comments and
// attachment metadata, triage fields managed by admins.
type Complaint struct {
	ID          string `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	Category    string `gorm:"not null;index" json:"category"`
	Priority    string `gorm:"not null" json:"priority"`
	Status      string `gorm:"not null;index:idx_owner_status" json:"status"`

	// UserID is the owning resident, fixed at creation.
	UserID string `gorm:"type:text;not null;index:idx_owner_status" json:"userId"`
	User   *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`

	// AssignedTo is a free-text assignee name; empty means unassigned.
	AssignedTo string `json:"assignedTo"`

	Attachments []Attachment `gorm:"foreignKey:ComplaintID;constraint:OnDelete:CASCADE" json:"attachments"`
	Comments    []Comment    `gorm:"foreignKey:ComplaintID;constraint:OnDelete:CASCADE" json:"comments"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Attachment holds the metadata of one uploaded file. The blob itself lives
// in the upload store under Path.
type Attachment struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	ComplaintID  string    `gorm:"type:text;not null;index" json:"-"`
	Filename     string    `gorm:"not null" json:"filename"`
	OriginalName string    `json:"originalName"`
	Path         string    `gorm:"not null" json:"path"`
	MimeType     string    `json:"mimetype"`
	Size         int64     `json:"size"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

// Comment is one entry of a complaint's append-only comment thread.
// UserName and UserRole are snapshots taken at write time so historical
// comments keep their author's label even if the account changes later.
type Comment struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	ComplaintID string    `gorm:"type:text;not null;index" json:"-"`
	UserID      string    `gorm:"type:text" json:"user"`
	UserName    string    `json:"userName"`
	UserRole    string    `json:"userRole"`
	Text        string    `gorm:"type:text;not null" json:"text"`
	CreatedAt   time.Time `json:"createdAt"`
}

// BeforeCreate generates the complaint UUID and applies the documented
// defaults (status Pending, priority Medium).
func (c *Complaint) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.Status == "" {
		c.Status = StatusPending
	}
	if c.Priority == "" {
		c.Priority = PriorityMedium
	}
	return
}

// BeforeSave rejects complaints that violate the schema invariants. This runs
// on create and on every update, so out-of-set enum values never reach the
// database.
func (c *Complaint) BeforeSave(tx *gorm.DB) error {
	return c.Validate()
}

// Validate checks required fields and enum membership.
func (c *Complaint) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return ErrTitleRequired
	}
	if len(c.Title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	if strings.TrimSpace(c.Description) == "" {
		return ErrDescriptionRequired
	}
	if !ValidCategory(c.Category) {
		return ErrInvalidCategory
	}
	if c.Priority != "" && !ValidPriority(c.Priority) {
		return ErrInvalidPriority
	}
	if c.Status != "" && !ValidStatus(c.Status) {
		return ErrInvalidStatus
	}
	return nil
}

// ValidCategory reports whether cat belongs to the category set.
func ValidCategory(cat string) bool {
	for _, c := range Categories {
		if c == cat {
			return true
		}
	}
	return false
}

// ValidPriority reports whether p is one of Low, Medium, High.
func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// ValidStatus reports whether s is one of the four complaint statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved, StatusRejected:
		return true
	}
	return false
}

// IsValidationError reports whether err is one of the schema validation
// errors, as opposed to a database failure.
func IsValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrTitleRequired),
		errors.Is(err, ErrTitleTooLong),
		errors.Is(err, ErrDescriptionRequired),
		errors.Is(err, ErrInvalidCategory),
		errors.Is(err, ErrInvalidPriority),
		errors.Is(err, ErrInvalidStatus):
		return true
	}
	return false
}
