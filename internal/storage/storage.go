package storage

import (
	"errors"
	"log"

	"resihub/backend/internal/models"

	"gorm.io/gorm"
)

// Storage is the persistence surface used by the HTTP handlers and the admin
// CLI. Lookup methods return (nil, nil) when the record does not exist;
// callers translate that into a 404.
type Storage interface {
	CreateUser(user *models.User) error
	UpdateUser(user *models.User) error
	GetUserByID(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)

	CreateComplaint(complaint *models.Complaint) error
	SaveComplaint(complaint *models.Complaint) error
	GetComplaintByID(id string) (*models.Complaint, error)
	ListComplaints(filter ComplaintFilter) ([]models.Complaint, error)
	AddComment(comment *models.Comment) error
	DeleteComplaint(id string) error
	ComplaintStats() (*ComplaintStats, error)
}

// ComplaintFilter narrows ListComplaints. Zero values mean "no restriction";
// UserID is set by the handlers to scope residents to their own complaints.
type ComplaintFilter struct {
	UserID   string
	Status   string
	Category string
	Priority string
	// Search is matched case-insensitively as a substring of title or
	// description.
	Search string
}

// ComplaintStats is the admin overview: complaint counts per status across
// the whole store.
type ComplaintStats struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"inProgress"`
	Resolved   int64 `json:"resolved"`
	Rejected   int64 `json:"rejected"`
}

// Service is the GORM-backed Storage implementation.
type Service struct {
	DB *gorm.DB
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// CreateUser persists a new user account.
func (s *Service) CreateUser(user *models.User) error {
	if err := s.DB.Create(user).Error; err != nil {
		log.Printf("ERROR: Failed to create user %s: %v", user.Email, err)
		return err
	}
	return nil
}

// UpdateUser saves changes to an existing user.
func (s *Service) UpdateUser(user *models.User) error {
	return s.DB.Save(user).Error
}

// GetUserByID returns the user with the given ID, or (nil, nil) if absent.
func (s *Service) GetUserByID(id string) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail returns the user with the given email, or (nil, nil) if absent.
func (s *Service) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateComplaint persists a new complaint together with its attachment rows.
func (s *Service) CreateComplaint(complaint *models.Complaint) error {
	if err := s.DB.Create(complaint).Error; err != nil {
		log.Printf("ERROR: Failed to create complaint %q: %v", complaint.Title, err)
		return err
	}
	return nil
}

// SaveComplaint writes the mutated complaint fields back. Child rows are not
// touched; comments go through AddComment.
func (s *Service) SaveComplaint(complaint *models.Complaint) error {
	return s.DB.Omit("Comments", "Attachments", "User").Save(complaint).Error
}

// GetComplaintByID loads one complaint with its owner and comment thread
// expanded, or (nil, nil) when no such complaint exists.
func (s *Service) GetComplaintByID(id string) (*models.Complaint, error) {
	var complaint models.Complaint
	err := s.DB.
		Preload("User").
		Preload("Attachments").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&complaint, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		log.Printf("ERROR: Failed to load complaint %s: %v", id, err)
		return nil, err
	}
	return &complaint, nil
}

// ListComplaints returns complaints matching the filter, newest first, with
// owners and comment threads expanded.
func (s *Service) ListComplaints(filter ComplaintFilter) ([]models.Complaint, error) {
	query := s.DB.
		Preload("User").
		Preload("Attachments").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		})

	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	var complaints []models.Complaint
	if err := query.Order("created_at DESC").Find(&complaints).Error; err != nil {
		log.Printf("ERROR: Failed to list complaints: %v", err)
		return nil, err
	}
	return complaints, nil
}

// AddComment appends one comment row. Each append is a single insert, so
// concurrent comments never clobber each other.
func (s *Service) AddComment(comment *models.Comment) error {
	if err := s.DB.Create(comment).Error; err != nil {
		log.Printf("ERROR: Failed to add comment to complaint %s: %v", comment.ComplaintID, err)
		return err
	}
	return nil
}

// DeleteComplaint hard-deletes the complaint; comment and attachment rows go
// with it via the cascade constraint. Stored blobs are not cleaned up here.
func (s *Service) DeleteComplaint(id string) error {
	return s.DB.Delete(&models.Complaint{}, "id = ?", id).Error
}

// ComplaintStats counts complaints per status over the entire store.
func (s *Service) ComplaintStats() (*ComplaintStats, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := s.DB.Model(&models.Complaint{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		log.Printf("ERROR: Failed to compute complaint stats: %v", err)
		return nil, err
	}

	stats := &ComplaintStats{}
	for _, row := range rows {
		stats.Total += row.Count
		switch row.Status {
		case models.StatusPending:
			stats.Pending = row.Count
		case models.StatusInProgress:
			stats.InProgress = row.Count
		case models.StatusResolved:
			stats.Resolved = row.Count
		case models.StatusRejected:
			stats.Rejected = row.Count
		}
	}
	return stats, nil
}
