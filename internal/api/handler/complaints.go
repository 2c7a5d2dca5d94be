package handler

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"resihub/backend/internal/api/middleware"
	"resihub/backend/internal/models"
	"resihub/backend/internal/storage"
	"resihub/backend/internal/upload"

	"github.com/gin-gonic/gin"
)

// CreateComplaint handles POST /api/complaints. Any authenticated user may
// create; the complaint is owned by the caller. Attachments arrive as
// multipart form files under the "attachments" field.
func (h *Handler) CreateComplaint(c *gin.Context) {
	p, _ := middleware.CurrentPrincipal(c)

	title := strings.TrimSpace(c.PostForm("title"))
	description := strings.TrimSpace(c.PostForm("description"))
	category := c.PostForm("category")
	priority := c.PostForm("priority")

	if title == "" || description == "" || category == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Please provide title, description, and category",
		})
		return
	}

	var attachments []models.Attachment
	if form, err := c.MultipartForm(); err == nil && form != nil {
		attachments, err = h.Uploads.SaveAll(c, form.File["attachments"])
		if err != nil {
			status := http.StatusInternalServerError
			message := "Error saving attachments"
			if errors.Is(err, upload.ErrTooManyFiles) || errors.Is(err, upload.ErrFileTooLarge) {
				status = http.StatusBadRequest
				message = err.Error()
			}
			c.JSON(status, gin.H{"success": false, "message": message})
			return
		}
	}

	complaint := models.Complaint{
		Title:       title,
		Description: description,
		Category:    category,
		Priority:    priority,
		UserID:      p.ID,
		Attachments: attachments,
	}

	if err := h.Store.CreateComplaint(&complaint); err != nil {
		if models.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error creating complaint"})
		return
	}

	created, err := h.Store.GetComplaintByID(complaint.ID)
	if err != nil || created == nil {
		log.Printf("ERROR: Failed to reload complaint %s after create: %v", complaint.ID, err)
		created = &complaint
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"message":   "Complaint created successfully",
		"complaint": created,
	})
}

// ListComplaints handles GET /api/complaints. Residents only ever see their
// own complaints; admins see everything. Filters are exact matches except
// search, which is a case-insensitive substring over title and description.
func (h *Handler) ListComplaints(c *gin.Context) {
	p, _ := middleware.CurrentPrincipal(c)

	filter := storage.ComplaintFilter{
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Priority: c.Query("priority"),
		Search:   c.Query("search"),
	}
	if p.Role == models.RoleResident {
		filter.UserID = p.ID
	}

	complaints, err := h.Store.ListComplaints(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching complaints"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"count":      len(complaints),
		"complaints": complaints,
	})
}

// GetComplaint handles GET /api/complaints/:id with the ownership check for
// residents.
func (h *Handler) GetComplaint(c *gin.Context) {
	p, _ := middleware.CurrentPrincipal(c)

	complaint, err := h.Store.GetComplaintByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching complaint"})
		return
	}
	if complaint == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Complaint not found"})
		return
	}

	if p.Role == models.RoleResident && complaint.UserID != p.ID {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Access denied"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "complaint": complaint})
}

// UpdateComplaint handles PUT /api/complaints/:id (admin gate applied in the
// router). Status and priority update only when non-empty; assignedTo
// distinguishes "absent" (unchanged) from "empty string" (cleared).
func (h *Handler) UpdateComplaint(c *gin.Context) {
	var payload struct {
		Status     string  `json:"status"`
		Priority   string  `json:"priority"`
		AssignedTo *string `json:"assignedTo"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	complaint, err := h.Store.GetComplaintByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error updating complaint"})
		return
	}
	if complaint == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Complaint not found"})
		return
	}

	if payload.Status != "" {
		complaint.Status = payload.Status
	}
	if payload.Priority != "" {
		complaint.Priority = payload.Priority
	}
	if payload.AssignedTo != nil {
		complaint.AssignedTo = strings.TrimSpace(*payload.AssignedTo)
	}

	if err := h.Store.SaveComplaint(complaint); err != nil {
		if models.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error updating complaint"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Complaint updated successfully",
		"complaint": complaint,
	})
}

// AddComment handles POST /api/complaints/:id/comments. The comment snapshots
// the caller's current name and role.
func (h *Handler) AddComment(c *gin.Context) {
	p, _ := middleware.CurrentPrincipal(c)

	var payload struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil || strings.TrimSpace(payload.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Comment text is required"})
		return
	}

	complaint, err := h.Store.GetComplaintByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error adding comment"})
		return
	}
	if complaint == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Complaint not found"})
		return
	}

	if p.Role == models.RoleResident && complaint.UserID != p.ID {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Access denied"})
		return
	}

	comment := models.Comment{
		ComplaintID: complaint.ID,
		UserID:      p.ID,
		UserName:    p.Name,
		UserRole:    p.Role,
		Text:        strings.TrimSpace(payload.Text),
	}
	if err := h.Store.AddComment(&comment); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error adding comment"})
		return
	}

	updated, err := h.Store.GetComplaintByID(complaint.ID)
	if err != nil || updated == nil {
		log.Printf("ERROR: Failed to reload complaint %s after comment: %v", complaint.ID, err)
		updated = complaint
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Comment added successfully",
		"complaint": updated,
	})
}

// DeleteComplaint handles DELETE /api/complaints/:id (admin gate applied in
// the router). Comment and attachment rows cascade; stored blobs are left
// behind in the upload directory.
func (h *Handler) DeleteComplaint(c *gin.Context) {
	complaint, err := h.Store.GetComplaintByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error deleting complaint"})
		return
	}
	if complaint == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Complaint not found"})
		return
	}

	if err := h.Store.DeleteComplaint(complaint.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error deleting complaint"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Complaint deleted successfully",
	})
}

// Stats handles GET /api/complaints/stats/overview (admin gate applied in the
// router): complaint counts per status across the whole store.
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.Store.ComplaintStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching statistics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}
