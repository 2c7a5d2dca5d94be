// Package api assembles the HTTP routing for the complaint service.
package api

import (
	"resihub/backend/internal/api/handler"
	"resihub/backend/internal/api/middleware"
	"resihub/backend/internal/storage"
	"resihub/backend/internal/upload"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the auth and complaint routes on r. Create, list, get
// and comment are open to any authenticated role (ownership is checked per
// record in the handlers); update, delete and stats require the admin gate.
func RegisterRoutes(r *gin.Engine, store storage.Storage, uploads *upload.Store, secret []byte) {
	h := handler.NewHandler(store, uploads, secret)
	authenticate := middleware.Authenticate(store, secret)

	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", h.Register)
	auth.POST("/login", h.Login)
	auth.GET("/me", authenticate, h.Me)

	complaints := api.Group("/complaints", authenticate)
	complaints.POST("", h.CreateComplaint)
	complaints.GET("", h.ListComplaints)
	complaints.GET("/stats/overview", middleware.RequireAdmin(), h.Stats)
	complaints.GET("/:id", h.GetComplaint)
	complaints.PUT("/:id", middleware.RequireAdmin(), h.UpdateComplaint)
	complaints.POST("/:id/comments", h.AddComment)
	complaints.DELETE("/:id", middleware.RequireAdmin(), h.DeleteComplaint)
}
