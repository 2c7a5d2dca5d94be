package handler

import (
	"resihub/backend/internal/storage"
	"resihub/backend/internal/upload"
)

// Handler holds the dependencies shared by all route handlers.
type Handler struct {
	Store   storage.Storage
	Uploads *upload.Store
	secret  []byte
}

func NewHandler(store storage.Storage, uploads *upload.Store, secret []byte) *Handler {
	return &Handler{Store: store, Uploads: uploads, secret: secret}
}
