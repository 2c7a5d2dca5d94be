// Package upload implements attachment intake: uploaded files are stored
// under a configured directory and described by metadata records the
// complaint handlers embed into the complaint.
package upload

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"time"

	"resihub/backend/internal/config"
	"resihub/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	// ErrTooManyFiles is returned when a request carries more than the
	// allowed number of attachments.
	ErrTooManyFiles = fmt.Errorf("too many files. Maximum is %d attachments", config.MaxAttachments)
	// ErrFileTooLarge is returned when a single attachment exceeds the
	// size ceiling.
	ErrFileTooLarge = errors.New("file size too large. Maximum size is 5MB")
)

// Store saves attachment blobs below Dir. Intake is synchronous: SaveAll
// returns only once every blob is on disk.
type Store struct {
	Dir string
}

func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

// SaveAll validates and stores every uploaded file, returning the metadata
// records in upload order. Filenames are regenerated from UUIDs so stored
// paths never collide and never reflect client input.
func (st *Store) SaveAll(c *gin.Context, files []*multipart.FileHeader) ([]models.Attachment, error) {
	if len(files) > config.MaxAttachments {
		return nil, ErrTooManyFiles
	}

	attachments := make([]models.Attachment, 0, len(files))
	for _, file := range files {
		if file.Size > config.MaxAttachmentSize {
			return nil, ErrFileTooLarge
		}

		filename := uuid.New().String() + filepath.Ext(file.Filename)
		path := filepath.Join(st.Dir, filename)
		if err := c.SaveUploadedFile(file, path); err != nil {
			return nil, err
		}

		attachments = append(attachments, models.Attachment{
			Filename:     filename,
			OriginalName: filepath.Base(file.Filename),
			Path:         path,
			MimeType:     file.Header.Get("Content-Type"),
			Size:         file.Size,
			UploadedAt:   time.Now(),
		})
	}
	return attachments, nil
}
