package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"postify/models"
	"postify/storage"
	"postify/utils"
)

// UploadController handles image uploads for the post creation flow.
type UploadController struct {
	db    *gorm.DB
	store *storage.Local
}

// NewUploadController creates a new UploadController instance.
func NewUploadController(db *gorm.DB, store *storage.Local) *UploadController {
	return &UploadController{db: db, store: store}
}

// Upload accepts a multipart body with a single "file" field, stores it on
// disk, and returns the public URL. The stored file exists whether or not the
// caller goes on to create a post; a bookkeeping row lets the orphan cleaner
// reclaim it if no post ever references it.
func (u *UploadController) Upload(ctx *gin.Context) {
	// Cap the whole request body before multipart parsing spools it to disk.
	// The slack covers multipart framing around the file itself.
	maxBytes := u.store.MaxBytes()
	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, maxBytes+64*1024)

	file, header, err := ctx.Request.FormFile("file")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			utils.Error(ctx, http.StatusBadRequest, "Upload failed: file too large")
			return
		}
		utils.Error(ctx, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	if header.Size > maxBytes {
		utils.Error(ctx, http.StatusBadRequest, "Upload failed: file too large")
		return
	}

	stored, err := u.store.Save(file, header.Filename)
	if err != nil {
		if errors.Is(err, storage.ErrTooLarge) {
			utils.Error(ctx, http.StatusBadRequest, "Upload failed: file too large")
			return
		}
		if utils.Sugar != nil {
			utils.Sugar.Errorf("upload store failed name=%s err=%v", header.Filename, err)
		}
		utils.Error(ctx, http.StatusInternalServerError, "Upload failed: could not store file")
		return
	}

	// Best-effort record for orphan reconciliation; never fails the upload.
	if u.db != nil {
		if err := u.db.Create(&models.UploadedFile{FilePath: stored.Path, URL: stored.URL}).Error; err != nil {
			if utils.Sugar != nil {
				utils.Sugar.Warnf("upload bookkeeping failed url=%s err=%v", stored.URL, err)
			}
		}
	}

	ctx.JSON(http.StatusOK, gin.H{
		"url":     stored.URL,
		"message": "File uploaded successfully",
	})
}
