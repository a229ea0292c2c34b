package controller

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const uploadDir = "./uploads"

// saveImageUpload stores an optional image from the given form field and
// returns the stored file name, removing the previous file when one is
// replaced. An absent field returns ("", nil) so callers can treat the
// image as unchanged.
func saveImageUpload(c *gin.Context, field, prefix string, ownerID uint, old string) (string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return "", nil
		}
		return "", fmt.Errorf("failed to get uploaded file: %v", err)
	}

	if file.Size > 5<<20 {
		return "", fmt.Errorf("file too large (max 5MB)")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	allowedExts := map[string]bool{".jpg": true, ".jpeg": true, ".png": true}
	if !allowedExts[ext] {
		return "", fmt.Errorf("invalid file type, only JPG/JPEG/PNG allowed")
	}

	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %v", err)
	}

	if old != "" {
		if err := os.Remove(filepath.Join(uploadDir, old)); err != nil && !os.IsNotExist(err) {
			return "", fmt.Errorf("failed to delete old image: %v", err)
		}
	}

	newFileName := fmt.Sprintf("%s-%d-%d%s", prefix, ownerID, time.Now().UnixNano(), ext)
	if err := c.SaveUploadedFile(file, filepath.Join(uploadDir, newFileName)); err != nil {
		return "", fmt.Errorf("failed to save file: %v", err)
	}

	return newFileName, nil
}

// removeImage deletes a stored upload, tolerating files already gone.
func removeImage(name string) error {
	if name == "" {
		return nil
	}
	if err := os.Remove(filepath.Join(uploadDir, name)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
