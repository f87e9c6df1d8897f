// Package storage is the local-disk blob store for uploaded images. Files
// are written under the upload dir with a hash-salted unique name and
// served back at /uploads/<name>.
package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"rental-booking/logger"
)

type Service struct {
	UploadDir string
}

func NewService() *Service {
	dir := os.Getenv("UPLOAD_DIR")
	if dir == "" {
		dir = "uploads"
	}
	return &Service{UploadDir: dir}
}

// Save writes the file bytes under a unique name derived from the content
// hash and returns the public path ("/uploads/<name>").
func (s *Service) Save(fileBytes []byte, originalFileName string) (string, error) {
	if err := s.ensureUploadDir(); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	hash := sha256.Sum256(fileBytes)
	ext := filepath.Ext(originalFileName)
	savedName := fmt.Sprintf("%s_%d%s", hex.EncodeToString(hash[:8]), time.Now().Unix(), ext)

	filePath := filepath.Join(s.UploadDir, savedName)
	if err := os.WriteFile(filePath, fileBytes, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	logger.Success(fmt.Sprintf("File saved: %s", savedName))
	return "/uploads/" + savedName, nil
}

// Remove deletes a previously stored file given its public path. Missing
// files are not an error.
func (s *Service) Remove(publicPath string) error {
	name := strings.TrimPrefix(publicPath, "/uploads/")
	if name == "" || strings.Contains(name, "..") {
		return fmt.Errorf("invalid upload path: %s", publicPath)
	}
	err := os.Remove(filepath.Join(s.UploadDir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *Service) ensureUploadDir() error {
	if _, err := os.Stat(s.UploadDir); os.IsNotExist(err) {
		if err := os.MkdirAll(s.UploadDir, 0755); err != nil {
			return err
		}
		logger.Info(fmt.Sprintf("Created upload directory: %s", s.UploadDir))
	}
	return nil
}

// IsValidImageType reports whether the MIME type is an accepted upload.
func IsValidImageType(mimeType string) bool {
	switch mimeType {
	case "image/jpeg", "image/jpg", "image/png", "image/webp":
		return true
	default:
		return false
	}
}
