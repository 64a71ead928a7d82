package services

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"blogium/internal/utils"
)

const maxImageSize = 10 * 1024 * 1024 // 10MB

// ImageStore writes uploaded post images to local disk. The directory
// is served statically under /uploads.
type ImageStore struct {
	Dir string
}

func NewImageStore() *ImageStore {
	dir := os.Getenv("UPLOAD_DIR")
	if dir == "" {
		dir = "./web/uploads"
	}
	return &ImageStore{Dir: dir}
}

// Save validates and stores an uploaded image, returning the stored
// filename. The caller keeps only that name; serving is done by the
// static file route.
func (s *ImageStore) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("only image uploads are allowed")
	}
	if header.Size > maxImageSize {
		return "", fmt.Errorf("image exceeds the 10MB limit")
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext == "" {
		switch contentType {
		case "image/jpeg":
			ext = ".jpg"
		case "image/png":
			ext = ".png"
		case "image/gif":
			ext = ".gif"
		case "image/webp":
			ext = ".webp"
		default:
			ext = ".jpg"
		}
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("preparing upload dir: %w", err)
	}

	name := utils.RandString(16) + ext
	dst, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("writing file: %w", err)
	}

	return name, nil
}

// Remove deletes a stored image, ignoring files that are already gone.
func (s *ImageStore) Remove(name string) {
	if name == "" {
		return
	}
	path := filepath.Join(s.Dir, filepath.Base(name))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("[images] failed to remove %s: %v", name, err)
	}
}
