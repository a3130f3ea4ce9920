package media

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Storage persists uploaded files and hands back public URLs.
type Storage interface {
	Put(ctx context.Context, folder, filename string, data []byte) (string, error)
	Delete(ctx context.Context, publicURL string) error
}

// LocalStorage writes under Dir and serves files from PublicURL (fiber static).
type LocalStorage struct {
	Dir       string
	PublicURL string
}

func NewLocalStorage(dir, publicURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStorage{Dir: dir, PublicURL: strings.TrimRight(publicURL, "/")}, nil
}

func (s *LocalStorage) Put(ctx context.Context, folder, filename string, data []byte) (string, error) {
	key := GenerateUniqueFilename(folder, filename)
	full := filepath.Join(s.Dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", err
	}
	return s.PublicURL + "/" + key, nil
}

func (s *LocalStorage) Delete(ctx context.Context, publicURL string) error {
	key, ok := strings.CutPrefix(publicURL, s.PublicURL+"/")
	if !ok || key == "" || strings.Contains(key, "..") {
		return nil
	}
	err := os.Remove(filepath.Join(s.Dir, filepath.FromSlash(key)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// DeleteQuietly is for cleanup of replaced files; failures are only logged.
func DeleteQuietly(ctx context.Context, s Storage, publicURL string) {
	if s == nil || strings.TrimSpace(publicURL) == "" {
		return
	}
	if err := s.Delete(ctx, publicURL); err != nil {
		logrus.WithError(err).WithField("url", publicURL).Warn("failed to delete old upload")
	}
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)

func sanitizeFilename(filename string) string {
	return unsafeChars.ReplaceAllString(filepath.Base(filename), "_")
}

func GenerateUniqueFilename(folder, originalFilename string) string {
	return path.Join(folder, fmt.Sprintf("%s-%s-%s",
		time.Now().Format("20060102"), uuid.NewString(), sanitizeFilename(originalFilename)))
}

/* =======================================================================
   Upload limits
======================================================================= */

const (
	MaxImageBytes      = 5 << 20
	MaxAttachmentBytes = 10 << 20
	MaxAttachments     = 5
)

var attachmentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".txt":  "text/plain",
}

// ReadUpload reads a multipart file and enforces a size limit.
func ReadUpload(fh *multipart.FileHeader, maxBytes int64) ([]byte, error) {
	if fh.Size > maxBytes {
		return nil, fmt.Errorf("file %s exceeds %d MB", fh.Filename, maxBytes>>20)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("file %s exceeds %d MB", fh.Filename, maxBytes>>20)
	}
	return data, nil
}

// AttachmentType returns the canonical mime type for an allowed attachment.
func AttachmentType(filename string, head []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	mime, ok := attachmentTypes[ext]
	if !ok {
		return "", fmt.Errorf("file type %s is not allowed", ext)
	}
	if len(head) > 512 {
		head = head[:512]
	}
	sniffed := http.DetectContentType(head)
	if strings.HasPrefix(mime, "image/") && !strings.HasPrefix(sniffed, "image/") {
		return "", fmt.Errorf("file %s is not a valid image", filename)
	}
	return mime, nil
}

func IsImage(head []byte) bool {
	if len(head) > 512 {
		head = head[:512]
	}
	return strings.HasPrefix(http.DetectContentType(head), "image/")
}
