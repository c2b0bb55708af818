// File: internal/upload/upload.go
package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// PublicPrefix 影片檔對外的 URL 前綴
const PublicPrefix = "/uploads/"

const filePrefix = "video_"

var (
	ErrNotVideo = errors.New("only video files allowed")
	ErrTooLarge = errors.New("video file too large")
)

var (
	defaultName = uuid.NewString
	newName     = defaultName
)

// Store 把上傳的影片存到本機目錄
type Store struct {
	dir      string
	maxBytes int64
}

func NewStore(dir string, maxBytes int64) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("upload dir: %w", err)
	}
	return &Store{dir: dir, maxBytes: maxBytes}, nil
}

func (s *Store) Dir() string { return s.dir }

// Save 依檔案內容判斷 MIME，只接受 video/*；回傳對外路徑 /uploads/video_<uuid><ext>
func (s *Store) Save(fh *multipart.FileHeader) (string, error) {
	if fh.Size > s.maxBytes {
		return "", ErrTooLarge
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	mt, err := mimetype.DetectReader(src)
	if err != nil {
		return "", fmt.Errorf("detect mime: %w", err)
	}
	if !strings.HasPrefix(mt.String(), "video/") {
		return "", ErrNotVideo
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ext == "" {
		ext = mt.Extension()
	}
	name := filePrefix + newName() + ext

	dst, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create video file: %w", err)
	}

	n, err := io.Copy(dst, io.LimitReader(src, s.maxBytes+1))
	closeErr := dst.Close()
	if err == nil && n > s.maxBytes {
		err = ErrTooLarge
	}
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(filepath.Join(s.dir, name))
		if errors.Is(err, ErrTooLarge) {
			return "", err
		}
		return "", fmt.Errorf("write video file: %w", err)
	}
	return PublicPrefix + name, nil
}

// Remove 刪除 Save 產生的檔案；不存在視為成功，不屬於本 Store 的路徑會被拒絕
func (s *Store) Remove(publicPath string) error {
	name := strings.TrimPrefix(publicPath, PublicPrefix)
	if name == publicPath || name != filepath.Base(name) || !strings.HasPrefix(name, filePrefix) {
		return fmt.Errorf("refusing to remove %q", publicPath)
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove video file: %w", err)
	}
	return nil
}
