package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"
)

var (
	ErrUnsupportedType = errors.New("hanya file gambar yang diizinkan (JPEG, PNG, GIF, WEBP)")
	ErrTooLarge        = errors.New("ukuran file melebihi batas")
	ErrOutsideRoot     = errors.New("path berada di luar direktori upload")
)

var allowedTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

func AllowedType(contentType string) bool {
	ct := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	return slices.Contains(allowedTypes, ct)
}

type StoredFile struct {
	Path        string
	Name        string
	ContentType string
	Size        int64
}

// LocalStore menyimpan file di <root>/<YYYY-MM-DD>/<uuid><ext>.
type LocalStore struct {
	Root    string
	MaxSize int64
	now     func() time.Time
}

func NewLocalStore(root string, maxSize int64) *LocalStore {
	return &LocalStore{Root: root, MaxSize: maxSize, now: time.Now}
}

func (s *LocalStore) Save(originalName, contentType string, r io.Reader) (StoredFile, error) {
	if !AllowedType(contentType) {
		return StoredFile{}, ErrUnsupportedType
	}

	dir := filepath.Join(s.Root, s.now().Format("2006-01-02"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return StoredFile{}, fmt.Errorf("create upload dir: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	path := filepath.Join(dir, uuid.NewString()+ext)

	f, err := os.Create(path)
	if err != nil {
		return StoredFile{}, fmt.Errorf("create upload file: %w", err)
	}
	n, err := io.Copy(f, io.LimitReader(r, s.MaxSize+1))
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && n > s.MaxSize {
		err = ErrTooLarge
	}
	if err != nil {
		os.Remove(path)
		return StoredFile{}, err
	}

	return StoredFile{
		Path:        filepath.ToSlash(path),
		Name:        filepath.Base(originalName),
		ContentType: contentType,
		Size:        n,
	}, nil
}

// Remove menghapus file; file yang sudah tidak ada tidak dianggap error.
func (s *LocalStore) Remove(path string) error {
	full := filepath.FromSlash(path)
	rel, err := filepath.Rel(s.Root, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return ErrOutsideRoot
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
