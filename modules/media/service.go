package media

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	fsjetstream "github.com/go-monolith/mono/plugin/fs-jetstream"
	"github.com/google/uuid"
)

const (
	// PublicPath is the URL path images are served under.
	PublicPath = "/public/uploads/"
	// GalleryPrefix namespaces gallery images inside the bucket.
	GalleryPrefix = "gallery-uploads/"
	// MaxGalleryFiles bounds a single gallery upload.
	MaxGalleryFiles = 10
)

// imageExtensions maps every accepted content type to its file extension.
var imageExtensions = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpeg",
	"image/jpg":  "jpg",
}

// ExtensionFor returns the file extension for an accepted image content type.
func ExtensionFor(contentType string) (string, bool) {
	ct := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	ext, ok := imageExtensions[ct]
	return ext, ok
}

// sanitizeName turns a client filename into a safe object name stem:
// no directories, no spaces, no extension.
func sanitizeName(filename string) string {
	base := filepath.Base(filepath.Clean(filename))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.Join(strings.Fields(base), "-")
	base = strings.ReplaceAll(base, "/", "_")
	base = strings.ReplaceAll(base, "\\", "_")
	if base == "." || base == ".." || base == "" {
		return "image"
	}
	return base
}

func validateKey(key string) error {
	if key == "" || strings.HasPrefix(key, "/") {
		return ErrInvalidKey
	}
	for _, part := range strings.Split(key, "/") {
		if part == "" || part == "." || part == ".." {
			return ErrInvalidKey
		}
	}
	return nil
}

// Service stores product images in an fs-jetstream bucket.
type Service struct {
	bucket  fsjetstream.FileStoragePort
	baseURL string
}

// NewService creates a Service. URLs are built as baseURL + PublicPath + key.
func NewService(bucket fsjetstream.FileStoragePort, baseURL string) *Service {
	return &Service{
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// URLFor returns the public URL of key.
func (s *Service) URLFor(key string) string {
	return s.baseURL + PublicPath + key
}

// KeyFromURL extracts the bucket key from a URL built by URLFor.
func (s *Service) KeyFromURL(url string) (string, bool) {
	i := strings.Index(url, PublicPath)
	if i < 0 {
		return "", false
	}
	key := url[i+len(PublicPath):]
	return key, validateKey(key) == nil
}

// SaveImage validates and stores one product image.
func (s *Service) SaveImage(ctx context.Context, up Upload) (*StoredImage, error) {
	return s.save(ctx, "", up)
}

// SaveGallery stores up to MaxGalleryFiles images. Every file is checked
// before the first one is written.
func (s *Service) SaveGallery(ctx context.Context, uploads []Upload) ([]StoredImage, error) {
	if len(uploads) > MaxGalleryFiles {
		return nil, fmt.Errorf("%w: at most %d files", ErrTooManyImages, MaxGalleryFiles)
	}
	for _, up := range uploads {
		if err := checkUpload(up); err != nil {
			return nil, err
		}
	}

	stored := make([]StoredImage, 0, len(uploads))
	for _, up := range uploads {
		img, err := s.save(ctx, GalleryPrefix, up)
		if err != nil {
			for _, done := range stored {
				_ = s.bucket.Delete(done.Key)
			}
			return nil, err
		}
		stored = append(stored, *img)
	}
	return stored, nil
}

// Open returns an image's bytes and content type.
func (s *Service) Open(_ context.Context, key string) ([]byte, string, error) {
	if err := validateKey(key); err != nil {
		return nil, "", err
	}

	obj, err := s.find(key)
	if err != nil {
		return nil, "", err
	}

	data, err := s.bucket.Get(obj.Name)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get image: %w", err)
	}
	return data, contentTypeOf(obj), nil
}

// Delete removes an image.
func (s *Service) Delete(_ context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if _, err := s.find(key); err != nil {
		return err
	}
	if err := s.bucket.Delete(key); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

func checkUpload(up Upload) error {
	if _, ok := ExtensionFor(up.ContentType); !ok {
		return fmt.Errorf("%w: %s", ErrInvalidImageType, up.ContentType)
	}
	if len(up.Data) == 0 {
		return ErrEmptyImage
	}
	return nil
}

func (s *Service) save(ctx context.Context, prefix string, up Upload) (*StoredImage, error) {
	if err := checkUpload(up); err != nil {
		return nil, err
	}
	ext, _ := ExtensionFor(up.ContentType)

	key := fmt.Sprintf("%s%s/%s.%s", prefix, uuid.New().String(), sanitizeName(up.Filename), ext)
	info, err := s.bucket.Put(ctx, key, up.Data,
		fsjetstream.WithDescription(fmt.Sprintf("Image: %s", up.Filename)),
		fsjetstream.WithHeaders(map[string]string{
			"Content-Type":  up.ContentType,
			"Original-Name": up.Filename,
			"Uploaded-At":   time.Now().Format(time.RFC3339),
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	return &StoredImage{
		Key:         key,
		URL:         s.URLFor(key),
		ContentType: up.ContentType,
		Size:        int64(info.Size),
		Digest:      info.Digest,
		CreatedAt:   info.ModTime,
	}, nil
}

func (s *Service) find(key string) (*fsjetstream.ObjectInfo, error) {
	objs, err := s.bucket.List(fsjetstream.WithPrefix(key))
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	for i := range objs {
		if objs[i].Name == key {
			return &objs[i], nil
		}
	}
	return nil, ErrImageNotFound
}

func contentTypeOf(obj *fsjetstream.ObjectInfo) string {
	if ct, ok := obj.Headers["Content-Type"]; ok && ct != "" {
		return ct
	}
	if ext := strings.TrimPrefix(filepath.Ext(obj.Name), "."); ext != "" {
		for ct, e := range imageExtensions {
			if e == ext {
				return ct
			}
		}
	}
	return "application/octet-stream"
}
