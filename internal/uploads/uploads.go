// Package uploads validates uploaded files, writes them under the upload
// directory and registers the resulting media asset.
package uploads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"mime"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"agency-site/internal/domain/media"
	"agency-site/internal/errs"
	"agency-site/internal/store"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog/log"
)

const (
	DefaultPublicPrefix = "/uploads"
	DefaultField        = "file"
)

var baseAllowedTypes = []string{"image/jpeg", "image/png", "image/gif", "video/mp4"}

// AllowedTypes returns the MIME allow-list; webm is opt-in for deployments
// that host a lot of video.
func AllowedTypes(allowWebm bool) []string {
	out := slices.Clone(baseAllowedTypes)
	if allowWebm {
		out = append(out, "video/webm")
	}
	return out
}

type Handler struct {
	Dir          string
	PublicPrefix string
	MaxBytes     int64
	AllowedTypes []string
	Store        store.MediaStore

	now    func() time.Time
	suffix func() int64
}

func NewHandler(dir string, maxBytes int64, allowed []string, st store.MediaStore) *Handler {
	return &Handler{
		Dir:          dir,
		PublicPrefix: DefaultPublicPrefix,
		MaxBytes:     maxBytes,
		AllowedTypes: allowed,
		Store:        st,
	}
}

// Request is one file plus its classification fields.
type Request struct {
	Field     string
	File      *multipart.FileHeader
	Type      string
	Category  string
	ProjectID *uint
}

// Save validates the upload, writes it to disk and creates the asset record.
// Nothing is written when validation fails, and the file is removed again
// when the record cannot be created.
func (h *Handler) Save(ctx context.Context, req Request) (*media.Asset, error) {
	if req.File == nil {
		return nil, errs.NewBadUpload("No file uploaded")
	}
	if h.MaxBytes > 0 && req.File.Size > h.MaxBytes {
		return nil, errs.NewTooLarge(req.File.Size, h.MaxBytes)
	}

	src, err := req.File.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	mimeType, err := detectMIME(req.File, src)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(h.AllowedTypes, mimeType) {
		return nil, errs.NewInvalidMIME(mimeType, h.AllowedTypes)
	}

	field := req.Field
	if field == "" {
		field = DefaultField
	}
	filename := h.filename(field, req.File.Filename)

	input := media.AssetInput{
		Name:      req.File.Filename,
		Type:      req.Type,
		URL:       h.prefix() + "/" + filename,
		Category:  req.Category,
		ProjectID: req.ProjectID,
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	diskPath := filepath.Join(h.Dir, filename)
	if err := h.write(diskPath, src); err != nil {
		return nil, err
	}

	asset, err := h.Store.CreateMediaAsset(ctx, input)
	if err != nil {
		h.discard(diskPath)
		return nil, err
	}

	log.Info().
		Uint("asset_id", asset.ID).
		Str("url", asset.URL).
		Str("mime", mimeType).
		Int64("size", req.File.Size).
		Msg("Media asset created")
	return asset, nil
}

// Remove deletes the asset record and then its file. A file that is already
// gone is not an error.
func (h *Handler) Remove(ctx context.Context, id uint) error {
	asset, err := h.Store.GetMediaAsset(ctx, id)
	if err != nil {
		return err
	}
	if err := h.Store.DeleteMediaAsset(ctx, id); err != nil {
		return err
	}

	if p, ok := h.diskPath(asset.URL); ok {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Error().Err(err).Str("path", p).Msg("Error deleting media file")
		}
	}
	return nil
}

func (h *Handler) write(diskPath string, src io.Reader) error {
	if err := os.MkdirAll(h.Dir, 0o755); err != nil {
		return fmt.Errorf("create upload dir: %w", err)
	}

	dst, err := os.OpenFile(diskPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create upload file: %w", err)
	}

	limit := h.MaxBytes
	if limit <= 0 {
		limit = 1<<63 - 2
	}
	n, copyErr := io.Copy(dst, io.LimitReader(src, limit+1))
	closeErr := dst.Close()

	switch {
	case copyErr != nil:
		h.discard(diskPath)
		return fmt.Errorf("write upload: %w", copyErr)
	case closeErr != nil:
		h.discard(diskPath)
		return fmt.Errorf("close upload: %w", closeErr)
	case n > limit:
		// The part header under-reported the size.
		h.discard(diskPath)
		return errs.NewTooLarge(n, h.MaxBytes)
	}
	return nil
}

// discard removes a file written for a request that failed afterwards. A
// cleanup failure is logged and never replaces the request's own error.
func (h *Handler) discard(diskPath string) {
	if err := os.Remove(diskPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Error().Err(err).Str("path", diskPath).Msg("Error deleting failed upload")
	}
}

func (h *Handler) filename(field, original string) string {
	now := time.Now
	if h.now != nil {
		now = h.now
	}
	suffix := func() int64 { return rand.Int64N(1_000_000_000) }
	if h.suffix != nil {
		suffix = h.suffix
	}
	ext := filepath.Ext(filepath.Base(original))
	return fmt.Sprintf("%s-%d-%d%s", field, now().UnixMilli(), suffix(), ext)
}

func (h *Handler) prefix() string {
	p := strings.TrimRight(h.PublicPrefix, "/")
	if p == "" {
		return DefaultPublicPrefix
	}
	return p
}

// diskPath maps a public URL back to the file it was generated for. URLs
// outside the upload prefix are never resolved.
func (h *Handler) diskPath(url string) (string, bool) {
	rest, ok := strings.CutPrefix(url, h.prefix()+"/")
	if !ok || rest == "" || rest != path.Base(rest) || rest == ".." {
		return "", false
	}
	return filepath.Join(h.Dir, rest), true
}

// detectMIME trusts the part's Content-Type and only sniffs the content when
// the client sent none or a generic one.
func detectMIME(fh *multipart.FileHeader, src multipart.File) (string, error) {
	declared := fh.Header.Get("Content-Type")
	if declared != "" {
		if mt, _, err := mime.ParseMediaType(declared); err == nil {
			declared = mt
		}
	}
	if declared != "" && declared != "application/octet-stream" {
		return strings.ToLower(declared), nil
	}

	detected, err := mimetype.DetectReader(src)
	if err != nil {
		return "", fmt.Errorf("sniff upload: %w", err)
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}
	mt, _, err := mime.ParseMediaType(detected.String())
	if err != nil {
		return detected.String(), nil
	}
	return mt, nil
}
