package blob

import (
	"context"
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Provider-agnostic upload policy. The provider enforces nothing here.
const (
	MaxFileSize        = 100 << 20 // 100 MiB per file
	MaxFilesPerRequest = 10
)

// allowedMIMETypes: images, PDFs, common office formats, archives, limited
// audio/video. Everything else is rejected before the provider is called.
var allowedMIMETypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,

	"application/pdf": true,
	"text/plain":      true,
	"text/csv":        true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	"application/vnd.ms-powerpoint":                                             true,
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": true,

	"application/zip":              true,
	"application/x-7z-compressed":  true,
	"application/x-rar-compressed": true,
	"application/gzip":             true,

	"audio/mpeg": true,
	"audio/wav":  true,
	"video/mp4":  true,
	"video/quicktime": true,
	"video/webm":      true,
}

// BlobFile is the normalized provider-independent upload record.
type BlobFile struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	MimeType     string `json:"mime_type"`
	Size         int64  `json:"size"`
	URL          string `json:"url"`
	Pathname     string `json:"pathname"`
	DownloadURL  string `json:"download_url,omitempty"`
}

// Input is one file to upload.
type Input struct {
	OriginalName string
	Data         []byte
	// ContentType is sniffed from the data when empty.
	ContentType string
}

// Options apply to a whole upload call.
type Options struct {
	Folder string
	// AddRandomSuffix skips the dated path layout and appends a random token
	// to the sanitized name instead.
	AddRandomSuffix bool
}

// Gateway validates uploads and delegates storage to the provider.
type Gateway struct {
	store      Store
	cdnBaseURL string

	// now is swappable for tests of path generation.
	now func() time.Time
}

func NewGateway(store Store, cdnBaseURL string) *Gateway {
	return &Gateway{store: store, cdnBaseURL: cdnBaseURL, now: time.Now}
}

var nonAlnum = regexp.MustCompile(`[^A-Za-z0-9]`)

// buildPath: {folder}/{YYYY-MM-DD}/{sanitized}_{unixms}-{rand9}{ext}. The
// extension is appended verbatim; the whole original name (extension
// included) is sanitized into the base.
func (g *Gateway) buildPath(originalName, folder string, addRandomSuffix bool) string {
	ext := filepath.Ext(originalName)
	base := nonAlnum.ReplaceAllString(originalName, "_")
	if addRandomSuffix {
		return fmt.Sprintf("%s/%s_%s%s", folder, base, uuid.NewString()[:8], ext)
	}
	now := g.now()
	return fmt.Sprintf("%s/%s/%s_%d-%09d%s",
		folder, now.Format("2006-01-02"), base, now.UnixMilli(), rand.N(1_000_000_000), ext)
}

// Upload validates a single file and stores it. Single attempt, fail-fast.
func (g *Gateway) Upload(ctx context.Context, in Input, opts Options) (*BlobFile, error) {
	mime := in.ContentType
	if mime == "" {
		mime = mimetype.Detect(in.Data).String()
	}
	// strip parameters such as "; charset=utf-8"
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}
	if !allowedMIMETypes[mime] {
		return nil, fmt.Errorf("file type %s is not allowed", mime)
	}
	if int64(len(in.Data)) > MaxFileSize {
		return nil, fmt.Errorf("file %s exceeds the %d byte limit", in.OriginalName, MaxFileSize)
	}
	folder := opts.Folder
	if folder == "" {
		folder = "uploads"
	}
	pathname := g.buildPath(in.OriginalName, folder, opts.AddRandomSuffix)
	url, err := g.store.Put(ctx, pathname, in.Data, mime)
	if err != nil {
		logrus.WithError(err).WithField("path", pathname).Error("blob: upload failed")
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}
	out := &BlobFile{
		ID:           uuid.NewString(),
		Filename:     filepath.Base(pathname),
		OriginalName: in.OriginalName,
		MimeType:     mime,
		Size:         int64(len(in.Data)),
		URL:          url,
		Pathname:     pathname,
	}
	if g.cdnBaseURL != "" {
		out.DownloadURL = g.cdnBaseURL + "/" + pathname
	}
	return out, nil
}

// UploadBatch stores the files concurrently. A failed file is logged and
// omitted from the result; it never fails the batch and already-stored files
// are not rolled back.
func (g *Gateway) UploadBatch(ctx context.Context, inputs []Input, opts Options) ([]BlobFile, error) {
	if len(inputs) > MaxFilesPerRequest {
		return nil, fmt.Errorf("too many files: %d exceeds the limit of %d per request", len(inputs), MaxFilesPerRequest)
	}
	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		out []BlobFile
	)
	for i := range inputs {
		wg.Add(1)
		go func(in Input) {
			defer wg.Done()
			f, err := g.Upload(ctx, in, opts)
			if err != nil {
				logrus.WithError(err).WithField("file", in.OriginalName).Warn("blob: batch file skipped")
				return
			}
			mu.Lock()
			out = append(out, *f)
			mu.Unlock()
		}(inputs[i])
	}
	wg.Wait()
	return out, nil
}

// Delete removes an object best-effort: provider errors are logged and
// reported as false, never returned. Callers treat deletion as cleanup.
func (g *Gateway) Delete(ctx context.Context, pathname string) bool {
	if err := g.store.Delete(ctx, pathname); err != nil {
		logrus.WithError(err).WithField("path", pathname).Warn("blob: delete failed")
		return false
	}
	return true
}

// List returns stored objects under the prefix.
func (g *Gateway) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	return g.store.List(ctx, prefix)
}
