package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/portfolio-api/internal/models"
	appErrors "github.com/noah-isme/portfolio-api/pkg/errors"
	"github.com/noah-isme/portfolio-api/pkg/storage"
)

// Storage prefixes per attachment kind.
const (
	PrefixCovers   = "covers"
	PrefixLectures = "lectures"
	PrefixProjects = "research/projects"
)

// BlobStore persists attachment bytes.
type BlobStore = storage.Store

// Upload is a file received with a request.
type Upload struct {
	Field       string
	Filename    string
	ContentType string
	Data        []byte
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

var tracer = otel.Tracer("github.com/noah-isme/portfolio-api/internal/service")

// Attachments uploads and removes blobs on behalf of the resource services.
type Attachments struct {
	blobs   BlobStore
	metrics *MetricsService
	logger  *zap.Logger
}

// NewAttachments constructs an attachment manager.
func NewAttachments(blobs BlobStore, metrics *MetricsService, logger *zap.Logger) *Attachments {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Attachments{blobs: blobs, metrics: metrics, logger: logger}
}

// Upload stores one file under prefix and returns its read URL and path.
func (a *Attachments) Upload(ctx context.Context, prefix string, up Upload) (models.Attachment, error) {
	ctx, span := tracer.Start(ctx, "attachments.upload")
	defer span.End()

	objectPath := ObjectPath(prefix, up.Filename)
	span.SetAttributes(attribute.String("blob.path", objectPath), attribute.Int("blob.size", len(up.Data)))

	start := time.Now()
	err := a.blobs.Save(ctx, objectPath, up.Data, up.ContentType)
	a.metrics.ObserveBlobOperation("save", err, time.Since(start))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "save failed")
		return models.Attachment{}, fmt.Errorf("save %s: %w", objectPath, err)
	}

	start = time.Now()
	url, err := a.blobs.URL(ctx, objectPath)
	a.metrics.ObserveBlobOperation("sign", err, time.Since(start))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "sign failed")
		a.Discard(context.WithoutCancel(ctx), objectPath)
		return models.Attachment{}, fmt.Errorf("sign %s: %w", objectPath, err)
	}
	return models.Attachment{URL: url, Path: objectPath}, nil
}

// UploadAll stores every file concurrently. Results keep the input order.
// On any failure the files already stored are removed and a storage error is returned.
func (a *Attachments) UploadAll(ctx context.Context, prefix string, uploads []Upload) ([]models.Attachment, error) {
	results := make([]models.Attachment, len(uploads))
	if len(uploads) == 0 {
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, up := range uploads {
		i, up := i, up
		g.Go(func() error {
			att, err := a.Upload(gctx, prefix, up)
			if err != nil {
				return err
			}
			results[i] = att
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		a.Discard(context.WithoutCancel(ctx), Paths(results)...)
		return nil, appErrors.Storage(err, "failed to upload attachments")
	}
	return results, nil
}

// Discard deletes blobs best-effort. Missing objects count as deleted.
func (a *Attachments) Discard(ctx context.Context, paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		start := time.Now()
		err := a.blobs.Delete(ctx, p)
		if errors.Is(err, storage.ErrObjectNotExist) {
			err = nil
		}
		a.metrics.ObserveBlobOperation("delete", err, time.Since(start))
		if err != nil {
			a.logger.Warn("failed to delete attachment", zap.String("path", p), zap.Error(err))
		}
	}
}

// Paths returns the non-empty storage paths of attachments.
func Paths(attachments []models.Attachment) []string {
	paths := make([]string, 0, len(attachments))
	for _, att := range attachments {
		if att.Path != "" {
			paths = append(paths, att.Path)
		}
	}
	return paths
}

// ObjectPath builds a unique storage key for filename under prefix.
func ObjectPath(prefix, filename string) string {
	name := unsafeFilenameChars.ReplaceAllString(strings.TrimSpace(path.Base(filename)), "_")
	if name == "" || name == "." || name == "_" {
		name = "file"
	}
	return fmt.Sprintf("%s/%s_%s", prefix, uuid.NewString(), name)
}
