package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/portfolio-api/internal/models"
	appErrors "github.com/noah-isme/portfolio-api/pkg/errors"
	"github.com/noah-isme/portfolio-api/pkg/export"
)

// Export formats.
const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

type publicationLister interface {
	List(ctx context.Context, section string) ([]models.Publication, error)
}

type datasetRenderer interface {
	Render(data export.Dataset) ([]byte, error)
	ContentType() string
}

// ExportResult is a rendered download.
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders publication sections as CSV or PDF downloads.
type ExportService struct {
	publications publicationLister
	renderers    map[string]datasetRenderer
	logger       *zap.Logger
	now          func() time.Time
}

// NewExportService constructs the export service.
func NewExportService(publications publicationLister, csv, pdf datasetRenderer, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		publications: publications,
		renderers:    map[string]datasetRenderer{FormatCSV: csv, FormatPDF: pdf},
		logger:       logger,
		now:          time.Now,
	}
}

// ExportPublications renders section in format. An empty format means CSV.
func (s *ExportService) ExportPublications(ctx context.Context, section, format string) (*ExportResult, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatCSV
	}
	renderer, ok := s.renderers[format]
	if !ok || renderer == nil {
		return nil, appErrors.Validation("unsupported export format", appErrors.FieldError{Field: "format", Message: "must be csv or pdf"})
	}

	items, err := s.publications.List(ctx, section)
	if err != nil {
		return nil, err
	}

	data := export.Dataset{
		Title:   strings.ToUpper(section[:1]) + section[1:],
		Headers: []string{"Heading", "Description", "Link"},
		Rows:    make([][]string, 0, len(items)),
	}
	for _, item := range items {
		link := ""
		if item.Link != nil {
			link = *item.Link
		}
		data.Rows = append(data.Rows, []string{item.Heading, item.Description, link})
	}

	out, err := renderer.Render(data)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to render export")
	}
	s.logger.Info("publications exported", zap.String("section", section), zap.String("format", format), zap.Int("rows", len(items)))
	return &ExportResult{
		Filename:    fmt.Sprintf("%s-%s.%s", section, s.now().UTC().Format("20060102"), format),
		ContentType: renderer.ContentType(),
		Data:        out,
	}, nil
}
