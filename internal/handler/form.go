package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/portfolio-api/internal/service"
	appErrors "github.com/noah-isme/portfolio-api/pkg/errors"
)

const multipartMemory = 32 << 20

// UploadLimits bounds file uploads on multipart routes.
type UploadLimits struct {
	MaxFileSize int64
	MaxFiles    int
}

func (l UploadLimits) withDefaults() UploadLimits {
	if l.MaxFileSize <= 0 {
		l.MaxFileSize = 10 << 20
	}
	if l.MaxFiles <= 0 {
		l.MaxFiles = 10
	}
	return l
}

// fileField describes an accepted file field and the names it may arrive under.
type fileField struct {
	name    string
	aliases []string
	max     int
	kind    string
	accept  func(contentType string) bool
}

func isPDF(ct string) bool   { return ct == "application/pdf" }
func isImage(ct string) bool { return strings.HasPrefix(ct, "image/") }

var (
	coverImageField = fileField{name: "cover_image", aliases: []string{"coverImage"}, max: 1, kind: "an image", accept: isImage}
	lecturePDFs     = fileField{name: "pdf", kind: "a PDF", accept: isPDF}
	lecturePDF      = fileField{name: "pdf", max: 1, kind: "a PDF", accept: isPDF}
	projectImages   = fileField{name: "images", aliases: []string{"files", "newImages"}, kind: "an image", accept: isImage}
)

// requestForm is the decoded body of a multipart or JSON request.
type requestForm struct {
	values map[string]string
	files  map[string][]service.Upload
}

// String returns the trimmed field value, or nil when the field was not sent.
func (f *requestForm) String(key string) *string {
	v, ok := f.values[key]
	if !ok {
		return nil
	}
	v = strings.TrimSpace(v)
	return &v
}

// Value returns the field value or "".
func (f *requestForm) Value(key string) string {
	if v := f.String(key); v != nil {
		return *v
	}
	return ""
}

// JSON decodes a JSON-encoded field into dest and reports whether it was sent.
// A blank value counts as absent.
func (f *requestForm) JSON(key string, dest interface{}) (bool, error) {
	raw := f.Value(key)
	if raw == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, appErrors.Validation("invalid "+key, appErrors.FieldError{Field: key, Message: "must be valid JSON"})
	}
	return true, nil
}

// Files returns the uploads of field in submission order.
func (f *requestForm) Files(field fileField) []service.Upload {
	return f.files[field.name]
}

// File returns the first upload of field or nil.
func (f *requestForm) File(field fileField) *service.Upload {
	files := f.files[field.name]
	if len(files) == 0 {
		return nil
	}
	up := files[0]
	return &up
}

// formParser reads multipart bodies under the configured limits. JSON bodies
// are accepted too, with non-string values kept as raw JSON text.
type formParser struct {
	limits UploadLimits
}

func newFormParser(limits UploadLimits) formParser {
	return formParser{limits: limits.withDefaults()}
}

func (p formParser) parse(c *gin.Context, fields ...fileField) (*requestForm, error) {
	form := &requestForm{values: map[string]string{}, files: map[string][]service.Upload{}}
	mediaType, _, _ := mime.ParseMediaType(c.GetHeader("Content-Type"))

	switch {
	case mediaType == "multipart/form-data":
		return form, p.parseMultipart(c, form, fields)
	case mediaType == "application/json":
		return form, parseJSONBody(c.Request.Body, form)
	case c.Request.ContentLength == 0:
		return form, nil
	default:
		if err := c.Request.ParseForm(); err != nil {
			return nil, appErrors.Validation("invalid form body")
		}
		for key, values := range c.Request.PostForm {
			if len(values) > 0 {
				form.values[key] = values[0]
			}
		}
		return form, nil
	}
}

func (p formParser) parseMultipart(c *gin.Context, form *requestForm, fields []fileField) error {
	maxBody := int64(p.limits.MaxFiles)*p.limits.MaxFileSize + multipartMemory
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBody)
	if err := c.Request.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return appErrors.Validation("request body too large")
		}
		return appErrors.Validation("invalid multipart body")
	}
	mf := c.Request.MultipartForm
	defer mf.RemoveAll() //nolint:errcheck

	for key, values := range mf.Value {
		if len(values) > 0 {
			form.values[key] = values[0]
		}
	}

	byName := make(map[string]fileField, len(fields))
	for _, field := range fields {
		byName[field.name] = field
		for _, alias := range field.aliases {
			byName[alias] = field
		}
	}

	total := 0
	for key, headers := range mf.File {
		if _, ok := byName[key]; !ok {
			return appErrors.Validation("unexpected file field", appErrors.FieldError{Field: key, Message: "is not accepted on this route"})
		}
		total += len(headers)
	}
	if total > p.limits.MaxFiles {
		return appErrors.Validation(fmt.Sprintf("too many files, at most %d allowed", p.limits.MaxFiles))
	}

	for _, field := range fields {
		for _, name := range append([]string{field.name}, field.aliases...) {
			for _, header := range mf.File[name] {
				up, err := p.readFile(name, field, header)
				if err != nil {
					return err
				}
				form.files[field.name] = append(form.files[field.name], up)
			}
		}
		if field.max > 0 && len(form.files[field.name]) > field.max {
			return appErrors.Validation("too many files", appErrors.FieldError{Field: field.name, Message: fmt.Sprintf("at most %d file allowed", field.max)})
		}
	}
	return nil
}

func (p formParser) readFile(name string, field fileField, header *multipart.FileHeader) (service.Upload, error) {
	if header.Size > p.limits.MaxFileSize {
		return service.Upload{}, appErrors.Validation("file too large", appErrors.FieldError{Field: name, Message: fmt.Sprintf("exceeds %d bytes", p.limits.MaxFileSize)})
	}
	src, err := header.Open()
	if err != nil {
		return service.Upload{}, appErrors.Internal(err, "failed to open file")
	}
	defer src.Close()
	data, err := io.ReadAll(io.LimitReader(src, p.limits.MaxFileSize+1))
	if err != nil {
		return service.Upload{}, appErrors.Internal(err, "failed to read file")
	}
	if int64(len(data)) > p.limits.MaxFileSize {
		return service.Upload{}, appErrors.Validation("file too large", appErrors.FieldError{Field: name, Message: fmt.Sprintf("exceeds %d bytes", p.limits.MaxFileSize)})
	}

	contentType := baseMediaType(header.Header.Get("Content-Type"))
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = baseMediaType(mimetype.Detect(data).String())
	}
	if !field.accept(contentType) {
		return service.Upload{}, appErrors.Validation("unsupported file type", appErrors.FieldError{Field: name, Message: "must be " + field.kind})
	}
	return service.Upload{Field: field.name, Filename: header.Filename, ContentType: contentType, Data: data}, nil
}

func baseMediaType(ct string) string {
	return strings.ToLower(strings.TrimSpace(strings.SplitN(ct, ";", 2)[0]))
}

func parseJSONBody(body io.Reader, form *requestForm) error {
	raw, err := io.ReadAll(body)
	if err != nil {
		return appErrors.Validation("invalid JSON body")
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return appErrors.Validation("invalid JSON body")
	}
	for key, value := range fields {
		trimmed := bytes.TrimSpace(value)
		switch {
		case bytes.Equal(trimmed, []byte("null")):
			continue
		case len(trimmed) > 0 && trimmed[0] == '"':
			var s string
			if err := json.Unmarshal(trimmed, &s); err != nil {
				return appErrors.Validation("invalid JSON body")
			}
			form.values[key] = s
		default:
			form.values[key] = string(trimmed)
		}
	}
	return nil
}
