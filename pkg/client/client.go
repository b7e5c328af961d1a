// Package client is a Go SDK for the portfolio API used by the admin tooling.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/noah-isme/portfolio-api/internal/dto"
	"github.com/noah-isme/portfolio-api/internal/models"
	appErrors "github.com/noah-isme/portfolio-api/pkg/errors"
	"github.com/noah-isme/portfolio-api/pkg/identity"
)

// ErrSessionExpired is returned before a mutating call when the stored token
// is missing or past its expiry. The caller should log in again.
var ErrSessionExpired = errors.New("session expired, log in again")

// APIError is a non-2xx response decoded from the envelope.
type APIError struct {
	Status  int
	Message string
	Errors  []appErrors.FieldError
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// File is an attachment sent with a multipart request.
type File struct {
	Name   string
	Reader io.Reader
}

type envelope struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Data    json.RawMessage        `json:"data"`
	Errors  []appErrors.FieldError `json:"errors"`
}

// Option customises a Client.
type Option func(*Client)

// WithToken sets the bearer token used for mutating calls.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithTimeout bounds every request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.SetTimeout(d) }
}

// WithHTTPClient swaps the underlying transport, mostly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = resty.NewWithClient(hc).SetBaseURL(c.baseURL) }
}

// Client talks to one portfolio API deployment.
type Client struct {
	http    *resty.Client
	baseURL string
	now     func() time.Time

	mu    sync.RWMutex
	token string
}

// New builds a client for the API rooted at baseURL, for example
// "https://example.com/api".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{baseURL: baseURL, now: time.Now}
	c.http = resty.New().SetBaseURL(baseURL).SetTimeout(30 * time.Second)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token returns the current bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetToken replaces the bearer token.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// SessionValid reports whether the stored token has not yet expired. It is a
// local check only; the server decides.
func (c *Client) SessionValid() bool {
	return !identity.IsExpired(c.Token(), c.now())
}

func (c *Client) request(ctx context.Context) *resty.Request {
	return c.http.R().SetContext(ctx).SetHeader("Accept", "application/json")
}

func (c *Client) authed(ctx context.Context) (*resty.Request, error) {
	token := c.Token()
	if identity.IsExpired(token, c.now()) {
		return nil, ErrSessionExpired
	}
	return c.request(ctx).SetAuthToken(token), nil
}

func decode(resp *resty.Response, dest interface{}) error {
	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		if resp.IsError() {
			return &APIError{Status: resp.StatusCode(), Message: http.StatusText(resp.StatusCode())}
		}
		return fmt.Errorf("decode response: %w", err)
	}
	if resp.IsError() || !env.Success {
		return &APIError{Status: resp.StatusCode(), Message: env.Message, Errors: env.Errors}
	}
	if dest == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, dest); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, dest interface{}) error {
	resp, err := c.request(ctx).Get(path)
	if err != nil {
		return err
	}
	return decode(resp, dest)
}

func (c *Client) send(ctx context.Context, method, path string, body, dest interface{}) error {
	req, err := c.authed(ctx)
	if err != nil {
		return err
	}
	if body != nil {
		req.SetBody(body)
	}
	resp, err := req.Execute(method, path)
	if err != nil {
		return err
	}
	return decode(resp, dest)
}

func (c *Client) sendForm(ctx context.Context, method, path string, fields map[string]string, files map[string][]File, dest interface{}) error {
	req, err := c.authed(ctx)
	if err != nil {
		return err
	}
	req.SetMultipartFormData(fields)
	for param, list := range files {
		for _, f := range list {
			req.SetFileReader(param, f.Name, f.Reader)
		}
	}
	resp, err := req.Execute(method, path)
	if err != nil {
		return err
	}
	return decode(resp, dest)
}

// Login exchanges a provider token and stores the returned bearer token.
func (c *Client) Login(ctx context.Context, idToken string) (string, error) {
	var out dto.LoginResponse
	resp, err := c.request(ctx).SetBody(dto.LoginRequest{IDToken: idToken}).Post("/auth/login")
	if err != nil {
		return "", err
	}
	if err := decode(resp, &out); err != nil {
		return "", err
	}
	c.SetToken(out.Token)
	return out.Token, nil
}

// Logout revokes the session server-side and forgets the token.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.send(ctx, http.MethodPost, "/auth/logout", nil, nil); err != nil {
		return err
	}
	c.SetToken("")
	return nil
}

func createdID(ctx context.Context, c *Client, method, path string, body interface{}) (string, error) {
	var out dto.CreatedResponse
	if err := c.send(ctx, method, path, body, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

// Publications lists one section.
func (c *Client) Publications(ctx context.Context, section string) ([]models.Publication, error) {
	var out []models.Publication
	return out, c.get(ctx, "/publications/"+url.PathEscape(section), &out)
}

// CreatePublication adds to a section and returns the new id.
func (c *Client) CreatePublication(ctx context.Context, section string, req dto.CreatePublicationRequest) (string, error) {
	return createdID(ctx, c, http.MethodPost, "/publications/"+url.PathEscape(section), req)
}

// UpdatePublication changes the supplied fields.
func (c *Client) UpdatePublication(ctx context.Context, section, id string, req dto.UpdatePublicationRequest) (*models.Publication, error) {
	var out models.Publication
	if err := c.send(ctx, http.MethodPut, "/publications/"+url.PathEscape(section)+"/"+url.PathEscape(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeletePublication removes an entry.
func (c *Client) DeletePublication(ctx context.Context, section, id string) error {
	return c.send(ctx, http.MethodDelete, "/publications/"+url.PathEscape(section)+"/"+url.PathEscape(id), nil, nil)
}

// ExportPublications downloads a section as csv or pdf.
func (c *Client) ExportPublications(ctx context.Context, section, format string) ([]byte, error) {
	resp, err := c.http.R().SetContext(ctx).SetQueryParam("format", format).Get("/publications/" + url.PathEscape(section) + "/export")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, decode(resp, nil)
	}
	return resp.Body(), nil
}

// WatchItems lists one watch-out-for category.
func (c *Client) WatchItems(ctx context.Context, category string) ([]models.WatchItem, error) {
	var out []models.WatchItem
	return out, c.get(ctx, "/watch/"+url.PathEscape(category), &out)
}

// CreateWatchItem adds to a category and returns the new id.
func (c *Client) CreateWatchItem(ctx context.Context, category string, req dto.CreateWatchItemRequest) (string, error) {
	return createdID(ctx, c, http.MethodPost, "/watch/"+url.PathEscape(category), req)
}

// UpdateWatchItem changes the supplied fields.
func (c *Client) UpdateWatchItem(ctx context.Context, category, id string, req dto.UpdateWatchItemRequest) (*models.WatchItem, error) {
	var out models.WatchItem
	if err := c.send(ctx, http.MethodPut, "/watch/"+url.PathEscape(category)+"/"+url.PathEscape(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteWatchItem removes an entry.
func (c *Client) DeleteWatchItem(ctx context.Context, category, id string) error {
	return c.send(ctx, http.MethodDelete, "/watch/"+url.PathEscape(category)+"/"+url.PathEscape(id), nil, nil)
}

// Interests fetches the research interests document, nil when never saved.
func (c *Client) Interests(ctx context.Context) (*models.ResearchInterests, error) {
	var out []models.ResearchInterests
	if err := c.get(ctx, "/research/interests", &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return &out[0], nil
}

// SaveInterests replaces the research interests document.
func (c *Client) SaveInterests(ctx context.Context, req dto.SaveInterestsRequest) (*models.ResearchInterests, error) {
	var out models.ResearchInterests
	if err := c.send(ctx, http.MethodPut, "/research/interests", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Projects lists research projects.
func (c *Client) Projects(ctx context.Context) ([]models.ResearchProject, error) {
	var out []models.ResearchProject
	return out, c.get(ctx, "/research/projects", &out)
}

// CreateProject uploads images and creates a project.
func (c *Client) CreateProject(ctx context.Context, req dto.CreateProjectRequest, images []File) (string, error) {
	var out dto.CreatedResponse
	fields := map[string]string{"heading": req.Heading, "description": req.Description}
	if err := c.sendForm(ctx, http.MethodPost, "/research/projects", fields, map[string][]File{"images": images}, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

// UpdateProject edits a project, removing the listed image paths and appending images.
func (c *Client) UpdateProject(ctx context.Context, id string, req dto.UpdateProjectRequest, images []File) (*models.ResearchProject, error) {
	fields := map[string]string{}
	setOptional(fields, "heading", req.Heading)
	setOptional(fields, "description", req.Description)
	if len(req.ImagesToDelete) > 0 {
		raw, err := json.Marshal(req.ImagesToDelete)
		if err != nil {
			return nil, err
		}
		fields["imagesToDelete"] = string(raw)
	}
	var out models.ResearchProject
	if err := c.sendForm(ctx, http.MethodPut, "/research/projects/"+url.PathEscape(id), fields, filesOf("images", images), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteProject removes a project and its images.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/research/projects/"+url.PathEscape(id), nil, nil)
}

// Courses lists every course with its lectures.
func (c *Client) Courses(ctx context.Context) ([]models.Course, error) {
	var out []models.Course
	return out, c.get(ctx, "/courses", &out)
}

// CreateCourse creates a course. pdfs are matched to req.Lectures by order.
func (c *Client) CreateCourse(ctx context.Context, req dto.CreateCourseRequest, cover *File, pdfs []File) (string, error) {
	fields := map[string]string{
		"course_code": req.CourseCode,
		"course_name": req.CourseName,
		"description": req.Description,
		"venue":       req.Venue,
	}
	lists := map[string]interface{}{
		"prerequisites": req.Prerequisites,
		"references":    req.References,
		"resources":     req.Resources,
		"lectures":      req.Lectures,
	}
	for key, value := range lists {
		raw, err := json.Marshal(value)
		if err != nil {
			return "", err
		}
		fields[key] = string(raw)
	}
	files := filesOf("pdf", pdfs)
	if cover != nil {
		files["cover_image"] = []File{*cover}
	}
	var out dto.CreatedResponse
	if err := c.sendForm(ctx, http.MethodPost, "/courses", fields, files, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

// UpdateCourse changes the supplied fields and optionally replaces the cover.
func (c *Client) UpdateCourse(ctx context.Context, id string, req dto.UpdateCourseRequest, cover *File) (*models.Course, error) {
	fields := map[string]string{}
	setOptional(fields, "course_code", req.CourseCode)
	setOptional(fields, "course_name", req.CourseName)
	setOptional(fields, "description", req.Description)
	setOptional(fields, "venue", req.Venue)
	for key, list := range map[string]*[]string{"prerequisites": req.Prerequisites, "references": req.References, "resources": req.Resources} {
		if list == nil {
			continue
		}
		raw, err := json.Marshal(*list)
		if err != nil {
			return nil, err
		}
		fields[key] = string(raw)
	}
	files := map[string][]File{}
	if cover != nil {
		files["cover_image"] = []File{*cover}
	}
	var out models.Course
	if err := c.sendForm(ctx, http.MethodPut, "/courses/"+url.PathEscape(id), fields, files, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCourse removes a course and every attachment it references.
func (c *Client) DeleteCourse(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/courses/"+url.PathEscape(id), nil, nil)
}

// AddLecture appends a lecture to a course.
func (c *Client) AddLecture(ctx context.Context, courseID string, req dto.CreateLectureRequest, pdf *File) (*models.Lecture, error) {
	fields := map[string]string{"name": req.Name}
	setOptional(fields, "video", req.Video)
	files := map[string][]File{}
	if pdf != nil {
		files["pdf"] = []File{*pdf}
	}
	var out models.Lecture
	if err := c.sendForm(ctx, http.MethodPost, "/courses/"+url.PathEscape(courseID)+"/lectures", fields, files, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateLecture edits the lecture at index. Set req.LectureID to fail with 409
// instead of editing a lecture that moved.
func (c *Client) UpdateLecture(ctx context.Context, courseID string, index int, req dto.UpdateLectureRequest, pdf *File) (*models.Lecture, error) {
	fields := map[string]string{}
	setOptional(fields, "name", req.Name)
	setOptional(fields, "video", req.Video)
	setOptional(fields, "lecture_id", req.LectureID)
	files := map[string][]File{}
	if pdf != nil {
		files["pdf"] = []File{*pdf}
	}
	var out models.Lecture
	path := "/courses/" + url.PathEscape(courseID) + "/lectures/" + strconv.Itoa(index)
	if err := c.sendForm(ctx, http.MethodPut, path, fields, files, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteLecture removes the lecture at index, guarded by lectureID when non-empty.
func (c *Client) DeleteLecture(ctx context.Context, courseID string, index int, lectureID string) error {
	path := "/courses/" + url.PathEscape(courseID) + "/lectures/" + strconv.Itoa(index)
	if lectureID != "" {
		path += "?lecture_id=" + url.QueryEscape(lectureID)
	}
	return c.send(ctx, http.MethodDelete, path, nil, nil)
}

func setOptional(fields map[string]string, key string, value *string) {
	if value != nil {
		fields[key] = *value
	}
}

func filesOf(param string, files []File) map[string][]File {
	out := map[string][]File{}
	if len(files) > 0 {
		out[param] = files
	}
	return out
}
