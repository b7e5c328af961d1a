package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/portfolio-api/internal/service"
	"github.com/noah-isme/portfolio-api/pkg/config"
	"github.com/noah-isme/portfolio-api/pkg/docstore"
	"github.com/noah-isme/portfolio-api/pkg/identity"
	"github.com/noah-isme/portfolio-api/pkg/storage"
)

var (
	pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF\n")
	pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
)

type memoryBlobs struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (b *memoryBlobs) Save(_ context.Context, path string, data []byte, _ string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[path] = data
	return nil
}

func (b *memoryBlobs) URL(_ context.Context, path string) (string, error) {
	return "https://blobs.test/" + path, nil
}

func (b *memoryBlobs) Delete(_ context.Context, path string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.objects[path]; !ok {
		return storage.ErrObjectNotExist
	}
	delete(b.objects, path)
	return nil
}

func (b *memoryBlobs) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.objects)
}

type testServer struct {
	engine *gin.Engine
	store  *docstore.MemoryStore
	blobs  *memoryBlobs
	token  string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Env:         config.EnvDevelopment,
		APIPrefix:   "/api",
		ServiceName: "portfolio-api",
		Uploads:     config.UploadConfig{MaxFileSize: 1 << 20, MaxFiles: 3},
		Cache:       config.CacheConfig{TTL: time.Minute},
	}
	store := docstore.NewMemoryStore()
	blobs := &memoryBlobs{objects: map[string][]byte{}}
	verifier := identity.NewJWTVerifier("router-test-secret", false)
	token, err := verifier.Issue("admin-uid", "admin@example.com", time.Hour)
	require.NoError(t, err)

	engine := New(cfg, Deps{
		Store:    store,
		Blobs:    blobs,
		Verifier: verifier,
		Metrics:  service.NewMetricsService(),
	}, nil)
	return &testServer{engine: engine, store: store, blobs: blobs, token: token}
}

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  []json.RawMessage `json:"errors"`
}

func (s *testServer) do(t *testing.T, method, path, contentType string, body []byte, authed bool) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func (s *testServer) doJSON(t *testing.T, method, path string, payload interface{}, authed bool) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	return s.do(t, method, path, "application/json", body, authed)
}

type part struct {
	field    string
	filename string
	data     []byte
}

func multipartBody(t *testing.T, values map[string]string, files ...part) ([]byte, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range values {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, f := range files {
		fw, err := mw.CreateFormFile(f.field, f.filename)
		require.NoError(t, err)
		_, err = fw.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return buf.Bytes(), mw.FormDataContentType()
}

func decodeData(t *testing.T, env envelope, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, dest))
}

func TestMutationWithoutTokenIsRejectedWithoutWrites(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	w, env := srv.doJSON(t, http.MethodPost, "/api/publications/journals", map[string]string{"heading": "X", "description": "Y"}, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Authorization token missing", env.Message)

	req := httptest.NewRequest(http.MethodPost, "/api/watch/reads", strings.NewReader(`{"heading":"Z"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	srv.engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	journals, err := srv.store.List(ctx, "publications/journals/items")
	require.NoError(t, err)
	assert.Empty(t, journals)
	reads, err := srv.store.List(ctx, "watch-out-for/reads/items")
	require.NoError(t, err)
	assert.Empty(t, reads)
}

func TestJournalCreateThenList(t *testing.T) {
	srv := newTestServer(t)

	w, env := srv.doJSON(t, http.MethodPost, "/api/publications/journals", map[string]string{"heading": "X", "description": "Y"}, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID string `json:"id"`
	}
	decodeData(t, env, &created)
	require.NotEmpty(t, created.ID)

	w, env = srv.do(t, http.MethodGet, "/api/publications/journals", "", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	var items []map[string]interface{}
	decodeData(t, env, &items)
	require.Len(t, items, 1)
	assert.Equal(t, "X", items[0]["heading"])
	assert.Equal(t, created.ID, items[0]["id"])

	w, env = srv.doJSON(t, http.MethodPut, "/api/publications/journals/"+created.ID, map[string]string{"link": "https://doi.org/x"}, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated map[string]interface{}
	decodeData(t, env, &updated)
	assert.Equal(t, "X", updated["heading"])
	assert.Equal(t, "https://doi.org/x", updated["link"])

	w, _ = srv.do(t, http.MethodGet, "/api/publications/journals/export?format=csv", "", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "journals-")
	assert.Contains(t, w.Body.String(), "X")

	w, _ = srv.do(t, http.MethodDelete, "/api/publications/journals/"+created.ID, "", nil, true)
	assert.Equal(t, http.StatusOK, w.Code)
	w, env = srv.do(t, http.MethodDelete, "/api/publications/journals/"+created.ID, "", nil, true)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, env.Success)
}

func TestUnknownSectionAndRoute(t *testing.T) {
	srv := newTestServer(t)

	w, env := srv.do(t, http.MethodGet, "/api/publications/blogs", "", nil, false)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, env.Success)

	w, env = srv.do(t, http.MethodGet, "/api/watch/podcasts", "", nil, false)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, env.Success)

	w, env = srv.do(t, http.MethodGet, "/api/nowhere", "", nil, false)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "null", string(env.Data))
	assert.NotNil(t, env.Errors)
}

func TestInterestsReplaceGeneratesIDs(t *testing.T) {
	srv := newTestServer(t)

	w, env := srv.do(t, http.MethodGet, "/api/research/interests", "", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", string(env.Data))

	payload := map[string]interface{}{
		"heading":   "H",
		"paragraph": "P",
		"interests": []map[string]string{{"heading": "A", "description": "B"}},
	}
	w, _ = srv.doJSON(t, http.MethodPut, "/api/research/interests", payload, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, env = srv.do(t, http.MethodGet, "/api/research/interests", "", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	var docs []struct {
		Heading   string `json:"heading"`
		Interests []struct {
			ID          string `json:"id"`
			Heading     string `json:"heading"`
			Description string `json:"description"`
		} `json:"interests"`
	}
	decodeData(t, env, &docs)
	require.Len(t, docs, 1)
	require.Len(t, docs[0].Interests, 1)
	assert.Equal(t, "A", docs[0].Interests[0].Heading)
	assert.Equal(t, "B", docs[0].Interests[0].Description)
	assert.NotEmpty(t, docs[0].Interests[0].ID)
}

func TestCourseMultipartLifecycle(t *testing.T) {
	srv := newTestServer(t)

	body, ct := multipartBody(t, map[string]string{
		"course_code":   "CS101",
		"course_name":   "Intro",
		"prerequisites": `["none"]`,
		"lectures":      `[{"name":"Week 1"}]`,
	}, part{field: "cover_image", filename: "cover.png", data: pngBytes}, part{field: "pdf", filename: "week1.pdf", data: pdfBytes})
	w, env := srv.do(t, http.MethodPost, "/api/courses", ct, body, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID string `json:"id"`
	}
	decodeData(t, env, &created)
	assert.Equal(t, 2, srv.blobs.count())

	body, ct = multipartBody(t, map[string]string{"name": "Week 2"}, part{field: "pdf", filename: "week2.pdf", data: pdfBytes})
	w, _ = srv.do(t, http.MethodPost, "/api/courses/"+created.ID+"/lectures", ct, body, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, 3, srv.blobs.count())

	w, env = srv.do(t, http.MethodGet, "/api/courses", "", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	var courses []struct {
		ID         string  `json:"id"`
		CoverImage *string `json:"cover_image"`
		Lectures   []struct {
			ID   string  `json:"id"`
			Name string  `json:"name"`
			PDF  *string `json:"pdf"`
		} `json:"lectures"`
	}
	decodeData(t, env, &courses)
	require.Len(t, courses, 1)
	require.Len(t, courses[0].Lectures, 2)
	require.NotNil(t, courses[0].Lectures[0].PDF)
	assert.True(t, strings.HasPrefix(*courses[0].Lectures[0].PDF, "https://blobs.test/lectures/"))

	w, _ = srv.do(t, http.MethodDelete, "/api/courses/"+created.ID+"/lectures/0?lecture_id=wrong", "", nil, true)
	assert.Equal(t, http.StatusConflict, w.Code)
	w, _ = srv.do(t, http.MethodDelete, "/api/courses/"+created.ID+"/lectures/5", "", nil, true)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = srv.do(t, http.MethodDelete, "/api/courses/"+created.ID+"/lectures/abc", "", nil, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = srv.do(t, http.MethodDelete, "/api/courses/"+created.ID+"/lectures/0", "", nil, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 2, srv.blobs.count())

	w, _ = srv.do(t, http.MethodDelete, "/api/courses/"+created.ID, "", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, srv.blobs.count())
}

func TestCourseFormRejections(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		values map[string]string
		files  []part
	}{
		{
			name:   "unknown file field",
			values: map[string]string{"course_code": "CS1", "course_name": "A"},
			files:  []part{{field: "attachment", filename: "a.pdf", data: pdfBytes}},
		},
		{
			name:   "malformed lectures JSON",
			values: map[string]string{"course_code": "CS1", "course_name": "A", "lectures": `[{"name":`},
		},
		{
			name:   "pdf field carrying an image",
			values: map[string]string{"course_code": "CS1", "course_name": "A", "lectures": `[{"name":"W1"}]`},
			files:  []part{{field: "pdf", filename: "x.pdf", data: pngBytes}},
		},
		{
			name:   "too many files",
			values: map[string]string{"course_code": "CS1", "course_name": "A"},
			files: []part{
				{field: "pdf", filename: "1.pdf", data: pdfBytes},
				{field: "pdf", filename: "2.pdf", data: pdfBytes},
				{field: "pdf", filename: "3.pdf", data: pdfBytes},
				{field: "pdf", filename: "4.pdf", data: pdfBytes},
			},
		},
		{
			name:   "missing course name",
			values: map[string]string{"course_code": "CS1"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body, ct := multipartBody(t, tc.values, tc.files...)
			w, env := srv.do(t, http.MethodPost, "/api/courses", ct, body, true)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.False(t, env.Success)
		})
	}

	docs, err := srv.store.List(ctx, "courses")
	require.NoError(t, err)
	assert.Empty(t, docs)
	assert.Zero(t, srv.blobs.count())
}

func TestProjectImagesLifecycle(t *testing.T) {
	srv := newTestServer(t)

	body, ct := multipartBody(t, map[string]string{"heading": "Sensors", "description": "Low power"},
		part{field: "images", filename: "a.png", data: pngBytes},
		part{field: "files", filename: "b.png", data: pngBytes},
	)
	w, env := srv.do(t, http.MethodPost, "/api/research/projects", ct, body, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID string `json:"id"`
	}
	decodeData(t, env, &created)

	w, env = srv.do(t, http.MethodGet, "/api/research/projects", "", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	var projects []struct {
		Images []struct {
			Path string `json:"path"`
		} `json:"images"`
	}
	decodeData(t, env, &projects)
	require.Len(t, projects, 1)
	require.Len(t, projects[0].Images, 2)

	removed, err := json.Marshal([]string{projects[0].Images[0].Path})
	require.NoError(t, err)
	body, ct = multipartBody(t, map[string]string{"imagesToDelete": string(removed)}, part{field: "newImages", filename: "c.png", data: pngBytes})
	w, env = srv.do(t, http.MethodPut, "/api/research/projects/"+created.ID, ct, body, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated struct {
		Heading string `json:"heading"`
		Images  []struct {
			Path string `json:"path"`
		} `json:"images"`
	}
	decodeData(t, env, &updated)
	assert.Equal(t, "Sensors", updated.Heading)
	assert.Len(t, updated.Images, 2)
	assert.Equal(t, 2, srv.blobs.count())

	body, ct = multipartBody(t, map[string]string{"imagesToDelete": "not json"})
	w, _ = srv.do(t, http.MethodPut, "/api/research/projects/"+created.ID, ct, body, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = srv.do(t, http.MethodDelete, "/api/research/projects/"+created.ID, "", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, srv.blobs.count())
}

func TestLoginPassThroughAndLogout(t *testing.T) {
	srv := newTestServer(t)

	w, env := srv.doJSON(t, http.MethodPost, "/api/auth/login", map[string]string{}, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "idToken is required", env.Message)

	w, env = srv.doJSON(t, http.MethodPost, "/api/auth/login", map[string]string{"idToken": "provider-token"}, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"token":"provider-token"}`, string(env.Data))

	w, _ = srv.do(t, http.MethodPost, "/api/auth/logout", "", nil, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w, _ = srv.do(t, http.MethodPost, "/api/auth/logout", "", nil, true)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPanicsRenderInternalEnvelope(t *testing.T) {
	srv := newTestServer(t)
	srv.engine.GET("/boom", func(*gin.Context) { panic("boom") })

	w, env := srv.do(t, http.MethodGet, "/boom", "", nil, false)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "internal server error", env.Message)
}

func TestHealthAndReady(t *testing.T) {
	srv := newTestServer(t)

	w, env := srv.do(t, http.MethodGet, "/health", "", nil, false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	w, _ = srv.do(t, http.MethodGet, "/ready", "", nil, false)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = srv.do(t, http.MethodGet, "/metrics", "", nil, false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}
