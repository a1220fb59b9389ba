package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"agency-site/config"
	"agency-site/database"
	adminapi "agency-site/internal/api/admin"
	"agency-site/internal/domain/contact"
	"agency-site/internal/domain/projects"
	"agency-site/internal/ratelimit"
	"agency-site/internal/store"
	"agency-site/internal/uploads"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const adminPassword = "correct horse battery staple"

type recordingNotifier struct {
	mu   sync.Mutex
	got  []contact.Message
	fail error
}

func (n *recordingNotifier) NotifyContact(_ context.Context, m contact.Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.got = append(n.got, m)
	return n.fail
}

type testEnv struct {
	router   *gin.Engine
	db       *gorm.DB
	uploads  *uploads.Handler
	notifier *recordingNotifier
	token    string
}

func newTestEnv(t *testing.T, limiter ratelimit.Limiter) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	require.NoError(t, err)
	config.JWT_SECRET = "routes-test-secret"
	config.ADMIN_PASSWORD_HASH = string(hash)
	t.Cleanup(func() {
		config.JWT_SECRET = ""
		config.ADMIN_PASSWORD_HASH = ""
	})

	db, err := database.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	st := store.NewGormStore(db)
	up := uploads.NewHandler(t.TempDir(), 10<<20, uploads.AllowedTypes(false), st)
	n := &recordingNotifier{}

	r := gin.New()
	RegisterRoutes(r, Deps{Store: st, Uploads: up, Notifier: n, Limiter: limiter})

	token, err := adminapi.IssueToken(time.Now())
	require.NoError(t, err)

	return &testEnv{router: r, db: db, uploads: up, notifier: n, token: token}
}

func (e *testEnv) do(method, path string, body any, admin bool) *httptest.ResponseRecorder {
	var rdr *bytes.Reader
	switch b := body.(type) {
	case nil:
		rdr = bytes.NewReader(nil)
	case string:
		rdr = bytes.NewReader([]byte(b))
	default:
		raw, _ := json.Marshal(b)
		rdr = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")
	if admin {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) upload(t *testing.T, filename, contentType string, data []byte, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/media/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+e.token)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func countRows(t *testing.T, db *gorm.DB, table string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Table(table).Count(&n).Error)
	return n
}

func validProject(title, category string) map[string]any {
	return map[string]any{
		"title":       title,
		"description": "Cross-platform food delivery app",
		"category":    category,
		"techStack":   []string{"React Native", "Firebase"},
		"imageUrls":   []string{"/uploads/file-1-1.png"},
	}
}

func TestHealth(t *testing.T) {
	e := newTestEnv(t, nil)
	w := e.do(http.MethodGet, "/health", nil, false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestContact_StoresMessageAndNotifies(t *testing.T) {
	e := newTestEnv(t, nil)

	w := e.do(http.MethodPost, "/api/contact", map[string]string{"name": "A", "email": "a@b.com", "message": "hi"}, false)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	var stored []contact.Message
	require.NoError(t, e.db.Find(&stored).Error)
	require.Len(t, stored, 1)
	assert.Equal(t, "A", stored[0].Name)
	assert.Equal(t, "a@b.com", stored[0].Email)
	assert.Equal(t, "hi", stored[0].Message)

	require.Len(t, e.notifier.got, 1)
	assert.Equal(t, stored[0].ID, e.notifier.got[0].ID)
}

func TestContact_NotificationFailureStillSucceeds(t *testing.T) {
	e := newTestEnv(t, nil)
	e.notifier.fail = errors.New("smtp: 535 authentication failed")

	w := e.do(http.MethodPost, "/api/contact", map[string]string{"name": "A", "email": "a@b.com", "message": "hi"}, false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, countRows(t, e.db, "contact_messages"))
}

func TestContact_RejectsInvalidInput(t *testing.T) {
	e := newTestEnv(t, nil)

	w := e.do(http.MethodPost, "/api/contact", map[string]string{"name": "A", "email": "not-an-email", "message": "hi"}, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"email must be a valid email address"}`, w.Body.String())

	w = e.do(http.MethodPost, "/api/contact", `{"name":`, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Malformed JSON"}`, w.Body.String())

	assert.Zero(t, countRows(t, e.db, "contact_messages"))
	assert.Empty(t, e.notifier.got)
}

func TestContact_StripsMarkup(t *testing.T) {
	e := newTestEnv(t, nil)

	w := e.do(http.MethodPost, "/api/contact", map[string]string{
		"name": "<b>Jane</b>", "email": "jane@example.com", "message": "R&D <script>alert(1)</script>question",
	}, false)
	require.Equal(t, http.StatusOK, w.Code)

	var stored contact.Message
	require.NoError(t, e.db.First(&stored).Error)
	assert.Equal(t, "Jane", stored.Name)
	assert.Equal(t, "R&D question", stored.Message)
}

func TestContact_RateLimited(t *testing.T) {
	e := newTestEnv(t, ratelimit.NewMemoryLimiter(1, time.Hour))
	body := map[string]string{"name": "A", "email": "a@b.com", "message": "hi"}

	assert.Equal(t, http.StatusOK, e.do(http.MethodPost, "/api/contact", body, false).Code)
	w := e.do(http.MethodPost, "/api/contact", body, false)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.EqualValues(t, 1, countRows(t, e.db, "contact_messages"))
}

func TestProjects_UnknownCategoryIsEmptyArray(t *testing.T) {
	e := newTestEnv(t, nil)

	w := e.do(http.MethodGet, "/api/projects/desktop", nil, false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = e.do(http.MethodGet, "/api/projects", nil, false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestProjects_CreateMissingTitleIsRejected(t *testing.T) {
	e := newTestEnv(t, nil)

	body := validProject("", projects.CategoryWeb)
	delete(body, "title")
	w := e.do(http.MethodPost, "/api/projects", body, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"title is required"}`, w.Body.String())

	w = e.do(http.MethodPost, "/api/projects", validProject("Bad category", "blockchain"), true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Zero(t, countRows(t, e.db, "projects"))
}

func TestProjects_CreateListAndReviews(t *testing.T) {
	e := newTestEnv(t, nil)

	w := e.do(http.MethodPost, "/api/projects", validProject("Food Delivery App", projects.CategoryMobile), true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[map[string]any](t, w)
	id := uint(created["id"].(float64))
	assert.Equal(t, "Food Delivery App", created["title"])
	assert.Equal(t, []any{}, created["videoUrls"])
	assert.NotEmpty(t, created["createdAt"])

	w = e.do(http.MethodGet, "/api/projects/mobile", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]map[string]any](t, w)
	require.Len(t, list, 1)
	assert.Equal(t, []any{}, list[0]["reviews"])

	// The path id wins over the body's projectId.
	w = e.do(http.MethodPost, fmt.Sprintf("/api/projects/%d/reviews", id), map[string]any{
		"projectId":       999,
		"customerName":    "Sarah Johnson",
		"customerCompany": "FoodTech Inc",
		"rating":          5,
		"review":          "Great attention to detail!",
	}, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	review := decode[map[string]any](t, w)
	assert.EqualValues(t, id, review["projectId"])

	w = e.do(http.MethodGet, "/api/projects", nil, false)
	list = decode[[]map[string]any](t, w)
	require.Len(t, list, 1)
	reviews := list[0]["reviews"].([]any)
	require.Len(t, reviews, 1)
	assert.Equal(t, "Sarah Johnson", reviews[0].(map[string]any)["customerName"])
}

func TestProjects_CreateKeepsValuesAsSent(t *testing.T) {
	e := newTestEnv(t, nil)

	body := validProject(" Padded Title ", projects.CategoryWeb)
	body["techStack"] = []string{" React ", ""}
	w := e.do(http.MethodPost, "/api/projects", body, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[map[string]any](t, w)
	assert.Equal(t, " Padded Title ", created["title"])
	assert.Equal(t, []any{" React ", ""}, created["techStack"])

	w = e.do(http.MethodGet, "/api/projects/web", nil, false)
	list := decode[[]map[string]any](t, w)
	require.Len(t, list, 1)
	assert.Equal(t, " Padded Title ", list[0]["title"])
	assert.Equal(t, []any{" React ", ""}, list[0]["techStack"])

	body = validProject("   ", projects.CategoryWeb)
	w = e.do(http.MethodPost, "/api/projects", body, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"title is required"}`, w.Body.String())
}

func TestProjects_ReviewPathIDIgnoresBodyIDOfAnyType(t *testing.T) {
	e := newTestEnv(t, nil)

	w := e.do(http.MethodPost, "/api/projects", validProject("Reviewed", projects.CategoryWeb), true)
	require.Equal(t, http.StatusCreated, w.Code)
	id := uint(decode[map[string]any](t, w)["id"].(float64))

	for _, bodyID := range []any{"999", -3, nil, map[string]any{"id": 1}} {
		w = e.do(http.MethodPost, fmt.Sprintf("/api/projects/%d/reviews", id), map[string]any{
			"projectId":    bodyID,
			"customerName": "John Smith",
			"rating":       4,
			"review":       "Solid work",
		}, true)
		require.Equal(t, http.StatusCreated, w.Code, "projectId %v: %s", bodyID, w.Body.String())
		assert.EqualValues(t, id, decode[map[string]any](t, w)["projectId"])
	}
	assert.EqualValues(t, 4, countRows(t, e.db, "project_reviews"))
}

func TestProjects_ReviewValidation(t *testing.T) {
	e := newTestEnv(t, nil)

	w := e.do(http.MethodPost, "/api/projects", validProject("Rated", projects.CategoryWeb), true)
	require.Equal(t, http.StatusCreated, w.Code)
	id := uint(decode[map[string]any](t, w)["id"].(float64))

	w = e.do(http.MethodPost, fmt.Sprintf("/api/projects/%d/reviews", id), map[string]any{
		"customerName": "X", "rating": 6, "review": "too good",
	}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"rating must be at most 5"}`, w.Body.String())

	w = e.do(http.MethodPost, "/api/projects/999/reviews", map[string]any{
		"customerName": "X", "rating": 3, "review": "ok",
	}, true)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = e.do(http.MethodPost, "/api/projects/abc/reviews", map[string]any{}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProjects_UpdateUnknownIsNotFound(t *testing.T) {
	e := newTestEnv(t, nil)

	w := e.do(http.MethodPatch, "/api/projects/42", validProject("Ghost", projects.CategoryWeb), true)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, decode[map[string]string](t, w)["error"], "not found")
	assert.Zero(t, countRows(t, e.db, "projects"))
}

func TestProjects_UpdateAndDelete(t *testing.T) {
	e := newTestEnv(t, nil)

	w := e.do(http.MethodPost, "/api/projects", validProject("Before", projects.CategoryWeb), true)
	require.Equal(t, http.StatusCreated, w.Code)
	id := uint(decode[map[string]any](t, w)["id"].(float64))

	w = e.do(http.MethodPatch, fmt.Sprintf("/api/projects/%d", id), validProject("After", projects.CategoryDesktop), true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[map[string]any](t, w)
	assert.Equal(t, "After", updated["title"])
	assert.Equal(t, "desktop", updated["category"])

	w = e.do(http.MethodDelete, fmt.Sprintf("/api/projects/%d", id), nil, true)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, countRows(t, e.db, "projects"))

	w = e.do(http.MethodDelete, fmt.Sprintf("/api/projects/%d", id), nil, true)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	e := newTestEnv(t, nil)

	routes := []struct{ method, path string }{
		{http.MethodPost, "/api/projects"},
		{http.MethodPatch, "/api/projects/1"},
		{http.MethodDelete, "/api/projects/1"},
		{http.MethodPost, "/api/projects/1/reviews"},
		{http.MethodPost, "/api/media/upload"},
		{http.MethodDelete, "/api/media/1"},
	}
	for _, rt := range routes {
		w := e.do(rt.method, rt.path, validProject("Sneaky", projects.CategoryWeb), false)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", rt.method, rt.path)
	}
	assert.Zero(t, countRows(t, e.db, "projects"))
}

func TestAdminLogin(t *testing.T) {
	e := newTestEnv(t, nil)

	w := e.do(http.MethodPost, "/api/admin/login", map[string]string{"password": "wrong"}, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = e.do(http.MethodPost, "/api/admin/login", map[string]string{}, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = e.do(http.MethodPost, "/api/admin/login", map[string]string{"password": adminPassword}, false)
	require.Equal(t, http.StatusOK, w.Code)
	token := decode[map[string]string](t, w)["token"]
	require.NotEmpty(t, token)

	e.token = token
	w = e.do(http.MethodPost, "/api/projects", validProject("Logged in", projects.CategoryWeb), true)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestMedia_UploadListServeAndDelete(t *testing.T) {
	e := newTestEnv(t, nil)

	data := make([]byte, 2<<20)
	copy(data, []byte{0xFF, 0xD8, 0xFF, 0xE0})
	w := e.upload(t, "team.jpg", "image/jpeg", data, map[string]string{"type": "image", "category": "project"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[struct {
		Success bool `json:"success"`
		File    struct {
			ID       uint   `json:"id"`
			URL      string `json:"url"`
			Type     string `json:"type"`
			Category string `json:"category"`
		} `json:"file"`
	}](t, w)
	assert.True(t, resp.Success)
	assert.Regexp(t, `^/uploads/file-\d+-\d+\.jpg$`, resp.File.URL)
	assert.Equal(t, "image", resp.File.Type)

	w = e.do(http.MethodGet, resp.File.URL, nil, false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, len(data), w.Body.Len())

	w = e.do(http.MethodGet, "/api/media/all", nil, false)
	assert.Len(t, decode[[]map[string]any](t, w), 1)
	w = e.do(http.MethodGet, "/api/media/project", nil, false)
	assert.Len(t, decode[[]map[string]any](t, w), 1)
	w = e.do(http.MethodGet, "/api/media/brand", nil, false)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = e.do(http.MethodDelete, fmt.Sprintf("/api/media/%d", resp.File.ID), nil, true)
	assert.Equal(t, http.StatusOK, w.Code)
	_, err := os.Stat(filepath.Join(e.uploads.Dir, filepath.Base(resp.File.URL)))
	assert.ErrorIs(t, err, os.ErrNotExist)

	w = e.do(http.MethodGet, "/api/media", nil, false)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestMedia_UploadRejections(t *testing.T) {
	e := newTestEnv(t, nil)

	w := e.upload(t, "brief.pdf", "application/pdf", []byte("%PDF-1.7"), map[string]string{"type": "image", "category": "project"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	msg := decode[map[string]string](t, w)["error"]
	assert.True(t, strings.HasPrefix(msg, "Invalid file type: application/pdf"), msg)
	assert.Contains(t, msg, "image/jpeg")

	w = e.upload(t, "logo.png", "image/png", []byte("\x89PNG\r\n\x1a\n"), map[string]string{"type": "avatar", "category": "brand"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = e.upload(t, "logo.png", "image/png", []byte("\x89PNG\r\n\x1a\n"), map[string]string{"type": "logo", "category": "brand", "projectId": "abc"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = e.upload(t, "logo.png", "image/png", []byte("\x89PNG\r\n\x1a\n"), map[string]string{"type": "logo", "category": "brand", "projectId": "41"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	entries, err := os.ReadDir(e.uploads.Dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Zero(t, countRows(t, e.db, "media_assets"))
}
