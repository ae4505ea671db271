package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/catalog/app/repositories/memory"
	"github.com/shashiranjanraj/catalog/app/services"
	"github.com/shashiranjanraj/catalog/database/seeders"
	"github.com/shashiranjanraj/catalog/internal/kernel"
	"github.com/shashiranjanraj/catalog/pkg/cache"
	"github.com/shashiranjanraj/catalog/pkg/storage"
	"github.com/shashiranjanraj/catalog/pkg/testkit"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "Admin123"
)

// pngHeader is enough for content sniffing to report image/png.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type app struct {
	handler http.Handler
	svc     *services.Services
}

func newApp(t *testing.T) *app {
	t.Helper()
	repos := memory.NewSet()
	disk := storage.NewLocalDisk(t.TempDir(), "/public")
	svc := services.New(repos, cache.NewMemoryStore(), disk, 1<<10)

	_, err := seeders.CreateAdmin(context.Background(), svc, repos, services.RegisterInput{
		FirstName: "Admin",
		LastName:  "User",
		Email:     adminEmail,
		Password:  adminPassword,
	})
	require.NoError(t, err)

	return &app{
		handler: kernel.NewHTTPKernel(svc, kernel.Options{Disk: disk}),
		svc:     svc,
	}
}

func (a *app) adminToken(t *testing.T) string {
	t.Helper()
	s, err := a.svc.Auth.Login(context.Background(), services.LoginInput{Email: adminEmail, Password: adminPassword})
	require.NoError(t, err)
	return s.AccessToken
}

func TestAuthFlow(t *testing.T) {
	a := newApp(t)
	testkit.RunFlow(t, a.handler, "testdata/auth_flow.json", testkit.Vars{
		"email":    "ada@example.com",
		"password": "Secret123",
	})
}

func TestCatalogFlow(t *testing.T) {
	a := newApp(t)
	vars := testkit.RunFlow(t, a.handler, "testdata/catalog_flow.json", testkit.Vars{
		"admin": a.adminToken(t),
	})
	assert.NotEmpty(t, vars["product"])
}

func TestUnknownRouteAnswersJSON(t *testing.T) {
	a := newApp(t)
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	assert.Contains(t, rec.Body.String(), `"success":false`)
}

func TestUploadIsServedFromPublic(t *testing.T) {
	a := newApp(t)
	token := a.adminToken(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("image", "tee.png")
	require.NoError(t, err)
	_, err = fw.Write(pngHeader)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/uploads/image", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var out struct {
		Data services.Upload `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Regexp(t, `^/public/image-\d+-[0-9a-f-]+\.png$`, out.Data.Image)

	rec = httptest.NewRecorder()
	a.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, out.Data.Image, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, pngHeader, rec.Body.Bytes())
}

func TestUploadRequiresImageField(t *testing.T) {
	a := newApp(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("title", "no file"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/uploads/image", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+a.adminToken(t))
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "The image field is required.")
}
