package controller

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suryaghar_backend/internals/datastore"
	"suryaghar_backend/internals/features/home/gallery/model"
	"suryaghar_backend/internals/features/home/gallery/service"
	"suryaghar_backend/internals/helpers/storage"
	"suryaghar_backend/internals/helpers/storage/storagetest"
)

type fixture struct {
	app    *fiber.App
	images *datastore.MemoryTable[model.GalleryImageModel]
	store  *storage.Memory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	t.Setenv("IMAGE_WEBP_ENABLED", "false")
	images := datastore.NewMemoryTable[model.GalleryImageModel]()
	store := storage.NewMemory()
	ctrl := NewGalleryController(service.NewGalleryService(images, storage.NewUploader(store)), nil)

	app := fiber.New()
	app.Get("/api/public/gallery", ctrl.List)
	adm := app.Group("/api/admin/gallery")
	adm.Get("/", ctrl.AdminList)
	adm.Post("/", ctrl.Upload)
	adm.Patch("/:id/toggle", ctrl.Toggle)
	adm.Delete("/:id", ctrl.Delete)
	return &fixture{app: app, images: images, store: store}
}

type envelope struct {
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data"`
	Errors  map[string][]string `json:"errors"`
}

func do(t *testing.T, app *fiber.App, req *http.Request) (int, envelope) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	var env envelope
	body, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(body, &env)
	return resp.StatusCode, env
}

func (f *fixture) upload(t *testing.T, title, category string) (int, envelope) {
	t.Helper()
	return do(t, f.app, storagetest.Multipart("POST", "/api/admin/gallery",
		map[string]string{"title": title, "category": category},
		storagetest.File{Field: "image", Name: "site.png", ContentType: "image/png", Data: storagetest.PNG()}))
}

func count(t *testing.T, raw json.RawMessage) int {
	t.Helper()
	var rows []json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &rows))
	return len(rows)
}

func TestUploadToggleAndPublicList(t *testing.T) {
	f := newFixture(t)
	code, env := f.upload(t, "Rooftop in Kota", "Projects")
	require.Equal(t, fiber.StatusCreated, code, env.Message)
	code, _ = f.upload(t, "Jaipur team", "Team")
	require.Equal(t, fiber.StatusCreated, code)

	rows := f.images.Rows()
	require.Len(t, rows, 2)
	assert.True(t, strings.HasPrefix(rows[0].ImageURL, "memory://gallery-images/projects/"))
	assert.True(t, rows[0].IsActive)

	code, _ = do(t, f.app, httptest.NewRequest("PATCH", "/api/admin/gallery/"+rows[0].ID.String()+"/toggle", nil))
	require.Equal(t, fiber.StatusOK, code)

	_, env = do(t, f.app, httptest.NewRequest("GET", "/api/public/gallery", nil))
	assert.Equal(t, 1, count(t, env.Data))
	_, env = do(t, f.app, httptest.NewRequest("GET", "/api/admin/gallery", nil))
	assert.Equal(t, 2, count(t, env.Data))
	_, env = do(t, f.app, httptest.NewRequest("GET", "/api/admin/gallery?category=Projects", nil))
	assert.Equal(t, 1, count(t, env.Data))
}

func TestUpload_RejectsBadCategoryAndFile(t *testing.T) {
	f := newFixture(t)
	code, env := f.upload(t, "Award", "Awards")
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)
	assert.Equal(t, []string{"Unknown gallery category"}, env.Errors["category"])

	code, env = do(t, f.app, storagetest.Multipart("POST", "/api/admin/gallery",
		map[string]string{"title": "Award", "category": "Events"},
		storagetest.File{Field: "image", Name: "award.pdf", ContentType: "application/pdf", Data: storagetest.PDF()}))
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)
	assert.Contains(t, env.Errors, "image")
	assert.Empty(t, f.images.Rows())
	assert.Empty(t, f.store.Keys())
}

func TestDeleteRemovesObject(t *testing.T) {
	f := newFixture(t)
	code, _ := f.upload(t, "Certificate wall", "Certificates")
	require.Equal(t, fiber.StatusCreated, code)
	id := f.images.Rows()[0].ID

	code, _ = do(t, f.app, httptest.NewRequest("DELETE", "/api/admin/gallery/"+id.String(), nil))
	assert.Equal(t, fiber.StatusOK, code)
	assert.Empty(t, f.store.Keys())
}
