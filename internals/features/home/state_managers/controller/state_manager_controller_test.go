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
	"suryaghar_backend/internals/features/home/state_managers/model"
	"suryaghar_backend/internals/features/home/state_managers/service"
	"suryaghar_backend/internals/helpers/storage"
	"suryaghar_backend/internals/helpers/storage/storagetest"
)

type fixture struct {
	app      *fiber.App
	managers *datastore.MemoryTable[model.StateManagerModel]
	store    *storage.Memory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	t.Setenv("IMAGE_WEBP_ENABLED", "false")
	managers := datastore.NewMemoryTable[model.StateManagerModel]("state")
	store := storage.NewMemory()
	ctrl := NewStateManagerController(service.NewStateManagerService(managers, storage.NewUploader(store)), nil)

	app := fiber.New()
	app.Get("/api/public/state-managers", ctrl.List)
	adm := app.Group("/api/admin/state-managers")
	adm.Get("/", ctrl.AdminList)
	adm.Post("/", ctrl.Create)
	adm.Put("/:id", ctrl.Update)
	adm.Patch("/:id/toggle", ctrl.Toggle)
	adm.Delete("/:id", ctrl.Delete)
	return &fixture{app: app, managers: managers, store: store}
}

type envelope struct {
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data"`
	Errors  map[string][]string `json:"errors"`
}

type manager struct {
	ID           string `json:"id"`
	State        string `json:"state"`
	Name         string `json:"name"`
	PhotoURL     string `json:"photo_url"`
	IsActive     bool   `json:"is_active"`
	WhatsAppLink string `json:"whatsapp_link"`
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

func photo() storagetest.File {
	return storagetest.File{Field: "photo", Name: "face.png", ContentType: "image/png", Data: storagetest.PNG()}
}

func fields(state, name string) map[string]string {
	return map[string]string{"state": state, "name": name, "mobile": "9876543210", "email": "pm@example.com"}
}

func (f *fixture) create(t *testing.T, state, name string) (int, envelope) {
	t.Helper()
	return do(t, f.app, storagetest.Multipart("POST", "/api/admin/state-managers", fields(state, name), photo()))
}

func decode(t *testing.T, raw json.RawMessage) manager {
	t.Helper()
	var m manager
	require.NoError(t, json.Unmarshal(raw, &m))
	return m
}

func TestCreateStoresPhotoAndLink(t *testing.T) {
	f := newFixture(t)
	code, env := f.create(t, "Kerala", "Anil Kumar")
	require.Equal(t, fiber.StatusCreated, code, env.Message)

	m := decode(t, env.Data)
	assert.Equal(t, "Kerala", m.State)
	assert.True(t, m.IsActive)
	assert.True(t, strings.HasPrefix(m.PhotoURL, "memory://manager-photos/"), m.PhotoURL)
	assert.Contains(t, m.WhatsAppLink, "wa.me/919876543210")
	assert.Len(t, f.store.Keys(), 1)
}

func TestCreateRequiresPhoto(t *testing.T) {
	f := newFixture(t)
	code, env := do(t, f.app, storagetest.Multipart("POST", "/api/admin/state-managers", fields("Kerala", "Anil Kumar")))
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)
	assert.Equal(t, []string{"Please upload manager photo"}, env.Errors["photo"])
	assert.Empty(t, f.managers.Rows())
}

func TestCreateValidatesBeforeUpload(t *testing.T) {
	f := newFixture(t)
	form := fields("Atlantis", "Al")
	form["mobile"] = "12345"
	code, env := do(t, f.app, storagetest.Multipart("POST", "/api/admin/state-managers", form, photo()))
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)
	assert.Contains(t, env.Errors, "state")
	assert.Contains(t, env.Errors, "mobile")
	assert.Empty(t, f.store.Keys())
	assert.Empty(t, f.managers.Rows())
}

func TestDuplicateStateConflicts(t *testing.T) {
	f := newFixture(t)
	code, _ := f.create(t, "Kerala", "Anil Kumar")
	require.Equal(t, fiber.StatusCreated, code)

	code, env := f.create(t, "Kerala", "Second Person")
	assert.Equal(t, fiber.StatusConflict, code)
	assert.Equal(t, "Manager for Kerala already exists", env.Message)
	assert.Len(t, f.managers.Rows(), 1)
	assert.Len(t, f.store.Keys(), 1)
}

func TestInsertRaceRollsBackPhoto(t *testing.T) {
	f := newFixture(t)
	f.managers.FailOn["Insert"] = datastore.ErrDuplicate

	code, env := f.create(t, "Telangana", "Mehul Shah")
	assert.Equal(t, fiber.StatusConflict, code)
	assert.Equal(t, "Manager for Telangana already exists", env.Message)
	assert.Empty(t, f.store.Keys())
}

func TestToggleHidesFromPublicList(t *testing.T) {
	f := newFixture(t)
	_, env := f.create(t, "Kerala", "Anil Kumar")
	m := decode(t, env.Data)
	_, _ = f.create(t, "Karnataka", "Harpreet Singh")

	code, env := do(t, f.app, httptest.NewRequest("PATCH", "/api/admin/state-managers/"+m.ID+"/toggle", nil))
	require.Equal(t, fiber.StatusOK, code, env.Message)
	assert.False(t, decode(t, env.Data).IsActive)

	_, env = do(t, f.app, httptest.NewRequest("GET", "/api/public/state-managers", nil))
	var public []manager
	require.NoError(t, json.Unmarshal(env.Data, &public))
	require.Len(t, public, 1)
	assert.Equal(t, "Karnataka", public[0].State)

	_, env = do(t, f.app, httptest.NewRequest("GET", "/api/admin/state-managers", nil))
	var all []manager
	require.NoError(t, json.Unmarshal(env.Data, &all))
	require.Len(t, all, 2)
	assert.Equal(t, "Karnataka", all[0].State)
	assert.Equal(t, "Kerala", all[1].State)
	assert.False(t, all[1].IsActive)
}

func TestUpdateReplacesPhoto(t *testing.T) {
	f := newFixture(t)
	_, env := f.create(t, "Kerala", "Anil Kumar")
	before := decode(t, env.Data)

	code, env := do(t, f.app, storagetest.Multipart("PUT", "/api/admin/state-managers/"+before.ID, fields("Kerala", "Anil K. Menon"), photo()))
	require.Equal(t, fiber.StatusOK, code, env.Message)
	after := decode(t, env.Data)
	assert.Equal(t, "Anil K. Menon", after.Name)
	assert.NotEqual(t, before.PhotoURL, after.PhotoURL)

	keys := f.store.Keys()
	require.Len(t, keys, 1)
	assert.Equal(t, strings.TrimPrefix(after.PhotoURL, "memory://"), keys[0])
}

func TestUpdateKeepsPhotoWhenNoneSent(t *testing.T) {
	f := newFixture(t)
	_, env := f.create(t, "Kerala", "Anil Kumar")
	before := decode(t, env.Data)

	code, env := do(t, f.app, storagetest.Multipart("PUT", "/api/admin/state-managers/"+before.ID, fields("Kerala", "Anil Kumar")))
	require.Equal(t, fiber.StatusOK, code, env.Message)
	assert.Equal(t, before.PhotoURL, decode(t, env.Data).PhotoURL)
}

func TestUpdateIntoTakenState(t *testing.T) {
	f := newFixture(t)
	_, _ = f.create(t, "Kerala", "Anil Kumar")
	_, env := f.create(t, "Karnataka", "Harpreet Singh")
	p := decode(t, env.Data)

	code, env := do(t, f.app, storagetest.Multipart("PUT", "/api/admin/state-managers/"+p.ID, fields("Kerala", "Harpreet Singh")))
	assert.Equal(t, fiber.StatusConflict, code)
	assert.Equal(t, "Manager for Kerala already exists", env.Message)
}

func TestDeleteRemovesPhoto(t *testing.T) {
	f := newFixture(t)
	_, env := f.create(t, "Kerala", "Anil Kumar")
	m := decode(t, env.Data)

	code, _ := do(t, f.app, httptest.NewRequest("DELETE", "/api/admin/state-managers/"+m.ID, nil))
	assert.Equal(t, fiber.StatusOK, code)
	assert.Empty(t, f.store.Keys())
	assert.Empty(t, f.managers.Rows())

	code, _ = do(t, f.app, httptest.NewRequest("DELETE", "/api/admin/state-managers/"+m.ID, nil))
	assert.Equal(t, fiber.StatusNotFound, code)
}
