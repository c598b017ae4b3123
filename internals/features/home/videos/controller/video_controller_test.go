package controller

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suryaghar_backend/internals/datastore"
	"suryaghar_backend/internals/features/home/videos/dto"
	"suryaghar_backend/internals/features/home/videos/model"
	"suryaghar_backend/internals/features/home/videos/service"
)

type fixture struct {
	app    *fiber.App
	videos *datastore.MemoryTable[model.VideoModel]
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	videos := datastore.NewMemoryTable[model.VideoModel]()
	ctrl := NewVideoController(service.NewVideoService(videos), nil)

	app := fiber.New()
	app.Get("/api/public/videos", ctrl.List)
	adm := app.Group("/api/admin/videos")
	adm.Get("/", ctrl.AdminList)
	adm.Post("/", ctrl.Create)
	adm.Put("/:id", ctrl.Update)
	adm.Patch("/:id/move", ctrl.Move)
	adm.Delete("/:id", ctrl.Delete)
	return &fixture{app: app, videos: videos}
}

type envelope struct {
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data"`
	Errors  map[string][]string `json:"errors"`
}

type video struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	VideoID      string `json:"video_id"`
	EmbedURL     string `json:"embed_url"`
	DisplayOrder int    `json:"display_order"`
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

func jsonReq(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func (f *fixture) create(t *testing.T, title, link string) video {
	t.Helper()
	code, env := do(t, f.app, jsonReq("POST", "/api/admin/videos", fmt.Sprintf(`{"title":%q,"youtube_url":%q}`, title, link)))
	require.Equal(t, fiber.StatusCreated, code, env.Message)
	var v video
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

func (f *fixture) titles(t *testing.T, path string) []string {
	t.Helper()
	_, env := do(t, f.app, httptest.NewRequest("GET", path, nil))
	var rows []video
	require.NoError(t, json.Unmarshal(env.Data, &rows))
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Title)
	}
	return out
}

func TestCreateParsesLinkAndAppends(t *testing.T) {
	f := newFixture(t)
	a := f.create(t, "Scheme overview", "https://youtu.be/dQw4w9WgXcQ")
	b := f.create(t, "Installation walkthrough", "https://www.youtube.com/watch?v=9bZkp7q19f0&t=10s")

	assert.Equal(t, "dQw4w9WgXcQ", a.VideoID)
	assert.Equal(t, dto.EmbedURL("dQw4w9WgXcQ"), a.EmbedURL)
	assert.Equal(t, "9bZkp7q19f0", b.VideoID)
	assert.Equal(t, 1, a.DisplayOrder)
	assert.Equal(t, 2, b.DisplayOrder)
	assert.Equal(t, []string{"Scheme overview", "Installation walkthrough"}, f.titles(t, "/api/public/videos"))
}

func TestCreateRejectsUnknownLink(t *testing.T) {
	f := newFixture(t)
	code, env := do(t, f.app, jsonReq("POST", "/api/admin/videos", `{"title":"Promo","youtube_url":"https://vimeo.com/1234"}`))
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)
	assert.Equal(t, []string{dto.InvalidURLMessage}, env.Errors["youtube_url"])

	code, env = do(t, f.app, jsonReq("POST", "/api/admin/videos", `{"youtube_url":"dQw4w9WgXcQ"}`))
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)
	assert.Equal(t, []string{"Please fill all required fields"}, env.Errors["title"])
	assert.Empty(t, f.videos.Rows())
}

func TestInactiveVideosStayInAdminList(t *testing.T) {
	f := newFixture(t)
	f.create(t, "Visible", "dQw4w9WgXcQ")
	code, _ := do(t, f.app, jsonReq("POST", "/api/admin/videos", `{"title":"Draft","youtube_url":"9bZkp7q19f0","is_active":false}`))
	require.Equal(t, fiber.StatusCreated, code)

	assert.Equal(t, []string{"Visible"}, f.titles(t, "/api/public/videos"))
	assert.Equal(t, []string{"Visible", "Draft"}, f.titles(t, "/api/admin/videos"))
}

func TestMoveAndUpdate(t *testing.T) {
	f := newFixture(t)
	a := f.create(t, "First", "dQw4w9WgXcQ")
	f.create(t, "Second", "9bZkp7q19f0")

	code, _ := do(t, f.app, jsonReq("PATCH", "/api/admin/videos/"+a.ID+"/move", `{"direction":"down"}`))
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, []string{"Second", "First"}, f.titles(t, "/api/admin/videos"))

	code, env := do(t, f.app, jsonReq("PATCH", "/api/admin/videos/"+a.ID+"/move", `{"direction":"down"}`))
	require.Equal(t, fiber.StatusOK, code)
	assert.JSONEq(t, fmt.Sprintf(`{"id":%q,"moved":false}`, a.ID), string(env.Data))

	code, env = do(t, f.app, jsonReq("PUT", "/api/admin/videos/"+a.ID, `{"title":"First (new cut)","youtube_url":"https://www.youtube.com/shorts/kJQP7kiw5Fk"}`))
	require.Equal(t, fiber.StatusOK, code, env.Message)
	var v video
	require.NoError(t, json.Unmarshal(env.Data, &v))
	assert.Equal(t, "kJQP7kiw5Fk", v.VideoID)
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	a := f.create(t, "First", "dQw4w9WgXcQ")
	code, _ := do(t, f.app, httptest.NewRequest("DELETE", "/api/admin/videos/"+a.ID, nil))
	assert.Equal(t, fiber.StatusOK, code)
	assert.Empty(t, f.videos.Rows())
	code, _ = do(t, f.app, httptest.NewRequest("DELETE", "/api/admin/videos/"+a.ID, nil))
	assert.Equal(t, fiber.StatusNotFound, code)
}
