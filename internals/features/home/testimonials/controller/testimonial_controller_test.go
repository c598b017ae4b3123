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
	"suryaghar_backend/internals/features/home/testimonials/model"
	"suryaghar_backend/internals/features/home/testimonials/service"
)

type fixture struct {
	app   *fiber.App
	table *datastore.MemoryTable[model.TestimonialModel]
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	table := datastore.NewMemoryTable[model.TestimonialModel]()
	ctrl := NewTestimonialController(service.NewTestimonialService(table), nil)

	app := fiber.New()
	app.Get("/api/public/testimonials", ctrl.List)
	adm := app.Group("/api/admin/testimonials")
	adm.Get("/", ctrl.AdminList)
	adm.Post("/", ctrl.Create)
	adm.Put("/:id", ctrl.Update)
	adm.Patch("/:id/toggle", ctrl.Toggle)
	adm.Patch("/:id/move", ctrl.Move)
	adm.Delete("/:id", ctrl.Delete)
	return &fixture{app: app, table: table}
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

func jsonReq(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func body(name string, rating int) string {
	return fmt.Sprintf(`{"name":%q,"state":"Kerala","position":"Project Facilitator","review":"The subsidy process was explained very clearly.","rating":%d}`, name, rating)
}

type item struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	IsActive     bool   `json:"is_active"`
	DisplayOrder int    `json:"display_order"`
}

func (f *fixture) list(t *testing.T, path string) []item {
	t.Helper()
	_, env := do(t, f.app, httptest.NewRequest("GET", path, nil))
	var out []item
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

func names(items []item) []string {
	out := make([]string, 0, len(items))
	for _, i := range items {
		out = append(out, i.Name)
	}
	return out
}

func (f *fixture) create(t *testing.T, names ...string) []item {
	t.Helper()
	out := make([]item, 0, len(names))
	for _, n := range names {
		code, env := do(t, f.app, jsonReq("POST", "/api/admin/testimonials", body(n, 5)))
		require.Equal(t, fiber.StatusCreated, code, env.Message)
		var it item
		require.NoError(t, json.Unmarshal(env.Data, &it))
		out = append(out, it)
	}
	return out
}

func TestCreateAppendsInOrder(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, "Anil", "Bina", "Chitra")
	assert.Equal(t, []int{1, 2, 3}, []int{created[0].DisplayOrder, created[1].DisplayOrder, created[2].DisplayOrder})
	assert.Equal(t, []string{"Anil", "Bina", "Chitra"}, names(f.list(t, "/api/public/testimonials")))
}

func TestCreate_Validation(t *testing.T) {
	f := newFixture(t)
	code, env := do(t, f.app, jsonReq("POST", "/api/admin/testimonials", body("Anil", 6)))
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)
	assert.Equal(t, []string{"Rating must be between 1 and 5"}, env.Errors["rating"])

	code, env = do(t, f.app, jsonReq("POST", "/api/admin/testimonials", `{"name":"Anil","rating":4}`))
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)
	assert.Equal(t, []string{"Please fill all required fields"}, env.Errors["review"])
	assert.Empty(t, f.table.Rows())
}

func TestToggleWithValueIsIdempotent(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, "Anil", "Bina")
	path := "/api/admin/testimonials/" + created[0].ID + "/toggle"

	for i := 0; i < 2; i++ {
		code, _ := do(t, f.app, jsonReq("PATCH", path, `{"is_active":false}`))
		require.Equal(t, fiber.StatusOK, code)
	}
	assert.Equal(t, []string{"Bina"}, names(f.list(t, "/api/public/testimonials")))
	assert.Len(t, f.list(t, "/api/admin/testimonials"), 2)

	code, env := do(t, f.app, httptest.NewRequest("PATCH", path, nil))
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "Testimonial activated", env.Message)
	assert.Len(t, f.list(t, "/api/public/testimonials"), 2)
}

func TestToggleTwiceRestoresState(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, "Anil", "Bina")
	path := "/api/admin/testimonials/" + created[0].ID + "/toggle"

	code, env := do(t, f.app, httptest.NewRequest("PATCH", path, nil))
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "Testimonial deactivated", env.Message)
	assert.Equal(t, []string{"Bina"}, names(f.list(t, "/api/public/testimonials")))

	code, env = do(t, f.app, httptest.NewRequest("PATCH", path, nil))
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "Testimonial activated", env.Message)
	assert.Equal(t, []string{"Anil", "Bina"}, names(f.list(t, "/api/public/testimonials")))

	var it item
	require.NoError(t, json.Unmarshal(env.Data, &it))
	assert.Equal(t, created[0].DisplayOrder, it.DisplayOrder)
}

func TestMoveUpAndDown(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, "Anil", "Bina", "Chitra")

	code, _ := do(t, f.app, jsonReq("PATCH", "/api/admin/testimonials/"+created[2].ID+"/move", `{"direction":"up"}`))
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, []string{"Anil", "Chitra", "Bina"}, names(f.list(t, "/api/admin/testimonials")))

	code, env := do(t, f.app, jsonReq("PATCH", "/api/admin/testimonials/"+created[0].ID+"/move", `{"direction":"up"}`))
	require.Equal(t, fiber.StatusOK, code)
	assert.JSONEq(t, fmt.Sprintf(`{"id":%q,"moved":false}`, created[0].ID), string(env.Data))

	code, _ = do(t, f.app, jsonReq("PATCH", "/api/admin/testimonials/"+created[0].ID+"/move", `{"direction":"sideways"}`))
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)

	orders := map[int]bool{}
	for _, r := range f.table.Rows() {
		orders[r.DisplayOrder] = true
	}
	assert.Len(t, orders, 3)
}

func TestUpdateAndDelete(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, "Anil")
	code, env := do(t, f.app, jsonReq("PUT", "/api/admin/testimonials/"+created[0].ID, body("Anil Menon", 4)))
	require.Equal(t, fiber.StatusOK, code, env.Message)
	assert.Equal(t, "Anil Menon", f.table.Rows()[0].Name)
	assert.Equal(t, 4, f.table.Rows()[0].Rating)

	code, _ = do(t, f.app, httptest.NewRequest("DELETE", "/api/admin/testimonials/"+created[0].ID, nil))
	assert.Equal(t, fiber.StatusOK, code)
	code, _ = do(t, f.app, httptest.NewRequest("DELETE", "/api/admin/testimonials/"+created[0].ID, nil))
	assert.Equal(t, fiber.StatusNotFound, code)
}
