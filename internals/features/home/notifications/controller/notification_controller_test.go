package controller

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suryaghar_backend/internals/datastore"
	"suryaghar_backend/internals/events"
	"suryaghar_backend/internals/features/home/notifications/model"
	"suryaghar_backend/internals/features/home/notifications/service"
)

type envelope struct {
	Message  string          `json:"message"`
	Data     json.RawMessage `json:"data"`
	Includes struct {
		Unread int64 `json:"unread"`
	} `json:"includes"`
}

type notification struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Type   string   `json:"type"`
	Tags   []string `json:"tags"`
	IsRead bool     `json:"is_read"`
}

func do(t *testing.T, app *fiber.App, method, path string) (int, envelope) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(method, path, nil), -1)
	require.NoError(t, err)
	var env envelope
	body, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(body, &env)
	return resp.StatusCode, env
}

func setup(t *testing.T) (*fiber.App, *events.Bus, *datastore.MemoryTable[model.NotificationModel]) {
	t.Helper()
	table := datastore.NewMemoryTable[model.NotificationModel]()
	svc := service.NewNotificationService(table)
	bus := events.New()
	t.Cleanup(bus.Close)
	require.NoError(t, svc.Subscribe(bus))

	ctrl := NewNotificationController(svc)
	app := fiber.New()
	g := app.Group("/api/admin/notifications")
	g.Get("/", ctrl.List)
	g.Get("/unread-count", ctrl.UnreadCount)
	g.Patch("/read-all", ctrl.MarkAllRead)
	g.Patch("/:id/read", ctrl.MarkRead)
	g.Delete("/:id", ctrl.Delete)
	return app, bus, table
}

func publish(bus *events.Bus, typ, title string, at time.Time) {
	bus.Publish(events.TopicSubmission, events.Submission{
		Type:       typ,
		EntityType: typ + "s",
		EntityID:   uuid.New(),
		Title:      title,
		Tags:       []string{"Kerala"},
		At:         at,
	})
}

func list(t *testing.T, app *fiber.App, path string) ([]notification, envelope) {
	t.Helper()
	code, env := do(t, app, "GET", path)
	require.Equal(t, fiber.StatusOK, code)
	var rows []notification
	require.NoError(t, json.Unmarshal(env.Data, &rows))
	return rows, env
}

func TestSubmissionsBecomeNotifications(t *testing.T) {
	app, bus, table := setup(t)
	base := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	publish(bus, "application", "New application: Ravi", base)
	publish(bus, "job", "New job posted: Electrician", base.Add(time.Hour))
	bus.Wait()
	require.Len(t, table.Rows(), 2)

	rows, env := list(t, app, "/api/admin/notifications")
	require.Len(t, rows, 2)
	assert.Equal(t, "New job posted: Electrician", rows[0].Title)
	assert.Equal(t, []string{"Kerala"}, rows[0].Tags)
	assert.Equal(t, int64(2), env.Includes.Unread)

	rows, _ = list(t, app, "/api/admin/notifications?type=application")
	require.Len(t, rows, 1)
	assert.Equal(t, "application", rows[0].Type)
}

func TestMarkReadAndUnreadFilter(t *testing.T) {
	app, bus, _ := setup(t)
	now := time.Now()
	publish(bus, "application", "A", now)
	publish(bus, "application", "B", now.Add(time.Second))
	bus.Wait()

	rows, _ := list(t, app, "/api/admin/notifications")
	code, env := do(t, app, "PATCH", "/api/admin/notifications/"+rows[0].ID+"/read")
	require.Equal(t, fiber.StatusOK, code)
	var n notification
	require.NoError(t, json.Unmarshal(env.Data, &n))
	assert.True(t, n.IsRead)

	unread, _ := list(t, app, "/api/admin/notifications?unread=true")
	require.Len(t, unread, 1)
	assert.Equal(t, "A", unread[0].Title)

	code, env = do(t, app, "PATCH", "/api/admin/notifications/read-all")
	require.Equal(t, fiber.StatusOK, code)
	assert.JSONEq(t, `{"updated":1}`, string(env.Data))

	_, env = do(t, app, "GET", "/api/admin/notifications/unread-count")
	assert.JSONEq(t, `{"unread":0}`, string(env.Data))
}

func TestDeleteAndMissing(t *testing.T) {
	app, bus, table := setup(t)
	publish(bus, "job", "X", time.Now())
	bus.Wait()
	id := table.Rows()[0].ID.String()

	code, _ := do(t, app, "DELETE", "/api/admin/notifications/"+id)
	assert.Equal(t, fiber.StatusOK, code)
	code, _ = do(t, app, "PATCH", "/api/admin/notifications/"+id+"/read")
	assert.Equal(t, fiber.StatusNotFound, code)
	code, _ = do(t, app, "PATCH", "/api/admin/notifications/not-a-uuid/read")
	assert.Equal(t, fiber.StatusBadRequest, code)
}
