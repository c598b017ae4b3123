package controller

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suryaghar_backend/internals/constants"
	"suryaghar_backend/internals/datastore"
	"suryaghar_backend/internals/features/jobs/job_applications/model"
	"suryaghar_backend/internals/features/jobs/job_applications/service"
	jobModel "suryaghar_backend/internals/features/jobs/jobs/model"
	"suryaghar_backend/internals/helpers/storage"
	"suryaghar_backend/internals/helpers/storage/storagetest"
)

type fixture struct {
	app   *fiber.App
	apps  *datastore.MemoryTable[model.JobApplicationModel]
	jobs  *datastore.MemoryTable[jobModel.JobModel]
	store *storage.Memory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	apps := datastore.NewMemoryTable[model.JobApplicationModel]()
	jobs := datastore.NewMemoryTable[jobModel.JobModel]()
	store := storage.NewMemory()
	ctrl := NewJobApplicationController(service.NewJobApplicationService(apps, jobs, storage.NewUploader(store), nil))

	app := fiber.New()
	app.Post("/api/public/jobs/:id/applications", ctrl.Apply)
	app.Get("/api/public/my-applications", ctrl.Mine)
	adm := app.Group("/api/admin/job-applications")
	adm.Get("/", ctrl.List)
	adm.Get("/export", ctrl.Export)
	adm.Patch("/bulk/status", ctrl.BulkStatus)
	adm.Get("/:id", ctrl.Get)
	adm.Patch("/:id/status", ctrl.UpdateStatus)
	adm.Patch("/:id/rating", ctrl.Rate)
	adm.Delete("/:id", ctrl.Delete)
	return &fixture{app: app, apps: apps, jobs: jobs, store: store}
}

func (f *fixture) job(t *testing.T, status string) jobModel.JobModel {
	t.Helper()
	j := jobModel.JobModel{
		Title:            "Solar Installer",
		Category:         "Private Jobs",
		JobType:          "Full Time",
		Location:         "Jaipur",
		Description:      "Install rooftop panels.",
		OrganizationName: "Sun Power Pvt Ltd",
		ContactPerson:    "Ravi",
		Mobile:           "9876543210",
		WhatsApp:         "9876543210",
		Status:           status,
	}
	require.NoError(t, f.jobs.Insert(context.Background(), &j))
	return j
}

func applyFields() map[string]string {
	return map[string]string{
		"full_name": "Priya Sharma",
		"email":     "Priya@Example.com",
		"mobile":    "9123456780",
		"whatsapp":  "9123456780",
		"city":      "Ajmer",
		"message":   "Two years of rooftop experience.",
	}
}

type envelope struct {
	Success bool                `json:"success"`
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

func (f *fixture) apply(t *testing.T, jobID uuid.UUID, fields map[string]string, files ...storagetest.File) (int, envelope) {
	t.Helper()
	return do(t, f.app, storagetest.Multipart("POST", "/api/public/jobs/"+jobID.String()+"/applications", fields, files...))
}

func TestApply_WithPDFResume(t *testing.T) {
	f := newFixture(t)
	job := f.job(t, constants.JobApproved)

	code, env := f.apply(t, job.ID, applyFields(), storagetest.File{
		Field: "resume", Name: "cv.pdf", ContentType: "application/pdf", Data: storagetest.PDF(),
	})
	require.Equal(t, fiber.StatusCreated, code, env.Message)

	rows := f.apps.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, constants.JobApplicationApplied, rows[0].Status)
	assert.Equal(t, "priya@example.com", rows[0].Email)
	assert.Equal(t, "cv.pdf", rows[0].ResumeFileName)
	assert.True(t, strings.HasPrefix(rows[0].ResumeURL, "memory://applicant-documents/resumes/"))
	assert.Len(t, f.store.Keys(), 1)
}

func TestApply_ResumeIsOptional(t *testing.T) {
	f := newFixture(t)
	job := f.job(t, constants.JobApproved)
	code, _ := f.apply(t, job.ID, applyFields())
	require.Equal(t, fiber.StatusCreated, code)
	assert.Empty(t, f.store.Keys())
}

func TestApply_RejectsNonPDFAndBadNameWithoutSideEffects(t *testing.T) {
	f := newFixture(t)
	job := f.job(t, constants.JobApproved)
	fields := applyFields()
	fields["full_name"] = "Priya 2"
	delete(fields, "whatsapp")

	code, env := f.apply(t, job.ID, fields, storagetest.File{
		Field: "resume", Name: "cv.png", ContentType: "image/png", Data: storagetest.PNG(),
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)
	assert.Equal(t, []string{"Name can only contain letters and spaces"}, env.Errors["full_name"])
	assert.Equal(t, []string{"WhatsApp number is required"}, env.Errors["whatsapp"])
	assert.Contains(t, env.Errors, "resume")
	assert.Empty(t, f.apps.Rows())
	assert.Empty(t, f.store.Keys())
}

func TestApply_FakePDFIsRejected(t *testing.T) {
	f := newFixture(t)
	job := f.job(t, constants.JobApproved)
	code, env := f.apply(t, job.ID, applyFields(), storagetest.File{
		Field: "resume", Name: "cv.pdf", ContentType: "application/pdf", Data: []byte("not a pdf at all"),
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)
	assert.Contains(t, env.Errors, "resume")
	assert.Empty(t, f.apps.Rows())
	assert.Empty(t, f.store.Keys())
}

func TestApply_OnlyApprovedJobs(t *testing.T) {
	f := newFixture(t)
	closed := f.job(t, constants.JobClosed)
	code, _ := f.apply(t, closed.ID, applyFields())
	assert.Equal(t, fiber.StatusNotFound, code)

	code, _ = f.apply(t, uuid.New(), applyFields())
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.Empty(t, f.apps.Rows())
}

func TestApply_InsertFailureRemovesResume(t *testing.T) {
	f := newFixture(t)
	job := f.job(t, constants.JobApproved)
	f.apps.FailOn = map[string]error{"Insert": errors.New("connection reset")}

	code, _ := f.apply(t, job.ID, applyFields(), storagetest.File{
		Field: "resume", Name: "cv.pdf", ContentType: "application/pdf", Data: storagetest.PDF(),
	})
	assert.Equal(t, fiber.StatusInternalServerError, code)
	assert.Empty(t, f.store.Keys())
}

func (f *fixture) seedApps(t *testing.T, jobID uuid.UUID, names ...string) []model.JobApplicationModel {
	t.Helper()
	out := make([]model.JobApplicationModel, 0, len(names))
	for _, n := range names {
		a := model.JobApplicationModel{
			JobID: jobID, FullName: n, Email: strings.ToLower(n) + "@example.com",
			Mobile: "9123456780", WhatsApp: "9123456780", City: "Ajmer",
			Status: constants.JobApplicationApplied,
		}
		require.NoError(t, f.apps.Insert(context.Background(), &a))
		out = append(out, a)
	}
	return out
}

func TestRateAndSortByRating(t *testing.T) {
	f := newFixture(t)
	job := f.job(t, constants.JobApproved)
	apps := f.seedApps(t, job.ID, "Asha", "Bhavna", "Chetan")

	code, _ := do(t, f.app, jsonReq("PATCH", "/api/admin/job-applications/"+apps[1].ID.String()+"/rating", `{"rating":5,"notes":"Strong"}`))
	require.Equal(t, fiber.StatusOK, code)
	code, _ = do(t, f.app, jsonReq("PATCH", "/api/admin/job-applications/"+apps[2].ID.String()+"/rating", `{"rating":3}`))
	require.Equal(t, fiber.StatusOK, code)

	code, env := do(t, f.app, jsonReq("PATCH", "/api/admin/job-applications/"+apps[0].ID.String()+"/rating", `{"rating":6}`))
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)
	assert.Equal(t, []string{"Rating must be between 1 and 5"}, env.Errors["rating"])

	_, env = do(t, f.app, httptest.NewRequest("GET", "/api/admin/job-applications?job_id="+job.ID.String()+"&sort=rating", nil))
	var list []struct {
		FullName string `json:"full_name"`
		JobTitle string `json:"job_title"`
		Rating   *int   `json:"rating"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 3)
	assert.Equal(t, "Bhavna", list[0].FullName)
	assert.Equal(t, "Chetan", list[1].FullName)
	assert.Equal(t, "Asha", list[2].FullName)
	assert.Nil(t, list[2].Rating)
	assert.Equal(t, "Solar Installer", list[0].JobTitle)

	got, err := f.apps.Get(context.Background(), apps[1].ID)
	require.NoError(t, err)
	require.NotNil(t, got.Notes)
	assert.Equal(t, "Strong", *got.Notes)
}

func TestStatusAndBulkStatus(t *testing.T) {
	f := newFixture(t)
	job := f.job(t, constants.JobApproved)
	apps := f.seedApps(t, job.ID, "Asha", "Bhavna", "Chetan")

	code, _ := do(t, f.app, jsonReq("PATCH", "/api/admin/job-applications/"+apps[0].ID.String()+"/status", `{"status":"on_hold"}`))
	require.Equal(t, fiber.StatusOK, code)
	code, _ = do(t, f.app, jsonReq("PATCH", "/api/admin/job-applications/"+apps[0].ID.String()+"/status", `{"status":"hired"}`))
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)

	body := fmt.Sprintf(`{"ids":["%s","%s"],"status":"shortlisted"}`, apps[1].ID, apps[2].ID)
	code, _ = do(t, f.app, jsonReq("PATCH", "/api/admin/job-applications/bulk/status", body))
	require.Equal(t, fiber.StatusOK, code)

	_, env := do(t, f.app, httptest.NewRequest("GET", "/api/admin/job-applications?status=shortlisted", nil))
	var list []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 2)
}

func TestExportCSV(t *testing.T) {
	f := newFixture(t)
	job := f.job(t, constants.JobApproved)
	f.seedApps(t, job.ID, "Asha", "Bhavna")

	resp, err := f.app.Test(httptest.NewRequest("GET", "/api/admin/job-applications/export?job_id="+job.ID.String(), nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "job_applications_")

	recs, err := csv.NewReader(resp.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "Name", recs[0][0])
	assert.Equal(t, "Solar Installer", recs[1][5])
}

func TestExportCSV_EscapesFormulaCells(t *testing.T) {
	f := newFixture(t)
	job := f.job(t, constants.JobApproved)
	notes := "+91 call back"
	a := model.JobApplicationModel{
		JobID: job.ID, FullName: "Asha", Email: "asha@example.com",
		Mobile: "9123456780", WhatsApp: "9123456780", City: `=HYPERLINK("http://x")`,
		Notes: &notes, Status: constants.JobApplicationApplied,
	}
	require.NoError(t, f.apps.Insert(context.Background(), &a))

	resp, err := f.app.Test(httptest.NewRequest("GET", "/api/admin/job-applications/export", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	recs, err := csv.NewReader(resp.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "Asha", recs[1][0])
	assert.Equal(t, `'=HYPERLINK("http://x")`, recs[1][4])
	assert.Equal(t, "'+91 call back", recs[1][8])
}

func TestMineAndDelete(t *testing.T) {
	f := newFixture(t)
	job := f.job(t, constants.JobApproved)
	code, _ := f.apply(t, job.ID, applyFields(), storagetest.File{
		Field: "resume", Name: "cv.pdf", ContentType: "application/pdf", Data: storagetest.PDF(),
	})
	require.Equal(t, fiber.StatusCreated, code)

	_, env := do(t, f.app, httptest.NewRequest("GET", "/api/public/my-applications?email=priya@example.com", nil))
	var mine []struct {
		ID       uuid.UUID `json:"id"`
		JobTitle string    `json:"job_title"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &mine))
	require.Len(t, mine, 1)
	assert.Equal(t, "Solar Installer", mine[0].JobTitle)

	code, _ = do(t, f.app, httptest.NewRequest("DELETE", "/api/admin/job-applications/"+mine[0].ID.String(), nil))
	require.Equal(t, fiber.StatusOK, code)
	assert.Empty(t, f.apps.Rows())
	assert.Empty(t, f.store.Keys())
}
