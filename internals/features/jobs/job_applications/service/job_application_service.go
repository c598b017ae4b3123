package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"suryaghar_backend/internals/constants"
	"suryaghar_backend/internals/datastore"
	"suryaghar_backend/internals/events"
	"suryaghar_backend/internals/features/jobs/job_applications/dto"
	"suryaghar_backend/internals/features/jobs/job_applications/model"
	jobModel "suryaghar_backend/internals/features/jobs/jobs/model"
	"suryaghar_backend/internals/helpers/storage"
)

type JobApplicationService struct {
	Applications datastore.Table[model.JobApplicationModel]
	Jobs         datastore.Table[jobModel.JobModel]
	Uploader     *storage.Uploader
	Bus          *events.Bus
}

func NewJobApplicationService(apps datastore.Table[model.JobApplicationModel], jobs datastore.Table[jobModel.JobModel], uploader *storage.Uploader, bus *events.Bus) *JobApplicationService {
	return &JobApplicationService{Applications: apps, Jobs: jobs, Uploader: uploader, Bus: bus}
}

// CheckResume validates the optional resume; no file is fine.
func CheckResume(fh *multipart.FileHeader) map[string][]string {
	if fh == nil {
		return nil
	}
	if err := storage.PDFResumeRule.Check(dto.FieldResume, fh); err != nil {
		if fe, ok := storage.IsFileError(err); ok {
			return map[string][]string{fe.Field: {fe.Msg}}
		}
	}
	return nil
}

// OpenJob returns the job only while it is approved.
func (s *JobApplicationService) OpenJob(ctx context.Context, jobID uuid.UUID) (*jobModel.JobModel, error) {
	return s.Jobs.First(ctx, datastore.Where(
		datastore.Eq("id", jobID),
		datastore.Eq("status", constants.JobApproved),
	))
}

// Apply records an application for an approved job. The resume, when given,
// is uploaded first and removed again if the record cannot be written.
func (s *JobApplicationService) Apply(ctx context.Context, jobID uuid.UUID, form dto.ApplyForm, resume *multipart.FileHeader) (*model.JobApplicationModel, error) {
	job, err := s.OpenJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	row := form.ToModel(job.ID)
	batch := s.Uploader.Batch()
	if resume != nil {
		obj, err := batch.Upload(ctx, dto.FieldResume, resume, constants.BucketApplicantDocuments, constants.FolderResumes, storage.PDFResumeRule)
		if err != nil {
			batch.Rollback()
			return nil, err
		}
		row.ResumeURL = obj.URL
		row.ResumeFileName = resume.Filename
	}

	if err := s.Applications.Insert(ctx, &row); err != nil {
		batch.Rollback()
		return nil, fmt.Errorf("insert job application: %w", err)
	}

	log.Printf("[INFO] 📨 job application %s for %q", row.ID, job.Title)
	s.Bus.Publish(events.TopicSubmission, events.Submission{
		Type:       "job_application",
		EntityType: "job_applications",
		EntityID:   row.ID,
		Title:      "New application for " + job.Title,
		Message:    fmt.Sprintf("%s from %s applied for %q", row.FullName, row.City, job.Title),
		Tags:       []string{job.Category},
		At:         row.CreatedAt,
	})
	return &row, nil
}

func filterQuery(f dto.Filter) datastore.Query {
	q := datastore.Query{}
	if f.JobID != nil {
		q = q.And(datastore.Eq("job_id", *f.JobID))
	}
	if f.Status != "" {
		q = q.And(datastore.Eq("status", f.Status))
	}
	if f.Q != "" {
		q = q.And(datastore.Contains(f.Q, "full_name", "email", "mobile", "city"))
	}
	return q
}

func sortOrder(by string) []datastore.Order {
	switch by {
	case dto.SortRating:
		return []datastore.Order{datastore.Desc("rating"), datastore.Desc("created_at")}
	case dto.SortStatus:
		return []datastore.Order{datastore.Asc("status"), datastore.Desc("created_at")}
	default:
		return []datastore.Order{datastore.Desc("created_at")}
	}
}

func (s *JobApplicationService) List(ctx context.Context, f dto.Filter, limit, offset int) ([]model.JobApplicationModel, int64, error) {
	q := filterQuery(f)
	total, err := s.Applications.Count(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	rows, err := s.Applications.Find(ctx, q.OrderBy(sortOrder(f.Sort)...).Page(limit, offset))
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *JobApplicationService) Stats(ctx context.Context, jobID *uuid.UUID) (dto.Stats, error) {
	by, err := s.Applications.GroupCount(ctx, filterQuery(dto.Filter{JobID: jobID}), "status")
	if err != nil {
		return dto.Stats{}, err
	}
	st := dto.Stats{
		Applied:     by[constants.JobApplicationApplied],
		Shortlisted: by[constants.JobApplicationShortlisted],
		Rejected:    by[constants.JobApplicationRejected],
		Accepted:    by[constants.JobApplicationAccepted],
		OnHold:      by[constants.JobApplicationOnHold],
	}
	for _, n := range by {
		st.Total += n
	}
	return st, nil
}

// JobTitles maps job ids to titles for display next to applications.
func (s *JobApplicationService) JobTitles(ctx context.Context, rows []model.JobApplicationModel) map[uuid.UUID]string {
	out := map[uuid.UUID]string{}
	if len(rows) == 0 {
		return out
	}
	ids := make([]uuid.UUID, 0, len(rows))
	seen := map[uuid.UUID]bool{}
	for _, r := range rows {
		if !seen[r.JobID] {
			seen[r.JobID] = true
			ids = append(ids, r.JobID)
		}
	}
	jobs, err := s.Jobs.Find(ctx, datastore.Where(datastore.In("id", ids)))
	if err != nil {
		log.Printf("[WARN] job titles: %v", err)
		return out
	}
	for _, j := range jobs {
		out[j.ID] = j.Title
	}
	return out
}

// Mine lists every application sent from email, newest first.
func (s *JobApplicationService) Mine(ctx context.Context, email string) ([]model.JobApplicationModel, error) {
	return s.Applications.Find(ctx, datastore.Where(datastore.Eq("email", email)).OrderBy(datastore.Desc("created_at")))
}

func (s *JobApplicationService) Get(ctx context.Context, id uuid.UUID) (*model.JobApplicationModel, error) {
	return s.Applications.Get(ctx, id)
}

func (s *JobApplicationService) UpdateStatus(ctx context.Context, id uuid.UUID, status string, notes *string) (*model.JobApplicationModel, error) {
	fields := map[string]any{"status": status}
	if notes != nil {
		fields["notes"] = *notes
	}
	return s.Applications.Update(ctx, id, fields)
}

func (s *JobApplicationService) Rate(ctx context.Context, id uuid.UUID, rating int, notes *string) (*model.JobApplicationModel, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5")
	}
	fields := map[string]any{"rating": rating}
	if notes != nil {
		fields["notes"] = *notes
	}
	return s.Applications.Update(ctx, id, fields)
}

func (s *JobApplicationService) BulkStatus(ctx context.Context, ids []uuid.UUID, status string) (int64, error) {
	return s.Applications.UpdateWhere(ctx, datastore.Where(datastore.In("id", ids)), map[string]any{"status": status})
}

// Delete removes the record, then its resume. File cleanup is best effort.
func (s *JobApplicationService) Delete(ctx context.Context, id uuid.UUID) (*model.JobApplicationModel, error) {
	row, err := s.Applications.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.Applications.Delete(ctx, id); err != nil {
		return nil, err
	}
	if row.ResumeURL != "" {
		if err := s.Uploader.DeleteURL(ctx, constants.BucketApplicantDocuments, row.ResumeURL); err != nil {
			log.Printf("[WARN] delete job application resume %s: %v", row.ResumeURL, err)
		}
	}
	return row, nil
}

var csvHeaders = []string{"Name", "Email", "Mobile", "WhatsApp", "City", "Job", "Status", "Rating", "Notes", "Resume", "Applied On"}

var istZone = func() *time.Location {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		return time.FixedZone("IST", 5*3600+1800)
	}
	return loc
}()

func ExportFileName(now time.Time) string {
	return "job_applications_" + now.In(istZone).Format("2006-01-02") + ".csv"
}

// csvCell keeps spreadsheet apps from reading free text as a formula.
func csvCell(v string) string {
	if v != "" && strings.ContainsRune("=+-@\t\r", rune(v[0])) {
		return "'" + v
	}
	return v
}

// Export renders the applications matching f as CSV.
func (s *JobApplicationService) Export(ctx context.Context, f dto.Filter) ([]byte, int, error) {
	rows, err := s.Applications.Find(ctx, filterQuery(f).OrderBy(datastore.Desc("created_at")))
	if err != nil {
		return nil, 0, err
	}
	titles := s.JobTitles(ctx, rows)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeaders); err != nil {
		return nil, 0, err
	}
	for _, a := range rows {
		rating, notes := "", ""
		if a.Rating != nil {
			rating = strconv.Itoa(*a.Rating)
		}
		if a.Notes != nil {
			notes = *a.Notes
		}
		rec := []string{
			csvCell(a.FullName), csvCell(a.Email), a.Mobile, a.WhatsApp, csvCell(a.City), csvCell(titles[a.JobID]),
			a.Status, rating, csvCell(notes), csvCell(a.ResumeURL), a.CreatedAt.In(istZone).Format("02/01/2006"),
		}
		if err := w.Write(rec); err != nil {
			return nil, 0, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), len(rows), nil
}
