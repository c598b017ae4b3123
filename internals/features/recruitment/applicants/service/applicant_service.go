package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"suryaghar_backend/internals/constants"
	"suryaghar_backend/internals/datastore"
	"suryaghar_backend/internals/events"
	"suryaghar_backend/internals/features/recruitment/applicants/dto"
	"suryaghar_backend/internals/features/recruitment/applicants/model"
	"suryaghar_backend/internals/helpers/storage"
)

// Attachments are the three files of the recruitment form.
type Attachments struct {
	Resume  *multipart.FileHeader
	Aadhaar *multipart.FileHeader
	Photo   *multipart.FileHeader
}

type ApplicantService struct {
	Applicants datastore.Table[model.ApplicantModel]
	Uploader   *storage.Uploader
	Bus        *events.Bus
}

func NewApplicantService(applicants datastore.Table[model.ApplicantModel], uploader *storage.Uploader, bus *events.Bus) *ApplicantService {
	return &ApplicantService{Applicants: applicants, Uploader: uploader, Bus: bus}
}

// CheckAttachments validates all three files before anything is uploaded.
func CheckAttachments(a Attachments) map[string][]string {
	errs := map[string][]string{}
	for _, item := range []struct {
		field string
		fh    *multipart.FileHeader
		rule  storage.Rule
	}{
		{dto.FieldResume, a.Resume, storage.ResumeRule},
		{dto.FieldAadhaar, a.Aadhaar, storage.AadhaarRule},
		{dto.FieldPhoto, a.Photo, storage.PhotoRule},
	} {
		if err := item.rule.Check(item.field, item.fh); err != nil {
			if fe, ok := storage.IsFileError(err); ok {
				errs[fe.Field] = append(errs[fe.Field], fe.Msg)
			}
		}
	}
	return errs
}

// Create uploads the attachments and writes the record. If any step fails,
// every object uploaded so far is removed before the error is returned.
func (s *ApplicantService) Create(ctx context.Context, form dto.ApplicantForm, files Attachments) (*model.ApplicantModel, error) {
	batch := s.Uploader.Batch()
	bucket := constants.BucketApplicantDocuments

	resume, err := batch.Upload(ctx, dto.FieldResume, files.Resume, bucket, constants.FolderResumes, storage.ResumeRule)
	if err != nil {
		batch.Rollback()
		return nil, err
	}
	aadhaar, err := batch.Upload(ctx, dto.FieldAadhaar, files.Aadhaar, bucket, constants.FolderAadhaar, storage.AadhaarRule)
	if err != nil {
		batch.Rollback()
		return nil, err
	}
	photo, err := batch.Upload(ctx, dto.FieldPhoto, files.Photo, bucket, constants.FolderPhotos, storage.PhotoRule)
	if err != nil {
		batch.Rollback()
		return nil, err
	}

	row := form.ToModel()
	row.ResumeURL, row.AadhaarURL, row.PhotoURL = resume.URL, aadhaar.URL, photo.URL
	if err := s.Applicants.Insert(ctx, &row); err != nil {
		batch.Rollback()
		return nil, fmt.Errorf("insert applicant: %w", err)
	}

	log.Printf("[INFO] 📝 new application %s (%s, %s)", row.ID, row.Position, row.State)
	s.Bus.Publish(events.TopicSubmission, events.Submission{
		Type:       "application",
		EntityType: "applicants",
		EntityID:   row.ID,
		Title:      "New application: " + row.FullName,
		Message:    fmt.Sprintf("%s applied for %s in %s", row.FullName, row.Position, row.State),
		Tags:       []string{row.State, row.Position},
		At:         row.CreatedAt,
	})
	return &row, nil
}

func filterQuery(f dto.ApplicantFilter) datastore.Query {
	q := datastore.Query{}
	if f.Q != "" {
		q = q.And(datastore.Contains(f.Q, "full_name", "email", "mobile"))
	}
	if f.State != "" {
		q = q.And(datastore.Eq("state", f.State))
	}
	if f.Position != "" {
		q = q.And(datastore.Eq("position", f.Position))
	}
	if f.Status != "" {
		q = q.And(datastore.Eq("status", f.Status))
	}
	if f.Qualification != "" {
		q = q.And(datastore.Eq("qualification", f.Qualification))
	}
	if f.From != nil {
		q = q.And(datastore.Gte("created_at", *f.From))
	}
	if f.To != nil {
		q = q.And(datastore.Lt("created_at", *f.To))
	}
	return q
}

// List returns one page plus the total for the filter.
func (s *ApplicantService) List(ctx context.Context, f dto.ApplicantFilter, order datastore.Order, limit, offset int) ([]model.ApplicantModel, int64, error) {
	q := filterQuery(f)
	total, err := s.Applicants.Count(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	rows, err := s.Applicants.Find(ctx, q.OrderBy(order).Page(limit, offset))
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *ApplicantService) Counts(ctx context.Context) (dto.StatusCounts, error) {
	by, err := s.Applicants.GroupCount(ctx, datastore.Query{}, "status")
	if err != nil {
		return dto.StatusCounts{}, err
	}
	c := dto.StatusCounts{
		Pending:  by[constants.ApplicantPending],
		Approved: by[constants.ApplicantApproved],
		Rejected: by[constants.ApplicantRejected],
	}
	for _, n := range by {
		c.Total += n
	}
	return c, nil
}

func (s *ApplicantService) Get(ctx context.Context, id uuid.UUID) (*model.ApplicantModel, error) {
	return s.Applicants.Get(ctx, id)
}

// UpdateStatus sets any of the three statuses; there is no transition guard.
func (s *ApplicantService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.ApplicantModel, error) {
	return s.Applicants.Update(ctx, id, map[string]any{"status": status})
}

func (s *ApplicantService) BulkStatus(ctx context.Context, ids []uuid.UUID, status string) (int64, error) {
	return s.Applicants.UpdateWhere(ctx, datastore.Where(datastore.In("id", ids)), map[string]any{"status": status})
}

// Delete removes the record, then its files. File cleanup is best effort.
func (s *ApplicantService) Delete(ctx context.Context, id uuid.UUID) (*model.ApplicantModel, error) {
	row, err := s.Applicants.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.Applicants.Delete(ctx, id); err != nil {
		return nil, err
	}
	for _, u := range []string{row.ResumeURL, row.AadhaarURL, row.PhotoURL} {
		if err := s.Uploader.DeleteURL(ctx, constants.BucketApplicantDocuments, u); err != nil {
			log.Printf("[WARN] delete applicant file %s: %v", u, err)
		}
	}
	return row, nil
}

var exportHeaders = []string{"Name", "Email", "Mobile", "State", "District", "Position", "Qualification", "Experience", "Status", "Applied On"}

var istZone = func() *time.Location {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		return time.FixedZone("IST", 5*3600+1800)
	}
	return loc
}()

// ExportFileName is applicants_YYYY-MM-DD.xlsx for the given day.
func ExportFileName(now time.Time) string {
	return "applicants_" + now.In(istZone).Format("2006-01-02") + ".xlsx"
}

// Export writes every applicant matching f to an xlsx workbook.
func (s *ApplicantService) Export(ctx context.Context, f dto.ApplicantFilter) (*bytes.Buffer, int, error) {
	rows, err := s.Applicants.Find(ctx, filterQuery(f).OrderBy(datastore.Desc("created_at")))
	if err != nil {
		return nil, 0, err
	}

	xf := excelize.NewFile()
	defer xf.Close()
	const sheet = "Applicants"
	if err := xf.SetSheetName("Sheet1", sheet); err != nil {
		return nil, 0, err
	}
	if err := xf.SetSheetRow(sheet, "A1", &exportHeaders); err != nil {
		return nil, 0, err
	}
	for i, a := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, 0, err
		}
		values := []any{
			a.FullName, a.Email, a.Mobile, a.State, a.District, a.Position, a.Qualification,
			dto.ExperienceText(a.Experience), a.Status, a.CreatedAt.In(istZone).Format("02/01/2006"),
		}
		if err := xf.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, 0, err
		}
	}
	buf, err := xf.WriteToBuffer()
	if err != nil {
		return nil, 0, err
	}
	return buf, len(rows), nil
}
