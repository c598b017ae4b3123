package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"suryaghar_backend/internals/configs"
	"suryaghar_backend/internals/constants"
	"suryaghar_backend/internals/datastore"
	"suryaghar_backend/internals/events"
	"suryaghar_backend/internals/features/jobs/jobs/dto"
	"suryaghar_backend/internals/features/jobs/jobs/model"
	helper "suryaghar_backend/internals/helpers"
)

const (
	BoardPageSize   = 12
	HighlightsLimit = 6
)

type JobService struct {
	Jobs  datastore.Table[model.JobModel]
	Views datastore.Table[model.JobViewModel]
	Saves datastore.Table[model.JobSaveModel]
	Bus   *events.Bus

	// FetchLimit bounds how many approved jobs the board loads before
	// filtering in memory.
	FetchLimit int
	Now        func() time.Time
}

func NewJobService(jobs datastore.Table[model.JobModel], views datastore.Table[model.JobViewModel], saves datastore.Table[model.JobSaveModel], bus *events.Bus) *JobService {
	return &JobService{
		Jobs:       jobs,
		Views:      views,
		Saves:      saves,
		Bus:        bus,
		FetchLimit: configs.GetEnvInt("JOBS_FETCH_LIMIT", 500),
		Now:        time.Now,
	}
}

/* ==========================
   Public board
========================== */

func matchesListing(j model.JobModel, f dto.ListingFilter) bool {
	if kw := strings.ToLower(strings.TrimSpace(f.Keyword)); kw != "" {
		hay := strings.ToLower(j.Title + "\n" + j.OrganizationName + "\n" + j.Description)
		if !strings.Contains(hay, kw) {
			return false
		}
	}
	if loc := strings.ToLower(strings.TrimSpace(f.Location)); loc != "" {
		if !strings.Contains(strings.ToLower(j.Location), loc) {
			return false
		}
	}
	if f.CategoryActive() && j.Category != f.Category {
		return false
	}
	if f.JobTypeActive() && j.JobType != f.JobType {
		return false
	}
	return true
}

func sortListing(rows []model.JobModel, by string) {
	switch by {
	case dto.SortTitle:
		sort.SliceStable(rows, func(a, b int) bool {
			return strings.ToLower(rows[a].Title) < strings.ToLower(rows[b].Title)
		})
	case dto.SortLocation:
		sort.SliceStable(rows, func(a, b int) bool {
			return strings.ToLower(rows[a].Location) < strings.ToLower(rows[b].Location)
		})
	default:
		sort.SliceStable(rows, func(a, b int) bool {
			return rows[a].CreatedAt.After(rows[b].CreatedAt)
		})
	}
}

// Board returns one page of approved jobs. The newest FetchLimit approved
// jobs are loaded, then filtered and sorted in memory.
func (s *JobService) Board(ctx context.Context, f dto.ListingFilter) ([]model.JobModel, helper.Pagination, error) {
	limit := s.FetchLimit
	if limit <= 0 {
		limit = 500
	}
	rows, err := s.Jobs.Find(ctx, datastore.Where(datastore.Eq("status", constants.JobApproved)).
		OrderBy(datastore.Desc("created_at")).
		Page(limit, 0))
	if err != nil {
		return nil, helper.Pagination{}, err
	}

	filtered := rows[:0:0]
	for _, j := range rows {
		if matchesListing(j, f) {
			filtered = append(filtered, j)
		}
	}
	sortListing(filtered, f.Sort)
	page, pg := helper.SlicePage(filtered, f.Page, BoardPageSize)
	return page, pg, nil
}

func (s *JobService) Featured(ctx context.Context) ([]model.JobModel, error) {
	return s.Jobs.Find(ctx, datastore.Where(
		datastore.Eq("status", constants.JobApproved),
		datastore.Eq("is_featured", true),
	).OrderBy(datastore.Desc("created_at")).Page(HighlightsLimit, 0))
}

func (s *JobService) Trending(ctx context.Context) ([]model.JobModel, error) {
	return s.Jobs.Find(ctx, datastore.Where(datastore.Eq("status", constants.JobApproved)).
		OrderBy(datastore.Desc("views_count"), datastore.Desc("created_at")).
		Page(HighlightsLimit, 0))
}

// Viewer describes who opened a job page. Admin views are not counted.
type Viewer struct {
	IP        string
	UserAgent string
	Admin     bool
}

// Detail returns an approved job and records the view. A failure to record
// the view never hides the job.
func (s *JobService) Detail(ctx context.Context, id uuid.UUID, v Viewer) (*model.JobModel, error) {
	job, err := s.Jobs.First(ctx, datastore.Where(
		datastore.Eq("id", id),
		datastore.Eq("status", constants.JobApproved),
	))
	if err != nil {
		return nil, err
	}
	if v.Admin {
		return job, nil
	}

	view := model.JobViewModel{JobID: job.ID, ViewerIP: v.IP, UserAgent: v.UserAgent}
	if err := s.Views.Insert(ctx, &view); err != nil {
		log.Printf("[WARN] record job view %s: %v", job.ID, err)
		return job, nil
	}
	if err := s.Jobs.Increment(ctx, job.ID, "views_count", 1); err != nil {
		log.Printf("[WARN] bump views_count %s: %v", job.ID, err)
		return job, nil
	}
	job.ViewsCount++
	return job, nil
}

// Create stores a new posting as pending; it is invisible on the board until
// an admin approves it.
func (s *JobService) Create(ctx context.Context, form dto.JobForm) (*model.JobModel, error) {
	row := form.ToModel()
	if err := s.Jobs.Insert(ctx, &row); err != nil {
		return nil, fmt.Errorf("insert job: %w", err)
	}
	log.Printf("[INFO] 💼 job posted %s %q by %s", row.ID, row.Title, row.OrganizationName)
	s.Bus.Publish(events.TopicSubmission, events.Submission{
		Type:       "job",
		EntityType: "jobs",
		EntityID:   row.ID,
		Title:      "New job posted: " + row.Title,
		Message:    fmt.Sprintf("%s posted %q (%s) and it is waiting for approval", row.OrganizationName, row.Title, row.Category),
		Tags:       []string{row.Category, row.JobType},
		At:         row.CreatedAt,
	})
	return &row, nil
}

/* ==========================
   Saved jobs
========================== */

func (s *JobService) approved(ctx context.Context, id uuid.UUID) error {
	_, err := s.Jobs.First(ctx, datastore.Where(
		datastore.Eq("id", id),
		datastore.Eq("status", constants.JobApproved),
	))
	return err
}

// Save bookmarks a job for an email. Saving twice is not an error.
func (s *JobService) Save(ctx context.Context, id uuid.UUID, email string) (*model.JobSaveModel, error) {
	if err := s.approved(ctx, id); err != nil {
		return nil, err
	}
	email = strings.ToLower(strings.TrimSpace(email))
	existing, err := s.Saves.First(ctx, datastore.Where(datastore.Eq("job_id", id), datastore.Eq("email", email)))
	if err == nil {
		return existing, nil
	}
	if !datastore.IsNotFound(err) {
		return nil, err
	}
	row := model.JobSaveModel{JobID: id, Email: email}
	if err := s.Saves.Insert(ctx, &row); err != nil {
		if datastore.IsDuplicate(err) {
			return s.Saves.First(ctx, datastore.Where(datastore.Eq("job_id", id), datastore.Eq("email", email)))
		}
		return nil, err
	}
	return &row, nil
}

func (s *JobService) Unsave(ctx context.Context, id uuid.UUID, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	row, err := s.Saves.First(ctx, datastore.Where(datastore.Eq("job_id", id), datastore.Eq("email", email)))
	if err != nil {
		return err
	}
	return s.Saves.Delete(ctx, row.ID)
}

// Saved lists the approved jobs bookmarked by email, most recent save first.
func (s *JobService) Saved(ctx context.Context, email string) ([]model.JobModel, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	saves, err := s.Saves.Find(ctx, datastore.Where(datastore.Eq("email", email)).OrderBy(datastore.Desc("created_at")))
	if err != nil {
		return nil, err
	}
	if len(saves) == 0 {
		return []model.JobModel{}, nil
	}
	ids := make([]uuid.UUID, 0, len(saves))
	for _, sv := range saves {
		ids = append(ids, sv.JobID)
	}
	jobs, err := s.Jobs.Find(ctx, datastore.Where(
		datastore.In("id", ids),
		datastore.Eq("status", constants.JobApproved),
	))
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]model.JobModel, len(jobs))
	for _, j := range jobs {
		byID[j.ID] = j
	}
	out := make([]model.JobModel, 0, len(jobs))
	for _, id := range ids {
		if j, ok := byID[id]; ok {
			out = append(out, j)
		}
	}
	return out, nil
}

/* ==========================
   Moderation
========================== */

func adminQuery(f dto.AdminFilter) datastore.Query {
	q := datastore.Query{}
	if f.Status != "" {
		q = q.And(datastore.Eq("status", f.Status))
	}
	if f.Category != "" {
		q = q.And(datastore.Eq("category", f.Category))
	}
	if f.Q != "" {
		q = q.And(datastore.Contains(f.Q, "title", "organization_name", "location"))
	}
	return q
}

func (s *JobService) AdminList(ctx context.Context, f dto.AdminFilter, order datastore.Order, limit, offset int) ([]model.JobModel, int64, error) {
	q := adminQuery(f)
	total, err := s.Jobs.Count(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	rows, err := s.Jobs.Find(ctx, q.OrderBy(order).Page(limit, offset))
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *JobService) StatusCounts(ctx context.Context) (map[string]int64, error) {
	by, err := s.Jobs.GroupCount(ctx, datastore.Query{}, "status")
	if err != nil {
		return nil, err
	}
	out := map[string]int64{"total": 0}
	for _, st := range constants.JobStatuses {
		out[st] = by[st]
		out["total"] += by[st]
	}
	return out, nil
}

func (s *JobService) Get(ctx context.Context, id uuid.UUID) (*model.JobModel, error) {
	return s.Jobs.Get(ctx, id)
}

func (s *JobService) statusFields(status, reason string) map[string]any {
	fields := map[string]any{"status": status}
	switch status {
	case constants.JobApproved:
		fields["published_at"] = s.Now()
		fields["rejection_reason"] = nil
	case constants.JobRejected:
		if r := strings.TrimSpace(reason); r != "" {
			fields["rejection_reason"] = r
		}
	}
	return fields
}

// SetStatus moves a posting to any moderation status. Approving stamps
// published_at; rejecting stores the optional reason.
func (s *JobService) SetStatus(ctx context.Context, id uuid.UUID, status, reason string) (*model.JobModel, error) {
	return s.Jobs.Update(ctx, id, s.statusFields(status, reason))
}

func (s *JobService) SetFeatured(ctx context.Context, id uuid.UUID, featured bool) (*model.JobModel, error) {
	return s.Jobs.Update(ctx, id, map[string]any{"is_featured": featured})
}

func (s *JobService) BulkStatus(ctx context.Context, ids []uuid.UUID, status, reason string) (int64, error) {
	return s.Jobs.UpdateWhere(ctx, datastore.Where(datastore.In("id", ids)), s.statusFields(status, reason))
}

func (s *JobService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.Jobs.Delete(ctx, id)
}
