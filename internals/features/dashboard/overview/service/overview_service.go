package service

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"suryaghar_backend/internals/constants"
	"suryaghar_backend/internals/datastore"
	"suryaghar_backend/internals/features/dashboard/overview/dto"
	jobappmodel "suryaghar_backend/internals/features/jobs/job_applications/model"
	jobmodel "suryaghar_backend/internals/features/jobs/jobs/model"
	applicantmodel "suryaghar_backend/internals/features/recruitment/applicants/model"
	"suryaghar_backend/internals/helpers/dbtime"
)

const trendMonths = 6

type OverviewService struct {
	Applicants   datastore.Table[applicantmodel.ApplicantModel]
	Jobs         datastore.Table[jobmodel.JobModel]
	Applications datastore.Table[jobappmodel.JobApplicationModel]
	Now          func() time.Time
}

func NewOverviewService(
	applicants datastore.Table[applicantmodel.ApplicantModel],
	jobs datastore.Table[jobmodel.JobModel],
	applications datastore.Table[jobappmodel.JobApplicationModel],
) *OverviewService {
	return &OverviewService{Applicants: applicants, Jobs: jobs, Applications: applications, Now: time.Now}
}

// Overview gathers every dashboard figure. The three groups are read
// concurrently; the first failure cancels the rest.
func (s *OverviewService) Overview(ctx context.Context) (*dto.Overview, error) {
	var out dto.Overview
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.Applicants, err = s.applicantStats(ctx)
		return err
	})
	g.Go(func() (err error) {
		out.Jobs, err = s.jobStats(ctx)
		return err
	})
	g.Go(func() (err error) {
		out.JobApplications, err = s.applicationStats(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}

// slices turns a group count into chart slices, largest first.
func slices(by map[string]int64) []dto.Slice {
	out := make([]dto.Slice, 0, len(by))
	for k, v := range by {
		if k == "" {
			continue
		}
		out = append(out, dto.Slice{Name: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func (s *OverviewService) applicantStats(ctx context.Context) (dto.ApplicantStats, error) {
	var st dto.ApplicantStats
	byStatus, err := s.Applicants.GroupCount(ctx, datastore.Query{}, "status")
	if err != nil {
		return st, err
	}
	for _, v := range byStatus {
		st.Total += v
	}
	st.Pending = byStatus[constants.ApplicantPending]
	st.Approved = byStatus[constants.ApplicantApproved]
	st.Rejected = byStatus[constants.ApplicantRejected]

	byState, err := s.Applicants.GroupCount(ctx, datastore.Query{}, "state")
	if err != nil {
		return st, err
	}
	st.ByState = slices(byState)

	byPosition, err := s.Applicants.GroupCount(ctx, datastore.Query{}, "position")
	if err != nil {
		return st, err
	}
	st.ByPosition = slices(byPosition)

	st.Monthly, err = s.monthly(ctx)
	return st, err
}

// monthly counts applicants per calendar month in the site timezone, oldest
// first, including empty months.
func (s *OverviewService) monthly(ctx context.Context) ([]dto.MonthPoint, error) {
	starts := dbtime.LastMonths(s.Now(), trendMonths)
	out := make([]dto.MonthPoint, 0, len(starts))
	for _, from := range starts {
		to := from.AddDate(0, 1, 0)
		n, err := s.Applicants.Count(ctx, datastore.Where(
			datastore.Gte("created_at", from),
			datastore.Lt("created_at", to),
		))
		if err != nil {
			return nil, err
		}
		out = append(out, dto.MonthPoint{
			Month:        from.Format("Jan 2006"),
			Key:          dbtime.MonthKey(from),
			Applications: n,
		})
	}
	return out, nil
}

func (s *OverviewService) jobStats(ctx context.Context) (dto.JobStats, error) {
	st := dto.JobStats{ByStatus: map[string]int64{}}
	byStatus, err := s.Jobs.GroupCount(ctx, datastore.Query{}, "status")
	if err != nil {
		return st, err
	}
	for _, name := range constants.JobStatuses {
		st.ByStatus[name] = byStatus[name]
		st.Total += byStatus[name]
	}
	byCategory, err := s.Jobs.GroupCount(ctx, datastore.Query{}, "category")
	if err != nil {
		return st, err
	}
	st.ByCategory = slices(byCategory)
	st.Featured, err = s.Jobs.Count(ctx, datastore.Where(datastore.Eq("is_featured", true)))
	return st, err
}

func (s *OverviewService) applicationStats(ctx context.Context) (dto.ApplicationStats, error) {
	st := dto.ApplicationStats{ByStatus: map[string]int64{}}
	byStatus, err := s.Applications.GroupCount(ctx, datastore.Query{}, "status")
	if err != nil {
		return st, err
	}
	for _, name := range constants.JobApplicationStatuses {
		st.ByStatus[name] = byStatus[name]
		st.Total += byStatus[name]
	}
	return st, nil
}
