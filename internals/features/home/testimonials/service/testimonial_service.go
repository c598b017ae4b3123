package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"suryaghar_backend/internals/datastore"
	"suryaghar_backend/internals/features/home/testimonials/dto"
	"suryaghar_backend/internals/features/home/testimonials/model"
)

const orderColumn = "display_order"

type TestimonialService struct {
	Testimonials datastore.Table[model.TestimonialModel]
}

func NewTestimonialService(t datastore.Table[model.TestimonialModel]) *TestimonialService {
	return &TestimonialService{Testimonials: t}
}

func (s *TestimonialService) List(ctx context.Context, activeOnly bool) ([]model.TestimonialModel, error) {
	q := datastore.Query{}
	if activeOnly {
		q = q.And(datastore.Eq("is_active", true))
	}
	return s.Testimonials.Find(ctx, q.OrderBy(datastore.Asc(orderColumn), datastore.Asc("created_at")))
}

// Create appends the testimonial after the current last one.
func (s *TestimonialService) Create(ctx context.Context, req dto.TestimonialRequest, by *uuid.UUID) (*model.TestimonialModel, error) {
	max, err := s.Testimonials.Max(ctx, datastore.Query{}, orderColumn)
	if err != nil {
		return nil, err
	}
	row := req.ToModel()
	row.DisplayOrder = int(max) + 1
	row.UploadedBy = by
	if err := s.Testimonials.Insert(ctx, &row); err != nil {
		return nil, fmt.Errorf("insert testimonial: %w", err)
	}
	return &row, nil
}

func (s *TestimonialService) Update(ctx context.Context, id uuid.UUID, req dto.TestimonialRequest) (*model.TestimonialModel, error) {
	return s.Testimonials.Update(ctx, id, req.Fields())
}

// SetActive writes the given flag, or flips the stored one when nil.
func (s *TestimonialService) SetActive(ctx context.Context, id uuid.UUID, active *bool) (*model.TestimonialModel, error) {
	var next bool
	if active != nil {
		next = *active
	} else {
		cur, err := s.Testimonials.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		next = !cur.IsActive
	}
	return s.Testimonials.Update(ctx, id, map[string]any{"is_active": next})
}

func (s *TestimonialService) Move(ctx context.Context, id uuid.UUID, dir datastore.Direction) (bool, error) {
	return datastore.Move[model.TestimonialModel](ctx, s.Testimonials, datastore.Query{}, id, dir, orderColumn,
		func(t model.TestimonialModel) uuid.UUID { return t.ID })
}

func (s *TestimonialService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.Testimonials.Delete(ctx, id)
}
