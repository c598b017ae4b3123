package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"suryaghar_backend/internals/datastore"
	"suryaghar_backend/internals/features/home/videos/dto"
	"suryaghar_backend/internals/features/home/videos/model"
)

const orderColumn = "display_order"

type VideoService struct {
	Videos datastore.Table[model.VideoModel]
}

func NewVideoService(videos datastore.Table[model.VideoModel]) *VideoService {
	return &VideoService{Videos: videos}
}

func (s *VideoService) List(ctx context.Context, activeOnly bool) ([]model.VideoModel, error) {
	q := datastore.Query{}
	if activeOnly {
		q = q.And(datastore.Eq("is_active", true))
	}
	return s.Videos.Find(ctx, q.OrderBy(datastore.Asc(orderColumn), datastore.Asc("created_at")))
}

func (s *VideoService) Create(ctx context.Context, req dto.VideoRequest, videoID string) (*model.VideoModel, error) {
	max, err := s.Videos.Max(ctx, datastore.Query{}, orderColumn)
	if err != nil {
		return nil, err
	}
	row := req.ToModel(videoID)
	row.DisplayOrder = int(max) + 1
	if err := s.Videos.Insert(ctx, &row); err != nil {
		return nil, fmt.Errorf("insert video: %w", err)
	}
	log.Printf("[INFO] 🎬 video %s added at position %d", row.VideoID, row.DisplayOrder)
	return &row, nil
}

func (s *VideoService) Update(ctx context.Context, id uuid.UUID, req dto.VideoRequest, videoID string) (*model.VideoModel, error) {
	return s.Videos.Update(ctx, id, req.Fields(videoID))
}

func (s *VideoService) Move(ctx context.Context, id uuid.UUID, dir datastore.Direction) (bool, error) {
	return datastore.Move[model.VideoModel](ctx, s.Videos, datastore.Query{}, id, dir, orderColumn,
		func(v model.VideoModel) uuid.UUID { return v.ID })
}

func (s *VideoService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.Videos.Delete(ctx, id)
}
