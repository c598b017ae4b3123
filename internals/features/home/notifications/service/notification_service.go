package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"suryaghar_backend/internals/datastore"
	"suryaghar_backend/internals/events"
	"suryaghar_backend/internals/features/home/notifications/dto"
	"suryaghar_backend/internals/features/home/notifications/model"
)

type NotificationService struct {
	Notifications datastore.Table[model.NotificationModel]
	Now           func() time.Time
}

func NewNotificationService(t datastore.Table[model.NotificationModel]) *NotificationService {
	return &NotificationService{Notifications: t, Now: time.Now}
}

// Subscribe stores one notification per public submission. Handlers run off
// the request goroutine; failures are logged and dropped.
func (s *NotificationService) Subscribe(bus *events.Bus) error {
	return bus.SubscribeAsync(events.TopicSubmission, func(ev events.Submission) {
		if _, err := s.Record(context.Background(), ev); err != nil {
			log.Printf("[ERROR] store notification for %s %s: %v", ev.EntityType, ev.EntityID, err)
		}
	})
}

func (s *NotificationService) Record(ctx context.Context, ev events.Submission) (*model.NotificationModel, error) {
	row := dto.FromSubmission(ev)
	if err := s.Notifications.Insert(ctx, &row); err != nil {
		return nil, err
	}
	return &row, nil
}

func query(f dto.Filter) datastore.Query {
	q := datastore.Query{}
	if f.UnreadOnly {
		q = q.And(datastore.Eq("is_read", false))
	}
	if f.Type != "" {
		q = q.And(datastore.Eq("type", f.Type))
	}
	return q
}

func (s *NotificationService) List(ctx context.Context, f dto.Filter, limit, offset int) ([]model.NotificationModel, int64, error) {
	q := query(f)
	total, err := s.Notifications.Count(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	rows, err := s.Notifications.Find(ctx, q.OrderBy(datastore.Desc("created_at")).Page(limit, offset))
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context) (int64, error) {
	return s.Notifications.Count(ctx, query(dto.Filter{UnreadOnly: true}))
}

func (s *NotificationService) MarkRead(ctx context.Context, id uuid.UUID) (*model.NotificationModel, error) {
	cur, err := s.Notifications.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if cur.IsRead {
		return cur, nil
	}
	return s.Notifications.Update(ctx, id, map[string]any{"is_read": true, "read_at": s.Now()})
}

func (s *NotificationService) MarkAllRead(ctx context.Context) (int64, error) {
	return s.Notifications.UpdateWhere(ctx, query(dto.Filter{UnreadOnly: true}),
		map[string]any{"is_read": true, "read_at": s.Now()})
}

func (s *NotificationService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.Notifications.Delete(ctx, id)
}
