package service

import (
	"context"
	"log"

	"suryaghar_backend/internals/datastore"
	"suryaghar_backend/internals/events"
	"suryaghar_backend/internals/features/dashboard/audit_logs/dto"
	"suryaghar_backend/internals/features/dashboard/audit_logs/model"
	"suryaghar_backend/internals/features/users/auth/session"
)

type AuditLogService struct {
	Logs datastore.Table[model.AuditLogModel]
}

func NewAuditLogService(logs datastore.Table[model.AuditLogModel]) *AuditLogService {
	return &AuditLogService{Logs: logs}
}

// Subscribe writes an entry for every admin mutation on bus and for every
// sign-in or sign-out seen by mgr. Either source may be nil.
func (s *AuditLogService) Subscribe(bus *events.Bus, mgr *session.Manager) error {
	if bus != nil {
		if err := bus.SubscribeAsync(events.TopicAdminAction, func(a events.AdminAction) {
			s.write(dto.FromAdminAction(a))
		}); err != nil {
			return err
		}
	}
	if mgr != nil {
		onSession := func(ev session.Event) { s.write(dto.FromSession(ev)) }
		if err := mgr.SubscribeAsync(session.TopicSignedIn, onSession); err != nil {
			return err
		}
		if err := mgr.SubscribeAsync(session.TopicSignedOut, onSession); err != nil {
			return err
		}
	}
	return nil
}

func (s *AuditLogService) write(row model.AuditLogModel) {
	if err := s.Logs.Insert(context.Background(), &row); err != nil {
		log.Printf("[ERROR] audit %s on %s: %v", row.Action, row.EntityType, err)
	}
}

func (s *AuditLogService) List(ctx context.Context, f dto.Filter, limit, offset int) ([]model.AuditLogModel, int64, error) {
	q := datastore.Query{}
	if f.Action != "" {
		q = q.And(datastore.Eq("action", f.Action))
	}
	if f.EntityType != "" {
		q = q.And(datastore.Eq("entity_type", f.EntityType))
	}
	if f.AdminID != nil {
		q = q.And(datastore.Eq("admin_id", *f.AdminID))
	}
	if f.From != nil {
		q = q.And(datastore.Gte("created_at", *f.From))
	}
	if f.To != nil {
		q = q.And(datastore.Lt("created_at", *f.To))
	}
	total, err := s.Logs.Count(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	rows, err := s.Logs.Find(ctx, q.OrderBy(datastore.Desc("created_at")).Page(limit, offset))
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
