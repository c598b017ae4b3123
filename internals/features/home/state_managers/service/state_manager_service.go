package service

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"suryaghar_backend/internals/constants"
	"suryaghar_backend/internals/datastore"
	"suryaghar_backend/internals/features/home/state_managers/dto"
	"suryaghar_backend/internals/features/home/state_managers/model"
	"suryaghar_backend/internals/helpers/storage"
)

const folder = "managers"

type StateManagerService struct {
	Managers datastore.Table[model.StateManagerModel]
	Uploader *storage.Uploader
}

func NewStateManagerService(managers datastore.Table[model.StateManagerModel], uploader *storage.Uploader) *StateManagerService {
	return &StateManagerService{Managers: managers, Uploader: uploader}
}

// ErrStateTaken is a 409 carrying the message shown to the admin.
func ErrStateTaken(state string) error {
	return fiber.NewError(fiber.StatusConflict, "Manager for "+state+" already exists")
}

func (s *StateManagerService) List(ctx context.Context, activeOnly bool) ([]model.StateManagerModel, error) {
	q := datastore.Query{}
	if activeOnly {
		q = q.And(datastore.Eq("is_active", true))
	}
	return s.Managers.Find(ctx, q.OrderBy(datastore.Asc("state")))
}

func (s *StateManagerService) stateTaken(ctx context.Context, state string, except uuid.UUID) (bool, error) {
	row, err := s.Managers.First(ctx, datastore.Where(datastore.Eq("state", state)))
	if datastore.IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return row.ID != except, nil
}

// Create stores a manager with a photo. Each state has at most one manager.
func (s *StateManagerService) Create(ctx context.Context, form dto.ManagerForm, photo *multipart.FileHeader) (*model.StateManagerModel, error) {
	if taken, err := s.stateTaken(ctx, form.State, uuid.Nil); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrStateTaken(form.State)
	}

	batch := s.Uploader.Batch()
	obj, err := batch.Upload(ctx, dto.FieldPhoto, photo, constants.BucketManagerPhotos, folder, storage.PhotoRule)
	if err != nil {
		batch.Rollback()
		return nil, err
	}
	row := form.ToModel()
	row.PhotoURL = obj.URL
	if err := s.Managers.Insert(ctx, &row); err != nil {
		batch.Rollback()
		if datastore.IsDuplicate(err) {
			return nil, ErrStateTaken(form.State)
		}
		return nil, fmt.Errorf("insert state manager: %w", err)
	}
	log.Printf("[INFO] 👤 state manager for %s: %s", row.State, row.Name)
	return &row, nil
}

// Update rewrites the manager; a new photo replaces the old object after the
// record is saved.
func (s *StateManagerService) Update(ctx context.Context, id uuid.UUID, form dto.ManagerForm, photo *multipart.FileHeader) (*model.StateManagerModel, error) {
	cur, err := s.Managers.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if taken, err := s.stateTaken(ctx, form.State, id); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrStateTaken(form.State)
	}

	fields := form.Fields()
	batch := s.Uploader.Batch()
	if photo != nil {
		obj, err := batch.Upload(ctx, dto.FieldPhoto, photo, constants.BucketManagerPhotos, folder, storage.PhotoRule)
		if err != nil {
			batch.Rollback()
			return nil, err
		}
		fields["photo_url"] = obj.URL
	}

	row, err := s.Managers.Update(ctx, id, fields)
	if err != nil {
		batch.Rollback()
		if datastore.IsDuplicate(err) {
			return nil, ErrStateTaken(form.State)
		}
		return nil, err
	}
	if photo != nil && cur.PhotoURL != "" {
		if err := s.Uploader.DeleteURL(ctx, constants.BucketManagerPhotos, cur.PhotoURL); err != nil {
			log.Printf("[WARN] delete replaced manager photo %s: %v", cur.PhotoURL, err)
		}
	}
	return row, nil
}

func (s *StateManagerService) SetActive(ctx context.Context, id uuid.UUID, active *bool) (*model.StateManagerModel, error) {
	var next bool
	if active != nil {
		next = *active
	} else {
		cur, err := s.Managers.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		next = !cur.IsActive
	}
	return s.Managers.Update(ctx, id, map[string]any{"is_active": next})
}

func (s *StateManagerService) Delete(ctx context.Context, id uuid.UUID) (*model.StateManagerModel, error) {
	row, err := s.Managers.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.Managers.Delete(ctx, id); err != nil {
		return nil, err
	}
	if err := s.Uploader.DeleteURL(ctx, constants.BucketManagerPhotos, row.PhotoURL); err != nil {
		log.Printf("[WARN] delete manager photo %s: %v", row.PhotoURL, err)
	}
	return row, nil
}
