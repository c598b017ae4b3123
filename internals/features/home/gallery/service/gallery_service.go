package service

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"

	"suryaghar_backend/internals/constants"
	"suryaghar_backend/internals/datastore"
	"suryaghar_backend/internals/features/home/gallery/dto"
	"suryaghar_backend/internals/features/home/gallery/model"
	"suryaghar_backend/internals/helpers/storage"
)

type GalleryService struct {
	Images   datastore.Table[model.GalleryImageModel]
	Uploader *storage.Uploader
}

func NewGalleryService(images datastore.Table[model.GalleryImageModel], uploader *storage.Uploader) *GalleryService {
	return &GalleryService{Images: images, Uploader: uploader}
}

// List returns the gallery newest first. Public callers pass activeOnly.
func (s *GalleryService) List(ctx context.Context, category string, activeOnly bool) ([]model.GalleryImageModel, error) {
	q := datastore.Query{}
	if activeOnly {
		q = q.And(datastore.Eq("is_active", true))
	}
	if category != "" {
		q = q.And(datastore.Eq("category", category))
	}
	return s.Images.Find(ctx, q.OrderBy(datastore.Desc("uploaded_at")))
}

func (s *GalleryService) Upload(ctx context.Context, form dto.UploadForm, fh *multipart.FileHeader, by *uuid.UUID) (*model.GalleryImageModel, error) {
	batch := s.Uploader.Batch()
	obj, err := batch.Upload(ctx, dto.FieldImage, fh, constants.BucketGalleryImages, strings.ToLower(form.Category), storage.ImageRule)
	if err != nil {
		batch.Rollback()
		return nil, err
	}
	row := form.ToModel()
	row.ImageURL, row.UploadedBy = obj.URL, by
	if err := s.Images.Insert(ctx, &row); err != nil {
		batch.Rollback()
		return nil, fmt.Errorf("insert gallery image: %w", err)
	}
	log.Printf("[INFO] 🖼️ gallery image %s (%s)", row.ID, row.Category)
	return &row, nil
}

// SetActive flips the flag when active is nil.
func (s *GalleryService) SetActive(ctx context.Context, id uuid.UUID, active *bool) (*model.GalleryImageModel, error) {
	next := true
	if active != nil {
		next = *active
	} else {
		cur, err := s.Images.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		next = !cur.IsActive
	}
	return s.Images.Update(ctx, id, map[string]any{"is_active": next})
}

func (s *GalleryService) Delete(ctx context.Context, id uuid.UUID) (*model.GalleryImageModel, error) {
	row, err := s.Images.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.Images.Delete(ctx, id); err != nil {
		return nil, err
	}
	if err := s.Uploader.DeleteURL(ctx, constants.BucketGalleryImages, row.ImageURL); err != nil {
		log.Printf("[WARN] delete gallery file %s: %v", row.ImageURL, err)
	}
	return row, nil
}
