package service

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"time"

	"github.com/google/uuid"

	"suryaghar_backend/internals/constants"
	"suryaghar_backend/internals/datastore"
	"suryaghar_backend/internals/features/home/legal_documents/dto"
	"suryaghar_backend/internals/features/home/legal_documents/model"
	"suryaghar_backend/internals/helpers/storage"
)

const folder = "documents"

type LegalDocumentService struct {
	Docs     datastore.Table[model.LegalDocumentModel]
	Uploader *storage.Uploader
	Now      func() time.Time
}

func NewLegalDocumentService(docs datastore.Table[model.LegalDocumentModel], uploader *storage.Uploader) *LegalDocumentService {
	return &LegalDocumentService{Docs: docs, Uploader: uploader, Now: time.Now}
}

func (s *LegalDocumentService) List(ctx context.Context) ([]model.LegalDocumentModel, error) {
	return s.Docs.Find(ctx, datastore.Query{}.OrderBy(datastore.Desc("uploaded_at")))
}

// Upsert stores the file for a document type, replacing the previous one. The
// previous object is removed only after the record points at the new file.
func (s *LegalDocumentService) Upsert(ctx context.Context, name string, fh *multipart.FileHeader, by *uuid.UUID) (*model.LegalDocumentModel, bool, error) {
	batch := s.Uploader.Batch()
	obj, err := batch.Upload(ctx, dto.FieldFile, fh, constants.BucketLegalDocuments, folder, storage.LegalDocRule)
	if err != nil {
		batch.Rollback()
		return nil, false, err
	}

	now := s.Now()
	existing, err := s.Docs.First(ctx, datastore.Where(datastore.Eq("name", name)))
	switch {
	case err == nil:
	case datastore.IsNotFound(err):
		row := model.LegalDocumentModel{Name: name, FileURL: obj.URL, UploadedBy: by, UploadedAt: now}
		if err := s.Docs.Insert(ctx, &row); err == nil {
			log.Printf("[INFO] 📄 legal document %q uploaded", name)
			return &row, true, nil
		} else if !datastore.IsDuplicate(err) {
			batch.Rollback()
			return nil, false, fmt.Errorf("insert legal document: %w", err)
		}
		// another upload for the same type won the insert; overwrite it
		if existing, err = s.Docs.First(ctx, datastore.Where(datastore.Eq("name", name))); err != nil {
			batch.Rollback()
			return nil, false, err
		}
	default:
		batch.Rollback()
		return nil, false, err
	}

	row, err := s.Docs.Update(ctx, existing.ID, map[string]any{
		"file_url":    obj.URL,
		"uploaded_by": by,
		"uploaded_at": now,
	})
	if err != nil {
		batch.Rollback()
		return nil, false, fmt.Errorf("update legal document: %w", err)
	}
	if existing.FileURL != "" && existing.FileURL != obj.URL {
		if err := s.Uploader.DeleteURL(ctx, constants.BucketLegalDocuments, existing.FileURL); err != nil {
			log.Printf("[WARN] delete replaced legal document %s: %v", existing.FileURL, err)
		}
	}
	log.Printf("[INFO] 📄 legal document %q replaced", name)
	return row, false, nil
}

func (s *LegalDocumentService) Delete(ctx context.Context, id uuid.UUID) (*model.LegalDocumentModel, error) {
	row, err := s.Docs.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.Docs.Delete(ctx, id); err != nil {
		return nil, err
	}
	if err := s.Uploader.DeleteURL(ctx, constants.BucketLegalDocuments, row.FileURL); err != nil {
		log.Printf("[WARN] delete legal document file %s: %v", row.FileURL, err)
	}
	return row, nil
}
