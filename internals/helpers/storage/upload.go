package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
	"time"

	"suryaghar_backend/internals/constants"
)

type Kind int

const (
	KindImage Kind = 1 << iota
	KindPDF
	KindWord
)

// Rule constrains one form attachment.
type Rule struct {
	Label     string
	MaxBytes  int64
	Kinds     Kind
	StrictPDF bool // parse the PDF, not just sniff it
	ToWebP    bool // re-encode images
}

var (
	ImageRule     = Rule{Label: "Image", MaxBytes: 5 << 20, Kinds: KindImage, ToWebP: true}
	PhotoRule     = Rule{Label: "Photo", MaxBytes: 5 << 20, Kinds: KindImage, ToWebP: true}
	ResumeRule    = Rule{Label: "Resume", MaxBytes: 5 << 20, Kinds: KindPDF | KindWord}
	PDFResumeRule = Rule{Label: "Resume", MaxBytes: 5 << 20, Kinds: KindPDF, StrictPDF: true}
	AadhaarRule   = Rule{Label: "Aadhaar", MaxBytes: 5 << 20, Kinds: KindImage | KindPDF}
	LegalDocRule  = Rule{Label: "Document", MaxBytes: 10 << 20, Kinds: KindImage | KindPDF, StrictPDF: true}
)

var wordTypes = map[string]string{
	"doc":  "application/msword",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// FileError is a user-facing rejection of an attachment.
type FileError struct {
	Field string
	Msg   string
	Err   error
}

func (e *FileError) Error() string { return e.Field + ": " + e.Msg }
func (e *FileError) Unwrap() error { return e.Err }

// Check validates an attachment without uploading it.
func (r Rule) Check(field string, fh *multipart.FileHeader) error {
	if fh == nil {
		return &FileError{Field: field, Msg: r.Label + " is required"}
	}
	if r.MaxBytes > 0 && fh.Size > r.MaxBytes {
		return &FileError{Field: field, Msg: fmt.Sprintf("%s must be at most %d MB", r.Label, r.MaxBytes>>20), Err: ErrTooLarge}
	}
	switch constants.DetectFileTypeFromExt(fh.Filename) {
	case constants.FileKindImage:
		if r.Kinds&KindImage != 0 {
			return nil
		}
	case constants.FileKindPDF:
		if r.Kinds&KindPDF != 0 {
			return nil
		}
	case constants.FileKindDoc:
		if r.Kinds&KindWord != 0 {
			return nil
		}
	}
	return &FileError{Field: field, Msg: r.Label + " has an unsupported file type" + r.allowedHint(), Err: ErrUnsupported}
}

func (r Rule) allowedHint() string {
	var parts []string
	if r.Kinds&KindImage != 0 {
		parts = append(parts, "JPG/PNG/WEBP")
	}
	if r.Kinds&KindPDF != 0 {
		parts = append(parts, "PDF")
	}
	if r.Kinds&KindWord != 0 {
		parts = append(parts, "DOC/DOCX")
	}
	return " (allowed: " + strings.Join(parts, ", ") + ")"
}

func isImageExt(ext string) bool {
	return constants.DetectFileTypeFromExt("."+ext) == constants.FileKindImage
}

// Uploader validates, optionally re-encodes, and stores attachments.
type Uploader struct {
	Store Store
	WebP  WebPOptions
	Now   func() time.Time
}

func NewUploader(store Store) *Uploader {
	return &Uploader{Store: store, WebP: DefaultWebPOptionsFromEnv(), Now: time.Now}
}

func (u *Uploader) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}

// Upload stores fh under bucket/category and returns the stored object.
func (u *Uploader) Upload(ctx context.Context, field string, fh *multipart.FileHeader, bucket, category string, rule Rule) (*Object, error) {
	if err := rule.Check(field, fh); err != nil {
		return nil, err
	}
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", field, err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, rule.MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", field, err)
	}
	if rule.MaxBytes > 0 && int64(len(data)) > rule.MaxBytes {
		return nil, &FileError{Field: field, Msg: fmt.Sprintf("%s must be at most %d MB", rule.Label, rule.MaxBytes>>20), Err: ErrTooLarge}
	}

	ext := extOf(fh.Filename)
	contentType := http.DetectContentType(data)
	switch {
	case ext == "pdf":
		if rule.StrictPDF {
			if _, err := VerifyPDF(data); err != nil {
				return nil, &FileError{Field: field, Msg: rule.Label + " must be a valid PDF", Err: err}
			}
		} else if !bytes.HasPrefix(data, []byte("%PDF-")) {
			return nil, &FileError{Field: field, Msg: rule.Label + " is not a PDF file", Err: ErrUnsupported}
		}
		contentType = "application/pdf"
	case wordTypes[ext] != "":
		contentType = wordTypes[ext]
	case isImageExt(ext):
		if !strings.HasPrefix(contentType, "image/") {
			return nil, &FileError{Field: field, Msg: rule.Label + " is not an image", Err: ErrUnsupported}
		}
		if rule.ToWebP && WebPEnabled() && contentType != "image/gif" {
			converted, err := ConvertToWebP(data, u.WebP)
			if err != nil {
				return nil, &FileError{Field: field, Msg: rule.Label + " could not be processed", Err: err}
			}
			data, ext, contentType = converted, "webp", "image/webp"
		}
	}

	path := ObjectPath(category, ext, u.now())
	url, err := u.Store.Upload(ctx, bucket, path, bytes.NewReader(data), int64(len(data)), contentType)
	if err != nil {
		return nil, err
	}
	return &Object{Bucket: bucket, Path: path, URL: url, ContentType: contentType, Size: int64(len(data))}, nil
}

// DeleteURL removes an object previously returned by this store. Unknown URLs
// are ignored.
func (u *Uploader) DeleteURL(ctx context.Context, bucket, publicURL string) error {
	if publicURL == "" {
		return nil
	}
	path, ok := u.Store.PathFromURL(bucket, publicURL)
	if !ok {
		return nil
	}
	return u.Store.Delete(ctx, bucket, path)
}

// Batch collects the objects uploaded for one record so they can be removed
// if the record write fails.
type Batch struct {
	u       *Uploader
	mu      sync.Mutex
	objects []*Object
}

func (u *Uploader) Batch() *Batch { return &Batch{u: u} }

func (b *Batch) Upload(ctx context.Context, field string, fh *multipart.FileHeader, bucket, category string, rule Rule) (*Object, error) {
	obj, err := b.u.Upload(ctx, field, fh, bucket, category, rule)
	if err != nil {
		return nil, err
	}
	b.mu.Lock()
	b.objects = append(b.objects, obj)
	b.mu.Unlock()
	return obj, nil
}

// Rollback deletes everything uploaded through the batch. It runs on its own
// context so a cancelled request still cleans up.
func (b *Batch) Rollback() {
	b.mu.Lock()
	objs := b.objects
	b.objects = nil
	b.mu.Unlock()
	if len(objs) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	for _, o := range objs {
		if err := b.u.Store.Delete(ctx, o.Bucket, o.Path); err != nil {
			log.Printf("[ERROR] rollback delete %s/%s: %v", o.Bucket, o.Path, err)
		} else {
			log.Printf("[INFO] 🧹 rolled back upload %s/%s", o.Bucket, o.Path)
		}
	}
}

func IsFileError(err error) (*FileError, bool) {
	var fe *FileError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
