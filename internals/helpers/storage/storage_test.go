package storage

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suryaghar_backend/internals/helpers/storage/storagetest"
)

func TestObjectPath(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	p := ObjectPath("/resumes/", ".PDF", now)
	assert.Regexp(t, regexp.MustCompile(`^resumes/1700000000123-[0-9a-f]{10}\.pdf$`), p)
	assert.NotEqual(t, p, ObjectPath("resumes", "pdf", now))
	assert.True(t, strings.HasSuffix(ObjectPath("x", "", now), ".bin"))
}

func TestVerifyPDF(t *testing.T) {
	n, err := VerifyPDF(storagetest.PDF())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = VerifyPDF([]byte("%PDF-1.4 truncated"))
	assert.ErrorIs(t, err, ErrUnsupported)
	_, err = VerifyPDF(storagetest.PNG())
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestSupabaseStore_UploadAndDelete(t *testing.T) {
	var mu sync.Mutex
	var calls []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls = append(calls, r.Method+" "+r.URL.Path)
		mu.Unlock()
		assert.Equal(t, "Bearer service-key", r.Header.Get("Authorization"))
		if r.Method == http.MethodPut {
			body, _ := io.ReadAll(r.Body)
			assert.Equal(t, "hello", string(body))
			assert.Equal(t, "application/pdf", r.Header.Get("Content-Type"))
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := NewSupabaseStore(srv.URL+"/", "service-key", srv.Client())
	url, err := s.Upload(context.Background(), "applicant-documents", "resumes/a b.pdf", strings.NewReader("hello"), 5, "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/storage/v1/object/public/applicant-documents/resumes/a%20b.pdf", url)

	path, ok := s.PathFromURL("applicant-documents", url)
	require.True(t, ok)
	assert.Equal(t, "resumes/a b.pdf", path)
	_, ok = s.PathFromURL("gallery-images", url)
	assert.False(t, ok)

	require.NoError(t, s.Delete(context.Background(), "applicant-documents", path))
	assert.Equal(t, []string{
		"PUT /storage/v1/object/applicant-documents/resumes/a b.pdf",
		"DELETE /storage/v1/object/applicant-documents/resumes/a b.pdf",
	}, calls)
}

func TestSupabaseStore_UploadFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bucket not found", http.StatusBadRequest)
	}))
	defer srv.Close()
	s := NewSupabaseStore(srv.URL, "k", srv.Client())
	_, err := s.Upload(context.Background(), "b", "p.txt", strings.NewReader("x"), 1, "text/plain")
	assert.Error(t, err)
}

// header builds a FileHeader by round-tripping a real multipart body.
func header(t *testing.T, field, name, ct string, data []byte) *multipart.FileHeader {
	t.Helper()
	req := storagetest.Multipart("POST", "/", nil, storagetest.File{Field: field, Name: name, ContentType: ct, Data: data})
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File[field][0]
}

func TestRuleCheck(t *testing.T) {
	assert.NoError(t, ResumeRule.Check("resume", header(t, "resume", "cv.docx", "", []byte("x"))))

	err := PDFResumeRule.Check("resume", header(t, "resume", "cv.docx", "", []byte("x")))
	fe, ok := IsFileError(err)
	require.True(t, ok)
	assert.ErrorIs(t, err, ErrUnsupported)
	assert.Equal(t, "resume", fe.Field)

	err = PhotoRule.Check("photo", nil)
	fe, ok = IsFileError(err)
	require.True(t, ok)
	assert.Equal(t, "Photo is required", fe.Msg)

	big := make([]byte, (5<<20)+1)
	assert.ErrorIs(t, AadhaarRule.Check("aadhaar", header(t, "aadhaar", "a.pdf", "", big)), ErrTooLarge)
}

func TestUploader_ConvertsImagesAndChecksPDF(t *testing.T) {
	t.Setenv("IMAGE_WEBP_ENABLED", "true")
	mem := NewMemory()
	u := NewUploader(mem)

	obj, err := u.Upload(context.Background(), "photo", header(t, "photo", "me.png", "image/png", storagetest.PNG()), "applicant-documents", "photos", PhotoRule)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(obj.Path, ".webp"))
	assert.Equal(t, "image/webp", mem.ContentType("applicant-documents", obj.Path))

	obj, err = u.Upload(context.Background(), "resume", header(t, "resume", "cv.pdf", "", storagetest.PDF()), "applicant-documents", "resumes", PDFResumeRule)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", obj.ContentType)

	_, err = u.Upload(context.Background(), "resume", header(t, "resume", "cv.pdf", "", []byte("%PDF-1.4 nope")), "applicant-documents", "resumes", PDFResumeRule)
	_, ok := IsFileError(err)
	assert.True(t, ok)

	_, err = u.Upload(context.Background(), "photo", header(t, "photo", "fake.png", "", []byte("plain text")), "applicant-documents", "photos", PhotoRule)
	_, ok = IsFileError(err)
	assert.True(t, ok)
}

func TestBatchRollback(t *testing.T) {
	t.Setenv("IMAGE_WEBP_ENABLED", "false")
	mem := NewMemory()
	mem.FailOn = "photos/"
	b := NewUploader(mem).Batch()
	ctx := context.Background()

	_, err := b.Upload(ctx, "resume", header(t, "resume", "cv.pdf", "", storagetest.PDF()), "applicant-documents", "resumes", ResumeRule)
	require.NoError(t, err)
	_, err = b.Upload(ctx, "aadhaar", header(t, "aadhaar", "id.png", "", storagetest.PNG()), "applicant-documents", "aadhaar", AadhaarRule)
	require.NoError(t, err)
	assert.Len(t, mem.Keys(), 2)

	_, err = b.Upload(ctx, "photo", header(t, "photo", "me.png", "", storagetest.PNG()), "applicant-documents", "photos", PhotoRule)
	require.Error(t, err)

	b.Rollback()
	assert.Empty(t, mem.Keys())
}

func TestNoopStore(t *testing.T) {
	_, err := Noop{}.Upload(context.Background(), "b", "p", strings.NewReader(""), 0, "")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
