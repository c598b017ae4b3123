// Package storage uploads form attachments to an object store and hands back
// publicly fetchable URLs.
package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var (
	ErrNotConfigured = errors.New("storage: object store not configured")
	ErrTooLarge      = errors.New("storage: file too large")
	ErrUnsupported   = errors.New("storage: unsupported file type")
)

// Store is the object-storage contract. Paths are bucket-relative.
type Store interface {
	Name() string
	Upload(ctx context.Context, bucket, path string, body io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, bucket, path string) error
	PublicURL(bucket, path string) string
	// PathFromURL recovers the bucket-relative path of a URL this store produced.
	PathFromURL(bucket, publicURL string) (string, bool)
}

// Object is one stored file.
type Object struct {
	Bucket      string `json:"bucket"`
	Path        string `json:"path"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// ObjectPath builds "{category}/{unixMillis}-{random}.{ext}".
func ObjectPath(category, ext string, now time.Time) string {
	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	if ext == "" {
		ext = "bin"
	}
	return fmt.Sprintf("%s/%d-%s.%s", strings.Trim(category, "/"), now.UnixMilli(), randomSuffix(), ext)
}

func randomSuffix() string {
	var b [5]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("%x", time.Now().UnixNano()&0xffffffffff)
	}
	return hex.EncodeToString(b[:])
}

func extOf(filename string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
}

// NewFromEnv picks Supabase Storage, then Aliyun OSS, then the inert store.
func NewFromEnv() Store {
	if url, key := os.Getenv("SUPABASE_PROJECT_URL"), os.Getenv("SUPABASE_SERVICE_ROLE_KEY"); url != "" && key != "" {
		log.Println("🗄️ Object storage: Supabase")
		return NewSupabaseStore(url, key, nil)
	}
	if os.Getenv("ALI_OSS_ENDPOINT") != "" {
		s, err := NewOSSStoreFromEnv()
		if err == nil {
			log.Println("🗄️ Object storage: Aliyun OSS")
			return s
		}
		log.Printf("[ERROR] OSS init failed, uploads disabled: %v", err)
	}
	log.Println("⚠️ No object storage configured, uploads disabled")
	return Noop{}
}
